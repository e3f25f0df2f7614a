// Command seed-menu writes the demo catalog to the configured backend.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/db"
	fs "github.com/andreasstove999/ecommerce-system/food-order-go/internal/firestore"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
)

func main() {
	logger := log.New(os.Stdout, "[seed-menu] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items := menu.DemoItems()

	switch cfg.Backend {
	case config.BackendFirestore:
		client, err := fs.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, logger)
		if err != nil {
			logger.Fatalf("firestore: %v", err)
		}
		defer client.Close()

		if err := fs.NewCatalog(client.Client, logger).Seed(ctx, items); err != nil {
			logger.Fatalf("seed firestore: %v", err)
		}

	case config.BackendPostgres:
		if err := db.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatalf("migrations: %v", err)
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("postgres pool: %v", err)
		}
		defer pool.Close()

		if err := menu.Upsert(ctx, pool, items); err != nil {
			logger.Fatalf("seed postgres: %v", err)
		}

	default:
		logger.Fatalf("nothing to seed for backend %q; set BACKEND=firestore or BACKEND=postgres", cfg.Backend)
	}

	logger.Printf("seeded %d menu items into %s", len(items), cfg.Backend)
}
