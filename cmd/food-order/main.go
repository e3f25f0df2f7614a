package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/events"
	fs "github.com/andreasstove999/ecommerce-system/food-order-go/internal/firestore"
	httpapi "github.com/andreasstove999/ecommerce-system/food-order-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/location"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/session"
)

func main() {
	logger := log.New(os.Stdout, "[food-order] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	catalog, orders := openBackend(ctx, cfg, logger, &closers)

	// RabbitMQ is optional; without it orders are placed but not announced.
	var publisher checkout.OrderPlacedPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		pub, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		closers = append(closers, func() {
			_ = pub.Close()
			_ = conn.Close()
		})
		publisher = pub
		logger.Printf("publishing order events to %s", events.EventsExchange)
	}

	live := menu.Watch(ctx, catalog, logger)
	closers = append(closers, live.Close)

	sessions := session.NewManager(ctx, orders, publisher, logger)
	closers = append(closers, sessions.Close)

	geocoder, err := location.NewHTTPGeocoder(cfg.GeocoderURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		logger.Fatalf("geocoder: %v", err)
	}

	h := httpapi.NewHandler(httpapi.Deps{
		Catalog:        catalog,
		Menu:           live,
		Orders:         orders,
		Sessions:       sessions,
		Geocoder:       geocoder,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(h, httpapi.RouterConfig{DemoUserID: cfg.DemoUserID, AllowedOrigins: cfg.AllowedOrigins}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("food-order listening on :%s (backend: %s)", cfg.Port, cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	cancel()
}

func openBackend(ctx context.Context, cfg config.Config, logger *log.Logger, closers *[]func()) (menu.CatalogSource, order.Repository) {
	switch cfg.Backend {
	case config.BackendFirestore:
		client, err := fs.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, logger)
		if err != nil {
			logger.Fatalf("firestore: %v", err)
		}
		*closers = append(*closers, func() { _ = client.Close() })
		return fs.NewCatalog(client.Client, logger), fs.NewOrderRepository(client.Client)

	case config.BackendPostgres:
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseURL, logger); err != nil {
				logger.Fatalf("migrations: %v", err)
			}
		}
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("postgres: %v", err)
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("postgres pool: %v", err)
		}
		*closers = append(*closers, func() {
			pool.Close()
			_ = database.Close()
		})
		return menu.NewPostgresCatalog(pool, cfg.PollInterval), order.NewPostgresRepository(database, cfg.PollInterval)
	}

	logger.Println("using in-memory catalog and orders")
	return menu.NewMemoryCatalog(menu.DemoItems()...), order.NewMemoryRepository()
}
