package firestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
)

// Catalog streams the menuItems collection. Documents that cannot be decoded
// are logged and left out of the snapshot.
type Catalog struct {
	Client *firestore.Client
	Logger *log.Logger
}

func NewCatalog(client *firestore.Client, logger *log.Logger) *Catalog {
	return &Catalog{Client: client, Logger: logger}
}

func (c *Catalog) col() *firestore.CollectionRef {
	return c.Client.Collection(MenuItemsCollection)
}

func (c *Catalog) Subscribe(ctx context.Context) *feed.Subscription[menu.Item] {
	return feed.Start(ctx, func(ctx context.Context, emit func(feed.Event[menu.Item]) bool) {
		it := c.col().Snapshots(ctx)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				emit(feed.Event[menu.Item]{Err: fmt.Errorf("menuItems snapshot: %w", err)})
				return
			}

			docs, err := qs.Documents.GetAll()
			if err != nil {
				emit(feed.Event[menu.Item]{Err: fmt.Errorf("menuItems documents: %w", err)})
				return
			}

			raw := make([]document, 0, len(docs))
			for _, doc := range docs {
				raw = append(raw, document{id: doc.Ref.ID, data: doc.Data()})
			}
			if !emit(feed.Event[menu.Item]{Items: decodeItems(raw, c.Logger)}) {
				return
			}
		}
	})
}

// Seed writes items keyed by their id, merging into existing documents.
func (c *Catalog) Seed(ctx context.Context, items []menu.Item) error {
	batch := c.Client.Batch()
	for _, it := range items {
		batch.Set(c.col().Doc(it.ID), itemData(it.WithDefaults()), firestore.MergeAll)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("commit menu seed: %w", err)
	}
	return nil
}
