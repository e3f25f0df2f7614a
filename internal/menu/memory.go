package menu

import (
	"context"
	"sync"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

// MemoryCatalog is an in-process CatalogSource. Set publishes a new snapshot to
// every open subscription.
type MemoryCatalog struct {
	mu      sync.Mutex
	items   []Item
	changed chan struct{}
}

func NewMemoryCatalog(items ...Item) *MemoryCatalog {
	return &MemoryCatalog{
		items:   append([]Item(nil), items...),
		changed: make(chan struct{}),
	}
}

func (c *MemoryCatalog) Set(items ...Item) {
	c.mu.Lock()
	c.items = append([]Item(nil), items...)
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()
}

func (c *MemoryCatalog) snapshot() ([]Item, chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...), c.changed
}

func (c *MemoryCatalog) Subscribe(ctx context.Context) *feed.Subscription[Item] {
	return feed.Start(ctx, func(ctx context.Context, emit func(feed.Event[Item]) bool) {
		for {
			items, changed := c.snapshot()
			if !emit(feed.Event[Item]{Items: items}) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-changed:
			}
		}
	})
}
