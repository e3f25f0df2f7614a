package menu

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

// ErrLoad is reported while the catalog feed is failing.
var ErrLoad = errors.New("menu: catalog unavailable")

// CatalogSource yields the live catalog. Every event carries the full set of
// items, so creations, updates and deletions all show up in the next snapshot.
type CatalogSource interface {
	Subscribe(ctx context.Context) *feed.Subscription[Item]
}

// Live keeps the latest catalog snapshot for lookups.
type Live struct {
	sub    *feed.Subscription[Item]
	logger *log.Logger

	mu     sync.RWMutex
	items  []Item
	byID   map[string]Item
	loaded bool
	err    error

	ready     chan struct{}
	readyOnce sync.Once
}

// Watch subscribes to src and starts consuming snapshots until Close. A feed
// that ends on its own is reopened with backoff.
func Watch(ctx context.Context, src CatalogSource, logger *log.Logger) *Live {
	l := &Live{
		sub:    feed.Resubscribe(ctx, feed.DefaultMinBackoff, feed.DefaultMaxBackoff, src.Subscribe),
		logger: logger,
		byID:   map[string]Item{},
		ready:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Live) run() {
	for ev := range l.sub.Events() {
		l.apply(ev)
	}
}

func (l *Live) apply(ev feed.Event[Item]) {
	l.mu.Lock()
	if ev.Err != nil {
		l.err = ev.Err
		if l.logger != nil {
			l.logger.Printf("catalog feed error: %v", ev.Err)
		}
	} else {
		l.err = nil
		l.loaded = true
		l.items = make([]Item, 0, len(ev.Items))
		l.byID = make(map[string]Item, len(ev.Items))
		for _, it := range ev.Items {
			it = it.WithDefaults()
			l.items = append(l.items, it)
			l.byID[it.ID] = it
		}
	}
	l.mu.Unlock()

	l.readyOnce.Do(func() { close(l.ready) })
}

// Ready is closed after the first snapshot or error arrives.
func (l *Live) Ready() <-chan struct{} {
	return l.ready
}

// Items returns a copy of the latest snapshot. loaded is false until the first
// snapshot arrives; err is ErrLoad when the last event was a failure.
func (l *Live) Items() (items []Item, loaded bool, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.err != nil {
		return nil, l.loaded, ErrLoad
	}
	return append([]Item(nil), l.items...), l.loaded, nil
}

func (l *Live) Lookup(id string) (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	it, ok := l.byID[id]
	return it, ok
}

func (l *Live) Close() {
	l.sub.Stop()
}
