package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

var ErrDelete = errors.New("failed to delete order")

// SortByDateDesc orders newest first. Orders with equal timestamps keep their
// relative order from the input.
func SortByDateDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// History is the read-only order list of one user, kept current by a
// subscription.
type History struct {
	repo   Repository
	userID string
	sub    *feed.Subscription[Order]
	logger *log.Logger

	mu     sync.Mutex
	orders []Order
	loaded bool
	err    error

	ready     chan struct{}
	readyOnce sync.Once
}

// WatchHistory follows the user's orders until Close, reopening the
// subscription with backoff whenever the backend ends it.
func WatchHistory(ctx context.Context, repo Repository, userID string, logger *log.Logger) *History {
	subscribe := func(ctx context.Context) *feed.Subscription[Order] {
		return repo.SubscribeByUser(ctx, userID)
	}
	h := &History{
		repo:   repo,
		userID: userID,
		sub:    feed.Resubscribe(ctx, feed.DefaultMinBackoff, feed.DefaultMaxBackoff, subscribe),
		logger: logger,
		ready:  make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *History) run() {
	for ev := range h.sub.Events() {
		h.mu.Lock()
		if ev.Err != nil {
			h.err = ev.Err
			h.logf("order history for %s: %v", h.userID, ev.Err)
		} else {
			orders := append([]Order(nil), ev.Items...)
			SortByDateDesc(orders)
			h.orders, h.loaded, h.err = orders, true, nil
		}
		h.mu.Unlock()
		h.readyOnce.Do(func() { close(h.ready) })
	}
}

func (h *History) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// Ready is closed after the first snapshot or error.
func (h *History) Ready() <-chan struct{} {
	return h.ready
}

// Orders returns the displayed list, newest first.
func (h *History) Orders() (orders []Order, loaded bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.loaded, h.err
	}
	return append([]Order(nil), h.orders...), h.loaded, nil
}

// Delete drops the order from the displayed list and then deletes it
// remotely. A remote failure is reported but the row is not put back; the
// next snapshot from the subscription restores it if it still exists.
func (h *History) Delete(ctx context.Context, orderID string) error {
	h.mu.Lock()
	for i := range h.orders {
		if h.orders[i].ID == orderID {
			h.orders = append(h.orders[:i], h.orders[i+1:]...)
			break
		}
	}
	h.mu.Unlock()

	if err := h.repo.Delete(ctx, orderID); err != nil {
		h.logf("delete order %s: %v", orderID, err)
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}
	return nil
}

func (h *History) Close() {
	h.sub.Stop()
}
