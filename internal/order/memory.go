package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

// MemoryRepository keeps orders in process. It assigns ids and creation times
// the way a remote backend would and pushes a snapshot to subscribers on every
// change.
type MemoryRepository struct {
	mu      sync.Mutex
	orders  map[string]Order
	changed chan struct{}
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:  map[string]Order{},
		changed: make(chan struct{}),
		now:     time.Now,
	}
}

func (r *MemoryRepository) notifyLocked() {
	close(r.changed)
	r.changed = make(chan struct{})
}

func (r *MemoryRepository) Create(ctx context.Context, o *Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = uuid.NewString()
	o.CreatedAt = r.now().UTC()
	if o.Status == "" {
		o.Status = StatusPending
	}
	stored := *o
	stored.Items = append([]Item(nil), o.Items...)
	r.orders[o.ID] = stored
	r.notifyLocked()
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, _ := r.snapshot(userID)
	SortByDateDesc(orders)
	return orders, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[orderID]; ok {
		delete(r.orders, orderID)
		r.notifyLocked()
	}
	return nil
}

// SetStatus stands in for the external process that moves orders along.
func (r *MemoryRepository) SetStatus(orderID string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	r.orders[orderID] = o
	r.notifyLocked()
	return nil
}

func (r *MemoryRepository) snapshot(userID string) ([]Order, chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, r.changed
}

func (r *MemoryRepository) SubscribeByUser(ctx context.Context, userID string) *feed.Subscription[Order] {
	return feed.Start(ctx, func(ctx context.Context, emit func(feed.Event[Order]) bool) {
		for {
			orders, changed := r.snapshot(userID)
			if !emit(feed.Event[Order]{Items: orders}) {
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
