package order

import (
	"context"
	"errors"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

var ErrNotFound = errors.New("order not found")

// Sink accepts exactly one write per placed order. On success o.ID and
// o.CreatedAt hold the values assigned by the backend.
type Sink interface {
	Create(ctx context.Context, o *Order) error
}

type Repository interface {
	Sink
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Delete(ctx context.Context, orderID string) error
	// SubscribeByUser streams the user's orders. Snapshot order is not
	// guaranteed; use SortByDateDesc.
	SubscribeByUser(ctx context.Context, userID string) *feed.Subscription[Order]
}
