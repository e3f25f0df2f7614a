package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

// OrderRepository implements order.Repository on the orders collection.
type OrderRepository struct {
	Client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{Client: client}
}

func (r *OrderRepository) col() *firestore.CollectionRef {
	return r.Client.Collection(OrdersCollection)
}

func (r *OrderRepository) byUser(userID string) firestore.Query {
	return r.col().Where("userId", "==", userID)
}

// Create adds one document with a server-assigned id and orderDate. The commit
// time is the resolved server timestamp.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	ref, wr, err := r.col().Add(ctx, orderData(o))
	if err != nil {
		return fmt.Errorf("add order: %w", err)
	}
	o.ID = ref.ID
	o.CreatedAt = wr.UpdateTime.UTC()
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	snap, err := r.col().Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	o, err := orderFromData(snap.Ref.ID, snap.Data())
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	it := r.byUser(userID).Documents(ctx)
	defer it.Stop()

	orders, err := collect(it)
	if err != nil {
		return nil, err
	}
	order.SortByDateDesc(orders)
	return orders, nil
}

func collect(it *firestore.DocumentIterator) ([]order.Order, error) {
	var orders []order.Order
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		o, err := orderFromData(doc.Ref.ID, doc.Data())
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	if _, err := r.col().Doc(orderID).Delete(ctx); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepository) SubscribeByUser(ctx context.Context, userID string) *feed.Subscription[order.Order] {
	return feed.Start(ctx, func(ctx context.Context, emit func(feed.Event[order.Order]) bool) {
		it := r.byUser(userID).Snapshots(ctx)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				emit(feed.Event[order.Order]{Err: fmt.Errorf("orders snapshot: %w", err)})
				return
			}

			orders, err := collect(qs.Documents)
			if err != nil {
				emit(feed.Event[order.Order]{Err: err})
				return
			}
			if !emit(feed.Event[order.Order]{Items: orders}) {
				return
			}
		}
	})
}
