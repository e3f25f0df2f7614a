package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

const (
	insertOrder = `INSERT INTO orders (user_id, total_price, status, phone_number, delivery_address)
         VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	insertItem = `INSERT INTO order_items (order_id, position, item_id, name, price, quantity)
             VALUES ($1, $2, $3, $4, $5, $6)`
	selectOrder = `SELECT id, user_id, total_price, status, phone_number, delivery_address, created_at
         FROM orders WHERE id = $1`
	selectUserOrders = `SELECT id, user_id, total_price, status, phone_number, delivery_address, created_at
         FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	selectItems = `SELECT item_id, name, price, quantity
         FROM order_items WHERE order_id = $1 ORDER BY position`
	deleteOrder = `DELETE FROM orders WHERE id = $1`
)

// isMalformedID reports whether Postgres rejected the id as not a UUID.
func isMalformedID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

// PostgresRepository stores orders in the orders and order_items tables. The
// database assigns ids and creation times.
type PostgresRepository struct {
	db    *sql.DB
	every time.Duration
}

func NewPostgresRepository(db *sql.DB, pollEvery time.Duration) *PostgresRepository {
	if pollEvery <= 0 {
		pollEvery = 5 * time.Second
	}
	return &PostgresRepository{db: db, every: pollEvery}
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var (
		id        string
		createdAt time.Time
	)
	err = tx.QueryRowContext(ctx, insertOrder,
		o.UserID, o.TotalPrice.String(), string(o.Status), o.PhoneNumber, o.DeliveryAddress,
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx, insertItem,
			id, i, it.ItemID, it.Name, it.Price.String(), it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	o.ID, o.CreatedAt = id, createdAt
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o      Order
		total  string
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &total, &status, &o.PhoneNumber, &o.DeliveryAddress, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("order %s total %q: %w", o.ID, total, err)
	}
	o.TotalPrice = amount
	o.Status = ParseStatus(status)
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItems, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ItemID, &it.Name, &price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("order_item %s price %q: %w", it.ItemID, price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, selectUserOrders, userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	rows.Close()

	for i := range orders {
		if orders[i].Items, err = r.loadItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Delete removes the order and, through the foreign key, its items. Deleting
// a missing order is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, orderID string) error {
	if _, err := r.db.ExecContext(ctx, deleteOrder, orderID); err != nil && !isMalformedID(err) {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// SubscribeByUser polls the user's orders and emits a snapshot whenever the
// result changes.
func (r *PostgresRepository) SubscribeByUser(ctx context.Context, userID string) *feed.Subscription[Order] {
	return feed.Poll(ctx, r.every, func(ctx context.Context) ([]Order, error) {
		return r.ListByUser(ctx, userID)
	})
}
