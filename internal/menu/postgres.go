package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
)

// DBPool matches the methods from *pgxpool.Pool that the catalog uses.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const selectItems = `SELECT id, name, description, image_url, price::text, category, rating, delivery_time
	FROM menu_items ORDER BY category, name`

// PostgresCatalog serves menu_items and polls it for changes.
type PostgresCatalog struct {
	pool  DBPool
	every time.Duration
}

func NewPostgresCatalog(pool DBPool, every time.Duration) *PostgresCatalog {
	if every <= 0 {
		every = 5 * time.Second
	}
	return &PostgresCatalog{pool: pool, every: every}
}

func (c *PostgresCatalog) Subscribe(ctx context.Context) *feed.Subscription[Item] {
	return feed.Poll(ctx, c.every, c.List)
}

func (c *PostgresCatalog) List(ctx context.Context) ([]Item, error) {
	rows, err := c.pool.Query(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("select menu_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.ImageURL, &price, &it.Category, &it.Rating, &it.DeliveryTime); err != nil {
			return nil, fmt.Errorf("scan menu_item: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("menu_item %s price %q: %w", it.ID, price, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// DBExecer is the write side used when seeding the catalog.
type DBExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Upsert writes items into menu_items, replacing rows with the same id.
func Upsert(ctx context.Context, db DBExecer, items []Item) error {
	for _, it := range items {
		it = it.WithDefaults()
		_, err := db.Exec(ctx, `
			INSERT INTO menu_items (id, name, description, image_url, price, category, rating, delivery_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name=EXCLUDED.name, description=EXCLUDED.description, image_url=EXCLUDED.image_url,
				price=EXCLUDED.price, category=EXCLUDED.category, rating=EXCLUDED.rating,
				delivery_time=EXCLUDED.delivery_time, updated_at=now()
		`, it.ID, it.Name, it.Description, it.ImageURL, it.Price.String(), it.Category, it.Rating, it.DeliveryTime)
		if err != nil {
			return fmt.Errorf("upsert menu_item %s: %w", it.ID, err)
		}
	}
	return nil
}
