package firestore

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

func getString(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func getDecimal(data map[string]any, key string) (decimal.Decimal, error) {
	switch v := data[key].(type) {
	case nil:
		return decimal.Zero, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

func getFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return 0
}

func getInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func getTime(data map[string]any, key string) time.Time {
	if t, ok := data[key].(time.Time); ok {
		return t.UTC()
	}
	return time.Time{}
}

func itemFromData(id string, data map[string]any) (menu.Item, error) {
	price, err := getDecimal(data, "price")
	if err != nil {
		return menu.Item{}, fmt.Errorf("menu item %s: %w", id, err)
	}
	it := menu.Item{
		ID:           id,
		Name:         getString(data, "name"),
		Description:  getString(data, "description"),
		ImageURL:     getString(data, "imageUrl"),
		Price:        price,
		Category:     getString(data, "category"),
		Rating:       getFloat(data, "rating"),
		DeliveryTime: getString(data, "deliveryTime"),
	}
	return it.WithDefaults(), nil
}

type document struct {
	id   string
	data map[string]any
}

// decodeItems keeps the catalog usable when a single document is malformed.
func decodeItems(docs []document, logger *log.Logger) []menu.Item {
	items := make([]menu.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := itemFromData(doc.id, doc.data)
		if err != nil {
			if logger != nil {
				logger.Printf("skipping %s: %v", MenuItemsCollection, err)
			}
			continue
		}
		items = append(items, item)
	}
	return items
}

func itemData(it menu.Item) map[string]any {
	return map[string]any{
		"name":         it.Name,
		"description":  it.Description,
		"imageUrl":     it.ImageURL,
		"price":        it.Price.InexactFloat64(),
		"category":     it.Category,
		"rating":       it.Rating,
		"deliveryTime": it.DeliveryTime,
	}
}

func orderFromData(id string, data map[string]any) (order.Order, error) {
	total, err := getDecimal(data, "totalPrice")
	if err != nil {
		return order.Order{}, fmt.Errorf("order %s: %w", id, err)
	}

	o := order.Order{
		ID:              id,
		UserID:          getString(data, "userId"),
		TotalPrice:      total,
		CreatedAt:       getTime(data, "orderDate"),
		Status:          order.ParseStatus(getString(data, "status")),
		PhoneNumber:     getString(data, "phoneNumber"),
		DeliveryAddress: getString(data, "deliveryAddress"),
	}

	raw, _ := data["items"].([]any)
	for i, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			return order.Order{}, fmt.Errorf("order %s: items[%d] has type %T", id, i, r)
		}
		price, err := getDecimal(m, "price")
		if err != nil {
			return order.Order{}, fmt.Errorf("order %s items[%d]: %w", id, i, err)
		}
		o.Items = append(o.Items, order.Item{
			ItemID:   getString(m, "itemId"),
			Name:     getString(m, "name"),
			Price:    price,
			Quantity: getInt(m, "quantity"),
		})
	}
	return o, nil
}

// orderData is the document written for a new order. orderDate is filled in
// by the server.
func orderData(o *order.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"itemId":   it.ItemID,
			"name":     it.Name,
			"price":    it.Price.InexactFloat64(),
			"quantity": it.Quantity,
		})
	}
	return map[string]any{
		"userId":          o.UserID,
		"items":           items,
		"totalPrice":      o.TotalPrice.InexactFloat64(),
		"orderDate":       firestore.ServerTimestamp,
		"status":          string(o.Status),
		"phoneNumber":     o.PhoneNumber,
		"deliveryAddress": o.DeliveryAddress,
	}
}
