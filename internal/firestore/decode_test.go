package firestore

import (
	"bytes"
	"log"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

func TestItemFromData(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		it, err := itemFromData("burger", map[string]any{
			"name":         "Classic Burger",
			"description":  "cheddar",
			"imageUrl":     "https://img/burger.png",
			"price":        int64(220),
			"category":     "Burgers",
			"rating":       4.8,
			"deliveryTime": "20-25 min",
		})
		require.NoError(t, err)
		require.Equal(t, "burger", it.ID)
		require.True(t, decimal.NewFromInt(220).Equal(it.Price))
		require.Equal(t, 4.8, it.Rating)
		require.Equal(t, "20-25 min", it.DeliveryTime)
	})

	t.Run("missing display fields get defaults", func(t *testing.T) {
		it, err := itemFromData("coffee", map[string]any{"name": "Cold Coffee", "price": 99.5, "category": "Drinks"})
		require.NoError(t, err)
		require.True(t, decimal.RequireFromString("99.5").Equal(it.Price))
		require.Equal(t, menu.DefaultRating, it.Rating)
		require.Equal(t, menu.DefaultDeliveryTime, it.DeliveryTime)
	})

	t.Run("bad price", func(t *testing.T) {
		_, err := itemFromData("x", map[string]any{"price": "free"})
		require.ErrorContains(t, err, "menu item x")

		_, err = itemFromData("y", map[string]any{"price": true})
		require.ErrorContains(t, err, "unsupported type bool")
	})
}

func TestDecodeItems_SkipsMalformedDocuments(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	items := decodeItems([]document{
		{id: "burger", data: map[string]any{"name": "Classic Burger", "price": int64(220)}},
		{id: "broken", data: map[string]any{"name": "Broken", "price": "free"}},
		{id: "cola", data: map[string]any{"name": "Cola", "price": 40.0}},
	}, logger)

	require.Len(t, items, 2)
	require.Equal(t, "burger", items[0].ID)
	require.Equal(t, "cola", items[1].ID)
	require.Contains(t, buf.String(), "menu item broken")
}

func TestOrderFromData(t *testing.T) {
	placed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	o, err := orderFromData("abc123xyz", map[string]any{
		"userId":          "demoUser123",
		"totalPrice":      250.0,
		"orderDate":       placed,
		"status":          "In Progress",
		"phoneNumber":     "+919876543210",
		"deliveryAddress": "Flat 2, MG Road, Pune",
		"items": []any{
			map[string]any{"itemId": "A", "name": "Burger", "price": int64(100), "quantity": int64(2)},
			map[string]any{"itemId": "B", "name": "Coke", "price": 50.0, "quantity": int64(1)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "abc123xyz", o.ID)
	require.Equal(t, order.StatusInProgress, o.Status)
	require.Equal(t, placed, o.CreatedAt)
	require.True(t, decimal.NewFromInt(250).Equal(o.TotalPrice))
	require.Len(t, o.Items, 2)
	require.Equal(t, 2, o.Items[0].Quantity)
	require.True(t, decimal.NewFromInt(50).Equal(o.Items[1].Price))

	_, err = orderFromData("bad", map[string]any{"items": []any{"oops"}})
	require.ErrorContains(t, err, "items[0] has type string")
}

func TestOrderFromData_MissingFields(t *testing.T) {
	o, err := orderFromData("o1", map[string]any{"userId": "u1"})
	require.NoError(t, err)
	require.Equal(t, order.StatusPending, o.Status)
	require.True(t, o.CreatedAt.IsZero())
	require.True(t, o.TotalPrice.IsZero())
	require.Empty(t, o.Items)
}

func TestOrderData(t *testing.T) {
	o := order.New("demoUser123", []order.Item{
		{ItemID: "A", Name: "Burger", Price: decimal.NewFromInt(100), Quantity: 2},
	}, decimal.NewFromInt(200), "+919876543210", "Flat 2, MG Road, Pune")

	data := orderData(o)
	require.Equal(t, firestore.ServerTimestamp, data["orderDate"])
	require.Equal(t, "Pending", data["status"])
	require.Equal(t, 200.0, data["totalPrice"])
	require.Equal(t, []map[string]any{{"itemId": "A", "name": "Burger", "price": 100.0, "quantity": 2}}, data["items"])
	require.NotContains(t, data, "id")
}

func TestItemData(t *testing.T) {
	data := itemData(menu.Item{ID: "m", Name: "Margherita", Price: decimal.RequireFromString("300.50"), Category: "Pizzas"})
	require.Equal(t, 300.5, data["price"])
	require.NotContains(t, data, "id")
}
