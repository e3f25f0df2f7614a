package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

func TestManager_GetReturnsSameSession(t *testing.T) {
	m := NewManager(context.Background(), order.NewMemoryRepository(), nil, nil)
	defer m.Close()

	a := m.Get("u1")
	require.Same(t, a, m.Get("u1"))
	require.NotSame(t, a, m.Get("u2"))
}

func TestSession_CheckoutRoundTrip(t *testing.T) {
	repo := order.NewMemoryRepository()
	m := NewManager(context.Background(), repo, nil, nil)
	defer m.Close()

	s := m.Get("demoUser123")
	require.True(t, s.Checkout.Focus())
	require.Equal(t, checkout.RouteMenu, s.TakeRedirect())
	require.Equal(t, checkout.Route(""), s.TakeRedirect())

	s.Checkout.Blur()
	s.Cart.AddItem(menu.Item{ID: "A", Name: "Burger", Price: decimal.NewFromInt(100)})
	require.False(t, s.Checkout.Focus())

	o, err := s.Checkout.Confirm(context.Background(), checkout.DeliveryDetails{
		PhoneNumber: "+919876543210",
		Address:     "Flat 2, MG Road, Pune",
	})
	require.NoError(t, err)
	require.Equal(t, checkout.RouteMenu, s.TakeRedirect())
	require.True(t, s.Cart.IsEmpty())

	h := s.History()
	require.Same(t, h, s.History())
	require.Eventually(t, func() bool {
		orders, loaded, _ := h.Orders()
		return loaded && len(orders) == 1 && orders[0].ID == o.ID
	}, time.Second, 5*time.Millisecond)
}

func TestManager_CloseStopsHistories(t *testing.T) {
	m := NewManager(context.Background(), order.NewMemoryRepository(), nil, nil)
	h := m.Get("u1").History()
	<-h.Ready()

	m.Close()
}
