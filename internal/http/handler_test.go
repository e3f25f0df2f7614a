package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/location"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/session"
)

const testUser = "user-1"

type fakeGeocoder struct {
	addrs []location.Address
	err   error
}

func (g fakeGeocoder) Reverse(ctx context.Context, at location.Coordinates) ([]location.Address, error) {
	return g.addrs, g.err
}

// failingOrders fails every write and read while delegating subscriptions.
type failingOrders struct {
	*order.MemoryRepository
	err error
}

func (f failingOrders) Create(ctx context.Context, o *order.Order) error { return f.err }

func (f failingOrders) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	return nil, f.err
}

func (f failingOrders) Delete(ctx context.Context, orderID string) error { return f.err }

type testEnv struct {
	server  *httptest.Server
	catalog *menu.MemoryCatalog
	orders  *order.MemoryRepository
}

type envOption func(*Deps)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	catalog := menu.NewMemoryCatalog(
		menu.Item{ID: "pizza", Name: "Margherita", Description: "Tomato and mozzarella", Price: decimal.NewFromInt(100), Category: "Pizza"},
		menu.Item{ID: "burger", Name: "Classic Burger", Description: "Cheddar and lettuce", Price: decimal.NewFromInt(50), Category: "Burgers"},
	)
	orders := order.NewMemoryRepository()
	live := menu.Watch(context.Background(), catalog, nil)
	t.Cleanup(live.Close)

	d := Deps{
		Catalog:        catalog,
		Menu:           live,
		Orders:         orders,
		Geocoder:       fakeGeocoder{addrs: []location.Address{{Street: "MG Road 12", City: "Bengaluru", PostalCode: "560001"}}},
		RequestTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(&d)
	}
	sessions := session.NewManager(context.Background(), d.Orders, nil, nil)
	t.Cleanup(sessions.Close)
	d.Sessions = sessions

	srv := httptest.NewServer(NewRouter(NewHandler(d), RouterConfig{DemoUserID: testUser, AllowedOrigins: []string{"*"}}))
	t.Cleanup(srv.Close)

	select {
	case <-live.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("catalog never loaded")
	}
	return &testEnv{server: srv, catalog: catalog, orders: orders}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set(middleware.HeaderUserID, testUser)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListMenu_FiltersByCategoryAndSearch(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/menu/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decodeBody[menuResponse](t, resp)
	assert.Len(t, all.Items, 2)
	assert.False(t, all.Loading)
	assert.Equal(t, menu.CategoryAll, all.Category)
	assert.Equal(t, menu.DefaultRating, all.Items[0].Rating)

	resp = env.do(t, http.MethodGet, "/api/menu/?category=Burgers", nil)
	burgers := decodeBody[menuResponse](t, resp)
	require.Len(t, burgers.Items, 1)
	assert.Equal(t, "burger", burgers.Items[0].ID)

	resp = env.do(t, http.MethodGet, "/api/menu/?q=MOZZ", nil)
	found := decodeBody[menuResponse](t, resp)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "pizza", found.Items[0].ID)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/menu/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string][]string](t, resp)
	assert.Equal(t, menu.Categories, body["categories"])
}

func TestCart_AddUpdateRemove(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
	resp = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "burger"})
	v := decodeBody[cartView](t, resp)
	assert.Equal(t, 3, v.Count)
	assert.True(t, decimal.NewFromInt(250).Equal(v.TotalPrice))

	resp = env.do(t, http.MethodPatch, "/api/cart/items/pizza", map[string]int{"quantity": 0})
	v = decodeBody[cartView](t, resp)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "burger", v.Items[0].ItemID)
	assert.True(t, decimal.NewFromInt(50).Equal(v.TotalPrice))

	resp = env.do(t, http.MethodDelete, "/api/cart/items/burger", nil)
	v = decodeBody[cartView](t, resp)
	assert.Empty(t, v.Items)
}

func TestCart_Errors(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "sushi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/cart/items/pizza", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

var validDetails = checkout.DeliveryDetails{PhoneNumber: "+919876543210", Address: "MG Road 12, Bengaluru"}

func TestCheckout_ConfirmPlacesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "burger"})

	resp := env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	focus := decodeBody[checkoutView](t, resp)
	assert.Equal(t, checkout.StateIdle, focus.State)
	assert.True(t, focus.CanConfirm)
	assert.Empty(t, focus.Redirect)

	resp = env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[struct {
		Order struct {
			ID         string          `json:"orderId"`
			TotalPrice decimal.Decimal `json:"totalPrice"`
			Status     order.Status    `json:"status"`
			ShortID    string          `json:"shortId"`
		} `json:"order"`
		Redirect string `json:"redirect"`
	}](t, resp)
	assert.NotEmpty(t, created.Order.ID)
	assert.True(t, decimal.NewFromInt(150).Equal(created.Order.TotalPrice))
	assert.Equal(t, order.StatusPending, created.Order.Status)
	assert.Len(t, created.Order.ShortID, 6)
	assert.Equal(t, string(checkout.RouteMenu), created.Redirect)

	resp = env.do(t, http.MethodGet, "/api/cart/", nil)
	assert.Empty(t, decodeBody[cartView](t, resp).Items)

	stored, err := env.orders.ListByUser(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, validDetails.Address, stored[0].DeliveryAddress)

	// A second confirm on the same screen is rejected.
	resp = env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckout_NewVisitNeedsBlurBeforeFocus(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
	env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	resp := env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "burger"})

	env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	resp = env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/checkout/blur", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	assert.True(t, decodeBody[checkoutView](t, resp).CanConfirm)

	resp = env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCheckout_FocusWithEmptyCartRedirects(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	v := decodeBody[checkoutView](t, resp)
	assert.Equal(t, checkout.RouteMenu, v.Redirect)
	assert.False(t, v.CanConfirm)

	resp = env.do(t, http.MethodPost, "/api/checkout/focus", nil)
	assert.Empty(t, decodeBody[checkoutView](t, resp).Redirect)
}

func TestCheckout_ConfirmErrors(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		e := decodeBody[apiError](t, resp)
		assert.Equal(t, "Cart Empty", e.Title)
		assert.Equal(t, string(checkout.RouteMenu), e.Redirect)
	})

	t.Run("missing details", func(t *testing.T) {
		env := newTestEnv(t)
		env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
		resp := env.do(t, http.MethodPost, "/api/checkout/confirm", checkout.DeliveryDetails{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		e := decodeBody[apiError](t, resp)
		assert.Equal(t, "Missing Details", e.Title)
		assert.Equal(t, string(checkout.RouteDeliveryDetails), e.Redirect)
	})

	t.Run("blank address", func(t *testing.T) {
		env := newTestEnv(t)
		env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
		resp := env.do(t, http.MethodPost, "/api/checkout/confirm", checkout.DeliveryDetails{PhoneNumber: validDetails.PhoneNumber, Address: "   "})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		e := decodeBody[apiError](t, resp)
		assert.Equal(t, checkout.FieldAddress, e.Field)
		assert.Empty(t, e.Redirect)
	})

	t.Run("invalid phone", func(t *testing.T) {
		env := newTestEnv(t)
		env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})
		resp := env.do(t, http.MethodPost, "/api/checkout/confirm", checkout.DeliveryDetails{PhoneNumber: "98765", Address: validDetails.Address})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		e := decodeBody[apiError](t, resp)
		assert.Equal(t, checkout.FieldPhoneNumber, e.Field)
	})

	t.Run("remote failure keeps cart", func(t *testing.T) {
		env := newTestEnv(t, func(d *Deps) {
			d.Orders = failingOrders{MemoryRepository: order.NewMemoryRepository(), err: errors.New("unavailable")}
		})
		env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "pizza"})

		resp := env.do(t, http.MethodPost, "/api/checkout/confirm", validDetails)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
		e := decodeBody[apiError](t, resp)
		assert.Equal(t, "Order Failed", e.Title)
		assert.Contains(t, e.Error, "unavailable")

		resp = env.do(t, http.MethodGet, "/api/checkout/", nil)
		v := decodeBody[checkoutView](t, resp)
		assert.Equal(t, checkout.StateIdle, v.State)
		assert.Equal(t, 1, v.Count)
		assert.NotEmpty(t, v.LastError)
	})
}

func TestCheckout_ValidateNormalizesPhone(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/checkout/validate", checkout.DeliveryDetails{PhoneNumber: "98765 43210", Address: validDetails.Address})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeBody[checkout.DeliveryDetails](t, resp)
	assert.Equal(t, "+919876543210", v.PhoneNumber)

	resp = env.do(t, http.MethodPost, "/api/checkout/validate", checkout.DeliveryDetails{PhoneNumber: "9876543210", Address: "short"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, checkout.FieldAddress, decodeBody[apiError](t, resp).Field)

	for _, phone := range []string{"+9198765432", "+91 98765 432"} {
		resp = env.do(t, http.MethodPost, "/api/checkout/validate", checkout.DeliveryDetails{PhoneNumber: phone, Address: validDetails.Address})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, phone)
		assert.Equal(t, checkout.FieldPhoneNumber, decodeBody[apiError](t, resp).Field)
	}
}

func TestOrders_ListGetDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := order.New(testUser, []order.Item{{ItemID: "pizza", Name: "Margherita", Price: decimal.NewFromInt(100), Quantity: 1}}, decimal.NewFromInt(100), validDetails.PhoneNumber, validDetails.Address)
	require.NoError(t, env.orders.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := order.New(testUser, nil, decimal.NewFromInt(50), validDetails.PhoneNumber, validDetails.Address)
	require.NoError(t, env.orders.Create(ctx, second))

	resp := env.do(t, http.MethodGet, "/api/orders/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[struct {
		Orders []struct {
			ID string `json:"orderId"`
		} `json:"orders"`
	}](t, resp)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, second.ID, list.Orders[0].ID)
	assert.Equal(t, first.ID, list.Orders[1].ID)

	resp = env.do(t, http.MethodGet, "/api/orders/"+first.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeBody[struct {
		ID         string          `json:"orderId"`
		GrandTotal decimal.Decimal `json:"grandTotal"`
	}](t, resp)
	assert.Equal(t, first.ID, detail.ID)
	assert.True(t, decimal.NewFromInt(100).Equal(detail.GrandTotal))

	resp = env.do(t, http.MethodDelete, "/api/orders/"+first.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/orders/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrders_Failures(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Orders = failingOrders{MemoryRepository: order.NewMemoryRepository(), err: errors.New("boom")}
	})

	resp := env.do(t, http.MethodGet, "/api/orders/abc", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to load order details.", decodeBody[apiError](t, resp).Error)

	resp = env.do(t, http.MethodDelete, "/api/orders/abc", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to delete order", decodeBody[apiError](t, resp).Error)
}

func TestResolveAddress(t *testing.T) {
	req := resolveAddressRequest{Latitude: 12.97, Longitude: 77.59, PermissionGranted: true}

	t.Run("resolved", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.do(t, http.MethodPost, "/api/location/address", req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "MG Road 12, Bengaluru, 560001", decodeBody[map[string]string](t, resp)["address"])
	})

	t.Run("permission denied", func(t *testing.T) {
		env := newTestEnv(t)
		denied := req
		denied.PermissionGranted = false
		resp := env.do(t, http.MethodPost, "/api/location/address", denied)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("no address", func(t *testing.T) {
		env := newTestEnv(t, func(d *Deps) { d.Geocoder = fakeGeocoder{} })
		resp := env.do(t, http.MethodPost, "/api/location/address", req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("geocoder failure", func(t *testing.T) {
		env := newTestEnv(t, func(d *Deps) { d.Geocoder = fakeGeocoder{err: errors.New("timeout")} })
		resp := env.do(t, http.MethodPost, "/api/location/address", req)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}
