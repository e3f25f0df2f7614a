package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/cart"
)

type cartLineView struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartView struct {
	Items      []cartLineView  `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Count      int             `json:"count"`
}

func newCartView(lines []cart.Line) cartView {
	v := cartView{Items: make([]cartLineView, 0, len(lines)), TotalPrice: cart.Total(lines)}
	for _, l := range lines {
		v.Items = append(v.Items, cartLineView{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			ImageURL: l.Item.ImageURL,
			Price:    l.Item.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
		v.Count += l.Quantity
	}
	return v
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartView(h.session(r).Cart.Lines()))
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.ItemID) == "" {
		writeError(w, r, http.StatusBadRequest, apiError{Error: "itemId is required"})
		return
	}

	item, ok := h.menu.Lookup(req.ItemID)
	if !ok {
		writeError(w, r, http.StatusNotFound, apiError{Error: "menu item not found"})
		return
	}

	s := h.session(r)
	s.Cart.AddItem(item)
	writeJSON(w, http.StatusOK, newCartView(s.Cart.Lines()))
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, apiError{Error: "quantity is required"})
		return
	}

	s := h.session(r)
	s.Cart.UpdateQuantity(chi.URLParam(r, "itemId"), *req.Quantity)
	writeJSON(w, http.StatusOK, newCartView(s.Cart.Lines()))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Cart.RemoveItem(chi.URLParam(r, "itemId"))
	writeJSON(w, http.StatusOK, newCartView(s.Cart.Lines()))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Cart.Clear()
	writeJSON(w, http.StatusOK, newCartView(s.Cart.Lines()))
}
