package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

const historyLoadFailed = "Failed to load order history"

type orderView struct {
	order.Order
	ShortID     string          `json:"shortId"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

func newOrderView(o order.Order) orderView {
	return orderView{
		Order:       o,
		ShortID:     o.ShortID(),
		DeliveryFee: o.DeliveryFee(),
		GrandTotal:  o.GrandTotal(),
	}
}

func newOrderViews(orders []order.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderView(o))
	}
	return out
}

type historyResponse struct {
	Orders  []orderView `json:"orders"`
	Loading bool        `json:"loading"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	history := h.session(r).History()
	waitReady(r.Context(), history.Ready(), 2*time.Second)

	orders, loaded, err := history.Orders()
	if err != nil {
		writeError(w, r, http.StatusBadGateway, apiError{Error: historyLoadFailed})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Orders: newOrderViews(orders), Loading: !loaded})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := order.Detail(ctx, h.orders, chi.URLParam(r, "orderId"))
	switch {
	case errors.Is(err, order.ErrMissingID):
		writeError(w, r, http.StatusBadRequest, apiError{Error: userMessage(err)})
	case errors.Is(err, order.ErrNotFound):
		writeError(w, r, http.StatusNotFound, apiError{Error: userMessage(err), Redirect: "/order-history"})
	case err != nil:
		h.logf("get order: %v", err)
		writeError(w, r, http.StatusBadGateway, apiError{Error: userMessage(err)})
	default:
		writeJSON(w, http.StatusOK, newOrderView(*o))
	}
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	if err := h.session(r).History().Delete(ctx, chi.URLParam(r, "orderId")); err != nil {
		writeError(w, r, http.StatusBadGateway, apiError{Error: userMessage(err)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
