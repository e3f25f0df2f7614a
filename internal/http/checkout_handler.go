package httpapi

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/session"
)

type checkoutView struct {
	State      checkout.State  `json:"state"`
	CanConfirm bool            `json:"canConfirm"`
	Redirect   checkout.Route  `json:"redirect,omitempty"`
	LastError  string          `json:"lastError,omitempty"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Count      int             `json:"count"`
}

func newCheckoutView(s *session.Session) checkoutView {
	v := checkoutView{
		State:      s.Checkout.State(),
		CanConfirm: s.Checkout.CanConfirm(),
		Redirect:   s.TakeRedirect(),
		TotalPrice: s.Cart.TotalPrice(),
		Count:      s.Cart.Count(),
	}
	if err := s.Checkout.LastError(); err != nil {
		v.LastError = userMessage(err)
	}
	return v
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCheckoutView(h.session(r)))
}

// FocusCheckout runs the entry guard. It starts a new visit only after
// BlurCheckout; see the route comment in NewRouter.
func (h *Handler) FocusCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Checkout.Focus()
	writeJSON(w, http.StatusOK, newCheckoutView(s))
}

func (h *Handler) BlurCheckout(w http.ResponseWriter, r *http.Request) {
	h.session(r).Checkout.Blur()
	w.WriteHeader(http.StatusNoContent)
}

// ValidateDelivery backs the delivery form: the typed phone number is
// normalised to the +91 form before validation.
func (h *Handler) ValidateDelivery(w http.ResponseWriter, r *http.Request) {
	var details checkout.DeliveryDetails
	if err := decodeJSON(w, r, &details); err != nil {
		writeError(w, r, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}
	details.PhoneNumber = checkout.NormalizePhone(details.PhoneNumber)

	if err := details.Validate(); err != nil {
		h.writeCheckoutError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type confirmResponse struct {
	Order    orderView      `json:"order"`
	Redirect checkout.Route `json:"redirect,omitempty"`
}

func (h *Handler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	var details checkout.DeliveryDetails
	if err := decodeJSON(w, r, &details); err != nil {
		writeError(w, r, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	s := h.session(r)
	o, err := s.Checkout.Confirm(ctx, details)
	redirect := s.TakeRedirect()
	if err != nil {
		h.writeCheckoutError(w, r, err, redirect)
		return
	}

	writeJSON(w, http.StatusCreated, confirmResponse{Order: newOrderView(*o), Redirect: redirect})
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error, redirect checkout.Route) {
	e := apiError{Error: userMessage(err), Redirect: string(redirect)}

	var (
		verr *checkout.ValidationError
		serr *checkout.SubmitError
	)
	switch {
	case errors.As(err, &verr):
		e.Title, e.Field = verr.Title, verr.Field
		writeError(w, r, http.StatusUnprocessableEntity, e)
	case errors.As(err, &serr):
		e.Title = "Order Failed"
		writeError(w, r, http.StatusBadGateway, e)
	case errors.Is(err, checkout.ErrCartEmpty):
		e.Title = "Cart Empty"
		writeError(w, r, http.StatusBadRequest, e)
	case errors.Is(err, checkout.ErrMissingDetails):
		e.Title = "Missing Details"
		writeError(w, r, http.StatusBadRequest, e)
	case errors.Is(err, checkout.ErrSubmissionInFlight), errors.Is(err, checkout.ErrAlreadyNavigated):
		writeError(w, r, http.StatusConflict, e)
	default:
		h.logf("checkout: %v", err)
		writeError(w, r, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

// userMessage turns a domain error into the text shown in the app.
func userMessage(err error) string {
	var (
		verr *checkout.ValidationError
		serr *checkout.SubmitError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &serr):
		return serr.Message()
	case errors.Is(err, checkout.ErrCartEmpty):
		return "Please add items to your cart before placing an order."
	case errors.Is(err, checkout.ErrMissingDetails):
		return "Please go back and enter your delivery details."
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		return "Your order is already being placed."
	case errors.Is(err, checkout.ErrAlreadyNavigated):
		return "This checkout has already been completed."
	case errors.Is(err, order.ErrMissingID):
		return "Order ID is missing."
	case errors.Is(err, order.ErrNotFound):
		return "Order not found."
	case errors.Is(err, order.ErrLoad):
		return "Failed to load order details."
	case errors.Is(err, order.ErrDelete):
		return "Failed to delete order"
	}
	return err.Error()
}
