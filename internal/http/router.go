package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/middleware"
)

// RouterConfig carries the middleware settings of the router.
type RouterConfig struct {
	DemoUserID     string
	AllowedOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Recover(h.logger))
	r.Use(chimw.Logger)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.UserID(cfg.DemoUserID))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.ListMenu)
			r.Get("/categories", h.ListCategories)
			r.Get("/ws", h.MenuFeed)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{itemId}", h.UpdateCartItem)
			r.Delete("/items/{itemId}", h.RemoveCartItem)
		})

		// The navigation guard is one-shot per screen visit: once checkout has
		// redirected (including after a placed order), the client must call
		// /blur before /focus to start a new visit. A focus without a blur keeps
		// the guard set and /confirm answers 409.
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.GetCheckout)
			r.Post("/focus", h.FocusCheckout)
			r.Post("/blur", h.BlurCheckout)
			r.Post("/validate", h.ValidateDelivery)
			r.Post("/confirm", h.ConfirmCheckout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Get("/ws", h.OrdersFeed)
			r.Get("/{orderId}", h.GetOrder)
			r.Delete("/{orderId}", h.DeleteOrder)
		})

		r.Post("/location/address", h.ResolveAddress)
	})

	return r
}
