package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/location"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/session"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Catalog        menu.CatalogSource
	Menu           *menu.Live
	Orders         order.Repository
	Sessions       *session.Manager
	Geocoder       location.Geocoder
	Logger         *log.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type Handler struct {
	catalog  menu.CatalogSource
	menu     *menu.Live
	orders   order.Repository
	sessions *session.Manager
	geocoder location.Geocoder
	logger   *log.Logger
	timeout  time.Duration
	upgrader websocket.Upgrader
}

func NewHandler(d Deps) *Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	origins := d.AllowedOrigins

	return &Handler{
		catalog:  d.Catalog,
		menu:     d.Menu,
		orders:   d.Orders,
		sessions: d.Sessions,
		geocoder: d.Geocoder,
		logger:   d.Logger,
		timeout:  timeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || middleware.AllowsAll(origins) || middleware.OriginAllowed(origin, origins)
			},
		},
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) session(r *http.Request) *session.Session {
	return h.sessions.Get(middleware.GetUserID(r.Context()))
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// waitReady gives a live view a short window to receive its first snapshot.
func waitReady(ctx context.Context, ready <-chan struct{}, max time.Duration) {
	t := time.NewTimer(max)
	defer t.Stop()
	select {
	case <-ready:
	case <-t.C:
	case <-ctx.Done():
	}
}

// apiError is the body of every non-2xx response.
type apiError struct {
	Error         string `json:"error"`
	Title         string `json:"title,omitempty"`
	Field         string `json:"field,omitempty"`
	Redirect      string `json:"redirect,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, e apiError) {
	e.CorrelationID = middleware.GetCorrelationID(r.Context())
	writeJSON(w, status, e)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
