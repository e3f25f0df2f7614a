package session

import (
	"context"
	"log"
	"sync"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

// redirects collects the navigations a workflow call produced so the HTTP
// response can tell the app where to go.
type redirects struct {
	mu      sync.Mutex
	pending []checkout.Route
}

func (r *redirects) Navigate(route checkout.Route) {
	r.mu.Lock()
	r.pending = append(r.pending, route)
	r.mu.Unlock()
}

func (r *redirects) take() checkout.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return ""
	}
	last := r.pending[len(r.pending)-1]
	r.pending = nil
	return last
}

// Session is the client state of one user: cart, checkout screen and order
// history.
type Session struct {
	UserID   string
	Cart     *cart.Store
	Checkout *checkout.Workflow

	nav     *redirects
	manager *Manager

	mu      sync.Mutex
	history *order.History
}

// TakeRedirect returns the route the last workflow call navigated to, if any,
// and forgets it.
func (s *Session) TakeRedirect() checkout.Route {
	return s.nav.take()
}

// History starts the user's order subscription on first use.
func (s *Session) History() *order.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		s.history = order.WatchHistory(s.manager.ctx, s.manager.orders, s.UserID, s.manager.logger)
	}
	return s.history
}

func (s *Session) close() {
	s.mu.Lock()
	h := s.history
	s.mu.Unlock()
	if h != nil {
		h.Close()
	}
}

// Manager owns every session for the lifetime of the process.
type Manager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	orders    order.Repository
	publisher checkout.OrderPlacedPublisher
	logger    *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(ctx context.Context, orders order.Repository, publisher checkout.OrderPlacedPublisher, logger *log.Logger) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		ctx:       ctx,
		cancel:    cancel,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		sessions:  map[string]*Session{},
	}
}

func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	nav := &redirects{}
	store := cart.NewStore()
	opts := []checkout.Option{checkout.WithLogger(m.logger)}
	if m.publisher != nil {
		opts = append(opts, checkout.WithPublisher(m.publisher))
	}

	s := &Session{
		UserID:   userID,
		Cart:     store,
		Checkout: checkout.NewWorkflow(store, m.orders, nav, userID, opts...),
		nav:      nav,
		manager:  m,
	}
	m.sessions[userID] = s
	return s
}

// Close stops every history subscription.
func (m *Manager) Close() {
	m.cancel()

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
