package checkout

import (
	"context"
	"log"
	"sync"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

// Cart is the part of cart.Store the workflow needs.
type Cart interface {
	Lines() []cart.Line
	IsEmpty() bool
	Clear()
}

// OrderPlacedPublisher announces a placed order. Failures never affect the
// checkout outcome.
type OrderPlacedPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order) error
}

type Option func(*Workflow)

func WithPublisher(p OrderPlacedPublisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

// WithTransitionHook registers fn to observe every state change. fn runs with
// the workflow lock held and must not call back into the workflow.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(w *Workflow) { w.onTransition = fn }
}

// Workflow drives one checkout screen: entry guard, validation and a single
// order write. The screen leaves (navigates) at most once per fresh focus.
type Workflow struct {
	cart   Cart
	sink   order.Sink
	nav    Navigator
	userID string

	publisher    OrderPlacedPublisher
	logger       *log.Logger
	onTransition func(from, to State)

	mu        sync.Mutex
	state     State
	focused   bool
	navigated bool
	lastErr   error
}

func NewWorkflow(c Cart, sink order.Sink, nav Navigator, userID string, opts ...Option) *Workflow {
	w := &Workflow{
		cart:   c,
		sink:   sink,
		nav:    nav,
		userID: userID,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) transitionLocked(to State) {
	from := w.state
	w.state = to
	if w.onTransition != nil && from != to {
		w.onTransition(from, to)
	}
}

// leaveLocked claims the one-shot navigation. It reports false when the
// screen already navigated during this focus.
func (w *Workflow) leaveLocked() bool {
	if w.navigated {
		return false
	}
	w.navigated = true
	return true
}

// Focus is called whenever the checkout screen gains focus. A focus after Blur
// re-arms the navigation guard; repeated focus events without a blur do not.
// It reports whether the user was redirected to the menu.
func (w *Workflow) Focus() bool {
	w.mu.Lock()
	if !w.focused {
		w.focused = true
		w.navigated = false
	}
	if w.state != StateSubmitting {
		w.transitionLocked(StateIdle)
	}

	redirect := w.state != StateSubmitting && w.cart.IsEmpty() && w.leaveLocked()
	w.mu.Unlock()

	if redirect {
		w.nav.Navigate(RouteMenu)
	}
	return redirect
}

// Blur marks the screen as left.
func (w *Workflow) Blur() {
	w.mu.Lock()
	w.focused = false
	w.mu.Unlock()
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CanConfirm reports whether the confirm action should be enabled.
func (w *Workflow) CanConfirm() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state != StateSubmitting && !w.navigated && !w.cart.IsEmpty()
}

// LastError is the validation or submit error of the last Confirm, if any.
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Confirm validates details and writes one order built from a snapshot of the
// cart. On success the cart is cleared and the user is sent to the menu. On
// failure the cart is left as it was and the workflow is ready to retry.
func (w *Workflow) Confirm(ctx context.Context, details DeliveryDetails) (*order.Order, error) {
	w.mu.Lock()
	switch {
	case w.navigated:
		w.mu.Unlock()
		return nil, ErrAlreadyNavigated
	case w.state == StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	if w.cart.IsEmpty() {
		leave := w.leaveLocked()
		w.mu.Unlock()
		if leave {
			w.nav.Navigate(RouteMenu)
		}
		return nil, ErrCartEmpty
	}
	if !details.Present() {
		leave := w.leaveLocked()
		w.mu.Unlock()
		if leave {
			w.nav.Navigate(RouteDeliveryDetails)
		}
		return nil, ErrMissingDetails
	}

	w.transitionLocked(StateValidating)
	if err := details.Validate(); err != nil {
		w.lastErr = err
		w.transitionLocked(StateIdle)
		w.mu.Unlock()
		return nil, err
	}

	w.transitionLocked(StateSubmitting)
	o := buildOrder(w.userID, w.cart.Lines(), details)
	w.mu.Unlock()

	err := w.sink.Create(ctx, o)

	w.mu.Lock()
	if err != nil {
		w.lastErr = &SubmitError{Err: err}
		w.transitionLocked(StateFailed)
		w.transitionLocked(StateIdle)
		failure := w.lastErr
		w.mu.Unlock()

		w.logf("place order for %s: %v", w.userID, err)
		return nil, failure
	}

	w.lastErr = nil
	w.transitionLocked(StateSucceeded)
	leave := w.leaveLocked()
	w.mu.Unlock()

	w.cart.Clear()
	if leave {
		w.nav.Navigate(RouteMenu)
	}
	w.publish(ctx, o)
	return o, nil
}

func (w *Workflow) publish(ctx context.Context, o *order.Order) {
	if w.publisher == nil {
		return
	}
	if err := w.publisher.PublishOrderPlaced(ctx, o); err != nil {
		w.logf("publish order placed %s: %v", o.ID, err)
	}
}

func (w *Workflow) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf(format, args...)
	}
}

func buildOrder(userID string, lines []cart.Line, details DeliveryDetails) *order.Order {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			Price:    l.Item.Price,
			Quantity: l.Quantity,
		})
	}
	return order.New(userID, items, cart.Total(lines), details.PhoneNumber, details.Address)
}
