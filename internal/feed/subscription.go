package feed

import (
	"context"
	"sync"
)

// Event is one snapshot delivered by a subscription. Err is set when the
// underlying source failed to produce a snapshot.
type Event[T any] struct {
	Items []T
	Err   error
}

// Subscription is a cancellable handle on a stream of snapshots.
type Subscription[T any] struct {
	events chan Event[T]
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Pump produces snapshots until ctx is done. emit reports false once the
// subscription has been stopped; the pump must return promptly after that.
type Pump[T any] func(ctx context.Context, emit func(Event[T]) bool)

// Start runs pump in its own goroutine. The subscription ends when pump
// returns, when ctx is cancelled or when Stop is called.
func Start[T any](ctx context.Context, pump Pump[T]) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		events: make(chan Event[T]),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer close(s.events)
		defer cancel()

		pump(ctx, func(ev Event[T]) bool {
			select {
			case s.events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	return s
}

// Events is closed when the subscription ends.
func (s *Subscription[T]) Events() <-chan Event[T] {
	return s.events
}

// Done is closed once the producer goroutine has exited.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Stop cancels the subscription and waits for the producer to exit. Safe to
// call more than once.
func (s *Subscription[T]) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}
