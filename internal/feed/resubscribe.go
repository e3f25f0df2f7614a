package feed

import (
	"context"
	"time"
)

const (
	DefaultMinBackoff = 500 * time.Millisecond
	DefaultMaxBackoff = 30 * time.Second
)

// Resubscribe keeps a feed alive for long-lived views. Whenever the
// subscription returned by subscribe ends while ctx is still live, a new one
// is opened after a backoff that doubles up to maxWait and drops back to minWait
// after a good snapshot. Events from every inner subscription are forwarded
// unchanged.
func Resubscribe[T any](ctx context.Context, minWait, maxWait time.Duration, subscribe func(context.Context) *Subscription[T]) *Subscription[T] {
	if minWait <= 0 {
		minWait = DefaultMinBackoff
	}
	if maxWait < minWait {
		maxWait = minWait
	}

	return Start(ctx, func(ctx context.Context, emit func(Event[T]) bool) {
		wait := minWait
		for {
			inner := subscribe(ctx)
			for ev := range inner.Events() {
				if ev.Err == nil {
					wait = minWait
				}
				if !emit(ev) {
					inner.Stop()
					return
				}
			}
			inner.Stop()

			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}

			if wait *= 2; wait > maxWait {
				wait = maxWait
			}
		}
	})
}
