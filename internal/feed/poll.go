package feed

import (
	"context"
	"reflect"
	"time"
)

// Poll turns a one-shot query into a subscription. The first result is always
// emitted; later results only when they differ from the previous one. Fetch
// errors are emitted and polling continues on the next tick.
func Poll[T any](ctx context.Context, every time.Duration, fetch func(context.Context) ([]T, error)) *Subscription[T] {
	return Start(ctx, func(ctx context.Context, emit func(Event[T]) bool) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		var (
			last []T
			seen bool
		)
		for {
			items, err := fetch(ctx)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				if !emit(Event[T]{Err: err}) {
					return
				}
				seen = false
			case !seen || !reflect.DeepEqual(items, last):
				last, seen = items, true
				if !emit(Event[T]{Items: items}) {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	})
}
