package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// flakySource fails its first subscription with one error and then serves
// items until cancelled.
type flakySource struct {
	calls atomic.Int32
}

func (s *flakySource) Subscribe(ctx context.Context) *Subscription[int] {
	n := s.calls.Add(1)
	return Start(ctx, func(ctx context.Context, emit func(Event[int]) bool) {
		if n == 1 {
			emit(Event[int]{Err: errors.New("listen: unavailable")})
			return
		}
		if !emit(Event[int]{Items: []int{int(n)}}) {
			return
		}
		<-ctx.Done()
	})
}

func TestResubscribe_ReopensAfterSourceEnds(t *testing.T) {
	src := &flakySource{}
	sub := Resubscribe(context.Background(), 10*time.Millisecond, 50*time.Millisecond, src.Subscribe)
	defer sub.Stop()

	first := <-sub.Events()
	require.Error(t, first.Err)

	select {
	case ev := <-sub.Events():
		require.NoError(t, ev.Err)
		require.Equal(t, []int{2}, ev.Items)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after the source recovered")
	}
	require.Equal(t, int32(2), src.calls.Load())
}

func TestResubscribe_StopEndsInnerSubscription(t *testing.T) {
	var innerDone chan struct{}
	sub := Resubscribe(context.Background(), time.Millisecond, time.Millisecond, func(ctx context.Context) *Subscription[int] {
		inner := Start(ctx, func(ctx context.Context, emit func(Event[int]) bool) {
			if emit(Event[int]{Items: []int{1}}) {
				<-ctx.Done()
			}
		})
		innerDone = make(chan struct{})
		go func(done chan struct{}) {
			<-inner.Done()
			close(done)
		}(innerDone)
		return inner
	})

	<-sub.Events()
	done := innerDone
	sub.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("inner subscription still running after Stop")
	}
	_, ok := <-sub.Events()
	require.False(t, ok)
}
