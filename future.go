package polaris

import "context"

// FutureState is the observable state of a Future.
type FutureState uint8

const (
	FuturePending FutureState = iota
	FutureReady
	FutureFailed
)

func (s FutureState) String() string {
	switch s {
	case FuturePending:
		return "pending"
	case FutureReady:
		return "ready"
	case FutureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Future is the result of a one-shot background load. The render loop polls
// it once per tick and only ever sees a completed value or nothing.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async runs fn on its own goroutine and returns a Future for its result.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Resolved returns a Future that is already ready with v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)
	return f
}

// Rejected returns a Future that has already failed with err.
func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Poll reports the current state without blocking. The value and error are
// only meaningful once the state is not FuturePending.
func (f *Future[T]) Poll() (T, FutureState, error) {
	select {
	case <-f.done:
		if f.err != nil {
			var zero T
			return zero, FutureFailed, f.err
		}
		return f.val, FutureReady, nil
	default:
		var zero T
		return zero, FuturePending, nil
	}
}

// Await blocks until the future completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
