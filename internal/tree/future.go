package tree

import "context"

// Future is the pending result of an asynchronous [Tree] operation. Exactly
// one result is published per [Future]; it stays retrievable after the
// operation has completed, so a late error is never lost.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// goFuture runs fn in its own goroutine and returns the [Future] of its
// result.
func goFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{
		done: make(chan struct{}),
	}

	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()

	return f
}

// Done returns a channel that is closed once the operation has completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation has completed and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done

	return f.value, f.err
}

// Await is like [Future.Wait], but gives up waiting once the context is
// done. Giving up does not stop the operation, which keeps running to its
// completion; its result can still be collected with [Future.Wait].
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
