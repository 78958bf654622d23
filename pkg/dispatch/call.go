package dispatch

import (
	"context"

	"github.com/matzehuels/evekit/pkg/errors"
)

// Call is the handle of a non-blocking dispatch. Its value and error are set
// exactly once, before Done is closed.
type Call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newCall[T any]() *Call[T] {
	return &Call[T]{done: make(chan struct{})}
}

// Resolved returns a call that is already complete with v and err.
// API clients use it to report argument errors through the async form.
func Resolved[T any](v T, err error) *Call[T] {
	c := newCall[T]()
	c.complete(v, err)
	return c
}

func (c *Call[T]) complete(v T, err error) {
	c.val, c.err = v, err
	close(c.done)
}

// Done is closed when the call completes.
func (c *Call[T]) Done() <-chan struct{} { return c.done }

// Await waits for the call or for ctx, whichever comes first. Giving up on
// the wait does not cancel the dispatch itself.
func (c *Call[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.val, c.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "await dispatch")
	}
}

// Result blocks until the call completes and returns its outcome.
func (c *Call[T]) Result() (T, error) {
	<-c.done
	return c.val, c.err
}

// Then returns a call completing with fn applied to this call's value.
// Errors pass through unchanged and fn is not called.
func Then[T, U any](c *Call[T], fn func(T) (U, error)) *Call[U] {
	next := newCall[U]()
	go func() {
		v, err := c.Result()
		if err != nil {
			var zero U
			next.complete(zero, err)
			return
		}
		next.complete(fn(v))
	}()
	return next
}
