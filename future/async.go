package future

import (
	"context"
	"runtime/debug"

	"github.com/spigot-labs/spigot/errors"
)

// Go runs f on a new goroutine and returns a future for its result. A panic
// in f fails the future with an error wrapping errors.ErrPanic, stack trace
// included, instead of crashing the process.
func Go[T any](f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		defer func() {
			if err := errors.FromPanic(recover(), debug.Stack()); err != nil {
				promise.Failure(err)
			}
		}()

		promise.Complete(f())
	}()

	return fut
}

// GoContext is Go for context-aware functions. The function receives a child
// of ctx that is canceled when the work finishes, and panic capture works as
// in Go. Cancellation of ctx does not complete the future by itself; f is
// expected to notice and return ctx.Err().
func GoContext[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	fut, promise := New[T]()

	workCtx, cancel := context.WithCancel(ctx)
	promise.onCancel = append(promise.onCancel, cancel)

	go func() {
		defer cancel()

		defer func() {
			if err := errors.FromPanic(recover(), debug.Stack()); err != nil {
				promise.Failure(err)
			}
		}()

		promise.Complete(f(workCtx))
	}()

	return fut
}
