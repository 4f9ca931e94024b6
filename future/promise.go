package future

import (
	"context"

	"go.uber.org/atomic"

	"github.com/spigot-labs/spigot/try"
)

// Promise is the write side of a Future. Completion is idempotent: the first
// of Success, Failure, Complete, or Cancel wins and every later call is a
// no-op. Safe for concurrent use from any goroutine.
//
// The promise holds a reference to its future, not the other way around, so
// futures can be passed around without exposing the ability to complete
// them.
type Promise[T any] struct {
	future   *Future[T]
	canceled *atomic.Bool

	// onCancel hooks are registered at construction time only, before the
	// promise is shared; Cancel runs them once.
	onCancel []func()
}

// Success completes the future with value.
func (p *Promise[T]) Success(value T) {
	p.fulfill(try.Success(value))
}

// Failure completes the future with err.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(try.Failure[T](err))
}

// Complete completes the future from a conventional (value, error) pair:
// Failure when err is non-nil, Success otherwise.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)

		return
	}

	p.Success(value)
}

// Cancel abandons the computation. It runs the construction-time cancel
// hooks (for GoContext that cancels the context the work runs under) and
// fails the future with context.Canceled. Only the first Cancel acts, and it
// loses to any completion that already happened.
func (p *Promise[T]) Cancel() {
	if p.canceled.CompareAndSwap(false, true) {
		for _, cancel := range p.onCancel {
			cancel()
		}

		p.Failure(context.Canceled)
	}
}

// IsCancelled reports whether Cancel has been called. It stays true forever
// once set, even when Cancel lost the completion race.
func (p *Promise[T]) IsCancelled() bool {
	return p.canceled.Load()
}

// fulfill stores the result, broadcasts completion, and flushes the
// callbacks registered so far. sync.Once makes every later call a no-op.
func (p *Promise[T]) fulfill(result try.Try[T]) {
	p.future.once.Do(func() {
		fut := p.future
		fut.result = result

		// Closing the channel under the lock pins the callback lists:
		// everything registered before this point is collected here,
		// everything after sees the closed channel and self-invokes.
		fut.mu.Lock()

		close(fut.resultReady)

		success := fut.successCallbacks
		failure := fut.errorCallbacks
		results := fut.resultCallbacks

		fut.successCallbacks = nil
		fut.errorCallbacks = nil
		fut.resultCallbacks = nil

		fut.mu.Unlock()

		for _, callback := range results {
			invokeCallback("OnResult", callback, result)
		}

		if result.IsSuccess() {
			for _, callback := range success {
				invokeCallback("OnSuccess", callback, result.Value)
			}
		} else {
			for _, callback := range failure {
				invokeCallback("OnError", callback, result.Error)
			}
		}
	})
}
