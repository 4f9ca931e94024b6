// Package future provides write-once containers for the results of
// asynchronous work. A Future[T] is the read side: callers wait for, poll,
// or subscribe to an outcome produced elsewhere. The matching Promise[T] is
// the write side; Go and GoContext bundle the two around a function call.
//
// A future completes exactly once. Completion is broadcast by closing a
// channel, so any number of goroutines can Wait on the same future, and
// every registered callback fires exactly once whether it was added before
// or after completion.
package future

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/spigot-labs/spigot/try"
)

// Future is the read side of an asynchronous computation. The zero value is
// not usable; obtain instances from New, NewError, Go, or GoContext.
//
// All methods are safe for concurrent use.
type Future[T any] struct {
	once        sync.Once
	result      try.Try[T]
	resultReady chan struct{}

	// mu guards the callback lists against concurrent registration and the
	// flush that happens at completion.
	mu               sync.Mutex
	successCallbacks []func(T)
	errorCallbacks   []func(error)
	resultCallbacks  []func(try.Try[T])
}

// New creates an unfulfilled future along with the promise that completes
// it. The split keeps completion rights explicit: hand the future to
// consumers, keep the promise with the producer.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	return fut, &Promise[T]{future: fut, canceled: atomic.NewBool(false)}
}

// NewError creates a future that is already failed with err.
func NewError[T any](err error) *Future[T] {
	fut, promise := New[T]()
	promise.Failure(err)

	return fut
}

// NewValue creates a future that is already completed with value.
func NewValue[T any](value T) *Future[T] {
	fut, promise := New[T]()
	promise.Success(value)

	return fut
}

// Wait blocks until the future completes or ctx ends, whichever comes first.
// A dead context returns ctx.Err() without consuming anything; a later Wait
// with a live context still sees the result. On failure the zero value of T
// is returned alongside the error.
func (f *Future[T]) Wait(ctx context.Context) (T, error) { //nolint:ireturn
	select {
	case <-f.resultReady:
		return f.result.Get()
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// IsCompleted reports whether the future already holds a result. It never
// blocks.
func (f *Future[T]) IsCompleted() bool {
	select {
	case <-f.resultReady:
		return true
	default:
		return false
	}
}

// OnSuccess registers a callback receiving the value if the future completes
// successfully. A callback registered after successful completion fires
// immediately.
//
// Callbacks run on their own goroutines and may block freely; a panic inside
// one is recovered and logged, never propagated.
func (f *Future[T]) OnSuccess(callback func(T)) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.successCallbacks = append(f.successCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.result.IsSuccess() {
		invokeCallback("OnSuccess", callback, f.result.Value)
	}
}

// OnError registers a callback receiving the error if the future fails. A
// callback registered after failure fires immediately. Execution follows the
// OnSuccess rules.
func (f *Future[T]) OnError(callback func(error)) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.errorCallbacks = append(f.errorCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.result.IsFailure() {
		invokeCallback("OnError", callback, f.result.Error)
	}
}

// OnResult registers a callback receiving the outcome, success or failure,
// as a try.Try. A callback registered after completion fires immediately.
// Execution follows the OnSuccess rules.
func (f *Future[T]) OnResult(callback func(try.Try[T])) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.resultCallbacks = append(f.resultCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	invokeCallback("OnResult", callback, f.result)
}
