// Package lazy defers a computation until its result is first needed.
package lazy

import (
	"sync"
	"sync/atomic"
)

// Of holds a value computed at most once, on first Get. The zero value is a
// lazy zero of T; useful instances come from New.
type Of[T any] struct {
	init  func() T
	once  sync.Once
	value T
	ready atomic.Bool
}

// New wraps f as a lazy value. f runs on the first Get, never earlier, and
// at most once.
func New[T any](f func() T) *Of[T] {
	return &Of[T]{init: f}
}

// Get returns the value, computing it on first use. When the initializer
// panics the panic propagates and the next Get retries.
func (l *Of[T]) Get() T { //nolint:ireturn
	defer func() {
		if r := recover(); r != nil {
			l.once = sync.Once{}

			panic(r)
		}
	}()

	l.once.Do(func() {
		if l.init != nil {
			l.value = l.init()
			l.ready.Store(true)
			l.init = nil
		}
	})

	return l.value
}

// Set overrides the value and disarms the initializer. Meant for tests and
// for values that occasionally arrive from outside instead of being
// computed.
func (l *Of[T]) Set(value T) {
	l.init = nil
	l.value = value
	l.ready.Store(true)
}

// Ready reports whether the value has been computed or Set.
func (l *Of[T]) Ready() bool {
	return l.ready.Load()
}
