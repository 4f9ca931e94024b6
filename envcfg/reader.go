//nolint:ireturn
package envcfg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	// ErrBadValue indicates the variable was set but could not be parsed.
	ErrBadValue = errors.New("malformed environment variable")
	// ErrMissing indicates the variable was not set at all.
	ErrMissing = errors.New("missing environment variable")
)

// Reader represents a value read from an environment variable. It carries
// the outcome of the lookup (present or not, parse error or not) so that
// callers can decide how strict to be: Value for explicit handling,
// ValueOrFatal for boot-time requirements, WithDefault for soft settings.
type Reader[T any] struct {
	key     string
	present bool
	err     error

	value T
}

// NewReader builds a Reader from raw parts. Useful as a Fallback source or
// when the value comes from somewhere other than the environment.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	return Reader[T]{
		key:     key,
		present: present,
		err:     err,
		value:   value,
	}
}

// Key returns the environment variable name this Reader was built from.
func (e Reader[T]) Key() string {
	return e.key
}

// Value returns the parsed value, or an error if the variable was missing
// or malformed.
func (e Reader[T]) Value() (T, error) {
	if e.err != nil {
		return e.value, fmt.Errorf("%w %s: %w (given value is %v)", ErrBadValue, e.key, e.err, e.value)
	}

	if !e.present {
		return e.value, fmt.Errorf("%w %s", ErrMissing, e.key)
	}

	return e.value, nil
}

// ValueOrPanic returns the parsed value, panicking if the variable was
// missing or malformed.
func (e Reader[T]) ValueOrPanic() T {
	value, err := e.Value()
	if err != nil {
		panic(err)
	}

	return value
}

// ValueOrFatal returns the parsed value, or exits the process if the
// variable was missing or malformed. Intended for boot-time configuration
// where running without the value makes no sense.
func (e Reader[T]) ValueOrFatal() T {
	value, err := e.Value()
	if err != nil {
		slog.Error("error reading environment variable", "key", e.key, "error", err)
		os.Exit(1)
	}

	return value
}

// ValueOrElse returns the parsed value, or the given fallback if the
// variable was missing or malformed. A malformed value is logged before
// falling back.
func (e Reader[T]) ValueOrElse(fallback T) T {
	if e.present && e.err == nil {
		return e.value
	}

	if e.err != nil {
		slog.Warn("error reading environment variable, using fallback value",
			"key", e.key, "value", e.value, "error", e.err, "fallback", fallback)
	}

	return fallback
}

// HasValue returns true if the variable was set and parsed cleanly.
func (e Reader[T]) HasValue() bool {
	return e.present && e.err == nil
}

// HasError returns true if parsing the variable failed.
func (e Reader[T]) HasError() bool {
	return e.err != nil
}

// Error returns the parse error, if any.
func (e Reader[T]) Error() error {
	return e.err
}

// String renders the Reader for logs.
func (e Reader[T]) String() string {
	if e.present && e.err == nil {
		return fmt.Sprintf("%s=%v", e.key, e.value)
	}

	if e.err != nil {
		return fmt.Sprintf("%s=<error: %v>", e.key, e.err)
	}

	return e.key + "=<not set>"
}

// WithErrorIfMissing returns a Reader that carries the given error when the
// variable was not set. Readers that already have a value or an error are
// returned unchanged.
func (e Reader[T]) WithErrorIfMissing(err error) Reader[T] {
	if e.present || e.err != nil {
		return e
	}

	return Reader[T]{
		key:     e.key,
		present: false,
		err:     err,
	}
}

// WithDefault returns a Reader holding the given value when the variable
// was not set. Readers that already have a value are returned unchanged.
func (e Reader[T]) WithDefault(value T) Reader[T] {
	if e.present {
		return e
	}

	return Reader[T]{
		key:     e.key,
		present: true,
		err:     e.err,
		value:   value,
	}
}

// WithFallback returns the given Reader when this one has no value.
func (e Reader[T]) WithFallback(fallback Reader[T]) Reader[T] {
	if e.present {
		return e
	}

	return fallback
}

// Map returns a Reader with the value transformed by the given function.
// The package-level Map can also change the value's type.
func (e Reader[T]) Map(f func(T) (T, error)) Reader[T] {
	return Map(e, f)
}

// Map returns a Reader with the value transformed by the given function.
// Missing values and prior errors pass through untouched.
func Map[A any, B any](env Reader[A], f func(A) (B, error)) Reader[B] {
	if !env.present || env.err != nil {
		return Reader[B]{
			key:     env.key,
			present: env.present,
			err:     env.err,
		}
	}

	val, err := f(env.value)

	return Reader[B]{
		key:     env.key,
		present: true,
		err:     err,
		value:   val,
	}
}
