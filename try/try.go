// Package try models a computation outcome as a value-or-error pair, used by
// the future package to carry results across goroutines.
package try

// Try holds either a successful value or the error that prevented it.
type Try[A any] struct {
	Value A
	Error error
}

// Success wraps a value in a successful Try.
func Success[A any](value A) Try[A] {
	return Try[A]{Value: value}
}

// Failure wraps an error in a failed Try.
func Failure[A any](err error) Try[A] {
	return Try[A]{Error: err}
}

// New builds a Try straight from a (value, error) return pair.
func New[A any](value A, err error) Try[A] {
	return Try[A]{Value: value, Error: err}
}

// IsSuccess returns true when no error is held.
func (t Try[A]) IsSuccess() bool {
	return t.Error == nil
}

// IsFailure returns true when an error is held.
func (t Try[A]) IsFailure() bool {
	return t.Error != nil
}

// Get unpacks the Try into a conventional (value, error) pair. On failure the
// zero value of A is returned alongside the error.
func (t Try[A]) Get() (A, error) { //nolint:ireturn
	if t.IsFailure() {
		var zero A

		return zero, t.Error
	}

	return t.Value, nil
}

// GetOrElse returns the held value, or defaultValue when the Try failed.
func (t Try[A]) GetOrElse(defaultValue A) A { //nolint:ireturn
	if t.IsSuccess() {
		return t.Value
	}

	return defaultValue
}

// Map applies f to a successful value, producing a Try of the new type.
// Failures pass through untouched.
func Map[A, B any](t Try[A], f func(A) (B, error)) Try[B] {
	if t.IsFailure() {
		return Try[B]{Error: t.Error}
	}

	val, err := f(t.Value)

	return Try[B]{Value: val, Error: err}
}
