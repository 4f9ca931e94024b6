// Package errors carries the error helpers shared across spigot packages:
// common sentinels and Collection, an accumulator for multi-part failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a lookup key did not resolve to a value. Lookup
// functions return it (wrapped or bare) to signal a definitive miss that is
// not worth retrying.
var ErrNotFound = errors.New("not found")

// ErrWrongType reports that a value had an unexpected runtime type.
var ErrWrongType = errors.New("wrong type")

// ErrPanic marks errors recovered from panics, so callers can tell a crash
// apart from an ordinary failure with errors.Is.
var ErrPanic = errors.New("recovered from panic")

// FromPanic converts a value recovered from a panic into an error wrapping
// ErrPanic. The stack, when given, is appended to the message. A nil value
// returns nil, mirroring a recover that found nothing.
func FromPanic(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	var err error
	if e, ok := recovered.(error); ok {
		err = fmt.Errorf("%w: %w", ErrPanic, e)
	} else {
		err = fmt.Errorf("%w: %v", ErrPanic, recovered)
	}

	if len(stack) > 0 {
		err = fmt.Errorf("%w\nstack trace:\n%s", err, stack)
	}

	return err
}

// Collection accumulates errors from multiple operations so they can be
// returned together. It is not safe for concurrent use; collect into it from
// one goroutine.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// HasError returns true if the collection holds at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Clear resets the collection to empty.
func (c *Collection) Clear() {
	c.errors = nil
}

// Err returns the collected errors as a single error: nil when empty, the
// sole error when there is exactly one, and an errors.Join of all of them
// otherwise.
func (c *Collection) Err() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
