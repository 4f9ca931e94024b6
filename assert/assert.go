// Package assert narrows dynamically typed values back to concrete types
// with an error instead of a panic.
package assert

import (
	"fmt"

	"github.com/spigot-labs/spigot/errors"
)

// Type asserts that val is of type T. A failed assertion returns an error
// wrapping errors.ErrWrongType that names both the expected and the actual
// type.
//
//nolint:ireturn
func Type[T any](val any) (T, error) {
	of, ok := val.(T)
	if !ok {
		return of, fmt.Errorf("%w: expected type %T, but received %T", errors.ErrWrongType, of, val)
	}

	return of, nil
}
