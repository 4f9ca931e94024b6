package envcfg

// Option adjusts a Reader after the raw lookup. The typed getters apply
// options in order, so later options see the effect of earlier ones.
type Option[T any] func(Reader[T]) Reader[T]

// Default provides a value to use when the variable is not set.
func Default[T any](value T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(value)
	}
}

// Required converts a missing variable into the given error.
func Required[T any](err error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithErrorIfMissing(err)
	}
}

// Fallback provides another Reader to consult when the variable is not set.
func Fallback[T any](fallback Reader[T]) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithFallback(fallback)
	}
}

// Validate runs the given check on the parsed value. A non-nil error marks
// the Reader as malformed.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.Map(func(val T) (T, error) {
			err := f(val)

			return val, err
		})
	}
}
