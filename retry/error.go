package retry

// Error lets an operation tell the retry loop whether a failure is worth
// retrying. Errors that do not implement it are treated as temporary.
type Error interface {
	// Temporary returns false when retrying cannot help.
	Temporary() bool
	error
}

type permanentError struct {
	error
}

func (e *permanentError) Temporary() bool { return false }

func (e *permanentError) Unwrap() error {
	return e.error
}

// Abort marks an error as permanent, stopping the retry loop immediately.
// The loop returns the wrapped error, not the marker.
func Abort(err error) Error { //nolint:ireturn
	return &permanentError{err}
}
