package httperr

import "net/http"

// Factory builds the error returned to a client from a human-readable
// message. Pipes resolve their factory once at construction and reuse it for
// every failure, so a Factory must be safe for concurrent use.
type Factory func(message string) error

// FactoryFor returns the Factory matching an HTTP status code. Well-known
// codes map to their named constructors; anything else degrades to a generic
// constructor for that code. The mapping is an explicit switch evaluated
// here, once, not a registry consulted per call.
func FactoryFor(status int) Factory {
	switch status {
	case http.StatusBadRequest:
		return lift(BadRequest)
	case http.StatusUnauthorized:
		return lift(Unauthorized)
	case http.StatusForbidden:
		return lift(Forbidden)
	case http.StatusNotFound:
		return lift(NotFound)
	case http.StatusMethodNotAllowed:
		return lift(MethodNotAllowed)
	case http.StatusNotAcceptable:
		return lift(NotAcceptable)
	case http.StatusRequestTimeout:
		return lift(RequestTimeout)
	case http.StatusConflict:
		return lift(Conflict)
	case http.StatusGone:
		return lift(Gone)
	case http.StatusPreconditionFailed:
		return lift(PreconditionFailed)
	case http.StatusRequestEntityTooLarge:
		return lift(PayloadTooLarge)
	case http.StatusUnsupportedMediaType:
		return lift(UnsupportedMediaType)
	case http.StatusUnprocessableEntity:
		return lift(UnprocessableEntity)
	case http.StatusTooManyRequests:
		return lift(TooManyRequests)
	case http.StatusInternalServerError:
		return lift(InternalServerError)
	case http.StatusNotImplemented:
		return lift(NotImplemented)
	case http.StatusBadGateway:
		return lift(BadGateway)
	case http.StatusServiceUnavailable:
		return lift(ServiceUnavailable)
	case http.StatusGatewayTimeout:
		return lift(GatewayTimeout)
	default:
		return func(message string) error {
			return New(status, message)
		}
	}
}

// lift adapts a concrete constructor to the Factory signature.
func lift(construct func(message string) *Error) Factory {
	return func(message string) error {
		return construct(message)
	}
}

// BadRequest builds a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// MethodNotAllowed builds a 405 error.
func MethodNotAllowed(message string) *Error {
	return New(http.StatusMethodNotAllowed, message)
}

// NotAcceptable builds a 406 error.
func NotAcceptable(message string) *Error {
	return New(http.StatusNotAcceptable, message)
}

// RequestTimeout builds a 408 error.
func RequestTimeout(message string) *Error {
	return New(http.StatusRequestTimeout, message)
}

// Conflict builds a 409 error.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Gone builds a 410 error.
func Gone(message string) *Error {
	return New(http.StatusGone, message)
}

// PreconditionFailed builds a 412 error.
func PreconditionFailed(message string) *Error {
	return New(http.StatusPreconditionFailed, message)
}

// PayloadTooLarge builds a 413 error.
func PayloadTooLarge(message string) *Error {
	return New(http.StatusRequestEntityTooLarge, message)
}

// UnsupportedMediaType builds a 415 error.
func UnsupportedMediaType(message string) *Error {
	return New(http.StatusUnsupportedMediaType, message)
}

// UnprocessableEntity builds a 422 error.
func UnprocessableEntity(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

// TooManyRequests builds a 429 error.
func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

// InternalServerError builds a 500 error.
func InternalServerError(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// NotImplemented builds a 501 error.
func NotImplemented(message string) *Error {
	return New(http.StatusNotImplemented, message)
}

// BadGateway builds a 502 error.
func BadGateway(message string) *Error {
	return New(http.StatusBadGateway, message)
}

// ServiceUnavailable builds a 503 error.
func ServiceUnavailable(message string) *Error {
	return New(http.StatusServiceUnavailable, message)
}

// GatewayTimeout builds a 504 error.
func GatewayTimeout(message string) *Error {
	return New(http.StatusGatewayTimeout, message)
}
