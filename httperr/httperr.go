// Package httperr defines the HTTP-shaped error objects produced when a
// request argument fails validation or transformation. An Error renders as
// the conventional JSON body
//
//	{"statusCode": 400, "error": "Bad Request", "message": "..."}
//
// while its Error() string stays the bare message, so callers can assert on
// exact failure text without scraping JSON.
package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is an error carrying an HTTP status code. The zero value is not
// useful; build instances with New or the status constructors.
type Error struct {
	Status  int
	Message string

	cause error
}

// New builds an Error for an arbitrary status code. Prefer the named
// constructors for the well-known codes.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Error returns the message, falling back to the status text when the
// message is empty.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.StatusText()
}

// StatusText returns the canonical reason phrase for the status code, or a
// generic placeholder for codes the HTTP registry does not know.
func (e *Error) StatusText() string {
	if text := http.StatusText(e.Status); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d", e.Status)
}

// WithCause returns a copy of the error with cause attached. The cause stays
// out of the rendered message and is reachable through errors.Is/As.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause

	return &clone
}

// Unwrap exposes the attached cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// MarshalJSON renders the conventional HTTP error body. The cause is
// deliberately omitted; it is diagnostic detail, not response payload.
func (e *Error) MarshalJSON() ([]byte, error) {
	body := struct {
		StatusCode int    `json:"statusCode"` //nolint:tagliatelle
		ErrorText  string `json:"error"`
		Message    string `json:"message"`
	}{
		StatusCode: e.Status,
		ErrorText:  e.StatusText(),
		Message:    e.Message,
	}

	return json.Marshal(body)
}

// FromError extracts an *Error from anywhere in err's chain.
func FromError(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 500 when err carries
// none. A nil error maps to 200.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if httpErr, ok := FromError(err); ok {
		return httpErr.Status
	}

	return http.StatusInternalServerError
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	httpErr, ok := FromError(err)

	return ok && httpErr.Status == status
}
