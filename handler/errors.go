package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an HTTP status code and a client-facing message.
type HTTPError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError. An empty message falls back to the status text.
func NewHTTPError(code int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "Bad request")
	ErrInvalidCommand     = NewHTTPError(http.StatusBadRequest, "Invalid command")
	ErrTooManyRequests    = NewHTTPError(http.StatusTooManyRequests, "Too many requests")
	ErrInvalidStoredValue = NewHTTPError(http.StatusBadGateway, "Stored value is not valid JSON")
	ErrStoreUnavailable   = NewHTTPError(http.StatusServiceUnavailable, "Key-value store unavailable")
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrInvalidBindTarget indicates a binder received a value it cannot populate
	ErrInvalidBindTarget = errors.New("invalid bind target")
)
