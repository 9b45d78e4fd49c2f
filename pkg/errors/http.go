// Package errors carries HTTP-aware errors from delivery mappers to pkg/response.
package errors

import (
	"fmt"
	"net/http"
)

// HTTPError is an error with the status code and code to send to the client.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// NewHTTPError creates an HTTPError whose code equals the status code.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{StatusCode: status, Code: status, Message: message}
}

// ErrInternalServerError is what mappers return for errors they do not know.
var ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
