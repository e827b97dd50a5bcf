package httpclient

import (
	"fmt"

	ierr "github.com/tagihin/tagihin/internal/errors"
)

// Error represents a non-2xx HTTP response. The raw response body is kept so
// callers can surface provider error messages.
type Error struct {
	error
	StatusCode int
	Response   []byte
}

// NewError creates a new HTTP client error with status code and response
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		error: ierr.WithError(fmt.Errorf("http request failed with status %d", statusCode)).
			WithHint("The upstream service returned an error").
			Mark(ierr.ErrHTTPClient),
		StatusCode: statusCode,
		Response:   response,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("http client error: status=%d body=%s", e.StatusCode, string(e.Response))
}

// Unwrap allows errors.Is to match the ErrHTTPClient sentinel
func (e *Error) Unwrap() error {
	return e.error
}
