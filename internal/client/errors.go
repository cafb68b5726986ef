package client

import (
	"fmt"
	"net/http"
)

// APIError is returned for any response outside the 2xx range.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// InvalidHostnameError is returned when the configured hostname is not an
// absolute URL.
type InvalidHostnameError struct {
	Hostname string
	Err      error
}

func (e *InvalidHostnameError) Error() string {
	return fmt.Sprintf("invalid hostname %q: expected a full URL like https://paperless.example.com", e.Hostname)
}

func (e *InvalidHostnameError) Unwrap() error { return e.Err }

// PaginationError is returned when the service hands back a next link that
// cannot be resolved against the current page URL.
type PaginationError struct {
	Next string
	Err  error
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("API returned an invalid next URL for pagination: %q", e.Next)
}

func (e *PaginationError) Unwrap() error { return e.Err }

// newAPIError builds an APIError from a failed response. The service reports
// errors as {"error": "..."}; anything else falls back to the status line.
func newAPIError(status int, body []byte) *APIError {
	msg := extractErrorMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("Request failed with %d %s", status, http.StatusText(status))
	}
	return &APIError{StatusCode: status, Message: msg}
}
