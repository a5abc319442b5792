// ABOUTME: Typed errors for backend rejections and transport failures
// ABOUTME: Callers distinguish the two kinds with errors.As

package api

import (
	"fmt"
	"net/http"
)

// Error is a non-success HTTP response from the backend. Status carries the
// HTTP status code and Body whatever the backend returned, so callers can
// surface the backend's own message to the user.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Unauthorized reports whether the backend rejected the credentials outright.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Forbidden reports whether the caller is authenticated but not allowed,
// e.g. a non-admin calling an admin endpoint.
func (e *Error) Forbidden() bool {
	return e.Status == http.StatusForbidden
}

// TransportError means no response was obtainable at all: connection refused,
// DNS failure, timeout. It is deliberately distinct from Error so callers can
// show a "can't reach server" message instead of parsing absent response data.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach backend at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
