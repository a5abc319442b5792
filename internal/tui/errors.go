// ABOUTME: Error message formatting for the TUI screens
// ABOUTME: Translates api errors into short user-facing text

package tui

import (
	"errors"
	"net/http"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

// friendlyError renders an error for the notice line or a form banner
func friendlyError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "Invalid credentials."
		case http.StatusForbidden:
			return "You don't have permission to do that."
		case http.StatusNotFound:
			return "That sweet no longer exists."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return "Cannot reach the shop. Check your connection and try again."
	}

	return err.Error()
}
