package api

import (
	"fmt"
	"net/http"

	"finboard/internal/datasource"
)

// APIError is a failed API call. A 404 unwraps to datasource.ErrNotFound and
// a 409 to datasource.ErrConflict.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return datasource.ErrNotFound
	case http.StatusConflict:
		return datasource.ErrConflict
	}
	return nil
}

// Unauthorized reports whether the token was missing or rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newAPIError(status int, env envelope) *APIError {
	msg := env.Message
	if env.Error != nil {
		if env.Error.Message != "" {
			msg = env.Error.Message
		}
		if env.Error.StatusCode != 0 && status < 300 {
			status = env.Error.StatusCode
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
