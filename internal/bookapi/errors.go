package bookapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that the store has no record for the requested id.
// Responses with status 404 match it via errors.Is.
var ErrNotFound = errors.New("book not found")

// StatusError is returned when the API answers with a non-success status.
// Message carries the server's error text when the body supplied one, and
// RequestID ties the failure back to the X-Request-ID the client sent.
type StatusError struct {
	Code      int
	Message   string
	RequestID string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}
