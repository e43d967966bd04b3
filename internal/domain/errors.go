package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEventPassed is returned when tickets are purchased for an event
	// whose date is not strictly in the future.
	ErrEventPassed = errors.New("event has already passed")

	// ErrInvalidInput is returned for requests that are structurally invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a single invalid or unresolvable request field.
// The field name matches the wire name used by the HTTP surface.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CapacityError is returned when a purchase asks for more tickets than the
// event has remaining. Available carries the actual remaining count so
// callers can surface it to the user.
type CapacityError struct {
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Not enough tickets available. Only %d tickets remaining.", e.Available)
}
