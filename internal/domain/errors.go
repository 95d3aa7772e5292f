package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Everything here is an expected,
// recoverable outcome surfaced to the caller; none of these abort the
// process.
var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

// ValidationError reports a malformed field value with field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError reports a rental state machine precondition
// failure, e.g. approving a rental that is not pending.
type InvalidTransitionError struct {
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return e.Reason
}

// ConflictError reports a uniqueness or exclusivity violation and names
// the entity it conflicts with.
type ConflictError struct {
	Entity  string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
