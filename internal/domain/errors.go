package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by entity lookups so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError returns an ErrNotFound wrapped with the entity name.
func NotFoundError(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports that a requested mutation clashes with current state,
// e.g. a vehicle already held for the requested dates.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// NewConflictError creates a conflict error
func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// StateError reports a status transition that the entity's state machine
// does not define.
type StateError struct {
	Entity string
	From   string
	To     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}
