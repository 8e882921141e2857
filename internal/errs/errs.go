package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed or missing input for a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateConflictError reports an operation that is invalid for the entity's
// current status, e.g. submitting to a question that is not approved.
type StateConflictError struct {
	Entity  string
	Status  string
	Message string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s in status %q: %s", e.Entity, e.Status, e.Message)
}

func StateConflict(entity, status, message string) error {
	return &StateConflictError{Entity: entity, Status: status, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}
