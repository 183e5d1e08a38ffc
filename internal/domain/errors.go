package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity fails validation.
// It is usually wrapped by a *ValidationError naming the offending field.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a single invalid field. It unwraps to ErrValidation
// so callers can test with errors.Is and still recover the field with errors.As.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
