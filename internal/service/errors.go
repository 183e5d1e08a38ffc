package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrInvalidCredentials is returned by Authenticate for an unknown email
	// and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewCharacterServiceError creates a ServiceError for the character service.
func NewCharacterServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "character", Operation: operation, Message: message, Err: err}
}

// NewUserServiceError creates a ServiceError for the user service.
func NewUserServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Message: message, Err: err}
}
