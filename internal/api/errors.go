package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phrazzld/thrones-api/internal/api/shared"
	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/service/auth"
	"github.com/phrazzld/thrones-api/internal/store"
)

// Client-facing messages.
const (
	msgValidation           = "Validation error"
	msgInvalidBody          = "Invalid request format"
	msgCharacterNotFound    = "Character not found"
	msgEmailRegistered      = "Email is already registered"
	msgInvalidCredentials   = "Invalid email or password"
	msgPasswordsDoNotMatch  = "Passwords do not match"
	msgUserRegistered       = "User registered successfully"
	msgUnexpected           = "An unexpected error occurred"
	msgCouldNotValidateUser = "Could not validate credentials"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Unique violations are reported as bad requests, not conflicts.
	case store.IsDuplicateError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return msgValidation

	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return msgCouldNotValidateUser

	case errors.Is(err, store.ErrCharacterNotFound):
		return msgCharacterNotFound

	case errors.Is(err, store.ErrEmailExists):
		return msgEmailRegistered

	default:
		return msgUnexpected
	}
}

// validationErrorDetails extracts field-level detail from a domain or
// validator error.
func validationErrorDetails(err error) map[string]string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		return map[string]string{vErr.Field: vErr.Message}
	}
	return shared.ValidationDetails(err)
}

// HandleAPIError writes the error envelope for err. An empty customMessage
// selects the safe message for the error type. 5xx errors are logged at
// ERROR level with redaction.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMessage string) {
	status := MapErrorToStatusCode(err)

	message := customMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusBadRequest {
		if details := validationErrorDetails(err); len(details) > 0 {
			opts = append(opts, shared.WithDetails(details))
		}
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// respondValidation writes a 400 for a request that failed struct validation.
func respondValidation(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgValidation, err,
		shared.WithDetails(validationErrorDetails(err)))
}

// respondDecodeError writes a 400 for a body that is not valid JSON for its
// target type. A type mismatch or an undeclared key names the offending field.
func respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption
	var typeErr *json.UnmarshalTypeError
	var unknownErr *shared.UnknownFieldError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		opts = append(opts, shared.WithDetails(map[string]string{
			typeErr.Field: "must be of type " + typeErr.Type.String(),
		}))
	case errors.As(err, &unknownErr):
		opts = append(opts, shared.WithDetails(map[string]string{
			unknownErr.Field: "unknown field",
		}))
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err, opts...)
}
