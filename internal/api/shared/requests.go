package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/thrones-api/internal/domain"
)

// MaxBodyBytes caps the size of a decoded request body.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// UnknownFieldError reports a body key that the target type does not declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// validate is the shared validator. Field names in errors use the json tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(fld.Tag.Get("mapstructure"), ",")
		}
		return name
	})
	// ALLOW-PANIC: registration only fails on an empty tag or nil function
	if err := v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return domain.ValidatePassword(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// DecodeJSON decodes the request body into v. It returns ErrEmptyBody for
// an empty body and rejects trailing data after the first JSON value.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSON(w, r, v, false)
}

// DecodeStrictJSON is DecodeJSON that also rejects keys v does not declare,
// returning an *UnknownFieldError for the first one.
func DecodeStrictJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSON(w, r, v, true)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		// encoding/json has no typed error for unknown keys.
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return &UnknownFieldError{Field: strings.Trim(field, `"`)}
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}

// ValidateRequest validates v using its validate struct tags.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

// ValidationDetails turns a validator error into a field → reason map.
// It returns nil if err is not a validator.ValidationErrors.
func ValidationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := details[field]; seen {
			continue
		}
		details[field] = tagMessage(fe)
	}
	return details
}

// tagMessage maps validation tags to user-friendly error messages
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password_policy":
		return domain.PasswordPolicyMessage
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	default:
		return "validation failed"
	}
}
