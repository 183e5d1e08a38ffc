package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Column limits for user fields.
const (
	MaxUserNameLength  = 100
	MaxUserEmailLength = 100
)

// User represents a registered API consumer.
// Only the bcrypt hash of the password is ever held or stored.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User from a name, an email and an already hashed password.
// The email is normalized before validation. Returns an error if validation fails.
func NewUser(name, email, hashedPassword string) (*User, error) {
	user := &User{
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address,
// so lookups and the unique index agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return NewValidationError("name", "is required")
	}
	if utf8.RuneCountInString(u.Name) > MaxUserNameLength {
		return NewValidationError("name", "must be at most 100 characters")
	}
	if u.Email == "" {
		return NewValidationError("email", "is required")
	}
	if len(u.Email) > MaxUserEmailLength {
		return NewValidationError("email", "must be at most 100 characters")
	}
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return NewValidationError("email", "must be a valid email address")
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hashed password cannot be empty")
	}
	return nil
}
