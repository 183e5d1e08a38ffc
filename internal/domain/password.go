package domain

import "strings"

// Password length bounds. 72 bytes is the most bcrypt will read.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// PasswordSymbols is the set of symbols a password may contain.
const PasswordSymbols = "@$!%*?&"

// PasswordPolicyMessage is returned for any password that does not meet the policy.
const PasswordPolicyMessage = "Password must contain at least one uppercase letter, " +
	"one lowercase letter, one number, and one special character."

// ValidatePassword enforces the password policy: 8 to 72 characters drawn only
// from letters, digits and PasswordSymbols, with at least one of each class.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "must be at most 72 characters long")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		default:
			return NewValidationError("password", PasswordPolicyMessage)
		}
	}

	if !upper || !lower || !digit || !symbol {
		return NewValidationError("password", PasswordPolicyMessage)
	}
	return nil
}
