package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Column limits for character text fields.
const (
	MaxCharacterNameLength = 100
	MaxCharacterTextLength = 150
)

// MaxCharacterNumber bounds age and death to the INTEGER column range.
const MaxCharacterNumber = math.MaxInt32

// Character is a single show character.
//
// Death records the season in which the character died; nil means the
// character is alive or the season is unknown.
type Character struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	House    string `json:"house"`
	Animal   string `json:"animal"`
	Symbol   string `json:"symbol"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Age      int    `json:"age"`
	Death    *int   `json:"death"`
	Strength string `json:"strength"`
}

// Validate checks every field of the character.
// Returns a *ValidationError for the first field that fails.
func (c *Character) Validate() error {
	if err := validateRequiredText("name", c.Name, MaxCharacterNameLength); err != nil {
		return err
	}
	if err := validateRequiredText("house", c.House, MaxCharacterTextLength); err != nil {
		return err
	}
	if err := validateRequiredText("role", c.Role, MaxCharacterTextLength); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value string
	}{
		{"animal", c.Animal},
		{"symbol", c.Symbol},
		{"nickname", c.Nickname},
	} {
		if err := validateTextLength(f.name, f.value, MaxCharacterTextLength); err != nil {
			return err
		}
	}
	if err := validateNumber("age", c.Age); err != nil {
		return err
	}
	if c.Death != nil {
		return validateNumber("death", *c.Death)
	}
	return nil
}

// Apply copies every supplied field of p onto c. The ID is never changed.
// Apply does not validate; callers validate the patch and the result.
func (c *Character) Apply(p CharacterPatch) {
	applyString(&c.Name, p.Name)
	applyString(&c.House, p.House)
	applyString(&c.Animal, p.Animal)
	applyString(&c.Symbol, p.Symbol)
	applyString(&c.Nickname, p.Nickname)
	applyString(&c.Role, p.Role)
	applyString(&c.Strength, p.Strength)
	if p.Age.HasValue() {
		c.Age = p.Age.Value
	}
	if p.Death.Set {
		c.Death = p.Death.Ptr()
	}
}

// CharacterPatch is a partial update. Fields left absent are not touched.
type CharacterPatch struct {
	Name     Optional[string] `json:"name"`
	House    Optional[string] `json:"house"`
	Animal   Optional[string] `json:"animal"`
	Symbol   Optional[string] `json:"symbol"`
	Nickname Optional[string] `json:"nickname"`
	Role     Optional[string] `json:"role"`
	Age      Optional[int]    `json:"age"`
	Death    Optional[int]    `json:"death"`
	Strength Optional[string] `json:"strength"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p CharacterPatch) IsEmpty() bool {
	return !p.Name.Set && !p.House.Set && !p.Animal.Set && !p.Symbol.Set &&
		!p.Nickname.Set && !p.Role.Set && !p.Age.Set && !p.Death.Set && !p.Strength.Set
}

// Validate rejects explicit nulls on non-nullable fields, negative numbers
// and over-long text. Only death may be cleared with null.
func (p CharacterPatch) Validate() error {
	texts := []struct {
		name     string
		value    Optional[string]
		max      int
		required bool
	}{
		{"name", p.Name, MaxCharacterNameLength, true},
		{"house", p.House, MaxCharacterTextLength, true},
		{"animal", p.Animal, MaxCharacterTextLength, false},
		{"symbol", p.Symbol, MaxCharacterTextLength, false},
		{"nickname", p.Nickname, MaxCharacterTextLength, false},
		{"role", p.Role, MaxCharacterTextLength, true},
		{"strength", p.Strength, 0, false},
	}
	for _, f := range texts {
		if !f.value.Set {
			continue
		}
		if f.value.Null {
			return NewValidationError(f.name, "may not be null")
		}
		if f.required {
			if err := validateRequiredText(f.name, f.value.Value, f.max); err != nil {
				return err
			}
			continue
		}
		if err := validateTextLength(f.name, f.value.Value, f.max); err != nil {
			return err
		}
	}

	if p.Age.Set {
		if p.Age.Null {
			return NewValidationError("age", "may not be null")
		}
		if err := validateNumber("age", p.Age.Value); err != nil {
			return err
		}
	}
	if p.Death.HasValue() {
		return validateNumber("death", p.Death.Value)
	}
	return nil
}

func applyString(dst *string, v Optional[string]) {
	if v.HasValue() {
		*dst = v.Value
	}
}

func validateNumber(field string, v int) error {
	if v < 0 {
		return NewValidationError(field, "must be greater than or equal to 0")
	}
	if v > MaxCharacterNumber {
		return NewValidationError(field, fmt.Sprintf("must be less than or equal to %d", MaxCharacterNumber))
	}
	return nil
}

func validateRequiredText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required")
	}
	return validateTextLength(field, value, maxLen)
}

// validateTextLength counts runes, matching VARCHAR(n) semantics. A maxLen of 0 means unbounded.
func validateTextLength(field, value string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}
