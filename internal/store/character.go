package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/thrones-api/internal/domain"
)

// CharacterFilter holds the optional predicates of a character search.
// Empty strings and nil bounds impose no constraint. Text predicates are
// case-insensitive substring matches; age bounds are inclusive.
type CharacterFilter struct {
	Name   string
	House  string
	Role   string
	AgeMin *int
	AgeMax *int
}

// CharacterStore defines the interface for character data persistence.
// Every method that returns several characters orders them by ID ascending.
type CharacterStore interface {
	// Create inserts a new character and sets its ID.
	Create(ctx context.Context, character *domain.Character) error

	// GetByID retrieves a character by its ID.
	// Returns ErrCharacterNotFound if the character does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Character, error)

	// List returns at most limit characters after skipping skip of them.
	List(ctx context.Context, limit, skip int) ([]domain.Character, error)

	// Count returns the total number of characters.
	Count(ctx context.Context) (int, error)

	// Filter returns every character matching all predicates of f.
	Filter(ctx context.Context, f CharacterFilter) ([]domain.Character, error)

	// All returns every character.
	All(ctx context.Context) ([]domain.Character, error)

	// Update overwrites all mutable fields of an existing character.
	// Returns ErrCharacterNotFound if the character does not exist.
	Update(ctx context.Context, character *domain.Character) error

	// Delete permanently removes a character.
	// Returns ErrCharacterNotFound if the character does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CharacterStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CharacterStore
}
