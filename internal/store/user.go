package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/thrones-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its ID.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
