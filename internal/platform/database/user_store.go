package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/redact"
	"github.com/phrazzld/thrones-api/internal/store"
)

// UserStore implements store.UserStore on database/sql.
type UserStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewUserStore creates a UserStore over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewUserStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists when the unique email index rejects the row.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO users (name, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.HashedPassword, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered")
			return store.ErrEmailExists
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "create", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail
// CreatedAt is not loaded; nothing reads it after registration.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT id, name, email, hashed_password FROM users WHERE email = ?`)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get", err)
	}
	return &user, nil
}
