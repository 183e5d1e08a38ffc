package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/service/auth"
	"github.com/phrazzld/thrones-api/internal/store"
)

// UserService provides registration and credential checks.
type UserService interface {
	// Register creates a user from a name, email and plaintext password.
	// Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Authenticate returns the user owning email when password matches.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        store.TxBeginner
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths spend a bcrypt comparison.
	dummyHash func() (string, error)
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
		dummyHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash("Unused-Placeholder-1")
		}),
	}
}

// Register validates the password policy, hashes the password and stores the user.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to hash password", err)
	}

	user, err := domain.NewUser(name, email, hashed)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration rejected, email taken")
			return nil, err
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to create user", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate looks up the user by email and verifies the password.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user", slog.String("error", err.Error()))
			return nil, NewUserServiceError("authenticate", "failed to look up user", err)
		}
		if hash, hashErr := s.dummyHash(); hashErr == nil {
			_ = s.verifier.Compare(hash, password)
		}
		log.Debug("authentication failed, unknown email")
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed, wrong password", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
