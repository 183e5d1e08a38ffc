package mocks

import (
	"context"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/service"
)

// MockUserService implements service.UserService for testing.
type MockUserService struct {
	RegisterFn     func(ctx context.Context, name, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

// Register implements the service.UserService interface
func (m *MockUserService) Register(
	ctx context.Context,
	name, email, password string,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return &domain.User{ID: 1, Name: name, Email: email}, nil
}

// Authenticate implements the service.UserService interface
func (m *MockUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}
