package mocks

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/phrazzld/thrones-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Token is returned by the default GenerateToken; empty means "test-token".
	Token string
	// Claims is returned by the default ValidateToken when Err is nil.
	Claims *auth.Claims
	// Err is returned by the default implementations when set.
	Err error
}

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "test-token", nil
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	now := time.Now()
	return &auth.Claims{
		UserID:    1,
		Subject:   strconv.FormatInt(1, 10),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        "test-jti",
	}, nil
}
