package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Without overrides it keeps users in memory keyed by email.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// Data for default implementation
	Users           map[string]*domain.User
	LastUserID      int64
	CreateError     error
	GetByEmailError error

	// WithTxCalls counts WithTx invocations
	WithTxCalls int

	mu sync.Mutex
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.LastUserID++
	user.ID = m.LastUserID
	m.Users[user.Email] = user
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	user, exists := m.Users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// WithTx implements the UserStore interface. The mock ignores the
// transaction and returns itself.
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}
