package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCharacterStore mocks the store.CharacterStore interface
type MockCharacterStore struct {
	mock.Mock
}

func (m *MockCharacterStore) Create(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterStore) GetByID(ctx context.Context, id int64) (*domain.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterStore) List(ctx context.Context, limit, skip int) ([]domain.Character, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCharacterStore) Filter(
	ctx context.Context,
	f store.CharacterFilter,
) ([]domain.Character, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterStore) All(ctx context.Context) ([]domain.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterStore) Update(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations apply inside transactions too.
func (m *MockCharacterStore) WithTx(_ *sql.Tx) store.CharacterStore {
	return m
}
