package mocks

import (
	"context"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/service"
	"github.com/phrazzld/thrones-api/internal/store"
)

// MockCharacterService implements service.CharacterService for testing.
// Unset function fields return zero values with a nil error, except Get,
// Update and Delete which report store.ErrCharacterNotFound.
type MockCharacterService struct {
	ListFn   func(ctx context.Context, limit, skip int) (*service.CharacterPage, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Character, error)
	FilterFn func(ctx context.Context, filter store.CharacterFilter) ([]domain.Character, error)
	SortFn   func(ctx context.Context, field domain.SortField, order domain.SortOrder) ([]domain.Character, error)
	CreateFn func(ctx context.Context, character domain.Character) (*domain.Character, error)
	UpdateFn func(ctx context.Context, id int64, patch domain.CharacterPatch) (*domain.Character, error)
	DeleteFn func(ctx context.Context, id int64) error

	// LastFilter records the argument of the most recent Filter call
	LastFilter store.CharacterFilter
	// LastPatch records the argument of the most recent Update call
	LastPatch domain.CharacterPatch
}

// List implements the service.CharacterService interface
func (m *MockCharacterService) List(ctx context.Context, limit, skip int) (*service.CharacterPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, skip)
	}
	return &service.CharacterPage{Skip: skip, Limit: limit, Data: []domain.Character{}}, nil
}

// Get implements the service.CharacterService interface
func (m *MockCharacterService) Get(ctx context.Context, id int64) (*domain.Character, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrCharacterNotFound
}

// Filter implements the service.CharacterService interface
func (m *MockCharacterService) Filter(
	ctx context.Context,
	filter store.CharacterFilter,
) ([]domain.Character, error) {
	m.LastFilter = filter
	if m.FilterFn != nil {
		return m.FilterFn(ctx, filter)
	}
	return []domain.Character{}, nil
}

// Sort implements the service.CharacterService interface
func (m *MockCharacterService) Sort(
	ctx context.Context,
	field domain.SortField,
	order domain.SortOrder,
) ([]domain.Character, error) {
	if m.SortFn != nil {
		return m.SortFn(ctx, field, order)
	}
	return []domain.Character{}, nil
}

// Create implements the service.CharacterService interface
func (m *MockCharacterService) Create(
	ctx context.Context,
	character domain.Character,
) (*domain.Character, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, character)
	}
	character.ID = 1
	return &character, nil
}

// Update implements the service.CharacterService interface
func (m *MockCharacterService) Update(
	ctx context.Context,
	id int64,
	patch domain.CharacterPatch,
) (*domain.Character, error) {
	m.LastPatch = patch
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, store.ErrCharacterNotFound
}

// Delete implements the service.CharacterService interface
func (m *MockCharacterService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrCharacterNotFound
}
