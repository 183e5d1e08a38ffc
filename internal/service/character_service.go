package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/store"
)

// DefaultListLimit is the page size used when the caller gives none.
const DefaultListLimit = 20

// CharacterPage is one window of the character collection.
// Total counts every character regardless of the window.
type CharacterPage struct {
	Total int
	Skip  int
	Limit int
	Data  []domain.Character
}

// CharacterService provides the character use cases.
type CharacterService interface {
	// List returns at most limit characters after skipping skip, ordered by ID.
	List(ctx context.Context, limit, skip int) (*CharacterPage, error)

	// Get returns one character or store.ErrCharacterNotFound.
	Get(ctx context.Context, id int64) (*domain.Character, error)

	// Filter returns every character matching all supplied predicates, ordered by ID.
	Filter(ctx context.Context, filter store.CharacterFilter) ([]domain.Character, error)

	// Sort returns every character stably ordered by field in the given direction.
	Sort(ctx context.Context, field domain.SortField, order domain.SortOrder) ([]domain.Character, error)

	// Create persists a new character and returns it with its assigned ID.
	Create(ctx context.Context, character domain.Character) (*domain.Character, error)

	// Update applies a partial update and returns the full updated character.
	Update(ctx context.Context, id int64, patch domain.CharacterPatch) (*domain.Character, error)

	// Delete permanently removes a character.
	Delete(ctx context.Context, id int64) error
}

// characterServiceImpl implements the CharacterService interface
type characterServiceImpl struct {
	characterStore store.CharacterStore
	db             store.TxBeginner
	logger         *slog.Logger
}

// NewCharacterService creates a new CharacterService. db starts the
// transactions that the store joins through WithTx.
func NewCharacterService(characterStore store.CharacterStore, db store.TxBeginner, logger *slog.Logger) CharacterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &characterServiceImpl{
		characterStore: characterStore,
		db:             db,
		logger:         logger.With(slog.String("component", "character_service")),
	}
}

// List reads the count and the page in one transaction so they agree.
func (s *characterServiceImpl) List(ctx context.Context, limit, skip int) (*CharacterPage, error) {
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be greater than or equal to 0")
	}
	if skip < 0 {
		return nil, domain.NewValidationError("skip", "must be greater than or equal to 0")
	}

	page := &CharacterPage{Skip: skip, Limit: limit}
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.characterStore.WithTx(tx)

		total, err := txStore.Count(ctx)
		if err != nil {
			return err
		}
		data, err := txStore.List(ctx, limit, skip)
		if err != nil {
			return err
		}

		page.Total = total
		page.Data = data
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "list", "failed to list characters", err)
	}
	return page, nil
}

func (s *characterServiceImpl) Get(ctx context.Context, id int64) (*domain.Character, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer")
	}

	character, err := s.characterStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, "get", "failed to get character", err)
	}
	return character, nil
}

func (s *characterServiceImpl) Filter(
	ctx context.Context,
	filter store.CharacterFilter,
) ([]domain.Character, error) {
	if filter.AgeMin != nil && *filter.AgeMin < 0 {
		return nil, domain.NewValidationError("age_min", "must be greater than or equal to 0")
	}
	if filter.AgeMax != nil && *filter.AgeMax < 0 {
		return nil, domain.NewValidationError("age_max", "must be greater than or equal to 0")
	}
	if filter.AgeMin != nil && filter.AgeMax != nil && *filter.AgeMin > *filter.AgeMax {
		return nil, domain.NewValidationError("age_min", "must be less than or equal to age_max")
	}

	characters, err := s.characterStore.Filter(ctx, filter)
	if err != nil {
		return nil, s.wrap(ctx, "filter", "failed to filter characters", err)
	}
	return characters, nil
}

func (s *characterServiceImpl) Sort(
	ctx context.Context,
	field domain.SortField,
	order domain.SortOrder,
) ([]domain.Character, error) {
	characters, err := s.characterStore.All(ctx)
	if err != nil {
		return nil, s.wrap(ctx, "sort", "failed to load characters", err)
	}
	if err := domain.SortCharacters(characters, field, order); err != nil {
		return nil, err
	}
	return characters, nil
}

func (s *characterServiceImpl) Create(
	ctx context.Context,
	character domain.Character,
) (*domain.Character, error) {
	character.ID = 0
	if err := character.Validate(); err != nil {
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.characterStore.WithTx(tx).Create(ctx, &character)
	})
	if err != nil {
		return nil, s.wrap(ctx, "create", "failed to create character", err)
	}
	return &character, nil
}

// Update loads, patches, validates and writes the character inside one transaction.
func (s *characterServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.CharacterPatch,
) (*domain.Character, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Character
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.characterStore.WithTx(tx)

		character, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = character
			return nil
		}

		character.Apply(patch)
		if err := character.Validate(); err != nil {
			return err
		}
		if err := txStore.Update(ctx, character); err != nil {
			return err
		}
		updated = character
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "update", "failed to update character", err)
	}
	return updated, nil
}

func (s *characterServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be a positive integer")
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.characterStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return s.wrap(ctx, "delete", "failed to delete character", err)
	}
	return nil
}

// wrap passes expected conditions through untouched and wraps anything else
// in a ServiceError after logging it.
func (s *characterServiceImpl) wrap(ctx context.Context, operation, message string, err error) error {
	if errors.Is(err, domain.ErrValidation) || store.IsNotFoundError(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(message,
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewCharacterServiceError(operation, message, err)
}
