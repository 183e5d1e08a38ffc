package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCharacterServiceForTest(t *testing.T) (CharacterService, *MockCharacterStore, sqlmock.Sqlmock) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, dbMock.ExpectationsWereMet())
		_ = db.Close()
	})

	mockStore := new(MockCharacterStore)
	t.Cleanup(func() { mockStore.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCharacterService(mockStore, db, logger), mockStore, dbMock
}

func jon() domain.Character {
	death := 8
	return domain.Character{
		ID:       1,
		Name:     "Jon Snow",
		House:    "Stark",
		Animal:   "Direwolf",
		Nickname: "King in the North",
		Role:     "King",
		Age:      16,
		Death:    &death,
		Strength: "Physically strong",
	}
}

func TestCharacterServiceListValidation(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		skip  int
		field string
	}{
		{"negative limit", -1, 0, "limit"},
		{"negative skip", 10, -1, "skip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newCharacterServiceForTest(t)

			page, err := svc.List(context.Background(), tt.limit, tt.skip)

			require.Error(t, err)
			assert.Nil(t, page)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCharacterServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("count and page in one transaction", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		data := []domain.Character{jon()}
		mockStore.On("Count", mock.Anything).Return(3, nil)
		mockStore.On("List", mock.Anything, 1, 2).Return(data, nil)

		page, err := svc.List(ctx, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 2, page.Skip)
		assert.Equal(t, 1, page.Limit)
		assert.Equal(t, data, page.Data)
	})

	t.Run("zero limit is allowed", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		mockStore.On("Count", mock.Anything).Return(5, nil)
		mockStore.On("List", mock.Anything, 0, 0).Return([]domain.Character{}, nil)

		page, err := svc.List(ctx, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 5, page.Total)
		assert.Empty(t, page.Data)
	})

	t.Run("large limit is passed through", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		mockStore.On("Count", mock.Anything).Return(2, nil)
		mockStore.On("List", mock.Anything, 500, 0).Return([]domain.Character{jon()}, nil)

		page, err := svc.List(ctx, 500, 0)

		require.NoError(t, err)
		assert.Equal(t, 500, page.Limit)
		assert.Len(t, page.Data, 1)
	})

	t.Run("store failure rolls back and wraps", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		dbErr := errors.New("connection reset")
		mockStore.On("Count", mock.Anything).Return(0, dbErr)

		page, err := svc.List(ctx, 10, 0)

		require.Error(t, err)
		assert.Nil(t, page)
		assert.ErrorIs(t, err, dbErr)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "list", svcErr.Operation)
	})
}

func TestCharacterServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, mockStore, _ := newCharacterServiceForTest(t)
		character := jon()
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(&character, nil)

		got, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, &character, got)
	})

	t.Run("not found passes through", func(t *testing.T) {
		svc, mockStore, _ := newCharacterServiceForTest(t)
		mockStore.On("GetByID", mock.Anything, int64(42)).Return(nil, store.ErrCharacterNotFound)

		got, err := svc.Get(ctx, 42)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrCharacterNotFound)
		var svcErr *ServiceError
		assert.False(t, errors.As(err, &svcErr))
	})

	t.Run("non-positive id", func(t *testing.T) {
		svc, _, _ := newCharacterServiceForTest(t)

		_, err := svc.Get(ctx, 0)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCharacterServiceFilter(t *testing.T) {
	ctx := context.Background()
	intPtr := func(v int) *int { return &v }

	t.Run("passes predicates to the store", func(t *testing.T) {
		svc, mockStore, _ := newCharacterServiceForTest(t)
		filter := store.CharacterFilter{House: "stark", AgeMin: intPtr(10), AgeMax: intPtr(20)}
		mockStore.On("Filter", mock.Anything, filter).Return([]domain.Character{jon()}, nil)

		got, err := svc.Filter(ctx, filter)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	tests := []struct {
		name   string
		filter store.CharacterFilter
		field  string
	}{
		{"inverted age range", store.CharacterFilter{AgeMin: intPtr(30), AgeMax: intPtr(20)}, "age_min"},
		{"negative age_min", store.CharacterFilter{AgeMin: intPtr(-1)}, "age_min"},
		{"negative age_max", store.CharacterFilter{AgeMax: intPtr(-5)}, "age_max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newCharacterServiceForTest(t)

			_, err := svc.Filter(ctx, tt.filter)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCharacterServiceSort(t *testing.T) {
	ctx := context.Background()
	all := []domain.Character{
		{ID: 1, Name: "Jon Snow", House: "Stark", Age: 16},
		{ID: 2, Name: "arya Stark", House: "Stark", Age: 11},
		{ID: 3, Name: "Tyrion", House: "Lannister", Age: 32},
	}

	tests := []struct {
		name  string
		field domain.SortField
		order domain.SortOrder
		want  []int64
	}{
		{"name ascending ignores case", domain.SortByName, domain.SortAsc, []int64{2, 1, 3}},
		{"age descending", domain.SortByAge, domain.SortDesc, []int64{3, 1, 2}},
		{"house ascending keeps ties stable", domain.SortByHouse, domain.SortAsc, []int64{3, 1, 2}},
		{"house descending keeps ties stable", domain.SortByHouse, domain.SortDesc, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStore, _ := newCharacterServiceForTest(t)
			mockStore.On("All", mock.Anything).Return(append([]domain.Character(nil), all...), nil)

			got, err := svc.Sort(ctx, tt.field, tt.order)

			require.NoError(t, err)
			ids := make([]int64, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		svc, mockStore, _ := newCharacterServiceForTest(t)
		mockStore.On("All", mock.Anything).Return([]domain.Character{}, nil)

		_, err := svc.Sort(ctx, domain.SortField("height"), domain.SortAsc)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCharacterServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		mockStore.On("Create", mock.Anything, mock.AnythingOfType("*domain.Character")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Character).ID = 7
			}).
			Return(nil)

		input := jon()
		input.ID = 99
		got, err := svc.Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "Jon Snow", got.Name)
	})

	t.Run("invalid character never reaches the store", func(t *testing.T) {
		svc, _, _ := newCharacterServiceForTest(t)
		input := jon()
		input.Role = ""

		_, err := svc.Create(ctx, input)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCharacterServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		current := jon()
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(&current, nil)
		mockStore.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Character) bool {
			return c.Age == 17 && c.Death == nil && c.Name == "Jon Snow"
		})).Return(nil)

		got, err := svc.Update(ctx, 1, domain.CharacterPatch{
			Age:   domain.Some(17),
			Death: domain.Null[int](),
		})

		require.NoError(t, err)
		assert.Equal(t, 17, got.Age)
		assert.Nil(t, got.Death)
		assert.Equal(t, "Stark", got.House)
	})

	t.Run("empty patch returns current state", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		current := jon()
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(&current, nil)

		got, err := svc.Update(ctx, 1, domain.CharacterPatch{})

		require.NoError(t, err)
		assert.Equal(t, "Jon Snow", got.Name)
		mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing character rolls back", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		mockStore.On("GetByID", mock.Anything, int64(9)).Return(nil, store.ErrCharacterNotFound)

		_, err := svc.Update(ctx, 9, domain.CharacterPatch{Age: domain.Some(3)})

		assert.ErrorIs(t, err, store.ErrCharacterNotFound)
	})

	t.Run("invalid patch never opens a transaction", func(t *testing.T) {
		svc, _, _ := newCharacterServiceForTest(t)

		_, err := svc.Update(ctx, 1, domain.CharacterPatch{Name: domain.Null[string]()})

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})
}

func TestCharacterServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()
		mockStore.On("Delete", mock.Anything, int64(1)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("not found rolls back", func(t *testing.T) {
		svc, mockStore, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()
		mockStore.On("Delete", mock.Anything, int64(1)).Return(store.ErrCharacterNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 1), store.ErrCharacterNotFound)
	})

	t.Run("begin failure is wrapped", func(t *testing.T) {
		svc, _, dbMock := newCharacterServiceForTest(t)
		dbMock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := svc.Delete(ctx, 1)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "delete", svcErr.Operation)
	})
}
