package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/platform/logger"
	"github.com/phrazzld/thrones-api/internal/redact"
	"github.com/phrazzld/thrones-api/internal/store"
)

const characterColumns = "id, name, house, animal, symbol, nickname, role, age, death, strength"

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CharacterStore implements store.CharacterStore on database/sql.
type CharacterStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewCharacterStore creates a CharacterStore over a connection or transaction.
// If logger is nil, a default logger will be used.
func NewCharacterStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *CharacterStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CharacterStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "character_store")),
	}
}

// Ensure CharacterStore implements store.CharacterStore interface
var _ store.CharacterStore = (*CharacterStore)(nil)

// WithTx implements store.CharacterStore.WithTx
func (s *CharacterStore) WithTx(tx *sql.Tx) store.CharacterStore {
	return &CharacterStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// Create implements store.CharacterStore.Create
func (s *CharacterStore) Create(ctx context.Context, c *domain.Character) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Debug("character validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO characters (name, house, animal, symbol, nickname, role, age, death, strength)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.House, c.Animal, c.Symbol, c.Nickname, c.Role, c.Age, nullableInt(c.Death), c.Strength,
	).Scan(&c.ID)
	if err != nil {
		log.Error("failed to create character", slog.String("error", redact.Error(err)))
		return store.NewStoreError("character", "create", MapError(err))
	}

	log.Info("character created", slog.Int64("character_id", c.ID))
	return nil
}

// GetByID implements store.CharacterStore.GetByID
func (s *CharacterStore) GetByID(ctx context.Context, id int64) (*domain.Character, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT ` + characterColumns + ` FROM characters WHERE id = ?`)
	c, err := scanCharacter(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("character not found", slog.Int64("character_id", id))
			return nil, store.ErrCharacterNotFound
		}
		log.Error("failed to get character", slog.Int64("character_id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("character", "get", err)
	}
	return c, nil
}

// List implements store.CharacterStore.List
func (s *CharacterStore) List(ctx context.Context, limit, skip int) ([]domain.Character, error) {
	query := s.dialect.Rebind(`SELECT ` + characterColumns + ` FROM characters ORDER BY id ASC LIMIT ? OFFSET ?`)
	return s.query(ctx, "list", query, limit, skip)
}

// Count implements store.CharacterStore.Count
func (s *CharacterStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters`).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count characters",
			slog.String("error", redact.Error(err)))
		return 0, store.NewStoreError("character", "count", err)
	}
	return total, nil
}

// Filter implements store.CharacterStore.Filter
// Only the supplied predicates are added to the WHERE clause.
func (s *CharacterStore) Filter(ctx context.Context, f store.CharacterFilter) ([]domain.Character, error) {
	var (
		conds []string
		args  []any
	)
	for _, p := range []struct {
		column string
		value  string
	}{
		{"name", f.Name},
		{"house", f.House},
		{"role", f.Role},
	} {
		if p.value == "" {
			continue
		}
		conds = append(conds, "LOWER("+p.column+`) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(p.value)+"%")
	}
	if f.AgeMin != nil {
		conds = append(conds, "age >= ?")
		args = append(args, *f.AgeMin)
	}
	if f.AgeMax != nil {
		conds = append(conds, "age <= ?")
		args = append(args, *f.AgeMax)
	}

	query := `SELECT ` + characterColumns + ` FROM characters`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	return s.query(ctx, "filter", s.dialect.Rebind(query), args...)
}

// All implements store.CharacterStore.All
func (s *CharacterStore) All(ctx context.Context) ([]domain.Character, error) {
	return s.query(ctx, "all", `SELECT `+characterColumns+` FROM characters ORDER BY id ASC`)
}

// Update implements store.CharacterStore.Update
func (s *CharacterStore) Update(ctx context.Context, c *domain.Character) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Debug("character validation failed during update", slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		UPDATE characters
		SET name = ?, house = ?, animal = ?, symbol = ?, nickname = ?, role = ?,
		    age = ?, death = ?, strength = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		c.Name, c.House, c.Animal, c.Symbol, c.Nickname, c.Role, c.Age, nullableInt(c.Death), c.Strength, c.ID,
	)
	if err != nil {
		log.Error("failed to update character", slog.Int64("character_id", c.ID),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("character", "update", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrCharacterNotFound); err != nil {
		return err
	}

	log.Info("character updated", slog.Int64("character_id", c.ID))
	return nil
}

// Delete implements store.CharacterStore.Delete
func (s *CharacterStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM characters WHERE id = ?`), id)
	if err != nil {
		log.Error("failed to delete character", slog.Int64("character_id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("character", "delete", err)
	}
	if err := CheckRowsAffected(result, store.ErrCharacterNotFound); err != nil {
		log.Debug("character not found for delete", slog.Int64("character_id", id))
		return err
	}

	log.Info("character deleted", slog.Int64("character_id", id))
	return nil
}

// query runs a multi-row SELECT and always returns a non-nil slice on success.
func (s *CharacterStore) query(ctx context.Context, op, query string, args ...any) ([]domain.Character, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query characters", slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("character", op, err)
	}
	defer func() { _ = rows.Close() }()

	characters := make([]domain.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, store.NewStoreError("character", op, err)
		}
		characters = append(characters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("character", op, err)
	}

	log.Debug("queried characters", slog.String("operation", op), slog.Int("count", len(characters)))
	return characters, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var (
		c     domain.Character
		death sql.NullInt64
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.House, &c.Animal, &c.Symbol, &c.Nickname, &c.Role, &c.Age, &death, &c.Strength,
	); err != nil {
		return nil, err
	}
	if death.Valid {
		d := int(death.Int64)
		c.Death = &d
	}
	return &c, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
