package kpi

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/kpi"
)

const kpiColumns = "id, name, target, actual, lower_is_better, history"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new KPI store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanKpi(scan func(dest ...any) error) (domain.Kpi, error) {
	var entity domain.Kpi
	var lowerIsBetter int
	var history string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Target,
		&entity.Actual,
		&lowerIsBetter,
		&history,
	)
	if err != nil {
		return domain.Kpi{}, err
	}
	entity.LowerIsBetter = lowerIsBetter != 0
	storage.DecodeJSONCol("kpi", "history", history, &entity.History)
	return entity, nil
}

// GetByID retrieves a Kpi by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Kpi, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+kpiColumns+" FROM kpi WHERE id = ?", id)
	entity, err := scanKpi(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Kpi{}, fmt.Errorf("kpi not found: %w", err)
	}
	return entity, err
}

// Save persists a Kpi to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Kpi) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "name", "target", "actual", "lower_is_better", "history"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "target=excluded.target", "actual=excluded.actual", "lower_is_better=excluded.lower_is_better", "history=excluded.history"}

	query := fmt.Sprintf(
		"INSERT INTO kpi (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	lowerIsBetter := 0
	if entity.LowerIsBetter {
		lowerIsBetter = 1
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Target,
		entity.Actual,
		lowerIsBetter,
		storage.EncodeJSONCol("kpi", "history", entity.History),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Kpi from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kpi WHERE id = ?", id)
	return err
}

// List retrieves Kpis matching the filter, ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Kpi, error) {
	where := " WHERE 1=1"
	var args []any
	if filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	query := "SELECT " + kpiColumns + " FROM kpi" + where + " ORDER BY name ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Kpi
	for rows.Next() {
		entity, err := scanKpi(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
