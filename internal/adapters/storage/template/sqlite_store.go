package template

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/template"
)

const templateColumns = "id, name, category, content, tags, subject, ticket_priority, report_fields, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new template store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanTemplate(scan func(dest ...any) error) (domain.Template, error) {
	var entity domain.Template
	var tags, reportFields, createdAt, updatedAt string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Category,
		&entity.Content,
		&tags,
		&entity.Subject,
		&entity.TicketPriority,
		&reportFields,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Template{}, err
	}
	storage.DecodeJSONCol("template", "tags", tags, &entity.Tags)
	storage.DecodeJSONCol("template", "report_fields", reportFields, &entity.ReportFields)
	entity.CreatedAt = storage.ParseTime(createdAt)
	entity.UpdatedAt = storage.ParseTime(updatedAt)
	return entity, nil
}

// GetByID retrieves a Template by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM template WHERE id = ?", id)
	entity, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Template{}, fmt.Errorf("template not found: %w", err)
	}
	return entity, err
}

// Save persists a Template to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Template) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "name", "category", "content", "tags", "subject", "ticket_priority", "report_fields", "created_at", "updated_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "category=excluded.category", "content=excluded.content", "tags=excluded.tags", "subject=excluded.subject", "ticket_priority=excluded.ticket_priority", "report_fields=excluded.report_fields", "updated_at=excluded.updated_at"}

	query := fmt.Sprintf(
		"INSERT INTO template (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Category,
		entity.Content,
		storage.EncodeJSONCol("template", "tags", entity.Tags),
		entity.Subject,
		entity.TicketPriority,
		storage.EncodeJSONCol("template", "report_fields", entity.ReportFields),
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Template from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM template WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR content LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// List retrieves Templates matching the filter, most recently updated first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Template, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + templateColumns + " FROM template" + where + " ORDER BY updated_at DESC"

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

	var results []domain.Template
	for rows.Next() {
		entity, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
