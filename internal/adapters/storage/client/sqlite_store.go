package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/client"
)

const clientColumns = "id, name, status, contact_person, contact_email, notes, tags, assigned_member_ids, pulse_log, email_log, audit"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new client store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// scanClient decodes one row, repairing malformed JSON columns to their
// zero values rather than discarding the record.
func scanClient(scan func(dest ...any) error) (domain.Client, error) {
	var entity domain.Client
	var tags, memberIDs, pulseLog, emailLog, audit string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Status,
		&entity.ContactPerson,
		&entity.ContactEmail,
		&entity.Notes,
		&tags,
		&memberIDs,
		&pulseLog,
		&emailLog,
		&audit,
	)
	if err != nil {
		return domain.Client{}, err
	}
	storage.DecodeJSONCol("client", "tags", tags, &entity.Tags)
	storage.DecodeJSONCol("client", "assigned_member_ids", memberIDs, &entity.AssignedMemberIDs)
	storage.DecodeJSONCol("client", "pulse_log", pulseLog, &entity.PulseLog)
	storage.DecodeJSONCol("client", "email_log", emailLog, &entity.EmailLog)
	storage.DecodeJSONCol("client", "audit", audit, &entity.Audit)
	return entity, nil
}

// GetByID retrieves a Client by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Client, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+clientColumns+" FROM client WHERE id = ?", id)
	entity, err := scanClient(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Client{}, fmt.Errorf("client not found: %w", err)
	}
	return entity, err
}

// Save persists a Client to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "name", "status", "contact_person", "contact_email", "notes", "tags", "assigned_member_ids", "pulse_log", "email_log", "audit"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "status=excluded.status", "contact_person=excluded.contact_person", "contact_email=excluded.contact_email", "notes=excluded.notes", "tags=excluded.tags", "assigned_member_ids=excluded.assigned_member_ids", "pulse_log=excluded.pulse_log", "email_log=excluded.email_log", "audit=excluded.audit"}

	query := fmt.Sprintf(
		"INSERT INTO client (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Status,
		entity.ContactPerson,
		entity.ContactEmail,
		entity.Notes,
		storage.EncodeJSONCol("client", "tags", entity.Tags),
		storage.EncodeJSONCol("client", "assigned_member_ids", entity.AssignedMemberIDs),
		storage.EncodeJSONCol("client", "pulse_log", entity.PulseLog),
		storage.EncodeJSONCol("client", "email_log", entity.EmailLog),
		storage.EncodeJSONCol("client", "audit", entity.Audit),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Client from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM client WHERE id = ?", id)
	return err
}

// SearchByName finds clients whose name matches the query (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching clients ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	q := "SELECT " + clientColumns + " FROM client WHERE name LIKE ? ORDER BY name LIMIT ?"
	rows, err := s.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Client
	for rows.Next() {
		entity, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// listWhereClause builds the WHERE clause and args for List queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR contact_person LIKE ? OR notes LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	return where, args
}

// List retrieves Clients matching the filter, ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Client, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + clientColumns + " FROM client" + where + " ORDER BY name ASC"

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

	var results []domain.Client
	for rows.Next() {
		entity, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
