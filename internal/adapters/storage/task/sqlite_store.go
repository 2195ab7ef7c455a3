package task

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/task"
)

const taskColumns = "id, title, description, status, due_date, assignee_id, client_id, priority, elapsed_seconds"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new task store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanTask(scan func(dest ...any) error) (domain.Task, error) {
	var entity domain.Task
	var dueDate, clientID sql.NullString
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Status,
		&dueDate,
		&entity.AssigneeID,
		&clientID,
		&entity.Priority,
		&entity.ElapsedSeconds,
	)
	if err != nil {
		return domain.Task{}, err
	}
	if dueDate.Valid {
		entity.DueDate = storage.ParseTime(dueDate.String)
	}
	if clientID.Valid {
		entity.ClientID = clientID.String
	}
	return entity, nil
}

// GetByID retrieves a Task by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM task WHERE id = ?", id)
	entity, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Task{}, fmt.Errorf("task not found: %w", err)
	}
	return entity, err
}

// Save persists a Task to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "title", "description", "status", "due_date", "assignee_id", "client_id", "priority", "elapsed_seconds"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"title=excluded.title", "description=excluded.description", "status=excluded.status", "due_date=excluded.due_date", "assignee_id=excluded.assignee_id", "client_id=excluded.client_id", "priority=excluded.priority", "elapsed_seconds=excluded.elapsed_seconds"}

	query := fmt.Sprintf(
		"INSERT INTO task (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var clientID interface{}
	if entity.ClientID != "" {
		clientID = entity.ClientID
	}
	var dueDate interface{}
	if !entity.DueDate.IsZero() {
		dueDate = storage.FormatTime(entity.DueDate)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Status,
		dueDate,
		entity.AssigneeID,
		clientID,
		entity.Priority,
		entity.ElapsedSeconds,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Task from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM task WHERE id = ?", id)
	return err
}

// ReassignAll moves every task held by one assignee to another.
// PRE: fromAssigneeID is non-empty
// POST: Returns the number of tasks moved
func (s *SQLiteStore) ReassignAll(ctx context.Context, fromAssigneeID, toAssigneeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE task SET assignee_id = ? WHERE assignee_id = ?", toAssigneeID, fromAssigneeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// DetachClient clears the client reference on every task linked to it.
// PRE: clientID is non-empty
// POST: Returns the number of tasks detached
func (s *SQLiteStore) DetachClient(ctx context.Context, clientID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE task SET client_id = NULL WHERE client_id = ?", clientID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// listWhereClause builds the WHERE clause and args for List queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		where += " AND priority = ?"
		args = append(args, filter.Priority)
	}
	if filter.AssigneeID != "" {
		where += " AND assignee_id = ?"
		args = append(args, filter.AssigneeID)
	}
	if filter.ClientID != "" {
		where += " AND client_id = ?"
		args = append(args, filter.ClientID)
	}
	if filter.Search != "" {
		where += " AND (title LIKE ? OR description LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// List retrieves Tasks matching the filter, soonest due first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Task, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + taskColumns + " FROM task" + where + " ORDER BY due_date IS NULL, due_date ASC"

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

	var results []domain.Task
	for rows.Next() {
		entity, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
