package teammember

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/teammember"
)

const memberColumns = "id, name, role, email, skills, assigned_kpi_ids, home_office"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanMember(scan func(dest ...any) error) (domain.TeamMember, error) {
	var entity domain.TeamMember
	var skills, kpiIDs, homeOffice string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Role,
		&entity.Email,
		&skills,
		&kpiIDs,
		&homeOffice,
	)
	if err != nil {
		return domain.TeamMember{}, err
	}
	storage.DecodeJSONCol("team_member", "skills", skills, &entity.Skills)
	storage.DecodeJSONCol("team_member", "assigned_kpi_ids", kpiIDs, &entity.AssignedKpiIDs)
	storage.DecodeJSONCol("team_member", "home_office", homeOffice, &entity.HomeOffice)
	return entity, nil
}

// GetByID retrieves a TeamMember by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.TeamMember, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM team_member WHERE id = ?", id)
	entity, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.TeamMember{}, fmt.Errorf("team member not found: %w", err)
	}
	return entity, err
}

// Save persists a TeamMember to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.TeamMember) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "name", "role", "email", "skills", "assigned_kpi_ids", "home_office"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "role=excluded.role", "email=excluded.email", "skills=excluded.skills", "assigned_kpi_ids=excluded.assigned_kpi_ids", "home_office=excluded.home_office"}

	query := fmt.Sprintf(
		"INSERT INTO team_member (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Role,
		entity.Email,
		storage.EncodeJSONCol("team_member", "skills", entity.Skills),
		storage.EncodeJSONCol("team_member", "assigned_kpi_ids", entity.AssignedKpiIDs),
		storage.EncodeJSONCol("team_member", "home_office", entity.HomeOffice),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a TeamMember from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM team_member WHERE id = ?", id)
	return err
}

// SearchByName finds members whose name matches the query (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching members ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.TeamMember, error) {
	q := "SELECT " + memberColumns + " FROM team_member WHERE name LIKE ? ORDER BY name LIMIT ?"
	rows, err := s.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TeamMember
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// UnassignKpi drops a KPI ID from every member's assignment list.
// Assignments live in a JSON column, so affected rows are rewritten.
// POST: Returns the number of members updated
func (s *SQLiteStore) UnassignKpi(ctx context.Context, kpiID string) (int, error) {
	members, err := s.List(ctx, ListFilter{})
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, m := range members {
		kept := m.AssignedKpiIDs[:0]
		removed := false
		for _, id := range m.AssignedKpiIDs {
			if id == kpiID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		if !removed {
			continue
		}
		m.AssignedKpiIDs = kept
		if err := s.Save(ctx, m); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// listWhereClause builds the WHERE clause and args for List queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Role != "" {
		where += " AND role = ?"
		args = append(args, filter.Role)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ? OR role LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term, term)
	}
	return where, args
}

// List retrieves TeamMembers matching the filter, ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.TeamMember, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM team_member" + where + " ORDER BY name ASC"

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

	var results []domain.TeamMember
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
