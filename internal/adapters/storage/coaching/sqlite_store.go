package coaching

import (
	"context"
	"database/sql"
	"fmt"

	"opsdesk/internal/adapters/storage"
	domain "opsdesk/internal/domain/coaching"
)

// SQLiteSessionStore implements SessionStore using SQLite.
type SQLiteSessionStore struct {
	db storage.SQLDB
}

// NewSQLiteSessionStore creates a new one-on-one session store.
func NewSQLiteSessionStore(db storage.SQLDB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

const sessionColumns = "id, member_id, supervisor_id, date, summary, action_items"

func scanSession(scan func(dest ...any) error) (domain.OneOnOneSession, error) {
	var entity domain.OneOnOneSession
	var date, actionItems string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.SupervisorID,
		&date,
		&entity.Summary,
		&actionItems,
	)
	if err != nil {
		return domain.OneOnOneSession{}, err
	}
	entity.Date = storage.ParseTime(date)
	storage.DecodeJSONCol("one_on_one_session", "action_items", actionItems, &entity.ActionItems)
	return entity, nil
}

// GetByID retrieves a OneOnOneSession by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteSessionStore) GetByID(ctx context.Context, id string) (domain.OneOnOneSession, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM one_on_one_session WHERE id = ?", id)
	entity, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.OneOnOneSession{}, fmt.Errorf("one-on-one session not found: %w", err)
	}
	return entity, err
}

// Save persists a OneOnOneSession to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteSessionStore) Save(ctx context.Context, entity domain.OneOnOneSession) error {
	query := `INSERT INTO one_on_one_session (id, member_id, supervisor_id, date, summary, action_items)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET member_id=excluded.member_id, supervisor_id=excluded.supervisor_id,
		date=excluded.date, summary=excluded.summary, action_items=excluded.action_items`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.SupervisorID,
		storage.FormatTime(entity.Date),
		entity.Summary,
		storage.EncodeJSONCol("one_on_one_session", "action_items", entity.ActionItems),
	)
	return err
}

// Delete removes a OneOnOneSession from the database.
func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM one_on_one_session WHERE id = ?", id)
	return err
}

// DeleteByMember removes every session for a member.
// POST: Returns the number of sessions removed
func (s *SQLiteSessionStore) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM one_on_one_session WHERE member_id = ?", memberID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves sessions matching the filter, most recent first.
func (s *SQLiteSessionStore) List(ctx context.Context, filter ListFilter) ([]domain.OneOnOneSession, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + sessionColumns + " FROM one_on_one_session" + where + " ORDER BY date DESC" + limitClause(filter, &args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.OneOnOneSession
	for rows.Next() {
		entity, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SQLitePtlStore implements PtlStore using SQLite.
type SQLitePtlStore struct {
	db storage.SQLDB
}

// NewSQLitePtlStore creates a new PTL report store.
func NewSQLitePtlStore(db storage.SQLDB) *SQLitePtlStore {
	return &SQLitePtlStore{db: db}
}

const ptlColumns = "id, member_id, supervisor_id, date, summary, risk"

func scanPtl(scan func(dest ...any) error) (domain.PtlReport, error) {
	var entity domain.PtlReport
	var date string
	var risk sql.NullString
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.SupervisorID,
		&date,
		&entity.Summary,
		&risk,
	)
	if err != nil {
		return domain.PtlReport{}, err
	}
	entity.Date = storage.ParseTime(date)
	if risk.Valid && risk.String != "" {
		var assessment domain.RiskAssessment
		storage.DecodeJSONCol("ptl_report", "risk", risk.String, &assessment)
		entity.Risk = &assessment
	}
	return entity, nil
}

// GetByID retrieves a PtlReport by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLitePtlStore) GetByID(ctx context.Context, id string) (domain.PtlReport, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+ptlColumns+" FROM ptl_report WHERE id = ?", id)
	entity, err := scanPtl(row.Scan)
	if err == sql.ErrNoRows {
		return domain.PtlReport{}, fmt.Errorf("ptl report not found: %w", err)
	}
	return entity, err
}

// Save persists a PtlReport to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLitePtlStore) Save(ctx context.Context, entity domain.PtlReport) error {
	var risk interface{}
	if entity.Risk != nil {
		risk = storage.EncodeJSONCol("ptl_report", "risk", entity.Risk)
	}
	query := `INSERT INTO ptl_report (id, member_id, supervisor_id, date, summary, risk)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET member_id=excluded.member_id, supervisor_id=excluded.supervisor_id,
		date=excluded.date, summary=excluded.summary, risk=excluded.risk`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.SupervisorID,
		storage.FormatTime(entity.Date),
		entity.Summary,
		risk,
	)
	return err
}

// Delete removes a PtlReport from the database.
func (s *SQLitePtlStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM ptl_report WHERE id = ?", id)
	return err
}

// DeleteByMember removes every PTL report for a member.
// POST: Returns the number of reports removed
func (s *SQLitePtlStore) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ptl_report WHERE member_id = ?", memberID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves PTL reports matching the filter, most recent first.
func (s *SQLitePtlStore) List(ctx context.Context, filter ListFilter) ([]domain.PtlReport, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + ptlColumns + " FROM ptl_report" + where + " ORDER BY date DESC" + limitClause(filter, &args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PtlReport
	for rows.Next() {
		entity, err := scanPtl(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SQLiteFeedForwardStore implements FeedForwardStore using SQLite.
type SQLiteFeedForwardStore struct {
	db storage.SQLDB
}

// NewSQLiteFeedForwardStore creates a new feed-forward store.
func NewSQLiteFeedForwardStore(db storage.SQLDB) *SQLiteFeedForwardStore {
	return &SQLiteFeedForwardStore{db: db}
}

const ffColumns = "id, member_id, supervisor_id, date, feelings, reasons, actions, action_items"

func scanFeedForward(scan func(dest ...any) error) (domain.FeedForward, error) {
	var entity domain.FeedForward
	var date, actionItems string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.SupervisorID,
		&date,
		&entity.Feelings,
		&entity.Reasons,
		&entity.Actions,
		&actionItems,
	)
	if err != nil {
		return domain.FeedForward{}, err
	}
	entity.Date = storage.ParseTime(date)
	storage.DecodeJSONCol("feed_forward", "action_items", actionItems, &entity.ActionItems)
	return entity, nil
}

// GetByID retrieves a FeedForward by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteFeedForwardStore) GetByID(ctx context.Context, id string) (domain.FeedForward, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+ffColumns+" FROM feed_forward WHERE id = ?", id)
	entity, err := scanFeedForward(row.Scan)
	if err == sql.ErrNoRows {
		return domain.FeedForward{}, fmt.Errorf("feed-forward not found: %w", err)
	}
	return entity, err
}

// Save persists a FeedForward to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteFeedForwardStore) Save(ctx context.Context, entity domain.FeedForward) error {
	query := `INSERT INTO feed_forward (id, member_id, supervisor_id, date, feelings, reasons, actions, action_items)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET member_id=excluded.member_id, supervisor_id=excluded.supervisor_id,
		date=excluded.date, feelings=excluded.feelings, reasons=excluded.reasons, actions=excluded.actions,
		action_items=excluded.action_items`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.SupervisorID,
		storage.FormatTime(entity.Date),
		entity.Feelings,
		entity.Reasons,
		entity.Actions,
		storage.EncodeJSONCol("feed_forward", "action_items", entity.ActionItems),
	)
	return err
}

// Delete removes a FeedForward from the database.
func (s *SQLiteFeedForwardStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM feed_forward WHERE id = ?", id)
	return err
}

// DeleteByMember removes every feed-forward for a member.
// POST: Returns the number of records removed
func (s *SQLiteFeedForwardStore) DeleteByMember(ctx context.Context, memberID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM feed_forward WHERE member_id = ?", memberID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves feed-forwards matching the filter, most recent first.
func (s *SQLiteFeedForwardStore) List(ctx context.Context, filter ListFilter) ([]domain.FeedForward, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + ffColumns + " FROM feed_forward" + where + " ORDER BY date DESC" + limitClause(filter, &args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.FeedForward
	for rows.Next() {
		entity, err := scanFeedForward(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// listWhereClause builds the WHERE clause and args shared by the
// coaching List queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.MemberID != "" {
		where += " AND member_id = ?"
		args = append(args, filter.MemberID)
	}
	return where, args
}

// limitClause appends LIMIT/OFFSET args and returns the clause text.
func limitClause(filter ListFilter, args *[]any) string {
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	*args = append(*args, limit, filter.Offset)
	return " LIMIT ? OFFSET ?"
}
