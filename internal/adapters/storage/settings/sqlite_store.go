package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"opsdesk/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new settings store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get loads the value stored under key into out. A missing key leaves
// out untouched and returns false, so callers fall back to their
// default. A malformed stored value is treated the same way rather
// than surfacing an error the caller cannot act on.
// PRE: out is a non-nil pointer
// POST: returns true only when a decodable value was loaded
func (s *SQLiteStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM setting WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("setting_decode_failed", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

// Set stores value under key, JSON-encoded, replacing any prior value.
// PRE: value is JSON-serializable
// POST: a later Get for key yields an equal value
func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO setting (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		key, string(raw))
	return err
}

// Delete removes the value stored under key. Missing keys are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM setting WHERE key = ?", key)
	return err
}
