package storage

import (
	"database/sql"
	"fmt"
)

// migrations holds ordered schema changes applied on top of the base
// schema created by InitDB. Version N is migrations[N-1]; applied
// versions are recorded in schema_version.
var migrations = []string{
	// v1: lookup indexes for cascade and projection queries.
	`
	CREATE INDEX IF NOT EXISTS idx_task_assignee ON task(assignee_id);
	CREATE INDEX IF NOT EXISTS idx_task_client ON task(client_id);
	CREATE INDEX IF NOT EXISTS idx_session_member ON one_on_one_session(member_id);
	CREATE INDEX IF NOT EXISTS idx_ptl_member ON ptl_report(member_id);
	CREATE INDEX IF NOT EXISTS idx_ff_member ON feed_forward(member_id);
	`,
}

// LatestSchemaVersion returns the highest migration version this build knows about.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion returns the highest applied migration version, or 0
// when no migration has run yet.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, nil
	}
	var current int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
	return current, err
}

// MigrateDB applies any pending schema migrations.
// PRE: InitDB has been run against db
// POST: schema_version records every applied version
// INVARIANT: migrations are applied in order, each at most once
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for v := current + 1; v <= len(migrations); v++ {
		if _, err := db.Exec(migrations[v-1]); err != nil {
			return fmt.Errorf("migration %d failed: %w", v, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))", v); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
	}
	return nil
}
