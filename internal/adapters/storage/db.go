package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. List-valued and nested sub-record fields are stored
	// as JSON text columns decoded by the per-entity stores.
	schema := `
	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		assigned_member_ids TEXT NOT NULL DEFAULT '[]',
		pulse_log TEXT NOT NULL DEFAULT '[]',
		email_log TEXT NOT NULL DEFAULT '[]',
		audit TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS team_member (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		skills TEXT NOT NULL DEFAULT '[]',
		assigned_kpi_ids TEXT NOT NULL DEFAULT '[]',
		home_office TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS task (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		due_date TEXT,
		assignee_id TEXT NOT NULL DEFAULT '',
		client_id TEXT,
		priority TEXT NOT NULL,
		elapsed_seconds INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS kpi (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target REAL NOT NULL DEFAULT 0,
		actual REAL NOT NULL DEFAULT 0,
		lower_is_better INTEGER NOT NULL DEFAULT 0,
		history TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS template (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		subject TEXT NOT NULL DEFAULT '',
		ticket_priority TEXT NOT NULL DEFAULT '',
		report_fields TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS one_on_one_session (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		supervisor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		action_items TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS ptl_report (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		supervisor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		risk TEXT
	);

	CREATE TABLE IF NOT EXISTS feed_forward (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		supervisor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		feelings TEXT NOT NULL DEFAULT '',
		reasons TEXT NOT NULL DEFAULT '',
		actions TEXT NOT NULL DEFAULT '',
		action_items TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS setting (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
