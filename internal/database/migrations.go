package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied idempotently on every start. Calendar dates are stored
// as YYYY-MM-DD text so they survive round trips without a time zone.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS responsibles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'TO_START'
			CHECK (status IN ('TO_START', 'IN_PROGRESS', 'LATE', 'DONE')),
		planned_start TEXT,
		planned_end TEXT,
		actual_start TEXT,
		actual_end TEXT,
		days_late INTEGER NOT NULL DEFAULT 0,
		remaining_percent REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS project_responsibles (
		project_id INTEGER NOT NULL,
		responsible_id INTEGER NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, responsible_id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (responsible_id) REFERENCES responsibles(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE INDEX IF NOT EXISTS idx_project_responsibles_responsible ON project_responsibles(responsible_id)`,
}

// Migrate creates the database schema if needed.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
