package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Entities are stored as JSON documents; the scalar columns beside them
// exist for lookups, ordering and the optimistic version check.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		share_link_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'planning'
		              CHECK(status IN ('planning','in_progress','in_review','completed')),
		deadline      TEXT NOT NULL DEFAULT '',
		version       INTEGER NOT NULL DEFAULT 1 CHECK(version > 0),
		document      TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_share_link ON projects(share_link_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_deadline ON projects(deadline)`,

	`CREATE TABLE IF NOT EXISTS leads (
		id         TEXT PRIMARY KEY,
		email      TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'new'
		           CHECK(status IN ('new','contacted','proposal_sent','converted')),
		version    INTEGER NOT NULL DEFAULT 1 CHECK(version > 0),
		document   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,

	`CREATE TABLE IF NOT EXISTS client_requirements (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		lead_id      TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		document     TEXT NOT NULL,
		submitted_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_client_requirements_lead ON client_requirements(lead_id)`,
}
