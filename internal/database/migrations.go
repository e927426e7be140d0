package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the run report tables
const Schema = `
	CREATE TABLE IF NOT EXISTS verification_runs (
		id UUID PRIMARY KEY,
		target TEXT NOT NULL,
		driver VARCHAR(32) NOT NULL,
		passed BOOLEAN NOT NULL,
		abort_error TEXT,
		screenshots TEXT[] NOT NULL DEFAULT '{}',
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS verification_checks (
		run_id UUID NOT NULL REFERENCES verification_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		step VARCHAR(64) NOT NULL,
		status VARCHAR(8) NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_verification_runs_started_at ON verification_runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_verification_runs_target ON verification_runs(target);
	`

// ApplySchema creates the report tables on db
func ApplySchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create report tables: %w", err)
	}
	return nil
}

// RunMigrations creates the report tables on the shared connection
func RunMigrations() error {
	return ApplySchema(DB)
}
