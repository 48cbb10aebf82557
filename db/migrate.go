package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tournaments (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		state       TEXT NOT NULL,
		event_date  DATE NOT NULL,
		document    JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS tournaments_template_idx ON tournaments (template_id, event_date DESC)`,
	`CREATE TABLE IF NOT EXISTS tournament_snapshots (
		id            BIGSERIAL PRIMARY KEY,
		tournament_id TEXT NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
		document      JSONB NOT NULL,
		taken_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS historical_results (
		id          BIGSERIAL PRIMARY KEY,
		event_id    TEXT NOT NULL,
		template_id TEXT NOT NULL,
		year        INTEGER NOT NULL,
		month       TEXT NOT NULL,
		day         INTEGER NOT NULL,
		position    INTEGER NOT NULL,
		team        TEXT NOT NULL,
		UNIQUE (event_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS historical_results_template_idx ON historical_results (template_id)`,
}

// Migrate creates the tables the service needs if they do not exist yet.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for i, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}
	return nil
}
