package runlog

import (
	"context"
	"database/sql"
	"fmt"
)

// schema defines the run-history tables. A run is one recorded simulation;
// samples are its per-tick metric snapshots.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	engine     TEXT NOT NULL,
	preset     TEXT NOT NULL DEFAULT '',
	seed       INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	tick          INTEGER NOT NULL,
	coherence     REAL NOT NULL,
	entropy       REAL NOT NULL,
	energy        REAL NOT NULL DEFAULT 0,
	margin        REAL NOT NULL DEFAULT 0,
	active_count  INTEGER NOT NULL DEFAULT 0,
	dominant_bin  INTEGER NOT NULL DEFAULT 0,
	peak_prime    INTEGER NOT NULL DEFAULT 0,
	dominant_axis INTEGER NOT NULL DEFAULT 0,
	fired         INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, tick)
);

CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
`

// initSchema creates the run-history tables if they do not exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("initializing runlog schema: %w", err)
	}
	return nil
}
