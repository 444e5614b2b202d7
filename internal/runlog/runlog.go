// Package runlog records simulation runs to SQLite for later inspection and
// export. The core engines stay persistence-free; recording is an outer
// consumer wired in by the CLI.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// Run describes one recorded simulation.
type Run struct {
	ID        string    `json:"id"`
	Engine    string    `json:"engine"` // "continuous" or "discrete"
	Preset    string    `json:"preset,omitempty"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// Sample is one per-tick metric snapshot. Continuous runs fill Energy and
// leave the discrete-only columns zero; discrete runs do the reverse.
type Sample struct {
	Tick         uint64  `json:"tick"`
	Coherence    float64 `json:"coherence"`
	Entropy      float64 `json:"entropy"`
	Energy       float64 `json:"energy,omitempty"`
	Margin       float64 `json:"margin"`
	ActiveCount  int     `json:"active_count"`
	DominantBin  int     `json:"dominant_bin"`
	PeakPrime    int     `json:"peak_prime"`
	DominantAxis int     `json:"dominant_axis"`
	Fired        bool    `json:"fired"`
}

// Store persists runs and samples in a SQLite database.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) the run-history database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating runlog directory: %w", err)
	}

	dbPath := filepath.Join(dir, "resonance.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening runlog database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun registers a new run and returns it with a fresh ID.
func (s *Store) CreateRun(ctx context.Context, engine, preset string, seed int64) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := Run{
		ID:        uuid.NewString(),
		Engine:    engine,
		Preset:    preset,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, engine, preset, seed, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Engine, run.Preset, run.Seed, run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Run{}, fmt.Errorf("creating run: %w", err)
	}

	return run, nil
}

// AppendSample records one tick snapshot for a run.
func (s *Store) AppendSample(ctx context.Context, runID string, sample Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fired := 0
	if sample.Fired {
		fired = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO samples (run_id, tick, coherence, entropy, energy, margin,
			active_count, dominant_bin, peak_prime, dominant_axis, fired)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sample.Tick, sample.Coherence, sample.Entropy, sample.Energy,
		sample.Margin, sample.ActiveCount, sample.DominantBin, sample.PeakPrime,
		sample.DominantAxis, fired)
	if err != nil {
		return fmt.Errorf("appending sample for run %s: %w", runID, err)
	}

	return nil
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, engine, preset, seed, created_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Engine, &run.Preset, &run.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var run Run
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, engine, preset, seed, created_at FROM runs WHERE id = ?`, runID).
		Scan(&run.ID, &run.Engine, &run.Preset, &run.Seed, &createdAt)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("getting run %s: %w", runID, err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return run, nil
}

// Samples returns a run's tick snapshots in tick order.
func (s *Store) Samples(ctx context.Context, runID string) ([]Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, coherence, entropy, energy, margin, active_count,
			dominant_bin, peak_prime, dominant_axis, fired
		 FROM samples WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying samples for run %s: %w", runID, err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var fired int
		if err := rows.Scan(&sample.Tick, &sample.Coherence, &sample.Entropy,
			&sample.Energy, &sample.Margin, &sample.ActiveCount,
			&sample.DominantBin, &sample.PeakPrime, &sample.DominantAxis, &fired); err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		sample.Fired = fired != 0
		samples = append(samples, sample)
	}

	return samples, rows.Err()
}
