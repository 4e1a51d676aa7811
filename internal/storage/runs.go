package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded computation.
type Run struct {
	RunID      string
	StartedAt  time.Time
	Duration   time.Duration
	Workers    int
	DiameterBL int
	DiameterBR int
	CrossLo    int
	CrossHi    int
	Total      int64
	AppVersion string

	// Counts holds the number of configurations per distance, index =
	// distance. List leaves it empty.
	Counts []int64
}

// RunRepository provides access to recorded runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a run with its counts and returns the new run ID.
func (r *RunRepository) Create(run Run) (string, error) {
	id := uuid.New().String()

	var appVersion *string
	if run.AppVersion != "" {
		appVersion = &run.AppVersion
	}

	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (run_id, started_at, duration_ms, workers, diameter_bl, diameter_br, cross_lo, cross_hi, total, app_version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, run.StartedAt.UTC().Format(time.RFC3339), run.Duration.Milliseconds(), run.Workers,
			run.DiameterBL, run.DiameterBR, run.CrossLo, run.CrossHi, run.Total, appVersion)
		if err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}

		for d, n := range run.Counts {
			if n == 0 {
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO run_counts (run_id, distance, count) VALUES (?, ?, ?)
			`, id, d, n)
			if err != nil {
				return fmt.Errorf("failed to store count for distance %d: %w", d, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

const runColumns = `run_id, started_at, duration_ms, workers, diameter_bl, diameter_br, cross_lo, cross_hi, total, app_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var startedAtStr string
	var durationMs int64
	var appVersion sql.NullString

	err := s.Scan(&run.RunID, &startedAtStr, &durationMs, &run.Workers,
		&run.DiameterBL, &run.DiameterBR, &run.CrossLo, &run.CrossHi, &run.Total, &appVersion)
	if err != nil {
		return run, err
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return run, fmt.Errorf("run %s: bad started_at: %w", run.RunID, err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.AppVersion = appVersion.String
	return run, nil
}

// Get retrieves a run and its counts by ID. It returns nil if there is no
// such run.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT distance, count FROM run_counts
		WHERE run_id = ?
		ORDER BY distance ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d int
		var n int64
		if err := rows.Scan(&d, &n); err != nil {
			return nil, fmt.Errorf("failed to scan run count: %w", err)
		}
		for len(run.Counts) <= d {
			run.Counts = append(run.Counts, 0)
		}
		run.Counts[d] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// List retrieves the most recent runs, newest first, without their counts.
func (r *RunRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT `+runColumns+` FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
