// Package store keeps a SQLite ledger of finished experiment runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/inference-sim/montyhall/sim"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout has fixed-width fractional seconds so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded experiment.
type Run struct {
	ID                   string
	CreatedAt            time.Time
	NumDoors             int
	NumDoorsOpenedByHost int
	NumSimulations       int
	Seed                 int64
	Workers              int
	Trial                string
	StayWins             int64
	SwitchWins           int64
	ElapsedMs            float64
}

// RunFromResult converts a finished experiment into a ledger row.
// ID and CreatedAt are left for InsertRun to fill.
func RunFromResult(res *sim.Result) Run {
	out := res.Output()
	return Run{
		NumDoors:             out.NumDoors,
		NumDoorsOpenedByHost: out.NumDoorsOpenedByHost,
		NumSimulations:       out.NumSimulations,
		Seed:                 out.Seed,
		Workers:              out.Workers,
		Trial:                out.Trial,
		StayWins:             out.StayWins,
		SwitchWins:           out.SwitchWins,
		ElapsedMs:            out.ElapsedMs,
	}
}

// Config returns the experiment configuration the run was played with.
func (r Run) Config() sim.Config {
	return sim.Config{
		NumDoors:             r.NumDoors,
		NumDoorsOpenedByHost: r.NumDoorsOpenedByHost,
		NumSimulations:       r.NumSimulations,
	}
}

// Store wraps SQLite access for run data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			num_doors INTEGER NOT NULL,
			num_doors_opened_by_host INTEGER NOT NULL,
			num_simulations INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			trial TEXT NOT NULL,
			stay_wins INTEGER NOT NULL,
			switch_wins INTEGER NOT NULL,
			elapsed_ms REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}
	return nil
}

// InsertRun stores a run and returns its ID. Empty ID and zero CreatedAt are
// filled with a fresh UUID and the current time.
func (s *Store) InsertRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, num_doors, num_doors_opened_by_host, num_simulations, seed, workers, trial, stay_wins, switch_wins, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.NumDoors,
		run.NumDoorsOpenedByHost,
		run.NumSimulations,
		run.Seed,
		run.Workers,
		run.Trial,
		run.StayWins,
		run.SwitchWins,
		run.ElapsedMs,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, num_doors, num_doors_opened_by_host, num_simulations, seed, workers, trial, stay_wins, switch_wins, elapsed_ms
		FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.NumDoors, &r.NumDoorsOpenedByHost, &r.NumSimulations,
			&r.Seed, &r.Workers, &r.Trial, &r.StayWins, &r.SwitchWins, &r.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
