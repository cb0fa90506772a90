package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the run-history database.
type DB struct {
	*sql.DB
	path string
}

// Open opens or creates the history database at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func Open(path string) (*DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir %s: %w", filepath.Dir(path), err)
		}
		// WAL mode for better concurrent read performance
		dsn = fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if path == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect to history database: %w", err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return db, nil
}

// Path returns the database file path, or ":memory:".
func (db *DB) Path() string {
	return db.path
}

// Run is one recorded test run.
type Run struct {
	ID              int64
	StartedAt       time.Time
	DurationSeconds float64
	Workers         int
	Total           int
	Passed          int
	Failed          int
	MarkerExpr      string
}

// RecordRun inserts a run row and fills in its assigned id.
func (db *DB) RecordRun(run *Run) error {
	res, err := db.Exec(`
		INSERT INTO runs (
			started_at, duration_seconds, workers, total, passed, failed, marker_expr
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.DurationSeconds,
		run.Workers,
		run.Total,
		run.Passed,
		run.Failed,
		run.MarkerExpr,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record run id: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT id, started_at, duration_seconds, workers, total, passed, failed, marker_expr
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.DurationSeconds, &run.Workers,
			&run.Total, &run.Passed, &run.Failed, &run.MarkerExpr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
