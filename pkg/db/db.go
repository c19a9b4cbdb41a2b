// Package db keeps a local SQLite history of analysis runs so past results
// stay inspectable without re-reading every transcript.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	dbDirName  = ".cwa"
	dbFileName = "history.db"
)

// Run is one recorded analysis invocation.
type Run struct {
	ID            int64
	CreatedAt     time.Time
	FromDate      string
	ToDate        string
	ProjectFilter string
	TotalSessions int
	TotalMessages int
	WorkMinutes   int64
	ProjectCount  int
	Format        string
}

// DB wraps the SQLite connection for the run history.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the history database under ~/.cwa.
func Open() (*DB, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, dbDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return OpenAt(filepath.Join(dir, dbFileName))
}

// OpenAt opens or creates the history database at an explicit path.
func OpenAt(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		project_filter TEXT NOT NULL,
		total_sessions INTEGER NOT NULL,
		total_messages INTEGER NOT NULL,
		work_minutes INTEGER NOT NULL,
		project_count INTEGER NOT NULL,
		format TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// RecordRun stores one analysis run.
func (db *DB) RecordRun(run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := db.conn.Exec(`
		INSERT INTO runs (created_at, from_date, to_date, project_filter,
			total_sessions, total_messages, work_minutes, project_count, format)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt,
		run.FromDate,
		run.ToDate,
		run.ProjectFilter,
		run.TotalSessions,
		run.TotalMessages,
		run.WorkMinutes,
		run.ProjectCount,
		run.Format,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	run.ID, _ = res.LastInsertId()
	return nil
}

// RecentRuns returns the N most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Query(`
		SELECT id, created_at, from_date, to_date, project_filter,
			total_sessions, total_messages, work_minutes, project_count, format
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID,
			&r.CreatedAt,
			&r.FromDate,
			&r.ToDate,
			&r.ProjectFilter,
			&r.TotalSessions,
			&r.TotalMessages,
			&r.WorkMinutes,
			&r.ProjectCount,
			&r.Format,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// RunCount returns the total number of recorded runs.
func (db *DB) RunCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}
