// Package history records run summaries in MySQL so past generations and
// comparisons can be listed across report directories.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"qaforge/internal/config"
)

const schema = `CREATE TABLE IF NOT EXISTS qaforge_runs (
	id INT AUTO_INCREMENT PRIMARY KEY,
	kind VARCHAR(16) NOT NULL,
	source VARCHAR(255) NOT NULL,
	artifact VARCHAR(255) NOT NULL,
	suites INT NOT NULL DEFAULT 0,
	cases INT NOT NULL DEFAULT 0,
	pages INT NOT NULL DEFAULT 0,
	score DOUBLE NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
)`

// Run is one recorded pipeline run.
type Run struct {
	ID        int
	Kind      string
	Source    string
	Artifact  string
	Suites    int
	Cases     int
	Pages     int
	Score     float64
	CreatedAt time.Time
}

// Store records runs in MySQL. A nil *Store is valid and ignores all calls,
// so callers need no guard when no database is configured.
type Store struct {
	db *sql.DB
}

// Open connects to MySQL and ensures the run table exists.
func Open(cfg config.DBConfig) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create run table: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a run summary.
func (s *Store) Record(ctx context.Context, run Run) error {
	if s == nil {
		return nil
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO qaforge_runs (kind, source, artifact, suites, cases, pages, score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Kind, run.Source, run.Artifact, run.Suites, run.Cases, run.Pages, run.Score, createdAt)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, source, artifact, suites, cases, pages, score, created_at
		 FROM qaforge_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Source, &r.Artifact, &r.Suites, &r.Cases, &r.Pages, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
