package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS assignments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    test_name TEXT NOT NULL,
    bucket TEXT NOT NULL,
    visitor_id TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_assignments_test ON assignments(test_name);
CREATE INDEX IF NOT EXISTS idx_assignments_test_bucket ON assignments(test_name, bucket);
CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_dedup ON assignments(test_name, visitor_id);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// RecordAssignment stores one visitor's bucket for a test. A visitor is
// counted once per test: repeat exposures hit the dedup index and are
// silently ignored, so the stats reflect distinct visitors.
func (s *SQLiteStore) RecordAssignment(ctx context.Context, testName, bucket, visitorID string) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO assignments (test_name, bucket, visitor_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		testName, bucket, visitorID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record assignment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetBucketStats(ctx context.Context, testName string) ([]BucketStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bucket, COUNT(DISTINCT visitor_id)
		 FROM assignments WHERE test_name = ?
		 GROUP BY bucket ORDER BY bucket`,
		testName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucket stats: %w", err)
	}
	defer rows.Close()

	var stats []BucketStats
	for rows.Next() {
		var bs BucketStats
		if err := rows.Scan(&bs.Bucket, &bs.Visitors); err != nil {
			return nil, fmt.Errorf("failed to scan bucket stats: %w", err)
		}
		stats = append(stats, bs)
	}

	return stats, rows.Err()
}

func (s *SQLiteStore) CountAssignments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}

// GetAssignments returns the recorded rows for one test, newest first.
func (s *SQLiteStore) GetAssignments(ctx context.Context, testName string) ([]*AssignmentRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, test_name, bucket, visitor_id, created_at
		 FROM assignments WHERE test_name = ? ORDER BY created_at DESC`,
		testName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var out []*AssignmentRow
	for rows.Next() {
		var row AssignmentRow
		var createdAt int64
		if err := rows.Scan(&row.ID, &row.TestName, &row.Bucket, &row.VisitorID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		row.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, &row)
	}

	return out, rows.Err()
}
