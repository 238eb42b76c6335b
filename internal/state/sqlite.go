package state

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(wal)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// --- Snapshot operations ---

// SaveSnapshot stores a snapshot and its requirement rows in one
// transaction. It assigns the snapshot an ID and timestamp if unset.
func (s *SQLiteStore) SaveSnapshot(snap *Snapshot, reqs []SnapshotRequirement) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if snap.ID == "" {
		snap.ID = generateID()
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, path, kind, content_sha256, taken_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Path, snap.Kind, snap.ContentSHA256, snap.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for _, r := range reqs {
		_, err = tx.Exec(
			`INSERT INTO snapshot_requirements (snapshot_id, name, canonical, specifier, extras, marker, url, line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, r.Name, r.Canonical, r.Specifier, r.Extras, r.Marker, r.URL, r.Line,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot requirement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LatestSnapshot retrieves the most recent snapshot for a path.
// Returns nil without error when no snapshot exists.
func (s *SQLiteStore) LatestSnapshot(path string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	snap := &Snapshot{}
	err := s.db.QueryRow(
		`SELECT id, path, kind, content_sha256, taken_at
		 FROM snapshots WHERE path = ? ORDER BY taken_at DESC LIMIT 1`,
		path,
	).Scan(&snap.ID, &snap.Path, &snap.Kind, &snap.ContentSHA256, &snap.TakenAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots retrieves snapshots for a path, newest first.
// A limit of 0 or less means no limit.
func (s *SQLiteStore) ListSnapshots(path string, limit int) ([]*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, path, kind, content_sha256, taken_at
	          FROM snapshots WHERE path = ? ORDER BY taken_at DESC`
	args := []any{path}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		snap := &Snapshot{}
		if err := rows.Scan(&snap.ID, &snap.Path, &snap.Kind, &snap.ContentSHA256, &snap.TakenAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// GetSnapshotRequirements retrieves the requirement rows for a snapshot
// in manifest line order.
func (s *SQLiteStore) GetSnapshotRequirements(snapshotID string) ([]SnapshotRequirement, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT snapshot_id, name, canonical, specifier, extras, marker, url, line
		 FROM snapshot_requirements WHERE snapshot_id = ? ORDER BY line`,
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot requirements: %w", err)
	}
	defer rows.Close()

	var reqs []SnapshotRequirement
	for rows.Next() {
		var r SnapshotRequirement
		err := rows.Scan(&r.SnapshotID, &r.Name, &r.Canonical, &r.Specifier, &r.Extras, &r.Marker, &r.URL, &r.Line)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot requirement: %w", err)
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// --- Lint run operations ---

// RecordLintRun stores a lint run summary. It assigns an ID and
// timestamp if unset.
func (s *SQLiteStore) RecordLintRun(run *LintRun) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if run.ID == "" {
		run.ID = generateID()
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO lint_runs (id, path, kind, errors, warnings, infos, hints, ran_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.Kind, run.Errors, run.Warnings, run.Infos, run.Hints, run.RanAt, run.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to record lint run: %w", err)
	}
	return nil
}

// ListLintRuns retrieves lint runs for a path, newest first.
// A limit of 0 or less means no limit.
func (s *SQLiteStore) ListLintRuns(path string, limit int) ([]*LintRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, path, kind, errors, warnings, infos, hints, ran_at, duration_ms
	          FROM lint_runs WHERE path = ? ORDER BY ran_at DESC`
	args := []any{path}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lint runs: %w", err)
	}
	defer rows.Close()

	var runs []*LintRun
	for rows.Next() {
		run := &LintRun{}
		err := rows.Scan(&run.ID, &run.Path, &run.Kind, &run.Errors, &run.Warnings, &run.Infos, &run.Hints, &run.RanAt, &run.DurationMS)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lint run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
