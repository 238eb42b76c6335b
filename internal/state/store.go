// Package state persists manifest snapshots and lint run history using
// SQLite. Snapshots make the diff command possible; lint runs feed the
// history command.
package state

import "time"

// Snapshot records the content of a manifest at a point in time.
type Snapshot struct {
	ID            string
	Path          string
	Kind          string // "requirements" or "editorconfig"
	ContentSHA256 string
	TakenAt       time.Time
}

// SnapshotRequirement is one dependency captured in a snapshot.
type SnapshotRequirement struct {
	SnapshotID string
	Name       string
	Canonical  string
	Specifier  string
	Extras     string // comma-joined, canonical order as written
	Marker     string
	URL        string
	Line       int
}

// LintRun summarizes one lint invocation against a file.
type LintRun struct {
	ID         string
	Path       string
	Kind       string
	Errors     int
	Warnings   int
	Infos      int
	Hints      int
	RanAt      time.Time
	DurationMS int64
}

// Store is the persistence interface for snapshots and lint history.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	SaveSnapshot(snap *Snapshot, reqs []SnapshotRequirement) error
	LatestSnapshot(path string) (*Snapshot, error)
	ListSnapshots(path string, limit int) ([]*Snapshot, error)
	GetSnapshotRequirements(snapshotID string) ([]SnapshotRequirement, error)

	RecordLintRun(run *LintRun) error
	ListLintRuns(path string, limit int) ([]*LintRun, error)
}
