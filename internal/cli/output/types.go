package output

// JSON payload types shared by commands.

// LintSummary aggregates diagnostic counts across files.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
}

// LintDiagnostic is one finding in JSON output.
type LintDiagnostic struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// LintFileResult groups diagnostics per file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintOutput is the JSON payload for the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// ListedRequirement is one dependency in the list command output.
type ListedRequirement struct {
	Name      string `json:"name"`
	Canonical string `json:"canonical"`
	Specifier string `json:"specifier,omitempty"`
	Extras    string `json:"extras,omitempty"`
	Marker    string `json:"marker,omitempty"`
	URL       string `json:"url,omitempty"`
	Pinned    bool   `json:"pinned"`
	Line      int    `json:"line"`
}

// ListOutput is the JSON payload for the list command.
type ListOutput struct {
	Path         string              `json:"path"`
	Requirements []ListedRequirement `json:"requirements"`
}

// DiffEntry is one change between two snapshots of a manifest.
type DiffEntry struct {
	Change string `json:"change"` // added, removed, changed
	Name   string `json:"name"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// DiffOutput is the JSON payload for the diff command.
type DiffOutput struct {
	Path       string      `json:"path"`
	SnapshotID string      `json:"snapshot_id"`
	TakenAt    string      `json:"taken_at"`
	Entries    []DiffEntry `json:"entries"`
}
