// Package requirements parses pip requirements manifests.
//
// The grammar is the PEP 508 dependency specifier subset that pip accepts in
// requirements files: a package name, optional extras in brackets, an
// optional comma-separated version specifier, an optional direct URL
// reference, and an optional environment marker after a semicolon. Option
// lines (-r, -e, --index-url, ...) are recognized and retained but not
// treated as requirements.
package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/token"
)

// File is a parsed requirements manifest.
type File struct {
	Path         string
	Requirements []*Requirement
	Options      []*Option
	Errors       []*ParseError
}

// Requirement is a single dependency specifier line.
type Requirement struct {
	Name        string        // name as written, e.g. "Pandas"
	Canonical   string        // PEP 503 normalized name, e.g. "pandas"
	Extras      []string      // extras inside brackets, as written
	Constraints []Constraint  // version constraints, in source order
	URL         string        // direct reference after "@", if any
	Marker      string        // environment marker after ";", if any
	Raw         string        // the logical line as written
	Pos         token.Position
}

// Option is a pip option line such as "-r base.txt" or "--index-url ...".
type Option struct {
	Flag  string // e.g. "-r", "--index-url"
	Value string
	Pos   token.Position
}

// Constraint is a single version clause, e.g. ">=2.2.0".
type Constraint struct {
	Op      string // ==, !=, <=, >=, <, >, ~=, ===
	Version string
	Pos     token.Position
}

// String returns the clause as written, e.g. ">=2.2.0".
func (c Constraint) String() string {
	return c.Op + c.Version
}

// IsPinned returns true if the requirement is pinned to an exact version.
func (r *Requirement) IsPinned() bool {
	for _, c := range r.Constraints {
		if (c.Op == "==" && !hasWildcard(c.Version)) || c.Op == "===" {
			return true
		}
	}
	return false
}

// Specifier returns the joined constraint clauses, e.g. ">=1.0,<2.0".
func (r *Requirement) Specifier() string {
	s := ""
	for i, c := range r.Constraints {
		if i > 0 {
			s += ","
		}
		s += c.String()
	}
	return s
}

// ParseError describes a line that failed the specifier grammar.
type ParseError struct {
	Path    string
	Pos     token.Position
	Line    string // offending logical line
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}
