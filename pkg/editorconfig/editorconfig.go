// Package editorconfig parses EditorConfig files.
//
// The format is INI-like: an optional preamble of key/value pairs (where
// "root = true" lives), followed by sections whose headers are glob patterns
// and whose bodies set formatting properties for matching files.
package editorconfig

import (
	"github.com/reqlint/reqlint/pkg/token"
)

// File is a parsed .editorconfig file.
type File struct {
	Path     string
	Preamble []Property // key/values before the first section
	Sections []*Section
}

// Section is a glob-headed group of properties.
type Section struct {
	Pattern    string
	Pos        token.Position
	Properties []Property
}

// Property is a single "key = value" pair.
type Property struct {
	Key   string // lowercased
	Value string // as written, whitespace-trimmed
	Pos   token.Position
}

// KnownKeys is the set of properties defined by the EditorConfig spec.
// "root" is only valid in the preamble.
var KnownKeys = map[string]bool{
	"root":                     true,
	"indent_style":             true,
	"indent_size":              true,
	"tab_width":                true,
	"end_of_line":              true,
	"charset":                  true,
	"trim_trailing_whitespace": true,
	"insert_final_newline":     true,
	"max_line_length":          true,
}

// RootDeclarations returns every "root" property in the preamble.
func (f *File) RootDeclarations() []Property {
	var decls []Property
	for _, p := range f.Preamble {
		if p.Key == "root" {
			decls = append(decls, p)
		}
	}
	return decls
}

// IsRoot returns true if the file declares "root = true" in its preamble.
func (f *File) IsRoot() bool {
	for _, p := range f.Preamble {
		if p.Key == "root" && p.Value == "true" {
			return true
		}
	}
	return false
}

// Lookup returns the last value set for key in the section, honoring the
// spec rule that later declarations win.
func (s *Section) Lookup(key string) (string, bool) {
	for i := len(s.Properties) - 1; i >= 0; i-- {
		if s.Properties[i].Key == key {
			return s.Properties[i].Value, true
		}
	}
	return "", false
}
