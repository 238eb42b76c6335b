package editorconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reqlint/reqlint/pkg/token"
)

// ParseError describes a malformed line in an .editorconfig file.
type ParseError struct {
	Path    string
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ParseFile reads and parses an .editorconfig file from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open editorconfig: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	parsed.Path = path
	return parsed, nil
}

// Parse parses an .editorconfig file. Unlike the requirements parser the
// format has no per-line recovery worth doing; the first malformed line
// fails the whole file.
func Parse(r io.Reader) (*File, error) {
	file := &File{}
	scanner := bufio.NewScanner(r)

	var current *Section
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		col := strings.Index(line, trimmed) + 1
		pos := token.Position{Line: lineNo, Column: col}

		if trimmed[0] == '[' {
			if !strings.HasSuffix(trimmed, "]") {
				return nil, &ParseError{Pos: pos, Message: "unterminated section header"}
			}
			current = &Section{
				Pattern: trimmed[1 : len(trimmed)-1],
				Pos:     pos,
			}
			file.Sections = append(file.Sections, current)
			continue
		}

		key, value, ok := splitProperty(trimmed)
		if !ok {
			return nil, &ParseError{Pos: pos, Message: fmt.Sprintf("expected 'key = value', got %q", trimmed)}
		}
		prop := Property{Key: key, Value: value, Pos: pos}
		if current == nil {
			file.Preamble = append(file.Preamble, prop)
		} else {
			current.Properties = append(current.Properties, prop)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read editorconfig: %w", err)
	}

	return file, nil
}

// splitProperty splits "key = value" or "key: value". Keys are lowercased
// per the EditorConfig spec; values keep their case (charset values are
// already lowercase by convention).
func splitProperty(s string) (string, string, bool) {
	i := strings.IndexAny(s, "=:")
	if i <= 0 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(s[:i]))
	value := strings.TrimSpace(s[i+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}
