package requirements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reqlint/reqlint/pkg/token"
)

// operators in longest-match-first order.
var operators = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}

// ParseFile reads and parses a requirements manifest from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, err
	}
	parsed.Path = path
	for _, pe := range parsed.Errors {
		pe.Path = path
	}
	return parsed, nil
}

// Parse parses a requirements manifest. Parse errors on individual lines do
// not abort the scan; they are collected in File.Errors so a single bad line
// never hides the rest of the manifest. The returned error is reserved for
// I/O failures.
func Parse(r io.Reader) (*File, error) {
	file := &File{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	logical := ""
	startLine := 0

	flush := func() {
		if logical == "" {
			return
		}
		parseLogicalLine(file, logical, startLine)
		logical = ""
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")

		if logical == "" {
			startLine = lineNo
		}

		// Physical lines ending in a backslash join with the next one,
		// matching pip's continuation handling.
		if strings.HasSuffix(line, `\`) {
			logical += strings.TrimSuffix(line, `\`)
			continue
		}
		logical += line
		flush()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	flush()

	return file, nil
}

// ParseLine parses a single logical line. It returns the requirement or
// option parsed from the line; both are nil for blank and comment lines.
func ParseLine(s string, line int) (*Requirement, *Option, *ParseError) {
	f := &File{}
	parseLogicalLine(f, s, line)
	var req *Requirement
	var opt *Option
	var perr *ParseError
	if len(f.Requirements) > 0 {
		req = f.Requirements[0]
	}
	if len(f.Options) > 0 {
		opt = f.Options[0]
	}
	if len(f.Errors) > 0 {
		perr = f.Errors[0]
	}
	return req, opt, perr
}

func parseLogicalLine(file *File, raw string, line int) {
	text := stripComment(raw)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	col := strings.Index(text, trimmed) + 1
	pos := token.Position{Line: line, Column: col}

	if strings.HasPrefix(trimmed, "-") {
		file.Options = append(file.Options, parseOption(trimmed, pos))
		return
	}

	req, perr := parseSpecifier(trimmed, pos)
	if perr != nil {
		perr.Line = trimmed
		file.Errors = append(file.Errors, perr)
		return
	}
	req.Raw = trimmed
	file.Requirements = append(file.Requirements, req)
}

// stripComment removes a trailing "#" comment. The hash only starts a
// comment at the beginning of the line or when preceded by whitespace, so
// "pkg==1.0#egg" style fragments survive.
func stripComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			continue
		}
		if i == 0 || s[i-1] == ' ' || s[i-1] == '\t' {
			return s[:i]
		}
	}
	return s
}

func parseOption(s string, pos token.Position) *Option {
	flag := s
	value := ""
	if i := strings.IndexAny(s, " \t="); i >= 0 {
		flag = s[:i]
		value = strings.TrimSpace(s[i+1:])
	}
	return &Option{Flag: flag, Value: value, Pos: pos}
}

// parseSpecifier parses a PEP 508 dependency specifier.
func parseSpecifier(s string, pos token.Position) (*Requirement, *ParseError) {
	req := &Requirement{Pos: pos}
	rest := s

	// Environment marker after ";".
	if i := indexOutsideBrackets(rest, ';'); i >= 0 {
		req.Marker = strings.TrimSpace(rest[i+1:])
		rest = strings.TrimSpace(rest[:i])
		if req.Marker == "" {
			return nil, errAt(pos, i, "empty environment marker after ';'")
		}
	}

	// Direct URL reference after "@".
	if i := indexOutsideBrackets(rest, '@'); i >= 0 {
		req.URL = strings.TrimSpace(rest[i+1:])
		rest = strings.TrimSpace(rest[:i])
		if req.URL == "" {
			return nil, errAt(pos, i, "empty URL after '@'")
		}
	}

	// Package name.
	nameEnd := 0
	for nameEnd < len(rest) && isNameChar(rest[nameEnd]) {
		nameEnd++
	}
	name := rest[:nameEnd]
	if name == "" {
		return nil, errAt(pos, 0, "expected package name")
	}
	if !IsValidName(name) {
		return nil, errAt(pos, 0, fmt.Sprintf("invalid package name %q", name))
	}
	req.Name = name
	req.Canonical = CanonicalName(name)
	rest = rest[nameEnd:]

	// Extras.
	if strings.HasPrefix(rest, "[") {
		closing := strings.IndexByte(rest, ']')
		if closing < 0 {
			return nil, errAt(pos, nameEnd, "unclosed extras bracket")
		}
		inner := rest[1:closing]
		if strings.TrimSpace(inner) != "" {
			for _, e := range strings.Split(inner, ",") {
				e = strings.TrimSpace(e)
				if e == "" {
					return nil, errAt(pos, nameEnd, "empty extra name")
				}
				if !IsValidName(e) {
					return nil, errAt(pos, nameEnd, fmt.Sprintf("invalid extra name %q", e))
				}
				req.Extras = append(req.Extras, e)
			}
		}
		rest = rest[closing+1:]
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return req, nil
	}
	if req.URL != "" {
		return nil, errAt(pos, len(s)-len(rest), "version constraints cannot follow a URL reference")
	}

	// Version specifier, optionally parenthesized.
	if strings.HasPrefix(rest, "(") {
		if !strings.HasSuffix(rest, ")") {
			return nil, errAt(pos, len(s)-len(rest), "unclosed parenthesis in version specifier")
		}
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}

	for _, clause := range strings.Split(rest, ",") {
		offset := len(s) - len(rest) // best effort; clauses share the specifier offset
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, errAt(pos, offset, "empty version constraint")
		}
		c, msg := parseConstraint(clause)
		if msg != "" {
			return nil, errAt(pos, offset, msg)
		}
		c.Pos = token.Position{Line: pos.Line, Column: pos.Column + offset}
		req.Constraints = append(req.Constraints, c)
	}

	return req, nil
}

func parseConstraint(clause string) (Constraint, string) {
	for _, op := range operators {
		if !strings.HasPrefix(clause, op) {
			continue
		}
		version := strings.TrimSpace(clause[len(op):])
		if version == "" {
			return Constraint{}, fmt.Sprintf("missing version after %q", op)
		}
		if !isValidVersion(version) {
			return Constraint{}, fmt.Sprintf("invalid version %q", version)
		}
		return Constraint{Op: op, Version: version}, ""
	}
	return Constraint{}, fmt.Sprintf("missing comparison operator in %q", clause)
}

func isValidVersion(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_' || c == '+' || c == '!':
		case c == '*':
			// Wildcards only terminate a version, as in "2.0.*".
			if i != len(v)-1 {
				return false
			}
		default:
			return false
		}
	}
	return len(v) > 0
}

func hasWildcard(v string) bool {
	return strings.Contains(v, "*")
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '.' || c == '-' || c == '_'
}

// indexOutsideBrackets finds the first occurrence of sep outside extras
// brackets, or -1.
func indexOutsideBrackets(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func errAt(base token.Position, offset int, msg string) *ParseError {
	return &ParseError{
		Pos:     token.Position{Line: base.Line, Column: base.Column + offset},
		Message: msg,
	}
}
