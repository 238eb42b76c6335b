package editorconfig

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// ValidateGlob checks a section header for glob syntax errors: unbalanced
// brackets or braces, and trailing escapes.
func ValidateGlob(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty section pattern")
	}

	var braceDepth int
	inBracket := false
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			if i == len(pattern)-1 {
				return fmt.Errorf("trailing escape in pattern %q", pattern)
			}
			i++
		case '[':
			if inBracket {
				return fmt.Errorf("nested '[' in pattern %q", pattern)
			}
			inBracket = true
		case ']':
			inBracket = false
		case '{':
			if !inBracket {
				braceDepth++
			}
		case '}':
			if !inBracket {
				braceDepth--
				if braceDepth < 0 {
					return fmt.Errorf("unmatched '}' in pattern %q", pattern)
				}
			}
		}
	}
	if inBracket {
		return fmt.Errorf("unclosed '[' in pattern %q", pattern)
	}
	if braceDepth != 0 {
		return fmt.Errorf("unclosed '{' in pattern %q", pattern)
	}
	return nil
}

// IsUnmatchable reports glob constructs that can never match a file name,
// such as an empty character class.
func IsUnmatchable(pattern string) bool {
	return strings.Contains(pattern, "[]") || strings.Contains(pattern, "{}")
}

// Matches reports whether the section pattern applies to the given path.
// Per the EditorConfig spec, patterns without a slash match against the
// file name only; patterns containing a slash match against the whole
// path relative to the .editorconfig location (a leading slash anchors
// there explicitly).
func (s *Section) Matches(p string) (bool, error) {
	pattern := s.Pattern
	target := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	target = strings.TrimPrefix(target, "/")

	if strings.ContainsRune(pattern, '/') {
		pattern = strings.TrimPrefix(pattern, "/")
	} else {
		target = path.Base(target)
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", s.Pattern, err)
	}
	return g.Match(target), nil
}

// SettingsFor resolves the effective properties for a file path. Sections
// are applied in order, so later sections override earlier ones. Sections
// whose pattern fails to compile are skipped.
func (f *File) SettingsFor(p string) map[string]string {
	settings := make(map[string]string)
	for _, s := range f.Sections {
		ok, err := s.Matches(p)
		if err != nil || !ok {
			continue
		}
		for _, prop := range s.Properties {
			if prop.Value == "unset" {
				delete(settings, prop.Key)
				continue
			}
			settings[prop.Key] = prop.Value
		}
	}
	return settings
}
