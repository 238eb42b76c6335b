package requirements

import (
	"regexp"
	"strings"
)

// namePattern is the PEP 508 package name grammar.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// canonicalSep collapses runs of name separators.
var canonicalSep = regexp.MustCompile(`[-_.]+`)

// IsValidName reports whether s is a valid package name.
func IsValidName(s string) bool {
	return namePattern.MatchString(s)
}

// CanonicalName returns the PEP 503 normalized form of a package name:
// lowercase, with runs of "-", "_" and "." collapsed to a single "-".
func CanonicalName(s string) string {
	return strings.ToLower(canonicalSep.ReplaceAllString(s, "-"))
}
