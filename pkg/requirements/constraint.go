package requirements

import (
	"strconv"
	"strings"
)

// Conflicts reports whether two constraints can never be satisfied by the
// same version. The check is deliberately conservative: it only returns true
// when the contradiction is certain from the clause structure, so pre-release
// and local-version subtleties never produce false positives.
func (c Constraint) Conflicts(other Constraint) bool {
	if hasWildcard(c.Version) || hasWildcard(other.Version) {
		// "==2.0.*" describes a range; comparing it against bounds would
		// need full PEP 440 semantics. Only flag identical-op wildcard
		// clauses that disagree on the prefix.
		if c.Op == other.Op && (c.Op == "==" || c.Op == "===") {
			return c.Version != other.Version
		}
		return false
	}

	// Versions with unrecognized suffixes cannot be ordered reliably, so
	// they never count as conflicting.
	if !comparableVersion(c.Version) || !comparableVersion(other.Version) {
		return false
	}

	switch {
	case isExact(c.Op) && isExact(other.Op):
		return CompareVersions(c.Version, other.Version) != 0
	case isExact(c.Op):
		return !satisfies(c.Version, other)
	case isExact(other.Op):
		return !satisfies(other.Version, c)
	}

	// Bound vs bound: a conflict needs an upper bound below a lower bound.
	upper, lower := c, other
	if !isUpperBound(upper.Op) {
		upper, lower = lower, upper
	}
	if !isUpperBound(upper.Op) || !isLowerBound(lower.Op) {
		return false
	}
	cmp := CompareVersions(lower.Version, upper.Version)
	if cmp > 0 {
		return true
	}
	if cmp == 0 {
		// "<x" with ">=x", ">x" with "<=x", or "<x" with ">x" share no point.
		return upper.Op == "<" || lower.Op == ">"
	}
	return false
}

func isExact(op string) bool {
	return op == "==" || op == "==="
}

func isUpperBound(op string) bool {
	return op == "<" || op == "<="
}

func isLowerBound(op string) bool {
	// "~=x.y" implies ">=x.y"; treat it as a lower bound for conflicts.
	return op == ">" || op == ">=" || op == "~="
}

// satisfies reports whether an exact version meets a single constraint.
func satisfies(version string, c Constraint) bool {
	cmp := CompareVersions(version, c.Version)
	switch c.Op {
	case "==", "===":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=", "~=":
		return cmp >= 0
	}
	return true
}

// suffixRanks orders release modifiers around the release they attach to:
// dev < alpha < beta < rc < release < post, per PEP 440. The keys include
// the alternate spellings PEP 440 normalizes ("alpha" -> "a", "pre" -> "rc").
var suffixRanks = map[string]int{
	"dev":     -4,
	"a":       -3,
	"alpha":   -3,
	"b":       -2,
	"beta":    -2,
	"c":       -1,
	"pre":     -1,
	"preview": -1,
	"rc":      -1,
	"post":    1,
	"r":       1,
	"rev":     1,
}

// versionPart is one comparable unit of a parsed version. A release number
// has rank 0; a suffix like "a1" or ".post2" carries its rank and number.
type versionPart struct {
	num    int
	rank   int
	sufNum int
}

// CompareVersions compares two version strings under PEP 440 ordering:
// numeric release segments compare numerically, epochs dominate, local
// labels are ignored, and pre-release suffixes ("1.0a1", "2.0.dev3") sort
// before the release they attach to. Versions with unrecognized suffixes
// fall back to a lexical segment comparison.
func CompareVersions(a, b string) int {
	as, aok := parseVersion(a)
	bs, bok := parseVersion(b)
	if !aok || !bok {
		return compareLexical(a, b)
	}

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv versionPart
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av.num != bv.num {
			if av.num < bv.num {
				return -1
			}
			return 1
		}
		if av.rank != bv.rank {
			if av.rank < bv.rank {
				return -1
			}
			return 1
		}
		if av.sufNum != bv.sufNum {
			if av.sufNum < bv.sufNum {
				return -1
			}
			return 1
		}
	}
	return 0
}

// comparableVersion reports whether every segment of v parses into numbers
// and known release suffixes, so CompareVersions orders it exactly.
func comparableVersion(v string) bool {
	_, ok := parseVersion(v)
	return ok
}

// parseVersion breaks a version into comparable parts. ok is false when a
// segment carries letters that are not a known release suffix.
func parseVersion(v string) ([]versionPart, bool) {
	epoch := 0
	if i := strings.IndexByte(v, '!'); i >= 0 {
		epoch, _ = strconv.Atoi(v[:i])
		v = v[i+1:]
	}
	// Local version labels ("+cpu") do not affect ordering here.
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}

	parts := []versionPart{{num: epoch}}
	ok := true
	for _, chunk := range strings.Split(strings.ToLower(v), ".") {
		rest := chunk
		for rest != "" {
			j := 0
			for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
				j++
			}
			if j > 0 {
				n, _ := strconv.Atoi(rest[:j])
				parts = append(parts, versionPart{num: n})
				rest = rest[j:]
				continue
			}

			k := 0
			for k < len(rest) && (rest[k] < '0' || rest[k] > '9') {
				k++
			}
			word := strings.Trim(rest[:k], "-_")
			rest = rest[k:]

			sufNum := 0
			j = 0
			for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
				j++
			}
			if j > 0 {
				sufNum, _ = strconv.Atoi(rest[:j])
				rest = rest[j:]
			}

			rank, known := suffixRanks[word]
			if !known {
				ok = false
			}
			parts = append(parts, versionPart{rank: rank, sufNum: sufNum})
		}
	}
	return parts, ok
}

// compareLexical is the fallback for versions parseVersion cannot order:
// numeric segments compare numerically, everything else lexically.
func compareLexical(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := "0", "0"
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		ai, aerr := strconv.Atoi(av)
		bi, berr := strconv.Atoi(bv)
		switch {
		case aerr == nil && berr == nil:
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
		default:
			if av != bv {
				if av < bv {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}
