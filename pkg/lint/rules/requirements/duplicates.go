package requirements

import (
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

// duplicateGroups collects requirements by canonical name, keeping only
// names that appear more than once. Source order is preserved.
func duplicateGroups(f *reqs.File) [][]*reqs.Requirement {
	byName := make(map[string][]*reqs.Requirement)
	var order []string
	for _, r := range f.Requirements {
		if _, seen := byName[r.Canonical]; !seen {
			order = append(order, r.Canonical)
		}
		byName[r.Canonical] = append(byName[r.Canonical], r)
	}

	var groups [][]*reqs.Requirement
	for _, name := range order {
		if group := byName[name]; len(group) > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

// pairConflicts reports whether any constraint of a contradicts any
// constraint of b. Requirements guarded by different environment markers
// can legitimately coexist, so those pairs never conflict.
func pairConflicts(a, b *reqs.Requirement) bool {
	if a.Marker != b.Marker {
		return false
	}
	for _, ca := range a.Constraints {
		for _, cb := range b.Constraints {
			if ca.Conflicts(cb) {
				return true
			}
		}
	}
	return false
}

// groupConflicts reports whether any pair within a duplicate group conflicts.
func groupConflicts(group []*reqs.Requirement) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if pairConflicts(group[i], group[j]) {
				return true
			}
		}
	}
	return false
}
