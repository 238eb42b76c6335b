package requirements

import "testing"

func c(op, version string) Constraint {
	return Constraint{Op: op, Version: version}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.2", "1.10", -1},
		{"2.0.0", "1.9.9", 1},
		{"1!1.0", "2.0", 1}, // epoch dominates
		{"1.0+cpu", "1.0", 0},
		{"1.0a1", "1.0", -1}, // pre-releases sort before their release
		{"1.0a1", "1.0a2", -1},
		{"1.0a2", "1.0b1", -1},
		{"1.0b1", "1.0rc1", -1},
		{"1.0rc1", "1.0", -1},
		{"1.0.dev1", "1.0a1", -1},
		{"1.0.alpha1", "1.0a1", 0},
		{"1.0.post1", "1.0", 1},
		{"1.0.post1", "1.0.1", -1},
		{"2.0a1", "1.9", 1},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestConstraintConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b Constraint
		want bool
	}{
		{"different pins", c("==", "1.0"), c("==", "2.0"), true},
		{"same pin", c("==", "1.0"), c("==", "1.0.0"), false},
		{"pin above upper bound", c("==", "2.5"), c("<", "2.0.0"), true},
		{"pin within bounds", c("==", "1.5"), c("<", "2.0"), false},
		{"pin equals exclusive bound", c("==", "2.0"), c("<", "2.0"), true},
		{"pin equals inclusive bound", c("==", "2.0"), c("<=", "2.0"), false},
		{"pin vs not-equal", c("==", "1.0"), c("!=", "1.0"), true},
		{"inverted bounds", c("<", "1.0"), c(">=", "2.0"), true},
		{"touching exclusive bounds", c("<", "1.0"), c(">=", "1.0"), true},
		{"touching inclusive bounds", c("<=", "1.0"), c(">=", "1.0"), false},
		{"compatible bounds", c(">=", "1.0"), c("<", "2.0"), false},
		{"compatible release below cap", c("~=", "2.2"), c("<", "2.0"), true},
		{"wildcard pins disagree", c("==", "1.*"), c("==", "2.*"), true},
		{"wildcard vs bound ignored", c("==", "2.0.*"), c("<", "2.0"), false},
		{"pin above pre-release lower bound", c("==", "1.0"), c(">", "1.0a1"), false},
		{"pin below pre-release upper bound", c("==", "1.0"), c("<", "1.0rc1"), true},
		{"pre-release pin below release bound", c("==", "2.0b1"), c(">=", "2.0"), true},
		{"unrecognized suffix never conflicts", c("==", "1.0"), c(">", "1.0zeta1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Conflicts(tt.b); got != tt.want {
				t.Errorf("%s vs %s: got %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Conflict detection is symmetric.
			if got := tt.b.Conflicts(tt.a); got != tt.want {
				t.Errorf("%s vs %s (reversed): got %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
