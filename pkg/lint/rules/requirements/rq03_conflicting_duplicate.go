package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(ConflictingDuplicate)
}

// ConflictingDuplicate flags duplicate declarations whose version
// constraints can never be satisfied together.
var ConflictingDuplicate = lint.RuleDef{
	ID:          "RQ03",
	Name:        "requirements.conflicting_duplicate",
	Group:       "duplicates",
	Kind:        lint.KindRequirements,
	Description: "Package is declared more than once with conflicting version constraints.",
	Severity:    lint.SeverityError,
	Check:       checkConflictingDuplicate,
	Rationale: "Disjoint constraints for the same package make the manifest " +
		"unsatisfiable; the installer will fail during resolution.",
	BadExample:  "numpy==1.26.4\nnumpy>=2.0",
	GoodExample: "numpy==1.26.4",
	Fix:         "Decide which version range is correct and remove the other line.",
}

func checkConflictingDuplicate(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, group := range duplicateGroups(f) {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !pairConflicts(group[i], group[j]) {
					continue
				}
				diags = append(diags, lint.Diagnostic{
					RuleID:   "RQ03",
					Severity: lint.SeverityError,
					Message: fmt.Sprintf("package %q: %q conflicts with %q on line %d",
						group[j].Canonical, group[j].Specifier(),
						group[i].Specifier(), group[i].Pos.Line),
					Pos: group[j].Pos,
				})
			}
		}
	}
	return diags
}
