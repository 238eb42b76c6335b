package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(DuplicatePackage)
}

// DuplicatePackage warns when a package is declared more than once with
// constraints that are still mutually satisfiable.
var DuplicatePackage = lint.RuleDef{
	ID:          "RQ02",
	Name:        "requirements.duplicate_package",
	Group:       "duplicates",
	Kind:        lint.KindRequirements,
	Description: "Package is declared more than once.",
	Severity:    lint.SeverityWarning,
	Check:       checkDuplicatePackage,
	Rationale: "Installers apply the union of all constraints for a name, so " +
		"duplicate declarations hide the effective version range from readers.",
	BadExample:  "numpy>=1.20\nnumpy<2.0",
	GoodExample: "numpy>=1.20,<2.0",
	Fix:         "Merge the constraints onto a single line.",
}

func checkDuplicatePackage(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, group := range duplicateGroups(f) {
		if groupConflicts(group) {
			continue // RQ03 owns conflicting duplicates
		}
		first := group[0]
		for _, r := range group[1:] {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "RQ02",
				Severity: lint.SeverityWarning,
				Message: fmt.Sprintf("package %q already declared on line %d",
					r.Canonical, first.Pos.Line),
				Pos: r.Pos,
			})
		}
	}
	return diags
}
