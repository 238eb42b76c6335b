package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(ContradictoryConstraints)
}

// ContradictoryConstraints flags a single requirement whose own clauses
// exclude every version.
var ContradictoryConstraints = lint.RuleDef{
	ID:          "RQ08",
	Name:        "requirements.contradictory_constraints",
	Group:       "syntax",
	Kind:        lint.KindRequirements,
	Description: "Constraints within one requirement exclude every version.",
	Severity:    lint.SeverityError,
	Check:       checkContradictoryConstraints,
	BadExample:  "scipy<1.0,>=2.0",
	GoodExample: "scipy>=1.0,<2.0",
}

func checkContradictoryConstraints(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, r := range f.Requirements {
		for i := 0; i < len(r.Constraints); i++ {
			for j := i + 1; j < len(r.Constraints); j++ {
				if !r.Constraints[i].Conflicts(r.Constraints[j]) {
					continue
				}
				diags = append(diags, lint.Diagnostic{
					RuleID:   "RQ08",
					Severity: lint.SeverityError,
					Message: fmt.Sprintf("%q: constraint %q contradicts %q",
						r.Canonical, r.Constraints[j].String(), r.Constraints[i].String()),
					Pos: r.Pos,
				})
			}
		}
	}
	return diags
}
