package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(DuplicateExtra)
}

// DuplicateExtra warns when the same extra is requested twice on one line.
var DuplicateExtra = lint.RuleDef{
	ID:          "RQ06",
	Name:        "requirements.duplicate_extra",
	Group:       "duplicates",
	Kind:        lint.KindRequirements,
	Description: "Extra is requested more than once in a single requirement.",
	Severity:    lint.SeverityWarning,
	Check:       checkDuplicateExtra,
	BadExample:  "pandas[excel,excel]>=2.2.0",
	GoodExample: "pandas[excel]>=2.2.0",
}

func checkDuplicateExtra(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, r := range f.Requirements {
		seen := make(map[string]bool, len(r.Extras))
		for _, e := range r.Extras {
			canonical := reqs.CanonicalName(e)
			if seen[canonical] {
				diags = append(diags, lint.Diagnostic{
					RuleID:   "RQ06",
					Severity: lint.SeverityWarning,
					Message:  fmt.Sprintf("extra %q requested more than once for %q", e, r.Canonical),
					Pos:      r.Pos,
				})
				continue
			}
			seen[canonical] = true
		}
	}
	return diags
}
