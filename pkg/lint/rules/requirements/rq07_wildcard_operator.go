package requirements

import (
	"fmt"
	"strings"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(WildcardOperator)
}

// WildcardOperator flags wildcard versions combined with ordering
// operators. PEP 440 only defines ".*" suffixes for == and !=.
var WildcardOperator = lint.RuleDef{
	ID:          "RQ07",
	Name:        "requirements.wildcard_operator",
	Group:       "syntax",
	Kind:        lint.KindRequirements,
	Description: "Wildcard version used with an ordering operator.",
	Severity:    lint.SeverityError,
	Check:       checkWildcardOperator,
	Rationale: "\">=2.0.*\" has no defined ordering semantics; installers " +
		"either reject it or silently strip the wildcard.",
	BadExample:  "numpy>=2.0.*",
	GoodExample: "numpy==2.0.*",
}

func checkWildcardOperator(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, r := range f.Requirements {
		for _, c := range r.Constraints {
			if !strings.Contains(c.Version, "*") {
				continue
			}
			if c.Op == "==" || c.Op == "!=" {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				RuleID:   "RQ07",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("wildcard version %q is only valid with == or !=", c.String()),
				Pos:      c.Pos,
			})
		}
	}
	return diags
}
