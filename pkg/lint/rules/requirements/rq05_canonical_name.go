package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(NonCanonicalName)
}

// NonCanonicalName notes package names whose written form differs from
// their PEP 503 normalized spelling.
var NonCanonicalName = lint.RuleDef{
	ID:          "RQ05",
	Name:        "requirements.non_canonical_name",
	Group:       "convention",
	Kind:        lint.KindRequirements,
	Description: "Package name is not written in canonical form.",
	Severity:    lint.SeverityInfo,
	Check:       checkNonCanonicalName,
	Rationale: "Mixed spellings of one package (Pillow vs pillow, " +
		"typing_extensions vs typing-extensions) make duplicates harder to " +
		"spot in review.",
	BadExample:  "Pillow>=10.0",
	GoodExample: "pillow>=10.0",
}

func checkNonCanonicalName(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, r := range f.Requirements {
		if r.Name == r.Canonical {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   "RQ05",
			Severity: lint.SeverityInfo,
			Message:  fmt.Sprintf("name %q is written non-canonically; canonical form is %q", r.Name, r.Canonical),
			Pos:      r.Pos,
		})
	}
	return diags
}
