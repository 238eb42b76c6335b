package requirements

import (
	"fmt"

	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(Unpinned)
}

// Unpinned suggests pinning requirements to exact versions for
// reproducible environments. With the allow_ranges option only
// requirements with no constraints at all are flagged.
var Unpinned = lint.RuleDef{
	ID:          "RQ04",
	Name:        "requirements.unpinned",
	Group:       "pinning",
	Kind:        lint.KindRequirements,
	Description: "Requirement is not pinned to an exact version.",
	Severity:    lint.SeverityHint,
	Check:       checkUnpinned,
	ConfigKeys:  []string{"allow_ranges"},
	Rationale: "Unpinned requirements resolve to whatever is newest at " +
		"install time, so two checkouts of the same manifest can produce " +
		"different environments.",
	BadExample:  "torch",
	GoodExample: "torch==2.3.1",
}

func checkUnpinned(doc any, opts map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	allowRanges := false
	if v, ok := opts["allow_ranges"].(bool); ok {
		allowRanges = v
	}

	var diags []lint.Diagnostic
	for _, r := range f.Requirements {
		if r.URL != "" || r.IsPinned() {
			continue
		}
		if allowRanges && len(r.Constraints) > 0 {
			continue
		}
		msg := fmt.Sprintf("%q is not pinned to an exact version", r.Canonical)
		if len(r.Constraints) == 0 {
			msg = fmt.Sprintf("%q has no version constraint", r.Canonical)
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   "RQ04",
			Severity: lint.SeverityHint,
			Message:  msg,
			Pos:      r.Pos,
		})
	}
	return diags
}
