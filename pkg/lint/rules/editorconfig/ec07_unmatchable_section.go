package editorconfig

import (
	"fmt"

	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(UnmatchableSection)
}

// UnmatchableSection flags section patterns that can never match a file,
// such as an empty character class or alternation.
var UnmatchableSection = lint.RuleDef{
	ID:          "EC07",
	Name:        "editorconfig.unmatchable_section",
	Group:       "structure",
	Kind:        lint.KindEditorConfig,
	Description: "Section pattern can never match any file.",
	Severity:    lint.SeverityError,
	Check:       checkUnmatchableSection,
	BadExample:  "[*.{}]",
	GoodExample: "[*.{yml,yaml}]",
}

func checkUnmatchableSection(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, s := range f.Sections {
		if ec.ValidateGlob(s.Pattern) != nil {
			continue // EC03 owns syntax errors
		}
		if !ec.IsUnmatchable(s.Pattern) {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   "EC07",
			Severity: lint.SeverityError,
			Message:  fmt.Sprintf("section [%s] contains an empty group and can never match", s.Pattern),
			Pos:      s.Pos,
		})
	}
	return diags
}
