package editorconfig

import (
	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(InvalidGlob)
}

// InvalidGlob flags section headers that are not valid glob patterns.
var InvalidGlob = lint.RuleDef{
	ID:          "EC03",
	Name:        "editorconfig.invalid_glob",
	Group:       "syntax",
	Kind:        lint.KindEditorConfig,
	Description: "Section header is not a syntactically valid glob pattern.",
	Severity:    lint.SeverityError,
	Check:       checkInvalidGlob,
	BadExample:  "[*.{yml]",
	GoodExample: "[*.{yml,yaml}]",
}

func checkInvalidGlob(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, s := range f.Sections {
		if err := ec.ValidateGlob(s.Pattern); err != nil {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "EC03",
				Severity: lint.SeverityError,
				Message:  err.Error(),
				Pos:      s.Pos,
			})
		}
	}
	return diags
}
