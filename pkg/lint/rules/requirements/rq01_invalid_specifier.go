package requirements

import (
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func init() {
	lint.Register(InvalidSpecifier)
}

// InvalidSpecifier surfaces lines that failed the specifier grammar.
var InvalidSpecifier = lint.RuleDef{
	ID:          "RQ01",
	Name:        "requirements.invalid_specifier",
	Group:       "syntax",
	Kind:        lint.KindRequirements,
	Description: "Line does not match the dependency specifier grammar.",
	Severity:    lint.SeverityError,
	Check:       checkInvalidSpecifier,
	Rationale: "Installers reject manifests with malformed specifiers, so a " +
		"single bad line breaks the whole environment setup.",
	BadExample:  "numpy 2.0",
	GoodExample: "numpy==2.0",
}

func checkInvalidSpecifier(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*reqs.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	for _, perr := range f.Errors {
		diags = append(diags, lint.Diagnostic{
			RuleID:   "RQ01",
			Severity: lint.SeverityError,
			Message:  perr.Message,
			Pos:      perr.Pos,
		})
	}
	return diags
}
