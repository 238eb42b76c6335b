package editorconfig

import (
	"fmt"

	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(RootPlacement)
}

// RootPlacement enforces a single "root" declaration in the preamble.
// A "root" key inside a section has no effect and usually means the
// declaration slipped below the first section header.
var RootPlacement = lint.RuleDef{
	ID:          "EC02",
	Name:        "editorconfig.root_placement",
	Group:       "structure",
	Kind:        lint.KindEditorConfig,
	Description: "'root' must be declared exactly once, before any section.",
	Severity:    lint.SeverityError,
	Check:       checkRootPlacement,
	BadExample:  "[*]\nroot = true",
	GoodExample: "root = true\n\n[*]",
}

func checkRootPlacement(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	decls := f.RootDeclarations()
	if len(decls) > 1 {
		for _, p := range decls[1:] {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "EC02",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("'root' already declared on line %d", decls[0].Pos.Line),
				Pos:      p.Pos,
			})
		}
	}

	for _, s := range f.Sections {
		for _, p := range s.Properties {
			if p.Key != "root" {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				RuleID:   "EC02",
				Severity: lint.SeverityError,
				Message:  fmt.Sprintf("'root' is not valid inside section [%s]; it belongs above the first section", s.Pattern),
				Pos:      p.Pos,
			})
		}
	}
	return diags
}
