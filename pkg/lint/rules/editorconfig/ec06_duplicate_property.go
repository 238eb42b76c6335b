package editorconfig

import (
	"fmt"

	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(DuplicateProperty)
}

// DuplicateProperty warns when a key is set twice in the same section;
// the later value silently wins.
var DuplicateProperty = lint.RuleDef{
	ID:          "EC06",
	Name:        "editorconfig.duplicate_property",
	Group:       "duplicates",
	Kind:        lint.KindEditorConfig,
	Description: "Property is set more than once within a section.",
	Severity:    lint.SeverityWarning,
	Check:       checkDuplicateProperty,
	BadExample:  "[*]\nindent_size = 4\nindent_size = 2",
	GoodExample: "[*]\nindent_size = 2",
}

func checkDuplicateProperty(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	scan := func(where string, props []ec.Property) {
		first := make(map[string]ec.Property)
		for _, p := range props {
			prev, seen := first[p.Key]
			if !seen {
				first[p.Key] = p
				continue
			}
			diags = append(diags, lint.Diagnostic{
				RuleID:   "EC06",
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("%q already set on line %d%s", p.Key, prev.Pos.Line, where),
				Pos:      p.Pos,
			})
		}
	}

	scan("", f.Preamble)
	for _, s := range f.Sections {
		scan(fmt.Sprintf(" in section [%s]", s.Pattern), s.Properties)
	}
	return diags
}
