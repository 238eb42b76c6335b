package editorconfig

import (
	"fmt"

	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(UnknownKey)
}

// UnknownKey warns about property keys outside the EditorConfig spec.
// Tool-specific extensions can be allow-listed via the extra_keys option.
var UnknownKey = lint.RuleDef{
	ID:          "EC04",
	Name:        "editorconfig.unknown_key",
	Group:       "convention",
	Kind:        lint.KindEditorConfig,
	Description: "Property key is not defined by the EditorConfig spec.",
	Severity:    lint.SeverityWarning,
	Check:       checkUnknownKey,
	ConfigKeys:  []string{"extra_keys"},
	Rationale: "Unknown keys are silently ignored by editors, so a typo like " +
		"'indent_sze' disables the setting without any visible failure.",
	BadExample:  "[*]\nindent_sze = 4",
	GoodExample: "[*]\nindent_size = 4",
}

func checkUnknownKey(doc any, opts map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	extra := make(map[string]bool)
	if raw, ok := opts["extra_keys"].([]any); ok {
		for _, k := range raw {
			if s, ok := k.(string); ok {
				extra[s] = true
			}
		}
	}
	if raw, ok := opts["extra_keys"].([]string); ok {
		for _, s := range raw {
			extra[s] = true
		}
	}

	var diags []lint.Diagnostic
	check := func(p ec.Property) {
		if ec.KnownKeys[p.Key] || extra[p.Key] {
			return
		}
		diags = append(diags, lint.Diagnostic{
			RuleID:   "EC04",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("unknown property %q", p.Key),
			Pos:      p.Pos,
		})
	}

	for _, p := range f.Preamble {
		check(p)
	}
	for _, s := range f.Sections {
		for _, p := range s.Properties {
			check(p)
		}
	}
	return diags
}
