package editorconfig

import (
	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(RootMissing)
}

// RootMissing warns when the file does not declare "root = true".
var RootMissing = lint.RuleDef{
	ID:          "EC01",
	Name:        "editorconfig.root_missing",
	Group:       "structure",
	Kind:        lint.KindEditorConfig,
	Description: "File does not declare 'root = true'.",
	Severity:    lint.SeverityWarning,
	Check:       checkRootMissing,
	Rationale: "Without a root declaration editors keep searching parent " +
		"directories and may pick up unrelated configuration.",
	GoodExample: "root = true\n\n[*]\ncharset = utf-8",
	Fix:         "Add 'root = true' above the first section.",
}

func checkRootMissing(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}
	if len(f.RootDeclarations()) > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EC01",
		Severity: lint.SeverityWarning,
		Message:  "missing 'root = true' declaration",
	}}
}
