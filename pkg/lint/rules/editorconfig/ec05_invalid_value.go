package editorconfig

import (
	"fmt"
	"strconv"
	"strings"

	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
)

func init() {
	lint.Register(InvalidValue)
}

// InvalidValue flags property values outside their allowed domain.
var InvalidValue = lint.RuleDef{
	ID:          "EC05",
	Name:        "editorconfig.invalid_value",
	Group:       "syntax",
	Kind:        lint.KindEditorConfig,
	Description: "Property value is not allowed for its key.",
	Severity:    lint.SeverityError,
	Check:       checkInvalidValue,
	BadExample:  "[*]\nindent_style = spaces",
	GoodExample: "[*]\nindent_style = space",
}

// enumValues lists the allowed values for enumerated keys. Every key also
// accepts "unset".
var enumValues = map[string][]string{
	"indent_style": {"tab", "space"},
	"end_of_line":  {"lf", "cr", "crlf"},
	"charset":      {"latin1", "utf-8", "utf-8-bom", "utf-16be", "utf-16le"},
	"root":         {"true", "false"},

	"trim_trailing_whitespace": {"true", "false"},
	"insert_final_newline":     {"true", "false"},
}

func checkInvalidValue(doc any, _ map[string]any) []lint.Diagnostic {
	f, ok := doc.(*ec.File)
	if !ok {
		return nil
	}

	var diags []lint.Diagnostic
	check := func(p ec.Property) {
		if msg := validateValue(p.Key, p.Value); msg != "" {
			diags = append(diags, lint.Diagnostic{
				RuleID:   "EC05",
				Severity: lint.SeverityError,
				Message:  msg,
				Pos:      p.Pos,
			})
		}
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

func validateValue(key, value string) string {
	v := strings.ToLower(value)
	if v == "unset" {
		return ""
	}

	if allowed, ok := enumValues[key]; ok {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return fmt.Sprintf("%q is not a valid value for %s (expected one of: %s)",
			value, key, strings.Join(allowed, ", "))
	}

	switch key {
	case "indent_size":
		if v == "tab" {
			return ""
		}
		return validatePositiveInt(key, value)
	case "tab_width":
		return validatePositiveInt(key, value)
	case "max_line_length":
		if v == "off" {
			return ""
		}
		return validatePositiveInt(key, value)
	}

	// Unknown keys are EC04's business.
	return ""
}

func validatePositiveInt(key, value string) string {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Sprintf("%q is not a valid value for %s (expected a positive integer)", value, key)
	}
	return ""
}
