package lint

// CheckFunc analyzes a parsed document and returns diagnostics. The doc
// parameter is *requirements.File or *editorconfig.File depending on the
// rule's Kind; it is typed any to keep rule packages free of import cycles.
type CheckFunc func(doc any, opts map[string]any) []Diagnostic

// RuleDef is a data-driven rule definition. Rules are stateless - all
// context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // unique identifier, e.g. "RQ03"
	Name        string    // human-readable name, e.g. "requirements.conflicting_duplicate"
	Group       string    // category, e.g. "duplicates", "pinning", "structure"
	Kind        Kind      // document type this rule inspects
	Description string    // human-readable description
	Severity    Severity  // default severity
	Check       CheckFunc // the check function
	ConfigKeys  []string  // configuration keys this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string // why this rule exists, what problems it prevents
	BadExample  string // content showing the anti-pattern
	GoodExample string // content showing the correct pattern
	Fix         string // how to fix violations (when not obvious)
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Kind            Kind     `json:"kind"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// Info extracts documentation metadata from a rule definition.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Kind:            r.Kind,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}
