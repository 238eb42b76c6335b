package lint

import "sort"

// Analyzer runs registered rules against parsed documents, applying the
// configuration's disabled set and severity overrides.
type Analyzer struct {
	cfg *Config
}

// NewAnalyzer creates an analyzer with the given configuration.
// A nil config enables every rule at its default severity.
func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Analyzer{cfg: cfg}
}

// Analyze runs all registered rules of the given kind against doc.
// Diagnostics come back sorted by position, then rule ID.
func (a *Analyzer) Analyze(kind Kind, doc any) []Diagnostic {
	var diags []Diagnostic
	for _, rule := range ByKind(kind) {
		if a.cfg.IsDisabled(rule.ID) {
			continue
		}
		for _, d := range rule.Check(doc, a.cfg.Options(rule.ID)) {
			d.Severity = a.cfg.GetSeverity(rule.ID, rule.Severity)
			diags = append(diags, d)
		}
	}

	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Pos.Line != diags[j].Pos.Line {
			return diags[i].Pos.Line < diags[j].Pos.Line
		}
		if diags[i].Pos.Column != diags[j].Pos.Column {
			return diags[i].Pos.Column < diags[j].Pos.Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
	return diags
}

// FilterBySeverity drops diagnostics below the given threshold. Severities
// order from error (most important) upward, so "below" means a larger value.
func FilterBySeverity(diags []Diagnostic, threshold Severity) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range diags {
		if d.Severity <= threshold {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
