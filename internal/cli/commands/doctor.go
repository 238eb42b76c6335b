package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reqlint/reqlint/internal/cli/output"
	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
	_ "github.com/reqlint/reqlint/pkg/lint/rules/editorconfig" // register EC rules
	_ "github.com/reqlint/reqlint/pkg/lint/rules/requirements" // register RQ rules
	reqs "github.com/reqlint/reqlint/pkg/requirements"
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a comprehensive dependency health check",
		Long: `Analyze your project's manifests for potential issues and best practices.

The doctor command runs all lint rules and provides a comprehensive
report including:
- Project summary (manifests, requirements, pinning, editorconfig)
- Health checks grouped by category (duplicates, pinning, structure)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  reqlint doctor

  # Output as JSON
  reqlint doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains manifest-level statistics.
type ProjectSummary struct {
	Manifests            int  `json:"manifests"`
	Requirements         int  `json:"requirements"`
	Pinned               int  `json:"pinned"`
	ParseErrors          int  `json:"parse_errors"`
	EditorConfigPresent  bool `json:"editorconfig_present"`
	EditorConfigSections int  `json:"editorconfig_sections"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	targets, err := resolveTargets(cfg, nil)
	if err != nil {
		return err
	}

	analyzer := lint.NewAnalyzer(buildLintConfig(cfg, nil, nil))

	summary, err := buildProjectSummary(targets)
	if err != nil {
		return err
	}

	var diags []lint.Diagnostic
	for _, t := range targets {
		fileDiags, err := analyzeTarget(analyzer, t)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", t.Path, err)
		}
		for _, d := range fileDiags {
			d.Message = t.Path + ": " + d.Message
			diags = append(diags, d)
		}
	}

	doctorOutput := buildDoctorOutput(summary, diags)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildProjectSummary(targets []Target) (ProjectSummary, error) {
	var summary ProjectSummary

	for _, t := range targets {
		switch t.Kind {
		case lint.KindEditorConfig:
			summary.EditorConfigPresent = true
			f, err := ec.ParseFile(t.Path)
			if err != nil {
				if _, ok := err.(*ec.ParseError); ok {
					summary.ParseErrors++
					continue
				}
				return summary, err
			}
			summary.EditorConfigSections += len(f.Sections)
		default:
			summary.Manifests++
			f, err := reqs.ParseFile(t.Path)
			if err != nil {
				return summary, fmt.Errorf("failed to parse %s: %w", t.Path, err)
			}
			summary.Requirements += len(f.Requirements)
			summary.ParseErrors += len(f.Errors)
			for _, req := range f.Requirements {
				if req.IsPinned() {
					summary.Pinned++
				}
			}
		}
	}
	return summary, nil
}

func buildDoctorOutput(summary ProjectSummary, diags []lint.Diagnostic) *DoctorOutput {
	// Group diagnostics by rule
	diagsByRule := make(map[string][]lint.Diagnostic)
	for _, d := range diags {
		diagsByRule[d.RuleID] = append(diagsByRule[d.RuleID], d)
	}

	// Build health checks from all registered rules
	rules := lint.All()
	healthChecks := make([]HealthCheck, 0, len(rules))

	for _, rule := range rules {
		ruleDiags := diagsByRule[rule.ID]
		// Status follows the severity actually attached to the diagnostics,
		// which reflects any configured overrides.
		status := "pass"
		if len(ruleDiags) > 0 {
			status = "warn"
			for _, d := range ruleDiags {
				if d.Severity == lint.SeverityError {
					status = "error"
					break
				}
			}
		}

		details := make([]string, 0, len(ruleDiags))
		for _, d := range ruleDiags {
			details = append(details, d.Message)
		}

		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Group:      rule.Group,
			Status:     status,
			IssueCount: len(ruleDiags),
			Details:    details,
		})
	}

	// Whole-file parse failures surface as their own check
	if synDiags := diagsByRule["syntax"]; len(synDiags) > 0 {
		details := make([]string, 0, len(synDiags))
		for _, d := range synDiags {
			details = append(details, d.Message)
		}
		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     "syntax",
			Name:       "file.parseable",
			Group:      "structure",
			Status:     "error",
			IssueCount: len(synDiags),
			Details:    details,
		})
	}

	sort.Slice(healthChecks, func(i, j int) bool {
		if healthChecks[i].Group != healthChecks[j].Group {
			return healthChecks[i].Group < healthChecks[j].Group
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	score := calculateHealthScore(healthChecks, summary.Requirements)
	recommendations := generateRecommendations(healthChecks)

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           score,
		Recommendations: recommendations,
		IssueCount:      len(diags),
	}
}

// calculateHealthScore computes a health score from 0-100.
// The scoring weights:
// - Each issue reduces points
// - More requirements means issues have less individual impact
// - Errors count double
func calculateHealthScore(checks []HealthCheck, requirementCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if requirementCount > 10 {
		basePenalty = 3.0
	}
	if requirementCount > 50 {
		basePenalty = 2.0
	}
	if requirementCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "RQ01":
		return "Fix lines that do not match the dependency specifier grammar"
	case "RQ02":
		return "Use valid PEP 508 package names (letters, digits, ., -, _)"
	case "RQ03":
		return "Remove or merge conflicting duplicate declarations"
	case "RQ04":
		return "Pin dependencies to exact versions for reproducible installs"
	case "RQ05":
		return "Write package names in canonical form (lowercase, hyphens)"
	case "RQ06":
		return "Remove extras requested more than once in a requirement"
	case "RQ07":
		return "Replace wildcard versions used with ordering operators"
	case "RQ08":
		return "Fix constraints that exclude every possible version"
	case "EC01":
		return "Declare 'root = true' at the top of the root .editorconfig"
	case "EC02":
		return "Declare 'root' exactly once, before any section"
	case "EC03":
		return "Fix section headers that are not valid glob patterns"
	case "EC04":
		return "Remove or rename unknown property keys"
	case "EC05":
		return "Use a valid indent_style/indent_size combination"
	case "EC06":
		return "Drop duplicate property keys inside a section"
	case "EC07":
		return "Remove empty brace groups from section globs"
	case "syntax":
		return "Fix files that fail to parse before addressing style issues"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("Dependency Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Project Summary
	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Manifests: %d | Requirements: %d | Pinned: %d\n",
		out.Summary.Manifests, out.Summary.Requirements, out.Summary.Pinned)
	ecState := "missing"
	if out.Summary.EditorConfigPresent {
		ecState = fmt.Sprintf("present (%d sections)", out.Summary.EditorConfigSections)
	}
	r.Printf("   Parse errors: %d | EditorConfig: %s\n", out.Summary.ParseErrors, ecState)
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Dependency Health Report")
	r.Println("")

	// Project Summary
	r.Println("## Project Summary")
	r.Println("")
	r.Printf("- **Manifests**: %d\n", out.Summary.Manifests)
	r.Printf("- **Requirements**: %d\n", out.Summary.Requirements)
	r.Printf("- **Pinned**: %d\n", out.Summary.Pinned)
	r.Printf("- **Parse errors**: %d\n", out.Summary.ParseErrors)
	if out.Summary.EditorConfigPresent {
		r.Printf("- **EditorConfig**: present (%d sections)\n", out.Summary.EditorConfigSections)
	} else {
		r.Println("- **EditorConfig**: missing")
	}
	r.Println("")

	// Health Checks
	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Health Score
	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
