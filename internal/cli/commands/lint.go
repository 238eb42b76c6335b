package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/internal/state"
	"github.com/reqlint/reqlint/pkg/lint"
	_ "github.com/reqlint/reqlint/pkg/lint/rules/editorconfig" // register EC rules
	_ "github.com/reqlint/reqlint/pkg/lint/rules/requirements" // register RQ rules
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	NoState  bool     // Skip recording the run in the state store
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run lint rules on manifests",
		Long: `Analyze requirements manifests and .editorconfig files for issues.

Runs the registered rules against each file and reports any violations
found. Rules can be configured in reqlint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the configured files
  reqlint lint

  # Lint a specific manifest
  reqlint lint requirements-dev.txt

  # Output as JSON
  reqlint lint --format json

  # Disable specific rules
  reqlint lint --disable RQ04,EC04

  # Only report errors (ignore warnings/hints)
  reqlint lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.NoState, "no-state", false, "Skip recording the run in the state store")

	return cmd
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Kind        lint.Kind
	Diagnostics []lint.Diagnostic
	DurationMS  int64
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	targets, err := resolveTargets(cfg, args)
	if err != nil {
		return err
	}

	lintCfg := buildLintConfig(cfg, opts.Disable, opts.Rules)
	analyzer := lint.NewAnalyzer(lintCfg)

	var results []lintFileResult
	for _, t := range targets {
		start := time.Now()
		diags, err := analyzeTarget(analyzer, t)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", t.Path, err)
		}
		results = append(results, lintFileResult{
			Path:        t.Path,
			Kind:        t.Kind,
			Diagnostics: diags,
			DurationMS:  time.Since(start).Milliseconds(),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	if !opts.NoState {
		recordLintRuns(cmdCtx, results)
	}

	// Filter by severity threshold
	severity := opts.Severity
	if severity == "" {
		severity = cfg.Severity
	}
	threshold, ok := lint.ParseSeverity(severity)
	if !ok {
		threshold = lint.SeverityWarning
	}
	var filtered []lintFileResult
	for _, res := range results {
		diags := lint.FilterBySeverity(res.Diagnostics, threshold)
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{Path: res.Path, Kind: res.Kind, Diagnostics: diags})
		}
	}

	if renderLintResults(r, filtered) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// recordLintRuns saves run summaries for history. Failures are logged,
// not fatal; linting output matters more than bookkeeping.
func recordLintRuns(cmdCtx *CommandContext, results []lintFileResult) {
	store, cleanup, err := OpenStore(cmdCtx.Cfg)
	if err != nil {
		cmdCtx.Logger.Warn("failed to open state store", "error", err)
		return
	}
	defer cleanup()

	for _, res := range results {
		run := &state.LintRun{
			Path:       res.Path,
			Kind:       string(res.Kind),
			DurationMS: res.DurationMS,
		}
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				run.Errors++
			case lint.SeverityWarning:
				run.Warnings++
			case lint.SeverityInfo:
				run.Infos++
			case lint.SeverityHint:
				run.Hints++
			}
		}
		if err := store.RecordLintRun(run); err != nil {
			cmdCtx.Logger.Warn("failed to record lint run", "path", res.Path, "error", err)
		}
	}
}

func renderLintResults(r *output.Renderer, results []lintFileResult) bool {
	if len(results) == 0 {
		r.Success("No lint issues found")
		return false
	}

	// Calculate summary stats
	summary := output.LintSummary{
		FilesAnalyzed: len(results),
	}
	for _, res := range results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		jsonOutput := output.LintOutput{
			Summary: summary,
		}
		for _, res := range results {
			fileResult := output.LintFileResult{
				Path: res.Path,
			}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					RuleID:   d.RuleID,
					Severity: d.Severity.String(),
					Message:  d.Message,
					Line:     d.Pos.Line,
					Column:   d.Pos.Column,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return true
	}

	// Text/Markdown output
	for _, res := range results {
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-5s", loc)),
				severityStyle(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesAnalyzed)

	return true
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
