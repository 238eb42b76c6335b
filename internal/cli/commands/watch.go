package commands

import (
	"fmt"
	"time"

	"github.com/reqlint/reqlint/internal/watch"
	"github.com/reqlint/reqlint/pkg/lint"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Disable  []string
	Severity string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-lint files whenever they change",
		Long: `Run an initial lint pass, then watch the configured manifests and
re-run the rules every time one of them is saved. Stops on Ctrl+C.`,
		Example: `  # Watch the configured files
  reqlint watch

  # Watch a specific manifest, errors only
  reqlint watch requirements.txt --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity: error, warning, info, hint")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	targets, err := resolveTargets(cfg, args)
	if err != nil {
		return err
	}

	analyzer := lint.NewAnalyzer(buildLintConfig(cfg, opts.Disable, nil))

	severity := opts.Severity
	if severity == "" {
		severity = cfg.Severity
	}
	threshold, ok := lint.ParseSeverity(severity)
	if !ok {
		threshold = lint.SeverityWarning
	}

	kindByPath := make(map[string]lint.Kind, len(targets))
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		kindByPath[t.Path] = t.Kind
		paths = append(paths, t.Path)
	}

	lintPass := func(pass []Target) {
		var results []lintFileResult
		for _, t := range pass {
			diags, err := analyzeTarget(analyzer, t)
			if err != nil {
				r.Error(fmt.Sprintf("failed to analyze %s: %v", t.Path, err))
				continue
			}
			diags = lint.FilterBySeverity(diags, threshold)
			if len(diags) > 0 {
				results = append(results, lintFileResult{Path: t.Path, Kind: t.Kind, Diagnostics: diags})
			}
		}
		renderLintResults(r, results)
	}

	// Initial pass over everything before settling into watch mode.
	lintPass(targets)

	w, err := watch.New(paths, func(changed []string) {
		r.Println("")
		r.Println(r.Styles().Muted.Render(time.Now().Format(time.TimeOnly) + " change detected"))
		var pass []Target
		for _, p := range changed {
			kind, known := kindByPath[p]
			if !known {
				kind = kindForPath(p)
			}
			pass = append(pass, Target{Path: p, Kind: kind})
		}
		lintPass(pass)
	}, cmdCtx.Logger)
	if err != nil {
		return err
	}

	r.Println("")
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("Watching %d files. Press Ctrl+C to stop.", len(paths))))

	if err := w.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
		return err
	}
	return nil
}
