package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit     int
	Snapshots bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show past lint runs and snapshots",
		Long: `Show the lint run history recorded in the state store, newest first.
Use --snapshots to list snapshots instead.`,
		Example: `  # Show lint history for the configured manifest
  reqlint history

  # Show snapshot history
  reqlint history --snapshots

  # Limit to the last 5 entries
  reqlint history --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().BoolVar(&opts.Snapshots, "snapshots", false, "List snapshots instead of lint runs")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if len(cfg.Manifests) > 0 {
		path = cfg.Manifests[0]
	}
	if path == "" {
		return fmt.Errorf("no manifest configured")
	}

	store, cleanup, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer cleanup()

	if opts.Snapshots {
		return renderSnapshotHistory(r, store, path, opts.Limit)
	}
	return renderLintHistory(r, store, path, opts.Limit)
}

func renderLintHistory(r *output.Renderer, store state.Store, path string, limit int) error {
	runs, err := store.ListLintRuns(path, limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	r.Header(1, fmt.Sprintf("Lint history for %s", path))
	if len(runs) == 0 {
		r.Println("(no runs recorded)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Errors", "Warnings", "Info", "Hints", "Duration"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.RanAt.Local().Format(time.DateTime),
			run.Errors, run.Warnings, run.Infos, run.Hints,
			fmt.Sprintf("%dms", run.DurationMS),
		})
	}
	t.Render()
	return nil
}

func renderSnapshotHistory(r *output.Renderer, store state.Store, path string, limit int) error {
	snaps, err := store.ListSnapshots(path, limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(snaps)
	}

	r.Header(1, fmt.Sprintf("Snapshots for %s", path))
	if len(snaps) == 0 {
		r.Println("(no snapshots recorded)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Taken", "Content hash"})
	for _, snap := range snaps {
		t.AppendRow(table.Row{
			shortID(snap.ID),
			snap.TakenAt.Local().Format(time.DateTime),
			shortID(snap.ContentSHA256),
		})
	}
	t.Render()
	return nil
}
