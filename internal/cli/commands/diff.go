package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/internal/state"
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
	"github.com/spf13/cobra"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [manifest]",
		Short: "Compare a manifest against its latest snapshot",
		Long: `Show dependencies added, removed, or changed since the most recent
snapshot taken with 'reqlint snapshot'.`,
		Example: `  # Diff the configured manifest
  reqlint diff

  # Diff a specific manifest
  reqlint diff requirements-dev.txt

  # Diff as JSON
  reqlint diff --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args)
		},
	}
	return cmd
}

// requirementState is the comparable view of one dependency in a diff.
type requirementState struct {
	Specifier string
	Extras    string
	Marker    string
	URL       string
}

func (s requirementState) String() string {
	parts := []string{}
	if s.Extras != "" {
		parts = append(parts, "["+s.Extras+"]")
	}
	if s.Specifier != "" {
		parts = append(parts, s.Specifier)
	}
	if s.URL != "" {
		parts = append(parts, "@ "+s.URL)
	}
	if s.Marker != "" {
		parts = append(parts, "; "+s.Marker)
	}
	if len(parts) == 0 {
		return "(any)"
	}
	return strings.Join(parts, " ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		targets, err := resolveTargets(cfg, nil)
		if err != nil {
			return err
		}
		for _, t := range targets {
			if t.Kind == lint.KindRequirements {
				path = t.Path
				break
			}
		}
		if path == "" {
			return fmt.Errorf("no requirements manifest configured")
		}
	}

	store, cleanup, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer cleanup()

	snap, err := store.LatestSnapshot(path)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no snapshot found for %s\nHint: Run 'reqlint snapshot' first", path)
	}

	before, err := store.GetSnapshotRequirements(snap.ID)
	if err != nil {
		return err
	}

	f, err := reqs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	entries := diffRequirements(before, f)

	diffOutput := output.DiffOutput{
		Path:       path,
		SnapshotID: snap.ID,
		TakenAt:    snap.TakenAt.Format(time.RFC3339),
		Entries:    entries,
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(diffOutput)
	}
	renderDiff(r, diffOutput)
	return nil
}

// diffRequirements compares snapshot rows with the current manifest by
// canonical name. Duplicate declarations collapse to the last one, which
// is also how pip resolves them.
func diffRequirements(before []state.SnapshotRequirement, current *reqs.File) []output.DiffEntry {
	old := make(map[string]requirementState)
	for _, row := range before {
		old[row.Canonical] = requirementState{
			Specifier: row.Specifier,
			Extras:    row.Extras,
			Marker:    row.Marker,
			URL:       row.URL,
		}
	}

	now := make(map[string]requirementState)
	for _, req := range current.Requirements {
		now[req.Canonical] = requirementState{
			Specifier: req.Specifier(),
			Extras:    strings.Join(req.Extras, ","),
			Marker:    req.Marker,
			URL:       req.URL,
		}
	}

	var entries []output.DiffEntry
	for name, cur := range now {
		prev, existed := old[name]
		switch {
		case !existed:
			entries = append(entries, output.DiffEntry{Change: "added", Name: name, After: cur.String()})
		case prev != cur:
			entries = append(entries, output.DiffEntry{Change: "changed", Name: name, Before: prev.String(), After: cur.String()})
		}
	}
	for name, prev := range old {
		if _, exists := now[name]; !exists {
			entries = append(entries, output.DiffEntry{Change: "removed", Name: name, Before: prev.String()})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Change != entries[j].Change {
			return entries[i].Change < entries[j].Change
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func renderDiff(r *output.Renderer, d output.DiffOutput) {
	r.Header(1, fmt.Sprintf("Changes in %s since %s", d.Path, d.TakenAt))
	r.Println("")

	if len(d.Entries) == 0 {
		r.Success("No changes since last snapshot")
		return
	}

	for _, e := range d.Entries {
		switch e.Change {
		case "added":
			r.Println(r.Styles().Success.Render("  + " + e.Name + " " + e.After))
		case "removed":
			r.Println(r.Styles().Error.Render("  - " + e.Name + " " + e.Before))
		case "changed":
			r.Printf("  %s %s %s -> %s\n", r.Styles().Warning.Render("~"), e.Name, e.Before, e.After)
		}
	}
	r.Println("")
	r.Printf("%d changes\n", len(d.Entries))
}
