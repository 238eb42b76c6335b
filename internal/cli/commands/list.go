package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [manifest]",
		Short: "List parsed requirements from a manifest",
		Long: `List every dependency declared in a requirements manifest with its
specifier, extras, markers, and pinning status.

Output adapts to environment:
  - Terminal: Table output
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List the configured manifest
  reqlint list

  # List a specific manifest
  reqlint list requirements-dev.txt

  # List as JSON
  reqlint list --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	f, err := reqs.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	listOutput := output.ListOutput{Path: path}
	for _, req := range f.Requirements {
		listOutput.Requirements = append(listOutput.Requirements, output.ListedRequirement{
			Name:      req.Name,
			Canonical: req.Canonical,
			Specifier: req.Specifier(),
			Extras:    strings.Join(req.Extras, ","),
			Marker:    req.Marker,
			URL:       req.URL,
			Pinned:    req.IsPinned(),
			Line:      req.Pos.Line,
		})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listOutput)
	case output.ModeMarkdown:
		return listMarkdown(r, f, listOutput)
	default:
		return listTable(r, f, listOutput)
	}
}

// listTable renders the manifest as a terminal table.
func listTable(r *output.Renderer, f *reqs.File, out output.ListOutput) error {
	r.Header(1, fmt.Sprintf("%s (%d requirements)", out.Path, len(out.Requirements)))

	if len(out.Requirements) == 0 {
		r.Println("(no requirements)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Name", "Specifier", "Extras", "Marker", "Pinned"})

	for _, req := range out.Requirements {
		spec := req.Specifier
		if req.URL != "" {
			spec = "@ " + req.URL
		}
		t.AppendRow(table.Row{req.Line, req.Name, spec, req.Extras, req.Marker, yesNo(req.Pinned)})
	}
	t.Render()

	if len(f.Errors) > 0 {
		r.Println("")
		r.Warning(fmt.Sprintf("%d lines failed to parse (run 'reqlint lint' for details)", len(f.Errors)))
	}
	return nil
}

// listMarkdown renders the manifest as a markdown table.
func listMarkdown(r *output.Renderer, f *reqs.File, out output.ListOutput) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("%s (%d requirements)", out.Path, len(out.Requirements))))
	r.Println("")

	if len(out.Requirements) == 0 {
		r.Println("(no requirements)")
		return nil
	}

	r.Println("| Line | Name | Specifier | Extras | Marker | Pinned |")
	r.Println("| --- | --- | --- | --- | --- | --- |")
	for _, req := range out.Requirements {
		spec := req.Specifier
		if req.URL != "" {
			spec = "@ " + req.URL
		}
		r.Printf("| %d | %s | %s | %s | %s | %s |\n",
			req.Line, req.Name, spec, req.Extras, req.Marker, yesNo(req.Pinned))
	}

	if len(f.Errors) > 0 {
		r.Println("")
		r.Printf("%d lines failed to parse.\n", len(f.Errors))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
