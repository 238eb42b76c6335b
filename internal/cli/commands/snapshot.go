package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/reqlint/reqlint/internal/state"
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
	"github.com/spf13/cobra"
)

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [paths...]",
		Short: "Record the current manifest state",
		Long: `Save the current content of the configured manifests to the state
store. Later runs of 'reqlint diff' compare against the most recent
snapshot.`,
		Example: `  # Snapshot the configured files
  reqlint snapshot

  # Snapshot a specific manifest
  reqlint snapshot requirements-dev.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, args)
		},
	}
	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	targets, err := resolveTargets(cfg, args)
	if err != nil {
		return err
	}

	store, cleanup, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer cleanup()

	for _, t := range targets {
		snap, err := takeSnapshot(store, t)
		if err != nil {
			return err
		}
		r.Success(fmt.Sprintf("Snapshot %s saved for %s", shortID(snap.ID), t.Path))
	}
	return nil
}

// takeSnapshot hashes the file content and, for manifests, captures the
// parsed requirements so diff can compare dependency by dependency.
func takeSnapshot(store state.Store, t Target) (*state.Snapshot, error) {
	content, err := os.ReadFile(t.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.Path, err)
	}
	sum := sha256.Sum256(content)

	snap := &state.Snapshot{
		Path:          t.Path,
		Kind:          string(t.Kind),
		ContentSHA256: hex.EncodeToString(sum[:]),
	}

	var rows []state.SnapshotRequirement
	if t.Kind == lint.KindRequirements {
		f, err := reqs.ParseFile(t.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", t.Path, err)
		}
		for _, req := range f.Requirements {
			rows = append(rows, state.SnapshotRequirement{
				Name:      req.Name,
				Canonical: req.Canonical,
				Specifier: req.Specifier(),
				Extras:    strings.Join(req.Extras, ","),
				Marker:    req.Marker,
				URL:       req.URL,
				Line:      req.Pos.Line,
			})
		}
	}

	if err := store.SaveSnapshot(snap, rows); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
