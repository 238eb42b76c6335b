package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reqlint/reqlint/internal/cli/config"
	ec "github.com/reqlint/reqlint/pkg/editorconfig"
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

// Target is one file to analyze.
type Target struct {
	Path string
	Kind lint.Kind
}

// kindForPath infers the document kind from the file name.
// Anything named like .editorconfig is an editorconfig, everything else
// is a requirements manifest.
func kindForPath(path string) lint.Kind {
	base := filepath.Base(path)
	if base == ".editorconfig" || strings.HasSuffix(base, ".editorconfig") {
		return lint.KindEditorConfig
	}
	return lint.KindRequirements
}

// resolveTargets builds the list of files to analyze. Explicit args win;
// otherwise the configured manifests plus the editorconfig, skipping
// configured files that do not exist.
func resolveTargets(cfg *config.Config, args []string) ([]Target, error) {
	if len(args) > 0 {
		targets := make([]Target, 0, len(args))
		for _, arg := range args {
			if _, err := os.Stat(arg); err != nil {
				return nil, fmt.Errorf("cannot read %s: %w", arg, err)
			}
			targets = append(targets, Target{Path: arg, Kind: kindForPath(arg)})
		}
		return targets, nil
	}

	var targets []Target
	for _, m := range cfg.Manifests {
		if _, err := os.Stat(m); err == nil {
			targets = append(targets, Target{Path: m, Kind: lint.KindRequirements})
		}
	}
	if cfg.EditorConfig != "" {
		if _, err := os.Stat(cfg.EditorConfig); err == nil {
			targets = append(targets, Target{Path: cfg.EditorConfig, Kind: lint.KindEditorConfig})
		}
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("no files to analyze\nHint: Create %s or pass paths explicitly", config.DefaultManifest)
	}
	return targets, nil
}

// analyzeTarget parses one file and runs the registered rules against it.
// An editorconfig that fails to parse at all yields a single syntax
// diagnostic instead of rule output.
func analyzeTarget(analyzer *lint.Analyzer, t Target) ([]lint.Diagnostic, error) {
	switch t.Kind {
	case lint.KindEditorConfig:
		f, err := ec.ParseFile(t.Path)
		if err != nil {
			if perr, ok := err.(*ec.ParseError); ok {
				return []lint.Diagnostic{{
					RuleID:   "syntax",
					Severity: lint.SeverityError,
					Message:  perr.Message,
					Pos:      perr.Pos,
				}}, nil
			}
			return nil, err
		}
		return analyzer.Analyze(lint.KindEditorConfig, f), nil
	default:
		f, err := reqs.ParseFile(t.Path)
		if err != nil {
			return nil, err
		}
		return analyzer.Analyze(lint.KindRequirements, f), nil
	}
}
