package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlint/reqlint/internal/cli/config"
	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/internal/state"
	"github.com/reqlint/reqlint/pkg/lint"
	reqs "github.com/reqlint/reqlint/pkg/requirements"
)

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "disable", "severity", "rule", "no-state"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"group", "kind", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list [manifest]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewSnapshotCommand(t *testing.T) {
	cmd := NewSnapshotCommand()

	assert.Equal(t, "snapshot [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewDiffCommand(t *testing.T) {
	cmd := NewDiffCommand()

	assert.Equal(t, "diff [manifest]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history [path]", cmd.Use)
	for _, flag := range []string{"limit", "snapshots"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [paths...]", cmd.Use)
	for _, flag := range []string{"disable", "severity"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want lint.Kind
	}{
		{"requirements.txt", lint.KindRequirements},
		{"requirements-dev.txt", lint.KindRequirements},
		{"sub/dir/requirements.txt", lint.KindRequirements},
		{".editorconfig", lint.KindEditorConfig},
		{"project/.editorconfig", lint.KindEditorConfig},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindForPath(tt.path), "path %q", tt.path)
	}
}

func TestResolveTargetsExplicitArgs(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("numpy<2.0.0\n"), 0o644))

	targets, err := resolveTargets(&config.Config{}, []string{manifest})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, lint.KindRequirements, targets[0].Kind)
}

func TestResolveTargetsMissingArg(t *testing.T) {
	_, err := resolveTargets(&config.Config{}, []string{"does-not-exist.txt"})
	require.Error(t, err)
}

func TestResolveTargetsFromConfig(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	ecFile := filepath.Join(dir, ".editorconfig")
	require.NoError(t, os.WriteFile(manifest, []byte("pandas>=2.2.0\n"), 0o644))
	require.NoError(t, os.WriteFile(ecFile, []byte("root = true\n"), 0o644))

	cfg := &config.Config{
		Manifests:    []string{manifest, filepath.Join(dir, "missing.txt")},
		EditorConfig: ecFile,
	}
	targets, err := resolveTargets(cfg, nil)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, lint.KindRequirements, targets[0].Kind)
	assert.Equal(t, lint.KindEditorConfig, targets[1].Kind)
}

func TestResolveTargetsNothingConfigured(t *testing.T) {
	cfg := &config.Config{
		Manifests:    []string{filepath.Join(t.TempDir(), "missing.txt")},
		EditorConfig: "",
	}
	_, err := resolveTargets(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files to analyze")
}

func TestAnalyzeTargetRequirements(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("numpy<2.0.0\nnumpy>=2.1.0\n"), 0o644))

	analyzer := lint.NewAnalyzer(nil)
	diags, err := analyzeTarget(analyzer, Target{Path: manifest, Kind: lint.KindRequirements})
	require.NoError(t, err)

	var ids []string
	for _, d := range diags {
		ids = append(ids, d.RuleID)
	}
	assert.Contains(t, ids, "RQ03", "conflicting duplicates should be reported")
}

func TestAnalyzeTargetEditorConfigSyntaxError(t *testing.T) {
	dir := t.TempDir()
	ecFile := filepath.Join(dir, ".editorconfig")
	require.NoError(t, os.WriteFile(ecFile, []byte("root = true\n[*.py\nindent_size = 4\n"), 0o644))

	analyzer := lint.NewAnalyzer(nil)
	diags, err := analyzeTarget(analyzer, Target{Path: ecFile, Kind: lint.KindEditorConfig})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "syntax", diags[0].RuleID)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)
}

func TestBuildLintConfigDisables(t *testing.T) {
	cfg := &config.Config{
		Lint: &config.LintSettings{
			Disabled: []string{"RQ04"},
			Severity: map[string]string{"RQ06": "error"},
		},
	}

	lintCfg := buildLintConfig(cfg, []string{"EC04"}, nil)
	assert.True(t, lintCfg.IsDisabled("RQ04"))
	assert.True(t, lintCfg.IsDisabled("EC04"))
	assert.False(t, lintCfg.IsDisabled("RQ01"))
	assert.Equal(t, lint.SeverityError, lintCfg.GetSeverity("RQ06", lint.SeverityHint))
}

func TestBuildLintConfigOnly(t *testing.T) {
	lintCfg := buildLintConfig(&config.Config{}, nil, []string{"RQ01"})
	assert.False(t, lintCfg.IsDisabled("RQ01"))
	assert.True(t, lintCfg.IsDisabled("RQ03"))
	assert.True(t, lintCfg.IsDisabled("EC01"))
}

func TestRenderLintResultsClean(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRendererWithTTY(&buf, &buf, output.ModeText, false)

	hasIssues := renderLintResults(r, nil)
	assert.False(t, hasIssues)
	assert.Contains(t, buf.String(), "No lint issues found")
}

func TestRenderLintResultsWithIssues(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRendererWithTTY(&buf, &buf, output.ModeText, false)

	results := []lintFileResult{{
		Path: "requirements.txt",
		Kind: lint.KindRequirements,
		Diagnostics: []lint.Diagnostic{
			{RuleID: "RQ03", Severity: lint.SeverityError, Message: "conflicting constraints"},
			{RuleID: "RQ04", Severity: lint.SeverityHint, Message: "not pinned"},
		},
	}}

	hasIssues := renderLintResults(r, results)
	assert.True(t, hasIssues)

	out := buf.String()
	assert.Contains(t, out, "requirements.txt")
	assert.Contains(t, out, "RQ03")
	assert.Contains(t, out, "conflicting constraints")
	assert.Contains(t, out, "Summary: 2 issues, 1 errors, 1 hints in 1 files")
}

func TestRenderLintResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRendererWithTTY(&buf, &buf, output.ModeJSON, false)

	results := []lintFileResult{{
		Path: "requirements.txt",
		Diagnostics: []lint.Diagnostic{
			{RuleID: "RQ01", Severity: lint.SeverityError, Message: "bad specifier"},
		},
	}}

	renderLintResults(r, results)
	out := buf.String()
	assert.Contains(t, out, `"rule_id": "RQ01"`)
	assert.Contains(t, out, `"severity": "error"`)
}

func TestTakeSnapshotAndDiff(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("numpy<2.0.0\npandas[excel,html]>=2.2.0\n"), 0o644))

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitSchema())

	snap, err := takeSnapshot(store, Target{Path: manifest, Kind: lint.KindRequirements})
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)

	before, err := store.GetSnapshotRequirements(snap.ID)
	require.NoError(t, err)
	require.Len(t, before, 2)

	// Change the manifest: bump pandas, drop numpy, add requests.
	require.NoError(t, os.WriteFile(manifest, []byte("pandas[excel,html]>=2.3.0\nrequests==2.32.0\n"), 0o644))
	current, err := reqs.ParseFile(manifest)
	require.NoError(t, err)

	entries := diffRequirements(before, current)
	require.Len(t, entries, 3)

	// Entries sort by change kind, then name.
	assert.Equal(t, "added", entries[0].Change)
	assert.Equal(t, "requests", entries[0].Name)
	assert.Equal(t, "changed", entries[1].Change)
	assert.Equal(t, "pandas", entries[1].Name)
	assert.Contains(t, entries[1].Before, ">=2.2.0")
	assert.Contains(t, entries[1].After, ">=2.3.0")
	assert.Equal(t, "removed", entries[2].Change)
	assert.Equal(t, "numpy", entries[2].Name)
}

func TestDiffRequirementsNoChanges(t *testing.T) {
	before := []state.SnapshotRequirement{
		{Canonical: "numpy", Specifier: "<2.0.0"},
	}
	current, err := reqs.Parse(strings.NewReader("numpy<2.0.0\n"))
	require.NoError(t, err)

	entries := diffRequirements(before, current)
	assert.Empty(t, entries)
}

func TestRequirementStateString(t *testing.T) {
	assert.Equal(t, "(any)", requirementState{}.String())
	assert.Equal(t, "[excel,html] >=2.2.0", requirementState{Specifier: ">=2.2.0", Extras: "excel,html"}.String())
	assert.Equal(t, "; python_version < \"3.12\"", requirementState{Marker: "python_version < \"3.12\""}.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("123456789abc"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
