package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "reqlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, DefaultManifest)}, cfg.Manifests)
	assert.Equal(t, filepath.Join(dir, DefaultEditorConfig), cfg.EditorConfig)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultSeverity, cfg.Severity)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, `
manifests:
  - requirements.txt
  - requirements-dev.txt
severity: error
output: json
lint:
  disabled:
    - RQ04
  severity:
    RQ05: hint
  rules:
    RQ04:
      allow_ranges: true
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Len(t, cfg.Manifests, 2)
	assert.Equal(t, filepath.Join(dir, "requirements-dev.txt"), cfg.Manifests[1])
	assert.Equal(t, "error", cfg.Severity)
	assert.Equal(t, "json", cfg.OutputFormat)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"RQ04"}, cfg.Lint.Disabled)
	assert.Equal(t, "hint", cfg.Lint.Severity["RQ05"])
	assert.Equal(t, true, cfg.Lint.Rules["RQ04"]["allow_ranges"])
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, "severity: error\n")

	t.Setenv("REQLINT_SEVERITY", "hint")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "hint", cfg.Severity)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	t.Setenv("REQLINT_OUTPUT", "markdown")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("state", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "json", "--state", "custom.db"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(dir, "custom.db"), cfg.StatePath)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, "output: markdown\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	path := writeConfig(t, dir, "output: csv\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Manifests: []string{"requirements.txt"}, OutputFormat: "auto", Severity: "warning"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{OutputFormat: "auto"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Manifests: []string{"requirements.txt"}, OutputFormat: "auto", Severity: "fatal"}
	assert.Error(t, cfg.Validate())
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(existing, []byte("numpy<2.0.0\n"), 0o644))

	cfg := &Config{Manifests: []string{existing}}
	assert.NoError(t, cfg.ValidateFiles())

	cfg = &Config{Manifests: []string{filepath.Join(dir, "missing.txt")}}
	err := cfg.ValidateFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}
