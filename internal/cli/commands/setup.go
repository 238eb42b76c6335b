package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/reqlint/reqlint/internal/cli/config"
	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/reqlint/reqlint/internal/state"
	"github.com/reqlint/reqlint/pkg/lint"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's
// configuration and context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.OutputMode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenStore opens the state store for the configured state path.
// Returns the store and a cleanup function that must be called
// (typically via defer).
func OpenStore(cfg *config.Config) (state.Store, func(), error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, nil, err
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = store.Close() }
	return store, cleanup, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	manifest := getEnvOrDefault("REQLINT_MANIFEST", config.DefaultManifest)
	editorConfig := getEnvOrDefault("REQLINT_EDITORCONFIG", config.DefaultEditorConfig)
	statePath := getEnvOrDefault("REQLINT_STATE_PATH", config.DefaultStateFile)
	severity := getEnvOrDefault("REQLINT_SEVERITY", config.DefaultSeverity)
	verbose := os.Getenv("REQLINT_VERBOSE") == "true"
	outputFormat := os.Getenv("REQLINT_OUTPUT")

	return &config.Config{
		Manifests:    []string{manifest},
		EditorConfig: editorConfig,
		StatePath:    statePath,
		Severity:     severity,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// buildLintConfig merges project config and CLI flags into a lint.Config.
// CLI flags take precedence over the config file.
func buildLintConfig(cfg *config.Config, disable, only []string) *lint.Config {
	lintCfg := lint.NewConfig()

	if cfg != nil && cfg.Lint != nil {
		for _, id := range cfg.Lint.Disabled {
			lintCfg.Disable(strings.TrimSpace(id))
		}
		for id, sev := range cfg.Lint.Severity {
			if s, ok := lint.ParseSeverity(sev); ok {
				lintCfg.SetSeverity(id, s)
			}
		}
		for id, ruleOpts := range cfg.Lint.Rules {
			lintCfg.SetRuleOptions(id, ruleOpts)
		}
	}

	for _, id := range disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(only) > 0 {
		enabledSet := make(map[string]bool)
		for _, id := range only {
			enabledSet[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.All() {
			if !enabledSet[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg
}
