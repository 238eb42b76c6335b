// Package config provides configuration management for the reqlint CLI.
// Configuration layers are, from lowest to highest precedence: built-in
// defaults, reqlint.yaml, REQLINT_ environment variables, and CLI flags.
package config

// LintSettings configures the rule engine from reqlint.yaml.
type LintSettings struct {
	Disabled []string                  `koanf:"disabled"`
	Severity map[string]string         `koanf:"severity"`
	Rules    map[string]map[string]any `koanf:"rules"`
}

// Config holds all CLI configuration options.
type Config struct {
	Manifests    []string      `koanf:"manifests"`
	EditorConfig string        `koanf:"editorconfig"`
	StatePath    string        `koanf:"state_path"`
	Severity     string        `koanf:"severity"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Lint         *LintSettings `koanf:"lint"`

	// ProjectRoot is the directory all relative paths resolve against.
	// Set during loading, never read from file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultManifest     = "requirements.txt"
	DefaultEditorConfig = ".editorconfig"
	DefaultStateFile    = ".reqlint/state.db"
	DefaultSeverity     = "warning"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
