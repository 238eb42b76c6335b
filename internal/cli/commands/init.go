package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reqlint/reqlint/internal/cli/config"
	"github.com/reqlint/reqlint/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initConfig is the scaffolded reqlint.yaml shape. Field order here is
// the order keys appear in the generated file.
type initConfig struct {
	Manifests    []string       `yaml:"manifests"`
	EditorConfig string         `yaml:"editorconfig"`
	StatePath    string         `yaml:"state_path"`
	Severity     string         `yaml:"severity"`
	Output       string         `yaml:"output"`
	Lint         initLintConfig `yaml:"lint"`
}

type initLintConfig struct {
	Disabled []string          `yaml:"disabled"`
	Severity map[string]string `yaml:"severity"`
}

const initHeader = `# reqlint configuration.
# Values here are overridden by REQLINT_* environment variables and CLI flags.
`

const starterEditorConfig = `root = true

[*]
charset = utf-8
end_of_line = lf
insert_final_newline = true
indent_style = space
indent_size = 4

[*.{yml,yaml}]
indent_size = 2
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var withEditorConfig bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a reqlint configuration file",
		Long: `Write a reqlint.yaml with the default settings to the given directory
(current directory if omitted).

Use --editorconfig to also scaffold a starter .editorconfig.`,
		Example: `  # Initialize in current directory
  reqlint init

  # Initialize in a new directory with a starter .editorconfig
  reqlint init my-project --editorconfig

  # Force overwrite existing config
  reqlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return runInit(r, dir, force, withEditorConfig)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&withEditorConfig, "editorconfig", false, "Also create a starter .editorconfig")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, withEditorConfig bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "reqlint.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("reqlint.yaml already exists. Use --force to overwrite")
	}

	defaults := initConfig{
		Manifests:    []string{config.DefaultManifest},
		EditorConfig: config.DefaultEditorConfig,
		StatePath:    config.DefaultStateFile,
		Severity:     config.DefaultSeverity,
		Output:       config.DefaultOutput,
		Lint: initLintConfig{
			Disabled: []string{},
			Severity: map[string]string{},
		},
	}

	body, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(initHeader), body...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.Success("Created " + configPath)

	if withEditorConfig {
		ecPath := filepath.Join(dir, config.DefaultEditorConfig)
		if _, err := os.Stat(ecPath); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", ecPath)
		}
		if err := os.WriteFile(ecPath, []byte(starterEditorConfig), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", ecPath, err)
		}
		r.Success("Created " + ecPath)
	}

	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Point 'manifests' at your requirements files")
	r.Println("  2. Run 'reqlint lint' to check them")
	r.Println("  3. Run 'reqlint snapshot' to record a baseline for diffs")

	return nil
}
