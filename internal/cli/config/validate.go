package config

import (
	"fmt"
	"os"
)

var validOutputs = map[string]bool{
	"": true, "auto": true, "text": true, "markdown": true, "json": true,
}

var validSeverities = map[string]bool{
	"error": true, "warning": true, "info": true, "hint": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Manifests) == 0 && c.EditorConfig == "" {
		return fmt.Errorf("at least one manifest or an editorconfig path is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected auto, text, markdown, or json)", c.OutputFormat)
	}
	if c.Severity != "" && !validSeverities[c.Severity] {
		return fmt.Errorf("invalid severity %q (expected error, warning, info, or hint)", c.Severity)
	}
	return nil
}

// ValidateFiles checks that the configured manifest files exist.
// Help and init commands work without them.
func (c *Config) ValidateFiles() error {
	for _, m := range c.Manifests {
		if _, err := os.Stat(m); os.IsNotExist(err) {
			return fmt.Errorf("manifest does not exist: %s\nHint: Create the file or adjust manifests in reqlint.yaml", m)
		}
	}
	return nil
}
