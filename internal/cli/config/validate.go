package config

import (
	"fmt"
	"slices"
)

var outputModes = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(outputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of auto, text, markdown, json)", c.OutputFormat)
	}
	if c.MaxRows <= 0 {
		return fmt.Errorf("max_rows must be positive, got %d", c.MaxRows)
	}
	if c.MaxWidth <= 0 {
		return fmt.Errorf("max_width must be positive, got %d", c.MaxWidth)
	}
	if c.Python == "" {
		return fmt.Errorf("python is required")
	}
	return nil
}
