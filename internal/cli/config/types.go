// Package config provides configuration management for the sake CLI.
//
// Values are layered with koanf: built-in defaults, then sake.yaml, then
// SAKE_* environment variables, then explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// ProjectDir is where keepsake.yml is looked up.
	ProjectDir string `koanf:"project_dir"`
	// Repository overrides the repository location of keepsake.yml.
	Repository   string `koanf:"repository"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	// Python is the interpreter prefix of reproduced commands.
	Python   string `koanf:"python"`
	MaxRows  int    `koanf:"max_rows"`
	MaxWidth int    `koanf:"max_width"`
	Pager    string `koanf:"pager"`
	NoPager  bool   `koanf:"no_pager"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPython   = "python"
	DefaultMaxRows  = 5
	DefaultMaxWidth = 60
)

// Config file names, in lookup order.
var configFileNames = []string{"sake.yaml", "sake.yml"}
