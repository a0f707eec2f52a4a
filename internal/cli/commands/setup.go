package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/sake/internal/cli/config"
	"github.com/leapstack-labs/sake/internal/cli/output"
	"github.com/leapstack-labs/sake/internal/engine"
	"github.com/leapstack-labs/sake/internal/repository"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// It fails before any run is read when no repository can be located.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration, or defaults rooted at the
// working directory when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return &config.Config{
		ProjectDir:   cwd,
		OutputFormat: config.DefaultOutput,
		Python:       config.DefaultPython,
		MaxRows:      config.DefaultMaxRows,
		MaxWidth:     config.DefaultMaxWidth,
	}
}

// resolveRepository returns the repository directory: the configured
// override when set, else the location named by keepsake.yml.
func resolveRepository(cfg *config.Config) (string, error) {
	if cfg.Repository != "" {
		return repository.ParseLocation(cfg.Repository, cfg.ProjectDir)
	}
	return repository.LocateFromProject(cfg.ProjectDir)
}

// createEngine creates an engine over the configured repository.
func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	location, err := resolveRepository(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("using repository", slog.String("location", location))

	store := repository.New(repository.Config{
		Location: location,
		Logger:   logger,
	})
	return engine.New(engine.Config{
		Source:   store,
		MaxRows:  cfg.MaxRows,
		MaxWidth: cfg.MaxWidth,
		Logger:   logger,
	}), nil
}

// pagerConfig returns the pager settings from cfg.
func pagerConfig(cfg *config.Config) output.PagerConfig {
	return output.PagerConfig{Command: cfg.Pager, Disabled: cfg.NoPager}
}

// commandLine returns the shell command that reproduces a run.
func commandLine(cfg *config.Config, command string) string {
	return fmt.Sprintf("%s %s", cfg.Python, command)
}

// formatCreated renders a creation time as a two-line table cell.
func formatCreated(t time.Time) string {
	return t.Format("15:04\n01/02/06")
}
