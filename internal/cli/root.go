// Package cli provides the command-line interface for sake.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sake/internal/cli/commands"
	"github.com/leapstack-labs/sake/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sake",
		Short: "sake - query keepsake experiments",
		Long: `sake lists, inspects, compares and reproduces the experiments recorded in
a keepsake repository.

The repository is the one named by the "repository:" entry of keepsake.yml
in the project directory.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", slog.String("path", configFile))
			}
			logger.Debug("using project directory", slog.String("path", cfg.ProjectDir))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: sake.yaml, searched upward)")
	rootCmd.PersistentFlags().String("project-dir", "", "Directory holding keepsake.yml")
	rootCmd.PersistentFlags().String("repository", "", "Repository location, overriding keepsake.yml (file:// only)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("python", "", "Interpreter used to reproduce experiments (default: python)")
	rootCmd.PersistentFlags().Int("max-rows", config.DefaultMaxRows, "Rows shown per parameter or metric cell")
	rootCmd.PersistentFlags().Int("max-width", config.DefaultMaxWidth, "Width of a parameter or metric line")
	rootCmd.PersistentFlags().String("pager", "", "Pager command for long listings (default: $PAGER or less -R)")
	rootCmd.PersistentFlags().Bool("no-pager", false, "Never page output")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(commands.NewReproduceCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger creates the structured logger writing to the command's error
// output. Debug records are only emitted when verbose is set.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sake.

To load completions:

Bash:
  $ source <(sake completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sake completion bash > /etc/bash_completion.d/sake
  # macOS:
  $ sake completion bash > $(brew --prefix)/etc/bash_completion.d/sake

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sake completion zsh > "${fpath[1]}/_sake"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sake completion fish | source

  # To load completions for each session, execute once:
  $ sake completion fish > ~/.config/fish/completions/sake.fish

PowerShell:
  PS> sake completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sake completion powershell > sake.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
