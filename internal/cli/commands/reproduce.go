package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// confirmPrompt is asked before a reproduced command runs.
const confirmPrompt = "Do you want to run it? [y/N] "

// Confirmer asks a yes/no question.
type Confirmer func(cmd *cobra.Command, prompt string) (bool, error)

// Executor runs a shell command line.
type Executor func(cmd *cobra.Command, command string) error

// ReproduceOptions holds options for the reproduce command.
type ReproduceOptions struct {
	Yes     bool
	Confirm Confirmer
	Execute Executor
}

// NewReproduceCommand creates the repr command.
func NewReproduceCommand() *cobra.Command {
	return newReproduceCommand(&ReproduceOptions{})
}

func newReproduceCommand(opts *ReproduceOptions) *cobra.Command {
	if opts.Confirm == nil {
		opts.Confirm = readlineConfirm
	}
	if opts.Execute == nil {
		opts.Execute = shellExecute
	}

	cmd := &cobra.Command{
		Use:     "repr <id>",
		Aliases: []string{"reproduce"},
		Short:   "Re-run the command of an experiment",
		Long: `Print the command that produced an experiment and run it again.

The command is prefixed with the configured python interpreter and executed
through the shell after confirmation.`,
		Example: `  # Ask before running
  sake repr 3f2a

  # Run without asking
  sake reproduce 3f2a --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runReproduce(cmd, cmdCtx, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func runReproduce(cmd *cobra.Command, c *CommandContext, id string, opts *ReproduceOptions) error {
	run, err := c.Engine.Lookup(cmd.Context(), id)
	if err != nil {
		return err
	}

	r := c.Renderer
	command := commandLine(c.Cfg, run.Command)
	r.Printf("Command for experiment %s is:\n", r.Styles().ID.Render(run.ShortID()))
	r.Printf("\n%s\n\n", command)

	if !opts.Yes {
		ok, err := opts.Confirm(cmd, confirmPrompt)
		if err != nil {
			return err
		}
		if !ok {
			r.Println("Aborting")
			return nil
		}
	}

	c.Logger.Info("reproducing experiment", slog.String("id", run.ID), slog.String("command", command))
	return opts.Execute(cmd, command)
}

// readlineConfirm reads a y/N answer from the command's input. Interrupts
// and end of input count as no.
func readlineConfirm(cmd *cobra.Command, prompt string) (bool, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// shellExecute runs command through sh with the terminal's standard streams.
func shellExecute(cmd *cobra.Command, command string) error {
	sh := exec.CommandContext(cmd.Context(), "sh", "-c", command)
	sh.Stdin = os.Stdin
	sh.Stdout = cmd.OutOrStdout()
	sh.Stderr = cmd.ErrOrStderr()
	if err := sh.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", command, err)
	}
	return nil
}
