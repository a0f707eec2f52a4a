package commands

import (
	"context"

	"github.com/leapstack-labs/sake/internal/cli/output"
	"github.com/leapstack-labs/sake/internal/engine"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Select  []string
	ShowAll bool
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one experiment",
		Long: `Show the command, parameters and best checkpoint of one experiment.

The id may be any unique prefix of the experiment id. Long parameter and
metric lists are truncated unless --show-all is given.`,
		Example: `  # Show an experiment by id prefix
  sake show 3f2a

  # Show only the learning rate and loss
  sake show 3f2a -s lr -s loss

  # Show everything, untruncated
  sake show 3f2a --show-all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), cmdCtx, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Select, "select", "s", nil, "Field to display (repeatable)")
	cmd.Flags().BoolVarP(&opts.ShowAll, "show-all", "a", false, "Show all fields without truncation")

	return cmd
}

func runShow(ctx context.Context, c *CommandContext, id string, opts *ShowOptions) error {
	detail, err := c.Engine.Show(ctx, id, engine.ShowOptions{
		Select:  opts.Select,
		ShowAll: opts.ShowAll,
	})
	if err != nil {
		return err
	}

	r := c.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		selectFields := opts.Select
		if opts.ShowAll {
			selectFields = nil
		}
		return r.JSON(experimentInfo(detail.Run, selectFields))
	}

	r.Panel("Experiment "+detail.ID, []output.Section{
		{Title: "Command", Body: commandLine(c.Cfg, detail.Command)},
		{Title: "Parameters", Body: detail.Params},
		{Title: "Checkpoint", Body: detail.Metrics},
	})
	return nil
}
