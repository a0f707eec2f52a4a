package commands

import (
	"context"

	"github.com/leapstack-labs/sake/internal/cli/output"
	"github.com/leapstack-labs/sake/internal/engine"
	"github.com/spf13/cobra"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <id1> <id2>",
		Short: "Compare two experiments",
		Long: `Compare the parameters and best-checkpoint metrics of two experiments.

Only fields whose values differ are listed. A field missing from one
experiment is shown as "-".`,
		Example: `  sake diff 3f2a 91bc`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runDiff(cmd.Context(), cmdCtx, args[0], args[1])
		},
	}
	return cmd
}

func runDiff(ctx context.Context, c *CommandContext, leftID, rightID string) error {
	d, err := c.Engine.Diff(ctx, leftID, rightID)
	if err != nil {
		return err
	}

	r := c.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(diffOutput(d))
	}

	r.Table(output.Table{
		Title:  "Params",
		Header: []string{"Parameter", d.Left.ID, d.Right.ID},
		Rows:   diffRows(d.Params),
	})
	r.Table(output.Table{
		Title:  "Metrics",
		Header: []string{"Metric", d.Left.Label, d.Right.Label},
		Rows:   diffRows(d.Metrics),
	})
	return nil
}

func diffRows(rows []engine.DiffRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{row.Name, row.Left, row.Right})
	}
	return out
}

func diffOutput(d *engine.RunDiff) output.DiffOutput {
	return output.DiffOutput{
		Left:    diffSideInfo(d.Left),
		Right:   diffSideInfo(d.Right),
		Params:  diffEntries(d.Params),
		Metrics: diffEntries(d.Metrics),
	}
}

func diffSideInfo(side engine.DiffSide) output.DiffSideInfo {
	info := output.DiffSideInfo{ID: side.Run.ID}
	if _, best, ok := side.Run.BestCheckpoint(); ok {
		step := best.Step
		info.BestStep = &step
	}
	return info
}

func diffEntries(rows []engine.DiffRow) []output.DiffEntry {
	out := make([]output.DiffEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, output.DiffEntry{Name: row.Name, Left: row.Left, Right: row.Right})
	}
	return out
}
