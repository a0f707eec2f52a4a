package commands

import (
	"context"

	"github.com/leapstack-labs/sake/internal/cli/output"
	"github.com/leapstack-labs/sake/internal/engine"
	"github.com/leapstack-labs/sake/pkg/core"
	"github.com/leapstack-labs/sake/pkg/format"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Filters []string
	Select  []string
	Sort    string
	Quiet   bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List experiments",
		Long: `List experiments with their parameters and best checkpoint.

Filters take the form <field><op><value> with op one of = != < <= > >= or
"<value> in <field>". Expressions joined by " or " match when either side
matches; repeated --filter flags must all match. Fields are looked up in the
parameters, then in the metrics of the best checkpoint. "created" and
"n_checkpoints" are always available.

Output adapts to environment:
  - Terminal: Styled table, paged when long
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all experiments, oldest first
  sake list

  # Only experiments with a learning rate above 0.01, best accuracy first
  sake ls -f "lr>0.01" --sort accuracy

  # Show only some fields
  sake ls -s lr -s accuracy

  # Ids only, for scripting
  sake ls -q -f "optimizer=adam"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmdCtx, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter expression (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Select, "select", "s", nil, "Field to display (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Field to sort by (default: creation time)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the experiment ids")

	return cmd
}

func runList(ctx context.Context, c *CommandContext, opts *ListOptions) error {
	rows, err := c.Engine.List(ctx, engine.ListOptions{
		Filters: opts.Filters,
		Select:  opts.Select,
		Sort:    opts.Sort,
	})
	if err != nil {
		return err
	}

	r := c.Renderer
	if opts.Quiet {
		for _, row := range rows {
			r.Println(row.Run.ID)
		}
		return nil
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(r, rows, opts.Select)
	default:
		return r.Paged(len(rows), pagerConfig(c.Cfg), func(pr *output.Renderer) {
			pr.Table(experimentsTable(rows))
		})
	}
}

func experimentsTable(rows []engine.RunRow) output.Table {
	t := output.Table{
		Title:  "Experiments",
		Header: []string{"id", "Created", "Parameters", "Checkpoints"},
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			row.ID,
			formatCreated(row.Created),
			row.Params,
			row.Metrics,
		})
	}
	return t
}

func listJSON(r *output.Renderer, rows []engine.RunRow, selectFields []string) error {
	infos := make([]output.ExperimentInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, experimentInfo(row.Run, selectFields))
	}
	return r.JSON(infos)
}

// experimentInfo builds the JSON form of run, restricted to selectFields
// when any of them exist.
func experimentInfo(run *core.Run, selectFields []string) output.ExperimentInfo {
	params, _ := format.Select(run.Params, selectFields)
	info := output.ExperimentInfo{
		ID:             run.ID,
		Created:        run.Created,
		Command:        run.Command,
		Params:         params,
		NumCheckpoints: run.NumCheckpoints(),
	}
	if name, best, ok := run.BestCheckpoint(); ok {
		info.Best = bestInfo(name, best, selectFields)
	}
	return info
}

func bestInfo(primary string, best core.Checkpoint, selectFields []string) *output.BestInfo {
	metrics, _ := format.Select(best.Metrics, selectFields)
	return &output.BestInfo{
		ID:            best.ID,
		Step:          best.Step,
		PrimaryMetric: primary,
		Metrics:       metrics,
	}
}
