package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/leapstack-labs/sake/pkg/core"
	"github.com/leapstack-labs/sake/pkg/filter"
	"github.com/leapstack-labs/sake/pkg/format"
)

// ListOptions controls the list query.
type ListOptions struct {
	// Filters are filter expressions; a run must match all of them.
	Filters []string
	// Select names the parameters and metrics to display.
	Select []string
	// Sort is the field to sort by, ascending. Empty sorts by creation time.
	Sort string
}

// RunRow is one listed run with its display cells.
type RunRow struct {
	Run     *core.Run
	ID      string
	Created time.Time
	Params  string
	Metrics string
}

// List returns the runs matching every filter, sorted, with their display
// cells. Filters are compiled before any run is loaded; a malformed filter
// fails the whole query.
func (e *Engine) List(ctx context.Context, opts ListOptions) ([]RunRow, error) {
	preds, err := filter.CompileAll(opts.Filters)
	if err != nil {
		return nil, err
	}
	if len(preds) > 0 {
		e.logger.Debug("compiled filters", slog.String("filters", preds.String()))
	}

	runs, err := e.source.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiments: %w", err)
	}

	runs = filter.Apply(preds, runs)
	SortRuns(runs, opts.Sort)
	e.logger.Debug("listing experiments", slog.Int("matched", len(runs)), slog.String("sort", opts.Sort))

	fmtOpts := e.formatOptions(opts.Select, false)
	rows := make([]RunRow, len(runs))
	for i, r := range runs {
		rows[i] = RunRow{
			Run:     r,
			ID:      r.ShortID(),
			Created: r.Created,
			Params:  format.Params(r.Params, fmtOpts),
			Metrics: format.Metrics(r, fmtOpts),
		}
	}
	return rows, nil
}

// sortDefault is the sort key of runs lacking the sort field.
var sortDefault = core.Float(0)

// SortRuns sorts runs in place, ascending by the resolved field, or by
// creation time when field is empty. Runs lacking the field sort as 0.
// The sort is stable.
func SortRuns(runs []*core.Run, field string) {
	if field == "" {
		sort.SliceStable(runs, func(i, j int) bool {
			return runs[i].Created.Before(runs[j].Created)
		})
		return
	}

	keys := make(map[*core.Run]core.Value, len(runs))
	for _, r := range runs {
		keys[r] = r.FieldOr(field, sortDefault)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return core.Less(keys[runs[i]], keys[runs[j]])
	})
}
