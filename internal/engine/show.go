package engine

import (
	"context"

	"github.com/leapstack-labs/sake/pkg/core"
	"github.com/leapstack-labs/sake/pkg/format"
)

// ShowOptions controls the show query.
type ShowOptions struct {
	Select  []string
	ShowAll bool
}

// RunDetail is one run with its display cells.
type RunDetail struct {
	Run     *core.Run
	ID      string
	Command string
	Params  string
	Metrics string
}

// Show looks up a run by (partial) id and renders it.
func (e *Engine) Show(ctx context.Context, partialID string, opts ShowOptions) (*RunDetail, error) {
	run, err := e.source.Lookup(ctx, partialID)
	if err != nil {
		return nil, err
	}

	fmtOpts := e.formatOptions(opts.Select, opts.ShowAll)
	return &RunDetail{
		Run:     run,
		ID:      run.ShortID(),
		Command: run.Command,
		Params:  format.Params(run.Params, fmtOpts),
		Metrics: format.Metrics(run, fmtOpts),
	}, nil
}

// Lookup resolves a (partial) id to a run.
func (e *Engine) Lookup(ctx context.Context, partialID string) (*core.Run, error) {
	return e.source.Lookup(ctx, partialID)
}
