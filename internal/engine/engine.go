// Package engine runs queries over the runs of an experiment repository.
// It composes filter compilation, field resolution, best-checkpoint
// selection and presentation into the list, show and diff operations.
package engine

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sake/pkg/core"
	"github.com/leapstack-labs/sake/pkg/format"
)

// RunSource supplies runs to the engine.
type RunSource interface {
	// Runs returns every run in the repository.
	Runs(ctx context.Context) ([]*core.Run, error)
	// Lookup returns the single run whose id starts with partialID.
	Lookup(ctx context.Context, partialID string) (*core.Run, error)
}

// Config holds engine configuration.
type Config struct {
	// Source supplies the runs (required).
	Source RunSource
	// MaxRows is the presentation row limit (format.DefaultMaxRows when zero).
	MaxRows int
	// MaxWidth is the presentation line width (format.DefaultMaxWidth when zero).
	MaxWidth int
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine answers list, show and diff queries.
type Engine struct {
	source   RunSource
	maxRows  int
	maxWidth int
	logger   *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		source:   cfg.Source,
		maxRows:  cfg.MaxRows,
		maxWidth: cfg.MaxWidth,
		logger:   logger,
	}
}

func (e *Engine) formatOptions(selectFields []string, showAll bool) format.Options {
	return format.Options{
		Select:   selectFields,
		ShowAll:  showAll,
		MaxRows:  e.maxRows,
		MaxWidth: e.maxWidth,
	}
}
