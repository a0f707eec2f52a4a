// Package format renders parameters and metrics of a run into bounded,
// human-scannable multi-line text cells.
package format

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/sake/pkg/core"
)

// Default limits.
const (
	DefaultMaxRows  = 5
	DefaultMaxWidth = 60
)

// NoCheckpoints is the metrics cell of a run without checkpoints.
const NoCheckpoints = "0 checkpoints"

// Options controls selection and truncation.
type Options struct {
	// Select keeps only the named fields when at least one of them exists.
	Select []string
	// ShowAll disables selection and the row limit.
	ShowAll bool
	// MaxRows is the row limit threshold (DefaultMaxRows when zero).
	MaxRows int
	// MaxWidth is the per-line width limit (DefaultMaxWidth when zero).
	MaxWidth int
}

func (o Options) printer(selected bool) *Printer {
	rows := o.MaxRows
	if rows <= 0 {
		rows = DefaultMaxRows
	}
	if o.ShowAll || selected {
		rows = Unlimited
	}
	width := o.MaxWidth
	if width <= 0 {
		width = DefaultMaxWidth
	}
	return NewPrinter(rows, width)
}

// Select returns the fields named in names, in their original order, and
// true. When names is empty or matches nothing, all fields are returned with
// false.
func Select(fields core.Fields, names []string) (core.Fields, bool) {
	if len(names) == 0 {
		return fields, false
	}
	var out core.Fields
	for _, f := range fields {
		if slices.Contains(names, f.Name) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return fields, false
	}
	return out, true
}

// Line renders one "name: value" line.
func Line(f core.Field) string {
	return fmt.Sprintf("%s: %s", f.Name, f.Value)
}

// Params renders a run's parameters.
func Params(params core.Fields, opts Options) string {
	return Present(params, opts)
}

// Present renders name/value pairs as "name: value" lines after selection and
// truncation.
func Present(fields core.Fields, opts Options) string {
	items, selected := fields, false
	if !opts.ShowAll {
		items, selected = Select(fields, opts.Select)
	}
	p := opts.printer(selected)
	for _, f := range items {
		p.Line(Line(f))
	}
	return p.String()
}

// Metrics renders the metrics of the run's best checkpoint, headed by the
// chosen step. The winning primary metric is listed first.
func Metrics(run *core.Run, opts Options) string {
	name, best, ok := run.BestCheckpoint()
	if !ok {
		return NoCheckpoints
	}

	items, selected := best.Metrics, false
	if !opts.ShowAll {
		items, selected = Select(best.Metrics, opts.Select)
	}

	p := opts.printer(selected)
	p.Line(BestStepLabel(best.Step))
	for _, f := range PrimaryFirst(items, name) {
		p.Line(Line(f))
	}
	return p.String()
}

// BestStepLabel is the header line of a metrics cell.
func BestStepLabel(step int64) string {
	return fmt.Sprintf("step %d (best)", step)
}

// PrimaryFirst moves the field called primary to the front, keeping the
// relative order of the others.
func PrimaryFirst(fields core.Fields, primary string) core.Fields {
	out := make(core.Fields, 0, len(fields))
	for _, f := range fields {
		if f.Name == primary {
			out = append(out, f)
		}
	}
	for _, f := range fields {
		if f.Name != primary {
			out = append(out, f)
		}
	}
	return out
}
