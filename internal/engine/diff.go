package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/leapstack-labs/sake/pkg/core"
	"github.com/leapstack-labs/sake/pkg/format"
)

// Missing is displayed for a field a run does not have or that holds null.
const Missing = "-"

// DiffRow is a field whose value differs between two runs.
type DiffRow struct {
	Name  string
	Left  string
	Right string
}

// DiffSide identifies one run of a diff.
type DiffSide struct {
	Run   *core.Run
	ID    string
	Label string
}

// RunDiff holds the parameters and metrics that differ between two runs.
type RunDiff struct {
	Left    DiffSide
	Right   DiffSide
	Params  []DiffRow
	Metrics []DiffRow
}

// Diff compares two runs. Parameters are compared over the union of both
// parameter sets; metrics over the union of both best checkpoints' metric
// names, resolved with Run.Field. Rows are ordered by name.
func (e *Engine) Diff(ctx context.Context, leftID, rightID string) (*RunDiff, error) {
	left, err := e.source.Lookup(ctx, leftID)
	if err != nil {
		return nil, err
	}
	right, err := e.source.Lookup(ctx, rightID)
	if err != nil {
		return nil, err
	}
	return DiffRuns(left, right), nil
}

// DiffRuns compares two loaded runs.
func DiffRuns(left, right *core.Run) *RunDiff {
	d := &RunDiff{
		Left:  diffSide(left),
		Right: diffSide(right),
	}

	for _, name := range union(left.Params.Names(), right.Params.Names()) {
		lv, lok := left.Params.Get(name)
		rv, rok := right.Params.Get(name)
		if row, differs := diffRow(name, lv, lok, rv, rok); differs {
			d.Params = append(d.Params, row)
		}
	}

	for _, name := range union(bestMetricNames(left), bestMetricNames(right)) {
		lv, lok := left.Field(name)
		rv, rok := right.Field(name)
		if row, differs := diffRow(name, lv, lok, rv, rok); differs {
			d.Metrics = append(d.Metrics, row)
		}
	}
	return d
}

func diffSide(r *core.Run) DiffSide {
	label := format.NoCheckpoints
	if _, best, ok := r.BestCheckpoint(); ok {
		label = fmt.Sprintf("step %d", best.Step)
	}
	return DiffSide{
		Run:   r,
		ID:    r.ShortID(),
		Label: fmt.Sprintf("%s (%s)", r.ShortID(), label),
	}
}

// diffRow compares one field of both runs. A field holding null counts as
// absent.
func diffRow(name string, lv core.Value, lok bool, rv core.Value, rok bool) (DiffRow, bool) {
	lok = lok && !lv.IsNull()
	rok = rok && !rv.IsNull()
	if lok == rok && (!lok || lv.Equal(rv)) {
		return DiffRow{}, false
	}
	return DiffRow{Name: name, Left: display(lv, lok), Right: display(rv, rok)}, true
}

func display(v core.Value, ok bool) string {
	if !ok {
		return Missing
	}
	return v.String()
}

func bestMetricNames(r *core.Run) []string {
	_, best, ok := r.BestCheckpoint()
	if !ok {
		return nil
	}
	return best.Metrics.Names()
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, names := range [][]string{a, b} {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}
