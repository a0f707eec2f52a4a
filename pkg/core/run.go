package core

import "time"

// Synthetic field names resolved from the run itself rather than from its
// parameters or metrics.
const (
	FieldCreated        = "created"
	FieldNumCheckpoints = "n_checkpoints"
)

// Goal is the optimization direction of a primary metric.
type Goal string

// Goal constants.
const (
	GoalMaximize Goal = "maximize"
	GoalMinimize Goal = "minimize"
)

// Improves reports whether candidate is strictly better than best under g.
// Values without a common ordering never improve.
func (g Goal) Improves(candidate, best Value) bool {
	c, ok := candidate.Compare(best)
	if !ok {
		return false
	}
	switch g {
	case GoalMaximize:
		return c > 0
	case GoalMinimize:
		return c < 0
	default:
		return false
	}
}

// PrimaryMetric is the metric a checkpoint nominates as its optimization target.
type PrimaryMetric struct {
	Name string `json:"name"`
	Goal Goal   `json:"goal"`
}

// Checkpoint is one recorded snapshot of a run's metrics.
type Checkpoint struct {
	ID            string        `json:"id,omitempty"`
	Step          int64         `json:"step"`
	Metrics       Fields        `json:"metrics"`
	PrimaryMetric PrimaryMetric `json:"primary_metric"`
}

// Run is one recorded experiment. Runs are immutable once loaded.
type Run struct {
	ID          string
	Created     time.Time
	Params      Fields
	Checkpoints []Checkpoint
	Command     string
}

// ShortIDLen is the number of id characters shown in listings.
const ShortIDLen = 7

// ShortID returns the stable display prefix of the run id.
func (r *Run) ShortID() string {
	if len(r.ID) <= ShortIDLen {
		return r.ID
	}
	return r.ID[:ShortIDLen]
}

// NumCheckpoints returns the number of recorded checkpoints.
func (r *Run) NumCheckpoints() int {
	return len(r.Checkpoints)
}
