package output

import (
	"time"

	"github.com/leapstack-labs/sake/pkg/core"
)

// ExperimentInfo is the JSON form of a run.
type ExperimentInfo struct {
	ID             string      `json:"id"`
	Created        time.Time   `json:"created"`
	Command        string      `json:"command,omitempty"`
	Params         core.Fields `json:"params"`
	NumCheckpoints int         `json:"n_checkpoints"`
	Best           *BestInfo   `json:"best_checkpoint,omitempty"`
}

// BestInfo is the JSON form of a run's best checkpoint.
type BestInfo struct {
	ID            string      `json:"id,omitempty"`
	Step          int64       `json:"step"`
	PrimaryMetric string      `json:"primary_metric,omitempty"`
	Metrics       core.Fields `json:"metrics"`
}

// DiffOutput is the JSON form of a diff between two runs.
type DiffOutput struct {
	Left    DiffSideInfo `json:"left"`
	Right   DiffSideInfo `json:"right"`
	Params  []DiffEntry  `json:"params"`
	Metrics []DiffEntry  `json:"metrics"`
}

// DiffSideInfo identifies one run of a diff.
type DiffSideInfo struct {
	ID       string `json:"id"`
	BestStep *int64 `json:"best_step,omitempty"`
}

// DiffEntry is one differing field.
type DiffEntry struct {
	Name  string `json:"name"`
	Left  string `json:"left"`
	Right string `json:"right"`
}
