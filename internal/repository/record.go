package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leapstack-labs/sake/pkg/core"
)

// record mirrors an experiment metadata file. Fields sake does not use
// (host, user, config, python packages, ...) are ignored.
type record struct {
	ID          string            `json:"id"`
	Created     string            `json:"created"`
	Params      core.Fields       `json:"params"`
	Checkpoints []core.Checkpoint `json:"checkpoints"`
	Command     string            `json:"command"`
}

func (r *record) toRun() (*core.Run, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}
	created, err := core.ParseCreated(r.Created)
	if err != nil {
		return nil, err
	}
	params := r.Params
	if params == nil {
		params = core.Fields{}
	}
	for i := range r.Checkpoints {
		if r.Checkpoints[i].Metrics == nil {
			r.Checkpoints[i].Metrics = core.Fields{}
		}
	}
	return &core.Run{
		ID:          r.ID,
		Created:     created,
		Params:      params,
		Checkpoints: r.Checkpoints,
		Command:     r.Command,
	}, nil
}

// DecodeRun parses one experiment record.
func DecodeRun(data []byte) (*core.Run, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.toRun()
}

// ReadRun reads and parses an experiment record file.
func ReadRun(path string) (*core.Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	run, err := DecodeRun(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return run, nil
}
