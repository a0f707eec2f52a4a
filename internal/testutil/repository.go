package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Experiment is a raw experiment record as written by keepsake.
type Experiment struct {
	ID          string                 `json:"id"`
	Created     string                 `json:"created"`
	Params      map[string]any         `json:"params"`
	Checkpoints []ExperimentCheckpoint `json:"checkpoints"`
	Command     string                 `json:"command"`
}

// ExperimentCheckpoint is a raw checkpoint record.
type ExperimentCheckpoint struct {
	ID            string         `json:"id,omitempty"`
	Step          int            `json:"step"`
	Metrics       map[string]any `json:"metrics"`
	PrimaryMetric map[string]any `json:"primary_metric"`
}

// Checkpoint builds a checkpoint record nominating primary with goal.
func Checkpoint(step int, primary, goal string, metrics map[string]any) ExperimentCheckpoint {
	return ExperimentCheckpoint{
		Step:          step,
		Metrics:       metrics,
		PrimaryMetric: map[string]any{"name": primary, "goal": goal},
	}
}

// SetupRepository creates a project directory holding keepsake.yml and a
// repository with the given experiment records. It returns the project dir.
func SetupRepository(t testing.TB, experiments ...Experiment) string {
	t.Helper()

	projectDir := t.TempDir()
	expDir := filepath.Join(projectDir, ".keepsake", "metadata", "experiments")
	if err := os.MkdirAll(expDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", expDir, err)
	}

	keepsake := "repository: \"file://.keepsake\"\n"
	if err := os.WriteFile(filepath.Join(projectDir, "keepsake.yml"), []byte(keepsake), 0644); err != nil {
		t.Fatalf("failed to create keepsake.yml: %v", err)
	}

	for _, exp := range experiments {
		WriteExperiment(t, filepath.Join(projectDir, ".keepsake"), exp)
	}
	return projectDir
}

// WriteExperiment writes one record under repoDir/metadata/experiments.
func WriteExperiment(t testing.TB, repoDir string, exp Experiment) {
	t.Helper()

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode experiment %s: %v", exp.ID, err)
	}
	path := filepath.Join(repoDir, "metadata", "experiments", exp.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// SampleExperiments returns three runs: aaaa1111 and aaaa2222 share a prefix,
// bbbb3333 has no checkpoints.
func SampleExperiments() []Experiment {
	return []Experiment{
		{
			ID:      "aaaa1111c0ffee",
			Created: "2021-01-05T10:00:00.123456Z",
			Params:  map[string]any{"lr": 0.1, "seed": 1, "optimizer": "adam"},
			Command: "train.py --lr 0.1 --seed 1",
			Checkpoints: []ExperimentCheckpoint{
				Checkpoint(1, "accuracy", "maximize", map[string]any{"accuracy": 0.5, "loss": 1.2}),
				Checkpoint(2, "accuracy", "maximize", map[string]any{"accuracy": 0.7, "loss": 0.8}),
				Checkpoint(3, "accuracy", "maximize", map[string]any{"accuracy": 0.6, "loss": 0.9}),
			},
		},
		{
			ID:      "aaaa2222deadbe",
			Created: "2021-01-04T09:00:00.5Z",
			Params:  map[string]any{"lr": 0.001, "seed": 2, "optimizer": "adam"},
			Command: "train.py --lr 0.001 --seed 2",
			Checkpoints: []ExperimentCheckpoint{
				Checkpoint(5, "accuracy", "maximize", map[string]any{"accuracy": 0.9, "loss": 0.3}),
			},
		},
		{
			ID:      "bbbb3333feed00",
			Created: "2021-01-06T08:30:00.0Z",
			Params:  map[string]any{"lr": 0.05, "seed": 3, "optimizer": "sgd"},
			Command: "train.py --lr 0.05 --seed 3 --optimizer sgd",
		},
	}
}
