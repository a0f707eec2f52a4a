package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/sake/internal/cli/config"
	"github.com/leapstack-labs/sake/internal/cli/output"
	"github.com/leapstack-labs/sake/internal/cli/testutil"
	"github.com/leapstack-labs/sake/internal/repository"
	roottestutil "github.com/leapstack-labs/sake/internal/testutil"
	"github.com/leapstack-labs/sake/pkg/filter"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(projectDir string) *config.Config {
	return &config.Config{
		ProjectDir:   projectDir,
		OutputFormat: config.DefaultOutput,
		Python:       config.DefaultPython,
		MaxRows:      config.DefaultMaxRows,
		MaxWidth:     config.DefaultMaxWidth,
		NoPager:      true,
	}
}

func newTestCommandContext(t *testing.T, tr *testutil.TestRenderer) *CommandContext {
	t.Helper()
	cfg := testConfig(testutil.SetupTestProject(t))
	logger := roottestutil.NewTestLogger(t)

	eng, err := createEngine(cfg, logger)
	require.NoError(t, err)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: tr.Renderer,
	}
}

func TestCreateEngine_NoRepository(t *testing.T) {
	cfg := testConfig(t.TempDir())

	_, err := createEngine(cfg, roottestutil.NewTestLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNoRepository))
}

func TestCreateEngine_RepositoryOverride(t *testing.T) {
	cfg := testConfig(testutil.SetupTestProject(t))
	cfg.Repository = "file://.keepsake"

	eng, err := createEngine(cfg, roottestutil.NewTestLogger(t))
	require.NoError(t, err)

	run, err := eng.Lookup(context.Background(), "bbbb")
	require.NoError(t, err)
	assert.Equal(t, "bbbb3333feed00", run.ID)

	cfg.Repository = "s3://bucket/repo"
	_, err = createEngine(cfg, roottestutil.NewTestLogger(t))
	assert.True(t, errors.Is(err, repository.ErrUnsupportedScheme))
}

func TestFormatCreated(t *testing.T) {
	created := time.Date(2021, 1, 5, 10, 7, 0, 0, time.UTC)
	assert.Equal(t, "10:07\n01/05/21", formatCreated(created))
}

func TestRunList_Markdown(t *testing.T) {
	tr := testutil.NewTestRendererAuto()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runList(context.Background(), c, &ListOptions{}))

	out := tr.Output()
	testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
	assert.Contains(t, out, "## Experiments")
	assert.Contains(t, out, "| id | Created | Parameters | Checkpoints |")
	assert.Contains(t, out, "step 2 (best)<br/>accuracy: 0.7")
	assert.Contains(t, out, "0 checkpoints")

	first := strings.Index(out, "aaaa222")
	second := strings.Index(out, "aaaa111")
	third := strings.Index(out, "bbbb333")
	assert.True(t, first < second && second < third, "rows should be sorted by creation time")
}

func TestRunList_Text(t *testing.T) {
	tr := testutil.NewTestRendererText()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runList(context.Background(), c, &ListOptions{Filters: []string{"lr>0.01"}}))

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "Experiments")
	assert.Contains(t, out, "aaaa111")
	assert.Contains(t, out, "bbbb333")
	assert.NotContains(t, out, "aaaa222")
}

func TestRunList_Quiet(t *testing.T) {
	tr := testutil.NewTestRendererAuto()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runList(context.Background(), c, &ListOptions{Quiet: true, Sort: "accuracy"}))
	assert.Equal(t, "bbbb3333feed00\naaaa1111c0ffee\naaaa2222deadbe\n", tr.Output())
}

func TestRunList_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runList(context.Background(), c, &ListOptions{Select: []string{"lr", "accuracy"}}))
	testutil.AssertOutputMode(t, tr, output.ModeJSON)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "aaaa2222deadbe", got[0]["id"])
	assert.Equal(t, map[string]any{"lr": 0.001}, got[0]["params"])
	best, ok := got[0]["best_checkpoint"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), best["step"])
	assert.Equal(t, "accuracy", best["primary_metric"])
	assert.Equal(t, map[string]any{"accuracy": 0.9}, best["metrics"])

	assert.Nil(t, got[2]["best_checkpoint"], "run without checkpoints has no best checkpoint")
	assert.Equal(t, float64(0), got[2]["n_checkpoints"])
}

func TestRunList_InvalidFilter(t *testing.T) {
	tr := testutil.NewTestRendererAuto()
	c := newTestCommandContext(t, tr)

	err := runList(context.Background(), c, &ListOptions{Filters: []string{"lr~0.1"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, filter.ErrSyntax))
	assert.Contains(t, err.Error(), "invalid filter format 'lr~0.1'")
	assert.Empty(t, tr.Output())
}

func TestRunShow(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runShow(context.Background(), c, "aaaa1", &ShowOptions{}))

	out := tr.Output()
	testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
	assert.Contains(t, out, "## Experiment aaaa111")
	assert.Contains(t, out, "python train.py --lr 0.1 --seed 1")
	assert.Contains(t, out, "lr: 0.1\noptimizer: adam\nseed: 1")
	assert.Contains(t, out, "step 2 (best)\naccuracy: 0.7\nloss: 0.8")
}

func TestRunShow_Select(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runShow(context.Background(), c, "aaaa1", &ShowOptions{Select: []string{"seed"}}))

	out := tr.Output()
	assert.Contains(t, out, "```\nseed: 1\n```")
	assert.NotContains(t, out, "lr: 0.1")
}

func TestRunShow_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runShow(context.Background(), c, "bbbb", &ShowOptions{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
	assert.Equal(t, "bbbb3333feed00", got["id"])
	assert.Equal(t, "train.py --lr 0.05 --seed 3 --optimizer sgd", got["command"])
}

func TestRunShow_Errors(t *testing.T) {
	tr := testutil.NewTestRendererAuto()
	c := newTestCommandContext(t, tr)

	err := runShow(context.Background(), c, "aaaa", &ShowOptions{})
	var ambiguous *repository.AmbiguousIDError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, 2, ambiguous.Count)

	err = runShow(context.Background(), c, "ffff", &ShowOptions{})
	assert.True(t, errors.Is(err, repository.ErrRunNotFound))
}

func TestRunDiff(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runDiff(context.Background(), c, "aaaa1", "aaaa2"))

	out := tr.Output()
	testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
	assert.Contains(t, out, "## Params")
	assert.Contains(t, out, "| Parameter | aaaa111 | aaaa222 |")
	assert.Contains(t, out, "| lr | 0.1 | 0.001 |")
	assert.NotContains(t, out, "| optimizer |")
	assert.Contains(t, out, "## Metrics")
	assert.Contains(t, out, "| Metric | aaaa111 (step 2) | aaaa222 (step 5) |")
	assert.Contains(t, out, "| accuracy | 0.7 | 0.9 |")
}

func TestRunDiff_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	c := newTestCommandContext(t, tr)

	require.NoError(t, runDiff(context.Background(), c, "aaaa1", "bbbb"))

	var got output.DiffOutput
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
	assert.Equal(t, "aaaa1111c0ffee", got.Left.ID)
	require.NotNil(t, got.Left.BestStep)
	assert.Equal(t, int64(2), *got.Left.BestStep)
	assert.Nil(t, got.Right.BestStep)
	assert.Contains(t, got.Params, output.DiffEntry{Name: "optimizer", Left: "adam", Right: "sgd"})
	assert.Contains(t, got.Metrics, output.DiffEntry{Name: "accuracy", Left: "0.7", Right: "-"})
}

func TestRunReproduce(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		answer     bool
		wantAsked  bool
		wantRun    bool
		wantOutput string
	}{
		{name: "confirmed", answer: true, wantAsked: true, wantRun: true},
		{name: "declined", answer: false, wantAsked: true, wantRun: false, wantOutput: "Aborting"},
		{name: "yes flag skips prompt", args: []string{"--yes"}, wantRun: true},
		{name: "short yes flag skips prompt", args: []string{"-y"}, wantRun: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRendererText()
			c := newTestCommandContext(t, tr)

			var asked bool
			var executed string
			opts := &ReproduceOptions{
				Confirm: func(_ *cobra.Command, prompt string) (bool, error) {
					asked = true
					assert.Equal(t, confirmPrompt, prompt)
					return tt.answer, nil
				},
				Execute: func(_ *cobra.Command, command string) error {
					executed = command
					return nil
				},
			}
			cmd := newReproduceCommand(opts)
			cmd.SetContext(context.Background())
			require.NoError(t, cmd.ParseFlags(tt.args))

			require.NoError(t, runReproduce(cmd, c, "aaaa2", opts))

			out := tr.Output()
			assert.Contains(t, out, "Command for experiment aaaa222 is:")
			assert.Contains(t, out, "python train.py --lr 0.001 --seed 2")
			assert.Equal(t, tt.wantAsked, asked)
			if tt.wantRun {
				assert.Equal(t, "python train.py --lr 0.001 --seed 2", executed)
			} else {
				assert.Empty(t, executed)
			}
			if tt.wantOutput != "" {
				assert.Contains(t, out, tt.wantOutput)
			}
		})
	}
}

func TestNewReproduceCommand_Defaults(t *testing.T) {
	opts := &ReproduceOptions{}
	cmd := newReproduceCommand(opts)

	assert.NotNil(t, opts.Confirm)
	assert.NotNil(t, opts.Execute)
	assert.False(t, opts.Yes)

	require.NoError(t, cmd.Flags().Set("yes", "true"))
	assert.True(t, opts.Yes)
}

func TestRunReproduce_CommandFails(t *testing.T) {
	tr := testutil.NewTestRendererText()
	c := newTestCommandContext(t, tr)
	c.Cfg.Python = "false"

	opts := &ReproduceOptions{}
	cmd := newReproduceCommand(opts)
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("yes", "true"))

	err := runReproduce(cmd, c, "bbbb", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestIsYes(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{" yes ", true},
		{"", false},
		{"n", false},
		{"nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, isYes(tt.answer))
		})
	}
}
