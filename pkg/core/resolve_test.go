package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun() *Run {
	return &Run{
		ID:      "aaaa1111bbbb",
		Created: time.Date(2021, 3, 4, 10, 30, 0, 0, time.UTC),
		Params: Fields{
			{Name: "lr", Value: Float(0.01)},
			{Name: "accuracy", Value: String("param wins")},
		},
		Checkpoints: []Checkpoint{
			cp(1, maxAcc, metric("accuracy", 0.4), metric("early_only", 1)),
			cp(2, maxAcc, metric("accuracy", 0.9), metric("loss", 0.2)),
			cp(3, maxAcc, metric("accuracy", 0.6), metric("loss", 0.1)),
		},
	}
}

func TestRun_Field(t *testing.T) {
	run := testRun()

	tests := []struct {
		name   string
		field  string
		want   Value
		wantOK bool
	}{
		{name: "param", field: "lr", want: Float(0.01), wantOK: true},
		{name: "param shadows metric", field: "accuracy", want: String("param wins"), wantOK: true},
		{name: "best checkpoint metric", field: "loss", want: Float(0.2), wantOK: true},
		{name: "metric from other checkpoint", field: "early_only", want: Float(1), wantOK: true},
		{name: "missing", field: "momentum", wantOK: false},
		{name: "checkpoint count", field: FieldNumCheckpoints, want: Int(3), wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := run.Field(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun_Field_Created(t *testing.T) {
	run := testRun()
	// A parameter named "created" must not shadow the timestamp.
	run.Params = append(run.Params, Field{Name: FieldCreated, Value: String("shadow")})

	v, ok := run.Field(FieldCreated)
	require.True(t, ok)
	got, isTime := v.TimeValue()
	require.True(t, isTime)
	assert.True(t, got.Equal(run.Created))
}

func TestRun_Field_NoCheckpoints(t *testing.T) {
	run := &Run{ID: "x", Params: Fields{{Name: "seed", Value: Int(1)}}}

	_, ok := run.Field("accuracy")
	assert.False(t, ok)

	v, ok := run.Field(FieldNumCheckpoints)
	require.True(t, ok)
	assert.Equal(t, "0", v.String())

	assert.Equal(t, "0.0", run.FieldOr("accuracy", Float(0)).String())
}

func TestRun_ShortID(t *testing.T) {
	assert.Equal(t, "aaaa111", (&Run{ID: "aaaa1111bbbb"}).ShortID())
	assert.Equal(t, "abc", (&Run{ID: "abc"}).ShortID())
}
