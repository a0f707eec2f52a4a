package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var fs Fields
	require.NoError(t, json.Unmarshal([]byte(`{"seed": 3, "lr": 0.01, "arch": "resnet", "aug": null}`), &fs))

	assert.Equal(t, []string{"seed", "lr", "arch", "aug"}, fs.Names())

	v, ok := fs.Get("lr")
	require.True(t, ok)
	assert.Equal(t, KindFloat, v.Kind())

	v, ok = fs.Get("aug")
	require.True(t, ok, "null values are bound")
	assert.True(t, v.IsNull())

	assert.False(t, fs.Has("missing"))
}

func TestFields_UnmarshalJSON_Null(t *testing.T) {
	var fs Fields
	require.NoError(t, json.Unmarshal([]byte(`null`), &fs))
	assert.NotNil(t, fs)
	assert.Empty(t, fs)
}

func TestFields_UnmarshalJSON_DuplicateKey(t *testing.T) {
	var fs Fields
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &fs))
	assert.Equal(t, []string{"a", "b"}, fs.Names())
	v, _ := fs.Get("a")
	assert.Equal(t, "3", v.String())
}

func TestFields_UnmarshalJSON_RejectsArray(t *testing.T) {
	var fs Fields
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &fs))
}

func TestFields_MarshalJSON(t *testing.T) {
	fs := Fields{{Name: "b", Value: Int(1)}, {Name: "a", Value: String("x")}}
	b, err := json.Marshal(fs)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"x"}`, string(b))
}
