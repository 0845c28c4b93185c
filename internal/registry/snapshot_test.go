package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/tally/internal/registry"
)

func TestSnapshotKeepsKeyOrder(t *testing.T) {
	var snap registry.Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"z": [3], "a": [], "m": null}`), &snap))

	assert.Equal(t, []string{"z", "a", "m"}, snap.Names)
	assert.Equal(t, 1, snap.Len("z"))
	assert.Equal(t, []int64{}, snap.Events["m"])

	b, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Equal(t, `{"z":[3],"a":[],"m":[]}`, string(b))
}

func TestSnapshotRepeatedKey(t *testing.T) {
	var snap registry.Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"a": [1], "b": [2], "a": [5, 6]}`), &snap))

	assert.Equal(t, []string{"a", "b"}, snap.Names)
	assert.Equal(t, []int64{5, 6}, snap.Events["a"])
}

func TestSnapshotRejectsNonObject(t *testing.T) {
	var snap registry.Snapshot
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &snap))
	assert.Error(t, json.Unmarshal([]byte(`{"a": ["x"]}`), &snap))
}
