package export

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/tally/internal/registry"
)

type failingSource struct{}

func (failingSource) ExportJSON(io.Writer) error { return errors.New("boom") }

type exportCounter struct {
	ok     int
	failed int
}

func (c *exportCounter) IncCollectorCreated() {}
func (c *exportCounter) IncIncrement(string) {}
func (c *exportCounter) IncDecrement(string, bool) {}
func (c *exportCounter) SetEvents(string, int) {}
func (c *exportCounter) IncExport(ok bool) {
	if ok {
		c.ok++
	} else {
		c.failed++
	}
}

func TestExportWritesDataJSON(t *testing.T) {
	reg := registry.New(registry.NewMemoryStore(), registry.WithClock(func() time.Time {
		return time.UnixMilli(1000)
	}))
	_, err := reg.AddCollector("A")
	require.NoError(t, err)
	require.NoError(t, reg.Add("A"))
	require.NoError(t, reg.Add("A"))

	dir := filepath.Join(t.TempDir(), "nested", "out")
	rec := &exportCounter{}
	path, err := New(reg, dir, "", rec).Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.json"), path)
	assert.Equal(t, 1, rec.ok)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"A\": [\n    1000,\n    1000\n  ]\n}", string(b))

	var parsed map[string][]int64
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Len(t, parsed["A"], 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestExportOverwrites(t *testing.T) {
	reg := registry.New(registry.NewMemoryStore())
	dir := t.TempDir()
	exp := New(reg, dir, "counts.json", nil)

	_, err := exp.Export()
	require.NoError(t, err)

	_, err = reg.AddCollector("B")
	require.NoError(t, err)
	path, err := exp.Export()
	require.NoError(t, err)

	snap, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, snap.Names)
}

func TestExportFromSnapshot(t *testing.T) {
	reg := registry.New(registry.NewMemoryStore(), registry.WithClock(func() time.Time {
		return time.UnixMilli(2000)
	}))
	_, err := reg.AddCollector("A")
	require.NoError(t, err)
	require.NoError(t, reg.Add("A"))

	snap, err := reg.Snapshot()
	require.NoError(t, err)
	require.NoError(t, reg.Add("A"))

	rec := &exportCounter{}
	path, err := New(reg, t.TempDir(), "", rec).ExportFrom(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ok)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"A\": [\n    2000\n  ]\n}", string(b))
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	rec := &exportCounter{}
	exp := New(failingSource{}, dir, "", rec)

	_, err := exp.Export()
	require.Error(t, err)
	assert.Equal(t, 1, rec.failed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
