package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, ":memory:", c.SQLitePath)
	assert.Equal(t, ".", c.Export.Dir)
	assert.Equal(t, "data.json", c.Export.FileName)
	assert.Equal(t, "info", c.Log.Level)
	assert.Empty(t, c.MetricsAddr)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store: sqlite
export:
  dir: /tmp/out
log:
  level: debug
  format: json
metrics_addr: 127.0.0.1:9878
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, c.Store)
	assert.Equal(t, "/tmp/out", c.Export.Dir)
	assert.Equal(t, "data.json", c.Export.FileName)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "127.0.0.1:9878", c.MetricsAddr)
	assert.NoError(t, c.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"store":       func(c *Config) { c.Store = "redis" },
		"sqlite path": func(c *Config) { c.SQLitePath = "tally.db" },
		"file name":   func(c *Config) { c.Export.FileName = "sub/data.json" },
		"format":      func(c *Config) { c.Log.Format = "xml" },
		"level":       func(c *Config) { c.Log.Level = "trace" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadRejectsSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	require.NoError(t, os.WriteFile(path, []byte("store: sqlite\nsqlite_path: "+dbPath+"\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dbPath, c.SQLitePath)

	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite_path")
}
