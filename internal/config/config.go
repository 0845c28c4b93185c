// Package config loads Tally settings from an optional YAML file.
// Command-line flags are applied on top by the cmd packages.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Mr-Dark-debug/tally/internal/export"
	"github.com/Mr-Dark-debug/tally/internal/log"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	// SQLiteMemory is the only accepted sqlite_path. A file path would
	// carry counters over to the next session.
	SQLiteMemory = ":memory:"
)

type Export struct {
	Dir      string `yaml:"dir"`       // directory data.json is written to
	FileName string `yaml:"file_name"` // default: data.json
}

type Log struct {
	File   string `yaml:"file"`   // path or "stderr"
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

type Config struct {
	// Store selects the counter backend: memory or sqlite. Both live only
	// as long as the process.
	Store string `yaml:"store"`

	// SQLitePath is only used with the sqlite store and must be ":memory:".
	SQLitePath string `yaml:"sqlite_path"`

	Export      Export `yaml:"export"`
	Log         Log    `yaml:"log"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the metrics server
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.SQLitePath == "" {
		c.SQLitePath = SQLiteMemory
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.FileName == "" {
		c.Export.FileName = export.DefaultFileName
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(os.TempDir(), "tally.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = log.InfoLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = log.TextFormat
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store)
	}
	if c.SQLitePath != SQLiteMemory {
		return fmt.Errorf("sqlite_path must be %q, got %q: counters do not outlive the process", SQLiteMemory, c.SQLitePath)
	}
	if c.Export.FileName != filepath.Base(c.Export.FileName) {
		return errors.New("export.file_name must not contain a directory")
	}
	switch c.Log.Format {
	case log.TextFormat, log.JSONFormat:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", log.TextFormat, log.JSONFormat, c.Log.Format)
	}
	switch c.Log.Level {
	case log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel:
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}
