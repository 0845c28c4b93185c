// Package export writes registry snapshots to disk as data.json and reads
// them back for reporting.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Mr-Dark-debug/tally/internal/metrics"
	"github.com/Mr-Dark-debug/tally/internal/registry"
)

// DefaultFileName is the name of the exported file.
const DefaultFileName = "data.json"

// Source is anything that can serialize counters as JSON.
type Source interface {
	ExportJSON(w io.Writer) error
}

// Exporter writes a Source into a fixed directory.
type Exporter struct {
	src      Source
	dir      string
	fileName string
	recorder metrics.Recorder
}

// New returns an Exporter writing src into dir/fileName. An empty fileName
// falls back to DefaultFileName.
func New(src Source, dir, fileName string, rec metrics.Recorder) *Exporter {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Exporter{src: src, dir: dir, fileName: fileName, recorder: rec}
}

// Path returns the file the exporter writes to.
func (e *Exporter) Path() string {
	return filepath.Join(e.dir, e.fileName)
}

// Export writes the source to Path. The file is written to a temporary
// sibling first and renamed into place, so readers never see a partial
// export.
func (e *Exporter) Export() (string, error) {
	return e.ExportFrom(e.src)
}

// ExportFrom writes src to Path instead of the exporter's own source.
// Passing a registry.Snapshot pins the file to the state at the time the
// snapshot was taken.
func (e *Exporter) ExportFrom(src Source) (string, error) {
	path, err := e.write(src)
	e.recorder.IncExport(err == nil)
	return path, err
}

func (e *Exporter) write(src Source) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", e.dir, err)
	}

	tmp, err := os.CreateTemp(e.dir, "."+e.fileName+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp export file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after a successful rename

	if err := src.ExportJSON(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encoding export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp export file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("setting export permissions: %w", err)
	}

	path := e.Path()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving export into place: %w", err)
	}
	return path, nil
}

// Read decodes an exported file, keeping counter order.
func Read(path string) (registry.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("reading export %s: %w", path, err)
	}

	var snap registry.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return registry.Snapshot{}, fmt.Errorf("parsing export %s: %w", path, err)
	}
	return snap, nil
}
