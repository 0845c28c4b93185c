package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/tally/internal/log"
	"github.com/Mr-Dark-debug/tally/internal/metrics"
)

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSummarizeMarkdown(t *testing.T) {
	path := writeExport(t, `{"laps": [1700000000000, 1700000060000], "empty": []}`)

	var out bytes.Buffer
	code := run([]string{"summarize", "--file", path}, &out, log.Nop())

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "# Tally Summary")
	assert.Contains(t, out.String(), "| laps | 2 |")
	assert.Contains(t, out.String(), "| empty | 0 |")
}

func TestSummarizeJSON(t *testing.T) {
	path := writeExport(t, `{"b": [1700000000000], "a": []}`)

	var out bytes.Buffer
	code := run([]string{"summarize", "--file", path, "--format", "json"}, &out, log.Nop())
	require.Equal(t, 0, code)

	var report struct {
		Counters []struct {
			Name  string `json:"name"`
			Total int    `json:"total"`
		} `json:"counters"`
		TotalEvents int `json:"total_events"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Counters, 2)
	assert.Equal(t, "b", report.Counters[0].Name)
	assert.Equal(t, "a", report.Counters[1].Name)
	assert.Equal(t, 1, report.TotalEvents)
}

func TestSummarizeErrors(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.json")
	assert.Equal(t, 1, run([]string{"summarize", "--file", missing}, &out, log.Nop()))

	path := writeExport(t, `{}`)
	assert.Equal(t, 1, run([]string{"summarize", "--file", path, "--format", "xml"}, &out, log.Nop()))
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(metrics.NewPrometheus().Handler())
	defer srv.Close()

	var out bytes.Buffer
	addr := strings.TrimPrefix(srv.URL, "http://")
	code := run([]string{"status", "--addr", addr}, &out, log.Nop())

	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "status: ok")
}

func TestUsageAndVersion(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, &out, log.Nop()))
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	assert.Equal(t, 0, run([]string{"version"}, &out, log.Nop()))
	assert.Contains(t, out.String(), "Tally v"+Version)

	assert.Equal(t, 1, run([]string{"bogus"}, &out, log.Nop()))
}

func TestSubcommandHelp(t *testing.T) {
	for _, cmd := range []string{"summarize", "status"} {
		t.Run(cmd, func(t *testing.T) {
			var out bytes.Buffer
			code := run([]string{cmd, "--help"}, &out, log.Nop())

			assert.Equal(t, 0, code)
			assert.Contains(t, out.String(), "Usage of "+cmd)
		})
	}
}
