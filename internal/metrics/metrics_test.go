package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	p := NewPrometheus()

	p.IncCollectorCreated()
	p.IncIncrement("A")
	p.IncIncrement("A")
	p.IncDecrement("A", true)
	p.IncDecrement("A", false)
	p.SetEvents("A", 1)
	p.IncExport(true)
	p.IncExport(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.created))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.increments.WithLabelValues("A")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.decrements.WithLabelValues("A", "removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.decrements.WithLabelValues("A", "empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.events.WithLabelValues("A")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.exports.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.exports.WithLabelValues("error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	p := NewPrometheus()
	p.IncIncrement("laps")

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `tally_increments_total{counter="laps"} 1`))

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServeDisabled(t *testing.T) {
	require.NoError(t, NewPrometheus().Serve(context.Background(), "", nil))
}
