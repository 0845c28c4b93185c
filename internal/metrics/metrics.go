// Package metrics provides instrumentation hooks for Tally.
//
// The registry and exporter report through the Recorder interface. The
// Prometheus implementation keeps its own prometheus.Registry so tests can
// create as many recorders as they like without colliding on the default one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder captures counter activity.
type Recorder interface {
	IncCollectorCreated()
	IncIncrement(counter string)
	IncDecrement(counter string, removed bool)
	SetEvents(counter string, n int)
	IncExport(ok bool)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) IncCollectorCreated() {}
func (Nop) IncIncrement(string) {}
func (Nop) IncDecrement(string, bool) {}
func (Nop) SetEvents(string, int) {}
func (Nop) IncExport(bool) {}

// Prometheus is a Recorder backed by client_golang collectors.
type Prometheus struct {
	reg *prometheus.Registry

	created    prometheus.Counter
	increments *prometheus.CounterVec
	decrements *prometheus.CounterVec
	events     *prometheus.GaugeVec
	exports    *prometheus.CounterVec
}

// NewPrometheus creates a Recorder with its collectors registered on a
// fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		reg: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "collectors_created_total",
			Help:      "Counters created through the name input",
		}),
		increments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "increments_total",
			Help:      "Events appended per counter",
		}, []string{"counter"}),
		decrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "decrements_total",
			Help:      "Decrement requests per counter, by result",
		}, []string{"counter", "result"}),
		events: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tally",
			Name:      "events",
			Help:      "Current number of events held per counter",
		}, []string{"counter"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tally",
			Name:      "exports_total",
			Help:      "Export attempts, by result",
		}, []string{"result"}),
	}
	p.reg.MustRegister(p.created, p.increments, p.decrements, p.events, p.exports)
	return p
}

// Registry exposes the underlying registry for HTTP exposition and tests.
func (p *Prometheus) Registry() *prometheus.Registry { return p.reg }

func (p *Prometheus) IncCollectorCreated() { p.created.Inc() }

func (p *Prometheus) IncIncrement(counter string) {
	p.increments.WithLabelValues(counter).Inc()
}

func (p *Prometheus) IncDecrement(counter string, removed bool) {
	result := "removed"
	if !removed {
		result = "empty"
	}
	p.decrements.WithLabelValues(counter, result).Inc()
}

func (p *Prometheus) SetEvents(counter string, n int) {
	p.events.WithLabelValues(counter).Set(float64(n))
}

func (p *Prometheus) IncExport(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	p.exports.WithLabelValues(result).Inc()
}
