// Package registry owns counter state for Tally.
//
// A Registry maps counter names to the ordered timestamps of their
// increments. It is created empty, gains counters as the user names them,
// and is handed explicitly to the view layer; nothing here is global.
// Every mutation notifies the subscribed Listeners so views can refresh
// the affected counter.
package registry

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/Mr-Dark-debug/tally/internal/metrics"
	"github.com/Mr-Dark-debug/tally/pkg/timeutil"
)

// ErrUnknownCounter is returned when an operation names a counter that was
// never created.
var ErrUnknownCounter = errors.New("unknown counter")

func unknown(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCounter, name)
}

// Listener is notified after each registry mutation.
type Listener interface {
	// CollectorCreated is called once per new counter, in creation order.
	CollectorCreated(name string)
	// CollectorUpdated is called after an increment or decrement.
	CollectorUpdated(name string)
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source used to stamp increments.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithRecorder reports registry activity to rec.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// Registry maps counter names to their event histories.
type Registry struct {
	store     Store
	clock     func() time.Time
	recorder  metrics.Recorder
	listeners []Listener
}

// New creates a Registry backed by store.
func New(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		clock:    time.Now,
		recorder: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers l for mutation notifications.
func (r *Registry) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

// NormalizeName replaces every whitespace rune in name with '_'.
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// AddCollector creates a counter named name with whitespace replaced by
// underscores. An empty name or one that already exists is ignored and
// reported as false with a nil error.
func (r *Registry) AddCollector(name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	name = NormalizeName(name)

	created, err := r.store.CreateCounter(name)
	if err != nil {
		return false, fmt.Errorf("creating counter %q: %w", name, err)
	}
	if !created {
		return false, nil
	}

	r.recorder.IncCollectorCreated()
	r.recorder.SetEvents(name, 0)
	for _, l := range r.listeners {
		l.CollectorCreated(name)
	}
	return true, nil
}

// Add appends the current time to name's history.
func (r *Registry) Add(name string) error {
	n, err := r.store.AppendEvent(name, timeutil.ToMilli(r.clock()))
	if err != nil {
		return fmt.Errorf("incrementing %q: %w", name, err)
	}

	r.recorder.IncIncrement(name)
	r.recorder.SetEvents(name, n)
	r.notifyUpdated(name)
	return nil
}

// RemoveLast drops the most recent event from name's history. Removing from
// an empty counter does nothing, but listeners are still notified.
func (r *Registry) RemoveLast(name string) error {
	_, removed, err := r.store.PopEvent(name)
	if err != nil {
		return fmt.Errorf("decrementing %q: %w", name, err)
	}

	r.recorder.IncDecrement(name, removed)
	if removed {
		n, err := r.store.Len(name)
		if err != nil {
			return fmt.Errorf("counting %q: %w", name, err)
		}
		r.recorder.SetEvents(name, n)
	}
	r.notifyUpdated(name)
	return nil
}

func (r *Registry) notifyUpdated(name string) {
	for _, l := range r.listeners {
		l.CollectorUpdated(name)
	}
}

// Len returns the number of events recorded for name.
func (r *Registry) Len(name string) (int, error) {
	return r.store.Len(name)
}

// Events returns a copy of name's history, oldest first.
func (r *Registry) Events(name string) ([]int64, error) {
	return r.store.Events(name)
}

// Names returns counter names in creation order.
func (r *Registry) Names() ([]string, error) {
	return r.store.Counters()
}

// Snapshot copies every counter and its events.
func (r *Registry) Snapshot() (Snapshot, error) {
	names, err := r.store.Counters()
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing counters: %w", err)
	}

	snap := Snapshot{
		Names:  names,
		Events: make(map[string][]int64, len(names)),
	}
	for _, name := range names {
		events, err := r.store.Events(name)
		if err != nil {
			return Snapshot{}, fmt.Errorf("reading events for %q: %w", name, err)
		}
		snap.Events[name] = events
	}
	return snap, nil
}

// ExportJSON writes the registry to w as a JSON object mapping each counter
// name to its timestamps in milliseconds, indented by two spaces.
func (r *Registry) ExportJSON(w io.Writer) error {
	snap, err := r.Snapshot()
	if err != nil {
		return err
	}
	return snap.ExportJSON(w)
}
