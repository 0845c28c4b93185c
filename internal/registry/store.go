package registry

import (
	"sync"
)

// Store defines the interface for counter event persistence.
// Implementations must keep counters in creation order and events
// in insertion order.
type Store interface {
	// CreateCounter adds an empty counter. It reports false if the name exists.
	CreateCounter(name string) (bool, error)
	// AppendEvent appends ts to the counter and returns its new length.
	AppendEvent(name string, ts int64) (int, error)
	// PopEvent removes the most recent event. ok is false when the counter
	// was already empty, which is not an error.
	PopEvent(name string) (ts int64, ok bool, err error)
	// Len returns the number of events held by the counter.
	Len(name string) (int, error)
	// Events returns a copy of the counter's events, oldest first.
	Events(name string) ([]int64, error)
	// Counters returns all counter names in creation order.
	Counters() ([]string, error)
	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is a Store kept entirely in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	order  []string
	events map[string][]int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]int64)}
}

func (s *MemoryStore) CreateCounter(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[name]; ok {
		return false, nil
	}
	s.events[name] = []int64{}
	s.order = append(s.order, name)
	return true, nil
}

func (s *MemoryStore) AppendEvent(name string, ts int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.events[name]
	if !ok {
		return 0, unknown(name)
	}
	events = append(events, ts)
	s.events[name] = events
	return len(events), nil
}

func (s *MemoryStore) PopEvent(name string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.events[name]
	if !ok {
		return 0, false, unknown(name)
	}
	if len(events) == 0 {
		return 0, false, nil
	}
	last := events[len(events)-1]
	s.events[name] = events[:len(events)-1]
	return last, true, nil
}

func (s *MemoryStore) Len(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.events[name]
	if !ok {
		return 0, unknown(name)
	}
	return len(events), nil
}

func (s *MemoryStore) Events(name string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.events[name]
	if !ok {
		return nil, unknown(name)
	}
	out := make([]int64, len(events))
	copy(out, events)
	return out, nil
}

func (s *MemoryStore) Counters() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
