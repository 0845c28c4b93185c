package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Mr-Dark-debug/tally/pkg/jsonutil"
)

// Snapshot is a point-in-time copy of every counter and its events.
// It encodes as a JSON object whose keys keep creation order.
type Snapshot struct {
	Names  []string
	Events map[string][]int64
}

// Len returns the number of events held by name in the snapshot.
func (s Snapshot) Len(name string) int {
	return len(s.Events[name])
}

// ExportJSON writes the snapshot to w in the data.json format.
func (s Snapshot) ExportJSON(w io.Writer) error {
	return jsonutil.WritePretty(w, s)
}

// MarshalJSON encodes the snapshot as {"name": [ts, ...], ...}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, name); err != nil {
			return nil, fmt.Errorf("encoding counter name %q: %w", name, err)
		}
		buf.WriteByte(':')

		events := s.Events[name]
		if events == nil {
			events = []int64{}
		}
		val, err := json.Marshal(events)
		if err != nil {
			return nil, fmt.Errorf("encoding events for %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeKey writes name as a JSON string without HTML escaping.
func writeKey(buf *bytes.Buffer, name string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(name); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
	return nil
}

// UnmarshalJSON decodes an exported object, keeping key order.
// A repeated key keeps its first position and its last value.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("snapshot must be a JSON object, got %v", tok)
	}

	s.Names = nil
	s.Events = make(map[string][]int64)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading counter name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var events []int64
		if err := dec.Decode(&events); err != nil {
			return fmt.Errorf("decoding events for %q: %w", name, err)
		}
		if events == nil {
			events = []int64{}
		}
		if _, seen := s.Events[name]; !seen {
			s.Names = append(s.Names, name)
		}
		s.Events[name] = events
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading end of snapshot: %w", err)
	}
	return nil
}
