// Package jsonutil provides JSON encoding helpers for Tally.
//
// Exports and CLI reports share one encoding: two-space indentation,
// no HTML escaping, no trailing newline.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalPretty encodes v with a two-space indent. Unlike json.MarshalIndent
// it leaves '<', '>' and '&' unescaped, so counter names round-trip as typed.
func MarshalPretty(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WritePretty writes the MarshalPretty encoding of v to w.
func WritePretty(w io.Writer, v interface{}) error {
	b, err := MarshalPretty(v)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}
