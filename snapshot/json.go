package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON renders the snapshot in the compact wire format of spec.md §6.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type wire Snapshot // avoid recursing into this method
	return json.Marshal(wire(s))
}

// Pretty renders the snapshot with two-space indentation, per spec.md §4.E.
func (s Snapshot) Pretty() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("snapshot: pretty-print: %w", err)
	}
	return string(data), nil
}

// Parse decodes a Snapshot from its wire JSON form. Parsing a snapshot's
// own serialization must yield a value equal to the original, field for
// field (spec.md §8).
func Parse(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: parse: %w", err)
	}
	return s, nil
}

// WriteJSON writes the compact wire form to w.
func (s Snapshot) WriteJSON(w io.Writer) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WritePretty writes the two-space-indented form to w.
func (s Snapshot) WritePretty(w io.Writer) error {
	pretty, err := s.Pretty()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, pretty)
	return err
}
