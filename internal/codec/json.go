package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec reads and writes snapshots using the API's JSON field names
type JSONCodec struct {
	// Indent is applied per nesting level on export; empty means compact
	Indent string
}

// NewJSONCodec returns a codec that writes two-space indented JSON
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: "  "}
}

func (c *JSONCodec) Format() string { return "json" }

// Parse rejects fields a Snapshot does not declare
func (c *JSONCodec) Parse(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	snap := new(Snapshot)
	if err := dec.Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to parse JSON snapshot: %w", err)
	}
	return snap, nil
}

func (c *JSONCodec) Export(snap *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	if c.Indent != "" {
		enc.SetIndent("", c.Indent)
	}
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode JSON snapshot: %w", err)
	}
	return nil
}
