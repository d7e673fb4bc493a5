// Package codec converts feed snapshots to and from portable formats.
// Snapshots back the export and import CLI commands.
package codec

import (
	"fmt"
	"io"
	"time"

	"socialfeed/internal/domain"
)

// Snapshot is a complete copy of the feed's records
type Snapshot struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Users      []*domain.User    `json:"users"`
	Posts      []*domain.Post    `json:"posts"`
	Comments   []*domain.Comment `json:"comments"`
}

// Importer reads a snapshot in one format
type Importer interface {
	Parse(r io.Reader) (*Snapshot, error)
	Format() string
}

// Exporter writes a snapshot in one format
type Exporter interface {
	Export(snap *Snapshot, w io.Writer) error
	Format() string
}

// Codec is both
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
}

// Formats lists the supported format names
func Formats() []string {
	return []string{"json", "yaml"}
}
