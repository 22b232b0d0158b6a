// Package unitreport extracts per-unit records from reporting portal spreadsheet exports.
package unitreport

import (
	"fmt"
	"log/slog"
)

// Schema describes where the records of one export live and how its
// headers are spelled for a given report year.
type Schema struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string
	// Marker identifies the header row by substring containment in its first cell.
	// Empty means the first non-empty row is the header.
	Marker string
	// EntityKey is the canonical header of the column naming the reporting unit.
	EntityKey string
	// Headers lists canonical header spellings. Headers that differ from one
	// of these only in whitespace are renamed to it.
	Headers []string
	// Renames maps superseded entity names to their current names.
	Renames map[string]string
}

// Validate checks that rename rules cannot chain, so that applying them is idempotent.
func (s Schema) Validate() error {
	for from, to := range s.Renames {
		if from == to {
			return fmt.Errorf("rename rule %q maps to itself", from)
		}
		if _, ok := s.Renames[to]; ok {
			return fmt.Errorf("rename rules chain: %q -> %q -> %q", from, to, s.Renames[to])
		}
	}
	return nil
}

// Rename returns the current name for a superseded entity name.
// Names without a rule are returned unchanged.
func (s Schema) Rename(name string) string {
	if to, ok := s.Renames[name]; ok {
		return to
	}
	return name
}

func (s Schema) canonicalHeaders() []string {
	if s.EntityKey == "" {
		return s.Headers
	}
	return append([]string{s.EntityKey}, s.Headers...)
}

// Options configures extraction behavior.
type Options struct {
	// Schema locates the header and names the entity column.
	Schema Schema
	// Lookup resolves the entity column of every record. Nil disables resolution.
	Lookup *Lookup
	// Logger receives progress messages. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns options reading the first sheet with the first row as header.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
