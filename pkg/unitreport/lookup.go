package unitreport

import (
	"fmt"
	"sort"
	"strings"
)

// Entry pairs a reporting unit with its category (platform).
type Entry struct {
	Name     string `json:"name" toml:"name"`
	Category string `json:"category" toml:"category"`
}

// Lookup resolves unit names to their canonical spelling and category.
// It is immutable once built.
type Lookup struct {
	entries []Entry
	exact   map[string]int
	folded  map[string]int
}

// NewLookup builds a lookup from entries, keeping their order.
// Names must be unique, also when compared case-insensitively.
func NewLookup(entries []Entry) (*Lookup, error) {
	l := &Lookup{
		entries: make([]Entry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
		folded:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Category = strings.TrimSpace(e.Category)
		if e.Name == "" {
			return nil, fmt.Errorf("lookup entry with empty name (category %q)", e.Category)
		}
		if e.Category == "" {
			return nil, fmt.Errorf("lookup entry %q has no category", e.Name)
		}
		folded := strings.ToLower(e.Name)
		if i, ok := l.folded[folded]; ok {
			return nil, fmt.Errorf("duplicate lookup entry %q (already have %q)", e.Name, l.entries[i].Name)
		}
		l.exact[e.Name] = len(l.entries)
		l.folded[folded] = len(l.entries)
		l.entries = append(l.entries, e)
	}
	return l, nil
}

// Resolve returns the entry for name. An exact match is tried first; on a
// miss the name is matched ignoring character case, and the entry carries
// the canonical spelling.
func (l *Lookup) Resolve(name string) (Entry, error) {
	name = strings.TrimSpace(name)
	if i, ok := l.exact[name]; ok {
		return l.entries[i], nil
	}
	if i, ok := l.folded[strings.ToLower(name)]; ok {
		return l.entries[i], nil
	}
	return Entry{}, NewNotFoundError("entity", name, "")
}

// Entries returns the entries in configured order.
func (l *Lookup) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Categories returns the distinct categories, sorted.
func (l *Lookup) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range l.entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (l *Lookup) Len() int {
	return len(l.entries)
}
