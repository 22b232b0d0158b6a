// Package report writes merged spreadsheet reports from extracted records.
package report

import "fmt"

// Layout selects how records are arranged in the output sheet.
type Layout string

const (
	// LayoutFlat writes one row per record.
	LayoutFlat Layout = "flat"
	// LayoutGrouped writes the records of each unit consecutively, with
	// the unit and category cells merged when a unit has several records.
	LayoutGrouped Layout = "grouped"
	// LayoutJoined writes one row per unit, joining the values of its
	// records with newlines.
	LayoutJoined Layout = "joined"
)

// Column describes one output column following the unit and category columns.
type Column struct {
	// Header is the column header text.
	Header string `toml:"header"`
	// Key is the record field the value is taken from.
	Key string `toml:"key"`
	// Width is the column width in characters. Zero means DefaultWidth.
	Width float64 `toml:"width"`
	// Wrap enables text wrapping.
	Wrap bool `toml:"wrap"`
	// Lower converts text values to lower case (email addresses).
	Lower bool `toml:"lower"`
	// Date formats dates and yyyymmdd integers as YYYY-MM-DD.
	Date bool `toml:"date"`
	// Required rejects records where the value is empty.
	Required bool `toml:"required"`
	// Group is a second-level header spanning consecutive columns with the
	// same group. Only used by LayoutJoined.
	Group string `toml:"group"`
}

// Spec describes one merged report.
type Spec struct {
	// Name is the output file name.
	Name string
	// Sheet is the output sheet name. Empty keeps the default "Sheet1".
	Sheet string
	Layout Layout
	// EntityKey is the record field naming the unit.
	EntityKey string
	// EntityHeader and CategoryHeader head the two leading columns.
	EntityHeader   string
	CategoryHeader string
	// EntityWidth is the width of the two leading columns.
	EntityWidth float64
	Columns     []Column
	// FreezeCols is the number of leading columns kept visible when scrolling.
	FreezeCols int
}

// Defaults for unset Spec and Column fields.
const (
	DefaultWidth       = 20
	DefaultEntityWidth = 40
)

// Validate checks the spec for a known layout and usable columns.
func (s Spec) Validate() error {
	switch s.Layout {
	case LayoutFlat, LayoutGrouped, LayoutJoined:
	default:
		return fmt.Errorf("report %q: unknown layout %q", s.Name, s.Layout)
	}
	if s.EntityKey == "" {
		return fmt.Errorf("report %q: no entity key", s.Name)
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("report %q: no columns", s.Name)
	}
	for i, col := range s.Columns {
		if col.Key == "" {
			return fmt.Errorf("report %q: column %d has no key", s.Name, i+1)
		}
	}
	if s.FreezeCols < 0 || s.FreezeCols > len(s.Columns)+2 {
		return fmt.Errorf("report %q: cannot freeze %d columns", s.Name, s.FreezeCols)
	}
	return nil
}

func (s Spec) entityHeader() string {
	if s.EntityHeader == "" {
		return "Facility"
	}
	return s.EntityHeader
}

func (s Spec) categoryHeader() string {
	if s.CategoryHeader == "" {
		return "Platform"
	}
	return s.CategoryHeader
}

func (s Spec) entityWidth() float64 {
	if s.EntityWidth <= 0 {
		return DefaultEntityWidth
	}
	return s.EntityWidth
}

func (c Column) width() float64 {
	if c.Width <= 0 {
		return DefaultWidth
	}
	return c.Width
}

func (c Column) header() string {
	if c.Header == "" {
		return c.Key
	}
	return c.Header
}

// grouped reports whether the spec needs a two-row header.
func (s Spec) grouped() bool {
	if s.Layout != LayoutJoined {
		return false
	}
	for _, col := range s.Columns {
		if col.Group != "" {
			return true
		}
	}
	return false
}
