// Package models defines data structures for extracted report records.
package models

import (
	"fmt"
	"strings"
)

// Record represents one data row of a sheet keyed by header text.
type Record struct {
	// Row is the sheet row number (1-based).
	Row int `json:"row"`
	// Source is the workbook file name the row was read from.
	Source string `json:"source,omitempty"`
	// Sheet is the sheet the row was read from.
	Sheet string `json:"sheet,omitempty"`
	// Fields maps header text to cell value.
	// Values are string, int64, float64, bool, time.Time or nil when the cell is absent.
	Fields map[string]interface{} `json:"fields"`
}

// Get returns the value stored under key, or nil.
func (r Record) Get(key string) interface{} {
	return r.Fields[key]
}

// Text returns the value stored under key as trimmed text.
// Absent values yield the empty string.
func (r Record) Text(key string) string {
	switch v := r.Fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether key is part of the record's key set.
func (r Record) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}
