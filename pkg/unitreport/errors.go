package unitreport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// NotFoundError indicates a missing file, sheet, header marker, column or lookup entry.
type NotFoundError struct {
	What string // "file", "directory", "sheet", "header row", "header marker", "column", "entity"
	Name string
	File string
}

func (e *NotFoundError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s %q not found in %s", e.What, e.Name, e.File)
	}
	return fmt.Sprintf("%s %q not found", e.What, e.Name)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(what, name, file string) *NotFoundError {
	return &NotFoundError{
		What: what,
		Name: name,
		File: file,
	}
}

// DuplicateHeaderError indicates two header cells that normalize to the same key.
// Their values could not both be kept in a record.
type DuplicateHeaderError struct {
	File   string
	Sheet  string
	Key    string
	First  int // column of the first occurrence (1-based)
	Second int // column of the repeated occurrence (1-based)
}

func (e *DuplicateHeaderError) Error() string {
	first, _ := excelize.ColumnNumberToName(e.First)
	second, _ := excelize.ColumnNumberToName(e.Second)
	return fmt.Sprintf("%s, sheet %q: header %q appears in columns %s and %s",
		e.File, e.Sheet, e.Key, first, second)
}

// NewDuplicateHeaderError creates a new DuplicateHeaderError.
func NewDuplicateHeaderError(file, sheet, key string, first, second int) *DuplicateHeaderError {
	return &DuplicateHeaderError{
		File:   file,
		Sheet:  sheet,
		Key:    key,
		First:  first,
		Second: second,
	}
}

// MalformedRowError represents a data row that could not be turned into a record.
// It carries the raw row contents so the source file or lookup table can be fixed by hand.
type MalformedRowError struct {
	File  string
	Sheet string
	Row   int
	Cells []interface{}
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s, sheet %q, row %d: %v\n  row contents: %s",
		e.File, e.Sheet, e.Row, e.Err, formatCells(e.Cells))
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// NewMalformedRowError creates a new MalformedRowError.
func NewMalformedRowError(file, sheet string, row int, cells []interface{}, err error) *MalformedRowError {
	return &MalformedRowError{
		File:  file,
		Sheet: sheet,
		Row:   row,
		Cells: cells,
		Err:   err,
	}
}

func formatCells(cells []interface{}) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
			parts[i] = "<empty>"
		case string:
			parts[i] = fmt.Sprintf("%q", v)
		case time.Time:
			parts[i] = v.Format("2006-01-02")
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
