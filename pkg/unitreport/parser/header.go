package parser

import (
	"errors"
	"strings"
)

// ErrMarkerNotFound indicates that no row starts with the header marker.
var ErrMarkerNotFound = errors.New("header marker not found")

// ErrNoHeader indicates a sheet without any non-empty row.
var ErrNoHeader = errors.New("sheet has no header row")

// FindHeader returns the index of the header row.
// Without a marker the first non-empty row is the header. With a marker,
// rows are scanned in order until one whose first cell contains it.
func FindHeader(rows [][]string, marker string) (int, error) {
	for i, row := range rows {
		if marker == "" {
			if !isEmptyRow(row) {
				return i, nil
			}
			continue
		}
		if first := FirstCell(row); first != "" && strings.Contains(first, marker) {
			return i, nil
		}
	}
	if marker == "" {
		return -1, ErrNoHeader
	}
	return -1, ErrMarkerNotFound
}

// LastDataRow returns the index of the last data row following the header.
// Data ends before the first row whose first cell is empty, so trailing
// empty rows are never included. Returns header when there is no data.
// A first cell that reads as empty but holds a formula without a cached
// value still counts as data; isFormula reports that for a row index and
// may be nil.
func LastDataRow(rows [][]string, header int, isFormula func(rowIdx int) (bool, error)) (int, error) {
	last := header
	for i := header + 1; i < len(rows); i++ {
		if FirstCell(rows[i]) == "" {
			if isFormula == nil {
				break
			}
			ok, err := isFormula(i)
			if err != nil {
				return header, err
			}
			if !ok {
				break
			}
		}
		last = i
	}
	return last, nil
}

// NormalizeHeader trims header cells and replaces any cell whose
// whitespace-collapsed text equals that of a canonical header with the
// canonical spelling.
func NormalizeHeader(cells []string, canonical []string) []string {
	index := make(map[string]string, len(canonical))
	for _, c := range canonical {
		index[CollapseSpace(c)] = c
	}
	out := make([]string, len(cells))
	for i, cell := range cells {
		key := strings.TrimSpace(cell)
		if c, ok := index[CollapseSpace(key)]; ok {
			key = c
		}
		out[i] = key
	}
	return out
}

// CollapseSpace trims s and reduces every whitespace run to a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstCell returns the text of the first cell of a row, or "" when absent.
func FirstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
