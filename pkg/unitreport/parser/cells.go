// Package parser provides worksheet reading and cell cleanup utilities.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Formula describes a formula cell found while resolving a row.
type Formula struct {
	// Col is the column index (1-based).
	Col int
	// Text is the formula expression with its leading '='.
	Text string
}

// Sheet reads typed cell values from one worksheet.
type Sheet struct {
	f        *excelize.File
	name     string
	date1904 bool
	dateFmt  map[int]bool
}

// NewSheet returns a reader for the named worksheet of f.
func NewSheet(f *excelize.File, name string) *Sheet {
	s := &Sheet{f: f, name: name, dateFmt: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}
	return s
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Rows returns the raw text of every row in the sheet.
// Numbers are unformatted so that dates can be recovered from their serial value.
func (s *Sheet) Rows() ([][]string, error) {
	return s.f.GetRows(s.name, excelize.Options{RawCellValue: true})
}

// FirstCellIsFormula reports whether column A of the row at rowIdx
// (0-based) holds a formula.
func (s *Sheet) FirstCellIsFormula(rowIdx int) (bool, error) {
	axis, err := excelize.CoordinatesToCellName(1, rowIdx+1)
	if err != nil {
		return false, err
	}
	expr, err := s.f.GetCellFormula(s.name, axis)
	if err != nil {
		return false, err
	}
	return expr != "", nil
}

// ResolveRow converts the raw text of a row into typed values.
// width is the number of columns to resolve; cells beyond the raw text are
// still inspected because a formula without a cached value reads as empty.
// Formula cells are returned separately with their value left as the cached literal.
func (s *Sheet) ResolveRow(rowNum int, raw []string, width int) ([]interface{}, []Formula, error) {
	if width < len(raw) {
		width = len(raw)
	}
	values := make([]interface{}, width)
	var formulas []Formula
	for colIdx := 0; colIdx < width; colIdx++ {
		text := ""
		if colIdx < len(raw) {
			text = raw[colIdx]
		}
		axis, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
		if err != nil {
			return nil, nil, err
		}

		expr, err := s.f.GetCellFormula(s.name, axis)
		if err != nil {
			return nil, nil, err
		}
		if expr != "" {
			if !strings.HasPrefix(expr, "=") {
				expr = "=" + expr
			}
			formulas = append(formulas, Formula{Col: colIdx + 1, Text: expr})
		} else if IsFormulaText(text) {
			formulas = append(formulas, Formula{Col: colIdx + 1, Text: text})
		}

		if text == "" {
			continue
		}
		value, err := s.typedValue(axis, text)
		if err != nil {
			return nil, nil, err
		}
		values[colIdx] = value
	}
	return values, formulas, nil
}

// typedValue converts raw cell text according to the stored cell type.
func (s *Sheet) typedValue(axis, raw string) (interface{}, error) {
	cellType, err := s.f.GetCellType(s.name, axis)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return raw, nil
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return t, nil
		}
		return raw, nil
	}

	value := parseValue(raw)
	var serial float64
	switch v := value.(type) {
	case int64:
		serial = float64(v)
	case float64:
		serial = v
	default:
		return value, nil
	}
	isDate, err := s.isDateCell(axis)
	if err != nil {
		return nil, err
	}
	if !isDate {
		return value, nil
	}
	t, err := excelize.ExcelDateToTime(serial, s.date1904)
	if err != nil {
		return value, nil
	}
	return t, nil
}

// isDateCell reports whether the number format of the cell displays a date.
func (s *Sheet) isDateCell(axis string) (bool, error) {
	styleID, err := s.f.GetCellStyle(s.name, axis)
	if err != nil {
		return false, err
	}
	if isDate, ok := s.dateFmt[styleID]; ok {
		return isDate, nil
	}
	style, err := s.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := IsDateFormat(style.NumFmt, style.CustomNumFmt)
	s.dateFmt[styleID] = isDate
	return isDate, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsBlank reports whether a cell value counts as absent: nil, or text
// that is empty after trimming.
func IsBlank(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}

// IsFormulaText reports whether literal cell text is a formula expression.
func IsFormulaText(s string) bool {
	return strings.HasPrefix(s, "=")
}
