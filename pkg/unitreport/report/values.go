package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
	"github.com/orderportal/unitreport/pkg/unitreport/parser"
)

const isoDate = "2006-01-02"

// FormatDate renders a date cell as YYYY-MM-DD.
// Dates arrive as time.Time or as integers written yyyymmdd; empty cells
// yield the empty string. Any other value is an error.
func FormatDate(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case time.Time:
		return x.Format(isoDate), nil
	case int64:
		return formatYMD(x)
	case int:
		return formatYMD(int64(x))
	case string:
		if strings.TrimSpace(x) == "" {
			return "", nil
		}
	}
	return "", fmt.Errorf("unknown date value %v (%T)", v, v)
}

func formatYMD(n int64) (string, error) {
	year, month, day := n/10000, n/100%100, n%100
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("integer %d is not a yyyymmdd date", n)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// cellValue returns the output value of col for a record.
func cellValue(col Column, rec models.Record) (interface{}, error) {
	v := rec.Get(col.Key)
	if col.Required && parser.IsBlank(v) {
		return nil, fmt.Errorf("column %q is empty", col.Key)
	}
	if col.Date {
		s, err := FormatDate(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Key, err)
		}
		return s, nil
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if col.Lower {
			s = strings.ToLower(s)
		}
		return s, nil
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(isoDate), nil
	}
	return v, nil
}

func rowCells(rec models.Record, spec Spec) []interface{} {
	cells := []interface{}{rec.Get(spec.EntityKey)}
	for _, col := range spec.Columns {
		cells = append(cells, rec.Get(col.Key))
	}
	return cells
}
