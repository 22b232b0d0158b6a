package parser

import (
	"fmt"
	"strings"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
	"github.com/xuri/excelize/v2"
)

// TableRange returns the bounding range of the non-empty cells in
// rows[first] through rows[last]. The zero range is returned when all are empty.
func TableRange(rows [][]string, first, last int) models.CellRange {
	var r models.CellRange
	if first < 0 || last >= len(rows) || first > last {
		return r
	}
	for i := first; i <= last; i++ {
		for j, cell := range rows[i] {
			if cell == "" {
				continue
			}
			row, col := i+1, j+1
			if r.R1 == 0 {
				r = models.CellRange{R1: row, C1: col, R2: row, C2: col}
				continue
			}
			r.R2 = row
			r.C1 = min(r.C1, col)
			r.C2 = max(r.C2, col)
		}
	}
	return r
}

// ParseRange parses a reference such as "A1:D10" or "$A$1:$D$10".
func ParseRange(ref string) (models.CellRange, error) {
	from, to, ok := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
	if !ok || strings.Contains(to, ":") {
		return models.CellRange{}, fmt.Errorf("invalid range %q", ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return models.CellRange{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return models.CellRange{}, err
	}
	return models.CellRange{R1: r1, C1: c1, R2: r2, C2: c2}, nil
}
