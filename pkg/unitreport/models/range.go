package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CellRange represents cell coordinate bounds.
type CellRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// TopLeft returns the cell name of the upper left corner, e.g. "A1".
func (r CellRange) TopLeft() string {
	cell, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	return cell
}

// BottomRight returns the cell name of the lower right corner.
func (r CellRange) BottomRight() string {
	cell, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return cell
}

// String returns the range in A1 notation, e.g. "A1:D10".
func (r CellRange) String() string {
	if r.R1 == 0 || r.C1 == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%s", r.TopLeft(), r.BottomRight())
}
