package unitreport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to a new workbook with a single sheet.
// Rows are written starting at A1; nil rows are left empty.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]interface{}) {
	t.Helper()
	f := newWorkbook(t, sheet, rows)
	defer f.Close()
	require.NoError(t, f.SaveAs(path))
}

func newWorkbook(t *testing.T, sheet string, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if sheet != "" && sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	} else {
		sheet = "Sheet1"
	}
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	return f
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

const (
	usersSheet = "A. Users"
	unitKey    = "1. Name of reporting unit* (choose from drop-down menu)"
)

func testLookup(t *testing.T) *Lookup {
	t.Helper()
	l, err := NewLookup([]Entry{
		{Name: "Genomics Unit", Category: "Genomics"},
		{Name: "In Situ Sequencing", Category: "Spatial Biology"},
		{Name: "Clinical Genomics Örebro", Category: "Clinical Genomics"},
	})
	require.NoError(t, err)
	return l
}

func usersSchema() Schema {
	return Schema{
		Sheet:     usersSheet,
		Marker:    "Name of reporting unit",
		EntityKey: unitKey,
		Headers:   []string{"First name", "Last name", "Email"},
		Renames:   map[string]string{"Eukaryotic Single Cell Genomics": "In Situ Sequencing"},
	}
}
