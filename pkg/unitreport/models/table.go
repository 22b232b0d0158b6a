package models

// Table represents the records extracted from a single sheet.
type Table struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheet is the name of the sheet the records were read from.
	Sheet string `json:"sheet"`
	// HeaderRow is the row number of the header (1-based).
	HeaderRow int `json:"header_row"`
	// Header lists the normalized header keys in column order.
	Header []string `json:"header"`
	// Range is the cell range covering the header and data rows.
	Range CellRange `json:"range"`
	// Records contains the data rows in sheet order.
	Records []Record `json:"records"`
}
