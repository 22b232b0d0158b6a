package models

// FileSummary describes one workbook read as part of a batch.
type FileSummary struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheet is the sheet that was read.
	Sheet string `json:"sheet"`
	// Count is the number of records read from the workbook.
	Count int `json:"count"`
}

// Batch represents records gathered from a directory of workbooks.
type Batch struct {
	// Files lists the workbooks in the order they were read.
	Files []FileSummary `json:"files"`
	// Records contains the records of all files, concatenated in file order.
	Records []Record `json:"records"`
}
