package unitreport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
	"github.com/orderportal/unitreport/pkg/unitreport/parser"
	"github.com/xuri/excelize/v2"
)

// Extract reads all records of a sheet from the workbook at path.
func Extract(path string, opts Options) (*models.Table, error) {
	c, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	table := &models.Table{
		BookName:  c.book,
		Sheet:     c.sheet.Name(),
		HeaderRow: c.headerIdx + 1,
		Header:    c.Header(),
		Range:     c.Range(),
		Records:   make([]models.Record, 0, c.lastIdx-c.headerIdx),
	}
	for c.Next() {
		table.Records = append(table.Records, c.Record())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// Cursor yields the records of a sheet one at a time.
// Open reads the workbook into memory and releases the file handle before
// returning, so the file may change or disappear while iterating. Records
// are still built lazily by Next; Close frees the in-memory workbook.
type Cursor struct {
	f     *excelize.File
	sheet *parser.Sheet
	book  string
	opts  Options

	rows      [][]string
	headerIdx int
	lastIdx   int
	header    []string
	entityCol int

	pos    int
	record models.Record
	err    error
}

// Open reads the workbook at path and locates the header row of the
// sheet described by opts.Schema. The sheet's rows are buffered; no file
// handle is held once Open returns.
func Open(path string, opts Options) (*Cursor, error) {
	if err := opts.Schema.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError("file", path, "")
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	c, err := newCursor(f, filepath.Base(path), opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func newCursor(f *excelize.File, book string, opts Options) (*Cursor, error) {
	schema := opts.Schema
	sheetName, ok := findSheet(f, schema.Sheet)
	if !ok {
		return nil, NewNotFoundError("sheet", schema.Sheet, book)
	}
	sheet := parser.NewSheet(f, sheetName)

	rows, err := sheet.Rows()
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheetName, book, err)
	}

	headerIdx, err := parser.FindHeader(rows, schema.Marker)
	switch {
	case errors.Is(err, parser.ErrMarkerNotFound):
		return nil, NewNotFoundError("header marker", schema.Marker, book)
	case errors.Is(err, parser.ErrNoHeader):
		return nil, NewNotFoundError("header row", sheetName, book)
	case err != nil:
		return nil, err
	}

	lastIdx, err := parser.LastDataRow(rows, headerIdx, sheet.FirstCellIsFormula)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheetName, book, err)
	}

	header := parser.NormalizeHeader(rows[headerIdx], schema.canonicalHeaders())
	seen := make(map[string]int, len(header))
	for i, key := range header {
		if key == "" {
			continue
		}
		if j, ok := seen[key]; ok {
			return nil, NewDuplicateHeaderError(book, sheetName, key, j+1, i+1)
		}
		seen[key] = i
	}

	entityCol := -1
	if schema.EntityKey != "" {
		col, ok := seen[schema.EntityKey]
		if !ok {
			return nil, NewNotFoundError("column", schema.EntityKey, book)
		}
		entityCol = col
	}

	return &Cursor{
		f:         f,
		sheet:     sheet,
		book:      book,
		opts:      opts,
		rows:      rows,
		headerIdx: headerIdx,
		lastIdx:   lastIdx,
		header:    header,
		entityCol: entityCol,
		pos:       headerIdx + 1,
	}, nil
}

// findSheet returns the sheet named want. An empty name selects the first
// sheet. Names that differ only in surrounding whitespace also match.
func findSheet(f *excelize.File, want string) (string, bool) {
	sheets := f.GetSheetList()
	if want == "" {
		if len(sheets) == 0 {
			return "", false
		}
		return sheets[0], true
	}
	for _, name := range sheets {
		if name == want {
			return name, true
		}
	}
	for _, name := range sheets {
		if strings.TrimSpace(name) == strings.TrimSpace(want) {
			return name, true
		}
	}
	return "", false
}

// Header returns the header keys in column order, without empty header cells.
func (c *Cursor) Header() []string {
	keys := make([]string, 0, len(c.header))
	for _, key := range c.header {
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Range returns the cell range covered by the header and the data rows.
func (c *Cursor) Range() models.CellRange {
	return parser.TableRange(c.rows, c.headerIdx, c.lastIdx)
}

// Next advances to the next record. It returns false at the end of the
// data or on error; check Err afterwards.
func (c *Cursor) Next() bool {
	if c.err != nil || c.pos > c.lastIdx {
		return false
	}
	rowIdx := c.pos
	c.pos++

	record, err := c.readRecord(rowIdx)
	if err != nil {
		c.err = err
		return false
	}
	c.record = record
	return true
}

// Record returns the current record.
func (c *Cursor) Record() models.Record {
	return c.record
}

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Close releases the workbook.
func (c *Cursor) Close() error {
	return c.f.Close()
}

func (c *Cursor) readRecord(rowIdx int) (models.Record, error) {
	rowNum := rowIdx + 1
	values, formulas, err := c.sheet.ResolveRow(rowNum, c.rows[rowIdx], len(c.header))
	if err != nil {
		return models.Record{}, c.malformed(rowNum, rawCells(c.rows[rowIdx]), err)
	}

	for _, fm := range formulas {
		col := fm.Col - 1
		if col >= len(c.header) || c.header[col] == "" || !parser.IsEmailFormula(fm.Text) {
			continue
		}
		if col < 2 {
			return models.Record{}, c.malformed(rowNum, values,
				fmt.Errorf("email formula %s in column %d has no preceding name cells", fm.Text, fm.Col))
		}
		email, err := parser.RepairEmail(cellText(values[col-2]), cellText(values[col-1]), fm.Text)
		if err != nil {
			return models.Record{}, c.malformed(rowNum, values, fmt.Errorf("column %d: %w", fm.Col, err))
		}
		values[col] = email
	}

	fields := make(map[string]interface{}, len(c.header))
	for i, key := range c.header {
		if key == "" {
			continue
		}
		var v interface{}
		if i < len(values) {
			v = values[i]
		}
		fields[key] = v
	}

	if c.entityCol >= 0 {
		if err := c.resolveEntity(fields); err != nil {
			return models.Record{}, c.malformed(rowNum, values, err)
		}
	}

	return models.Record{
		Row:    rowNum,
		Source: c.book,
		Sheet:  c.sheet.Name(),
		Fields: fields,
	}, nil
}

// resolveEntity applies the rename rules and the lookup to the entity field.
func (c *Cursor) resolveEntity(fields map[string]interface{}) error {
	key := c.header[c.entityCol]
	if name, ok := fields[key].(string); ok {
		renamed := c.opts.Schema.Rename(name)
		if renamed == name {
			renamed = c.opts.Schema.Rename(strings.TrimSpace(name))
		}
		fields[key] = renamed
	}
	if c.opts.Lookup == nil {
		return nil
	}
	entry, err := c.opts.Lookup.Resolve(cellText(fields[key]))
	if err != nil {
		return err
	}
	fields[key] = entry.Name
	return nil
}

func (c *Cursor) malformed(rowNum int, cells []interface{}, err error) error {
	return NewMalformedRowError(c.book, c.sheet.Name(), rowNum, cells, err)
}

func rawCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, s := range row {
		if s != "" {
			cells[i] = s
		}
	}
	return cells
}

func cellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
