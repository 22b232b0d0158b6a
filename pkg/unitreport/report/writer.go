package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/orderportal/unitreport/pkg/unitreport"
	"github.com/orderportal/unitreport/pkg/unitreport/models"
	"github.com/orderportal/unitreport/pkg/unitreport/parser"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Writer builds merged reports. Every record is placed under the unit its
// entity field resolves to in Lookup.
type Writer struct {
	Lookup *unitreport.Lookup
	// Logger receives notes about skipped units. Nil means slog.Default().
	Logger *slog.Logger
}

// Write builds the report and saves it to path.
func (w *Writer) Write(path string, spec Spec, records []models.Record) error {
	f, err := w.Build(spec, records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

// Build lays out records in a new workbook according to spec.
func (w *Writer) Build(spec Spec, records []models.Record) (*excelize.File, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if w.Lookup == nil {
		return nil, fmt.Errorf("report %q: no lookup table", spec.Name)
	}

	f := excelize.NewFile()
	b := &builder{spec: spec, f: f, sheet: defaultSheet, log: w.logger()}
	if err := b.build(w.Lookup, records); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

type builder struct {
	spec  Spec
	f     *excelize.File
	sheet string
	st    *styles
	log   *slog.Logger
	row   int
}

func (b *builder) build(lookup *unitreport.Lookup, records []models.Record) error {
	if b.spec.Sheet != "" && b.spec.Sheet != defaultSheet {
		if err := b.f.SetSheetName(defaultSheet, b.spec.Sheet); err != nil {
			return err
		}
		b.sheet = b.spec.Sheet
	}
	st, err := newStyles(b.f)
	if err != nil {
		return err
	}
	b.st = st

	if err := b.setColumns(); err != nil {
		return err
	}
	headerRows, err := b.writeHeader()
	if err != nil {
		return err
	}
	b.row = headerRows + 1

	switch b.spec.Layout {
	case LayoutFlat:
		err = b.writeFlat(lookup, records)
	case LayoutGrouped:
		err = b.writeGrouped(lookup, records)
	case LayoutJoined:
		err = b.writeJoined(lookup, records)
	}
	if err != nil {
		return err
	}

	if err := b.f.SetRowStyle(b.sheet, 1, headerRows, b.st.header); err != nil {
		return err
	}
	return b.freeze(headerRows)
}

func (b *builder) setColumns() error {
	wrapAll := b.spec.Layout == LayoutJoined
	lead := b.st.normal
	if wrapAll || b.spec.Layout == LayoutGrouped {
		lead = b.st.wrap
	}
	if err := b.f.SetColStyle(b.sheet, "A:B", lead); err != nil {
		return err
	}
	if err := b.f.SetColWidth(b.sheet, "A", "B", b.spec.entityWidth()); err != nil {
		return err
	}
	for i, col := range b.spec.Columns {
		name, err := excelize.ColumnNumberToName(i + 3)
		if err != nil {
			return err
		}
		style := b.st.normal
		if col.Wrap || wrapAll {
			style = b.st.wrap
		}
		if err := b.f.SetColStyle(b.sheet, name, style); err != nil {
			return err
		}
		if err := b.f.SetColWidth(b.sheet, name, name, col.width()); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the header rows and returns how many there are.
func (b *builder) writeHeader() (int, error) {
	lead := []interface{}{b.spec.entityHeader(), b.spec.categoryHeader()}
	if !b.spec.grouped() {
		row := lead
		for _, col := range b.spec.Columns {
			row = append(row, col.header())
		}
		return 1, b.f.SetSheetRow(b.sheet, "A1", &row)
	}

	top := make([]interface{}, 0, len(b.spec.Columns)+2)
	sub := make([]interface{}, 0, len(b.spec.Columns)+2)
	top = append(top, lead...)
	sub = append(sub, nil, nil)
	for i, col := range b.spec.Columns {
		switch {
		case col.Group == "":
			top = append(top, col.header())
			sub = append(sub, nil)
		case i > 0 && b.spec.Columns[i-1].Group == col.Group:
			// covered by the merge starting at the group's first column
			top = append(top, nil)
			sub = append(sub, col.header())
		default:
			top = append(top, col.Group)
			sub = append(sub, col.header())
		}
	}
	if err := b.f.SetSheetRow(b.sheet, "A1", &top); err != nil {
		return 0, err
	}
	if err := b.f.SetSheetRow(b.sheet, "A2", &sub); err != nil {
		return 0, err
	}

	if err := b.merge(1, 1, 2, 1); err != nil {
		return 0, err
	}
	if err := b.merge(1, 2, 2, 2); err != nil {
		return 0, err
	}
	for start := 0; start < len(b.spec.Columns); {
		group := b.spec.Columns[start].Group
		end := start
		for end+1 < len(b.spec.Columns) && group != "" && b.spec.Columns[end+1].Group == group {
			end++
		}
		var err error
		if group == "" {
			err = b.merge(1, start+3, 2, start+3)
		} else if end > start {
			err = b.merge(1, start+3, 1, end+3)
		}
		if err != nil {
			return 0, err
		}
		start = end + 1
	}
	return 2, nil
}

func (b *builder) freeze(headerRows int) error {
	cols := b.spec.FreezeCols
	topLeft, err := excelize.CoordinatesToCellName(cols+1, headerRows+1)
	if err != nil {
		return err
	}
	pane := "bottomLeft"
	if cols > 0 {
		pane = "bottomRight"
	}
	return b.f.SetPanes(b.sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      headerRows,
		TopLeftCell: topLeft,
		ActivePane:  pane,
	})
}

// merge merges the cells from (r1, c1) to (r2, c2), 1-based.
func (b *builder) merge(r1, c1, r2, c2 int) error {
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return err
	}
	return b.f.MergeCell(b.sheet, from, to)
}

func (b *builder) writeRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, b.row)
	if err != nil {
		return err
	}
	if err := b.f.SetSheetRow(b.sheet, cell, &values); err != nil {
		return err
	}
	b.row++
	return nil
}

// resolve returns the lookup entry of a record's unit.
func (b *builder) resolve(lookup *unitreport.Lookup, rec models.Record) (unitreport.Entry, error) {
	entry, err := lookup.Resolve(rec.Text(b.spec.EntityKey))
	if err != nil {
		return unitreport.Entry{}, b.malformed(rec, err)
	}
	return entry, nil
}

func (b *builder) values(rec models.Record) ([]interface{}, error) {
	out := make([]interface{}, len(b.spec.Columns))
	for i, col := range b.spec.Columns {
		v, err := cellValue(col, rec)
		if err != nil {
			return nil, b.malformed(rec, err)
		}
		out[i] = v
	}
	return out, nil
}

func (b *builder) malformed(rec models.Record, err error) error {
	return unitreport.NewMalformedRowError(rec.Source, rec.Sheet, rec.Row, rowCells(rec, b.spec), err)
}

func (b *builder) writeFlat(lookup *unitreport.Lookup, records []models.Record) error {
	for _, rec := range records {
		entry, err := b.resolve(lookup, rec)
		if err != nil {
			return err
		}
		values, err := b.values(rec)
		if err != nil {
			return err
		}
		if err := b.writeRow(append([]interface{}{entry.Name, entry.Category}, values...)); err != nil {
			return err
		}
	}
	return nil
}

// byEntity buckets records under their unit's canonical name.
func (b *builder) byEntity(lookup *unitreport.Lookup, records []models.Record) (map[string][]models.Record, error) {
	buckets := make(map[string][]models.Record)
	for _, rec := range records {
		entry, err := b.resolve(lookup, rec)
		if err != nil {
			return nil, err
		}
		buckets[entry.Name] = append(buckets[entry.Name], rec)
	}
	return buckets, nil
}

func (b *builder) writeGrouped(lookup *unitreport.Lookup, records []models.Record) error {
	buckets, err := b.byEntity(lookup, records)
	if err != nil {
		return err
	}
	for _, entry := range lookup.Entries() {
		recs := buckets[entry.Name]
		if len(recs) == 0 {
			b.log.Info("no records for unit", "report", b.spec.Name, "unit", entry.Name)
			continue
		}
		first := b.row
		for i, rec := range recs {
			values, err := b.values(rec)
			if err != nil {
				return err
			}
			lead := []interface{}{entry.Name, entry.Category}
			if i > 0 {
				lead = []interface{}{nil, nil}
			}
			if err := b.writeRow(append(lead, values...)); err != nil {
				return err
			}
		}
		if len(recs) > 1 {
			if err := b.merge(first, 1, b.row-1, 1); err != nil {
				return err
			}
			if err := b.merge(first, 2, b.row-1, 2); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) writeJoined(lookup *unitreport.Lookup, records []models.Record) error {
	buckets, err := b.byEntity(lookup, records)
	if err != nil {
		return err
	}
	for _, entry := range lookup.Entries() {
		row := []interface{}{entry.Name, entry.Category}
		for _, col := range b.spec.Columns {
			var parts []string
			for _, rec := range buckets[entry.Name] {
				if !rec.Has(col.Key) {
					continue
				}
				v, err := cellValue(col, rec)
				if err != nil {
					return b.malformed(rec, err)
				}
				if !parser.IsBlank(v) {
					parts = append(parts, fmt.Sprint(v))
				}
			}
			row = append(row, strings.Join(parts, "\n"))
		}
		if err := b.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}
