package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/orderportal/unitreport/pkg/unitreport"
	"github.com/orderportal/unitreport/pkg/unitreport/chart"
	"github.com/orderportal/unitreport/pkg/unitreport/report"
)

// Validate checks that the profile is internally consistent.
func (p *Profile) Validate() error {
	if len(p.Entities) == 0 {
		return fmt.Errorf("no entities")
	}
	if _, err := p.Lookup(); err != nil {
		return err
	}
	if err := (unitreport.Schema{Renames: p.Renames}).Validate(); err != nil {
		return err
	}

	for name, src := range p.Sources {
		if (src.Path == "") == (src.Dir == "") {
			return fmt.Errorf("source %q: exactly one of path and dir must be set", name)
		}
	}
	for _, r := range p.Reports {
		if len(r.Sources) == 0 {
			return fmt.Errorf("report %q: no sources", r.Name)
		}
		for _, s := range r.Sources {
			if _, ok := p.Sources[s]; !ok {
				return fmt.Errorf("report %q: unknown source %q", r.Name, s)
			}
		}
		spec, err := p.ReportSpec(r.Name)
		if err != nil {
			return err
		}
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	for _, c := range p.Charts {
		if _, ok := p.Sources[c.Source]; !ok {
			return fmt.Errorf("chart %q: unknown source %q", c.Name, c.Source)
		}
		if c.AffiliationKey == "" {
			return fmt.Errorf("chart %q: no affiliation key", c.Name)
		}
		if _, err := chart.PaletteByName(c.Palette); err != nil {
			return fmt.Errorf("chart %q: %w", c.Name, err)
		}
	}
	return nil
}

// Lookup builds the unit lookup table.
func (p *Profile) Lookup() (*unitreport.Lookup, error) {
	entries := make([]unitreport.Entry, len(p.Entities))
	for i, e := range p.Entities {
		entries[i] = unitreport.Entry{Name: e.Name, Category: e.Category}
	}
	return unitreport.NewLookup(entries)
}

// SourceNames returns the configured source names, sorted.
func (p *Profile) SourceNames() []string {
	names := make([]string, 0, len(p.Sources))
	for name := range p.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the extraction schema of a source.
func (p *Profile) Schema(source string) (unitreport.Schema, error) {
	src, ok := p.Sources[source]
	if !ok {
		return unitreport.Schema{}, unitreport.NewNotFoundError("source", source, "")
	}
	return unitreport.Schema{
		Sheet:     src.Sheet,
		Marker:    src.Marker,
		EntityKey: src.EntityKey,
		Headers:   src.Headers,
		Renames:   p.Renames,
	}, nil
}

// SourcePath returns the absolute location of a source and whether it is
// a directory of volume workbooks.
func (p *Profile) SourcePath(source string) (string, bool, error) {
	src, ok := p.Sources[source]
	if !ok {
		return "", false, unitreport.NewNotFoundError("source", source, "")
	}
	if src.Dir != "" {
		return p.resolve(src.Dir), true, nil
	}
	return p.resolve(src.Path), false, nil
}

// MergedPath returns the output path of a merged report file.
func (p *Profile) MergedPath(name string) string {
	return filepath.Join(p.resolve(p.MergedDir), name)
}

// FigurePath returns the output path of a chart file.
func (p *Profile) FigurePath(name string) string {
	return filepath.Join(p.resolve(p.FiguresDir), name)
}

func (p *Profile) resolve(path string) string {
	if filepath.IsAbs(path) || p.BaseDir == "" {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// FindReport returns the report with the given output name.
func (p *Profile) FindReport(name string) (Report, error) {
	for _, r := range p.Reports {
		if r.Name == name {
			return r, nil
		}
	}
	return Report{}, unitreport.NewNotFoundError("report", name, "")
}

// ReportSpec converts a configured report into a writer spec. The unit
// column is read from the first source's entity key.
func (p *Profile) ReportSpec(name string) (report.Spec, error) {
	r, err := p.FindReport(name)
	if err != nil {
		return report.Spec{}, err
	}
	if len(r.Sources) == 0 {
		return report.Spec{}, fmt.Errorf("report %q: no sources", name)
	}
	freeze := 2
	if r.FreezeCols != nil {
		freeze = *r.FreezeCols
	}
	spec := report.Spec{
		Name:           r.Name,
		Sheet:          r.Sheet,
		Layout:         report.Layout(r.Layout),
		EntityKey:      p.Sources[r.Sources[0]].EntityKey,
		EntityHeader:   r.EntityHeader,
		CategoryHeader: r.CategoryHeader,
		EntityWidth:    r.EntityWidth,
		FreezeCols:     freeze,
	}
	if spec.EntityHeader == "" {
		spec.EntityHeader = p.EntityLabel
	}
	if spec.CategoryHeader == "" {
		spec.CategoryHeader = p.CategoryLabel
	}
	for _, c := range r.Columns {
		spec.Columns = append(spec.Columns, report.Column(c))
	}
	return spec, nil
}

// FindChart returns the chart with the given output name.
func (p *Profile) FindChart(name string) (Chart, error) {
	for _, c := range p.Charts {
		if c.Name == name {
			return c, nil
		}
	}
	return Chart{}, unitreport.NewNotFoundError("chart", name, "")
}

// ChartSpec converts a configured chart into a drawing spec and the
// options for counting its source records.
func (p *Profile) ChartSpec(name string) (chart.Spec, chart.CountOptions, error) {
	c, err := p.FindChart(name)
	if err != nil {
		return chart.Spec{}, chart.CountOptions{}, err
	}
	palette, err := chart.PaletteByName(c.Palette)
	if err != nil {
		return chart.Spec{}, chart.CountOptions{}, err
	}

	entities := c.Entities
	if c.AllEntities {
		entities = make([]string, len(p.Entities))
		for i, e := range p.Entities {
			entities[i] = e.Name
		}
		sort.Strings(entities)
	}

	spec := chart.Spec{
		Name:         c.Name,
		Title:        c.Title,
		XLabel:       c.XLabel,
		YLabel:       c.YLabel,
		Entities:     entities,
		Affiliations: c.Affiliations,
		Scale:        c.Scale,
		Width:        c.Width,
		Height:       c.Height,
		Palette:      palette,
		CSV:          c.CSV,
	}
	opts := chart.CountOptions{
		EntityKey:      p.Sources[c.Source].EntityKey,
		AffiliationKey: c.AffiliationKey,
		Fallback:       c.Fallback,
	}
	return spec, opts, nil
}
