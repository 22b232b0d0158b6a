package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orderportal/unitreport/pkg/unitreport/chart"
	"github.com/orderportal/unitreport/pkg/unitreport/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
year = 2022
base_dir = "/data/2022"

[sources.users]
dir = "volume"
sheet = "A. Users"
marker = "Name of reporting unit"
entity_key = "unit"

[sources.heads]
path = "aggregate/heads.xlsx"
entity_key = "facility"

[[entities]]
name = "Genomics Unit"
category = "Genomics"

[[entities]]
name = "Imaging Unit"
category = "Imaging"

[[reports]]
name = "heads.xlsx"
sources = ["heads"]
layout = "grouped"

[[reports.columns]]
header = "Email"
key = "email"
lower = true

[[charts]]
name = "users.png"
source = "users"
affiliation_key = "affiliation"
all_entities = true
`

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2019, 2020, 2021}, Years())
	assert.Equal(t, 2021, LatestYear())
}

func TestLoadBuiltin(t *testing.T) {
	want := map[int]int{2019: 33, 2020: 33, 2021: 38}
	for _, year := range Years() {
		p, err := Load(year, "")
		require.NoError(t, err, year)
		assert.Equal(t, year, p.Year)
		assert.False(t, strings.HasPrefix(p.BaseDir, "~"), p.BaseDir)

		lookup, err := p.Lookup()
		require.NoError(t, err)
		assert.Equal(t, want[year], lookup.Len(), year)

		for _, r := range p.Reports {
			_, err := p.ReportSpec(r.Name)
			assert.NoError(t, err, r.Name)
		}
		for _, c := range p.Charts {
			_, _, err := p.ChartSpec(c.Name)
			assert.NoError(t, err, c.Name)
		}
	}
}

func TestLoadUnknownYear(t *testing.T) {
	_, err := Load(1999, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1999")
}

func TestLoad2019Renames(t *testing.T) {
	p, err := Load(2019, "")
	require.NoError(t, err)

	schema, err := p.Schema("users")
	require.NoError(t, err)
	assert.Equal(t, "In Situ Sequencing", schema.Rename("Eukaryotic Single Cell Genomics"))
	assert.Equal(t, "A. Users", schema.Sheet)

	_, isDir, err := p.SourcePath("users")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2022.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))

	p, err := Load(0, path)
	require.NoError(t, err)
	assert.Equal(t, 2022, p.Year)
	assert.Equal(t, "Facility", p.EntityLabel)
	assert.Equal(t, "Platform", p.CategoryLabel)
	assert.Equal(t, []string{"heads", "users"}, p.SourceNames())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(0, filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParsePaths(t *testing.T) {
	p, err := Parse([]byte(minimal))
	require.NoError(t, err)

	path, isDir, err := p.SourcePath("users")
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Equal(t, filepath.Join("/data/2022", "volume"), path)

	path, isDir, err = p.SourcePath("heads")
	require.NoError(t, err)
	assert.False(t, isDir)
	assert.Equal(t, filepath.Join("/data/2022", "aggregate/heads.xlsx"), path)

	assert.Equal(t, filepath.Join("/data/2022", "merged_files", "a.xlsx"), p.MergedPath("a.xlsx"))
	assert.Equal(t, filepath.Join("/data/2022", "figures", "f.png"), p.FigurePath("f.png"))

	_, _, err = p.SourcePath("courses")
	assert.Error(t, err)
}

func TestReportSpec(t *testing.T) {
	p, err := Parse([]byte(minimal))
	require.NoError(t, err)

	spec, err := p.ReportSpec("heads.xlsx")
	require.NoError(t, err)
	assert.Equal(t, report.LayoutGrouped, spec.Layout)
	assert.Equal(t, "facility", spec.EntityKey)
	assert.Equal(t, "Facility", spec.EntityHeader)
	assert.Equal(t, "Platform", spec.CategoryHeader)
	assert.Equal(t, 2, spec.FreezeCols)
	require.Len(t, spec.Columns, 1)
	assert.Equal(t, report.Column{Header: "Email", Key: "email", Lower: true}, spec.Columns[0])

	_, err = p.ReportSpec("other.xlsx")
	assert.Error(t, err)
}

func TestChartSpec(t *testing.T) {
	p, err := Parse([]byte(minimal))
	require.NoError(t, err)

	spec, opts, err := p.ChartSpec("users.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"Genomics Unit", "Imaging Unit"}, spec.Entities)
	assert.Same(t, chart.MediumPalette, spec.Palette)
	assert.Equal(t, "unit", opts.EntityKey)
	assert.Equal(t, "affiliation", opts.AffiliationKey)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(minimal + "\ncolour = \"teal\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no entities", "year = 2022\n"},
		{"unknown report source", minimal + "\n[[reports]]\nname = \"x.xlsx\"\nsources = [\"courses\"]\nlayout = \"flat\"\n"},
		{"unknown chart source", minimal + "\n[[charts]]\nname = \"x.png\"\nsource = \"courses\"\naffiliation_key = \"a\"\n"},
		{"unknown palette", minimal + "\n[[charts]]\nname = \"x.png\"\nsource = \"users\"\naffiliation_key = \"a\"\npalette = \"neon\"\n"},
		{"bad layout", minimal + "\n[[reports]]\nname = \"x.xlsx\"\nsources = [\"heads\"]\nlayout = \"pivot\"\n"},
		{"path and dir", strings.Replace(minimal, "dir = \"volume\"", "dir = \"volume\"\npath = \"users.xlsx\"", 1)},
		{"duplicate entity", minimal + "\n[[entities]]\nname = \"genomics unit\"\ncategory = \"Genomics\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/reports")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports"), got)

	got, err = ExpandHome("/srv/reports")
	require.NoError(t, err)
	assert.Equal(t, "/srv/reports", got)

	got, err = ExpandHome("~other/reports")
	require.NoError(t, err)
	assert.Equal(t, "~other/reports", got)
}
