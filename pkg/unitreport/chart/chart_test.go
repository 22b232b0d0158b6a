package chart

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func record(row int, unit, affiliation string) models.Record {
	return models.Record{
		Row:    row,
		Source: "users.xlsx",
		Fields: map[string]interface{}{"unit": unit, "affiliation": affiliation},
	}
}

func testCounts() Counts {
	c := make(Counts)
	c.Add("Genomics", "Academia", 4)
	c.Add("Genomics", "Industry", 1)
	c.Add("Imaging", "Academia", 9)
	return c
}

func TestPaletteCycles(t *testing.T) {
	p, err := NewPalette("#000000", "#FFFFFF")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "#000000", p.Hex(0))
	assert.Equal(t, "#FFFFFF", p.Hex(1))
	assert.Equal(t, "#000000", p.Hex(2))
	assert.Equal(t, "#FFFFFF", p.Hex(-1))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, p.At(3))
}

func TestNewPaletteRejectsBadColors(t *testing.T) {
	_, err := NewPalette()
	assert.Error(t, err)
	_, err = NewPalette("#12345")
	assert.Error(t, err)
	_, err = NewPalette("#GGGGGG")
	assert.Error(t, err)
}

func TestBuiltinPalettes(t *testing.T) {
	assert.Equal(t, 5, BasePalette.Len())
	assert.Equal(t, 10, MediumPalette.Len())
	assert.Equal(t, 19, AllPalette.Len())
	assert.Equal(t, LimeTints[25], AllPalette.Hex(0))
	assert.Equal(t, DarkGray, AllPalette.Hex(18))

	p, err := PaletteByName("")
	require.NoError(t, err)
	assert.Same(t, MediumPalette, p)
	p, err = PaletteByName("Base")
	require.NoError(t, err)
	assert.Same(t, BasePalette, p)
	_, err = PaletteByName("rainbow")
	assert.Error(t, err)
}

func TestColorLookup(t *testing.T) {
	assert.Equal(t, Teal, ColorLookup["teal"])
	assert.Equal(t, Teal, ColorLookup["teal100"])
	assert.Equal(t, "#82AEB2", ColorLookup["teal50"])
	assert.Equal(t, DarkGray, ColorLookup["darkgray"])
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#A7C947")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xA7, G: 0xC9, B: 0x47, A: 0xFF}, c)

	c, err = ParseHex("045c64")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x04, G: 0x5C, B: 0x64, A: 0xFF}, c)
}

func TestPixels(t *testing.T) {
	assert.InDelta(t, float64(vg.Inch), float64(Pixels(96)), 1e-9)
	assert.InDelta(t, 0.75, float64(Pixels(1)), 1e-9)
}

func TestMarkerDiameter(t *testing.T) {
	assert.InDelta(t, 10.0, MarkerDiameter(1, 1), 1e-9)
	assert.InDelta(t, 15.0, MarkerDiameter(4, 1), 1e-9)
	assert.InDelta(t, 100.0, MarkerDiameter(9, 5), 1e-9)
}

func TestCount(t *testing.T) {
	records := []models.Record{
		record(3, "Genomics", "academia"),
		record(4, "Genomics", " Academia "),
		record(5, "Genomics", ""),
		record(6, "Imaging", "Industry"),
		record(7, "Imaging", "övrigt"),
	}

	c := Count(records, CountOptions{EntityKey: "unit", AffiliationKey: "affiliation", Fallback: "Other"})
	assert.Equal(t, 2, c.Get("Genomics", "Academia"))
	assert.Equal(t, 1, c.Get("Genomics", "Other"))
	assert.Equal(t, 1, c.Get("Imaging", "Övrigt"))
	assert.Equal(t, 0, c.Get("Imaging", "Academia"))
	assert.Equal(t, 5, c.Total())
	assert.Equal(t, []string{"Genomics", "Imaging"}, c.Entities())
	assert.Equal(t, []string{"Academia", "Industry", "Other", "Övrigt"}, c.Affiliations())
}

func TestCountSkipsWithoutFallback(t *testing.T) {
	records := []models.Record{
		record(3, "Genomics", ""),
		record(4, "Genomics", "Industry"),
	}
	c := Count(records, CountOptions{EntityKey: "unit", AffiliationKey: "affiliation"})
	assert.Equal(t, 1, c.Total())
	assert.Equal(t, []string{"Industry"}, c.Affiliations())
}

func TestAxes(t *testing.T) {
	counts := testCounts()

	entities, affiliations, err := Spec{}.Axes(counts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Genomics", "Imaging"}, entities)
	assert.Equal(t, []string{"Academia", "Industry"}, affiliations)

	spec := Spec{
		Entities:     []string{"Imaging", "Genomics"},
		Affiliations: []string{"Industry", "Academia"},
	}
	entities, affiliations, err = spec.Axes(counts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Imaging", "Genomics"}, entities)
	assert.Equal(t, []string{"Industry", "Academia"}, affiliations)
}

func TestAxesMismatch(t *testing.T) {
	spec := Spec{Affiliations: []string{"Academia", "Healthcare"}}
	_, _, err := spec.Axes(testCounts())
	require.Error(t, err)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "affiliations", mismatch.What)
	assert.Equal(t, []string{"Healthcare"}, mismatch.Missing)
	assert.Equal(t, []string{"Industry"}, mismatch.Extra)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := testCounts().WriteCSV(&buf, "Unit", []string{"Imaging", "Genomics"}, []string{"Academia", "Industry"})
	require.NoError(t, err)
	assert.Equal(t, "Unit,Academia,Industry\nImaging,9,0\nGenomics,4,1\n", buf.String())
}

func TestBubble(t *testing.T) {
	spec := Spec{Title: "Users", XLabel: "Unit", YLabel: "Affiliation"}
	p, err := Bubble(spec, testCounts())
	require.NoError(t, err)

	assert.Equal(t, "Users", p.Title.Text)
	assert.Equal(t, 3.0, p.X.Max)
	assert.Equal(t, 3.0, p.Y.Max)
	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	require.Len(t, ticks, 2)
	assert.Equal(t, "Genomics", ticks[0].Label)
	assert.Equal(t, 2.0, ticks[1].Value)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig_users.png")
	spec := Spec{XLabel: "Unit", Width: 400, Height: 300, CSV: true}

	require.NoError(t, Save(spec, testCounts(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	data, err := os.ReadFile(filepath.Join(dir, "fig_users.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Unit,Academia,Industry\nGenomics,4,1\nImaging,9,0\n", string(data))
}
