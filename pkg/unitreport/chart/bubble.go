package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Spec describes a bubble chart of record counts per unit (x) and
// affiliation (y).
type Spec struct {
	// Name is the output file name; the extension selects the image format.
	Name   string
	Title  string
	XLabel string
	YLabel string
	// Entities and Affiliations fix the axis order. They must list exactly
	// the labels present in the data. Empty means sorted data labels.
	Entities     []string
	Affiliations []string
	// Scale multiplies marker and font sizes.
	Scale float64
	// Width and Height are the image size in pixels.
	Width  int
	Height int
	// Palette colors the affiliations in order. Nil means MediumPalette.
	Palette *Palette
	// CSV also writes the counts next to the image, with a .csv extension.
	CSV bool
}

const (
	defaultWidth  = 1537
	defaultHeight = 850
	tickAngle     = 40 * math.Pi / 180
)

var gridColor = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// MarkerDiameter returns the bubble diameter in pixels for a count of n.
func MarkerDiameter(n int, scale float64) float64 {
	return scale * (5*math.Sqrt(float64(n)) + 5)
}

func (s Spec) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

func (s Spec) size() (vg.Length, vg.Length) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return Pixels(float64(w)), Pixels(float64(h))
}

// Axes returns the unit and affiliation orders for counts, checking any
// configured order against the data.
func (s Spec) Axes(counts Counts) (entities, affiliations []string, err error) {
	entities, affiliations = s.Entities, s.Affiliations
	if len(entities) == 0 {
		entities = counts.Entities()
	} else if err := checkLabels("units", entities, counts.Entities()); err != nil {
		return nil, nil, err
	}
	if len(affiliations) == 0 {
		affiliations = counts.Affiliations()
	} else if err := checkLabels("affiliations", affiliations, counts.Affiliations()); err != nil {
		return nil, nil, err
	}
	return entities, affiliations, nil
}

// Bubble builds the chart. Each affiliation is one scatter series with its
// own palette color; the marker area grows with the count.
func Bubble(spec Spec, counts Counts) (*plot.Plot, error) {
	entities, affiliations, err := spec.Axes(counts)
	if err != nil {
		return nil, err
	}
	palette := spec.Palette
	if palette == nil {
		palette = MediumPalette
	}
	scale := spec.scale()

	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = Pixels(scale * 20)
	p.BackgroundColor = color.White

	p.X.Label.Text = spec.XLabel
	p.X.Label.TextStyle.Font.Size = Pixels(scale * 18)
	p.X.Min, p.X.Max = 0, float64(len(entities)+1)
	p.X.Tick.Marker = labelTicks(entities)
	p.X.Tick.Label.Font.Size = Pixels(scale * 16)
	p.X.Tick.Label.Rotation = tickAngle
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Y.Label.Text = spec.YLabel
	p.Y.Label.TextStyle.Font.Size = Pixels(scale * 18)
	p.Y.Min, p.Y.Max = 0, float64(len(affiliations)+1)
	p.Y.Tick.Marker = labelTicks(affiliations)
	p.Y.Tick.Label.Font.Size = Pixels(scale * 16)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for a, affiliation := range affiliations {
		var points plotter.XYs
		var sizes []vg.Length
		for e, entity := range entities {
			n := counts.Get(entity, affiliation)
			if n == 0 {
				continue
			}
			points = append(points, plotter.XY{X: float64(e + 1), Y: float64(a + 1)})
			sizes = append(sizes, Pixels(MarkerDiameter(n, scale))/2)
		}
		if len(points) == 0 {
			continue
		}
		series, err := plotter.NewScatter(points)
		if err != nil {
			return nil, fmt.Errorf("affiliation %q: %w", affiliation, err)
		}
		c := palette.At(a)
		series.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  c,
				Radius: sizes[i],
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(series)
	}
	return p, nil
}

func labelTicks(labels []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(labels))
	for i, label := range labels {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: label}
	}
	return ticks
}

// Save draws the chart to path. With spec.CSV the counts table is written
// alongside it.
func Save(spec Spec, counts Counts, path string) error {
	p, err := Bubble(spec, counts)
	if err != nil {
		return err
	}
	w, h := spec.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	if !spec.CSV {
		return nil
	}

	entities, affiliations, _ := spec.Axes(counts)
	csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	out, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	if err := counts.WriteCSV(out, spec.XLabel, entities, affiliations); err != nil {
		out.Close()
		return fmt.Errorf("write counts %s: %w", csvPath, err)
	}
	return out.Close()
}
