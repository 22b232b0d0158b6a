// Package chart draws report figures from extracted records.
package chart

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Brand base colors.
const (
	Lime  = "#A7C947"
	Teal  = "#045C64"
	Aqua  = "#4C979F"
	Grape = "#491F53"
)

// Brand grays.
const (
	LightGray  = "#E5E5E5"
	MediumGray = "#A6A6A6"
	DarkGray   = "#3F3F3F"
)

// Tints maps a saturation percentage to a tint of a base color.
type Tints map[int]string

var (
	LimeTints  = Tints{25: "#E9F2D1", 50: "#D3E4A3", 75: "#BDD775", 100: Lime}
	TealTints  = Tints{25: "#C0D6D8", 50: "#82AEB2", 75: "#43858B", 100: Teal}
	AquaTints  = Tints{25: "#D2E5E7", 50: "#A6CBCF", 75: "#79B1B7", 100: Aqua}
	GrapeTints = Tints{25: "#D2C7D4", 50: "#A48FA9", 75: "#77577E", 100: Grape}
)

// Palette hands out colors from a fixed range, cycling through it indefinitely.
type Palette struct {
	colors []string
}

// NewPalette returns a palette over hex colors such as "#A7C947".
func NewPalette(colors ...string) (*Palette, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	for _, c := range colors {
		if _, err := ParseHex(c); err != nil {
			return nil, err
		}
	}
	return &Palette{colors: append([]string(nil), colors...)}, nil
}

func mustPalette(colors ...string) *Palette {
	p, err := NewPalette(colors...)
	if err != nil {
		panic(err)
	}
	return p
}

// Built-in palettes.
var (
	BasePalette   = mustPalette(Lime, Teal, Aqua, Grape, DarkGray)
	MediumPalette = mustPalette(
		LimeTints[50], LimeTints[75],
		TealTints[50], TealTints[75],
		AquaTints[50], AquaTints[75],
		GrapeTints[50], GrapeTints[75],
		MediumGray, DarkGray,
	)
	AllPalette = mustPalette(allColors()...)
)

func allColors() []string {
	var out []string
	for _, tints := range []Tints{LimeTints, TealTints, AquaTints, GrapeTints} {
		out = append(out, tints.sorted()...)
	}
	return append(out, LightGray, MediumGray, DarkGray)
}

func (t Tints) sorted() []string {
	keys := make([]int, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = t[k]
	}
	return out
}

// Len returns the number of distinct colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Hex returns the i-th color in hex notation. i wraps around the range.
func (p *Palette) Hex(i int) string {
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

// At returns the i-th color. i wraps around the range.
func (p *Palette) At(i int) color.Color {
	c, _ := ParseHex(p.Hex(i))
	return c
}

// PaletteByName returns a built-in palette: "base", "medium" or "all".
func PaletteByName(name string) (*Palette, error) {
	switch strings.ToLower(name) {
	case "", "medium":
		return MediumPalette, nil
	case "base":
		return BasePalette, nil
	case "all":
		return AllPalette, nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

// ColorLookup maps names such as "teal" or "grape75" to hex colors.
var ColorLookup = buildLookup()

func buildLookup() map[string]string {
	lookup := map[string]string{
		"lime":       Lime,
		"teal":       Teal,
		"aqua":       Aqua,
		"grape":      Grape,
		"lightgray":  LightGray,
		"mediumgray": MediumGray,
		"darkgray":   DarkGray,
	}
	for name, tints := range map[string]Tints{"lime": LimeTints, "teal": TealTints, "aqua": AquaTints, "grape": GrapeTints} {
		for sat, c := range tints {
			lookup[fmt.Sprintf("%s%d", name, sat)] = c
		}
	}
	return lookup
}

// ParseHex parses a "#RRGGBB" color.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
