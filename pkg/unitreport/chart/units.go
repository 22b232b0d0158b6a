package chart

import "gonum.org/v1/plot/vg"

// PixelsPerInch is the raster resolution figures are sized for.
// 1 inch = 72 points, and at 96 DPI 1 inch = 96 pixels.
const PixelsPerInch = 96

// Pixels converts a length in pixels to a vg length.
func Pixels(px float64) vg.Length {
	return vg.Length(px * float64(vg.Inch) / PixelsPerInch)
}
