package chart

import (
	"image/color"

	"github.com/mazznoer/colorgrad"
)

// The palette samples a reversed turbo colormap with both ends cut off,
// where the dark blue and dark red extremes read poorly on white.
const (
	paletteTrimLow  = 30.0 / 255.0
	paletteTrimHigh = 225.0 / 255.0
)

// Palette returns n colours spread evenly over the trimmed, reversed turbo
// colormap. The same n always yields the same colours, so a project keeps
// its slot as long as its rank does.
func Palette(n int) []color.Color {
	grad := colorgrad.Turbo()
	colors := make([]color.Color, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, b := grad.At(paletteTrimHigh - t*(paletteTrimHigh-paletteTrimLow)).RGB255()
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}
