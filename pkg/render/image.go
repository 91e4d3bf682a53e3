package render

import (
	"image"
	"image/color"
	"math"
)

// normalize maps a flux value to [0, 1] against the given scale. A
// non-positive scale (an all-zero grid) maps everything to zero instead of
// dividing by it.
func normalize(v, maxFlux float64) float64 {
	if maxFlux <= 0 {
		return 0
	}
	t := v / maxFlux
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// GrayImage maps a flux grid to a 16-bit grayscale image, normalized
// against maxFlux.
func GrayImage(grid *FluxGrid, maxFlux float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := normalize(grid.At(x, y), maxFlux)
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * 65535))})
		}
	}
	return img
}

// ColorImage maps a flux grid through a colormap, normalized against
// maxFlux.
func ColorImage(grid *FluxGrid, maxFlux float64, cmap Colormap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			img.SetRGBA(x, y, cmap.At(normalize(grid.At(x, y), maxFlux)))
		}
	}
	return img
}
