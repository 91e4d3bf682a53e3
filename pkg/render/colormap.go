package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a normalized flux value in [0, 1] to a color by blending
// between fixed control points in Luv space, which keeps the ramp
// perceptually even.
type Colormap struct {
	stops []colorful.Color
}

// NewColormap builds a colormap from at least two control points, evenly
// spaced over [0, 1].
func NewColormap(stops ...colorful.Color) Colormap {
	if len(stops) < 2 {
		panic("render: colormap needs at least two control points")
	}
	return Colormap{stops: stops}
}

// At returns the color for a normalized value, clamping to [0, 1].
func (c Colormap) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(c.stops)-1)
	i := int(pos)
	if i >= len(c.stops)-1 {
		i = len(c.stops) - 2
	}
	blended := c.stops[i].BlendLuv(c.stops[i+1], pos-float64(i)).Clamped()
	r, g, b := blended.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Inferno returns a dark-to-bright perceptual colormap suited to flux maps
// dominated by a thin bright ring on a black background.
func Inferno() Colormap {
	return NewColormap(
		mustHex("#000004"),
		mustHex("#1b0c41"),
		mustHex("#4a0c6b"),
		mustHex("#781c6d"),
		mustHex("#a52c60"),
		mustHex("#cf4446"),
		mustHex("#ed6925"),
		mustHex("#fb9b06"),
		mustHex("#f7d03c"),
		mustHex("#fcffa4"),
	)
}

// ColormapByName resolves a colormap flag value. Grayscale output is not a
// colormap; callers handle it before resolving.
func ColormapByName(name string) (Colormap, error) {
	switch name {
	case "inferno":
		return Inferno(), nil
	default:
		return Colormap{}, fmt.Errorf("render: unknown colormap %q", name)
	}
}
