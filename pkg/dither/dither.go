// Package dither reduces a grayscale image to pure black and white with
// error-diffusion dithering.
package dither

import (
	"fmt"
	"image"
)

// Algorithm selects the error-diffusion kernel.
type Algorithm int

const (
	// FloydSteinberg diffuses the quantization error over four neighbors
	// with weights 7/16, 3/16, 5/16, 1/16.
	FloydSteinberg Algorithm = iota
	// Atkinson diffuses six neighbors at 1/8 each, deliberately losing a
	// quarter of the error for a lighter result.
	Atkinson
)

func (a Algorithm) String() string {
	switch a {
	case FloydSteinberg:
		return "floyd-steinberg"
	case Atkinson:
		return "atkinson"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm resolves a flag value to an algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "floyd-steinberg", "floyd":
		return FloydSteinberg, nil
	case "atkinson":
		return Atkinson, nil
	default:
		return 0, fmt.Errorf("dither: unknown algorithm %q", s)
	}
}

// kernelTap is one neighbor receiving a share of the quantization error.
type kernelTap struct {
	dx, dy int
	num    int
}

var kernels = map[Algorithm]struct {
	taps []kernelTap
	den  int
}{
	FloydSteinberg: {
		taps: []kernelTap{{1, 0, 7}, {-1, 1, 3}, {0, 1, 5}, {1, 1, 1}},
		den:  16,
	},
	Atkinson: {
		taps: []kernelTap{{1, 0, 1}, {2, 0, 1}, {-1, 1, 1}, {0, 1, 1}, {1, 1, 1}, {0, 2, 1}},
		den:  8,
	},
}

// Apply dithers the grayscale image in place, leaving every pixel either 0
// or 255.
func Apply(alg Algorithm, img *image.Gray) error {
	kernel, ok := kernels[alg]
	if !ok {
		return fmt.Errorf("dither: unknown algorithm %v", alg)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Work in a float buffer so diffused error is not clipped early.
	buf := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 255
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := buf[y*w+x]
			quantized := 0.0
			if old > 0.5 {
				quantized = 1.0
			}
			err := old - quantized
			buf[y*w+x] = quantized
			for _, tap := range kernel.taps {
				nx, ny := x+tap.dx, y+tap.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				buf[ny*w+nx] += err * float64(tap.num) / float64(kernel.den)
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if buf[y*w+x] > 0.5 {
				v = 255
			}
			img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] = v
		}
	}
	return nil
}
