// Package plot renders diagnostic charts of the solver's intermediate
// curves, for validation against the figures of the source paper.
package plot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

const (
	// angleCount is the number of plate angles traced per curve.
	angleCount = 360
	// plateExtent is the half-width of the plotted plate region, in units
	// of black hole mass.
	plateExtent = 35.0
)

// Curve selects one isoradial to plot.
type Curve struct {
	// Radius of the isoradial, in absolute units.
	Radius float64
	// Order of the image (0 = direct, 1+ = ghost).
	Order int
}

// Isoradials plots the apparent shadow edge and a set of isoradial curves
// for the given black hole and inclination, saving the chart to path. Ghost
// curves are drawn fainter than direct ones, and vertically flipped, as
// they appear on the plate.
func Isoradials(bh *blackhole.BlackHole, inclination float64, curves []Curve, cfg blackhole.SolverConfig, path string) error {
	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = -plateExtent, plateExtent
	p.Y.Min, p.Y.Max = -plateExtent, plateExtent

	// Apparent edge of the shadow: the inner disk edge's image, capped by
	// the photon capture radius.
	innerEdge := blackhole.NewIsoradial(bh, bh.DiskInnerEdge(), 0)
	shadow := make(plotter.XYs, angleCount+1)
	for i := 0; i <= angleCount; i++ {
		theta := float64(i) / angleCount * 2 * math.Pi
		b := innerEdge.ImpactParameterAt(inclination, theta+math.Pi/2, cfg)
		if bc := bh.CriticalImpactParameter(); b > bc {
			b = bc
		}
		shadow[i].X = b * math.Cos(theta)
		shadow[i].Y = b * math.Sin(theta)
	}
	shadowLine, err := plotter.NewLine(shadow)
	if err != nil {
		return fmt.Errorf("plot: building shadow line: %w", err)
	}
	shadowLine.LineStyle.Width = vg.Points(2)
	shadowLine.LineStyle.Color = color.Black
	p.Add(shadowLine)

	for _, c := range curves {
		ir := blackhole.NewIsoradial(bh, c.Radius, c.Order)
		points := ir.Coordinates(inclination, angleCount, cfg)
		xys := make(plotter.XYs, 0, angleCount+1)
		for _, pt := range points {
			// Rotate the plate by -90 degrees; ghost orders flip y.
			x, y := pt.Y, -pt.X
			if c.Order > 0 {
				y = -y
			}
			xys = append(xys, plotter.XY{X: x, Y: y})
		}
		xys = append(xys, xys[0]) // close the curve

		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("plot: building isoradial r=%v order=%d: %w", c.Radius, c.Order, err)
		}
		line.LineStyle.Width = vg.Points(2)
		if c.Order > 0 {
			line.LineStyle.Color = color.Gray{Y: 192}
		} else {
			line.LineStyle.Color = color.Gray{Y: 128}
		}
		p.Add(line)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("plot: saving isoradials: %w", err)
	}
	return nil
}
