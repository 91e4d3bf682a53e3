package render

import (
	"math"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// edgeCurveAngles is the tabulation resolution of an apparent edge curve.
// Edge curves are smooth in alpha, so a linear interpolation over this many
// spokes is far below a pixel of error at any practical resolution.
const edgeCurveAngles = 1024

// edgeCurve tabulates the apparent impact parameter of one isoradial
// (typically a disk edge) over position angle, so the per-pixel mask does
// not have to run the path solver.
type edgeCurve struct {
	b []float64
}

// newEdgeCurve traces the isoradial of the given radius and order.
func newEdgeCurve(bh *blackhole.BlackHole, radius float64, order int, inclination float64, cfg blackhole.SolverConfig) edgeCurve {
	ir := blackhole.NewIsoradial(bh, radius, order)
	b := make([]float64, edgeCurveAngles)
	for i := range b {
		alpha := float64(i) / edgeCurveAngles * 2 * math.Pi
		b[i] = ir.ImpactParameterAt(inclination, alpha, cfg)
	}
	return edgeCurve{b: b}
}

// At returns the curve's impact parameter at position angle alpha,
// linearly interpolated between tabulated spokes.
func (c edgeCurve) At(alpha float64) float64 {
	t := alpha / (2 * math.Pi) * edgeCurveAngles
	t = math.Mod(t, edgeCurveAngles)
	if t < 0 {
		t += edgeCurveAngles
	}
	i := int(t)
	frac := t - float64(i)
	j := (i + 1) % edgeCurveAngles
	return c.b[i]*(1-frac) + c.b[j]*frac
}
