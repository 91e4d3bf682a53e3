package blackhole

import "math"

// Point is a position on the observer's photographic plate, in units of
// black hole mass, before any plate rotation.
type Point struct {
	X, Y float64
}

// Isoradial is the apparent curve traced on the observer's plate by a single
// disk radius at a single image order.
type Isoradial struct {
	bh *BlackHole
	// Radius of the emitting circle, in absolute units.
	Radius float64
	// Order of the image (0 = direct, 1+ = ghost).
	Order int
}

// NewIsoradial constructs the isoradial of the given disk radius and order.
func NewIsoradial(bh *BlackHole, radius float64, order int) *Isoradial {
	return &Isoradial{bh: bh, Radius: radius, Order: order}
}

// ImpactParameterAt returns the apparent impact parameter of this isoradial
// at position angle alpha. Where the relativistic solve finds no root the
// Newtonian ellipse is substituted so the curve stays closed; this keeps the
// curve usable for plotting and masking, never for flux.
func (ir *Isoradial) ImpactParameterAt(inclination, alpha float64, cfg SolverConfig) float64 {
	sol := ir.bh.SolvePeriastron(ir.Radius, inclination, alpha, ir.Order, cfg)
	if sol.Outcome == NoSolution {
		return NewtonianEllipse(ir.Radius, alpha, inclination)
	}
	return sol.ImpactParameter
}

// Coordinates traces the isoradial as numAngles plate points, sweeping alpha
// over a full turn.
func (ir *Isoradial) Coordinates(inclination float64, numAngles int, cfg SolverConfig) []Point {
	points := make([]Point, numAngles)
	for i := range points {
		alpha := float64(i) / float64(numAngles) * 2 * math.Pi
		b := ir.ImpactParameterAt(inclination, alpha, cfg)
		points[i] = Point{X: b * math.Cos(alpha), Y: b * math.Sin(alpha)}
	}
	return points
}
