package blackhole

import (
	"fmt"
	"math"
)

// SolverConfig holds the numerical parameters of the photon path solver.
type SolverConfig struct {
	// Tolerance is the absolute width of the bisection bracket at which the
	// solve is considered converged, in units of the solved quantity.
	Tolerance float64
	// MaxIterations bounds the number of bisection steps per solve.
	MaxIterations int
	// MinPeriastron is the lower end of the periastron bracket, in units of
	// black hole mass. Must stay above the photon sphere at 3M.
	MinPeriastron float64
	// MaxPeriastronFactor is the upper end of the periastron bracket, in
	// units of the emission radius.
	MaxPeriastronFactor float64
}

// DefaultSolverConfig returns the solver parameters used by the paper's
// reproduction figures.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tolerance:           1e-6,
		MaxIterations:       100,
		MinPeriastron:       3.001,
		MaxPeriastronFactor: 3.0,
	}
}

// Validate reports the first invalid solver parameter, if any.
func (c SolverConfig) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("blackhole: solver tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("blackhole: solver max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.MinPeriastron <= 3 {
		return fmt.Errorf("blackhole: min periastron must exceed the photon sphere at 3 (units of mass), got %v", c.MinPeriastron)
	}
	if c.MaxPeriastronFactor <= 0 {
		return fmt.Errorf("blackhole: max periastron factor must be positive, got %v", c.MaxPeriastronFactor)
	}
	return nil
}

// bracketScanSteps is the resolution of the coarse scan EmissionRadius uses
// to find a usable lower bracket end when the disk's inner edge has no
// solution at the requested position angle.
const bracketScanSteps = 64

// Outcome classifies the result of a photon path solve.
type Outcome int

const (
	// Converged means a root was found within tolerance.
	Converged Outcome = iota
	// NoSolution means no root exists in the physical bracket: the photon
	// either misses the disk at this order or is captured by the hole. This
	// is an ordinary zero-flux outcome, not an error.
	NoSolution
	// NotConverged means the iteration budget ran out before the bracket
	// shrank below tolerance. The solution holds the best estimate found.
	NotConverged
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case NoSolution:
		return "no solution"
	case NotConverged:
		return "not converged"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PathSolution is the result of solving the bending equation for one
// (emission radius or impact parameter, position angle, image order) triple.
// Periastron and ImpactParameter are only meaningful when Outcome is not
// NoSolution.
type PathSolution struct {
	Outcome         Outcome
	Periastron      float64
	ImpactParameter float64
	Radius          float64
}

// SolvePeriastron finds the periastron of the photon emitted at the given
// disk radius that reaches an observer at inclination `inclination` with
// plate position angle `alpha`, after winding `order` times around the hole.
//
// The root is bracketed in [MinPeriastron*M, MaxPeriastronFactor*radius] and
// refined by bisection. If the residual does not change sign across the
// bracket there is no solution at this order.
func (bh *BlackHole) SolvePeriastron(radius, inclination, alpha float64, order int, cfg SolverConfig) PathSolution {
	lo := cfg.MinPeriastron * bh.Mass
	hi := cfg.MaxPeriastronFactor * radius
	if hi <= lo {
		return PathSolution{Outcome: NoSolution, Radius: radius}
	}

	fLo, errLo := radiusResidual(radius, lo, alpha, bh.Mass, inclination, order)
	fHi, errHi := radiusResidual(radius, hi, alpha, bh.Mass, inclination, order)
	if errLo != nil || errHi != nil || math.IsNaN(fLo) || math.IsNaN(fHi) {
		return PathSolution{Outcome: NoSolution, Radius: radius}
	}
	if math.Signbit(fLo) == math.Signbit(fHi) {
		return PathSolution{Outcome: NoSolution, Radius: radius}
	}

	iters := 0
	for hi-lo > cfg.Tolerance && iters < cfg.MaxIterations {
		mid := (lo + hi) / 2
		fMid, err := radiusResidual(radius, mid, alpha, bh.Mass, inclination, order)
		if err != nil || math.IsNaN(fMid) {
			return PathSolution{Outcome: NoSolution, Radius: radius}
		}
		if math.Signbit(fLo) != math.Signbit(fMid) {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
		iters++
	}

	periastron := (lo + hi) / 2
	if math.IsNaN(periastron) {
		return PathSolution{Outcome: NoSolution, Radius: radius}
	}
	sol := PathSolution{
		Outcome:         Converged,
		Periastron:      periastron,
		ImpactParameter: ImpactParameterFromPeriastron(periastron, bh.Mass),
		Radius:          radius,
	}
	if hi-lo > cfg.Tolerance {
		sol.Outcome = NotConverged
	}
	return sol
}

// EmissionRadius inverts the bending equation: it finds the disk radius whose
// image at the given order appears at impact parameter b and position angle
// alpha. The forward map radius -> impact parameter is monotonic within one
// image order, so the radius is bracketed over the disk extent and refined by
// bisection.
func (bh *BlackHole) EmissionRadius(b, inclination, alpha float64, order int, cfg SolverConfig) PathSolution {
	if b < bh.CriticalImpactParameter() {
		return PathSolution{Outcome: NoSolution}
	}

	lo, hi := bh.DiskInnerEdge(), bh.DiskOuterEdge()
	sHi := bh.SolvePeriastron(hi, inclination, alpha, order, cfg)
	if sHi.Outcome == NoSolution {
		return PathSolution{Outcome: NoSolution}
	}
	// Near the disk's near side the bending equation has no root below a
	// threshold radius, so the inner edge is not always a usable bracket
	// end. Scan coarsely for the smallest radius that still images.
	sLo := bh.SolvePeriastron(lo, inclination, alpha, order, cfg)
	for step := 0; sLo.Outcome == NoSolution && step < bracketScanSteps; step++ {
		lo = bh.DiskInnerEdge() +
			(hi-bh.DiskInnerEdge())*float64(step+1)/float64(bracketScanSteps)
		sLo = bh.SolvePeriastron(lo, inclination, alpha, order, cfg)
	}
	if sLo.Outcome == NoSolution {
		return PathSolution{Outcome: NoSolution}
	}
	fLo := sLo.ImpactParameter - b
	fHi := sHi.ImpactParameter - b
	if math.Signbit(fLo) == math.Signbit(fHi) {
		// The requested impact parameter lies outside the disk's image.
		return PathSolution{Outcome: NoSolution}
	}

	iters := 0
	last := sLo
	for hi-lo > cfg.Tolerance && iters < cfg.MaxIterations {
		mid := (lo + hi) / 2
		sMid := bh.SolvePeriastron(mid, inclination, alpha, order, cfg)
		if sMid.Outcome == NoSolution {
			// Inner failure inside a valid bracket: give up with the best
			// estimate so far rather than inventing a root.
			return PathSolution{
				Outcome:         NotConverged,
				Periastron:      last.Periastron,
				ImpactParameter: b,
				Radius:          (lo + hi) / 2,
			}
		}
		last = sMid
		fMid := sMid.ImpactParameter - b
		if math.Signbit(fLo) != math.Signbit(fMid) {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
		iters++
	}

	sol := PathSolution{
		Outcome:         Converged,
		Periastron:      last.Periastron,
		ImpactParameter: b,
		Radius:          (lo + hi) / 2,
	}
	if hi-lo > cfg.Tolerance {
		sol.Outcome = NotConverged
	}
	return sol
}
