package render

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// Engine produces full-resolution flux grids for a black hole at a chosen
// inclination. Sample evaluation and per-pixel interpolation both run on a
// fixed worker pool; each worker writes only to its own slots.
type Engine struct {
	bh     *blackhole.BlackHole
	config Config
	logger Logger

	// Progress, if set, receives advisory per-stage progress updates. It is
	// called from a single goroutine and must not block for long.
	Progress func(stage string, done, total int)
}

// FluxGrid is the dense per-pixel flux field produced by a render.
type FluxGrid struct {
	Width, Height int
	Values        []float64 // row-major, Width*Height
	// UnitsPerPixel converts pixel distance to plate units (black hole
	// masses). The plate origin sits at the image center.
	UnitsPerPixel float64
}

// At returns the flux at pixel (x, y).
func (g *FluxGrid) At(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Result bundles a rendered flux grid with its samples and diagnostics.
type Result struct {
	Grid *FluxGrid
	// Samples holds every evaluated sample across all image orders,
	// including no-solution ones (with zero flux).
	Samples []Sample
	// MaxFlux is the largest observed flux among all samples, the default
	// normalization scale.
	MaxFlux float64
	Stats   Stats
}

// NewEngine validates the configuration and creates an engine.
func NewEngine(bh *blackhole.BlackHole, config Config, logger Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Engine{bh: bh, config: config, logger: logger}, nil
}

// Render samples the disk's flux at the given inclination (radians), builds
// one triangulation per image order, and interpolates flux onto the pixel
// grid. Contributions from all image orders are summed per pixel.
func (e *Engine) Render(inclination float64) (*Result, error) {
	if err := ValidateInclination(inclination); err != nil {
		return nil, err
	}

	numOrders := e.config.MaxOrder + 1
	allSamples := make([]Sample, 0, numOrders*e.config.Samples)
	fields := make([]*Field, 0, numOrders)
	masks := make([]orderMask, 0, numOrders)
	var stats Stats

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	maxFlux := 0.0

	for order := 0; order < numOrders; order++ {
		samples, orderStats := e.sampleOrder(inclination, order)
		stats.merge(orderStats)
		allSamples = append(allSamples, samples...)

		points := make([]delaunay.Point, 0, len(samples))
		flux := make([]float64, 0, len(samples))
		for _, s := range samples {
			if s.Outcome == blackhole.NoSolution {
				continue
			}
			x, y := s.ObserverPosition()
			points = append(points, delaunay.Point{X: x, Y: y})
			flux = append(flux, s.Flux)
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
			if s.Flux > maxFlux {
				maxFlux = s.Flux
			}
		}

		field, err := NewField(points, flux)
		if err != nil {
			return nil, err
		}
		if field.Degraded() {
			e.logger.Printf("order %d: triangulation degenerate, falling back to nearest-sample interpolation\n", order)
		}
		fields = append(fields, field)
		masks = append(masks, e.newOrderMask(inclination, order))
	}

	grid := &FluxGrid{
		Width:  e.config.Width,
		Height: e.config.Height,
		Values: make([]float64, e.config.Width*e.config.Height),
		// Fit the full sampled extent into the image width; pixels stay
		// square so the vertical extent follows the aspect ratio.
		UnitsPerPixel: (maxX - minX) / float64(e.config.Width),
	}
	rasterStats := e.rasterize(grid, fields, masks)
	stats.merge(rasterStats)

	e.logger.Printf("render complete: %s\n", stats.Summary())

	return &Result{
		Grid:    grid,
		Samples: allSamples,
		MaxFlux: maxFlux,
		Stats:   stats,
	}, nil
}

// sampleOrder evaluates the path solver and flux model over the sample
// placement of one image order, in parallel.
func (e *Engine) sampleOrder(inclination float64, order int) ([]Sample, Stats) {
	positions := samplePositions(e.bh, e.config.Samples, order, e.config.Seed)
	samples := make([]Sample, len(positions))

	stage := fmt.Sprintf("sampling order %d", order)
	progress := func(done, total int) {
		if e.Progress != nil {
			e.Progress(stage, done, total)
		}
	}
	stats := parallelChunks(len(positions), e.config.NumWorkers, func(start, end int) Stats {
		var s Stats
		for i := start; i < end; i++ {
			samples[i] = e.evaluate(inclination, positions[i], order)
			s.Samples++
			switch samples[i].Outcome {
			case blackhole.Converged:
				s.Converged++
			case blackhole.NoSolution:
				s.NoSolution++
			case blackhole.NotConverged:
				s.NonConverged++
			}
		}
		return s
	}, progress)

	return samples, stats
}

// evaluate runs the path solver and flux model for one sample position.
// No-solution outcomes carry zero flux; non-converged solves keep the
// solver's best estimate and are surfaced through the stats.
func (e *Engine) evaluate(inclination float64, pos position, order int) Sample {
	sol := e.bh.SolvePeriastron(pos.Radius, inclination, pos.Alpha, order, e.config.Solver)
	s := Sample{
		Radius:  pos.Radius,
		Alpha:   pos.Alpha,
		Order:   order,
		Outcome: sol.Outcome,
	}
	if sol.Outcome == blackhole.NoSolution {
		return s
	}
	s.ImpactParameter = sol.ImpactParameter
	s.Redshift = e.bh.RedshiftFactor(pos.Radius, pos.Alpha, inclination, sol.ImpactParameter)
	s.Flux = e.bh.ObservedFlux(pos.Radius, pos.Alpha, inclination, sol.ImpactParameter)
	return s
}

// orderMask bounds one image order's contribution to the annulus between
// the apparent images of the disk's inner and outer edges. Without it the
// triangulation would smear flux across the central shadow, which the
// convex hull necessarily covers.
type orderMask struct {
	order        int
	inner, outer edgeCurve
	captureB     float64
}

func (e *Engine) newOrderMask(inclination float64, order int) orderMask {
	return orderMask{
		order:    order,
		inner:    newEdgeCurve(e.bh, e.bh.DiskInnerEdge(), order, inclination, e.config.Solver),
		outer:    newEdgeCurve(e.bh, e.bh.DiskOuterEdge(), order, inclination, e.config.Solver),
		captureB: e.bh.CriticalImpactParameter(),
	}
}

// contains reports whether the plate point at impact parameter b and plate
// angle theta can carry flux from this order. The plate is rotated -90
// degrees and ghost orders are vertically flipped, so the position angle is
// recovered accordingly.
func (m orderMask) contains(b, theta float64) bool {
	if b < m.captureB {
		return false
	}
	var alpha float64
	if m.order == 0 {
		alpha = theta + math.Pi/2
	} else {
		alpha = math.Pi/2 - theta
	}
	return b > m.inner.At(alpha) && b <= m.outer.At(alpha)
}

// rasterize interpolates every order's field onto the pixel grid, summing
// the orders per pixel. Rows are distributed across the worker pool; the
// fields and masks are only read.
func (e *Engine) rasterize(grid *FluxGrid, fields []*Field, masks []orderMask) Stats {
	width, height := grid.Width, grid.Height
	progress := func(done, total int) {
		if e.Progress != nil {
			e.Progress("rendering", done*width, total*width)
		}
	}

	return parallelChunks(height, e.config.NumWorkers, func(startRow, endRow int) Stats {
		var s Stats
		for row := startRow; row < endRow; row++ {
			y := -float64(row-height/2) * grid.UnitsPerPixel
			for col := 0; col < width; col++ {
				x := float64(col-width/2) * grid.UnitsPerPixel
				b := math.Hypot(x, y)
				theta := math.Atan2(y, x)

				total := 0.0
				for i, field := range fields {
					if !masks[i].contains(b, theta) {
						continue
					}
					flux, ok := field.Interpolate(x, y)
					if !ok {
						s.OutsideHull++
						continue
					}
					total += flux
				}
				grid.Values[row*width+col] = total
			}
		}
		return s
	}, progress)
}
