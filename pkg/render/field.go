package render

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// barycentricSlack tolerates pixels landing exactly on a triangle edge.
const barycentricSlack = 1e-12

// Field is an immutable flux interpolant over a set of scattered plate
// points. It triangulates the points once and answers point queries with
// barycentric interpolation inside the containing triangle. Built once
// behind the sampling barrier, then only read, so it is safe to query from
// many goroutines.
//
// If the point set is too degenerate to triangulate (all collinear), the
// field falls back to nearest-sample lookup instead of failing the render.
type Field struct {
	points []delaunay.Point
	flux   []float64

	tri *delaunay.Triangulation

	// Uniform bucket grid over the point bounding box. For a triangulated
	// field buckets hold triangle indices; for a degraded field they hold
	// point indices.
	minX, minY float64
	cellSize   float64
	gridW      int
	gridH      int
	buckets    [][]int32
}

// NewField builds a flux field over the given plate points. Duplicate
// points are dropped before triangulating. At least three distinct points
// are required.
func NewField(points []delaunay.Point, flux []float64) (*Field, error) {
	if len(points) != len(flux) {
		return nil, fmt.Errorf("render: %d points but %d flux values", len(points), len(flux))
	}

	// Dedup exact duplicates: the triangulator rejects them and a jittered
	// sampler should essentially never produce them.
	seen := make(map[delaunay.Point]struct{}, len(points))
	dedupPoints := make([]delaunay.Point, 0, len(points))
	dedupFlux := make([]float64, 0, len(flux))
	for i, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		dedupPoints = append(dedupPoints, p)
		dedupFlux = append(dedupFlux, flux[i])
	}
	if len(dedupPoints) < 3 {
		return nil, fmt.Errorf("render: need at least 3 distinct points, got %d", len(dedupPoints))
	}

	f := &Field{points: dedupPoints, flux: dedupFlux}

	tri, err := delaunay.Triangulate(dedupPoints)
	if err != nil || len(tri.Triangles) == 0 {
		// Collinear or otherwise degenerate input: nearest-sample fallback.
		f.buildPointGrid()
		return f, nil
	}
	f.tri = tri
	f.buildTriangleGrid()
	return f, nil
}

// Degraded reports whether the field fell back to nearest-sample lookup.
func (f *Field) Degraded() bool {
	return f.tri == nil
}

// Interpolate returns the flux at plate point (x, y) and whether the point
// was covered. Points outside the triangulated hull (or, for a degraded
// field, outside the sampled bounding box) are uncovered.
func (f *Field) Interpolate(x, y float64) (float64, bool) {
	cx, cy, ok := f.cell(x, y)
	if !ok {
		return 0, false
	}
	if f.tri == nil {
		return f.nearest(x, y, cx, cy)
	}

	for _, t := range f.buckets[cy*f.gridW+cx] {
		i0 := f.tri.Triangles[3*t]
		i1 := f.tri.Triangles[3*t+1]
		i2 := f.tri.Triangles[3*t+2]
		w0, w1, w2, inside := barycentric(f.points[i0], f.points[i1], f.points[i2], x, y)
		if inside {
			return w0*f.flux[i0] + w1*f.flux[i1] + w2*f.flux[i2], true
		}
	}
	return 0, false
}

// cell maps a plate point to its bucket, reporting false outside the grid.
func (f *Field) cell(x, y float64) (int, int, bool) {
	cx := int((x - f.minX) / f.cellSize)
	cy := int((y - f.minY) / f.cellSize)
	if x < f.minX || y < f.minY || cx >= f.gridW || cy >= f.gridH {
		return 0, 0, false
	}
	return cx, cy, true
}

func (f *Field) bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range f.points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// initGrid sizes the bucket grid so it holds roughly `targetCells` buckets
// over the point bounding box.
func (f *Field) initGrid(targetCells int) {
	minX, minY, maxX, maxY := f.bounds()
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	f.minX, f.minY = minX, minY
	f.cellSize = math.Sqrt(w * h / float64(targetCells))
	f.gridW = int(w/f.cellSize) + 1
	f.gridH = int(h/f.cellSize) + 1
	f.buckets = make([][]int32, f.gridW*f.gridH)
}

func (f *Field) buildTriangleGrid() {
	numTriangles := len(f.tri.Triangles) / 3
	f.initGrid(max(1, numTriangles/4))

	for t := 0; t < numTriangles; t++ {
		p0 := f.points[f.tri.Triangles[3*t]]
		p1 := f.points[f.tri.Triangles[3*t+1]]
		p2 := f.points[f.tri.Triangles[3*t+2]]
		minX := math.Min(p0.X, math.Min(p1.X, p2.X))
		maxX := math.Max(p0.X, math.Max(p1.X, p2.X))
		minY := math.Min(p0.Y, math.Min(p1.Y, p2.Y))
		maxY := math.Max(p0.Y, math.Max(p1.Y, p2.Y))

		cx0 := int((minX - f.minX) / f.cellSize)
		cx1 := int((maxX - f.minX) / f.cellSize)
		cy0 := int((minY - f.minY) / f.cellSize)
		cy1 := int((maxY - f.minY) / f.cellSize)
		for cy := cy0; cy <= cy1 && cy < f.gridH; cy++ {
			for cx := cx0; cx <= cx1 && cx < f.gridW; cx++ {
				idx := cy*f.gridW + cx
				f.buckets[idx] = append(f.buckets[idx], int32(t))
			}
		}
	}
}

func (f *Field) buildPointGrid() {
	f.initGrid(max(1, len(f.points)/4))
	for i, p := range f.points {
		cx, cy, ok := f.cell(p.X, p.Y)
		if !ok {
			continue
		}
		idx := cy*f.gridW + cx
		f.buckets[idx] = append(f.buckets[idx], int32(i))
	}
}

// nearest finds the closest sample by scanning bucket rings outward from
// the query cell. Only used by degraded fields.
func (f *Field) nearest(x, y float64, cx, cy int) (float64, bool) {
	maxRing := f.gridW
	if f.gridH > maxRing {
		maxRing = f.gridH
	}
	bestDist := math.Inf(1)
	bestFlux := 0.0
	found := false
	for ring := 0; ring <= maxRing; ring++ {
		if found && ring > 1 {
			break
		}
		for cyi := cy - ring; cyi <= cy+ring; cyi++ {
			for cxi := cx - ring; cxi <= cx+ring; cxi++ {
				onRing := cyi == cy-ring || cyi == cy+ring || cxi == cx-ring || cxi == cx+ring
				if !onRing || cxi < 0 || cyi < 0 || cxi >= f.gridW || cyi >= f.gridH {
					continue
				}
				for _, i := range f.buckets[cyi*f.gridW+cxi] {
					p := f.points[i]
					d := (p.X-x)*(p.X-x) + (p.Y-y)*(p.Y-y)
					if d < bestDist {
						bestDist = d
						bestFlux = f.flux[i]
						found = true
					}
				}
			}
		}
	}
	return bestFlux, found
}

// barycentric computes the barycentric weights of (x, y) in triangle
// (p0, p1, p2) and whether the point lies inside it.
func barycentric(p0, p1, p2 delaunay.Point, x, y float64) (w0, w1, w2 float64, inside bool) {
	det := (p1.Y-p2.Y)*(p0.X-p2.X) + (p2.X-p1.X)*(p0.Y-p2.Y)
	if det == 0 {
		return 0, 0, 0, false
	}
	w0 = ((p1.Y-p2.Y)*(x-p2.X) + (p2.X-p1.X)*(y-p2.Y)) / det
	w1 = ((p2.Y-p0.Y)*(x-p2.X) + (p0.X-p2.X)*(y-p2.Y)) / det
	w2 = 1 - w0 - w1
	inside = w0 >= -barycentricSlack && w1 >= -barycentricSlack && w2 >= -barycentricSlack
	return w0, w1, w2, inside
}
