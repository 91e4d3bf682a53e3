package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/fogleman/delaunay"
)

func TestFieldReproducesLinearFunction(t *testing.T) {
	// Barycentric interpolation is exact for affine functions, so a field
	// sampled from flux = 1 + 2x - 3y must reproduce it at interior points.
	rng := rand.New(rand.NewSource(7))
	affine := func(x, y float64) float64 { return 1 + 2*x - 3*y }

	points := make([]delaunay.Point, 0, 204)
	flux := make([]float64, 0, 204)
	// Corners guarantee the unit square is inside the hull.
	for _, p := range []delaunay.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		points = append(points, p)
		flux = append(flux, affine(p.X, p.Y))
	}
	for i := 0; i < 200; i++ {
		p := delaunay.Point{X: rng.Float64(), Y: rng.Float64()}
		points = append(points, p)
		flux = append(flux, affine(p.X, p.Y))
	}

	field, err := NewField(points, flux)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if field.Degraded() {
		t.Fatal("field unexpectedly degraded")
	}

	for i := 0; i < 100; i++ {
		x, y := rng.Float64(), rng.Float64()
		got, ok := field.Interpolate(x, y)
		if !ok {
			t.Fatalf("point (%v, %v) inside the hull not covered", x, y)
		}
		want := affine(x, y)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("flux at (%v, %v) = %v, want %v", x, y, got, want)
		}
	}
}

func TestFieldOutsideHull(t *testing.T) {
	points := []delaunay.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	field, err := NewField(points, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if _, ok := field.Interpolate(5, 5); ok {
		t.Error("point far outside the hull reported as covered")
	}
}

func TestFieldDedupsAndRejectsTinyInput(t *testing.T) {
	dup := delaunay.Point{X: 1, Y: 2}
	if _, err := NewField([]delaunay.Point{dup, dup, dup}, []float64{1, 2, 3}); err == nil {
		t.Error("three identical points should be rejected after dedup")
	}
	if _, err := NewField([]delaunay.Point{{X: 0, Y: 0}}, []float64{1, 2}); err == nil {
		t.Error("mismatched points/flux lengths should be rejected")
	}
}

func TestFieldCollinearFallback(t *testing.T) {
	// All points on a line: triangulation is impossible, the field must
	// degrade to nearest-sample lookup instead of failing.
	points := make([]delaunay.Point, 10)
	flux := make([]float64, 10)
	for i := range points {
		points[i] = delaunay.Point{X: float64(i), Y: float64(i)}
		flux[i] = float64(i * 10)
	}
	field, err := NewField(points, flux)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	if !field.Degraded() {
		t.Fatal("collinear input should degrade the field")
	}
	got, ok := field.Interpolate(3.1, 3.1)
	if !ok {
		t.Fatal("query near samples not covered by nearest fallback")
	}
	if got != 30 {
		t.Errorf("nearest flux = %v, want 30", got)
	}
}
