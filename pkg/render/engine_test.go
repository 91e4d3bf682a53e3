package render

import (
	"math"
	"testing"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// testLogger discards output so tests stay quiet.
type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func smallEngine(t *testing.T, width, height, samples int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Samples = samples
	engine, err := NewEngine(blackhole.Default(), cfg, testLogger{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -5 }},
		{"too few samples", func(c *Config) { c.Samples = 3 }},
		{"negative order", func(c *Config) { c.MaxOrder = -1 }},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }},
		{"bad solver", func(c *Config) { c.Solver.Tolerance = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if _, err := NewEngine(blackhole.Default(), cfg, nil); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateInclination(t *testing.T) {
	if err := ValidateInclination(0); err == nil {
		t.Error("exactly face-on inclination should be rejected")
	}
	if err := ValidateInclination(math.Pi/2 + 0.1); err == nil {
		t.Error("inclination beyond edge-on should be rejected")
	}
	if err := ValidateInclination(math.Pi / 2); err != nil {
		t.Errorf("edge-on inclination rejected: %v", err)
	}
	if err := ValidateInclination(80 * math.Pi / 180); err != nil {
		t.Errorf("80 degrees rejected: %v", err)
	}
}

func TestSamplePositionsDeterministic(t *testing.T) {
	bh := blackhole.Default()
	a := samplePositions(bh, 1000, 0, 42)
	b := samplePositions(bh, 1000, 0, 42)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs between identically seeded runs: %+v vs %+v", i, a[i], b[i])
		}
	}
	c := samplePositions(bh, 1000, 0, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical jitter")
	}
}

func TestSamplePositionsCoverEdges(t *testing.T) {
	bh := blackhole.Default()
	positions := samplePositions(bh, 500, 0, 1)
	onInner, onOuter := 0, 0
	for _, p := range positions {
		if p.Radius < bh.DiskInnerEdge() || p.Radius > bh.DiskOuterEdge() {
			t.Fatalf("position %+v outside the disk", p)
		}
		if p.Radius == bh.DiskInnerEdge() {
			onInner++
		}
		if p.Radius == bh.DiskOuterEdge() {
			onOuter++
		}
	}
	if onInner < 3 || onOuter < 3 {
		t.Errorf("edge rings too sparse: %d inner, %d outer", onInner, onOuter)
	}
}

func TestRenderSmallImage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping render in short mode")
	}
	engine := smallEngine(t, 128, 68, 4000)
	res, err := engine.Render(80 * math.Pi / 180)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if res.MaxFlux <= 0 {
		t.Fatal("expected positive maximum flux at 80 degrees")
	}

	nonZero := 0
	maxVal, maxX := 0.0, 0
	for y := 0; y < res.Grid.Height; y++ {
		for x := 0; x < res.Grid.Width; x++ {
			v := res.Grid.At(x, y)
			if v < 0 {
				t.Fatalf("negative flux %v at pixel (%d, %d)", v, x, y)
			}
			if math.IsNaN(v) {
				t.Fatalf("NaN flux at pixel (%d, %d)", x, y)
			}
			if v > 0 {
				nonZero++
			}
			if v > maxVal {
				maxVal, maxX = v, x
			}
		}
	}
	if nonZero == 0 {
		t.Fatal("rendered grid is entirely zero")
	}

	// The brightest pixel sits on the approaching (blue-shifted) side,
	// which the plate rotation puts on the left half.
	if maxX >= res.Grid.Width/2 {
		t.Errorf("brightest pixel at column %d, expected the left (approaching) half", maxX)
	}
}

func TestRenderDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping render in short mode")
	}
	run := func() *Result {
		engine := smallEngine(t, 64, 36, 2000)
		res, err := engine.Render(70 * math.Pi / 180)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return res
	}
	a, b := run(), run()
	if len(a.Grid.Values) != len(b.Grid.Values) {
		t.Fatal("grid sizes differ between reruns")
	}
	for i := range a.Grid.Values {
		if a.Grid.Values[i] != b.Grid.Values[i] {
			t.Fatalf("pixel %d differs between identically configured runs", i)
		}
	}
}

func TestRenderNearFaceOn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping render in short mode")
	}
	// Near the face-on limit the image collapses toward a narrow annulus;
	// the render must stay finite and normalizable.
	engine := smallEngine(t, 64, 64, 2000)
	res, err := engine.Render(1 * math.Pi / 180)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := GrayImage(res.Grid, res.MaxFlux)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected image bounds %v", img.Bounds())
	}
	for i := range res.Grid.Values {
		if math.IsNaN(res.Grid.Values[i]) || math.IsInf(res.Grid.Values[i], 0) {
			t.Fatalf("non-finite flux at pixel %d", i)
		}
	}
}

func TestGhostImageFainterThanDirect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping render in short mode")
	}
	// The ghost image is a compressed copy of the whole disk squeezed
	// against the photon ring; its brightest pixel must stay well below
	// the direct image's brightest pixel.
	engine := smallEngine(t, 128, 68, 4000)
	incl := 80 * math.Pi / 180
	res, err := engine.Render(incl)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	direct := engine.newOrderMask(incl, 0)
	ghost := engine.newOrderMask(incl, 1)

	maxDirectOnly, maxGhostOnly := 0.0, 0.0
	grid := res.Grid
	for row := 0; row < grid.Height; row++ {
		y := -float64(row-grid.Height/2) * grid.UnitsPerPixel
		for col := 0; col < grid.Width; col++ {
			x := float64(col-grid.Width/2) * grid.UnitsPerPixel
			b := math.Hypot(x, y)
			theta := math.Atan2(y, x)
			v := grid.At(col, row)
			inDirect := direct.contains(b, theta)
			inGhost := ghost.contains(b, theta)
			if inDirect && !inGhost && v > maxDirectOnly {
				maxDirectOnly = v
			}
			if inGhost && !inDirect && v > maxGhostOnly {
				maxGhostOnly = v
			}
		}
	}

	if maxGhostOnly <= 0 {
		t.Fatal("ghost image carries no flux at 80 degrees")
	}
	if maxGhostOnly >= maxDirectOnly {
		t.Errorf("ghost peak %v should be below direct peak %v", maxGhostOnly, maxDirectOnly)
	}
}
