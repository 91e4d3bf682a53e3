package render

import (
	"fmt"
	"math"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// Config contains the engine's sampling and output parameters.
type Config struct {
	Width  int // output image width in pixels
	Height int // output image height in pixels
	// Samples is the approximate number of flux samples evaluated per
	// image order. More samples means slower but better quality output.
	Samples int
	// MaxOrder is the highest image order sampled. Order 0 is the direct
	// image; each higher order adds one azimuthal winding around the hole.
	MaxOrder int
	// Seed drives the sample jitter. Runs with equal seeds place samples
	// identically, making output pixel-identical across reruns.
	Seed int64
	// NumWorkers is the number of parallel workers (0 = use CPU count).
	NumWorkers int
	// Solver holds the photon path solver's numerical parameters.
	Solver blackhole.SolverConfig
}

// DefaultConfig returns sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:      2048,
		Height:     1080,
		Samples:    200000,
		MaxOrder:   1,
		Seed:       1,
		NumWorkers: 0,
		Solver:     blackhole.DefaultSolverConfig(),
	}
}

// Validate reports the first invalid configuration value, if any.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("render: resolution must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Samples < 16 {
		return fmt.Errorf("render: need at least 16 samples per order, got %d", c.Samples)
	}
	if c.MaxOrder < 0 {
		return fmt.Errorf("render: max order must be non-negative, got %d", c.MaxOrder)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("render: worker count must be non-negative, got %d", c.NumWorkers)
	}
	return c.Solver.Validate()
}

// ValidateInclination checks that an inclination (radians) is within the
// supported range (0, 90] degrees. Exactly face-on is excluded by
// convention: the disk's projection degenerates there.
func ValidateInclination(inclination float64) error {
	if inclination <= 0 || inclination > math.Pi/2+1e-12 {
		return fmt.Errorf("render: inclination must be in (0, 90] degrees, got %v degrees",
			inclination*180/math.Pi)
	}
	return nil
}
