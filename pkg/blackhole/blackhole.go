// Package blackhole models a non-rotating black hole with a geometrically
// thin accretion disk and solves the bending of light emitted by the disk,
// following the closed-form equations of Luminet (1979).
package blackhole

import (
	"fmt"
	"math"
)

// Default parameter values, in geometric units of the black hole mass.
const (
	DefaultAccretionRate = 1e-7
	DefaultDiskOuterEdge = 50.0
)

// BlackHole is a Schwarzschild black hole with a thin accretion disk in its
// equatorial plane.
type BlackHole struct {
	// Mass of the black hole, setting the length scale of everything else.
	Mass float64
	// AccretionRate sets the overall scale of the disk's emitted flux.
	AccretionRate float64

	diskOuterEdge float64 // in units of mass
}

// New creates a black hole with the given mass, accretion rate and disk
// outer edge (in units of mass). The outer edge must lie beyond the
// innermost stable orbit at 6M.
func New(mass, accretionRate, diskOuterEdge float64) (*BlackHole, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("blackhole: mass must be positive, got %v", mass)
	}
	if accretionRate <= 0 {
		return nil, fmt.Errorf("blackhole: accretion rate must be positive, got %v", accretionRate)
	}
	if diskOuterEdge <= 6 {
		return nil, fmt.Errorf("blackhole: disk outer edge must exceed 6 (units of mass), got %v", diskOuterEdge)
	}
	return &BlackHole{
		Mass:          mass,
		AccretionRate: accretionRate,
		diskOuterEdge: diskOuterEdge,
	}, nil
}

// Default returns a unit-mass black hole with the default accretion rate and
// disk extent.
func Default() *BlackHole {
	return &BlackHole{
		Mass:          1,
		AccretionRate: DefaultAccretionRate,
		diskOuterEdge: DefaultDiskOuterEdge,
	}
}

// CriticalImpactParameter returns the photon capture radius 3*sqrt(3)*M.
// Photons arriving with a smaller impact parameter fall into the hole.
func (bh *BlackHole) CriticalImpactParameter() float64 {
	return 3 * math.Sqrt(3) * bh.Mass
}

// DiskInnerEdge returns the radius of the disk's inner edge, the innermost
// stable circular orbit at 6M.
func (bh *BlackHole) DiskInnerEdge() float64 {
	return 6 * bh.Mass
}

// DiskOuterEdge returns the radius of the disk's outer edge.
func (bh *BlackHole) DiskOuterEdge() float64 {
	return bh.diskOuterEdge * bh.Mass
}
