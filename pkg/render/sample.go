package render

import (
	"math"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// Sample is one solved flux evaluation: a point on the disk together with
// where its image lands on the observer's plate and how bright it appears.
type Sample struct {
	// Radius of the emission point in the black hole's frame.
	Radius float64
	// Alpha is the position angle of the emission point, shared between the
	// black hole's and the observer's frames.
	Alpha float64
	// Order of the image this sample belongs to (0 = direct, 1+ = ghost).
	Order int
	// ImpactParameter is the radial plate coordinate of the sample.
	ImpactParameter float64
	// Redshift is the factor 1+z between emission and observation.
	Redshift float64
	// Flux is the observed bolometric flux; zero when Outcome is NoSolution.
	Flux float64
	// Outcome records how the path solve ended.
	Outcome blackhole.Outcome
}

// ObserverPosition returns the sample's plate coordinates with the plate
// rotated by -90 degrees, so the disk's near side faces down. Ghost orders
// appear vertically flipped.
func (s Sample) ObserverPosition() (x, y float64) {
	x = s.ImpactParameter * math.Sin(s.Alpha)
	y = -s.ImpactParameter * math.Cos(s.Alpha)
	if s.Order > 0 {
		y = -y
	}
	return x, y
}
