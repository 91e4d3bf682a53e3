package render

import (
	"math"
	"math/rand"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// position is a sample placement on the disk, before solving.
type position struct {
	Radius, Alpha float64
}

// samplePositions places roughly `samples` points over the disk annulus for
// one image order: a stratified grid in (radius, alpha) with seeded jitter
// inside each cell, plus unjittered rings pinned exactly to the disk's inner
// and outer edges. The edge rings guarantee the triangulation's hull covers
// the full projected disk, so interpolation never has to extrapolate.
func samplePositions(bh *blackhole.BlackHole, samples, order int, seed int64) []position {
	inner := bh.DiskInnerEdge()
	outer := bh.DiskOuterEdge()

	// The annulus is much wider in alpha than in radius; bias the strata
	// accordingly.
	numAlpha := int(math.Ceil(math.Sqrt(4 * float64(samples))))
	numRadius := (samples + numAlpha - 1) / numAlpha
	if numRadius < 2 {
		numRadius = 2
	}

	rng := rand.New(rand.NewSource(seed + int64(order)*1000003))
	dr := (outer - inner) / float64(numRadius)
	da := 2 * math.Pi / float64(numAlpha)

	positions := make([]position, 0, numRadius*numAlpha+2*numAlpha)
	for ir := 0; ir < numRadius; ir++ {
		for ia := 0; ia < numAlpha; ia++ {
			positions = append(positions, position{
				Radius: inner + (float64(ir)+rng.Float64())*dr,
				Alpha:  (float64(ia) + rng.Float64()) * da,
			})
		}
	}
	for ia := 0; ia < numAlpha; ia++ {
		alpha := float64(ia) * da
		positions = append(positions, position{Radius: inner, Alpha: alpha})
		positions = append(positions, position{Radius: outer, Alpha: alpha})
	}
	return positions
}
