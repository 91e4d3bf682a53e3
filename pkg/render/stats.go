package render

import "fmt"

// Stats summarizes solver and interpolation outcomes across a render.
type Stats struct {
	Samples      int // flux samples evaluated
	Converged    int // samples whose path solve converged
	NoSolution   int // samples with no physical photon path (zero flux)
	NonConverged int // samples that exhausted the iteration budget
	OutsideHull  int // pixels inside the disk mask but outside every triangulation
}

// merge accumulates another stats block into this one.
func (s *Stats) merge(o Stats) {
	s.Samples += o.Samples
	s.Converged += o.Converged
	s.NoSolution += o.NoSolution
	s.NonConverged += o.NonConverged
	s.OutsideHull += o.OutsideHull
}

// Summary formats the stats for end-of-run diagnostics.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d samples (%d converged, %d no solution, %d not converged), %d pixels outside hull",
		s.Samples, s.Converged, s.NoSolution, s.NonConverged, s.OutsideHull)
}
