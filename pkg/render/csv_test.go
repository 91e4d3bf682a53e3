package render

import (
	"strings"
	"testing"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

func TestWriteSamplesCSV(t *testing.T) {
	samples := []Sample{
		{Radius: 10, Alpha: 0.5, Order: 0, ImpactParameter: 8, Flux: 1e-10, Outcome: blackhole.Converged},
		{Radius: 20, Alpha: 1.5, Order: 1, Outcome: blackhole.NoSolution},
		{Radius: 30, Alpha: 2.5, Order: 0, ImpactParameter: 25, Flux: 2e-11, Outcome: blackhole.Converged},
	}
	var sb strings.Builder
	if err := WriteSamplesCSV(&sb, samples); err != nil {
		t.Fatalf("WriteSamplesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "x,y,r,b,alpha,order,flux" {
		t.Errorf("unexpected header %q", lines[0])
	}
	// Header plus the two solvable samples; the no-solution sample has no
	// plate position and is skipped.
	if len(lines) != 3 {
		t.Errorf("got %d lines, want 3", len(lines))
	}
}

func TestParallelChunksCoversAllIndices(t *testing.T) {
	const n = 1000
	hits := make([]int, n)
	stats := parallelChunks(n, 4, func(start, end int) Stats {
		for i := start; i < end; i++ {
			hits[i]++
		}
		return Stats{Samples: end - start}
	}, nil)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times, want exactly once", i, h)
		}
	}
	if stats.Samples != n {
		t.Errorf("merged stats count %d, want %d", stats.Samples, n)
	}
}
