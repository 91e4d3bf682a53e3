package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
)

// WriteSamplesCSV dumps raw samples as CSV for validation of the solver's
// curves against the paper's published figures. No-solution samples are
// skipped: they have no plate position.
func WriteSamplesCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "r", "b", "alpha", "order", "flux"}); err != nil {
		return fmt.Errorf("render: writing csv header: %w", err)
	}
	for _, s := range samples {
		if s.Outcome == blackhole.NoSolution {
			continue
		}
		x, y := s.ObserverPosition()
		record := []string{
			strconv.FormatFloat(x, 'g', -1, 64),
			strconv.FormatFloat(y, 'g', -1, 64),
			strconv.FormatFloat(s.Radius, 'g', -1, 64),
			strconv.FormatFloat(s.ImpactParameter, 'g', -1, 64),
			strconv.FormatFloat(s.Alpha, 'g', -1, 64),
			strconv.Itoa(s.Order),
			strconv.FormatFloat(s.Flux, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("render: writing csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
