package gate

import (
	"fmt"
	"strings"
	"time"
)

// Stats accumulates the cumulative counters a caller can report back to
// the solver (total time, literals removed, clauses
// shortened/removed, variables added/replaced) plus the per-pass
// figures a verbose banner would report. All fields are monotonically
// non-decreasing across calls to Add.
type Stats struct {
	GatesFound       int
	LearntGatesFound int

	VarsAdded    int
	VarsReplaced int

	GateLitsRemoved   int
	NumOrGateReplaced int

	AndGateNumFound  int
	AndGateTotalSize int

	TotalTime time.Duration
}

// Add accumulates other into s in place, keeping every counter
// monotonically non-decreasing.
func (s *Stats) Add(other Stats) {
	s.GatesFound += other.GatesFound
	s.LearntGatesFound += other.LearntGatesFound
	s.VarsAdded += other.VarsAdded
	s.VarsReplaced += other.VarsReplaced
	s.GateLitsRemoved += other.GateLitsRemoved
	s.NumOrGateReplaced += other.NumOrGateReplaced
	s.AndGateNumFound += other.AndGateNumFound
	s.AndGateTotalSize += other.AndGateTotalSize
	s.TotalTime += other.TotalTime
}

// String renders a block of "c ..." banner lines, one per counter group,
// in the spirit of a verbosity >= 1 pass report: average AND-gate size, and the cumulative counters a
// caller would want logged at pass completion. Printing is left to the
// caller (the CLI driver), not baked into the pass functions themselves,
// so the package stays usable as a library.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "c gates found: %d (%d learnt)\n", s.GatesFound, s.LearntGatesFound)
	fmt.Fprintf(&b, "c vars added: %d, vars replaced: %d\n", s.VarsAdded, s.VarsReplaced)
	fmt.Fprintf(&b, "c OR-based cl-sh: %d, lits removed: %d\n", s.NumOrGateReplaced, s.GateLitsRemoved)
	avgAndSize := 0.0
	if s.AndGateNumFound > 0 {
		avgAndSize = float64(s.AndGateTotalSize) / float64(s.AndGateNumFound)
	}
	fmt.Fprintf(&b, "c AND-gate rem: %d, avg size: %.2f\n", s.AndGateNumFound, avgAndSize)
	fmt.Fprintf(&b, "c time: %s\n", s.TotalTime)
	return b.String()
}
