// Package gate implements the gate-oriented simplification engine: OR-gate
// discovery, extended-resolution synthesis of new gates, and the three
// gate-driven clause rewrites (shortening, AND-gate contraction, and
// equivalence detection). It consumes the solver-core and subsumer
// collaborators concretized in internal/sat and internal/subsumer.
package gate

import (
	"sort"

	"github.com/cnfopt/gatefinder/internal/sat"
)

// GateID is a stable index into a Store's gate slice. IDs are never
// reused or renumbered between two calls to Store.Clear; mark_removed only
// tombstones an entry. Clear empties the slice, so IDs restart at 0 after
// it.
type GateID int

// OrGate records the Boolean identity output ⇔ (inputs[0] ∨ inputs[1] ∨ …).
type OrGate struct {
	Inputs  []sat.Lit
	Output  sat.Lit
	Learnt  bool
	Removed bool
}

// sameInputSet reports whether a and b contain the same literals,
// irrespective of order. Two gates built from the same clause by
// different code paths may list their inputs in different orders, so
// dedup compares input sets rather than input sequences.
func sameInputSet(a, b []sat.Lit) bool {
	if len(a) != len(b) {
		return false
	}
	ac := append([]sat.Lit(nil), a...)
	bc := append([]sat.Lit(nil), b...)
	sort.Slice(ac, func(i, j int) bool { return ac[i] < ac[j] })
	sort.Slice(bc, func(i, j int) bool { return bc[i] < bc[j] })
	for i := range ac {
		if ac[i] != bc[i] {
			return false
		}
	}
	return true
}

// NewGateCandidate is a speculative gate the Synthesizer is considering
// materializing. Candidates exist only within one synthesis pass.
type NewGateCandidate struct {
	Lit1           sat.Lit
	Lit2           sat.Lit
	NumClRemovable int
	Potential      int
}

// priority returns the yagh.IntMap priority for c: lower values pop
// first, so this is the negation of the (potential, num_cl_removable)
// benefit pair, collapsed to a single float64 key.
func (c NewGateCandidate) priority() float64 {
	return -(float64(c.Potential)*1e9 + float64(c.NumClRemovable))
}
