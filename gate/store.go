package gate

import (
	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Store holds discovered gates plus two reverse indexes. It never
// erases a gate's slot on removal: gate IDs remain
// valid (and postings in the reverse indexes remain valid) for the
// lifetime of a pass, because other components (Applier, WriteDot) hold
// onto GateIDs across mutations.
type Store struct {
	gates []OrGate

	byOutput [][]GateID // indexed by sat.Lit.Index(), every gate
	byInput  [][]GateID // indexed by sat.Lit.Index(), non-learnt gates only

	dontElim []bool // indexed by sat.Var, persists across Clear
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) ensureLit(l sat.Lit) {
	for len(s.byOutput) <= l.Index() {
		s.byOutput = append(s.byOutput, nil)
		s.byInput = append(s.byInput, nil)
	}
}

func (s *Store) ensureVar(v sat.Var) {
	for len(s.dontElim) <= int(v) {
		s.dontElim = append(s.dontElim, false)
	}
}

// DontEliminate reports whether v must never be eliminated, because it is
// (or was) the output of some gate. This bit persists across Clear for
// the lifetime of the solver, independently of any one gate-store
// generation.
func (s *Store) DontEliminate(v sat.Var) bool {
	if int(v) >= len(s.dontElim) {
		return false
	}
	return s.dontElim[v]
}

// HasIdenticalGate reports whether some gate already indexed under
// output's postings has the same input set as inputs, the dedup check
// required before inserting a newly recognized gate.
func (s *Store) HasIdenticalGate(output sat.Lit, inputs []sat.Lit) bool {
	if output.Index() >= len(s.byOutput) {
		return false
	}
	for _, id := range s.byOutput[output.Index()] {
		if sameInputSet(s.gates[id].Inputs, inputs) {
			return true
		}
	}
	return false
}

// Add appends g, updates the output index unconditionally and the input
// index only if g is non-learnt (learnt inputs must not enable
// non-learnt contractions), and sets dont_eliminate on g's output
// variable.
func (s *Store) Add(g OrGate) GateID {
	id := GateID(len(s.gates))
	s.gates = append(s.gates, g)

	s.ensureLit(g.Output)
	s.byOutput[g.Output.Index()] = append(s.byOutput[g.Output.Index()], id)

	if !g.Learnt {
		for _, in := range g.Inputs {
			s.ensureLit(in)
			s.byInput[in.Index()] = append(s.byInput[in.Index()], id)
		}
	}

	s.ensureVar(g.Output.Var())
	s.dontElim[g.Output.Var()] = true

	return id
}

// Gate returns the gate stored at id, including removed gates.
func (s *Store) Gate(id GateID) OrGate { return s.gates[id] }

// MarkRemoved tombstones id; it is skipped by ForEachLive but remains in
// storage so earlier reverse-index postings stay valid.
func (s *Store) MarkRemoved(id GateID) { s.gates[id].Removed = true }

// ByOutput returns the (possibly tombstoned) gate IDs indexed under l.
func (s *Store) ByOutput(l sat.Lit) []GateID {
	if l.Index() >= len(s.byOutput) {
		return nil
	}
	return s.byOutput[l.Index()]
}

// ByInput returns the non-learnt gate IDs whose input set contains l.
func (s *Store) ByInput(l sat.Lit) []GateID {
	if l.Index() >= len(s.byInput) {
		return nil
	}
	return s.byInput[l.Index()]
}

// ForEachLive calls fn once for every gate with Removed == false, in
// insertion order.
func (s *Store) ForEachLive(fn func(GateID, OrGate)) {
	for i, g := range s.gates {
		if !g.Removed {
			fn(GateID(i), g)
		}
	}
}

// NumLive returns the number of gates with Removed == false.
func (s *Store) NumLive() int {
	n := 0
	for _, g := range s.gates {
		if !g.Removed {
			n++
		}
	}
	return n
}

// Clear empties the store, both reverse indexes, and clears
// def_of_or_gate on every clause in sub: it wipes the gate store and
// clears def_of_or_gate on all clauses. Passing a nil sub skips the
// subsumer side-effect (useful for Store-only tests). dont_eliminate bits
// are NOT cleared: they persist for the lifetime of the solver,
// independently of any one gate-store generation.
func (s *Store) Clear(sub *subsumer.Subsumer) {
	s.gates = s.gates[:0]
	for i := range s.byOutput {
		s.byOutput[i] = nil
	}
	for i := range s.byInput {
		s.byInput[i] = nil
	}
	if sub != nil {
		sub.ClearDefOfOrGate()
	}
}

// StoreStats is a debug snapshot of the store's reverse-index occupancy
// and live/total gate counts.
type StoreStats struct {
	LiveGates        int
	TotalGates       int
	ByOutputPostings int
	ByInputPostings  int
}

// DebugStats reports the total postings in both reverse indexes and the
// count of live gates.
func (s *Store) DebugStats() StoreStats {
	st := StoreStats{TotalGates: len(s.gates), LiveGates: s.NumLive()}
	for _, postings := range s.byOutput {
		st.ByOutputPostings += len(postings)
	}
	for _, postings := range s.byInput {
		st.ByInputPostings += len(postings)
	}
	return st
}
