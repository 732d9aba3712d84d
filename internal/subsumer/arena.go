package subsumer

import (
	"math"

	"github.com/cnfopt/gatefinder/internal/sat"
)

// ClauseIndex is an opaque, arena-stable identifier for a clause held by
// the subsumer. Arena compaction, if it ever happens, is assumed to
// occur only between passes.
type ClauseIndex int

// ClauseData is the parallel per-clause bookkeeping: the abstraction
// signature, cached size, and the def_of_or_gate flag that shields a
// gate's defining clause from shortening/removal.
type ClauseData struct {
	Abst        Abst
	Size        int
	DefOfOrGate bool
}

// Subsumer owns the clause arena, the occurrence lists, the abstraction
// array, and the seen/seen2 scratch bitmaps the gate subsystem borrows
// during its preprocessing passes.
type Subsumer struct {
	clauses    []*sat.Clause
	clauseData []ClauseData
	occur      [][]ClauseIndex

	seen  scratch
	seen2 scratch

	budget *int64
}

// New returns an empty subsumer.
func New() *Subsumer {
	return &Subsumer{
		seen:  scratch{stamp: 1},
		seen2: scratch{stamp: 1},
	}
}

// Grow extends the subsumer's per-literal bookkeeping to cover one more
// variable (two more literals). Callers must call this once for every
// sat.Solver.NewVar() call so that occurrence lists and scratch bitmaps
// stay in lockstep with the variable universe.
func (s *Subsumer) Grow() {
	s.occur = append(s.occur, nil, nil)
	s.seen.Grow()
	s.seen.Grow()
	s.seen2.Grow()
	s.seen2.Grow()
}

// SetBudget points the subsumer's shared budget counter at b. All
// budget-consuming operations decrement *b; the caller checks *b < 0 to
// detect exhaustion.
func (s *Subsumer) SetBudget(b *int64) { s.budget = b }

// Spend decrements the shared budget counter by n, if one is set.
func (s *Subsumer) Spend(n int64) {
	if s.budget != nil {
		*s.budget -= n
	}
}

// BudgetLeft returns the current value of the shared budget counter, or
// math.MaxInt64 if none is set (unbounded).
func (s *Subsumer) BudgetLeft() int64 {
	if s.budget == nil {
		return math.MaxInt64
	}
	return *s.budget
}

// NumClauses returns the size of the clause arena, including tombstoned
// (removed) slots.
func (s *Subsumer) NumClauses() int { return len(s.clauses) }

// Clause returns the clause at idx, or nil if it has been unlinked.
func (s *Subsumer) Clause(idx ClauseIndex) *sat.Clause { return s.clauses[idx] }

// Data returns the cached bookkeeping for the clause at idx.
func (s *Subsumer) Data(idx ClauseIndex) ClauseData { return s.clauseData[idx] }

// SetDefOfOrGate marks/unmarks the clause at idx as currently serving as
// the defining long clause of a gate.
func (s *Subsumer) SetDefOfOrGate(idx ClauseIndex, b bool) {
	s.clauseData[idx].DefOfOrGate = b
}

// ClearDefOfOrGate clears the flag on every clause in the arena, used by
// gate.Store.Clear.
func (s *Subsumer) ClearDefOfOrGate() {
	for i := range s.clauseData {
		s.clauseData[i].DefOfOrGate = false
	}
}

// Occur returns the occurrence list of clauses containing literal l.
// Callers must not mutate the returned slice.
func (s *Subsumer) Occur(l sat.Lit) []ClauseIndex { return s.occur[l] }

// LinkInClause adds c to the arena, indexing it by every literal it
// contains, and returns its stable index.
func (s *Subsumer) LinkInClause(c *sat.Clause) ClauseIndex {
	idx := ClauseIndex(len(s.clauses))
	s.clauses = append(s.clauses, c)
	s.clauseData = append(s.clauseData, ClauseData{
		Abst: Calc(c.Lits()),
		Size: c.Len(),
	})
	for _, l := range c.Lits() {
		s.occur[l] = append(s.occur[l], idx)
	}
	return idx
}

// UnlinkClause removes the clause at idx from every occurrence list it is
// part of, tombstones its arena slot, and frees its backing storage.
func (s *Subsumer) UnlinkClause(idx ClauseIndex) {
	c := s.clauses[idx]
	if c == nil {
		return // already unlinked
	}
	for _, l := range c.Lits() {
		occ := s.occur[l]
		for i, o := range occ {
			if o == idx {
				occ[i] = occ[len(occ)-1]
				occ = occ[:len(occ)-1]
				break
			}
		}
		s.occur[l] = occ
	}
	c.Free()
	s.clauses[idx] = nil
	s.clauseData[idx] = ClauseData{}
}

// FindSubsumed0 appends to out the index of every live clause C in the
// arena such that lits ⊆ C (i.e. the clause represented by lits subsumes
// C), other than a clause identical in content to lits itself. abst must
// be Calc(lits). It scans the occurrence list of the least-frequent
// literal in lits for efficiency, the way classical subsumption search
// picks its pivot literal.
func (s *Subsumer) FindSubsumed0(lits []sat.Lit, abst Abst, out *[]ClauseIndex) {
	if len(lits) == 0 {
		return
	}

	pivot := lits[0]
	for _, l := range lits[1:] {
		if len(s.occur[l]) < len(s.occur[pivot]) {
			pivot = l
		}
	}

	cand := s.occur[pivot]
	s.Spend(int64(len(cand)))
	for _, idx := range cand {
		c := s.clauses[idx]
		if c == nil {
			continue
		}
		if !CouldBeSubsetOf(abst, s.clauseData[idx].Abst) {
			continue
		}
		if c.Len() < len(lits) {
			continue
		}
		if c.Len() == len(lits) {
			// Same size: only a genuine superset (i.e. an identical
			// clause) can subsume; skip clauses identical to lits so a
			// gate/candidate is never reported as subsuming itself.
			if sameLiterals(c.Lits(), lits) {
				continue
			}
		}
		if containsAll(c, lits) {
			*out = append(*out, idx)
		}
	}
}

func containsAll(c *sat.Clause, lits []sat.Lit) bool {
	for _, l := range lits {
		if !c.Contains(l) {
			return false
		}
	}
	return true
}

func sameLiterals(a, b []sat.Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for _, l := range b {
		found := false
		for _, m := range a {
			if m == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Seen returns the seen scratch bit for literal l.
func (s *Subsumer) Seen(l sat.Lit) bool { return s.seen.Get(l.Index()) }

// SetSeen sets the seen scratch bit for literal l.
func (s *Subsumer) SetSeen(l sat.Lit) { s.seen.Set(l.Index()) }

// ResetSeen clears every seen bit set since the last reset.
func (s *Subsumer) ResetSeen() { s.seen.Reset() }

// Seen2 returns the seen2 scratch bit for literal l.
func (s *Subsumer) Seen2(l sat.Lit) bool { return s.seen2.Get(l.Index()) }

// SetSeen2 sets the seen2 scratch bit for literal l.
func (s *Subsumer) SetSeen2(l sat.Lit) { s.seen2.Set(l.Index()) }

// ResetSeen2 clears every seen2 bit set since the last reset.
func (s *Subsumer) ResetSeen2() { s.seen2.Reset() }
