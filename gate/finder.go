package gate

import (
	"time"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Finder discovers OR-gates already implied by the current clause set.
type Finder struct {
	solver *sat.Solver
	sub    *subsumer.Subsumer
	store  *Store
	cfg    Config
}

// NewFinder returns a Finder operating over solver, sub, and store.
func NewFinder(solver *sat.Solver, sub *subsumer.Subsumer, store *Store, cfg Config) *Finder {
	return &Finder{solver: solver, sub: sub, store: store, cfg: cfg}
}

// FindOrGates scans every non-null clause in the arena not larger than
// cfg.MaxGateSize and, if allowLearntGates is false, not learnt, and
// attempts to recognize each as the defining clause of a gate (spec
// §4.2's find_or_gates). The pass is budgeted by cfg.BudgetFindOrGates
// and aborts cleanly (without error) if the budget is exhausted.
func (f *Finder) FindOrGates(allowLearntGates bool) Stats {
	start := time.Now()
	budget := f.cfg.BudgetFindOrGates
	f.sub.SetBudget(&budget)

	var st Stats
	for idx := 0; idx < f.sub.NumClauses(); idx++ {
		if budget < 0 {
			break
		}

		c := f.sub.Clause(subsumer.ClauseIndex(idx))
		if c == nil {
			continue
		}
		if c.Len() > f.cfg.MaxGateSize {
			continue
		}
		if !allowLearntGates && c.Learnt {
			continue
		}

		if !f.couldBeGate(c, &budget) {
			continue
		}

		for _, l := range c.Lits() {
			eqLit := l.Negation()
			if g, ok := f.tryRecognize(c, subsumer.ClauseIndex(idx), eqLit, allowLearntGates, &budget); ok {
				f.store.Add(g)
				f.sub.SetDefOfOrGate(subsumer.ClauseIndex(idx), true)
				st.GatesFound++
				if g.Learnt {
					st.LearntGatesFound++
				}
			}
		}
	}

	st.TotalTime = time.Since(start)
	return st
}

// couldBeGate applies a necessary-condition pre-filter: a clause with
// two or more literals ℓ that have no binary implications
// at all (empty implication cache AND empty watch list for ¬ℓ) cannot be
// recognized as a gate, because there would be no room to build the
// requisite |C|−1 binary clauses.
func (f *Finder) couldBeGate(c *sat.Clause, budget *int64) bool {
	numZero := 0
	for _, l := range c.Lits() {
		cache := f.solver.ImplCache(l.Negation())
		ws := f.solver.Watches(l.Negation())
		*budget -= int64(len(cache) + len(ws))
		if len(cache) == 0 && len(ws) == 0 {
			numZero++
			if numZero > 1 {
				return false
			}
		}
	}
	return true
}

// tryRecognize implements try_recognize(C, eqLit): for each
// literal o in C other than ¬eqLit, it looks for a witness that the
// binary clause ¬o ∨ eqLit exists, first in the implication cache of ¬o,
// then in the binary watch list of o. Recognition is a pure predicate: no
// solver state is mutated on failure.
func (f *Finder) tryRecognize(c *sat.Clause, idx subsumer.ClauseIndex, eqLit sat.Lit, allowLearntGates bool, budget *int64) (OrGate, bool) {
	notEq := eqLit.Negation()

	var inputs []sat.Lit
	learnt := c.Learnt

	for _, o := range c.Lits() {
		if o == notEq {
			continue
		}

		found, witnessLearnt := f.findWitness(o, eqLit, allowLearntGates, budget)
		if !found {
			return OrGate{}, false
		}
		learnt = learnt || witnessLearnt
		inputs = append(inputs, o)
	}

	gate := OrGate{Inputs: inputs, Output: eqLit, Learnt: learnt}
	if f.store.HasIdenticalGate(eqLit, inputs) {
		return OrGate{}, false
	}
	*budget -= int64(len(inputs) * 2)
	return gate, true
}

// findWitness looks for a binary clause ¬o ∨ eqLit, searching the
// implication cache of ¬o and then the binary watch list of o. A
// non-learnt witness is always preferred and returned immediately; when
// none exists, a learnt witness is accepted only if allowLearntGates.
func (f *Finder) findWitness(o, eqLit sat.Lit, allowLearntGates bool, budget *int64) (found bool, isLearnt bool) {
	cache := f.solver.ImplCache(o.Negation())
	*budget -= int64(len(cache))
	for _, e := range cache {
		if e.SuccessorLit != eqLit {
			continue
		}
		if e.OnlyNonLearntBinary {
			return true, false
		}
		if allowLearntGates {
			found, isLearnt = true, true
		}
	}

	ws := f.solver.Watches(o)
	*budget -= int64(len(ws))
	for _, w := range ws {
		if w.OtherLit != eqLit {
			continue
		}
		if !w.Learnt {
			return true, false
		}
		if allowLearntGates {
			found, isLearnt = true, true
		}
	}

	return found, isLearnt
}
