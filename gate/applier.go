package gate

import (
	"sort"
	"time"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Applier runs the three gate-driven clause rewrites described in spec
// §4.4: OR-gate clause shortening, AND-gate contraction, and equivalence
// detection between gates sharing an input set.
type Applier struct {
	solver *sat.Solver
	sub    *subsumer.Subsumer
	store  *Store
	cfg    Config
}

// NewApplier returns an Applier operating over solver, sub, and store.
func NewApplier(solver *sat.Solver, sub *subsumer.Subsumer, store *Store, cfg Config) *Applier {
	return &Applier{solver: solver, sub: sub, store: store, cfg: cfg}
}

// DoAllOptimisationWithGates runs the three sub-passes in the order spec
// §5 mandates (shortening before AND contraction before equivalence
// detection), each gated by its Config flag, and returns the aggregate
// Stats. ok is false if any call into the solver signaled an
// inconsistency; callers must abandon further simplification in that
// case.
func (a *Applier) DoAllOptimisationWithGates() (Stats, bool) {
	var total Stats

	if a.cfg.DoShortenWithOrGates {
		st, ok := a.ShortenWithOrGates()
		total.Add(st)
		if !ok {
			return total, false
		}
	}

	if a.cfg.DoRemClWithAndGates {
		st, ok := a.ContractAndGates()
		total.Add(st)
		if !ok {
			return total, false
		}
	}

	if a.cfg.DoFindEqLitsWithGates {
		st, ok := a.FindEquivalences()
		total.Add(st)
		if !ok {
			return total, false
		}
	}

	return total, true
}

// ShortenWithOrGates walks every live gate and rewrites every clause
// containing the gate's full input set to drop the now-redundant inputs,
// or removes it outright if it is tautological modulo the gate.
func (a *Applier) ShortenWithOrGates() (Stats, bool) {
	start := time.Now()
	budget := a.cfg.BudgetApply
	a.sub.SetBudget(&budget)

	var st Stats
	ok := true
	a.store.ForEachLive(func(_ GateID, g OrGate) {
		if !ok || budget < 0 {
			return
		}
		if !a.shortenWithOrGate(g, &st, &budget) {
			ok = false
		}
	})

	st.TotalTime = time.Since(start)
	return st, ok
}

func (a *Applier) shortenWithOrGate(g OrGate, st *Stats, budget *int64) bool {
	var subs []subsumer.ClauseIndex
	a.sub.FindSubsumed0(g.Inputs, subsumer.Calc(g.Inputs), &subs)

	for _, idx := range subs {
		data := a.sub.Data(idx)
		c := a.sub.Clause(idx)
		if c == nil {
			continue
		}
		if data.DefOfOrGate || (!c.Learnt && g.Learnt) {
			continue
		}

		st.NumOrGateReplaced++

		eqLitInside := false
		removedClause := false
		for _, l := range c.Lits() {
			if l.Var() != g.Output.Var() {
				continue
			}
			if l == g.Output {
				eqLitInside = true
			} else {
				a.sub.UnlinkClause(idx)
				removedClause = true
			}
			break
		}
		if removedClause {
			continue
		}

		var lits []sat.Lit
		for _, l := range c.Lits() {
			inGate := false
			for _, in := range g.Inputs {
				if in == l {
					inGate = true
					st.GateLitsRemoved++
					break
				}
			}
			if !inGate {
				lits = append(lits, l)
			}
		}
		if !eqLitInside {
			lits = append(lits, g.Output)
			st.GateLitsRemoved--
		}

		learnt := c.Learnt
		stats := c.Stats

		a.sub.UnlinkClause(idx)
		newC, ok := a.solver.AddClauseInt(lits, learnt, stats)
		if !a.solver.Ok {
			return false
		}
		if !ok || newC == nil {
			continue
		}
		a.sub.LinkInClause(newC)
	}

	return true
}

// ContractAndGates applies AND-gate contraction, restricted to 2-input
// gates.
func (a *Applier) ContractAndGates() (Stats, bool) {
	start := time.Now()
	budget := a.cfg.BudgetApply
	a.sub.SetBudget(&budget)

	var st Stats
	ok := true
	a.store.ForEachLive(func(_ GateID, g OrGate) {
		if !ok || budget < 0 || len(g.Inputs) != 2 {
			return
		}
		if _, passed := treatAndGate(a.solver, a.sub, g, true, &budget, &st); !passed {
			ok = false
		}
	})

	st.TotalTime = time.Since(start)
	return st, ok
}

// FindEquivalences finds gates with identical input sets but different
// output variables and submits the resulting literal equivalence to the
// solver's equivalence registry.
func (a *Applier) FindEquivalences() (Stats, bool) {
	start := time.Now()

	type entry struct {
		id   GateID
		gate OrGate
	}
	var live []entry
	a.store.ForEachLive(func(id GateID, g OrGate) {
		live = append(live, entry{id, g})
	})

	sort.Slice(live, func(i, j int) bool {
		gi, gj := live[i].gate, live[j].gate
		ii, ij := sortedCopy(gi.Inputs), sortedCopy(gj.Inputs)
		for k := 0; k < len(ii) && k < len(ij); k++ {
			if ii[k] != ij[k] {
				return ii[k] < ij[k]
			}
		}
		if len(ii) != len(ij) {
			return len(ii) < len(ij)
		}
		if gi.Output.Var() != gj.Output.Var() {
			return gi.Output.Var() < gj.Output.Var()
		}
		return !gi.Output.Sign() && gj.Output.Sign()
	})

	oldNumVarsToReplace := a.solver.NewToReplaceVars()

	var st Stats
	for i := 1; i < len(live); i++ {
		g1, g2 := live[i-1].gate, live[i].gate
		if !sameInputSet(g1.Inputs, g2.Inputs) {
			continue
		}
		if g1.Output.Var() == g2.Output.Var() {
			continue
		}

		rhs := g1.Output.Sign() != g2.Output.Sign()
		lits := [2]sat.Lit{sat.PosLit(g1.Output.Var()), sat.PosLit(g2.Output.Var())}
		if !a.solver.AddXorClauseInt(lits, rhs) {
			st.TotalTime = time.Since(start)
			return st, false
		}
	}

	st.VarsReplaced = a.solver.NewToReplaceVars() - oldNumVarsToReplace
	st.TotalTime = time.Since(start)
	return st, true
}

func sortedCopy(lits []sat.Lit) []sat.Lit {
	c := append([]sat.Lit(nil), lits...)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return c
}

// calculateSortedOcc builds the size-bucketed occurrence list of
// ¬g.Inputs[1] used by treatAndGate, marking seen2 for every literal
// encountered and accumulating the running abstraction A, per spec
// §4.4.2 step 1.
func calculateSortedOcc(sub *subsumer.Subsumer, g OrGate, budget *int64) (sizeSortedOcc [][]subsumer.ClauseIndex, maxSize int, abst subsumer.Abst) {
	b := g.Inputs[1]
	cands := sub.Occur(b.Negation())
	*budget -= int64(len(cands) * 3)

	for _, idx := range cands {
		c := sub.Clause(idx)
		if c == nil {
			continue
		}
		data := sub.Data(idx)
		if data.DefOfOrGate || (!c.Learnt && g.Learnt) {
			continue
		}

		size := c.Len()
		for len(sizeSortedOcc) <= size {
			sizeSortedOcc = append(sizeSortedOcc, nil)
		}
		if size > maxSize {
			maxSize = size
		}
		sizeSortedOcc[size] = append(sizeSortedOcc[size], idx)

		for _, l := range c.Lits() {
			sub.SetSeen2(l)
			abst |= subsumer.BitFor(l.Var())
		}
	}
	abst |= subsumer.BitFor(g.Inputs[0].Var())
	return sizeSortedOcc, maxSize, abst
}

// findAndGateOtherCl scans candidates for a twin clause matching abst2,
// every literal of which (other than lit) is currently marked seen.
func findAndGateOtherCl(sub *subsumer.Subsumer, candidates []subsumer.ClauseIndex, lit sat.Lit, abst2 subsumer.Abst, budget *int64) (subsumer.ClauseIndex, bool) {
	*budget -= int64(len(candidates))
	for _, idx := range candidates {
		data := sub.Data(idx)
		if data.DefOfOrGate || data.Abst != abst2 {
			continue
		}

		c := sub.Clause(idx)
		if c == nil {
			continue
		}

		match := true
		for _, l := range c.Lits() {
			if l == lit {
				continue
			}
			if !sub.Seen(l) {
				match = false
				break
			}
		}
		if match {
			return idx, true
		}
	}
	return 0, false
}

// treatAndGate is the AND-gate contraction algorithm, shared between
// Applier's ContractAndGates pass (reallyRemove = true) and the Synthesizer's
// dry-run scoring of candidate gates (reallyRemove = false, st == nil).
// It returns the number of contractible clause pairs found; when
// reallyRemove is true, st accumulates and_gate_num_found /
// and_gate_total_size and the matched clause pairs are actually
// unlinked and replaced.
func treatAndGate(solver *sat.Solver, sub *subsumer.Subsumer, g OrGate, reallyRemove bool, budget *int64, st *Stats) (potential int, ok bool) {
	a, b := g.Inputs[0], g.Inputs[1]
	if len(sub.Occur(a.Negation())) == 0 || len(sub.Occur(b.Negation())) == 0 {
		return 0, true
	}

	sizeSortedOcc, maxSize, abst := calculateSortedOcc(sub, g, budget)
	defer sub.ResetSeen2()

	var toUnlink []subsumer.ClauseIndex
	cs := sub.Occur(a.Negation())
	*budget -= int64(len(cs) * 3)

	for _, idx := range cs {
		data := sub.Data(idx)
		if data.DefOfOrGate || (data.Abst|abst) != abst || data.Size > maxSize || len(sizeSortedOcc[data.Size]) == 0 {
			continue
		}

		c := sub.Clause(idx)
		if c == nil {
			continue
		}
		if !c.Learnt && g.Learnt {
			continue
		}

		notA := a.Negation()
		matches := true
		for _, l := range c.Lits() {
			if l == notA {
				continue
			}
			if l.Var() == b.Var() || l.Var() == g.Output.Var() || !sub.Seen2(l) {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}

		var abst2 subsumer.Abst
		for _, l := range c.Lits() {
			if l == notA {
				continue
			}
			sub.SetSeen(l)
			abst2 |= subsumer.BitFor(l.Var())
		}
		abst2 |= subsumer.BitFor(b.Negation().Var())

		other, found := findAndGateOtherCl(sub, sizeSortedOcc[data.Size], b.Negation(), abst2, budget)
		if found {
			potential++
		}

		if reallyRemove && found {
			newC, installOK := contractAndGateClause(solver, sub, g, c, sub.Clause(other), notA)
			if !installOK {
				sub.ResetSeen()
				return potential, false
			}
			if st != nil {
				st.AndGateNumFound++
				st.AndGateTotalSize += c.Len()
			}
			if newC != nil {
				sub.LinkInClause(newC)
			}
			toUnlink = append(toUnlink, idx, other)
		}

		sub.ResetSeen()
	}

	for _, idx := range toUnlink {
		sub.UnlinkClause(idx)
	}

	return potential, true
}

// contractAndGateClause builds the resolvent (cl \ {notA}) ∪ {¬g.Output}
// and installs it via the solver, inheriting learnt/stats from both
// parent clauses.
func contractAndGateClause(solver *sat.Solver, sub *subsumer.Subsumer, g OrGate, cl, other *sat.Clause, notA sat.Lit) (*sat.Clause, bool) {
	var lits []sat.Lit
	for _, l := range cl.Lits() {
		if l != notA {
			lits = append(lits, l)
		}
	}
	lits = append(lits, g.Output.Negation())

	learnt := cl.Learnt && other.Learnt
	stats := sat.CombineStats(cl.Stats, other.Stats)

	newC, ok := solver.AddClauseInt(lits, learnt, stats)
	return newC, ok
}
