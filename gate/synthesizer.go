package gate

import (
	"time"

	"github.com/rhartert/yagh"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Synthesizer invents new OR-gates by introducing fresh output variables
// when doing so would unlock significant simplification.
type Synthesizer struct {
	solver *sat.Solver
	sub    *subsumer.Subsumer
	store  *Store
	cfg    Config
}

// NewSynthesizer returns a Synthesizer operating over solver, sub, and
// store.
func NewSynthesizer(solver *sat.Solver, sub *subsumer.Subsumer, store *Store, cfg Config) *Synthesizer {
	return &Synthesizer{solver: solver, sub: sub, store: store, cfg: cfg}
}

// CreateNewVars samples pairs of eligible literals, scores each as a
// candidate new OR-gate, ranks
// accepted candidates through a yagh.IntMap[float64] keyed by sample
// index (lowest priority pops first, so priorities are the negated
// benefit), and materializes the best-ranked prefix.
func (s *Synthesizer) CreateNewVars() (Stats, bool) {
	start := time.Now()
	budget := s.cfg.BudgetCreateNewVars
	s.sub.SetBudget(&budget)

	unsetVars := s.solver.NumUnsetVars()
	if unsetVars < 2 {
		return Stats{TotalTime: time.Since(start)}, true
	}
	size := unsetVars - 1

	maxTries := 100000
	if n := size * size / 2; n < maxTries {
		maxTries = n
	}

	ranking := yagh.New[float64](maxTries)
	candidates := make(map[int]NewGateCandidate, maxTries)
	nextKey := 0

	for tries := 0; tries < maxTries; tries++ {
		if budget < 50_000_000 {
			break
		}

		v1 := sat.Var(s.solver.RandInt(size))
		v2 := sat.Var(s.solver.RandInt(size))
		if v1 == v2 {
			continue
		}
		if !eligibleVar(s.solver, v1) || !eligibleVar(s.solver, v2) {
			continue
		}

		lit1 := sat.NewLit(v1, s.solver.RandInt(2) == 1)
		lit2 := sat.NewLit(v2, s.solver.RandInt(2) == 1)
		if lit1 > lit2 {
			lit1, lit2 = lit2, lit1
		}

		pair := []sat.Lit{lit1, lit2}
		var subs []subsumer.ClauseIndex
		s.sub.FindSubsumed0(pair, subsumer.Calc(pair), &subs)

		dryGate := OrGate{Inputs: pair}
		potential, _ := treatAndGate(s.solver, s.sub, dryGate, false, &budget, nil)

		if potential > 5 || len(subs) > 100 || (potential > 1 && len(subs) > 50) {
			cand := NewGateCandidate{Lit1: lit1, Lit2: lit2, NumClRemovable: len(subs), Potential: potential}
			ranking.Put(nextKey, cand.priority())
			candidates[nextKey] = cand
			nextKey++
		}
	}

	ordered := make([]NewGateCandidate, 0, len(candidates))
	for {
		next, ok := ranking.Pop()
		if !ok {
			break
		}
		ordered = append(ordered, candidates[next.Elem])
	}

	deduped := ordered[:0:0]
	for _, c := range ordered {
		if n := len(deduped); n > 0 && deduped[n-1] == c {
			continue
		}
		deduped = append(deduped, c)
	}

	st, ok := s.materialize(deduped)
	st.TotalTime = time.Since(start)
	return st, ok
}

func eligibleVar(s *sat.Solver, v sat.Var) bool {
	return s.Value(v) == sat.Undef && s.DecisionVar(v) && !s.VarData(v).Elimed
}

// materialize walks deduped in descending-benefit order and installs a
// gate for every
// candidate subject to the index/benefit cutoffs, until the first
// candidate that fails them.
func (s *Synthesizer) materialize(deduped []NewGateCandidate) (Stats, bool) {
	var st Stats
	unsetVars := s.solver.NumUnsetVars()

	for i, c := range deduped {
		if i > 100 {
			break
		}
		if float64(i) > float64(unsetVars)*0.01 {
			break
		}
		if i > 50 && c.NumClRemovable < 1000 && c.Potential < 25 {
			break
		}

		w := s.solver.NewVar()
		s.sub.Grow()
		wLit := sat.PosLit(w)

		if _, ok := s.solver.AddClauseInt([]sat.Lit{wLit, c.Lit1.Negation()}, false, sat.ClauseStats{}); !ok {
			return st, false
		}
		if _, ok := s.solver.AddClauseInt([]sat.Lit{wLit, c.Lit2.Negation()}, false, sat.ClauseStats{}); !ok {
			return st, false
		}

		stats := sat.ClauseStats{ConflictNumIntroduced: s.solver.SumConflicts}
		longC, ok := s.solver.AddClauseInt([]sat.Lit{wLit.Negation(), c.Lit1, c.Lit2}, false, stats)
		if !ok {
			return st, false
		}
		if longC != nil {
			idx := s.sub.LinkInClause(longC)
			s.sub.SetDefOfOrGate(idx, true)
		}

		s.store.Add(OrGate{Inputs: []sat.Lit{c.Lit1, c.Lit2}, Output: wLit, Learnt: false})
		st.VarsAdded++
	}

	return st, true
}
