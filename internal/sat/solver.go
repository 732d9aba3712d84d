package sat

import "math/rand"

// VarData carries per-variable bookkeeping: whether the variable has
// already been eliminated by some other preprocessing step, independently
// of the gate subsystem's own dont_eliminate bookkeeping (owned by
// gate.Store, not here).
type VarData struct {
	Elimed bool
}

// Solver is a minimal stand-in for a CDCL solver core. It owns variable
// bookkeeping, root-level assignments, binary watch lists, the
// implication cache, the equivalence registry, and a seedable random
// source -- enough for the gate subsystem to be exercised and tested
// without pulling in unit propagation, conflict analysis, or
// decision-variable search.
type Solver struct {
	Ok bool

	assigns      []LBool
	decisionVar  []bool
	varData      []VarData
	watches      [][]BinWatch
	implCache    [][]CacheEntry
	equivalences *EquivRegistry

	SumConflicts uint64

	rnd *rand.Rand
}

// NewSolver returns an empty solver seeded with seed, making any
// subsequent random sampling (e.g. the gate Synthesizer's pair sampling)
// reproducible.
func NewSolver(seed int64) *Solver {
	return &Solver{
		Ok:           true,
		equivalences: NewEquivRegistry(0),
		rnd:          rand.New(rand.NewSource(seed)),
	}
}

// NumVars returns the number of variables known to the solver.
func (s *Solver) NumVars() int { return len(s.varData) }

// NumUnsetVars returns the number of variables that are both unassigned
// and not yet eliminated, mirroring control->getNumUnsetVars().
func (s *Solver) NumUnsetVars() int {
	n := 0
	for v := 0; v < len(s.varData); v++ {
		if s.Value(Var(v)) == Undef && !s.varData[v].Elimed {
			n++
		}
	}
	return n
}

// NewVar allocates a fresh variable, decision-eligible and not eliminated
// by default.
func (s *Solver) NewVar() Var {
	v := Var(len(s.varData))
	s.varData = append(s.varData, VarData{})
	s.decisionVar = append(s.decisionVar, true)
	s.assigns = append(s.assigns, Undef, Undef)
	s.watches = append(s.watches, nil, nil)
	s.implCache = append(s.implCache, nil, nil)
	s.equivalences.Grow()
	return v
}

// Value returns the root-level truth value of v, or Undef if unassigned.
func (s *Solver) Value(v Var) LBool { return s.assigns[PosLit(v)] }

// LitValue returns the root-level truth value of l.
func (s *Solver) LitValue(l Lit) LBool { return s.assigns[l] }

// DecisionVar reports whether v is eligible to be picked as a decision
// variable by the (out-of-scope) search engine -- the gate Synthesizer's
// sampling step must only draw from these.
func (s *Solver) DecisionVar(v Var) bool { return s.decisionVar[v] }

// SetDecisionVar toggles v's decision eligibility.
func (s *Solver) SetDecisionVar(v Var, b bool) { s.decisionVar[v] = b }

// VarData returns v's elimination bookkeeping.
func (s *Solver) VarData(v Var) VarData { return s.varData[v] }

// SetEliminated marks v as eliminated by some other preprocessing step.
func (s *Solver) SetEliminated(v Var, b bool) { s.varData[v].Elimed = b }

// ImplCache returns the implication-cache entries for l.
func (s *Solver) ImplCache(l Lit) []CacheEntry { return s.implCache[l] }

// Watches returns the binary watch entries for l.
func (s *Solver) Watches(l Lit) []BinWatch { return s.watches[l] }

// RandInt returns a uniform random integer in [0, n).
func (s *Solver) RandInt(n int) int { return s.rnd.Intn(n) }

// Equivalences returns the literal-equivalence registry.
func (s *Solver) Equivalences() *EquivRegistry { return s.equivalences }

func (s *Solver) setAssign(l Lit, val LBool) {
	s.assigns[l] = val
	s.assigns[l.Negation()] = val.Opposite()
}

// assertUnit enqueues l as a root-level fact. It returns false (and sets
// s.Ok to false) if l contradicts an existing root-level assignment.
func (s *Solver) assertUnit(l Lit) bool {
	switch s.LitValue(l) {
	case True:
		return true
	case False:
		s.Ok = false
		return false
	default:
		s.setAssign(l, True)
		return true
	}
}

// addBinary registers the binary clause (a, b) into the watch lists of
// ~a and ~b and the implication cache of a and b directly, the two
// witness sources a gate recognizer searches to test whether a clause
// (¬o ∨ eqLit) is implied: the cache witness lives at implCache[¬o] and
// the watch witness lives at watches[o], so a clause (a, b) must populate
// implCache[a] and watches[a.Negation()] (both reached when o = ¬a and
// eqLit = b), and symmetrically for b. Maintaining both in
// lockstep keeps them mutually consistent even though a real solver
// would populate the implication cache lazily via a separate probing
// pass.
func (s *Solver) addBinary(a, b Lit, learnt bool) {
	s.watches[a.Negation()] = append(s.watches[a.Negation()], BinWatch{OtherLit: b, Learnt: learnt})
	s.watches[b.Negation()] = append(s.watches[b.Negation()], BinWatch{OtherLit: a, Learnt: learnt})
	s.implCache[a] = append(s.implCache[a], CacheEntry{SuccessorLit: b, OnlyNonLearntBinary: !learnt})
	s.implCache[b] = append(s.implCache[b], CacheEntry{SuccessorLit: a, OnlyNonLearntBinary: !learnt})
}

// AddClauseInt installs a clause into the solver. It simplifies against
// root-level assignments and duplicate/tautologous literals, then:
//
//   - an empty or falsified clause sets s.Ok to false and returns (nil, false);
//   - a clause simplifying to a single literal is asserted directly and
//     absorbed (nil, true);
//   - a clause simplifying to two literals is absorbed as a binary clause
//     via addBinary (nil, true);
//   - otherwise a genuine long Clause is allocated and returned for the
//     caller (the subsumer) to link into its arena.
func (s *Solver) AddClauseInt(lits []Lit, learnt bool, stats ClauseStats) (*Clause, bool) {
	if !s.Ok {
		return nil, false
	}

	buf := append([]Lit(nil), lits...)
	size := len(buf)
	seen := make(map[Lit]bool, size)

	for i := size - 1; i >= 0; i-- {
		l := buf[i]
		if seen[l.Negation()] {
			return nil, true // tautology
		}
		if seen[l] || s.LitValue(l) == False {
			size--
			buf[i], buf[size] = buf[size], buf[i]
			continue
		}
		if s.LitValue(l) == True {
			return nil, true // already satisfied
		}
		seen[l] = true
	}
	buf = buf[:size]

	switch len(buf) {
	case 0:
		s.Ok = false
		return nil, false
	case 1:
		return nil, s.assertUnit(buf[0])
	case 2:
		s.addBinary(buf[0], buf[1], learnt)
		return nil, true
	default:
		return NewClauseFrom(buf, learnt, stats), true
	}
}

// AddXorClauseInt submits lits[0] XOR lits[1] == rhs to the equivalence
// registry. It returns false (without touching s.Ok) if this contradicts
// a previously recorded equivalence; callers must treat that the same way
// as an AddClauseInt failure and abandon further simplification.
func (s *Solver) AddXorClauseInt(lits [2]Lit, rhs bool) bool {
	a, b := lits[0], lits[1]
	if rhs {
		b = b.Negation()
	}
	return s.equivalences.Union(a, b)
}

// NewToReplaceVars returns the cumulative count of variables that became
// replaceable via the equivalence registry.
func (s *Solver) NewToReplaceVars() int { return s.equivalences.NewToReplaceVars() }
