package gate

import (
	"testing"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// testEnv bundles a solver and subsumer sized for a fixed number of
// 1-indexed DIMACS-style variables, the way fixtures like "variables
// {1,2,3}; clauses ..." are described below.
type testEnv struct {
	t      *testing.T
	solver *sat.Solver
	sub    *subsumer.Subsumer
}

func newTestEnv(t *testing.T, nVars int) *testEnv {
	s := sat.NewSolver(1)
	sub := subsumer.New()
	for i := 0; i < nVars; i++ {
		s.NewVar()
		sub.Grow()
	}
	return &testEnv{t: t, solver: s, sub: sub}
}

// lit converts a 1-indexed signed DIMACS integer into a sat.Lit, e.g.
// lit(-1) is the negation of variable 0.
func lit(v int) sat.Lit {
	if v < 0 {
		return sat.NegLit(sat.Var(-v - 1))
	}
	return sat.PosLit(sat.Var(v - 1))
}

// addClause installs a clause given as 1-indexed signed DIMACS integers
// and links any resulting long clause into the subsumer.
func (e *testEnv) addClause(ints ...int) subsumer.ClauseIndex {
	lits := make([]sat.Lit, len(ints))
	for i, v := range ints {
		lits[i] = lit(v)
	}
	c, ok := e.solver.AddClauseInt(lits, false, sat.ClauseStats{})
	if !ok {
		e.t.Fatalf("addClause(%v): solver reported inconsistency", ints)
	}
	if c == nil {
		return -1 // absorbed as a unit or binary clause, not arena-resident
	}
	return e.sub.LinkInClause(c)
}
