package gate

import (
	"testing"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

func TestShortenWithOrGates_OutputPresent(t *testing.T) {
	env, finder, store := scenario1(t)
	finder.FindOrGates(true)
	if store.NumLive() != 1 {
		t.Fatalf("setup: want 1 gate, got %d", store.NumLive())
	}

	// scenario1 allocates only variables {1,2,3}; this clause also uses 4.
	env.solver.NewVar()
	env.sub.Grow()

	// Scenario 2: add {1, 2, 3, 4}; the gate 1 ⇔ (2 ∨ 3) subsumes {2,3},
	// so the clause must shorten to {1, 4}.
	idx := env.addClause(1, 2, 3, 4)
	if idx < 0 {
		t.Fatalf("setup: expected a long clause to be linked")
	}

	applier := NewApplier(env.solver, env.sub, store, DefaultConfig)
	st, ok := applier.ShortenWithOrGates()
	if !ok {
		t.Fatalf("ShortenWithOrGates(): want ok, got not ok")
	}
	if st.GateLitsRemoved != 2 {
		t.Errorf("GateLitsRemoved: want 2, got %d", st.GateLitsRemoved)
	}
	if st.NumOrGateReplaced != 1 {
		t.Errorf("NumOrGateReplaced: want 1, got %d", st.NumOrGateReplaced)
	}

	// The shortened clause {1, 4} has only two literals, so
	// solver.AddClauseInt absorbs it as a binary implication (watches +
	// implication cache) rather than linking a new arena entry -- confirm
	// it is reachable exactly the way a freshly-added binary clause would
	// be.
	found := false
	for _, e := range env.solver.ImplCache(sat.PosLit(0)) {
		if e.SuccessorLit == sat.PosLit(3) {
			found = true
		}
	}
	if !found {
		t.Errorf("ImplCache(+1): want an entry for +4 after shortening to {1, 4}, got %v", env.solver.ImplCache(sat.PosLit(0)))
	}
}

func TestShortenWithOrGates_OutputNegated_RemovesClause(t *testing.T) {
	env, finder, store := scenario1(t)
	finder.FindOrGates(true)

	// scenario1 allocates only variables {1,2,3}; this clause also uses 4.
	env.solver.NewVar()
	env.sub.Grow()

	// Scenario 3: add {¬1, 2, 3, 4}; since ¬1 ∨ (2 ∨ 3) is a tautology
	// under the gate (the gate's long clause is exactly ¬1 ∨ 2 ∨ 3), this
	// clause is removed outright.
	idx := env.addClause(-1, 2, 3, 4)
	if idx < 0 {
		t.Fatalf("setup: expected a long clause to be linked")
	}

	applier := NewApplier(env.solver, env.sub, store, DefaultConfig)
	st, ok := applier.ShortenWithOrGates()
	if !ok {
		t.Fatalf("ShortenWithOrGates(): want ok, got not ok")
	}
	if st.NumOrGateReplaced != 1 {
		t.Errorf("NumOrGateReplaced: want 1, got %d", st.NumOrGateReplaced)
	}
	if c := env.sub.Clause(idx); c != nil {
		t.Errorf("Clause(%d) after removal: want nil, got %v", idx, c)
	}
}

func TestContractAndGates_TwoInputClausesContractToOne(t *testing.T) {
	env, finder, store := scenario1(t)
	finder.FindOrGates(true)

	// scenario1 allocates only variables {1,2,3}; these clauses also use 4
	// and 5.
	for i := 0; i < 2; i++ {
		env.solver.NewVar()
		env.sub.Grow()
	}

	// Scenario 4: add {¬2, 4, 5} and {¬3, 4, 5}; both should unlink and a
	// new clause {¬1, 4, 5} should be linked.
	idx1 := env.addClause(-2, 4, 5)
	idx2 := env.addClause(-3, 4, 5)
	if idx1 < 0 || idx2 < 0 {
		t.Fatalf("setup: expected long clauses to be linked")
	}

	applier := NewApplier(env.solver, env.sub, store, DefaultConfig)
	st, ok := applier.ContractAndGates()
	if !ok {
		t.Fatalf("ContractAndGates(): want ok, got not ok")
	}
	if st.AndGateNumFound != 1 {
		t.Fatalf("AndGateNumFound: want 1, got %d", st.AndGateNumFound)
	}

	if c := env.sub.Clause(idx1); c != nil {
		t.Errorf("Clause(%d) after contraction: want nil, got %v", idx1, c)
	}
	if c := env.sub.Clause(idx2); c != nil {
		t.Errorf("Clause(%d) after contraction: want nil, got %v", idx2, c)
	}

	want := map[sat.Lit]bool{sat.NegLit(0): true, sat.PosLit(3): true, sat.PosLit(4): true}
	found := false
	for i := 0; i < env.sub.NumClauses(); i++ {
		c := env.sub.Clause(subsumer.ClauseIndex(i))
		if c == nil || c.Len() != 3 {
			continue
		}
		match := true
		for _, l := range c.Lits() {
			if !want[l] {
				match = false
			}
		}
		if match {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a live clause {¬1, 4, 5} after contraction, found none")
	}
}

func TestFindEquivalences_SharedInputSetYieldsXOR(t *testing.T) {
	// Scenario 5: gates 5 ⇔ (2 ∨ 3) and 6 ⇔ (2 ∨ 3) are both discovered;
	// expect an XOR 5 ⊕ 6 = 0 submitted and get_new_to_replace_vars to
	// increment by 1.
	env := newTestEnv(t, 6)
	env.addClause(-5, 2, 3)
	env.addClause(5, -2)
	env.addClause(5, -3)
	env.addClause(-6, 2, 3)
	env.addClause(6, -2)
	env.addClause(6, -3)

	store := NewStore()
	finder := NewFinder(env.solver, env.sub, store, DefaultConfig)
	finder.FindOrGates(true)
	if store.NumLive() != 2 {
		t.Fatalf("setup: want 2 gates, got %d", store.NumLive())
	}

	before := env.solver.NewToReplaceVars()

	applier := NewApplier(env.solver, env.sub, store, DefaultConfig)
	st, ok := applier.FindEquivalences()
	if !ok {
		t.Fatalf("FindEquivalences(): want ok, got not ok")
	}

	after := env.solver.NewToReplaceVars()
	if after-before != 1 {
		t.Errorf("NewToReplaceVars() delta: want 1, got %d", after-before)
	}
	if st.VarsReplaced != after-before {
		t.Errorf("Stats.VarsReplaced: want %d, got %d", after-before, st.VarsReplaced)
	}

	v5, v6 := sat.Var(4), sat.Var(5)
	if !env.solver.Equivalences().AreEquivalent(sat.PosLit(v5), sat.PosLit(v6)) {
		t.Errorf("AreEquivalent(5, 6): want true, got false")
	}
}

func TestFindEquivalences_VarsReplacedIsADeltaNotACumulativeCount(t *testing.T) {
	// A non-zero baseline (e.g. from an earlier pass) must not leak into
	// this call's reported VarsReplaced: it should report only the
	// increment this call itself caused.
	env := newTestEnv(t, 8)
	env.addClause(-5, 2, 3)
	env.addClause(5, -2)
	env.addClause(5, -3)
	env.addClause(-6, 2, 3)
	env.addClause(6, -2)
	env.addClause(6, -3)

	// Bump the registry's cumulative counter before FindEquivalences ever
	// runs, simulating an earlier apply pass having already replaced a
	// variable.
	if !env.solver.AddXorClauseInt([2]sat.Lit{sat.PosLit(0), sat.PosLit(1)}, false) {
		t.Fatalf("setup: AddXorClauseInt: want ok, got conflict")
	}
	if got := env.solver.NewToReplaceVars(); got != 1 {
		t.Fatalf("setup: NewToReplaceVars(): want 1, got %d", got)
	}

	store := NewStore()
	finder := NewFinder(env.solver, env.sub, store, DefaultConfig)
	finder.FindOrGates(true)

	applier := NewApplier(env.solver, env.sub, store, DefaultConfig)
	st, ok := applier.FindEquivalences()
	if !ok {
		t.Fatalf("FindEquivalences(): want ok, got not ok")
	}

	if st.VarsReplaced != 1 {
		t.Errorf("Stats.VarsReplaced: want 1 (this call's own delta, not the cumulative count of 2), got %d", st.VarsReplaced)
	}
}
