package gate

import (
	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Engine wires the four components together: findOrGates feeding
// doAllOptimisationWithGates is the discovery+application path;
// extendedResolution feeding createNewVars feeding
// doAllOptimisationWithGates is the synthesis path. Engine also
// accumulates the monotone cumulative counters a caller can report back
// to the solver (total time, literals removed, clauses
// shortened/removed, variables added/replaced).
type Engine struct {
	Store       *Store
	Finder      *Finder
	Synthesizer *Synthesizer
	Applier     *Applier

	Cumulative Stats
}

// NewEngine constructs a fresh Store and the three passes operating over
// it, all sharing solver, sub, and cfg.
func NewEngine(solver *sat.Solver, sub *subsumer.Subsumer, cfg Config) *Engine {
	store := NewStore()
	return &Engine{
		Store:       store,
		Finder:      NewFinder(solver, sub, store, cfg),
		Synthesizer: NewSynthesizer(solver, sub, store, cfg),
		Applier:     NewApplier(solver, sub, store, cfg),
	}
}

// FindOrGates clears the store, discovers gates already implied by the
// current clause set, and accumulates the pass's Stats into Cumulative.
func (e *Engine) FindOrGates(allowLearntGates bool) Stats {
	e.Store.Clear(e.Applier.sub)
	st := e.Finder.FindOrGates(allowLearntGates)
	e.Cumulative.Add(st)
	return st
}

// ExtendedResolution clears the store, synthesizes new gates via the
// Synthesizer, and returns whether the solver stayed consistent.
func (e *Engine) ExtendedResolution() (Stats, bool) {
	e.Store.Clear(e.Applier.sub)
	st, ok := e.Synthesizer.CreateNewVars()
	e.Cumulative.Add(st)
	return st, ok
}

// TreatOrGates runs the Applier's three sub-passes over the current
// store and accumulates the result.
func (e *Engine) TreatOrGates() (Stats, bool) {
	st, ok := e.Applier.DoAllOptimisationWithGates()
	e.Cumulative.Add(st)
	return st, ok
}
