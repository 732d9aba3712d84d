// Package dimacsload loads a DIMACS CNF file into the solver-core and
// subsumer stand-ins so the gate subsystem has a clause database to run
// against, wrapping the external github.com/rhartert/dimacs reader
// behind a dimacs.Builder.
package dimacsload

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/cnfopt/gatefinder/internal/sat"
	"github.com/cnfopt/gatefinder/internal/subsumer"
)

// Loaded bundles the solver and subsumer populated by Load, ready for a
// gate.Finder/gate.Synthesizer/gate.Applier pass.
type Loaded struct {
	Solver   *sat.Solver
	Subsumer *subsumer.Subsumer
}

// Load parses the DIMACS CNF file at filename (transparently gzip-decoded
// if the name ends in ".gz") and installs its variables and clauses into
// a freshly constructed solver and subsumer, seeding the solver's random
// source with seed.
func Load(filename string, seed int64) (*Loaded, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacsload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("dimacsload: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	l := &Loaded{
		Solver:   sat.NewSolver(seed),
		Subsumer: subsumer.New(),
	}
	b := &builder{loaded: l}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacsload: %w", err)
	}
	return l, nil
}

// builder implements dimacs.Builder over a Loaded pair.
type builder struct {
	loaded *Loaded
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.loaded.Solver.NewVar()
		b.loaded.Subsumer.Grow()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	lits := make([]sat.Lit, len(tmpClause))
	for i, v := range tmpClause {
		if v < 0 {
			lits[i] = sat.NegLit(sat.Var(-v - 1))
		} else {
			lits[i] = sat.PosLit(sat.Var(v - 1))
		}
	}

	c, ok := b.loaded.Solver.AddClauseInt(lits, false, sat.ClauseStats{})
	if !ok {
		return fmt.Errorf("clause %v contradicts the unit-clause closure", tmpClause)
	}
	if c != nil {
		b.loaded.Subsumer.LinkInClause(c)
	}
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // comment lines carry no clause data
}
