// Package subsumer provides the clause arena, occurrence lists,
// abstraction-signature subsumption search, and scratch bitmaps the gate
// subsystem's preprocessing passes run over.
package subsumer

import "github.com/cnfopt/gatefinder/internal/sat"

// AbstSize is the number of distinct bits in a clause's abstraction
// signature. Using the full width of a uint64 keeps the false-positive
// rate of the subset pre-filter low without needing a dedicated bitset
// type.
const AbstSize = 64

// Abst is a clause's abstraction signature: bit i is set iff some literal
// in the clause has Var() % AbstSize == i.
type Abst uint64

// BitFor returns the abstraction bit for variable v.
func BitFor(v sat.Var) Abst { return 1 << (uint(v) % AbstSize) }

// Calc computes the abstraction signature of a literal sequence.
func Calc(lits []sat.Lit) Abst {
	var a Abst
	for _, l := range lits {
		a |= BitFor(l.Var())
	}
	return a
}

// CouldBeSubsetOf applies the necessary-condition pre-filter: if
// abst(A) & ~abst(B) != 0 then A cannot be a subset of B. It returns
// false when a (as a literal set) is certainly not a subset of a clause
// whose signature is b.
func CouldBeSubsetOf(a, b Abst) bool {
	return a&^b == 0
}
