package sat

import "strings"

// ClauseStats carries activity/glue-ish stats and the conflict number at
// which a clause was introduced, so that new clauses synthesized by the
// gate subsystem (shortened replacements, AND-gate resolvents) can
// inherit a sensible combination of their parents' stats.
type ClauseStats struct {
	Activity              float64
	Glue                  uint32
	ConflictNumIntroduced uint64
}

// CombineStats combines the stats of two clauses being merged by an
// AND-gate contraction: the resolvent keeps the higher activity and glue
// of its two parents, following the usual "keep the more active one"
// convention for merged clauses.
func CombineStats(a, b ClauseStats) ClauseStats {
	out := ClauseStats{
		Activity:              a.Activity,
		Glue:                  a.Glue,
		ConflictNumIntroduced: a.ConflictNumIntroduced,
	}
	if b.Activity > out.Activity {
		out.Activity = b.Activity
	}
	if b.Glue > out.Glue {
		out.Glue = b.Glue
	}
	if b.ConflictNumIntroduced > out.ConflictNumIntroduced {
		out.ConflictNumIntroduced = b.ConflictNumIntroduced
	}
	return out
}

// Clause is a non-empty ordered sequence of literals plus clause-level
// metadata. It has no notion of watched literals or propagation: those
// belong to a full CDCL engine, out of scope here.
type Clause struct {
	Learnt bool
	Stats  ClauseStats

	literals []Lit
	sliceRef *[]Lit
}

// NewClauseFrom allocates a Clause holding a copy of lits, drawing its
// backing array from the size-classed slice pool in pool.go: this
// subsystem builds and discards many short-lived replacement clauses
// (clause shortening, AND-gate contraction) and benefits from pooling
// their backing arrays rather than allocating fresh ones each time.
func NewClauseFrom(lits []Lit, learnt bool, stats ClauseStats) *Clause {
	ref := allocSlice(len(lits))
	s := (*ref)[:0]
	s = append(s, lits...)
	return &Clause{
		Learnt:   learnt,
		Stats:    stats,
		literals: s,
		sliceRef: ref,
	}
}

// Free returns the clause's backing slice to the pool. Callers must not use
// the clause afterwards.
func (c *Clause) Free() {
	if c.sliceRef == nil {
		return
	}
	*c.sliceRef = c.literals
	freeSlice(c.sliceRef)
	c.literals = nil
	c.sliceRef = nil
}

// Lits returns the clause's literals. Callers must not mutate the slice.
func (c *Clause) Lits() []Lit { return c.literals }

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.literals) }

// Contains reports whether l appears in the clause.
func (c *Clause) Contains(l Lit) bool {
	for _, x := range c.literals {
		if x == l {
			return true
		}
	}
	return false
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
