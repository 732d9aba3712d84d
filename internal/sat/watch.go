package sat

// BinWatch is a binary-clause watch entry: other_lit plus the learnt
// flag. This stand-in solver core only ever stores binary watches (no
// long-clause watching, since propagation is out of scope), so every
// entry here is binary by construction.
type BinWatch struct {
	OtherLit Lit
	Learnt   bool
}

// CacheEntry is an implication-cache entry: a successor literal plus an
// only_non_learnt_binary flag.
type CacheEntry struct {
	SuccessorLit        Lit
	OnlyNonLearntBinary bool
}
