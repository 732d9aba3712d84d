package gate

// Config holds the gate subsystem's tunables.
type Config struct {
	// MaxGateSize bounds the size of a clause the Finder will attempt to
	// recognize as the long clause of a gate.
	MaxGateSize int

	// DoShortenWithOrGates, DoRemClWithAndGates, and DoFindEqLitsWithGates
	// gate the three Applier sub-passes independently.
	DoShortenWithOrGates  bool
	DoRemClWithAndGates   bool
	DoFindEqLitsWithGates bool

	// Verbosity controls whether pass banners are printed by Stats.String
	// callers.
	Verbosity int

	// BudgetFindOrGates, BudgetCreateNewVars, BudgetApply bound the work
	// each pass performs before aborting cleanly.
	BudgetFindOrGates   int64
	BudgetCreateNewVars int64
	BudgetApply         int64
}

// DefaultConfig enables every sub-pass and allots each pass a budget of
// 100 million work units.
var DefaultConfig = Config{
	MaxGateSize:           300,
	DoShortenWithOrGates:  true,
	DoRemClWithAndGates:   true,
	DoFindEqLitsWithGates: true,
	Verbosity:             0,
	BudgetFindOrGates:     100_000_000,
	BudgetCreateNewVars:   100_000_000,
	BudgetApply:           100_000_000,
}
