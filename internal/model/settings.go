package model

// GASettings holds the NSGA-II parameters. The per-field comments give the
// values DefaultGASettings returns, which match §4.7; the config loader can
// override each field per run.
type GASettings struct {
	PopulationSize  int     // 100 for generation 0
	Mu              int     // 15 survivors
	Lambda          int     // 30 offspring
	CrossoverProb   float64 // 0.7
	MutationProb    float64 // 0.3 (complement of crossover; branches are exclusive)
	MaxGenerations  int     // 30
	StagnationLimit int     // 8 generations without >= 1e-4 improvement
}

// DefaultGASettings returns the fixed NSGA-II parameters from §4.7.
func DefaultGASettings() GASettings {
	return GASettings{
		PopulationSize:  100,
		Mu:              15,
		Lambda:          30,
		CrossoverProb:   0.7,
		MutationProb:    0.3,
		MaxGenerations:  30,
		StagnationLimit: 8,
	}
}

// PackSettings configures one order's placement search: the pallet
// footprint to pack against, the pallet budget, and whether the placement
// engine may try rotated orientations.
type PackSettings struct {
	PalletDims    PalletDimensions
	MaxPallets    int
	AllowRotation bool
	GA            GASettings
}

// DefaultPackSettings returns a Euro-pallet configuration with rotation
// enabled and the default GA parameters.
func DefaultPackSettings() PackSettings {
	return PackSettings{
		PalletDims:    DefaultPalletDimensions(),
		MaxPallets:    5,
		AllowRotation: true,
		GA:            DefaultGASettings(),
	}
}

// PalletBudget computes N = max(baseMaxPallets, ceil(itemCount/50)), per §4.9.
func PalletBudget(baseMaxPallets, itemCount int) int {
	needed := (itemCount + 49) / 50
	if needed > baseMaxPallets {
		return needed
	}
	return baseMaxPallets
}
