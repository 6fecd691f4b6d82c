package config

// DiffConfig defines configuration for the diff engine and its facade
type DiffConfig struct {
	// GreedyLimit is the largest region, in characters, solved by the
	// trace-keeping search before bisection takes over.
	GreedyLimit     int  `json:"greedy_limit,omitempty" yaml:"greedy_limit,omitempty" validate:"omitempty,min=2"`
	SemanticCleanup bool `json:"semantic_cleanup" yaml:"semantic_cleanup"`
	// EditBudget caps the search steps of one diff. Regions left unsolved
	// when it runs out are shown as a whole replacement.
	EditBudget     int `json:"edit_budget,omitempty" yaml:"edit_budget,omitempty" validate:"omitempty,min=1000"`
	MaxInputSizeMB int `json:"max_input_size_mb,omitempty" yaml:"max_input_size_mb,omitempty" validate:"omitempty,min=1,max=100"`
	CacheSize      int `json:"cache_size,omitempty" yaml:"cache_size,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		GreedyLimit:     DefaultDiffGreedyLimit,
		SemanticCleanup: DefaultDiffSemanticCleanup,
		EditBudget:      DefaultDiffEditBudget,
		MaxInputSizeMB:  DefaultDiffMaxInputSizeMB,
		CacheSize:       DefaultDiffCacheSize,
	}
}
