package config

// HistoryConfig configures the persistent correction history
type HistoryConfig struct {
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	MaxEntries int    `json:"max_entries,omitempty" yaml:"max_entries,omitempty" validate:"omitempty,min=1,max=10000"`
}

// NewDefaultHistoryConfig creates default history configuration
func NewDefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		DBPath:     DefaultHistoryDBPath,
		MaxEntries: DefaultHistoryMaxEntries,
	}
}
