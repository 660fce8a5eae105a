package compare

// Config holds the persisted comparison settings.
type Config struct {
	// Source and Target are the last used locations.
	Source string `mapstructure:"source" default:""`
	Target string `mapstructure:"target" default:""`
	// ExcludedTables are skipped by batch comparisons, ignoring case.
	ExcludedTables []string `mapstructure:"excluded_tables" default:""`
	// CustomKeys maps a table to the key columns to use for it.
	CustomKeys map[string][]string `mapstructure:"custom_keys"`
	// MaxParallelism bounds concurrent tables. Zero or less picks a default.
	MaxParallelism int `mapstructure:"max_parallelism" default:"0"`
	// SettingsFile is a YAML file merged over the defaults when present.
	SettingsFile string `mapstructure:"settings_file" default:"tablediff.yaml"`
	// CacheTTLSeconds is how long parsed workbooks stay cached.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
