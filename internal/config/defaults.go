package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Query: QueryConfig{
			Strategy:   "locate",
			CheckOrder: false,
		},
		Storage: StorageConfig{
			Path:              "~/.config/most-active-cookie",
			SQLiteFile:        "cookies.db",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			JSON:       false,
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Generator: GeneratorConfig{
			Lines:  1000,
			Year:   2023,
			Output: "more_cookie_log.csv",
		},
	}
}
