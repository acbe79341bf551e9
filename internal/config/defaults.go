package config

import "git.home.luguber.info/inful/partbuilder/internal/geom"

// Default values.
const (
	DefaultMetricsNamespace = "partbuilder"
	DefaultJournalPath      = "partbuilder-journal.db"
)

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Kernel.Tolerance == 0 {
		cfg.Kernel.Tolerance = geom.DefaultTolerance
	}
	if cfg.Build.DefaultWorkplane == "" {
		cfg.Build.DefaultWorkplane = WorkplaneXY
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Journal.Driver == "" {
		cfg.Journal.Driver = JournalDriverMemory
	}
	if cfg.Journal.Driver == JournalDriverSQLite && cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}
}
