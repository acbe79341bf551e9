package config

import (
	"regexp"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

// Prometheus metric name prefix rules.
var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	if cfg.Kernel.Tolerance <= 0 || cfg.Kernel.Tolerance >= 1 {
		return invalid("kernel.tolerance", cfg.Kernel.Tolerance, "must be in (0, 1)")
	}
	if cfg.Metrics.Enabled && !namespacePattern.MatchString(cfg.Metrics.Namespace) {
		return invalid("metrics.namespace", cfg.Metrics.Namespace, "must be a valid Prometheus identifier")
	}
	if cfg.Journal.Enabled && cfg.Journal.Driver == JournalDriverSQLite && cfg.Journal.Path == "" {
		return invalid("journal.path", cfg.Journal.Path, "required for the sqlite driver")
	}
	return nil
}

func invalid(field string, value any, rule string) error {
	return errors.ConfigError("configuration validation failed").
		WithContext("field", field).
		WithContext("value", value).
		WithContext("rule", rule).
		Build()
}
