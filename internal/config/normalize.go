package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerated fields in place before defaults apply.
// Unknown values are cleared so the default takes over, with a warning.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}
	c.Logging.Level = normalizeEnum(res, "logging.level", c.Logging.Level, NormalizeLogLevel)
	c.Logging.Format = normalizeEnum(res, "logging.format", c.Logging.Format, NormalizeLogFormat)
	c.Build.DefaultWorkplane = normalizeEnum(res, "build.default_workplane", c.Build.DefaultWorkplane, NormalizeWorkplane)
	c.Journal.Driver = normalizeEnum(res, "journal.driver", c.Journal.Driver, NormalizeJournalDriver)
	c.Metrics.Namespace = strings.TrimSpace(c.Metrics.Namespace)
	c.Journal.Path = strings.TrimSpace(c.Journal.Path)
	return res
}

func normalizeEnum[T ~string](res *NormalizationResult, field string, raw T, normalize func(string) T) T {
	if strings.TrimSpace(string(raw)) == "" {
		return ""
	}
	canonical := normalize(string(raw))
	switch {
	case canonical == "":
		res.Warnings = append(res.Warnings, warnUnknown(field, string(raw)))
	case canonical != raw:
		res.Warnings = append(res.Warnings, warnChanged(field, raw, canonical))
	}
	return canonical
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value string) string {
	return fmt.Sprintf("unknown %s '%s', using default", field, value)
}
