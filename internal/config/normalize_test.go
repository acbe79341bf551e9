package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
)

func TestNormalizeConfig(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: " Warning ", Format: "JSON"},
		Build:   BuildConfig{DefaultWorkplane: "sideways"},
		Journal: JournalConfig{Driver: "inmem", Path: "  journal.db "},
	}

	res := Normalize(cfg)

	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, Workplane(""), cfg.Build.DefaultWorkplane)
	assert.Equal(t, JournalDriverMemory, cfg.Journal.Driver)
	assert.Equal(t, "journal.db", cfg.Journal.Path)
	assert.Len(t, res.Warnings, 4)
}

func TestNormalizeNilConfig(t *testing.T) {
	assert.Empty(t, Normalize(nil).Warnings)
}

func TestUnknownEnumFallsBackToDefault(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: chatty\nbuild:\n  default_workplane: diagonal\n"))
	assert.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, WorkplaneXY, cfg.Build.DefaultWorkplane)
}

func TestWorkplanePlane(t *testing.T) {
	tests := []struct {
		workplane Workplane
		want      geom.Plane
	}{
		{WorkplaneXY, geom.PlaneXY},
		{WorkplaneYZ, geom.PlaneYZ},
		{WorkplaneZX, geom.PlaneZX},
		{WorkplaneXZ, geom.PlaneXZ},
		{"", geom.PlaneXY},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.workplane.Plane(), string(tt.workplane))
	}
}
