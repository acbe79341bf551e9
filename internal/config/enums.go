package config

import (
	"git.home.luguber.info/inful/partbuilder/internal/foundation/normalization"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
)

// Workplane names one of the global construction planes.
type Workplane string

const (
	WorkplaneXY Workplane = "xy"
	WorkplaneYZ Workplane = "yz"
	WorkplaneZX Workplane = "zx"
	WorkplaneXZ Workplane = "xz"
)

var workplaneNormalizer = normalization.NewEnumNormalizer("workplane", map[string]Workplane{
	"xy":    WorkplaneXY,
	"top":   WorkplaneXY,
	"yz":    WorkplaneYZ,
	"right": WorkplaneYZ,
	"zx":    WorkplaneZX,
	"xz":    WorkplaneXZ,
	"front": WorkplaneXZ,
}, "")

// NormalizeWorkplane returns the canonical workplane or "" when unknown.
func NormalizeWorkplane(raw string) Workplane {
	return workplaneNormalizer.Normalize(raw)
}

// Plane returns the frame for the workplane. Unknown names map to XY.
func (w Workplane) Plane() geom.Plane {
	switch w {
	case WorkplaneYZ:
		return geom.PlaneYZ
	case WorkplaneZX:
		return geom.PlaneZX
	case WorkplaneXZ:
		return geom.PlaneXZ
	default:
		return geom.PlaneXY
	}
}

// JournalDriver selects the construction journal backend.
type JournalDriver string

const (
	JournalDriverMemory JournalDriver = "memory"
	JournalDriverSQLite JournalDriver = "sqlite"
)

var journalDriverNormalizer = normalization.NewEnumNormalizer("journal driver", map[string]JournalDriver{
	"memory":  JournalDriverMemory,
	"inmem":   JournalDriverMemory,
	"sqlite":  JournalDriverSQLite,
	"sqlite3": JournalDriverSQLite,
}, "")

// NormalizeJournalDriver returns the canonical driver or "" when unknown.
func NormalizeJournalDriver(raw string) JournalDriver {
	return journalDriverNormalizer.Normalize(raw)
}
