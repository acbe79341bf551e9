package build

import (
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/foundation/normalization"
)

// Mode is the combination operator applied when a shape joins an accumulated result.
type Mode int

const (
	ModeAdd Mode = iota
	ModeSubtract
	ModeIntersect
	ModeReplace
	ModePrivate
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeSubtract:
		return "subtract"
	case ModeIntersect:
		return "intersect"
	case ModeReplace:
		return "replace"
	case ModePrivate:
		return "private"
	default:
		return "unknown"
	}
}

var modeNormalizer = normalization.NewEnumNormalizer("mode", map[string]Mode{
	"add":       ModeAdd,
	"subtract":  ModeSubtract,
	"intersect": ModeIntersect,
	"replace":   ModeReplace,
	"private":   ModePrivate,
}, ModeAdd)

// ParseMode parses a mode name case-insensitively.
func ParseMode(raw string) (Mode, error) {
	m, err := modeNormalizer.NormalizeWithValidation(raw)
	if err != nil {
		return ModeAdd, ferrors.From(ErrInvalidParameter).
			WithCause(err).
			WithContext("parameter", "mode").
			WithContext("value", raw).
			Build()
	}
	return m, nil
}
