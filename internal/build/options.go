package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
)

// Option configures a Session.
type Option func(*Session)

// WithContext sets the parent context used for logging and the journal.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the session logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder. The default records nothing.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithJournal sets the store construction events are appended to.
func WithJournal(store eventstore.Store) Option {
	return func(s *Session) { s.journal = store }
}

// WithDefaultWorkplane sets the frame used when no location scope is open.
func WithDefaultWorkplane(p geom.Plane) Option {
	return func(s *Session) { s.defaultPlane = p }
}

// WithTolerance sets the tolerance used for geometric comparisons, such as
// deciding whether a nested sketch placement is the identity.
func WithTolerance(tol float64) Option {
	return func(s *Session) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// BuilderOption configures a single builder scope.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	mode       Mode
	workplanes []geom.Plane
}

// WithMode sets how the builder's result folds into its parent. The default is ModeAdd.
func WithMode(m Mode) BuilderOption {
	return func(c *builderConfig) { c.mode = m }
}

// WithWorkplanes sets the builder's workplanes. A sketch relocates its faces
// onto each of them at exit; part and line builders open a workplane scope for
// their lifetime.
func WithWorkplanes(planes ...geom.Plane) BuilderOption {
	return func(c *builderConfig) { c.workplanes = append([]geom.Plane(nil), planes...) }
}
