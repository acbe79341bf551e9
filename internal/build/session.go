package build

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
	"git.home.luguber.info/inful/partbuilder/internal/util/stack"
)

// Session owns the state of one construction: the builder stack and the
// location stack. A Session is not safe for concurrent use; independent
// sessions share nothing and may run on separate goroutines.
type Session struct {
	id           string
	ctx          context.Context
	kernel       kernel.Kernel
	logger       *slog.Logger
	recorder     metrics.Recorder
	journal      eventstore.Store
	defaultPlane geom.Plane
	tolerance    float64

	builders  *stack.Stack[*Builder]
	locations *stack.Stack[locationScope]
}

// NewSession creates a session constructing shapes with k.
func NewSession(k kernel.Kernel, opts ...Option) *Session {
	s := &Session{
		id:           uuid.NewString(),
		ctx:          context.Background(),
		kernel:       k,
		logger:       slog.Default(),
		recorder:     metrics.NoopRecorder{},
		defaultPlane: geom.PlaneXY,
		tolerance:    geom.DefaultTolerance,
		builders:     stack.New[*Builder](),
		locations:    stack.New[locationScope](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx = observability.WithSessionID(observability.WithLogger(s.ctx, s.logger), s.id)
	return s
}

// ID returns the session identifier used in logs and the journal.
func (s *Session) ID() string { return s.id }

// Kernel returns the geometry kernel.
func (s *Session) Kernel() kernel.Kernel { return s.kernel }

// Context returns the session context carrying its logger and session id.
func (s *Session) Context() context.Context { return s.ctx }

// Tolerance returns the tolerance for geometric comparisons.
func (s *Session) Tolerance() float64 { return s.tolerance }

// Depth returns the number of open builders.
func (s *Session) Depth() int { return s.builders.Depth() }

// Current returns the innermost open builder.
func (s *Session) Current() (*Builder, error) {
	b, ok := s.builders.Current()
	if !ok {
		return nil, ErrNoActiveBuilder
	}
	return b, nil
}

// Require returns the current builder when its variant is one of variants.
// The error names construct and the active variant.
func (s *Session) Require(construct string, variants ...Variant) (*Builder, error) {
	b, ok := s.builders.Current()
	if !ok {
		return nil, ferrors.From(ErrNoActiveBuilder).WithContext("operation", construct).Build()
	}
	if len(variants) == 0 {
		return b, nil
	}
	for _, v := range variants {
		if b.variant == v {
			return b, nil
		}
	}
	return nil, unsupported(construct, b.variant)
}

func (s *Session) enter(b *Builder) {
	s.builders.Push(b)
}

// exit pops b, which must be the current builder.
func (s *Session) exit(b *Builder) error {
	top, ok := s.builders.Current()
	if !ok || top != b {
		return ferrors.From(ErrScopeMismatch).
			WithContext("operation", "exit").
			WithContext("builder", b.variant.String()).
			Build()
	}
	s.builders.Pop()
	return nil
}

// record appends e to the journal. Journal failures are logged and counted,
// never returned.
func (s *Session) record(ctx context.Context, e eventstore.Event, err error) {
	if s.journal == nil {
		return
	}
	if err == nil {
		err = eventstore.AppendEvent(ctx, s.journal, e)
	}
	if err != nil {
		s.recorder.IncError(string(ferrors.CategoryEventStore))
		observability.WarnContext(ctx, "Journal append failed", logfields.Error(err))
	}
}
