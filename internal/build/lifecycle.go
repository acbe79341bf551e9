package build

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
)

// Fold outcomes reported in the journal.
const (
	foldNone     = "none"
	foldCombined = "combined"
	foldPending  = "pending"
	foldPrivate  = "private"
)

// BuildPart runs fn inside a new part builder and returns the closed builder.
func (s *Session) BuildPart(fn func(*Builder) error, opts ...BuilderOption) (*Builder, error) {
	return s.build(VariantPart, fn, opts)
}

// BuildSketch runs fn inside a new sketch builder and returns the closed
// builder. The sketch is built in local XY coordinates; inside a part its
// faces are queued on the part at each of its workplanes.
func (s *Session) BuildSketch(fn func(*Builder) error, opts ...BuilderOption) (*Builder, error) {
	return s.build(VariantSketch, fn, opts)
}

// BuildLine runs fn inside a new line builder and returns the closed builder.
func (s *Session) BuildLine(fn func(*Builder) error, opts ...BuilderOption) (*Builder, error) {
	return s.build(VariantLine, fn, opts)
}

// build runs one builder scope. The exit path runs exactly once: a nil
// return from fn folds the builder into its parent, anything else (an error,
// a failed fold, a panic) closes it without touching the parent.
func (s *Session) build(variant Variant, fn func(*Builder) error, opts []BuilderOption) (_ *Builder, err error) {
	b, err := s.open(variant, opts)
	if err != nil {
		return nil, err
	}

	// Part and line workplanes, and the sketch's local frame, are a location
	// scope that lives as long as the builder.
	scopeDepth := 0
	switch {
	case variant == VariantSketch:
		scopeDepth = s.pushLocations(locationScope{
			generator: "BuildSketch",
			frames:    []geom.Plane{geom.PlaneXY},
			points:    []geom.Location{geom.IdentityLocation},
		})
	case len(b.workplanes) > 0:
		scopeDepth = s.pushLocations(locationScope{
			generator: "Build" + capitalize(variant.String()),
			frames:    b.workplanes,
			points:    []geom.Location{geom.IdentityLocation},
		})
	}

	succeeded := false
	defer func() {
		if succeeded {
			return
		}
		r := recover()
		if scopeDepth > 0 {
			if perr := s.popLocations(scopeDepth); perr != nil {
				observability.ErrorContext(b.ctx, "Location stack corrupted", logfields.Error(perr))
			}
		}
		cause := err
		if r != nil {
			cause = fmt.Errorf("panic: %v", r)
		}
		b.abort(cause, r != nil)
		if r != nil {
			panic(r)
		}
	}()

	if err = fn(b); err != nil {
		return nil, err
	}
	if scopeDepth > 0 {
		if err = s.popLocations(scopeDepth); err != nil {
			scopeDepth = 0
			return nil, err
		}
		scopeDepth = 0
	}
	if err = b.close(); err != nil {
		return nil, err
	}
	succeeded = true
	return b, nil
}

// open creates a builder under the current one and makes it current.
func (s *Session) open(variant Variant, opts []BuilderOption) (*Builder, error) {
	cfg := builderConfig{mode: ModeAdd}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mode < ModeAdd || cfg.mode > ModePrivate {
		return nil, InvalidParameter("Build"+capitalize(variant.String()), "mode", int(cfg.mode), "unknown mode")
	}

	parent, _ := s.builders.Current()
	if parent != nil && !canNest(parent.variant, variant) {
		return nil, unsupported("Build"+capitalize(variant.String()), parent.variant)
	}

	b := &Builder{
		session:    s,
		parent:     parent,
		variant:    variant,
		mode:       cfg.mode,
		state:      StateOpen,
		workplanes: cfg.workplanes,
	}
	if variant == VariantSketch && len(b.workplanes) == 0 {
		// Default to the enclosing placements, read before the sketch's own
		// local scope is pushed.
		for _, loc := range s.Placements() {
			b.workplanes = append(b.workplanes, geom.PlaneFromLocation(loc))
		}
	}

	s.enter(b)
	depth := s.builders.Depth()
	b.ctx, b.span = observability.StartBuilderSpan(s.ctx, variant.String(), depth)
	b.span.SetAttribute(logfields.KeyMode, b.mode.String())

	parentName := ""
	if parent != nil {
		parentName = parent.variant.String()
	}
	observability.DebugContext(b.ctx, "Builder entered",
		logfields.Mode(b.mode.String()),
		logfields.Parent(parentName),
		logfields.Depth(depth),
	)
	e, err := eventstore.NewBuilderEntered(s.id, eventstore.BuilderEnteredData{
		Variant: variant.String(),
		Mode:    b.mode.String(),
		Parent:  parentName,
		Depth:   depth,
	})
	s.record(b.ctx, e, err)
	return b, nil
}

// close folds the builder into its parent, pops it and freezes it.
func (b *Builder) close() error {
	s := b.session
	b.state = StateClosing

	folded, err := b.foldIntoParent()
	if err != nil {
		return err
	}
	if err := s.exit(b); err != nil {
		return err
	}
	b.state = StateClosed

	d := b.span.End()
	s.recorder.ObserveBuilderLifetime(b.variant.String(), metrics.OutcomeCompleted, d)

	data := eventstore.BuilderExitedData{
		Variant:      b.variant.String(),
		Mode:         b.mode.String(),
		Folded:       folded,
		PendingFaces: len(b.pendingFaces),
		PendingEdges: len(b.pendingEdges),
		DurationMS:   float64(d.Microseconds()) / 1000,
	}
	if b.result != nil {
		data.ResultKind = b.result.Kind().String()
		data.Measure = kernel.Measure(b.result)
	}
	observability.DebugContext(b.ctx, "Builder exited",
		logfields.Outcome(string(metrics.OutcomeCompleted)),
		slog.String("folded", folded),
		logfields.DurationMS(data.DurationMS),
	)
	e, eerr := eventstore.NewBuilderExited(s.id, data)
	s.record(b.ctx, e, eerr)
	return nil
}

// foldIntoParent hands the builder's outbox to its parent according to the
// (parent, child) variants and the child's mode. Unconsumed pending faces and
// edges move to the parent after the result has folded. The parent changes
// only if the whole fold succeeds.
func (b *Builder) foldIntoParent() (string, error) {
	p := b.parent
	switch {
	case p == nil:
		return foldNone, nil
	case b.mode == ModePrivate:
		return foldPrivate, nil
	}

	folded, err := b.foldResult(p)
	if err != nil {
		return "", err
	}
	if len(b.pendingFaces) > 0 || len(b.pendingEdges) > 0 {
		p.queueFaces(b.pendingFaces, b.pendingLocations)
		p.queueEdges(b.pendingEdges)
		if folded == foldNone {
			folded = foldPending
		}
	}
	return folded, nil
}

// foldResult folds the accumulated result. A sketch nested in a sketch is
// placed at each of its workplanes, which default to the placements open
// around it, before combining.
func (b *Builder) foldResult(p *Builder) (string, error) {
	if b.result == nil {
		return foldNone, nil
	}

	switch {
	case p.variant == b.variant:
		shapes := []kernel.Shape{b.result}
		if b.variant == VariantSketch {
			placed, err := b.placedResult()
			if err != nil {
				return "", err
			}
			shapes = placed
		}
		if _, err := p.Combine(b.mode, shapes...); err != nil {
			return "", err
		}
		return foldCombined, nil

	case b.variant == VariantSketch:
		faces, locs, err := b.relocatedFaces()
		if err != nil {
			return "", err
		}
		p.queueFaces(faces, locs)
		return foldPending, nil

	case b.variant == VariantLine:
		p.queueEdges(b.result.Edges())
		return foldPending, nil
	}
	// Unreachable: open rejects every other nesting.
	return "", unsupported("fold "+b.variant.String(), p.variant)
}

// placedResult returns one copy of the result per workplane. A workplane
// within the session tolerance of the identity keeps the result unmoved.
func (b *Builder) placedResult() ([]kernel.Shape, error) {
	s := b.session
	out := make([]kernel.Shape, 0, len(b.workplanes))
	for _, plane := range b.workplanes {
		loc := plane.Location()
		if loc.IsClose(geom.IdentityLocation, s.tolerance) {
			out = append(out, b.result)
			continue
		}
		moved, err := s.kernel.Move(b.result, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, moved)
	}
	return out, nil
}

// relocatedFaces moves each face of the sketch onto each workplane.
func (b *Builder) relocatedFaces() ([]kernel.Shape, []geom.Location, error) {
	k := b.session.kernel
	var faces []kernel.Shape
	var locs []geom.Location
	for _, plane := range b.workplanes {
		loc := plane.Location()
		for _, f := range b.result.Faces() {
			moved, err := k.Move(f, loc)
			if err != nil {
				return nil, nil, err
			}
			faces = append(faces, moved)
			locs = append(locs, loc)
		}
	}
	return faces, locs, nil
}

// abort closes the builder after an error or panic without folding.
func (b *Builder) abort(cause error, panicked bool) {
	s := b.session
	if err := s.exit(b); err != nil {
		observability.ErrorContext(b.ctx, "Builder stack corrupted", logfields.Error(err))
	}
	b.state = StateClosed

	b.span.RecordError(cause)
	d := b.span.End()
	s.recorder.ObserveBuilderLifetime(b.variant.String(), metrics.OutcomeAborted, d)

	category := "kernel"
	if panicked {
		category = string(ferrors.CategoryInternal)
	} else if ce, ok := ferrors.AsClassified(cause); ok {
		category = string(ce.Category())
	}
	s.recorder.IncError(category)

	observability.WarnContext(b.ctx, "Builder aborted",
		logfields.Outcome(string(metrics.OutcomeAborted)),
		logfields.Error(cause),
		slog.Bool("panicked", panicked),
	)
	data := eventstore.BuilderAbortedData{
		Variant:  b.variant.String(),
		Category: category,
		Panicked: panicked,
	}
	if cause != nil {
		data.Error = cause.Error()
	}
	e, err := eventstore.NewBuilderAborted(s.id, data)
	s.record(b.ctx, e, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
