package build

import (
	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
	"git.home.luguber.info/inful/partbuilder/internal/selection"
)

// Combine merges shapes into the accumulated result with mode and returns
// the shapes. Every shape must match the builder's dimension. PRIVATE leaves
// the result untouched. On success the last vertices, edges and faces hold
// what the combination created; on failure nothing changes. Kernel errors
// are returned unchanged.
func (b *Builder) Combine(mode Mode, shapes ...kernel.Shape) ([]kernel.Shape, error) {
	const op = "Combine"
	if err := b.checkOpen(op); err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		return nil, InvalidOperation(op, "no shapes given")
	}
	for _, s := range shapes {
		if s == nil {
			return nil, InvalidOperation(op, "nil shape")
		}
		if d := kernel.Dimension(s); d != b.variant.Dimension() {
			return nil, b.invalidResult(op, s, d)
		}
	}
	if mode == ModePrivate {
		return shapes, nil
	}

	next, err := b.combined(mode, shapes)
	if err == nil {
		// Disjoint intersections legitimately come back empty.
		if d := kernel.Dimension(next); d != b.variant.Dimension() && !(d == 0 && next.Kind() == kernel.KindCompound) {
			err = b.invalidResult(op, next, d)
		}
	}
	if err != nil {
		b.session.recorder.IncCombination(b.variant.String(), mode.String(), metrics.ResultFailed)
		observability.DebugContext(b.ctx, "Combination failed",
			logfields.Mode(mode.String()), logfields.Error(err))
		return nil, err
	}

	b.commit(mode, next, len(shapes))
	return shapes, nil
}

// combined computes the new result without touching the builder.
func (b *Builder) combined(mode Mode, shapes []kernel.Shape) (kernel.Shape, error) {
	k := b.session.kernel
	switch mode {
	case ModeAdd:
		if b.result == nil {
			return fold(shapes[0], shapes[1:], k.Union)
		}
		return fold(b.result, shapes, k.Union)
	case ModeSubtract:
		if b.result == nil {
			return nil, ferrors.From(ErrNothingToSubtract).WithContext("builder", b.variant.String()).Build()
		}
		return fold(b.result, shapes, k.Difference)
	case ModeIntersect:
		if b.result == nil {
			return nil, ferrors.From(ErrNothingToIntersect).WithContext("builder", b.variant.String()).Build()
		}
		return fold(b.result, shapes, k.Intersection)
	case ModeReplace:
		return fold(shapes[0], shapes[1:], k.Union)
	}
	return nil, InvalidParameter("Combine", "mode", mode.String(), "unknown mode")
}

func fold(acc kernel.Shape, shapes []kernel.Shape, op func(a, b kernel.Shape) (kernel.Shape, error)) (kernel.Shape, error) {
	for _, s := range shapes {
		next, err := op(acc, s)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// commit installs next as the result and records the delta.
func (b *Builder) commit(mode Mode, next kernel.Shape, operands int) {
	preV, preE, preF := b.Vertices(selection.All), b.Edges(selection.All), b.Faces(selection.All)
	b.result = next
	b.lastVertices = selection.Delta(preV, b.Vertices(selection.All))
	b.lastEdges = selection.Delta(preE, b.Edges(selection.All))
	b.lastFaces = selection.Delta(preF, b.Faces(selection.All))

	s := b.session
	s.recorder.IncCombination(b.variant.String(), mode.String(), metrics.ResultSuccess)
	measure := kernel.Measure(next)
	observability.DebugContext(b.ctx, "Combined",
		logfields.Mode(mode.String()),
		logfields.Count(operands),
		logfields.Event(next.Kind().String()),
	)
	e, err := eventstore.NewCombined(s.id, eventstore.CombinedData{
		Variant:     b.variant.String(),
		Mode:        mode.String(),
		Operands:    operands,
		NewVertices: len(b.lastVertices),
		NewEdges:    len(b.lastEdges),
		NewFaces:    len(b.lastFaces),
		Measure:     measure,
	})
	s.record(b.ctx, e, err)
}

func (b *Builder) invalidResult(op string, s kernel.Shape, got int) error {
	return ferrors.From(ErrInvalidResult).
		WithContext("operation", op).
		WithContext("builder", b.variant.String()).
		WithContext("kind", s.Kind().String()).
		WithContext("dimension", got).
		WithContext("expected", b.variant.Dimension()).
		Build()
}
