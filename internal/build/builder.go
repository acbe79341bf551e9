package build

import (
	"context"
	"slices"

	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
	"git.home.luguber.info/inful/partbuilder/internal/selection"
)

// State is the lifecycle state of a Builder.
type State int

const (
	StateOpen State = iota
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Builder accumulates one part, sketch or line result. It is created by
// Session.BuildPart, BuildSketch or BuildLine and becomes read-only once its
// scope ends.
type Builder struct {
	session *Session
	parent  *Builder
	variant Variant
	mode    Mode
	state   State

	result kernel.Shape

	pendingFaces     []kernel.Shape
	pendingLocations []geom.Location // one per pending face
	pendingEdges     []kernel.Shape

	lastVertices selection.ShapeList
	lastEdges    selection.ShapeList
	lastFaces    selection.ShapeList

	// workplanes a sketch relocates its faces onto at exit.
	workplanes []geom.Plane

	ctx  context.Context
	span *observability.LocalSpan
}

// Variant returns the builder kind.
func (b *Builder) Variant() Variant { return b.variant }

// Mode returns how the builder folds into its parent.
func (b *Builder) Mode() Mode { return b.mode }

// State returns the lifecycle state.
func (b *Builder) State() State { return b.state }

// Parent returns the enclosing builder, or nil at top level.
func (b *Builder) Parent() *Builder { return b.parent }

// Session returns the owning session.
func (b *Builder) Session() *Session { return b.session }

// Result returns the accumulated result, or nil while it is undefined.
func (b *Builder) Result() kernel.Shape { return b.result }

// Workplanes returns the frames a sketch is relocated onto at exit.
func (b *Builder) Workplanes() []geom.Plane { return slices.Clone(b.workplanes) }

// Vertices returns the result's vertices, or only those created by the last
// combination when sel is selection.Last.
func (b *Builder) Vertices(sel selection.Select) selection.ShapeList {
	if sel == selection.Last {
		return slices.Clone(b.lastVertices)
	}
	if b.result == nil {
		return nil
	}
	return selection.Of(b.result.Vertices())
}

// Edges returns the result's edges, or only those created by the last
// combination when sel is selection.Last.
func (b *Builder) Edges(sel selection.Select) selection.ShapeList {
	if sel == selection.Last {
		return slices.Clone(b.lastEdges)
	}
	if b.result == nil {
		return nil
	}
	return selection.Of(b.result.Edges())
}

// Faces returns the result's faces, or only those created by the last
// combination when sel is selection.Last.
func (b *Builder) Faces(sel selection.Select) selection.ShapeList {
	if sel == selection.Last {
		return slices.Clone(b.lastFaces)
	}
	if b.result == nil {
		return nil
	}
	return selection.Of(b.result.Faces())
}

// Solids returns the result's solids.
func (b *Builder) Solids() selection.ShapeList {
	if b.result == nil {
		return nil
	}
	return selection.Of(b.result.Solids())
}

// PendingFaces returns the queued faces.
func (b *Builder) PendingFaces() []kernel.Shape { return slices.Clone(b.pendingFaces) }

// PendingLocations returns the workplane location of each queued face.
func (b *Builder) PendingLocations() []geom.Location { return slices.Clone(b.pendingLocations) }

// PendingEdges returns the queued edges.
func (b *Builder) PendingEdges() []kernel.Shape { return slices.Clone(b.pendingEdges) }

// checkOpen fails unless the builder accepts contributions.
func (b *Builder) checkOpen(operation string) error {
	if b.state == StateOpen {
		return nil
	}
	return ferrors.From(ErrBuilderClosed).
		WithContext("operation", operation).
		WithContext("builder", b.variant.String()).
		WithContext("state", b.state.String()).
		Build()
}
