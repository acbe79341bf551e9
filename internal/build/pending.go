package build

import (
	"fmt"
	"slices"

	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
)

// PendingKind selects a pending queue.
type PendingKind int

const (
	PendingFace PendingKind = iota
	PendingEdge
)

func (k PendingKind) String() string {
	switch k {
	case PendingFace:
		return "face"
	case PendingEdge:
		return "edge"
	default:
		return fmt.Sprintf("pending(%d)", int(k))
	}
}

// AddToPending queues objects for the next operation that consumes them.
// Faces may be given as faces or as shapes containing faces, edges as edges
// or wires. A face's pending location is its own centre.
func (b *Builder) AddToPending(kind PendingKind, objs ...kernel.Shape) error {
	const op = "AddToPending"
	if err := b.checkOpen(op); err != nil {
		return err
	}
	if len(objs) == 0 {
		return InvalidOperation(op, "no objects given")
	}

	switch kind {
	case PendingFace:
		var faces []kernel.Shape
		var locs []geom.Location
		for _, o := range objs {
			if o == nil || kernel.Dimension(o) != 2 {
				return InvalidOperation(op, "pending faces need face-like objects")
			}
			for _, f := range o.Faces() {
				faces = append(faces, f)
				locs = append(locs, geom.NewLocation(f.Center()))
			}
		}
		b.queueFaces(faces, locs)
	case PendingEdge:
		var edges []kernel.Shape
		for _, o := range objs {
			if o == nil || kernel.Dimension(o) != 1 {
				return InvalidOperation(op, "pending edges need edges or wires")
			}
			edges = append(edges, o.Edges()...)
		}
		b.queueEdges(edges)
	default:
		return InvalidParameter(op, "kind", kind.String(), "must be face or edge")
	}
	return nil
}

func (b *Builder) queueFaces(faces []kernel.Shape, locs []geom.Location) {
	if len(faces) == 0 {
		return
	}
	b.pendingFaces = append(b.pendingFaces, faces...)
	b.pendingLocations = append(b.pendingLocations, locs...)
	b.notePending(PendingFace, len(faces))
}

func (b *Builder) queueEdges(edges []kernel.Shape) {
	if len(edges) == 0 {
		return
	}
	b.pendingEdges = append(b.pendingEdges, edges...)
	b.notePending(PendingEdge, len(edges))
}

func (b *Builder) notePending(kind PendingKind, n int) {
	s := b.session
	s.recorder.AddPending(kind.String(), n)
	observability.DebugContext(b.ctx, "Pending objects queued",
		logfields.Event(kind.String()), logfields.Count(n))
	e, err := eventstore.NewPendingAdded(s.id, eventstore.PendingAddedData{
		Variant: b.variant.String(),
		Kind:    kind.String(),
		Count:   n,
	})
	s.record(b.ctx, e, err)
}

// UsePendingFaces passes the queued faces and their workplane locations to fn.
// The queue is emptied only when fn succeeds. An empty queue is an error
// naming operation.
func (b *Builder) UsePendingFaces(operation string, fn func(faces []kernel.Shape, locs []geom.Location) error) error {
	if err := b.checkOpen(operation); err != nil {
		return err
	}
	if len(b.pendingFaces) == 0 {
		return InvalidOperation(operation, "no pending faces")
	}
	faces, locs := slices.Clone(b.pendingFaces), slices.Clone(b.pendingLocations)
	if err := fn(faces, locs); err != nil {
		return err
	}
	b.pendingFaces, b.pendingLocations = nil, nil
	return nil
}

// UsePendingEdges passes the queued edges to fn. The queue is emptied only
// when fn succeeds. An empty queue is an error naming operation.
func (b *Builder) UsePendingEdges(operation string, fn func(edges []kernel.Shape) error) error {
	if err := b.checkOpen(operation); err != nil {
		return err
	}
	if len(b.pendingEdges) == 0 {
		return InvalidOperation(operation, "no pending edges")
	}
	if err := fn(slices.Clone(b.pendingEdges)); err != nil {
		return err
	}
	b.pendingEdges = nil
	return nil
}
