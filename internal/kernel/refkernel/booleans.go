package refkernel

import (
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Union fuses a and b. Measures add; every sub-element of both operands survives.
func (k *Kernel) Union(a, b kernel.Shape) (kernel.Shape, error) {
	ra, err := own(a, "union operand")
	if err != nil {
		return nil, err
	}
	rb, err := own(b, "union operand")
	if err != nil {
		return nil, err
	}
	return k.combined(unionKind(ra, rb), ra, rb), nil
}

func unionKind(a, b *Shape) kernel.Kind {
	switch {
	case a.kind == b.kind && (a.kind == kernel.KindSolid || a.kind == kernel.KindFace):
		return a.kind
	case a.dimension() == 1 && b.dimension() == 1:
		return kernel.KindWire
	}
	return kernel.KindCompound
}

// Difference removes tool from a. When the bounding boxes do not meet, a is
// returned unchanged under a new ID. Otherwise the tool's faces, edges and
// vertices become part of a's boundary and, for operands of the same
// dimension, the tool's measure is subtracted.
func (k *Kernel) Difference(a, tool kernel.Shape) (kernel.Shape, error) {
	ra, err := own(a, "difference operand")
	if err != nil {
		return nil, err
	}
	rt, err := own(tool, "difference tool")
	if err != nil {
		return nil, err
	}
	if ra.dimension() < 2 {
		return nil, invalid("difference needs a face or solid operand, got %s", ra.kind)
	}
	if !ra.bbox.Intersects(rt.bbox, k.tolerance) {
		return k.rewrap(ra), nil
	}

	out := k.rewrap(ra)
	out.vertices = collect(ra.level(kernel.KindVertex), rt.level(kernel.KindVertex))
	out.edges = collect(ra.level(kernel.KindEdge), rt.level(kernel.KindEdge))
	out.faces = collect(ra.level(kernel.KindFace), rt.level(kernel.KindFace))
	out.solids = nil
	if ra.kind == kernel.KindCompound {
		out.solids = ra.solids
	}
	if ra.dimension() == rt.dimension() {
		switch ra.dimension() {
		case 3:
			out.volume = ra.volume - rt.volume
		case 2:
			out.area = ra.area - rt.area
		}
	}
	return out, nil
}

// Intersection keeps the common part of a and b. Disjoint operands give an
// empty compound; otherwise the operand with the smaller measure is kept.
func (k *Kernel) Intersection(a, b kernel.Shape) (kernel.Shape, error) {
	ra, err := own(a, "intersection operand")
	if err != nil {
		return nil, err
	}
	rb, err := own(b, "intersection operand")
	if err != nil {
		return nil, err
	}
	if !ra.bbox.Intersects(rb.bbox, k.tolerance) {
		return &Shape{id: k.newID(), kind: kernel.KindCompound}, nil
	}
	keep := ra
	if rb.dimension() < ra.dimension() ||
		(rb.dimension() == ra.dimension() && rb.measure() < ra.measure()) {
		keep = rb
	}
	return k.rewrap(keep), nil
}
