package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// BoundingBox combines the axis-aligned bounds of each object: a box in a
// part, a rectangle in a sketch.
func BoundingBox(sess *build.Session, objs []kernel.Shape, opts ...Option) ([]kernel.Shape, error) {
	const op = "BoundingBox"
	b, err := sess.Require(op, build.VariantPart, build.VariantSketch)
	if err != nil {
		return nil, err
	}
	if err := operands(op, objs); err != nil {
		return nil, err
	}
	o := resolve(opts)
	k := sess.Kernel()

	bounds := make([]kernel.Shape, 0, len(objs))
	for _, obj := range objs {
		bb := obj.BoundingBox()
		if bb.IsEmpty() {
			return nil, build.InvalidOperation(op, obj.Kind().String()+" has no extent")
		}
		size := bb.Size()

		var shape kernel.Shape
		switch b.Variant() {
		case build.VariantPart:
			shape, err = k.Box(size.X, size.Y, size.Z)
		case build.VariantSketch:
			shape, err = k.Rectangle(size.X, size.Y)
		}
		if err != nil {
			return nil, err
		}
		center := bb.Center()
		if b.Variant() == build.VariantSketch {
			center.Z = 0
		}
		moved, err := k.Move(shape, geom.NewLocation(center))
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, moved)
	}
	return b.Combine(o.mode, bounds...)
}
