package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/primitives"
)

// Add contributes existing objects to the current builder.
//
// In a part, faces are queued as pending faces, edges and wires as pending
// edges, and solids are placed at every placement and combined. In a sketch,
// faces are placed and combined and edges are queued. A line accepts edges
// and wires only.
func Add(sess *build.Session, objs []kernel.Shape, opts ...Option) ([]kernel.Shape, error) {
	const op = "Add"
	b, err := sess.Require(op)
	if err != nil {
		return nil, err
	}
	if err := operands(op, objs); err != nil {
		return nil, err
	}
	o := resolve(opts)

	var combine, faces, edges []kernel.Shape
	for _, obj := range objs {
		switch d := kernel.Dimension(obj); {
		case d == b.Variant().Dimension():
			combine = append(combine, obj)
		case d == 2 && b.Variant() == build.VariantPart:
			faces = append(faces, obj)
		case d == 1 && b.Variant() != build.VariantLine:
			edges = append(edges, obj)
		default:
			return nil, build.InvalidOperation(op, obj.Kind().String()+" cannot be added to a "+b.Variant().String())
		}
	}

	// Place everything before touching the builder so a kernel failure
	// leaves it unchanged.
	placedFaces, err := placeAll(sess, faces, o)
	if err != nil {
		return nil, err
	}
	placedEdges, err := placeAll(sess, edges, o)
	if err != nil {
		return nil, err
	}
	placed, err := placeAll(sess, combine, o)
	if err != nil {
		return nil, err
	}

	var out []kernel.Shape
	if len(placed) > 0 {
		if out, err = b.Combine(o.mode, placed...); err != nil {
			return nil, err
		}
	}
	if len(placedFaces) > 0 {
		if err := b.AddToPending(build.PendingFace, placedFaces...); err != nil {
			return nil, err
		}
		out = append(out, placedFaces...)
	}
	if len(placedEdges) > 0 {
		if err := b.AddToPending(build.PendingEdge, placedEdges...); err != nil {
			return nil, err
		}
		out = append(out, placedEdges...)
	}
	return out, nil
}

func placeAll(sess *build.Session, objs []kernel.Shape, o options) ([]kernel.Shape, error) {
	var out []kernel.Shape
	for _, obj := range objs {
		placed, err := primitives.Place(sess, obj, o.rotation)
		if err != nil {
			return nil, err
		}
		out = append(out, placed...)
	}
	return out, nil
}
