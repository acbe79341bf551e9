package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/util/sets"
)

// Fillet rounds objs with radius and replaces the builder's result.
// In a part objs are edges of the result; in a sketch they are vertices and
// every face is rounded at its own selected corners.
func Fillet(sess *build.Session, objs []kernel.Shape, radius float64) ([]kernel.Shape, error) {
	k := sess.Kernel()
	return blend(sess, "Fillet", "radius", objs, radius, k.Fillet, k.Fillet2D)
}

// Chamfer bevels objs with length and replaces the builder's result.
// In a part objs are edges of the result; in a sketch they are vertices.
func Chamfer(sess *build.Session, objs []kernel.Shape, length float64) ([]kernel.Shape, error) {
	k := sess.Kernel()
	return blend(sess, "Chamfer", "length", objs, length, k.Chamfer, k.Chamfer2D)
}

type blendFunc func(s kernel.Shape, targets []kernel.Shape, size float64) (kernel.Shape, error)

func blend(sess *build.Session, op, param string, objs []kernel.Shape, size float64, solid, planar blendFunc) ([]kernel.Shape, error) {
	b, err := sess.Require(op, build.VariantPart, build.VariantSketch)
	if err != nil {
		return nil, err
	}
	if err := operands(op, objs); err != nil {
		return nil, err
	}
	if !(size > 0) {
		return nil, build.InvalidParameter(op, param, size, "must be greater than 0")
	}
	result, err := requireResult(op, b)
	if err != nil {
		return nil, err
	}

	switch b.Variant() {
	case build.VariantPart:
		for _, o := range objs {
			if o.Kind() != kernel.KindEdge {
				return nil, build.InvalidOperation(op, "part targets must be edges, got "+o.Kind().String())
			}
		}
		next, err := solid(result, objs, size)
		if err != nil {
			return nil, err
		}
		return b.Combine(build.ModeReplace, next)

	case build.VariantSketch:
		for _, o := range objs {
			if o.Kind() != kernel.KindVertex {
				return nil, build.InvalidOperation(op, "sketch targets must be vertices, got "+o.Kind().String())
			}
		}
		faces, err := blendFaces(op, result.Faces(), objs, size, planar)
		if err != nil {
			return nil, err
		}
		return b.Combine(build.ModeReplace, faces...)
	}
	return nil, build.InvalidOperation(op, "unsupported builder "+b.Variant().String())
}

// blendFaces applies planar to each face with the target vertices that
// belong to it. A vertex shared by several faces is blended in each of them.
// Faces without targets are kept. Every target must belong to some face.
func blendFaces(op string, faces, targets []kernel.Shape, size float64, planar blendFunc) ([]kernel.Shape, error) {
	wanted := sets.New[string]()
	for _, t := range targets {
		wanted.Add(t.ID())
	}
	used := sets.New[string]()

	out := make([]kernel.Shape, 0, len(faces))
	for _, f := range faces {
		var own []kernel.Shape
		for _, v := range f.Vertices() {
			if wanted.Has(v.ID()) {
				own = append(own, v)
				used.Add(v.ID())
			}
		}
		if len(own) == 0 {
			out = append(out, f)
			continue
		}
		next, err := planar(f, own, size)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}
	if used.Len() != wanted.Len() {
		return nil, build.InvalidOperation(op, "vertex does not belong to the sketch")
	}
	return out, nil
}
