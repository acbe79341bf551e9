package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Extrude turns every pending face of the current part into a prism along
// its normal by amount and combines the prisms. A negative amount extrudes
// against the normal.
func Extrude(sess *build.Session, amount float64, opts ...Option) ([]kernel.Shape, error) {
	const op = "Extrude"
	b, err := sess.Require(op, build.VariantPart)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, build.InvalidParameter(op, "amount", amount, "must not be 0")
	}
	o := resolve(opts)
	k := sess.Kernel()

	var out []kernel.Shape
	err = b.UsePendingFaces(op, func(faces []kernel.Shape, locs []geom.Location) error {
		solids := make([]kernel.Shape, 0, len(faces))
		for i, f := range faces {
			normal := f.Direction()
			if normal.IsZero() {
				normal = locs[i].ZDir()
			}
			s, err := k.Extrude(f, normal.Normalized().Scale(amount))
			if err != nil {
				return err
			}
			solids = append(solids, s)
		}
		combined, err := b.Combine(o.mode, solids...)
		if err != nil {
			return err
		}
		out = combined
		return nil
	})
	return out, err
}

// Revolve sweeps every pending face of the current part around axis by
// degrees and combines the results.
func Revolve(sess *build.Session, axis geom.Axis, degrees float64, opts ...Option) ([]kernel.Shape, error) {
	const op = "Revolve"
	b, err := sess.Require(op, build.VariantPart)
	if err != nil {
		return nil, err
	}
	if !(degrees > 0) || degrees > 360 {
		return nil, build.InvalidParameter(op, "degrees", degrees, "must be in (0, 360]")
	}
	o := resolve(opts)
	k := sess.Kernel()

	var out []kernel.Shape
	err = b.UsePendingFaces(op, func(faces []kernel.Shape, _ []geom.Location) error {
		solids := make([]kernel.Shape, 0, len(faces))
		for _, f := range faces {
			s, err := k.Revolve(f, axis, degrees)
			if err != nil {
				return err
			}
			solids = append(solids, s)
		}
		combined, err := b.Combine(o.mode, solids...)
		if err != nil {
			return err
		}
		out = combined
		return nil
	})
	return out, err
}

// Sweep moves every pending face along the path formed by the pending edges
// and combines the results. Both queues are consumed.
func Sweep(sess *build.Session, opts ...Option) ([]kernel.Shape, error) {
	const op = "Sweep"
	b, err := sess.Require(op, build.VariantPart)
	if err != nil {
		return nil, err
	}
	o := resolve(opts)
	k := sess.Kernel()

	var out []kernel.Shape
	err = b.UsePendingEdges(op, func(edges []kernel.Shape) error {
		path, err := joinEdges(k, edges)
		if err != nil {
			return err
		}
		return b.UsePendingFaces(op, func(faces []kernel.Shape, _ []geom.Location) error {
			solids := make([]kernel.Shape, 0, len(faces))
			for _, f := range faces {
				s, err := k.Sweep(f, path)
				if err != nil {
					return err
				}
				solids = append(solids, s)
			}
			combined, err := b.Combine(o.mode, solids...)
			if err != nil {
				return err
			}
			out = combined
			return nil
		})
	})
	return out, err
}

// Loft joins the pending faces, in queue order, into one solid and combines it.
func Loft(sess *build.Session, opts ...Option) ([]kernel.Shape, error) {
	const op = "Loft"
	b, err := sess.Require(op, build.VariantPart)
	if err != nil {
		return nil, err
	}
	o := resolve(opts)

	var out []kernel.Shape
	err = b.UsePendingFaces(op, func(faces []kernel.Shape, _ []geom.Location) error {
		if len(faces) < 2 {
			return build.InvalidOperation(op, "needs at least two pending faces")
		}
		s, err := sess.Kernel().Loft(faces)
		if err != nil {
			return err
		}
		combined, err := b.Combine(o.mode, s)
		if err != nil {
			return err
		}
		out = combined
		return nil
	})
	return out, err
}

// MakeFace builds a face from the pending edges of the current sketch and
// combines it.
func MakeFace(sess *build.Session, opts ...Option) ([]kernel.Shape, error) {
	const op = "MakeFace"
	b, err := sess.Require(op, build.VariantSketch)
	if err != nil {
		return nil, err
	}
	o := resolve(opts)

	var out []kernel.Shape
	err = b.UsePendingEdges(op, func(edges []kernel.Shape) error {
		f, err := sess.Kernel().MakeFace(edges)
		if err != nil {
			return err
		}
		combined, err := b.Combine(o.mode, f)
		if err != nil {
			return err
		}
		out = combined
		return nil
	})
	return out, err
}

// joinEdges unions edges into one path.
func joinEdges(k kernel.Kernel, edges []kernel.Shape) (kernel.Shape, error) {
	path := edges[0]
	for _, e := range edges[1:] {
		next, err := k.Union(path, e)
		if err != nil {
			return nil, err
		}
		path = next
	}
	return path, nil
}
