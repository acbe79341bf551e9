package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Mirror reflects objs about the plane and combines the mirrored copies.
// Without objs the builder's current result is mirrored.
func Mirror(sess *build.Session, objs []kernel.Shape, about geom.Plane, opts ...Option) ([]kernel.Shape, error) {
	const op = "Mirror"
	b, err := sess.Require(op)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		result, err := requireResult(op, b)
		if err != nil {
			return nil, err
		}
		objs = []kernel.Shape{result}
	}
	if err := operands(op, objs); err != nil {
		return nil, err
	}
	o := resolve(opts)

	k := sess.Kernel()
	mirrored := make([]kernel.Shape, 0, len(objs))
	for _, obj := range objs {
		m, err := k.Mirror(obj, about)
		if err != nil {
			return nil, err
		}
		mirrored = append(mirrored, m)
	}
	return b.Combine(o.mode, mirrored...)
}
