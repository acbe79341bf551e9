// Package primitives holds the basic shape constructors. Each one asks the
// kernel for a shape at the local origin, places a copy at every current
// placement and combines the copies into the current builder.
package primitives

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Option configures a primitive.
type Option func(*options)

type options struct {
	mode     build.Mode
	rotation geom.Location
}

// WithMode sets the combination mode. The default is build.ModeAdd.
func WithMode(m build.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithRotation rotates the shape about its local X, Y then Z axes, in degrees,
// before it is placed.
func WithRotation(x, y, z float64) Option {
	return func(o *options) { o.rotation = geom.Rotated(x, y, z) }
}

func resolve(opts []Option) options {
	o := options{mode: build.ModeAdd, rotation: geom.IdentityLocation}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// create resolves the builder, makes the shape and places it.
func create(sess *build.Session, construct string, variants []build.Variant,
	newShape func(k kernel.Kernel) (kernel.Shape, error), opts []Option) ([]kernel.Shape, error) {
	b, err := sess.Require(construct, variants...)
	if err != nil {
		return nil, err
	}
	o := resolve(opts)

	shape, err := newShape(sess.Kernel())
	if err != nil {
		return nil, err
	}
	placed, err := Place(sess, shape, o.rotation)
	if err != nil {
		return nil, err
	}
	return b.Combine(o.mode, placed...)
}

// Place returns one copy of shape per current placement, each rotated by
// rotation first.
func Place(sess *build.Session, shape kernel.Shape, rotation geom.Location) ([]kernel.Shape, error) {
	k := sess.Kernel()
	placements := sess.Placements()
	out := make([]kernel.Shape, 0, len(placements))
	for _, loc := range placements {
		moved, err := k.Move(shape, loc.Mul(rotation))
		if err != nil {
			return nil, err
		}
		out = append(out, moved)
	}
	return out, nil
}

var (
	partOnly   = []build.Variant{build.VariantPart}
	sketchOnly = []build.Variant{build.VariantSketch}
	lineOnly   = []build.Variant{build.VariantLine}
)

// Box adds a length×width×height box centred on each placement.
func Box(sess *build.Session, length, width, height float64, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Box", partOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Box(length, width, height)
	}, opts)
}

// Cylinder adds a cylinder along Z centred on each placement.
func Cylinder(sess *build.Session, radius, height float64, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Cylinder", partOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Cylinder(radius, height)
	}, opts)
}

// Sphere adds a sphere centred on each placement.
func Sphere(sess *build.Session, radius float64, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Sphere", partOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Sphere(radius)
	}, opts)
}

// Circle adds a disk to the current sketch.
func Circle(sess *build.Session, radius float64, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Circle", sketchOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Circle(radius)
	}, opts)
}

// Rectangle adds a width×height rectangle to the current sketch.
func Rectangle(sess *build.Session, width, height float64, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Rectangle", sketchOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Rectangle(width, height)
	}, opts)
}

// Line adds a straight edge to the current line builder.
func Line(sess *build.Session, from, to geom.Vector, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Line", lineOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Line(from, to)
	}, opts)
}

// Polyline adds connected straight edges through points. Repeating the first
// point at the end closes the polyline.
func Polyline(sess *build.Session, points []geom.Vector, opts ...Option) ([]kernel.Shape, error) {
	return create(sess, "Polyline", lineOnly, func(k kernel.Kernel) (kernel.Shape, error) {
		return k.Polyline(points...)
	}, opts)
}
