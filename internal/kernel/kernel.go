package kernel

import "git.home.luguber.info/inful/partbuilder/internal/geom"

// Shape is an immutable kernel value: a vertex, edge, wire, face, solid or a
// compound of those.
type Shape interface {
	// ID identifies the shape. Sub-elements shared between two results have the same ID.
	ID() string
	Kind() Kind
	GeomType() GeomType
	Center() geom.Vector
	BoundingBox() geom.BoundBox
	// Direction is the tangent of a linear edge or the normal of a planar face,
	// and the zero vector otherwise.
	Direction() geom.Vector
	Radius() float64
	Length() float64
	Area() float64
	Volume() float64

	Vertices() []Shape
	Edges() []Shape
	Faces() []Shape
	Solids() []Shape
}

// Booleans combines shapes.
type Booleans interface {
	Union(a, b Shape) (Shape, error)
	Difference(a, b Shape) (Shape, error)
	Intersection(a, b Shape) (Shape, error)
}

// Features derives new shapes from existing ones.
type Features interface {
	Fillet(s Shape, edges []Shape, radius float64) (Shape, error)
	Chamfer(s Shape, edges []Shape, length float64) (Shape, error)
	Fillet2D(face Shape, vertices []Shape, radius float64) (Shape, error)
	Chamfer2D(face Shape, vertices []Shape, length float64) (Shape, error)
	Extrude(face Shape, direction geom.Vector) (Shape, error)
	Revolve(face Shape, axis geom.Axis, degrees float64) (Shape, error)
	Sweep(face Shape, path Shape) (Shape, error)
	Loft(sections []Shape) (Shape, error)
	MakeFace(edges []Shape) (Shape, error)
}

// Transforms relocates shapes. Results always carry fresh IDs.
type Transforms interface {
	Move(s Shape, loc geom.Location) (Shape, error)
	Mirror(s Shape, about geom.Plane) (Shape, error)
}

// Primitives creates basic shapes centred on the local origin.
type Primitives interface {
	Box(length, width, height float64) (Shape, error)
	Cylinder(radius, height float64) (Shape, error)
	Sphere(radius float64) (Shape, error)
	Circle(radius float64) (Shape, error)
	Rectangle(width, height float64) (Shape, error)
	Line(from, to geom.Vector) (Shape, error)
	Polyline(points ...geom.Vector) (Shape, error)
}

// Kernel is the full capability set the engine consumes.
type Kernel interface {
	Booleans
	Features
	Transforms
	Primitives
}

// Dimension returns 3 for solid-like shapes, 2 for face-like, 1 for curve-like
// and 0 for vertices or empty compounds.
func Dimension(s Shape) int {
	switch s.Kind() {
	case KindSolid:
		return 3
	case KindFace, KindShell:
		return 2
	case KindEdge, KindWire:
		return 1
	case KindVertex:
		return 0
	}
	switch {
	case len(s.Solids()) > 0:
		return 3
	case len(s.Faces()) > 0:
		return 2
	case len(s.Edges()) > 0:
		return 1
	}
	return 0
}

// Measure returns the size of s in its own dimension: volume, area or length.
func Measure(s Shape) float64 {
	switch Dimension(s) {
	case 3:
		return s.Volume()
	case 2:
		return s.Area()
	case 1:
		return s.Length()
	}
	return 0
}
