package geom

import (
	"fmt"
	"math"
)

// DefaultTolerance is the distance below which two points are considered equal.
const DefaultTolerance = 1e-6

// Vector is a point or direction in 3D space.
type Vector struct {
	X, Y, Z float64
}

// Common vectors.
var (
	Origin = Vector{}
	UnitX  = Vector{X: 1}
	UnitY  = Vector{Y: 1}
	UnitZ  = Vector{Z: 1}
)

// Vec is shorthand for Vector{x, y, z}.
func Vec(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector) Scale(f float64) Vector {
	return Vector{v.X * f, v.Y * f, v.Z * f}
}
func (v Vector) Neg() Vector           { return Vector{-v.X, -v.Y, -v.Z} }
func (v Vector) Dot(o Vector) float64  { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector) Length() float64       { return math.Sqrt(v.Dot(v)) }
func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Length()
}

// Cross returns the cross product v × o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalized returns the unit vector in the direction of v, or the zero vector
// when v has (near) zero length.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l < DefaultTolerance {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// IsZero reports whether v has (near) zero length.
func (v Vector) IsZero() bool { return v.Length() < DefaultTolerance }

// IsClose reports whether v and o are within tol of each other.
func (v Vector) IsClose(o Vector, tol float64) bool {
	return v.Distance(o) <= tol
}

// IsParallel reports whether v and o point along the same line (either sense).
func (v Vector) IsParallel(o Vector, tol float64) bool {
	if v.IsZero() || o.IsZero() {
		return false
	}
	return v.Normalized().Cross(o.Normalized()).Length() <= tol
}

// Component returns the coordinate of v along the given unit direction.
func (v Vector) Component(dir Vector) float64 {
	return v.Dot(dir.Normalized())
}

// Min returns the component-wise minimum.
func (v Vector) Min(o Vector) Vector {
	return Vector{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vector) Max(o Vector) Vector {
	return Vector{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
