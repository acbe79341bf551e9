package geom

import "fmt"

// Location is a rigid transform: a rotation followed by a translation.
// The zero value is not the identity; use [NewLocation] or [IdentityLocation].
type Location struct {
	Position Vector
	Rotation Matrix
}

// IdentityLocation leaves points unchanged.
var IdentityLocation = Location{Rotation: Identity}

// NewLocation returns a pure translation to p.
func NewLocation(p Vector) Location {
	return Location{Position: p, Rotation: Identity}
}

// Rotated returns a pure rotation of x, y, z degrees about the global axes.
func Rotated(x, y, z float64) Location {
	return Location{Rotation: RotationXYZ(x, y, z)}
}

// Mul returns the composition l·o: o is applied first, then l.
func (l Location) Mul(o Location) Location {
	return Location{
		Position: l.Position.Add(l.Rotation.Apply(o.Position)),
		Rotation: l.Rotation.Mul(o.Rotation),
	}
}

// Inverse returns the transform undoing l.
func (l Location) Inverse() Location {
	rt := l.Rotation.Transpose()
	return Location{Position: rt.Apply(l.Position).Neg(), Rotation: rt}
}

// Apply transforms the point p.
func (l Location) Apply(p Vector) Vector {
	return l.Rotation.Apply(p).Add(l.Position)
}

// ApplyDirection rotates the direction d (translation is ignored).
func (l Location) ApplyDirection(d Vector) Vector {
	return l.Rotation.Apply(d)
}

// ZDir returns the rotated Z axis of the location.
func (l Location) ZDir() Vector { return l.Rotation.Column(2) }

// IsClose reports whether l and o agree within tol on position and orientation.
func (l Location) IsClose(o Location, tol float64) bool {
	if !l.Position.IsClose(o.Position, tol) {
		return false
	}
	for i := range 3 {
		if !l.Rotation.Column(i).IsClose(o.Rotation.Column(i), tol) {
			return false
		}
	}
	return true
}

func (l Location) String() string {
	return fmt.Sprintf("Location(pos=%s, z=%s)", l.Position, l.ZDir())
}
