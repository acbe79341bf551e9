package geom

import "fmt"

// Plane is a coordinate frame: an origin and orthonormal X, Y and Z directions.
type Plane struct {
	Origin Vector
	XDir   Vector
	YDir   Vector
	ZDir   Vector
}

// Named planes through the global origin.
var (
	PlaneXY = Plane{XDir: UnitX, YDir: UnitY, ZDir: UnitZ}
	PlaneYZ = Plane{XDir: UnitY, YDir: UnitZ, ZDir: UnitX}
	PlaneZX = Plane{XDir: UnitZ, YDir: UnitX, ZDir: UnitY}
	PlaneXZ = Plane{XDir: UnitX, YDir: UnitZ, ZDir: UnitY.Neg()}
)

// NewPlane builds a frame from an origin, an X direction and a normal.
// xDir is made orthogonal to zDir.
func NewPlane(origin, xDir, zDir Vector) (Plane, error) {
	z := zDir.Normalized()
	if z.IsZero() {
		return Plane{}, fmt.Errorf("plane normal must be non-zero")
	}
	x := xDir.Sub(z.Scale(xDir.Dot(z))).Normalized()
	if x.IsZero() {
		return Plane{}, fmt.Errorf("plane x direction %s is parallel to normal %s", xDir, zDir)
	}
	return Plane{Origin: origin, XDir: x, YDir: z.Cross(x), ZDir: z}, nil
}

// PlaneFromLocation returns the frame described by loc.
func PlaneFromLocation(loc Location) Plane {
	return Plane{
		Origin: loc.Position,
		XDir:   loc.Rotation.Column(0),
		YDir:   loc.Rotation.Column(1),
		ZDir:   loc.Rotation.Column(2),
	}
}

// Location returns the transform mapping plane-local coordinates to global ones.
func (p Plane) Location() Location {
	return Location{Position: p.Origin, Rotation: Columns(p.XDir, p.YDir, p.ZDir)}
}

// Offset returns the plane moved by d along its normal.
func (p Plane) Offset(d float64) Plane {
	p.Origin = p.Origin.Add(p.ZDir.Scale(d))
	return p
}

// Located returns the plane transformed by loc.
func (p Plane) Located(loc Location) Plane {
	return PlaneFromLocation(loc.Mul(p.Location()))
}

// ToLocal maps the global point v into plane coordinates.
func (p Plane) ToLocal(v Vector) Vector {
	return p.Location().Inverse().Apply(v)
}

// MirrorPoint reflects v through the plane.
func (p Plane) MirrorPoint(v Vector) Vector {
	d := v.Sub(p.Origin).Dot(p.ZDir)
	return v.Sub(p.ZDir.Scale(2 * d))
}

// MirrorDirection reflects the direction d through the plane.
func (p Plane) MirrorDirection(d Vector) Vector {
	return Reflection(p.ZDir).Apply(d)
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane(origin=%s, x=%s, z=%s)", p.Origin, p.XDir, p.ZDir)
}
