package refkernel

import (
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Move returns a copy of s placed by loc.
func (k *Kernel) Move(s kernel.Shape, loc geom.Location) (kernel.Shape, error) {
	rs, err := own(s, "move target")
	if err != nil {
		return nil, err
	}
	c, _ := k.transform(rs, loc.Rotation, loc.Position)
	return c, nil
}

// Mirror returns the reflection of s through the plane.
func (k *Kernel) Mirror(s kernel.Shape, about geom.Plane) (kernel.Shape, error) {
	rs, err := own(s, "mirror target")
	if err != nil {
		return nil, err
	}
	n := about.ZDir.Normalized()
	if n.IsZero() {
		return nil, invalid("mirror plane normal must be non-zero")
	}
	c, _ := k.transform(rs, geom.Reflection(n), n.Scale(2*about.Origin.Dot(n)))
	return c, nil
}
