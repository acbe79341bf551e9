package geom

import "fmt"

// Axis is a directed line through Origin.
type Axis struct {
	Origin    Vector
	Direction Vector
}

// Global axes.
var (
	AxisX = Axis{Direction: UnitX}
	AxisY = Axis{Direction: UnitY}
	AxisZ = Axis{Direction: UnitZ}
)

// NewAxis returns an axis with a normalized direction.
func NewAxis(origin, direction Vector) (Axis, error) {
	if direction.IsZero() {
		return Axis{}, fmt.Errorf("axis direction must be non-zero")
	}
	return Axis{Origin: origin, Direction: direction.Normalized()}, nil
}

// Position returns the signed coordinate of p along the axis.
func (a Axis) Position(p Vector) float64 {
	return p.Sub(a.Origin).Component(a.Direction)
}

// DistanceTo returns the perpendicular distance from p to the axis line.
func (a Axis) DistanceTo(p Vector) float64 {
	d := p.Sub(a.Origin)
	along := a.Direction.Normalized().Scale(d.Component(a.Direction))
	return d.Sub(along).Length()
}

// Located returns the axis transformed by loc.
func (a Axis) Located(loc Location) Axis {
	return Axis{Origin: loc.Apply(a.Origin), Direction: loc.ApplyDirection(a.Direction)}
}
