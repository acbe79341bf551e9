package locate

import (
	"math"

	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
)

// ErrInvalidParameter is matched by every generator validation failure.
var ErrInvalidParameter = ferrors.ValidationError("invalid parameter").Build()

func invalidParameter(generator, parameter string, value any, rule string) error {
	return ferrors.From(ErrInvalidParameter).
		WithContext("operation", generator).
		WithContext("parameter", parameter).
		WithContext("value", value).
		WithContext("rule", rule).
		Build()
}

func positiveCount(generator, parameter string, n int) error {
	if n < 1 {
		return invalidParameter(generator, parameter, n, "must be at least 1")
	}
	return nil
}

func positiveLength(generator, parameter string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalidParameter(generator, parameter, v, "must be greater than 0")
	}
	return nil
}

// Points returns one translation per point.
func Points(points ...geom.Vector) []geom.Location {
	out := make([]geom.Location, len(points))
	for i, p := range points {
		out[i] = geom.NewLocation(p)
	}
	return out
}

// Grid returns xCount×yCount translations on a rectangular grid centred on the
// origin, x-major.
func Grid(xSpacing, ySpacing float64, xCount, yCount int) ([]geom.Location, error) {
	const name = "GridLocations"
	if err := positiveLength(name, "x_spacing", xSpacing); err != nil {
		return nil, err
	}
	if err := positiveLength(name, "y_spacing", ySpacing); err != nil {
		return nil, err
	}
	if err := positiveCount(name, "x_count", xCount); err != nil {
		return nil, err
	}
	if err := positiveCount(name, "y_count", yCount); err != nil {
		return nil, err
	}

	x0 := -float64(xCount-1) * xSpacing / 2
	y0 := -float64(yCount-1) * ySpacing / 2
	out := make([]geom.Location, 0, xCount*yCount)
	for i := range xCount {
		for j := range yCount {
			out = append(out, geom.NewLocation(geom.Vec(x0+float64(i)*xSpacing, y0+float64(j)*ySpacing, 0)))
		}
	}
	return out, nil
}

// PolarOption tunes Polar.
type PolarOption func(*polarConfig)

type polarConfig struct {
	start    float64
	span     float64
	rotate   bool
	endpoint bool
}

// WithStartAngle sets the angle of the first location in degrees (default 0).
func WithStartAngle(degrees float64) PolarOption {
	return func(c *polarConfig) { c.start = degrees }
}

// WithAngularRange sets the swept angle in degrees (default 360).
func WithAngularRange(degrees float64) PolarOption {
	return func(c *polarConfig) { c.span = degrees }
}

// WithEndpoint places the last location at start+range instead of one step short of it.
func WithEndpoint() PolarOption {
	return func(c *polarConfig) { c.endpoint = true }
}

// WithoutRotation keeps every location aligned with the frame instead of facing outwards.
func WithoutRotation() PolarOption {
	return func(c *polarConfig) { c.rotate = false }
}

// Polar returns count locations on a circle of the given radius. Each location
// is rotated about Z so its X axis points away from the centre.
func Polar(radius float64, count int, opts ...PolarOption) ([]geom.Location, error) {
	const name = "PolarLocations"
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, invalidParameter(name, "radius", radius, "must not be negative")
	}
	if err := positiveCount(name, "count", count); err != nil {
		return nil, err
	}
	cfg := polarConfig{span: 360, rotate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.span == 0 && count > 1 {
		return nil, invalidParameter(name, "angular_range", cfg.span, "must be non-zero for more than one location")
	}

	step := cfg.span / float64(count)
	if cfg.endpoint && count > 1 {
		step = cfg.span / float64(count-1)
	}
	out := make([]geom.Location, count)
	for i := range count {
		angle := cfg.start + float64(i)*step
		rad := angle * math.Pi / 180
		loc := geom.NewLocation(geom.Vec(radius*math.Cos(rad), radius*math.Sin(rad), 0))
		if cfg.rotate {
			loc.Rotation = geom.RotationAbout(geom.UnitZ, angle)
		}
		out[i] = loc
	}
	return out, nil
}

// Hex returns xCount×yCount translations on a hexagonal close-packed grid of
// cells with the given apothem, centred on the origin. Odd columns are shifted
// up by one apothem.
func Hex(apothem float64, xCount, yCount int) ([]geom.Location, error) {
	const name = "HexLocations"
	if err := positiveLength(name, "apothem", apothem); err != nil {
		return nil, err
	}
	if err := positiveCount(name, "x_count", xCount); err != nil {
		return nil, err
	}
	if err := positiveCount(name, "y_count", yCount); err != nil {
		return nil, err
	}

	xSpacing := 3 * apothem / math.Sqrt(3)
	ySpacing := 2 * apothem
	points := make([]geom.Vector, 0, xCount*yCount)
	var bounds geom.BoundBox
	for i := range xCount {
		for j := range yCount {
			p := geom.Vec(float64(i)*xSpacing, float64(j)*ySpacing, 0)
			if i%2 == 1 {
				p.Y += ySpacing / 2
			}
			points = append(points, p)
			bounds = bounds.AddPoint(p)
		}
	}
	offset := bounds.Center()
	for i := range points {
		points[i] = points[i].Sub(offset)
	}
	return Points(points...), nil
}
