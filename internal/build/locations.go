package build

import (
	"log/slog"

	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/locate"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
)

// locationScope is one level of the location stack. Points are relative to
// each frame.
type locationScope struct {
	generator string
	frames    []geom.Plane
	points    []geom.Location
}

// Frames returns the frames of the innermost location scope, or the default
// workplane when none is open.
func (s *Session) Frames() []geom.Plane {
	if top, ok := s.locations.Current(); ok {
		return append([]geom.Plane(nil), top.frames...)
	}
	return []geom.Plane{s.defaultPlane}
}

// Points returns the points of the innermost location scope, relative to each frame.
func (s *Session) Points() []geom.Location {
	if top, ok := s.locations.Current(); ok {
		return append([]geom.Location(nil), top.points...)
	}
	return []geom.Location{geom.IdentityLocation}
}

// Placements returns one absolute location per (frame, point) pair of the
// innermost scope, frame-major. Outer scopes do not contribute.
func (s *Session) Placements() []geom.Location {
	frames, points := s.Frames(), s.Points()
	out := make([]geom.Location, 0, len(frames)*len(points))
	for _, f := range frames {
		fl := f.Location()
		for _, p := range points {
			out = append(out, fl.Mul(p))
		}
	}
	return out
}

// LocationDepth returns the number of open location scopes.
func (s *Session) LocationDepth() int { return s.locations.Depth() }

// Workplanes runs fn with planes as the current frames and the frame origin
// as the only point.
func (s *Session) Workplanes(planes []geom.Plane, fn func() error) error {
	if len(planes) == 0 {
		return InvalidParameter("Workplanes", "planes", 0, "must be at least 1")
	}
	return s.withScope(locationScope{
		generator: "Workplanes",
		frames:    append([]geom.Plane(nil), planes...),
		points:    []geom.Location{geom.IdentityLocation},
	}, fn)
}

// Locations runs fn with points replacing the current point set. The frames
// are kept.
func (s *Session) Locations(points []geom.Location, fn func() error) error {
	if len(points) == 0 {
		return InvalidParameter("Locations", "points", 0, "must be at least 1")
	}
	return s.withPoints("Locations", append([]geom.Location(nil), points...), fn)
}

// GridLocations runs fn at xCount×yCount points on a rectangular grid
// centred on each frame's origin.
func (s *Session) GridLocations(xSpacing, ySpacing float64, xCount, yCount int, fn func() error) error {
	points, err := locate.Grid(xSpacing, ySpacing, xCount, yCount)
	if err != nil {
		return err
	}
	return s.withPoints("GridLocations", points, fn)
}

// PolarLocations runs fn at count points on a circle of radius around each
// frame's origin, each rotated to face outwards unless told otherwise.
func (s *Session) PolarLocations(radius float64, count int, fn func() error, opts ...locate.PolarOption) error {
	points, err := locate.Polar(radius, count, opts...)
	if err != nil {
		return err
	}
	return s.withPoints("PolarLocations", points, fn)
}

// HexLocations runs fn at the centres of an xCount×yCount hexagon array
// with the given apothem, centred on each frame's origin.
func (s *Session) HexLocations(apothem float64, xCount, yCount int, fn func() error) error {
	points, err := locate.Hex(apothem, xCount, yCount)
	if err != nil {
		return err
	}
	return s.withPoints("HexLocations", points, fn)
}

func (s *Session) withPoints(generator string, points []geom.Location, fn func() error) error {
	return s.withScope(locationScope{generator: generator, frames: s.Frames(), points: points}, fn)
}

// withScope pushes scope, runs fn and pops the scope again, also when fn panics.
func (s *Session) withScope(scope locationScope, fn func() error) (err error) {
	depth := s.pushLocations(scope)
	defer func() {
		if perr := s.popLocations(depth); perr != nil && err == nil {
			err = perr
		}
	}()
	return fn()
}

func (s *Session) pushLocations(scope locationScope) int {
	s.locations.Push(scope)
	depth := s.locations.Depth()
	s.recorder.SetLocationDepth(depth)

	observability.DebugContext(s.ctx, "Locations pushed",
		logfields.Operation(scope.generator),
		logfields.Depth(depth),
		slog.Int("frames", len(scope.frames)),
		slog.Int("points", len(scope.points)),
	)
	e, err := eventstore.NewLocationsPushed(s.id, eventstore.LocationsPushedData{
		Generator: scope.generator,
		Frames:    len(scope.frames),
		Points:    len(scope.points),
		Depth:     depth,
	})
	s.record(s.ctx, e, err)
	return depth
}

// popLocations pops back to depth-1. A different current depth means a
// scope leaked or was closed twice.
func (s *Session) popLocations(depth int) error {
	var err error
	if got := s.locations.Depth(); got != depth {
		err = ferrors.From(ErrScopeMismatch).
			WithContext("operation", "locations").
			WithContext("depth", got).
			WithContext("expected", depth).
			Build()
	}
	for s.locations.Depth() >= depth && s.locations.Depth() > 0 {
		s.locations.Pop()
	}
	s.recorder.SetLocationDepth(s.locations.Depth())
	return err
}
