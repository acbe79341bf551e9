package selection

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/util/sets"
)

// Select chooses between the whole result and the most recent delta.
type Select int

const (
	// All selects every sub-element of the accumulated result.
	All Select = iota
	// Last selects the sub-elements created by the most recent combination.
	Last
)

func (s Select) String() string {
	switch s {
	case All:
		return "all"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("select(%d)", int(s))
	}
}

// SortKey names a measure shapes can be ordered by.
type SortKey int

const (
	ByLength SortKey = iota
	ByArea
	ByVolume
	ByRadius
)

func (k SortKey) value(s kernel.Shape) float64 {
	switch k {
	case ByLength:
		return s.Length()
	case ByArea:
		return s.Area()
	case ByVolume:
		return s.Volume()
	case ByRadius:
		return s.Radius()
	}
	return 0
}

// ShapeList is an ordered list of shapes. Every method returns a new list.
type ShapeList []kernel.Shape

// Of wraps a kernel slice.
func Of(shapes []kernel.Shape) ShapeList { return ShapeList(shapes) }

// FilterByKind keeps shapes of any of the given kinds.
func (l ShapeList) FilterByKind(kinds ...kernel.Kind) ShapeList {
	return l.filter(func(s kernel.Shape) bool { return slices.Contains(kinds, s.Kind()) })
}

// FilterByGeomType keeps shapes with the given underlying geometry.
func (l ShapeList) FilterByGeomType(t kernel.GeomType) ShapeList {
	return l.filter(func(s kernel.Shape) bool { return s.GeomType() == t })
}

// FilterByAxis keeps linear edges parallel to the axis and planar faces whose
// normal is parallel to it.
func (l ShapeList) FilterByAxis(axis geom.Axis, tol float64) ShapeList {
	return l.filter(func(s kernel.Shape) bool {
		d := s.Direction()
		return !d.IsZero() && d.IsParallel(axis.Direction, tol)
	})
}

// FilterByPosition keeps shapes whose centre lies within [minimum, maximum]
// along the axis.
func (l ShapeList) FilterByPosition(axis geom.Axis, minimum, maximum, tol float64) ShapeList {
	return l.filter(func(s kernel.Shape) bool {
		p := axis.Position(s.Center())
		return p >= minimum-tol && p <= maximum+tol
	})
}

func (l ShapeList) filter(keep func(kernel.Shape) bool) ShapeList {
	var out ShapeList
	for _, s := range l {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// SortByAxis orders shapes by the position of their centre along the axis.
func (l ShapeList) SortByAxis(axis geom.Axis) ShapeList {
	return l.sorted(func(s kernel.Shape) float64 { return axis.Position(s.Center()) })
}

// SortBy orders shapes by a measure, smallest first.
func (l ShapeList) SortBy(key SortKey) ShapeList {
	return l.sorted(key.value)
}

func (l ShapeList) sorted(key func(kernel.Shape) float64) ShapeList {
	out := slices.Clone(l)
	slices.SortStableFunc(out, func(a, b kernel.Shape) int { return cmp.Compare(key(a), key(b)) })
	return out
}

// GroupByAxis sorts shapes along the axis and splits them into groups whose
// centres share a position within tol.
func (l ShapeList) GroupByAxis(axis geom.Axis, tol float64) []ShapeList {
	var groups []ShapeList
	last := math.Inf(-1)
	for _, s := range l.SortByAxis(axis) {
		p := axis.Position(s.Center())
		if len(groups) == 0 || p-last > tol {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], s)
		last = p
	}
	return groups
}

// First returns the first shape.
func (l ShapeList) First() (kernel.Shape, bool) {
	if len(l) == 0 {
		return nil, false
	}
	return l[0], true
}

// Last returns the last shape.
func (l ShapeList) Last() (kernel.Shape, bool) {
	if len(l) == 0 {
		return nil, false
	}
	return l[len(l)-1], true
}

// IDs returns the identities of the shapes.
func (l ShapeList) IDs() sets.Set[string] {
	out := sets.New[string]()
	for _, s := range l {
		out.Add(s.ID())
	}
	return out
}

// Minus returns the shapes of l not present in o, keeping l's order.
func (l ShapeList) Minus(o ShapeList) ShapeList {
	drop := o.IDs()
	return l.filter(func(s kernel.Shape) bool { return !drop.Has(s.ID()) })
}

// Union returns l followed by the shapes of o not already in l.
func (l ShapeList) Union(o ShapeList) ShapeList {
	out := slices.Clone(l)
	return append(out, o.Minus(l)...)
}

// Delta returns the shapes of post whose identity is absent from pre.
func Delta(pre, post ShapeList) ShapeList {
	return post.Minus(pre)
}

// VertexList is a ShapeList of vertices.
type VertexList ShapeList

// Vertices keeps the vertices of l.
func (l ShapeList) Vertices() VertexList {
	return VertexList(l.FilterByKind(kernel.KindVertex))
}

// Points returns the vertex positions.
func (v VertexList) Points() []geom.Vector {
	out := make([]geom.Vector, len(v))
	for i, s := range v {
		out[i] = s.Center()
	}
	return out
}

// SortByDistance orders vertices by distance from p, nearest first.
func (v VertexList) SortByDistance(p geom.Vector) VertexList {
	return VertexList(ShapeList(v).sorted(func(s kernel.Shape) float64 { return s.Center().Distance(p) }))
}

// Shapes returns v as a plain kernel slice.
func (v VertexList) Shapes() []kernel.Shape { return []kernel.Shape(v) }
