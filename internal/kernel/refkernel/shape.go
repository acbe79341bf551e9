package refkernel

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Shape is the refkernel implementation of kernel.Shape.
type Shape struct {
	id       string
	kind     kernel.Kind
	geomType kernel.GeomType
	center   geom.Vector
	bbox     geom.BoundBox
	dir      geom.Vector
	normal   geom.Vector // plane normal of circular edges
	radius   float64
	length   float64
	area     float64
	volume   float64

	vertices []*Shape
	edges    []*Shape
	faces    []*Shape
	solids   []*Shape
}

var _ kernel.Shape = (*Shape)(nil)

func (s *Shape) ID() string                  { return s.id }
func (s *Shape) Kind() kernel.Kind           { return s.kind }
func (s *Shape) GeomType() kernel.GeomType   { return s.geomType }
func (s *Shape) Center() geom.Vector         { return s.center }
func (s *Shape) BoundingBox() geom.BoundBox  { return s.bbox }
func (s *Shape) Direction() geom.Vector      { return s.dir }
func (s *Shape) Radius() float64             { return s.radius }
func (s *Shape) Length() float64             { return s.length }
func (s *Shape) Area() float64               { return s.area }
func (s *Shape) Volume() float64             { return s.volume }
func (s *Shape) Vertices() []kernel.Shape    { return toShapes(s.level(kernel.KindVertex)) }
func (s *Shape) Edges() []kernel.Shape       { return toShapes(s.level(kernel.KindEdge)) }
func (s *Shape) Faces() []kernel.Shape       { return toShapes(s.level(kernel.KindFace)) }
func (s *Shape) Solids() []kernel.Shape      { return toShapes(s.level(kernel.KindSolid)) }

// level returns the stored sub-elements of the given kind, or the shape itself
// when it is a bare element of that kind.
func (s *Shape) level(k kernel.Kind) []*Shape {
	var stored []*Shape
	switch k {
	case kernel.KindVertex:
		stored = s.vertices
	case kernel.KindEdge:
		stored = s.edges
	case kernel.KindFace:
		stored = s.faces
	case kernel.KindSolid:
		stored = s.solids
	}
	if len(stored) > 0 {
		return stored
	}
	if s.kind == k {
		return []*Shape{s}
	}
	return nil
}

func (s *Shape) dimension() int { return kernel.Dimension(s) }

func (s *Shape) measure() float64 { return kernel.Measure(s) }

func toShapes(in []*Shape) []kernel.Shape {
	if len(in) == 0 {
		return nil
	}
	out := make([]kernel.Shape, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// collect concatenates element lists, dropping repeated IDs and keeping first-seen order.
func collect(lists ...[]*Shape) []*Shape {
	seen := make(map[string]struct{})
	var out []*Shape
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s.id]; ok {
				continue
			}
			seen[s.id] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// without returns list minus every element whose ID is in drop.
func without(list []*Shape, drop map[string]struct{}) []*Shape {
	out := make([]*Shape, 0, len(list))
	for _, s := range list {
		if _, ok := drop[s.id]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func idSet(list []*Shape) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, s := range list {
		out[s.id] = struct{}{}
	}
	return out
}

func boundsOf(list []*Shape) geom.BoundBox {
	var b geom.BoundBox
	for _, s := range list {
		b = b.Union(s.bbox)
	}
	return b
}

func sortByID(list []*Shape) {
	slices.SortFunc(list, func(a, b *Shape) int { return strings.Compare(a.id, b.id) })
}
