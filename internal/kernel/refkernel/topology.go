package refkernel

import (
	"math"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

func (k *Kernel) vertex(p geom.Vector) *Shape {
	return &Shape{id: k.newID(), kind: kernel.KindVertex, center: p, bbox: geom.NewBoundBox(p)}
}

func (k *Kernel) lineEdge(a, b *Shape) *Shape {
	d := b.center.Sub(a.center)
	return &Shape{
		id:       k.newID(),
		kind:     kernel.KindEdge,
		geomType: kernel.GeomLine,
		center:   a.center.Add(b.center).Scale(0.5),
		bbox:     geom.NewBoundBox(a.center, b.center),
		dir:      d.Normalized(),
		length:   d.Length(),
		vertices: []*Shape{a, b},
	}
}

// circleEdge builds an arc of the given angular span (degrees) around center in
// the plane with the given normal. A full circle has a single seam vertex.
func (k *Kernel) circleEdge(center, normal geom.Vector, radius, span float64, vertices ...*Shape) *Shape {
	n := normal.Normalized()
	var b geom.BoundBox
	for _, axis := range []geom.Vector{geom.UnitX, geom.UnitY, geom.UnitZ} {
		c := n.Dot(axis)
		ext := radius * math.Sqrt(math.Max(0, 1-c*c))
		b = b.AddPoint(center.Add(axis.Scale(ext))).AddPoint(center.Sub(axis.Scale(ext)))
	}
	return &Shape{
		id:       k.newID(),
		kind:     kernel.KindEdge,
		geomType: kernel.GeomCircle,
		center:   center,
		bbox:     b,
		normal:   n,
		radius:   radius,
		length:   radius * span * math.Pi / 180,
		vertices: vertices,
	}
}

type faceSpec struct {
	geomType kernel.GeomType
	center   geom.Vector
	normal   geom.Vector
	radius   float64
	area     float64
	edges    []*Shape
}

func (k *Kernel) face(spec faceSpec) *Shape {
	var vertices [][]*Shape
	for _, e := range spec.edges {
		vertices = append(vertices, e.vertices)
	}
	f := &Shape{
		id:       k.newID(),
		kind:     kernel.KindFace,
		geomType: spec.geomType,
		center:   spec.center,
		bbox:     boundsOf(spec.edges),
		radius:   spec.radius,
		area:     spec.area,
		edges:    spec.edges,
		vertices: collect(vertices...),
	}
	if spec.geomType == kernel.GeomPlane {
		f.dir = spec.normal.Normalized()
	}
	if f.bbox.IsEmpty() {
		f.bbox = geom.NewBoundBox(spec.center)
	}
	return f
}

// solid assembles a solid from its faces; edges and vertices are gathered from the faces.
func (k *Kernel) solid(faces []*Shape, volume float64) *Shape {
	var edges, vertices [][]*Shape
	area := 0.0
	for _, f := range faces {
		edges = append(edges, f.edges)
		vertices = append(vertices, f.vertices)
		area += f.area
	}
	b := boundsOf(faces)
	return &Shape{
		id:       k.newID(),
		kind:     kernel.KindSolid,
		center:   b.Center(),
		bbox:     b,
		area:     area,
		volume:   volume,
		faces:    faces,
		edges:    collect(edges...),
		vertices: collect(vertices...),
	}
}

// rewrap returns a new top-level shape sharing every sub-element of s, s included
// when it is a bare element.
func (k *Kernel) rewrap(s *Shape) *Shape {
	c := *s
	c.id = k.newID()
	c.vertices = s.level(kernel.KindVertex)
	c.edges = s.level(kernel.KindEdge)
	c.faces = s.level(kernel.KindFace)
	c.solids = s.level(kernel.KindSolid)
	return &c
}

// transform copies s with fresh IDs, mapping points through m then adding t.
// The returned memo maps old IDs to their copies so callers can pair elements.
func (k *Kernel) transform(s *Shape, m geom.Matrix, t geom.Vector) (*Shape, map[string]*Shape) {
	memo := make(map[string]*Shape)
	return k.transformWith(s, m, t, memo), memo
}

func (k *Kernel) transformWith(s *Shape, m geom.Matrix, t geom.Vector, memo map[string]*Shape) *Shape {
	if c, ok := memo[s.id]; ok {
		return c
	}
	c := *s
	c.id = k.newID()
	memo[s.id] = &c
	c.center = m.Apply(s.center).Add(t)
	c.bbox = s.bbox.Transformed(m, t)
	c.dir = m.Apply(s.dir).Normalized()
	c.normal = m.Apply(s.normal).Normalized()
	c.vertices = k.transformList(s.vertices, m, t, memo)
	c.edges = k.transformList(s.edges, m, t, memo)
	c.faces = k.transformList(s.faces, m, t, memo)
	c.solids = k.transformList(s.solids, m, t, memo)
	return &c
}

func (k *Kernel) transformList(list []*Shape, m geom.Matrix, t geom.Vector, memo map[string]*Shape) []*Shape {
	if len(list) == 0 {
		return nil
	}
	out := make([]*Shape, len(list))
	for i, s := range list {
		out[i] = k.transformWith(s, m, t, memo)
	}
	return out
}

// combined builds the union-style wrapper of several shapes.
func (k *Kernel) combined(kind kernel.Kind, parts ...*Shape) *Shape {
	var vs, es, fs, ss [][]*Shape
	var b geom.BoundBox
	var weighted geom.Vector
	var weight, length, area, volume float64
	for _, p := range parts {
		vs = append(vs, p.level(kernel.KindVertex))
		es = append(es, p.level(kernel.KindEdge))
		fs = append(fs, p.level(kernel.KindFace))
		ss = append(ss, p.level(kernel.KindSolid))
		b = b.Union(p.bbox)
		w := math.Abs(p.measure())
		weighted = weighted.Add(p.center.Scale(w))
		weight += w
		length += p.length
		area += p.area
		volume += p.volume
	}
	center := b.Center()
	if weight > 0 {
		center = weighted.Scale(1 / weight)
	}
	out := &Shape{
		id:       k.newID(),
		kind:     kind,
		center:   center,
		bbox:     b,
		length:   length,
		area:     area,
		volume:   volume,
		vertices: collect(vs...),
		edges:    collect(es...),
		faces:    collect(fs...),
		solids:   collect(ss...),
	}
	if len(parts) > 0 {
		out.geomType = parts[0].geomType
		out.dir = parts[0].dir
		for _, p := range parts[1:] {
			if p.geomType != out.geomType {
				out.geomType = kernel.GeomOther
			}
			if !p.dir.IsClose(out.dir, k.tolerance) {
				out.dir = geom.Vector{}
			}
		}
	}
	return out
}
