package refkernel

import (
	"fmt"
	"math"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Fillet rounds the given edges of a solid.
func (k *Kernel) Fillet(s kernel.Shape, edges []kernel.Shape, radius float64) (kernel.Shape, error) {
	return k.blendEdges("fillet", s, edges, radius, kernel.GeomCylinder,
		func(r, l float64) float64 { return (1 - math.Pi/4) * r * r * l },
		func(r, l float64) float64 { return math.Pi / 2 * r * l })
}

// Chamfer bevels the given edges of a solid with equal legs.
func (k *Kernel) Chamfer(s kernel.Shape, edges []kernel.Shape, length float64) (kernel.Shape, error) {
	return k.blendEdges("chamfer", s, edges, length, kernel.GeomPlane,
		func(c, l float64) float64 { return c * c * l / 2 },
		func(c, l float64) float64 { return math.Sqrt2 * c * l })
}

func (k *Kernel) blendEdges(op string, s kernel.Shape, edges []kernel.Shape, size float64,
	faceType kernel.GeomType, removed, faceArea func(size, edgeLength float64) float64,
) (kernel.Shape, error) {
	rs, err := own(s, op+" target")
	if err != nil {
		return nil, err
	}
	if rs.dimension() != 3 {
		return nil, invalid("%s needs a solid, got %s", op, rs.kind)
	}
	if err := k.positive(op+" size", size); err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, invalid("%s needs at least one edge", op)
	}
	targets, err := ownAll(edges, op+" edge")
	if err != nil {
		return nil, err
	}
	known := idSet(rs.level(kernel.KindEdge))
	drop := make(map[string]struct{}, len(targets))
	for _, e := range targets {
		if _, ok := known[e.id]; !ok {
			return nil, invalid("%s edge %s does not belong to the shape", op, e.id)
		}
		if e.kind != kernel.KindEdge {
			return nil, invalid("%s target %s is a %s, not an edge", op, e.id, e.kind)
		}
		if 2*size > e.length+k.tolerance {
			return nil, invalid("%s size %g is too large for edge of length %g", op, size, e.length)
		}
		drop[e.id] = struct{}{}
	}

	out := k.rewrap(rs)
	out.solids = nil
	if rs.kind == kernel.KindCompound {
		out.solids = rs.solids
	}
	var newEdges, newFaces []*Shape
	for _, e := range unique(targets) {
		e1, e2 := k.offsetEdges(rs, e, size)
		mid := e1.center.Add(e2.center).Scale(0.5)
		f := k.face(faceSpec{
			geomType: faceType,
			center:   mid,
			normal:   mid.Sub(e.center).Neg().Normalized(),
			area:     faceArea(size, e.length),
			edges:    []*Shape{e1, e2},
		})
		if faceType == kernel.GeomCylinder {
			f.radius = size
			f.dir = e.dir
		}
		newEdges = append(newEdges, e1, e2)
		newFaces = append(newFaces, f)
		out.volume -= removed(size, e.length)
		out.area += f.area
	}
	out.edges = append(without(rs.level(kernel.KindEdge), drop), newEdges...)
	out.faces = append(slicesClone(rs.level(kernel.KindFace)), newFaces...)
	var vs [][]*Shape
	for _, e := range out.edges {
		vs = append(vs, e.vertices)
	}
	out.vertices = collect(vs...)
	return out, nil
}

// unique returns the targets once each, in argument order.
func unique(targets []*Shape) []*Shape {
	seen := make(map[string]struct{}, len(targets))
	out := make([]*Shape, 0, len(targets))
	for _, e := range targets {
		if _, ok := seen[e.id]; ok {
			continue
		}
		seen[e.id] = struct{}{}
		out = append(out, e)
	}
	return out
}

func slicesClone(in []*Shape) []*Shape {
	return append([]*Shape(nil), in...)
}

// offsetEdges returns the two boundary edges of a blend along e, displaced by
// size into the solid.
func (k *Kernel) offsetEdges(solid, e *Shape, size float64) (*Shape, *Shape) {
	inward := solid.center.Sub(e.center)
	if e.geomType == kernel.GeomCircle {
		axial := e.normal.Scale(math.Copysign(size, inward.Dot(e.normal)))
		radial := e.radius - size
		if radial <= k.tolerance {
			radial = e.radius
		}
		c1 := e.center.Add(axial)
		e1 := k.circleEdge(c1, e.normal, e.radius, 360, k.vertex(c1.Add(perpendicular(e.normal).Scale(e.radius))))
		e2 := k.circleEdge(e.center, e.normal, radial, 360, k.vertex(e.center.Add(perpendicular(e.normal).Scale(radial))))
		return e1, e2
	}
	w := inward.Sub(e.dir.Scale(inward.Dot(e.dir))).Normalized()
	if w.IsZero() {
		w = perpendicular(e.dir)
	}
	u := e.dir.Cross(w).Normalized()
	n1 := w.Add(u).Scale(size / math.Sqrt2)
	n2 := w.Sub(u).Scale(size / math.Sqrt2)
	p, q := e.vertices[0].center, e.vertices[len(e.vertices)-1].center
	e1 := k.lineEdge(k.vertex(p.Add(n1)), k.vertex(q.Add(n1)))
	e2 := k.lineEdge(k.vertex(p.Add(n2)), k.vertex(q.Add(n2)))
	return e1, e2
}

// perpendicular returns some unit vector orthogonal to d.
func perpendicular(d geom.Vector) geom.Vector {
	ref := geom.UnitX
	if math.Abs(d.Normalized().Dot(ref)) > 0.9 {
		ref = geom.UnitY
	}
	return d.Cross(ref).Normalized()
}

// Fillet2D rounds the given corners of a planar face.
func (k *Kernel) Fillet2D(face kernel.Shape, vertices []kernel.Shape, radius float64) (kernel.Shape, error) {
	return k.blendCorners("fillet", face, vertices, radius, true)
}

// Chamfer2D bevels the given corners of a planar face with equal legs.
func (k *Kernel) Chamfer2D(face kernel.Shape, vertices []kernel.Shape, length float64) (kernel.Shape, error) {
	return k.blendCorners("chamfer", face, vertices, length, false)
}

func (k *Kernel) blendCorners(op string, face kernel.Shape, vertices []kernel.Shape, size float64, round bool) (kernel.Shape, error) {
	rf, err := own(face, op+" face")
	if err != nil {
		return nil, err
	}
	if rf.kind != kernel.KindFace {
		return nil, invalid("2D %s needs a face, got %s", op, rf.kind)
	}
	if err := k.positive(op+" size", size); err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, invalid("2D %s needs at least one vertex", op)
	}
	corners, err := ownAll(vertices, op+" vertex")
	if err != nil {
		return nil, err
	}
	known := idSet(rf.level(kernel.KindVertex))
	normal := rf.dir

	edges := slicesClone(rf.level(kernel.KindEdge))
	area := rf.area
	for _, v := range unique(corners) {
		if _, ok := known[v.id]; !ok {
			return nil, invalid("%s vertex %s does not belong to the face", op, v.id)
		}
		var adjacent []int
		for i, e := range edges {
			if e.geomType == kernel.GeomLine && (e.vertices[0].id == v.id || e.vertices[1].id == v.id) {
				adjacent = append(adjacent, i)
			}
		}
		if len(adjacent) != 2 {
			return nil, invalid("%s vertex %s is not a corner between two straight edges", op, v.id)
		}
		i1, i2 := adjacent[0], adjacent[1]
		o1, o2 := otherEnd(edges[i1], v), otherEnd(edges[i2], v)
		d1 := o1.center.Sub(v.center).Normalized()
		d2 := o2.center.Sub(v.center).Normalized()
		theta := math.Acos(math.Max(-1, math.Min(1, d1.Dot(d2))))
		if theta < 1e-6 || math.Pi-theta < 1e-6 {
			return nil, invalid("%s vertex %s has no corner", op, v.id)
		}

		leg := size
		if round {
			leg = size / math.Tan(theta/2)
		}
		if leg > edges[i1].length+k.tolerance || leg > edges[i2].length+k.tolerance {
			return nil, invalid("%s size %g is too large for the edges at vertex %s", op, size, v.id)
		}
		a := k.vertex(v.center.Add(d1.Scale(leg)))
		b := k.vertex(v.center.Add(d2.Scale(leg)))

		var blend *Shape
		if round {
			if normal.IsZero() {
				normal = d1.Cross(d2).Normalized()
			}
			bisector := d1.Add(d2).Normalized()
			center := v.center.Add(bisector.Scale(size / math.Sin(theta/2)))
			blend = k.circleEdge(center, normal, size, 180-theta*180/math.Pi, a, b)
			area -= size * size * (1/math.Tan(theta/2) - (math.Pi-theta)/2)
		} else {
			blend = k.lineEdge(a, b)
			area -= size * size * math.Sin(theta) / 2
		}
		edges[i1] = k.lineEdge(a, o1)
		edges[i2] = k.lineEdge(b, o2)
		edges = append(edges, blend)
	}

	return k.face(faceSpec{
		geomType: rf.geomType,
		center:   rf.center,
		normal:   rf.dir,
		area:     area,
		edges:    edges,
	}), nil
}

func otherEnd(e, v *Shape) *Shape {
	if e.vertices[0].id == v.id {
		return e.vertices[1]
	}
	return e.vertices[0]
}

func (k *Kernel) profile(op string, face kernel.Shape) (*Shape, error) {
	rf, err := own(face, op+" profile")
	if err != nil {
		return nil, err
	}
	if rf.dimension() != 2 {
		return nil, invalid("%s needs a face profile, got %s", op, rf.kind)
	}
	return rf, nil
}

// Extrude sweeps a face along a straight vector.
func (k *Kernel) Extrude(face kernel.Shape, direction geom.Vector) (kernel.Shape, error) {
	rf, err := k.profile("extrude", face)
	if err != nil {
		return nil, err
	}
	if direction.Length() <= k.tolerance {
		return nil, invalid("extrude direction must be non-zero")
	}
	height := direction.Length()
	if n := rf.dir; !n.IsZero() {
		height = math.Abs(direction.Dot(n))
		if height <= k.tolerance {
			return nil, invalid("extrude direction %s lies in the profile plane", direction)
		}
	}
	return k.prism(rf, geom.Identity, direction, rf.area*height), nil
}

// Sweep moves a face along a path; the volume is the profile area times the path length.
func (k *Kernel) Sweep(face kernel.Shape, path kernel.Shape) (kernel.Shape, error) {
	rf, err := k.profile("sweep", face)
	if err != nil {
		return nil, err
	}
	rp, err := own(path, "sweep path")
	if err != nil {
		return nil, err
	}
	if rp.dimension() != 1 || rp.length <= k.tolerance {
		return nil, invalid("sweep path must be a curve of non-zero length, got %s", rp.kind)
	}
	vs := rp.level(kernel.KindVertex)
	var shift geom.Vector
	if len(vs) > 1 {
		shift = vs[len(vs)-1].center.Sub(vs[0].center)
	}
	return k.prism(rf, geom.Identity, shift, rf.area*rp.length), nil
}

// prism builds a solid bounded by a copy of the profile, a transformed copy and
// one side face per profile edge.
func (k *Kernel) prism(profile *Shape, m geom.Matrix, t geom.Vector, volume float64) *Shape {
	_, bottom := k.transform(profile, geom.Identity, geom.Vector{})
	_, top := k.transform(profile, m, t)

	var faces []*Shape
	for _, f := range profile.level(kernel.KindFace) {
		b := bottom[f.id]
		b.dir = b.dir.Neg()
		faces = append(faces, b, top[f.id])
	}
	rails := make(map[string]*Shape)
	for _, v := range profile.level(kernel.KindVertex) {
		rails[v.id] = k.lineEdge(bottom[v.id], top[v.id])
	}
	for _, e := range profile.level(kernel.KindEdge) {
		be, te := bottom[e.id], top[e.id]
		sideEdges := []*Shape{be, te}
		for _, v := range e.vertices {
			if r, ok := rails[v.id]; ok {
				sideEdges = append(sideEdges, r)
			}
		}
		spec := faceSpec{
			geomType: kernel.GeomOther,
			center:   be.center.Add(te.center).Scale(0.5),
			area:     e.length * t.Length(),
			edges:    collect(sideEdges),
		}
		switch e.geomType {
		case kernel.GeomLine:
			spec.geomType = kernel.GeomPlane
			spec.normal = e.dir.Cross(t)
		case kernel.GeomCircle:
			spec.geomType = kernel.GeomCylinder
			spec.radius = e.radius
		}
		f := k.face(spec)
		if e.geomType == kernel.GeomCircle {
			f.dir = t.Normalized()
		}
		faces = append(faces, f)
	}
	return k.solid(faces, volume)
}

// Revolve turns a face about an axis. The volume follows Pappus' theorem.
func (k *Kernel) Revolve(face kernel.Shape, axis geom.Axis, degrees float64) (kernel.Shape, error) {
	rf, err := k.profile("revolve", face)
	if err != nil {
		return nil, err
	}
	if degrees <= 0 || degrees > 360 {
		return nil, invalid("revolve angle must be in (0, 360], got %g", degrees)
	}
	if axis.Direction.IsZero() {
		return nil, invalid("revolve axis direction must be non-zero")
	}
	dist := axis.DistanceTo(rf.center)
	if dist <= k.tolerance {
		return nil, invalid("profile centre %s lies on the revolve axis", rf.center)
	}

	m := geom.RotationAbout(axis.Direction, degrees)
	t := axis.Origin.Sub(m.Apply(axis.Origin))
	_, start := k.transform(rf, geom.Identity, geom.Vector{})
	end := start
	if degrees < 360 {
		_, end = k.transform(rf, m, t)
	}

	dir := axis.Direction.Normalized()
	var faces []*Shape
	if degrees < 360 {
		for _, f := range rf.level(kernel.KindFace) {
			faces = append(faces, start[f.id], end[f.id])
		}
	}
	circles := make(map[string]*Shape)
	for _, v := range rf.level(kernel.KindVertex) {
		foot := axis.Origin.Add(dir.Scale(axis.Position(v.center)))
		circles[v.id] = k.circleEdge(foot, dir, v.center.Distance(foot), degrees, collect([]*Shape{start[v.id], end[v.id]})...)
	}
	for _, e := range rf.level(kernel.KindEdge) {
		sideEdges := []*Shape{start[e.id], end[e.id]}
		for _, v := range e.vertices {
			sideEdges = append(sideEdges, circles[v.id])
		}
		faces = append(faces, k.face(faceSpec{
			geomType: kernel.GeomOther,
			center:   e.center,
			area:     e.length * 2 * math.Pi * axis.DistanceTo(e.center) * degrees / 360,
			edges:    collect(sideEdges),
		}))
	}
	return k.solid(faces, rf.area*2*math.Pi*dist*degrees/360), nil
}

// Loft joins two or more faces in order. The volume sums the frusta between
// consecutive sections.
func (k *Kernel) Loft(sections []kernel.Shape) (kernel.Shape, error) {
	if len(sections) < 2 {
		return nil, invalid("loft needs at least 2 sections, got %d", len(sections))
	}
	rs := make([]*Shape, len(sections))
	for i, s := range sections {
		rf, err := k.profile(fmt.Sprintf("loft section %d", i), s)
		if err != nil {
			return nil, err
		}
		rs[i] = rf
	}

	copies := make([]map[string]*Shape, len(rs))
	for i, s := range rs {
		_, copies[i] = k.transform(s, geom.Identity, geom.Vector{})
	}
	var faces []*Shape
	for _, f := range rs[0].level(kernel.KindFace) {
		faces = append(faces, copies[0][f.id])
	}
	last := len(rs) - 1
	for _, f := range rs[last].level(kernel.KindFace) {
		faces = append(faces, copies[last][f.id])
	}

	volume := 0.0
	for i := range last {
		a, b := rs[i], rs[i+1]
		gap := b.center.Distance(a.center)
		volume += (a.area + b.area) / 2 * gap

		ea, eb := a.level(kernel.KindEdge), b.level(kernel.KindEdge)
		va, vb := a.level(kernel.KindVertex), b.level(kernel.KindVertex)
		rules := make([]*Shape, min(len(va), len(vb)))
		for j := range rules {
			rules[j] = k.lineEdge(copies[i][va[j].id], copies[i+1][vb[j].id])
		}
		for j := range min(len(ea), len(eb)) {
			sideEdges := []*Shape{copies[i][ea[j].id], copies[i+1][eb[j].id]}
			if j < len(rules) {
				sideEdges = append(sideEdges, rules[j])
			}
			faces = append(faces, k.face(faceSpec{
				geomType: kernel.GeomOther,
				center:   ea[j].center.Add(eb[j].center).Scale(0.5),
				area:     (ea[j].length + eb[j].length) / 2 * gap,
				edges:    sideEdges,
			}))
		}
	}
	return k.solid(faces, volume), nil
}

// MakeFace builds a planar face bounded by a single closed loop of edges.
func (k *Kernel) MakeFace(edges []kernel.Shape) (kernel.Shape, error) {
	if len(edges) == 0 {
		return nil, invalid("make face needs at least one edge")
	}
	given, err := ownAll(edges, "make face edge")
	if err != nil {
		return nil, err
	}
	var lists [][]*Shape
	for _, s := range given {
		if s.dimension() != 1 {
			return nil, invalid("make face needs curves, got %s", s.kind)
		}
		lists = append(lists, s.level(kernel.KindEdge))
	}
	loop := collect(lists...)

	if len(loop) == 1 && loop[0].geomType == kernel.GeomCircle && len(loop[0].vertices) == 1 {
		c := loop[0]
		return k.face(faceSpec{geomType: kernel.GeomPlane, center: c.center, normal: c.normal,
			radius: c.radius, area: math.Pi * c.radius * c.radius, edges: loop}), nil
	}

	points, err := k.walkLoop(loop)
	if err != nil {
		return nil, err
	}
	var newell, sum geom.Vector
	for i, p := range points {
		q := points[(i+1)%len(points)]
		newell = newell.Add(p.Cross(q))
		sum = sum.Add(p)
	}
	area := newell.Length() / 2
	if area <= k.tolerance {
		return nil, invalid("edges enclose no area")
	}
	return k.face(faceSpec{
		geomType: kernel.GeomPlane,
		center:   sum.Scale(1 / float64(len(points))),
		normal:   newell.Normalized(),
		area:     area,
		edges:    loop,
	}), nil
}

// walkLoop orders the edge endpoints into one closed polygon.
func (k *Kernel) walkLoop(loop []*Shape) ([]geom.Vector, error) {
	key := func(p geom.Vector) [3]int64 {
		return [3]int64{
			int64(math.Round(p.X / k.tolerance)),
			int64(math.Round(p.Y / k.tolerance)),
			int64(math.Round(p.Z / k.tolerance)),
		}
	}
	ends := make(map[[3]int64][]int)
	for i, e := range loop {
		if len(e.vertices) != 2 {
			return nil, invalid("edge %s is not an open curve", e.id)
		}
		for _, v := range e.vertices {
			kk := key(v.center)
			ends[kk] = append(ends[kk], i)
		}
	}
	for _, idx := range ends {
		if len(idx)%2 != 0 {
			return nil, invalid("edges do not form a closed loop")
		}
	}

	used := make([]bool, len(loop))
	cur := loop[0].vertices[0].center
	var points []geom.Vector
	for range loop {
		next := -1
		for _, i := range ends[key(cur)] {
			if !used[i] {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		used[next] = true
		points = append(points, cur)
		e := loop[next]
		if key(e.vertices[0].center) == key(cur) {
			cur = e.vertices[1].center
		} else {
			cur = e.vertices[0].center
		}
	}
	for _, u := range used {
		if !u {
			return nil, invalid("edges form more than one loop")
		}
	}
	return points, nil
}
