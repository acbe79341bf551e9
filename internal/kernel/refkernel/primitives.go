package refkernel

import (
	"math"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

func (k *Kernel) positive(name string, v float64) error {
	if v <= k.tolerance || math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be positive, got %g", name, v)
	}
	return nil
}

// Box returns a length×width×height box centred on the origin.
func (k *Kernel) Box(length, width, height float64) (kernel.Shape, error) {
	for _, p := range []struct {
		name string
		v    float64
	}{{"length", length}, {"width", width}, {"height", height}} {
		if err := k.positive(p.name, p.v); err != nil {
			return nil, err
		}
	}
	half := geom.Vec(length/2, width/2, height/2)
	dims := [3]float64{length, width, height}

	// corner i has bit 0 → +x, bit 1 → +y, bit 2 → +z
	var corners [8]*Shape
	for i := range 8 {
		p := geom.Vec(-half.X, -half.Y, -half.Z)
		if i&1 != 0 {
			p.X = half.X
		}
		if i&2 != 0 {
			p.Y = half.Y
		}
		if i&4 != 0 {
			p.Z = half.Z
		}
		corners[i] = k.vertex(p)
	}

	edgeOf := make(map[[2]int]*Shape)
	for i := range 8 {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				edgeOf[[2]int{i, i | bit}] = k.lineEdge(corners[i], corners[i|bit])
			}
		}
	}

	axes := [3]geom.Vector{geom.UnitX, geom.UnitY, geom.UnitZ}
	var faces []*Shape
	for a := range 3 {
		bit := 1 << a
		for _, side := range []int{0, 1} {
			var edges []*Shape
			for pair, e := range edgeOf {
				if (pair[0]&bit != 0) == (side == 1) && (pair[1]&bit != 0) == (side == 1) {
					edges = append(edges, e)
				}
			}
			sortByID(edges)
			sign := float64(2*side - 1)
			faces = append(faces, k.face(faceSpec{
				geomType: kernel.GeomPlane,
				center:   axes[a].Scale(sign * dims[a] / 2),
				normal:   axes[a].Scale(sign),
				area:     dims[(a+1)%3] * dims[(a+2)%3],
				edges:    edges,
			}))
		}
	}
	return k.solid(faces, length*width*height), nil
}

// Cylinder returns a cylinder along Z centred on the origin.
func (k *Kernel) Cylinder(radius, height float64) (kernel.Shape, error) {
	if err := k.positive("radius", radius); err != nil {
		return nil, err
	}
	if err := k.positive("height", height); err != nil {
		return nil, err
	}
	bottomC := geom.Vec(0, 0, -height/2)
	topC := geom.Vec(0, 0, height/2)
	vb := k.vertex(bottomC.Add(geom.Vec(radius, 0, 0)))
	vt := k.vertex(topC.Add(geom.Vec(radius, 0, 0)))
	eb := k.circleEdge(bottomC, geom.UnitZ, radius, 360, vb)
	et := k.circleEdge(topC, geom.UnitZ, radius, 360, vt)
	seam := k.lineEdge(vb, vt)
	disk := math.Pi * radius * radius
	faces := []*Shape{
		k.face(faceSpec{geomType: kernel.GeomPlane, center: bottomC, normal: geom.UnitZ.Neg(), area: disk, edges: []*Shape{eb}}),
		k.face(faceSpec{geomType: kernel.GeomPlane, center: topC, normal: geom.UnitZ, area: disk, edges: []*Shape{et}}),
		k.face(faceSpec{geomType: kernel.GeomCylinder, center: geom.Origin, radius: radius,
			area: 2 * math.Pi * radius * height, edges: []*Shape{eb, et, seam}}),
	}
	faces[2].dir = geom.UnitZ
	return k.solid(faces, disk*height), nil
}

// Sphere returns a sphere centred on the origin.
func (k *Kernel) Sphere(radius float64) (kernel.Shape, error) {
	if err := k.positive("radius", radius); err != nil {
		return nil, err
	}
	north := k.vertex(geom.Vec(0, 0, radius))
	south := k.vertex(geom.Vec(0, 0, -radius))
	seam := k.circleEdge(geom.Origin, geom.UnitY, radius, 180, north, south)
	f := k.face(faceSpec{geomType: kernel.GeomSphere, center: geom.Origin, radius: radius,
		area: 4 * math.Pi * radius * radius, edges: []*Shape{seam}})
	f.bbox = geom.NewBoundBox(geom.Vec(-radius, -radius, -radius), geom.Vec(radius, radius, radius))
	s := k.solid([]*Shape{f}, 4.0/3.0*math.Pi*radius*radius*radius)
	s.center = geom.Origin
	return s, nil
}

// Circle returns a disk on the XY plane centred on the origin.
func (k *Kernel) Circle(radius float64) (kernel.Shape, error) {
	if err := k.positive("radius", radius); err != nil {
		return nil, err
	}
	v := k.vertex(geom.Vec(radius, 0, 0))
	e := k.circleEdge(geom.Origin, geom.UnitZ, radius, 360, v)
	return k.face(faceSpec{geomType: kernel.GeomPlane, center: geom.Origin, normal: geom.UnitZ,
		radius: radius, area: math.Pi * radius * radius, edges: []*Shape{e}}), nil
}

// Rectangle returns a width×height rectangle on the XY plane centred on the origin.
func (k *Kernel) Rectangle(width, height float64) (kernel.Shape, error) {
	if err := k.positive("width", width); err != nil {
		return nil, err
	}
	if err := k.positive("height", height); err != nil {
		return nil, err
	}
	w, h := width/2, height/2
	vs := []*Shape{
		k.vertex(geom.Vec(-w, -h, 0)),
		k.vertex(geom.Vec(w, -h, 0)),
		k.vertex(geom.Vec(w, h, 0)),
		k.vertex(geom.Vec(-w, h, 0)),
	}
	edges := make([]*Shape, 4)
	for i := range 4 {
		edges[i] = k.lineEdge(vs[i], vs[(i+1)%4])
	}
	return k.face(faceSpec{geomType: kernel.GeomPlane, center: geom.Origin, normal: geom.UnitZ,
		area: width * height, edges: edges}), nil
}

// Line returns a straight edge between two distinct points.
func (k *Kernel) Line(from, to geom.Vector) (kernel.Shape, error) {
	if from.IsClose(to, k.tolerance) {
		return nil, invalid("line endpoints %s and %s coincide", from, to)
	}
	return k.lineEdge(k.vertex(from), k.vertex(to)), nil
}

// Polyline returns a wire through the points. A final point equal to the first closes the wire.
func (k *Kernel) Polyline(points ...geom.Vector) (kernel.Shape, error) {
	if len(points) < 2 {
		return nil, invalid("polyline needs at least 2 points, got %d", len(points))
	}
	vs := make([]*Shape, 0, len(points))
	for i, p := range points {
		if i > 0 && p.IsClose(points[i-1], k.tolerance) {
			return nil, invalid("polyline points %d and %d coincide", i-1, i)
		}
		if i == len(points)-1 && i > 1 && p.IsClose(points[0], k.tolerance) {
			vs = append(vs, vs[0])
			continue
		}
		vs = append(vs, k.vertex(p))
	}
	edges := make([]*Shape, 0, len(vs)-1)
	for i := 1; i < len(vs); i++ {
		edges = append(edges, k.lineEdge(vs[i-1], vs[i]))
	}
	if len(edges) == 1 {
		return edges[0], nil
	}
	return k.combined(kernel.KindWire, edges...), nil
}
