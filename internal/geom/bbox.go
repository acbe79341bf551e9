package geom

import "math"

// BoundBox is an axis-aligned bounding box. The zero value is empty.
type BoundBox struct {
	Min, Max Vector
	valid    bool
}

// NewBoundBox returns the smallest box holding all points.
func NewBoundBox(points ...Vector) BoundBox {
	var b BoundBox
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether the box holds no points.
func (b BoundBox) IsEmpty() bool { return !b.valid }

// AddPoint returns b grown to include p.
func (b BoundBox) AddPoint(p Vector) BoundBox {
	if !b.valid {
		return BoundBox{Min: p, Max: p, valid: true}
	}
	return BoundBox{Min: b.Min.Min(p), Max: b.Max.Max(p), valid: true}
}

// Union returns the box holding both b and o.
func (b BoundBox) Union(o BoundBox) BoundBox {
	switch {
	case !o.valid:
		return b
	case !b.valid:
		return o
	}
	return BoundBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max), valid: true}
}

// Intersects reports whether b and o overlap (touching counts) within tol.
func (b BoundBox) Intersects(o BoundBox, tol float64) bool {
	if !b.valid || !o.valid {
		return false
	}
	return b.Min.X <= o.Max.X+tol && o.Min.X <= b.Max.X+tol &&
		b.Min.Y <= o.Max.Y+tol && o.Min.Y <= b.Max.Y+tol &&
		b.Min.Z <= o.Max.Z+tol && o.Min.Z <= b.Max.Z+tol
}

// Size returns the extent along each axis.
func (b BoundBox) Size() Vector {
	if !b.valid {
		return Vector{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundBox) Center() Vector {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b BoundBox) Diagonal() float64 { return b.Size().Length() }

// Corners returns the eight corners of the box.
func (b BoundBox) Corners() []Vector {
	if !b.valid {
		return nil
	}
	out := make([]Vector, 0, 8)
	for _, x := range []float64{b.Min.X, b.Max.X} {
		for _, y := range []float64{b.Min.Y, b.Max.Y} {
			for _, z := range []float64{b.Min.Z, b.Max.Z} {
				out = append(out, Vector{x, y, z})
			}
		}
	}
	return out
}

// Transformed returns the axis-aligned box of b's corners mapped through m and t.
func (b BoundBox) Transformed(m Matrix, t Vector) BoundBox {
	var out BoundBox
	for _, c := range b.Corners() {
		out = out.AddPoint(m.Apply(c).Add(t))
	}
	return out
}

// Volume returns the product of the extents.
func (b BoundBox) Volume() float64 {
	s := b.Size()
	return math.Abs(s.X * s.Y * s.Z)
}
