package geom

import "math"

// Matrix is a 3x3 matrix in row-major order. Locations use it for rotations;
// reflections (determinant -1) appear only in mirror transforms.
type Matrix [3][3]float64

// Identity is the identity matrix.
var Identity = Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Columns builds a matrix whose columns are x, y and z.
func Columns(x, y, z Vector) Matrix {
	return Matrix{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}

// Column returns column i (0..2).
func (m Matrix) Column(i int) Vector {
	return Vector{m[0][i], m[1][i], m[2][i]}
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := range 3 {
		for j := range 3 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Apply returns m·v.
func (m Matrix) Apply(v Vector) Vector {
	return Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns mᵀ, which is the inverse of a rotation.
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for i := range 3 {
		for j := range 3 {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Determinant returns det(m).
func (m Matrix) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// RotationAbout returns the rotation of angle degrees about the unit direction axis
// (Rodrigues' formula).
func RotationAbout(axis Vector, degrees float64) Matrix {
	k := axis.Normalized()
	if k.IsZero() {
		return Identity
	}
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c
	return Matrix{
		{t*k.X*k.X + c, t*k.X*k.Y - s*k.Z, t*k.X*k.Z + s*k.Y},
		{t*k.X*k.Y + s*k.Z, t*k.Y*k.Y + c, t*k.Y*k.Z - s*k.X},
		{t*k.X*k.Z - s*k.Y, t*k.Y*k.Z + s*k.X, t*k.Z*k.Z + c},
	}
}

// RotationXYZ returns the intrinsic X, then Y, then Z rotation in degrees.
func RotationXYZ(x, y, z float64) Matrix {
	return RotationAbout(UnitZ, z).Mul(RotationAbout(UnitY, y)).Mul(RotationAbout(UnitX, x))
}

// Reflection returns the reflection through the plane with the given unit normal.
func Reflection(normal Vector) Matrix {
	n := normal.Normalized()
	return Matrix{
		{1 - 2*n.X*n.X, -2 * n.X * n.Y, -2 * n.X * n.Z},
		{-2 * n.Y * n.X, 1 - 2*n.Y*n.Y, -2 * n.Y * n.Z},
		{-2 * n.Z * n.X, -2 * n.Z * n.Y, 1 - 2*n.Z*n.Z},
	}
}
