package sprite

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix represents a 2D affine transformation:
//
//	| a  c  tx |
//	| b  d  ty |
//
// which maps a point as
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// Translate, Scale and Rotate apply their operation after the existing
// transform. The zero Matrix collapses every point; use Identity.
type Matrix struct {
	A, B, C, D float32
	TX, TY     float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// NewMatrix creates a matrix from its six components.
func NewMatrix(a, b, c, d, tx, ty float32) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, TX: tx, TY: ty}
}

// MatrixFromArray creates a matrix from the packed form
// [a, b, tx, c, d, ty].
func MatrixFromArray(m [6]float32) Matrix {
	return Matrix{
		A:  m[0],
		B:  m[1],
		C:  m[3],
		D:  m[4],
		TX: m[2],
		TY: m[5],
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float32) [2]float32 {
	return [2]float32{
		m.A*x + m.C*y + m.TX,
		m.B*x + m.D*y + m.TY,
	}
}

// ApplyPoint transforms p.
func (m Matrix) ApplyPoint(p Point) Point {
	return PointFrom(m.Apply(p.X, p.Y))
}

// ApplyInverse applies the inverse transformation to (x, y) without
// building the inverse matrix. A singular m returns (x, y) unchanged.
func (m Matrix) ApplyInverse(x, y float32) [2]float32 {
	det := m.Determinant()
	if isSingular(det) {
		return [2]float32{x, y}
	}
	id := 1 / det
	return [2]float32{
		m.D*id*x - m.C*id*y + (m.TY*m.C-m.TX*m.D)*id,
		m.A*id*y - m.B*id*x + (m.TX*m.B-m.TY*m.A)*id,
	}
}

// Translate returns m followed by a translation.
func (m Matrix) Translate(x, y float32) Matrix {
	m.TX += x
	m.TY += y
	return m
}

// Scale returns m followed by a scale.
func (m Matrix) Scale(x, y float32) Matrix {
	return Matrix{
		A:  m.A * x,
		B:  m.B * y,
		C:  m.C * x,
		D:  m.D * y,
		TX: m.TX * x,
		TY: m.TY * y,
	}
}

// Rotate returns m followed by a rotation (angle in radians).
func (m Matrix) Rotate(angle float32) Matrix {
	s, c := math.Sincos(float64(angle))
	sn, cs := float32(s), float32(c)
	return Matrix{
		A:  m.A*cs - m.B*sn,
		B:  m.A*sn + m.B*cs,
		C:  m.C*cs - m.D*sn,
		D:  m.C*sn + m.D*cs,
		TX: m.TX*cs - m.TY*sn,
		TY: m.TX*sn + m.TY*cs,
	}
}

// Determinant returns the determinant of the linear part of m.
func (m Matrix) Determinant() float32 {
	return m.A*m.D - m.B*m.C
}

// IsInvertible reports whether m has an inverse.
func (m Matrix) IsInvertible() bool {
	return !isSingular(m.Determinant())
}

func isSingular(det float32) bool {
	return math.Abs(float64(det)) < 1e-10 || math.IsNaN(float64(det))
}

// Invert returns the inverse of m, or the identity when m is singular.
func (m Matrix) Invert() Matrix {
	n := m.Determinant()
	if isSingular(n) {
		return Identity()
	}
	return Matrix{
		A:  m.D / n,
		B:  -m.B / n,
		C:  -m.C / n,
		D:  m.A / n,
		TX: (m.C*m.TY - m.D*m.TX) / n,
		TY: (m.B*m.TX - m.A*m.TY) / n,
	}
}

// Append returns the transform that applies m first and then rhs.
func (m Matrix) Append(rhs Matrix) Matrix {
	return concat(m, rhs)
}

// Prepend returns the transform that applies lhs first and then m.
func (m Matrix) Prepend(lhs Matrix) Matrix {
	return concat(lhs, m)
}

// concat composes first then second.
func concat(first, second Matrix) Matrix {
	return Matrix{
		A:  first.A*second.A + first.B*second.C,
		B:  first.A*second.B + first.B*second.D,
		C:  first.C*second.A + first.D*second.C,
		D:  first.C*second.B + first.D*second.D,
		TX: first.TX*second.A + first.TY*second.C + second.TX,
		TY: first.TX*second.B + first.TY*second.D + second.TY,
	}
}

// Mat3 returns the homogeneous 3x3 form of m.
func (m Matrix) Mat3() mgl32.Mat3 {
	return mgl32.Mat3FromRows(
		mgl32.Vec3{m.A, m.C, m.TX},
		mgl32.Vec3{m.B, m.D, m.TY},
		mgl32.Vec3{0, 0, 1},
	)
}

// Mat3Transposed returns the transpose of Mat3, the layout a WGSL
// mat3x3 uniform expects when filled row by row.
func (m Matrix) Mat3Transposed() mgl32.Mat3 {
	return m.Mat3().Transpose()
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
