package sprite

import "github.com/go-gl/mathgl/mgl32"

// Point represents a 2D point or vector in pixel space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// XY returns the point as a two-element array.
func (p Point) XY() [2]float32 {
	return [2]float32{p.X, p.Y}
}

// Vec2 converts the point to an mgl32 vector.
func (p Point) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

// PointFrom creates a Point from a two-element array.
func PointFrom(xy [2]float32) Point {
	return Point{X: xy[0], Y: xy[1]}
}
