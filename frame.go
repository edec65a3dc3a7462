package sprite

import "math"

// Frame is an axis-aligned rectangle given by its top-left corner and size.
type Frame struct {
	X, Y, W, H float32
}

// FrameWH returns a frame of the given size at the origin.
func FrameWH(w, h float32) Frame {
	return Frame{W: w, H: h}
}

// Min returns the top-left corner.
func (f Frame) Min() [2]float32 { return [2]float32{f.X, f.Y} }

// Max returns the bottom-right corner.
func (f Frame) Max() [2]float32 { return [2]float32{f.X + f.W, f.Y + f.H} }

// Size returns the width and height.
func (f Frame) Size() [2]float32 { return [2]float32{f.W, f.H} }

// IsEmpty reports whether the frame covers no area.
func (f Frame) IsEmpty() bool { return f.W <= 0 || f.H <= 0 }

// Pad grows the frame by pad in each dimension, keeping it centered.
func (f Frame) Pad(pad float32) Frame {
	return Frame{
		X: f.X - pad/2,
		Y: f.Y - pad/2,
		W: f.W + pad,
		H: f.H + pad,
	}
}

// Fit returns the intersection of f and other. Disjoint frames produce a
// zero-sized frame.
func (f Frame) Fit(other Frame) Frame {
	x1 := max(f.X, other.X)
	y1 := max(f.Y, other.Y)
	x2 := min(f.X+f.W, other.X+other.W)
	y2 := min(f.Y+f.H, other.Y+other.H)
	return Frame{
		X: x1,
		Y: y1,
		W: max(x2-x1, 0),
		H: max(y2-y1, 0),
	}
}

// Ceil snaps the frame outward to the pixel grid of the given resolution.
func (f Frame) Ceil(resolution float32) Frame {
	return f.CeilEps(resolution, 0.001)
}

// CeilEps is Ceil with an explicit epsilon. Edges within eps of a grid
// line are not pushed to the next one.
//
// The width and height are measured from the unsnapped origin.
func (f Frame) CeilEps(resolution, eps float32) Frame {
	x1 := floor32((f.X+eps)*resolution) / resolution
	y1 := floor32((f.Y+eps)*resolution) / resolution
	x2 := ceil32((f.X+f.W-eps)*resolution) / resolution
	y2 := ceil32((f.Y+f.H-eps)*resolution) / resolution
	return Frame{
		X: x1,
		Y: y1,
		W: x2 - f.X,
		H: y2 - f.Y,
	}
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }
func round32(v float32) float32 { return float32(math.Round(float64(v))) }
