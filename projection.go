package sprite

import "github.com/go-gl/mathgl/mgl32"

// Projection returns the orthographic matrix mapping the pixel rectangle
// starting at (x, y) with the given size to clip space. The Y axis is
// flipped so that pixel rows grow downward. scale is the device pixel
// ratio: one logical pixel covers scale physical pixels.
func Projection(x, y, width, height, scale float32) mgl32.Mat4 {
	ma := 2 / width * scale
	md := 2 / height * scale
	mx := -1 - x*ma
	my := -1 - y*md
	// mgl32 matrices are column-major.
	return mgl32.Mat4{
		ma, 0, 0, 0,
		0, -md, 0, 0,
		mx, -my, 1, 0,
		0, 0, 0, 1,
	}
}
