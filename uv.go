package sprite

// SimpleUV returns the texture coordinates of frame inside a tw x th
// texture, clockwise from the top-left corner.
func SimpleUV(f Frame, tw, th float32) [4][2]float32 {
	u0, v0 := f.X/tw, f.Y/th
	u1, v1 := (f.X+f.W)/tw, (f.Y+f.H)/th
	return [4][2]float32{
		{u0, v0},
		{u1, v0},
		{u1, v1},
		{u0, v1},
	}
}

// RotatedUV returns the texture coordinates of a frame stored in the
// atlas with rotation rot. Corners are walked clockwise from the one that
// rot maps to the top-left.
func RotatedUV(f Frame, tw, th float32, rot GD8) [4][2]float32 {
	w2 := f.W / 2 / tw
	h2 := f.H / 2 / th
	cx := f.X/tw + w2
	cy := f.Y/th + h2

	var uv [4][2]float32
	r := rot.Add(NW)
	for i := range uv {
		uv[i] = [2]float32{cx + w2*r.UX(), cy + h2*r.UY()}
		r = r.Add(S)
	}
	return uv
}

// UV dispatches to RotatedUV when rot is non-nil and SimpleUV otherwise.
func UV(f Frame, tw, th float32, rot *GD8) [4][2]float32 {
	if rot != nil {
		return RotatedUV(f, tw, th, *rot)
	}
	return SimpleUV(f, tw, th)
}

// PackUV quantizes a texture coordinate to 16-bit unsigned normalized
// form, clamping to [0, 1].
func PackUV(u, v float32) [2]uint16 {
	return [2]uint16{
		uint16(clamp01(u) * 65535),
		uint16(clamp01(v) * 65535),
	}
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}

// QuadFromMatrixBounds returns the corners (x0,y0), (x1,y0), (x1,y1),
// (x0,y1) transformed by m.
func QuadFromMatrixBounds(m Matrix, p0, p1 [2]float32) [4][2]float32 {
	x0, y0 := p0[0], p0[1]
	x1, y1 := p1[0], p1[1]
	return [4][2]float32{
		m.Apply(x0, y0),
		m.Apply(x1, y0),
		m.Apply(x1, y1),
		m.Apply(x0, y1),
	}
}
