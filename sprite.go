package sprite

// Sprite describes a textured quad in world space. Vertices are derived on
// demand from the transform, anchor, texture size and optional trim.
type Sprite struct {
	Transform Matrix
	Anchor    Point

	// Width and Height are the original (untrimmed) texture size.
	Width, Height float32

	Trim  *Frame
	Round float32
}

// NewSprite creates a sprite for a texture of the given original size.
func NewSprite(width, height float32, opts ...SpriteOption) *Sprite {
	o := defaultSpriteOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Sprite{
		Transform: o.transform,
		Anchor:    o.anchor,
		Width:     width,
		Height:    height,
		Trim:      o.trim,
		Round:     o.round,
	}
}

// extent returns the local corner coordinates: w1/h1 is the near edge and
// w0/h0 the far edge.
func (s *Sprite) extent() (w0, w1, h0, h1 float32) {
	if s.Trim != nil {
		w1 = s.Trim.X - s.Anchor.X*s.Width
		w0 = w1 + s.Trim.W
		h1 = s.Trim.Y - s.Anchor.Y*s.Height
		h0 = h1 + s.Trim.H
		return w0, w1, h0, h1
	}
	w1 = -s.Anchor.X * s.Width
	w0 = w1 + s.Width
	h1 = -s.Anchor.Y * s.Height
	h0 = h1 + s.Height
	return w0, w1, h0, h1
}

// Vertices returns the four transformed corners packed as x,y pairs in
// the order 11, 10, 00, 01.
func (s *Sprite) Vertices() [8]float32 {
	w0, w1, h0, h1 := s.extent()
	m := s.Transform
	v := [8]float32{
		m.A*w1 + m.C*h1 + m.TX,
		m.D*h1 + m.B*w1 + m.TY,

		m.A*w1 + m.C*h0 + m.TX,
		m.D*h0 + m.B*w1 + m.TY,

		m.A*w0 + m.C*h0 + m.TX,
		m.D*h0 + m.B*w0 + m.TY,

		m.A*w0 + m.C*h1 + m.TX,
		m.D*h1 + m.B*w0 + m.TY,
	}
	if s.Round > 0 {
		f := floor32(s.Round)
		for i := range v {
			v[i] = round32(v[i] * f / s.Round)
		}
	}
	return v
}

// Bounds returns the axis-aligned bounds of the transformed quad.
func (s *Sprite) Bounds() Bounds {
	b := EmptyBounds()
	b.AddQuad(s.Vertices())
	return b
}

// Quad pairs the vertices with texture coordinates given in the same
// corner order.
func (s *Sprite) Quad(uv [4][2]float32) [4]Vertex {
	v := s.Vertices()
	var q [4]Vertex
	for i := range q {
		q[i] = Vertex{
			Position: [2]float32{v[i*2], v[i*2+1]},
			TexCoord: uv[i],
		}
	}
	return q
}

// QuadUV is Quad for texture coordinates given clockwise from the
// top-left corner, the order SimpleUV and RotatedUV return.
func (s *Sprite) QuadUV(uv [4][2]float32) [4]Vertex {
	return s.Quad([4][2]float32{uv[0], uv[3], uv[2], uv[1]})
}
