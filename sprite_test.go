package sprite

import "testing"

func TestSpriteDefaults(t *testing.T) {
	s := NewSprite(64, 32)
	if s.Anchor != Pt(0.5, 0.5) {
		t.Errorf("default Anchor = %+v, want (0.5, 0.5)", s.Anchor)
	}
	if !s.Transform.IsIdentity() {
		t.Errorf("default Transform = %+v, want identity", s.Transform)
	}
	if s.Trim != nil || s.Round != 0 {
		t.Errorf("default Trim/Round = %v/%v, want nil/0", s.Trim, s.Round)
	}
}

func TestSpriteVertices(t *testing.T) {
	tests := []struct {
		name string
		s    *Sprite
		want [8]float32
	}{
		{
			name: "centered",
			s:    NewSprite(10, 20),
			want: [8]float32{-5, -10, -5, 10, 5, 10, 5, -10},
		},
		{
			name: "top-left anchor translated",
			s:    NewSprite(10, 20, WithAnchor(0, 0), WithTransform(Identity().Translate(100, 50))),
			want: [8]float32{100, 50, 100, 70, 110, 70, 110, 50},
		},
		{
			name: "trimmed",
			s:    NewSprite(10, 10, WithAnchor(0, 0), WithTrim(Frame{X: 2, Y: 3, W: 4, H: 5})),
			want: [8]float32{2, 3, 2, 8, 6, 8, 6, 3},
		},
		{
			name: "scaled",
			s:    NewSprite(10, 10, WithTransform(Identity().Scale(2, 3))),
			want: [8]float32{-10, -15, -10, 15, 10, 15, 10, -15},
		},
		{
			name: "rounded",
			s:    NewSprite(3, 3, WithTransform(Identity().Translate(0.2, 0.2)), WithRound(1)),
			want: [8]float32{-1, -1, -1, 2, 2, 2, 2, -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.s.Vertices()
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Fatalf("Vertices() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSpriteBoundsAndQuad(t *testing.T) {
	s := NewSprite(10, 20, WithAnchor(0, 0))
	if got, want := s.Bounds().Frame(), (Frame{W: 10, H: 20}); got != want {
		t.Errorf("Bounds().Frame() = %+v, want %+v", got, want)
	}

	uv := [4][2]float32{{1, 1}, {1, 0}, {0, 0}, {0, 1}}
	q := s.Quad(uv)
	if q[0].Position != [2]float32{0, 0} || q[0].TexCoord != uv[0] {
		t.Errorf("Quad()[0] = %+v", q[0])
	}
	if q[2].Position != [2]float32{10, 20} || q[2].TexCoord != uv[2] {
		t.Errorf("Quad()[2] = %+v", q[2])
	}
}

func TestWithTrimCopies(t *testing.T) {
	trim := Frame{X: 1, Y: 1, W: 2, H: 2}
	s := NewSprite(4, 4, WithTrim(trim))
	trim.W = 100
	if s.Trim.W != 2 {
		t.Errorf("Trim.W = %v after caller mutation, want 2", s.Trim.W)
	}
}

func TestSpriteQuadUV(t *testing.T) {
	s := NewSprite(10, 20, WithAnchor(0, 0))
	q := s.QuadUV(SimpleUV(Frame{W: 10, H: 20}, 10, 20))
	for i, v := range q {
		want := [2]float32{v.Position[0] / 10, v.Position[1] / 20}
		if v.TexCoord != want {
			t.Errorf("QuadUV()[%d] = %+v, want TexCoord %v", i, v, want)
		}
	}
}
