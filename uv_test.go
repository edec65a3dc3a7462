package sprite

import "testing"

func TestSimpleUV(t *testing.T) {
	got := SimpleUV(Frame{X: 32, Y: 64, W: 32, H: 64}, 128, 256)
	want := [4][2]float32{
		{0.25, 0.25},
		{0.5, 0.25},
		{0.5, 0.5},
		{0.25, 0.5},
	}
	if got != want {
		t.Errorf("SimpleUV() = %v, want %v", got, want)
	}
}

func TestRotatedUV(t *testing.T) {
	f := Frame{X: 32, Y: 64, W: 32, H: 64}
	simple := SimpleUV(f, 128, 256)

	if got := RotatedUV(f, 128, 256, E); got != simple {
		t.Errorf("RotatedUV(E) = %v, want %v", got, simple)
	}

	// A quarter turn starts one corner later in the clockwise walk.
	got := RotatedUV(f, 128, 256, S)
	want := [4][2]float32{simple[1], simple[2], simple[3], simple[0]}
	if got != want {
		t.Errorf("RotatedUV(S) = %v, want %v", got, want)
	}

	rot := S
	if got := UV(f, 128, 256, &rot); got != want {
		t.Errorf("UV(&S) = %v, want %v", got, want)
	}
	if got := UV(f, 128, 256, nil); got != simple {
		t.Errorf("UV(nil) = %v, want %v", got, simple)
	}
}

func TestPackUV(t *testing.T) {
	tests := []struct {
		u, v float32
		want [2]uint16
	}{
		{0, 0, [2]uint16{0, 0}},
		{1, 1, [2]uint16{65535, 65535}},
		{0.5, 0.25, [2]uint16{32767, 16383}},
		{-1, 2, [2]uint16{0, 65535}},
	}
	for _, tt := range tests {
		if got := PackUV(tt.u, tt.v); got != tt.want {
			t.Errorf("PackUV(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestQuadFromMatrixBounds(t *testing.T) {
	got := QuadFromMatrixBounds(Identity().Translate(1, 2), [2]float32{0, 0}, [2]float32{10, 5})
	want := [4][2]float32{{1, 2}, {11, 2}, {11, 7}, {1, 7}}
	if got != want {
		t.Errorf("QuadFromMatrixBounds() = %v, want %v", got, want)
	}
}
