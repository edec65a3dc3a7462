package main

import (
	"math"
	"testing"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/asset"
	"github.com/tanema/gween/ease"
)

const walkSheet = `{
  "meta": {"image": "walk.png", "size": {"w": 48, "h": 16}},
  "frames": {
    "small": {"frame": {"x": 0, "y": 0, "width": 16, "height": 16}},
    "wide": {"frame": {"x": 16, "y": 0, "width": 32, "height": 8}}
  },
  "animations": {"walk": ["small", "wide"]}
}`

// extent is the bounding box of a quad's positions and texture coordinates.
type extent struct {
	pos, uv [4]float32
}

func quadExtent(q [4]sprite.Vertex) extent {
	inf := float32(math.Inf(1))
	e := extent{pos: [4]float32{inf, inf, -inf, -inf}, uv: [4]float32{inf, inf, -inf, -inf}}
	for _, v := range q {
		grow(&e.pos, v.Position)
		grow(&e.uv, v.TexCoord)
	}
	return e
}

func grow(box *[4]float32, p [2]float32) {
	box[0] = min(box[0], p[0])
	box[1] = min(box[1], p[1])
	box[2] = max(box[2], p[0])
	box[3] = max(box[3], p[1])
}

func TestActorQuadFollowsFrame(t *testing.T) {
	sheet, err := asset.ParseSheet([]byte(walkSheet))
	if err != nil {
		t.Fatalf("ParseSheet() error = %v", err)
	}
	a, err := newActor(sheet, actorRole{
		animation: "walk",
		speed:     1,
		looped:    true,
		from:      sprite.Pt(100, 50),
		to:        sprite.Pt(200, 50),
		seconds:   1,
		easing:    ease.Linear,
	})
	if err != nil {
		t.Fatalf("newActor() error = %v", err)
	}

	tests := []struct {
		frame int
		want  extent
	}{
		{0, extent{pos: [4]float32{92, 42, 108, 58}, uv: [4]float32{0, 0, 16.0 / 48, 1}}},
		{1, extent{pos: [4]float32{84, 46, 116, 54}, uv: [4]float32{16.0 / 48, 0, 1, 0.5}}},
	}
	for _, tt := range tests {
		a.anim.GotoAndStop(tt.frame)
		q, err := a.quad(sheet)
		if err != nil {
			t.Fatalf("quad() at frame %d error = %v", tt.frame, err)
		}
		got := quadExtent(q)
		for i := range got.pos {
			if math.Abs(float64(got.pos[i]-tt.want.pos[i])) > 1e-4 || math.Abs(float64(got.uv[i]-tt.want.uv[i])) > 1e-4 {
				t.Errorf("frame %d: quad extent = %+v, want %+v", tt.frame, got, tt.want)
				break
			}
		}
	}
}

func TestActorBouncesOneShot(t *testing.T) {
	sheet, err := asset.ParseSheet([]byte(walkSheet))
	if err != nil {
		t.Fatalf("ParseSheet() error = %v", err)
	}
	a, err := newActor(sheet, actorRole{
		animation:   "walk",
		frameMillis: 100,
		speed:       1,
		from:        sprite.Pt(0, 0),
		to:          sprite.Pt(10, 0),
		seconds:     1,
		easing:      ease.Linear,
	})
	if err != nil {
		t.Fatalf("newActor() error = %v", err)
	}

	// One second of 60 Hz ticks runs well past both 100 ms frames.
	a.update(1)
	if got := a.anim.Speed(); got != -1 {
		t.Errorf("Speed() after the end = %v, want -1", got)
	}
	if !a.anim.IsPlaying() {
		t.Error("IsPlaying() = false, want true after bounce")
	}
	if !a.reverse {
		t.Error("reverse = false, want true after a full tween")
	}
}
