package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu"
)

func openTestDevice(t *testing.T) *render.Device {
	t.Helper()
	dev, err := render.OpenDevice(render.WithBackends(wgpu.BackendsAll))
	if err != nil {
		t.Skipf("no device available: %v", err)
	}
	if dev.Queue() == nil {
		dev.Release()
		t.Skip("device has no queue")
	}
	t.Cleanup(dev.Release)
	return dev
}

func openTestSurface(t *testing.T, dev *render.Device, w, h uint32) *OffscreenSurface {
	t.Helper()
	s, err := NewOffscreenSurface(dev, gputypes.TextureFormatRGBA8Unorm, w, h)
	if err != nil {
		t.Fatalf("NewOffscreenSurface() error = %v", err)
	}
	t.Cleanup(s.Release)
	return s
}

type countingGame struct {
	updates  int
	renders  int
	dts      []float32
	sizes    [][2]uint32
	keys     []gpucontext.Key
	onUpdate func(n int)
}

func (g *countingGame) Update(dt float32) {
	g.updates++
	g.dts = append(g.dts, dt)
	if g.onUpdate != nil {
		g.onUpdate(g.updates)
	}
}

func (g *countingGame) Render(f *render.Frame, target render.Target) error {
	g.renders++
	return render.ClearColor(f, target.View, gputypes.Color{R: 0.3, G: 0.3, B: 0.4, A: 1})
}

func (g *countingGame) Resize(w, h uint32) { g.sizes = append(g.sizes, [2]uint32{w, h}) }

func (g *countingGame) KeyPress(key gpucontext.Key, _ gpucontext.Modifiers) {
	g.keys = append(g.keys, key)
}

func TestRunMaxFrames(t *testing.T) {
	dev := openTestDevice(t)
	surface := openTestSurface(t, dev, 8, 8)

	var presented []int
	surface.OnPresent(func(i int, _ *OffscreenSurface) error {
		presented = append(presented, i)
		return nil
	})

	g := &countingGame{}
	stats, err := Run(context.Background(), dev, surface, g,
		WithMaxFrames(3), WithFixedStep(time.Second/4))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Frames != 3 || stats.Dropped != 0 {
		t.Errorf("Stats = %+v, want 3 frames, 0 dropped", stats)
	}
	if g.updates != 3 || g.renders != 3 {
		t.Errorf("updates/renders = %d/%d, want 3/3", g.updates, g.renders)
	}
	for i, dt := range g.dts {
		if dt != 0.25 {
			t.Errorf("dt[%d] = %v, want 0.25", i, dt)
		}
	}
	if len(presented) != 3 || presented[2] != 2 {
		t.Errorf("presented = %v, want [0 1 2]", presented)
	}
	if len(g.sizes) != 1 || g.sizes[0] != [2]uint32{8, 8} {
		t.Errorf("Resize calls = %v, want [[8 8]]", g.sizes)
	}
}

func TestRunEscapeAndResize(t *testing.T) {
	dev := openTestDevice(t)
	surface := openTestSurface(t, dev, 8, 8)
	es := &fakeEvents{}

	g := &countingGame{}
	g.onUpdate = func(n int) {
		switch n {
		case 1:
			es.resize(16, 4)
			es.keyPress(gpucontext.KeyA, 0)
		case 2:
			es.keyPress(gpucontext.KeyEscape, 0)
		}
	}
	stats, err := Run(context.Background(), dev, surface, g, WithEvents(es), WithMaxFrames(10))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Frames != 2 {
		t.Errorf("Frames = %d, want 2 (stopped by Escape)", stats.Frames)
	}
	if w, h := surface.Size(); w != 16 || h != 4 {
		t.Errorf("surface size = %dx%d, want 16x4", w, h)
	}
	if len(g.sizes) != 2 || g.sizes[1] != [2]uint32{16, 4} {
		t.Errorf("Resize calls = %v, want a second call with 16x4", g.sizes)
	}
	if len(g.keys) != 1 || g.keys[0] != gpucontext.KeyA {
		t.Errorf("keys = %v, want [A]", g.keys)
	}
}

// flakySurface times out a fixed number of times before each success.
type flakySurface struct {
	*OffscreenSurface
	timeouts int
	left     int
}

func (s *flakySurface) Acquire() (SurfaceFrame, error) {
	if s.left > 0 {
		s.left--
		return nil, wgpu.ErrTimeout
	}
	s.left = s.timeouts
	return s.OffscreenSurface.Acquire()
}

func TestRunDropsTimedOutFrames(t *testing.T) {
	dev := openTestDevice(t)
	s := &flakySurface{OffscreenSurface: openTestSurface(t, dev, 4, 4), timeouts: 3, left: 3}

	g := &countingGame{}
	stats, err := Run(context.Background(), dev, s, g, WithMaxFrames(2), WithAcquireRetries(1))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Each frame needs four acquires but only two are allowed: the first
	// attempt drops, the second sees the one remaining timeout then succeeds.
	if stats.Frames != 2 {
		t.Errorf("Frames = %d, want 2", stats.Frames)
	}
	if stats.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", stats.Dropped)
	}
	if g.updates != 4 {
		t.Errorf("updates = %d, want 4 (dropped frames still update)", g.updates)
	}
}

func TestRunCanceled(t *testing.T) {
	dev := openTestDevice(t)
	surface := openTestSurface(t, dev, 4, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := Run(ctx, dev, surface, &countingGame{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if stats.Frames != 0 {
		t.Errorf("Frames = %d, want 0", stats.Frames)
	}
}

func TestRunWindowScale(t *testing.T) {
	dev := openTestDevice(t)
	surface := openTestSurface(t, dev, 4, 4)

	var target render.Target
	g := &targetGame{seen: &target}
	_, err := Run(context.Background(), dev, surface, g,
		WithWindow(gpucontext.NullWindowProvider{W: 10, H: 6, SF: 2}), WithMaxFrames(1))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if target.Width != 20 || target.Height != 12 || target.Scale != 2 {
		t.Errorf("target = %dx%d@%v, want 20x12@2", target.Width, target.Height, target.Scale)
	}
}

type targetGame struct{ seen *render.Target }

func (targetGame) Update(float32) {}

func (g targetGame) Render(_ *render.Frame, target render.Target) error {
	*g.seen = target
	return nil
}

func TestOffscreenSnapshot(t *testing.T) {
	dev := openTestDevice(t)
	surface := openTestSurface(t, dev, 4, 2)

	if _, err := Run(context.Background(), dev, surface, &countingGame{}, WithMaxFrames(1)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if surface.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", surface.Presented())
	}
	img, err := surface.Snapshot(context.Background())
	if err != nil {
		t.Skipf("readback not supported by this backend: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("Snapshot() bounds = %v, want 4x2", b)
	}
}
