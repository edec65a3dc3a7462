// Package app drives a Game: it advances time, acquires surface frames,
// records one render.Frame per tick and presents it.
//
// Run subscribes to a gpucontext.EventSource for input. Escape stops the
// loop; resize events reconfigure the surface. Frame acquisition that times
// out is retried and then skipped rather than treated as fatal.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu"
)

// ErrFrameDropped marks a frame that was skipped because the surface kept
// timing out. Run logs it and continues.
var ErrFrameDropped = errors.New("app: frame dropped")

// minimizedPoll is how long Run sleeps between event checks while the
// surface has zero size.
const minimizedPoll = 10 * time.Millisecond

// Game is driven by Run.
type Game interface {
	// Update advances the game by dt seconds.
	Update(dt float32)
	// Render records the frame into f. target is the acquired surface.
	Render(f *render.Frame, target render.Target) error
}

// KeyHandler is implemented by games that want key presses. Escape is
// consumed by Run and never delivered.
type KeyHandler interface {
	KeyPress(key gpucontext.Key, mods gpucontext.Modifiers)
}

// Resizer is implemented by games that track the surface size.
type Resizer interface {
	Resize(width, height uint32)
}

// Stats summarizes a finished Run.
type Stats struct {
	Frames  int
	Dropped int
}

// Run drives game on surface until Escape is pressed, the frame limit is
// reached or ctx is canceled. Cancellation returns ctx.Err().
//
// Sizes reported by the window provider and resize events are in logical
// points and are scaled by the window's scale factor. Without a window
// provider the scale is 1 unless set with WithScale.
func Run(ctx context.Context, dev *render.Device, surface Surface, game Game, opts ...Option) (Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := sprite.Logger()

	in := subscribe(o.events)

	width, height := surface.Size()
	scale := o.scale
	if o.window != nil {
		w, h := o.window.Size()
		scale = float32(o.window.ScaleFactor())
		width, height = physical(w, h, scale)
		if width > 0 && height > 0 {
			if err := surface.Configure(width, height); err != nil {
				return Stats{}, err
			}
		}
	}
	if r, ok := game.(Resizer); ok {
		r.Resize(width, height)
	}

	var perf *render.Perf
	if o.perf {
		p, err := render.NewPerf(dev, surface.Format())
		if err != nil {
			return Stats{}, err
		}
		defer p.Release()
		perf = p
	}

	var stats Stats
	last := time.Now()
	for o.maxFrames == 0 || stats.Frames < o.maxFrames {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ev := in.drain()
		if ev.quit {
			log.Info("app: quit requested", slog.Int("frames", stats.Frames))
			return stats, nil
		}
		pointScale := float32(1)
		if o.window != nil {
			scale = float32(o.window.ScaleFactor())
			pointScale = scale
		}
		if ev.resized {
			width, height = physical(ev.width, ev.height, pointScale)
		}
		if width == 0 || height == 0 {
			// Minimized: nothing to draw into.
			time.Sleep(minimizedPoll)
			last = time.Now()
			continue
		}
		if ev.resized {
			if err := surface.Configure(width, height); err != nil {
				return stats, err
			}
			if r, ok := game.(Resizer); ok {
				r.Resize(width, height)
			}
		}
		if kh, ok := game.(KeyHandler); ok {
			for _, k := range ev.keys {
				kh.KeyPress(k.key, k.mods)
			}
		}

		now := time.Now()
		dt := o.fixedStep
		if dt == 0 {
			dt = now.Sub(last)
		}
		last = now
		game.Update(float32(dt.Seconds()))

		sf, err := acquire(surface, o.retries)
		switch {
		case err == nil:
		case errors.Is(err, ErrFrameDropped):
			stats.Dropped++
			log.Warn("app: frame dropped", slog.Int("frame", stats.Frames), slog.Any("err", err))
			continue
		case errors.Is(err, wgpu.ErrSurfaceOutdated), errors.Is(err, wgpu.ErrSurfaceLost):
			stats.Dropped++
			log.Warn("app: reconfiguring surface", slog.Any("err", err))
			if err := surface.Configure(width, height); err != nil {
				return stats, err
			}
			continue
		default:
			return stats, fmt.Errorf("acquire frame: %w", err)
		}

		if err := renderFrame(dev, sf, game, perf, now, render.Target{
			View:   sf.View(),
			Width:  width,
			Height: height,
			Scale:  scale,
		}, o.label); err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.Frames, err)
		}
		stats.Frames++
	}
	return stats, nil
}

// renderFrame records, submits and presents one frame. sf is discarded on
// any error before presentation.
func renderFrame(dev *render.Device, sf SurfaceFrame, game Game, perf *render.Perf, now time.Time, target render.Target, label string) error {
	f, err := dev.BeginFrame(label)
	if err != nil {
		sf.Discard()
		return err
	}
	if err := game.Render(f, target); err != nil {
		f.Discard()
		sf.Discard()
		return err
	}
	if perf != nil {
		perf.Tick(now)
		if err := perf.Draw(f, target); err != nil {
			f.Discard()
			sf.Discard()
			return err
		}
	}
	if err := f.Submit(); err != nil {
		sf.Discard()
		return err
	}
	if err := sf.Present(); err != nil {
		if errors.Is(err, wgpu.ErrSurfaceOutdated) || errors.Is(err, wgpu.ErrSurfaceLost) {
			sprite.Logger().Warn("app: present failed", slog.Any("err", err))
			return nil
		}
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// acquire calls s.Acquire, retrying wgpu.ErrTimeout up to retries times.
// When every attempt times out the returned error wraps ErrFrameDropped.
func acquire(s Surface, retries int) (SurfaceFrame, error) {
	for attempt := 0; ; attempt++ {
		sf, err := s.Acquire()
		if err == nil {
			return sf, nil
		}
		if !errors.Is(err, wgpu.ErrTimeout) {
			return nil, err
		}
		if attempt >= retries {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrFrameDropped, attempt+1, err)
		}
		sprite.Logger().Debug("app: acquire timed out, retrying", slog.Int("attempt", attempt+1))
	}
}

type keyEvent struct {
	key  gpucontext.Key
	mods gpucontext.Modifiers
}

// events is a snapshot of input received since the last drain.
type events struct {
	quit          bool
	resized       bool
	width, height int
	keys          []keyEvent
}

// physical converts a size in logical points to pixels.
func physical(width, height int, scale float32) (uint32, uint32) {
	w := float32(max(width, 0)) * scale
	h := float32(max(height, 0)) * scale
	return uint32(w + 0.5), uint32(h + 0.5)
}

// inbox collects input from the platform's event callbacks, which may run
// on another goroutine, for the render goroutine to drain.
type inbox struct {
	mu      sync.Mutex
	pending events
}

func subscribe(es gpucontext.EventSource) *inbox {
	in := &inbox{}
	if es == nil {
		return in
	}
	es.OnKeyPress(in.keyPress)
	es.OnResize(in.resize)
	return in
}

func (in *inbox) keyPress(key gpucontext.Key, mods gpucontext.Modifiers) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if key == gpucontext.KeyEscape {
		in.pending.quit = true
		return
	}
	in.pending.keys = append(in.pending.keys, keyEvent{key: key, mods: mods})
}

func (in *inbox) resize(width, height int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.pending.resized = true
	in.pending.width = width
	in.pending.height = height
}

func (in *inbox) drain() events {
	in.mu.Lock()
	defer in.mu.Unlock()
	ev := in.pending
	in.pending = events{}
	return ev
}
