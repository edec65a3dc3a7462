package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/render"
	"github.com/gogpu/wgpu"
)

// ErrNoInstance is returned by CreateWindowSurface for a Device that was
// provided by a host and has no wgpu instance to create surfaces from.
var ErrNoInstance = errors.New("app: device has no wgpu instance")

// Surface is where Run presents frames.
type Surface interface {
	// Configure sets the surface size in physical pixels.
	Configure(width, height uint32) error
	// Size returns the configured size.
	Size() (width, height uint32)
	// Format returns the texture format of acquired frames.
	Format() gputypes.TextureFormat
	// Acquire returns the next frame to render into.
	Acquire() (SurfaceFrame, error)
}

// SurfaceFrame is one acquired frame. Exactly one of Present or Discard
// must be called.
type SurfaceFrame interface {
	View() *wgpu.TextureView
	Present() error
	Discard()
}

// WindowSurface presents to a platform window through a wgpu surface.
type WindowSurface struct {
	surface *wgpu.Surface
	dev     *render.Device
	config  wgpu.SurfaceConfiguration
}

// NewWindowSurface wraps surface. The format is the device's preferred
// surface format, or BGRA8UnormSrgb when the device has none.
func NewWindowSurface(dev *render.Device, surface *wgpu.Surface) *WindowSurface {
	format := dev.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8UnormSrgb
	}
	return &WindowSurface{
		surface: surface,
		dev:     dev,
		config: wgpu.SurfaceConfiguration{
			Format:      format,
			Usage:       gputypes.TextureUsageRenderAttachment,
			PresentMode: gputypes.PresentModeFifo,
			AlphaMode:   gputypes.CompositeAlphaModeAuto,
		},
	}
}

// CreateWindowSurface creates a surface for a native window from the
// device's instance.
func CreateWindowSurface(dev *render.Device, displayHandle, windowHandle uintptr) (*WindowSurface, error) {
	inst := dev.Instance()
	if inst == nil {
		return nil, ErrNoInstance
	}
	s, err := inst.CreateSurface(displayHandle, windowHandle)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	return NewWindowSurface(dev, s), nil
}

// SetPresentMode changes the present mode used by the next Configure.
func (s *WindowSurface) SetPresentMode(mode gputypes.PresentMode) {
	s.config.PresentMode = mode
}

// Configure (re)configures the swap chain.
func (s *WindowSurface) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, render.ErrInvalidSize)
	}
	s.config.Width, s.config.Height = width, height
	cfg := s.config
	if err := s.surface.Configure(s.dev.WGPU(), &cfg); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	sprite.Logger().Info("app: surface configured",
		slog.Int("width", int(width)), slog.Int("height", int(height)),
		slog.Any("format", s.config.Format))
	return nil
}

// Size returns the configured size.
func (s *WindowSurface) Size() (width, height uint32) {
	return s.config.Width, s.config.Height
}

// Format returns the swap chain format.
func (s *WindowSurface) Format() gputypes.TextureFormat { return s.config.Format }

// Acquire gets the next swap chain texture. Errors from the surface, such
// as wgpu.ErrTimeout or wgpu.ErrSurfaceOutdated, are returned unwrapped.
func (s *WindowSurface) Acquire() (SurfaceFrame, error) {
	tex, suboptimal, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	if suboptimal {
		sprite.Logger().Debug("app: suboptimal surface texture")
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		s.surface.DiscardTexture()
		return nil, fmt.Errorf("create surface view: %w", err)
	}
	return &windowFrame{surface: s.surface, texture: tex, view: view}, nil
}

// Release destroys the wgpu surface.
func (s *WindowSurface) Release() {
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}

type windowFrame struct {
	surface *wgpu.Surface
	texture *wgpu.SurfaceTexture
	view    *wgpu.TextureView
}

func (f *windowFrame) View() *wgpu.TextureView { return f.view }

func (f *windowFrame) Present() error {
	defer f.view.Release()
	return f.surface.Present(f.texture)
}

func (f *windowFrame) Discard() {
	f.view.Release()
	f.surface.DiscardTexture()
}

// OffscreenSurface renders into a texture instead of a window. It is used
// for headless runs and tests.
type OffscreenSurface struct {
	dev     *render.Device
	layout  *render.Layout
	sampler *render.Sampler
	format  gputypes.TextureFormat
	target  *render.RenderTarget

	presented int
	onPresent func(index int, s *OffscreenSurface) error
}

// NewOffscreenSurface creates a width x height offscreen surface.
func NewOffscreenSurface(dev *render.Device, format gputypes.TextureFormat, width, height uint32) (*OffscreenSurface, error) {
	layout, err := render.NewLayout(dev)
	if err != nil {
		return nil, err
	}
	sampler, err := render.NewSampler(dev, render.Nearest)
	if err != nil {
		layout.Release()
		return nil, err
	}
	s := &OffscreenSurface{dev: dev, layout: layout, sampler: sampler, format: format}
	if err := s.Configure(width, height); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// OnPresent registers fn to run after each presented frame with the frame
// index, counting from zero. An error from fn is returned by Present.
func (s *OffscreenSurface) OnPresent(fn func(index int, s *OffscreenSurface) error) {
	s.onPresent = fn
}

// Configure recreates the backing texture when the size changes.
func (s *OffscreenSurface) Configure(width, height uint32) error {
	if s.target != nil && s.target.Width == width && s.target.Height == height {
		return nil
	}
	rt, err := render.NewRenderTarget(s.dev, s.layout, s.sampler, s.format, width, height)
	if err != nil {
		return err
	}
	if s.target != nil {
		s.target.Release()
	}
	s.target = rt
	return nil
}

// Size returns the texture size.
func (s *OffscreenSurface) Size() (width, height uint32) {
	if s.target == nil {
		return 0, 0
	}
	return s.target.Width, s.target.Height
}

// Format returns the texture format.
func (s *OffscreenSurface) Format() gputypes.TextureFormat { return s.format }

// Target returns the backing render target.
func (s *OffscreenSurface) Target() *render.RenderTarget { return s.target }

// Presented returns the number of frames presented so far.
func (s *OffscreenSurface) Presented() int { return s.presented }

// Acquire returns the backing texture. It never times out.
func (s *OffscreenSurface) Acquire() (SurfaceFrame, error) {
	if s.target == nil {
		return nil, render.ErrReleased
	}
	return offscreenFrame{s}, nil
}

// Snapshot reads the last rendered frame back to the CPU.
func (s *OffscreenSurface) Snapshot(ctx context.Context) (*image.RGBA, error) {
	if s.target == nil {
		return nil, render.ErrReleased
	}
	return s.target.Read(ctx)
}

// Release destroys the backing texture.
func (s *OffscreenSurface) Release() {
	if s.target != nil {
		s.target.Release()
		s.target = nil
	}
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
	if s.layout != nil {
		s.layout.Release()
		s.layout = nil
	}
}

type offscreenFrame struct{ s *OffscreenSurface }

func (f offscreenFrame) View() *wgpu.TextureView { return f.s.target.View() }

func (f offscreenFrame) Present() error {
	i := f.s.presented
	f.s.presented++
	if f.s.onPresent != nil {
		return f.s.onPresent(i, f.s)
	}
	return nil
}

func (offscreenFrame) Discard() {}
