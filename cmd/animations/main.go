// Command animations plays spritesheet animations on sprites that move
// along eased paths. Frames are written as PNG files.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/app"
	"github.com/gogpu/sprite/asset"
	"github.com/gogpu/sprite/internal/demo"
	"github.com/gogpu/sprite/render"
)

//go:embed assets
var assets embed.FS

func defaultConfig() app.Config {
	cfg := app.DefaultConfig()
	cfg.Width, cfg.Height = 640, 320
	cfg.Scale = 4
	cfg.Frames = 120
	return cfg
}

func main() {
	flags := demo.RegisterFlags(flag.CommandLine, defaultConfig())
	flag.Parse()

	if err := run(flags); err != nil {
		log.Fatalf("animations: %v", err)
	}
}

func run(flags *demo.Flags) error {
	cfg, err := flags.Config(defaultConfig())
	if err != nil {
		return err
	}
	demo.SetupLogger(flags.Verbose())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lib := asset.NewLibrary(assets, 0)
	sheet, err := lib.Sheet("assets/orbit.json")
	if err != nil {
		return err
	}

	dev, err := render.OpenDevice()
	if err != nil {
		return err
	}
	defer dev.Release()

	const format = gputypes.TextureFormatRGBA8UnormSrgb
	surface, err := app.NewOffscreenSurface(dev, format, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer surface.Release()

	s, err := newScene(dev, format, lib, sheet)
	if err != nil {
		return err
	}
	defer s.Release()

	rec, err := demo.NewRecorder(ctx, cfg.Output, cfg.Every, cfg.Frames)
	if err != nil {
		return err
	}
	rec.Attach(surface)

	start := time.Now()
	stats, runErr := app.Run(ctx, dev, surface, s, cfg.Options()...)
	if err := rec.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	fmt.Printf("%d frames in %s, %d files in %s\n",
		stats.Frames, demo.Elapsed(start), len(rec.Files()), cfg.Output)
	return nil
}

type scene struct {
	sheet   *asset.Sheet
	layout  *render.Layout
	sampler *render.Sampler
	image   *render.Image
	binding *render.ImageBinding
	batch   *render.Batch

	actors []*actor
}

func newScene(dev *render.Device, format gputypes.TextureFormat, lib *asset.Library, sheet *asset.Sheet) (_ *scene, err error) {
	s := &scene{sheet: sheet}
	defer func() {
		if err != nil {
			s.Release()
		}
	}()

	if s.layout, err = render.NewLayout(dev); err != nil {
		return nil, err
	}
	if s.sampler, err = render.NewSampler(dev, render.Nearest); err != nil {
		return nil, err
	}
	if s.image, err = demo.LoadImage(dev, lib, sheet.Meta.Image); err != nil {
		return nil, err
	}
	if s.binding, err = s.layout.BindImage(s.image, s.sampler); err != nil {
		return nil, err
	}
	if s.batch, err = render.NewBatch(dev, s.layout, format, sprite.PMANormal, s.binding, render.WithLabel("actors")); err != nil {
		return nil, err
	}
	if s.actors, err = cast(sheet); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scene) Update(dt float32) {
	for _, a := range s.actors {
		a.update(dt)
	}
}

func (s *scene) Render(f *render.Frame, target render.Target) error {
	if err := render.ClearColor(f, target.View, gputypes.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}); err != nil {
		return err
	}
	for _, a := range s.actors {
		q, err := a.quad(s.sheet)
		if err != nil {
			return err
		}
		if err := s.batch.AddQuad(q); err != nil {
			return err
		}
	}
	return s.batch.Flush(f, target)
}

func (s *scene) Release() {
	if s.batch != nil {
		s.batch.Release()
	}
	if s.binding != nil {
		s.binding.Release()
	}
	if s.image != nil {
		s.image.Release()
	}
	if s.sampler != nil {
		s.sampler.Release()
	}
	if s.layout != nil {
		s.layout.Release()
	}
}
