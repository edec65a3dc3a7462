// Command bunnymark stress-tests sprite batching with bouncing bunnies.
// It renders headless and writes selected frames as PNG files.
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

func main() {
	var (
		count = flag.Int("count", 10000, "number of bunnies")
		seed  = flag.Uint("seed", 4, "random seed")
	)
	flags := demo.RegisterFlags(flag.CommandLine, app.DefaultConfig())
	flag.Parse()

	if err := run(flags, *count, uint32(*seed)); err != nil { //nolint:gosec // newRNG reduces the seed
		log.Fatalf("bunnymark: %v", err)
	}
}

func run(flags *demo.Flags, count int, seed uint32) error {
	cfg, err := flags.Config(app.DefaultConfig())
	if err != nil {
		return err
	}
	demo.SetupLogger(flags.Verbose())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	g, err := newGame(dev, format, count, seed, cfg.Scale)
	if err != nil {
		return err
	}
	defer g.Release()

	rec, err := demo.NewRecorder(ctx, cfg.Output, cfg.Every, cfg.Frames)
	if err != nil {
		return err
	}
	rec.Attach(surface)

	start := time.Now()
	stats, runErr := app.Run(ctx, dev, surface, g, cfg.Options()...)
	if err := rec.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	fmt.Printf("%d bunnies, %d frames (%d dropped) in %s, %d files in %s\n",
		count, stats.Frames, stats.Dropped, demo.Elapsed(start), len(rec.Files()), cfg.Output)
	return nil
}

type game struct {
	layout  *render.Layout
	sampler *render.Sampler
	image   *render.Image
	binding *render.ImageBinding
	batch   *render.Batch

	rng     *rng
	bunnies []bunny
	size    sprite.Point
	scale   float32
	bounds  bounds
}

func newGame(dev *render.Device, format gputypes.TextureFormat, count int, seed uint32, scale float32) (_ *game, err error) {
	g := &game{rng: newRNG(seed), scale: scale}
	defer func() {
		if err != nil {
			g.Release()
		}
	}()

	if g.layout, err = render.NewLayout(dev); err != nil {
		return nil, err
	}
	if g.sampler, err = render.NewSampler(dev, render.Linear); err != nil {
		return nil, err
	}
	if g.image, err = demo.LoadImage(dev, asset.NewLibrary(assets, 0), "assets/bunny.png"); err != nil {
		return nil, err
	}
	if g.binding, err = g.layout.BindImage(g.image, g.sampler); err != nil {
		return nil, err
	}
	g.batch, err = render.NewBatch(dev, g.layout, format, sprite.PMANormal, g.binding,
		render.WithLabel("bunnies"), render.WithCapacity(count))
	if err != nil {
		return nil, err
	}

	w, h := g.binding.Size()
	g.size = sprite.Pt(float32(w), float32(h))
	g.bunnies = make([]bunny, count)
	for i := range g.bunnies {
		g.bunnies[i] = newBunny(g.rng)
	}
	return g, nil
}

func (g *game) Resize(width, height uint32) {
	g.bounds = bounds{
		right:  float32(width) / g.scale,
		bottom: float32(height) / g.scale,
	}
}

func (g *game) Update(dt float32) {
	for i := range g.bunnies {
		g.bunnies[i].update(g.rng, g.bounds, gravity, dt)
	}
}

func (g *game) Render(f *render.Frame, target render.Target) error {
	if err := render.ClearColor(f, target.View, gputypes.Color{R: 0.3, G: 0.3, B: 0.4, A: 1}); err != nil {
		return err
	}
	if err := queueBunnies(g.batch, g.bunnies, g.size); err != nil {
		return err
	}
	return g.batch.Flush(f, target)
}

func (g *game) Release() {
	if g.batch != nil {
		g.batch.Release()
	}
	if g.binding != nil {
		g.binding.Release()
	}
	if g.image != nil {
		g.image.Release()
	}
	if g.sampler != nil {
		g.sampler.Release()
	}
	if g.layout != nil {
		g.layout.Release()
	}
}
