// Command blending renders every Porter-Duff operator into a 5x3 grid.
// Each tile composites the source over the destination in its own render
// target, then draws the result onto a checkerboard.
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/app"
	"github.com/gogpu/sprite/asset"
	"github.com/gogpu/sprite/internal/demo"
	"github.com/gogpu/sprite/render"
)

//go:embed assets
var assets embed.FS

const (
	tile    = 100
	columns = 5
)

func defaultConfig() app.Config {
	cfg := app.DefaultConfig()
	cfg.Width, cfg.Height = columns*tile, 3*tile
	cfg.Frames = 1
	cfg.Every = 0
	return cfg
}

func main() {
	flags := demo.RegisterFlags(flag.CommandLine, defaultConfig())
	flag.Parse()

	if err := run(flags); err != nil {
		log.Fatalf("blending: %v", err)
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

	g, err := newGrid(dev, format)
	if err != nil {
		return err
	}
	defer g.Release()

	if _, err := app.Run(ctx, dev, surface, g, cfg.Options()...); err != nil {
		return err
	}

	img, err := surface.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output, 0o750); err != nil {
		return err
	}
	path := filepath.Join(cfg.Output, "blending.png")
	if err := demo.WritePNG(path, img); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

type operator struct {
	name  string
	batch *render.Batch
}

// grid holds one batch per operator. Pipelines fix their blend state, so
// each operator needs its own.
type grid struct {
	layout  *render.Layout
	sampler *render.Sampler
	images  []*render.Image
	binds   []*render.ImageBinding
	rt      *render.RenderTarget

	dst  *render.Batch
	bg   *render.Batch
	tile *render.Batch
	ops  []operator
}

func newGrid(dev *render.Device, format gputypes.TextureFormat) (_ *grid, err error) {
	g := &grid{}
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
	lib := asset.NewLibrary(assets, 0)
	bind := func(name string) (*render.ImageBinding, error) {
		img, err := demo.LoadImage(dev, lib, "assets/"+name)
		if err != nil {
			return nil, err
		}
		g.images = append(g.images, img)
		b, err := g.layout.BindImage(img, g.sampler)
		if err != nil {
			return nil, err
		}
		g.binds = append(g.binds, b)
		return b, nil
	}
	bg, err := bind("bg.png")
	if err != nil {
		return nil, err
	}
	dst, err := bind("dst.png")
	if err != nil {
		return nil, err
	}
	src, err := bind("src.png")
	if err != nil {
		return nil, err
	}

	if g.rt, err = render.NewRenderTarget(dev, g.layout, g.sampler, format, tile, tile); err != nil {
		return nil, err
	}
	if g.dst, err = render.NewBatch(dev, g.layout, format, sprite.PMASrc, dst, render.WithLabel("dst")); err != nil {
		return nil, err
	}
	if g.bg, err = render.NewBatch(dev, g.layout, format, sprite.Replace, bg, render.WithLabel("bg")); err != nil {
		return nil, err
	}
	if g.tile, err = render.NewBatch(dev, g.layout, format, sprite.PMANormal, g.rt.Binding(), render.WithLabel("tile")); err != nil {
		return nil, err
	}
	for _, op := range sprite.CompositeOperators() {
		b, err := render.NewBatch(dev, g.layout, format, op.Blend, src, render.WithLabel(op.Name))
		if err != nil {
			return nil, err
		}
		g.ops = append(g.ops, operator{name: op.Name, batch: b})
	}
	return g, nil
}

func (g *grid) Update(float32) {}

func (g *grid) Render(f *render.Frame, target render.Target) error {
	full := [2]float32{tile, tile}
	for i, op := range g.ops {
		if err := g.rt.Clear(f); err != nil {
			return err
		}
		if err := g.draw(g.dst, f, g.rt.Target(1), [2]float32{}, full); err != nil {
			return err
		}
		if err := g.draw(op.batch, f, g.rt.Target(1), [2]float32{}, full); err != nil {
			return fmt.Errorf("%s: %w", op.name, err)
		}

		x := float32(tile * (i % columns))
		y := float32(tile * (i / columns))
		lo, hi := [2]float32{x, y}, [2]float32{x + tile, y + tile}
		if err := g.draw(g.bg, f, target, lo, hi); err != nil {
			return err
		}
		if err := g.draw(g.tile, f, target, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

func (g *grid) draw(b *render.Batch, f *render.Frame, target render.Target, lo, hi [2]float32) error {
	if err := b.AddSprite(lo, hi); err != nil {
		return err
	}
	return b.Flush(f, target)
}

func (g *grid) Release() {
	for _, op := range g.ops {
		op.batch.Release()
	}
	for _, b := range []*render.Batch{g.tile, g.bg, g.dst} {
		if b != nil {
			b.Release()
		}
	}
	if g.rt != nil {
		g.rt.Release()
	}
	for _, b := range g.binds {
		b.Release()
	}
	for _, img := range g.images {
		img.Release()
	}
	if g.sampler != nil {
		g.sampler.Release()
	}
	if g.layout != nil {
		g.layout.Release()
	}
}
