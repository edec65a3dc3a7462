package demo

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/app"
	"github.com/gogpu/sprite/asset"
	"github.com/gogpu/sprite/render"
)

// Flags are the command-line flags every demo accepts. Flags that are set
// explicitly override the config file.
type Flags struct {
	fs *flag.FlagSet

	config  *string
	width   *uint
	height  *uint
	scale   *float64
	frames  *int
	every   *int
	output  *string
	perf    *bool
	verbose *bool
}

// RegisterFlags defines the shared flags on fs with defaults from def.
func RegisterFlags(fs *flag.FlagSet, def app.Config) *Flags {
	return &Flags{
		fs:      fs,
		config:  fs.String("config", "", "YAML run config"),
		width:   fs.Uint("width", uint(def.Width), "surface width"),
		height:  fs.Uint("height", uint(def.Height), "surface height"),
		scale:   fs.Float64("scale", float64(def.Scale), "target scale"),
		frames:  fs.Int("frames", def.Frames, "frames to render"),
		every:   fs.Int("every", def.Every, "write every n-th frame (0 = none)"),
		output:  fs.String("output", def.Output, "output directory"),
		perf:    fs.Bool("perf", def.Perf, "draw the frame time graph"),
		verbose: fs.Bool("v", false, "debug logging"),
	}
}

// Config merges the config file, if any, with explicitly set flags. It
// must be called after fs.Parse.
func (f *Flags) Config(def app.Config) (app.Config, error) {
	cfg := def
	if *f.config != "" {
		var err error
		if cfg, err = app.LoadConfig(*f.config); err != nil {
			return cfg, err
		}
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = uint32(*f.width) //nolint:gosec // flag value
		case "height":
			cfg.Height = uint32(*f.height) //nolint:gosec // flag value
		case "scale":
			cfg.Scale = float32(*f.scale)
		case "frames":
			cfg.Frames = *f.frames
		case "every":
			cfg.Every = *f.every
		case "output":
			cfg.Output = *f.output
		case "perf":
			cfg.Perf = *f.perf
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Verbose reports whether -v was given.
func (f *Flags) Verbose() bool { return *f.verbose }

// SetupLogger routes sprite logging to stderr.
func SetupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// LoadImage uploads the image name from lib as an sRGB texture. The
// decoded texels are dropped from lib once they are on the GPU.
func LoadImage(dev *render.Device, lib *asset.Library, name string) (*render.Image, error) {
	src, err := lib.Image(name, asset.SRGB)
	if err != nil {
		return nil, err
	}
	img, err := render.NewImage(dev, name, src)
	if err != nil {
		return nil, err
	}
	lib.Forget(name)
	st := lib.Stats()
	sprite.Logger().Debug("demo: image uploaded",
		slog.String("path", name),
		slog.Int("cached_images", st.Images),
		slog.Int("cached_sheets", st.Sheets),
		slog.Uint64("hits", st.Hits),
		slog.Uint64("misses", st.Misses))
	return img, nil
}

// Elapsed formats a duration for the summary line.
func Elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
