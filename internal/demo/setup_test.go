package demo

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gogpu/sprite/app"
	"github.com/gogpu/sprite/asset"
)

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterFlags(fs, app.DefaultConfig())
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return f
}

func TestFlagsConfigDefaults(t *testing.T) {
	f := parseFlags(t)
	cfg, err := f.Config(app.DefaultConfig())
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg != app.DefaultConfig() {
		t.Errorf("Config() = %+v, want %+v", cfg, app.DefaultConfig())
	}
	if f.Verbose() {
		t.Error("Verbose() = true, want false")
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := "width: 320\nheight: 240\nframes: 5\noutput: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	f := parseFlags(t, "-config", path, "-height", "100", "-perf", "-v")
	cfg, err := f.Config(app.DefaultConfig())
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"width from file", cfg.Width, uint32(320)},
		{"height from flag", cfg.Height, uint32(100)},
		{"frames from file", cfg.Frames, 5},
		{"output from file", cfg.Output, "from-file"},
		{"perf from flag", cfg.Perf, true},
		{"every default", cfg.Every, app.DefaultConfig().Every},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if !f.Verbose() {
		t.Error("Verbose() = false, want true")
	}
}

func TestFlagsConfigInvalid(t *testing.T) {
	f := parseFlags(t, "-width", "0")
	if _, err := f.Config(app.DefaultConfig()); err == nil {
		t.Error("Config() with zero width error = nil, want error")
	}

	f = parseFlags(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := f.Config(app.DefaultConfig()); err == nil {
		t.Error("Config() with missing file error = nil, want error")
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, g, b, a := got.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("At(1, 1) = %d %d %d %d, want 10 20 30 255", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestWritePNGBadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WritePNG(path, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("WritePNG() into missing dir error = nil, want error")
	}
}

func TestLoadImageMissing(t *testing.T) {
	lib := asset.NewLibrary(fstest.MapFS{}, 0)
	if _, err := LoadImage(nil, lib, "nope.png"); err == nil {
		t.Error("LoadImage() missing file error = nil, want error")
	}
}

func TestLoadImageGarbage(t *testing.T) {
	lib := asset.NewLibrary(fstest.MapFS{"bad.png": {Data: []byte("not an image")}}, 0)
	if _, err := LoadImage(nil, lib, "bad.png"); err == nil {
		t.Error("LoadImage() garbage error = nil, want error")
	}
}
