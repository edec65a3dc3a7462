// Package demo holds the plumbing shared by the commands under cmd: flag
// and config handling, asset loading and writing rendered frames to disk.
package demo

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/sprite/app"
)

// Recorder writes every n-th frame presented to an OffscreenSurface as a
// numbered PNG. Readback happens on the render goroutine; encoding and
// writing run concurrently.
type Recorder struct {
	ctx   context.Context
	g     *errgroup.Group
	bar   *progressbar.ProgressBar
	dir   string
	every int
	files []string
}

// NewRecorder creates dir and returns a recorder expecting total frames.
// every == 0 records nothing but still reports progress. A total of zero
// shows a spinner.
func NewRecorder(ctx context.Context, dir string, every, total int) (*Recorder, error) {
	if every > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	limit := int64(total)
	if limit <= 0 {
		limit = -1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	return &Recorder{
		ctx:   ctx,
		g:     g,
		bar:   progressbar.Default(limit, "rendering"),
		dir:   dir,
		every: every,
	}, nil
}

// Attach makes the recorder observe s.
func (r *Recorder) Attach(s *app.OffscreenSurface) {
	s.OnPresent(r.present)
}

func (r *Recorder) present(i int, s *app.OffscreenSurface) error {
	defer func() { _ = r.bar.Add(1) }()
	if r.every <= 0 || i%r.every != 0 {
		return nil
	}
	img, err := s.Snapshot(r.ctx)
	if err != nil {
		return fmt.Errorf("snapshot frame %d: %w", i, err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("frame_%04d.png", i))
	r.files = append(r.files, path)
	r.g.Go(func() error {
		return WritePNG(path, img)
	})
	return nil
}

// Files returns the paths queued so far.
func (r *Recorder) Files() []string { return r.files }

// Close waits for pending writes.
func (r *Recorder) Close() error {
	err := r.g.Wait()
	_ = r.bar.Close()
	return err
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // output path from flags
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
