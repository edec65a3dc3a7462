// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/asset"
	"github.com/gogpu/sprite/internal/batch"
)

func TestBatchFlushOnDevice(t *testing.T) {
	dev := openTestDevice(t)

	layout, err := NewLayout(dev)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	defer layout.Release()

	sampler, err := NewSampler(dev, Nearest)
	if err != nil {
		t.Fatalf("NewSampler() error = %v", err)
	}
	defer sampler.Release()

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		src.Set(i%2, i/2, color.NRGBA{R: 255, A: 255})
	}
	is, err := asset.FromImage(src, asset.Linear)
	if err != nil {
		t.Fatalf("asset.FromImage() error = %v", err)
	}
	img, err := NewImage(dev, "red", is)
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	defer img.Release()

	binding, err := layout.BindImage(img, sampler)
	if err != nil {
		t.Fatalf("BindImage() error = %v", err)
	}
	defer binding.Release()

	const format = gputypes.TextureFormatRGBA8Unorm
	rt, err := NewRenderTarget(dev, layout, sampler, format, 16, 16)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	defer rt.Release()

	b, err := NewBatch(dev, layout, format, sprite.PMANormal, binding, WithLabel("test"))
	if err != nil {
		t.Fatalf("NewBatch() error = %v", err)
	}
	defer b.Release()

	if err := b.AddSprite([2]float32{0, 0}, [2]float32{8, 8}); err != nil {
		t.Fatalf("AddSprite() error = %v", err)
	}
	if got := b.Draws(); got != 1 {
		t.Errorf("Draws() = %d, want 1", got)
	}

	f, err := dev.BeginFrame("test")
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := rt.Clear(f); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := b.Flush(f, rt.Target(1)); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() after Flush = %d, want 0", b.Len())
	}
	// An empty flush records nothing.
	if err := b.Flush(f, rt.Target(1)); err != nil {
		t.Fatalf("empty Flush() error = %v", err)
	}
	if f.Passes() != 2 {
		t.Errorf("Passes() = %d, want 2", f.Passes())
	}
	if err := f.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := b.AddSprite([2]float32{0, 0}, [2]float32{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(f, rt.Target(1)); !errors.Is(err, ErrFrameDone) {
		t.Errorf("Flush() on submitted frame error = %v, want ErrFrameDone", err)
	}
}

func TestBatchSplitsAndReusesIndices(t *testing.T) {
	dev := openTestDevice(t)

	layout, err := NewLayout(dev)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	defer layout.Release()
	sampler, err := NewSampler(dev, Nearest)
	if err != nil {
		t.Fatalf("NewSampler() error = %v", err)
	}
	defer sampler.Release()

	const format = gputypes.TextureFormatRGBA8Unorm
	rt, err := NewRenderTarget(dev, layout, sampler, format, 8, 8)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	defer rt.Release()
	// The source only needs a valid binding.
	src, err := NewRenderTarget(dev, layout, sampler, format, 2, 2)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	defer src.Release()

	b, err := NewBatch(dev, layout, format, sprite.PMANormal, src.Binding())
	if err != nil {
		t.Fatalf("NewBatch() error = %v", err)
	}
	defer b.Release()
	indices := b.indices

	tests := []struct {
		name      string
		quads     int
		wantDraws int
	}{
		{"empty", 0, 0},
		{"one", 1, 1},
		{"full command", batch.MaxQuads, 1},
		{"split", batch.MaxQuads + 1, 2},
		{"after clear", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.Clear()
			for range tt.quads {
				if err := b.AddSprite([2]float32{0, 0}, [2]float32{1, 1}); err != nil {
					t.Fatalf("AddSprite() error = %v", err)
				}
			}
			if got := b.Draws(); got != tt.wantDraws {
				t.Errorf("Draws() = %d, want %d", got, tt.wantDraws)
			}

			f, err := dev.BeginFrame(tt.name)
			if err != nil {
				t.Fatalf("BeginFrame() error = %v", err)
			}
			if err := b.Flush(f, rt.Target(1)); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if err := f.Submit(); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if b.Len() != 0 || b.Draws() != 0 {
				t.Errorf("after Flush Len() = %d, Draws() = %d, want 0, 0", b.Len(), b.Draws())
			}
			if b.indices != indices {
				t.Error("Flush replaced the index buffer")
			}
		})
	}
}

func TestNewImageRejectsEmpty(t *testing.T) {
	dev := openTestDevice(t)

	_, err := NewImage(dev, "empty", &asset.ImageSource{})
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewImage() error = %v, want ErrInvalidSize", err)
	}
	_, err = NewRenderTarget(dev, nil, nil, gputypes.TextureFormatRGBA8Unorm, 0, 4)
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewRenderTarget() error = %v, want ErrInvalidSize", err)
	}
}
