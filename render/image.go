// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/asset"
	"github.com/gogpu/wgpu"
)

// Image is a sampled texture uploaded from decoded texels.
type Image struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView

	Format        gputypes.TextureFormat
	Width, Height uint32
}

// NewImage creates a texture for src and uploads its texels.
func NewImage(dev *Device, label string, src *asset.ImageSource) (*Image, error) {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("image %q: %w", label, ErrInvalidSize)
	}
	w, h := uint32(src.Width), uint32(src.Height) //nolint:gosec // checked positive above
	if want := int(w) * int(h) * 4; len(src.Pix) < want {
		return nil, fmt.Errorf("image %q: %d texel bytes, want %d: %w", label, len(src.Pix), want, ErrInvalidSize)
	}

	size := wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	tex, err := dev.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        src.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", label, err)
	}

	err = dev.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		src.Pix,
		&wgpu.ImageDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&size,
	)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("upload texture %q: %w", label, err)
	}

	view, err := dev.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("create view %q: %w", label, err)
	}

	sprite.Logger().Debug("render: image uploaded",
		slog.String("label", label),
		slog.Int("width", int(w)), slog.Int("height", int(h)),
		slog.String("format", src.Format.String()),
	)

	return &Image{
		texture: tex,
		view:    view,
		Format:  src.Format,
		Width:   w,
		Height:  h,
	}, nil
}

// Texture returns the underlying texture.
func (img *Image) Texture() *wgpu.Texture { return img.texture }

// Release destroys the view and the texture.
func (img *Image) Release() {
	if img.view != nil {
		img.view.Release()
		img.view = nil
	}
	if img.texture != nil {
		img.texture.Release()
		img.texture = nil
	}
}
