// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// RenderTarget is an offscreen texture that sprites can be drawn into and
// that can itself be sampled by other batches.
type RenderTarget struct {
	dev     *Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	binding *ImageBinding

	Format        gputypes.TextureFormat
	Width, Height uint32
}

// NewRenderTarget creates a width x height render target in format whose
// image binding samples it through sampler.
func NewRenderTarget(dev *Device, layout *Layout, sampler *Sampler, format gputypes.TextureFormat, width, height uint32) (*RenderTarget, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render target %dx%d: %w", width, height, ErrInvalidSize)
	}
	tex, err := dev.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "render_target",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create render target: %w", err)
	}
	view, err := dev.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("create render target view: %w", err)
	}
	group, err := layout.BindTexture(view, sampler)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return &RenderTarget{
		dev:     dev,
		texture: tex,
		view:    view,
		binding: &ImageBinding{group: group, width: width, height: height},
		Format:  format,
		Width:   width,
		Height:  height,
	}, nil
}

// View returns the texture view.
func (rt *RenderTarget) View() *wgpu.TextureView { return rt.view }

// Texture returns the texture.
func (rt *RenderTarget) Texture() *wgpu.Texture { return rt.texture }

// Binding returns the bind group that samples the render target.
func (rt *RenderTarget) Binding() *ImageBinding { return rt.binding }

// Target returns the render target as a draw target with the given scale.
func (rt *RenderTarget) Target(scale float32) Target {
	return Target{View: rt.view, Width: rt.Width, Height: rt.Height, Scale: scale}
}

// ClearPass begins a pass that clears the render target to transparent.
// The caller must End it.
func (rt *RenderTarget) ClearPass(f *Frame) (*wgpu.RenderPassEncoder, error) {
	return f.beginPass(rt.view, gputypes.LoadOpClear, gputypes.Color{})
}

// Clear clears the render target to transparent.
func (rt *RenderTarget) Clear(f *Frame) error {
	return ClearColor(f, rt.view, gputypes.Color{})
}

// Read copies the render target back to the CPU. It submits its own
// command buffer and waits for the copy.
func (rt *RenderTarget) Read(ctx context.Context) (*image.RGBA, error) {
	return ReadTexture(ctx, rt.dev, rt.texture, rt.Format, rt.Width, rt.Height)
}

// Release destroys the binding, view and texture.
func (rt *RenderTarget) Release() {
	if rt.binding != nil {
		rt.binding.Release()
		rt.binding = nil
	}
	if rt.view != nil {
		rt.view.Release()
		rt.view = nil
	}
	if rt.texture != nil {
		rt.texture.Release()
		rt.texture = nil
	}
}
