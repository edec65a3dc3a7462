// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// projectionSize is the byte size of the projection uniform (one mat4x4<f32>).
const projectionSize = 64

// Layout holds the bind group layouts of the sprite shader and the
// pipeline layout built from them:
//
//	group 0: projection uniform (vertex)
//	group 1: image texture and sampler (fragment)
type Layout struct {
	dev        *Device
	projection *wgpu.BindGroupLayout
	image      *wgpu.BindGroupLayout
	pipeline   *wgpu.PipelineLayout
}

// NewLayout creates the bind group and pipeline layouts.
func NewLayout(dev *Device) (*Layout, error) {
	projection, err := dev.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "sprite_projection_layout",
		Entries: projectionLayoutEntries(),
	})
	if err != nil {
		return nil, fmt.Errorf("create projection layout: %w", err)
	}

	image, err := dev.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "sprite_image_layout",
		Entries: imageLayoutEntries(),
	})
	if err != nil {
		projection.Release()
		return nil, fmt.Errorf("create image layout: %w", err)
	}

	pipeline, err := dev.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "sprite_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{projection, image},
	})
	if err != nil {
		image.Release()
		projection.Release()
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	return &Layout{
		dev:        dev,
		projection: projection,
		image:      image,
		pipeline:   pipeline,
	}, nil
}

func projectionLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: projectionSize,
			},
		},
	}
}

func imageLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// BindProjection creates a projection bind group over buf.
func (l *Layout) BindProjection(buf *wgpu.Buffer) (*wgpu.BindGroup, error) {
	g, err := l.dev.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "projection_bind_group",
		Layout: l.projection,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Size: projectionSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create projection bind group: %w", err)
	}
	return g, nil
}

// BindTexture creates an image bind group over a texture view and sampler.
func (l *Layout) BindTexture(view *wgpu.TextureView, sampler *Sampler) (*wgpu.BindGroup, error) {
	g, err := l.dev.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "image_bind_group",
		Layout: l.image,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create image bind group: %w", err)
	}
	return g, nil
}

// BindImage creates the bind group batches use to sample img.
func (l *Layout) BindImage(img *Image, sampler *Sampler) (*ImageBinding, error) {
	if img == nil || img.view == nil {
		return nil, ErrReleased
	}
	g, err := l.BindTexture(img.view, sampler)
	if err != nil {
		return nil, err
	}
	return &ImageBinding{group: g, width: img.Width, height: img.Height}, nil
}

// Release destroys the layouts in reverse creation order.
func (l *Layout) Release() {
	if l.pipeline != nil {
		l.pipeline.Release()
		l.pipeline = nil
	}
	if l.image != nil {
		l.image.Release()
		l.image = nil
	}
	if l.projection != nil {
		l.projection.Release()
		l.projection = nil
	}
}

// ImageBinding is the bind group of an image and sampler.
//
// It is immutable once created and may be shared by any number of
// batches. The owner releases it after every batch using it is done.
type ImageBinding struct {
	group         *wgpu.BindGroup
	width, height uint32
}

// Size returns the pixel size of the bound image.
func (b *ImageBinding) Size() (width, height uint32) {
	return b.width, b.height
}

// Release destroys the bind group.
func (b *ImageBinding) Release() {
	if b.group != nil {
		b.group.Release()
		b.group = nil
	}
}
