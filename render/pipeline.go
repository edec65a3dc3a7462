// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu"
)

// spriteVertexLayout describes sprite.Vertex:
//
//	position  (vec2<f32>) = 8 bytes (location 0)
//	tex_coord (vec2<f32>) = 8 bytes (location 1)
func spriteVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: sprite.VertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
	}
}

func spritePipelineDescriptor(label string, layout *wgpu.PipelineLayout, module *wgpu.ShaderModule, format gputypes.TextureFormat, blend sprite.Blend) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    spriteVertexLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets:    []gputypes.ColorTargetState{blend.ColorTarget(format)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	}
}

// SpritePipeline is the sprite render pipeline for one target format and
// one blend.
type SpritePipeline struct {
	pipeline *wgpu.RenderPipeline
	format   gputypes.TextureFormat
	blend    sprite.Blend
}

// NewSpritePipeline creates a sprite pipeline drawing into format with blend.
func NewSpritePipeline(dev *Device, layout *Layout, shader *Shader, format gputypes.TextureFormat, blend sprite.Blend) (*SpritePipeline, error) {
	if shader == nil || shader.module == nil {
		return nil, ErrReleased
	}
	p, err := dev.device.CreateRenderPipeline(spritePipelineDescriptor("sprite_pipeline", layout.pipeline, shader.module, format, blend))
	if err != nil {
		return nil, fmt.Errorf("create sprite pipeline: %w", err)
	}
	sprite.Logger().Debug("render: sprite pipeline created",
		slog.String("format", format.String()),
		slog.Bool("blend", !blend.IsReplace()),
	)
	return &SpritePipeline{pipeline: p, format: format, blend: blend}, nil
}

// NormalPipeline creates a pipeline with premultiplied source-over blending.
func NormalPipeline(dev *Device, layout *Layout, shader *Shader, format gputypes.TextureFormat) (*SpritePipeline, error) {
	return NewSpritePipeline(dev, layout, shader, format, sprite.PMANormal)
}

// ReplacePipeline creates a pipeline that overwrites the target.
func ReplacePipeline(dev *Device, layout *Layout, shader *Shader, format gputypes.TextureFormat) (*SpritePipeline, error) {
	return NewSpritePipeline(dev, layout, shader, format, sprite.Replace)
}

// Format returns the color target format.
func (p *SpritePipeline) Format() gputypes.TextureFormat { return p.format }

// Blend returns the blend the pipeline was created with.
func (p *SpritePipeline) Blend() sprite.Blend { return p.blend }

// Release destroys the pipeline.
func (p *SpritePipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
}
