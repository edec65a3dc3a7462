// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu"
)

// PerfHistory is the number of frame times the graph shows.
const PerfHistory = 120

// perfScaleY maps one millisecond of frame time to five pixels.
const perfScaleY = 1000 * 5

// Perf draws a bar per recent frame time along the bottom of a target.
type Perf struct {
	last     time.Time
	history  [PerfHistory]float32
	shader   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

// NewPerf creates the graph pipeline for targets of the given format.
func NewPerf(dev *Device, format gputypes.TextureFormat) (*Perf, error) {
	shader, err := newShaderModule(dev, "perf_shader", perfShaderSource)
	if err != nil {
		return nil, err
	}
	layout, err := dev.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{Label: "perf_layout"})
	if err != nil {
		shader.Release()
		return nil, fmt.Errorf("create perf layout: %w", err)
	}
	pipeline, err := dev.device.CreateRenderPipeline(perfPipelineDescriptor(layout, shader, format))
	if err != nil {
		layout.Release()
		shader.Release()
		return nil, fmt.Errorf("create perf pipeline: %w", err)
	}
	return &Perf{
		last:     time.Now(),
		shader:   shader,
		layout:   layout,
		pipeline: pipeline,
	}, nil
}

func perfPipelineDescriptor(layout *wgpu.PipelineLayout, module *wgpu.ShaderModule, format gputypes.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  "perf_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 8,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets:    []gputypes.ColorTargetState{sprite.Replace.ColorTarget(format)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	}
}

// Tick records the time since the previous tick as the newest sample.
func (p *Perf) Tick(now time.Time) {
	dt := float32(now.Sub(p.last).Seconds())
	p.last = now
	p.Push(dt)
}

// Push appends a frame time in seconds, dropping the oldest.
func (p *Perf) Push(dt float32) {
	copy(p.history[:], p.history[1:])
	p.history[PerfHistory-1] = dt
}

// History returns the frame times, oldest first.
func (p *Perf) History() [PerfHistory]float32 { return p.history }

// Lines returns one vertical line per sample in clip space, as
// (x0, y0, x1, y1) quadruples, for a target of the given pixel size.
func (p *Perf) Lines(width, height uint32) [PerfHistory][4]float32 {
	var lines [PerfHistory][4]float32
	sx := 2 / float32(width)
	sy := 2 / float32(height) * perfScaleY
	for i, dt := range p.history {
		x := float32(i)*sx - 1
		lines[i] = [4]float32{x, -1, x, dt*sy - 1}
	}
	return lines
}

// Draw draws the graph into target.
func (p *Perf) Draw(f *Frame, target Target) error {
	if p.pipeline == nil {
		return ErrReleased
	}
	lines := p.Lines(target.Width, target.Height)
	data := make([]byte, 0, PerfHistory*16)
	for _, l := range lines {
		for _, v := range l {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
		}
	}
	buf, err := f.dev.createBuffer("perf_lines", wgpu.BufferUsageVertex, data)
	if err != nil {
		return err
	}
	f.own(buf)

	pass, err := target.Pass(f)
	if err != nil {
		return err
	}
	pass.SetPipeline(p.pipeline)
	pass.SetVertexBuffer(0, buf, 0)
	pass.Draw(2*PerfHistory, 1, 0, 0)
	return pass.End()
}

// Release destroys the pipeline, layout and shader.
func (p *Perf) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
}
