// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu"
)

// Target is a texture view sprites are drawn into.
//
// Width and Height are in physical pixels. Scale is the device pixel ratio
// applied by the projection, so sprite coordinates are in logical pixels.
type Target struct {
	View   *wgpu.TextureView
	Width  uint32
	Height uint32
	Scale  float32
}

// Projection returns the pixel to clip space transform of the target.
func (t Target) Projection() mgl32.Mat4 {
	return sprite.Projection(0, 0, float32(t.Width), float32(t.Height), t.Scale)
}

// Pass begins a render pass that keeps the current contents of the target.
// The caller must End it.
func (t Target) Pass(f *Frame) (*wgpu.RenderPassEncoder, error) {
	return f.beginPass(t.View, gputypes.LoadOpLoad, gputypes.Color{})
}

// ProjectionBindGroup uploads the target projection into a uniform buffer
// and binds it. Both belong to the frame.
func (t Target) ProjectionBindGroup(f *Frame, layout *Layout) (*wgpu.BindGroup, error) {
	if f.done {
		return nil, ErrFrameDone
	}
	buf, err := f.dev.createBuffer("projection", wgpu.BufferUsageUniform, matrixBytes(t.Projection()))
	if err != nil {
		return nil, err
	}
	f.own(buf)
	g, err := layout.BindProjection(buf)
	if err != nil {
		return nil, err
	}
	f.own(g)
	return g, nil
}

// matrixBytes encodes m column by column as little-endian float32.
func matrixBytes(m mgl32.Mat4) []byte {
	out := make([]byte, projectionSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// ClearColor clears view to c in a pass of its own.
func ClearColor(f *Frame, view *wgpu.TextureView, c gputypes.Color) error {
	pass, err := f.beginPass(view, gputypes.LoadOpClear, c)
	if err != nil {
		return err
	}
	return pass.End()
}
