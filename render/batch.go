// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/internal/batch"
	"github.com/gogpu/wgpu"
)

// BatchOption configures NewBatch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	label    string
	capacity int
}

func defaultBatchOptions() batchOptions {
	return batchOptions{label: "sprite_batch", capacity: 64}
}

// WithLabel sets the debug label of the batch buffers.
func WithLabel(label string) BatchOption {
	return func(o *batchOptions) {
		o.label = label
	}
}

// WithCapacity preallocates room for n quads.
func WithCapacity(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// Batch accumulates quads that share one image and one blend and draws
// them into a Target on Flush.
//
// The index buffer holds the static pattern for batch.MaxQuads quads and
// is created once. Vertices are uploaded into a buffer owned by the frame
// on each Flush.
type Batch struct {
	dev      *Device
	layout   *Layout
	label    string
	quads    *batch.Quads
	indices  *wgpu.Buffer
	shader   *Shader
	pipeline *SpritePipeline
	image    *ImageBinding
}

// NewBatch creates a batch drawing image into targets of the given format
// with blend. The batch does not take ownership of image.
func NewBatch(dev *Device, layout *Layout, format gputypes.TextureFormat, blend sprite.Blend, image *ImageBinding, opts ...BatchOption) (*Batch, error) {
	if image == nil || image.group == nil {
		return nil, fmt.Errorf("new batch: image binding: %w", ErrReleased)
	}
	o := defaultBatchOptions()
	for _, opt := range opts {
		opt(&o)
	}

	shader, err := NewShader(dev)
	if err != nil {
		return nil, err
	}
	pipeline, err := NewSpritePipeline(dev, layout, shader, format, blend)
	if err != nil {
		shader.Release()
		return nil, err
	}
	indices, err := dev.createBuffer(o.label+"_indices", wgpu.BufferUsageIndex, indexBytes(batch.Indices()))
	if err != nil {
		pipeline.Release()
		shader.Release()
		return nil, err
	}

	return &Batch{
		dev:      dev,
		layout:   layout,
		label:    o.label,
		quads:    batch.New(o.capacity),
		indices:  indices,
		shader:   shader,
		pipeline: pipeline,
		image:    image,
	}, nil
}

// AddQuad appends a quad with explicit vertices.
func (b *Batch) AddQuad(quad [4]sprite.Vertex) error {
	return b.quads.AddQuad(quad)
}

// AddSprite appends the axis-aligned quad spanning min and max with the
// whole image mapped onto it.
func (b *Batch) AddSprite(minXY, maxXY [2]float32) error {
	return b.quads.AddSprite(minXY, maxXY)
}

// Clear drops all queued quads.
func (b *Batch) Clear() { b.quads.Clear() }

// Len returns the number of queued quads.
func (b *Batch) Len() int { return b.quads.Len() }

// Draws returns the number of draw calls the next Flush records.
func (b *Batch) Draws() int {
	if b.quads.IsEmpty() {
		return 0
	}
	return len(b.quads.Commands())
}

// Flush draws the queued quads into target in one render pass and clears
// the batch. Nothing is recorded for an empty batch. The batch is cleared
// even when recording fails.
func (b *Batch) Flush(f *Frame, target Target) error {
	defer b.quads.Clear()
	if b.quads.IsEmpty() {
		return nil
	}
	if b.pipeline.pipeline == nil || b.image.group == nil {
		return ErrReleased
	}
	if f.done {
		return ErrFrameDone
	}

	vtx, err := b.dev.createBuffer(b.label+"_vertices", wgpu.BufferUsageVertex, sprite.VertexBytes(b.quads.Vertices()))
	if err != nil {
		return err
	}
	f.own(vtx)

	proj, err := target.ProjectionBindGroup(f, b.layout)
	if err != nil {
		return err
	}

	pass, err := target.Pass(f)
	if err != nil {
		return err
	}
	pass.SetPipeline(b.pipeline.pipeline)
	pass.SetVertexBuffer(0, vtx, 0)
	pass.SetIndexBuffer(b.indices, gputypes.IndexFormatUint16, 0)
	pass.SetBindGroup(0, proj, nil)
	pass.SetBindGroup(1, b.image.group, nil)
	b.quads.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	sprite.Logger().Debug("render: batch flushed",
		slog.String("batch", b.label),
		slog.Int("quads", b.quads.Len()),
		slog.Int("draws", len(b.quads.Commands())),
	)
	return nil
}

// Release destroys the pipeline, shader and index buffer. The image
// binding is left to its owner.
func (b *Batch) Release() {
	if b.indices != nil {
		b.indices.Release()
		b.indices = nil
	}
	b.pipeline.Release()
	b.shader.Release()
}

func indexBytes(idx []uint16) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*2) //nolint:gosec // uint16 slice reinterpreted as bytes
}
