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

type releaser interface {
	Release()
}

// Frame records the GPU work of one tick into a single command encoder.
//
// Buffers and bind groups created while recording (vertex data, projection
// uniforms) belong to the Frame and are released once it is submitted or
// discarded.
type Frame struct {
	dev       *Device
	encoder   *wgpu.CommandEncoder
	label     string
	transient []releaser
	passes    int
	done      bool
}

// Device returns the device the frame records on.
func (f *Frame) Device() *Device { return f.dev }

// Encoder returns the command encoder. It is invalid after Submit.
func (f *Frame) Encoder() *wgpu.CommandEncoder { return f.encoder }

// Passes returns the number of render passes begun on this frame.
func (f *Frame) Passes() int { return f.passes }

// own hands r to the frame, which releases it after submission.
func (f *Frame) own(r releaser) {
	f.transient = append(f.transient, r)
}

// beginPass starts a render pass on view.
func (f *Frame) beginPass(view *wgpu.TextureView, load wgpu.LoadOp, clear wgpu.Color) (*wgpu.RenderPassEncoder, error) {
	if f.done {
		return nil, ErrFrameDone
	}
	pass, err := f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: f.label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     load,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("begin render pass: %w", err)
	}
	f.passes++
	return pass, nil
}

// Submit finishes the encoder and submits it to the queue without waiting
// for completion.
func (f *Frame) Submit() error {
	if f.done {
		return ErrFrameDone
	}
	f.done = true
	defer f.releaseTransient()

	cmd, err := f.encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	if _, err := f.dev.queue.Submit(cmd); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// Discard drops everything recorded so far.
func (f *Frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.encoder.DiscardEncoding()
	f.releaseTransient()
}

func (f *Frame) releaseTransient() {
	if n := len(f.transient); n > 0 {
		sprite.Logger().Debug("render: frame resources released",
			slog.String("frame", f.label), slog.Int("count", n))
	}
	for i := len(f.transient) - 1; i >= 0; i-- {
		f.transient[i].Release()
	}
	f.transient = nil
}
