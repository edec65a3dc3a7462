// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws sprite batches with gogpu/wgpu.
//
// A Device either wraps the device of a host application (NewDevice with a
// gpucontext.DeviceProvider) or opens its own headless one (OpenDevice).
// Each tick records into one Frame, which owns the command encoder and the
// transient buffers and bind groups created while recording. Submit
// finishes the encoder, submits it and releases the transients.
//
// # Core Types
//
//   - Layout: bind group layouts (projection uniform, image texture+sampler)
//     and the pipeline layout shared by every sprite pipeline
//   - Shader, SpritePipeline: the sprite WGSL module and a pipeline per
//     target format and Blend
//   - Batch: quads for one image and one blend, flushed into a Target
//   - Target: a texture view with its size and device pixel ratio
//   - RenderTarget: an offscreen texture that can be drawn and sampled
//   - Image, ImageBinding: an uploaded texture and its shared bind group
//   - Perf: a frame time graph drawn as a line list
//
// # Usage
//
//	dev, err := render.OpenDevice()
//	layout, err := render.NewLayout(dev)
//	sampler, err := render.NewSampler(dev, render.Linear)
//	img, err := render.NewImage(dev, "bunny", src)
//	binding, err := layout.BindImage(img, sampler)
//
//	b, err := render.NewBatch(dev, layout, format, sprite.PMANormal, binding)
//	_ = b.AddSprite([2]float32{10, 10}, [2]float32{36, 47})
//
//	frame, err := dev.BeginFrame("tick")
//	err = b.Flush(frame, target)
//	err = frame.Submit()
//
// Resources are released explicitly with Release, in reverse order of
// creation. Recording is single-threaded: a Device, its Frames and Batches
// must be used from one goroutine. ImageBinding values are immutable and
// may be shared by any number of batches.
package render
