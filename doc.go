// Package sprite provides 2D sprite batching and compositing for Go on top
// of gogpu/wgpu.
//
// # Overview
//
// sprite accepts axis-aligned textured quads, batches them into the fewest
// indexed draw calls a 16-bit index buffer allows, and composites them onto
// a render target with fixed-function blend modes. Frame-based animations
// select which texture or atlas frame is drawn on each tick.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/sprite"
//	    "github.com/gogpu/sprite/asset"
//	    "github.com/gogpu/sprite/render"
//	)
//
//	dev, _ := render.OpenDevice()
//	layout, _ := render.NewLayout(dev)
//	sampler, _ := render.NewSampler(dev, render.Linear)
//
//	src, _ := asset.Load("bunny.png", asset.SRGB)
//	img, _ := render.NewImage(dev, "bunny", src)
//	binding, _ := layout.BindImage(img, sampler)
//
//	batch, _ := render.NewBatch(dev, layout, format, sprite.PMANormal, binding)
//	_ = batch.AddSprite([2]float32{10, 10}, [2]float32{36, 47})
//
//	frame, _ := dev.BeginFrame("tick")
//	_ = batch.Flush(frame, target)
//	_ = frame.Submit()
//
// app.Run wraps this in a frame loop over a window or offscreen surface.
//
// # Architecture
//
// The module is organized into:
//   - Public API: Point, Matrix, Frame, Bounds, GD8, Sprite, Vertex, Blend,
//     Animation, Projection
//   - internal/batch: GPU-independent quad accumulation and draw splitting
//   - render: wgpu device, pipelines, batches, targets, images, perf overlay
//   - asset: image decoding with premultiplied alpha, spritesheet JSON
//   - app: frame loop over a window or offscreen surface
//
// # Coordinate System
//
// Pixel coordinates with the origin at the top-left, X right and Y down.
// Projection maps them to clip space with the device pixel ratio applied.
// Angles are in radians.
//
// # Blending
//
// Textures are premultiplied on load. The PMA* blends assume premultiplied
// sources; NPMNormal is provided for straight-alpha content and Replace
// disables blending.
//
// # Logging
//
// Nothing is logged by default. See SetLogger.
package sprite
