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

// copyRowAlignment is the bytes-per-row alignment of texture to buffer
// copies.
const copyRowAlignment = 256

// paddedBytesPerRow returns the row pitch of a width pixel wide RGBA8 copy.
func paddedBytesPerRow(width uint32) uint32 {
	return align(width*4, copyRowAlignment)
}

// ReadTexture copies a width x height RGBA8 or BGRA8 texture into an
// image. The texture needs TextureUsageCopySrc. Pixel values are returned
// as stored, which for sprite output means premultiplied.
func ReadTexture(ctx context.Context, dev *Device, tex *wgpu.Texture, format gputypes.TextureFormat, width, height uint32) (*image.RGBA, error) {
	swap, err := swapsRedBlue(format)
	if err != nil {
		return nil, err
	}
	if tex == nil {
		return nil, ErrReleased
	}

	pitch := paddedBytesPerRow(width)
	size := uint64(pitch) * uint64(height)
	staging, err := dev.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "readback",
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("create readback buffer: %w", err)
	}
	defer staging.Release()

	enc, err := dev.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	enc.CopyTextureToBuffer(tex, staging, []wgpu.BufferTextureCopy{
		{
			BufferLayout: wgpu.ImageDataLayout{BytesPerRow: pitch, RowsPerImage: height},
			TextureBase:  wgpu.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
			Size:         wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		},
	})
	cmd, err := enc.Finish()
	if err != nil {
		return nil, fmt.Errorf("finish encoder: %w", err)
	}
	if _, err := dev.queue.Submit(cmd); err != nil {
		return nil, fmt.Errorf("submit readback: %w", err)
	}

	if err := staging.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("map readback buffer: %w", err)
	}
	rng, err := staging.MappedRange(0, size)
	if err != nil {
		_ = staging.Unmap()
		return nil, fmt.Errorf("mapped range: %w", err)
	}
	img := unpadRows(rng.Bytes(), width, height, pitch, swap)
	if err := staging.Unmap(); err != nil {
		return nil, fmt.Errorf("unmap readback buffer: %w", err)
	}
	return img, nil
}

func swapsRedBlue(format gputypes.TextureFormat) (bool, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return false, nil
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true, nil
	default:
		return false, fmt.Errorf("readback %v: %w", format, ErrUnsupportedFormat)
	}
}

// unpadRows copies tightly packed rows out of a buffer with row pitch
// pitch, optionally swapping the red and blue channels.
func unpadRows(src []byte, width, height, pitch uint32, swap bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	row := int(width) * 4
	for y := 0; y < int(height); y++ {
		line := src[y*int(pitch):]
		dst := img.Pix[y*img.Stride : y*img.Stride+row]
		copy(dst, line[:row])
		if swap {
			for i := 0; i < row; i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img
}
