// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Filter selects how a sampler magnifies and minifies.
type Filter uint8

const (
	// Linear interpolates between texels.
	Linear Filter = iota
	// Nearest picks the closest texel. Use it for pixel art.
	Nearest
)

func (f Filter) String() string {
	switch f {
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

func (f Filter) mode() gputypes.FilterMode {
	if f == Nearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// Sampler is a texture sampler with clamped addressing.
type Sampler struct {
	sampler *wgpu.Sampler
	filter  Filter
}

func samplerDescriptor(f Filter) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:        "sprite_sampler_" + f.String(),
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    f.mode(),
		MinFilter:    f.mode(),
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	}
}

// NewSampler creates a sampler with the given filter.
func NewSampler(dev *Device, f Filter) (*Sampler, error) {
	s, err := dev.device.CreateSampler(samplerDescriptor(f))
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	return &Sampler{sampler: s, filter: f}, nil
}

// Filter returns the filter the sampler was created with.
func (s *Sampler) Filter() Filter { return s.filter }

// Release destroys the sampler.
func (s *Sampler) Release() {
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
}
