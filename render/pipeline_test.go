// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
)

func TestSpriteVertexLayout(t *testing.T) {
	layouts := spriteVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("len(layouts) = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != 16 {
		t.Errorf("ArrayStride = %d, want 16", l.ArrayStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want Vertex", l.StepMode)
	}
	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
	}
	if len(l.Attributes) != len(want) {
		t.Fatalf("len(Attributes) = %d, want %d", len(l.Attributes), len(want))
	}
	for i := range want {
		if l.Attributes[i] != want[i] {
			t.Errorf("Attributes[%d] = %+v, want %+v", i, l.Attributes[i], want[i])
		}
	}
}

func TestSpritePipelineDescriptor(t *testing.T) {
	tests := []struct {
		name      string
		blend     sprite.Blend
		wantBlend bool
	}{
		{"normal", sprite.PMANormal, true},
		{"replace", sprite.Replace, false},
		{"add", sprite.PMAAdd, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := spritePipelineDescriptor("test", nil, nil, gputypes.TextureFormatBGRA8Unorm, tt.blend)

			if d.Vertex.EntryPoint != "vs_main" || d.Fragment.EntryPoint != "fs_main" {
				t.Errorf("entry points = %q/%q, want vs_main/fs_main", d.Vertex.EntryPoint, d.Fragment.EntryPoint)
			}
			if d.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
				t.Errorf("Topology = %v, want TriangleList", d.Primitive.Topology)
			}
			if d.Primitive.CullMode != gputypes.CullModeNone {
				t.Errorf("CullMode = %v, want None", d.Primitive.CullMode)
			}
			if d.Multisample.Count != 1 {
				t.Errorf("Multisample.Count = %d, want 1", d.Multisample.Count)
			}
			if len(d.Fragment.Targets) != 1 {
				t.Fatalf("len(Targets) = %d, want 1", len(d.Fragment.Targets))
			}
			target := d.Fragment.Targets[0]
			if target.Format != gputypes.TextureFormatBGRA8Unorm {
				t.Errorf("Format = %v, want BGRA8Unorm", target.Format)
			}
			if target.WriteMask != gputypes.ColorWriteMaskAll {
				t.Errorf("WriteMask = %v, want All", target.WriteMask)
			}
			if got := target.Blend != nil; got != tt.wantBlend {
				t.Fatalf("blend enabled = %v, want %v", got, tt.wantBlend)
			}
			if tt.wantBlend {
				if target.Blend.Color != tt.blend.Color || target.Blend.Alpha != tt.blend.Alpha {
					t.Errorf("Blend = %+v, want %+v", *target.Blend, tt.blend)
				}
			}
		})
	}
}

func TestPerfPipelineDescriptor(t *testing.T) {
	d := perfPipelineDescriptor(nil, nil, gputypes.TextureFormatRGBA8Unorm)
	if d.Primitive.Topology != gputypes.PrimitiveTopologyLineList {
		t.Errorf("Topology = %v, want LineList", d.Primitive.Topology)
	}
	if d.Vertex.Buffers[0].ArrayStride != 8 {
		t.Errorf("ArrayStride = %d, want 8", d.Vertex.Buffers[0].ArrayStride)
	}
	if d.Fragment.Targets[0].Blend != nil {
		t.Error("perf pipeline blends, want replace")
	}
}

func TestLayoutEntries(t *testing.T) {
	proj := projectionLayoutEntries()
	if len(proj) != 1 {
		t.Fatalf("len(projection entries) = %d, want 1", len(proj))
	}
	if proj[0].Buffer == nil || proj[0].Buffer.Type != gputypes.BufferBindingTypeUniform {
		t.Errorf("projection entry = %+v, want uniform buffer", proj[0])
	}
	if proj[0].Buffer.MinBindingSize != 64 {
		t.Errorf("MinBindingSize = %d, want 64", proj[0].Buffer.MinBindingSize)
	}
	if proj[0].Visibility != gputypes.ShaderStageVertex {
		t.Errorf("projection visibility = %v, want vertex", proj[0].Visibility)
	}

	img := imageLayoutEntries()
	if len(img) != 2 {
		t.Fatalf("len(image entries) = %d, want 2", len(img))
	}
	if img[0].Binding != 0 || img[0].Texture == nil {
		t.Errorf("image entry 0 = %+v, want texture at binding 0", img[0])
	} else if img[0].Texture.ViewDimension != gputypes.TextureViewDimension2D {
		t.Errorf("texture dimension = %v, want 2D", img[0].Texture.ViewDimension)
	}
	if img[1].Binding != 1 || img[1].Sampler == nil {
		t.Errorf("image entry 1 = %+v, want sampler at binding 1", img[1])
	}
	for i, e := range img {
		if e.Visibility != gputypes.ShaderStageFragment {
			t.Errorf("image entry %d visibility = %v, want fragment", i, e.Visibility)
		}
	}
}

func TestSamplerDescriptor(t *testing.T) {
	tests := []struct {
		filter Filter
		want   gputypes.FilterMode
		label  string
	}{
		{Linear, gputypes.FilterModeLinear, "sprite_sampler_linear"},
		{Nearest, gputypes.FilterModeNearest, "sprite_sampler_nearest"},
	}
	for _, tt := range tests {
		d := samplerDescriptor(tt.filter)
		if d.MagFilter != tt.want || d.MinFilter != tt.want {
			t.Errorf("%v: filters = %v/%v, want %v", tt.filter, d.MagFilter, d.MinFilter, tt.want)
		}
		if d.AddressModeU != gputypes.AddressModeClampToEdge || d.AddressModeV != gputypes.AddressModeClampToEdge {
			t.Errorf("%v: address modes = %v/%v, want clamp", tt.filter, d.AddressModeU, d.AddressModeV)
		}
		if d.Label != tt.label {
			t.Errorf("%v: Label = %q, want %q", tt.filter, d.Label, tt.label)
		}
	}
	if s := Filter(9).String(); s != "Filter(9)" {
		t.Errorf("Filter(9).String() = %q", s)
	}
}
