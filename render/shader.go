// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

//go:embed shaders/sprite.wgsl
var spriteShaderSource string

//go:embed shaders/perf.wgsl
var perfShaderSource string

// Entry points shared by every shader in this package.
const (
	vertexEntry   = "vs_main"
	fragmentEntry = "fs_main"
)

var (
	validateOnce sync.Once
	validateErr  error
)

// ValidateShaders compiles the embedded WGSL sources with naga. The result
// is computed once per process.
func ValidateShaders() error {
	validateOnce.Do(func() {
		validateErr = validateShaders()
	})
	return validateErr
}

func validateShaders() error {
	for _, s := range []struct {
		name, src string
	}{
		{"sprite", spriteShaderSource},
		{"perf", perfShaderSource},
	} {
		if s.src == "" {
			return fmt.Errorf("%s: %w", s.name, ErrEmptyShader)
		}
		if _, err := naga.Compile(s.src); err != nil {
			return fmt.Errorf("compile %s shader: %w", s.name, err)
		}
	}
	return nil
}

// Shader is the sprite shader module.
type Shader struct {
	module *wgpu.ShaderModule
}

// NewShader creates the sprite shader module.
func NewShader(dev *Device) (*Shader, error) {
	m, err := newShaderModule(dev, "sprite_shader", spriteShaderSource)
	if err != nil {
		return nil, err
	}
	return &Shader{module: m}, nil
}

func newShaderModule(dev *Device, label, src string) (*wgpu.ShaderModule, error) {
	if err := ValidateShaders(); err != nil {
		return nil, err
	}
	m, err := dev.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSL:  src,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return m, nil
}

// Release destroys the shader module.
func (s *Shader) Release() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}
