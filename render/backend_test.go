// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// The CPU backend gives the GPU tests a device with a queue on machines
// without drivers. wgpu loads native libraries without cgo, so run the
// tests with CGO_ENABLED=0 on Unix.
import _ "github.com/gogpu/wgpu/hal/software"
