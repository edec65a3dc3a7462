// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrNoDevice is returned by NewDevice when the provider does not
	// expose a *wgpu.Device and *wgpu.Queue.
	ErrNoDevice = errors.New("render: provider has no wgpu device")

	// ErrReleased is returned when a released resource is used.
	ErrReleased = errors.New("render: resource released")

	// ErrFrameDone is returned when a Frame is used after Submit or Discard.
	ErrFrameDone = errors.New("render: frame already submitted")

	// ErrEmptyShader is returned when an embedded shader source is empty.
	ErrEmptyShader = errors.New("render: shader source is empty")

	// ErrInvalidSize is returned for zero-sized images and render targets.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrUnsupportedFormat is returned by readback for formats other than
	// 8-bit RGBA and BGRA.
	ErrUnsupportedFormat = errors.New("render: unsupported texture format")
)
