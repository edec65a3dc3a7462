// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	"github.com/gogpu/wgpu"
)

// DeviceHandle provides GPU device access from a host application.
//
// It is an alias for gpucontext.DeviceProvider. The host keeps ownership
// of the device: a Device built with NewDevice never releases it.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a device. NewDevice rejects it
// with ErrNoDevice.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}

// DeviceOption configures OpenDevice.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	backends wgpu.Backends
	power    wgpu.PowerPreference
	fallback bool
	label    string
}

func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		backends: wgpu.BackendsPrimary,
		power:    wgpu.PowerPreferenceHighPerformance,
		label:    "sprite",
	}
}

// WithBackends restricts the backends OpenDevice may pick an adapter from.
// The default is wgpu.BackendsPrimary.
func WithBackends(b wgpu.Backends) DeviceOption {
	return func(o *deviceOptions) {
		o.backends = b
	}
}

// WithPowerPreference sets the adapter power preference.
// The default is high performance.
func WithPowerPreference(p wgpu.PowerPreference) DeviceOption {
	return func(o *deviceOptions) {
		o.power = p
	}
}

// WithFallbackAdapter forces a software adapter.
func WithFallbackAdapter() DeviceOption {
	return func(o *deviceOptions) {
		o.fallback = true
	}
}

// WithDeviceLabel sets the debug label of the opened device.
func WithDeviceLabel(label string) DeviceOption {
	return func(o *deviceOptions) {
		o.label = label
	}
}

// Device is the wgpu device and queue all render resources are created on.
type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	// Set only when the Device opened them itself.
	instance *wgpu.Instance
	adapter  *wgpu.Adapter

	format   gputypes.TextureFormat
	released bool
}

// NewDevice wraps the device of a host application. The returned Device
// does not own the wgpu device; Release is a no-op for it.
func NewDevice(h DeviceHandle) (*Device, error) {
	if h == nil {
		return nil, ErrNoDevice
	}
	dev, ok := h.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, ErrNoDevice
	}
	queue, _ := h.Queue().(*wgpu.Queue)
	if queue == nil {
		queue = dev.Queue()
	}
	return &Device{
		device: dev,
		queue:  queue,
		format: h.SurfaceFormat(),
	}, nil
}

// OpenDevice creates an instance, picks an adapter and opens a device
// owned by the returned Device.
func OpenDevice(opts ...DeviceOption) (*Device, error) {
	o := defaultDeviceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: o.backends})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      o.power,
		ForceFallbackAdapter: o.fallback,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: o.label})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}

	info := adapter.Info()
	sprite.Logger().Info("render: device opened",
		slog.String("adapter", info.Name),
		slog.String("vendor", info.Vendor),
		slog.String("driver", info.Driver),
	)

	return &Device{
		device:   dev,
		queue:    dev.Queue(),
		instance: instance,
		adapter:  adapter,
		format:   gputypes.TextureFormatUndefined,
	}, nil
}

// WGPU returns the underlying device.
func (d *Device) WGPU() *wgpu.Device { return d.device }

// Queue returns the device queue.
func (d *Device) Queue() *wgpu.Queue { return d.queue }

// Instance returns the instance opened by OpenDevice, or nil for a host
// device. Window surfaces are created from it.
func (d *Device) Instance() *wgpu.Instance { return d.instance }

// SurfaceFormat returns the host's preferred surface format, or
// TextureFormatUndefined for a headless device.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.format }

// Info describes the adapter. It is zero for a host device.
func (d *Device) Info() wgpu.AdapterInfo {
	if d.adapter == nil {
		return wgpu.AdapterInfo{}
	}
	return d.adapter.Info()
}

// Owned reports whether the Device opened the wgpu device itself.
func (d *Device) Owned() bool { return d.instance != nil }

// BeginFrame starts recording a frame.
func (d *Device) BeginFrame(label string) (*Frame, error) {
	if d.released {
		return nil, ErrReleased
	}
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	return &Frame{dev: d, encoder: enc, label: label}, nil
}

// WaitIdle blocks until all submitted work has finished.
func (d *Device) WaitIdle() error {
	if d.released {
		return ErrReleased
	}
	return d.device.WaitIdle()
}

// createBuffer creates a buffer holding data. The size is rounded up to a
// multiple of 4 as required for queue writes.
func (d *Device) createBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	size := align(uint64(len(data)), 4)
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	if len(data) > 0 {
		if uint64(len(data)) != size {
			padded := make([]byte, size)
			copy(padded, data)
			data = padded
		}
		if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
			buf.Release()
			return nil, fmt.Errorf("write %s buffer: %w", label, err)
		}
	}
	return buf, nil
}

// Release releases a device opened by OpenDevice. It waits for
// outstanding work first. Host devices are left untouched.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	if !d.Owned() {
		return
	}
	if err := d.device.WaitIdle(); err != nil {
		sprite.Logger().Warn("render: wait idle on release", slog.Any("err", err))
	}
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

func align[T ~uint32 | ~uint64](n, a T) T {
	return (n + a - 1) / a * a
}
