// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (windowing or engine layer) owns the device and passes it
// down; this package receives it and never creates one. The alias keeps
// full compatibility with the gpucontext ecosystem under a local name.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device attached. Helpers
// constructed with it run purely against their Context, which is how
// tests and software fallbacks operate.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceHandle = NullDeviceHandle{}

// TextureDescriptor describes parameters for creating an offscreen
// render texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width, Height are the texture size in pixels.
	Width  uint32
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat
}

// DefaultTextureDescriptor returns a descriptor for a standard RGBA
// render target, using the host surface format when a device is
// attached.
func DefaultTextureDescriptor(device DeviceHandle, width, height uint32) TextureDescriptor {
	format := gputypes.TextureFormatRGBA8Unorm
	if device != nil {
		if f := device.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	}
	return TextureDescriptor{Width: width, Height: height, Format: format}
}
