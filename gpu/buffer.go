// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"
)

// BufferObject is the CPU-side staging object for one GPU buffer. The
// helper keys uploaded GPU buffers by object identity: mutate the
// contents and bind again to reupload into the same GPU buffer slot.
type BufferObject struct {
	target BufferTarget
	usage  BufferUsage

	floats  []float32
	indices []uint32
}

// NewBufferObject returns an empty staging buffer for the target.
func NewBufferObject(target BufferTarget, usage BufferUsage) *BufferObject {
	return &BufferObject{target: target, usage: usage}
}

// Target returns the buffer's binding point.
func (b *BufferObject) Target() BufferTarget { return b.target }

// Usage returns the buffer's usage hint.
func (b *BufferObject) Usage() BufferUsage { return b.usage }

// SetFloats replaces the vertex contents.
func (b *BufferObject) SetFloats(data []float32) { b.floats = data }

// Floats returns the staged vertex contents.
func (b *BufferObject) Floats() []float32 { return b.floats }

// SetIndices replaces the element contents.
func (b *BufferObject) SetIndices(data []uint32) { b.indices = data }

// Indices returns the staged element contents.
func (b *BufferObject) Indices() []uint32 { return b.indices }

// Len returns the element count: floats for vertex buffers, indices
// for element buffers.
func (b *BufferObject) Len() int {
	if b.target == ElementArrayBuffer {
		return len(b.indices)
	}
	return len(b.floats)
}

// bytes encodes the staged contents for upload. Element indices are
// written 32 bit wide when the context supports it, 16 bit otherwise;
// indices that do not fit 16 bits are truncated by the narrow path, so
// callers splitting large meshes must keep chunks under 65536 vertices.
func (b *BufferObject) bytes(wide bool) []byte {
	if b.target == ElementArrayBuffer {
		if wide {
			out := make([]byte, 4*len(b.indices))
			for i, v := range b.indices {
				binary.LittleEndian.PutUint32(out[4*i:], v)
			}
			return out
		}
		out := make([]byte, 2*len(b.indices))
		for i, v := range b.indices {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
		}
		return out
	}
	out := make([]byte, 4*len(b.floats))
	for i, v := range b.floats {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}
