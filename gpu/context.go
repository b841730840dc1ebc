// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu provides the GPU resource helper: cached buffer, shader
// and program management over a duck-typed immediate-mode graphics
// context, with explicit context-loss recovery and a configurable
// post-processing chain.
package gpu

// Opaque resource handles as issued by a Context. Zero is never a
// valid handle; DefaultFramebuffer aliases the on-screen target.
type (
	Buffer          uint32
	ShaderHandle    uint32
	Program         uint32
	Texture         uint32
	Framebuffer     uint32
	UniformLocation int32
	AttribLocation  int32
)

// DefaultFramebuffer is the on-screen render target.
const DefaultFramebuffer Framebuffer = 0

// BufferTarget selects the binding point of a buffer.
type BufferTarget uint32

const (
	// ArrayBuffer holds vertex attributes.
	ArrayBuffer BufferTarget = iota
	// ElementArrayBuffer holds element indices.
	ElementArrayBuffer
)

// BufferUsage hints how often a buffer's contents change.
type BufferUsage uint32

const (
	// StaticDraw is written once and drawn many times.
	StaticDraw BufferUsage = iota
	// DynamicDraw is rewritten frequently.
	DynamicDraw
	// StreamDraw is rewritten every frame.
	StreamDraw
)

// ShaderKind selects the pipeline stage of a shader.
type ShaderKind uint32

const (
	// VertexShader runs per vertex.
	VertexShader ShaderKind = iota
	// FragmentShader runs per fragment.
	FragmentShader
)

// Context is the immediate-mode graphics surface the helper drives. It
// is duck-typed on purpose: production wires a real GPU binding, tests
// wire a recording fake. All operations on a lost context must be safe
// no-ops on the implementation side; the helper additionally guards
// with IsLost before touching resources.
type Context interface {
	// IsLost reports whether the underlying context has been lost.
	// Handles issued before a loss are invalid afterwards.
	IsLost() bool

	// Has32BitIndices reports whether element indices may be 32 bit
	// wide. Without it index uploads and draws use 16-bit indices.
	Has32BitIndices() bool

	// Size returns the drawing buffer size in device pixels.
	Size() (width, height int)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, buffer Buffer)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)
	DeleteBuffer(buffer Buffer)

	CompileShader(kind ShaderKind, source string) (ShaderHandle, error)
	DeleteShader(shader ShaderHandle)
	LinkProgram(vertex, fragment ShaderHandle) (Program, error)
	UseProgram(program Program)
	DeleteProgram(program Program)

	GetUniformLocation(program Program, name string) UniformLocation
	GetAttribLocation(program Program, name string) AttribLocation
	EnableVertexAttrib(location AttribLocation, size, stride, offset int)
	UniformFloat(location UniformLocation, value float64)
	UniformMatrix(location UniformLocation, values [9]float64)

	// DrawElements draws count triangle indices starting at the byte
	// offset; wide selects 32-bit index width.
	DrawElements(count, offset int, wide bool)

	// DrawArrays draws count unindexed vertices as triangles.
	DrawArrays(count int)

	Viewport(width, height int)
	Clear(r, g, b, a float64)

	// BlendAlphaOver enables premultiplied alpha-over blending.
	BlendAlphaOver()

	CreateTexture(width, height int) Texture
	BindTexture(texture Texture)
	DeleteTexture(texture Texture)

	CreateFramebuffer(color Texture) Framebuffer
	BindFramebuffer(framebuffer Framebuffer)
	DeleteFramebuffer(framebuffer Framebuffer)
}
