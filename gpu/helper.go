// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/vecmap/vecmap"
)

// ErrContextLost is returned by resource getters while the context is
// lost. Draw-path methods degrade to no-ops instead.
var ErrContextLost = errors.New("gpu: context lost")

// Standard uniform names set by ApplyFrameState.
const (
	UniformProjection     = "u_projectionMatrix"
	UniformRotation       = "u_rotation"
	UniformResolution     = "u_resolution"
	UniformPixelRatio     = "u_pixelRatio"
	UniformViewportWidth  = "u_viewportWidth"
	UniformViewportHeight = "u_viewportHeight"
)

// ShaderSource pairs a pipeline stage with shader source text. The
// helper caches compiled shaders by source object identity, so reuse
// the same *ShaderSource across frames to hit the cache.
type ShaderSource struct {
	Kind   ShaderKind
	Source string
}

type programKey struct {
	vertex, fragment *ShaderSource
}

// HelperOptions configures a Helper.
type HelperOptions struct {
	// Device is the optional host GPU device. A nil device behaves
	// like NullDeviceHandle.
	Device DeviceHandle

	// PostProcesses configures the post-processing chain, applied in
	// order during FinalizeDraw. Empty gets a single pass-through.
	PostProcesses []PostProcessOptions
}

// Helper manages GPU resources over a Context: buffers, shaders and
// programs are created on first use and cached by identity. The helper
// is a two-state machine, active and context-lost; losing the context
// drops every cache, and restoration rebuilds resources lazily on the
// next use.
type Helper struct {
	ctx    Context
	device DeviceHandle

	buffers  map[*BufferObject]Buffer
	shaders  map[*ShaderSource]ShaderHandle
	programs map[programKey]Program

	current     Program
	uniformLocs map[string]UniformLocation
	attribLocs  map[string]AttribLocation

	lost bool

	post []*PostProcess
	quad *BufferObject
}

// NewHelper returns a helper over the context.
func NewHelper(ctx Context, opts HelperOptions) *Helper {
	device := opts.Device
	if device == nil {
		device = NullDeviceHandle{}
	}
	h := &Helper{
		ctx:      ctx,
		device:   device,
		buffers:  make(map[*BufferObject]Buffer),
		shaders:  make(map[*ShaderSource]ShaderHandle),
		programs: make(map[programKey]Program),
	}
	passes := opts.PostProcesses
	if len(passes) == 0 {
		passes = []PostProcessOptions{{}}
	}
	for _, p := range passes {
		h.post = append(h.post, newPostProcess(p))
	}
	quad := NewBufferObject(ArrayBuffer, StaticDraw)
	quad.SetFloats([]float32{-1, -1, 1, -1, 1, 1, -1, -1, 1, 1, -1, 1})
	h.quad = quad
	return h
}

// Context returns the underlying graphics context.
func (h *Helper) Context() Context { return h.ctx }

// Device returns the host device handle.
func (h *Helper) Device() DeviceHandle { return h.device }

// Size returns the drawing buffer size in device pixels.
func (h *Helper) Size() (int, int) { return h.ctx.Size() }

// Lost reports whether the helper is in the context-lost state.
func (h *Helper) Lost() bool {
	h.sync()
	return h.lost
}

// sync reconciles the helper state with the context. A freshly lost
// context drops every cache; a restored one stays empty until
// resources are recreated on demand.
func (h *Helper) sync() {
	lost := h.ctx.IsLost()
	if lost == h.lost {
		return
	}
	if lost {
		h.invalidate()
		vecmap.Logger().Warn("gpu context lost, dropping resource caches")
	} else {
		vecmap.Logger().Info("gpu context restored")
	}
	h.lost = lost
}

// ContextLost signals loss explicitly, for contexts that cannot report
// it through IsLost.
func (h *Helper) ContextLost() {
	if !h.lost {
		h.invalidate()
		vecmap.Logger().Warn("gpu context lost, dropping resource caches")
		h.lost = true
	}
}

// ContextRestored signals restoration explicitly.
func (h *Helper) ContextRestored() {
	h.lost = false
}

// invalidate drops every cached handle. Handles on a lost context are
// already invalid, so nothing is deleted through the context.
func (h *Helper) invalidate() {
	h.buffers = make(map[*BufferObject]Buffer)
	h.shaders = make(map[*ShaderSource]ShaderHandle)
	h.programs = make(map[programKey]Program)
	h.current = 0
	h.uniformLocs = nil
	h.attribLocs = nil
	for _, p := range h.post {
		p.invalidate()
	}
}

// BindBuffer binds the GPU buffer for the staging object, creating and
// uploading it on first use. No-op while lost.
func (h *Helper) BindBuffer(b *BufferObject) {
	h.sync()
	if h.lost {
		return
	}
	handle, ok := h.buffers[b]
	if !ok {
		handle = h.ctx.CreateBuffer()
		h.buffers[b] = handle
		h.ctx.BindBuffer(b.Target(), handle)
		h.ctx.BufferData(b.Target(), b.bytes(h.ctx.Has32BitIndices()), b.Usage())
		return
	}
	h.ctx.BindBuffer(b.Target(), handle)
}

// FlushBufferData re-uploads a staging object whose contents changed.
func (h *Helper) FlushBufferData(b *BufferObject) {
	h.sync()
	if h.lost {
		return
	}
	h.BindBuffer(b)
	h.ctx.BufferData(b.Target(), b.bytes(h.ctx.Has32BitIndices()), b.Usage())
}

// DeleteBuffer releases the GPU buffer of a staging object. Deleting a
// never-bound object is a no-op.
func (h *Helper) DeleteBuffer(b *BufferObject) {
	handle, ok := h.buffers[b]
	if !ok {
		return
	}
	delete(h.buffers, b)
	if !h.lost {
		h.ctx.DeleteBuffer(handle)
	}
}

// GetShader compiles the source on first request and caches the handle
// by source object identity.
func (h *Helper) GetShader(src *ShaderSource) (ShaderHandle, error) {
	h.sync()
	if h.lost {
		return 0, ErrContextLost
	}
	if handle, ok := h.shaders[src]; ok {
		return handle, nil
	}
	handle, err := h.ctx.CompileShader(src.Kind, src.Source)
	if err != nil {
		return 0, fmt.Errorf("gpu: compile shader: %w", err)
	}
	h.shaders[src] = handle
	return handle, nil
}

// GetProgram links the shader pair on first request and caches the
// handle by pair identity.
func (h *Helper) GetProgram(vertex, fragment *ShaderSource) (Program, error) {
	h.sync()
	if h.lost {
		return 0, ErrContextLost
	}
	key := programKey{vertex: vertex, fragment: fragment}
	if program, ok := h.programs[key]; ok {
		return program, nil
	}
	v, err := h.GetShader(vertex)
	if err != nil {
		return 0, err
	}
	f, err := h.GetShader(fragment)
	if err != nil {
		return 0, err
	}
	program, err := h.ctx.LinkProgram(v, f)
	if err != nil {
		return 0, fmt.Errorf("gpu: link program: %w", err)
	}
	h.programs[key] = program
	return program, nil
}

// UseProgram switches the active program. Switching invalidates the
// uniform and attribute location caches; locations are program
// specific. A no-op when the program is already current.
func (h *Helper) UseProgram(program Program) {
	h.sync()
	if h.lost || program == h.current {
		return
	}
	h.ctx.UseProgram(program)
	h.current = program
	h.uniformLocs = make(map[string]UniformLocation)
	h.attribLocs = make(map[string]AttribLocation)
}

// UniformLocation resolves and caches a uniform location on the
// current program.
func (h *Helper) UniformLocation(name string) UniformLocation {
	if loc, ok := h.uniformLocs[name]; ok {
		return loc
	}
	loc := h.ctx.GetUniformLocation(h.current, name)
	if h.uniformLocs == nil {
		h.uniformLocs = make(map[string]UniformLocation)
	}
	h.uniformLocs[name] = loc
	return loc
}

// AttribLocation resolves and caches an attribute location on the
// current program.
func (h *Helper) AttribLocation(name string) AttribLocation {
	if loc, ok := h.attribLocs[name]; ok {
		return loc
	}
	loc := h.ctx.GetAttribLocation(h.current, name)
	if h.attribLocs == nil {
		h.attribLocs = make(map[string]AttribLocation)
	}
	h.attribLocs[name] = loc
	return loc
}

// EnableAttributeArray points the named attribute of the current
// program at the bound vertex buffer.
func (h *Helper) EnableAttributeArray(name string, size, stride, offset int) {
	h.sync()
	if h.lost {
		return
	}
	h.ctx.EnableVertexAttrib(h.AttribLocation(name), size, stride, offset)
}

// SetUniformFloat sets a scalar uniform on the current program.
func (h *Helper) SetUniformFloat(name string, value float64) {
	h.sync()
	if h.lost {
		return
	}
	h.ctx.UniformFloat(h.UniformLocation(name), value)
}

// SetUniformMatrix sets a 3x3 row-major matrix uniform from an affine
// transform.
func (h *Helper) SetUniformMatrix(name string, t vecmap.Transform) {
	h.sync()
	if h.lost {
		return
	}
	h.ctx.UniformMatrix(h.UniformLocation(name), [9]float64{
		t.A, t.B, t.C,
		t.D, t.E, t.F,
		0, 0, 1,
	})
}

// PrepareDraw opens a frame: binds the first post-process target,
// sets the viewport, enables alpha-over blending and clears. A no-op
// while the context is lost.
func (h *Helper) PrepareDraw(frame vecmap.FrameState) {
	h.sync()
	if h.lost {
		return
	}
	width := int(float64(frame.Width) * frame.PixelRatio)
	height := int(float64(frame.Height) * frame.PixelRatio)
	h.post[0].bind(h, width, height)
	h.ctx.BlendAlphaOver()
	h.ctx.Clear(0, 0, 0, 0)
}

// ApplyFrameState sets the standard view uniforms on the current
// program: the world-to-clip projection, and the frame's rotation,
// resolution and pixel ratio.
func (h *Helper) ApplyFrameState(frame vecmap.FrameState) {
	width := float64(frame.Width) * frame.PixelRatio
	height := float64(frame.Height) * frame.PixelRatio
	if width == 0 || height == 0 {
		return
	}
	toClip := vecmap.Translate(-1, 1).Multiply(vecmap.Scale(2/width, -2/height))
	h.SetUniformMatrix(UniformProjection, toClip.Multiply(frame.Transform()))
	h.SetUniformFloat(UniformRotation, frame.Rotation)
	h.SetUniformFloat(UniformResolution, frame.Resolution)
	h.SetUniformFloat(UniformPixelRatio, frame.PixelRatio)
	h.SetUniformFloat(UniformViewportWidth, width)
	h.SetUniformFloat(UniformViewportHeight, height)
}

// DrawElements draws the index range [start, end) of the bound element
// buffer. Index width follows the context's 32-bit index capability.
func (h *Helper) DrawElements(start, end int) {
	h.sync()
	if h.lost {
		return
	}
	wide := h.ctx.Has32BitIndices()
	indexBytes := 2
	if wide {
		indexBytes = 4
	}
	h.ctx.DrawElements(end-start, start*indexBytes, wide)
}

// FinalizeDraw closes a frame: each post-process pass samples the
// previous pass's output, the last one rendering to the screen.
func (h *Helper) FinalizeDraw(frame vecmap.FrameState) {
	h.sync()
	if h.lost {
		return
	}
	width, height := h.ctx.Size()
	for i, pass := range h.post {
		target := DefaultFramebuffer
		if i+1 < len(h.post) {
			next := h.post[i+1]
			next.init(h, width, height)
			target = next.framebuffer
		}
		pass.apply(h, target, width, height, frame)
	}
}
