// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/vecmap/vecmap"
)

// Pass-through shaders used when a pass does not supply its own.
const (
	passThroughVertex = `
attribute vec2 a_position;
varying vec2 v_texCoord;
void main() {
  v_texCoord = a_position * 0.5 + 0.5;
  gl_Position = vec4(a_position, 0.0, 1.0);
}
`
	passThroughFragment = `
precision mediump float;
uniform sampler2D u_image;
varying vec2 v_texCoord;
void main() {
  gl_FragColor = texture2D(u_image, v_texCoord);
}
`
)

// PostProcessOptions configures one post-processing pass.
type PostProcessOptions struct {
	// Scale sizes the pass's render texture relative to the frame.
	// Zero means 1. Values below 1 trade resolution for fill rate.
	Scale float64

	// VertexSource and FragmentSource override the pass-through
	// shaders. Both or neither.
	VertexSource   string
	FragmentSource string

	// Uniforms supplies per-frame scalar uniforms evaluated when the
	// pass runs.
	Uniforms map[string]func(frame vecmap.FrameState) float64
}

// PostProcess is one render-to-texture step of the chain: the scene (or
// the previous pass's output) is drawn into its texture, then its
// shader samples that texture into the next target.
type PostProcess struct {
	scale    float64
	vertex   *ShaderSource
	fragment *ShaderSource
	uniforms map[string]func(vecmap.FrameState) float64

	framebuffer   Framebuffer
	texture       Texture
	width, height int
	ready         bool
}

func newPostProcess(opts PostProcessOptions) *PostProcess {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	vertexSource := opts.VertexSource
	fragmentSource := opts.FragmentSource
	if vertexSource == "" {
		vertexSource = passThroughVertex
	}
	if fragmentSource == "" {
		fragmentSource = passThroughFragment
	}
	return &PostProcess{
		scale:    scale,
		vertex:   &ShaderSource{Kind: VertexShader, Source: vertexSource},
		fragment: &ShaderSource{Kind: FragmentShader, Source: fragmentSource},
		uniforms: opts.Uniforms,
	}
}

// invalidate forgets the pass's handles after a context loss. Nothing
// is deleted; the handles died with the context.
func (p *PostProcess) invalidate() {
	p.framebuffer = 0
	p.texture = 0
	p.ready = false
}

// init sizes the pass's render texture for the frame, recreating it
// when the frame size changed.
func (p *PostProcess) init(h *Helper, width, height int) {
	w := int(float64(width) * p.scale)
	ht := int(float64(height) * p.scale)
	if w < 1 {
		w = 1
	}
	if ht < 1 {
		ht = 1
	}
	if p.ready && p.width == w && p.height == ht {
		return
	}
	if p.ready {
		h.ctx.DeleteFramebuffer(p.framebuffer)
		h.ctx.DeleteTexture(p.texture)
	}
	p.texture = h.ctx.CreateTexture(w, ht)
	p.framebuffer = h.ctx.CreateFramebuffer(p.texture)
	p.width, p.height = w, ht
	p.ready = true
}

// bind makes the pass's texture the render target.
func (p *PostProcess) bind(h *Helper, width, height int) {
	p.init(h, width, height)
	h.ctx.BindFramebuffer(p.framebuffer)
	h.ctx.Viewport(p.width, p.height)
}

// apply samples the pass's texture into the target framebuffer with
// the pass's shader over a fullscreen quad.
func (p *PostProcess) apply(h *Helper, target Framebuffer, targetWidth, targetHeight int, frame vecmap.FrameState) {
	program, err := h.GetProgram(p.vertex, p.fragment)
	if err != nil {
		vecmap.Logger().Error("post-process shader unavailable", "err", err)
		return
	}
	h.ctx.BindFramebuffer(target)
	h.ctx.Viewport(targetWidth, targetHeight)
	h.UseProgram(program)
	h.BindBuffer(h.quad)
	h.EnableAttributeArray("a_position", 2, 0, 0)
	h.ctx.BindTexture(p.texture)
	h.ctx.BlendAlphaOver()
	for name, fn := range p.uniforms {
		h.SetUniformFloat(name, fn(frame))
	}
	h.ctx.DrawArrays(6)
}
