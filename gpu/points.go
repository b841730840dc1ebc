// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/vecmap/vecmap"
)

// Default point-sprite shaders: a quad per point, expanded in the
// vertex stage, shaded as a circular sprite in the fragment stage.
const (
	pointsVertex = `
attribute vec2 a_position;
attribute vec2 a_offset;
attribute float a_size;
attribute float a_opacity;
uniform mat3 u_projectionMatrix;
uniform float u_pixelRatio;
uniform float u_viewportWidth;
uniform float u_viewportHeight;
varying vec2 v_offset;
varying float v_opacity;
void main() {
  vec3 clip = u_projectionMatrix * vec3(a_position, 1.0);
  vec2 offset = a_offset * a_size * u_pixelRatio *
      vec2(2.0 / u_viewportWidth, -2.0 / u_viewportHeight);
  gl_Position = vec4(clip.xy + offset, 0.0, 1.0);
  v_offset = a_offset;
  v_opacity = a_opacity;
}
`
	pointsFragment = `
precision mediump float;
varying vec2 v_offset;
varying float v_opacity;
void main() {
  float dist = length(v_offset) * 2.0;
  float alpha = 1.0 - smoothstep(0.9, 1.0, dist);
  gl_FragColor = vec4(0.0, 0.0, 0.0, alpha * v_opacity);
}
`
)

// floats per vertex: x, y, offsetX, offsetY, size, opacity.
const pointsVertexFloats = 6

// maxNarrowQuads is the quad capacity of a 16-bit index buffer.
const maxNarrowQuads = 65536 / 4

// PointsRendererOptions configures a PointsRenderer.
type PointsRendererOptions struct {
	// VertexSource and FragmentSource override the default sprite
	// shaders. The attribute layout must match the default one.
	VertexSource   string
	FragmentSource string
}

// PointsRenderer accumulates point features as one quad each and draws
// them in a single call. Rebuild the set with Clear and AddPoint when
// the data changes; Draw uploads only when the set changed.
type PointsRenderer struct {
	helper   *Helper
	vertex   *ShaderSource
	fragment *ShaderSource

	vertices *BufferObject
	indices  *BufferObject

	verts []float32
	idx   []uint32
	count int
	dirty bool

	warnedNarrow bool
}

// NewPointsRenderer returns a points renderer on the helper.
func NewPointsRenderer(helper *Helper, opts PointsRendererOptions) *PointsRenderer {
	vertexSource := opts.VertexSource
	fragmentSource := opts.FragmentSource
	if vertexSource == "" {
		vertexSource = pointsVertex
	}
	if fragmentSource == "" {
		fragmentSource = pointsFragment
	}
	return &PointsRenderer{
		helper:   helper,
		vertex:   &ShaderSource{Kind: VertexShader, Source: vertexSource},
		fragment: &ShaderSource{Kind: FragmentShader, Source: fragmentSource},
		vertices: NewBufferObject(ArrayBuffer, DynamicDraw),
		indices:  NewBufferObject(ElementArrayBuffer, DynamicDraw),
	}
}

// Len returns the number of accumulated points.
func (r *PointsRenderer) Len() int { return r.count }

// Clear drops all accumulated points.
func (r *PointsRenderer) Clear() {
	r.verts = r.verts[:0]
	r.idx = r.idx[:0]
	r.count = 0
	r.dirty = true
}

// AddPoint accumulates one point at world coordinates (x, y) with the
// given sprite size in pixels and opacity in [0, 1].
func (r *PointsRenderer) AddPoint(x, y, size, opacity float64) {
	base := uint32(r.count * 4)
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	for _, c := range corners {
		r.verts = append(r.verts,
			float32(x), float32(y),
			c[0], c[1],
			float32(size), float32(opacity),
		)
	}
	r.idx = append(r.idx,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	r.count++
	r.dirty = true
}

// Draw renders the accumulated points for the frame. Lost contexts
// make it a no-op; shader failures are returned.
func (r *PointsRenderer) Draw(frame vecmap.FrameState) error {
	if r.count == 0 {
		return nil
	}
	program, err := r.helper.GetProgram(r.vertex, r.fragment)
	if err != nil {
		if err == ErrContextLost {
			return nil
		}
		return err
	}
	r.helper.UseProgram(program)

	quads := r.count
	if !r.helper.Context().Has32BitIndices() && quads > maxNarrowQuads {
		if !r.warnedNarrow {
			vecmap.Logger().Warn("point set exceeds 16-bit index capacity, truncating",
				"points", r.count, "max", maxNarrowQuads)
			r.warnedNarrow = true
		}
		quads = maxNarrowQuads
	}

	if r.dirty {
		r.vertices.SetFloats(r.verts)
		r.indices.SetIndices(r.idx)
		r.helper.FlushBufferData(r.vertices)
		r.helper.FlushBufferData(r.indices)
		r.dirty = false
	} else {
		r.helper.BindBuffer(r.vertices)
		r.helper.BindBuffer(r.indices)
	}

	stride := pointsVertexFloats * 4
	r.helper.EnableAttributeArray("a_position", 2, stride, 0)
	r.helper.EnableAttributeArray("a_offset", 2, stride, 8)
	r.helper.EnableAttributeArray("a_size", 1, stride, 16)
	r.helper.EnableAttributeArray("a_opacity", 1, stride, 20)
	r.helper.ApplyFrameState(frame)
	r.helper.DrawElements(0, quads*6)
	return nil
}
