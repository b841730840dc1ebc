// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/vecmap/vecmap"
)

// LineStringBuilder compiles line string geometries. Consecutive
// features sharing one stroke style accumulate into a single path and
// are stroked together; a style change or Finish flushes the pending
// stroke.
type LineStringBuilder struct {
	builderBase

	// lastStroke is the coordinate-buffer length at the last flushed
	// stroke. A pending path exists while it trails the buffer.
	lastStroke int
	pathOpen   bool
}

// NewLineStringBuilder returns a builder for line string geometries.
func NewLineStringBuilder(opts BuilderOptions) *LineStringBuilder {
	return &LineStringBuilder{builderBase: newBuilderBase(opts)}
}

var _ Builder = (*LineStringBuilder)(nil)

// applyStroke flushes the pending path when the stroke style changed
// and opens a fresh one under the new style.
func (b *LineStringBuilder) applyStroke() {
	key := b.state.stroke.Key()
	if b.pathOpen && key == b.state.currentStrokeKey {
		return
	}
	if b.pathOpen && b.lastStroke != b.coord.len() {
		b.instructions = append(b.instructions, Instruction{Op: OpStroke})
	}
	b.strokeStates[key] = b.state.stroke
	b.instructions = append(b.instructions,
		Instruction{Op: OpSetStrokeStyle, StrokeKey: key},
		Instruction{Op: OpBeginPath},
	)
	b.state.currentStrokeKey = key
	b.lastStroke = b.coord.len()
	b.pathOpen = true
}

// DrawLineString compiles the geometry's segment runs into the shared
// path. Without a stroke style the call is a no-op.
func (b *LineStringBuilder) DrawLineString(geometry vecmap.Geometry, feature vecmap.Feature) {
	if geometry == nil || b.state.stroke == nil {
		return
	}
	b.applyStroke()
	b.beginGeometry(geometry, feature)

	b.hitStyles()
	b.hitInstructions = append(b.hitInstructions, Instruction{Op: OpBeginPath})

	flat := geometry.FlatCoordinates()
	stride := geometry.Stride()
	offset := 0
	for _, end := range geometry.Ends() {
		offset = b.moveToLineTo(flat, offset, end, stride, false)
	}

	b.hitInstructions = append(b.hitInstructions, Instruction{Op: OpStroke})
	b.endGeometry(feature)
}

// Finish flushes any pending stroke before sealing.
func (b *LineStringBuilder) Finish() *Serialized {
	if b.pathOpen && b.lastStroke != b.coord.len() {
		b.instructions = append(b.instructions, Instruction{Op: OpStroke})
		b.lastStroke = b.coord.len()
	}
	return b.builderBase.Finish()
}
