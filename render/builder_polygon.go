// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/vecmap/vecmap"
)

// PolygonBuilder compiles polygon and circle geometries. Each feature
// gets its own begin-path/fill/stroke sequence so ring winding stays
// self-contained.
type PolygonBuilder struct {
	builderBase
}

// NewPolygonBuilder returns a builder for polygon geometries.
func NewPolygonBuilder(opts BuilderOptions) *PolygonBuilder {
	return &PolygonBuilder{builderBase: newBuilderBase(opts)}
}

var _ Builder = (*PolygonBuilder)(nil)

// drawRings emits one path over all rings, closing each one, then
// fills and strokes it per the pending styles.
func (b *PolygonBuilder) drawRings(flat []float64, offset int, ends []int, stride int) {
	beginPath := Instruction{Op: OpBeginPath}
	b.instructions = append(b.instructions, beginPath)
	b.hitInstructions = append(b.hitInstructions, beginPath)
	for _, end := range ends {
		offset = b.moveToLineTo(flat, offset, end, stride, true)
		closePath := Instruction{Op: OpClosePath}
		b.instructions = append(b.instructions, closePath)
		b.hitInstructions = append(b.hitInstructions, closePath)
	}
	if b.state.fill != nil {
		fill := Instruction{Op: OpFill}
		b.instructions = append(b.instructions, fill)
		b.hitInstructions = append(b.hitInstructions, fill)
	}
	if b.state.stroke != nil {
		stroke := Instruction{Op: OpStroke}
		b.instructions = append(b.instructions, stroke)
		b.hitInstructions = append(b.hitInstructions, stroke)
	}
}

// DrawPolygon compiles the geometry's rings. Without a fill or stroke
// style the call is a no-op.
func (b *PolygonBuilder) DrawPolygon(geometry vecmap.Geometry, feature vecmap.Feature) {
	if geometry == nil || (b.state.fill == nil && b.state.stroke == nil) {
		return
	}
	b.updateFillStyle()
	b.updateStrokeStyle()
	b.beginGeometry(geometry, feature)
	b.hitStyles()
	b.drawRings(geometry.FlatCoordinates(), 0, geometry.Ends(), geometry.Stride())
	b.endGeometry(feature)
}

// DrawCircle compiles a circle stored as two flat points: the center
// followed by a point on the rim.
func (b *PolygonBuilder) DrawCircle(geometry vecmap.Geometry, feature vecmap.Feature) {
	if geometry == nil || (b.state.fill == nil && b.state.stroke == nil) {
		return
	}
	b.updateFillStyle()
	b.updateStrokeStyle()
	b.beginGeometry(geometry, feature)
	b.hitStyles()

	flat := geometry.FlatCoordinates()
	stride := geometry.Stride()
	begin := b.coord.len()
	b.coord.append2(flat[0], flat[1])
	b.coord.append2(flat[stride], flat[stride+1])

	instrs := []Instruction{
		{Op: OpBeginPath},
		{Op: OpCircle, Begin: begin},
	}
	if b.state.fill != nil {
		instrs = append(instrs, Instruction{Op: OpFill})
	}
	if b.state.stroke != nil {
		instrs = append(instrs, Instruction{Op: OpStroke})
	}
	b.instructions = append(b.instructions, instrs...)
	b.hitInstructions = append(b.hitInstructions, instrs...)
	b.endGeometry(feature)
}
