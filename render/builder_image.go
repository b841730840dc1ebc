// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/vecmap/vecmap"
)

// ImageBuilder compiles point and multi-point symbol geometries into
// OpDrawImage instructions. The pending image style is snapshotted per
// draw call, so later style mutation does not leak backwards.
type ImageBuilder struct {
	builderBase
}

// NewImageBuilder returns a builder for point-symbol geometries.
func NewImageBuilder(opts BuilderOptions) *ImageBuilder {
	return &ImageBuilder{builderBase: newBuilderBase(opts)}
}

var _ Builder = (*ImageBuilder)(nil)

// DrawPoint compiles one symbol blit per point in the geometry.
// Without an image style the call is a no-op.
func (b *ImageBuilder) DrawPoint(geometry vecmap.Geometry, feature vecmap.Feature) {
	style := b.state.image
	if geometry == nil || style == nil || style.Image == nil {
		return
	}
	b.beginGeometry(geometry, feature)

	flat := geometry.FlatCoordinates()
	stride := geometry.Stride()
	begin := b.coord.len()
	for i := 0; i+1 < len(flat); i += stride {
		b.coord.append2(flat[i], flat[i+1])
	}
	end := b.coord.len()

	instr := Instruction{
		Op:             OpDrawImage,
		Begin:          begin,
		End:            end,
		Feature:        feature,
		Geometry:       geometry,
		Image:          style.Image,
		AnchorX:        style.AnchorX,
		AnchorY:        style.AnchorY,
		Width:          style.Width,
		Height:         style.Height,
		OriginX:        style.OriginX,
		OriginY:        style.OriginY,
		Opacity:        style.Opacity,
		Rotation:       style.Rotation,
		RotateWithView: style.RotateWithView,
		Scale:          style.Scale,
		SnapToPixel:    style.SnapToPixel,
		Padding:        style.DeclutterBox,
		Declutter:      b.state.imageDeclutter,
	}
	if instr.Declutter != nil {
		instr.Declutter.Add()
	}
	b.instructions = append(b.instructions, instr)
	b.hitInstructions = append(b.hitInstructions, instr)
	b.endGeometry(feature)
}
