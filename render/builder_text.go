// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/vecmap/vecmap"
)

// TextBuilder compiles label styles into instructions. Point-placed
// labels become OpDrawImage with an unresolved LabelRef, since the
// pixel size of a label is unknown until rasterization; line-placed
// labels become OpDrawChars and are laid out along the path at replay
// time.
type TextBuilder struct {
	builderBase
}

// NewTextBuilder returns a builder for label compilation.
func NewTextBuilder(opts BuilderOptions) *TextBuilder {
	return &TextBuilder{builderBase: newBuilderBase(opts)}
}

var _ Builder = (*TextBuilder)(nil)

// DrawText compiles one label for the geometry. Without a text style,
// text content, or any text fill or stroke the call is a no-op.
func (b *TextBuilder) DrawText(geometry vecmap.Geometry, feature vecmap.Feature) {
	style := b.state.text
	if geometry == nil || style == nil || style.Text == "" {
		return
	}
	if style.Fill == nil && style.Stroke == nil {
		return
	}

	textKey := style.Key()
	b.textStates[textKey] = style
	var fillKey, strokeKey string
	if style.Fill != nil {
		fillKey = style.Fill.Key()
		b.fillStates[fillKey] = style.Fill
	}
	if style.Stroke != nil {
		strokeKey = style.Stroke.Key()
		b.strokeStates[strokeKey] = style.Stroke
	}

	if style.Placement == vecmap.PlacementLine && geometry.Kind() == vecmap.KindLineString {
		b.drawChars(geometry, feature, style, textKey, fillKey, strokeKey)
		return
	}
	b.drawLabel(geometry, feature, style, textKey, fillKey, strokeKey)
}

// drawChars emits one OpDrawChars per segment run of the line.
func (b *TextBuilder) drawChars(geometry vecmap.Geometry, feature vecmap.Feature, style *vecmap.TextStyle, textKey, fillKey, strokeKey string) {
	b.beginGeometry(geometry, feature)
	flat := geometry.FlatCoordinates()
	stride := geometry.Stride()
	offset := 0
	for _, end := range geometry.Ends() {
		begin := b.coord.len()
		bufEnd := b.coord.appendFlat(flat, offset, end, stride, false, false, b.clipExtent())
		offset = end
		instr := Instruction{
			Op:        OpDrawChars,
			Begin:     begin,
			End:       bufEnd,
			Feature:   feature,
			Geometry:  geometry,
			Text:      style.Text,
			TextKey:   textKey,
			FillKey:   fillKey,
			StrokeKey: strokeKey,
			Overflow:  style.Overflow,
			MaxAngle:  style.MaxAngle,
			Padding:   style.Padding,
			Declutter: b.state.textDeclutter,
		}
		if instr.Declutter != nil {
			instr.Declutter.Add()
		}
		b.instructions = append(b.instructions, instr)
		b.hitInstructions = append(b.hitInstructions, instr)
	}
	b.endGeometry(feature)
}

// drawLabel emits a point-placed label blit with a placeholder cell the
// first replay resolves.
func (b *TextBuilder) drawLabel(geometry vecmap.Geometry, feature vecmap.Feature, style *vecmap.TextStyle, textKey, fillKey, strokeKey string) {
	anchors := labelAnchors(geometry)
	if len(anchors) == 0 {
		return
	}
	b.beginGeometry(geometry, feature)
	begin := b.coord.len()
	for i := 0; i+1 < len(anchors); i += 2 {
		b.coord.append2(anchors[i], anchors[i+1])
	}
	end := b.coord.len()

	instr := Instruction{
		Op:       OpDrawImage,
		Begin:    begin,
		End:      end,
		Feature:  feature,
		Geometry: geometry,
		Label: &LabelRef{
			Text:      style.Text,
			TextKey:   textKey,
			FillKey:   fillKey,
			StrokeKey: strokeKey,
		},
		TextKey:   textKey,
		FillKey:   fillKey,
		StrokeKey: strokeKey,
		Rotation:  style.Rotation,
		Scale:     style.Scale,
		Opacity:   1,
		Overflow:  style.Overflow,
		Padding:   style.Padding,
		Declutter: b.state.textDeclutter,
	}
	if instr.Declutter != nil {
		instr.Declutter.Add()
	}
	b.instructions = append(b.instructions, instr)
	b.hitInstructions = append(b.hitInstructions, instr)
	b.endGeometry(feature)
}

// labelAnchors returns the flat anchor coordinates for a point-placed
// label: points label each point, lines label their length midpoint,
// polygons and circles label an interior point.
func labelAnchors(geometry vecmap.Geometry) []float64 {
	flat := geometry.FlatCoordinates()
	stride := geometry.Stride()
	if len(flat) < 2 {
		return nil
	}
	switch geometry.Kind() {
	case vecmap.KindImage, vecmap.KindText:
		anchors := make([]float64, 0, len(flat)/stride*2)
		for i := 0; i+1 < len(flat); i += stride {
			anchors = append(anchors, flat[i], flat[i+1])
		}
		return anchors
	case vecmap.KindLineString:
		ends := geometry.Ends()
		x, y := midpointAlong(flat, 0, ends[0], stride)
		return []float64{x, y}
	case vecmap.KindCircle:
		return []float64{flat[0], flat[1]}
	default:
		ends := geometry.Ends()
		x, y := ringCentroid(flat, 0, ends[0], stride)
		return []float64{x, y}
	}
}

// midpointAlong interpolates the point at half the run's arc length.
func midpointAlong(flat []float64, offset, end, stride int) (float64, float64) {
	total := 0.0
	for i := offset + stride; i < end; i += stride {
		dx := flat[i] - flat[i-stride]
		dy := flat[i+1] - flat[i-stride+1]
		total += math.Hypot(dx, dy)
	}
	if total == 0 {
		return flat[offset], flat[offset+1]
	}
	target := total / 2
	walked := 0.0
	for i := offset + stride; i < end; i += stride {
		dx := flat[i] - flat[i-stride]
		dy := flat[i+1] - flat[i-stride+1]
		seg := math.Hypot(dx, dy)
		if walked+seg >= target {
			t := (target - walked) / seg
			return flat[i-stride] + dx*t, flat[i-stride+1] + dy*t
		}
		walked += seg
	}
	return flat[end-stride], flat[end-stride+1]
}

// ringCentroid averages the ring's vertices, skipping the closing
// duplicate when present.
func ringCentroid(flat []float64, offset, end, stride int) (float64, float64) {
	if end-offset >= 2*stride &&
		flat[offset] == flat[end-stride] && flat[offset+1] == flat[end-stride+1] {
		end -= stride
	}
	var sx, sy float64
	n := 0
	for i := offset; i+1 < end; i += stride {
		sx += flat[i]
		sy += flat[i+1]
		n++
	}
	if n == 0 {
		return flat[offset], flat[offset+1]
	}
	return sx / float64(n), sy / float64(n)
}
