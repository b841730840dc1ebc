// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/vecmap/vecmap"
)

// BuilderOptions configures instruction compilation.
type BuilderOptions struct {
	// Tolerance is the simplification tolerance in map units.
	Tolerance float64

	// MaxExtent is the world extent drawing is limited to. Geometry
	// outside a buffered copy of it is simplified away.
	MaxExtent vecmap.Extent

	// Resolution is the view resolution the bundle is built for, in
	// map units per pixel.
	Resolution float64

	// PixelRatio is the device pixel ratio the bundle is built for.
	PixelRatio float64

	// Overlaps declares that styles in this bucket overlap in ways
	// where exact per-feature paint order matters; it disables the
	// Executor's fill/stroke batching for bundles built here.
	Overlaps bool
}

// DefaultBuilderOptions returns BuilderOptions with standard settings.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		Tolerance:  0,
		MaxExtent:  vecmap.InfiniteExtent(),
		Resolution: 1,
		PixelRatio: 1,
	}
}

// ImageStyle describes a point-symbol image and its placement.
type ImageStyle struct {
	Image            image.Image
	AnchorX, AnchorY float64
	OriginX, OriginY float64
	Width, Height    float64
	Opacity          float64
	Rotation         float64
	RotateWithView   bool
	Scale            float64
	SnapToPixel      bool

	// DeclutterBox grows the declutter footprint on all sides, in
	// pixels.
	DeclutterBox float64
}

// Builder compiles all features sharing one z-index and geometry kind
// into instruction streams. Draw calls with no applicable style are
// no-ops, not errors; geometry kinds a builder does not understand fall
// through silently.
type Builder interface {
	// SetFillStrokeStyle sets the pending fill and stroke styles for
	// subsequent draw calls. Either may be nil.
	SetFillStrokeStyle(fill *vecmap.FillStyle, stroke *vecmap.StrokeStyle)

	// SetImageStyle sets the pending point-symbol style.
	SetImageStyle(style *ImageStyle, declutter *Group)

	// SetTextStyle sets the pending label style.
	SetTextStyle(style *vecmap.TextStyle, declutter *Group)

	// DrawLineString compiles a line string geometry.
	DrawLineString(geometry vecmap.Geometry, feature vecmap.Feature)

	// DrawPolygon compiles a polygon geometry.
	DrawPolygon(geometry vecmap.Geometry, feature vecmap.Feature)

	// DrawCircle compiles a circle geometry (center and rim point).
	DrawCircle(geometry vecmap.Geometry, feature vecmap.Feature)

	// DrawPoint compiles a point or multi-point symbol geometry.
	DrawPoint(geometry vecmap.Geometry, feature vecmap.Feature)

	// DrawText compiles a label for the geometry.
	DrawText(geometry vecmap.Geometry, feature vecmap.Feature)

	// DrawCustom records a caller-supplied drawing callback over the
	// geometry's coordinates.
	DrawCustom(geometry vecmap.Geometry, feature vecmap.Feature, fn CustomFunc)

	// Empty returns true if no instruction has been recorded.
	Empty() bool

	// Finish seals the builder and returns its serialized bundle.
	// The builder must not be used afterwards.
	Finish() *Serialized
}

// drawState is the mutable pending-style state threaded through draw
// calls, scoped explicitly to the builder rather than shared.
type drawState struct {
	fill   *vecmap.FillStyle
	stroke *vecmap.StrokeStyle
	image  *ImageStyle
	text   *vecmap.TextStyle

	imageDeclutter *Group
	textDeclutter  *Group

	// currentFillKey / currentStrokeKey track the last emitted style
	// instruction so identical styles coalesce.
	currentFillKey   string
	currentStrokeKey string
}

// builderBase carries the state shared by all concrete builders: the
// coordinate buffer, the two instruction streams, the deduplicated
// style dictionaries and the begin/end geometry bracketing.
type builderBase struct {
	opts BuilderOptions

	coord coordBuffer

	instructions    []Instruction
	hitInstructions []Instruction

	fillStates   map[string]*vecmap.FillStyle
	strokeStates map[string]*vecmap.StrokeStyle
	textStates   map[string]*vecmap.TextStyle

	state drawState

	// beginIdx / hitBeginIdx locate the open OpBeginGeometry in each
	// stream while a feature block is being emitted.
	beginIdx    int
	hitBeginIdx int

	// bufferedExtent caches the clip extent grown by the current
	// stroke width.
	bufferedExtent    vecmap.Extent
	hasBufferedExtent bool
}

func newBuilderBase(opts BuilderOptions) builderBase {
	return builderBase{
		opts:         opts,
		fillStates:   make(map[string]*vecmap.FillStyle),
		strokeStates: make(map[string]*vecmap.StrokeStyle),
		textStates:   make(map[string]*vecmap.TextStyle),
		beginIdx:     -1,
		hitBeginIdx:  -1,
	}
}

// SetFillStrokeStyle sets the pending fill and stroke styles.
func (b *builderBase) SetFillStrokeStyle(fill *vecmap.FillStyle, stroke *vecmap.StrokeStyle) {
	b.state.fill = fill
	b.state.stroke = stroke
	// A wider stroke needs a wider clip buffer.
	b.hasBufferedExtent = false
}

// SetImageStyle sets the pending point-symbol style.
func (b *builderBase) SetImageStyle(style *ImageStyle, declutter *Group) {
	b.state.image = style
	b.state.imageDeclutter = declutter
}

// SetTextStyle sets the pending label style.
func (b *builderBase) SetTextStyle(style *vecmap.TextStyle, declutter *Group) {
	b.state.text = style
	b.state.textDeclutter = declutter
}

// No-op defaults: concrete builders override the draw calls they
// understand, everything else falls through silently.

func (b *builderBase) DrawLineString(vecmap.Geometry, vecmap.Feature) {}
func (b *builderBase) DrawPolygon(vecmap.Geometry, vecmap.Feature)   {}
func (b *builderBase) DrawCircle(vecmap.Geometry, vecmap.Feature)    {}
func (b *builderBase) DrawPoint(vecmap.Geometry, vecmap.Feature)     {}
func (b *builderBase) DrawText(vecmap.Geometry, vecmap.Feature)      {}

// DrawCustom records the callback over the geometry's (clipped)
// coordinates; every builder kind supports it.
func (b *builderBase) DrawCustom(geometry vecmap.Geometry, feature vecmap.Feature, fn CustomFunc) {
	if geometry == nil || fn == nil {
		return
	}
	b.beginGeometry(geometry, feature)
	flat := geometry.FlatCoordinates()
	begin := b.coord.len()
	end := b.coord.appendFlat(flat, 0, len(flat), geometry.Stride(), false, false, b.clipExtent())
	instr := Instruction{
		Op:       OpCustom,
		Begin:    begin,
		End:      end,
		Feature:  feature,
		Geometry: geometry,
		Custom:   fn,
	}
	b.instructions = append(b.instructions, instr)
	b.hitInstructions = append(b.hitInstructions, instr)
	b.endGeometry(feature)
}

// beginGeometry opens a feature block in both streams. The SkipTo
// index is patched in endGeometry once the block length is known.
func (b *builderBase) beginGeometry(geometry vecmap.Geometry, feature vecmap.Feature) {
	b.beginIdx = len(b.instructions)
	b.instructions = append(b.instructions, Instruction{
		Op:       OpBeginGeometry,
		Feature:  feature,
		Geometry: geometry,
	})
	b.hitBeginIdx = len(b.hitInstructions)
	b.hitInstructions = append(b.hitInstructions, Instruction{
		Op:       OpBeginGeometry,
		Feature:  feature,
		Geometry: geometry,
	})
}

// endGeometry closes the open feature block: both OpBeginGeometry
// instructions get their SkipTo patched to the index of the matching
// OpEndGeometry, so the Executor can jump past the block in O(1).
func (b *builderBase) endGeometry(feature vecmap.Feature) {
	b.instructions[b.beginIdx].SkipTo = len(b.instructions)
	b.instructions = append(b.instructions, Instruction{Op: OpEndGeometry, Feature: feature})
	b.beginIdx = -1

	b.hitInstructions[b.hitBeginIdx].SkipTo = len(b.hitInstructions)
	b.hitInstructions = append(b.hitInstructions, Instruction{Op: OpEndGeometry, Feature: feature})
	b.hitBeginIdx = -1
}

// updateFillStyle emits OpSetFillStyle only when the pending fill
// differs from the last emitted one. Redundant state changes are the
// dominant replay cost on an imperative surface, so this coalescing is
// load-bearing, not cosmetic.
func (b *builderBase) updateFillStyle() {
	fill := b.state.fill
	if fill == nil {
		return
	}
	key := fill.Key()
	if key == b.state.currentFillKey {
		return
	}
	b.fillStates[key] = fill
	b.instructions = append(b.instructions, Instruction{Op: OpSetFillStyle, FillKey: key})
	b.state.currentFillKey = key
}

// updateStrokeStyle is the stroke twin of updateFillStyle.
func (b *builderBase) updateStrokeStyle() {
	stroke := b.state.stroke
	if stroke == nil {
		return
	}
	key := stroke.Key()
	if key == b.state.currentStrokeKey {
		return
	}
	b.strokeStates[key] = stroke
	b.instructions = append(b.instructions, Instruction{Op: OpSetStrokeStyle, StrokeKey: key})
	b.state.currentStrokeKey = key
}

// hitStyles pushes the current styles into the hit stream. The hit
// stream never coalesces: blocks are reordered at Finish, so each block
// must be self-contained.
func (b *builderBase) hitStyles() {
	if fill := b.state.fill; fill != nil {
		key := fill.Key()
		b.fillStates[key] = fill
		b.hitInstructions = append(b.hitInstructions, Instruction{Op: OpSetFillStyle, FillKey: key})
	}
	if stroke := b.state.stroke; stroke != nil {
		key := stroke.Key()
		b.strokeStates[key] = stroke
		b.hitInstructions = append(b.hitInstructions, Instruction{Op: OpSetStrokeStyle, StrokeKey: key})
	}
}

// moveToLineTo appends one segment run to the coordinate buffer and
// records the matching instruction range in both streams.
func (b *builderBase) moveToLineTo(flat []float64, offset, end, stride int, closed bool) int {
	begin := b.coord.len()
	bufEnd := b.coord.appendFlat(flat, offset, end, stride, closed, false, b.clipExtent())
	instr := Instruction{Op: OpMoveToLineTo, Begin: begin, End: bufEnd}
	b.instructions = append(b.instructions, instr)
	b.hitInstructions = append(b.hitInstructions, instr)
	return end
}

// clipExtent returns the maximum drawing extent buffered by the current
// stroke width, so wide strokes on geometry just outside the extent
// still reach into view.
func (b *builderBase) clipExtent() vecmap.Extent {
	if !b.hasBufferedExtent {
		buffer := 0.0
		if s := b.state.stroke; s != nil {
			buffer = s.Width * b.opts.Resolution
		}
		b.bufferedExtent = b.opts.MaxExtent.Buffer(buffer)
		b.hasBufferedExtent = true
	}
	return b.bufferedExtent
}

// Empty returns true if no instruction has been recorded.
func (b *builderBase) Empty() bool {
	return len(b.instructions) == 0 && len(b.hitInstructions) == 0
}

// Finish seals the builder into its serialized bundle and reorders the
// hit stream for topmost-first testing.
func (b *builderBase) Finish() *Serialized {
	reverseHitInstructions(b.hitInstructions)
	return &Serialized{
		Instructions:    b.instructions,
		HitInstructions: b.hitInstructions,
		Coordinates:     b.coord.coords,
		FillStates:      b.fillStates,
		StrokeStates:    b.strokeStates,
		TextStates:      b.textStates,
	}
}

// reverseHitInstructions reverses the whole stream so the last-drawn
// (topmost) feature block comes first, then re-reverses each
// begin/end-bracketed block back to forward order so instructions
// inside a block stay internally ordered. SkipTo indexes are re-patched
// for the new positions.
func reverseHitInstructions(instrs []Instruction) {
	for i, j := 0, len(instrs)-1; i < j; i, j = i+1, j-1 {
		instrs[i], instrs[j] = instrs[j], instrs[i]
	}
	begin := -1
	for i := range instrs {
		switch instrs[i].Op {
		case OpEndGeometry:
			begin = i
		case OpBeginGeometry:
			if begin < 0 {
				continue
			}
			block := instrs[begin : i+1]
			for x, y := 0, len(block)-1; x < y; x, y = x+1, y-1 {
				block[x], block[y] = block[y], block[x]
			}
			instrs[begin].SkipTo = i
			begin = -1
		}
	}
}
