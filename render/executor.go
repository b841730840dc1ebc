// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/vecmap/vecmap"
	"github.com/vecmap/vecmap/cache"
)

// DefaultBatchThreshold is the number of pending fills or strokes that
// forces a flush during batched replay.
const DefaultBatchThreshold = 200

// defaultMaxAngle bounds the angle delta between adjacent characters of
// line-placed text when the style leaves it unset.
const defaultMaxAngle = math.Pi / 4

// ExecutorOptions configures instruction replay.
type ExecutorOptions struct {
	// PixelRatio is the device pixel ratio replay targets.
	PixelRatio float64

	// Overlaps disables fill/stroke batching so per-feature paint
	// order is exact.
	Overlaps bool

	// BatchThreshold overrides DefaultBatchThreshold when positive.
	BatchThreshold int

	// Labels supplies the label rasterizer. A default cache is
	// created when nil.
	Labels *LabelCache
}

// Executor replays one serialized bundle against a Surface. It owns a
// cached pixel-space projection of the bundle's coordinates, recomputed
// only when the frame transform changes.
type Executor struct {
	pixelRatio     float64
	overlaps       bool
	batchThreshold int
	labels         *LabelCache

	instructions    []Instruction
	hitInstructions []Instruction
	coordinates     []float64
	fillStates      map[string]*vecmap.FillStyle
	strokeStates    map[string]*vecmap.StrokeStyle
	textStates      map[string]*vecmap.TextStyle

	renderedTransform vecmap.Transform
	pixelCoords       []float64
	hasPixelCoords    bool
}

// NewExecutor returns an executor over the serialized bundle.
func NewExecutor(serialized *Serialized, opts ExecutorOptions) *Executor {
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = 1
	}
	if opts.BatchThreshold <= 0 {
		opts.BatchThreshold = DefaultBatchThreshold
	}
	if opts.Labels == nil {
		opts.Labels = NewLabelCache(nil, cache.DefaultCapacity)
	}
	return &Executor{
		pixelRatio:      opts.PixelRatio,
		overlaps:        opts.Overlaps,
		batchThreshold:  opts.BatchThreshold,
		labels:          opts.Labels,
		instructions:    serialized.Instructions,
		hitInstructions: serialized.HitInstructions,
		coordinates:     serialized.Coordinates,
		fillStates:      serialized.FillStates,
		strokeStates:    serialized.StrokeStates,
		textStates:      serialized.TextStates,
	}
}

// transformed returns the bundle's coordinates in pixel space, reusing
// the cached projection when the transform is unchanged.
func (e *Executor) transformed(transform vecmap.Transform) []float64 {
	if e.hasPixelCoords && transform == e.renderedTransform {
		return e.pixelCoords
	}
	e.pixelCoords = transform.ApplyFlat(e.pixelCoords[:0], e.coordinates, 2)
	e.renderedTransform = transform
	e.hasPixelCoords = true
	return e.pixelCoords
}

// replayPass is the per-pass state threaded through one execute call:
// the collision tree or deferral map for decluttered draws, the skip
// set, and the hit-test hooks.
type replayPass struct {
	tree      SpatialIndex
	skip      map[string]bool
	hitExtent *vecmap.Extent
	callback  func(vecmap.Feature) bool
	out       *DeclutterReplays
	zKey      string
	frame     uint64
}

// Execute replays the render stream. declutterTree may be nil to draw
// everything unconditionally; skip lists feature IDs whose blocks are
// jumped over.
func (e *Executor) Execute(s vecmap.Surface, transform vecmap.Transform, viewRotation float64, declutterTree SpatialIndex, skip map[string]bool) {
	e.execute(s, transform, viewRotation, e.instructions, replayPass{
		tree:  declutterTree,
		skip:  skip,
		frame: nextDeclutterFrame(),
	})
}

// ExecuteHit replays the hit stream. The callback runs once per feature
// block, topmost feature first; returning true stops the replay and the
// feature is returned. hitExtent, when non-nil, culls feature blocks
// whose geometry extent does not intersect it.
func (e *Executor) ExecuteHit(s vecmap.Surface, transform vecmap.Transform, viewRotation float64, hitExtent *vecmap.Extent, skip map[string]bool, callback func(vecmap.Feature) bool) vecmap.Feature {
	return e.execute(s, transform, viewRotation, e.hitInstructions, replayPass{
		skip:      skip,
		hitExtent: hitExtent,
		callback:  callback,
	})
}

func (e *Executor) execute(
	s vecmap.Surface,
	transform vecmap.Transform,
	viewRotation float64,
	instrs []Instruction,
	pass replayPass,
) vecmap.Feature {
	px := e.transformed(transform)

	// Hit replay never batches: the callback must observe one feature
	// at a time.
	batching := !e.overlaps && pass.callback == nil
	pendingFill, pendingStroke := 0, 0
	var currentFill *vecmap.FillStyle

	flushFill := func() {
		if pendingFill > 0 {
			s.Fill()
			pendingFill = 0
		}
	}
	flushStroke := func() {
		if pendingStroke > 0 {
			s.Stroke()
			pendingStroke = 0
		}
	}

	for i := 0; i < len(instrs); i++ {
		instr := &instrs[i]
		switch instr.Op {
		case OpBeginGeometry:
			if pass.skip != nil && instr.Feature != nil && pass.skip[instr.Feature.ID()] {
				e.releaseDeclutter(s, instrs, i+1, instr.SkipTo, pass)
				i = instr.SkipTo
			} else if pass.hitExtent != nil && instr.Geometry != nil &&
				!instr.Geometry.Extent().Intersects(*pass.hitExtent) {
				i = instr.SkipTo
			}

		case OpEndGeometry:
			if pass.callback != nil && pass.callback(instr.Feature) {
				return instr.Feature
			}

		case OpBeginPath:
			if pendingFill > e.batchThreshold {
				flushFill()
			}
			if pendingStroke > e.batchThreshold {
				flushStroke()
			}
			if pendingFill == 0 && pendingStroke == 0 {
				s.BeginPath()
			}

		case OpMoveToLineTo:
			d := instr.Begin
			s.MoveTo(px[d], px[d+1])
			for d += 2; d < instr.End; d += 2 {
				s.LineTo(px[d], px[d+1])
			}

		case OpClosePath:
			s.ClosePath()

		case OpCircle:
			d := instr.Begin
			dx := px[d+2] - px[d]
			dy := px[d+3] - px[d+1]
			s.Arc(px[d], px[d+1], math.Hypot(dx, dy), 0, 2*math.Pi)

		case OpFill:
			if batching {
				pendingFill++
			} else {
				s.Fill()
			}

		case OpStroke:
			if batching {
				pendingStroke++
			} else {
				s.Stroke()
			}

		case OpSetFillStyle:
			flushFill()
			currentFill = e.fillStates[instr.FillKey]
			if currentFill != nil {
				s.SetFillPaint(currentFill.Paint)
			}

		case OpSetStrokeStyle:
			flushStroke()
			if stroke := e.strokeStates[instr.StrokeKey]; stroke != nil {
				s.SetStroke(stroke)
			}

		case OpDrawImage:
			if instr.Declutter != nil && pass.out != nil {
				pass.out.add(pass.zKey, declutterItem{
					executor: e, instr: instr,
					transform: transform, viewRotation: viewRotation,
				})
			} else {
				e.drawImage(s, instr, px, viewRotation, pass)
			}

		case OpDrawChars:
			if instr.Declutter != nil && pass.out != nil {
				pass.out.add(pass.zKey, declutterItem{
					executor: e, instr: instr,
					transform: transform, viewRotation: viewRotation,
				})
			} else {
				e.drawChars(s, instr, px, pass)
			}

		case OpCustom:
			if instr.Custom != nil {
				instr.Custom(px[instr.Begin:instr.End], instr.Geometry, instr.Feature)
			}

		default:
			// Unknown opcode, skip.
		}

		// Pattern fills are anchored to the surface, so they cannot
		// merge across features.
		if batching && currentFill != nil && currentFill.Paint != nil &&
			currentFill.Paint.NeedsAlignment() {
			flushFill()
		}
	}
	flushFill()
	flushStroke()
	return nil
}

// releaseDeclutter reports the declutter contributors inside a skipped
// feature block, so a shared group's other contributors can still be
// decided this frame.
func (e *Executor) releaseDeclutter(s vecmap.Surface, instrs []Instruction, from, to int, pass replayPass) {
	if pass.tree == nil && pass.out == nil {
		return
	}
	for j := from; j < to && j < len(instrs); j++ {
		d := instrs[j].Declutter
		if d == nil {
			continue
		}
		if pass.out != nil {
			pass.out.add(pass.zKey, declutterItem{release: d})
		} else {
			d.settle(pass.frame, s, pass.tree)
		}
	}
}

// resolveLabel rasterizes the label on first use and records its size
// in the shared placeholder cell, so every executor replaying this
// bundle sees the resolution.
func (e *Executor) resolveLabel(label *LabelRef) {
	if label.Resolved {
		return
	}
	style := e.textStates[label.TextKey]
	if style == nil {
		return
	}
	rendered := e.labels.Get(label.Text, style, e.fillStates[label.FillKey], e.strokeStates[label.StrokeKey], e.pixelRatio)
	label.Image = rendered.Image
	label.Width = rendered.Width
	label.Height = rendered.Height
	label.Resolved = true
}

// drawImage blits a point symbol or a point-placed label for each
// anchor coordinate of the instruction.
func (e *Executor) drawImage(s vecmap.Surface, instr *Instruction, px []float64, viewRotation float64, pass replayPass) {
	bail := func() {
		if instr.Declutter != nil && pass.tree != nil {
			instr.Declutter.settle(pass.frame, s, pass.tree)
		}
	}

	img := instr.Image
	width, height := instr.Width, instr.Height
	anchorX, anchorY := instr.AnchorX, instr.AnchorY

	if instr.Label != nil {
		e.resolveLabel(instr.Label)
		if !instr.Label.Resolved {
			bail()
			return
		}
		img = instr.Label.Image
		width = instr.Label.Width
		height = instr.Label.Height
		if style := e.textStates[instr.TextKey]; style != nil {
			anchorX = width*alignFactor(style.Align) - style.OffsetX
			anchorY = height*baselineFactor(style.Baseline) - style.OffsetY
		}
	}
	if img == nil {
		bail()
		return
	}

	scale := instr.Scale
	if scale == 0 {
		scale = 1
	}
	scale *= e.pixelRatio
	rotation := instr.Rotation
	if instr.RotateWithView {
		rotation += viewRotation
	}
	opacity := instr.Opacity
	if opacity == 0 {
		opacity = 1
	}

	for d := instr.Begin; d+1 < instr.End; d += 2 {
		opts := vecmap.DrawImageOptions{
			SrcX: instr.OriginX, SrcY: instr.OriginY,
			SrcW: width, SrcH: height,
			DstX:        px[d] - anchorX*scale,
			DstY:        px[d+1] - anchorY*scale,
			DstW:        width * scale,
			DstH:        height * scale,
			Rotation:    rotation,
			Opacity:     opacity,
			SnapToPixel: instr.SnapToPixel,
		}
		if instr.Declutter != nil && pass.tree != nil {
			box := vecmap.Extent{
				MinX: opts.DstX - instr.Padding,
				MinY: opts.DstY - instr.Padding,
				MaxX: opts.DstX + opts.DstW + instr.Padding,
				MaxY: opts.DstY + opts.DstH + instr.Padding,
			}
			instr.Declutter.deferDraw(pass.frame, img, opts, box)
		} else {
			s.DrawImage(img, opts)
		}
	}
	if instr.Declutter != nil && pass.tree != nil {
		instr.Declutter.settle(pass.frame, s, pass.tree)
	}
}

// drawChars lays the instruction's text character by character along
// its path. Placement is abandoned entirely when the path is shorter
// than the text (unless overflow is allowed) or when adjacent
// characters would diverge by more than the style's max angle.
func (e *Executor) drawChars(s vecmap.Surface, instr *Instruction, px []float64, pass replayPass) {
	// An abandoned placement still reports in, so shared-group
	// contributors are not left undecided.
	bail := func() {
		if instr.Declutter != nil && pass.tree != nil {
			instr.Declutter.settle(pass.frame, s, pass.tree)
		}
	}

	style := e.textStates[instr.TextKey]
	if style == nil || instr.Text == "" {
		bail()
		return
	}
	fill := e.fillStates[instr.FillKey]
	stroke := e.strokeStates[instr.StrokeKey]

	path := px[instr.Begin:instr.End]
	if len(path) < 4 {
		bail()
		return
	}
	// Lay out left to right: reverse the path when it runs leftwards
	// so glyphs stay upright.
	if path[0] > path[len(path)-2] {
		reversed := make([]float64, len(path))
		for i := 0; i < len(path); i += 2 {
			j := len(path) - 2 - i
			reversed[i], reversed[i+1] = path[j], path[j+1]
		}
		path = reversed
	}
	length := pathLength(path)

	scale := style.Scale
	if scale == 0 {
		scale = 1
	}
	scale *= e.pixelRatio

	runes := []rune(instr.Text)
	widths := make([]float64, len(runes))
	textWidth := 0.0
	for i, r := range runes {
		label := e.labels.Get(string(r), style, fill, stroke, e.pixelRatio)
		widths[i] = label.Width * scale
		textWidth += widths[i]
	}
	if textWidth > length && !instr.Overflow {
		bail()
		return
	}
	// Slack along the path is distributed by the text alignment: none
	// before start-aligned text, all of it before end-aligned text,
	// half either side otherwise.
	start := (length - textWidth) * alignFactor(style.Align)
	if start < 0 {
		start = 0
	}

	maxAngle := instr.MaxAngle
	if maxAngle == 0 {
		maxAngle = defaultMaxAngle
	}
	angles := make([]float64, len(runes))
	walked := start
	for i := range runes {
		_, _, angles[i] = pointAlong(path, walked+widths[i]/2)
		if i > 0 {
			delta := math.Abs(angleDelta(angles[i], angles[i-1]))
			if delta > maxAngle {
				bail()
				return
			}
		}
		walked += widths[i]
	}

	walked = start
	for i, r := range runes {
		label := e.labels.Get(string(r), style, fill, stroke, e.pixelRatio)
		x, y, angle := pointAlong(path, walked+widths[i]/2)
		w := label.Width * scale
		h := label.Height * scale
		opts := vecmap.DrawImageOptions{
			SrcW: label.Width, SrcH: label.Height,
			DstX:     x - w/2,
			DstY:     y - h*baselineFactor(style.Baseline),
			DstW:     w,
			DstH:     h,
			Rotation: angle,
			Opacity:  1,
		}
		if instr.Declutter != nil && pass.tree != nil {
			box := vecmap.Extent{
				MinX: opts.DstX - instr.Padding,
				MinY: opts.DstY - instr.Padding,
				MaxX: opts.DstX + w + instr.Padding,
				MaxY: opts.DstY + h + instr.Padding,
			}
			instr.Declutter.deferDraw(pass.frame, label.Image, opts, box)
		} else {
			s.DrawImage(label.Image, opts)
		}
		walked += widths[i]
	}
	if instr.Declutter != nil && pass.tree != nil {
		instr.Declutter.settle(pass.frame, s, pass.tree)
	}
}

// pathLength sums the segment lengths of a flat xy path.
func pathLength(path []float64) float64 {
	total := 0.0
	for i := 2; i < len(path); i += 2 {
		total += math.Hypot(path[i]-path[i-2], path[i+1]-path[i-1])
	}
	return total
}

// pointAlong interpolates the point at arc distance m from the path
// start and returns it with the local segment angle. Distances past
// either end clamp to the nearest endpoint.
func pointAlong(path []float64, m float64) (x, y, angle float64) {
	if m <= 0 {
		dx := path[2] - path[0]
		dy := path[3] - path[1]
		return path[0], path[1], math.Atan2(dy, dx)
	}
	walked := 0.0
	for i := 2; i < len(path); i += 2 {
		dx := path[i] - path[i-2]
		dy := path[i+1] - path[i-1]
		seg := math.Hypot(dx, dy)
		if walked+seg >= m && seg > 0 {
			t := (m - walked) / seg
			return path[i-2] + dx*t, path[i-1] + dy*t, math.Atan2(dy, dx)
		}
		walked += seg
	}
	n := len(path)
	dx := path[n-2] - path[n-4]
	dy := path[n-1] - path[n-3]
	return path[n-2], path[n-1], math.Atan2(dy, dx)
}

// angleDelta normalizes the difference of two angles into [-pi, pi].
func angleDelta(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func alignFactor(a vecmap.TextAlign) float64 {
	switch a {
	case vecmap.AlignLeft, vecmap.AlignStart:
		return 0
	case vecmap.AlignRight, vecmap.AlignEnd:
		return 1
	default:
		return 0.5
	}
}

func baselineFactor(b vecmap.TextBaseline) float64 {
	switch b {
	case vecmap.BaselineTop:
		return 0
	case vecmap.BaselineBottom:
		return 1
	case vecmap.BaselineAlphabetic:
		return 0.8
	default:
		return 0.5
	}
}
