// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements the vector rendering compiler: Builders
// compile features and styles into instruction streams, Executors
// replay those streams against a drawing surface, and the group types
// coordinate z-index layering, decluttering and hit detection.
//
// The split mirrors the two timescales of map rendering: compilation
// runs when data or styles change, replay runs every frame. The
// instruction bundle between them is immutable and free of live object
// references (feature and geometry handles excepted), so it can cross a
// serialization boundary.
package render

import (
	"image"
	"strings"

	"github.com/vecmap/vecmap"
)

// Op identifies a drawing instruction. The vocabulary is closed: an
// Executor encountering an unknown opcode skips it rather than failing,
// as a forward-compatibility fallback.
type Op uint8

// Instruction opcodes.
const (
	// OpBeginGeometry brackets the start of one feature's instructions
	// and carries the skip target for O(1) feature filtering.
	OpBeginGeometry Op = iota
	// OpBeginPath starts a new path on the surface.
	OpBeginPath
	// OpCircle adds a circle whose center and rim point occupy two
	// consecutive coordinate pairs.
	OpCircle
	// OpClosePath closes the current subpath.
	OpClosePath
	// OpCustom invokes a caller-supplied drawing callback.
	OpCustom
	// OpDrawImage blits a point-symbol or label image.
	OpDrawImage
	// OpDrawChars lays text along a path at replay time.
	OpDrawChars
	// OpEndGeometry closes a feature bracket; hit detection invokes the
	// feature callback here.
	OpEndGeometry
	// OpFill fills the current path.
	OpFill
	// OpMoveToLineTo appends a polyline from a coordinate range.
	OpMoveToLineTo
	// OpSetFillStyle switches the surface fill style by key.
	OpSetFillStyle
	// OpSetStrokeStyle switches the surface stroke style by key.
	OpSetStrokeStyle
	// OpStroke strokes the current path.
	OpStroke

	numOps
)

// opNames maps Op values to their string representation.
var opNames = [...]string{
	OpBeginGeometry:  "BeginGeometry",
	OpBeginPath:      "BeginPath",
	OpCircle:         "Circle",
	OpClosePath:      "ClosePath",
	OpCustom:         "Custom",
	OpDrawImage:      "DrawImage",
	OpDrawChars:      "DrawChars",
	OpEndGeometry:    "EndGeometry",
	OpFill:           "Fill",
	OpMoveToLineTo:   "MoveToLineTo",
	OpSetFillStyle:   "SetFillStyle",
	OpSetStrokeStyle: "SetStrokeStyle",
	OpStroke:         "Stroke",
}

// String returns the string representation of an Op.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// LabelRef is the placeholder cell for a point-placed label whose pixel
// size is unknown at compile time. The builder emits the unresolved
// cell; the first replay rasterizes the label, records its size and
// image here, and every later replay reuses the resolution.
type LabelRef struct {
	// Text, TextKey, FillKey, StrokeKey identify the label in the
	// label-image cache.
	Text      string
	TextKey   string
	FillKey   string
	StrokeKey string

	// Resolved is set by the first replay.
	Resolved bool

	// Image is the rasterized label, valid once Resolved.
	Image image.Image

	// Width, Height are the label size in surface pixels, valid once
	// Resolved.
	Width, Height float64
}

// CustomFunc is the callback invoked by OpCustom instructions. It
// receives the transformed pixel coordinates of the geometry's points.
type CustomFunc func(pixelCoords []float64, geometry vecmap.Geometry, feature vecmap.Feature)

// Instruction is one drawing operation. It is a fixed-shape record: the
// opcode selects which fields are meaningful, all others stay zero.
// Coordinate-consuming instructions reference the bundle's shared flat
// coordinate slice by [Begin, End) rather than owning copies.
type Instruction struct {
	Op Op

	// Begin, End index the shared coordinate slice.
	Begin, End int

	// SkipTo is the index of this feature's closing OpEndGeometry
	// (OpBeginGeometry only), enabling O(1) skips.
	SkipTo int

	// Feature and Geometry are live handles carried for hit callbacks
	// and custom drawing.
	Feature  vecmap.Feature
	Geometry vecmap.Geometry

	// FillKey, StrokeKey, TextKey reference the deduplicated style
	// state dictionaries.
	FillKey   string
	StrokeKey string
	TextKey   string

	// Image is the symbol bitmap for OpDrawImage point symbols.
	Image image.Image

	// Label is the lazily resolved label cell for text OpDrawImage.
	Label *LabelRef

	// Image placement parameters (OpDrawImage).
	AnchorX, AnchorY float64
	Width, Height    float64
	OriginX, OriginY float64
	Opacity          float64
	Rotation         float64
	RotateWithView   bool
	Scale            float64
	SnapToPixel      bool

	// Padding grows the declutter footprint on all sides, in pixels.
	Padding float64

	// Text layout parameters (OpDrawChars).
	Text     string
	Overflow bool
	MaxAngle float64

	// Declutter is the shared collision accumulator for this draw, nil
	// when decluttering is off.
	Declutter *Group

	// Custom is the callback for OpCustom.
	Custom CustomFunc
}

// Serialized is one Builder's finished output: the two instruction
// streams, the coordinate buffer they index, and the style state
// dictionaries they reference. It is the unit of transfer between
// build and replay contexts.
type Serialized struct {
	// Instructions is the render stream, in emission order with style
	// changes coalesced.
	Instructions []Instruction

	// HitInstructions is the hit-detection stream: per-feature blocks
	// in reverse draw order so the topmost feature is tested first,
	// instructions inside each block in forward order.
	HitInstructions []Instruction

	// Coordinates is the shared flat coordinate buffer, in map units.
	Coordinates []float64

	// FillStates, StrokeStates and TextStates are the deduplicated
	// style dictionaries keyed by composed style key.
	FillStates   map[string]*vecmap.FillStyle
	StrokeStates map[string]*vecmap.StrokeStyle
	TextStates   map[string]*vecmap.TextStyle
}

// IsEmpty returns true if the bundle contains no drawable instructions.
func (s *Serialized) IsEmpty() bool {
	return len(s.Instructions) == 0 && len(s.HitInstructions) == 0
}

// DumpOps renders an instruction stream as a compact opcode listing,
// for debugging and test failure output.
func DumpOps(instrs []Instruction) string {
	var sb strings.Builder
	for i, in := range instrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(in.Op.String())
	}
	return sb.String()
}
