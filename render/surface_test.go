// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/vecmap/vecmap"
)

// fakeSurface records draw calls for assertions.
type fakeSurface struct {
	ops []string

	beginPaths int
	fills      int
	strokes    int
	images     int
	clips      int

	fillPaints []vecmap.Paint
	strokeSets []*vecmap.StrokeStyle
	imageOpts  []vecmap.DrawImageOptions

	drawnSinceReset bool
}

func (s *fakeSurface) record(op string) { s.ops = append(s.ops, op) }

func (s *fakeSurface) Save()    { s.record("save") }
func (s *fakeSurface) Restore() { s.record("restore") }

func (s *fakeSurface) BeginPath() {
	s.record("beginPath")
	s.beginPaths++
}
func (s *fakeSurface) MoveTo(x, y float64) { s.record("moveTo") }
func (s *fakeSurface) LineTo(x, y float64) { s.record("lineTo") }
func (s *fakeSurface) ClosePath()          { s.record("closePath") }
func (s *fakeSurface) Arc(cx, cy, radius, startAngle, endAngle float64) {
	s.record("arc")
}
func (s *fakeSurface) Clip() {
	s.record("clip")
	s.clips++
}

func (s *fakeSurface) SetFillPaint(p vecmap.Paint) {
	s.record("setFillPaint")
	s.fillPaints = append(s.fillPaints, p)
}
func (s *fakeSurface) SetStroke(style *vecmap.StrokeStyle) {
	s.record("setStroke")
	s.strokeSets = append(s.strokeSets, style)
}
func (s *fakeSurface) Fill() {
	s.record("fill")
	s.fills++
	s.drawnSinceReset = true
}
func (s *fakeSurface) Stroke() {
	s.record("stroke")
	s.strokes++
	s.drawnSinceReset = true
}
func (s *fakeSurface) DrawImage(img image.Image, opts vecmap.DrawImageOptions) {
	s.record("drawImage")
	s.images++
	s.imageOpts = append(s.imageOpts, opts)
	s.drawnSinceReset = true
}
func (s *fakeSurface) MeasureText(font, text string) float64 {
	return float64(7 * len(text))
}

var _ vecmap.Surface = (*fakeSurface)(nil)

// fakeHitSurface reports full alpha anywhere once anything was drawn
// since the last Reset.
type fakeHitSurface struct {
	fakeSurface
	resets int
}

func (s *fakeHitSurface) Alpha(x, y int) uint8 {
	if s.drawnSinceReset {
		return 255
	}
	return 0
}

func (s *fakeHitSurface) Reset() {
	s.drawnSinceReset = false
	s.resets++
}

var _ vecmap.HitSurface = (*fakeHitSurface)(nil)

// Test geometry helpers.

func lineGeom(coords ...float64) vecmap.Geometry {
	return vecmap.NewFlatGeometry(vecmap.KindLineString, coords, 2, nil)
}

func polyGeom(coords ...float64) vecmap.Geometry {
	return vecmap.NewFlatGeometry(vecmap.KindPolygon, coords, 2, nil)
}

func pointGeom(coords ...float64) vecmap.Geometry {
	return vecmap.NewFlatGeometry(vecmap.KindImage, coords, 2, nil)
}

func feat(id string, g vecmap.Geometry) vecmap.Feature {
	return &vecmap.BasicFeature{FeatureID: id, Geom: g}
}

func solidFill(r, g, b float64) *vecmap.FillStyle {
	return &vecmap.FillStyle{Paint: vecmap.RGB(r, g, b)}
}

func testImage(w, h int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func countOps(instrs []Instruction, op Op) int {
	n := 0
	for _, in := range instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}
