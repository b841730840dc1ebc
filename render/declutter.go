// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/vecmap/vecmap"
)

// SpatialIndex is the collision index used for decluttering. It is a
// consumed capability: callers may plug in an R-tree; SliceIndex below
// is a minimal implementation for composition roots without one.
type SpatialIndex interface {
	// Insert adds a box to the index.
	Insert(box vecmap.Extent)

	// Collides reports whether box intersects any indexed box.
	Collides(box vecmap.Extent) bool

	// All returns every indexed box.
	All() []vecmap.Extent

	// Clear empties the index for the next frame.
	Clear()
}

// SliceIndex is a linear-scan SpatialIndex. Adequate for moderate label
// counts; swap in a real R-tree for dense labeling.
type SliceIndex struct {
	boxes []vecmap.Extent
}

// NewSliceIndex creates an empty SliceIndex.
func NewSliceIndex() *SliceIndex { return &SliceIndex{} }

// Insert adds a box to the index.
func (s *SliceIndex) Insert(box vecmap.Extent) { s.boxes = append(s.boxes, box) }

// Collides reports whether box intersects any indexed box.
func (s *SliceIndex) Collides(box vecmap.Extent) bool {
	for _, b := range s.boxes {
		if b.Intersects(box) {
			return true
		}
	}
	return false
}

// All returns every indexed box.
func (s *SliceIndex) All() []vecmap.Extent { return s.boxes }

// Clear empties the index.
func (s *SliceIndex) Clear() { s.boxes = s.boxes[:0] }

// Ensure SliceIndex implements SpatialIndex.
var _ SpatialIndex = (*SliceIndex)(nil)

// deferredImage is one image blit postponed until its declutter group's
// collision test passes.
type deferredImage struct {
	img  image.Image
	opts vecmap.DrawImageOptions
}

// Group accumulates the bounding box and deferred draws of all image
// and text blits contributed by one original drawing call (a polygon
// split into several label placements shares one Group). When the last
// contributor reports in, the accumulated box is tested once against
// the spatial index; only a non-colliding group is actually drawn and
// inserted.
//
// The contributor count is fixed at build time and consumed once per
// replay frame: the first touch in a new frame re-arms the countdown
// and drops any stale deferred draws, so a bundle replays correctly on
// every frame.
type Group struct {
	// Box is the accumulated pixel-space bounding box.
	Box vecmap.Extent

	// total is the build-time contributor count; refs counts down the
	// contributors that have not reported in the current frame.
	total int
	refs  int
	frame uint64

	deferred []deferredImage
}

// declutterFrame issues the tokens that separate one replay frame's
// group state from the next.
var declutterFrame atomic.Uint64

func nextDeclutterFrame() uint64 { return declutterFrame.Add(1) }

// NewGroup creates a declutter group with no contributors.
func NewGroup() *Group {
	return &Group{Box: vecmap.EmptyExtent()}
}

// Add registers one more contributor. Called while building; the count
// persists across replays.
func (g *Group) Add() { g.total++ }

// rearm resets the per-frame state on the first touch in a new frame.
func (g *Group) rearm(frame uint64) {
	if g.frame == frame {
		return
	}
	g.frame = frame
	g.refs = g.total
	g.Box = vecmap.EmptyExtent()
	g.deferred = g.deferred[:0]
}

// deferDraw accumulates a blit and its pixel box into the group.
func (g *Group) deferDraw(frame uint64, img image.Image, opts vecmap.DrawImageOptions, box vecmap.Extent) {
	g.rearm(frame)
	g.Box = g.Box.Union(box)
	g.deferred = append(g.deferred, deferredImage{img: img, opts: opts})
}

// settle decrements the contributor count and, once it reaches zero,
// decides the group: if the accumulated box does not collide, the
// deferred draws replay onto the surface and the box is inserted. A
// group is decided at most once per frame.
func (g *Group) settle(frame uint64, s vecmap.Surface, tree SpatialIndex) {
	g.rearm(frame)
	if g.refs <= 0 {
		return
	}
	g.refs--
	if g.refs > 0 {
		return
	}
	if tree != nil {
		if g.Box.IsEmpty() || tree.Collides(g.Box) {
			g.deferred = g.deferred[:0]
			return
		}
		tree.Insert(g.Box)
	}
	for _, d := range g.deferred {
		s.DrawImage(d.img, d.opts)
	}
	g.deferred = g.deferred[:0]
}

// declutterItem is one deferred image or text instruction together with
// the frame state it was recorded under. A release item carries only
// the group of a skipped contributor, so co-contributors of a shared
// group can still be decided.
type declutterItem struct {
	executor     *Executor
	instr        *Instruction
	transform    vecmap.Transform
	viewRotation float64
	release      *Group
}

// DeclutterReplays collects the image and text instructions an Execute
// pass deferred, keyed by z-index bucket. ReplayDeclutter runs them
// after every bucket has drawn, so decluttered symbols and labels paint
// on top of all geometry while collision decisions still follow
// ascending z order.
type DeclutterReplays struct {
	items map[string][]declutterItem
}

// NewDeclutterReplays returns an empty deferral map. One instance may
// collect across several executor groups before a single replay.
func NewDeclutterReplays() *DeclutterReplays {
	return &DeclutterReplays{items: make(map[string][]declutterItem)}
}

func (r *DeclutterReplays) add(zKey string, item declutterItem) {
	r.items[zKey] = append(r.items[zKey], item)
}

// ReplayDeclutter executes the deferred instructions in ascending
// z-index order against the collision tree. Call once per frame, after
// every contributing Execute pass.
func ReplayDeclutter(s vecmap.Surface, replays *DeclutterReplays, tree SpatialIndex) {
	if replays == nil || len(replays.items) == 0 {
		return
	}
	keys := make([]string, 0, len(replays.items))
	for key := range replays.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		zi, _ := strconv.ParseFloat(keys[i], 64)
		zj, _ := strconv.ParseFloat(keys[j], 64)
		return zi < zj
	})
	frame := nextDeclutterFrame()
	for _, key := range keys {
		for _, item := range replays.items[key] {
			if item.release != nil {
				item.release.settle(frame, s, tree)
				continue
			}
			px := item.executor.transformed(item.transform)
			pass := replayPass{tree: tree, frame: frame}
			switch item.instr.Op {
			case OpDrawImage:
				item.executor.drawImage(s, item.instr, px, item.viewRotation, pass)
			case OpDrawChars:
				item.executor.drawChars(s, item.instr, px, pass)
			}
		}
	}
}
