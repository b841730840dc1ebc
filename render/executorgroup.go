// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sort"
	"strconv"

	"github.com/vecmap/vecmap"
	"github.com/vecmap/vecmap/cache"
)

// HitSurfaceFactory produces the small offscreen surface hit testing
// samples alpha from.
type HitSurfaceFactory func(width, height int) vecmap.HitSurface

// ExecutorGroupOptions configures an ExecutorGroup.
type ExecutorGroupOptions struct {
	// MaxExtent clips replay to the world extent the bundles were
	// built for.
	MaxExtent vecmap.Extent

	// PixelRatio is the device pixel ratio replay targets.
	PixelRatio float64

	// Overlaps disables fill/stroke batching in all executors.
	Overlaps bool

	// BatchThreshold overrides DefaultBatchThreshold when positive.
	BatchThreshold int

	// Labels is the shared label rasterizer. A default cache is
	// created when nil.
	Labels *LabelCache

	// NewHitSurface supplies offscreen surfaces for hit testing.
	// Without it ForEachFeatureAtCoordinate reports no hits.
	NewHitSurface HitSurfaceFactory
}

// ExecutorGroup replays a BuilderGroup's bundle map: z-index buckets in
// ascending order with geometry kinds in draw order for rendering, and
// the reverse for hit testing so the topmost feature wins.
type ExecutorGroup struct {
	maxExtent     vecmap.Extent
	pixelRatio    float64
	newHitSurface HitSurfaceFactory

	executors map[string]map[vecmap.Kind]*Executor
	zKeys     []string

	masks *hitMaskCache
}

// NewExecutorGroup builds executors for every bundle in the map.
func NewExecutorGroup(bundles map[string]map[vecmap.Kind]*Serialized, opts ExecutorGroupOptions) *ExecutorGroup {
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = 1
	}
	if opts.Labels == nil {
		opts.Labels = NewLabelCache(nil, cache.DefaultCapacity)
	}
	execOpts := ExecutorOptions{
		PixelRatio:     opts.PixelRatio,
		Overlaps:       opts.Overlaps,
		BatchThreshold: opts.BatchThreshold,
		Labels:         opts.Labels,
	}
	g := &ExecutorGroup{
		maxExtent:     opts.MaxExtent,
		pixelRatio:    opts.PixelRatio,
		newHitSurface: opts.NewHitSurface,
		executors:     make(map[string]map[vecmap.Kind]*Executor),
		masks:         newHitMaskCache(),
	}
	for key, byKind := range bundles {
		g.executors[key] = make(map[vecmap.Kind]*Executor)
		for kind, serialized := range byKind {
			g.executors[key][kind] = NewExecutor(serialized, execOpts)
		}
		g.zKeys = append(g.zKeys, key)
	}
	sort.Slice(g.zKeys, func(i, j int) bool {
		zi, _ := strconv.ParseFloat(g.zKeys[i], 64)
		zj, _ := strconv.ParseFloat(g.zKeys[j], 64)
		return zi < zj
	})
	return g
}

// clip restricts drawing to the group's max extent in pixel space.
func (g *ExecutorGroup) clip(s vecmap.Surface, transform vecmap.Transform) {
	e := g.maxExtent
	s.BeginPath()
	x, y := transform.Apply(e.MinX, e.MinY)
	s.MoveTo(x, y)
	x, y = transform.Apply(e.MaxX, e.MinY)
	s.LineTo(x, y)
	x, y = transform.Apply(e.MaxX, e.MaxY)
	s.LineTo(x, y)
	x, y = transform.Apply(e.MinX, e.MaxY)
	s.LineTo(x, y)
	s.ClosePath()
	s.Clip()
}

// MaxExtent returns the world extent replay is clipped to.
func (g *ExecutorGroup) MaxExtent() vecmap.Extent {
	return g.maxExtent
}

// IsEmpty returns true if the group holds no executors.
func (g *ExecutorGroup) IsEmpty() bool {
	return len(g.zKeys) == 0
}

// Execute replays every bundle onto the surface: z-index buckets
// ascending, geometry kinds in draw order within each bucket. A non-nil
// declutterTree activates collision handling for decluttered draws.
// When declutterOut is given, decluttered image and text instructions
// are collected into it instead of drawn, for a ReplayDeclutter pass
// after all geometry; skip lists feature IDs excluded from drawing;
// kinds, when given, restricts replay to those geometry kinds.
func (g *ExecutorGroup) Execute(s vecmap.Surface, transform vecmap.Transform, viewRotation float64, declutterTree SpatialIndex, skip map[string]bool, declutterOut *DeclutterReplays, kinds ...vecmap.Kind) {
	order := kinds
	if len(order) == 0 {
		order = vecmap.DrawOrder()
	}
	clipped := !g.maxExtent.IsEmpty() && g.maxExtent != vecmap.InfiniteExtent()
	if clipped {
		s.Save()
		g.clip(s, transform)
	}
	// One frame token for the whole pass: declutter groups shared
	// between buckets count all their contributors in the same frame.
	frame := nextDeclutterFrame()
	for _, key := range g.zKeys {
		byKind := g.executors[key]
		for _, kind := range order {
			if executor, ok := byKind[kind]; ok {
				executor.execute(s, transform, viewRotation, executor.instructions, replayPass{
					tree:  declutterTree,
					skip:  skip,
					out:   declutterOut,
					zKey:  key,
					frame: frame,
				})
			}
		}
	}
	if clipped {
		s.Restore()
	}
}

// ForEachFeatureAtCoordinate hit-tests the pixel at (x, y) with the
// given tolerance radius in pixels. Features are reported topmost
// first: z-index buckets descending, geometry kinds in reverse draw
// order, and within a bundle the last-drawn feature first. Features in
// skip are never tested. The callback's true return stops the search
// and the feature is returned.
func (g *ExecutorGroup) ForEachFeatureAtCoordinate(x, y float64, transform vecmap.Transform, viewRotation float64, tolerance int, skip map[string]bool, callback func(vecmap.Feature) bool) vecmap.Feature {
	if g.newHitSurface == nil {
		return nil
	}
	radius := int(float64(tolerance)*g.pixelRatio + 0.5)
	size := radius*2 + 1
	surface := g.newHitSurface(size, size)
	mask := g.masks.mask(radius)

	// Shift the view transform so the probed pixel lands at the
	// center of the sample square.
	hitTransform := vecmap.Translate(float64(radius)-x, float64(radius)-y).Multiply(transform)

	// World-space extent of the sample square, for block culling.
	inverse := transform.Invert()
	hitExtent := vecmap.EmptyExtent()
	for _, corner := range [4][2]float64{
		{x - float64(radius), y - float64(radius)},
		{x + float64(radius), y - float64(radius)},
		{x + float64(radius), y + float64(radius)},
		{x - float64(radius), y + float64(radius)},
	} {
		wx, wy := inverse.Apply(corner[0], corner[1])
		hitExtent = hitExtent.Extend(wx, wy)
	}

	probe := func(feature vecmap.Feature) bool {
		hit := false
		for row := 0; row < size && !hit; row++ {
			for col := 0; col < size; col++ {
				if mask[row*size+col] && surface.Alpha(col, row) > 0 {
					hit = true
					break
				}
			}
		}
		surface.Reset()
		if !hit {
			return false
		}
		return callback(feature)
	}

	reverseOrder := vecmap.DrawOrder()
	for i, j := 0, len(reverseOrder)-1; i < j; i, j = i+1, j-1 {
		reverseOrder[i], reverseOrder[j] = reverseOrder[j], reverseOrder[i]
	}
	for i := len(g.zKeys) - 1; i >= 0; i-- {
		byKind := g.executors[g.zKeys[i]]
		for _, kind := range reverseOrder {
			executor, ok := byKind[kind]
			if !ok {
				continue
			}
			if feature := executor.ExecuteHit(surface, hitTransform, viewRotation, &hitExtent, skip, probe); feature != nil {
				return feature
			}
		}
	}
	return nil
}
