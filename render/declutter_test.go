// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/vecmap/vecmap"
)

func box(minX, minY, maxX, maxY float64) vecmap.Extent {
	return vecmap.Extent{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestSliceIndexCollides(t *testing.T) {
	idx := NewSliceIndex()
	idx.Insert(box(0, 0, 10, 10))

	tests := []struct {
		name string
		b    vecmap.Extent
		want bool
	}{
		{"overlapping", box(5, 5, 15, 15), true},
		{"disjoint", box(20, 20, 30, 30), false},
		{"contained", box(2, 2, 4, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Collides(tt.b); got != tt.want {
				t.Errorf("Collides(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}

	if got := len(idx.All()); got != 1 {
		t.Errorf("All() has %d boxes, want 1", got)
	}
	idx.Clear()
	if got := len(idx.All()); got != 0 {
		t.Errorf("All() after Clear has %d boxes, want 0", got)
	}
}

func TestGroupDefersUntilLastContributor(t *testing.T) {
	g := NewGroup()
	g.Add()
	g.Add()
	s := &fakeSurface{}
	tree := NewSliceIndex()
	frame := nextDeclutterFrame()

	g.deferDraw(frame, testImage(4, 4), vecmap.DrawImageOptions{}, box(0, 0, 4, 4))
	g.settle(frame, s, tree)
	if s.images != 0 {
		t.Errorf("group drew before all contributors settled")
	}

	g.deferDraw(frame, testImage(4, 4), vecmap.DrawImageOptions{}, box(10, 0, 14, 4))
	g.settle(frame, s, tree)
	if s.images != 2 {
		t.Errorf("drew %d images, want 2", s.images)
	}
	if got := len(tree.All()); got != 1 {
		t.Fatalf("tree has %d boxes, want 1", got)
	}
	if tree.All()[0] != box(0, 0, 14, 4) {
		t.Errorf("inserted box = %+v, want the union %+v", tree.All()[0], box(0, 0, 14, 4))
	}
}

func TestGroupCollisionDropsDraws(t *testing.T) {
	tree := NewSliceIndex()
	tree.Insert(box(0, 0, 10, 10))

	g := NewGroup()
	g.Add()
	s := &fakeSurface{}
	frame := nextDeclutterFrame()
	g.deferDraw(frame, testImage(4, 4), vecmap.DrawImageOptions{}, box(5, 5, 9, 9))
	g.settle(frame, s, tree)

	if s.images != 0 {
		t.Errorf("colliding group drew %d images, want 0", s.images)
	}
	if got := len(tree.All()); got != 1 {
		t.Errorf("colliding group inserted into the tree")
	}
}

func TestGroupSettlesOncePerFrame(t *testing.T) {
	g := NewGroup()
	g.Add()
	s := &fakeSurface{}
	frame := nextDeclutterFrame()
	g.deferDraw(frame, testImage(4, 4), vecmap.DrawImageOptions{}, box(0, 0, 4, 4))
	g.settle(frame, s, nil)
	g.settle(frame, s, nil)
	if s.images != 1 {
		t.Errorf("drew %d images across repeated settles, want 1", s.images)
	}
}

func TestGroupRearmsEachFrame(t *testing.T) {
	g := NewGroup()
	g.Add()
	s := &fakeSurface{}
	tree := NewSliceIndex()

	for frameNo := 1; frameNo <= 3; frameNo++ {
		tree.Clear()
		frame := nextDeclutterFrame()
		g.deferDraw(frame, testImage(4, 4), vecmap.DrawImageOptions{}, box(0, 0, 4, 4))
		g.settle(frame, s, tree)
		if s.images != frameNo {
			t.Fatalf("frame %d: drew %d images total, want %d", frameNo, s.images, frameNo)
		}
		if got := len(tree.All()); got != 1 {
			t.Fatalf("frame %d: tree has %d boxes, want 1", frameNo, got)
		}
	}
}
