// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/vecmap/vecmap"
)

func TestLabelCacheRasterizes(t *testing.T) {
	c := NewLabelCache(nil, 16)
	style := &vecmap.TextStyle{Font: "13px sans", Text: "Oslo"}
	fill := solidFill(0, 0, 0)

	l := c.Get("Oslo", style, fill, nil, 1)
	if l == nil || l.Image == nil {
		t.Fatal("Get returned no label")
	}
	if l.Width <= 0 || l.Height <= 0 {
		t.Errorf("label size = %gx%g, want non-zero", l.Width, l.Height)
	}
}

func TestLabelCacheHit(t *testing.T) {
	c := NewLabelCache(nil, 16)
	style := &vecmap.TextStyle{Font: "13px sans", Text: "A"}
	fill := solidFill(1, 0, 0)

	first := c.Get("A", style, fill, nil, 1)
	second := c.Get("A", style, fill, nil, 1)
	if first != second {
		t.Errorf("repeated Get returned distinct labels")
	}
	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1 and 1", stats.Hits, stats.Misses)
	}
}

func TestLabelCacheKeyedByPixelRatio(t *testing.T) {
	c := NewLabelCache(nil, 16)
	style := &vecmap.TextStyle{Font: "13px sans", Text: "A"}
	fill := solidFill(0, 0, 0)

	low := c.Get("A", style, fill, nil, 1)
	high := c.Get("A", style, fill, nil, 2)
	if low == high {
		t.Errorf("labels for different pixel ratios share a cache entry")
	}
}

func TestLabelCacheStrokeGrowsLabel(t *testing.T) {
	c := NewLabelCache(nil, 16)
	style := &vecmap.TextStyle{Font: "13px sans", Text: "A"}
	fill := solidFill(0, 0, 0)
	stroke := vecmap.DefaultStrokeStyle()
	stroke.Width = 2

	plain := c.Get("A", style, fill, nil, 1)
	haloed := c.Get("A", style, fill, stroke, 1)
	if haloed.Width <= plain.Width || haloed.Height <= plain.Height {
		t.Errorf("haloed label %gx%g not larger than plain %gx%g",
			haloed.Width, haloed.Height, plain.Width, plain.Height)
	}
}
