// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "testing"

func TestCircleMaskShape(t *testing.T) {
	const radius = 3
	m := circleMask(radius)
	size := radius*2 + 1
	if len(m) != size*size {
		t.Fatalf("mask length = %d, want %d", len(m), size*size)
	}
	at := func(dx, dy int) bool {
		return m[(radius+dy)*size+(radius+dx)]
	}
	if !at(0, 0) {
		t.Errorf("center not set")
	}
	for _, d := range [][2]int{{radius, 0}, {-radius, 0}, {0, radius}, {0, -radius}} {
		if !at(d[0], d[1]) {
			t.Errorf("axis extreme (%d,%d) not set", d[0], d[1])
		}
	}
	for _, d := range [][2]int{{radius, radius}, {-radius, radius}, {radius, -radius}, {-radius, -radius}} {
		if at(d[0], d[1]) {
			t.Errorf("corner (%d,%d) set, want outside the disc", d[0], d[1])
		}
	}
}

func TestCircleMaskSymmetry(t *testing.T) {
	const radius = 5
	m := circleMask(radius)
	size := radius*2 + 1
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			a := m[(radius+dy)*size+(radius+dx)]
			b := m[(radius-dy)*size+(radius-dx)]
			if a != b {
				t.Fatalf("mask asymmetric at (%d,%d)", dx, dy)
			}
		}
	}
}

func TestCircleMaskZeroRadius(t *testing.T) {
	m := circleMask(0)
	if len(m) != 1 || !m[0] {
		t.Errorf("zero-radius mask = %v, want single true cell", m)
	}
}

func TestHitMaskCacheReuse(t *testing.T) {
	c := newHitMaskCache()
	a := c.mask(4)
	b := c.mask(4)
	if &a[0] != &b[0] {
		t.Errorf("cache returned distinct masks for the same radius")
	}
}
