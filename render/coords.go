// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/vecmap/vecmap"

// coordBuffer is the single growable flat coordinate sequence shared by
// all instructions of one Builder. Instructions reference it by
// [begin, end) ranges, which grow monotonically as instructions are
// appended.
type coordBuffer struct {
	coords []float64
}

// append2 appends one coordinate pair.
func (b *coordBuffer) append2(x, y float64) {
	b.coords = append(b.coords, x, y)
}

// len returns the current buffer length.
func (b *coordBuffer) len() int { return len(b.coords) }

// appendFlat walks flat[offset:end:stride] and appends it, simplifying
// runs that stay outside the buffered extent: consecutive points
// sharing the same outside relationship are dropped, but every
// transition between relationships keeps both endpoints so a segment
// crossing into view is never truncated. A closed ring whose final
// point was dropped gets it re-appended to preserve closure.
//
// This is a heuristic, not exact clipping: runs that round an extent
// corner can retain points exact clipping would cut. That imprecision
// is accepted; off-screen geometry only needs to stay topologically
// sound, not minimal.
//
// Returns the new buffer end.
func (b *coordBuffer) appendFlat(flat []float64, offset, end, stride int, closed, skipFirst bool, extent vecmap.Extent) int {
	begin := offset
	if skipFirst {
		begin += stride
	}
	if begin+stride > end {
		return b.len()
	}

	lastX, lastY := flat[begin], flat[begin+1]
	lastRel := extent.Relationship(lastX, lastY)
	b.append2(lastX, lastY)

	skipped := false
	for i := begin + stride; i < end; i += stride {
		x, y := flat[i], flat[i+1]
		rel := extent.Relationship(x, y)
		switch {
		case rel != lastRel:
			// Crossing between regions: the previous dropped point
			// anchors the visible transition.
			if skipped {
				b.append2(lastX, lastY)
			}
			b.append2(x, y)
			skipped = false
		case rel == vecmap.RelIntersecting:
			b.append2(x, y)
			skipped = false
		default:
			skipped = true
		}
		lastX, lastY = x, y
		lastRel = rel
	}

	if closed && skipped {
		b.append2(lastX, lastY)
	}
	return b.len()
}
