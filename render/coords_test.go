// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/vecmap/vecmap"
)

func appendSimplified(t *testing.T, flat []float64, closed bool, extent vecmap.Extent) []float64 {
	t.Helper()
	var b coordBuffer
	b.appendFlat(flat, 0, len(flat), 2, closed, false, extent)
	return b.coords
}

func TestAppendFlatKeepsInsidePoints(t *testing.T) {
	extent := vecmap.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	flat := []float64{1, 1, 2, 2, 3, 3, 4, 4}
	got := appendSimplified(t, flat, false, extent)
	if len(got) != len(flat) {
		t.Errorf("all-inside line simplified from %d to %d coords", len(flat), len(got))
	}
}

func TestAppendFlatTransitionsSurvive(t *testing.T) {
	extent := vecmap.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	// Alternating inside and outside: every transition needs a point
	// on both sides so no visible segment is dropped.
	flat := []float64{
		5, 5, // inside
		5, 20, // outside below
		6, 5, // inside
		6, 20, // outside below
		7, 5, // inside
	}
	got := appendSimplified(t, flat, false, extent)

	if len(got) > len(flat) {
		t.Errorf("output length %d exceeds input length %d", len(got), len(flat))
	}
	// Each of the five points sits on a transition boundary, so all
	// must survive.
	if len(got) != len(flat) {
		t.Errorf("transition points dropped: got %d coords, want %d", len(got), len(flat))
	}
}

func TestAppendFlatCollapsesOutsideRun(t *testing.T) {
	extent := vecmap.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	// A long run on the same outside of the extent collapses: interior
	// points of the run are invisible.
	flat := []float64{
		5, 5, // inside
		5, 20, 6, 21, 7, 22, 8, 23, // all below
		9, 5, // inside
	}
	got := appendSimplified(t, flat, false, extent)
	if len(got) >= len(flat) {
		t.Errorf("same-side outside run not simplified: got %d coords from %d", len(got), len(flat))
	}
	// The return into the extent keeps the entry anchor point.
	if got[len(got)-2] != 9 || got[len(got)-1] != 5 {
		t.Errorf("last point = (%v, %v), want (9, 5)", got[len(got)-2], got[len(got)-1])
	}
}

func TestAppendFlatClosedReappendsLast(t *testing.T) {
	extent := vecmap.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	// A ring whose tail is outside still ends with its actual last
	// point so the ring closes where the data closes.
	flat := []float64{
		1, 1,
		9, 1,
		9, 20,
		1, 20,
	}
	got := appendSimplified(t, flat, true, extent)
	if len(got) < 2 {
		t.Fatalf("simplified ring is empty")
	}
	if got[len(got)-2] != 1 || got[len(got)-1] != 20 {
		t.Errorf("ring last point = (%v, %v), want (1, 20)",
			got[len(got)-2], got[len(got)-1])
	}
}

func TestAppendFlatEmptyRangeAppendsNothing(t *testing.T) {
	extent := vecmap.Extent{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	flat := []float64{1, 1, 2, 2, 3, 3}
	var b coordBuffer

	// A sub-path whose offset equals its end holds no points, even
	// when the flat slice continues past it.
	if got := b.appendFlat(flat, 2, 2, 2, false, false, extent); got != 0 {
		t.Errorf("empty range appended %d coords, want 0", got)
	}

	// Skipping the first point of a single-point range empties it too.
	if got := b.appendFlat(flat, 0, 2, 2, false, true, extent); got != 0 {
		t.Errorf("skipFirst on a single point appended %d coords, want 0", got)
	}
}
