// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"testing"

	"github.com/vecmap/vecmap"
)

func testFrame() vecmap.FrameState {
	return vecmap.FrameState{Width: 400, Height: 300, PixelRatio: 1, Resolution: 1}
}

func TestPointsRendererGeometry(t *testing.T) {
	r := NewPointsRenderer(NewHelper(newFakeContext(), HelperOptions{}), PointsRendererOptions{})
	r.AddPoint(10, 20, 8, 0.5)
	r.AddPoint(30, 40, 4, 1)

	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	if len(r.verts) != 2*4*pointsVertexFloats {
		t.Fatalf("got %d vertex floats, want %d", len(r.verts), 2*4*pointsVertexFloats)
	}
	// Every corner of the first quad carries the point's position, size
	// and opacity.
	for corner := 0; corner < 4; corner++ {
		v := r.verts[corner*pointsVertexFloats:]
		if v[0] != 10 || v[1] != 20 || v[4] != 8 || v[5] != 0.5 {
			t.Errorf("corner %d = %v, want position (10,20), size 8, opacity 0.5", corner, v[:6])
		}
	}
	// Second quad's indices start at vertex 4.
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(r.idx) != len(want) {
		t.Fatalf("got %d indices, want %d", len(r.idx), len(want))
	}
	for i := range want {
		if r.idx[i] != want[i] {
			t.Fatalf("indices = %v, want %v", r.idx, want)
		}
	}
}

func TestPointsRendererUploadsOnlyWhenDirty(t *testing.T) {
	ctx := newFakeContext()
	h := NewHelper(ctx, HelperOptions{})
	r := NewPointsRenderer(h, PointsRendererOptions{})
	r.AddPoint(1, 2, 4, 1)

	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	uploads := ctx.bufferDatas
	if uploads == 0 {
		t.Fatal("first draw uploaded nothing")
	}

	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if ctx.bufferDatas != uploads {
		t.Errorf("clean draw re-uploaded: %d uploads, want %d", ctx.bufferDatas, uploads)
	}

	r.AddPoint(3, 4, 4, 1)
	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if ctx.bufferDatas != uploads+2 {
		t.Errorf("dirty draw uploaded %d buffers, want 2 more", ctx.bufferDatas-uploads)
	}
	if len(ctx.drawnElements) != 3 || ctx.drawnElements[2] != 12 {
		t.Errorf("draw calls = %v, want the last with 12 indices", ctx.drawnElements)
	}
}

func TestPointsRendererEmptyDrawIsNoOp(t *testing.T) {
	ctx := newFakeContext()
	r := NewPointsRenderer(NewHelper(ctx, HelperOptions{}), PointsRendererOptions{})
	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(ctx.drawnElements) != 0 {
		t.Errorf("empty renderer issued %v draws", ctx.drawnElements)
	}
}

func TestPointsRendererLostContext(t *testing.T) {
	ctx := newFakeContext()
	ctx.lost = true
	r := NewPointsRenderer(NewHelper(ctx, HelperOptions{}), PointsRendererOptions{})
	r.AddPoint(1, 1, 4, 1)
	if err := r.Draw(testFrame()); err != nil {
		t.Errorf("Draw on a lost context = %v, want nil", err)
	}
	if len(ctx.drawnElements) != 0 {
		t.Errorf("lost context still drew: %v", ctx.drawnElements)
	}
}

func TestPointsRendererNarrowIndexTruncation(t *testing.T) {
	ctx := newFakeContext()
	ctx.wideIndices = false
	r := NewPointsRenderer(NewHelper(ctx, HelperOptions{}), PointsRendererOptions{})
	for i := 0; i < maxNarrowQuads+10; i++ {
		r.AddPoint(float64(i), 0, 2, 1)
	}
	if err := r.Draw(testFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := ctx.drawnElements[len(ctx.drawnElements)-1]; got != maxNarrowQuads*6 {
		t.Errorf("drew %d indices on a narrow context, want %d", got, maxNarrowQuads*6)
	}
	if r.warnedNarrow != true {
		t.Errorf("truncation not recorded")
	}
}

func TestPointsRendererClear(t *testing.T) {
	r := NewPointsRenderer(NewHelper(newFakeContext(), HelperOptions{}), PointsRendererOptions{})
	r.AddPoint(1, 1, 4, 1)
	r.Clear()
	if r.Len() != 0 || len(r.verts) != 0 || len(r.idx) != 0 {
		t.Errorf("Clear left %d points, %d floats, %d indices", r.Len(), len(r.verts), len(r.idx))
	}
}
