package vecmap

import (
	"math"
	"testing"
)

func TestFrameTransformCenters(t *testing.T) {
	frame := FrameState{
		Width: 800, Height: 600,
		PixelRatio: 2, Resolution: 10,
		CenterX: 1000, CenterY: -500,
	}
	x, y := frame.Transform().Apply(frame.CenterX, frame.CenterY)
	if !almostEqual(x, 800) || !almostEqual(y, 600) {
		t.Errorf("center maps to (%v, %v), want (800, 600)", x, y)
	}
}

func TestFrameTransformScale(t *testing.T) {
	frame := FrameState{
		Width: 100, Height: 100,
		PixelRatio: 1, Resolution: 5,
	}
	// One resolution unit right of center is one pixel right.
	x, y := frame.Transform().Apply(5, 0)
	if !almostEqual(x, 51) || !almostEqual(y, 50) {
		t.Errorf("(5, 0) maps to (%v, %v), want (51, 50)", x, y)
	}
	// Map y grows up, pixel y grows down.
	_, y = frame.Transform().Apply(0, 5)
	if !almostEqual(y, 49) {
		t.Errorf("(0, 5) maps to y=%v, want 49", y)
	}
}

func TestFrameExtentRoundTrip(t *testing.T) {
	frame := FrameState{
		Width: 256, Height: 256,
		PixelRatio: 1, Resolution: 2,
		CenterX: 100, CenterY: 200,
		Rotation: math.Pi / 6,
	}
	extent := frame.Extent()
	if extent.IsEmpty() {
		t.Fatalf("frame extent is empty")
	}
	if !extent.Contains(frame.CenterX, frame.CenterY) {
		t.Errorf("frame extent %+v does not contain the view center", extent)
	}
}
