package vecmap

import "image"

// DrawImageOptions carries the parameters for blitting a label or
// symbol image.
type DrawImageOptions struct {
	// SrcX, SrcY, SrcW, SrcH select the source rectangle in image pixels.
	SrcX, SrcY, SrcW, SrcH float64

	// DstX, DstY position the image origin in surface pixels.
	DstX, DstY float64

	// DstW, DstH are the destination size in surface pixels.
	DstW, DstH float64

	// Rotation rotates the image around its destination origin, in
	// radians.
	Rotation float64

	// Opacity multiplies the image alpha, in [0, 1].
	Opacity float64

	// SnapToPixel rounds the destination origin to whole pixels.
	SnapToPixel bool
}

// Surface is the imperative 2D drawing API vecmap replays instructions
// against. It is a consumed capability: vecmap never creates surfaces,
// it only draws on the ones it is handed. The contract intentionally
// mirrors a canvas-like API: a current path, settable fill and stroke
// styles, clipping, image blits and text measurement.
//
// Implementations are expected to be cheap to call; the replay engine
// batches fill and stroke operations precisely because per-call overhead
// dominates on such APIs.
type Surface interface {
	// Save pushes the current drawing state (styles, clip, transform).
	Save()
	// Restore pops the drawing state saved by the matching Save.
	Restore()

	// BeginPath discards the current path and starts a new one.
	BeginPath()
	// MoveTo starts a new subpath at the given point.
	MoveTo(x, y float64)
	// LineTo adds a straight segment to the current subpath.
	LineTo(x, y float64)
	// ClosePath closes the current subpath.
	ClosePath()
	// Arc adds a circular arc centered at (cx, cy).
	Arc(cx, cy, radius, startAngle, endAngle float64)

	// Clip intersects the clip region with the current path.
	Clip()

	// SetFillPaint sets the paint used by Fill.
	SetFillPaint(p Paint)
	// SetStroke sets the full stroke state used by Stroke.
	SetStroke(s *StrokeStyle)

	// Fill fills the current path with the current fill paint.
	Fill()
	// Stroke outlines the current path with the current stroke state.
	Stroke()

	// DrawImage blits an image region onto the surface.
	DrawImage(img image.Image, opts DrawImageOptions)

	// MeasureText returns the advance width of text in the given font,
	// in surface pixels. Used only as a fallback when no label image
	// has been rasterized yet.
	MeasureText(font, text string) float64
}

// HitSurface is a Surface whose pixels can be read back, used for
// hit-detection replay against a small offscreen buffer.
type HitSurface interface {
	Surface

	// Alpha returns the alpha channel value at the given pixel.
	Alpha(x, y int) uint8

	// Reset clears the surface to fully transparent.
	Reset()
}
