package vecmap

// FrameState is the read-only view state for one rendered frame. It is
// consumed to derive the world-to-pixel transform; vecmap never mutates
// it.
type FrameState struct {
	// Width, Height are the viewport size in CSS pixels.
	Width, Height int

	// PixelRatio is the device pixel ratio (surface pixels per CSS
	// pixel).
	PixelRatio float64

	// Resolution is the view resolution in map units per CSS pixel.
	Resolution float64

	// Rotation is the view rotation in radians.
	Rotation float64

	// CenterX, CenterY are the view center in map units.
	CenterX, CenterY float64
}

// Transform returns the transform mapping map coordinates to surface
// pixels for this frame: the view center maps to the viewport center,
// one map unit spans PixelRatio/Resolution pixels, and the Y axis flips
// so north is up.
func (f FrameState) Transform() Transform {
	scale := f.PixelRatio / f.Resolution
	return Compose(
		float64(f.Width)/2*f.PixelRatio,
		float64(f.Height)/2*f.PixelRatio,
		scale, -scale,
		-f.Rotation,
		-f.CenterX, -f.CenterY,
	)
}

// Extent returns the map-unit extent visible in this frame, ignoring
// rotation (the bounding extent of the rotated viewport).
func (f FrameState) Extent() Extent {
	inv := f.Transform().Invert()
	w := float64(f.Width) * f.PixelRatio
	h := float64(f.Height) * f.PixelRatio
	e := EmptyExtent()
	for _, corner := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := inv.Apply(corner[0], corner[1])
		e = e.Extend(x, y)
	}
	return e
}
