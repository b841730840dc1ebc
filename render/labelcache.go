// Copyright 2026 The vecmap Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vecmap/vecmap"
	"github.com/vecmap/vecmap/cache"
)

// FontProvider resolves a style's font spec to a concrete face. The
// returned face is reused across labels and must be safe for repeated
// drawing.
type FontProvider func(fontSpec string) font.Face

// Label is one rasterized point-placed label.
type Label struct {
	Image  image.Image
	Width  float64
	Height float64
}

// LabelCache rasterizes point-placed labels and memoizes them by text,
// style keys and pixel ratio, so repeated replays of the same label hit
// the cache instead of the rasterizer.
type LabelCache struct {
	faces  FontProvider
	labels *cache.LRU[string, *Label]
}

// NewLabelCache returns a label cache over the given font provider. A
// nil provider falls back to a fixed 7x13 face.
func NewLabelCache(provider FontProvider, capacity int) *LabelCache {
	if provider == nil {
		provider = func(string) font.Face { return basicfont.Face7x13 }
	}
	return &LabelCache{
		faces:  provider,
		labels: cache.New[string, *Label](capacity),
	}
}

// labelKey composes the cache key. Pixel ratio is part of the key so a
// zoomed display never reuses a label rasterized for another density.
func labelKey(text, textKey, fillKey, strokeKey string, pixelRatio float64) string {
	return strings.Join([]string{
		text, textKey, fillKey, strokeKey,
		strconv.FormatFloat(pixelRatio, 'g', -1, 64),
	}, "\x1f")
}

// Get returns the rasterized label, rendering and caching it on first
// use.
func (c *LabelCache) Get(text string, style *vecmap.TextStyle, fill *vecmap.FillStyle, stroke *vecmap.StrokeStyle, pixelRatio float64) *Label {
	var fillKey, strokeKey string
	if fill != nil {
		fillKey = fill.Key()
	}
	if stroke != nil {
		strokeKey = stroke.Key()
	}
	key := labelKey(text, style.Key(), fillKey, strokeKey, pixelRatio)
	return c.labels.GetOrCreate(key, func() *Label {
		return c.rasterize(text, style, fill, stroke)
	})
}

// Clear drops all cached labels.
func (c *LabelCache) Clear() {
	c.labels.Clear()
}

// Stats reports cache statistics.
func (c *LabelCache) Stats() cache.Stats {
	return c.labels.Stats()
}

// rasterize draws the label into a fresh image: the stroke halo first
// as offset copies of the text, then the fill on top.
func (c *LabelCache) rasterize(text string, style *vecmap.TextStyle, fill *vecmap.FillStyle, stroke *vecmap.StrokeStyle) *Label {
	face := c.faces(style.Font)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(face, text).Ceil()
	if width == 0 || height == 0 {
		return &Label{Image: image.NewNRGBA(image.Rect(0, 0, 1, 1)), Width: 0, Height: 0}
	}

	halo := 0
	if stroke != nil {
		halo = int(stroke.Width + 0.5)
		if halo < 1 {
			halo = 1
		}
	}
	img := image.NewNRGBA(image.Rect(0, 0, width+2*halo, height+2*halo))
	drawer := font.Drawer{
		Dst:  img,
		Face: face,
	}
	if stroke != nil {
		drawer.Src = image.NewUniform(paintColor(stroke.Paint))
		for dy := -halo; dy <= halo; dy++ {
			for dx := -halo; dx <= halo; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				drawer.Dot = fixed.P(halo+dx, halo+ascent+dy)
				drawer.DrawString(text)
			}
		}
	}
	if fill != nil {
		drawer.Src = image.NewUniform(paintColor(fill.Paint))
		drawer.Dot = fixed.P(halo, halo+ascent)
		drawer.DrawString(text)
	}
	bounds := img.Bounds()
	return &Label{
		Image:  img,
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}
}

// paintColor flattens a paint to a solid color. Patterns and gradients
// fall back to black; label glyphs are too small for them to read
// anyway.
func paintColor(p vecmap.Paint) color.Color {
	if solid, ok := p.(vecmap.SolidPaint); ok {
		return color.NRGBA{
			R: uint8(solid.R*255 + 0.5),
			G: uint8(solid.G*255 + 0.5),
			B: uint8(solid.B*255 + 0.5),
			A: uint8(solid.A*255 + 0.5),
		}
	}
	return color.NRGBA{A: 255}
}
