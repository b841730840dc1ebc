package vecmap

import (
	"fmt"
	"image"
	"strings"
)

// --------------------------------------------------------------------------
// Paint
// --------------------------------------------------------------------------

// Paint is the source of color for a fill or stroke: a solid color, a
// repeating pattern or a gradient. Paints are compared by Key, which is
// also how instruction bundles reference deduplicated styles.
type Paint interface {
	// Key returns a stable string identity for the paint. Two paints
	// with equal keys draw identically.
	Key() string

	// NeedsAlignment reports whether the paint repeats from an origin
	// and must be re-anchored when the view rotates (patterns and
	// gradients; solid colors never need alignment).
	NeedsAlignment() bool
}

// SolidPaint is a plain RGBA color with components in [0, 1].
type SolidPaint struct {
	R, G, B, A float64
}

// RGB creates an opaque solid paint.
func RGB(r, g, b float64) SolidPaint {
	return SolidPaint{R: r, G: g, B: b, A: 1}
}

// Key returns the paint identity.
func (p SolidPaint) Key() string {
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", p.R, p.G, p.B, p.A)
}

// NeedsAlignment returns false: solid colors have no repeat origin.
func (p SolidPaint) NeedsAlignment() bool { return false }

// PatternPaint is a repeating image paint.
type PatternPaint struct {
	// Image is the pattern tile.
	Image image.Image
	// Name identifies the pattern for key composition. Two patterns
	// with the same name are assumed interchangeable.
	Name string
}

// Key returns the paint identity.
func (p PatternPaint) Key() string { return "pattern(" + p.Name + ")" }

// NeedsAlignment returns true: patterns repeat from an origin.
func (p PatternPaint) NeedsAlignment() bool { return true }

// GradientStop is one color stop of a gradient paint.
type GradientStop struct {
	Offset float64
	Color  SolidPaint
}

// GradientPaint is a linear gradient paint.
type GradientPaint struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

// Key returns the paint identity.
func (p GradientPaint) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gradient(%g,%g,%g,%g", p.X0, p.Y0, p.X1, p.Y1)
	for _, s := range p.Stops {
		fmt.Fprintf(&sb, ",%g:%s", s.Offset, s.Color.Key())
	}
	sb.WriteByte(')')
	return sb.String()
}

// NeedsAlignment returns true: gradients are anchored to an origin.
func (p GradientPaint) NeedsAlignment() bool { return true }

// --------------------------------------------------------------------------
// Line properties
// --------------------------------------------------------------------------

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// String returns the string representation of a LineCap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return "unknown"
	}
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// String returns the string representation of a LineJoin.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "miter"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Styles
// --------------------------------------------------------------------------

// FillStyle describes how interiors are painted. A nil *FillStyle on a
// draw call means "no fill": the builder contributes no fill
// instructions for that feature.
type FillStyle struct {
	Paint Paint
}

// Key returns the deduplication key for the fill style.
func (s *FillStyle) Key() string {
	if s == nil || s.Paint == nil {
		return ""
	}
	return s.Paint.Key()
}

// StrokeStyle describes how outlines are painted. A nil *StrokeStyle on
// a draw call means "no stroke".
type StrokeStyle struct {
	Paint      Paint
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle returns a StrokeStyle with standard settings: 1px
// solid black, butt caps, miter joins, miter limit 10.
func DefaultStrokeStyle() *StrokeStyle {
	return &StrokeStyle{
		Paint:      SolidPaint{A: 1},
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// Key returns the deduplication key for the stroke style. All fields
// that affect rasterization participate, so styles that draw
// differently never collide.
func (s *StrokeStyle) Key() string {
	if s == nil || s.Paint == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(s.Paint.Key())
	fmt.Fprintf(&sb, "|%g|%s|%s|%g|%v|%g",
		s.Width, s.Cap, s.Join, s.MiterLimit, s.Dash, s.DashOffset)
	return sb.String()
}

// TextAlign specifies horizontal text alignment.
type TextAlign uint8

const (
	// AlignCenter centers text on the anchor.
	AlignCenter TextAlign = iota
	// AlignLeft aligns the left edge to the anchor.
	AlignLeft
	// AlignRight aligns the right edge to the anchor.
	AlignRight
	// AlignStart aligns the path start (line placement only).
	AlignStart
	// AlignEnd aligns the path end (line placement only).
	AlignEnd
)

// String returns the string representation of a TextAlign.
func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	default:
		return "unknown"
	}
}

// TextBaseline specifies vertical text alignment.
type TextBaseline uint8

const (
	// BaselineMiddle centers text vertically on the anchor.
	BaselineMiddle TextBaseline = iota
	// BaselineTop aligns the top edge to the anchor.
	BaselineTop
	// BaselineBottom aligns the bottom edge to the anchor.
	BaselineBottom
	// BaselineAlphabetic aligns the alphabetic baseline to the anchor.
	BaselineAlphabetic
)

// String returns the string representation of a TextBaseline.
func (b TextBaseline) String() string {
	switch b {
	case BaselineMiddle:
		return "middle"
	case BaselineTop:
		return "top"
	case BaselineBottom:
		return "bottom"
	case BaselineAlphabetic:
		return "alphabetic"
	default:
		return "unknown"
	}
}

// TextPlacement selects how a label is placed on its geometry.
type TextPlacement uint8

const (
	// PlacementPoint anchors one label at a representative point.
	PlacementPoint TextPlacement = iota
	// PlacementLine repeats and fits the label along the path.
	PlacementLine
)

// TextStyle describes how text labels are drawn. A nil *TextStyle or an
// empty Text means "no label".
type TextStyle struct {
	Font      string
	Text      string
	Fill      *FillStyle
	Stroke    *StrokeStyle
	Scale     float64
	Rotation  float64
	Align     TextAlign
	Baseline  TextBaseline
	Placement TextPlacement
	OffsetX   float64
	OffsetY   float64

	// Overflow lets line-placed labels render even when longer than
	// the path; when false such labels are skipped.
	Overflow bool

	// MaxAngle is the cumulative turn angle (radians) above which a
	// line-placed label chunk is broken, keeping text off sharp bends.
	MaxAngle float64

	// Padding grows the declutter box of the label on all sides.
	Padding float64
}

// Key returns the deduplication key for the text layout state (font,
// scale, alignment). The label text and colors are keyed separately so
// the label-image cache can combine them.
func (s *TextStyle) Key() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s|%g|%s|%s|%g|%g", s.Font, s.Scale, s.Align, s.Baseline, s.OffsetX, s.OffsetY)
}
