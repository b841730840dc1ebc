package vecmap

import "math"

// Extent is an axis-aligned bounding rectangle in map units.
// The zero value is not a valid extent; use InfiniteExtent or
// EmptyExtent as neutral starting points.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyExtent returns an extent that contains nothing.
// Extending it with any point yields that point's extent.
func EmptyExtent() Extent {
	return Extent{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// InfiniteExtent returns an extent that contains everything.
func InfiniteExtent() Extent {
	return Extent{
		MinX: math.Inf(-1), MinY: math.Inf(-1),
		MaxX: math.Inf(1), MaxY: math.Inf(1),
	}
}

// IsEmpty returns true if the extent contains no points.
func (e Extent) IsEmpty() bool {
	return e.MaxX < e.MinX || e.MaxY < e.MinY
}

// Width returns the horizontal size of the extent.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the vertical size of the extent.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Contains returns true if the point lies inside or on the edge of the
// extent.
func (e Extent) Contains(x, y float64) bool {
	return e.MinX <= x && x <= e.MaxX && e.MinY <= y && y <= e.MaxY
}

// Intersects returns true if the two extents share any point.
func (e Extent) Intersects(other Extent) bool {
	return e.MinX <= other.MaxX && e.MaxX >= other.MinX &&
		e.MinY <= other.MaxY && e.MaxY >= other.MinY
}

// Extend grows the extent to include the given point.
func (e Extent) Extend(x, y float64) Extent {
	if x < e.MinX {
		e.MinX = x
	}
	if x > e.MaxX {
		e.MaxX = x
	}
	if y < e.MinY {
		e.MinY = y
	}
	if y > e.MaxY {
		e.MaxY = y
	}
	return e
}

// Union returns the smallest extent containing both extents.
func (e Extent) Union(other Extent) Extent {
	return e.Extend(other.MinX, other.MinY).Extend(other.MaxX, other.MaxY)
}

// Buffer returns the extent grown by value on all sides.
func (e Extent) Buffer(value float64) Extent {
	return Extent{
		MinX: e.MinX - value, MinY: e.MinY - value,
		MaxX: e.MaxX + value, MaxY: e.MaxY + value,
	}
}

// Relationship describes how a coordinate relates to an extent.
// Values other than RelIntersecting are bit flags and combine, e.g. a
// point beyond the top-left corner is RelAbove|RelLeft.
type Relationship uint8

// Relationship flags.
const (
	// RelIntersecting means the coordinate is inside or on the extent.
	RelIntersecting Relationship = 0
	// RelAbove means the coordinate is above the extent (y < MinY).
	RelAbove Relationship = 1 << iota
	// RelRight means the coordinate is right of the extent.
	RelRight
	// RelBelow means the coordinate is below the extent (y > MaxY).
	RelBelow
	// RelLeft means the coordinate is left of the extent.
	RelLeft
)

// String returns a human-readable name for the relationship.
func (r Relationship) String() string {
	if r == RelIntersecting {
		return "Intersecting"
	}
	s := ""
	if r&RelAbove != 0 {
		s += "Above"
	}
	if r&RelBelow != 0 {
		s += "Below"
	}
	if r&RelLeft != 0 {
		s += "Left"
	}
	if r&RelRight != 0 {
		s += "Right"
	}
	return s
}

// Relationship classifies the position of a coordinate relative to the
// extent. This is a coarse outcode test, not exact clipping: a point is
// either intersecting or carries the flags of the sides it lies beyond.
func (e Extent) Relationship(x, y float64) Relationship {
	var r Relationship
	if y < e.MinY {
		r |= RelAbove
	} else if y > e.MaxY {
		r |= RelBelow
	}
	if x < e.MinX {
		r |= RelLeft
	} else if x > e.MaxX {
		r |= RelRight
	}
	return r
}

// ExtentFromFlat computes the bounding extent of a flat coordinate
// slice with the given stride.
func ExtentFromFlat(flat []float64, stride int) Extent {
	e := EmptyExtent()
	for i := 0; i+1 < len(flat); i += stride {
		e = e.Extend(flat[i], flat[i+1])
	}
	return e
}
