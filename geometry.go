package vecmap

// Kind identifies the drawing kind of a geometry. Builders and Executors
// are bucketed by (z-index, Kind); within one z-index bucket kinds draw
// in the fixed order returned by DrawOrder.
type Kind uint8

// Geometry kinds.
const (
	// KindPolygon covers polygons and multi-polygons.
	KindPolygon Kind = iota
	// KindCircle covers circle geometries.
	KindCircle
	// KindLineString covers line strings and multi-line strings.
	KindLineString
	// KindImage covers point symbols drawn as images.
	KindImage
	// KindText covers text labels.
	KindText
	// KindCustom covers caller-supplied drawing callbacks.
	KindCustom

	numKinds
)

// kindNames maps Kind values to their string representation.
var kindNames = [...]string{
	KindPolygon:    "Polygon",
	KindCircle:     "Circle",
	KindLineString: "LineString",
	KindImage:      "Image",
	KindText:       "Text",
	KindCustom:     "Custom",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// DrawOrder returns the fixed kind priority used within a z-index
// bucket: polygons under circles under lines under images under text,
// custom drawing last.
func DrawOrder() []Kind {
	return []Kind{KindPolygon, KindCircle, KindLineString, KindImage, KindText, KindCustom}
}

// Geometry is the read-only contract vecmap requires from geometry
// objects. Coordinates are exposed as a single flat slice
// (x0,y0,...,x1,y1,...) with a stride of at least 2; multi-part
// geometries list the end offset of each part in Ends.
type Geometry interface {
	// Kind returns the drawing kind of the geometry.
	Kind() Kind

	// FlatCoordinates returns the flat coordinate slice. Callers must
	// not modify it.
	FlatCoordinates() []float64

	// Stride returns the number of values per coordinate (>= 2).
	Stride() int

	// Ends returns the end offsets of each sub-path into
	// FlatCoordinates. Simple geometries return a single-element slice.
	Ends() []int

	// Extent returns the bounding extent of the geometry.
	Extent() Extent
}

// FlatGeometry is a plain value implementation of Geometry, used by the
// GeoJSON adapter and convenient for tests.
type FlatGeometry struct {
	GeomKind Kind
	Flat     []float64
	Dims     int
	EndIdx   []int
}

// NewFlatGeometry builds a FlatGeometry. If ends is nil a single part
// spanning the whole coordinate slice is assumed.
func NewFlatGeometry(kind Kind, flat []float64, stride int, ends []int) *FlatGeometry {
	if stride < 2 {
		stride = 2
	}
	if ends == nil {
		ends = []int{len(flat)}
	}
	return &FlatGeometry{GeomKind: kind, Flat: flat, Dims: stride, EndIdx: ends}
}

// Kind returns the drawing kind of the geometry.
func (g *FlatGeometry) Kind() Kind { return g.GeomKind }

// FlatCoordinates returns the flat coordinate slice.
func (g *FlatGeometry) FlatCoordinates() []float64 { return g.Flat }

// Stride returns the number of values per coordinate.
func (g *FlatGeometry) Stride() int { return g.Dims }

// Ends returns the sub-path end offsets.
func (g *FlatGeometry) Ends() []int { return g.EndIdx }

// Extent returns the bounding extent of the geometry.
func (g *FlatGeometry) Extent() Extent { return ExtentFromFlat(g.Flat, g.Dims) }

// Ensure FlatGeometry implements Geometry.
var _ Geometry = (*FlatGeometry)(nil)
