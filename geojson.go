package vecmap

import (
	"errors"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// GeoJSON ingestion errors.
var (
	// ErrUnsupportedGeometry is returned for GeoJSON geometry types
	// with no flat-coordinate mapping (e.g. bare GeometryCollections
	// nested inside themselves).
	ErrUnsupportedGeometry = errors.New("vecmap: unsupported geojson geometry")
)

// FeaturesFromGeoJSON parses a GeoJSON feature collection into vecmap
// features with flat-coordinate geometries. Point and multi-point
// geometries map to KindImage (point symbols), line strings to
// KindLineString and polygons to KindPolygon. Feature IDs are taken
// from the GeoJSON id when present, otherwise synthesized from the
// feature index.
func FeaturesFromGeoJSON(data []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("vecmap: parse feature collection: %w", err)
	}

	features := make([]Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		geom, err := flatFromGeoJSON(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("vecmap: feature %d: %w", i, err)
		}
		id := fmt.Sprintf("%d", i)
		if f.ID != nil {
			id = fmt.Sprintf("%v", f.ID)
		}
		features = append(features, &BasicFeature{FeatureID: id, Geom: geom})
	}
	return features, nil
}

// flatFromGeoJSON flattens a GeoJSON geometry into a FlatGeometry.
func flatFromGeoJSON(g *geojson.Geometry) (*FlatGeometry, error) {
	switch g.Type {
	case geojson.GeometryPoint:
		return NewFlatGeometry(KindImage, append([]float64(nil), g.Point[:2]...), 2, nil), nil

	case geojson.GeometryMultiPoint:
		flat, ends := flattenLines(g.MultiPoint, nil, nil)
		return NewFlatGeometry(KindImage, flat, 2, ends), nil

	case geojson.GeometryLineString:
		flat, ends := flattenLines(g.LineString, nil, nil)
		return NewFlatGeometry(KindLineString, flat, 2, ends), nil

	case geojson.GeometryMultiLineString:
		var flat []float64
		var ends []int
		for _, line := range g.MultiLineString {
			flat, ends = flattenLines(line, flat, ends)
		}
		return NewFlatGeometry(KindLineString, flat, 2, ends), nil

	case geojson.GeometryPolygon:
		var flat []float64
		var ends []int
		for _, ring := range g.Polygon {
			flat, ends = flattenLines(ring, flat, ends)
		}
		return NewFlatGeometry(KindPolygon, flat, 2, ends), nil

	case geojson.GeometryMultiPolygon:
		var flat []float64
		var ends []int
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				flat, ends = flattenLines(ring, flat, ends)
			}
		}
		return NewFlatGeometry(KindPolygon, flat, 2, ends), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.Type)
	}
}

// flattenLines appends a coordinate list to a flat slice, recording the
// part's end offset. MultiPoint parts flatten to one part per call.
func flattenLines(coords [][]float64, flat []float64, ends []int) ([]float64, []int) {
	for _, c := range coords {
		flat = append(flat, c[0], c[1])
	}
	return flat, append(ends, len(flat))
}
