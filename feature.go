package vecmap

// Feature is the opaque handle vecmap requires from feature objects.
// Features are used only as map keys and callback arguments; their
// attributes are never inspected.
type Feature interface {
	// ID returns a stable identity for the feature, unique within a
	// layer. It is used to skip features during replay.
	ID() string

	// Geometry returns the feature's geometry, or nil for a feature
	// with no geometry (which contributes nothing to rendering).
	Geometry() Geometry
}

// BasicFeature is a plain value implementation of Feature, used by the
// GeoJSON adapter and convenient for tests.
type BasicFeature struct {
	FeatureID string
	Geom      Geometry
}

// ID returns the feature identity.
func (f *BasicFeature) ID() string { return f.FeatureID }

// Geometry returns the feature geometry.
func (f *BasicFeature) Geometry() Geometry { return f.Geom }

// Ensure BasicFeature implements Feature.
var _ Feature = (*BasicFeature)(nil)
