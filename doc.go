// Package vecmap provides the rendering core of a 2D vector map library.
//
// # Overview
//
// vecmap compiles geographic vector features (points, lines, polygons and
// text labels) into compact drawing instruction streams and replays them
// against a 2D drawing surface, frame by frame, as the map view changes.
// Compilation (expensive, per data change) is decoupled from replay
// (cheap, per frame), and the same compiled instructions drive pixel
// hit-testing.
//
// # Pipeline
//
//	features + styles
//	    → render.BuilderGroup   (one Builder per z-index × geometry kind)
//	    → Finish()              (immutable, serializable instruction bundles)
//	    → render.ExecutorGroup  (per-frame replay, declutter, hit testing)
//
// The root package holds the shared primitives: extents, affine
// transforms, the geometry/feature/surface contracts, the style model and
// view state. The render subpackage implements the instruction compiler
// and replayer; the gpu subpackage implements the GPU resource helper and
// the point-symbol renderer.
//
// # Collaborators
//
// vecmap owns no canvas, no scene graph and no projection math. Callers
// supply a Surface (an imperative path/fill/stroke/image/text drawing
// API), Geometry and Feature values, and a view state; everything else is
// consumed through the narrow interfaces in this package.
//
// # Coordinate System
//
// World coordinates are planar map units. Replay transforms convert them
// to pixel space with the usual conventions: origin at top-left,
// X increasing right, Y increasing down, angles in radians.
package vecmap
