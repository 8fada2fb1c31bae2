// Package lyon renders vector paths as GPU triangle meshes with per-object
// attributes resolved through a primitive id indirection.
//
// # Overview
//
// lyon tessellates vector paths (a built-in logo path, or paths parsed from
// an SVG document) into a single vertex/index mesh uploaded to the GPU once.
// Every vertex carries the integer id of the logical drawable ("primitive")
// that produced it; the vertex shader uses that id to fetch color, transform,
// z-index, translation and stroke width from uniform tables that are
// re-uploaded each frame. Animating the scene therefore never touches the
// geometry: only the small per-primitive record tables and the globals
// record change from frame to frame.
//
// # Architecture
//
// The library is organized into:
//   - Public API: PathEvent, Path, PathBuilder, Vertex, Geometry,
//     Table, TransformTable, SceneState
//   - tess: fill and stroke tessellation driving vertex constructors
//   - svg: a minimal SVG document parser (paths, transforms, solid paints)
//   - internal/gpu: wgpu-backed buffers, pipelines and per-frame sync
//   - cmd/lyon-demo, cmd/lyon-svg: windowed demo binaries
//
// # Coordinate System
//
//   - Origin (0,0) at top-left of the document/path space
//   - X increases right, Y increases down
//   - The vertex stage flips Y into clip space
package lyon

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
