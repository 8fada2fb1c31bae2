// Package tess triangulates vector paths into indexed triangle
// meshes. Fills are ear clipped per closed subpath; strokes emit a
// quad strip along the flattened spine. Vertices are produced through
// caller-supplied constructors so the same tessellators serve meshes
// with different vertex layouts.
package tess

import (
	"github.com/gogpu/lyon"
)

// DefaultTolerance is the flattening tolerance used when options
// leave it unset.
const DefaultTolerance = 0.1

// Count reports what a tessellation pass appended to the output
// geometry.
type Count struct {
	Vertices uint32
	Indices  uint32
}

// FillOptions controls FillPath.
type FillOptions struct {
	// Tolerance is the maximum distance between a curve and its
	// flattened approximation. Non-positive values fall back to
	// DefaultTolerance.
	Tolerance float32
}

// DefaultFillOptions returns the default fill options.
func DefaultFillOptions() FillOptions {
	return FillOptions{Tolerance: DefaultTolerance}
}

// StrokeOptions controls StrokePath.
type StrokeOptions struct {
	// Tolerance is the flattening tolerance, as for fills.
	Tolerance float32

	// Width is the stroke width baked into the vertex positions.
	// When zero, vertices stay on the path spine and carry the
	// offset direction in their normal instead, leaving the width to
	// be applied downstream.
	Width float32
}

// DefaultStrokeOptions returns spine-mode stroke options.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{Tolerance: DefaultTolerance}
}

// FillVertexBuilder constructs mesh vertices of type V from fill
// positions.
type FillVertexBuilder[V any] interface {
	NewFillVertex(pos lyon.Point) (V, error)
}

// StrokeVertexBuilder constructs mesh vertices of type V from a
// stroke position and the unit normal at that position.
type StrokeVertexBuilder[V any] interface {
	NewStrokeVertex(pos, normal lyon.Point) (V, error)
}

// FillPath tessellates the path's interior into out. Every subpath
// is treated as a closed ring; rings with fewer than three distinct
// points are skipped. Returns what was appended.
func FillPath[V any](path *lyon.Path, opts FillOptions, ctor FillVertexBuilder[V], out *lyon.Geometry[V]) (Count, error) {
	baseV, baseI := out.VertexCount(), out.IndexCount()

	for _, sp := range flattenPath(path, opts.Tolerance) {
		ring := sp.points
		if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) < 3 {
			continue
		}

		ids := make([]uint16, len(ring))
		for i, p := range ring {
			v, err := ctor.NewFillVertex(p)
			if err != nil {
				return counted(out, baseV, baseI), err
			}
			id, err := out.AddVertex(v)
			if err != nil {
				return counted(out, baseV, baseI), err
			}
			ids[i] = id
		}
		triangulateRing(ring, ids, out)
	}
	return counted(out, baseV, baseI), nil
}

// StrokePath tessellates the path's outline into out as one quad
// strip per subpath. Subpaths ending in a Close event are stroked as
// loops; open ones get butt ends. Subpaths with fewer than two
// points are skipped.
func StrokePath[V any](path *lyon.Path, opts StrokeOptions, ctor StrokeVertexBuilder[V], out *lyon.Geometry[V]) (Count, error) {
	baseV, baseI := out.VertexCount(), out.IndexCount()

	for _, sp := range flattenPath(path, opts.Tolerance) {
		if err := strokeSubpath(sp, opts.Width, ctor, out); err != nil {
			return counted(out, baseV, baseI), err
		}
	}
	return counted(out, baseV, baseI), nil
}

func strokeSubpath[V any](sp subpath, width float32, ctor StrokeVertexBuilder[V], out *lyon.Geometry[V]) error {
	pts := sp.points
	if sp.closed && len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return nil
	}

	normals := spineNormals(pts, sp.closed)

	// Two vertices per spine point, one on each side.
	left := make([]uint16, len(pts))
	right := make([]uint16, len(pts))
	for i, p := range pts {
		n := normals[i]
		posL, posR := p, p
		if width > 0 {
			off := n.Mul(width / 2)
			posL = p.Add(off)
			posR = p.Sub(off)
		}
		v, err := ctor.NewStrokeVertex(posL, n)
		if err != nil {
			return err
		}
		if left[i], err = out.AddVertex(v); err != nil {
			return err
		}
		if v, err = ctor.NewStrokeVertex(posR, n.Mul(-1)); err != nil {
			return err
		}
		if right[i], err = out.AddVertex(v); err != nil {
			return err
		}
	}

	for i := 0; i+1 < len(pts); i++ {
		stitchQuad(out, left[i], right[i], left[i+1], right[i+1])
	}
	if sp.closed {
		last := len(pts) - 1
		stitchQuad(out, left[last], right[last], left[0], right[0])
	}
	return nil
}

// stitchQuad connects two side pairs with two triangles.
func stitchQuad[V any](out *lyon.Geometry[V], l0, r0, l1, r1 uint16) {
	out.AddTriangle(l0, r0, l1)
	out.AddTriangle(r0, r1, l1)
}

// spineNormals returns one unit normal per point: the segment normal
// at open ends, the normalized average of the adjacent segment
// normals elsewhere. A degenerate average falls back to the incoming
// segment's normal.
func spineNormals(pts []lyon.Point, closed bool) []lyon.Point {
	n := len(pts)
	segs := make([]lyon.Point, n)
	for i := 0; i+1 < n; i++ {
		segs[i] = segmentNormal(pts[i], pts[i+1])
	}
	if closed {
		segs[n-1] = segmentNormal(pts[n-1], pts[0])
	}

	normals := make([]lyon.Point, n)
	for i := range pts {
		var prev, next lyon.Point
		hasPrev, hasNext := false, false
		if i > 0 {
			prev, hasPrev = segs[i-1], true
		} else if closed {
			prev, hasPrev = segs[n-1], true
		}
		if i < n-1 || closed {
			next, hasNext = segs[i], true
		}

		switch {
		case hasPrev && hasNext:
			avg := prev.Add(next)
			if avg.Length() < 1e-6 {
				normals[i] = prev
			} else {
				normals[i] = avg.Normalize()
			}
		case hasNext:
			normals[i] = next
		default:
			normals[i] = prev
		}
	}
	return normals
}

// segmentNormal returns the unit normal of the segment a->b, the
// direction rotated a quarter turn counterclockwise.
func segmentNormal(a, b lyon.Point) lyon.Point {
	d := b.Sub(a).Normalize()
	return lyon.Pt(-d.Y, d.X)
}

func counted[V any](out *lyon.Geometry[V], baseV, baseI int) Count {
	return Count{
		Vertices: uint32(out.VertexCount() - baseV),
		Indices:  uint32(out.IndexCount() - baseI),
	}
}
