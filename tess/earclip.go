package tess

import "github.com/gogpu/lyon"

// triangulateRing emits triangles covering the simple polygon ring,
// referencing the already-added vertex ids. Ear clipping handles
// concave rings; when no ear exists (self-intersecting or fully
// degenerate input) the remainder is emitted as a fan so the pass
// always terminates.
func triangulateRing[V any](ring []lyon.Point, ids []uint16, out *lyon.Geometry[V]) {
	if len(ring) == 3 {
		out.AddTriangle(ids[0], ids[1], ids[2])
		return
	}

	rem := make([]int, len(ring))
	for i := range rem {
		rem[i] = i
	}
	ccw := signedArea(ring) >= 0

	for len(rem) > 3 {
		clipped := false
		for i := range rem {
			prev := rem[(i+len(rem)-1)%len(rem)]
			cur := rem[i]
			next := rem[(i+1)%len(rem)]
			if !isEar(ring, rem, prev, cur, next, ccw) {
				continue
			}
			out.AddTriangle(ids[prev], ids[cur], ids[next])
			rem = append(rem[:i], rem[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			for i := 1; i+1 < len(rem); i++ {
				out.AddTriangle(ids[rem[0]], ids[rem[i]], ids[rem[i+1]])
			}
			return
		}
	}
	out.AddTriangle(ids[rem[0]], ids[rem[1]], ids[rem[2]])
}

func isEar(ring []lyon.Point, rem []int, prev, cur, next int, ccw bool) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	cross := b.Sub(a).Cross(c.Sub(b))
	// Reflex and collinear corners are never ears.
	if ccw && cross <= 0 || !ccw && cross >= 0 {
		return false
	}
	for _, idx := range rem {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		if pointInTriangle(ring[idx], a, b, c) {
			return false
		}
	}
	return true
}

// signedArea returns the doubled shoelace area halved, positive for
// counterclockwise rings. A y-down coordinate space flips the sign,
// which only flips which corners count as convex.
func signedArea(ring []lyon.Point) float32 {
	var area float32
	for i, p := range ring {
		area += p.Cross(ring[(i+1)%len(ring)])
	}
	return area / 2
}

// pointInTriangle includes the boundary, so a ring point touching an
// ear's edge blocks the clip.
func pointInTriangle(p, a, b, c lyon.Point) bool {
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b lyon.Point) float32 {
	return b.Sub(a).Cross(p.Sub(a))
}
