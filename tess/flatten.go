package tess

import (
	"math"

	"github.com/gogpu/lyon"
)

// Subdivision stops at this depth even if the tolerance is not met,
// so malformed curves (NaN control points) cannot recurse forever.
const maxFlattenDepth = 16

// subpath is one flattened run of spine points. closed records
// whether the source subpath ended with a Close event.
type subpath struct {
	points []lyon.Point
	closed bool
}

// flattenPath walks the path's events and reduces every curve to
// line segments within the given tolerance. Consecutive duplicate
// points are dropped.
func flattenPath(path *lyon.Path, tolerance float32) []subpath {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}

	var subpaths []subpath
	var cur subpath

	flush := func(closed bool) {
		if len(cur.points) > 0 {
			cur.closed = closed
			subpaths = append(subpaths, cur)
		}
		cur = subpath{}
	}
	emit := func(p lyon.Point) {
		if n := len(cur.points); n > 0 && cur.points[n-1] == p {
			return
		}
		cur.points = append(cur.points, p)
	}

	it := path.Events()
	for {
		ev, ok := it.Next()
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case lyon.MoveTo:
			flush(false)
			emit(ev.To)
		case lyon.LineTo:
			emit(ev.To)
		case lyon.CubicTo:
			flattenCubic(ev.From, ev.Ctrl1, ev.Ctrl2, ev.To, tolerance, 0, emit)
		case lyon.Close:
			flush(true)
		}
	}
	flush(false)
	return subpaths
}

// flattenCubic subdivides the curve at its midpoint until each piece
// is within tolerance of its chord, then emits the piece endpoints.
// The starting point is assumed already emitted.
func flattenCubic(p0, p1, p2, p3 lyon.Point, tolerance float32, depth int, emit func(lyon.Point)) {
	if depth >= maxFlattenDepth || cubicIsFlat(p0, p1, p2, p3, tolerance) {
		emit(p3)
		return
	}

	// de Casteljau split at t = 0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubic(p0, q0, r0, s, tolerance, depth+1, emit)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, emit)
}

// cubicIsFlat reports whether both control points lie within
// tolerance of the chord p0-p3.
func cubicIsFlat(p0, p1, p2, p3 lyon.Point, tolerance float32) bool {
	d1 := pointLineDistance(p1, p0, p3)
	d2 := pointLineDistance(p2, p0, p3)
	return max(d1, d2) <= tolerance
}

// pointLineDistance returns the perpendicular distance from p to the
// line a-b, or the distance to a when the line degenerates.
func pointLineDistance(p, a, b lyon.Point) float32 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-10 {
		return p.Distance(a)
	}
	cross := d.Cross(p.Sub(a))
	return float32(math.Abs(float64(cross)) / math.Sqrt(float64(lenSq)))
}
