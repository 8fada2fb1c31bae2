package lyon

// Cubic Bezier approximation of a quarter circle: 4/3 * (sqrt(2) - 1).
const circleK = 0.5522848

// LogoPath returns the demo's fixed emblem, a spark inside a double
// ring with an orbiting dot. Several closed subpaths mixing lines and
// cubics, spanning roughly a 140x140 box centered on (70, 70).
func LogoPath() *Path {
	b := NewPathBuilder()

	addCircle(b, 70, 70, 62)
	addCircle(b, 70, 70, 50)

	// The spark.
	b.Begin(Pt(80, 28))
	b.LineTo(Pt(46, 74))
	b.LineTo(Pt(63, 74))
	b.CubicTo(Pt(60, 88), Pt(56, 100), Pt(52, 112))
	b.CubicTo(Pt(66, 96), Pt(80, 79), Pt(94, 62))
	b.LineTo(Pt(76, 62))
	b.LineTo(Pt(92, 28))
	b.Close()

	// The orbiting dot.
	addCircle(b, 108, 40, 7)

	return b.End()
}

func addCircle(b *PathBuilder, cx, cy, r float32) {
	k := r * circleK
	b.Begin(Pt(cx+r, cy))
	b.CubicTo(Pt(cx+r, cy+k), Pt(cx+k, cy+r), Pt(cx, cy+r))
	b.CubicTo(Pt(cx-k, cy+r), Pt(cx-r, cy+k), Pt(cx-r, cy))
	b.CubicTo(Pt(cx-r, cy-k), Pt(cx-k, cy-r), Pt(cx, cy-r))
	b.CubicTo(Pt(cx+k, cy-r), Pt(cx+r, cy-k), Pt(cx+r, cy))
	b.Close()
}
