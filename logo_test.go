package lyon

import "testing"

func TestLogoPath_Subpaths(t *testing.T) {
	path := LogoPath()

	var moves, closes int
	var subpathStart Point
	for it := path.Events(); ; {
		ev, ok := it.Next()
		if !ok {
			break
		}
		switch e := ev.(type) {
		case MoveTo:
			moves++
			subpathStart = e.To
		case Close:
			closes++
			if !approxEq(e.To.X, subpathStart.X) || !approxEq(e.To.Y, subpathStart.Y) {
				t.Errorf("close %d returns to %v, subpath started at %v", closes, e.To, subpathStart)
			}
		}
	}

	// Outer ring, inner ring, spark, dot.
	if moves != 4 {
		t.Errorf("expected 4 subpaths, got %d", moves)
	}
	if closes != 4 {
		t.Errorf("expected 4 closed subpaths, got %d", closes)
	}
}

func TestLogoPath_Continuity(t *testing.T) {
	path := LogoPath()

	var current Point
	for it := path.Events(); ; {
		ev, ok := it.Next()
		if !ok {
			break
		}
		var from, to Point
		switch e := ev.(type) {
		case MoveTo:
			current = e.To
			continue
		case LineTo:
			from, to = e.From, e.To
		case CubicTo:
			from, to = e.From, e.To
		case Close:
			from, to = e.From, e.To
		}
		if !approxEq(from.X, current.X) || !approxEq(from.Y, current.Y) {
			t.Fatalf("%T starts at %v, current point is %v", ev, from, current)
		}
		current = to
	}
}

func TestLogoPath_Finite(t *testing.T) {
	path := LogoPath()

	check := func(p Point) {
		t.Helper()
		if p.IsNaN() {
			t.Fatal("logo contains a NaN coordinate")
		}
	}
	for it := path.Events(); ; {
		ev, ok := it.Next()
		if !ok {
			break
		}
		switch e := ev.(type) {
		case MoveTo:
			check(e.To)
		case LineTo:
			check(e.From)
			check(e.To)
		case CubicTo:
			check(e.From)
			check(e.Ctrl1)
			check(e.Ctrl2)
			check(e.To)
		case Close:
			check(e.From)
			check(e.To)
		}
	}
}
