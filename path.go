package lyon

// PathEvent is a single segment of a path, tagged with explicit
// endpoints. Consumers never track the current point themselves: every
// segment variant carries the positions it connects.
type PathEvent interface {
	isPathEvent()
}

// MoveTo starts a new subpath at To without drawing.
type MoveTo struct {
	To Point
}

func (MoveTo) isPathEvent() {}

// LineTo draws a line segment from From to To.
type LineTo struct {
	From Point
	To   Point
}

func (LineTo) isPathEvent() {}

// CubicTo draws a cubic Bezier segment from From to To.
type CubicTo struct {
	From  Point
	Ctrl1 Point
	Ctrl2 Point
	To    Point
}

func (CubicTo) isPathEvent() {}

// Close ends the current subpath with a synthesized closing segment
// from the last point back to the subpath's first point.
type Close struct {
	From Point
	To   Point
}

func (Close) isPathEvent() {}

// Path is an immutable sequence of path events produced by a
// PathBuilder.
type Path struct {
	events []PathEvent
}

// Len returns the number of events in the path.
func (p *Path) Len() int {
	return len(p.events)
}

// Events returns a fresh iterator over the path's events. Each call
// starts a new traversal.
func (p *Path) Events() *PathIter {
	return &PathIter{events: p.events}
}

// PathIter iterates over the events of a Path. A PathIter is single
// use; obtain a new one from Path.Events for each traversal.
type PathIter struct {
	events []PathEvent
	next   int
}

// Next returns the next event. ok is false once the path is exhausted.
func (it *PathIter) Next() (ev PathEvent, ok bool) {
	if it.next >= len(it.events) {
		return nil, false
	}
	ev = it.events[it.next]
	it.next++
	return ev, true
}

// PathBuilder accumulates path events. The builder tracks the current
// point and the first point of the open subpath so that emitted events
// carry explicit endpoints.
type PathBuilder struct {
	events  []PathEvent
	first   Point
	current Point
	open    bool
}

// NewPathBuilder creates an empty path builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{
		events: make([]PathEvent, 0, 16),
	}
}

// Begin starts a new subpath at p. An open subpath simply ends; no
// closing segment is synthesized for it.
func (b *PathBuilder) Begin(p Point) {
	b.events = append(b.events, MoveTo{To: p})
	b.first = p
	b.current = p
	b.open = true
}

// LineTo draws a line from the current point to p. Without an open
// subpath the call degrades to Begin(p).
func (b *PathBuilder) LineTo(p Point) {
	if !b.open {
		b.Begin(p)
		return
	}
	b.events = append(b.events, LineTo{From: b.current, To: p})
	b.current = p
}

// QuadraticTo draws a quadratic Bezier to p, lowered to the equivalent
// cubic by degree elevation.
func (b *PathBuilder) QuadraticTo(ctrl, p Point) {
	if !b.open {
		b.Begin(p)
		return
	}
	from := b.current
	c1 := from.Lerp(ctrl, 2.0/3.0)
	c2 := p.Lerp(ctrl, 2.0/3.0)
	b.CubicTo(c1, c2, p)
}

// CubicTo draws a cubic Bezier from the current point to p. Without an
// open subpath the call degrades to Begin(p).
func (b *PathBuilder) CubicTo(ctrl1, ctrl2, p Point) {
	if !b.open {
		b.Begin(p)
		return
	}
	b.events = append(b.events, CubicTo{
		From:  b.current,
		Ctrl1: ctrl1,
		Ctrl2: ctrl2,
		To:    p,
	})
	b.current = p
}

// Close closes the open subpath. The emitted event carries the closing
// segment from the current point back to the subpath's first point,
// and the current point resets to that first point. Without an open
// subpath Close is a no-op.
func (b *PathBuilder) Close() {
	if !b.open {
		return
	}
	b.events = append(b.events, Close{From: b.current, To: b.first})
	b.current = b.first
	b.open = false
}

// Current returns the builder's current point.
func (b *PathBuilder) Current() Point {
	return b.current
}

// End finishes the path. An open subpath is left unclosed. The builder
// must not be reused afterwards.
func (b *PathBuilder) End() *Path {
	return &Path{events: b.events}
}
