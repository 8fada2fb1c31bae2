package lyon

import "errors"

// ErrNaNVertex is returned by vertex constructors when the tessellator
// hands them a NaN coordinate. The demo treats it as fatal for the
// primitive being tessellated.
var ErrNaNVertex = errors.New("lyon: vertex constructor received NaN coordinate")

// Vertex is one mesh vertex of the shared demo geometry. Position and
// Normal are in path space; Prim selects the primitive record the
// shader resolves per-object attributes from.
type Vertex struct {
	Position [2]float32
	Normal   [2]float32
	Prim     int32
}

// BgVertex is a position-only vertex for the fullscreen background
// quad. Positions are already in clip space.
type BgVertex struct {
	Position [2]float32
}

// FillVertexConstructor builds a mesh vertex from a fill position.
type FillVertexConstructor interface {
	NewFillVertex(pos Point) (Vertex, error)
}

// StrokeVertexConstructor builds a mesh vertex from a position on the
// path spine and the unit normal at that position. The vertex keeps
// the spine position; line width is applied in the shader from the
// primitive record.
type StrokeVertexConstructor interface {
	NewStrokeVertex(pos, normal Point) (Vertex, error)
}

// WithID is a vertex constructor that tags every vertex with a fixed
// primitive id. It implements both FillVertexConstructor and
// StrokeVertexConstructor.
type WithID int32

// NewFillVertex implements FillVertexConstructor. Fill vertices carry
// a zero normal.
func (w WithID) NewFillVertex(pos Point) (Vertex, error) {
	if pos.IsNaN() {
		return Vertex{}, ErrNaNVertex
	}
	return Vertex{
		Position: [2]float32{pos.X, pos.Y},
		Prim:     int32(w),
	}, nil
}

// NewStrokeVertex implements StrokeVertexConstructor.
func (w WithID) NewStrokeVertex(pos, normal Point) (Vertex, error) {
	if pos.IsNaN() || normal.IsNaN() {
		return Vertex{}, ErrNaNVertex
	}
	return Vertex{
		Position: [2]float32{pos.X, pos.Y},
		Normal:   [2]float32{normal.X, normal.Y},
		Prim:     int32(w),
	}, nil
}

// BgVertexConstructor builds the background quad's vertices.
type BgVertexConstructor struct{}

// NewFillVertex returns a position-only vertex. The background mesh
// ignores primitive ids.
func (BgVertexConstructor) NewFillVertex(pos Point) (BgVertex, error) {
	if pos.IsNaN() {
		return BgVertex{}, ErrNaNVertex
	}
	return BgVertex{Position: [2]float32{pos.X, pos.Y}}, nil
}

// SVGVertex is one mesh vertex of the SVG renderer. Stroke widths
// are baked into positions at tessellation time, so no normal is
// carried.
type SVGVertex struct {
	Position [2]float32
	Prim     uint32
}

// SVGWithID tags every constructed vertex with a fixed primitive id,
// for both fill and stroke passes of the SVG renderer.
type SVGWithID uint32

// NewFillVertex implements the fill constructor role for SVGVertex.
func (w SVGWithID) NewFillVertex(pos Point) (SVGVertex, error) {
	if pos.IsNaN() {
		return SVGVertex{}, ErrNaNVertex
	}
	return SVGVertex{
		Position: [2]float32{pos.X, pos.Y},
		Prim:     uint32(w),
	}, nil
}

// NewStrokeVertex implements the stroke constructor role. The normal
// has already been applied to the position and is dropped.
func (w SVGWithID) NewStrokeVertex(pos, normal Point) (SVGVertex, error) {
	if pos.IsNaN() || normal.IsNaN() {
		return SVGVertex{}, ErrNaNVertex
	}
	return SVGVertex{
		Position: [2]float32{pos.X, pos.Y},
		Prim:     uint32(w),
	}, nil
}
