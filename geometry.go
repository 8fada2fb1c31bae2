package lyon

import (
	"errors"
	"math"
)

// ErrMeshTooLarge is returned when a mesh outgrows 16-bit index
// addressing.
var ErrMeshTooLarge = errors.New("lyon: mesh exceeds 16-bit index capacity")

// Range is a half-open interval of positions in a mesh's index
// buffer. Draw calls consume ranges directly.
type Range struct {
	Start, End uint32
}

// Len returns the number of indices in the range.
func (r Range) Len() uint32 {
	return r.End - r.Start
}

// Geometry accumulates mesh vertices and 16-bit indices. The fill and
// stroke passes of a scene append into one shared Geometry so the
// whole mesh uploads as a single vertex/index buffer pair.
type Geometry[V any] struct {
	Vertices []V
	Indices  []uint16
}

// AddVertex appends a vertex and returns its index.
func (g *Geometry[V]) AddVertex(v V) (uint16, error) {
	if len(g.Vertices) > math.MaxUint16 {
		return 0, ErrMeshTooLarge
	}
	idx := uint16(len(g.Vertices))
	g.Vertices = append(g.Vertices, v)
	return idx, nil
}

// AddTriangle appends one triangle's indices.
func (g *Geometry[V]) AddTriangle(a, b, c uint16) {
	g.Indices = append(g.Indices, a, b, c)
}

// VertexCount returns the number of vertices accumulated so far.
func (g *Geometry[V]) VertexCount() int {
	return len(g.Vertices)
}

// IndexCount returns the number of indices accumulated so far.
func (g *Geometry[V]) IndexCount() int {
	return len(g.Indices)
}

// Mark returns the current end of the index buffer. Recording a mark
// before and after a tessellation pass yields that pass's index
// range.
func (g *Geometry[V]) Mark() uint32 {
	return uint32(len(g.Indices))
}
