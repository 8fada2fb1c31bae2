package lyon

import "errors"

// ErrTableFull is returned when a record table has no free slot left.
var ErrTableFull = errors.New("lyon: record table is full")

// Capacity of the animated demo's primitive table. Primitive ids are
// indices into the table, so the instanced fill draw depends on every
// id in 0..DemoPrimitiveCount-1 holding a valid record.
const DemoPrimitiveCount = 64

// Capacities of the SVG renderer's uniform tables.
const (
	MaxSVGPrimitives = 512
	MaxSVGTransforms = 512
)

// Primitive is the animated demo's per-object record. The shader
// resolves it through the vertex's primitive id plus the instance
// index.
type Primitive struct {
	Color     [4]float32
	Translate [2]float32
	ZIndex    int32
	Width     float32
}

// DefaultPrimitive is the seed record for unused table slots. The red
// color makes a stray primitive id visible immediately.
func DefaultPrimitive() Primitive {
	return Primitive{Color: [4]float32{1, 0, 0, 1}}
}

// SVGPrimitive is the SVG renderer's per-path record: a transform
// table id and a packed fill color. It serializes to 16 bytes with
// trailing padding.
type SVGPrimitive struct {
	Transform uint32
	Color     PackedColor
}

// Transform is a 2x3 affine matrix record for the SVG transform
// table. It serializes as two vec4s, (A, B, C, D) and (E, F, 0, 0).
type Transform struct {
	A, B, C, D, E, F float32
}

// IdentityTransform returns the identity affine record.
func IdentityTransform() Transform {
	return Transform{A: 1, D: 1}
}

// Globals is the animated demo's per-frame uniform block.
type Globals struct {
	Resolution   [2]float32
	ScrollOffset [2]float32
	Zoom         float32
}

// SVGGlobals is the SVG renderer's per-frame uniform block. Zoom is
// duplicated into both lanes of its vec2.
type SVGGlobals struct {
	Zoom        [2]float32
	Pan         [2]float32
	AspectRatio float32
}

// Table is a fixed-capacity record table addressed by dense ids. Ids
// are assigned in creation order and double as GPU buffer indices.
type Table[R any] struct {
	records  []R
	capacity int
}

// NewTable creates an empty table with the given capacity.
func NewTable[R any](capacity int) *Table[R] {
	return &Table[R]{
		records:  make([]R, 0, capacity),
		capacity: capacity,
	}
}

// NewSeededTable creates a table with every slot filled with def.
// Seeded tables upload their full capacity each frame and are updated
// in place rather than appended to.
func NewSeededTable[R any](capacity int, def R) *Table[R] {
	records := make([]R, capacity)
	for i := range records {
		records[i] = def
	}
	return &Table[R]{records: records, capacity: capacity}
}

// Add appends a record and returns its id.
func (t *Table[R]) Add(r R) (uint32, error) {
	if len(t.records) >= t.capacity {
		return 0, ErrTableFull
	}
	id := uint32(len(t.records))
	t.records = append(t.records, r)
	return id, nil
}

// At returns a pointer to the record with the given id, for in-place
// updates. The id must be in range.
func (t *Table[R]) At(id uint32) *R {
	return &t.records[id]
}

// Len returns the number of records in the table.
func (t *Table[R]) Len() int {
	return len(t.records)
}

// Capacity returns the table's fixed capacity.
func (t *Table[R]) Capacity() int {
	return t.capacity
}

// Records returns the table's backing records in id order.
func (t *Table[R]) Records() []R {
	return t.records
}

// TransformTable is a Table of affine records that collapses
// consecutive duplicates: pushing a record equal to the most recent
// one returns the existing id instead of growing the table.
// Non-consecutive repeats still get fresh slots.
type TransformTable struct {
	Table[Transform]
}

// NewTransformTable creates an empty transform table.
func NewTransformTable(capacity int) *TransformTable {
	return &TransformTable{
		Table: Table[Transform]{
			records:  make([]Transform, 0, capacity),
			capacity: capacity,
		},
	}
}

// Push records a transform and returns its id, reusing the most
// recent slot when the record matches it.
func (t *TransformTable) Push(tr Transform) (uint32, error) {
	if n := len(t.records); n > 0 && t.records[n-1] == tr {
		return uint32(n - 1), nil
	}
	return t.Add(tr)
}
