//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/lyon"
)

// Byte strides of the GPU-facing records. The WGSL structs in
// shaders/ mirror these layouts; both sides must change together.

// vertexStride is the byte stride of one demo mesh vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	normal   (vec2<f32>) = 8 bytes (location 1)
//	prim_id  (i32)       = 4 bytes (location 2)
//
// Total = 20 bytes.
const vertexStride = 20

// bgVertexStride is the byte stride of one background quad vertex:
// a clip-space position (vec2<f32>) at location 0.
const bgVertexStride = 8

// svgVertexStride is the byte stride of one SVG mesh vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	prim_id  (u32)       = 4 bytes (location 1)
//
// Total = 12 bytes.
const svgVertexStride = 12

// primitiveStride is the byte size of one demo primitive record.
// Layout per record:
//
//	color     (vec4<f32>) = 16 bytes
//	translate (vec2<f32>) =  8 bytes
//	z_index   (i32)       =  4 bytes
//	width     (f32)       =  4 bytes
//
// Total = 32 bytes, matching the shader's uniform array stride.
const primitiveStride = 32

// svgPrimitiveStride is the byte size of one SVG primitive record:
// a transform id (u32), a packed color (u32), and 8 bytes of padding
// to the 16-byte uniform array stride.
const svgPrimitiveStride = 16

// transformStride is the byte size of one affine transform record,
// serialized as two vec4<f32>: (a, b, c, d) and (e, f, 0, 0).
const transformStride = 32

// globalsSize is the byte size of the demo's globals uniform block:
// resolution (vec2<f32>), scroll_offset (vec2<f32>), zoom (f32), and
// 4 bytes of padding to the struct's 8-byte alignment.
const globalsSize = 24

// svgGlobalsSize is the byte size of the SVG globals uniform block:
// zoom (vec2<f32>), pan (vec2<f32>), aspect_ratio (f32), and 4 bytes
// of padding.
const svgGlobalsSize = 24

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// vertexData serializes demo mesh vertices at vertexStride.
func vertexData(verts []lyon.Vertex) []byte {
	buf := make([]byte, len(verts)*vertexStride)
	for i, v := range verts {
		o := i * vertexStride
		putF32(buf[o+0:o+4], v.Position[0])
		putF32(buf[o+4:o+8], v.Position[1])
		putF32(buf[o+8:o+12], v.Normal[0])
		putF32(buf[o+12:o+16], v.Normal[1])
		binary.LittleEndian.PutUint32(buf[o+16:o+20], uint32(v.Prim))
	}
	return buf
}

// bgVertexData serializes background quad vertices at bgVertexStride.
func bgVertexData(verts []lyon.BgVertex) []byte {
	buf := make([]byte, len(verts)*bgVertexStride)
	for i, v := range verts {
		o := i * bgVertexStride
		putF32(buf[o+0:o+4], v.Position[0])
		putF32(buf[o+4:o+8], v.Position[1])
	}
	return buf
}

// svgVertexData serializes SVG mesh vertices at svgVertexStride.
func svgVertexData(verts []lyon.SVGVertex) []byte {
	buf := make([]byte, len(verts)*svgVertexStride)
	for i, v := range verts {
		o := i * svgVertexStride
		putF32(buf[o+0:o+4], v.Position[0])
		putF32(buf[o+4:o+8], v.Position[1])
		binary.LittleEndian.PutUint32(buf[o+8:o+12], v.Prim)
	}
	return buf
}

// indexData serializes 16-bit indices. Buffer writes must be 4-byte
// aligned, so an odd index count gets one zero padding index that no
// draw range covers.
func indexData(indices []uint16) []byte {
	n := len(indices)
	padded := n + n%2
	buf := make([]byte, padded*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], idx)
	}
	return buf
}

// primitiveData serializes demo primitive records at primitiveStride.
func primitiveData(records []lyon.Primitive) []byte {
	buf := make([]byte, len(records)*primitiveStride)
	for i, p := range records {
		o := i * primitiveStride
		putF32(buf[o+0:o+4], p.Color[0])
		putF32(buf[o+4:o+8], p.Color[1])
		putF32(buf[o+8:o+12], p.Color[2])
		putF32(buf[o+12:o+16], p.Color[3])
		putF32(buf[o+16:o+20], p.Translate[0])
		putF32(buf[o+20:o+24], p.Translate[1])
		binary.LittleEndian.PutUint32(buf[o+24:o+28], uint32(p.ZIndex))
		putF32(buf[o+28:o+32], p.Width)
	}
	return buf
}

// svgPrimitiveData serializes SVG primitive records at
// svgPrimitiveStride. The trailing 8 bytes of each record stay zero.
func svgPrimitiveData(records []lyon.SVGPrimitive) []byte {
	buf := make([]byte, len(records)*svgPrimitiveStride)
	for i, p := range records {
		o := i * svgPrimitiveStride
		binary.LittleEndian.PutUint32(buf[o+0:o+4], p.Transform)
		binary.LittleEndian.PutUint32(buf[o+4:o+8], uint32(p.Color))
	}
	return buf
}

// transformData serializes affine transform records at
// transformStride.
func transformData(records []lyon.Transform) []byte {
	buf := make([]byte, len(records)*transformStride)
	for i, t := range records {
		o := i * transformStride
		putF32(buf[o+0:o+4], t.A)
		putF32(buf[o+4:o+8], t.B)
		putF32(buf[o+8:o+12], t.C)
		putF32(buf[o+12:o+16], t.D)
		putF32(buf[o+16:o+20], t.E)
		putF32(buf[o+20:o+24], t.F)
	}
	return buf
}

// globalsData serializes the demo's globals uniform block.
func globalsData(g lyon.Globals) []byte {
	buf := make([]byte, globalsSize)
	putF32(buf[0:4], g.Resolution[0])
	putF32(buf[4:8], g.Resolution[1])
	putF32(buf[8:12], g.ScrollOffset[0])
	putF32(buf[12:16], g.ScrollOffset[1])
	putF32(buf[16:20], g.Zoom)
	return buf
}

// svgGlobalsData serializes the SVG renderer's globals uniform block.
func svgGlobalsData(g lyon.SVGGlobals) []byte {
	buf := make([]byte, svgGlobalsSize)
	putF32(buf[0:4], g.Zoom[0])
	putF32(buf[4:8], g.Zoom[1])
	putF32(buf[8:12], g.Pan[0])
	putF32(buf[12:16], g.Pan[1])
	putF32(buf[16:20], g.AspectRatio)
	return buf
}
