package svg

import (
	"fmt"

	"github.com/gogpu/lyon"
	"github.com/gogpu/lyon/tess"
)

// DefaultTolerance is the curve flattening tolerance for scene
// building, in document units.
const DefaultTolerance = 0.01

// BuildOptions control scene construction.
type BuildOptions struct {
	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float32
}

// Scene is a tessellated document ready for upload: one shared mesh
// plus the primitive and transform tables the shader indexes into.
// Primitive ids are assigned in paint order, fill before stroke
// within each path, so the mesh and the table stay in lockstep.
type Scene struct {
	Mesh       lyon.Geometry[lyon.SVGVertex]
	Primitives *lyon.Table[lyon.SVGPrimitive]
	Transforms *lyon.TransformTable
	ViewBox    ViewBox
}

// BuildScene tessellates every painted path in the document into one
// scene. A fill that fails to tessellate aborts the build; a failing
// stroke is logged and skipped, since an outline is decoration the
// scene can survive without.
func BuildScene(doc *Document, opts BuildOptions) (*Scene, error) {
	tolerance := opts.Tolerance
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}

	scene := &Scene{
		Primitives: lyon.NewTable[lyon.SVGPrimitive](lyon.MaxSVGPrimitives),
		Transforms: lyon.NewTransformTable(lyon.MaxSVGTransforms),
		ViewBox:    doc.ViewBox,
	}

	err := doc.Walk(func(info PathInfo) error {
		transformID, err := scene.Transforms.Push(info.Transform.Record())
		if err != nil {
			return fmt.Errorf("svg: transform table: %w", err)
		}

		if !info.Fill.None {
			id, err := scene.Primitives.Add(lyon.SVGPrimitive{
				Transform: transformID,
				Color:     info.Fill.Packed(info.FillOpacity),
			})
			if err != nil {
				return fmt.Errorf("svg: primitive table: %w", err)
			}
			opts := tess.FillOptions{Tolerance: tolerance}
			if _, err := tess.FillPath(info.Path, opts, lyon.SVGWithID(id), &scene.Mesh); err != nil {
				return fmt.Errorf("svg: fill tessellation: %w", err)
			}
		}

		if !info.Stroke.None {
			id, err := scene.Primitives.Add(lyon.SVGPrimitive{
				Transform: transformID,
				Color:     info.Stroke.Packed(info.StrokeOpacity),
			})
			if err != nil {
				return fmt.Errorf("svg: primitive table: %w", err)
			}
			opts := tess.StrokeOptions{Tolerance: tolerance, Width: info.StrokeWidth}
			if _, err := tess.StrokePath(info.Path, opts, lyon.SVGWithID(id), &scene.Mesh); err != nil {
				lyon.Logger().Warn("skipping stroke that failed to tessellate", "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scene, nil
}
