//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lyon"
	"github.com/gogpu/lyon/svg"
)

// buildSVGFixture assembles a minimal SVG scene: one triangle, one
// primitive record, and the identity transform.
func buildSVGFixture(t *testing.T) *svg.Scene {
	t.Helper()
	scene := &svg.Scene{
		Primitives: lyon.NewTable[lyon.SVGPrimitive](lyon.MaxSVGPrimitives),
		Transforms: lyon.NewTransformTable(lyon.MaxSVGTransforms),
	}
	tid, err := scene.Transforms.Push(lyon.IdentityTransform())
	if err != nil {
		t.Fatalf("push transform: %v", err)
	}
	pid, err := scene.Primitives.Add(lyon.SVGPrimitive{
		Transform: tid,
		Color:     lyon.PackColor(255, 0, 0, 255),
	})
	if err != nil {
		t.Fatalf("add primitive: %v", err)
	}
	for _, p := range [][2]float32{{0, 0}, {10, 0}, {0, 10}} {
		if _, err := scene.Mesh.AddVertex(lyon.SVGVertex{Position: p, Prim: pid}); err != nil {
			t.Fatalf("add vertex: %v", err)
		}
	}
	scene.Mesh.AddTriangle(0, 1, 2)
	return scene
}

func TestSVGRendererSampleCountNormalization(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		in   uint32
		want uint32
	}{
		{0, 1},
		{1, 1},
		{4, 4},
		{8, 8},
	}
	for _, tt := range tests {
		r := NewSVGRenderer(device, queue, tt.in)
		if r.sampleCount != tt.want {
			t.Errorf("NewSVGRenderer(samples=%d).sampleCount = %d, want %d", tt.in, r.sampleCount, tt.want)
		}
		r.Destroy()
	}
}

func TestSVGRendererPrepareEmptyScene(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r := NewSVGRenderer(device, queue, 1)
	defer r.Destroy()

	if err := r.Prepare(nil); err == nil {
		t.Error("expected error for nil scene")
	}
	if err := r.Prepare(&svg.Scene{}); err == nil {
		t.Error("expected error for empty scene")
	}
}

func TestSVGRendererPrepare(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	scene := buildSVGFixture(t)

	r := NewSVGRenderer(device, queue, 1)
	defer r.Destroy()

	if err := r.Prepare(scene); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if r.pipeline == nil || r.wireframePipeline == nil {
		t.Error("expected both pipelines after Prepare")
	}
	if r.vbo == nil || r.ibo == nil {
		t.Error("expected mesh buffers after Prepare")
	}
	if r.globalsUBO == nil || r.globalsStaging == nil {
		t.Error("expected globals buffers after Prepare")
	}
	if r.primsUBO == nil || r.transformsUBO == nil {
		t.Error("expected record table buffers after Prepare")
	}
	if r.bindGroup == nil {
		t.Error("expected bind group after Prepare")
	}
	if r.indexCount != 3 {
		t.Errorf("indexCount = %d, want 3", r.indexCount)
	}
}

func TestSVGRendererRenderFrame(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	scene := buildSVGFixture(t)

	r := NewSVGRenderer(device, queue, 1)
	defer r.Destroy()
	if err := r.Prepare(scene); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	view, viewCleanup := createTargetView(t, device, 800, 600)
	defer viewCleanup()

	state := lyon.NewSVGScene(400, 300, lyon.SceneOptions{Keymap: lyon.KeymapSVG})
	if err := r.RenderFrame(view, 800, 600, state); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	// Single-sample mode never allocates the MSAA texture.
	if r.msaaTexture != nil || r.msaaView != nil {
		t.Error("MSAA texture allocated with sample count 1")
	}

	state.Wireframe = true
	if err := r.RenderFrame(view, 800, 600, state); err != nil {
		t.Fatalf("wireframe RenderFrame failed: %v", err)
	}

	// Zero-sized frames are skipped.
	if err := r.RenderFrame(view, 0, 600, state); err != nil {
		t.Errorf("zero-width frame returned error: %v", err)
	}
}

func TestSVGRendererRenderFrameMSAA(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	scene := buildSVGFixture(t)

	r := NewSVGRenderer(device, queue, 4)
	defer r.Destroy()
	if err := r.Prepare(scene); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	view, viewCleanup := createTargetView(t, device, 800, 600)
	defer viewCleanup()

	state := lyon.NewSVGScene(400, 300, lyon.SceneOptions{Keymap: lyon.KeymapSVG})
	if err := r.RenderFrame(view, 800, 600, state); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if r.msaaTexture == nil || r.msaaView == nil {
		t.Fatal("expected MSAA texture after first frame")
	}
	if r.msaaWidth != 800 || r.msaaHeight != 600 {
		t.Errorf("MSAA size = %dx%d, want 800x600", r.msaaWidth, r.msaaHeight)
	}

	// Same size keeps the texture.
	origTex := r.msaaTexture
	if err := r.RenderFrame(view, 800, 600, state); err != nil {
		t.Fatalf("second RenderFrame failed: %v", err)
	}
	if r.msaaTexture != origTex {
		t.Error("MSAA texture was recreated at unchanged size")
	}

	// Resize recreates it.
	if err := r.RenderFrame(view, 1024, 768, state); err != nil {
		t.Fatalf("RenderFrame after resize failed: %v", err)
	}
	if r.msaaWidth != 1024 || r.msaaHeight != 768 {
		t.Errorf("MSAA size after resize = %dx%d, want 1024x768", r.msaaWidth, r.msaaHeight)
	}
}

func TestSVGRendererDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	scene := buildSVGFixture(t)

	r := NewSVGRenderer(device, queue, 4)
	if err := r.Prepare(scene); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	view, viewCleanup := createTargetView(t, device, 640, 480)
	defer viewCleanup()
	state := lyon.NewSVGScene(400, 300, lyon.SceneOptions{Keymap: lyon.KeymapSVG})
	if err := r.RenderFrame(view, 640, 480, state); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	r.Destroy()

	if r.pipeline != nil || r.wireframePipeline != nil {
		t.Error("expected nil pipelines after Destroy")
	}
	if r.vbo != nil || r.ibo != nil {
		t.Error("expected nil mesh buffers after Destroy")
	}
	if r.globalsUBO != nil || r.globalsStaging != nil || r.primsUBO != nil || r.transformsUBO != nil {
		t.Error("expected nil uniform buffers after Destroy")
	}
	if r.bindGroup != nil {
		t.Error("expected nil bind group after Destroy")
	}
	if r.msaaTexture != nil || r.msaaView != nil {
		t.Error("expected nil MSAA texture after Destroy")
	}

	// Double-destroy should be safe.
	r.Destroy()
}

func TestSVGRendererDestroyBeforeCreate(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r := NewSVGRenderer(device, queue, 1)
	r.Destroy()
}

func TestSVGVertexLayout(t *testing.T) {
	layout := svgVertexLayout()
	if len(layout) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layout))
	}

	vbl := layout[0]
	if vbl.ArrayStride != svgVertexStride {
		t.Errorf("expected stride %d, got %d", svgVertexStride, vbl.ArrayStride)
	}
	if len(vbl.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(vbl.Attributes))
	}

	// Position at offset 0, location 0.
	if vbl.Attributes[0].Format != gputypes.VertexFormatFloat32x2 ||
		vbl.Attributes[0].Offset != 0 || vbl.Attributes[0].ShaderLocation != 0 {
		t.Errorf("position attribute: %+v, expected Float32x2 at offset 0, location 0", vbl.Attributes[0])
	}

	// Primitive id as unsigned 32-bit at offset 8, location 1.
	if vbl.Attributes[1].Format != gputypes.VertexFormatUint32 ||
		vbl.Attributes[1].Offset != 8 || vbl.Attributes[1].ShaderLocation != 1 {
		t.Errorf("prim_id attribute: %+v, expected Uint32 at offset 8, location 1", vbl.Attributes[1])
	}
}

// TestUniformTableSizes pins the uniform allocations to the shader's fixed
// array declarations.
func TestUniformTableSizes(t *testing.T) {
	if demoPrimsSize != 64*32 {
		t.Errorf("demoPrimsSize = %d, want %d", demoPrimsSize, 64*32)
	}
	if svgPrimsSize != 512*16 {
		t.Errorf("svgPrimsSize = %d, want %d", svgPrimsSize, 512*16)
	}
	if svgTransformsSize != 512*32 {
		t.Errorf("svgTransformsSize = %d, want %d", svgTransformsSize, 512*32)
	}

	// Uniform array strides must be 16-byte multiples.
	for _, tt := range []struct {
		name   string
		stride int
	}{
		{"primitive", primitiveStride},
		{"svg primitive", svgPrimitiveStride},
		{"transform", transformStride},
	} {
		if tt.stride%16 != 0 {
			t.Errorf("%s stride %d is not a 16-byte multiple", tt.name, tt.stride)
		}
	}
}
