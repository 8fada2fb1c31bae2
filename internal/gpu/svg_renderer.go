//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lyon"
	"github.com/gogpu/lyon/svg"
	"github.com/gogpu/wgpu/hal"
)

// Uniform buffer sizes for the SVG scene. The shader binds the primitive and
// transform tables as fixed-size arrays, so both buffers are allocated and
// uploaded at full capacity with the unused tail zeroed.
const (
	svgPrimsSize      = lyon.MaxSVGPrimitives * svgPrimitiveStride
	svgTransformsSize = lyon.MaxSVGTransforms * transformStride
)

// SVGRenderer draws a tessellated SVG document in one indexed draw. The
// mesh, primitive table, and transform table are uploaded once in Prepare;
// per frame only the globals (zoom, pan, aspect ratio) are staged and
// copied. With a sample count above one the pass renders into a multisample
// texture and resolves into the target view.
type SVGRenderer struct {
	device hal.Device
	queue  hal.Queue

	sampleCount uint32

	shader hal.ShaderModule

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	pipeline          hal.RenderPipeline
	wireframePipeline hal.RenderPipeline

	vbo hal.Buffer
	ibo hal.Buffer

	globalsUBO     hal.Buffer
	globalsStaging hal.Buffer
	primsUBO       hal.Buffer
	transformsUBO  hal.Buffer

	bindGroup hal.BindGroup

	msaaTexture hal.Texture
	msaaView    hal.TextureView
	msaaWidth   uint32
	msaaHeight  uint32

	indexCount uint32

	clearColor gputypes.Color
}

// NewSVGRenderer creates an SVG renderer on the given device and queue.
// sampleCount selects the multisample mode; zero is treated as one. GPU
// resources are not allocated until Prepare is called.
func NewSVGRenderer(device hal.Device, queue hal.Queue, sampleCount uint32) *SVGRenderer {
	if sampleCount == 0 {
		sampleCount = 1
	}
	return &SVGRenderer{
		device:      device,
		queue:       queue,
		sampleCount: sampleCount,
		clearColor:  gputypes.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

// SetClearColor overrides the white frame clear color.
func (r *SVGRenderer) SetClearColor(c [4]float32) {
	r.clearColor = gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// Prepare compiles the shader, builds the solid and wireframe pipelines, and
// uploads the scene geometry and record tables.
func (r *SVGRenderer) Prepare(scene *svg.Scene) error {
	if scene == nil || scene.Mesh.IndexCount() == 0 {
		return fmt.Errorf("prepare svg scene: empty mesh")
	}
	if err := r.createPipelines(); err != nil {
		return err
	}
	if err := r.uploadScene(scene); err != nil {
		return err
	}
	if err := r.createBindGroup(); err != nil {
		return err
	}
	r.indexCount = uint32(scene.Mesh.IndexCount())
	lyon.Logger().Debug("svg renderer prepared",
		"vertices", scene.Mesh.VertexCount(),
		"indices", scene.Mesh.IndexCount(),
		"primitives", scene.Primitives.Len(),
		"transforms", scene.Transforms.Len(),
		"samples", r.sampleCount)
	return nil
}

// RenderFrame stages the current globals, then records and submits one frame
// into target. With multisampling enabled the pass draws into the internal
// MSAA texture, recreated on resize, and resolves into target. Blocks until
// the GPU finishes so the caller can present the target immediately after.
func (r *SVGRenderer) RenderFrame(target hal.TextureView, width, height uint32, state *lyon.SceneState) error {
	if width == 0 || height == 0 {
		return nil
	}
	if err := r.ensureMSAATexture(width, height); err != nil {
		return err
	}

	gdata := svgGlobalsData(state.SVGGlobals())
	r.queue.WriteBuffer(r.globalsStaging, 0, gdata)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "svg_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create frame encoder: %w", err)
	}

	if err := encoder.BeginEncoding("svg frame"); err != nil {
		return fmt.Errorf("begin frame encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(r.globalsStaging, r.globalsUBO, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: uint64(len(gdata))},
	})

	attachment := hal.RenderPassColorAttachment{
		View:       target,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: r.clearColor,
	}
	if r.sampleCount > 1 {
		attachment.View = r.msaaView
		attachment.ResolveTarget = target
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "svg_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})

	active := r.pipeline
	if state.Wireframe {
		active = r.wireframePipeline
	}
	rp.SetPipeline(active)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(0, r.vbo, 0)
	rp.SetIndexBuffer(r.ibo, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(r.indexCount, 1, 0, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end frame encoding: %w", err)
	}
	return submitAndWait(r.device, r.queue, cmdBuf)
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times or on a renderer that was never prepared.
func (r *SVGRenderer) Destroy() {
	if r.device == nil {
		return
	}
	r.destroyMSAATexture()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{
		&r.transformsUBO, &r.primsUBO, &r.globalsStaging, &r.globalsUBO,
		&r.ibo, &r.vbo,
	} {
		if *buf != nil {
			r.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	r.destroyPipelines()
}

// createPipelines compiles the SVG shader and builds the solid and wireframe
// pipelines. The scene draws in document order with no depth attachment, so
// the pipelines carry no depth/stencil state.
func (r *SVGRenderer) createPipelines() error {
	source := GetSVGShaderSource()
	if source == "" {
		return fmt.Errorf("svg shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "svg_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("compile svg shader: %w", err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "svg_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create svg bind layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "svg_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create svg pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(r.pipelineDescriptor(
		"svg_pipeline", gputypes.PrimitiveTopologyTriangleList))
	if err != nil {
		return fmt.Errorf("create svg pipeline: %w", err)
	}
	r.pipeline = pipeline

	wireframe, err := r.device.CreateRenderPipeline(r.pipelineDescriptor(
		"svg_wireframe_pipeline", gputypes.PrimitiveTopologyLineList))
	if err != nil {
		return fmt.Errorf("create svg wireframe pipeline: %w", err)
	}
	r.wireframePipeline = wireframe

	return nil
}

// pipelineDescriptor builds the descriptor shared by the solid and wireframe
// SVG pipelines; only the topology differs.
func (r *SVGRenderer) pipelineDescriptor(label string, topology gputypes.PrimitiveTopology) *hal.RenderPipelineDescriptor {
	return &hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    svgVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	}
}

// uploadScene uploads the mesh and the record tables. The record buffers are
// padded to table capacity because the shader declares fixed-size arrays.
func (r *SVGRenderer) uploadScene(scene *svg.Scene) error {
	vbo, err := createAndUploadBuffer(r.device, r.queue, "svg_vbo",
		svgVertexData(scene.Mesh.Vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload svg vertices: %w", err)
	}
	r.vbo = vbo

	ibo, err := createAndUploadBuffer(r.device, r.queue, "svg_ibo",
		indexData(scene.Mesh.Indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload svg indices: %w", err)
	}
	r.ibo = ibo

	primData := make([]byte, svgPrimsSize)
	copy(primData, svgPrimitiveData(scene.Primitives.Records()))
	primsUBO, err := createAndUploadBuffer(r.device, r.queue, "svg_prims_ubo",
		primData, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload svg primitives: %w", err)
	}
	r.primsUBO = primsUBO

	trData := make([]byte, svgTransformsSize)
	copy(trData, transformData(scene.Transforms.Records()))
	transformsUBO, err := createAndUploadBuffer(r.device, r.queue, "svg_transforms_ubo",
		trData, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload svg transforms: %w", err)
	}
	r.transformsUBO = transformsUBO

	return nil
}

// createBindGroup allocates the globals buffer, its staging counterpart, and
// the bind group covering all three uniform tables.
func (r *SVGRenderer) createBindGroup() error {
	globalsUBO, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "svg_globals_ubo",
		Size:  svgGlobalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create svg globals buffer: %w", err)
	}
	r.globalsUBO = globalsUBO

	globalsStaging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "svg_globals_staging",
		Size:  svgGlobalsSize,
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create svg globals staging buffer: %w", err)
	}
	r.globalsStaging = globalsStaging

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "svg_bind_group",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: r.globalsUBO.NativeHandle(),
					Offset: 0,
					Size:   svgGlobalsSize,
				},
			},
			{
				Binding: 1,
				Resource: gputypes.BufferBinding{
					Buffer: r.primsUBO.NativeHandle(),
					Offset: 0,
					Size:   svgPrimsSize,
				},
			},
			{
				Binding: 2,
				Resource: gputypes.BufferBinding{
					Buffer: r.transformsUBO.NativeHandle(),
					Offset: 0,
					Size:   svgTransformsSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create svg bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// ensureMSAATexture recreates the multisample color texture when the target
// size changes. No-op when multisampling is off.
func (r *SVGRenderer) ensureMSAATexture(width, height uint32) error {
	if r.sampleCount <= 1 {
		return nil
	}
	if r.msaaView != nil && r.msaaWidth == width && r.msaaHeight == height {
		return nil
	}
	r.destroyMSAATexture()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label: "svg_msaa_color",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   r.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create msaa color texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "svg_msaa_color_view",
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create msaa color view: %w", err)
	}
	r.msaaTexture = tex
	r.msaaView = view
	r.msaaWidth = width
	r.msaaHeight = height
	return nil
}

func (r *SVGRenderer) destroyMSAATexture() {
	if r.msaaView != nil {
		r.device.DestroyTextureView(r.msaaView)
		r.msaaView = nil
	}
	if r.msaaTexture != nil {
		r.device.DestroyTexture(r.msaaTexture)
		r.msaaTexture = nil
	}
	r.msaaWidth = 0
	r.msaaHeight = 0
}

// destroyPipelines releases pipeline resources in reverse creation order.
func (r *SVGRenderer) destroyPipelines() {
	if r.wireframePipeline != nil {
		r.device.DestroyRenderPipeline(r.wireframePipeline)
		r.wireframePipeline = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// svgVertexLayout returns the vertex buffer layout for the SVG pipelines.
func svgVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: svgVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatUint32, Offset: 8, ShaderLocation: 1},    // prim_id
			},
		},
	}
}
