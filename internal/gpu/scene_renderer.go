//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lyon"
	"github.com/gogpu/wgpu/hal"
)

// Uniform buffer sizes for the demo scene. The primitive table is bound as a
// fixed-size shader array, so the buffer is allocated at full capacity even
// when fewer records are staged.
const (
	demoGlobalsSize = globalsSize
	demoPrimsSize   = lyon.DemoPrimitiveCount * primitiveStride
)

// SceneRenderer draws the animated demo scene: one tessellated mesh holding
// a fill range and a stroke range, plus an optional full-screen background
// quad with a procedural grid. The fill range is drawn instanced so a single
// mesh covers every decoration record in the primitive table.
//
// Geometry is uploaded once in Prepare. Per frame only the globals and the
// primitive table are staged, copied into the uniform buffers on the command
// encoder, and then read by the render pass. The scene uses a reversed depth
// test (clear 0.0, compare Greater) so lower z indices win.
type SceneRenderer struct {
	device hal.Device
	queue  hal.Queue

	geometryShader   hal.ShaderModule
	backgroundShader hal.ShaderModule

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	pipeline          hal.RenderPipeline
	wireframePipeline hal.RenderPipeline
	bgPipeline        hal.RenderPipeline

	vbo   hal.Buffer
	ibo   hal.Buffer
	bgVBO hal.Buffer
	bgIBO hal.Buffer

	globalsUBO     hal.Buffer
	primsUBO       hal.Buffer
	globalsStaging hal.Buffer
	primsStaging   hal.Buffer

	bindGroup hal.BindGroup

	depthTexture hal.Texture
	depthView    hal.TextureView
	depthWidth   uint32
	depthHeight  uint32

	fill         lyon.Range
	stroke       lyon.Range
	bgIndexCount uint32

	clearColor gputypes.Color
}

// NewSceneRenderer creates a demo scene renderer on the given device and
// queue. GPU resources are not allocated until Prepare is called.
func NewSceneRenderer(device hal.Device, queue hal.Queue) *SceneRenderer {
	return &SceneRenderer{
		device:     device,
		queue:      queue,
		clearColor: gputypes.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

// SetClearColor overrides the white frame clear color.
func (r *SceneRenderer) SetClearColor(c [4]float32) {
	r.clearColor = gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// Prepare compiles the shaders, builds the three pipelines, and uploads the
// scene geometry. The mesh must hold the fill vertices followed by the stroke
// vertices; fill and stroke select the index ranges drawn per frame. The
// background mesh may be empty, in which case the background draw is skipped
// regardless of the scene state.
func (r *SceneRenderer) Prepare(mesh *lyon.Geometry[lyon.Vertex], background *lyon.Geometry[lyon.BgVertex], fill, stroke lyon.Range) error {
	if mesh == nil || mesh.IndexCount() == 0 {
		return fmt.Errorf("prepare scene: empty mesh")
	}
	if err := r.createPipelines(); err != nil {
		return err
	}
	if err := r.uploadGeometry(mesh, background); err != nil {
		return err
	}
	if err := r.createUniforms(); err != nil {
		return err
	}
	r.fill = fill
	r.stroke = stroke
	lyon.Logger().Debug("scene renderer prepared",
		"vertices", mesh.VertexCount(),
		"indices", mesh.IndexCount(),
		"fill", fill.Len(),
		"stroke", stroke.Len())
	return nil
}

// RenderFrame stages the current globals and primitive table, then records
// and submits one frame into target. The depth texture is recreated whenever
// the target size changes. Blocks until the GPU finishes so the caller can
// present the target immediately after.
func (r *SceneRenderer) RenderFrame(target hal.TextureView, width, height uint32, state *lyon.SceneState, prims *lyon.Table[lyon.Primitive]) error {
	if width == 0 || height == 0 {
		return nil
	}
	if err := r.ensureDepthTexture(width, height); err != nil {
		return err
	}

	gdata := globalsData(state.Globals())
	pdata := primitiveData(prims.Records())
	r.queue.WriteBuffer(r.globalsStaging, 0, gdata)
	r.queue.WriteBuffer(r.primsStaging, 0, pdata)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "demo_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create frame encoder: %w", err)
	}

	if err := encoder.BeginEncoding("demo frame"); err != nil {
		return fmt.Errorf("begin frame encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(r.globalsStaging, r.globalsUBO, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: uint64(len(gdata))},
	})
	encoder.CopyBufferToBuffer(r.primsStaging, r.primsUBO, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: uint64(len(pdata))},
	})

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "demo_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:         r.depthView,
			DepthLoadOp:  gputypes.LoadOpClear,
			DepthStoreOp: gputypes.StoreOpStore,
			// Reversed depth: clear to the far plane at 0 and let
			// greater values overwrite.
			DepthClearValue:   0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})

	active := r.pipeline
	if state.Wireframe {
		active = r.wireframePipeline
	}
	rp.SetPipeline(active)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(0, r.vbo, 0)
	rp.SetIndexBuffer(r.ibo, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(r.fill.Len(), lyon.DemoInstances, r.fill.Start, 0, 0)
	rp.DrawIndexed(r.stroke.Len(), 1, r.stroke.Start, 0, 0)

	if state.DrawBackground && r.bgIndexCount > 0 {
		rp.SetPipeline(r.bgPipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.bgVBO, 0)
		rp.SetIndexBuffer(r.bgIBO, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(r.bgIndexCount, 1, 0, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end frame encoding: %w", err)
	}
	return submitAndWait(r.device, r.queue, cmdBuf)
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times or on a renderer that was never prepared.
func (r *SceneRenderer) Destroy() {
	if r.device == nil {
		return
	}
	r.destroyDepthTexture()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{
		&r.primsStaging, &r.globalsStaging, &r.primsUBO, &r.globalsUBO,
		&r.bgIBO, &r.bgVBO, &r.ibo, &r.vbo,
	} {
		if *buf != nil {
			r.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	r.destroyPipelines()
}

// createPipelines compiles both shader modules and builds the geometry,
// wireframe, and background pipelines. All three share the bind group layout
// and the reversed depth state; the wireframe variant only swaps the
// primitive topology to line lists.
func (r *SceneRenderer) createPipelines() error {
	geometrySource := GetGeometryShaderSource()
	backgroundSource := GetBackgroundShaderSource()
	if geometrySource == "" || backgroundSource == "" {
		return fmt.Errorf("demo shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "geometry_shader",
		Source: hal.ShaderSource{WGSL: geometrySource},
	})
	if err != nil {
		return fmt.Errorf("compile geometry shader: %w", err)
	}
	r.geometryShader = shader

	bgShader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "background_shader",
		Source: hal.ShaderSource{WGSL: backgroundSource},
	})
	if err != nil {
		return fmt.Errorf("compile background shader: %w", err)
	}
	r.backgroundShader = bgShader

	// The background fragment stage samples the globals for the grid, so
	// binding 0 is visible to both stages. The primitive table is only
	// ever read by vertex shaders.
	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "demo_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create demo bind layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "demo_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create demo pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(r.geometryPipelineDescriptor(
		"geometry_pipeline", gputypes.PrimitiveTopologyTriangleList))
	if err != nil {
		return fmt.Errorf("create geometry pipeline: %w", err)
	}
	r.pipeline = pipeline

	wireframe, err := r.device.CreateRenderPipeline(r.geometryPipelineDescriptor(
		"wireframe_pipeline", gputypes.PrimitiveTopologyLineList))
	if err != nil {
		return fmt.Errorf("create wireframe pipeline: %w", err)
	}
	r.wireframePipeline = wireframe

	bgPipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "background_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.backgroundShader,
			EntryPoint: "vs_main",
			Buffers:    backgroundVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.backgroundShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: demoDepthState(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create background pipeline: %w", err)
	}
	r.bgPipeline = bgPipeline

	return nil
}

// geometryPipelineDescriptor builds the descriptor shared by the solid and
// wireframe geometry pipelines; only the topology differs.
func (r *SceneRenderer) geometryPipelineDescriptor(label string, topology gputypes.PrimitiveTopology) *hal.RenderPipelineDescriptor {
	return &hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.geometryShader,
			EntryPoint: "vs_main",
			Buffers:    geometryVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.geometryShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: demoDepthState(),
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// demoDepthState returns the reversed depth test shared by every demo
// pipeline: writes enabled, Greater compare, stencil unused.
func demoDepthState() *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth32Float,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionGreater,
		StencilFront: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilBack: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilReadMask:  0x00,
		StencilWriteMask: 0x00,
	}
}

// uploadGeometry uploads the scene and background meshes into static vertex
// and index buffers.
func (r *SceneRenderer) uploadGeometry(mesh *lyon.Geometry[lyon.Vertex], background *lyon.Geometry[lyon.BgVertex]) error {
	vbo, err := createAndUploadBuffer(r.device, r.queue, "demo_vbo",
		vertexData(mesh.Vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload scene vertices: %w", err)
	}
	r.vbo = vbo

	ibo, err := createAndUploadBuffer(r.device, r.queue, "demo_ibo",
		indexData(mesh.Indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload scene indices: %w", err)
	}
	r.ibo = ibo

	if background == nil || background.IndexCount() == 0 {
		r.bgIndexCount = 0
		return nil
	}
	bgVBO, err := createAndUploadBuffer(r.device, r.queue, "demo_bg_vbo",
		bgVertexData(background.Vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload background vertices: %w", err)
	}
	r.bgVBO = bgVBO

	bgIBO, err := createAndUploadBuffer(r.device, r.queue, "demo_bg_ibo",
		indexData(background.Indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("upload background indices: %w", err)
	}
	r.bgIBO = bgIBO
	r.bgIndexCount = uint32(background.IndexCount())
	return nil
}

// createUniforms allocates the uniform buffers, their staging counterparts,
// and the bind group shared by every demo pipeline.
func (r *SceneRenderer) createUniforms() error {
	globalsUBO, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "demo_globals_ubo",
		Size:  demoGlobalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create globals buffer: %w", err)
	}
	r.globalsUBO = globalsUBO

	primsUBO, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "demo_prims_ubo",
		Size:  demoPrimsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create primitive buffer: %w", err)
	}
	r.primsUBO = primsUBO

	globalsStaging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "demo_globals_staging",
		Size:  demoGlobalsSize,
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create globals staging buffer: %w", err)
	}
	r.globalsStaging = globalsStaging

	primsStaging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "demo_prims_staging",
		Size:  demoPrimsSize,
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create primitive staging buffer: %w", err)
	}
	r.primsStaging = primsStaging

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "demo_bind_group",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: r.globalsUBO.NativeHandle(),
					Offset: 0,
					Size:   demoGlobalsSize,
				},
			},
			{
				Binding: 1,
				Resource: gputypes.BufferBinding{
					Buffer: r.primsUBO.NativeHandle(),
					Offset: 0,
					Size:   demoPrimsSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create demo bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// ensureDepthTexture recreates the depth attachment when the target size
// changes.
func (r *SceneRenderer) ensureDepthTexture(width, height uint32) error {
	if r.depthView != nil && r.depthWidth == width && r.depthHeight == height {
		return nil
	}
	r.destroyDepthTexture()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label: "demo_depth_texture",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth32Float,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "demo_depth_view",
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create depth view: %w", err)
	}
	r.depthTexture = tex
	r.depthView = view
	r.depthWidth = width
	r.depthHeight = height
	return nil
}

func (r *SceneRenderer) destroyDepthTexture() {
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.device.DestroyTexture(r.depthTexture)
		r.depthTexture = nil
	}
	r.depthWidth = 0
	r.depthHeight = 0
}

// destroyPipelines releases pipeline resources in reverse creation order.
func (r *SceneRenderer) destroyPipelines() {
	if r.bgPipeline != nil {
		r.device.DestroyRenderPipeline(r.bgPipeline)
		r.bgPipeline = nil
	}
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
	if r.backgroundShader != nil {
		r.device.DestroyShaderModule(r.backgroundShader)
		r.backgroundShader = nil
	}
	if r.geometryShader != nil {
		r.device.DestroyShaderModule(r.geometryShader)
		r.geometryShader = nil
	}
}

// geometryVertexLayout returns the vertex buffer layout for the geometry and
// wireframe pipelines.
func geometryVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatSint32, Offset: 16, ShaderLocation: 2},   // prim_id
			},
		},
	}
}

// backgroundVertexLayout returns the vertex buffer layout for the background
// pipeline.
func backgroundVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: bgVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}
