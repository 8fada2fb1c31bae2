//go:build !nogpu

// Package gpu renders tessellated vector scenes through the gogpu/wgpu
// HAL (zero CGO; Vulkan, Metal, and DX12 backends depending on the
// platform).
//
// Two renderers share the same frame protocol: stage the per-frame
// uniform data into transfer buffers, copy it into the uniform buffers
// on the command encoder, then record one render pass.
//
//   - SceneRenderer draws the animated emblem demo: an instanced fill
//     over a shared mesh, the outline stroke, and the grid background
//     quad, depth tested back to front with a reversed depth range.
//   - SVGRenderer draws a tessellated SVG document in one indexed
//     draw, resolving per-path color and transform records in the
//     vertex shader. Optional MSAA resolves into the surface view.
//
// Vertex and record layouts are fixed; the byte encoders in encode.go
// are the single source of truth for the GPU-facing formats.
package gpu
