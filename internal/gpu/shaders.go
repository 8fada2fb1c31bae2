package gpu

import _ "embed"

// Embedded WGSL shader sources, one module per pipeline family. Each
// module carries both the vs_main and fs_main entry points.

//go:embed shaders/geometry.wgsl
var geometryShaderSource string

//go:embed shaders/background.wgsl
var backgroundShaderSource string

//go:embed shaders/svg.wgsl
var svgShaderSource string

// GetGeometryShaderSource returns the WGSL source of the demo's fill
// and stroke shader.
func GetGeometryShaderSource() string {
	return geometryShaderSource
}

// GetBackgroundShaderSource returns the WGSL source of the demo's
// background quad shader.
func GetBackgroundShaderSource() string {
	return backgroundShaderSource
}

// GetSVGShaderSource returns the WGSL source of the SVG renderer's
// shader.
func GetSVGShaderSource() string {
	return svgShaderSource
}
