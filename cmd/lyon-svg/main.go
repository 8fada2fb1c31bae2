// Command lyon-svg renders an SVG file in a window.
//
// The document is parsed and tessellated once at startup; every path
// becomes a run of triangles tagged with a primitive id, so the whole
// scene draws as a single indexed call. Per frame only the view
// globals (zoom, pan, aspect ratio) are re-staged.
//
// Keys: PageUp/PageDown zoom, arrow keys pan, W toggles wireframe,
// Escape quits.
//
// Usage:
//
//	lyon-svg [-m N] [-config FILE] input.svg
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/lyon"
	"github.com/gogpu/lyon/internal/appconfig"
	"github.com/gogpu/lyon/internal/gpu"
	"github.com/gogpu/lyon/svg"
)

func main() {
	var msaa uint
	flag.UintVar(&msaa, "m", 0, "MSAA sample count: 1, 2, 4 or 8")
	flag.UintVar(&msaa, "msaa", 0, "MSAA sample count (alias for -m)")
	configPath := flag.String("config", "", "optional YAML tuning file")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lyon-svg [flags] input.svg")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	lyon.SetLogger(logger)

	samples := uint32(msaa)
	if samples == 0 {
		samples = cfg.Samples
	}
	switch samples {
	case 1, 2, 4, 8:
	default:
		fmt.Fprintf(os.Stderr, "lyon-svg: invalid MSAA sample count %d: want 1, 2, 4 or 8\n", samples)
		os.Exit(2)
	}

	doc, err := svg.ParseFile(input)
	if err != nil {
		logger.Error("parse svg", "file", input, "error", err)
		os.Exit(1)
	}
	scene, err := svg.BuildScene(doc, svg.BuildOptions{Tolerance: cfg.Tolerance})
	if err != nil {
		logger.Error("build scene", "file", input, "error", err)
		os.Exit(1)
	}
	logger.Info("svg tessellated",
		"file", input,
		"vertices", scene.Mesh.VertexCount(),
		"indices", scene.Mesh.IndexCount(),
		"primitives", scene.Primitives.Len(),
		"transforms", scene.Transforms.Len())

	state := lyon.NewSVGScene(scene.ViewBox.Width, scene.ViewBox.Height, lyon.SceneOptions{
		Keymap:    lyon.KeymapSVG,
		Smoothing: cfg.Smoothing(lyon.DefaultSmoothing()),
	})
	state.WindowWidth, state.WindowHeight = cfg.WindowSizeOrDefault(state.WindowWidth, state.WindowHeight)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("lyon svg: "+filepath.Base(input)).
		WithSize(int(state.WindowWidth), int(state.WindowHeight)).
		WithContinuousRender(true))

	var (
		device   *gpu.Device
		renderer *gpu.SVGRenderer
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if state.Exited() {
			return
		}
		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			dev, err := gpu.FromProvider(provider)
			if err != nil {
				logger.Error("borrow gpu device", "error", err)
				app.Quit()
				return
			}
			device = dev
			renderer = gpu.NewSVGRenderer(device.Handle, device.Queue, samples)
			renderer.SetClearColor(cfg.ClearColorOrDefault())
			if err := renderer.Prepare(scene); err != nil {
				logger.Error("prepare renderer", "error", err)
				app.Quit()
				return
			}
		}

		sw, sh := dc.SurfaceSize()
		w, h := uint32(sw), uint32(sh)
		if w == 0 || h == 0 {
			return
		}
		if w != state.WindowWidth || h != state.WindowHeight {
			state.Apply(lyon.ResizeEvent{Width: w, Height: h})
		}
		if state.Apply(lyon.DrainedEvent{}) != lyon.StatusRender {
			return
		}
		if rw, rh, ok := state.ConsumeResize(); ok {
			logger.Debug("window resized", "width", rw, "height", rh)
		}

		view, err := gpu.SurfaceView(dc.SurfaceView())
		if err != nil {
			logger.Error("surface view", "error", err)
			app.Quit()
			return
		}
		if err := renderer.RenderFrame(view, w, h, state); err != nil {
			logger.Error("render frame", "error", err)
			app.Quit()
			return
		}
		state.AdvanceFrame()
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if state.Apply(lyon.KeyEvent{Key: mapKey(key)}) == lyon.StatusExit {
			app.Quit()
		}
	})

	app.OnClose(func() {
		state.Apply(lyon.CloseEvent{})
		if renderer != nil {
			renderer.Destroy()
		}
		if device != nil {
			device.Close()
		}
	})

	if err := app.Run(); err != nil {
		logger.Error("run", "error", err)
		os.Exit(1)
	}
}

// mapKey translates host window keys onto the scene's command set.
// Keys outside the SVG keymap fold in as no-ops.
func mapKey(key gpucontext.Key) lyon.Key {
	switch key {
	case gpucontext.KeyEscape:
		return lyon.KeyEscape
	case gpucontext.KeyPageUp:
		return lyon.KeyPageUp
	case gpucontext.KeyPageDown:
		return lyon.KeyPageDown
	case gpucontext.KeyLeft:
		return lyon.KeyLeft
	case gpucontext.KeyRight:
		return lyon.KeyRight
	case gpucontext.KeyUp:
		return lyon.KeyUp
	case gpucontext.KeyDown:
		return lyon.KeyDown
	case gpucontext.KeyW:
		return lyon.KeyW
	default:
		return lyon.KeyUnknown
	}
}
