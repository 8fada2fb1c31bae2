// Command lyon-demo renders the animated logo scene in a window.
//
// The logo is tessellated once into a fill mesh and a stroke mesh and
// drawn over a procedural grid background. Per frame only the uniform
// tables are re-staged, so the animation runs off a fixed vertex
// buffer.
//
// Keys: PageUp/PageDown zoom, arrow keys scroll, A/Z widen and narrow
// the stroke, B toggles the background, W toggles wireframe, Escape
// quits.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/lyon"
	"github.com/gogpu/lyon/internal/appconfig"
	"github.com/gogpu/lyon/internal/gpu"
	"github.com/gogpu/lyon/tess"
)

// demoTolerance is the flattening tolerance for the logo path, chosen
// so curve facets stay invisible at the startup zoom.
const demoTolerance = 0.02

func main() {
	configPath := flag.String("config", "", "optional YAML tuning file")
	flag.Parse()

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	lyon.SetLogger(logger)

	mesh, fill, stroke, err := buildLogoMesh(cfg.ToleranceOrDefault(demoTolerance))
	if err != nil {
		logger.Error("tessellate logo", "error", err)
		os.Exit(1)
	}
	background, err := buildBackground()
	if err != nil {
		logger.Error("build background", "error", err)
		os.Exit(1)
	}
	logger.Info("logo tessellated",
		"vertices", mesh.VertexCount(),
		"fill_indices", fill.Len(),
		"stroke_indices", stroke.Len())

	prims := lyon.SeedDemoPrimitives()
	state := lyon.NewDemoScene(lyon.SceneOptions{
		Keymap:    lyon.KeymapDemo,
		Smoothing: cfg.Smoothing(lyon.DefaultSmoothing()),
	})
	state.WindowWidth, state.WindowHeight = cfg.WindowSizeOrDefault(state.WindowWidth, state.WindowHeight)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("lyon demo").
		WithSize(int(state.WindowWidth), int(state.WindowHeight)).
		WithContinuousRender(true))

	var (
		device   *gpu.Device
		renderer *gpu.SceneRenderer
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
			renderer = gpu.NewSceneRenderer(device.Handle, device.Queue)
			renderer.SetClearColor(cfg.ClearColorOrDefault())
			if err := renderer.Prepare(&mesh, &background, fill, stroke); err != nil {
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

		lyon.AnimateDemoPrimitives(prims, state)

		view, err := gpu.SurfaceView(dc.SurfaceView())
		if err != nil {
			logger.Error("surface view", "error", err)
			app.Quit()
			return
		}
		if err := renderer.RenderFrame(view, w, h, state, prims); err != nil {
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

// buildLogoMesh tessellates the logo fill and stroke into one mesh and
// returns the index ranges of each pass.
func buildLogoMesh(tolerance float32) (mesh lyon.Geometry[lyon.Vertex], fill, stroke lyon.Range, err error) {
	path := lyon.LogoPath()

	fillOpts := tess.FillOptions{Tolerance: tolerance}
	if _, err = tess.FillPath(path, fillOpts, lyon.WithID(lyon.FillPrimID), &mesh); err != nil {
		return mesh, fill, stroke, err
	}
	fillEnd := mesh.Mark()

	strokeOpts := tess.StrokeOptions{Tolerance: tolerance}
	if _, err = tess.StrokePath(path, strokeOpts, lyon.WithID(lyon.StrokePrimID), &mesh); err != nil {
		return mesh, fill, stroke, err
	}

	fill = lyon.Range{Start: 0, End: fillEnd}
	stroke = lyon.Range{Start: fillEnd, End: mesh.Mark()}
	return mesh, fill, stroke, nil
}

// buildBackground builds the fullscreen quad the grid shader runs on.
// Positions are in clip space.
func buildBackground() (lyon.Geometry[lyon.BgVertex], error) {
	var bg lyon.Geometry[lyon.BgVertex]
	ctor := lyon.BgVertexConstructor{}

	corners := []lyon.Point{
		lyon.Pt(-1, -1),
		lyon.Pt(1, -1),
		lyon.Pt(1, 1),
		lyon.Pt(-1, 1),
	}
	var ids [4]uint16
	for i, p := range corners {
		v, err := ctor.NewFillVertex(p)
		if err != nil {
			return bg, err
		}
		if ids[i], err = bg.AddVertex(v); err != nil {
			return bg, err
		}
	}
	bg.AddTriangle(ids[0], ids[1], ids[2])
	bg.AddTriangle(ids[0], ids[2], ids[3])
	return bg, nil
}

// mapKey translates host window keys onto the scene's command set.
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
	case gpucontext.KeyP:
		return lyon.KeyP
	case gpucontext.KeyW:
		return lyon.KeyW
	case gpucontext.KeyB:
		return lyon.KeyB
	case gpucontext.KeyA:
		return lyon.KeyA
	case gpucontext.KeyZ:
		return lyon.KeyZ
	default:
		return lyon.KeyUnknown
	}
}
