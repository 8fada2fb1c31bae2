package lyon

// Key identifies the keyboard commands the demos react to. Host
// window keys are mapped onto these before entering the state
// machine.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyP
	KeyW
	KeyB
	KeyA
	KeyZ
)

// Keymap selects the keyboard command table a scene uses.
type Keymap int

const (
	// KeymapDemo is the animated demo's table: zoom, scroll, stroke
	// width and the display toggles.
	KeymapDemo Keymap = iota
	// KeymapSVG is the SVG viewer's table: zoom, pan and the
	// wireframe toggle. Vertical panning is inverted relative to the
	// demo table.
	KeymapSVG
)

// Event is a discrete input notification folded into a SceneState.
type Event interface {
	isEvent()
}

// KeyEvent reports a key press.
type KeyEvent struct {
	Key Key
}

// CursorEvent reports the cursor position in window coordinates.
type CursorEvent struct {
	X, Y float32
}

// ResizeEvent reports a new window size.
type ResizeEvent struct {
	Width, Height uint32
}

// CloseEvent reports that the host window is closing. It is terminal.
type CloseEvent struct{}

// DrainedEvent is the end-of-tick sentinel: the host has no more
// input queued for this tick.
type DrainedEvent struct{}

func (KeyEvent) isEvent()     {}
func (CursorEvent) isEvent()  {}
func (ResizeEvent) isEvent()  {}
func (CloseEvent) isEvent()   {}
func (DrainedEvent) isEvent() {}

// Status is the state machine's verdict after folding an event.
type Status int

const (
	// StatusPoll means more input may be pending; do not render yet.
	StatusPoll Status = iota
	// StatusRender means this tick's input is drained and exactly
	// one frame should render.
	StatusRender
	// StatusExit is terminal. No further frames may render.
	StatusExit
)

// Smoothing holds the exponential smoothing divisors applied once per
// render tick as current += (target - current) / k. Larger divisors
// converge slower. Divisors must be positive; non-positive values
// fall back to the defaults.
type Smoothing struct {
	Zoom        float32
	Scroll      float32
	StrokeWidth float32
}

// DefaultSmoothing returns the demo's tuning.
func DefaultSmoothing() Smoothing {
	return Smoothing{Zoom: 3, Scroll: 3, StrokeWidth: 5}
}

func (s Smoothing) normalized() Smoothing {
	def := DefaultSmoothing()
	if !(s.Zoom > 0) {
		s.Zoom = def.Zoom
	}
	if !(s.Scroll > 0) {
		s.Scroll = def.Scroll
	}
	if !(s.StrokeWidth > 0) {
		s.StrokeWidth = def.StrokeWidth
	}
	return s
}

// SceneOptions configures a scene state machine.
type SceneOptions struct {
	Keymap    Keymap
	Smoothing Smoothing

	// LegacyPanSpeed reproduces the SVG viewer's historical pan
	// scaling, dividing the arrow-key step by the pan coordinate
	// itself instead of the zoom level. A zero coordinate then
	// produces a non-finite step, so the default divides by zoom.
	LegacyPanSpeed bool
}

// DefaultSceneOptions returns the animated demo's configuration.
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{Keymap: KeymapDemo, Smoothing: DefaultSmoothing()}
}

// Initial window extent shared by both demos.
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 800
)

// SceneState carries everything the render loop needs between ticks.
// A single goroutine owns it: events fold in through Apply, the per
// frame code reads the smoothed values directly and calls
// AdvanceFrame when a frame completes.
type SceneState struct {
	Zoom       float32
	TargetZoom float32

	// Scroll is the view offset. The SVG viewer reads it as pan.
	Scroll       Point
	TargetScroll Point

	StrokeWidth       float32
	TargetStrokeWidth float32

	Wireframe      bool
	ShowPoints     bool
	DrawBackground bool

	Cursor       Point
	WindowWidth  uint32
	WindowHeight uint32

	// FrameCount drives the primitive animation. It accumulates in
	// float64 so additions of 1.0 stay exact far beyond any
	// realistic session length.
	FrameCount float64

	opts        SceneOptions
	sizeChanged bool
	exited      bool
}

// NewSceneState creates a scene with the given options and an
// unconfigured view. The size-changed flag starts set so the first
// render tick builds the presentation surface.
func NewSceneState(opts SceneOptions) *SceneState {
	opts.Smoothing = opts.Smoothing.normalized()
	return &SceneState{
		opts:        opts,
		sizeChanged: true,
	}
}

// NewDemoScene returns the animated demo's startup view: zoomed onto
// the logo with the background enabled.
func NewDemoScene(opts SceneOptions) *SceneState {
	s := NewSceneState(opts)
	s.Zoom, s.TargetZoom = 5, 5
	s.Scroll = Pt(70, 70)
	s.TargetScroll = s.Scroll
	s.StrokeWidth, s.TargetStrokeWidth = 1, 1
	s.DrawBackground = true
	s.WindowWidth = DefaultWindowWidth
	s.WindowHeight = DefaultWindowHeight
	return s
}

// NewSVGScene returns a scene framing the given view box: panned to
// its center and zoomed so the longer side spans clip space. The
// window keeps the default width with its height following the view
// box aspect.
func NewSVGScene(vbWidth, vbHeight float32, opts SceneOptions) *SceneState {
	s := NewSceneState(opts)

	scale := vbWidth / vbHeight
	w := float32(DefaultWindowWidth)
	var h float32
	if scale < 1 {
		h = w * scale
	} else {
		h = w / scale
	}
	s.WindowWidth = uint32(w)
	s.WindowHeight = uint32(h)

	s.TargetScroll = Pt(-vbWidth/2, -vbHeight/2)
	s.Scroll = s.TargetScroll
	zoom := 2 / max(vbWidth, vbHeight)
	s.Zoom, s.TargetZoom = zoom, zoom
	return s
}

// Apply folds one event into the scene and reports whether the loop
// should keep polling, render a frame, or stop. Once a terminal
// event has been applied every subsequent call returns StatusExit.
func (s *SceneState) Apply(ev Event) Status {
	if s.exited {
		return StatusExit
	}
	switch ev := ev.(type) {
	case KeyEvent:
		return s.applyKey(ev.Key)
	case CursorEvent:
		s.Cursor = Pt(ev.X, ev.Y)
	case ResizeEvent:
		s.WindowWidth = ev.Width
		s.WindowHeight = ev.Height
		s.sizeChanged = true
	case CloseEvent:
		s.exited = true
		return StatusExit
	case DrainedEvent:
		s.smooth()
		return StatusRender
	}
	return StatusPoll
}

func (s *SceneState) applyKey(key Key) Status {
	if key == KeyEscape {
		s.exited = true
		return StatusExit
	}
	switch s.opts.Keymap {
	case KeymapSVG:
		s.applySVGKey(key)
	default:
		s.applyDemoKey(key)
	}
	return StatusPoll
}

func (s *SceneState) applyDemoKey(key Key) {
	switch key {
	case KeyPageUp:
		s.TargetZoom *= 1.25
	case KeyPageDown:
		s.TargetZoom *= 0.8
	case KeyLeft:
		s.TargetScroll.X -= 50 / s.TargetZoom
	case KeyRight:
		s.TargetScroll.X += 50 / s.TargetZoom
	case KeyUp:
		s.TargetScroll.Y -= 50 / s.TargetZoom
	case KeyDown:
		s.TargetScroll.Y += 50 / s.TargetZoom
	case KeyP:
		s.ShowPoints = !s.ShowPoints
	case KeyW:
		s.Wireframe = !s.Wireframe
	case KeyB:
		s.DrawBackground = !s.DrawBackground
	case KeyA:
		s.TargetStrokeWidth /= 0.8
	case KeyZ:
		s.TargetStrokeWidth *= 0.8
	}
}

func (s *SceneState) applySVGKey(key Key) {
	switch key {
	case KeyPageUp:
		s.TargetZoom *= 1.25
	case KeyPageDown:
		s.TargetZoom *= 0.8
	case KeyLeft:
		s.TargetScroll.X -= s.panStep(s.TargetScroll.X)
	case KeyRight:
		s.TargetScroll.X += s.panStep(s.TargetScroll.X)
	case KeyUp:
		s.TargetScroll.Y += s.panStep(s.TargetScroll.Y)
	case KeyDown:
		s.TargetScroll.Y -= s.panStep(s.TargetScroll.Y)
	case KeyW:
		s.Wireframe = !s.Wireframe
	}
}

func (s *SceneState) panStep(coord float32) float32 {
	if s.opts.LegacyPanSpeed {
		return 50 / coord
	}
	return 50 / s.TargetZoom
}

func (s *SceneState) smooth() {
	k := s.opts.Smoothing
	s.Zoom += (s.TargetZoom - s.Zoom) / k.Zoom
	s.Scroll.X += (s.TargetScroll.X - s.Scroll.X) / k.Scroll
	s.Scroll.Y += (s.TargetScroll.Y - s.Scroll.Y) / k.Scroll
	s.StrokeWidth += (s.TargetStrokeWidth - s.StrokeWidth) / k.StrokeWidth
}

// ConsumeResize reports a pending size change at most once per
// render tick. Repeated resizes between ticks collapse into a single
// consumption.
func (s *SceneState) ConsumeResize() (w, h uint32, ok bool) {
	if !s.sizeChanged {
		return 0, 0, false
	}
	s.sizeChanged = false
	return s.WindowWidth, s.WindowHeight, true
}

// Exited reports whether a terminal event has been applied.
func (s *SceneState) Exited() bool {
	return s.exited
}

// AdvanceFrame increments the frame counter after a completed frame.
func (s *SceneState) AdvanceFrame() {
	s.FrameCount++
}
