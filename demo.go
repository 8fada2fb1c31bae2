package lyon

import "math"

// Fixed primitive ids of the animated demo. The outline stroke owns
// id 0 and the main fill id 1; every higher slot is a decoration
// drawn by the instanced fill.
const (
	StrokePrimID = 0
	FillPrimID   = 1
)

// DemoInstances is the instance count of the demo's instanced fill
// draw: one instance per primitive slot above the stroke record.
const DemoInstances = DemoPrimitiveCount - 1

// SeedDemoPrimitives builds the demo's fully populated table: the
// outline stroke on top of the stack, the main fill just below it,
// and one decoration record per extra fill instance with cycling
// colors. Decoration translations stay zero until the first animated
// frame.
func SeedDemoPrimitives() *Table[Primitive] {
	tbl := NewSeededTable(DemoPrimitiveCount, DefaultPrimitive())

	*tbl.At(StrokePrimID) = Primitive{
		Color:  [4]float32{0, 0, 0, 1},
		ZIndex: DemoInstances + 2,
		Width:  1,
	}
	*tbl.At(FillPrimID) = Primitive{
		Color:  [4]float32{1, 1, 1, 1},
		ZIndex: DemoInstances + 1,
	}
	for id := uint32(FillPrimID + 1); id < DemoPrimitiveCount; id++ {
		i := float32(id)
		p := tbl.At(id)
		p.ZIndex = int32(id) + 1
		p.Color = [4]float32{
			mod1(0.1 * i),
			mod1(0.5 * i),
			mod1(0.9 * i),
			1,
		}
	}
	return tbl
}

// AnimateDemoPrimitives writes the frame's time-varying fields into
// the table: the scene's stroke width and a phase-shifted sine color
// on the outline stroke record, and per-id orbit translations on the
// decoration records.
func AnimateDemoPrimitives(tbl *Table[Primitive], s *SceneState) {
	fc := float32(s.FrameCount)

	stroke := tbl.At(StrokePrimID)
	stroke.Width = s.StrokeWidth
	stroke.Color = [4]float32{
		sin32(fc*0.008-1.6)*0.1 + 0.1,
		sin32(fc*0.005-1.6)*0.1 + 0.1,
		sin32(fc*0.01-1.6)*0.1 + 0.1,
		1,
	}

	for id := uint32(FillPrimID + 1); id < DemoPrimitiveCount; id++ {
		i := float32(id)
		tbl.At(id).Translate = [2]float32{
			sin32(fc*0.001*i) * (100 + i*10),
			sin32(fc*0.002*i) * (100 + i*10),
		}
	}
}

// Globals assembles the demo's per-frame uniform block. Resolution is
// the logical window size.
func (s *SceneState) Globals() Globals {
	return Globals{
		Resolution:   [2]float32{float32(s.WindowWidth), float32(s.WindowHeight)},
		ScrollOffset: [2]float32{s.Scroll.X, s.Scroll.Y},
		Zoom:         s.Zoom,
	}
}

// SVGGlobals assembles the SVG renderer's per-frame uniform block.
func (s *SceneState) SVGGlobals() SVGGlobals {
	return SVGGlobals{
		Zoom:        [2]float32{s.Zoom, s.Zoom},
		Pan:         [2]float32{s.Scroll.X, s.Scroll.Y},
		AspectRatio: float32(s.WindowWidth) / float32(s.WindowHeight),
	}
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func mod1(x float32) float32 {
	return float32(math.Mod(float64(x), 1))
}
