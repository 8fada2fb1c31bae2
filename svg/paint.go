package svg

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/lyon"
)

// Paint is a resolved SVG paint: either nothing or a flat color.
// Gradients and pattern references resolve to black.
type Paint struct {
	None  bool
	Color color.RGBA
}

// Black returns opaque black, the SVG initial fill.
func Black() Paint {
	return Paint{Color: color.RGBA{A: 255}}
}

// Packed converts the paint to the GPU byte layout, scaling alpha by
// the given opacity. A "none" paint packs as transparent black.
func (p Paint) Packed(opacity float32) lyon.PackedColor {
	if p.None {
		return 0
	}
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	a := uint8(float32(p.Color.A) * opacity)
	return lyon.PackColor(p.Color.R, p.Color.G, p.Color.B, a)
}

// ParsePaint reads an SVG paint value: "none", #rgb and #rrggbb hex,
// rgb(r,g,b), or a named color. Anything else, gradients included,
// falls back to black.
func ParsePaint(s string) Paint {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, "none"):
		return Paint{None: true}
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHexColor(s[1:]); ok {
			return Paint{Color: c}
		}
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		if c, ok := parseRGBColor(s[4 : len(s)-1]); ok {
			return Paint{Color: c}
		}
	default:
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return Paint{Color: c}
		}
	}
	lyon.Logger().Debug("unsupported paint, using black", "paint", s)
	return Black()
}

func parseHexColor(hex string) (color.RGBA, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	switch len(hex) {
	case 3:
		// Each nibble doubles: #fa0 is #ffaa00.
		r := uint8(v >> 8 & 0xF)
		g := uint8(v >> 4 & 0xF)
		b := uint8(v & 0xF)
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}, true
	}
	return color.RGBA{}, false
}

func parseRGBColor(args string) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, false
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, true
}
