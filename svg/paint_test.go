package svg

import (
	"image/color"
	"testing"

	"github.com/gogpu/lyon"
)

func TestParsePaint(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Paint
	}{
		{"none", "none", Paint{None: true}},
		{"none mixed case", "None", Paint{None: true}},
		{"short hex", "#fa0", Paint{Color: color.RGBA{R: 255, G: 170, B: 0, A: 255}}},
		{"long hex", "#ff8000", Paint{Color: color.RGBA{R: 255, G: 128, B: 0, A: 255}}},
		{"uppercase hex", "#FF8000", Paint{Color: color.RGBA{R: 255, G: 128, B: 0, A: 255}}},
		{"rgb function", "rgb(10, 20, 30)", Paint{Color: color.RGBA{R: 10, G: 20, B: 30, A: 255}}},
		{"named", "red", Paint{Color: color.RGBA{R: 255, A: 255}}},
		{"named mixed case", "Blue", Paint{Color: color.RGBA{B: 255, A: 255}}},
		{"whitespace trimmed", "  red  ", Paint{Color: color.RGBA{R: 255, A: 255}}},
		{"gradient reference falls back", "url(#grad)", Black()},
		{"bad hex falls back", "#zzz", Black()},
		{"bad rgb falls back", "rgb(300, 0, 0)", Black()},
		{"garbage falls back", "shiny", Black()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePaint(tt.in); got != tt.want {
				t.Errorf("ParsePaint(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaint_Packed(t *testing.T) {
	red := Paint{Color: color.RGBA{R: 255, A: 255}}

	if got, want := red.Packed(1), lyon.PackColor(255, 0, 0, 255); got != want {
		t.Errorf("Packed(1) = %#08x, want %#08x", uint32(got), uint32(want))
	}
	// Alpha truncates: 255 * 0.5 is 127.5.
	if got, want := red.Packed(0.5), lyon.PackColor(255, 0, 0, 127); got != want {
		t.Errorf("Packed(0.5) = %#08x, want %#08x", uint32(got), uint32(want))
	}
	if got, want := red.Packed(-1), lyon.PackColor(255, 0, 0, 0); got != want {
		t.Errorf("Packed(-1) = %#08x, want %#08x", uint32(got), uint32(want))
	}
	if got, want := red.Packed(2), lyon.PackColor(255, 0, 0, 255); got != want {
		t.Errorf("Packed(2) = %#08x, want %#08x", uint32(got), uint32(want))
	}
	if got := (Paint{None: true}).Packed(1); got != 0 {
		t.Errorf("none Packed = %#08x, want 0", uint32(got))
	}
}
