package svg

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/lyon"
)

func nearPoint(a, b lyon.Point, tol float32) bool {
	return float32(math.Abs(float64(a.X-b.X))) <= tol &&
		float32(math.Abs(float64(a.Y-b.Y))) <= tol
}

func TestMatrix_IdentityApply(t *testing.T) {
	p := lyon.Pt(3, -7)
	if got := Identity().Apply(p); got != p {
		t.Errorf("Identity().Apply(%v) = %v", p, got)
	}
}

func TestMatrix_MulOrder(t *testing.T) {
	translate := Matrix{A: 1, D: 1, E: 10}
	scale := Matrix{A: 2, D: 2}

	// m.Mul(o) applies o first: scale, then translate.
	m := translate.Mul(scale)
	if got, want := m.Apply(lyon.Pt(1, 1)), lyon.Pt(12, 2); got != want {
		t.Errorf("Apply = %v, want %v", got, want)
	}

	m = scale.Mul(translate)
	if got, want := m.Apply(lyon.Pt(1, 1)), lyon.Pt(22, 2); got != want {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestMatrix_Record(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	want := lyon.Transform{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	if got := m.Record(); got != want {
		t.Errorf("Record() = %v, want %v", got, want)
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name string
		attr string
		in   lyon.Point
		want lyon.Point
	}{
		{"empty list is identity", " ", lyon.Pt(4, 5), lyon.Pt(4, 5)},
		{"matrix", "matrix(2 0 0 2 10 20)", lyon.Pt(1, 1), lyon.Pt(12, 22)},
		{"translate one arg", "translate(5)", lyon.Pt(1, 1), lyon.Pt(6, 1)},
		{"translate two args", "translate(5, -3)", lyon.Pt(1, 1), lyon.Pt(6, -2)},
		{"scale one arg", "scale(3)", lyon.Pt(2, 2), lyon.Pt(6, 6)},
		{"scale two args", "scale(2 4)", lyon.Pt(1, 1), lyon.Pt(2, 4)},
		{"rotate", "rotate(90)", lyon.Pt(1, 0), lyon.Pt(0, 1)},
		{"rotate about center", "rotate(180 5 5)", lyon.Pt(0, 0), lyon.Pt(10, 10)},
		{"composed left to right", "translate(10) scale(2)", lyon.Pt(1, 1), lyon.Pt(12, 2)},
		{"comma separated functions", "translate(10),scale(2)", lyon.Pt(1, 1), lyon.Pt(12, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseTransform(tt.attr)
			if err != nil {
				t.Fatalf("ParseTransform(%q): %v", tt.attr, err)
			}
			if got := m.Apply(tt.in); !nearPoint(got, tt.want, 1e-5) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTransform_Errors(t *testing.T) {
	tests := []struct {
		name string
		attr string
		want string
	}{
		{"unsupported function", "skewX(10)", "unsupported transform"},
		{"missing parenthesis", "translate 10 20", "malformed transform"},
		{"wrong arity", "matrix(1 2 3)", "matrix wants 6 arguments"},
		{"bad number", "scale(two)", "transform scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransform(tt.attr)
			if err == nil {
				t.Fatalf("ParseTransform(%q) succeeded, want error", tt.attr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}
