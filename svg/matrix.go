package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/lyon"
)

// Matrix is a 2x3 affine transform in SVG order:
//
//	| A C E |
//	| B D F |
type Matrix struct {
	A, B, C, D, E, F float32
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul composes two transforms. The result applies o first, then m,
// matching nested SVG elements where the parent transform wraps the
// child's.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p lyon.Point) lyon.Point {
	return lyon.Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Record converts the matrix to the GPU transform layout.
func (m Matrix) Record() lyon.Transform {
	return lyon.Transform{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}
}

// ParseTransform reads an SVG transform attribute. It understands
// matrix, translate, scale and rotate; other functions are an error.
func ParseTransform(s string) (Matrix, error) {
	m := Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		close := strings.IndexByte(rest, ')')
		if open < 0 || close < open {
			return Matrix{}, fmt.Errorf("svg: malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : close])
		if err != nil {
			return Matrix{}, fmt.Errorf("svg: transform %s: %w", name, err)
		}
		step, err := transformFunc(name, args)
		if err != nil {
			return Matrix{}, err
		}
		m = m.Mul(step)
		rest = strings.TrimLeft(rest[close+1:], " \t\n,")
	}
	return m, nil
}

func transformFunc(name string, args []float32) (Matrix, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return Matrix{}, fmt.Errorf("svg: matrix wants 6 arguments, got %d", len(args))
		}
		return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return Matrix{A: 1, D: 1, E: args[0]}, nil
		case 2:
			return Matrix{A: 1, D: 1, E: args[0], F: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("svg: translate wants 1 or 2 arguments, got %d", len(args))
	case "scale":
		switch len(args) {
		case 1:
			return Matrix{A: args[0], D: args[0]}, nil
		case 2:
			return Matrix{A: args[0], D: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("svg: scale wants 1 or 2 arguments, got %d", len(args))
	case "rotate":
		if len(args) != 1 && len(args) != 3 {
			return Matrix{}, fmt.Errorf("svg: rotate wants 1 or 3 arguments, got %d", len(args))
		}
		rad := float64(args[0]) * math.Pi / 180
		sin, cos := float32(math.Sin(rad)), float32(math.Cos(rad))
		r := Matrix{A: cos, B: sin, C: -sin, D: cos}
		if len(args) == 1 {
			return r, nil
		}
		cx, cy := args[1], args[2]
		to := Matrix{A: 1, D: 1, E: cx, F: cy}
		back := Matrix{A: 1, D: 1, E: -cx, F: -cy}
		return to.Mul(r).Mul(back), nil
	}
	return Matrix{}, fmt.Errorf("svg: unsupported transform %q", name)
}

func parseNumberList(s string) ([]float32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}
