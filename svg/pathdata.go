package svg

import (
	"fmt"
	"strconv"

	"github.com/gogpu/lyon"
)

// ParsePathData reads an SVG path "d" attribute. Supported commands
// are M, L, H, V, C, S, Q and Z in absolute and relative form, with
// implicit command repetition. Arcs and smooth quadratics are not
// supported and return an error.
func ParsePathData(d string) (*lyon.Path, error) {
	b := lyon.NewPathBuilder()
	sc := pathScanner{src: d}

	var cmd byte
	var prevCubicCtrl lyon.Point
	hasPrevCubicCtrl := false

	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}
		if c, ok := sc.command(); ok {
			cmd = c
		} else if cmd == 0 {
			return nil, fmt.Errorf("svg: path data must start with a command, got %q", d)
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("svg: path data has coordinates after close")
		}
		relative := cmd >= 'a'

		cur := b.Current()
		cubic := false
		switch cmd {
		case 'M', 'm':
			p, err := sc.point()
			if err != nil {
				return nil, err
			}
			b.Begin(resolve(p, cur, relative))
			// Further coordinate pairs continue the subpath as lines.
			if relative {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			p, err := sc.point()
			if err != nil {
				return nil, err
			}
			b.LineTo(resolve(p, cur, relative))
		case 'H', 'h':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			if relative {
				x += cur.X
			}
			b.LineTo(lyon.Pt(x, cur.Y))
		case 'V', 'v':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			if relative {
				y += cur.Y
			}
			b.LineTo(lyon.Pt(cur.X, y))
		case 'C', 'c':
			c1, err := sc.point()
			if err != nil {
				return nil, err
			}
			c2, err := sc.point()
			if err != nil {
				return nil, err
			}
			to, err := sc.point()
			if err != nil {
				return nil, err
			}
			c1, c2, to = resolve(c1, cur, relative), resolve(c2, cur, relative), resolve(to, cur, relative)
			b.CubicTo(c1, c2, to)
			prevCubicCtrl, cubic = c2, true
		case 'S', 's':
			c2, err := sc.point()
			if err != nil {
				return nil, err
			}
			to, err := sc.point()
			if err != nil {
				return nil, err
			}
			c2, to = resolve(c2, cur, relative), resolve(to, cur, relative)
			c1 := cur
			if hasPrevCubicCtrl {
				// Reflect the previous control point through the
				// current position.
				c1 = cur.Add(cur.Sub(prevCubicCtrl))
			}
			b.CubicTo(c1, c2, to)
			prevCubicCtrl, cubic = c2, true
		case 'Q', 'q':
			ctrl, err := sc.point()
			if err != nil {
				return nil, err
			}
			to, err := sc.point()
			if err != nil {
				return nil, err
			}
			b.QuadraticTo(resolve(ctrl, cur, relative), resolve(to, cur, relative))
		case 'Z', 'z':
			b.Close()
		default:
			return nil, fmt.Errorf("svg: unsupported path command %q", string(cmd))
		}
		hasPrevCubicCtrl = cubic
	}
	return b.End(), nil
}

func resolve(p, cur lyon.Point, relative bool) lyon.Point {
	if relative {
		return cur.Add(p)
	}
	return p
}

type pathScanner struct {
	src string
	pos int
}

func (sc *pathScanner) done() bool {
	return sc.pos >= len(sc.src)
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case ' ', ',', '\t', '\n', '\r':
			sc.pos++
		default:
			return
		}
	}
}

// command consumes the next byte if it is a command letter.
func (sc *pathScanner) command() (byte, bool) {
	if sc.done() {
		return 0, false
	}
	c := sc.src[sc.pos]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		sc.pos++
		return c, true
	}
	return 0, false
}

func (sc *pathScanner) point() (lyon.Point, error) {
	x, err := sc.number()
	if err != nil {
		return lyon.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return lyon.Point{}, err
	}
	return lyon.Pt(x, y), nil
}

// number scans one coordinate. A sign or a second decimal point ends
// the previous number, so minified data like "1.5.5" or "1-2" reads
// as two coordinates.
func (sc *pathScanner) number() (float32, error) {
	sc.skipSeparators()
	s := sc.src
	start := sc.pos
	i := start

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && isDigit(s[i]) {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("svg: path data: number expected at offset %d", start)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(s[start:i], 32)
	if err != nil {
		return 0, fmt.Errorf("svg: path data: %w", err)
	}
	sc.pos = i
	return float32(v), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
