// Package svg parses a small SVG subset into a renderable document
// tree: nested groups and paths with resolved transforms and
// presentation attributes. It covers what flat vector assets
// typically use; unsupported elements are skipped and unsupported
// paint falls back to a flat color.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/lyon"
)

// ViewBox is the document's declared coordinate window.
type ViewBox struct {
	MinX, MinY    float32
	Width, Height float32
}

// Document is a parsed SVG file.
type Document struct {
	ViewBox ViewBox
	Root    *Group
}

// Node is an element of the document tree, either a *Group or a
// *PathNode.
type Node interface {
	isNode()
}

// Group is a container element carrying a transform and inheritable
// style for its children.
type Group struct {
	Transform Matrix
	Style     Style
	Children  []Node
}

// PathNode is one renderable path element.
type PathNode struct {
	Transform Matrix
	Style     Style
	Path      *lyon.Path
}

func (*Group) isNode()    {}
func (*PathNode) isNode() {}

// Style holds an element's own presentation attributes. Nil fields
// inherit from the enclosing group.
type Style struct {
	Fill          *Paint
	Stroke        *Paint
	StrokeWidth   *float32
	FillOpacity   *float32
	StrokeOpacity *float32
}

type xmlElement struct {
	XMLName       xml.Name
	ViewBox       string       `xml:"viewBox,attr"`
	Width         string       `xml:"width,attr"`
	Height        string       `xml:"height,attr"`
	Transform     string       `xml:"transform,attr"`
	D             string       `xml:"d,attr"`
	Fill          string       `xml:"fill,attr"`
	Stroke        string       `xml:"stroke,attr"`
	StrokeWidth   string       `xml:"stroke-width,attr"`
	FillOpacity   string       `xml:"fill-opacity,attr"`
	StrokeOpacity string       `xml:"stroke-opacity,attr"`
	Children      []xmlElement `xml:",any"`
}

// Parse reads an SVG document.
func Parse(r io.Reader) (*Document, error) {
	var root xmlElement
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("svg: decode: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("svg: root element is <%s>, want <svg>", root.XMLName.Local)
	}

	vb, err := documentViewBox(root)
	if err != nil {
		return nil, err
	}
	group, err := buildGroup(root)
	if err != nil {
		return nil, err
	}
	return &Document{ViewBox: vb, Root: group}, nil
}

// ParseFile reads an SVG document from a file.
func ParseFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func documentViewBox(root xmlElement) (ViewBox, error) {
	if root.ViewBox != "" {
		return parseViewBox(root.ViewBox)
	}
	// No viewBox: fall back to the declared size at origin.
	if root.Width != "" && root.Height != "" {
		w, errW := parseLength(root.Width)
		h, errH := parseLength(root.Height)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return ViewBox{Width: w, Height: h}, nil
		}
	}
	return ViewBox{}, fmt.Errorf("svg: document has no usable viewBox")
}

func parseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("svg: viewBox %q: want 4 numbers", s)
	}
	var nums [4]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return ViewBox{}, fmt.Errorf("svg: viewBox %q: %w", s, err)
		}
		nums[i] = float32(v)
	}
	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("svg: viewBox %q: non-positive size", s)
	}
	return vb, nil
}

// parseLength reads a plain or px-suffixed length.
func parseLength(s string) (float32, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

func buildGroup(el xmlElement) (*Group, error) {
	transform, err := elementTransform(el)
	if err != nil {
		return nil, err
	}
	style, err := elementStyle(el)
	if err != nil {
		return nil, err
	}
	g := &Group{Transform: transform, Style: style}

	for _, child := range el.Children {
		switch child.XMLName.Local {
		case "g":
			sub, err := buildGroup(child)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, sub)
		case "path":
			node, err := buildPath(child)
			if err != nil {
				return nil, err
			}
			if node != nil {
				g.Children = append(g.Children, node)
			}
		default:
			lyon.Logger().Debug("skipping unsupported element", "element", child.XMLName.Local)
		}
	}
	return g, nil
}

func buildPath(el xmlElement) (*PathNode, error) {
	if strings.TrimSpace(el.D) == "" {
		return nil, nil
	}
	path, err := ParsePathData(el.D)
	if err != nil {
		return nil, err
	}
	transform, err := elementTransform(el)
	if err != nil {
		return nil, err
	}
	style, err := elementStyle(el)
	if err != nil {
		return nil, err
	}
	return &PathNode{Transform: transform, Style: style, Path: path}, nil
}

func elementTransform(el xmlElement) (Matrix, error) {
	if strings.TrimSpace(el.Transform) == "" {
		return Identity(), nil
	}
	return ParseTransform(el.Transform)
}

func elementStyle(el xmlElement) (Style, error) {
	var st Style
	if el.Fill != "" {
		p := ParsePaint(el.Fill)
		st.Fill = &p
	}
	if el.Stroke != "" {
		p := ParsePaint(el.Stroke)
		st.Stroke = &p
	}
	var err error
	if st.StrokeWidth, err = optionalNumber(el.StrokeWidth, "stroke-width"); err != nil {
		return Style{}, err
	}
	if st.FillOpacity, err = optionalNumber(el.FillOpacity, "fill-opacity"); err != nil {
		return Style{}, err
	}
	if st.StrokeOpacity, err = optionalNumber(el.StrokeOpacity, "stroke-opacity"); err != nil {
		return Style{}, err
	}
	return st, nil
}

func optionalNumber(s, attr string) (*float32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return nil, fmt.Errorf("svg: %s %q: %w", attr, s, err)
	}
	f := float32(v)
	return &f, nil
}

// PathInfo is one renderable path with its transform resolved to the
// document root and its style fully inherited.
type PathInfo struct {
	Path          *lyon.Path
	Transform     Matrix
	Fill          Paint
	Stroke        Paint
	StrokeWidth   float32
	FillOpacity   float32
	StrokeOpacity float32
}

// Walk visits every path in document order. Returning an error from
// visit stops the traversal.
func (d *Document) Walk(visit func(PathInfo) error) error {
	return walkGroup(d.Root, Identity(), rootStyle(), visit)
}

type inheritedStyle struct {
	fill          Paint
	stroke        Paint
	strokeWidth   float32
	fillOpacity   float32
	strokeOpacity float32
}

// rootStyle is the SVG initial paint state: black fill, no stroke.
func rootStyle() inheritedStyle {
	return inheritedStyle{
		fill:          Black(),
		stroke:        Paint{None: true},
		strokeWidth:   1,
		fillOpacity:   1,
		strokeOpacity: 1,
	}
}

func (in inheritedStyle) apply(st Style) inheritedStyle {
	if st.Fill != nil {
		in.fill = *st.Fill
	}
	if st.Stroke != nil {
		in.stroke = *st.Stroke
	}
	if st.StrokeWidth != nil {
		in.strokeWidth = *st.StrokeWidth
	}
	if st.FillOpacity != nil {
		in.fillOpacity = *st.FillOpacity
	}
	if st.StrokeOpacity != nil {
		in.strokeOpacity = *st.StrokeOpacity
	}
	return in
}

func walkGroup(g *Group, parent Matrix, in inheritedStyle, visit func(PathInfo) error) error {
	m := parent.Mul(g.Transform)
	in = in.apply(g.Style)

	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			if err := walkGroup(child, m, in, visit); err != nil {
				return err
			}
		case *PathNode:
			local := in.apply(child.Style)
			info := PathInfo{
				Path:          child.Path,
				Transform:     m.Mul(child.Transform),
				Fill:          local.fill,
				Stroke:        local.stroke,
				StrokeWidth:   local.strokeWidth,
				FillOpacity:   local.fillOpacity,
				StrokeOpacity: local.strokeOpacity,
			}
			if err := visit(info); err != nil {
				return err
			}
		}
	}
	return nil
}
