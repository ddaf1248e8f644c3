package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"
)

// SVGOption configures an SVG surface.
type SVGOption func(*SVGSurface)

// WithSize sets the surface size in pixels.
func WithSize(width, height int) SVGOption {
	return func(s *SVGSurface) {
		s.width, s.height = width, height
	}
}

// WithBackground sets the background fill color.
func WithBackground(color string) SVGOption {
	return func(s *SVGSurface) {
		s.background = color
	}
}

// SVGSurface renders primitives into an SVG document.
type SVGSurface struct {
	buf        bytes.Buffer
	canvas     *svg.SVG
	width      int
	height     int
	background string
	closed     bool
}

// NewSVG creates an SVG surface. The default size is 800x600 with a
// white background.
func NewSVG(opts ...SVGOption) *SVGSurface {
	s := &SVGSurface{width: 800, height: 600, background: "white"}
	for _, opt := range opts {
		opt(s)
	}
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(s.width, s.height)
	if s.background != "" {
		s.canvas.Rect(0, 0, s.width, s.height, "fill:"+s.background)
	}
	return s
}

// Viewport returns a canvas covering the given fraction of the image,
// origin bottom-left.
func (s *SVGSurface) Viewport(x, y, w, h float64) Canvas {
	return &svgViewport{
		surface: s,
		px:      x * float64(s.width),
		py:      y * float64(s.height),
		pw:      w * float64(s.width),
		ph:      h * float64(s.height),
	}
}

// Bytes closes the document and returns the SVG bytes. Further drawing
// is a no-op.
func (s *SVGSurface) Bytes() []byte {
	if !s.closed {
		s.canvas.End()
		s.closed = true
	}
	return s.buf.Bytes()
}

type svgViewport struct {
	surface *SVGSurface
	px, py  float64 // bottom-left corner in pixels (bottom-up)
	pw, ph  float64
}

// device converts unit coordinates to SVG pixel coordinates (top-down y).
func (v *svgViewport) device(x, y float64) (int, int) {
	dx := v.px + x*v.pw
	dy := float64(v.surface.height) - (v.py + y*v.ph)
	return int(dx + 0.5), int(dy + 0.5)
}

func (v *svgViewport) Point(x, y float64, s Style) {
	dx, dy := v.device(x, y)
	r := int(s.Size + 0.5)
	if r < 1 {
		r = 2
	}
	v.surface.canvas.Circle(dx, dy, r, styleString(s, true))
}

func (v *svgViewport) Line(x1, y1, x2, y2 float64, s Style) {
	dx1, dy1 := v.device(x1, y1)
	dx2, dy2 := v.device(x2, y2)
	v.surface.canvas.Line(dx1, dy1, dx2, dy2, styleString(s, false))
}

func (v *svgViewport) Rect(x1, y1, x2, y2 float64, s Style) {
	dx1, dy1 := v.device(x1, y1)
	dx2, dy2 := v.device(x2, y2)
	if dx2 < dx1 {
		dx1, dx2 = dx2, dx1
	}
	if dy2 < dy1 {
		dy1, dy2 = dy2, dy1
	}
	v.surface.canvas.Rect(dx1, dy1, dx2-dx1, dy2-dy1, styleString(s, true))
}

func (v *svgViewport) Polyline(xs, ys []float64, s Style) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	dxs := make([]int, len(xs))
	dys := make([]int, len(ys))
	for i := range xs {
		dxs[i], dys[i] = v.device(xs[i], ys[i])
	}
	v.surface.canvas.Polyline(dxs, dys, styleString(s, false)+";fill:none")
}

func (v *svgViewport) Polygon(xs, ys []float64, s Style) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	dxs := make([]int, len(xs))
	dys := make([]int, len(ys))
	for i := range xs {
		dxs[i], dys[i] = v.device(xs[i], ys[i])
	}
	v.surface.canvas.Polygon(dxs, dys, styleString(s, true))
}

func (v *svgViewport) Text(x, y float64, text string, s Style) {
	dx, dy := v.device(x, y)
	size := s.Size
	if size <= 0 {
		size = 11
	}
	color := s.Color
	if color == "" {
		color = "black"
	}
	v.surface.canvas.Text(dx, dy, text,
		fmt.Sprintf("font-size:%vpx;fill:%s;font-family:sans-serif", size, color))
}

// styleString encodes a Style in SVG attribute syntax. filled selects
// fill-oriented defaults for area primitives.
func styleString(s Style, filled bool) string {
	color := s.Color
	if color == "" {
		color = "black"
	}
	width := s.Size
	if width <= 0 {
		width = 1
	}
	opacity := s.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	if filled {
		fill := s.Fill
		if fill == "" {
			fill = color
		}
		return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1;opacity:%v", fill, color, opacity)
	}
	return fmt.Sprintf("stroke:%s;stroke-width:%v;opacity:%v", color, width, opacity)
}
