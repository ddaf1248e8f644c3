package render

import (
	"strings"
	"testing"
)

func TestSVGSurface(t *testing.T) {
	s := NewSVG(WithSize(100, 100), WithBackground("white"))
	c := s.Viewport(0, 0, 1, 1)

	c.Point(0.5, 0.5, Style{Color: "red", Size: 3})
	c.Line(0, 0, 1, 1, Style{Color: "blue"})
	c.Polyline([]float64{0, 0.5, 1}, []float64{0, 1, 0}, Style{Color: "green"})

	out := string(s.Bytes())
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("not a complete SVG document")
	}
	if !strings.Contains(out, "circle") {
		t.Error("missing point primitive")
	}
	if !strings.Contains(out, "polyline") {
		t.Error("missing polyline primitive")
	}
}

func TestSVGViewportFlipsY(t *testing.T) {
	s := NewSVG(WithSize(100, 100), WithBackground(""))
	c := s.Viewport(0, 0, 1, 1)
	// Unit origin is bottom-left; device origin is top-left.
	c.Point(0, 0, Style{Size: 1})
	out := string(s.Bytes())
	if !strings.Contains(out, `cy="100"`) {
		t.Errorf("unit y=0 should land at device y=100:\n%s", out)
	}
}

func TestSVGBytesIdempotent(t *testing.T) {
	s := NewSVG()
	a := s.Bytes()
	b := s.Bytes()
	if string(a) != string(b) {
		t.Error("Bytes should be idempotent")
	}
}
