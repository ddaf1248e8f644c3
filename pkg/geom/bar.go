package geom

import (
	"math"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/position"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/stat"
	"github.com/gplotdev/gplot/pkg/table"
)

// BarGeom draws one rectangle per row, from the baseline to y.
type BarGeom struct {
	common
}

// Bar creates a bar layer: heights are counts of rows per x, bars at
// the same x stack.
func Bar(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(BarGeom{common{o.aesParams}}, stat.Count{}, position.Stack{}, m, o)
}

// Histogram creates a binned bar layer for continuous x.
func Histogram(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(BarGeom{common{o.aesParams}}, stat.Bin{}, position.Stack{}, m, o)
}

func (BarGeom) Name() string { return "geom_bar" }

func (BarGeom) RequiredAes() []string { return []string{"x", "y"} }

func (BarGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "", "fill": "#595959", "alpha": 1.0}
}

func (BarGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

// SetupData derives the rectangle extents from x, width and y. A
// later position adjustment may rewrite ymin/ymax to stack the bars.
func (BarGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) {
	return deriveBarExtents(t, p), nil
}

func deriveBarExtents(t *table.Table, p layer.Params) *table.Table {
	xs, ok := t.Floats("x")
	if !ok {
		return t
	}
	n := len(xs)
	out := t.Clone()
	if !out.Has("xmin") {
		widths := floatsOr(out, "width", p.Float("width", 0.9))
		xmin := make(table.Floats, n)
		xmax := make(table.Floats, n)
		for i := range xs {
			xmin[i] = xs[i] - widths[i]/2
			xmax[i] = xs[i] + widths[i]/2
		}
		out.Set("xmin", xmin)
		out.Set("xmax", xmax)
	}
	if !out.Has("ymin") {
		ys := floatsOr(out, "y", 0)
		ymin := make(table.Floats, n)
		ymax := make(table.Floats, n)
		for i := range ys {
			ymin[i] = math.Min(0, ys[i])
			ymax[i] = math.Max(0, ys[i])
		}
		out.Set("ymin", ymin)
		out.Set("ymax", ymax)
	}
	return out
}

func (g BarGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	// A discrete x is still categorical during SetupData and only
	// becomes a numeric position once the scales map it, so the
	// horizontal extents may not exist yet. Derive the missing
	// bounds here without touching what position stacking set.
	if !t.Has("xmin") || !t.Has("ymin") {
		t = deriveBarExtents(t, p)
	}
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		xmin, _ := pt.Floats("xmin")
		xmax, _ := pt.Floats("xmax")
		ymin, _ := pt.Floats("ymin")
		ymax, _ := pt.Floats("ymax")
		for i := range xmin {
			c.Rect(xmin[i], ymin[i], xmax[i], ymax[i], rowStyle(pt, i, p))
		}
		return nil
	})
}
