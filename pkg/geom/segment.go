package geom

import (
	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/position"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/stat"
	"github.com/gplotdev/gplot/pkg/table"
)

// SegmentGeom draws one straight segment per row, from (x, y) to
// (xend, yend).
type SegmentGeom struct {
	common
}

// Segment creates a segment layer.
func Segment(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(SegmentGeom{common{o.aesParams}}, stat.Identity{}, position.Identity{}, m, o)
}

func (SegmentGeom) Name() string { return "geom_segment" }

func (SegmentGeom) RequiredAes() []string { return []string{"x", "y", "xend", "yend"} }

func (SegmentGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "black", "size": 0.5, "alpha": 1.0}
}

func (SegmentGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

func (SegmentGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

func (g SegmentGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		xs, _ := pt.Floats("x")
		ys, _ := pt.Floats("y")
		xend, _ := pt.Floats("xend")
		yend, _ := pt.Floats("yend")
		for i := range xs {
			c.Line(xs[i], ys[i], xend[i], yend[i], rowStyle(pt, i, p))
		}
		return nil
	})
}
