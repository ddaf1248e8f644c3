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

// PointGeom draws one marker per row.
type PointGeom struct {
	common
}

// Point creates a scatter layer.
func Point(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(PointGeom{common{o.aesParams}}, stat.Identity{}, position.Identity{}, m, o)
}

func (PointGeom) Name() string { return "geom_point" }

func (PointGeom) RequiredAes() []string { return []string{"x", "y"} }

func (PointGeom) NonMissingAes() []string { return []string{"size", "color"} }

func (PointGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "black", "size": 2.0, "alpha": 1.0}
}

func (PointGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

func (PointGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

func (g PointGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		xs, _ := pt.Floats("x")
		ys, _ := pt.Floats("y")
		for i := range xs {
			c.Point(xs[i], ys[i], rowStyle(pt, i, p))
		}
		return nil
	})
}
