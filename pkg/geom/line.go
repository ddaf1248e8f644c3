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

// LineGeom connects each group's points in x order.
type LineGeom struct {
	common
}

// Line creates a line layer.
func Line(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(LineGeom{common{o.aesParams}}, stat.Identity{}, position.Identity{}, m, o)
}

func (LineGeom) Name() string { return "geom_line" }

func (LineGeom) RequiredAes() []string { return []string{"x", "y"} }

func (LineGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "black", "size": 0.5, "alpha": 1.0}
}

func (LineGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

// SetupData orders rows within each group by x so the connecting
// segments never double back.
func (LineGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) {
	return t.SortBy("PANEL", "group", "x"), nil
}

func (g LineGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		for _, grp := range pt.PartitionBy("group") {
			xs, _ := grp.Table.Floats("x")
			ys, _ := grp.Table.Floats("y")
			if len(xs) < 2 {
				continue
			}
			c.Polyline(xs, ys, rowStyle(grp.Table, 0, p))
		}
		return nil
	})
}
