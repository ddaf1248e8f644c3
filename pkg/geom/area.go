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

// AreaGeom fills the region between each group's ymin and ymax,
// defaulting the band to [0, y].
type AreaGeom struct {
	common
}

// Area creates a stacked area layer.
func Area(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(AreaGeom{common{o.aesParams}}, stat.Identity{}, position.Stack{}, m, o)
}

func (AreaGeom) Name() string { return "geom_area" }

func (AreaGeom) RequiredAes() []string { return []string{"x", "y"} }

func (AreaGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "", "fill": "grey20", "alpha": 1.0}
}

func (AreaGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

// SetupData orders each group by x and derives the band bounds when a
// position adjustment has not set them.
func (AreaGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) {
	out := t.SortBy("PANEL", "group", "x")
	if !out.Has("ymin") || !out.Has("ymax") {
		ys, _ := out.Floats("y")
		ymin := make(table.Floats, len(ys))
		ymax := make(table.Floats, len(ys))
		copy(ymax, ys)
		out = out.Clone()
		out.Set("ymin", ymin)
		out.Set("ymax", ymax)
	}
	return out, nil
}

func (g AreaGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		for _, grp := range pt.PartitionBy("group") {
			xs, _ := grp.Table.Floats("x")
			ymin := floatsOr(grp.Table, "ymin", 0)
			ymax := floatsOr(grp.Table, "ymax", 0)
			if len(xs) < 2 {
				continue
			}
			// Outline: along ymax left to right, back along ymin.
			px := make([]float64, 0, 2*len(xs))
			py := make([]float64, 0, 2*len(xs))
			for i := range xs {
				px = append(px, xs[i])
				py = append(py, ymax[i])
			}
			for i := len(xs) - 1; i >= 0; i-- {
				px = append(px, xs[i])
				py = append(py, ymin[i])
			}
			c.Polygon(px, py, rowStyle(grp.Table, 0, p))
		}
		return nil
	})
}
