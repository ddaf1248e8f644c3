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

// SmoothGeom draws a fitted trend line with an optional confidence
// band behind it.
type SmoothGeom struct {
	common
}

// Smooth creates a trend layer backed by the smooth statistic.
func Smooth(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(SmoothGeom{common{o.aesParams}}, stat.Smooth{}, position.Identity{}, m, o)
}

func (SmoothGeom) Name() string { return "geom_smooth" }

func (SmoothGeom) RequiredAes() []string { return []string{"x", "y"} }

func (SmoothGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "#3366FF", "fill": "#999999", "size": 1.0, "alpha": 0.4}
}

func (SmoothGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false}
}

// SetupData orders each group by x so the band and line are drawn
// left to right.
func (SmoothGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) {
	return t.SortBy("PANEL", "group", "x"), nil
}

func (g SmoothGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		for _, grp := range pt.PartitionBy("group") {
			xs, _ := grp.Table.Floats("x")
			ys, _ := grp.Table.Floats("y")
			if len(xs) < 2 {
				continue
			}
			// Band first so the line paints over it.
			ymin, okMin := grp.Table.Floats("ymin")
			ymax, okMax := grp.Table.Floats("ymax")
			if okMin && okMax {
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
				band := rowStyle(grp.Table, 0, p)
				band.Color = band.Fill
				c.Polygon(px, py, band)
			}
			line := rowStyle(grp.Table, 0, p)
			line.Opacity = 1
			c.Polyline(xs, ys, line)
		}
		return nil
	})
}
