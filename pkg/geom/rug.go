package geom

import (
	"strings"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/position"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/stat"
	"github.com/gplotdev/gplot/pkg/table"
)

// RugGeom draws short ticks along the panel edges marking the
// marginal distribution of x and y.
type RugGeom struct {
	common
}

// Rug creates a rug layer. The sides parameter picks the edges:
// any combination of "t", "r", "b", "l" (default "bl").
func Rug(m aes.Mapping, opts ...Option) *layer.Layer {
	o := applyOptions(opts)
	return newLayer(RugGeom{common{o.aesParams}}, stat.Identity{}, position.Identity{}, m, o)
}

func (RugGeom) Name() string { return "geom_rug" }

func (RugGeom) RequiredAes() []string { return nil }

func (RugGeom) DefaultAes() layer.Params {
	return layer.Params{"color": "black", "size": 0.5, "alpha": 1.0}
}

func (RugGeom) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false, "sides": "bl", "length": 0.03}
}

func (RugGeom) SetupData(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

func (g RugGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p layer.Params) error {
	sides := p.String("sides", "bl")
	length := p.Float("length", 0.03)
	return drawPanels(t, layout, crd, canvasFor, func(pt *table.Table, c render.Canvas) error {
		xs, hasX := pt.Floats("x")
		ys, hasY := pt.Floats("y")
		if hasX {
			for i, x := range xs {
				s := rowStyle(pt, i, p)
				if strings.Contains(sides, "b") {
					c.Line(x, 0, x, length, s)
				}
				if strings.Contains(sides, "t") {
					c.Line(x, 1-length, x, 1, s)
				}
			}
		}
		if hasY {
			for i, y := range ys {
				s := rowStyle(pt, i, p)
				if strings.Contains(sides, "l") {
					c.Line(0, y, length, y, s)
				}
				if strings.Contains(sides, "r") {
					c.Line(1-length, y, 1, y, s)
				}
			}
		}
		return nil
	})
}
