package position

import (
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Stack piles rows that share an x on top of each other, in row
// order within each panel. Bars and areas stack by default.
type Stack struct {
	base
}

func (Stack) Name() string { return "position_stack" }

func (Stack) ComputeLayer(t *table.Table, p layer.Params, layout *facet.Layout) (*table.Table, error) {
	if !t.Has("y") {
		return nil, errors.New(errors.ErrCodeMissingAesthetic,
			"position_stack requires a y aesthetic")
	}
	return perPanel(t, layout, func(pt *table.Table, r *facet.Ranges) (*table.Table, error) {
		xs, ok := pt.Floats("x")
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingAesthetic,
				"position_stack requires a continuous x aesthetic")
		}
		ys, _ := pt.Floats("y")

		cum := make(map[float64]float64)
		y := make(table.Floats, len(ys))
		ymin := make(table.Floats, len(ys))
		ymax := make(table.Floats, len(ys))
		for i := range ys {
			bottom := cum[xs[i]]
			top := bottom + ys[i]
			cum[xs[i]] = top
			ymin[i] = bottom
			ymax[i] = top
			y[i] = top
		}
		out := pt.Clone()
		out.Set("y", y)
		out.Set("ymin", ymin)
		out.Set("ymax", ymax)
		return out, nil
	})
}
