package position

import (
	"sort"

	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Dodge places overlapping groups side by side instead of on top of
// each other, splitting the available width evenly between them.
type Dodge struct {
	base

	// Width overrides the total width to divide. Zero means derive
	// it from the data's width column or the x spacing.
	Width float64
}

func (Dodge) Name() string { return "position_dodge" }

func (d Dodge) SetupParams(t *table.Table) (layer.Params, error) {
	width := d.Width
	if width == 0 {
		if ws, ok := t.Floats("width"); ok && len(ws) > 0 {
			width = ws[0]
		} else if xs, ok := t.Floats("x"); ok {
			width = 0.9 * resolution(xs)
		} else {
			width = 0.9
		}
	}
	return layer.Params{"width": width}, nil
}

func (Dodge) ComputeLayer(t *table.Table, p layer.Params, layout *facet.Layout) (*table.Table, error) {
	width := p.Float("width", 0.9)
	return perPanel(t, layout, func(pt *table.Table, r *facet.Ranges) (*table.Table, error) {
		xs, ok := pt.Floats("x")
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingAesthetic,
				"position_dodge requires a continuous x aesthetic")
		}
		groups, ok := pt.IntsCol("group")
		if !ok {
			return pt, nil
		}

		// Slot order is ascending group code across the whole panel,
		// so a group keeps its slot at every x.
		slots := map[int]int{}
		var codes []int
		for _, g := range groups {
			if _, seen := slots[g]; !seen {
				slots[g] = 0
				codes = append(codes, g)
			}
		}
		sort.Ints(codes)
		for i, g := range codes {
			slots[g] = i
		}
		n := float64(len(codes))

		newX := make(table.Floats, len(xs))
		newW := make(table.Floats, len(xs))
		for i, x := range xs {
			slot := float64(slots[groups[i]])
			newX[i] = x + width*((slot+0.5)/n-0.5)
			newW[i] = width / n
		}
		out := pt.Clone()
		out.Set("x", newX)
		out.Set("width", newW)
		if out.Has("xmin") {
			mins := make(table.Floats, len(xs))
			maxs := make(table.Floats, len(xs))
			for i := range newX {
				mins[i] = newX[i] - newW[i]/2
				maxs[i] = newX[i] + newW[i]/2
			}
			out.Set("xmin", mins)
			out.Set("xmax", maxs)
		}
		return out, nil
	})
}
