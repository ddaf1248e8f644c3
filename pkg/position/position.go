// Package position implements the adjustments that resolve overlap
// between rows after statistics run: identity, stack, dodge and
// jitter. Adjustments operate panel by panel on position columns that
// are still on the scale-mapped numeric axis.
package position

import (
	"math"
	"sort"

	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// base supplies the no-op defaults shared by adjustments.
type base struct{}

func (base) SetupParams(t *table.Table) (layer.Params, error) { return layer.Params{}, nil }

func (base) SetupData(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

// perPanel applies f to each PANEL partition and reassembles the
// results in partition order.
func perPanel(t *table.Table, layout *facet.Layout, f func(*table.Table, *facet.Ranges) (*table.Table, error)) (*table.Table, error) {
	out := table.New()
	for _, panel := range t.PartitionBy("PANEL") {
		panelID, _ := panel.Key.(int)
		res, err := f(panel.Table, layout.Ranges(panelID))
		if err != nil {
			return nil, err
		}
		out, err = table.AppendRows(out, res)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resolution mirrors the statistic package's spacing heuristic for
// the default jitter and dodge widths.
func resolution(xs []float64) float64 {
	uniq := make([]float64, 0, len(xs))
	seen := make(map[float64]bool, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) || seen[x] {
			continue
		}
		seen[x] = true
		uniq = append(uniq, x)
	}
	if len(uniq) < 2 {
		return 1
	}
	sort.Float64s(uniq)
	res := math.Inf(1)
	for i := 1; i < len(uniq); i++ {
		if d := uniq[i] - uniq[i-1]; d < res {
			res = d
		}
	}
	return res
}
