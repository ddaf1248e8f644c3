package stat

import (
	"math"
	"sort"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Count tallies the rows at each distinct x, weighted by the weight
// aesthetic when one is mapped. It is the default statistic for bars.
type Count struct {
	base
}

func (Count) Name() string { return "stat_count" }

func (Count) RequiredAes() []string { return []string{"x"} }

func (Count) DefaultAes() aes.Mapping {
	return aes.Mapping{"y": aes.AfterStat("count")}
}

func (Count) DefaultParams() layer.Params {
	return layer.Params{"na_rm": false, "width": nil}
}

func (Count) Creates() []string { return []string{"count", "prop", "width"} }

// SetupParams rejects a y aesthetic (the statistic computes y itself)
// and derives the default bar width from the whole input, so every
// group shares the same width regardless of its own x spacing.
func (Count) SetupParams(t *table.Table, p layer.Params) (layer.Params, error) {
	if t.Has("y") {
		return nil, errors.New(errors.ErrCodeIncompatibleAes,
			"stat_count must not be used with a y aesthetic")
	}
	if _, set := p["width"].(float64); !set {
		if _, isInt := p["width"].(int); !isInt {
			p = p.Clone()
			if xs, ok := t.Floats("x"); ok {
				p["width"] = 0.9 * Resolution(xs)
			} else {
				p["width"] = 0.9
			}
		}
	}
	return p, nil
}

func (c Count) ComputeGroup(t *table.Table, r *facet.Ranges, p layer.Params) (*table.Table, error) {
	w := weights(t)
	out := table.New()

	if xs, ok := t.Floats("x"); ok {
		sums := make(map[float64]float64)
		var order []float64
		for i, x := range xs {
			if math.IsNaN(x) {
				continue
			}
			if _, seen := sums[x]; !seen {
				order = append(order, x)
			}
			sums[x] += w[i]
		}
		sort.Float64s(order)
		counts := make(table.Floats, len(order))
		total := 0.0
		for i, x := range order {
			counts[i] = sums[x]
			total += sums[x]
		}
		width := p.Float("width", 0.9)
		out.Set("x", table.Floats(order))
		out.Set("count", counts)
		out.Set("prop", props(counts, total))
		out.Set("width", constFloats(width, len(order)))
		return out, nil
	}

	// Discrete x: tally by value, levels in ascending order.
	col := t.MustColumn("x")
	sums := make(map[string]float64)
	var order []string
	for i := 0; i < col.Len(); i++ {
		x, _ := col.Value(i).(string)
		if _, seen := sums[x]; !seen {
			order = append(order, x)
		}
		sums[x] += w[i]
	}
	sort.Strings(order)
	counts := make(table.Floats, len(order))
	total := 0.0
	for i, x := range order {
		counts[i] = sums[x]
		total += sums[x]
	}
	out.Set("x", table.Strings(order))
	out.Set("count", counts)
	out.Set("prop", props(counts, total))
	out.Set("width", constFloats(p.Float("width", 0.9), len(order)))
	return out, nil
}

func props(counts table.Floats, total float64) table.Floats {
	out := make(table.Floats, len(counts))
	for i, c := range counts {
		out[i] = c / total
	}
	return out
}

func constFloats(v float64, n int) table.Floats {
	out := make(table.Floats, n)
	for i := range out {
		out[i] = v
	}
	return out
}
