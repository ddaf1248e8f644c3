package stat

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Bin divides continuous x into equal-width bins and counts the rows
// falling into each. It backs histograms.
type Bin struct {
	base
}

func (Bin) Name() string { return "stat_bin" }

func (Bin) RequiredAes() []string { return []string{"x"} }

func (Bin) DefaultAes() aes.Mapping {
	return aes.Mapping{"y": aes.AfterStat("count")}
}

func (Bin) DefaultParams() layer.Params {
	return layer.Params{
		"na_rm":    false,
		"bins":     30,
		"binwidth": nil,
		"boundary": nil,
	}
}

func (Bin) Creates() []string { return []string{"count", "density", "ncount", "width"} }

func (Bin) SetupParams(t *table.Table, p layer.Params) (layer.Params, error) {
	if t.Has("y") {
		return nil, errors.New(errors.ErrCodeIncompatibleAes,
			"stat_bin must not be used with a y aesthetic")
	}
	if p.Int("bins", 0) < 1 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "stat_bin needs at least one bin")
	}
	return p, nil
}

func (b Bin) ComputeGroup(t *table.Table, r *facet.Ranges, p layer.Params) (*table.Table, error) {
	xs, ok := t.Floats("x")
	if !ok {
		return nil, errors.New(errors.ErrCodeIncompatibleAes,
			"stat_bin requires a continuous x aesthetic")
	}
	clean := make([]float64, 0, len(xs))
	w := weights(t)
	ws := make([]float64, 0, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		clean = append(clean, x)
		ws = append(ws, w[i])
	}
	if len(clean) == 0 {
		return table.New(), nil
	}

	// Bin over the panel's x range when one is trained, so groups
	// within a panel share bin edges.
	lo, hi := r.XMin, r.XMax
	if !r.Trained() || math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = stats.Bounds(clean)
	}
	if hi == lo {
		hi = lo + 1
	}

	width := p.Float("binwidth", 0)
	if width <= 0 {
		width = (hi - lo) / float64(p.Int("bins", 30))
	}
	origin := lo
	if p.Has("boundary") {
		if bd := p.Float("boundary", math.NaN()); !math.IsNaN(bd) {
			origin = bd + math.Floor((lo-bd)/width)*width
		}
	}

	nbins := int(math.Ceil((hi-origin)/width + 1e-8))
	if nbins < 1 {
		nbins = 1
	}
	counts := make(table.Floats, nbins)
	for i, x := range clean {
		idx := int((x - origin) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx] += ws[i]
	}

	centers := make(table.Floats, nbins)
	density := make(table.Floats, nbins)
	ncount := make(table.Floats, nbins)
	total, peak := 0.0, 0.0
	for _, c := range counts {
		total += c
		if c > peak {
			peak = c
		}
	}
	for i := range counts {
		centers[i] = origin + (float64(i)+0.5)*width
		density[i] = counts[i] / (total * width)
		if peak > 0 {
			ncount[i] = counts[i] / peak
		}
	}

	out := table.New()
	out.Set("x", centers)
	out.Set("count", counts)
	out.Set("density", density)
	out.Set("ncount", ncount)
	out.Set("width", constFloats(width, nbins))
	return out, nil
}
