package stat

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Smooth fits a trend through the group's points and samples it at
// evenly spaced x positions. The loess method fits locally weighted
// polynomials; the lm method fits a single least-squares polynomial.
type Smooth struct {
	base
}

func (Smooth) Name() string { return "stat_smooth" }

func (Smooth) RequiredAes() []string { return []string{"x", "y"} }

func (Smooth) DefaultAes() aes.Mapping {
	return aes.Mapping{"y": aes.AfterStat("y")}
}

func (Smooth) DefaultParams() layer.Params {
	return layer.Params{
		"na_rm":     false,
		"method":    "auto",
		"span":      0.75,
		"n":         80,
		"degree":    0,
		"se":        true,
		"level":     0.95,
		"fullrange": false,
	}
}

func (Smooth) Creates() []string { return []string{"y", "ymin", "ymax", "se"} }

func (Smooth) SetupParams(t *table.Table, p layer.Params) (layer.Params, error) {
	method := p.String("method", "auto")
	if method == "auto" {
		// Loess is accurate but quadratic in the group size, so
		// large groups fall back to a least-squares line.
		if t.NRows() < 1000 {
			method = "loess"
		} else {
			method = "lm"
		}
		p = p.Clone()
		p["method"] = method
	}
	switch method {
	case "loess", "lm":
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSpec, "stat_smooth: unknown method %q", method)
}

func (s Smooth) ComputeGroup(t *table.Table, r *facet.Ranges, p layer.Params) (*table.Table, error) {
	xraw, okx := t.Floats("x")
	yraw, oky := t.Floats("y")
	if !okx || !oky {
		return nil, errors.New(errors.ErrCodeIncompatibleAes,
			"stat_smooth requires continuous x and y aesthetics")
	}
	var xs, ys []float64
	for i := range xraw {
		if math.IsNaN(xraw[i]) || math.IsNaN(yraw[i]) {
			continue
		}
		xs = append(xs, xraw[i])
		ys = append(ys, yraw[i])
	}
	if len(xs) < 2 {
		return table.New(), nil
	}

	lo, hi := stats.Bounds(xs)
	if p.Bool("fullrange", false) && r.Trained() && !math.IsNaN(r.XMin) {
		lo, hi = r.XMin, r.XMax
	}
	n := p.Int("n", 80)
	if n < 2 {
		n = 2
	}
	eval := vec.Linspace(lo, hi, n)

	out := table.New()
	out.Set("x", table.Floats(eval))

	switch p.String("method", "loess") {
	case "lm":
		degree := p.Int("degree", 0)
		if degree <= 0 {
			degree = 1
		}
		res := fit.PolynomialRegression(xs, ys, nil, degree)
		fitted := vec.Map(res.F, eval)
		out.Set("y", table.Floats(fitted))
		if p.Bool("se", true) && degree == 1 {
			ymin, ymax, se := linearBand(xs, ys, res.F, eval, p.Float("level", 0.95))
			out.Set("ymin", ymin)
			out.Set("ymax", ymax)
			out.Set("se", se)
		}
	default:
		degree := p.Int("degree", 0)
		if degree <= 0 {
			degree = 2
		}
		loess := fit.LOESS(xs, ys, degree, p.Float("span", 0.75))
		out.Set("y", table.Floats(vec.Map(loess, eval)))
	}
	return out, nil
}

// linearBand computes a pointwise confidence band for a simple linear
// fit using the classic normal-theory standard error of the mean
// response.
func linearBand(xs, ys []float64, f func(float64) float64, eval []float64, level float64) (ymin, ymax, se table.Floats) {
	n := float64(len(xs))
	var xbar, sxx, rss float64
	for _, x := range xs {
		xbar += x
	}
	xbar /= n
	for i, x := range xs {
		sxx += (x - xbar) * (x - xbar)
		res := ys[i] - f(x)
		rss += res * res
	}
	sigma2 := rss / math.Max(n-2, 1)

	// Two-sided normal quantile; degrees of freedom are typically
	// large enough that the t correction does not matter visually.
	z := stats.StdNormal.InvCDF(0.5 + level/2)

	ymin = make(table.Floats, len(eval))
	ymax = make(table.Floats, len(eval))
	se = make(table.Floats, len(eval))
	for i, x := range eval {
		v := sigma2 * (1/n + (x-xbar)*(x-xbar)/sxx)
		s := math.Sqrt(v)
		se[i] = s
		ymin[i] = f(x) - z*s
		ymax[i] = f(x) + z*s
	}
	return ymin, ymax, se
}
