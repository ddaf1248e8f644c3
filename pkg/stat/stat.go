// Package stat implements the statistical transforms that summarize a
// layer's rows before drawing: identity, count, bin and smooth. Each
// statistic computes one group at a time; the layer pipeline handles
// partitioning by panel and group and reassembling the results.
package stat

import (
	"math"
	"sort"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// base supplies the no-op defaults most statistics share.
type base struct{}

func (base) RequiredAes() []string { return nil }

func (base) DefaultAes() aes.Mapping { return nil }

func (base) DefaultParams() layer.Params { return layer.Params{"na_rm": false} }

func (base) Creates() []string { return nil }

func (base) Retransform() bool { return true }

func (base) SetupParams(t *table.Table, p layer.Params) (layer.Params, error) { return p, nil }

func (base) SetupData(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

func (base) FinishLayer(t *table.Table, p layer.Params) (*table.Table, error) { return t, nil }

// Resolution returns the smallest distance between adjacent distinct
// values. With fewer than two distinct values it is 1, matching the
// convention for unit-spaced discrete data.
func Resolution(xs []float64) float64 {
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

// weights returns the weight column as floats, defaulting every row
// to 1 when no weight aesthetic was mapped.
func weights(t *table.Table) []float64 {
	if w, ok := t.Floats("weight"); ok {
		return w
	}
	out := make([]float64, t.NRows())
	for i := range out {
		out[i] = 1
	}
	return out
}
