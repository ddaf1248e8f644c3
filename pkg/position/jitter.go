package position

import (
	"math/rand"

	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Jitter displaces each point by a small uniform random offset so
// coincident points become visible. A fixed Seed makes the layout
// reproducible across builds.
type Jitter struct {
	base

	// Width and Height bound the displacement on each axis. Zero
	// means 40% of the axis resolution.
	Width  float64
	Height float64

	Seed int64
}

func (Jitter) Name() string { return "position_jitter" }

func (j Jitter) SetupParams(t *table.Table) (layer.Params, error) {
	width, height := j.Width, j.Height
	if width == 0 {
		if xs, ok := t.Floats("x"); ok {
			width = 0.4 * resolution(xs)
		}
	}
	if height == 0 {
		if ys, ok := t.Floats("y"); ok {
			height = 0.4 * resolution(ys)
		}
	}
	return layer.Params{"width": width, "height": height, "seed": j.Seed}, nil
}

func (Jitter) ComputeLayer(t *table.Table, p layer.Params, layout *facet.Layout) (*table.Table, error) {
	width := p.Float("width", 0)
	height := p.Float("height", 0)
	seed := int64(p.Int("seed", 0))
	rng := rand.New(rand.NewSource(seed))

	out := t.Clone()
	if width > 0 {
		xs, ok := out.Floats("x")
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingAesthetic,
				"position_jitter requires a continuous x aesthetic")
		}
		jittered := make(table.Floats, len(xs))
		for i, x := range xs {
			jittered[i] = x + (rng.Float64()*2-1)*width
		}
		out.Set("x", jittered)
	}
	if height > 0 {
		ys, ok := out.Floats("y")
		if ok {
			jittered := make(table.Floats, len(ys))
			for i, y := range ys {
				jittered[i] = y + (rng.Float64()*2-1)*height
			}
			out.Set("y", jittered)
		}
	}
	return out, nil
}
