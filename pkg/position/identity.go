package position

import (
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Identity leaves every position untouched.
type Identity struct {
	base
}

func (Identity) Name() string { return "position_identity" }

func (Identity) ComputeLayer(t *table.Table, p layer.Params, layout *facet.Layout) (*table.Table, error) {
	return t, nil
}
