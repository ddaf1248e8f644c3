package stat

import (
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/table"
)

// Identity passes the data through untouched.
type Identity struct {
	base
}

func (Identity) Name() string { return "stat_identity" }

func (Identity) ComputeGroup(t *table.Table, r *facet.Ranges, p layer.Params) (*table.Table, error) {
	return t, nil
}
