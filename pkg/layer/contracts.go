package layer

import (
	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/table"
)

// Geom renders a prepared table onto panel canvases. Implementations
// live in the geom package; a layer treats them as opaque behavior.
type Geom interface {
	// Name is the user-facing identifier, e.g. "geom_point".
	Name() string

	// RequiredAes lists aesthetics that must be present as columns
	// (or supplied as literal parameters) by draw time.
	RequiredAes() []string

	// NonMissingAes lists optional aesthetics that, when present,
	// must not contain missing values for a row to be drawable.
	NonMissingAes() []string

	// DefaultAes maps aesthetic names to literal fallback values
	// used to fill columns the mappings never produced.
	DefaultAes() Params

	// AesParams holds literal aesthetic overrides fixed at
	// construction, e.g. color "red" for every row.
	AesParams() Params

	// DefaultParams supplies drawing parameter defaults.
	DefaultParams() Params

	// SetupData normalizes the table before position adjustment,
	// e.g. deriving xmin/xmax from x and width.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// Draw renders the table panel by panel, mapping position
	// columns to unit coordinates through crd; canvasFor yields the
	// drawing surface for a panel.
	Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(panel int) render.Canvas, p Params) error
}

// Stat summarizes a group of rows into derived columns.
type Stat interface {
	// Name is the user-facing identifier, e.g. "stat_count".
	Name() string

	// RequiredAes lists aesthetics the computation needs.
	RequiredAes() []string

	// DefaultAes supplies default mappings that apply when the user
	// did not map the aesthetic. Start-stage entries are evaluated
	// into the data before computation; calculated entries, e.g. y
	// from count, are mapped after it.
	DefaultAes() aes.Mapping

	// DefaultParams supplies computation parameter defaults.
	DefaultParams() Params

	// Creates lists the columns the statistic adds, available to
	// after-stat mappings.
	Creates() []string

	// Retransform reports whether calculated columns are on the
	// original data scale and need the scale transforms re-applied.
	Retransform() bool

	// SetupParams validates and completes params against the data.
	SetupParams(t *table.Table, p Params) (Params, error)

	// SetupData normalizes the table before computation.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// ComputeGroup computes the statistic for a single group. The
	// ranges describe the group's panel.
	ComputeGroup(t *table.Table, r *facet.Ranges, p Params) (*table.Table, error)

	// FinishLayer post-processes the layer table after position
	// columns have been mapped by the scales.
	FinishLayer(t *table.Table, p Params) (*table.Table, error)
}

// Position resolves overlap between rows after statistics run.
type Position interface {
	// Name is the user-facing identifier, e.g. "position_stack".
	Name() string

	// SetupParams derives adjustment parameters from the data.
	SetupParams(t *table.Table) (Params, error)

	// SetupData normalizes the table before adjustment.
	SetupData(t *table.Table, p Params) (*table.Table, error)

	// ComputeLayer applies the adjustment across the whole layer,
	// panel by panel.
	ComputeLayer(t *table.Table, p Params, layout *facet.Layout) (*table.Table, error)
}
