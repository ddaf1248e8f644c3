// Package geom implements the geometries that turn prepared layer
// tables into drawn primitives, and the layer constructors that are
// the library's main user entry points. Each constructor wires its
// geometry to its default statistic and position adjustment:
//
//	geom.Point(aes.New("x", "wt", "y", "mpg"))
//	geom.Bar(aes.New("x", "cyl"))                // stat count, stacked
//	geom.Smooth(aes.New("x", "wt", "y", "mpg"))  // loess trend
package geom

import (
	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/table"
)

// common carries the construction-time configuration every geometry
// shares: literal aesthetic overrides.
type common struct {
	aesParams layer.Params
}

func (c common) AesParams() layer.Params {
	if c.aesParams == nil {
		return layer.Params{}
	}
	return c.aesParams
}

func (common) NonMissingAes() []string { return nil }

// Option configures a constructed layer.
type Option func(*options)

type options struct {
	data       *table.Table
	dataFn     layer.DataFunc
	stat       layer.Stat
	position   layer.Position
	params     layer.Params
	statParams layer.Params
	aesParams  layer.Params
	noInherit  bool
	showLegend bool
	raster     bool
}

// WithData gives the layer its own data instead of the plot's.
func WithData(t *table.Table) Option {
	return func(o *options) { o.data = t }
}

// WithDataFunc derives the layer's data from the plot's.
func WithDataFunc(fn layer.DataFunc) Option {
	return func(o *options) { o.dataFn = fn }
}

// WithStat overrides the geometry's default statistic.
func WithStat(s layer.Stat) Option {
	return func(o *options) { o.stat = s }
}

// WithPosition overrides the geometry's default position adjustment.
func WithPosition(p layer.Position) Option {
	return func(o *options) { o.position = p }
}

// WithParam sets a drawing parameter, e.g. "na_rm" or "width".
func WithParam(key string, value any) Option {
	return func(o *options) {
		if o.params == nil {
			o.params = layer.Params{}
		}
		o.params[key] = value
	}
}

// WithStatParam sets a statistic parameter, e.g. "binwidth" or "span".
func WithStatParam(key string, value any) Option {
	return func(o *options) {
		if o.statParams == nil {
			o.statParams = layer.Params{}
		}
		o.statParams[key] = value
	}
}

// WithAes fixes an aesthetic to a literal value for every row,
// overriding any mapping for it.
func WithAes(name string, value any) Option {
	return func(o *options) {
		if o.aesParams == nil {
			o.aesParams = layer.Params{}
		}
		o.aesParams[name] = value
	}
}

// WithoutInheritedAes stops the layer from completing its mapping
// from the plot's.
func WithoutInheritedAes() Option {
	return func(o *options) { o.noInherit = true }
}

// WithShowLegend forces the layer's legend entry on.
func WithShowLegend() Option {
	return func(o *options) { o.showLegend = true }
}

// WithRaster requests rasterized output for the layer's primitives.
func WithRaster() Option {
	return func(o *options) { o.raster = true }
}

// newLayer assembles a layer from a geometry and its defaults.
func newLayer(g layer.Geom, defStat layer.Stat, defPos layer.Position, m aes.Mapping, o options) *layer.Layer {
	st := o.stat
	if st == nil {
		st = defStat
	}
	pos := o.position
	if pos == nil {
		pos = defPos
	}
	return &layer.Layer{
		Geom:       g,
		Stat:       st,
		Position:   pos,
		Mapping:    m.Clone(),
		OwnData:    o.data,
		DataFn:     o.dataFn,
		InheritAes: !o.noInherit,
		ShowLegend: o.showLegend,
		Raster:     o.raster,
		Params:     o.params.Clone(),
		StatParams: o.statParams.Clone(),
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// drawPanels partitions a layer table by panel, rescales each slice to
// unit coordinates and hands it to the per-panel draw function.
func drawPanels(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, draw func(pt *table.Table, c render.Canvas) error) error {
	for _, panel := range t.PartitionBy("PANEL") {
		id, _ := panel.Key.(int)
		pt := crd.Transform(panel.Table, layout.Ranges(id))
		if err := draw(pt, canvasFor(id)); err != nil {
			return err
		}
	}
	return nil
}

// rowStyle assembles the style of one row from its aesthetic columns
// and the layer's drawing parameters.
func rowStyle(t *table.Table, i int, p layer.Params) render.Style {
	s := render.Style{
		ZOrder: p.Int("zorder", 0),
		Raster: p.Bool("raster", false),
	}
	if c, ok := t.Column("color"); ok && !c.Missing(i) {
		s.Color, _ = c.Value(i).(string)
	}
	if c, ok := t.Column("fill"); ok && !c.Missing(i) {
		s.Fill, _ = c.Value(i).(string)
	}
	if c, ok := t.Floats("alpha"); ok {
		s.Opacity = c[i]
	}
	if c, ok := t.Floats("size"); ok {
		s.Size = c[i]
	}
	return s
}

// floatsOr returns the named column as floats, or vals of def when the
// column is absent.
func floatsOr(t *table.Table, name string, def float64) []float64 {
	if vals, ok := t.Floats(name); ok {
		return vals
	}
	out := make([]float64, t.NRows())
	for i := range out {
		out[i] = def
	}
	return out
}
