// Package layer holds the per-layer build pipeline. A layer couples a
// geometry with a statistic and a position adjustment and carries its
// own working table through the build stages:
//
//	setup -> compute aesthetics -> compute statistic -> map statistic
//	      -> setup data -> compute position -> finish statistics -> draw
//
// Scale operations (transform, train, map) run across all layers
// between mapping statistics and computing positions; the Layers
// collection fans them out. Every stage that produces rows stamps them
// with a PANEL and a group column, so downstream stages can rely on
// both being present.
package layer

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/expr"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/scale"
	"github.com/gplotdev/gplot/pkg/table"
)

// DataFunc derives layer data from the plot's data.
type DataFunc func(*table.Table) (*table.Table, error)

// Layer is one drawable unit of a plot.
type Layer struct {
	Geom     Geom
	Stat     Stat
	Position Position

	// Mapping holds the layer's own aesthetic mappings. When
	// InheritAes is set they are completed from the plot mapping.
	Mapping aes.Mapping

	// OwnData, when non-nil, replaces the plot data for this layer.
	// DataFn, when non-nil, derives the layer data from the plot
	// data instead. At most one of the two should be set.
	OwnData *table.Table
	DataFn  DataFunc

	InheritAes bool
	ShowLegend bool
	Raster     bool

	// Params carries geometry parameters merged over the geometry's
	// defaults at construction time. StatParams holds user overrides
	// for the statistic's parameters.
	Params     Params
	StatParams Params

	// ZOrder is assigned during drawing, first layer lowest.
	ZOrder int

	data       *table.Table
	mapping    aes.Mapping
	statParams Params
	env        map[string]cty.Value
}

// Table returns the layer's working table at its current stage.
func (l *Layer) Table() *table.Table { return l.data }

// SetTable replaces the working table. Intended for tests and for the
// plot builder's cross-layer scale stages.
func (l *Layer) SetTable(t *table.Table) { l.data = t }

// Clone returns a copy that shares the working table with l but owns
// its mapping and parameters. Sharing the table is deliberate: copies
// made for faceting or theming must not duplicate the data, and every
// stage that changes rows installs a fresh table anyway.
func (l *Layer) Clone() *Layer {
	out := *l
	out.Mapping = l.Mapping.Clone()
	out.mapping = l.mapping.Clone()
	out.Params = l.Params.Clone()
	out.StatParams = l.StatParams.Clone()
	out.statParams = l.statParams.Clone()
	return &out
}

// Setup resolves the layer's data and effective mapping from the
// plot's. env carries plot-level constants for mapping expressions.
func (l *Layer) Setup(plotData *table.Table, plotMapping aes.Mapping, env map[string]cty.Value) error {
	switch {
	case l.OwnData != nil:
		l.data = l.OwnData.Clone()
	case l.DataFn != nil:
		t, err := l.DataFn(plotData)
		if err != nil {
			return errors.Wrap(errors.ErrCodeDataFunction, err, "layer data function failed")
		}
		if t == nil {
			return errors.New(errors.ErrCodeDataFunction, "layer data function returned no table")
		}
		l.data = t.Clone()
	case plotData != nil:
		l.data = plotData.Clone()
	default:
		l.data = table.New()
	}

	if l.InheritAes {
		l.mapping = l.Mapping.Inherit(plotMapping)
	} else {
		l.mapping = l.Mapping.Clone()
	}

	// Literal aesthetic parameters beat mappings for the same
	// aesthetic. A literal group still participates in grouping, so
	// it re-enters the mapping as a quoted constant.
	for name, v := range l.Geom.AesParams() {
		delete(l.mapping, name)
		if name == "group" {
			l.mapping["group"] = aes.Start(expr.Quote(fmt.Sprintf("%v", v)))
		}
	}
	l.env = env
	return nil
}

// ComputeAesthetics evaluates the start-stage mappings into a fresh
// table, stamps PANEL and group, and registers default scales for any
// newly seen aesthetics. The result is sorted by PANEL.
func (l *Layer) ComputeAesthetics(reg *scale.Registry) error {
	evaled := table.New()
	names := startNames(l.mapping)
	for _, name := range names {
		src := l.mapping[name].Start
		ex, err := expr.Parse(src)
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "aesthetic %q", name)
		}
		col, err := ex.Eval(l.data, l.env)
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "aesthetic %q", name)
		}
		if evaled.NCols() > 0 && col.Len() != evaled.NRows() {
			return errors.New(errors.ErrCodeColumnLengthMismatch,
				"aesthetic %q: %d values for %d rows", name, col.Len(), evaled.NRows())
		}
		evaled.Set(name, col)
	}

	reg.AddDefaults(evaled, names)

	// A layer whose aesthetics are all literal parameters evaluates no
	// start mappings, but still draws one mark per input row; keep the
	// working table's row count rather than collapsing to zero.
	n := evaled.NRows()
	if evaled.NCols() == 0 {
		n = l.data.NRows()
	}

	// Layer data already carries PANEL from facet setup. Data-free
	// layers whose mappings still produced rows fall into panel 1.
	switch {
	case l.data.Has("PANEL") && l.data.NRows() == n:
		evaled.Set("PANEL", l.data.MustColumn("PANEL").Clone())
	default:
		ones := make(table.Ints, n)
		for i := range ones {
			ones[i] = 1
		}
		evaled.Set("PANEL", ones)
	}

	evaled = addGroup(evaled)
	l.data = evaled.SortBy("PANEL")
	return nil
}

// ComputeStatistic runs the layer's statistic panel by panel and group
// by group, replacing the working table with the computed rows.
func (l *Layer) ComputeStatistic(layout *facet.Layout) error {
	if l.data.NRows() == 0 {
		l.statParams = l.Stat.DefaultParams().Merge(l.StatParams)
		return nil
	}
	if err := l.applyStatDefaultAes(); err != nil {
		return err
	}
	params := l.Stat.DefaultParams().Merge(l.StatParams)
	params, err := l.Stat.SetupParams(l.data, params)
	if err != nil {
		return err
	}
	data, err := l.Stat.SetupData(l.data, params)
	if err != nil {
		return err
	}
	data, err = computeStatLayer(l.Stat, data, params, layout)
	if err != nil {
		return err
	}
	l.statParams = params
	l.data = data
	return nil
}

// applyStatDefaultAes evaluates the statistic's start-stage default
// aesthetics into the working table before the statistic sees it, so
// SetupParams and ComputeGroup can rely on them. Aesthetics already
// present or mapped by the layer are left alone; calculated defaults
// wait for the mapping stage.
func (l *Layer) applyStatDefaultAes() error {
	starts := l.Stat.DefaultAes().Starting()
	names := make([]string, 0, len(starts))
	for name := range starts {
		if l.data.Has(name) || l.mapping.Has(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ex, err := expr.Parse(starts[name])
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "default aesthetic %q", name)
		}
		col, err := ex.Eval(l.data, l.env)
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "default aesthetic %q", name)
		}
		l.data.Set(name, col)
	}
	return nil
}

// computeStatLayer partitions by PANEL, then by group within each
// panel, computes each group and reassembles the results in partition
// order. Outputs are restamped with their PANEL and group.
func computeStatLayer(s Stat, data *table.Table, params Params, layout *facet.Layout) (*table.Table, error) {
	out := table.New()
	for _, panel := range data.PartitionBy("PANEL") {
		panelID, _ := panel.Key.(int)
		ranges := layout.Ranges(panelID)
		for _, grp := range panel.Table.PartitionBy("group") {
			res, err := s.ComputeGroup(grp.Table, ranges, params)
			if err != nil {
				return nil, err
			}
			if res.NRows() == 0 {
				continue
			}
			res = stampInt(res, "PANEL", panelID)
			res = stampInt(res, "group", grp.Key.(int))
			out, err = table.AppendRows(out, res)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func stampInt(t *table.Table, name string, v int) *table.Table {
	col := make(table.Ints, t.NRows())
	for i := range col {
		col[i] = v
	}
	return t.Set(name, col)
}

// MapStatistic evaluates the calculated (after-stat) mappings against
// the computed statistics and merges the results into the working
// table, a calculated column winning over a computed one of the same
// name. New aesthetics get default scales.
func (l *Layer) MapStatistic(reg *scale.Registry) error {
	if l.data.NRows() == 0 {
		return nil
	}
	combined := l.mapping.Inherit(l.Stat.DefaultAes())
	calc := combined.Calculated()
	if len(calc) == 0 {
		return nil
	}

	statData := table.New()
	names := make([]string, 0, len(calc))
	for name := range calc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ex, err := expr.Parse(calc[name])
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "calculated aesthetic %q", name)
		}
		col, err := ex.Eval(l.data, l.env)
		if err != nil {
			return errors.Wrap(errors.ErrCodeEvaluation, err, "calculated aesthetic %q", name)
		}
		statData.Set(name, col)
	}
	if statData.NRows() == 0 {
		return nil
	}

	// Calculated values live on the original data scale; re-apply
	// the scale transforms so they line up with the start columns.
	if l.Stat.Retransform() {
		statData = reg.TransformDF(statData)
	}
	for _, name := range statData.Names() {
		l.data.Set(name, statData.MustColumn(name))
	}
	reg.AddDefaults(statData, statData.Names())
	return nil
}

// SetupData lets the geometry normalize the table and then verifies
// every required aesthetic is available, either as a column or as a
// literal parameter.
func (l *Layer) SetupData() error {
	if l.data.NRows() == 0 {
		return nil
	}
	data, err := l.Geom.SetupData(l.data, l.drawParams())
	if err != nil {
		return err
	}
	var missing []string
	for _, name := range l.Geom.RequiredAes() {
		if data.Has(name) || l.Geom.AesParams().Has(name) {
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeMissingAesthetic,
			"%s requires the following missing aesthetics: %s",
			l.Geom.Name(), joinNames(missing))
	}
	l.data = data
	return nil
}

// ComputePosition applies the layer's position adjustment.
func (l *Layer) ComputePosition(layout *facet.Layout) error {
	if l.data.NRows() == 0 {
		return nil
	}
	params, err := l.Position.SetupParams(l.data)
	if err != nil {
		return err
	}
	data, err := l.Position.SetupData(l.data, params)
	if err != nil {
		return err
	}
	data, err = l.Position.ComputeLayer(data, params, layout)
	if err != nil {
		return err
	}
	l.data = data
	return nil
}

// FinishStatistics gives the statistic a final pass over the mapped
// table.
func (l *Layer) FinishStatistics() error {
	if l.data.NRows() == 0 {
		return nil
	}
	data, err := l.Stat.FinishLayer(l.data, l.statParams)
	if err != nil {
		return err
	}
	l.data = data
	return nil
}

// Draw fills in default aesthetic values, drops rows the geometry
// cannot draw, and renders the table.
func (l *Layer) Draw(layout *facet.Layout, crd coord.Coord, canvasFor func(panel int) render.Canvas) error {
	if l.data.NRows() == 0 {
		return nil
	}
	params := l.drawParams()
	params["zorder"] = l.ZOrder
	params["raster"] = l.Raster
	data := useDefaults(l.data, l.Geom)
	data = handleNA(data, l.Geom, params.Bool("na_rm", false))
	if data.NRows() == 0 {
		return nil
	}
	return l.Geom.Draw(data, layout, crd, canvasFor, params)
}

func (l *Layer) drawParams() Params {
	return l.Geom.DefaultParams().Merge(l.Params).Merge(l.statParams)
}

// useDefaults adds columns for default aesthetics the mappings never
// produced. Literal aesthetic parameters override the defaults.
func useDefaults(t *table.Table, g Geom) *table.Table {
	n := t.NRows()
	defaults := g.DefaultAes().Merge(g.AesParams())
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	out := t.Clone()
	for _, name := range names {
		if out.Has(name) && !g.AesParams().Has(name) {
			continue
		}
		out.Set(name, constantColumn(defaults[name], n))
	}
	return out
}

func constantColumn(v any, n int) table.Column {
	switch val := v.(type) {
	case float64:
		col := make(table.Floats, n)
		for i := range col {
			col[i] = val
		}
		return col
	case int:
		col := make(table.Ints, n)
		for i := range col {
			col[i] = val
		}
		return col
	case bool:
		col := make(table.Bools, n)
		for i := range col {
			col[i] = val
		}
		return col
	default:
		col := make(table.Strings, n)
		s := fmt.Sprintf("%v", v)
		for i := range col {
			col[i] = s
		}
		return col
	}
}

// handleNA drops rows with a missing value in any required or
// non-missing aesthetic column. With naRM set the rows are dropped
// silently either way; the flag exists so geometries can warn later.
func handleNA(t *table.Table, g Geom, naRM bool) *table.Table {
	check := append(append([]string{}, g.RequiredAes()...), g.NonMissingAes()...)
	var keep []int
rows:
	for i := 0; i < t.NRows(); i++ {
		for _, name := range check {
			col, ok := t.Column(name)
			if !ok {
				continue
			}
			if col.Missing(i) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == t.NRows() {
		return t
	}
	return t.Take(keep)
}

func startNames(m aes.Mapping) []string {
	starts := m.Starting()
	names := make([]string, 0, len(starts))
	for name := range starts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
