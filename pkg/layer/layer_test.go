package layer

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/scale"
	"github.com/gplotdev/gplot/pkg/table"
)

// fakeGeom implements Geom with canned metadata for pipeline tests.
type fakeGeom struct {
	required  []string
	aesParams Params
	defaults  Params
}

func (g fakeGeom) Name() string            { return "geom_fake" }
func (g fakeGeom) RequiredAes() []string   { return g.required }
func (g fakeGeom) NonMissingAes() []string { return nil }
func (g fakeGeom) DefaultAes() Params      { return g.defaults }
func (g fakeGeom) AesParams() Params       { return g.aesParams }
func (g fakeGeom) DefaultParams() Params   { return Params{"na_rm": false} }

func (g fakeGeom) SetupData(t *table.Table, p Params) (*table.Table, error) { return t, nil }

func (g fakeGeom) Draw(t *table.Table, layout *facet.Layout, crd coord.Coord, canvasFor func(int) render.Canvas, p Params) error {
	return nil
}

func newTestLayer(data *table.Table, m aes.Mapping) *Layer {
	return &Layer{
		Geom:       fakeGeom{},
		Mapping:    m,
		OwnData:    data,
		InheritAes: true,
	}
}

func TestSetupDataResolution(t *testing.T) {
	plot := table.New().Set("x", table.Floats{1, 2})
	own := table.New().Set("x", table.Floats{9})

	l := newTestLayer(own, aes.New("x", "x"))
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	if l.Table().NRows() != 1 {
		t.Fatalf("layer data rows = %d, want 1", l.Table().NRows())
	}

	l = newTestLayer(nil, aes.New("x", "x"))
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	if l.Table().NRows() != 2 {
		t.Fatalf("inherited rows = %d, want 2", l.Table().NRows())
	}
}

func TestSetupDataFunc(t *testing.T) {
	plot := table.New().Set("x", table.Floats{1, 2, 3})
	l := newTestLayer(nil, aes.New("x", "x"))
	l.DataFn = func(d *table.Table) (*table.Table, error) {
		return d.Take([]int{0, 1}), nil
	}
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	if l.Table().NRows() != 2 {
		t.Fatalf("derived rows = %d, want 2", l.Table().NRows())
	}

	l.DataFn = func(d *table.Table) (*table.Table, error) {
		return nil, fmt.Errorf("boom")
	}
	err := l.Setup(plot, nil, nil)
	if !errors.Is(err, errors.ErrCodeDataFunction) {
		t.Fatalf("err = %v, want data function error", err)
	}

	l.DataFn = func(d *table.Table) (*table.Table, error) { return nil, nil }
	err = l.Setup(plot, nil, nil)
	if !errors.Is(err, errors.ErrCodeDataFunction) {
		t.Fatalf("err = %v, want data function error for nil table", err)
	}
}

func TestSetupAesParamOverridesMapping(t *testing.T) {
	plot := table.New().Set("x", table.Floats{1})
	l := newTestLayer(nil, aes.New("x", "x", "color", "x"))
	l.Geom = fakeGeom{aesParams: Params{"color": "red"}}
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	if l.mapping.Has("color") {
		t.Fatal("color mapping should have been removed by the literal parameter")
	}
}

func TestCloneSharesTableOwnsParams(t *testing.T) {
	l := newTestLayer(nil, aes.New("x", "x"))
	l.Params = Params{"width": 0.5}
	if err := l.Setup(table.New().Set("x", table.Floats{1, 2}), nil, nil); err != nil {
		t.Fatal(err)
	}
	c := l.Clone()
	if c.Table() != l.Table() {
		t.Fatal("clone should share the working table")
	}
	c.Params["width"] = 0.9
	c.Mapping["y"] = aes.Start("x")
	if l.Params.Float("width", 0) != 0.5 {
		t.Fatal("mutating clone params leaked into the original")
	}
	if l.Mapping.Has("y") {
		t.Fatal("mutating clone mapping leaked into the original")
	}
}

func TestComputeAesthetics(t *testing.T) {
	plot := table.New().
		Set("wt", table.Floats{2.6, 2.9, 2.3}).
		Set("gear", table.Strings{"4", "4", "5"})
	l := newTestLayer(nil, aes.New("x", "wt", "color", "gear"))
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	layout := facet.NewLayout(nil)
	layout.Setup([]*table.Table{l.Table()})
	l.SetTable(layout.SetupData(l.Table()))

	reg := scale.NewRegistry()
	if err := l.ComputeAesthetics(reg); err != nil {
		t.Fatal(err)
	}
	data := l.Table()
	for _, name := range []string{"x", "color", "PANEL", "group"} {
		if !data.Has(name) {
			t.Fatalf("missing column %q after aesthetic computation", name)
		}
	}
	groups, _ := data.IntsCol("group")
	if want := []int{1, 1, 2}; !reflect.DeepEqual(groups, want) {
		t.Fatalf("group = %v, want %v", groups, want)
	}
	if _, ok := reg.Find("color"); !ok {
		t.Fatal("color scale was not registered")
	}
}

func TestComputeAestheticsEmptyData(t *testing.T) {
	l := newTestLayer(nil, aes.Mapping{})
	if err := l.Setup(nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	reg := scale.NewRegistry()
	if err := l.ComputeAesthetics(reg); err != nil {
		t.Fatal(err)
	}
	if l.Table().NRows() != 0 {
		t.Fatalf("rows = %d, want 0", l.Table().NRows())
	}
	if !l.Table().Has("PANEL") || !l.Table().Has("group") {
		t.Fatal("empty table should still carry PANEL and group columns")
	}
}

func TestComputeAestheticsAllLiteralKeepsRows(t *testing.T) {
	plot := table.New().Set("wt", table.Floats{2.6, 2.9, 2.3})
	l := newTestLayer(nil, aes.Mapping{})
	l.Geom = fakeGeom{aesParams: Params{"x": 1.0, "y": 2.0}}
	if err := l.Setup(plot, nil, nil); err != nil {
		t.Fatal(err)
	}
	layout := facet.NewLayout(nil)
	layout.Setup([]*table.Table{l.Table()})
	l.SetTable(layout.SetupData(l.Table()))

	reg := scale.NewRegistry()
	if err := l.ComputeAesthetics(reg); err != nil {
		t.Fatal(err)
	}
	if l.Table().NRows() != 3 {
		t.Fatalf("rows = %d, want one mark per input row", l.Table().NRows())
	}
	panels, _ := l.Table().IntsCol("PANEL")
	for _, p := range panels {
		if p != 1 {
			t.Fatalf("PANEL = %v, want all 1", panels)
		}
	}
}

// fakeStat records the table it was set up with, so tests can observe
// what the statistic sees.
type fakeStat struct {
	defaults aes.Mapping
	seen     *table.Table
}

func (s *fakeStat) Name() string            { return "stat_fake" }
func (s *fakeStat) RequiredAes() []string   { return nil }
func (s *fakeStat) DefaultAes() aes.Mapping { return s.defaults }
func (s *fakeStat) DefaultParams() Params   { return Params{} }
func (s *fakeStat) Creates() []string       { return nil }
func (s *fakeStat) Retransform() bool       { return true }

func (s *fakeStat) SetupParams(t *table.Table, p Params) (Params, error) {
	s.seen = t
	return p, nil
}

func (s *fakeStat) SetupData(t *table.Table, p Params) (*table.Table, error) { return t, nil }

func (s *fakeStat) ComputeGroup(t *table.Table, r *facet.Ranges, p Params) (*table.Table, error) {
	return t, nil
}

func (s *fakeStat) FinishLayer(t *table.Table, p Params) (*table.Table, error) { return t, nil }

func TestComputeStatisticAppliesStartDefaults(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2}).
		Set("PANEL", table.Ints{1, 1}).
		Set("group", table.Ints{NoGroup, NoGroup})
	st := &fakeStat{defaults: aes.Mapping{"weight": aes.Start("1")}}
	l := &Layer{Stat: st}
	l.SetTable(data)
	layout := facet.NewLayout(nil)
	layout.Setup([]*table.Table{data})
	if err := l.ComputeStatistic(layout); err != nil {
		t.Fatal(err)
	}
	if st.seen == nil || !st.seen.Has("weight") {
		t.Fatal("weight default should be in place before the statistic runs")
	}
	ws, _ := st.seen.Floats("weight")
	if !reflect.DeepEqual(ws, []float64{1, 1}) {
		t.Fatalf("weight = %v, want all 1", ws)
	}
}

func TestSetupDataMissingRequired(t *testing.T) {
	l := newTestLayer(nil, aes.New("x", "x"))
	l.Geom = fakeGeom{required: []string{"x", "y"}}
	data := table.New().
		Set("x", table.Floats{1}).
		Set("PANEL", table.Ints{1}).
		Set("group", table.Ints{NoGroup})
	l.SetTable(data)
	err := l.SetupData()
	if !errors.Is(err, errors.ErrCodeMissingAesthetic) {
		t.Fatalf("err = %v, want missing aesthetic error", err)
	}
	want := "geom_fake requires the following missing aesthetics: y"
	if got := errors.UserMessage(err); got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestHandleNADropsMissing(t *testing.T) {
	g := fakeGeom{required: []string{"x", "y"}}
	data := table.New().
		Set("x", table.Floats{1, nanValue(), 3}).
		Set("y", table.Floats{1, 2, 3})
	out := handleNA(data, g, false)
	if out.NRows() != 2 {
		t.Fatalf("rows = %d, want 2", out.NRows())
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestUseDefaultsFillsAndOverrides(t *testing.T) {
	g := fakeGeom{
		defaults:  Params{"color": "black", "size": 1.5},
		aesParams: Params{"color": "red"},
	}
	data := table.New().Set("x", table.Floats{1, 2})
	out := useDefaults(data, g)
	colors := out.MustColumn("color")
	if colors.Value(0) != "red" {
		t.Fatalf("color = %v, want literal override red", colors.Value(0))
	}
	sizes, _ := out.Floats("size")
	if sizes[1] != 1.5 {
		t.Fatalf("size = %v, want default 1.5", sizes[1])
	}
}
