package geom

import (
	"math"
	"reflect"
	"testing"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/position"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/stat"
	"github.com/gplotdev/gplot/pkg/table"
)

// recorder counts primitives drawn onto it.
type recorder struct {
	points, lines, rects, polylines, polygons int
	xs, ys                                    []float64
}

func (r *recorder) Point(x, y float64, s render.Style) {
	r.points++
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
}
func (r *recorder) Line(x1, y1, x2, y2 float64, s render.Style) { r.lines++ }
func (r *recorder) Rect(x1, y1, x2, y2 float64, s render.Style) { r.rects++ }
func (r *recorder) Polyline(xs, ys []float64, s render.Style)   { r.polylines++ }
func (r *recorder) Polygon(xs, ys []float64, s render.Style)    { r.polygons++ }
func (r *recorder) Text(x, y float64, t string, s render.Style) {}

func singlePanel(tables ...*table.Table) *facet.Layout {
	l := facet.NewLayout(nil)
	l.Setup(tables)
	l.TrainRanges(tables)
	return l
}

func TestPointConstructorDefaults(t *testing.T) {
	l := Point(aes.New("x", "wt", "y", "mpg"))
	if l.Geom.Name() != "geom_point" {
		t.Fatalf("geom = %s", l.Geom.Name())
	}
	if _, ok := l.Stat.(stat.Identity); !ok {
		t.Fatalf("default stat = %T, want stat.Identity", l.Stat)
	}
	if _, ok := l.Position.(position.Identity); !ok {
		t.Fatalf("default position = %T, want position.Identity", l.Position)
	}
	if !l.InheritAes {
		t.Fatal("layers inherit plot aesthetics by default")
	}
}

func TestBarConstructorDefaults(t *testing.T) {
	l := Bar(aes.New("x", "cyl"))
	if _, ok := l.Stat.(stat.Count); !ok {
		t.Fatalf("default stat = %T, want stat.Count", l.Stat)
	}
	if _, ok := l.Position.(position.Stack); !ok {
		t.Fatalf("default position = %T, want position.Stack", l.Position)
	}
}

func TestHistogramUsesBinStat(t *testing.T) {
	l := Histogram(aes.New("x", "wt"), WithStatParam("bins", 10))
	if _, ok := l.Stat.(stat.Bin); !ok {
		t.Fatalf("stat = %T, want stat.Bin", l.Stat)
	}
	if l.StatParams.Int("bins", 0) != 10 {
		t.Fatalf("bins = %v, want 10", l.StatParams["bins"])
	}
}

func TestOptions(t *testing.T) {
	own := table.New().Set("x", table.Floats{1})
	l := Point(aes.New("x", "x"),
		WithData(own),
		WithStat(stat.Count{}),
		WithPosition(position.Jitter{Seed: 1}),
		WithAes("color", "red"),
		WithParam("na_rm", true),
		WithoutInheritedAes(),
	)
	if l.OwnData != own {
		t.Fatal("WithData not applied")
	}
	if _, ok := l.Stat.(stat.Count); !ok {
		t.Fatal("WithStat not applied")
	}
	if l.InheritAes {
		t.Fatal("WithoutInheritedAes not applied")
	}
	if l.Geom.AesParams().String("color", "") != "red" {
		t.Fatal("WithAes not applied")
	}
	if !l.Params.Bool("na_rm", false) {
		t.Fatal("WithParam not applied")
	}
}

func TestPointDraw(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{0, 5, 10}).
		Set("y", table.Floats{0, 5, 10}).
		Set("PANEL", table.Ints{1, 1, 1}).
		Set("group", table.Ints{-1, -1, -1})
	layout := singlePanel(data)
	rec := &recorder{}
	g := PointGeom{}
	err := g.Draw(data, layout, coord.Cartesian{}, func(int) render.Canvas { return rec }, g.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if rec.points != 3 {
		t.Fatalf("points drawn = %d, want 3", rec.points)
	}
	for i := range rec.xs {
		if rec.xs[i] < 0 || rec.xs[i] > 1 || rec.ys[i] < 0 || rec.ys[i] > 1 {
			t.Fatalf("point %d at (%v, %v), want unit coordinates", i, rec.xs[i], rec.ys[i])
		}
	}
}

func TestLineSetupDataSorts(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{3, 1, 2}).
		Set("y", table.Floats{30, 10, 20}).
		Set("PANEL", table.Ints{1, 1, 1}).
		Set("group", table.Ints{1, 1, 1})
	out, err := LineGeom{}.SetupData(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	xs, _ := out.Floats("x")
	if want := []float64{1, 2, 3}; !reflect.DeepEqual(xs, want) {
		t.Fatalf("x = %v, want sorted %v", xs, want)
	}
}

func TestBarSetupDataExtents(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2}).
		Set("y", table.Floats{3, -2}).
		Set("width", table.Floats{0.9, 0.9})
	out, err := BarGeom{}.SetupData(data, BarGeom{}.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	xmin, _ := out.Floats("xmin")
	if math.Abs(xmin[0]-0.55) > 1e-12 {
		t.Fatalf("xmin = %v, want 0.55", xmin[0])
	}
	ymin, _ := out.Floats("ymin")
	ymax, _ := out.Floats("ymax")
	if ymin[1] != -2 || ymax[1] != 0 {
		t.Fatalf("negative bar bounds = [%v, %v], want [-2, 0]", ymin[1], ymax[1])
	}
}

func TestSmoothDrawsBandThenLine(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{0, 1, 2}).
		Set("y", table.Floats{1, 2, 3}).
		Set("ymin", table.Floats{0.5, 1.5, 2.5}).
		Set("ymax", table.Floats{1.5, 2.5, 3.5}).
		Set("PANEL", table.Ints{1, 1, 1}).
		Set("group", table.Ints{1, 1, 1})
	layout := singlePanel(data)
	rec := &recorder{}
	g := SmoothGeom{}
	err := g.Draw(data, layout, coord.Cartesian{}, func(int) render.Canvas { return rec }, g.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if rec.polygons != 1 || rec.polylines != 1 {
		t.Fatalf("drew %d polygons and %d polylines, want 1 and 1", rec.polygons, rec.polylines)
	}
}

func TestRugDrawsTicks(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2}).
		Set("y", table.Floats{1, 2}).
		Set("PANEL", table.Ints{1, 1}).
		Set("group", table.Ints{-1, -1})
	layout := singlePanel(data)
	rec := &recorder{}
	g := RugGeom{}
	err := g.Draw(data, layout, coord.Cartesian{}, func(int) render.Canvas { return rec }, g.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	// Default sides "bl": one bottom tick per x, one left tick per y.
	if rec.lines != 4 {
		t.Fatalf("ticks drawn = %d, want 4", rec.lines)
	}
}

func TestRequiredAesByGeom(t *testing.T) {
	tests := []struct {
		geom layer.Geom
		want []string
	}{
		{PointGeom{}, []string{"x", "y"}},
		{SegmentGeom{}, []string{"x", "y", "xend", "yend"}},
		{BarGeom{}, []string{"x", "y"}},
		{RugGeom{}, nil},
	}
	for _, tt := range tests {
		if got := tt.geom.RequiredAes(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s required aes = %v, want %v", tt.geom.Name(), got, tt.want)
		}
	}
}
