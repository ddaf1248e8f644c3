package scale

import (
	"reflect"
	"testing"

	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/table"
)

func TestAddDefaults(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2}).
		Set("color", table.Strings{"a", "b"}).
		Set("group", table.Ints{1, 1}).
		Set("PANEL", table.Ints{1, 1})

	r := NewRegistry()
	r.AddDefaults(data, []string{"x", "color", "group", "PANEL"})

	sx, ok := r.Find("x")
	if !ok || sx.IsDiscrete() {
		t.Error("x should get a continuous scale")
	}
	if _, ok := r.Find("xmax"); !ok {
		t.Error("the x scale should cover xmax")
	}
	sc, ok := r.Find("color")
	if !ok || !sc.IsDiscrete() {
		t.Error("color should get a discrete scale")
	}
	if _, ok := r.Find("group"); ok {
		t.Error("group must never get a scale")
	}
	if _, ok := r.Find("PANEL"); ok {
		t.Error("PANEL must never get a scale")
	}

	// Repeated registration is a no-op.
	r.AddDefaults(data, []string{"x", "color"})
	if len(r.Scales()) != 2 {
		t.Errorf("got %d scales, want 2", len(r.Scales()))
	}
}

func TestAddConflict(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(NewContinuous("x", "xmin", "xmax")); err != nil {
		t.Fatal(err)
	}
	err := r.Add(NewContinuous("x"))
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("duplicate scale error = %v", err)
	}
}

func TestTrainAndMapDF(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{5, 1, 3}).
		Set("color", table.Strings{"red", "blue", "red"}).
		Set("count", table.Floats{1, 1, 1})

	r := NewRegistry()
	r.AddDefaults(data, []string{"x", "color"})
	r.TrainDF(data)

	sx := mustContinuous(t, r, "x")
	min, max, _ := sx.Domain()
	if min != 1 || max != 5 {
		t.Errorf("x domain = [%v,%v]", min, max)
	}

	mapped := r.MapDF(data)
	colors, _ := mapped.Floats("color")
	if !reflect.DeepEqual(colors, []float64{1, 2, 1}) {
		t.Errorf("mapped color = %v", colors)
	}
	// Columns without a scale are untouched.
	if _, ok := mapped.MustColumn("count").(table.Floats); !ok {
		t.Error("count column should be untouched")
	}
}

func TestTransformDF(t *testing.T) {
	data := table.New().Set("x", table.Floats{1, 10, 100})
	r := NewRegistry()
	if err := r.Add(NewContinuous("x").WithTrans(Log10Trans)); err != nil {
		t.Fatal(err)
	}
	out := r.TransformDF(data)
	xs, _ := out.Floats("x")
	if !reflect.DeepEqual(xs, []float64{0, 1, 2}) {
		t.Errorf("transformed x = %v", xs)
	}
	// The input table is not mutated.
	orig, _ := data.Floats("x")
	if orig[0] != 1 {
		t.Error("TransformDF must not mutate its input")
	}
}

func mustContinuous(t *testing.T, r *Registry, aes string) *Continuous {
	t.Helper()
	s, ok := r.Find(aes)
	if !ok {
		t.Fatalf("no scale for %q", aes)
	}
	c, ok := s.(*Continuous)
	if !ok {
		t.Fatalf("scale for %q is not continuous", aes)
	}
	return c
}
