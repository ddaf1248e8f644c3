package table

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestSetAndLookup(t *testing.T) {
	tab := New()
	tab.Set("x", Floats{1, 2, 3})
	tab.Set("name", Strings{"a", "b", "c"})

	if tab.NRows() != 3 || tab.NCols() != 2 {
		t.Fatalf("NRows=%d NCols=%d, want 3 and 2", tab.NRows(), tab.NCols())
	}
	if !reflect.DeepEqual(tab.Names(), []string{"x", "name"}) {
		t.Errorf("Names = %v", tab.Names())
	}

	// Replacing keeps position.
	tab.Set("x", Floats{4, 5, 6})
	if !reflect.DeepEqual(tab.Names(), []string{"x", "name"}) {
		t.Errorf("Names after replace = %v", tab.Names())
	}
	xs, _ := tab.Floats("x")
	if xs[0] != 4 {
		t.Errorf("x[0] = %v, want 4", xs[0])
	}
}

func TestSetLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set with mismatched length should panic")
		}
	}()
	New().Set("x", Floats{1, 2}).Set("y", Floats{1})
}

func TestSortByStable(t *testing.T) {
	tab := New().
		Set("panel", Ints{2, 1, 2, 1, 1}).
		Set("tag", Strings{"a", "b", "c", "d", "e"})

	sorted := tab.SortBy("panel")
	tags := sorted.MustColumn("tag").(Strings)
	// Ties must preserve original order within each panel.
	want := Strings{"b", "d", "e", "a", "c"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("stable sort order = %v, want %v", tags, want)
	}
}

func TestPartitionByPreservesOrder(t *testing.T) {
	tab := New().
		Set("g", Ints{2, 1, 2, 1}).
		Set("v", Floats{10, 20, 30, 40})

	parts := tab.PartitionBy("g")
	if len(parts) != 2 {
		t.Fatalf("got %d partitions, want 2", len(parts))
	}
	// First appearance order: 2 then 1.
	if parts[0].Key != 2 || parts[1].Key != 1 {
		t.Errorf("partition keys = %v, %v", parts[0].Key, parts[1].Key)
	}
	vs, _ := parts[0].Table.Floats("v")
	if !reflect.DeepEqual(vs, []float64{10, 30}) {
		t.Errorf("partition 0 values = %v", vs)
	}
}

func TestAppendRowsColumnUnion(t *testing.T) {
	a := New().Set("x", Floats{1}).Set("only_a", Strings{"a"})
	b := New().Set("x", Floats{2}).Set("only_b", Floats{9})

	out, err := AppendRows(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if out.NRows() != 2 {
		t.Fatalf("NRows = %d, want 2", out.NRows())
	}
	xs, _ := out.Floats("x")
	if !reflect.DeepEqual(xs, []float64{1, 2}) {
		t.Errorf("x = %v", xs)
	}
	ob, _ := out.Floats("only_b")
	if !math.IsNaN(ob[0]) || ob[1] != 9 {
		t.Errorf("only_b = %v, want [NaN 9]", ob)
	}
	oa := out.MustColumn("only_a").(Strings)
	if oa[0] != "a" || oa[1] != "" {
		t.Errorf("only_a = %v", oa)
	}
}

func TestAppendRowsFillsFactorColumn(t *testing.T) {
	a := New().Set("x", Floats{1}).Set("f", NewFactor([]string{"mid"}, "low", "mid", "high"))
	b := New().Set("x", Floats{2})

	out, err := AppendRows(a, b)
	if err != nil {
		t.Fatal(err)
	}
	f := out.MustColumn("f").(Factor)
	if f.Values[0] != "mid" || !f.Missing(1) {
		t.Errorf("f = %v, want [mid <missing>]", f.Values)
	}
	if !reflect.DeepEqual(f.Levels, []string{"low", "mid", "high"}) {
		t.Errorf("Levels = %v, want declared order kept", f.Levels)
	}
}

func TestAppendRowsKindConflict(t *testing.T) {
	a := New().Set("x", Floats{1})
	b := New().Set("x", Strings{"s"})
	if _, err := AppendRows(a, b); err == nil {
		t.Error("expected kind conflict error")
	}
}

func TestTakeAndClone(t *testing.T) {
	tab := New().Set("x", Floats{1, 2, 3})
	sub := tab.Take([]int{2, 0})
	xs, _ := sub.Floats("x")
	if !reflect.DeepEqual(xs, []float64{3, 1}) {
		t.Errorf("Take = %v", xs)
	}

	cl := tab.Clone()
	cl.MustColumn("x").(Floats)[0] = 99
	orig, _ := tab.Floats("x")
	if orig[0] != 1 {
		t.Error("Clone should not alias the original columns")
	}
}

func TestReadCSV(t *testing.T) {
	src := "x,label\n1,a\n2.5,b\n,c\n"
	tab, err := ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	xs, ok := tab.Floats("x")
	if !ok {
		t.Fatal("x should sniff as numeric")
	}
	if xs[0] != 1 || xs[1] != 2.5 || !math.IsNaN(xs[2]) {
		t.Errorf("x = %v", xs)
	}
	if _, ok := tab.MustColumn("label").(Strings); !ok {
		t.Error("label should sniff as strings")
	}
}

func TestFactorLevels(t *testing.T) {
	f := NewFactor([]string{"mid", "low", "high", "low"}, "low", "mid", "high")

	if !f.Discrete() || f.Kind() != KindString {
		t.Error("factor should be a discrete string column")
	}
	if !reflect.DeepEqual(f.Levels, []string{"low", "mid", "high"}) {
		t.Errorf("Levels = %v", f.Levels)
	}

	// Values outside the declared levels become extra trailing levels.
	g := NewFactor([]string{"a", "z"}, "a", "b")
	if !reflect.DeepEqual(g.Levels, []string{"a", "b", "z"}) {
		t.Errorf("Levels = %v", g.Levels)
	}
}

func TestFactorSortsByLevelOrder(t *testing.T) {
	tab := New().
		Set("grade", NewFactor([]string{"high", "low", "mid"}, "low", "mid", "high")).
		Set("v", Floats{3, 1, 2})

	sorted := tab.SortBy("grade")
	vs, _ := sorted.Floats("v")
	if !reflect.DeepEqual(vs, []float64{1, 2, 3}) {
		t.Errorf("v after sort = %v", vs)
	}
}

func TestFactorAppendUnionsLevels(t *testing.T) {
	a := NewFactor([]string{"x"}, "x", "y")
	b := NewFactor([]string{"z"}, "z")

	merged, ok := a.AppendCol(b)
	if !ok {
		t.Fatal("AppendCol failed")
	}
	f := merged.(Factor)
	if !reflect.DeepEqual([]string(f.Values), []string{"x", "z"}) {
		t.Errorf("Values = %v", f.Values)
	}
	if !reflect.DeepEqual(f.Levels, []string{"x", "y", "z"}) {
		t.Errorf("Levels = %v", f.Levels)
	}
}
