package expr

import (
	"math"
	"reflect"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/table"
)

func dataTable() *table.Table {
	return table.New().
		Set("wt", table.Floats{1.5, 2.0, 2.5}).
		Set("cyl", table.Floats{4, 6, 8}).
		Set("name", table.Strings{"a", "b", "c"})
}

func TestEvalColumnReference(t *testing.T) {
	e := MustParse("wt")
	col, err := e.Eval(dataTable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(col, table.Floats{1.5, 2.0, 2.5}) {
		t.Errorf("col = %v", col)
	}
}

func TestEvalArithmetic(t *testing.T) {
	e := MustParse("wt * 1000 + cyl")
	col, err := e.Eval(dataTable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := table.Floats{1504, 2006, 2508}
	if !reflect.DeepEqual(col, want) {
		t.Errorf("col = %v, want %v", col, want)
	}
}

func TestEvalFactor(t *testing.T) {
	e := MustParse("factor(cyl)")
	col, err := e.Eval(dataTable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := table.Strings{"4", "6", "8"}
	if !reflect.DeepEqual(col, want) {
		t.Errorf("factor(cyl) = %v, want %v", col, want)
	}
	if !col.Discrete() {
		t.Error("factor output should be discrete")
	}
}

func TestEvalStringLiteralBroadcasts(t *testing.T) {
	e := MustParse(`"fixed"`)
	col, err := e.Eval(dataTable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(col, table.Strings{"fixed", "fixed", "fixed"}) {
		t.Errorf("col = %v", col)
	}
}

func TestEvalListLiteralExpands(t *testing.T) {
	e := MustParse("[1, 2, 3, 4]")
	col, err := e.Eval(table.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(col, table.Floats{1, 2, 3, 4}) {
		t.Errorf("col = %v", col)
	}
}

func TestEvalEnvConstant(t *testing.T) {
	e := MustParse("wt * scale")
	col, err := e.Eval(dataTable(), map[string]cty.Value{
		"scale": cty.NumberFloatVal(2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(col, table.Floats{3, 4, 5}) {
		t.Errorf("col = %v", col)
	}
}

func TestEvalUnknownNameFails(t *testing.T) {
	e := MustParse("nope + 1")
	_, err := e.Eval(dataTable(), nil)
	if err == nil {
		t.Fatal("expected error for unknown name")
	}
	if !errors.Is(err, errors.ErrCodeEvaluation) {
		t.Errorf("error code = %v", errors.GetCode(err))
	}
}

func TestEvalMissingValuePropagates(t *testing.T) {
	tab := table.New().Set("x", table.Floats{1, math.NaN()})
	col, err := MustParse("x * 2").Eval(tab, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs := col.(table.Floats)
	if fs[0] != 2 || !math.IsNaN(fs[1]) {
		t.Errorf("col = %v, want [2 NaN]", fs)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse("wt +"); err == nil {
		t.Error("expected parse error")
	}
}

func TestVars(t *testing.T) {
	e := MustParse("b + a + factor(a)")
	if !reflect.DeepEqual(e.Vars(), []string{"a", "b"}) {
		t.Errorf("Vars = %v", e.Vars())
	}
}
