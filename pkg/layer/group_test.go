package layer

import (
	"reflect"
	"testing"

	"github.com/gplotdev/gplot/pkg/table"
)

func TestNinteractionDense(t *testing.T) {
	col := table.Strings{"b", "a", "b", "c", "a"}
	got := ninteraction([]table.Column{col}, len(col))
	want := table.Ints{1, 2, 1, 3, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
}

func TestNinteractionMultipleColumns(t *testing.T) {
	a := table.Strings{"x", "x", "y", "x"}
	b := table.Ints{1, 2, 1, 1}
	got := ninteraction([]table.Column{a, b}, 4)
	want := table.Ints{1, 2, 3, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
}

func TestAddGroupNoDiscrete(t *testing.T) {
	tbl := table.New().Set("x", table.Floats{1, 2, 3})
	tbl = addGroup(tbl)
	got, _ := tbl.IntsCol("group")
	for _, v := range got {
		if v != NoGroup {
			t.Fatalf("group = %v, want all %d", got, NoGroup)
		}
	}
}

func TestAddGroupFromDiscrete(t *testing.T) {
	tbl := table.New().
		Set("x", table.Floats{1, 2, 3, 4}).
		Set("color", table.Strings{"r", "g", "r", "b"})
	tbl = addGroup(tbl)
	got, _ := tbl.IntsCol("group")
	want := []int{1, 2, 1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("group = %v, want %v", got, want)
	}
}

func TestAddGroupIgnoresScaledBounds(t *testing.T) {
	tbl := table.New().
		Set("x", table.Floats{1, 2}).
		Set("xmin", table.Strings{"a", "b"})
	tbl = addGroup(tbl)
	got, _ := tbl.IntsCol("group")
	for _, v := range got {
		if v != NoGroup {
			t.Fatalf("group = %v, want all %d", got, NoGroup)
		}
	}
}

func TestAddGroupIgnoresUnscaledColumns(t *testing.T) {
	tbl := table.New().
		Set("x", table.Floats{1, 2, 3}).
		Set("label", table.Strings{"a", "b", "c"})
	tbl = addGroup(tbl)
	got, _ := tbl.IntsCol("group")
	for _, v := range got {
		if v != NoGroup {
			t.Fatalf("group = %v, want all %d", got, NoGroup)
		}
	}
}

func TestAddGroupExplicitRecode(t *testing.T) {
	tbl := table.New().
		Set("x", table.Floats{1, 2, 3}).
		Set("group", table.Ints{7, 3, 7})
	tbl = addGroup(tbl)
	got, _ := tbl.IntsCol("group")
	want := []int{1, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("group = %v, want %v", got, want)
	}
}
