package facet

import (
	"reflect"
	"testing"

	"github.com/gplotdev/gplot/pkg/table"
)

func TestNullLayout(t *testing.T) {
	l := NewLayout(nil)
	data := table.New().Set("x", table.Floats{1, 2, 3})
	l.Setup([]*table.Table{data})

	if l.NPanels() != 1 {
		t.Fatalf("NPanels = %d, want 1", l.NPanels())
	}

	out := l.SetupData(data)
	ids, _ := out.IntsCol("PANEL")
	if !reflect.DeepEqual(ids, []int{1, 1, 1}) {
		t.Errorf("PANEL = %v", ids)
	}
}

func TestWrapPanels(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2, 3, 4}).
		Set("site", table.Strings{"b", "a", "b", "c"})

	l := NewLayout(Wrap{Column: "site"})
	l.Setup([]*table.Table{data})

	if l.NPanels() != 3 {
		t.Fatalf("NPanels = %d, want 3", l.NPanels())
	}
	// Levels sort lexically: a=1, b=2, c=3.
	out := l.SetupData(data)
	ids, _ := out.IntsCol("PANEL")
	if !reflect.DeepEqual(ids, []int{2, 1, 2, 3}) {
		t.Errorf("PANEL = %v", ids)
	}

	rows, cols := l.Grid()
	if rows*cols < 3 {
		t.Errorf("grid %dx%d cannot hold 3 panels", rows, cols)
	}
}

func TestSetupDataKeepsExistingPanel(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 2}).
		Set("PANEL", table.Ints{2, 2})

	l := NewLayout(nil)
	l.Setup([]*table.Table{data})
	out := l.SetupData(data)
	ids, _ := out.IntsCol("PANEL")
	if !reflect.DeepEqual(ids, []int{2, 2}) {
		t.Errorf("PANEL = %v, existing column must be kept", ids)
	}
}

func TestTrainRanges(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 5, 3}).
		Set("y", table.Floats{10, 20, 30}).
		Set("ymax", table.Floats{12, 25, 99}).
		Set("PANEL", table.Ints{1, 1, 1})

	l := NewLayout(nil)
	l.Setup([]*table.Table{data})
	l.TrainRanges([]*table.Table{data})

	r := l.Ranges(1)
	if !r.Trained() {
		t.Fatal("ranges not trained")
	}
	if r.XMin != 1 || r.XMax != 5 {
		t.Errorf("x range = [%v,%v]", r.XMin, r.XMax)
	}
	// ymax participates in the y extent.
	if r.YMin != 10 || r.YMax != 99 {
		t.Errorf("y range = [%v,%v]", r.YMin, r.YMax)
	}
}

func TestTrainRangesPerPanel(t *testing.T) {
	data := table.New().
		Set("x", table.Floats{1, 100}).
		Set("PANEL", table.Ints{1, 2})

	l := NewLayout(Wrap{Column: "site"})
	l.panels = []Panel{{ID: 1}, {ID: 2}}
	l.ranges = map[int]*Ranges{1: {}, 2: {}}
	l.TrainRanges([]*table.Table{data})

	if r := l.Ranges(1); r.XMax != 1 {
		t.Errorf("panel 1 XMax = %v", r.XMax)
	}
	if r := l.Ranges(2); r.XMin != 100 {
		t.Errorf("panel 2 XMin = %v", r.XMin)
	}
}
