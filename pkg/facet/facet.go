// Package facet lays a plot out into panels.
//
// A Facet decides how many panels a plot has and which panel each data
// row belongs to. The resulting Layout is a read-only collaborator for
// the rest of the pipeline: statistic computation and position
// adjustment read per-panel axis ranges from it, and the renderer reads
// the panel grid geometry.
package facet

import (
	"math"
	"sort"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/table"
)

// Panel is one faceted sub-plot area. IDs are 1-based.
type Panel struct {
	ID    int
	Level string // facet level value; "" for the single-panel layout
	Row   int
	Col   int
}

// Ranges holds one panel's data-space axis extents. Zero value means
// untrained.
type Ranges struct {
	XMin, XMax float64
	YMin, YMax float64

	xTrained, yTrained bool
}

// Trained reports whether any data trained these ranges.
func (r *Ranges) Trained() bool { return r.xTrained || r.yTrained }

func (r *Ranges) trainX(v float64) {
	if math.IsNaN(v) {
		return
	}
	if !r.xTrained {
		r.XMin, r.XMax, r.xTrained = v, v, true
		return
	}
	if v < r.XMin {
		r.XMin = v
	}
	if v > r.XMax {
		r.XMax = v
	}
}

func (r *Ranges) trainY(v float64) {
	if math.IsNaN(v) {
		return
	}
	if !r.yTrained {
		r.YMin, r.YMax, r.yTrained = v, v, true
		return
	}
	if v < r.YMin {
		r.YMin = v
	}
	if v > r.YMax {
		r.YMax = v
	}
}

// Facet decides the panel set and per-row panel membership.
type Facet interface {
	// Panels determines the panel set from the plot's and layers'
	// tables.
	Panels(tables []*table.Table) []Panel

	// PanelOf returns the 1-based panel id for each row of t.
	PanelOf(t *table.Table, panels []Panel) table.Ints
}

// Null is the single-panel layout.
type Null struct{}

func (Null) Panels(tables []*table.Table) []Panel {
	return []Panel{{ID: 1, Row: 0, Col: 0}}
}

func (Null) PanelOf(t *table.Table, panels []Panel) table.Ints {
	ids := make(table.Ints, t.NRows())
	for i := range ids {
		ids[i] = 1
	}
	return ids
}

// Wrap facets by the levels of one discrete column, one panel per
// level, wrapped into a near-square grid.
type Wrap struct {
	// Column is the faceting column name.
	Column string

	// NCol forces the number of grid columns; 0 chooses
	// automatically.
	NCol int
}

func (w Wrap) Panels(tables []*table.Table) []Panel {
	seen := map[string]bool{}
	var levels []string
	for _, t := range tables {
		if t == nil {
			continue
		}
		col, ok := t.Column(w.Column)
		if !ok {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Value(i).(string); ok && !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
	}
	sort.Strings(levels)
	if len(levels) == 0 {
		return Null{}.Panels(tables)
	}

	ncol := w.NCol
	if ncol <= 0 {
		ncol = int(math.Ceil(math.Sqrt(float64(len(levels)))))
	}
	panels := make([]Panel, len(levels))
	for i, lv := range levels {
		panels[i] = Panel{ID: i + 1, Level: lv, Row: i / ncol, Col: i % ncol}
	}
	return panels
}

func (w Wrap) PanelOf(t *table.Table, panels []Panel) table.Ints {
	byLevel := map[string]int{}
	for _, p := range panels {
		byLevel[p.Level] = p.ID
	}
	ids := make(table.Ints, t.NRows())
	col, ok := t.Column(w.Column)
	for i := range ids {
		ids[i] = 1
		if !ok {
			continue
		}
		if v, isStr := col.Value(i).(string); isStr {
			if id, found := byLevel[v]; found {
				ids[i] = id
			}
		}
	}
	return ids
}

// Layout is the trained panel layout of one plot build. It is produced
// before per-layer aesthetic evaluation and read-only afterwards.
type Layout struct {
	facet  Facet
	panels []Panel
	ranges map[int]*Ranges
}

// NewLayout creates a layout for the given facet (Null when nil).
func NewLayout(f Facet) *Layout {
	if f == nil {
		f = Null{}
	}
	return &Layout{facet: f, ranges: map[int]*Ranges{}}
}

// Setup trains the panel set from the plot's and layers' tables.
func (l *Layout) Setup(tables []*table.Table) {
	l.panels = l.facet.Panels(tables)
	for _, p := range l.panels {
		l.ranges[p.ID] = &Ranges{}
	}
}

// Panels returns the trained panel set.
func (l *Layout) Panels() []Panel { return l.panels }

// NPanels returns the number of panels.
func (l *Layout) NPanels() int { return len(l.panels) }

// Grid returns the number of grid rows and columns.
func (l *Layout) Grid() (rows, cols int) {
	for _, p := range l.panels {
		if p.Row+1 > rows {
			rows = p.Row + 1
		}
		if p.Col+1 > cols {
			cols = p.Col + 1
		}
	}
	return rows, cols
}

// SetupData stamps the PANEL column onto a layer's table. An existing
// PANEL column is kept; an empty table gets PANEL for zero rows.
func (l *Layout) SetupData(t *table.Table) *table.Table {
	if t.Has("PANEL") {
		return t
	}
	out := t.Clone()
	out.Set("PANEL", l.facet.PanelOf(t, l.panels))
	return out
}

// TrainRanges widens per-panel axis ranges with the position columns
// of the given tables. Called after statistic mapping so computed
// aesthetics (counts, smooth bands) contribute to panel extents.
func (l *Layout) TrainRanges(tables []*table.Table) {
	for _, t := range tables {
		if t == nil || t.NRows() == 0 || !t.Has("PANEL") {
			continue
		}
		panelIDs, _ := t.IntsCol("PANEL")
		for _, name := range t.Names() {
			isX := contains(aes.XAesthetics, name)
			isY := contains(aes.YAesthetics, name)
			if !isX && !isY {
				continue
			}
			vals, ok := t.Floats(name)
			if !ok {
				continue
			}
			for i, v := range vals {
				r, found := l.ranges[panelIDs[i]]
				if !found {
					continue
				}
				if isX {
					r.trainX(v)
				} else {
					r.trainY(v)
				}
			}
		}
	}
}

// ResetRanges discards all trained axis ranges. Called between range
// training passes: once statistics and scale mapping change the
// numeric space, ranges trained on the raw values no longer apply.
func (l *Layout) ResetRanges() {
	for id := range l.ranges {
		l.ranges[id] = &Ranges{}
	}
}

// Ranges returns the axis ranges of one panel. Unknown panel ids get
// untrained ranges.
func (l *Layout) Ranges(panelID int) *Ranges {
	if r, ok := l.ranges[panelID]; ok {
		return r
	}
	return &Ranges{}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
