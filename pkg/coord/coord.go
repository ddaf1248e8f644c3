// Package coord converts data-space positions into normalized render
// space.
//
// A Coord takes a table whose position columns are in (transformed,
// mapped) data space plus the owning panel's axis ranges, and rescales
// every position column into [0, 1]. Drawing surfaces then only deal
// with unit coordinates.
package coord

import (
	"math"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/table"
)

// Coord rescales position columns into the unit square.
type Coord interface {
	Transform(t *table.Table, r *facet.Ranges) *table.Table
}

// Cartesian is the standard coordinate system. Flip swaps the x and y
// roles after rescaling.
type Cartesian struct {
	Flip bool
}

func (c Cartesian) Transform(t *table.Table, r *facet.Ranges) *table.Table {
	out := t.Clone()
	for _, name := range t.Names() {
		isX := containsName(aes.XAesthetics, name)
		isY := containsName(aes.YAesthetics, name)
		if !isX && !isY {
			continue
		}
		vals, ok := t.Floats(name)
		if !ok {
			continue
		}
		lo, hi := r.XMin, r.XMax
		if isY {
			lo, hi = r.YMin, r.YMax
		}
		out.Set(name, rescale(vals, lo, hi))
	}
	if c.Flip {
		swapAxes(out)
	}
	return out
}

// rescale maps vals from [lo, hi] to [0, 1]. A degenerate range puts
// every value at the center.
func rescale(vals []float64, lo, hi float64) table.Floats {
	out := make(table.Floats, len(vals))
	span := hi - lo
	for i, v := range vals {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if span == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / span
	}
	return out
}

// swapAxes exchanges each x position column with its y counterpart.
func swapAxes(t *table.Table) {
	for i, xName := range aes.XAesthetics {
		yName := aes.YAesthetics[i]
		xc, hasX := t.Column(xName)
		yc, hasY := t.Column(yName)
		switch {
		case hasX && hasY:
			t.Set(xName, yc)
			t.Set(yName, xc)
		case hasX:
			t.Set(yName, xc)
			t.Del(xName)
		case hasY:
			t.Set(xName, yc)
			t.Del(yName)
		}
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
