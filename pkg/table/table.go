// Package table provides the columnar data structure consumed by the
// plot-building pipeline.
//
// A Table is an ordered collection of named columns of equal length.
// Rows correspond 1:1 across columns. Tables are treated as values by
// the pipeline: every stage produces a new Table rather than mutating
// its input in place, so stages can be tested independently.
//
// # Conventions
//
//   - Column names are case-sensitive and unique within a table.
//   - The reserved columns "PANEL" (panel id) and "group" (group id)
//     are Ints columns stamped by the pipeline.
//   - Missing values are NaN in Floats columns and "" in Strings
//     columns; geometries decide whether to drop such rows.
package table

import (
	"fmt"
	"sort"
)

// Table is an ordered collection of named, equal-length columns.
type Table struct {
	names []string
	cols  map[string]Column
}

// New returns an empty table with no columns and no rows.
func New() *Table {
	return &Table{cols: make(map[string]Column)}
}

// NRows returns the number of rows. A table with no columns has zero rows.
func (t *Table) NRows() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.cols[t.names[0]].Len()
}

// NCols returns the number of columns.
func (t *Table) NCols() int { return len(t.names) }

// Names returns the column names in order. The returned slice must not
// be modified.
func (t *Table) Names() []string { return t.names }

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// MustColumn returns the named column or panics. It is intended for
// pipeline-internal access to columns whose presence was already
// validated.
func (t *Table) MustColumn(name string) Column {
	c, ok := t.cols[name]
	if !ok {
		panic(fmt.Sprintf("table: no column %q", name))
	}
	return c
}

// Set adds or replaces the named column and returns t for chaining.
// All columns in a table must have the same length; Set panics when
// adding a column whose length differs from existing columns.
func (t *Table) Set(name string, col Column) *Table {
	_, exists := t.cols[name]
	// Replacing the only column may change the row count; anything
	// else must match the current length.
	soleColumn := exists && len(t.names) == 1
	if len(t.names) > 0 && !soleColumn && col.Len() != t.NRows() {
		panic(fmt.Sprintf("table: column %q has %d values, table has %d rows",
			name, col.Len(), t.NRows()))
	}
	if !exists {
		t.names = append(t.names, name)
	}
	t.cols[name] = col
	return t
}

// Del removes the named column, if present.
func (t *Table) Del(name string) {
	if _, ok := t.cols[name]; !ok {
		return
	}
	delete(t.cols, name)
	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	nt := New()
	for _, name := range t.names {
		nt.Set(name, t.cols[name].Clone())
	}
	return nt
}

// Take returns a new table with the given rows, in the given order.
// Row indices may repeat.
func (t *Table) Take(rows []int) *Table {
	nt := New()
	for _, name := range t.names {
		nt.Set(name, t.cols[name].Take(rows))
	}
	return nt
}

// Floats returns the named column as a float slice. Ints columns are
// converted; the slice backing a Floats column is returned directly
// and must not be modified.
func (t *Table) Floats(name string) ([]float64, bool) {
	c, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	switch col := c.(type) {
	case Floats:
		return col, true
	case Ints:
		out := make([]float64, len(col))
		for i, v := range col {
			out[i] = float64(v)
		}
		return out, true
	}
	return nil, false
}

// IntsCol returns the named column as an int slice (Ints columns only).
func (t *Table) IntsCol(name string) ([]int, bool) {
	c, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	if col, ok := c.(Ints); ok {
		return col, true
	}
	return nil, false
}

// SortBy returns a new table sorted by the named columns using a
// stable sort: rows that compare equal keep their original relative
// order. Unknown column names panic.
func (t *Table) SortBy(names ...string) *Table {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = t.MustColumn(n)
	}
	rows := make([]int, t.NRows())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		for _, c := range cols {
			if d := compareValues(c, rows[a], rows[b]); d != 0 {
				return d < 0
			}
		}
		return false
	})
	return t.Take(rows)
}

// Partition is one slice of a partitioned table.
type Partition struct {
	// Key is the partitioning value shared by all rows.
	Key any

	// Rows holds the original row indices, in original order.
	Rows []int

	// Table holds the partition's rows, in original order.
	Table *Table
}

// PartitionBy splits the table by the values of the named column.
// Partitions are ordered by first appearance of their key, and rows
// within a partition keep their original relative order.
func (t *Table) PartitionBy(name string) []Partition {
	col := t.MustColumn(name)
	index := make(map[any]int)
	var parts []Partition
	for i := 0; i < col.Len(); i++ {
		k := col.Value(i)
		pi, ok := index[k]
		if !ok {
			pi = len(parts)
			index[k] = pi
			parts = append(parts, Partition{Key: k})
		}
		parts[pi].Rows = append(parts[pi].Rows, i)
	}
	for i := range parts {
		parts[i].Table = t.Take(parts[i].Rows)
	}
	return parts
}

// AppendRows concatenates b's rows below a's. The result has the union
// of both tables' columns in a-then-b name order; positions missing
// from one side are filled with that column kind's zero value (NaN for
// floats, "" for strings). Column kind conflicts return an error.
func AppendRows(a, b *Table) (*Table, error) {
	if a.NCols() == 0 {
		return b.Clone(), nil
	}
	if b.NCols() == 0 {
		return a.Clone(), nil
	}
	nt := New()
	for _, name := range a.names {
		ac := a.cols[name]
		if bc, ok := b.cols[name]; ok {
			merged, ok := ac.AppendCol(bc)
			if !ok {
				return nil, fmt.Errorf("table: column %q has kind %s on one side and %s on the other",
					name, ac.Kind(), bc.Kind())
			}
			nt.Set(name, merged)
		} else {
			merged, _ := ac.AppendCol(fill(ac, b.NRows()))
			nt.Set(name, merged)
		}
	}
	for _, name := range b.names {
		if a.Has(name) {
			continue
		}
		bc := b.cols[name]
		merged, _ := fill(bc, a.NRows()).AppendCol(bc)
		nt.Set(name, merged)
	}
	return nt, nil
}

// fill returns an n-length column of missing/zero values matching the
// kind of proto.
func fill(proto Column, n int) Column {
	switch p := proto.(type) {
	case Floats:
		out := make(Floats, n)
		for i := range out {
			out[i] = nan
		}
		return out
	case Ints:
		return make(Ints, n)
	case Strings:
		return make(Strings, n)
	case Bools:
		return make(Bools, n)
	case Times:
		return make(Times, n)
	case Factor:
		return Factor{Values: make(Strings, n), Levels: p.Levels}
	}
	return nil
}
