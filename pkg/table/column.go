package table

import (
	"math"
	"time"
)

var nan = math.NaN()

// Kind identifies the semantic type of a column.
type Kind int

// Column kinds. Float, Int and Time columns are continuous; String,
// Bool and Factor columns are discrete.
const (
	KindFloat Kind = iota
	KindInt
	KindString
	KindBool
	KindTime
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Column is an ordered sequence of values of one semantic type.
// Implementations are typed slices; a Column stored in a Table is
// owned by that Table and must not be mutated by callers.
type Column interface {
	// Len returns the number of values.
	Len() int

	// Kind returns the semantic type of the column.
	Kind() Kind

	// Discrete reports whether the column holds categorical values.
	Discrete() bool

	// Value returns the i-th value as an untyped scalar.
	Value(i int) any

	// Missing reports whether the i-th value is a missing value
	// (NaN for floats, the empty string for strings).
	Missing(i int) bool

	// Take returns a new column with the values at the given row
	// indices, in the given order.
	Take(rows []int) Column

	// Clone returns a deep copy.
	Clone() Column

	// AppendCol returns a new column holding this column's values
	// followed by other's. Returns false if the kinds differ.
	AppendCol(other Column) (Column, bool)

	// Empty returns a zero-length column of the same kind.
	Empty() Column
}

// Floats is a continuous numeric column. NaN marks missing values.
type Floats []float64

func (c Floats) Len() int           { return len(c) }
func (c Floats) Kind() Kind         { return KindFloat }
func (c Floats) Discrete() bool     { return false }
func (c Floats) Value(i int) any    { return c[i] }
func (c Floats) Missing(i int) bool { return math.IsNaN(c[i]) }
func (c Floats) Empty() Column      { return Floats{} }

func (c Floats) Take(rows []int) Column {
	out := make(Floats, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Floats) Clone() Column {
	out := make(Floats, len(c))
	copy(out, c)
	return out
}

func (c Floats) AppendCol(other Column) (Column, bool) {
	switch o := other.(type) {
	case Floats:
		return append(c.Clone().(Floats), o...), true
	case Ints:
		out := c.Clone().(Floats)
		for _, v := range o {
			out = append(out, float64(v))
		}
		return out, true
	}
	return nil, false
}

// Ints is an integer column, used for the group and PANEL columns.
type Ints []int

func (c Ints) Len() int           { return len(c) }
func (c Ints) Kind() Kind         { return KindInt }
func (c Ints) Discrete() bool     { return false }
func (c Ints) Value(i int) any    { return c[i] }
func (c Ints) Missing(i int) bool { return false }
func (c Ints) Empty() Column      { return Ints{} }

func (c Ints) Take(rows []int) Column {
	out := make(Ints, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Ints) Clone() Column {
	out := make(Ints, len(c))
	copy(out, c)
	return out
}

func (c Ints) AppendCol(other Column) (Column, bool) {
	switch o := other.(type) {
	case Ints:
		return append(c.Clone().(Ints), o...), true
	case Floats:
		out := make(Floats, 0, len(c)+o.Len())
		for _, v := range c {
			out = append(out, float64(v))
		}
		return append(out, o...), true
	}
	return nil, false
}

// Strings is a categorical column. The empty string marks missing values.
type Strings []string

func (c Strings) Len() int           { return len(c) }
func (c Strings) Kind() Kind         { return KindString }
func (c Strings) Discrete() bool     { return true }
func (c Strings) Value(i int) any    { return c[i] }
func (c Strings) Missing(i int) bool { return c[i] == "" }
func (c Strings) Empty() Column      { return Strings{} }

func (c Strings) Take(rows []int) Column {
	out := make(Strings, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Strings) Clone() Column {
	out := make(Strings, len(c))
	copy(out, c)
	return out
}

func (c Strings) AppendCol(other Column) (Column, bool) {
	if o, ok := other.(Strings); ok {
		return append(c.Clone().(Strings), o...), true
	}
	return nil, false
}

// Bools is a two-level categorical column.
type Bools []bool

func (c Bools) Len() int           { return len(c) }
func (c Bools) Kind() Kind         { return KindBool }
func (c Bools) Discrete() bool     { return true }
func (c Bools) Value(i int) any    { return c[i] }
func (c Bools) Missing(i int) bool { return false }
func (c Bools) Empty() Column      { return Bools{} }

func (c Bools) Take(rows []int) Column {
	out := make(Bools, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Bools) Clone() Column {
	out := make(Bools, len(c))
	copy(out, c)
	return out
}

func (c Bools) AppendCol(other Column) (Column, bool) {
	if o, ok := other.(Bools); ok {
		return append(c.Clone().(Bools), o...), true
	}
	return nil, false
}

// Times is a date/time column, ordered and continuous.
type Times []time.Time

func (c Times) Len() int           { return len(c) }
func (c Times) Kind() Kind         { return KindTime }
func (c Times) Discrete() bool     { return false }
func (c Times) Value(i int) any    { return c[i] }
func (c Times) Missing(i int) bool { return c[i].IsZero() }
func (c Times) Empty() Column      { return Times{} }

func (c Times) Take(rows []int) Column {
	out := make(Times, len(rows))
	for i, r := range rows {
		out[i] = c[r]
	}
	return out
}

func (c Times) Clone() Column {
	out := make(Times, len(c))
	copy(out, c)
	return out
}

func (c Times) AppendCol(other Column) (Column, bool) {
	if o, ok := other.(Times); ok {
		return append(c.Clone().(Times), o...), true
	}
	return nil, false
}

// Factor is a categorical string column with an explicit level order.
// It behaves like Strings except that level-ordering consumers (the
// discrete scale) follow Levels instead of first appearance.
type Factor struct {
	Values Strings
	Levels []string
}

// NewFactor builds a factor column over values. Values absent from
// levels are appended as extra levels in first-appearance order, so
// every value has a level.
func NewFactor(values []string, levels ...string) Factor {
	seen := make(map[string]bool, len(levels))
	out := make([]string, 0, len(levels))
	for _, lv := range levels {
		if !seen[lv] {
			seen[lv] = true
			out = append(out, lv)
		}
	}
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return Factor{Values: append(Strings(nil), values...), Levels: out}
}

func (c Factor) Len() int           { return len(c.Values) }
func (c Factor) Kind() Kind         { return KindString }
func (c Factor) Discrete() bool     { return true }
func (c Factor) Value(i int) any    { return c.Values[i] }
func (c Factor) Missing(i int) bool { return c.Values[i] == "" }
func (c Factor) Empty() Column      { return Factor{Levels: c.Levels} }

func (c Factor) Take(rows []int) Column {
	return Factor{Values: c.Values.Take(rows).(Strings), Levels: c.Levels}
}

func (c Factor) Clone() Column {
	return Factor{
		Values: c.Values.Clone().(Strings),
		Levels: append([]string(nil), c.Levels...),
	}
}

// AppendCol concatenates another factor or plain string column. Levels
// are united, this column's order first.
func (c Factor) AppendCol(other Column) (Column, bool) {
	switch o := other.(type) {
	case Factor:
		return NewFactor(append(c.Values.Clone().(Strings), o.Values...),
			append(append([]string(nil), c.Levels...), o.Levels...)...), true
	case Strings:
		return NewFactor(append(c.Values.Clone().(Strings), o...), c.Levels...), true
	}
	return nil, false
}

// levelIndex returns the position of v in the level order, or -1.
func (c Factor) levelIndex(v string) int {
	for i, lv := range c.Levels {
		if lv == v {
			return i
		}
	}
	return -1
}

// compareValues orders two values of the same column for stable sorts.
// Returns a negative, zero or positive number.
func compareValues(c Column, i, j int) int {
	switch col := c.(type) {
	case Floats:
		switch {
		case col[i] < col[j]:
			return -1
		case col[i] > col[j]:
			return 1
		}
		return 0
	case Ints:
		return col[i] - col[j]
	case Strings:
		switch {
		case col[i] < col[j]:
			return -1
		case col[i] > col[j]:
			return 1
		}
		return 0
	case Bools:
		bi, bj := col[i], col[j]
		switch {
		case !bi && bj:
			return -1
		case bi && !bj:
			return 1
		}
		return 0
	case Times:
		return col[i].Compare(col[j])
	case Factor:
		return col.levelIndex(col.Values[i]) - col.levelIndex(col.Values[j])
	}
	return 0
}
