package layer

import (
	"fmt"
	"strings"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/table"
)

// NoGroup marks rows that belong to no group. It sorts before every
// real group code, which are assigned from 1 upward.
const NoGroup = -1

// addGroup ensures the table carries a dense integer "group" column.
//
// When the user mapped a group aesthetic explicitly, its values are
// recoded alone. Otherwise the group is the interaction of every
// discrete scaled-aesthetic column; columns outside the scaled set,
// such as labels, never form groups. With no discrete scaled columns
// at all, every row gets NoGroup.
func addGroup(t *table.Table) *table.Table {
	n := t.NRows()
	if t.Has("group") {
		col := t.MustColumn("group")
		return t.Set("group", ninteraction([]table.Column{col}, n))
	}

	var discrete []table.Column
	for _, name := range t.Names() {
		if !aes.IsScaled(name) {
			continue
		}
		if col := t.MustColumn(name); col.Discrete() {
			discrete = append(discrete, col)
		}
	}
	if len(discrete) == 0 {
		codes := make(table.Ints, n)
		for i := range codes {
			codes[i] = NoGroup
		}
		return t.Set("group", codes)
	}
	return t.Set("group", ninteraction(discrete, n))
}

// ninteraction assigns each distinct combination of values across the
// columns a code from 1..k, in order of first appearance. The coding
// is dense: unused combinations get no code.
func ninteraction(cols []table.Column, n int) table.Ints {
	codes := make(table.Ints, n)
	seen := make(map[string]int)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.Reset()
		for _, col := range cols {
			fmt.Fprintf(&b, "%v\x1f", col.Value(i))
		}
		key := b.String()
		code, ok := seen[key]
		if !ok {
			code = len(seen) + 1
			seen[key] = code
		}
		codes[i] = code
	}
	return codes
}
