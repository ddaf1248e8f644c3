// Package expr evaluates aesthetic mapping expressions against tables.
//
// Mapping expressions use HCL expression syntax and are evaluated with
// the table's columns in scope plus any caller-supplied constants. An
// expression is parsed once and evaluated row-wise: each referenced
// column contributes one scalar per row.
//
// Examples:
//
//	wt              // the column itself
//	wt * 1000       // arithmetic on a column
//	factor(cyl)     // coerce a numeric column to a categorical one
//	"setosa"        // a constant categorical value for every row
//	[1, 2, 3]       // literal values, one per row
//
// Evaluation failures are never masked: they surface as structured
// errors carrying the expression source and the HCL diagnostics.
package expr

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/table"
)

// Expr is a parsed mapping expression.
type Expr struct {
	src  string
	expr hcl.Expression
	vars []string
}

// Parse compiles an expression. The source position reported in
// diagnostics is relative to the expression itself.
func Parse(src string) (*Expr, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "aes", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeEvaluation, diags, "parsing expression %q", src)
	}

	seen := map[string]bool{}
	var vars []string
	for _, tr := range expr.Variables() {
		name := tr.RootName()
		if !seen[name] {
			seen[name] = true
			vars = append(vars, name)
		}
	}
	sort.Strings(vars)

	return &Expr{src: src, expr: expr, vars: vars}, nil
}

// Source returns the original expression source.
func (e *Expr) Source() string { return e.src }

// Vars returns the sorted root variable names the expression references.
func (e *Expr) Vars() []string { return e.vars }

// Eval evaluates the expression against a table. Columns referenced by
// name are bound row-by-row; names not found in the table are resolved
// from env. The result column has one value per table row, except for
// list/tuple literals which yield one value per element.
func (e *Expr) Eval(t *table.Table, env map[string]cty.Value) (table.Column, error) {
	cols := map[string]table.Column{}
	for _, name := range e.vars {
		if c, ok := t.Column(name); ok {
			cols[name] = c
			continue
		}
		if _, ok := env[name]; !ok {
			return nil, errors.New(errors.ErrCodeEvaluation,
				"expression %q references %q, which is neither a column nor defined in the environment",
				e.src, name)
		}
	}

	if len(cols) == 0 {
		return e.evalConstant(t.NRows(), env)
	}

	n := t.NRows()
	results := make([]cty.Value, n)
	vars := make(map[string]cty.Value, len(e.vars))
	for name, v := range env {
		vars[name] = v
	}
	for i := 0; i < n; i++ {
		// A missing value in any referenced column makes the whole
		// row missing; cty has no NaN, so the row is not evaluated.
		missing := false
		for name, col := range cols {
			if col.Missing(i) {
				missing = true
				break
			}
			vars[name] = ctyScalar(col, i)
		}
		if missing {
			results[i] = cty.NullVal(cty.DynamicPseudoType)
			continue
		}
		v, diags := e.expr.Value(&hcl.EvalContext{Variables: vars, Functions: builtins})
		if diags.HasErrors() {
			return nil, errors.Wrap(errors.ErrCodeEvaluation, diags,
				"evaluating expression %q at row %d", e.src, i)
		}
		results[i] = v
	}
	return fromCtyValues(results, e.src)
}

// evalConstant handles expressions with no column references: literal
// scalars broadcast to the table length, and literal lists expand to
// one row per element (the "vectors supplied to aesthetics" case).
func (e *Expr) evalConstant(nrows int, env map[string]cty.Value) (table.Column, error) {
	v, diags := e.expr.Value(&hcl.EvalContext{Variables: env, Functions: builtins})
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeEvaluation, diags, "evaluating expression %q", e.src)
	}

	if v.Type().IsTupleType() || v.Type().IsListType() {
		var results []cty.Value
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			results = append(results, ev)
		}
		return fromCtyValues(results, e.src)
	}

	results := make([]cty.Value, nrows)
	for i := range results {
		results[i] = v
	}
	return fromCtyValues(results, e.src)
}

// ctyScalar converts one column value to a cty value. Missing floats
// become null, since cty has no NaN representation.
func ctyScalar(c table.Column, i int) cty.Value {
	switch col := c.(type) {
	case table.Floats:
		if math.IsNaN(col[i]) {
			return cty.NullVal(cty.Number)
		}
		return cty.NumberFloatVal(col[i])
	case table.Ints:
		return cty.NumberIntVal(int64(col[i]))
	case table.Strings:
		return cty.StringVal(col[i])
	case table.Factor:
		return cty.StringVal(col.Values[i])
	case table.Bools:
		return cty.BoolVal(col[i])
	case table.Times:
		return cty.StringVal(col[i].String())
	}
	return cty.NullVal(cty.DynamicPseudoType)
}

// fromCtyValues converts evaluated per-row values into a typed column.
// The column kind is taken from the first non-null value; nulls become
// that kind's missing value.
func fromCtyValues(vals []cty.Value, src string) (table.Column, error) {
	ty := cty.NilType
	for _, v := range vals {
		if !v.IsNull() {
			ty = v.Type()
			break
		}
	}

	switch ty {
	case cty.NilType, cty.Number:
		out := make(table.Floats, len(vals))
		for i, v := range vals {
			if v.IsNull() {
				out[i] = math.NaN()
				continue
			}
			f, _ := v.AsBigFloat().Float64()
			out[i] = f
		}
		return out, nil
	case cty.String:
		out := make(table.Strings, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i] = v.AsString()
			}
		}
		return out, nil
	case cty.Bool:
		out := make(table.Bools, len(vals))
		for i, v := range vals {
			if !v.IsNull() {
				out[i] = v.True()
			}
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeEvaluation,
		"expression %q produced unsupported type %s", src, ty.FriendlyName())
}

// MustParse parses an expression or panics. For tests and static
// default mappings whose expressions are known to be valid.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("expr: %v", err))
	}
	return e
}

// Quote returns a source expression that evaluates to the literal
// string s for every row. Used to re-express literal group parameters
// as self-evaluating mapping expressions.
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}
