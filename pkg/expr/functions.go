package expr

import (
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// builtins are the functions available inside mapping expressions.
var builtins = map[string]function.Function{
	"factor":     factorFunc,
	"as_numeric": asNumericFunc,
}

// factorFunc coerces a value to a string so the result column is
// treated as categorical by the grouping and scale machinery.
// Numbers format without a trailing ".0" so factor(4) == "4".
var factorFunc = function.New(&function.Spec{
	Params: []function.Parameter{{
		Name:      "value",
		Type:      cty.DynamicPseudoType,
		AllowNull: true,
	}},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		v := args[0]
		if v.IsNull() {
			return cty.StringVal(""), nil
		}
		switch v.Type() {
		case cty.Number:
			f, _ := v.AsBigFloat().Float64()
			return cty.StringVal(strconv.FormatFloat(f, 'f', -1, 64)), nil
		case cty.String:
			return v, nil
		case cty.Bool:
			return cty.StringVal(strconv.FormatBool(v.True())), nil
		}
		return cty.StringVal(v.GoString()), nil
	},
})

// asNumericFunc parses a string value as a number; numbers pass through.
var asNumericFunc = function.New(&function.Spec{
	Params: []function.Parameter{{
		Name:      "value",
		Type:      cty.DynamicPseudoType,
		AllowNull: true,
	}},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		v := args[0]
		if v.IsNull() {
			return cty.NullVal(cty.Number), nil
		}
		switch v.Type() {
		case cty.Number:
			return v, nil
		case cty.String:
			f, err := strconv.ParseFloat(v.AsString(), 64)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.NumberFloatVal(f), nil
		}
		return cty.NilVal, function.NewArgErrorf(0, "cannot convert %s to a number", v.Type().FriendlyName())
	},
})
