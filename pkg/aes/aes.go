// Package aes represents aesthetic mappings: named bindings from
// aesthetic roles (x, y, color, group, ...) to data-derived
// expressions.
//
// Each binding is a Stage. A starting expression is evaluated against
// the layer's raw data; an after-stat expression is evaluated against
// the output of the layer's statistic, so it may reference columns the
// statistic creates (count, prop, ...).
//
// Mappings compose: a layer mapping inherits from the plot mapping,
// with the layer's entries winning on conflict. Aesthetics fixed as
// literal geometry parameters always win over mapped aesthetics and
// remove the corresponding mapping entry.
package aes

import "fmt"

// Stage holds the expressions bound to one aesthetic. At least one of
// Start and AfterStat is set; an aesthetic mapped in both stages is
// evaluated twice, once against raw data and once against the
// statistic output.
type Stage struct {
	// Start is evaluated against the layer's raw data.
	Start string

	// AfterStat is evaluated against the statistic's output.
	AfterStat string
}

// Start binds an expression evaluated against raw data.
func Start(src string) Stage { return Stage{Start: src} }

// AfterStat binds an expression evaluated against statistic output.
func AfterStat(src string) Stage { return Stage{AfterStat: src} }

// Mapping binds aesthetic names to staged expressions. An aesthetic
// name appears at most once; composition resolves conflicts before
// evaluation.
type Mapping map[string]Stage

// New builds a mapping from name/start-expression pairs:
//
//	aes.New("x", "wt", "y", "mpg", "color", "factor(cyl)")
//
// New panics on an odd number of arguments; it is intended for
// literal, statically-known mappings.
func New(pairs ...string) Mapping {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("aes: New requires name/expression pairs, got %d arguments", len(pairs)))
	}
	m := Mapping{}
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = Start(pairs[i+1])
	}
	return m
}

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Inherit composes m over parent: entries present in m override
// same-named entries from parent, and entries unique to parent are
// added. Neither mapping is modified.
func (m Mapping) Inherit(parent Mapping) Mapping {
	out := parent.Clone()
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Starting returns the aesthetic -> expression pairs evaluated against
// raw data.
func (m Mapping) Starting() map[string]string {
	out := map[string]string{}
	for k, v := range m {
		if v.Start != "" {
			out[k] = v.Start
		}
	}
	return out
}

// Calculated returns the aesthetic -> expression pairs evaluated
// against statistic output.
func (m Mapping) Calculated() map[string]string {
	out := map[string]string{}
	for k, v := range m {
		if v.AfterStat != "" {
			out[k] = v.AfterStat
		}
	}
	return out
}

// Has reports whether the aesthetic is mapped.
func (m Mapping) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// scaledBounds are aesthetic columns that carry scaled numeric bounds
// rather than primary values. Position scales train on them alongside
// the primary aesthetic.
var scaledBounds = map[string]bool{
	"xmin":       true,
	"xmax":       true,
	"ymin":       true,
	"ymax":       true,
	"xend":       true,
	"yend":       true,
	"xintercept": true,
	"yintercept": true,
	"width":      true,
	"height":     true,
}

// IsScaledBound reports whether the column name is a reserved scaled
// bounds aesthetic.
func IsScaledBound(name string) bool { return scaledBounds[name] }

// scaled lists the aesthetics whose values pass through a scale. Only
// these participate in the discrete grouping heuristic; free-form
// columns such as labels never split the data into groups.
var scaled = map[string]bool{
	"x":        true,
	"y":        true,
	"alpha":    true,
	"color":    true,
	"fill":     true,
	"linetype": true,
	"shape":    true,
	"size":     true,
	"stroke":   true,
}

// IsScaled reports whether the aesthetic is mapped through a scale.
func IsScaled(name string) bool { return scaled[name] }

// XAesthetics and YAesthetics list the aesthetic names covered by the
// x and y position scales respectively, primary name first.
var (
	XAesthetics = []string{"x", "xmin", "xmax", "xend", "xintercept"}
	YAesthetics = []string{"y", "ymin", "ymax", "yend", "yintercept"}
)
