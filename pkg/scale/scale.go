// Package scale implements the domain-to-render-space mappings shared
// across all layers of a plot.
//
// One scale owns one primary aesthetic (and, for position scales, its
// bounds aesthetics: x also covers xmin, xmax, xend, xintercept). A
// scale accumulates its domain by training on every layer's data and
// only then maps values, so layers never observe a partially-trained
// domain. Training is monotonic: the domain only widens.
package scale

import (
	"math"
	"strconv"

	mscale "github.com/aclements/go-moremath/scale"

	"github.com/gplotdev/gplot/pkg/table"
)

// Scale tracks the observed domain for one aesthetic and maps raw
// values to render-space values once training is complete.
type Scale interface {
	// Aesthetics returns the aesthetic column names this scale
	// covers, primary name first.
	Aesthetics() []string

	// IsDiscrete reports whether the scale has a discrete domain.
	IsDiscrete() bool

	// Train widens the domain to include the column's values.
	Train(col table.Column)

	// Transform applies the scale's transformation (log, sqrt, ...)
	// to raw values. Identity for discrete scales.
	Transform(col table.Column) table.Column

	// Map converts trained-domain values to render-space values.
	// Continuous values pass through (the coordinate system
	// rescales); discrete levels map to their 1-based position.
	Map(col table.Column) table.Column

	// Reset clears the trained domain.
	Reset()
}

// Trans is an invertible transformation applied by continuous scales
// before training.
type Trans struct {
	Name    string
	Forward func(float64) float64
	Inverse func(float64) float64
}

// Built-in transformations.
var (
	IdentityTrans = &Trans{"identity", func(v float64) float64 { return v }, func(v float64) float64 { return v }}
	Log10Trans    = &Trans{"log10", math.Log10, func(v float64) float64 { return math.Pow(10, v) }}
	SqrtTrans     = &Trans{"sqrt", math.Sqrt, func(v float64) float64 { return v * v }}
)

// TransByName resolves a transformation by name, defaulting to identity.
func TransByName(name string) *Trans {
	switch name {
	case "log10":
		return Log10Trans
	case "sqrt":
		return SqrtTrans
	}
	return IdentityTrans
}

// Continuous is a scale over an interval domain.
type Continuous struct {
	aesthetics []string
	trans      *Trans

	min, max float64
	trained  bool
}

// NewContinuous creates a continuous scale covering the given
// aesthetic names (primary first) with an identity transformation.
func NewContinuous(aesthetics ...string) *Continuous {
	return &Continuous{aesthetics: aesthetics, trans: IdentityTrans}
}

// WithTrans sets the scale's transformation and returns the scale.
func (s *Continuous) WithTrans(t *Trans) *Continuous {
	s.trans = t
	return s
}

func (s *Continuous) Aesthetics() []string { return s.aesthetics }
func (s *Continuous) IsDiscrete() bool     { return false }

// Domain returns the trained [min, max] interval. ok is false before
// any training.
func (s *Continuous) Domain() (min, max float64, ok bool) {
	return s.min, s.max, s.trained
}

// Train widens the domain. NaN values are ignored; non-numeric columns
// are ignored entirely.
func (s *Continuous) Train(col table.Column) {
	var vals []float64
	switch c := col.(type) {
	case table.Floats:
		vals = c
	case table.Ints:
		vals = make([]float64, len(c))
		for i, v := range c {
			vals[i] = float64(v)
		}
	default:
		return
	}
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if !s.trained {
			s.min, s.max, s.trained = v, v, true
			continue
		}
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
}

func (s *Continuous) Transform(col table.Column) table.Column {
	if s.trans == IdentityTrans {
		return col
	}
	fs, ok := col.(table.Floats)
	if !ok {
		return col
	}
	out := make(table.Floats, len(fs))
	for i, v := range fs {
		out[i] = s.trans.Forward(v)
	}
	return out
}

// Map is the identity for continuous scales: values stay in data space
// and the coordinate system rescales them per panel.
func (s *Continuous) Map(col table.Column) table.Column { return col }

func (s *Continuous) Reset() {
	s.min, s.max, s.trained = 0, 0, false
}

// Ticks returns up to n nicely-spaced tick positions inside the
// trained domain.
func (s *Continuous) Ticks(n int) []float64 {
	if !s.trained {
		return nil
	}
	return TickPositions(s.min, s.max, n)
}

// TickPositions returns up to n nicely-spaced positions in [min, max].
// Tick spacing is 1, 2 or 5 times a power of ten; FindLevel picks the
// finest such spacing that yields at most n ticks.
func TickPositions(min, max float64, n int) []float64 {
	if n < 2 || max <= min {
		return nil
	}
	ladder := tickLadder{min: min, max: max}
	opts := mscale.TickOptions{Max: n}
	guess := 3 * int(math.Floor(math.Log10((max-min)/float64(n-1))))
	level, ok := opts.FindLevel(ladder, guess)
	if !ok {
		return nil
	}
	return ladder.TicksAtLevel(level).([]float64)
}

// tickLadder is the Ticker over one trained domain: tick values are
// multiples of levelStep(level).
type tickLadder struct {
	min, max float64
}

var _ mscale.Ticker = tickLadder{}

func (l tickLadder) CountTicks(level int) int {
	step := levelStep(level)
	lo := math.Ceil(l.min / step)
	hi := math.Floor(l.max / step)
	if hi < lo {
		return 0
	}
	return int(hi-lo) + 1
}

func (l tickLadder) TicksAtLevel(level int) interface{} {
	step := levelStep(level)
	first := math.Ceil(l.min/step) * step
	out := make([]float64, 0, l.CountTicks(level))
	for v := first; v <= l.max+step/1e6; v += step {
		out = append(out, v)
	}
	return out
}

// levelStep maps a tick level to its spacing. Consecutive levels step
// through the 1, 2, 5 sequence; adding 3 multiplies the spacing by 10.
func levelStep(level int) float64 {
	mant := [3]float64{1, 2, 5}
	m := level % 3
	if m < 0 {
		m += 3
	}
	return mant[m] * math.Pow(10, math.Floor(float64(level)/3))
}

// Discrete is a scale over an ordered level set.
type Discrete struct {
	aesthetics []string
	levels     []string
	index      map[string]int
}

// NewDiscrete creates a discrete scale covering the given aesthetic
// names (primary first).
func NewDiscrete(aesthetics ...string) *Discrete {
	return &Discrete{aesthetics: aesthetics, index: map[string]int{}}
}

func (s *Discrete) Aesthetics() []string { return s.aesthetics }
func (s *Discrete) IsDiscrete() bool     { return true }

// Levels returns the trained levels in first-appearance order.
func (s *Discrete) Levels() []string { return s.levels }

// Train unions the column's values into the level set, preserving
// first-appearance order.
func (s *Discrete) Train(col table.Column) {
	add := func(v string) {
		if _, ok := s.index[v]; !ok {
			s.index[v] = len(s.levels)
			s.levels = append(s.levels, v)
		}
	}
	switch c := col.(type) {
	case table.Strings:
		for _, v := range c {
			add(v)
		}
	case table.Factor:
		// Explicit level order wins over appearance order.
		for _, lv := range c.Levels {
			add(lv)
		}
		for _, v := range c.Values {
			add(v)
		}
	case table.Bools:
		for _, v := range c {
			add(strconv.FormatBool(v))
		}
	}
}

// Transform is the identity for discrete scales.
func (s *Discrete) Transform(col table.Column) table.Column { return col }

// Map converts levels to their 1-based position. Unknown levels map
// to NaN.
func (s *Discrete) Map(col table.Column) table.Column {
	pos := func(v string) float64 {
		if i, ok := s.index[v]; ok {
			return float64(i + 1)
		}
		return math.NaN()
	}
	switch c := col.(type) {
	case table.Strings:
		out := make(table.Floats, len(c))
		for i, v := range c {
			out[i] = pos(v)
		}
		return out
	case table.Factor:
		out := make(table.Floats, len(c.Values))
		for i, v := range c.Values {
			out[i] = pos(v)
		}
		return out
	case table.Bools:
		out := make(table.Floats, len(c))
		for i, v := range c {
			out[i] = pos(strconv.FormatBool(v))
		}
		return out
	}
	return col
}

func (s *Discrete) Reset() {
	s.levels = nil
	s.index = map[string]int{}
}

// Identity is a scale for pre-scaled values: training, transforming
// and mapping all pass values through untouched.
type Identity struct {
	aesthetics []string
}

// NewIdentity creates an identity scale covering the given aesthetics.
func NewIdentity(aesthetics ...string) *Identity {
	return &Identity{aesthetics: aesthetics}
}

func (s *Identity) Aesthetics() []string                    { return s.aesthetics }
func (s *Identity) IsDiscrete() bool                        { return false }
func (s *Identity) Train(col table.Column)                  {}
func (s *Identity) Transform(col table.Column) table.Column { return col }
func (s *Identity) Map(col table.Column) table.Column       { return col }
func (s *Identity) Reset()                                  {}
