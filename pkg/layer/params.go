package layer

// Params is a free-form parameter set for geometries, statistics and
// position adjustments. Lookups for unset keys are soft: they return
// the caller's default instead of failing, since a missing parameter
// is an expected condition.
type Params map[string]any

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new Params with other's entries overriding p's.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Has reports whether the key is set (even to nil).
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Float returns the parameter as a float64, or def when unset or not
// numeric. Int values convert.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Int returns the parameter as an int, or def.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// String returns the parameter as a string, or def.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the parameter as a bool, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}
