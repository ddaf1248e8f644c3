package scale

import (
	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/table"
)

// reserved columns never carry a scale.
var reserved = map[string]bool{"group": true, "PANEL": true}

// Registry holds one scale per primary aesthetic for a plot. It is
// shared, mutable state: every layer registers the aesthetics it
// produces, and the cross-layer train/map stages run against all
// layers' data before any layer proceeds to position adjustment.
type Registry struct {
	scales []Scale
	byAes  map[string]Scale
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byAes: map[string]Scale{}}
}

// Add registers a user-supplied scale. Adding a second scale for an
// aesthetic already covered is a configuration error.
func (r *Registry) Add(s Scale) error {
	for _, a := range s.Aesthetics() {
		if _, ok := r.byAes[a]; ok {
			return errors.New(errors.ErrCodeInvalidScale,
				"aesthetic %q already has a scale", a)
		}
	}
	r.scales = append(r.scales, s)
	for _, a := range s.Aesthetics() {
		r.byAes[a] = s
	}
	return nil
}

// Find returns the scale covering the aesthetic, if any.
func (r *Registry) Find(aesthetic string) (Scale, bool) {
	s, ok := r.byAes[aesthetic]
	return s, ok
}

// Scales returns all registered scales in registration order.
func (r *Registry) Scales() []Scale { return r.scales }

// AddDefaults registers a default scale for every named aesthetic not
// yet covered, choosing discrete or continuous from the column's kind
// in data. Aesthetics without a matching column and reserved columns
// are skipped. Position aesthetics share one scale with their bounds
// (x covers xmin, xmax, xend, xintercept).
func (r *Registry) AddDefaults(data *table.Table, aesthetics []string) {
	for _, name := range aesthetics {
		if reserved[name] {
			continue
		}
		if _, ok := r.byAes[name]; ok {
			continue
		}
		col, ok := data.Column(name)
		if !ok {
			continue
		}

		covered := []string{name}
		switch {
		case contains(aes.XAesthetics, name):
			covered = aes.XAesthetics
		case contains(aes.YAesthetics, name):
			covered = aes.YAesthetics
		}
		// The whole cover set may already be claimed through the
		// primary aesthetic.
		if _, ok := r.byAes[covered[0]]; ok {
			continue
		}

		var s Scale
		if col.Discrete() {
			s = NewDiscrete(covered...)
		} else {
			s = NewContinuous(covered...)
		}
		r.scales = append(r.scales, s)
		for _, a := range covered {
			r.byAes[a] = s
		}
	}
}

// TrainDF widens every scale's domain with the matching columns of
// data. Columns without a scale are left untouched.
func (r *Registry) TrainDF(data *table.Table) {
	if data == nil || data.NRows() == 0 {
		return
	}
	for _, name := range data.Names() {
		if reserved[name] {
			continue
		}
		if s, ok := r.byAes[name]; ok {
			s.Train(data.MustColumn(name))
		}
	}
}

// TransformDF applies each scale's transformation to the matching
// columns and returns the resulting table.
func (r *Registry) TransformDF(data *table.Table) *table.Table {
	if data == nil || data.NRows() == 0 {
		return data
	}
	out := data.Clone()
	for _, name := range data.Names() {
		if reserved[name] {
			continue
		}
		if s, ok := r.byAes[name]; ok {
			out.Set(name, s.Transform(out.MustColumn(name)))
		}
	}
	return out
}

// MapDF maps every matching column from trained-domain values to
// render-space values and returns the resulting table.
func (r *Registry) MapDF(data *table.Table) *table.Table {
	if data == nil || data.NRows() == 0 {
		return data
	}
	out := data.Clone()
	for _, name := range data.Names() {
		if reserved[name] {
			continue
		}
		if s, ok := r.byAes[name]; ok {
			out.Set(name, s.Map(out.MustColumn(name)))
		}
	}
	return out
}

// Reset clears every scale's trained domain.
func (r *Registry) Reset() {
	for _, s := range r.scales {
		s.Reset()
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
