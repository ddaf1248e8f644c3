// Package plot assembles data, mappings, layers, scales, facets and
// coordinates into a plot specification, and builds it into drawable
// layer tables.
//
// # Usage
//
//	p := plot.New(data, aes.New("x", "wt", "y", "mpg"))
//	if err := p.Add(geom.Point(nil)); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := plot.NewBuilder(nil).Build(ctx, p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	surface := render.NewSVG()
//	if err := result.Draw(surface); err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("plot.svg", surface.Bytes(), 0o644)
package plot

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/scale"
	"github.com/gplotdev/gplot/pkg/table"
)

// Labels holds the plot's text annotations.
type Labels struct {
	Title string
	X     string
	Y     string
}

// Plot is a declarative plot specification. It is inert until built.
type Plot struct {
	Data    *table.Table
	Mapping aes.Mapping
	Layers  layer.Layers
	Facet   facet.Facet
	Coord   coord.Coord
	Labels  Labels

	// Env supplies named constants to mapping expressions.
	Env map[string]cty.Value

	scales []scale.Scale
}

// New creates a plot over the given data and default mapping. Both
// may be nil when every layer brings its own.
func New(data *table.Table, mapping aes.Mapping) *Plot {
	return &Plot{
		Data:    data,
		Mapping: mapping.Clone(),
		Coord:   coord.Cartesian{},
	}
}

// Add appends a layer. A nil layer or a layer without a geometry is a
// configuration error.
func (p *Plot) Add(l *layer.Layer) error {
	if l == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "cannot add a nil layer")
	}
	if l.Geom == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "layer has no geometry")
	}
	if l.Stat == nil || l.Position == nil {
		return errors.New(errors.ErrCodeInvalidSpec,
			"%s layer is missing its statistic or position", l.Geom.Name())
	}
	p.Layers = append(p.Layers, l)
	return nil
}

// AddScale registers a user-configured scale, overriding the default
// scale for its aesthetics.
func (p *Plot) AddScale(s scale.Scale) {
	p.scales = append(p.scales, s)
}

// WithFacet sets the panel specification.
func (p *Plot) WithFacet(f facet.Facet) *Plot {
	p.Facet = f
	return p
}

// WithLabels sets title and axis labels.
func (p *Plot) WithLabels(l Labels) *Plot {
	p.Labels = l
	return p
}

// labels fills unset axis labels from the mapping sources, the way a
// reader would name the axes.
func (p *Plot) labels() Labels {
	out := p.Labels
	if out.X == "" {
		if s, ok := p.Mapping["x"]; ok {
			out.X = s.Start
		}
	}
	if out.Y == "" {
		if s, ok := p.Mapping["y"]; ok {
			out.Y = s.Start
		} else {
			for _, l := range p.Layers {
				if s, ok := l.Mapping["y"]; ok {
					out.Y = s.Start
					break
				}
			}
		}
	}
	return out
}
