package cli

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/geom"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/plot"
	"github.com/gplotdev/gplot/pkg/position"
	"github.com/gplotdev/gplot/pkg/scale"
	"github.com/gplotdev/gplot/pkg/stat"
	"github.com/gplotdev/gplot/pkg/table"
)

// plotSpec is the TOML plot specification read by the render command.
// Paths inside the spec are resolved relative to the spec file.
type plotSpec struct {
	Title string `toml:"title"`
	XLab  string `toml:"xlab"`
	YLab  string `toml:"ylab"`

	// Data is the path to the CSV dataset.
	Data string `toml:"data"`

	// Mapping holds the plot-level aesthetic expressions, keyed by
	// aesthetic name (x, y, color, ...).
	Mapping map[string]string `toml:"mapping"`

	Layers []layerSpec `toml:"layer"`
	Facet  *facetSpec  `toml:"facet"`
	Scales []scaleSpec `toml:"scale"`
}

// layerSpec describes one layer: the geometry plus optional stat,
// position, mapping, and parameter overrides.
type layerSpec struct {
	Geom       string            `toml:"geom"`
	Stat       string            `toml:"stat"`
	Position   string            `toml:"position"`
	InheritAes *bool             `toml:"inherit_aes"`
	Mapping    map[string]string `toml:"mapping"`
	Params     map[string]any    `toml:"params"`
	StatParams map[string]any    `toml:"stat_params"`
}

// facetSpec selects the faceting column for a wrapped panel grid.
type facetSpec struct {
	Wrap string `toml:"wrap"`
	NCol int    `toml:"ncol"`
}

// scaleSpec overrides the default scale for one or more aesthetics.
type scaleSpec struct {
	Aesthetics []string `toml:"aesthetics"`
	Trans      string   `toml:"trans"`
	Discrete   bool     `toml:"discrete"`
}

// loadSpec reads and decodes the TOML spec at path. It returns the
// raw bytes alongside the decoded spec so callers can hash them for
// cache keys.
func loadSpec(path string) (*plotSpec, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading plot spec %q", path)
	}
	var s plotSpec
	if err := toml.Unmarshal(raw, &s); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decoding plot spec %q", path)
	}
	if len(s.Layers) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidSpec, "plot spec %q defines no layers", path)
	}
	return &s, raw, nil
}

// loadData reads the spec's CSV dataset, resolving a relative path
// against the spec file's directory.
func loadData(specPath, dataPath string) (*table.Table, []byte, error) {
	if dataPath == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidSpec, "plot spec is missing the data path")
	}
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(specPath), dataPath)
	}
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading dataset %q", dataPath)
	}
	t, err := table.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	return t, raw, nil
}

// buildPlot assembles a plot.Plot from the decoded spec and its data.
func buildPlot(s *plotSpec, data *table.Table) (*plot.Plot, error) {
	p := plot.New(data, mappingFrom(s.Mapping))
	p.WithLabels(plot.Labels{Title: s.Title, X: s.XLab, Y: s.YLab})

	for i, ls := range s.Layers {
		l, err := buildLayer(ls)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "layer %d", i+1)
		}
		if err := p.Add(l); err != nil {
			return nil, err
		}
	}

	if s.Facet != nil && s.Facet.Wrap != "" {
		p.WithFacet(facet.Wrap{Column: s.Facet.Wrap, NCol: s.Facet.NCol})
	}

	for _, sc := range s.Scales {
		if len(sc.Aesthetics) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "scale entry names no aesthetics")
		}
		if sc.Discrete {
			p.AddScale(scale.NewDiscrete(sc.Aesthetics...))
			continue
		}
		p.AddScale(scale.NewContinuous(sc.Aesthetics...).WithTrans(scale.TransByName(sc.Trans)))
	}

	return p, nil
}

// buildLayer turns one layer spec into a configured layer.
func buildLayer(ls layerSpec) (*layer.Layer, error) {
	ctor, ok := geomCtors[ls.Geom]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown geom %q", ls.Geom)
	}

	var opts []geom.Option
	if ls.Stat != "" {
		st, err := statByName(ls.Stat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geom.WithStat(st))
	}
	if ls.Position != "" {
		pos, err := positionByName(ls.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geom.WithPosition(pos))
	}
	if ls.InheritAes != nil && !*ls.InheritAes {
		opts = append(opts, geom.WithoutInheritedAes())
	}
	for k, v := range normalizeParams(ls.Params) {
		opts = append(opts, geom.WithParam(k, v))
	}
	for k, v := range normalizeParams(ls.StatParams) {
		opts = append(opts, geom.WithStatParam(k, v))
	}

	return ctor(mappingFrom(ls.Mapping), opts...), nil
}

// geomCtors maps spec geom names to their layer constructors.
var geomCtors = map[string]func(aes.Mapping, ...geom.Option) *layer.Layer{
	"point":     geom.Point,
	"line":      geom.Line,
	"bar":       geom.Bar,
	"histogram": geom.Histogram,
	"area":      geom.Area,
	"smooth":    geom.Smooth,
	"segment":   geom.Segment,
	"rug":       geom.Rug,
}

// statByName resolves a spec stat name to a statistic.
func statByName(name string) (layer.Stat, error) {
	switch name {
	case "identity":
		return stat.Identity{}, nil
	case "count":
		return stat.Count{}, nil
	case "bin":
		return stat.Bin{}, nil
	case "smooth":
		return stat.Smooth{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown stat %q", name)
}

// positionByName resolves a spec position name to an adjustment.
func positionByName(name string) (layer.Position, error) {
	switch name {
	case "identity":
		return position.Identity{}, nil
	case "stack":
		return position.Stack{}, nil
	case "dodge":
		return position.Dodge{}, nil
	case "jitter":
		return position.Jitter{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown position %q", name)
}

// mappingFrom converts a TOML aesthetic map to an aes.Mapping.
// A nil or empty map yields a nil mapping so layers fall back to
// inheritance.
func mappingFrom(m map[string]string) aes.Mapping {
	if len(m) == 0 {
		return nil
	}
	out := aes.Mapping{}
	for name, expr := range m {
		out[name] = aes.Start(expr)
	}
	return out
}

// normalizeParams widens TOML integer values to float64 so parameter
// lookups behave the same whether a value was written as 3 or 3.0.
func normalizeParams(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if i, ok := v.(int64); ok {
			out[k] = float64(i)
			continue
		}
		out[k] = v
	}
	return out
}
