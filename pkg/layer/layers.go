package layer

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/gplotdev/gplot/pkg/aes"
	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/scale"
	"github.com/gplotdev/gplot/pkg/table"
)

// Layers fans pipeline stages out over every layer of a plot, in plot
// order.
type Layers []*Layer

// Clone returns element-wise copies; see Layer.Clone for what is
// shared.
func (ls Layers) Clone() Layers {
	out := make(Layers, len(ls))
	for i, l := range ls {
		out[i] = l.Clone()
	}
	return out
}

// Tables returns every layer's current working table.
func (ls Layers) Tables() []*table.Table {
	out := make([]*table.Table, len(ls))
	for i, l := range ls {
		out[i] = l.Table()
	}
	return out
}

// Setup resolves data and mappings for every layer.
func (ls Layers) Setup(plotData *table.Table, plotMapping aes.Mapping, env map[string]cty.Value) error {
	for _, l := range ls {
		if err := l.Setup(plotData, plotMapping, env); err != nil {
			return err
		}
	}
	return nil
}

// SetupPanels stamps every layer's table with its panel assignments.
func (ls Layers) SetupPanels(layout *facet.Layout) {
	for _, l := range ls {
		l.SetTable(layout.SetupData(l.Table()))
	}
}

// ComputeAesthetics evaluates mappings for every layer before any
// scale trains. Running the whole pass first guarantees each scale
// sees every layer's aesthetics before training starts.
func (ls Layers) ComputeAesthetics(reg *scale.Registry) error {
	for _, l := range ls {
		if err := l.ComputeAesthetics(reg); err != nil {
			return err
		}
	}
	return nil
}

// ComputeStatistic runs every layer's statistic.
func (ls Layers) ComputeStatistic(layout *facet.Layout) error {
	for _, l := range ls {
		if err := l.ComputeStatistic(layout); err != nil {
			return err
		}
	}
	return nil
}

// MapStatistic maps calculated aesthetics for every layer.
func (ls Layers) MapStatistic(reg *scale.Registry) error {
	for _, l := range ls {
		if err := l.MapStatistic(reg); err != nil {
			return err
		}
	}
	return nil
}

// SetupData runs geometry data setup and required-aesthetic checks.
func (ls Layers) SetupData() error {
	for _, l := range ls {
		if err := l.SetupData(); err != nil {
			return err
		}
	}
	return nil
}

// Transform applies scale transforms to every layer's table.
func (ls Layers) Transform(reg *scale.Registry) {
	for _, l := range ls {
		l.SetTable(reg.TransformDF(l.Table()))
	}
}

// Train trains every scale on every layer's table.
func (ls Layers) Train(reg *scale.Registry) {
	for _, l := range ls {
		reg.TrainDF(l.Table())
	}
}

// Map maps every layer's table through the trained scales.
func (ls Layers) Map(reg *scale.Registry) {
	for _, l := range ls {
		l.SetTable(reg.MapDF(l.Table()))
	}
}

// ComputePosition applies position adjustments for every layer.
func (ls Layers) ComputePosition(layout *facet.Layout) error {
	for _, l := range ls {
		if err := l.ComputePosition(layout); err != nil {
			return err
		}
	}
	return nil
}

// FinishStatistics runs the statistics' final pass for every layer.
func (ls Layers) FinishStatistics() error {
	for _, l := range ls {
		if err := l.FinishStatistics(); err != nil {
			return err
		}
	}
	return nil
}

// Draw assigns drawing order and renders every layer. The first layer
// gets order 1 and draws lowest.
func (ls Layers) Draw(layout *facet.Layout, crd coord.Coord, canvasFor func(panel int) render.Canvas) error {
	for i, l := range ls {
		l.ZOrder = i + 1
	}
	for _, l := range ls {
		if err := l.Draw(layout, crd, canvasFor); err != nil {
			return err
		}
	}
	return nil
}
