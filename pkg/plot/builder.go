package plot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gplotdev/gplot/pkg/coord"
	"github.com/gplotdev/gplot/pkg/errors"
	"github.com/gplotdev/gplot/pkg/facet"
	"github.com/gplotdev/gplot/pkg/layer"
	"github.com/gplotdev/gplot/pkg/observability"
	"github.com/gplotdev/gplot/pkg/scale"
)

// Stats aggregates per-stage timings of one build.
type Stats struct {
	SetupTime     time.Duration
	AestheticTime time.Duration
	StatTime      time.Duration
	ScaleTime     time.Duration
	PositionTime  time.Duration
	TotalTime     time.Duration

	LayerCount int
	PanelCount int
}

// Result holds the built plot: per-layer tables ready to draw plus
// the trained scales and panel layout.
type Result struct {
	BuildID  string
	Layers   layer.Layers
	Registry *scale.Registry
	Layout   *facet.Layout
	Coord    coord.Coord
	Labels   Labels
	Stats    Stats
}

// Builder runs the build pipeline. It is stateless apart from its
// logger; one Builder can build many plots, also concurrently.
type Builder struct {
	Logger *log.Logger
}

// NewBuilder creates a builder. A nil logger falls back to the
// default logger.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Logger: logger}
}

// Build runs every pipeline stage over a copy of the plot's layers.
// The plot itself is not mutated and can be built again.
func (b *Builder) Build(ctx context.Context, p *Plot) (*Result, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "cannot build a nil plot")
	}
	if len(p.Layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "plot has no layers")
	}

	buildID := uuid.NewString()
	logger := b.Logger.With("build", buildID[:8])
	start := time.Now()
	observability.Build().OnBuildStart(ctx, buildID, len(p.Layers))

	crd := p.Coord
	if crd == nil {
		crd = coord.Cartesian{}
	}
	result := &Result{
		BuildID:  buildID,
		Layers:   p.Layers.Clone(),
		Registry: scale.NewRegistry(),
		Coord:    crd,
		Labels:   p.labels(),
	}
	result.Stats.LayerCount = len(result.Layers)
	for _, s := range p.scales {
		s.Reset()
		if err := result.Registry.Add(s); err != nil {
			return nil, b.fail(ctx, buildID, start, err)
		}
	}

	// Stage 1: data and mapping resolution, panel layout.
	stageStart := time.Now()
	if err := b.stage(ctx, buildID, "setup", func() error {
		return result.Layers.Setup(p.Data, p.Mapping, p.Env)
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	result.Layout = facet.NewLayout(p.Facet)
	result.Layout.Setup(result.Layers.Tables())
	result.Layers.SetupPanels(result.Layout)
	result.Stats.SetupTime = time.Since(stageStart)
	result.Stats.PanelCount = result.Layout.NPanels()
	logger.Debug("layout ready", "panels", result.Layout.NPanels())

	// Stage 2: aesthetic evaluation. Every layer registers its
	// aesthetics before any scale trains.
	stageStart = time.Now()
	if err := b.stage(ctx, buildID, "compute aesthetics", func() error {
		return result.Layers.ComputeAesthetics(result.Registry)
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	result.Layout.TrainRanges(result.Layers.Tables())
	result.Stats.AestheticTime = time.Since(stageStart)
	logger.Info("computed aesthetics",
		"layers", len(result.Layers),
		"scales", len(result.Registry.Scales()),
		"duration", result.Stats.AestheticTime)

	// Stage 3: statistics.
	stageStart = time.Now()
	if err := b.stage(ctx, buildID, "compute statistic", func() error {
		return result.Layers.ComputeStatistic(result.Layout)
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	if err := b.stage(ctx, buildID, "map statistic", func() error {
		return result.Layers.MapStatistic(result.Registry)
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	if err := b.stage(ctx, buildID, "setup data", func() error {
		return result.Layers.SetupData()
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	result.Stats.StatTime = time.Since(stageStart)
	logger.Info("computed statistics", "duration", result.Stats.StatTime)

	// Stage 4: scale transform, train and map across all layers.
	stageStart = time.Now()
	if err := b.stage(ctx, buildID, "scales", func() error {
		result.Layers.Transform(result.Registry)
		result.Registry.Reset()
		result.Layers.Train(result.Registry)
		result.Layers.Map(result.Registry)
		return nil
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	result.Stats.ScaleTime = time.Since(stageStart)

	// Stage 5: position adjustment and the statistics' final pass.
	// Ranges retrain on the mapped values so drawing sees the final
	// numeric space.
	stageStart = time.Now()
	result.Layout.ResetRanges()
	result.Layout.TrainRanges(result.Layers.Tables())
	if err := b.stage(ctx, buildID, "compute position", func() error {
		return result.Layers.ComputePosition(result.Layout)
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	if err := b.stage(ctx, buildID, "finish statistics", func() error {
		return result.Layers.FinishStatistics()
	}); err != nil {
		return nil, b.fail(ctx, buildID, start, err)
	}
	result.Layout.ResetRanges()
	result.Layout.TrainRanges(result.Layers.Tables())
	result.Stats.PositionTime = time.Since(stageStart)

	result.Stats.TotalTime = time.Since(start)
	observability.Build().OnBuildComplete(ctx, buildID, result.Stats.TotalTime, nil)
	logger.Info("built plot",
		"layers", result.Stats.LayerCount,
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.TotalTime)
	return result, nil
}

// stage runs one pipeline stage with context cancellation, hooks and
// wrapped errors.
func (b *Builder) stage(ctx context.Context, buildID, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build canceled before %s", name)
	}
	observability.Build().OnStageStart(ctx, buildID, name)
	start := time.Now()
	err := fn()
	observability.Build().OnStageComplete(ctx, buildID, name, time.Since(start), err)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return errors.Wrap(code, err, "%s failed", name)
	}
	return nil
}

func (b *Builder) fail(ctx context.Context, buildID string, start time.Time, err error) error {
	observability.Build().OnBuildComplete(ctx, buildID, time.Since(start), err)
	b.Logger.Error("build failed", "build", buildID[:8], "error", errors.UserMessage(err))
	return err
}
