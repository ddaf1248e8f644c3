package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gplotdev/gplot/pkg/cache"
	"github.com/gplotdev/gplot/pkg/observability"
	"github.com/gplotdev/gplot/pkg/plot"
	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/table"
)

const (
	defaultWidth  = 800 // default SVG viewport width
	defaultHeight = 600 // default SVG viewport height
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; empty derives it from the spec path
	width   int    // viewport width in pixels
	height  int    // viewport height in pixels
	noCache bool   // bypass the artifact cache
}

// newRenderCmd creates the render command. It reads a TOML plot spec
// and its CSV dataset, runs the build pipeline, and writes an SVG.
//
// Rendering is deterministic in the spec and data, so finished
// artifacts are cached under a hash of both; a repeated render of an
// unchanged spec is served from the cache.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [spec.toml]",
		Short: "Build a plot from a TOML spec and render it as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the spec path with .svg)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "frame height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// runRender loads the spec and dataset, consults the artifact cache,
// and builds and renders the plot on a miss.
func runRender(ctx context.Context, specPath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Rendering %s", specPath)

	spec, rawSpec, err := loadSpec(specPath)
	if err != nil {
		return err
	}
	data, rawData, err := loadData(specPath, spec.Data)
	if err != nil {
		return err
	}
	logger.Infof("Loaded dataset: %d rows, %d columns", data.NRows(), data.NCols())

	c, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	keyer := cache.NewDefaultKeyer()
	plotHash := keyer.PlotKey(cache.Hash(rawSpec), cache.Hash(rawData))
	key := keyer.ArtifactKey(plotHash, cache.ArtifactKeyOpts{
		Format: "svg",
		Width:  opts.width,
		Height: opts.height,
	})

	out, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		logger.Debug("Artifact cache hit")
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		out, err = buildAndRender(ctx, spec, data, opts)
		if err != nil {
			return err
		}
		if err := c.Set(ctx, key, out, 0); err != nil {
			logger.Warnf("Caching artifact failed: %v", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(out))
		}
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(specPath, filepath.Ext(specPath)) + ".svg"
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return err
	}

	prog.done("Generated " + outputPath)
	return nil
}

// buildAndRender runs the plot build pipeline and encodes the result
// as SVG.
func buildAndRender(ctx context.Context, spec *plotSpec, data *table.Table, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	p, err := buildPlot(spec, data)
	if err != nil {
		return nil, err
	}

	result, err := plot.NewBuilder(logger).Build(ctx, p)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Built %d layers across %d panels in %s",
		result.Stats.LayerCount, result.Stats.PanelCount, result.Stats.TotalTime)

	surface := render.NewSVG(render.WithSize(opts.width, opts.height))
	if err := result.Draw(surface); err != nil {
		return nil, err
	}
	return surface.Bytes(), nil
}
