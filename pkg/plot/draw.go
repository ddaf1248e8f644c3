package plot

import (
	"math"
	"strconv"

	"github.com/gplotdev/gplot/pkg/render"
	"github.com/gplotdev/gplot/pkg/scale"
)

// Layout fractions of the full surface.
const (
	marginLeft   = 0.08
	marginRight  = 0.02
	marginTop    = 0.06
	marginBottom = 0.08
	panelGap     = 0.01
)

// Draw renders the built plot onto a surface: panel backgrounds,
// grids, axes and labels first, then every layer in z-order.
func (r *Result) Draw(surface render.Surface) error {
	rows, cols := r.Layout.Grid()
	if rows == 0 || cols == 0 {
		rows, cols = 1, 1
	}
	areaW := 1 - marginLeft - marginRight
	areaH := 1 - marginTop - marginBottom
	panelW := areaW/float64(cols) - panelGap
	panelH := areaH/float64(rows) - panelGap

	canvases := make(map[int]render.Canvas, r.Layout.NPanels())
	for _, p := range r.Layout.Panels() {
		// Panel rows count from the top of the grid; surface
		// fractions count from the bottom.
		x := marginLeft + float64(p.Col)*(panelW+panelGap)
		y := marginBottom + float64(rows-1-p.Row)*(panelH+panelGap)
		c := surface.Viewport(x, y, panelW, panelH)
		canvases[p.ID] = c

		r.drawPanelBackground(c)
		r.drawAxes(c, p.ID, p.Row == rows-1, p.Col == 0)
		if p.Level != "" {
			c.Text(0.02, 1.04, p.Level, render.Style{Size: 11})
		}
	}

	r.drawLabels(surface)

	canvasFor := func(panelID int) render.Canvas { return canvases[panelID] }
	return r.Layers.Draw(r.Layout, r.Coord, canvasFor)
}

func (r *Result) drawPanelBackground(c render.Canvas) {
	c.Rect(0, 0, 1, 1, render.Style{Color: "#EBEBEB", Fill: "#EBEBEB"})
}

// drawAxes paints grid lines at tick positions and, on outer panels,
// the tick labels.
func (r *Result) drawAxes(c render.Canvas, panelID int, labelX, labelY bool) {
	ranges := r.Layout.Ranges(panelID)
	grid := render.Style{Color: "white", Size: 1}

	if !math.IsNaN(ranges.XMin) && ranges.XMax > ranges.XMin {
		for _, tick := range r.axisTicks("x", ranges.XMin, ranges.XMax) {
			u := (tick.pos - ranges.XMin) / (ranges.XMax - ranges.XMin)
			c.Line(u, 0, u, 1, grid)
			if labelX {
				c.Text(u-0.01, -0.07, tick.label, render.Style{Size: 10})
			}
		}
	}
	if !math.IsNaN(ranges.YMin) && ranges.YMax > ranges.YMin {
		for _, tick := range r.axisTicks("y", ranges.YMin, ranges.YMax) {
			u := (tick.pos - ranges.YMin) / (ranges.YMax - ranges.YMin)
			c.Line(0, u, 1, u, grid)
			if labelY {
				c.Text(-0.07, u, tick.label, render.Style{Size: 10})
			}
		}
	}
}

type tick struct {
	pos   float64
	label string
}

// axisTicks picks tick positions and labels for one axis. Discrete
// axes label the 1-based level positions with the level names.
func (r *Result) axisTicks(aesthetic string, min, max float64) []tick {
	if s, ok := r.Registry.Find(aesthetic); ok {
		if d, ok := s.(*scale.Discrete); ok {
			var ticks []tick
			for i, level := range d.Levels() {
				pos := float64(i + 1)
				if pos < min || pos > max {
					continue
				}
				ticks = append(ticks, tick{pos: pos, label: level})
			}
			return ticks
		}
	}
	var ticks []tick
	for _, pos := range scale.TickPositions(min, max, 5) {
		ticks = append(ticks, tick{pos: pos, label: formatTick(pos)})
	}
	return ticks
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// drawLabels writes the title and axis labels in the surface margins.
func (r *Result) drawLabels(surface render.Surface) {
	full := surface.Viewport(0, 0, 1, 1)
	if r.Labels.Title != "" {
		full.Text(marginLeft, 1-marginTop/2, r.Labels.Title, render.Style{Size: 15})
	}
	if r.Labels.X != "" {
		full.Text(0.5, marginBottom/3, r.Labels.X, render.Style{Size: 12})
	}
	if r.Labels.Y != "" {
		full.Text(marginLeft/4, 0.95, r.Labels.Y, render.Style{Size: 12})
	}
}
