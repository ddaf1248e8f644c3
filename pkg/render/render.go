// Package render provides the drawing surface consumed by geometries.
//
// Geometries draw in unit coordinates: every position handed to a
// Canvas is in [0, 1] with the origin at the bottom-left of the
// current viewport. A Surface converts unit coordinates to device
// coordinates and provides per-panel viewports, so geometry code never
// deals with pixels, margins or y-axis direction.
package render

// Style carries the visual attributes of one primitive.
type Style struct {
	// Color is the stroke color (SVG color syntax).
	Color string

	// Fill is the fill color; empty means no fill.
	Fill string

	// Opacity in [0, 1]; 0 is treated as fully opaque.
	Opacity float64

	// Size is the stroke width (or point radius) in device units.
	Size float64

	// ZOrder is the layer draw order, 1-based. Surfaces that paint
	// in call order may ignore it.
	ZOrder int

	// Raster requests rasterized output for this primitive on
	// surfaces that support mixed vector/raster output.
	Raster bool
}

// Canvas draws primitives in unit coordinates.
type Canvas interface {
	// Point draws a filled circle centered at (x, y).
	Point(x, y float64, s Style)

	// Line draws a segment from (x1, y1) to (x2, y2).
	Line(x1, y1, x2, y2 float64, s Style)

	// Rect draws a rectangle with corners (x1, y1) and (x2, y2).
	Rect(x1, y1, x2, y2 float64, s Style)

	// Polyline connects the given points in order.
	Polyline(xs, ys []float64, s Style)

	// Polygon draws a closed, fillable shape through the points.
	Polygon(xs, ys []float64, s Style)

	// Text draws text anchored at (x, y).
	Text(x, y float64, text string, s Style)
}

// Surface is a complete drawing target: it hands out per-panel
// viewports and finalizes to an encoded artifact.
type Surface interface {
	// Viewport returns a canvas covering the given fraction of the
	// surface. x, y, w, h are fractions of the full surface with
	// the origin at the bottom-left.
	Viewport(x, y, w, h float64) Canvas

	// Bytes finalizes the surface and returns the encoded artifact.
	Bytes() []byte
}
