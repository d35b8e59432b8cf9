package ink

import (
	"image/color"

	"InkOverlay/internal/geom"
	"InkOverlay/internal/raster"
	"InkOverlay/internal/state"
)

// Renderer paints paths on surfaces, projecting document points into the
// viewport at the scroll offset current at render time.
type Renderer struct {
	Space *geom.Space
}

// Paint renders a path with its stored style: markers composite source-over
// in their color, erasers destination-out. It reports whether anything was
// painted. Active paths render without the end cap.
func (r Renderer) Paint(dst *raster.Surface, p *state.Path) bool {
	if dst == nil || p == nil || p.Len() == 0 {
		return false
	}
	poly := Outline(r.Space.Project(p.Points()), float64(p.Style.Width), p.Frozen())
	if len(poly) == 0 {
		logger().Debug("empty outline", "id", p.ID)
		return false
	}

	if p.Style.Tool == state.ToolEraser {
		return dst.Fill(poly, color.Transparent, raster.DestinationOut)
	}
	return dst.Fill(poly, p.Style.Color, raster.Over)
}
