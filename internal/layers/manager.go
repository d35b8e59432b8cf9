// Package layers owns the two viewport-fixed surfaces of the overlay.
//
// The scratch surface shows only the marker stroke being drawn and is
// repainted on every move. The committed surface shows every finalized
// stroke and is rebuilt from scratch by replaying the history in order; an
// eraser in progress is replayed on top of it. Because erasing is
// destructive, replay is the only way the committed surface ever changes.
package layers

import (
	"image"
	"log/slog"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/geom"
	"InkOverlay/internal/ink"
	"InkOverlay/internal/raster"
	"InkOverlay/internal/state"
)

type Manager struct {
	space     *geom.Space
	renderer  ink.Renderer
	scratch   *raster.Surface
	committed *raster.Surface

	scratchRev   uint64
	committedRev uint64
}

func NewManager(space *geom.Space) *Manager {
	return &Manager{
		space:     space,
		renderer:  ink.Renderer{Space: space},
		scratch:   raster.NewSurface(),
		committed: raster.NewSurface(),
	}
}

func (m *Manager) Scratch() *raster.Surface   { return m.scratch }
func (m *Manager) Committed() *raster.Surface { return m.committed }

// Revisions count repaints of each surface so a host can tell what changed.
func (m *Manager) Revisions() (scratch, committed uint64) {
	return m.scratchRev, m.committedRev
}

// Resize reallocates both surfaces for the space's current size and pixel
// ratio. The backing stores are discarded; callers must Replay afterwards.
func (m *Manager) Resize() {
	w, h := m.space.BackingSize()
	ratio := m.space.Ratio()
	m.scratch.Resize(w, h, ratio)
	m.committed.Resize(w, h, ratio)
	m.scratchRev++
	m.committedRev++
	logger().Debug("surfaces resized", "width", w, "height", h, "ratio", ratio)
}

// Preview clears the scratch surface and paints only the active path. An
// active eraser leaves the scratch surface empty: it has to be replayed
// onto the committed surface with ReplayErasing instead.
func (m *Manager) Preview(active *state.Path) {
	m.scratch.Clear()
	if active != nil && active.Style.Tool != state.ToolEraser {
		m.renderer.Paint(m.scratch, active)
	}
	m.scratchRev++
}

// ReplayErasing replays paths and then the active eraser on top, so the
// erasure shows on the committed surface while the stroke is in progress.
func (m *Manager) ReplayErasing(paths []*state.Path, active *state.Path) {
	if active != nil && active.Style.Tool == state.ToolEraser {
		paths = append(paths[:len(paths):len(paths)], active)
	}
	m.Replay(paths)
}

// ClearScratch empties the scratch surface.
func (m *Manager) ClearScratch() {
	m.scratch.Clear()
	m.scratchRev++
}

// Replay clears the committed surface and repaints every path in order.
func (m *Manager) Replay(paths []*state.Path) {
	m.committed.Clear()
	painted := 0
	for _, p := range paths {
		if m.renderer.Paint(m.committed, p) {
			painted++
		}
	}
	m.committedRev++
	logger().Debug("committed surface replayed", "paths", len(paths), "painted", painted)
}

// Render replays paths into a fresh image covering area of the document at
// the given pixel ratio, independent of the live viewport.
func Render(paths []*state.Path, area state.Rect, ratio float32) *image.RGBA {
	space := geom.NewSpace()
	space.Resize(area.Width, area.Height, ratio)
	space.SetScroll(geom.Offset{X: area.X, Y: area.Y})

	m := NewManager(space)
	m.Resize()
	m.Replay(paths)
	return m.committed.Snapshot()
}

func logger() *slog.Logger { return applog.For("layers") }
