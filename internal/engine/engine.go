// Package engine is the annotation engine: it turns pointer samples into
// strokes, keeps the history, and drives every repaint of the overlay
// surfaces.
//
// The engine is single-threaded. Every method must be called from the host's
// event thread; nothing blocks and nothing returns an error. Failures such as
// a missing surface or a degenerate stroke leave the surfaces as they were.
package engine

import (
	"log/slog"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/geom"
	"InkOverlay/internal/layers"
	"InkOverlay/internal/raster"
	"InkOverlay/internal/state"
)

// Cursor is the tool preview drawn at the pointer position.
type Cursor struct {
	Visible bool
	Pos     state.Point // viewport space
	Radius  float32
	Tool    state.Tool
}

type Engine struct {
	tools   *state.ToolState
	history *state.History
	session *state.Session
	space   *geom.Space
	layers  *layers.Manager

	active *state.Path // in-progress stroke, nil when idle
	cursor Cursor

	// OnRedraw is called after a surface changed. committed is true when the
	// committed surface was replayed, which may also have cleared the scratch
	// surface; an eraser in progress replays on every move. false means only
	// the scratch surface or cursor changed.
	OnRedraw func(committed bool)
}

// New builds an engine around the given tool state. The surfaces stay empty
// until the first Resize.
func New(tools *state.ToolState) *Engine {
	space := geom.NewSpace()
	return &Engine{
		tools:   tools,
		history: state.NewHistory(),
		session: state.NewSession(),
		space:   space,
		layers:  layers.NewManager(space),
	}
}

func (e *Engine) Tools() *state.ToolState    { return e.tools }
func (e *Engine) History() *state.History    { return e.history }
func (e *Engine) Space() *geom.Space         { return e.space }
func (e *Engine) Scratch() *raster.Surface   { return e.layers.Scratch() }
func (e *Engine) Committed() *raster.Surface { return e.layers.Committed() }
func (e *Engine) Cursor() Cursor             { return e.cursor }
func (e *Engine) Drawing() bool              { return e.active != nil }

// Active returns the in-progress path, or nil.
func (e *Engine) Active() *state.Path { return e.active }

// Handle feeds one pointer sample through the stroke state machine:
// IDLE -down-> DRAWING -up|leave|blur-> IDLE, committing on the way out.
func (e *Engine) Handle(s Sample) {
	if !s.primary() {
		logger().Debug("sample ignored", "kind", s.Kind, "contact", s.Contact)
		return
	}

	switch s.Kind {
	case Down:
		e.updateCursor(s.Pos)
		e.begin(s.Pos)
	case Move:
		e.updateCursor(s.Pos)
		e.extend(s.Pos)
	case Up:
		e.end()
	case Leave, Blur:
		e.hideCursor()
		e.end()
	}
}

func (e *Engine) begin(vp state.Point) {
	if !e.tools.DrawingMode() || e.active != nil {
		return
	}
	doc := e.space.ToDocument(vp)
	e.active = state.NewPath(e.session.NextPathID(), e.tools.Style(), doc)
	e.preview()
}

func (e *Engine) extend(vp state.Point) {
	if e.active == nil {
		return
	}
	e.active.Append(e.space.ToDocument(vp))
	e.preview()
}

// preview shows the active stroke: a marker on the scratch surface, an
// eraser directly against the committed surface.
func (e *Engine) preview() {
	if e.active.Style.Tool == state.ToolEraser {
		e.replay()
		return
	}
	e.layers.Preview(e.active)
	e.redraw(false)
}

// end commits the active stroke, if any, clears the scratch surface and
// replays the history.
func (e *Engine) end() {
	if e.active == nil {
		return
	}
	p := e.active
	e.active = nil
	e.history.Commit(p)
	e.layers.ClearScratch()
	e.replay()
	logger().Info("stroke committed", "id", p.ID, "tool", p.Style.Tool, "points", p.Len())
}

func (e *Engine) updateCursor(vp state.Point) {
	e.cursor = Cursor{
		Visible: e.tools.DrawingMode(),
		Pos:     vp,
		Radius:  e.tools.Radius(),
		Tool:    e.tools.Tool(),
	}
}

func (e *Engine) hideCursor() {
	e.cursor.Visible = false
}

// Undo drops the last committed path and replays. No-op on empty history.
func (e *Engine) Undo() bool {
	p, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.replay()
	logger().Info("undo", "id", p.ID, "remaining", e.history.Len())
	return true
}

// Clear empties the history and blanks the committed surface.
func (e *Engine) Clear() {
	n := e.history.Clear()
	e.replay()
	logger().Info("history cleared", "removed", n)
}

// Resize adopts a new viewport size and device pixel ratio. The surfaces are
// reallocated and the history replayed; the active stroke is re-previewed.
func (e *Engine) Resize(width, height, ratio float32) {
	if !e.space.Resize(width, height, ratio) && e.layers.Committed().Image() != nil {
		return
	}
	e.layers.Resize()
	if e.active != nil {
		e.layers.Preview(e.active)
	}
	e.replay()
}

// Scroll adopts a new document scroll offset. Every stored path projects to
// a new viewport position, so the committed surface is replayed.
func (e *Engine) Scroll(o geom.Offset) {
	if !e.space.SetScroll(o) {
		return
	}
	if e.active != nil {
		e.layers.Preview(e.active)
	}
	e.replay()
}

// replay repaints the committed surface from history, with an active eraser
// on top.
func (e *Engine) replay() {
	e.layers.ReplayErasing(e.history.Paths(), e.active)
	e.redraw(true)
}

func (e *Engine) redraw(committed bool) {
	if e.OnRedraw != nil {
		e.OnRedraw(committed)
	}
}

func logger() *slog.Logger { return applog.For("engine") }
