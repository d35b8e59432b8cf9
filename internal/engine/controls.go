package engine

import (
	"strings"

	"InkOverlay/internal/state"
)

// Modifier keys held during a key event.
type Modifier uint

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// HandleKey reacts to keyboard shortcuts. Control+Z or Super+Z undoes; the
// returned handled flag tells the host to suppress its default action for
// the combination.
func (e *Engine) HandleKey(key string, mods Modifier) (handled bool) {
	if !strings.EqualFold(key, "z") || mods&(ModControl|ModSuper) == 0 || mods&ModShift != 0 {
		return false
	}
	e.Undo()
	return true
}

func (e *Engine) DrawingMode() bool { return e.tools.DrawingMode() }

// SetDrawingMode switches stroke capture on or off. The history is kept
// either way. Turning drawing mode off mid-stroke commits the partial stroke,
// the same as the pointer leaving the overlay.
func (e *Engine) SetDrawingMode(on bool) {
	if !on {
		e.end()
		e.hideCursor()
	}
	e.tools.SetDrawingMode(on)
	e.redraw(false)
}

func (e *Engine) ToggleDrawingMode() bool {
	e.SetDrawingMode(!e.tools.DrawingMode())
	return e.tools.DrawingMode()
}

func (e *Engine) Tool() state.Tool { return e.tools.Tool() }

// SetTool changes the tool for the next stroke. An active stroke keeps the
// style it started with.
func (e *Engine) SetTool(t state.Tool) error {
	if err := e.tools.SetTool(t); err != nil {
		return err
	}
	e.cursor.Radius = e.tools.Radius()
	e.cursor.Tool = t
	e.redraw(false)
	return nil
}

func (e *Engine) Color() state.Swatch { return e.tools.Color() }

// SetColor picks a palette color by name for the next stroke.
func (e *Engine) SetColor(name string) error {
	return e.tools.SetColor(name)
}

// Snapshot is a read-only summary of the engine state for remote
// controllers.
type Snapshot struct {
	DrawingMode bool   `json:"drawing_mode"`
	Tool        string `json:"tool"`
	Color       string `json:"color"`
	Strokes     int    `json:"strokes"`
	Drawing     bool   `json:"drawing"`
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		DrawingMode: e.tools.DrawingMode(),
		Tool:        string(e.tools.Tool()),
		Color:       e.tools.Color().Name,
		Strokes:     e.history.Len(),
		Drawing:     e.active != nil,
	}
}
