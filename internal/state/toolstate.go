package state

import "fmt"

// ToolState is the shared drawing context: active tool, active color and the
// drawing-mode flag. It is passed explicitly to whoever reads it and is only
// mutated through its setters.
type ToolState struct {
	tool        Tool
	color       Swatch
	drawingMode bool

	palette      Palette
	markerWidth  float32
	eraserRadius float32

	// OnChange is called after any setter changed something.
	OnChange func()
}

// NewToolState starts with the marker, the first palette color and drawing
// mode off.
func NewToolState(palette Palette, markerWidth, eraserRadius float32) *ToolState {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	return &ToolState{
		tool:         ToolMarker,
		color:        palette[0],
		palette:      palette,
		markerWidth:  markerWidth,
		eraserRadius: eraserRadius,
	}
}

func (ts *ToolState) Tool() Tool            { return ts.tool }
func (ts *ToolState) Color() Swatch         { return ts.color }
func (ts *ToolState) DrawingMode() bool     { return ts.drawingMode }
func (ts *ToolState) Palette() Palette      { return ts.palette }
func (ts *ToolState) MarkerWidth() float32  { return ts.markerWidth }
func (ts *ToolState) EraserRadius() float32 { return ts.eraserRadius }

func (ts *ToolState) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return err
	}
	if ts.tool != t {
		ts.tool = t
		ts.changed()
	}
	return nil
}

// SetColor selects a palette color by name.
func (ts *ToolState) SetColor(name string) error {
	s, err := ts.palette.Lookup(name)
	if err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	if ts.color != s {
		ts.color = s
		ts.changed()
	}
	return nil
}

func (ts *ToolState) SetDrawingMode(on bool) {
	if ts.drawingMode != on {
		ts.drawingMode = on
		ts.changed()
	}
}

// Radius is the preview/dot radius of the active tool in CSS pixels.
func (ts *ToolState) Radius() float32 {
	if ts.tool == ToolEraser {
		return ts.eraserRadius
	}
	return ts.markerWidth / 2
}

// Style snapshots the current settings for a new stroke.
func (ts *ToolState) Style() Style {
	st := Style{
		Tool:      ts.tool,
		ColorName: ts.color.Name,
		Color:     ts.color.Color,
		Width:     ts.markerWidth,
	}
	if ts.tool == ToolEraser {
		st.Width = 2 * ts.eraserRadius
	}
	return st
}

func (ts *ToolState) changed() {
	if ts.OnChange != nil {
		ts.OnChange()
	}
}
