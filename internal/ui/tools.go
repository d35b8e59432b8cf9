package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkOverlay/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	swatch   state.Swatch
	selected bool
	OnTapped func(state.Swatch)
}

func newColorSwatch(s state.Swatch, tapped func(state.Swatch)) *colorSwatch {
	cs := &colorSwatch{swatch: s, OnTapped: tapped}
	cs.ExtendBaseWidget(cs)
	return cs
}

func (s *colorSwatch) SetSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	s.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.swatch.Color)
	border := canvas.NewRectangle(color.Transparent)
	r := &swatchRenderer{s: s, rect: rect, border: border}
	r.Refresh()
	return r
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.swatch)
	}
}

type swatchRenderer struct {
	s            *colorSwatch
	rect, border *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	r.rect.Resize(size)
	r.border.Resize(size)
}

func (r *swatchRenderer) MinSize() fyne.Size           { return fyne.NewSize(32, 32) }
func (r *swatchRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.rect, r.border} }
func (r *swatchRenderer) Destroy()                     {}

func (r *swatchRenderer) Refresh() {
	if r.s.selected {
		r.border.StrokeColor = color.Gray{Y: 40}
		r.border.StrokeWidth = 3
	} else {
		r.border.StrokeColor = color.Gray{Y: 150}
		r.border.StrokeWidth = 1
	}
	canvas.Refresh(r.border)
}

// Toolbar holds the presenter controls. It follows the engine state, so
// changes made by a remote controller show up here too.
type Toolbar struct {
	o        *Overlay
	swatches []*colorSwatch
	mode     *widget.Button
	tool     *widget.Label
	status   *widget.Label

	// OnExport is bound to the export action when set.
	OnExport func()
}

func NewToolbar(o *Overlay) *Toolbar {
	t := &Toolbar{
		o:      o,
		tool:   widget.NewLabel(""),
		status: widget.NewLabel("Ready"),
	}
	t.mode = widget.NewButton("", func() { o.engine.ToggleDrawingMode() })

	for _, s := range o.engine.Tools().Palette() {
		t.swatches = append(t.swatches, newColorSwatch(s, func(s state.Swatch) {
			if err := o.engine.SetColor(s.Name); err != nil {
				t.SetStatus(err.Error())
			}
		}))
	}

	o.Observe(t.Sync)
	t.Sync()
	return t
}

// Object assembles the toolbar row.
func (t *Toolbar) Object() fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { t.setTool(state.ToolMarker) }), // Marker
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() { t.setTool(state.ToolEraser) }),  // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { t.o.engine.Undo() }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { t.o.engine.Clear() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if t.OnExport != nil {
				t.OnExport()
			}
		}),
	)

	colorBox := container.NewHBox()
	for _, s := range t.swatches {
		colorBox.Add(s)
	}

	return container.NewHBox(
		t.mode,
		widget.NewSeparator(),
		widget.NewLabel("Tool:"),
		tb,
		t.tool,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		layout.NewSpacer(),
		t.status,
	)
}

func (t *Toolbar) setTool(tool state.Tool) {
	if err := t.o.engine.SetTool(tool); err != nil {
		t.SetStatus(err.Error())
	}
}

// Sync reflects the engine state in the controls.
func (t *Toolbar) Sync() {
	e := t.o.engine
	if e.DrawingMode() {
		t.mode.SetText("Drawing: on")
		t.mode.Importance = widget.HighImportance
	} else {
		t.mode.SetText("Drawing: off")
		t.mode.Importance = widget.MediumImportance
	}
	t.mode.Refresh()
	t.tool.SetText(string(e.Tool()))

	current := e.Color().Name
	for _, s := range t.swatches {
		s.SetSelected(s.swatch.Name == current)
	}
}

func (t *Toolbar) SetStatus(text string) {
	t.status.SetText(text)
}
