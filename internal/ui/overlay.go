package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkOverlay/internal/engine"
	"InkOverlay/internal/geom"
	"InkOverlay/internal/raster"
	"InkOverlay/internal/state"
)

// Overlay stacks the committed and scratch surfaces above a scrolling
// document and feeds pointer input to the engine while drawing mode is on.
// With drawing mode off the input layer is hidden and the document gets
// every event.
type Overlay struct {
	widget.BaseWidget
	engine *engine.Engine
	doc    *container.Scroll

	committed *canvas.Image
	scratch   *canvas.Image
	cursor    *canvas.Circle
	input     *inputLayer

	listeners []func()
}

var emptyImage = image.NewRGBA(image.Rect(0, 0, 1, 1))

func NewOverlay(e *engine.Engine, doc *container.Scroll) *Overlay {
	o := &Overlay{
		engine:    e,
		doc:       doc,
		committed: newSurfaceImage(),
		scratch:   newSurfaceImage(),
		cursor:    canvas.NewCircle(color.Transparent),
	}
	o.input = newInputLayer(o)
	o.cursor.StrokeWidth = 1.5
	o.cursor.Hide()

	doc.OnScrolled = func(p fyne.Position) {
		e.Scroll(geom.Offset{X: p.X, Y: p.Y})
	}
	e.OnRedraw = o.redraw
	e.Tools().OnChange = o.toolsChanged
	o.syncMode()

	o.ExtendBaseWidget(o)
	return o
}

func newSurfaceImage() *canvas.Image {
	img := canvas.NewImageFromImage(emptyImage)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleFastest
	return img
}

func (o *Overlay) Engine() *engine.Engine { return o.engine }

// Observe registers fn to run whenever the tool state or history changes.
func (o *Overlay) Observe(fn func()) {
	o.listeners = append(o.listeners, fn)
}

func (o *Overlay) notify() {
	for _, fn := range o.listeners {
		fn()
	}
}

// handle runs a sample through the engine and refreshes the cursor.
func (o *Overlay) handle(s engine.Sample) {
	o.syncSize()
	o.engine.Handle(s)
	o.updateCursor()
}

func (o *Overlay) redraw(committed bool) {
	o.scratch.Image = surfaceImage(o.engine.Scratch())
	o.scratch.Refresh()
	if committed {
		o.committed.Image = surfaceImage(o.engine.Committed())
		o.committed.Refresh()
		// An eraser in progress replays on every move; observers hear
		// about it once it is committed.
		if !o.engine.Drawing() {
			o.notify()
		}
	}
}

func surfaceImage(s *raster.Surface) image.Image {
	if img := s.Image(); img != nil {
		return img
	}
	return emptyImage
}

func (o *Overlay) toolsChanged() {
	o.syncMode()
	o.updateCursor()
	o.notify()
}

func (o *Overlay) syncMode() {
	if o.engine.DrawingMode() {
		o.input.Show()
	} else {
		o.input.Hide()
	}
}

func (o *Overlay) updateCursor() {
	c := o.engine.Cursor()
	if !c.Visible {
		o.cursor.Hide()
		return
	}
	if c.Tool == state.ToolEraser {
		o.cursor.FillColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x30}
		o.cursor.StrokeColor = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xc0}
	} else {
		ink := o.engine.Color().Color
		o.cursor.FillColor = color.NRGBA{R: ink.R, G: ink.G, B: ink.B, A: ink.A / 2}
		o.cursor.StrokeColor = ink
	}
	o.cursor.Move(fyne.NewPos(c.Pos.X-c.Radius, c.Pos.Y-c.Radius))
	o.cursor.Resize(fyne.NewSize(2*c.Radius, 2*c.Radius))
	o.cursor.Show()
	o.cursor.Refresh()
}

// syncSize hands the current size and pixel ratio to the engine. Moving the
// window to a monitor with another scale changes the ratio without a new
// layout. The engine ignores calls that change nothing.
func (o *Overlay) syncSize() {
	size := o.Size()
	o.engine.Resize(size.Width, size.Height, o.scale())
}

// scale is the device pixel ratio of the canvas the overlay is shown on.
func (o *Overlay) scale() float32 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(o); c != nil {
		return c.Scale()
	}
	return 1
}

func (o *Overlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{
		o:       o,
		objects: []fyne.CanvasObject{o.doc, o.committed, o.scratch, o.cursor, o.input},
	}
}

type overlayRenderer struct {
	o       *Overlay
	objects []fyne.CanvasObject
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	for _, obj := range []fyne.CanvasObject{r.o.doc, r.o.committed, r.o.scratch, r.o.input} {
		obj.Move(fyne.NewPos(0, 0))
		obj.Resize(size)
	}
	r.o.engine.Resize(size.Width, size.Height, r.o.scale())
}

func (r *overlayRenderer) MinSize() fyne.Size           { return r.o.doc.MinSize() }
func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *overlayRenderer) Destroy()                     {}

func (r *overlayRenderer) Refresh() {
	r.o.syncSize()
	r.o.syncMode()
	r.o.updateCursor()
	canvas.Refresh(r.o.committed)
	canvas.Refresh(r.o.scratch)
}

// inputLayer is the transparent widget that catches pointer input above the
// surfaces. Scroll wheel events are handed on to the document.
type inputLayer struct {
	widget.BaseWidget
	o    *Overlay
	last fyne.Position
}

var (
	_ desktop.Mouseable = (*inputLayer)(nil)
	_ desktop.Hoverable = (*inputLayer)(nil)
	_ fyne.Draggable    = (*inputLayer)(nil)
	_ fyne.Scrollable   = (*inputLayer)(nil)
)

func newInputLayer(o *Overlay) *inputLayer {
	in := &inputLayer{o: o}
	in.ExtendBaseWidget(in)
	return in
}

func (in *inputLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (in *inputLayer) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	in.last = ev.Position
	in.o.handle(engine.MouseSample(engine.Down, ev.Position.X, ev.Position.Y))
}

func (in *inputLayer) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	in.o.handle(engine.MouseSample(engine.Up, ev.Position.X, ev.Position.Y))
}

func (in *inputLayer) Dragged(ev *fyne.DragEvent) { in.move(ev.Position) }

// DragEnd arrives instead of MouseUp when the press turned into a drag.
func (in *inputLayer) DragEnd() {
	in.o.handle(engine.MouseSample(engine.Up, in.last.X, in.last.Y))
}

func (in *inputLayer) MouseIn(ev *desktop.MouseEvent)    { in.move(ev.Position) }
func (in *inputLayer) MouseMoved(ev *desktop.MouseEvent) { in.move(ev.Position) }

func (in *inputLayer) MouseOut() {
	in.o.handle(engine.Sample{Kind: engine.Leave})
}

func (in *inputLayer) Scrolled(ev *fyne.ScrollEvent) {
	in.o.doc.Scrolled(ev)
}

// move drops repeats; drags report the same position through both the drag
// and hover paths.
func (in *inputLayer) move(p fyne.Position) {
	if p == in.last && in.o.engine.Drawing() {
		return
	}
	in.last = p
	in.o.handle(engine.MouseSample(engine.Move, p.X, p.Y))
}
