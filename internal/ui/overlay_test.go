package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkOverlay/internal/engine"
	"InkOverlay/internal/geom"
	"InkOverlay/internal/state"
)

func newTestOverlay(t *testing.T) (*Overlay, fyne.Window) {
	t.Helper()
	test.NewTempApp(t)

	e := engine.New(state.NewToolState(state.DefaultPalette(), 6, 24))
	o := NewOverlay(e, NewBoard(fyne.NewSize(800, 2000), 50))
	w := test.NewWindow(o)
	w.SetPadded(false)
	w.Resize(fyne.NewSize(400, 300))
	t.Cleanup(w.Close)
	return o, w
}

func press(o *Overlay, kind engine.EventKind, x, y float32) {
	ev := &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
	switch kind {
	case engine.Down:
		o.input.MouseDown(ev)
	case engine.Up:
		o.input.MouseUp(ev)
	default:
		o.input.MouseMoved(ev)
	}
}

func TestOverlayFollowsWidgetSize(t *testing.T) {
	o, _ := newTestOverlay(t)

	w, h := o.engine.Space().Size()
	assert.Equal(t, o.Size().Width, w)
	assert.Equal(t, o.Size().Height, h)
	assert.NotNil(t, o.engine.Committed().Image())
}

func TestInputHiddenUntilDrawingMode(t *testing.T) {
	o, _ := newTestOverlay(t)
	assert.False(t, o.input.Visible())

	o.engine.SetDrawingMode(true)
	assert.True(t, o.input.Visible())

	o.engine.ToggleDrawingMode()
	assert.False(t, o.input.Visible())
}

func TestMouseStrokeCommits(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.engine.SetDrawingMode(true)

	changes := 0
	o.Observe(func() { changes++ })

	press(o, engine.Down, 40, 40)
	press(o, engine.Move, 80, 60)
	assert.True(t, o.cursor.Visible())
	press(o, engine.Move, 80, 60)
	press(o, engine.Move, 120, 90)
	press(o, engine.Up, 120, 90)

	require.Equal(t, 1, o.engine.History().Len())
	assert.Equal(t, 3, o.engine.History().Last().Len(), "repeated positions are dropped")
	assert.Same(t, o.engine.Committed().Image(), o.committed.Image)
	assert.Equal(t, 1, changes)

	o.input.MouseOut()
	assert.False(t, o.cursor.Visible())
}

func TestWheelScrollsDocumentAndInk(t *testing.T) {
	o, _ := newTestOverlay(t)
	o.engine.SetDrawingMode(true)
	press(o, engine.Down, 100, 200)
	press(o, engine.Up, 100, 200)

	o.input.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -150)})
	assert.Equal(t, geom.Offset{Y: 150}, o.engine.Space().Scroll())
	assert.NotZero(t, o.engine.Committed().Image().RGBAAt(100, 50).A)
}

func TestToolbarTracksEngine(t *testing.T) {
	o, _ := newTestOverlay(t)
	tb := NewToolbar(o)
	_ = tb.Object()

	assert.Equal(t, "Drawing: off", tb.mode.Text)
	test.Tap(tb.mode)
	assert.True(t, o.engine.DrawingMode())
	assert.Equal(t, "Drawing: on", tb.mode.Text)

	require.NoError(t, o.engine.SetColor("blue"))
	for _, s := range tb.swatches {
		assert.Equal(t, s.swatch.Name == "blue", s.selected, s.swatch.Name)
	}

	test.Tap(tb.swatches[0])
	assert.Equal(t, tb.swatches[0].swatch.Name, o.engine.Color().Name)
}

func TestModifierMapping(t *testing.T) {
	assert.Equal(t, engine.ModControl|engine.ModShift, modifiers(fyne.KeyModifierControl|fyne.KeyModifierShift))
	assert.Equal(t, engine.ModSuper, modifiers(fyne.KeyModifierSuper))
}

func TestScaleChangeResizesSurfaces(t *testing.T) {
	o, w := newTestOverlay(t)
	o.engine.SetDrawingMode(true)
	press(o, engine.Down, 40, 40)
	press(o, engine.Up, 40, 40)
	size := o.Size()

	w.Canvas().(test.WindowlessCanvas).SetScale(2)
	o.Refresh()
	assert.Equal(t, float32(2), o.engine.Space().Ratio())
	bw, bh := o.engine.Committed().Size()
	assert.Equal(t, int(size.Width*2), bw)
	assert.Equal(t, int(size.Height*2), bh)
	assert.NotZero(t, o.engine.Committed().Image().RGBAAt(80, 80).A, "history replayed at the new ratio")

	w.Canvas().(test.WindowlessCanvas).SetScale(3)
	press(o, engine.Move, 60, 60)
	assert.Equal(t, float32(3), o.engine.Space().Ratio(), "pointer input picks up the ratio too")
	assert.Equal(t, size, o.Size())
}

func TestToolShortcutsAndErrors(t *testing.T) {
	o, w := newTestOverlay(t)
	tb := NewToolbar(o)
	_ = tb.Object()
	bindShortcuts(w, o, tb)

	w.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyE})
	assert.Equal(t, state.ToolEraser, o.engine.Tool())
	w.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyM})
	assert.Equal(t, state.ToolMarker, o.engine.Tool())

	tb.setTool("laser")
	assert.Contains(t, tb.status.Text, "laser")
	assert.Equal(t, state.ToolMarker, o.engine.Tool())
}
