package layers

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkOverlay/internal/geom"
	"InkOverlay/internal/state"
)

var blue = color.NRGBA{B: 0xff, A: 0xff}

func committedPath(id string, tool state.Tool, width float32, pts ...state.Point) *state.Path {
	p := state.NewPath(id, state.Style{Tool: tool, ColorName: "blue", Color: blue, Width: width}, pts[0])
	for _, pt := range pts[1:] {
		p.Append(pt)
	}
	p.Freeze()
	return p
}

func newManager(t *testing.T, w, h float32) (*Manager, *geom.Space) {
	t.Helper()
	space := geom.NewSpace()
	space.Resize(w, h, 1)
	m := NewManager(space)
	m.Resize()
	return m, space
}

// inkRows returns the rows of column x that carry any ink.
func inkRows(img *image.RGBA, x int) []int {
	var rows []int
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		if img.RGBAAt(x, y).A != 0 {
			rows = append(rows, y)
		}
	}
	return rows
}

func fivePoints(y float32) []state.Point {
	return []state.Point{{X: 20, Y: y}, {X: 60, Y: y}, {X: 100, Y: y}, {X: 140, Y: y}, {X: 180, Y: y}}
}

func TestReplayIsIdempotent(t *testing.T) {
	m, _ := newManager(t, 200, 200)
	paths := []*state.Path{
		committedPath("a", state.ToolMarker, 8, fivePoints(50)...),
		committedPath("b", state.ToolEraser, 30, state.Point{X: 100, Y: 50}, state.Point{X: 110, Y: 60}),
		committedPath("c", state.ToolMarker, 8, state.Point{X: 30, Y: 150}),
	}

	m.Replay(paths)
	first := m.Committed().Snapshot()
	m.Replay(paths)
	m.Replay(paths)

	assert.Equal(t, first.Pix, m.Committed().Image().Pix)
}

func TestScrollShiftsRenderedStroke(t *testing.T) {
	m, space := newManager(t, 200, 300)
	p := committedPath("a", state.ToolMarker, 6, fivePoints(150)...)
	before := p.Points()

	m.Replay([]*state.Path{p})
	rowsAt0 := inkRows(m.Committed().Image(), 100)
	require.NotEmpty(t, rowsAt0)

	space.SetScroll(geom.Offset{Y: 100})
	m.Replay([]*state.Path{p})
	rowsAt100 := inkRows(m.Committed().Image(), 100)
	require.Len(t, rowsAt100, len(rowsAt0))

	for i := range rowsAt0 {
		assert.Equal(t, rowsAt0[i]-100, rowsAt100[i])
	}
	assert.Equal(t, before, p.Points())
}

func TestReplayEmptyEqualsClearedSurface(t *testing.T) {
	m, _ := newManager(t, 100, 100)
	m.Replay([]*state.Path{committedPath("a", state.ToolMarker, 6, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 50}, state.Point{X: 90, Y: 10})})
	require.False(t, m.Committed().Blank())

	m.Replay(nil)
	fresh, _ := newManager(t, 100, 100)
	assert.True(t, m.Committed().Equal(fresh.Committed()))
}

func TestEraseSurvivesResize(t *testing.T) {
	m, space := newManager(t, 200, 200)
	paths := []*state.Path{
		committedPath("ink", state.ToolMarker, 20, fivePoints(100)...),
		committedPath("hole", state.ToolEraser, 40, state.Point{X: 100, Y: 100}),
	}
	m.Replay(paths)
	before := m.Committed().Snapshot()
	assert.Zero(t, before.RGBAAt(100, 100).A)

	space.Resize(320, 240, 1)
	m.Resize()
	assert.True(t, m.Committed().Blank(), "resize discards the backing store")
	m.Replay(paths)

	after := m.Committed().Image()
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			require.Equal(t, before.RGBAAt(x, y), after.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestEraserOrderMatters(t *testing.T) {
	a := committedPath("a", state.ToolMarker, 20, fivePoints(100)...)
	e := committedPath("e", state.ToolEraser, 40, state.Point{X: 100, Y: 100})
	b := committedPath("b", state.ToolMarker, 20, state.Point{X: 100, Y: 40}, state.Point{X: 100, Y: 160})

	m, _ := newManager(t, 200, 200)
	m.Replay([]*state.Path{a, e, b})
	original := m.Committed().Snapshot()
	assert.NotZero(t, original.RGBAAt(100, 100).A, "b paints over the hole")

	m.Replay([]*state.Path{a, b, e})
	assert.Zero(t, m.Committed().Image().RGBAAt(100, 100).A)
	assert.NotEqual(t, original.Pix, m.Committed().Image().Pix)
}

func TestPreviewNeverAccumulates(t *testing.T) {
	m, _ := newManager(t, 200, 200)
	active := state.NewPath("x", state.Style{Tool: state.ToolMarker, Color: blue, Width: 6}, state.Point{X: 20, Y: 20})
	m.Preview(active)
	assert.NotZero(t, m.Scratch().Image().RGBAAt(20, 20).A)

	other := state.NewPath("y", state.Style{Tool: state.ToolMarker, Color: blue, Width: 6}, state.Point{X: 150, Y: 150})
	m.Preview(other)
	assert.Zero(t, m.Scratch().Image().RGBAAt(20, 20).A)
	assert.NotZero(t, m.Scratch().Image().RGBAAt(150, 150).A)

	m.ClearScratch()
	assert.True(t, m.Scratch().Blank())
	assert.True(t, m.Committed().Blank(), "preview never touches the committed surface")

	s, c := m.Revisions()
	assert.Equal(t, uint64(4), s)
	assert.Equal(t, uint64(1), c)
}

func TestRenderDocumentArea(t *testing.T) {
	p := committedPath("a", state.ToolMarker, 10, state.Point{X: 1000, Y: 2000})
	area, ok := state.Bounds([]*state.Path{p})
	require.True(t, ok)

	img := Render([]*state.Path{p}, area, 2)
	assert.Equal(t, int(area.Width*2), img.Bounds().Dx())
	c := img.Bounds().Dx() / 2
	assert.Equal(t, uint8(0xff), img.RGBAAt(c, c).B)
}

func TestActiveEraserReplaysOntoCommitted(t *testing.T) {
	m, _ := newManager(t, 200, 200)
	history := []*state.Path{committedPath("a", state.ToolMarker, 10,
		state.Point{X: 20, Y: 100}, state.Point{X: 100, Y: 100}, state.Point{X: 180, Y: 100})}
	m.Replay(history)
	require.NotZero(t, m.Committed().Image().RGBAAt(100, 100).A)

	eraser := state.NewPath("e", state.Style{Tool: state.ToolEraser, Width: 40}, state.Point{X: 100, Y: 100})
	m.Preview(eraser)
	assert.True(t, m.Scratch().Blank(), "erasers are not previewed on scratch")

	m.ReplayErasing(history, eraser)
	assert.Zero(t, m.Committed().Image().RGBAAt(100, 100).A)
	assert.NotZero(t, m.Committed().Image().RGBAAt(30, 100).A)
	assert.Len(t, history, 1)

	m.ReplayErasing(history, nil)
	assert.NotZero(t, m.Committed().Image().RGBAAt(100, 100).A, "erasure is gone once the eraser is dropped")
}
