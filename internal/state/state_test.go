package state

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerPath(id string, pts ...Point) *Path {
	p := NewPath(id, Style{Tool: ToolMarker, ColorName: "red", Width: 6}, pts[0])
	for _, pt := range pts[1:] {
		p.Append(pt)
	}
	return p
}

func TestPathFrozenAfterCommit(t *testing.T) {
	h := NewHistory()
	p := markerPath("a", Point{1, 1}, Point{2, 2})

	require.True(t, h.Commit(p))
	assert.True(t, p.Frozen())
	assert.False(t, p.Append(Point{3, 3}))
	assert.Equal(t, 2, p.Len())
}

func TestPathPointsIsCopy(t *testing.T) {
	p := markerPath("a", Point{1, 1}, Point{2, 2})
	pts := p.Points()
	pts[0] = Point{99, 99}
	assert.Equal(t, Point{1, 1}, p.Points()[0])
}

func TestHistoryOrderAndUndo(t *testing.T) {
	h := NewHistory()
	a := markerPath("a", Point{0, 0})
	b := markerPath("b", Point{1, 1})
	c := markerPath("c", Point{2, 2})
	h.Commit(a)
	h.Commit(b)
	h.Commit(c)

	assert.Equal(t, []*Path{a, b, c}, h.Paths())

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Same(t, b, h.Last())
	assert.Equal(t, 2, h.Len())
}

func TestHistoryUndoEmpty(t *testing.T) {
	h := NewHistory()
	p, ok := h.Undo()
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Nil(t, h.Last())
}

func TestHistoryIgnoresNil(t *testing.T) {
	h := NewHistory()
	assert.False(t, h.Commit(nil))
	assert.Equal(t, 0, h.Len())
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Commit(markerPath("a", Point{0, 0}))
	h.Commit(markerPath("b", Point{0, 0}))

	assert.Equal(t, 2, h.Clear())
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Paths())
	assert.Equal(t, 0, h.Clear())
}

func TestToolStateStyleStamp(t *testing.T) {
	ts := NewToolState(DefaultPalette(), 6, 24)
	require.NoError(t, ts.SetColor("blue"))

	st := ts.Style()
	assert.Equal(t, ToolMarker, st.Tool)
	assert.Equal(t, "blue", st.ColorName)
	assert.Equal(t, float32(6), st.Width)
	assert.Equal(t, float32(3), ts.Radius())

	require.NoError(t, ts.SetTool(ToolEraser))
	st = ts.Style()
	assert.Equal(t, ToolEraser, st.Tool)
	assert.Equal(t, float32(48), st.Width)
	assert.Equal(t, float32(24), ts.Radius())
}

func TestToolStateRejectsUnknown(t *testing.T) {
	ts := NewToolState(nil, 6, 24)
	changes := 0
	ts.OnChange = func() { changes++ }

	assert.ErrorIs(t, ts.SetTool("laser"), ErrUnknownTool)
	assert.ErrorIs(t, ts.SetColor("magenta"), ErrUnknownColor)
	assert.Equal(t, ToolMarker, ts.Tool())
	assert.Equal(t, "red", ts.Color().Name)
	assert.Zero(t, changes)

	ts.SetDrawingMode(true)
	ts.SetDrawingMode(true)
	assert.Equal(t, 1, changes)
}

func TestPaletteLookup(t *testing.T) {
	p := DefaultPalette()
	s, err := p.Lookup("GREEN")
	require.NoError(t, err)
	assert.Equal(t, "green", s.Name)
	assert.Contains(t, p.Names(), "yellow")
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, c)

	c, err = ParseHex("00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)

	_, err = ParseHex("#fff")
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	a := markerPath("a", Point{10, 10}, Point{20, 30})
	r := a.Bounds()
	assert.Equal(t, Rect{X: 4.5, Y: 4.5, Width: 21, Height: 31}, r)

	b := markerPath("b", Point{100, 100})
	all, ok := Bounds([]*Path{a, b})
	require.True(t, ok)
	assert.Equal(t, float32(4.5), all.X)
	assert.Equal(t, float32(105.5), all.X+all.Width)
	assert.True(t, all.Overlaps(b.Bounds()))

	_, ok = Bounds(nil)
	assert.False(t, ok)
}

func TestSessionPathIDs(t *testing.T) {
	s := NewSession()
	first := s.NextPathID()
	second := s.NextPathID()
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "path-"+s.ID()[:8]))
	assert.True(t, strings.HasSuffix(second, "-2"))
}
