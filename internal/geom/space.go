// Package geom converts between viewport space (the visible screen region)
// and document space (anchored to page content), and sizes raster backing
// stores for the device pixel ratio.
package geom

import (
	"math"

	"InkOverlay/internal/state"
)

// Offset is the scroll position of the document under the viewport.
type Offset struct{ X, Y float32 }

// ToDocument anchors a viewport point to the content under it.
func ToDocument(p state.Point, scroll Offset) state.Point {
	return state.Point{X: p.X + scroll.X, Y: p.Y + scroll.Y}
}

// ToViewport projects a document point onto the screen for the given scroll
// position.
func ToViewport(p state.Point, scroll Offset) state.Point {
	return state.Point{X: p.X - scroll.X, Y: p.Y - scroll.Y}
}

// BackingSize is the physical pixel size of a surface of the given CSS size:
// floor(css * ratio) per axis. Non-positive ratios count as 1.
func BackingSize(cssW, cssH, ratio float32) (int, int) {
	if ratio <= 0 || math.IsNaN(float64(ratio)) {
		ratio = 1
	}
	w := math.Floor(float64(max(cssW, 0)) * float64(ratio))
	h := math.Floor(float64(max(cssH, 0)) * float64(ratio))
	return int(w), int(h)
}

// Space tracks the viewport size, pixel ratio and scroll offset the overlay
// is currently rendered for.
type Space struct {
	width, height float32
	ratio         float32
	scroll        Offset
}

func NewSpace() *Space {
	return &Space{ratio: 1}
}

// Resize records a new CSS size and pixel ratio. It reports whether the
// physical backing size or ratio changed.
func (s *Space) Resize(width, height, ratio float32) bool {
	if ratio <= 0 {
		ratio = 1
	}
	oldW, oldH := s.BackingSize()
	oldRatio := s.ratio
	s.width, s.height, s.ratio = max(width, 0), max(height, 0), ratio
	newW, newH := s.BackingSize()
	return oldW != newW || oldH != newH || oldRatio != ratio
}

// SetScroll records the scroll offset and reports whether it moved.
func (s *Space) SetScroll(o Offset) bool {
	if s.scroll == o {
		return false
	}
	s.scroll = o
	return true
}

func (s *Space) Scroll() Offset           { return s.scroll }
func (s *Space) Ratio() float32           { return s.ratio }
func (s *Space) Size() (float32, float32) { return s.width, s.height }
func (s *Space) BackingSize() (int, int)  { return BackingSize(s.width, s.height, s.ratio) }

func (s *Space) ToDocument(p state.Point) state.Point { return ToDocument(p, s.scroll) }
func (s *Space) ToViewport(p state.Point) state.Point { return ToViewport(p, s.scroll) }

// Project maps document points to viewport vectors at the current scroll
// offset.
func (s *Space) Project(pts []state.Point) []Vec {
	out := make([]Vec, len(pts))
	for i, p := range pts {
		v := s.ToViewport(p)
		out[i] = Vec{X: float64(v.X), Y: float64(v.Y)}
	}
	return out
}
