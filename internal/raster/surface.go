// Package raster provides the offscreen RGBA surfaces the overlay paints on.
//
// Shapes are given in CSS pixels and scaled uniformly by the surface's pixel
// ratio, so strokes stay crisp on high-DPI displays. Two compositing modes
// are supported: source-over for ink and destination-out for erasing.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"InkOverlay/internal/geom"
)

// Composite selects how a filled shape combines with existing pixels.
type Composite int

const (
	// Over paints the shape's color on top: S + D*(1-Sa).
	Over Composite = iota
	// DestinationOut clears existing pixels under the shape: D*(1-Sa).
	DestinationOut
)

func (c Composite) String() string {
	if c == DestinationOut {
		return "destination-out"
	}
	return "source-over"
}

// Surface is a screen-sized RGBA buffer with its own rasterizer.
type Surface struct {
	img   *image.RGBA
	scale float32
	z     vector.Rasterizer
}

func NewSurface() *Surface {
	return &Surface{scale: 1}
}

// Resize replaces the backing store with a transparent one of w×h physical
// pixels. Previous contents are discarded.
func (s *Surface) Resize(w, h int, scale float32) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
	if w <= 0 || h <= 0 {
		s.img = nil
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing store, nil before the first usable Resize.
func (s *Surface) Image() *image.RGBA { return s.img }
func (s *Surface) Scale() float32     { return s.scale }

func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	if s.img == nil {
		return
	}
	clear(s.img.Pix)
}

// Fill rasterizes the closed polygon poly (CSS pixels) with the nonzero
// winding rule. It reports false when nothing could be painted: no backing
// store or fewer than three vertices.
func (s *Surface) Fill(poly []geom.Vec, c color.Color, op Composite) bool {
	if s.img == nil || len(poly) < 3 {
		return false
	}
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())

	k := float64(s.scale)
	s.z.MoveTo(float32(poly[0].X*k), float32(poly[0].Y*k))
	for _, p := range poly[1:] {
		s.z.LineTo(float32(p.X*k), float32(p.Y*k))
	}
	s.z.ClosePath()

	var src image.Image
	switch op {
	case DestinationOut:
		// Src with a transparent source leaves D*(1-coverage).
		s.z.DrawOp = draw.Src
		src = image.Transparent
	default:
		s.z.DrawOp = draw.Over
		src = image.NewUniform(c)
	}
	s.z.Draw(s.img, b, src, image.Point{})
	return true
}

// Equal reports whether two surfaces hold identical pixels.
func (s *Surface) Equal(o *Surface) bool {
	if s.img == nil || o.img == nil {
		return s.img == nil && o.img == nil
	}
	if s.img.Bounds() != o.img.Bounds() {
		return false
	}
	return string(s.img.Pix) == string(o.img.Pix)
}

// Snapshot returns a copy of the backing store.
func (s *Surface) Snapshot() *image.RGBA {
	if s.img == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	cp := image.NewRGBA(s.img.Bounds())
	copy(cp.Pix, s.img.Pix)
	return cp
}

// Blank reports whether every pixel is fully transparent.
func (s *Surface) Blank() bool {
	if s.img == nil {
		return true
	}
	for _, v := range s.img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}
