package state

// Rect is an axis-aligned area in document space.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MaxRadius is the widest half-width a stroke of the given width reaches:
// simulated pressure grows the radius up to three quarters of the width.
func MaxRadius(width float32) float32 { return 0.75 * width }

// Bounds is the bounding box of the path's points padded by its largest
// stroke radius, i.e. the area its ink can touch.
func (p *Path) Bounds() Rect {
	minX, minY := p.points[0].X, p.points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.points[1:] {
		minX = min(minX, pt.X)
		maxX = max(maxX, pt.X)
		minY = min(minY, pt.Y)
		maxY = max(maxY, pt.Y)
	}

	padding := MaxRadius(p.Style.Width) + 1
	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}

// Bounds covers every path in the slice. ok is false for an empty slice.
func Bounds(paths []*Path) (r Rect, ok bool) {
	for _, p := range paths {
		if p == nil || p.Len() == 0 {
			continue
		}
		if !ok {
			r, ok = p.Bounds(), true
			continue
		}
		r = r.Union(p.Bounds())
	}
	return r, ok
}
