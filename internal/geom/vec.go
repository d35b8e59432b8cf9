package geom

import "math"

// Vec is a point or displacement in CSS pixels, in float64 for the stroke
// math.
type Vec struct{ X, Y float64 }

func (v Vec) Add(w Vec) Vec       { return Vec{v.X + w.X, v.Y + w.Y} }
func (v Vec) Sub(w Vec) Vec       { return Vec{v.X - w.X, v.Y - w.Y} }
func (v Vec) Mul(s float64) Vec   { return Vec{v.X * s, v.Y * s} }
func (v Vec) Neg() Vec            { return Vec{-v.X, -v.Y} }
func (v Vec) Dot(w Vec) float64   { return v.X*w.X + v.Y*w.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(w Vec) float64  { return v.Sub(w).Len() }
func (v Vec) Dist2(w Vec) float64 { return v.Sub(w).Dot(v.Sub(w)) }

// Perp rotates v by a quarter turn: (y, -x).
func (v Vec) Perp() Vec { return Vec{v.Y, -v.X} }

// Unit returns v scaled to length 1, or the zero vector.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Lerp interpolates from v (t=0) to w (t=1).
func (v Vec) Lerp(w Vec, t float64) Vec {
	return Vec{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// RotateAround rotates v around c by r radians.
func (v Vec) RotateAround(c Vec, r float64) Vec {
	s, co := math.Sincos(r)
	px, py := v.X-c.X, v.Y-c.Y
	return Vec{px*co - py*s + c.X, px*s + py*co + c.Y}
}

// Project moves v along direction d by distance k.
func (v Vec) Project(d Vec, k float64) Vec {
	return v.Add(d.Mul(k))
}

func (v Vec) Equal(w Vec) bool { return v.X == w.X && v.Y == w.Y }
