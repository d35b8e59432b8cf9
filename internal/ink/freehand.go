// Package ink turns a recorded point sequence into a filled, variable-width
// outline and paints it on a raster surface.
//
// The synthesis uses simulated pressure: fast segments thin the stroke, slow
// ones thicken it. Input is streamlined toward the previous point to reduce
// visible lag, points inside the minimum length are skipped to damp jitter,
// and both ends get round caps.
package ink

import (
	"math"

	"InkOverlay/internal/geom"
)

// Stroke parameters. They are fixed, not user tunable.
const (
	Thinning   = 0.5
	Smoothing  = 0.5
	Streamline = 0.5

	pressureRate = 0.275
	defaultPress = 0.5
	// fixedPi avoids a rounding seam where cap arcs meet the sides.
	fixedPi = math.Pi + 0.0001
	// Sides of a round cap or dot.
	capSegments = 13
)

type strokePoint struct {
	point    geom.Vec
	pressure float64
	vector   geom.Vec // unit vector from this point back to the previous one
	distance float64
	running  float64
}

// radius for a given pressure: size*(0.5 - thinning*(0.5 - pressure)).
func radius(size, pressure float64) float64 {
	return size * (0.5 - Thinning*(0.5-pressure))
}

// Outline synthesizes the polygon enclosing a stroke of diameter size along
// pts. last marks a finished stroke, whose final input point is used
// verbatim instead of being streamlined. Empty input yields no vertices; a
// single point, or points that never move, yield a round dot of radius size/2.
func Outline(pts []geom.Vec, size float64, last bool) []geom.Vec {
	if len(pts) == 0 || size <= 0 {
		return nil
	}
	if stationary(pts) {
		return Dot(pts[0], size/2)
	}
	return outlinePoints(strokePoints(pts, size, last), size)
}

// Dot is a filled circle approximation centred on c.
func Dot(c geom.Vec, r float64) []geom.Vec {
	start := geom.Vec{X: c.X + r, Y: c.Y}
	out := make([]geom.Vec, 0, capSegments)
	for i := 0; i < capSegments; i++ {
		t := float64(i) / capSegments
		out = append(out, start.RotateAround(c, 2*math.Pi*t))
	}
	return out
}

func stationary(pts []geom.Vec) bool {
	for _, p := range pts[1:] {
		if !p.Equal(pts[0]) {
			return false
		}
	}
	return true
}

// strokePoints streamlines the input and annotates it with direction,
// distance and running length.
func strokePoints(in []geom.Vec, size float64, last bool) []strokePoint {
	t := 0.15 + (1-Streamline)*0.85

	pts := in
	if len(pts) == 2 {
		// Two points give too little for the corner logic; interpolate.
		a, b := pts[0], pts[1]
		pts = []geom.Vec{a}
		for i := 1; i < 5; i++ {
			pts = append(pts, a.Lerp(b, float64(i)/4))
		}
	}

	out := []strokePoint{{point: pts[0], pressure: defaultPress, vector: geom.Vec{X: 1, Y: 1}}}
	prev := out[0]
	reachedMin := false
	running := 0.0
	maxIdx := len(pts) - 1

	for i := 1; i < len(pts); i++ {
		var p geom.Vec
		if last && i == maxIdx {
			p = pts[i]
		} else {
			p = prev.point.Lerp(pts[i], t)
		}
		if p.Equal(prev.point) {
			continue
		}
		d := p.Dist(prev.point)
		running += d
		if i < maxIdx && !reachedMin {
			if running < size {
				continue
			}
			reachedMin = true
		}
		prev = strokePoint{
			point:    p,
			pressure: defaultPress,
			vector:   prev.point.Sub(p).Unit(),
			distance: d,
			running:  running,
		}
		out = append(out, prev)
	}

	if len(out) > 1 {
		out[0].vector = out[1].vector
	} else {
		out[0].vector = geom.Vec{}
	}
	return out
}

func simulatePressure(prev, distance, size float64) float64 {
	sp := math.Min(1, distance/size)
	rp := math.Min(1, 1-sp)
	return math.Min(1, prev+(rp-prev)*(sp*pressureRate))
}

// outlinePoints offsets each stroke point to both sides by its radius and
// closes the shape with round caps.
func outlinePoints(points []strokePoint, size float64) []geom.Vec {
	switch len(points) {
	case 0:
		return nil
	case 1:
		return Dot(points[0].point, radius(size, defaultPress))
	}
	n := len(points)
	total := points[n-1].running
	minDistance := math.Pow(size*Smoothing, 2)

	// Seed pressure from the first few points so the start is not a blob.
	prevPressure := points[0].pressure
	for _, sp := range points[:min(n, 10)] {
		p := simulatePressure(prevPressure, sp.distance, size)
		prevPressure = (prevPressure + p) / 2
	}

	r := radius(size, points[n-1].pressure)
	firstRadius := -1.0
	prevVector := points[0].vector

	var left, right []geom.Vec
	pl, pr := points[0].point, points[0].point
	var tl, tr geom.Vec
	prevSharp := false

	for i, sp := range points {
		if i < n-1 && total-sp.running < 3 {
			continue
		}

		pressure := simulatePressure(prevPressure, sp.distance, size)
		r = math.Max(0.01, radius(size, pressure))
		if firstRadius < 0 {
			firstRadius = r
		}

		nextVector := sp.vector
		if i < n-1 {
			nextVector = points[i+1].vector
		}
		nextDot := 1.0
		if i < n-1 {
			nextDot = sp.vector.Dot(nextVector)
		}
		prevDot := sp.vector.Dot(prevVector)

		sharp := prevDot < 0 && !prevSharp
		nextSharp := nextDot < 0

		if sharp || nextSharp {
			// Round join: sweep half a turn around the corner.
			offset := prevVector.Perp().Mul(r)
			for step := 0.0; step <= 1; step += 1.0 / capSegments {
				tl = sp.point.Sub(offset).RotateAround(sp.point, fixedPi*step)
				left = append(left, tl)
				tr = sp.point.Add(offset).RotateAround(sp.point, -fixedPi*step)
				right = append(right, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == n-1 {
			offset := sp.vector.Perp().Mul(r)
			left = append(left, sp.point.Sub(offset))
			right = append(right, sp.point.Add(offset))
			continue
		}

		offset := nextVector.Lerp(sp.vector, nextDot).Perp().Mul(r)
		tl = sp.point.Sub(offset)
		if i <= 1 || pl.Dist2(tl) > minDistance {
			left = append(left, tl)
			pl = tl
		}
		tr = sp.point.Add(offset)
		if i <= 1 || pr.Dist2(tr) > minDistance {
			right = append(right, tr)
			pr = tr
		}

		prevPressure = pressure
		prevVector = sp.vector
	}

	if len(left) == 0 || len(right) == 0 {
		if firstRadius < 0 {
			firstRadius = r
		}
		return Dot(points[0].point, firstRadius)
	}

	first := points[0].point
	lastPoint := points[n-1].point

	var startCap []geom.Vec
	for step := 1.0 / capSegments; step <= 1; step += 1.0 / capSegments {
		startCap = append(startCap, right[0].RotateAround(first, fixedPi*step))
	}

	var endCap []geom.Vec
	direction := points[n-1].vector.Neg().Perp()
	start := lastPoint.Project(direction, r)
	for step := 1.0 / 29; step < 1; step += 1.0 / 29 {
		endCap = append(endCap, start.RotateAround(lastPoint, fixedPi*3*step))
	}

	out := make([]geom.Vec, 0, len(left)+len(endCap)+len(right)+len(startCap))
	out = append(out, left...)
	out = append(out, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	out = append(out, startCap...)
	return out
}
