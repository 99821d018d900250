package bezier

// FatLine is the region between two lines parallel to a curve's baseline that
// contains the whole curve. Min and Max are signed distances from Baseline.
type FatLine struct {
	Baseline LineEquation
	Min      float64
	Max      float64
}

// FatLine returns the fat line of c, following Sederberg and Nishita, "Curve
// intersection using Bézier clipping". It panics if P0 and P3 coincide, as
// the curve then has no baseline.
func (c CubicBez) FatLine() FatLine {
	eq := c.Baseline().Equation()
	d1 := eq.SignedDistance(c.P1)
	d2 := eq.SignedDistance(c.P2)
	f := fatLineFactor(d1, d2)
	return FatLine{
		Baseline: eq,
		Min:      f * min(0, d1, d2),
		Max:      f * max(0, d1, d2),
	}
}

// fatLineFactor returns the fraction of the control points' distances from
// the baseline that the curve itself can reach.
func fatLineFactor(d1, d2 float64) float64 {
	if d1*d2 > 0 {
		return 3.0 / 4.0
	}
	return 4.0 / 9.0
}

// Contains reports whether pt lies within the fat line.
func (fl FatLine) Contains(pt Point) bool {
	d := fl.Baseline.SignedDistance(pt)
	return d >= fl.Min && d <= fl.Max
}

// hull is one side of a convex polygon in the (t, distance) plane, ordered
// by t.
type hull struct {
	pts [4]Point
	n   int
}

func newHull(pts ...Point) hull {
	var h hull
	h.n = copy(h.pts[:], pts)
	return h
}

func (h hull) reverse() hull {
	out := h
	for i := range h.n {
		out.pts[i] = h.pts[h.n-1-i]
	}
	return out
}

// distanceHull returns the top and bottom of the convex hull of the
// non-parametric Bézier curve (t, d(t)) whose control values are the signed
// distances d0..d3 of a cubic's control points to some line.
func distanceHull(d0, d1, d2, d3 float64) (top, bottom hull) {
	p0 := Point{0, d0}
	p1 := Point{1.0 / 3.0, d1}
	p2 := Point{2.0 / 3.0, d2}
	p3 := Point{1, d3}

	// Distances of the inner control points to the chord from p0 to p3.
	dist1 := d1 - (2*d0+d3)/3
	dist2 := d2 - (d0+2*d3)/3

	if dist1*dist2 < 0 {
		top = newHull(p0, p1, p3)
		bottom = newHull(p0, p2, p3)
	} else {
		abs1, abs2 := max(dist1, -dist1), max(dist2, -dist2)
		switch {
		case abs1 >= 2*abs2:
			top = newHull(p0, p1, p3)
		case abs2 >= 2*abs1:
			top = newHull(p0, p2, p3)
		default:
			top = newHull(p0, p1, p2, p3)
		}
		bottom = newHull(p0, p3)
	}
	if dist1 < 0 || (dist1 == 0 && dist2 < 0) {
		top, bottom = bottom, top
	}
	return top, bottom
}

// clip returns the parameter range of c that can lie within the fat line,
// or false if none of it can.
func (fl FatLine) clip(c CubicBez) (tmin, tmax float64, ok bool) {
	top, bottom := distanceHull(
		fl.Baseline.SignedDistance(c.P0),
		fl.Baseline.SignedDistance(c.P1),
		fl.Baseline.SignedDistance(c.P2),
		fl.Baseline.SignedDistance(c.P3),
	)
	tmin, ok = walkHull(top, bottom, fl.Min, fl.Max)
	if !ok {
		return 0, 0, false
	}
	tmax, ok = walkHull(top.reverse(), bottom.reverse(), fl.Min, fl.Max)
	if !ok {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// walkHull returns the t at which the hull, walked from its first vertex,
// enters the band [dmin, dmax].
func walkHull(top, bottom hull, dmin, dmax float64) (float64, bool) {
	start := top.pts[0]
	switch {
	case start.Y < dmin:
		return walkEdges(top, true, dmin)
	case start.Y > dmax:
		return walkEdges(bottom, false, dmax)
	default:
		return start.X, true
	}
}

func walkEdges(h hull, rising bool, threshold float64) (float64, bool) {
	for i := 0; i < h.n-1; i++ {
		p, q := h.pts[i], h.pts[i+1]
		if (rising && q.Y >= threshold) || (!rising && q.Y <= threshold) {
			if q.Y == threshold {
				return q.X, true
			}
			return p.X + (threshold-p.Y)*(q.X-p.X)/(q.Y-p.Y), true
		}
	}
	return 0, false
}
