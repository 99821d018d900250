package bezier

import (
	"math"
)

// monotonicEndpointSlack is how close to an endpoint a derivative root may be
// while the curve still counts as monotonic.
const monotonicEndpointSlack = 1e-7

// monotonicSolveTolerance is the coordinate tolerance of SolveTForX and
// SolveTForY on monotonic cubics.
const monotonicSolveTolerance = 1e-9

// MonotonicRanges returns the parameter ranges on which the curve is monotonic
// in both x and y.
func (q QuadBez) MonotonicRanges() ([MaxExtrema + 1][2]float64, int) {
	return ExtremaRanges(q)
}

// ForEachMonotonicT calls fn with each parameter in (0, 1) at which the curve
// stops being monotonic in x or y, in increasing order.
func (q QuadBez) ForEachMonotonicT(fn func(t float64)) {
	ex, n := q.Extrema()
	forEachDistinct(ex[:n], fn)
}

// ForEachMonotonicRange calls fn with consecutive parameter ranges covering
// [0, 1] on which the curve is monotonic in x and y.
func (q QuadBez) ForEachMonotonicRange(fn func(t0, t1 float64)) {
	ranges, n := q.MonotonicRanges()
	for _, r := range ranges[:n] {
		fn(r[0], r[1])
	}
}

// ForEachMonotonic calls fn with the monotonic pieces of the curve.
func (q QuadBez) ForEachMonotonic(fn func(MonotonicQuad)) {
	q.ForEachMonotonicRange(func(t0, t1 float64) {
		fn(q.Subsegment(t0, t1).AssumeMonotonic())
	})
}

func (q QuadBez) IsXMonotonic() bool {
	t, ok := q.LocalXExtremumT()
	return !ok || !interiorRoot(t)
}

func (q QuadBez) IsYMonotonic() bool {
	t, ok := q.LocalYExtremumT()
	return !ok || !interiorRoot(t)
}

func (q QuadBez) IsMonotonic() bool {
	return q.IsXMonotonic() && q.IsYMonotonic()
}

// AssumeMonotonic wraps q without checking that it is monotonic.
func (q QuadBez) AssumeMonotonic() MonotonicQuad {
	return MonotonicQuad{q}
}

// MonotonicRanges returns the parameter ranges on which the curve is monotonic
// in both x and y.
func (c CubicBez) MonotonicRanges() ([MaxExtrema + 1][2]float64, int) {
	return ExtremaRanges(c)
}

// ForEachMonotonicT calls fn with each parameter in (0, 1) at which the curve
// stops being monotonic in x or y, in increasing order.
func (c CubicBez) ForEachMonotonicT(fn func(t float64)) {
	ex, n := c.Extrema()
	forEachDistinct(ex[:n], fn)
}

// ForEachMonotonicRange calls fn with consecutive parameter ranges covering
// [0, 1] on which the curve is monotonic in x and y.
func (c CubicBez) ForEachMonotonicRange(fn func(t0, t1 float64)) {
	ranges, n := c.MonotonicRanges()
	for _, r := range ranges[:n] {
		fn(r[0], r[1])
	}
}

// ForEachMonotonic calls fn with the monotonic pieces of the curve.
func (c CubicBez) ForEachMonotonic(fn func(MonotonicCubic)) {
	c.ForEachMonotonicRange(func(t0, t1 float64) {
		fn(c.Subsegment(t0, t1).AssumeMonotonic())
	})
}

func (c CubicBez) IsXMonotonic() bool {
	monotonic := true
	c.ForEachLocalXExtremumT(func(t float64) {
		if interiorRoot(t) {
			monotonic = false
		}
	})
	return monotonic
}

func (c CubicBez) IsYMonotonic() bool {
	monotonic := true
	c.ForEachLocalYExtremumT(func(t float64) {
		if interiorRoot(t) {
			monotonic = false
		}
	})
	return monotonic
}

func (c CubicBez) IsMonotonic() bool {
	return c.IsXMonotonic() && c.IsYMonotonic()
}

// AssumeMonotonic wraps c without checking that it is monotonic.
func (c CubicBez) AssumeMonotonic() MonotonicCubic {
	return MonotonicCubic{c}
}

func interiorRoot(t float64) bool {
	return t > monotonicEndpointSlack && t < 1-monotonicEndpointSlack
}

func forEachDistinct(ts []float64, fn func(t float64)) {
	for i, t := range ts {
		if i > 0 && t == ts[i-1] {
			continue
		}
		fn(t)
	}
}

// MonotonicQuad is a quadratic Bézier segment that is monotonic in x and y.
type MonotonicQuad struct {
	QuadBez
}

// BoundingBox returns the box spanned by the endpoints, which contains a
// monotonic curve.
func (m MonotonicQuad) BoundingBox() Rect {
	return NewRectFromPoints(m.P0, m.P2)
}

// SolveTForX returns the parameter at which the curve has the given x
// coordinate. Values outside the curve's range clamp to the nearer endpoint.
func (m MonotonicQuad) SolveTForX(x float64) float64 {
	return solveMonotonicQuad(m.P0.X, m.P1.X, m.P2.X, x)
}

// SolveTForY returns the parameter at which the curve has the given y
// coordinate. Values outside the curve's range clamp to the nearer endpoint.
func (m MonotonicQuad) SolveTForY(y float64) float64 {
	return solveMonotonicQuad(m.P0.Y, m.P1.Y, m.P2.Y, y)
}

func (m MonotonicQuad) Split(t float64) (MonotonicQuad, MonotonicQuad) {
	a, b := m.QuadBez.Split(t)
	return MonotonicQuad{a}, MonotonicQuad{b}
}

func solveMonotonicQuad(p0, p1, p2, v float64) float64 {
	if t, ok := clampToEnds(p0, p2, v); ok {
		return t
	}
	a, b, c := quadPolynomial(p0, p1, p2)
	roots, n := unitRoots2(CubicPolynomialRoots(0, a, b, c-v))
	if n > 0 {
		return roots[0]
	}
	// Rounding pushed the only root out of range.
	return (v - p0) / (p2 - p0)
}

// clampToEnds handles values at or beyond the endpoint coordinates of a
// monotonic curve.
func clampToEnds(start, end, v float64) (float64, bool) {
	if start == end {
		return 0, true
	}
	if start < end {
		if v <= start {
			return 0, true
		}
		if v >= end {
			return 1, true
		}
	} else {
		if v >= start {
			return 0, true
		}
		if v <= end {
			return 1, true
		}
	}
	return 0, false
}

// MonotonicCubic is a cubic Bézier segment that is monotonic in x and y.
type MonotonicCubic struct {
	CubicBez
}

// BoundingBox returns the box spanned by the endpoints, which contains a
// monotonic curve.
func (m MonotonicCubic) BoundingBox() Rect {
	return NewRectFromPoints(m.P0, m.P3)
}

func (m MonotonicCubic) Split(t float64) (MonotonicCubic, MonotonicCubic) {
	a, b := m.CubicBez.Split(t)
	return MonotonicCubic{a}, MonotonicCubic{b}
}

// SolveTForX returns the parameter at which the curve has the given x
// coordinate. Values outside the curve's range clamp to the nearer endpoint.
func (m MonotonicCubic) SolveTForX(x float64) float64 {
	return m.SolveTForXIn(x, 0, 1, monotonicSolveTolerance)
}

// SolveTForY is like SolveTForX for the y coordinate.
func (m MonotonicCubic) SolveTForY(y float64) float64 {
	return m.SolveTForYIn(y, 0, 1, monotonicSolveTolerance)
}

// SolveTForXIn searches [t0, t1] for the parameter at which the curve's x
// coordinate is within tolerance of x. It uses Newton's method and falls back
// to bisection when Newton leaves the range or fails to converge.
func (m MonotonicCubic) SolveTForXIn(x, t0, t1, tolerance float64) float64 {
	return solveMonotonic(m.X, m.DX, x, t0, t1, tolerance)
}

// SolveTForYIn is like SolveTForXIn for the y coordinate.
func (m MonotonicCubic) SolveTForYIn(y, t0, t1, tolerance float64) float64 {
	return solveMonotonic(m.Y, m.DY, y, t0, t1, tolerance)
}

func solveMonotonic(f, df func(float64) float64, v, t0, t1, tolerance float64) float64 {
	e0 := f(t0) - v
	e1 := f(t1) - v
	if math.Abs(e0) <= tolerance {
		return t0
	}
	if math.Abs(e1) <= tolerance {
		return t1
	}
	if (e0 < 0) == (e1 < 0) {
		if math.Abs(e0) < math.Abs(e1) {
			return t0
		}
		return t1
	}

	lo, hi := min(t0, t1), max(t0, t1)
	t := t0 + (t1-t0)*e0/(e0-e1)
	for range 8 {
		e := f(t) - v
		if math.Abs(e) <= tolerance {
			return t
		}
		d := df(t)
		if d == 0 {
			break
		}
		next := t - e/d
		if !(next >= lo && next <= hi) {
			break
		}
		t = next
	}

	a, b := t0, t1
	ea := e0
	for range 100 {
		mid := 0.5 * (a + b)
		e := f(mid) - v
		if math.Abs(e) <= tolerance || mid == a || mid == b {
			return mid
		}
		if (e < 0) == (ea < 0) {
			a, ea = mid, e
		} else {
			b = mid
		}
	}
	return 0.5 * (a + b)
}
