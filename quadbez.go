package bezier

import (
	"math"
)

var _ ParametricCurve = QuadBez{}
var _ Extremer = QuadBez{}

// QuadBez is a quadratic Bézier segment from P0 to P2 with control point P1.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) X(t float64) float64 {
	mt := 1.0 - t
	return q.P0.X*mt*mt + q.P1.X*2*mt*t + q.P2.X*t*t
}

func (q QuadBez) Y(t float64) float64 {
	mt := 1.0 - t
	return q.P0.Y*mt*mt + q.P1.Y*2*mt*t + q.P2.Y*t*t
}

func (q QuadBez) Deriv(t float64) Vec2 {
	return Vec2(q.Differentiate().Eval(t))
}

func (q QuadBez) DX(t float64) float64 {
	return 2*(1-t)*(q.P1.X-q.P0.X) + 2*t*(q.P2.X-q.P1.X)
}

func (q QuadBez) DY(t float64) float64 {
	return 2*(1-t)*(q.P1.Y-q.P0.Y) + 2*t*(q.P2.Y-q.P1.Y)
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

// Baseline returns the chord from P0 to P2.
func (q QuadBez) Baseline() Line {
	return Line{q.P0, q.P2}
}

// Split splits the curve at t using de Casteljau's algorithm. The end of the
// first half is exactly the start of the second half.
func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	c0 := q.P0.Lerp(q.P1, t)
	c1 := q.P1.Lerp(q.P2, t)
	pm := c0.Lerp(c1, t)
	return QuadBez{q.P0, c0, pm}, QuadBez{pm, c1, q.P2}
}

// BeforeSplit returns the part of the curve in [0, t].
func (q QuadBez) BeforeSplit(t float64) QuadBez {
	a, _ := q.Split(t)
	return a
}

// AfterSplit returns the part of the curve in [t, 1].
func (q QuadBez) AfterSplit(t float64) QuadBez {
	_, b := q.Split(t)
	return b
}

func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	return q.Split(0.5)
}

// Subsegment returns the part of the curve in [t0, t1].
func (q QuadBez) Subsegment(t0 float64, t1 float64) QuadBez {
	p0 := q.Eval(t0)
	p2 := q.Eval(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return QuadBez{p0, p1, p2}
}

// Reverse returns the curve traversed from P2 to P0.
func (q QuadBez) Reverse() QuadBez {
	return QuadBez{q.P2, q.P1, q.P0}
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// Raise raises the order by 1, returning a cubic Bézier segment that exactly
// represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) Differentiate() Line {
	return Line{
		Point(q.P1.Sub(q.P0).Mul(2)),
		Point(q.P2.Sub(q.P1).Mul(2)),
	}
}

// BoundingBox returns the tight bounding box, taking interior extrema into
// account.
func (q QuadBez) BoundingBox() Rect {
	return BoundingBox(q)
}

// FastBoundingBox returns the bounding box of the control points.
func (q QuadBez) FastBoundingBox() Rect {
	return NewRectFromPoints(q.P0, q.P2).UnionPoint(q.P1)
}

// BoundingRangeX returns the minimum and maximum x coordinates of the curve.
func (q QuadBez) BoundingRangeX() (float64, float64) {
	bb := q.BoundingBox()
	return bb.X0, bb.X1
}

// BoundingRangeY returns the minimum and maximum y coordinates of the curve.
func (q QuadBez) BoundingRangeY() (float64, float64) {
	bb := q.BoundingBox()
	return bb.Y0, bb.Y1
}

func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	var outN int
	if t, ok := q.LocalXExtremumT(); ok {
		out[outN] = t
		outN++
	}
	if t, ok := q.LocalYExtremumT(); ok {
		out[outN] = t
		outN++
		if outN == 2 && out[0] > t {
			out[0], out[1] = out[1], out[0]
		}
	}
	return out, outN
}

// LocalXExtremumT returns the parameter in (0, 1) at which the derivative of x
// vanishes, if any.
func (q QuadBez) LocalXExtremumT() (float64, bool) {
	return quadLocalExtremum(q.P0.X, q.P1.X, q.P2.X)
}

// LocalYExtremumT returns the parameter in (0, 1) at which the derivative of y
// vanishes, if any.
func (q QuadBez) LocalYExtremumT() (float64, bool) {
	return quadLocalExtremum(q.P0.Y, q.P1.Y, q.P2.Y)
}

func quadLocalExtremum(p0, p1, p2 float64) (float64, bool) {
	d0 := p1 - p0
	dd := (p2 - p1) - d0
	if dd == 0 {
		return 0, false
	}
	t := -d0 / dd
	if t > 0.0 && t < 1.0 {
		return t, true
	}
	return 0, false
}

// IsAPoint reports whether all control points are within tolerance of each
// other.
func (q QuadBez) IsAPoint(tolerance float64) bool {
	tol2 := tolerance * tolerance
	return q.P0.DistanceSquared(q.P2) <= tol2 && q.P0.DistanceSquared(q.P1) <= tol2
}

// IsLinear reports whether the control point lies within tolerance of the
// baseline. Curves whose endpoints coincide are never linear.
func (q QuadBez) IsLinear(tolerance float64) bool {
	if q.P0.DistanceSquared(q.P2) < 1e-24 {
		return false
	}
	return q.Baseline().Equation().Distance(q.P1) <= tolerance
}

// polynomial returns the power basis coefficients a·t² + b·t + c of one
// coordinate.
func quadPolynomial(p0, p1, p2 float64) (a, b, c float64) {
	return p0 - 2*p1 + p2, 2 * (p1 - p0), p0
}

// SolveTForX returns the parameters in [0, 1] at which the curve has the given
// x coordinate.
func (q QuadBez) SolveTForX(x float64) ([2]float64, int) {
	if x < min(q.P0.X, q.P1.X, q.P2.X) || x > max(q.P0.X, q.P1.X, q.P2.X) {
		return [2]float64{}, 0
	}
	a, b, c := quadPolynomial(q.P0.X, q.P1.X, q.P2.X)
	return unitRoots2(CubicPolynomialRoots(0, a, b, c-x))
}

// SolveTForY returns the parameters in [0, 1] at which the curve has the given
// y coordinate.
func (q QuadBez) SolveTForY(y float64) ([2]float64, int) {
	if y < min(q.P0.Y, q.P1.Y, q.P2.Y) || y > max(q.P0.Y, q.P1.Y, q.P2.Y) {
		return [2]float64{}, 0
	}
	a, b, c := quadPolynomial(q.P0.Y, q.P1.Y, q.P2.Y)
	return unitRoots2(CubicPolynomialRoots(0, a, b, c-y))
}

// LineIntersectionsT returns the parameters in [0, 1] at which the curve
// crosses the infinite line.
func (q QuadBez) LineIntersectionsT(line InfiniteLine) ([2]float64, int) {
	if line.Vector.Hypot2() == 0 {
		return [2]float64{}, 0
	}
	eq := line.Equation()
	ax, bx, cx := quadPolynomial(q.P0.X, q.P1.X, q.P2.X)
	ay, by, cy := quadPolynomial(q.P0.Y, q.P1.Y, q.P2.Y)
	return unitRoots2(CubicPolynomialRoots(
		0,
		eq.A*ax+eq.B*ay,
		eq.A*bx+eq.B*by,
		eq.A*cx+eq.B*cy+eq.C,
	))
}

// IntersectLineSegment returns the intersections with the segment l, as
// parameters on q and on l. Intersections at an endpoint of both curves are
// not reported.
func (q QuadBez) IntersectLineSegment(l Line) ([2]CurveIntersection, int) {
	var out [2]CurveIntersection
	var outN int
	if !q.FastBoundingBox().Overlaps(l.BoundingBox()) || l.IsAPoint(0) {
		return out, 0
	}
	ts, n := q.LineIntersectionsT(l.ToInfinite())
	for _, t := range ts[:n] {
		if t2, ok := lineParameter(l, q.Eval(t)); ok {
			if ci, ok := nonEndpointPair(t, t2); ok {
				out[outN] = ci
				outN++
			}
		}
	}
	return out, outN
}

// FlatteningStep returns the parameter step, relative to the curve's own
// parametrization, after which the chord deviates from the curve by about
// tolerance. A result of 1 means the whole curve is flat enough.
func (q QuadBez) FlatteningStep(tolerance float64) float64 {
	v1 := q.P1.Sub(q.P0)
	v2 := q.P2.Sub(q.P0)
	cross := v2.X*v1.Y - v2.Y*v1.X
	h := v1.Hypot()
	if math.Abs(cross*h) <= 1e-12 {
		return 1
	}
	t := 2 * math.Sqrt(tolerance*math.Abs(h/cross)/3)
	return min(t, 1)
}

// chordDeviation returns an upper bound on the distance between the curve and
// the segment from P0 to P2. Across the chord the curve strays at most half the
// control point's distance from the line. Along it, a control point projecting
// outside the chord makes the curve run past one of its ends.
func (q QuadBez) chordDeviation() float64 {
	chord := q.P2.Sub(q.P0)
	l := chord.Hypot()
	if l == 0 {
		return 0.5 * q.P1.Distance(q.P0)
	}
	across := 0.5 * math.Abs(chord.Cross(q.P1.Sub(q.P0))) / l

	// Position along the chord is s(t) = 2t(1-t)·a + t²·l, with a the control
	// point's projection.
	a := chord.Dot(q.P1.Sub(q.P0)) / l
	if a >= 0 && a <= l {
		return across
	}
	t := a / (2*a - l)
	s := 2*t*(1-t)*a + t*t*l
	along := max(s-l, -s, 0)
	return math.Hypot(across, along)
}

// Arclen returns the arclength of the quadratic Bézier segment.
//
// This computation is based on an analytical formula. Since that formula suffers
// from numerical instability when the curve is very close to a straight line, we
// detect that case and fall back to Legendre-Gauss quadrature.
func (q QuadBez) Arclen(accuracy float64) float64 {
	d2 := Vec2(q.P0).Sub(Vec2(q.P1).Mul(2)).Add(Vec2(q.P2))
	a := d2.Hypot2()
	d1 := q.P1.Sub(q.P0)
	c := d1.Hypot2()
	if a < 5e-4*c {
		// Nearly straight. Three-point Legendre-Gauss quadrature, see
		// https://github.com/Pomax/BezierInfo-2/issues/77
		v0 := Vec2(q.P0).Mul(-0.492943519233745).
			Add(Vec2(q.P1).Mul(0.430331482911935)).
			Add(Vec2(q.P2).Mul(0.0626120363218102)).
			Hypot()
		v1 := q.P2.Sub(q.P0).Mul(0.4444444444444444).Hypot()
		v2 := Vec2(q.P0).Mul(-0.0626120363218102).
			Sub(Vec2(q.P1).Mul(0.430331482911935)).
			Add(Vec2(q.P2).Mul(0.492943519233745)).
			Hypot()
		return v0 + v1 + v2
	}
	b := 2.0 * d2.Dot(d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// A sharp kink.
		return v0
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2)
}

// Nearest finds the nearest point, using an analytical algorithm based on
// cubic root finding. The accuracy argument is unused.
func (q QuadBez) Nearest(pt Point, accuracy float64) (distSq, outT float64) {
	var rBest option[float64]
	tBest := 0.0
	consider := func(t float64, p Point) {
		r := p.Sub(pt).Hypot2()
		if !rBest.isSet || r < rBest.value {
			rBest.set(r)
			tBest = t
		}
	}
	d0 := q.P1.Sub(q.P0)
	d1 := Vec2(q.P0).Add(Vec2(q.P2)).Sub(Vec2(q.P1).Mul(2.0))
	d := q.P0.Sub(pt)
	c0 := d.Dot(d0)
	c1 := 2.0*d0.Hypot2() + d.Dot(d1)
	c2 := 3.0 * d1.Dot(d0)
	c3 := d1.Hypot2()
	roots, n := SolveCubic(c0, c1, c2, c3)
	needEnds := n == 0
	for _, t := range roots[:n] {
		if t >= 0.0 && t <= 1.0 {
			consider(t, q.Eval(t))
		} else {
			needEnds = true
		}
	}
	if needEnds {
		consider(0.0, q.P0)
		consider(1.0, q.P2)
	}
	return rBest.value, tBest
}

func (q QuadBez) SignedArea() float64 {
	v := q.P0.X*(2.0*q.P1.Y+q.P2.Y) +
		2.0*(q.P1.X*(q.P2.Y-q.P0.Y)) -
		q.P2.X*(q.P0.Y+2.0*q.P1.Y)
	return v * (1.0 / 6.0)
}

func (q QuadBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := q.P1.Sub(q.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d0 = q.P2.Sub(q.P0)
	}
	d12 := q.P2.Sub(q.P1)
	if d12.Hypot2() > epsilon {
		d1 = d12
	} else {
		d1 = q.P2.Sub(q.P0)
	}
	return d0, d1
}

func (q QuadBez) Seg() Segment {
	return Segment{Kind: QuadKind, P0: q.P0, P1: q.P1, P2: q.P2}
}

// IntersectLine intersects the curve with the segment line. Intersections
// slightly outside the curve's parameter range are included so that a line
// crossing a path at a joint is found at least once.
func (q QuadBez) IntersectLine(line Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// Express x and y as polynomials in t and plug them into the line's
	// equation, giving a signed distance from the probe line to solve for.
	ax, bx, cx := quadPolynomial(q.P0.X, q.P1.X, q.P2.X)
	ay, by, cy := quadPolynomial(q.P0.Y, q.P1.Y, q.P2.Y)
	c0 := dy*(cx-p0.X) - dx*(cy-p0.Y)
	c1 := dy*bx - dx*by
	c2 := dy*ax - dx*ay
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := CubicPolynomialRoots(0, c2, c1, c0)
	var ret [3]LineIntersection
	var retN int
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			x := cx + t*bx + t*t*ax
			y := cy + t*by + t*t*ay
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= 0.0 && u <= 1.0 {
				ret[retN] = LineIntersection{u, t}
				retN++
			}
		}
	}
	return ret, retN
}

func (q QuadBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}
