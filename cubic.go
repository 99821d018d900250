package bezier

import (
	"iter"
	"math"
	"sort"
)

var _ ParametricCurve = CubicBez{}
var _ Extremer = CubicBez{}

// CubicBez is a cubic Bézier segment from P0 to P3 with control points P1 and
// P2.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// BoundingBox returns the tight bounding box, taking interior extrema into
// account.
func (c CubicBez) BoundingBox() Rect {
	return BoundingBox(c)
}

// FastBoundingBox returns the bounding box of the control points.
func (c CubicBez) FastBoundingBox() Rect {
	return NewRectFromPoints(c.P0, c.P3).UnionPoint(c.P1).UnionPoint(c.P2)
}

// BoundingRangeX returns the minimum and maximum x coordinates of the curve.
func (c CubicBez) BoundingRangeX() (float64, float64) {
	return c.X(c.XMinimumT()), c.X(c.XMaximumT())
}

// BoundingRangeY returns the minimum and maximum y coordinates of the curve.
func (c CubicBez) BoundingRangeY() (float64, float64) {
	return c.Y(c.YMinimumT()), c.Y(c.YMaximumT())
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		f := ddNorm2 / dNorm2
		est += wi * f
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) X(t float64) float64 {
	return cubicCoord(c.P0.X, c.P1.X, c.P2.X, c.P3.X, t)
}

func (c CubicBez) Y(t float64) float64 {
	return cubicCoord(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, t)
}

func cubicCoord(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return p0*mt*mt*mt + 3*p1*mt*mt*t + 3*p2*mt*t*t + p3*t*t*t
}

func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

func (c CubicBez) DX(t float64) float64 {
	return cubicDeriv(c.P0.X, c.P1.X, c.P2.X, c.P3.X, t)
}

func (c CubicBez) DY(t float64) float64 {
	return cubicDeriv(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, t)
}

func cubicDeriv(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return 3 * (mt*mt*(p1-p0) + 2*mt*t*(p2-p1) + t*t*(p3-p2))
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

// Baseline returns the chord from P0 to P3.
func (c CubicBez) Baseline() Line {
	return Line{c.P0, c.P3}
}

// Split splits the curve at t using de Casteljau's algorithm. The end of the
// first half is exactly the start of the second half.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

// BeforeSplit returns the part of the curve in [0, t].
func (c CubicBez) BeforeSplit(t float64) CubicBez {
	a, _ := c.Split(t)
	return a
}

// AfterSplit returns the part of the curve in [t, 1].
func (c CubicBez) AfterSplit(t float64) CubicBez {
	_, b := c.Split(t)
	return b
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Subsegment returns the part of the curve in [t0, t1]. The endpoints are
// exact when t0 is 0 or t1 is 1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Reverse returns the curve traversed from P3 to P0.
func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// IsAPoint reports whether all control points are within tolerance of each
// other.
func (c CubicBez) IsAPoint(tolerance float64) bool {
	tol2 := tolerance * tolerance
	return c.P0.DistanceSquared(c.P3) <= tol2 &&
		c.P0.DistanceSquared(c.P1) <= tol2 &&
		c.P3.DistanceSquared(c.P2) <= tol2
}

// IsLinear reports whether both control points lie within tolerance of the
// baseline. Curves whose endpoints coincide are never linear.
func (c CubicBez) IsLinear(tolerance float64) bool {
	if c.P0.DistanceSquared(c.P3) < 1e-24 {
		return false
	}
	eq := c.Baseline().Equation()
	return eq.Distance(c.P1) <= tolerance && eq.Distance(c.P2) <= tolerance
}

// Extrema returns the parameters in (0, 1) at which either coordinate's
// derivative vanishes, sorted.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(t float64) {
		out[outN] = t
		outN++
	}
	c.ForEachLocalXExtremumT(oneCoord)
	c.ForEachLocalYExtremumT(oneCoord)
	sort.Float64s(out[:outN])
	return out, outN
}

// ForEachLocalXExtremumT calls fn with each parameter in (0, 1) at which the
// derivative of x vanishes.
func (c CubicBez) ForEachLocalXExtremumT(fn func(t float64)) {
	cubicLocalExtrema(c.P0.X, c.P1.X, c.P2.X, c.P3.X, fn)
}

// ForEachLocalYExtremumT calls fn with each parameter in (0, 1) at which the
// derivative of y vanishes.
func (c CubicBez) ForEachLocalYExtremumT(fn func(t float64)) {
	cubicLocalExtrema(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y, fn)
}

func cubicLocalExtrema(p0, p1, p2, p3 float64, fn func(t float64)) {
	d0 := p1 - p0
	d1 := p2 - p1
	d2 := p3 - p2
	a := d0 - 2*d1 + d2
	b := 2 * (d1 - d0)
	roots, n := SolveQuadratic(d0, b, a)
	for _, t := range roots[:n] {
		if t > 0.0 && t < 1.0 {
			fn(t)
		}
	}
}

// XMinimumT returns the parameter at which x is smallest.
func (c CubicBez) XMinimumT() float64 {
	return extremeT(c.X, c.ForEachLocalXExtremumT, func(a, b float64) bool { return a < b })
}

// XMaximumT returns the parameter at which x is largest.
func (c CubicBez) XMaximumT() float64 {
	return extremeT(c.X, c.ForEachLocalXExtremumT, func(a, b float64) bool { return a > b })
}

// YMinimumT returns the parameter at which y is smallest.
func (c CubicBez) YMinimumT() float64 {
	return extremeT(c.Y, c.ForEachLocalYExtremumT, func(a, b float64) bool { return a < b })
}

// YMaximumT returns the parameter at which y is largest.
func (c CubicBez) YMaximumT() float64 {
	return extremeT(c.Y, c.ForEachLocalYExtremumT, func(a, b float64) bool { return a > b })
}

func extremeT(coord func(float64) float64, extrema func(func(float64)), better func(a, b float64) bool) float64 {
	bestT := 0.0
	best := coord(0)
	if v := coord(1); better(v, best) {
		bestT, best = 1, v
	}
	extrema(func(t float64) {
		if v := coord(t); better(v, best) {
			bestT, best = t, v
		}
	})
	return bestT
}

// cubicPolynomial returns the power basis coefficients a·t³ + b·t² + c·t + d
// of one coordinate.
func cubicPolynomial(p0, p1, p2, p3 float64) (a, b, c, d float64) {
	a = -p0 + 3*p1 - 3*p2 + p3
	b = 3*p0 - 6*p1 + 3*p2
	c = -3*p0 + 3*p1
	d = p0
	return a, b, c, d
}

// SolveTForX returns the parameters in [0, 1] at which the curve has the given
// x coordinate.
func (c CubicBez) SolveTForX(x float64) ([3]float64, int) {
	if x < min(c.P0.X, c.P1.X, c.P2.X, c.P3.X) || x > max(c.P0.X, c.P1.X, c.P2.X, c.P3.X) {
		return [3]float64{}, 0
	}
	a, b, cc, d := cubicPolynomial(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	return unitRoots(CubicPolynomialRoots(a, b, cc, d-x))
}

// SolveTForY returns the parameters in [0, 1] at which the curve has the given
// y coordinate.
func (c CubicBez) SolveTForY(y float64) ([3]float64, int) {
	if y < min(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y) || y > max(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y) {
		return [3]float64{}, 0
	}
	a, b, cc, d := cubicPolynomial(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	return unitRoots(CubicPolynomialRoots(a, b, cc, d-y))
}

// LineIntersectionsT returns the parameters in [0, 1] at which the curve
// crosses the infinite line.
func (c CubicBez) LineIntersectionsT(line InfiniteLine) ([3]float64, int) {
	v := line.Vector
	if v.Hypot2() == 0 {
		return [3]float64{}, 0
	}
	ax, bx, cx, dx := cubicPolynomial(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	ay, by, cy, dy := cubicPolynomial(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	k := line.Point.Y*v.X - line.Point.X*v.Y
	return unitRoots(CubicPolynomialRoots(
		v.Y*ax-v.X*ay,
		v.Y*bx-v.X*by,
		v.Y*cx-v.X*cy,
		v.Y*dx-v.X*dy+k,
	))
}

// IntersectLineSegment returns the intersections with the segment l, as
// parameters on c and on l. Intersections at an endpoint of both curves are
// not reported.
func (c CubicBez) IntersectLineSegment(l Line) ([3]CurveIntersection, int) {
	var out [3]CurveIntersection
	var outN int
	if !c.FastBoundingBox().Overlaps(l.BoundingBox()) || l.IsAPoint(0) {
		return out, 0
	}
	ts, n := c.LineIntersectionsT(l.ToInfinite())
	for _, t := range ts[:n] {
		if t2, ok := lineParameter(l, c.Eval(t)); ok {
			if ci, ok := nonEndpointPair(t, t2); ok {
				out[outN] = ci
				outN++
			}
		}
	}
	return out, outN
}

// IntersectLine intersects the curve with the segment line. Intersections
// slightly outside the curve's parameter range are included so that a line
// crossing a path at a joint is found at least once.
func (c CubicBez) IntersectLine(line Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// The basic technique here is to determine x and y as a cubic polynomial
	// as a function of t. Then plug those values into the line equation for the
	// probe line (giving a sort of signed distance from the probe line) and solve
	// that for t.
	ax, bx, cx, px0 := cubicPolynomial(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	ay, by, cy, py0 := cubicPolynomial(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	c0 := dy*(px0-p0.X) - dx*(py0-p0.Y)
	c1 := dy*cx - dx*cy
	c2 := dy*bx - dx*by
	c3 := dy*ax - dx*ay
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := CubicPolynomialRoots(c3, c2, c1, c0)
	var ret [3]LineIntersection
	var retN int
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			x := px0 + t*(cx+t*(bx+t*ax))
			y := py0 + t*(cy+t*(by+t*ay))
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= 0.0 && u <= 1.0 {
				ret[retN] = LineIntersection{u, t}
				retN++
			}
		}
	}
	return ret, retN
}

// Inflections returns the inflection points.
//
// The function returns up to two inflection points in the first return
// parameter, with the second parameter specifying the number of points
// returned.
func (c CubicBez) Inflections() ([2]float64, int) {
	a := c.P1.Sub(c.P0)
	b := c.P2.Sub(c.P1).Sub(a)
	cc := c.P3.Sub(c.P0).Sub(c.P2.Sub(c.P1).Mul(3))
	nums, n := SolveQuadratic(a.Cross(b), a.Cross(cc), b.Cross(cc))
	var out [2]float64
	var outN int
	for _, num := range nums[:n] {
		if num >= 0 && num <= 1 {
			out[outN] = num
			outN++
		}
	}
	return out, outN
}

type CubicToQuadraticSegment struct {
	Start, End float64
	Segment    QuadBez
}

// Quadratics converts the cubic Béziers to quadratic Béziers.
//
// The iterator returns the start and end parameter in the cubic of each quadratic
// segment, along with the quadratic.
//
// Note that the resulting quadratic Béziers are not in general G1 continuous;
// they are optimized for minimizing distance error.
//
// This iterator will always produce at least one value.
func (c CubicBez) Quadratics(accuracy float64) iter.Seq[CubicToQuadraticSegment] {
	// The maximum error, as a vector from the cubic to the best approximating
	// quadratic, is proportional to the third derivative, which is constant
	// across the segment. Thus, the error scales down as the third power of
	// the number of subdivisions. Our strategy then is to subdivide t evenly.
	return func(yield func(CubicToQuadraticSegment) bool) {
		// This magic number is the square of 36 / sqrt(3).
		// See: https://web.archive.org/web/20210108052742/http://caffeineowl.com/graphics/2d/vectorial/cubic2quad01.html
		maxHypot2 := 432.0 * accuracy * accuracy
		p1x2 := Vec2(c.P1).Mul(3).Sub(Vec2(c.P0))
		p2x2 := Vec2(c.P2).Mul(3).Sub(Vec2(c.P3))
		err := p2x2.Sub(p1x2).Hypot2()
		n := max(int(math.Ceil(math.Sqrt(math.Cbrt(err/maxHypot2)))), 1)

		for i := range n {
			t0 := float64(i) / float64(n)
			t1 := float64(i+1) / float64(n)
			seg := c.Subsegment(t0, t1)
			p1x2 := Vec2(seg.P1).Mul(3).Sub(Vec2(seg.P0))
			p2x2 := Vec2(seg.P2).Mul(3).Sub(Vec2(seg.P3))
			result := QuadBez{seg.P0, Point(p1x2.Add(p2x2).Mul(1.0 / 4.0)), seg.P3}
			if !yield(CubicToQuadraticSegment{t0, t1, result}) {
				return
			}
		}
	}
}

// Nearest finds the nearest point, using subdivision into quadratics.
func (c CubicBez) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	var bestR option[float64]
	bestT := 0.0
	for qq := range c.Quadratics(accuracy) {
		t0, t1, q := qq.Start, qq.End, qq.Segment
		qDistSq, qT := q.Nearest(pt, accuracy)
		if !bestR.isSet || qDistSq < bestR.value {
			bestT = t0 + qT*(t1-t0)
			bestR.set(qDistSq)
		}
	}
	return bestR.value, bestT
}

func (c CubicBez) SignedArea() float64 {
	v := c.P0.X*(6.0*c.P1.Y+3.0*c.P2.Y+c.P3.Y) +
		3.0*(c.P1.X*(-2.0*c.P0.Y+c.P2.Y+c.P3.Y)-c.P2.X*(c.P0.Y+c.P1.Y-2.0*c.P3.Y)) -
		c.P3.X*(c.P0.Y+3.0*c.P1.Y+6.0*c.P2.Y)
	return v * (1.0 / 20.0)
}

func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

func (c CubicBez) Seg() Segment {
	return Segment{Kind: CubicKind, P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}
}
