package bezier

import (
	"math"
)

// MaxExtrema is the maximum number of extrema that can be reported by
// [Extremer].
//
// This is 4 to support cubic Béziers.
const MaxExtrema = 4

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for general-purpose use, such as 2D graphics.
const DefaultAccuracy = 1e-6

// Extremer describes parametrized curves that report their extrema.
type Extremer interface {
	// Extrema computes the extrema of the curve.
	//
	// Only extrema within the interior of the curve count.
	// At most four extrema can be reported, which is sufficient for
	// cubic Béziers.
	//
	// The extrema should be reported in increasing parameter order.
	Extrema() ([MaxExtrema]float64, int)
}

// ExtremaRanges returns parameter ranges, each of which is monotonic within the
// range.
func ExtremaRanges(e Extremer) ([MaxExtrema + 1][2]float64, int) {
	var ret [MaxExtrema + 1][2]float64
	var retN int
	var t0 float64

	ex, n := e.Extrema()
	for _, t := range ex[:n] {
		if t == t0 {
			// Coinciding x and y extrema.
			continue
		}
		ret[retN] = [2]float64{t0, t}
		retN++
		t0 = t
	}
	ret[retN] = [2]float64{t0, 1}
	retN++
	return ret, retN
}

// BoundingBox returns the smallest (axis-aligned) rectangle that encloses the
// curve in the range [0, 1].
func BoundingBox(c interface {
	Extremer
	ParametricCurve
}) Rect {
	bbox := NewRectFromPoints(c.Start(), c.End())
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// ParametricCurve describes curves parametrized by t ∈ [0, 1]. It is
// implemented by [Line], [QuadBez], [CubicBez], and [Segment].
type ParametricCurve interface {
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// Deriv returns the first derivative with respect to t.
	Deriv(t float64) Vec2
	Start() Point
	End() Point
	// FastBoundingBox returns a box containing the curve's control points,
	// and thus the curve.
	FastBoundingBox() Rect
}

// Arclener describes a parametrized curve that can have its arc length
// measured.
type Arclener interface {
	// Arclen returns the length of the curve.
	//
	// The result is accurate to the given accuracy (subject to roundoff errors
	// for ridiculously low values). Compute time may vary with accuracy, if the
	// curve needs to be subdivided.
	Arclen(accuracy float64) float64
}

// LineIntersection is an intersection of a [Line] and a curve, as returned by
// the IntersectLine methods.
type LineIntersection struct {
	// The parameter of the intersection on the line, in [0, 1].
	LineT float64
	// The parameter of the intersection on the curve. This is nominally in
	// [0, 1], but may slightly exceed that range at the boundaries.
	SegmentT float64
}

func (li LineIntersection) IsNaN() bool {
	return math.IsNaN(li.LineT) || math.IsNaN(li.SegmentT)
}

// CurveIntersection is an intersection of two curves, given as the parameter
// on each curve.
type CurveIntersection struct {
	T1 float64
	T2 float64
}

// swap returns the intersection as seen from the other curve.
func (ci CurveIntersection) swap() CurveIntersection {
	return CurveIntersection{T1: ci.T2, T2: ci.T1}
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs8Half = [...][2]float64{
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}

// rootSlack is how far outside [0, 1] a polynomial root may land due to
// rounding and still be reported, clamped, as an endpoint.
const rootSlack = 1e-9

func clampUnit(t float64) (float64, bool) {
	if t < -rootSlack || t > 1+rootSlack || math.IsNaN(t) {
		return 0, false
	}
	return min(max(t, 0), 1), true
}

// unitRoots keeps the roots that lie in [0, 1].
func unitRoots(roots [3]float64, n int) ([3]float64, int) {
	var out [3]float64
	var outN int
	for _, t := range roots[:n] {
		if t, ok := clampUnit(t); ok {
			out[outN] = t
			outN++
		}
	}
	return out, outN
}

// unitRoots2 is like unitRoots for polynomials of degree two or less.
func unitRoots2(roots [3]float64, n int) ([2]float64, int) {
	var out [2]float64
	var outN int
	for _, t := range roots[:n] {
		if t, ok := clampUnit(t); ok && outN < len(out) {
			out[outN] = t
			outN++
		}
	}
	return out, outN
}

// lineParameter returns the parameter of p on l, for a point p known to lie on
// l's supporting line. Points outside the segment's extent along its longer
// axis report false.
func lineParameter(l Line, p Point) (float64, bool) {
	v := l.Vector()
	if math.Abs(v.Y) >= math.Abs(v.X) {
		if p.Y < min(l.P0.Y, l.P1.Y) || p.Y > max(l.P0.Y, l.P1.Y) {
			return 0, false
		}
	} else {
		if p.X < min(l.P0.X, l.P1.X) || p.X > max(l.P0.X, l.P1.X) {
			return 0, false
		}
	}
	return min(p.Sub(l.P0).Hypot()/v.Hypot(), 1), true
}

// nonEndpointPair returns the intersection (t1, t2) unless it lies on an
// endpoint of both curves.
func nonEndpointPair(t1, t2 float64) (CurveIntersection, bool) {
	if (t1 == 0 || t1 == 1) && (t2 == 0 || t2 == 1) {
		return CurveIntersection{}, false
	}
	return CurveIntersection{T1: t1, T2: t2}, true
}
