package bezier

import (
	"math"
)

// Line represents a line segment from P0 to P1.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}
var _ Extremer = Line{}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) X(t float64) float64 { return l.P0.X*(1-t) + l.P1.X*t }
func (l Line) Y(t float64) float64 { return l.P0.Y*(1-t) + l.P1.Y*t }

// Deriv returns the derivative, which is the same for all t.
func (l Line) Deriv(t float64) Vec2 {
	return l.Vector()
}

func (l Line) DX(t float64) float64 { return l.P1.X - l.P0.X }
func (l Line) DY(t float64) float64 { return l.P1.Y - l.P0.Y }

// Vector returns P1 − P0.
func (l Line) Vector() Vec2 {
	return l.P1.Sub(l.P0)
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.Vector().Hypot()
}

// Arclen returns the length of the line.
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

// Split splits the line at t.
func (l Line) Split(t float64) (Line, Line) {
	pm := l.Eval(t)
	return Line{l.P0, pm}, Line{pm, l.P1}
}

// BeforeSplit returns the part of the line in [0, t].
func (l Line) BeforeSplit(t float64) Line {
	return Line{l.P0, l.Eval(t)}
}

// AfterSplit returns the part of the line in [t, 1].
func (l Line) AfterSplit(t float64) Line {
	return Line{l.Eval(t), l.P1}
}

// Subsegment returns the part of the line in [start, end].
func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) Subdivide() (Line, Line) {
	return l.Split(0.5)
}

// Reverse returns the line running from P1 to P0.
func (l Line) Reverse() Line {
	return Line{l.P1, l.P0}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// FastBoundingBox is the same as BoundingBox for lines.
func (l Line) FastBoundingBox() Rect {
	return l.BoundingBox()
}

func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}

// IsAPoint reports whether the endpoints are within tolerance of each other.
func (l Line) IsAPoint(tolerance float64) bool {
	return l.P0.DistanceSquared(l.P1) <= tolerance*tolerance
}

// Raise returns a cubic Bézier that traces the same points as the line, with
// the same parametrization.
func (l Line) Raise() CubicBez {
	return CubicBez{
		l.P0,
		l.P0.Lerp(l.P1, 1.0/3.0),
		l.P0.Lerp(l.P1, 2.0/3.0),
		l.P1,
	}
}

// ToInfinite returns the infinite line through the segment.
func (l Line) ToInfinite() InfiniteLine {
	return InfiniteLine{Point: l.P0, Vector: l.Vector()}
}

// Equation returns the implicit equation of the infinite line through the
// segment. The line must not be a point.
func (l Line) Equation() LineEquation {
	return l.ToInfinite().Equation()
}

// SolveYForX returns the y coordinate of the infinite line through the segment
// at x. It reports false for vertical lines.
func (l Line) SolveYForX(x float64) (float64, bool) {
	dx := l.P1.X - l.P0.X
	if dx == 0 {
		return 0, false
	}
	return l.P0.Y + (x-l.P0.X)*(l.P1.Y-l.P0.Y)/dx, true
}

// SolveXForY returns the x coordinate of the infinite line through the segment
// at y. It reports false for horizontal lines.
func (l Line) SolveXForY(y float64) (float64, bool) {
	dy := l.P1.Y - l.P0.Y
	if dy == 0 {
		return 0, false
	}
	return l.P0.X + (y-l.P0.Y)*(l.P1.X-l.P0.X)/dy, true
}

// SolveTForX returns the parameter at which the segment has the given x
// coordinate. Vertical segments report false.
func (l Line) SolveTForX(x float64) (float64, bool) {
	return l.VerticalLineIntersectionT(x)
}

// SolveTForY returns the parameter at which the segment has the given y
// coordinate. Horizontal segments report false.
func (l Line) SolveTForY(y float64) (float64, bool) {
	return l.HorizontalLineIntersectionT(y)
}

// LineIntersectionsT returns the parameter at which the segment crosses the
// infinite line. Parallel lines report false.
func (l Line) LineIntersectionsT(line InfiniteLine) (float64, bool) {
	v := l.Vector()
	det := v.Cross(line.Vector)
	if det == 0 {
		return 0, false
	}
	t := line.Point.Sub(l.P0).Cross(line.Vector) / det
	return clampUnit(t)
}

// HorizontalLineIntersectionT returns the parameter at which the segment
// crosses the horizontal line at y. Horizontal segments report false.
func (l Line) HorizontalLineIntersectionT(y float64) (float64, bool) {
	return axisAlignedIntersection(l.P0.Y, l.P1.Y, y)
}

// VerticalLineIntersectionT returns the parameter at which the segment crosses
// the vertical line at x. Vertical segments report false.
func (l Line) VerticalLineIntersectionT(x float64) (float64, bool) {
	return axisAlignedIntersection(l.P0.X, l.P1.X, x)
}

func axisAlignedIntersection(a, b, v float64) (float64, bool) {
	d := b - a
	if d == 0 {
		return 0, false
	}
	t := (v - a) / d
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// IntersectionT returns the parameters at which two segments cross, on l and
// on o respectively.
//
// Parallel segments, including overlapping collinear ones, report false, as do
// segments that only share an endpoint.
func (l Line) IntersectionT(o Line) (t1, t2 float64, ok bool) {
	if l.P1 == o.P1 || l.P0 == o.P0 || l.P0 == o.P1 || l.P1 == o.P0 {
		return 0, 0, false
	}
	v1 := l.Vector()
	v2 := o.Vector()
	det := v1.Cross(v2)
	if det == 0 {
		return 0, 0, false
	}
	// Dividing by det is postponed to keep precision; fold its sign into the
	// numerators so that the range check can use |det|.
	sign := math.Copysign(1, det)
	absDet := math.Abs(det)
	v3 := o.P0.Sub(l.P0)
	t := v3.Cross(v2) * sign
	u := v3.Cross(v1) * sign
	if t < 0 || t > absDet || u < 0 || u > absDet {
		return 0, 0, false
	}
	return t / absDet, u / absDet, true
}

// Intersection returns the point where two segments cross. See
// [Line.IntersectionT] for the cases that report false.
func (l Line) Intersection(o Line) (Point, bool) {
	t, _, ok := l.IntersectionT(o)
	if !ok {
		return Point{}, false
	}
	return l.Eval(t), true
}

// IntersectsLine reports whether two segments cross.
func (l Line) IntersectsLine(o Line) bool {
	_, _, ok := l.IntersectionT(o)
	return ok
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	return l.ToInfinite().Intersection(o.ToInfinite())
}

// ClosestPoint returns the point on the segment closest to pt.
func (l Line) ClosestPoint(pt Point) Point {
	_, t := l.Nearest(pt, 0)
	return l.Eval(t)
}

// Distance returns the distance of pt to the segment.
func (l Line) Distance(pt Point) float64 {
	return pt.Distance(l.ClosestPoint(pt))
}

// Nearest returns the squared distance and parameter of the point on the
// segment closest to pt. The accuracy argument is unused as the solution is
// exact.
func (l Line) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	}
	t = dotp / dSquared
	return pt.Sub(l.Eval(t)).Hypot2(), t
}

func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}

func (l Line) Tangents() (Vec2, Vec2) {
	d := l.P1.Sub(l.P0)
	return d, d
}

func (l Line) Seg() Segment {
	return Segment{Kind: LineKind, P0: l.P0, P1: l.P1}
}

// IntersectLine intersects l with the segment o. The returned LineT is the
// parameter on o, SegmentT the parameter on l. Nearly parallel segments report
// no intersections.
func (l Line) IntersectLine(o Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := o.P0
	p1 := o.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	det := dx*(l.P1.Y-l.P0.Y) - dy*(l.P1.X-l.P0.X)
	if math.Abs(det) < epsilon {
		return [3]LineIntersection{}, 0
	}
	// t = position on l
	t := (dx*(p0.Y-l.P0.Y) - dy*(p0.X-l.P0.X)) / det
	if t >= -epsilon && t <= 1+epsilon {
		// u = position on o
		u := ((l.P0.X-p0.X)*(l.P1.Y-l.P0.Y) - (l.P0.Y-p0.Y)*(l.P1.X-l.P0.X)) / det
		if u >= 0.0 && u <= 1.0 {
			return [3]LineIntersection{{u, t}}, 1
		}
	}
	return [3]LineIntersection{}, 0
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}
