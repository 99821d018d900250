package bezier

import (
	"fmt"
	"math"
)

// LineEquation is the implicit form a·x + b·y + c = 0 of an infinite line,
// normalized so that a² + b² = 1. For a normalized equation, evaluating the
// left-hand side at a point gives the point's signed distance to the line.
type LineEquation struct {
	A, B, C float64
}

// NewLineEquation returns the normalized equation of a·x + b·y + c = 0. It
// panics if a and b are both zero, as such an equation doesn't describe a line.
func NewLineEquation(a, b, c float64) LineEquation {
	h := math.Hypot(a, b)
	if h == 0 {
		panic(fmt.Sprintf("bezier: degenerate line equation (%g, %g, %g)", a, b, c))
	}
	inv := 1 / h
	return LineEquation{A: a * inv, B: b * inv, C: c * inv}
}

func (eq LineEquation) String() string {
	return fmt.Sprintf("%g·x + %g·y + %g = 0", eq.A, eq.B, eq.C)
}

// SignedDistance returns the signed distance of pt to the line. Points on the
// side the normal ⟨A, B⟩ points to have positive distances.
func (eq LineEquation) SignedDistance(pt Point) float64 {
	return eq.A*pt.X + eq.B*pt.Y + eq.C
}

// Distance returns the unsigned distance of pt to the line.
func (eq LineEquation) Distance(pt Point) float64 {
	return math.Abs(eq.SignedDistance(pt))
}

// Offset returns the line parallel to eq, moved by d along the normal.
func (eq LineEquation) Offset(d float64) LineEquation {
	return LineEquation{A: eq.A, B: eq.B, C: eq.C - d}
}

// Invert returns the same line with the normal pointing the other way.
func (eq LineEquation) Invert() LineEquation {
	return LineEquation{A: -eq.A, B: -eq.B, C: -eq.C}
}

func (eq LineEquation) IsHorizontal() bool { return eq.A == 0 }
func (eq LineEquation) IsVertical() bool   { return eq.B == 0 }

// IsParallelTo reports whether the two lines are parallel, including when
// they are the same line.
func (eq LineEquation) IsParallelTo(o LineEquation) bool {
	return math.Abs(eq.A*o.B-eq.B*o.A) <= 1e-12
}

// SolveYForX returns the y coordinate of the line at x. It reports false for
// vertical lines.
func (eq LineEquation) SolveYForX(x float64) (float64, bool) {
	if eq.B == 0 {
		return 0, false
	}
	return (-eq.C - eq.A*x) / eq.B, true
}

// SolveXForY returns the x coordinate of the line at y. It reports false for
// horizontal lines.
func (eq LineEquation) SolveXForY(y float64) (float64, bool) {
	if eq.A == 0 {
		return 0, false
	}
	return (-eq.C - eq.B*y) / eq.A, true
}

// ProjectPoint returns the point on the line closest to pt.
func (eq LineEquation) ProjectPoint(pt Point) Point {
	return Point{
		X: eq.B*(eq.B*pt.X-eq.A*pt.Y) - eq.A*eq.C,
		Y: eq.A*(eq.A*pt.Y-eq.B*pt.X) - eq.B*eq.C,
	}
}

// Intersection returns the point where the two lines cross. It reports false
// for parallel lines.
func (eq LineEquation) Intersection(o LineEquation) (Point, bool) {
	det := eq.A*o.B - eq.B*o.A
	if math.Abs(det) <= 1e-12 {
		return Point{}, false
	}
	return Point{
		X: (eq.B*o.C - o.B*eq.C) / det,
		Y: (o.A*eq.C - eq.A*o.C) / det,
	}, true
}

// InfiniteLine is a line through Point in the direction of Vector, extending
// infinitely in both directions.
type InfiniteLine struct {
	Point  Point
	Vector Vec2
}

// Equation returns the implicit form of the line. The normal points to the
// left of Vector in a y-up coordinate system. Vector must not be zero.
func (l InfiniteLine) Equation() LineEquation {
	return NewLineEquation(
		-l.Vector.Y,
		l.Vector.X,
		l.Vector.Y*l.Point.X-l.Vector.X*l.Point.Y,
	)
}

// SignedDistance returns the signed distance of pt to the line.
func (l InfiniteLine) SignedDistance(pt Point) float64 {
	return l.Vector.Cross(pt.Sub(l.Point)) / l.Vector.Hypot()
}

// Distance returns the distance of pt to the line.
func (l InfiniteLine) Distance(pt Point) float64 {
	return math.Abs(l.SignedDistance(pt))
}

// Intersection returns the point where the two lines cross. Lines whose
// directions are parallel to within rounding report false.
func (l InfiniteLine) Intersection(o InfiniteLine) (Point, bool) {
	det := l.Vector.Cross(o.Vector)
	if math.Abs(det) <= 1e-12*l.Vector.Hypot()*o.Vector.Hypot() || det == 0 {
		return Point{}, false
	}
	t := o.Point.Sub(l.Point).Cross(o.Vector) / det
	return l.Point.Translate(l.Vector.Mul(t)), true
}
