package bezier

import (
	"fmt"
)

type SegmentKind int

const (
	// A line segment.
	LineKind SegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case CubicKind:
		return "cubic"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is any of [Line], [QuadBez], and [CubicBez]. This type acts as a
// tagged union; only the points used by Kind are meaningful.
type Segment struct {
	// We don't use an interface for Segment because we want {Line, Quad,
	// Cubic}.Transform to return their respective types, not Segment. But we
	// cannot encode that in Go interfaces.
	//
	// This also avoids having to allocate for segments.

	Kind SegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

var _ ParametricCurve = Segment{}
var _ Extremer = Segment{}

func (seg Segment) badKind() {
	panic(fmt.Sprintf("bezier: invalid segment kind %d", int(seg.Kind)))
}

// Line returns the line represented by this segment. This is only valid when
// Kind == LineKind.
func (seg Segment) Line() Line { return Line{seg.P0, seg.P1} }

// Quad returns the quadratic Bézier represented by this segment. This is only
// valid when Kind == QuadKind.
func (seg Segment) Quad() QuadBez { return QuadBez{seg.P0, seg.P1, seg.P2} }

// Cubic converts seg to a cubic Bézier with the same parametrization. This is
// valid for any Kind.
func (seg Segment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Raise()
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		seg.badKind()
		return CubicBez{}
	}
}

func (seg Segment) Transform(aff Affine) Segment {
	return Segment{
		Kind: seg.Kind,
		P0:   seg.P0.Transform(aff),
		P1:   seg.P1.Transform(aff),
		P2:   seg.P2.Transform(aff),
		P3:   seg.P3.Transform(aff),
	}
}

func (seg Segment) IsInf() bool {
	return seg.P0.IsInf() || seg.P1.IsInf() || seg.P2.IsInf() || seg.P3.IsInf()
}

func (seg Segment) IsNaN() bool {
	return seg.P0.IsNaN() || seg.P1.IsNaN() || seg.P2.IsNaN() || seg.P3.IsNaN()
}

func (seg Segment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		seg.badKind()
		return Point{}
	}
}

func (seg Segment) Deriv(t float64) Vec2 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Deriv(t)
	case QuadKind:
		return seg.Quad().Deriv(t)
	case CubicKind:
		return seg.Cubic().Deriv(t)
	default:
		seg.badKind()
		return Vec2{}
	}
}

func (seg Segment) Start() Point {
	return seg.P0
}

func (seg Segment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		seg.badKind()
		return Point{}
	}
}

func (seg Segment) BoundingBox() Rect {
	switch seg.Kind {
	case LineKind:
		return seg.Line().BoundingBox()
	case QuadKind:
		return seg.Quad().BoundingBox()
	case CubicKind:
		return seg.Cubic().BoundingBox()
	default:
		seg.badKind()
		return Rect{}
	}
}

func (seg Segment) FastBoundingBox() Rect {
	switch seg.Kind {
	case LineKind:
		return seg.Line().FastBoundingBox()
	case QuadKind:
		return seg.Quad().FastBoundingBox()
	case CubicKind:
		return seg.Cubic().FastBoundingBox()
	default:
		seg.badKind()
		return Rect{}
	}
}

func (seg Segment) Subsegment(start, end float64) Segment {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Subsegment(start, end).Seg()
	case QuadKind:
		return seg.Quad().Subsegment(start, end).Seg()
	case CubicKind:
		return seg.Cubic().Subsegment(start, end).Seg()
	default:
		seg.badKind()
		return Segment{}
	}
}

func (seg Segment) Split(t float64) (Segment, Segment) {
	switch seg.Kind {
	case LineKind:
		a, b := seg.Line().Split(t)
		return a.Seg(), b.Seg()
	case QuadKind:
		a, b := seg.Quad().Split(t)
		return a.Seg(), b.Seg()
	case CubicKind:
		a, b := seg.Cubic().Split(t)
		return a.Seg(), b.Seg()
	default:
		seg.badKind()
		return Segment{}, Segment{}
	}
}

func (seg Segment) Arclen(accuracy float64) float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Arclen(accuracy)
	case QuadKind:
		return seg.Quad().Arclen(accuracy)
	case CubicKind:
		return seg.Cubic().Arclen(accuracy)
	default:
		seg.badKind()
		return 0
	}
}

func (seg Segment) SignedArea() float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().SignedArea()
	case QuadKind:
		return seg.Quad().SignedArea()
	case CubicKind:
		return seg.Cubic().SignedArea()
	default:
		seg.badKind()
		return 0
	}
}

func (seg Segment) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Nearest(pt, accuracy)
	case QuadKind:
		return seg.Quad().Nearest(pt, accuracy)
	case CubicKind:
		return seg.Cubic().Nearest(pt, accuracy)
	default:
		seg.badKind()
		return 0, 0
	}
}

func (seg Segment) Extrema() ([MaxExtrema]float64, int) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Extrema()
	case QuadKind:
		return seg.Quad().Extrema()
	case CubicKind:
		return seg.Cubic().Extrema()
	default:
		seg.badKind()
		return [MaxExtrema]float64{}, 0
	}
}

func (seg Segment) Tangents() (Vec2, Vec2) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Tangents()
	case QuadKind:
		return seg.Quad().Tangents()
	case CubicKind:
		return seg.Cubic().Tangents()
	default:
		seg.badKind()
		return Vec2{}, Vec2{}
	}
}

// Reverse returns a new Segment describing the same curve as this one, but
// with the points reversed.
func (seg Segment) Reverse() Segment {
	switch seg.Kind {
	case LineKind:
		seg.P0, seg.P1 = seg.P1, seg.P0
		return seg
	case QuadKind:
		seg.P0, seg.P2 = seg.P2, seg.P0
		return seg
	case CubicKind:
		seg.P0, seg.P1, seg.P2, seg.P3 = seg.P3, seg.P2, seg.P1, seg.P0
		return seg
	default:
		seg.badKind()
		return Segment{}
	}
}

// IntersectLine computes intersections against a line.
//
// This test is inclusive of points near the endpoints of the segment, so that
// testing a line against multiple contiguous segments of a path will catch at
// least one of them. The segment parameter may be slightly outside [0, 1] in
// such cases.
func (seg Segment) IntersectLine(line Line) ([3]LineIntersection, int) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().IntersectLine(line)
	case QuadKind:
		return seg.Quad().IntersectLine(line)
	case CubicKind:
		return seg.Cubic().IntersectLine(line)
	default:
		seg.badKind()
		return [3]LineIntersection{}, 0
	}
}

// Winding computes the winding number contribution of the segment around pt,
// by casting a ray to the left and counting crossings of its y-monotonic
// pieces.
func (seg Segment) Winding(pt Point) int {
	var w int
	switch seg.Kind {
	case LineKind:
		w = seg.windingInner(pt)
	case QuadKind:
		seg.Quad().ForEachMonotonicRange(func(t0, t1 float64) {
			w += seg.Subsegment(t0, t1).windingInner(pt)
		})
	case CubicKind:
		seg.Cubic().ForEachMonotonicRange(func(t0, t1 float64) {
			w += seg.Subsegment(t0, t1).windingInner(pt)
		})
	default:
		seg.badKind()
	}
	return w
}

// windingInner assumes seg is monotonic in y.
func (seg Segment) windingInner(pt Point) int {
	start := seg.Start()
	end := seg.End()
	var sign int
	if end.Y > start.Y {
		if pt.Y < start.Y || pt.Y >= end.Y {
			return 0
		}
		sign = -1
	} else if end.Y < start.Y {
		if pt.Y < end.Y || pt.Y >= start.Y {
			return 0
		}
		sign = 1
	} else {
		return 0
	}
	bbox := seg.FastBoundingBox()
	if pt.X < bbox.X0 {
		return 0
	}
	if pt.X >= bbox.X1 {
		return sign
	}
	var x float64
	switch seg.Kind {
	case LineKind:
		// line equation ax + by = c
		a := end.Y - start.Y
		b := start.X - end.X
		c := a*start.X + b*start.Y
		if (a*pt.X+b*pt.Y-c)*float64(sign) <= 0.0 {
			return sign
		}
		return 0
	case QuadKind:
		m := seg.Quad().AssumeMonotonic()
		x = m.X(m.SolveTForY(pt.Y))
	case CubicKind:
		m := seg.Cubic().AssumeMonotonic()
		x = m.X(m.SolveTForY(pt.Y))
	}
	if pt.X >= x {
		return sign
	}
	return 0
}
