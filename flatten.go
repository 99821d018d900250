package bezier

import (
	"fmt"
	"iter"
	"math"
	"sort"

	"golang.org/x/image/math/fixed"
)

// maxStepHalvings bounds how often a flattening step estimate is halved while
// its chord still deviates from the curve by more than the tolerance.
const maxStepHalvings = 32

func checkTolerance(tolerance float64) {
	if !(tolerance > 0) {
		panic(fmt.Sprintf("bezier: flattening tolerance must be positive, got %v", tolerance))
	}
}

// ForEachFlattened calls fn with the end point of the line. Lines are already
// flat.
func (l Line) ForEachFlattened(tolerance float64, fn func(Point)) {
	checkTolerance(tolerance)
	fn(l.P1)
}

// Flattened returns an iterator over the same points as ForEachFlattened.
func (l Line) Flattened(tolerance float64) *FlattenIter {
	return newFlattenIter(l.Seg(), tolerance)
}

// ForEachFlattened approximates the curve with a sequence of line segments
// whose distance to the curve is at most tolerance, calling fn with the end
// point of each segment. The start point is not reported; the last point is
// exactly P2.
func (q QuadBez) ForEachFlattened(tolerance float64, fn func(Point)) {
	q.ForEachFlattenedWithT(tolerance, func(pt Point, _ float64) { fn(pt) })
}

// ForEachFlattenedWithT is like ForEachFlattened but also reports the
// parameter of each point.
func (q QuadBez) ForEachFlattenedWithT(tolerance float64, fn func(Point, float64)) {
	checkTolerance(tolerance)
	rest := q
	t := 0.0
	for {
		step := quadStep(rest, tolerance)
		if step >= 1 {
			fn(q.P2, 1)
			return
		}
		rest = rest.AfterSplit(step)
		t += step * (1 - t)
		fn(rest.P0, t)
	}
}

// Flattened returns an iterator over the same points as ForEachFlattened.
func (q QuadBez) Flattened(tolerance float64) *FlattenIter {
	return newFlattenIter(q.Seg(), tolerance)
}

// quadStep returns the next flattening step of q, shrinking the estimate
// until the chord is within tolerance of the curve.
func quadStep(q QuadBez, tolerance float64) float64 {
	t := q.FlatteningStep(tolerance)
	for range maxStepHalvings {
		if q.BeforeSplit(t).chordDeviation() <= tolerance {
			break
		}
		t *= 0.5
	}
	return t
}

// ForEachFlattened approximates the curve with a sequence of line segments
// whose distance to the curve is at most tolerance, calling fn with the end
// point of each segment. The start point is not reported; the last point is
// exactly P3.
//
// The curve is cut at its inflection points. Each piece is then stepped
// through with the parabola approximation of Hain et al., "Fast, precise
// flattening of cubic Bézier path and offset curves".
func (c CubicBez) ForEachFlattened(tolerance float64, fn func(Point)) {
	c.ForEachFlattenedWithT(tolerance, func(pt Point, _ float64) { fn(pt) })
}

// ForEachFlattenedWithT is like ForEachFlattened but also reports the
// parameter of each point.
func (c CubicBez) ForEachFlattenedWithT(tolerance float64, fn func(Point, float64)) {
	checkTolerance(tolerance)
	ranges, n := c.flatteningRanges()
	for _, r := range ranges[:n] {
		r0, r1 := r[0], r[1]
		piece := c.Subsegment(r0, r1)
		t := 0.0
		if r0 > 0 {
			if tf, ok := inflectionSkip(piece, tolerance); ok {
				piece = piece.AfterSplit(tf)
				t = tf
				fn(piece.P0, r0+t*(r1-r0))
			}
		}
		for {
			step := cubicStep(piece, tolerance)
			if step >= 1 {
				break
			}
			piece = piece.AfterSplit(step)
			t += step * (1 - t)
			fn(piece.P0, r0+t*(r1-r0))
		}
		fn(piece.P3, r1)
	}
}

// Flattened returns an iterator over the same points as ForEachFlattened.
func (c CubicBez) Flattened(tolerance float64) *FlattenIter {
	return newFlattenIter(c.Seg(), tolerance)
}

// flatteningRanges splits [0, 1] at the inflection points.
func (c CubicBez) flatteningRanges() ([3][2]float64, int) {
	var ranges [3][2]float64
	var n int
	infl, m := c.Inflections()
	sort.Float64s(infl[:m])
	t0 := 0.0
	for _, t := range infl[:m] {
		if t <= t0 || t >= 1 {
			continue
		}
		ranges[n] = [2]float64{t0, t}
		n++
		t0 = t
	}
	ranges[n] = [2]float64{t0, 1}
	n++
	return ranges, n
}

// cubicStep returns the next flattening step of c.
func cubicStep(c CubicBez, tolerance float64) float64 {
	t := hainStep(c, tolerance)
	for range maxStepHalvings {
		if c.BeforeSplit(t).flatness() <= tolerance {
			break
		}
		t *= 0.5
	}
	return t
}

// hainStep estimates the parameter step after which the curve deviates from
// its chord by tolerance, approximating the curve near P0 by a parabola.
func hainStep(c CubicBez, tolerance float64) float64 {
	v1 := c.P1.Sub(c.P0)
	v2 := c.P2.Sub(c.P0)
	s2 := v2.Cross(v1)
	if s2 == 0 {
		return 1
	}
	s2inv := v1.Hypot() / s2
	t := 2 * math.Sqrt(tolerance*math.Abs(s2inv)/3)
	if t >= 0.995 || t == 0 {
		return 1
	}
	return t
}

// inflectionSkip returns the parameter up to which a piece starting at an
// inflection point is flat enough to be replaced by a single chord.
func inflectionSkip(c CubicBez, tolerance float64) (float64, bool) {
	const epsilon = 1e-12
	p1 := c.P1.Sub(c.P0)
	p2 := c.P2.Sub(c.P0)
	p3 := c.P3.Sub(c.P0)
	var s3 float64
	switch {
	case math.Abs(p1.X) >= epsilon || math.Abs(p1.Y) >= epsilon:
		s3 = p1.Cross(p3) / p1.Hypot()
	case math.Abs(p2.X) >= epsilon || math.Abs(p2.Y) >= epsilon:
		s3 = p2.Cross(p3) / p2.Hypot()
	default:
		return 0, false
	}
	tf := math.Cbrt(math.Abs(tolerance / s3))
	if !(tf > 0 && tf < 1) {
		return 0, false
	}
	if c.BeforeSplit(tf).flatness() > tolerance {
		return 0, false
	}
	return tf, true
}

// flatness returns an upper bound of the distance between the curve and the
// line through its endpoints, using the fat line bound of Sederberg and
// Nishita.
func (c CubicBez) flatness() float64 {
	chord := c.P3.Sub(c.P0)
	l := chord.Hypot()
	if l == 0 {
		return max(c.P1.Distance(c.P0), c.P2.Distance(c.P0))
	}
	d1 := chord.Cross(c.P1.Sub(c.P0)) / l
	d2 := chord.Cross(c.P2.Sub(c.P0)) / l
	return fatLineFactor(d1, d2) * max(math.Abs(d1), math.Abs(d2))
}

// FlattenIter is a cursor over the points of a flattened segment. It produces
// the same points as the segment's ForEachFlattened method.
//
// A FlattenIter must not be used concurrently; use Clone to obtain an
// independent copy.
type FlattenIter struct {
	seg       Segment
	tolerance float64

	quad QuadBez

	ranges  [3][2]float64
	n       int
	idx     int
	piece   CubicBez
	inPiece bool

	t    float64
	done bool
}

func newFlattenIter(seg Segment, tolerance float64) *FlattenIter {
	checkTolerance(tolerance)
	it := &FlattenIter{seg: seg, tolerance: tolerance}
	switch seg.Kind {
	case LineKind:
	case QuadKind:
		it.quad = seg.Quad()
	case CubicKind:
		it.ranges, it.n = seg.Cubic().flatteningRanges()
	default:
		seg.badKind()
	}
	return it
}

// Next returns the next point, or false once the segment's end point has been
// returned.
func (it *FlattenIter) Next() (Point, bool) {
	pt, _, ok := it.NextWithT()
	return pt, ok
}

// NextWithT is like Next but also returns the parameter of the point.
func (it *FlattenIter) NextWithT() (Point, float64, bool) {
	if it.done {
		return Point{}, 0, false
	}
	switch it.seg.Kind {
	case LineKind:
		it.done = true
		return it.seg.P1, 1, true
	case QuadKind:
		step := quadStep(it.quad, it.tolerance)
		if step >= 1 {
			it.done = true
			return it.seg.P2, 1, true
		}
		it.quad = it.quad.AfterSplit(step)
		it.t += step * (1 - it.t)
		return it.quad.P0, it.t, true
	case CubicKind:
		return it.nextCubic()
	default:
		it.seg.badKind()
		return Point{}, 0, false
	}
}

func (it *FlattenIter) nextCubic() (Point, float64, bool) {
	r0, r1 := it.ranges[it.idx][0], it.ranges[it.idx][1]
	if !it.inPiece {
		it.inPiece = true
		it.piece = it.seg.Cubic().Subsegment(r0, r1)
		it.t = 0
		if r0 > 0 {
			if tf, ok := inflectionSkip(it.piece, it.tolerance); ok {
				it.piece = it.piece.AfterSplit(tf)
				it.t = tf
				return it.piece.P0, r0 + it.t*(r1-r0), true
			}
		}
	}
	step := cubicStep(it.piece, it.tolerance)
	if step < 1 {
		it.piece = it.piece.AfterSplit(step)
		it.t += step * (1 - it.t)
		return it.piece.P0, r0 + it.t*(r1-r0), true
	}
	it.inPiece = false
	it.idx++
	if it.idx == it.n {
		it.done = true
	}
	return it.piece.P3, r1, true
}

// Clone returns an independent copy of the iterator at its current position.
func (it *FlattenIter) Clone() *FlattenIter {
	cpy := *it
	return &cpy
}

// All returns the remaining points as a sequence. Iterating it advances it.
func (it *FlattenIter) All() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for {
			pt, ok := it.Next()
			if !ok || !yield(pt) {
				return
			}
		}
	}
}

// ForEachFlattened calls the ForEachFlattened method of the segment's curve.
func (seg Segment) ForEachFlattened(tolerance float64, fn func(Point)) {
	seg.ForEachFlattenedWithT(tolerance, func(pt Point, _ float64) { fn(pt) })
}

// ForEachFlattenedWithT calls the ForEachFlattenedWithT method of the
// segment's curve.
func (seg Segment) ForEachFlattenedWithT(tolerance float64, fn func(Point, float64)) {
	switch seg.Kind {
	case LineKind:
		checkTolerance(tolerance)
		fn(seg.P1, 1)
	case QuadKind:
		seg.Quad().ForEachFlattenedWithT(tolerance, fn)
	case CubicKind:
		seg.Cubic().ForEachFlattenedWithT(tolerance, fn)
	default:
		seg.badKind()
	}
}

// Flattened returns an iterator over the flattened segment.
func (seg Segment) Flattened(tolerance float64) *FlattenIter {
	return newFlattenIter(seg, tolerance)
}

// Flatten returns the points of the flattened segment, excluding its start
// point.
func (seg Segment) Flatten(tolerance float64) iter.Seq[Point] {
	checkTolerance(tolerance)
	return func(yield func(Point) bool) {
		it := newFlattenIter(seg, tolerance)
		for {
			pt, ok := it.Next()
			if !ok || !yield(pt) {
				return
			}
		}
	}
}

// FlattenSegments flattens a sequence of segments into a polyline. The start
// point of the first segment is included, as is the start point of every
// segment that does not begin where the previous one ended.
func FlattenSegments(segs iter.Seq[Segment], tolerance float64) iter.Seq[Point] {
	checkTolerance(tolerance)
	return func(yield func(Point) bool) {
		var last option[Point]
		for seg := range segs {
			if !last.isSet || last.value != seg.P0 {
				if !yield(seg.P0) {
					return
				}
			}
			for pt := range seg.Flatten(tolerance) {
				if !yield(pt) {
					return
				}
			}
			last.set(seg.End())
		}
	}
}

// AppendFlattenedFixed appends the flattened segment, including its start
// point, to dst as 26.6 fixed point coordinates.
func AppendFlattenedFixed(dst []fixed.Point26_6, seg Segment, tolerance float64) []fixed.Point26_6 {
	dst = append(dst, seg.P0.Fixed())
	seg.ForEachFlattened(tolerance, func(pt Point) {
		dst = append(dst, pt.Fixed())
	})
	return dst
}
