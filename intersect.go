package bezier

import (
	"math"
)

// MaxCubicIntersections is the largest number of intersections two cubic
// Bézier curves can have.
const MaxCubicIntersections = 9

const (
	// DefaultMaxDepth is the default bound on the nesting of clipping steps.
	DefaultMaxDepth = 60
	// DefaultMaxCalls is the default bound on the number of clipping steps in
	// one intersection query.
	DefaultMaxCalls = 4096
)

const (
	// domainEpsilon is the parameter width below which a domain counts as
	// converged.
	domainEpsilon = 1e-9
	// duplicateEpsilon is the parameter distance below which two
	// intersections are considered the same.
	duplicateEpsilon = 1e-6
	// endpointEpsilon is the distance from 0 or 1 below which a parameter
	// counts as an endpoint.
	endpointEpsilon = 1e-7
	// minShrink is the fraction of a domain that clipping must remove for
	// the next step to clip again instead of subdividing.
	minShrink = 0.2
)

// IntersectOptions configures [IntersectCubicsOpt]. The zero value selects
// the defaults.
type IntersectOptions struct {
	// MaxDepth bounds how deeply clipping and subdivision steps may nest.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// MaxCalls bounds the total number of clipping steps. Zero means
	// DefaultMaxCalls.
	MaxCalls int
}

func (opts IntersectOptions) withDefaults() IntersectOptions {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxCalls <= 0 {
		opts.MaxCalls = DefaultMaxCalls
	}
	return opts
}

// IntersectResult is the outcome of [IntersectCubicsOpt].
type IntersectResult struct {
	Intersections [MaxCubicIntersections]CurveIntersection
	N             int
	// Truncated reports whether the search ran out of its depth or call
	// budget, in which case intersections may be missing. This happens for
	// overlapping curves and other degenerate inputs.
	Truncated bool
	// Calls is the number of clipping steps performed.
	Calls int
}

// All returns the intersections found.
func (r *IntersectResult) All() []CurveIntersection {
	return r.Intersections[:r.N]
}

// IntersectCubic returns the intersections of c and o as pairs of parameters,
// T1 on c and T2 on o. Points where an endpoint of c meets an endpoint of o
// are not reported, but an endpoint of one curve lying inside the other is.
// Overlapping curves yield an approximation.
func (c CubicBez) IntersectCubic(o CubicBez) ([MaxCubicIntersections]CurveIntersection, int) {
	res := IntersectCubicsOpt(c, o, IntersectOptions{})
	return res.Intersections, res.N
}

// IntersectCubicPoints is like IntersectCubic, but returns the intersection
// points, evaluated on c.
func (c CubicBez) IntersectCubicPoints(o CubicBez) ([MaxCubicIntersections]Point, int) {
	var out [MaxCubicIntersections]Point
	ts, n := c.IntersectCubic(o)
	for i, ci := range ts[:n] {
		out[i] = c.Eval(ci.T1)
	}
	return out, n
}

// IntersectQuad returns the intersections of c and q.
func (c CubicBez) IntersectQuad(q QuadBez) ([MaxCubicIntersections]CurveIntersection, int) {
	return c.IntersectCubic(q.Raise())
}

// IntersectQuad returns the intersections of q and o.
func (q QuadBez) IntersectQuad(o QuadBez) ([MaxCubicIntersections]CurveIntersection, int) {
	return q.Raise().IntersectCubic(o.Raise())
}

// IntersectCubic returns the intersections of q and c.
func (q QuadBez) IntersectCubic(c CubicBez) ([MaxCubicIntersections]CurveIntersection, int) {
	return q.Raise().IntersectCubic(c)
}

// Intersect returns the intersections of two segments of any kind. Lines and
// quadratics are promoted to cubics with the same parametrization, except
// that two lines are intersected directly.
func Intersect(a, b Segment) ([MaxCubicIntersections]CurveIntersection, int) {
	var out [MaxCubicIntersections]CurveIntersection
	if a.Kind == LineKind && b.Kind == LineKind {
		t1, t2, ok := a.Line().IntersectionT(b.Line())
		if !ok {
			return out, 0
		}
		out[0] = CurveIntersection{T1: t1, T2: t2}
		return out, 1
	}
	return a.Cubic().IntersectCubic(b.Cubic())
}

// IntersectCubicsOpt intersects two cubic Bézier curves using Bézier clipping
// (Sederberg and Nishita, "Curve intersection using Bézier clipping").
func IntersectCubicsOpt(a, b CubicBez, opts IntersectOptions) IntersectResult {
	s := solver{a: a, b: b, opts: opts.withDefaults()}
	s.run()
	if s.res.Truncated {
		Logger().Debug("bezier: cubic intersection search truncated",
			"maxDepth", s.opts.MaxDepth,
			"calls", s.res.Calls,
			"found", s.res.N)
	}
	return s.res
}

// interval is a parameter range of an original curve.
type interval struct {
	start, end float64
}

var unitInterval = interval{0, 1}

func (iv interval) width() float64 { return iv.end - iv.start }
func (iv interval) mid() float64   { return (iv.start + iv.end) * 0.5 }

// at maps a parameter of the sub-curve covering iv to the original curve.
func (iv interval) at(t float64) float64 {
	return iv.start + (iv.end-iv.start)*t
}

// clipFrame is a pending clipping step. c1 is clipped against the fat line of
// c2; d1 and d2 are their domains in the original curves. If flip is set, c1
// is a piece of the solver's b and c2 a piece of its a.
type clipFrame struct {
	c1, c2 CubicBez
	d1, d2 interval
	flip   bool
	depth  int
}

type solver struct {
	a, b CubicBez
	opts IntersectOptions
	res  IntersectResult

	stack []clipFrame
}

func (s *solver) originals(flip bool) (CubicBez, CubicBez) {
	if flip {
		return s.b, s.a
	}
	return s.a, s.b
}

func (s *solver) run() {
	a, b := s.a, s.b
	if !a.FastBoundingBox().Overlaps(b.FastBoundingBox()) || a == b || a == b.Reverse() {
		return
	}

	aPoint := a.IsAPoint(0)
	bPoint := b.IsAPoint(0)
	switch {
	case aPoint && bPoint:
		// Coinciding points are endpoint pairs.
		return
	case aPoint:
		pt := a.P0.Midpoint(a.P3)
		ts, n := pointCurveIntersections(pt, b, epsilonForPoint(pt))
		for _, t := range ts[:n] {
			s.add(0, t, false)
		}
		return
	case bPoint:
		pt := b.P0.Midpoint(b.P3)
		ts, n := pointCurveIntersections(pt, a, epsilonForPoint(pt))
		for _, t := range ts[:n] {
			s.add(t, 0, false)
		}
		return
	}

	aLinear := a.IsLinear(linearTolerance(a))
	bLinear := b.IsLinear(linearTolerance(b))
	switch {
	case aLinear && bLinear:
		s.lineLine()
		return
	case aLinear:
		s.lineCurve(a, b, false)
		return
	case bLinear:
		s.lineCurve(b, a, true)
		return
	}

	s.stack = append(s.stack, clipFrame{c1: a, c2: b, d1: unitInterval, d2: unitInterval})
	for len(s.stack) > 0 {
		f := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		s.step(f)
	}
}

// linearTolerance scales the tolerance of the linearity test with the
// magnitude of the coordinates.
func linearTolerance(c CubicBez) float64 {
	m := 1.0
	for _, p := range [...]Point{c.P0, c.P1, c.P2, c.P3} {
		m = max(m, math.Abs(p.X), math.Abs(p.Y))
	}
	return 1e-12 * m
}

// add records an intersection given as parameters on the curves of a frame.
func (s *solver) add(t1, t2 float64, flip bool) {
	if flip {
		t1, t2 = t2, t1
	}
	isEnd := func(t float64) bool { return t < endpointEpsilon || t > 1-endpointEpsilon }
	if isEnd(t1) && isEnd(t2) {
		return
	}
	out := s.res.Intersections[:s.res.N]
	for i, old := range out {
		if math.Abs(t1-old.T1) < duplicateEpsilon && math.Abs(t2-old.T2) < duplicateEpsilon {
			if s.gap(t1, t2) < s.gap(old.T1, old.T2) {
				out[i] = CurveIntersection{T1: t1, T2: t2}
			}
			return
		}
	}
	if s.res.N < MaxCubicIntersections {
		s.res.Intersections[s.res.N] = CurveIntersection{T1: t1, T2: t2}
		s.res.N++
	}
}

// gap returns the squared distance between a(t1) and b(t2).
func (s *solver) gap(t1, t2 float64) float64 {
	return s.a.Eval(t1).DistanceSquared(s.b.Eval(t2))
}

func (s *solver) step(f clipFrame) {
	if f.depth >= s.opts.MaxDepth || s.res.Calls >= s.opts.MaxCalls {
		s.res.Truncated = true
		return
	}
	s.res.Calls++
	orig1, orig2 := s.originals(f.flip)

	if f.d2.width() == 0 || f.c2.IsAPoint(0) {
		s.pointCurve(f.c2.P0, f.d2.mid(), f.c1, f.d1, false, f.flip)
		return
	}
	if f.c2.P0 == f.c2.P3 {
		// Without a baseline there is no fat line; halve c2 instead.
		left, right := orig2.Subsegment(f.d2.start, f.d2.end).Split(0.5)
		m := f.d2.mid()
		s.push(clipFrame{c1: f.c1, c2: right, d1: f.d1, d2: interval{m, f.d2.end}, flip: f.flip, depth: f.depth + 1})
		s.push(clipFrame{c1: f.c1, c2: left, d1: f.d1, d2: interval{f.d2.start, m}, flip: f.flip, depth: f.depth + 1})
		return
	}
	if !f.c1.FastBoundingBox().Overlaps(f.c2.FastBoundingBox()) {
		return
	}

	tmin, tmax, ok := f.c2.FatLine().clip(f.c1)
	if !ok {
		return
	}
	d1 := interval{f.d1.at(tmin), f.d1.at(tmax)}

	if max(f.d2.width(), d1.width()) < domainEpsilon {
		s.add(d1.mid(), f.d2.mid(), f.flip)
		return
	}

	c1 := orig1.Subsegment(d1.start, d1.end)
	if d1.width() == 0 || c1.IsAPoint(0) {
		s.pointCurve(c1.P0, d1.mid(), f.c2, f.d2, true, f.flip)
		return
	}

	if tmax-tmin > 1-minShrink {
		// Clipping made little progress. Halve the curve that has converged
		// least and continue with the roles swapped.
		if d1.width() > f.d2.width() {
			left, right := c1.Split(0.5)
			m := d1.mid()
			s.push(clipFrame{c1: f.c2, c2: right, d1: f.d2, d2: interval{m, d1.end}, flip: !f.flip, depth: f.depth + 1})
			s.push(clipFrame{c1: f.c2, c2: left, d1: f.d2, d2: interval{d1.start, m}, flip: !f.flip, depth: f.depth + 1})
		} else {
			left, right := f.c2.Split(0.5)
			m := f.d2.mid()
			s.push(clipFrame{c1: right, c2: c1, d1: interval{m, f.d2.end}, d2: d1, flip: !f.flip, depth: f.depth + 1})
			s.push(clipFrame{c1: left, c2: c1, d1: interval{f.d2.start, m}, d2: d1, flip: !f.flip, depth: f.depth + 1})
		}
		return
	}

	if f.d2.width() >= domainEpsilon {
		s.push(clipFrame{c1: f.c2, c2: c1, d1: f.d2, d2: d1, flip: !f.flip, depth: f.depth + 1})
	} else {
		// c2 is already tight; keep clipping c1.
		s.push(clipFrame{c1: c1, c2: f.c2, d1: d1, d2: f.d2, flip: f.flip, depth: f.depth + 1})
	}
}

func (s *solver) push(f clipFrame) {
	s.stack = append(s.stack, f)
}

// pointCurve records where pt, a point-like piece of one curve at parameter
// ptT, lies on curve, the piece of the other curve covering domain d. ptIsFirst
// tells which of the frame's curves pt belongs to.
func (s *solver) pointCurve(pt Point, ptT float64, curve CubicBez, d interval, ptIsFirst, flip bool) {
	record := func(t float64) {
		if ptIsFirst {
			s.add(ptT, d.at(t), flip)
		} else {
			s.add(d.at(t), ptT, flip)
		}
	}

	// The curve is usually tiny by now, so sampling tends to suffice.
	eps := epsilonForPoint(pt)
	best := eps
	bestT := -1.0
	for i := range 11 {
		t := float64(i) / 10
		if d := pt.DistanceSquared(curve.Eval(t)); d < best {
			best, bestT = d, t
		}
	}
	if bestT >= 0 {
		record(bestT)
		return
	}

	ts, n := pointCurveIntersections(pt, curve, eps)
	for _, t := range ts[:n] {
		record(t)
	}
}

// epsilonForPoint returns the squared distance within which a point counts as
// lying on a curve, growing with the magnitude of its coordinates.
func epsilonForPoint(pt Point) float64 {
	m := max(math.Abs(pt.X), math.Abs(pt.Y))
	eps := 1e-12
	for m >= 10 && eps < 1e-3 {
		m /= 10
		eps *= 10
	}
	return min(eps, 1e-3)
}

// pointCurveIntersections returns the parameters at which c passes within
// sqrt(eps) of pt.
func pointCurveIntersections(pt Point, c CubicBez, eps float64) ([6]float64, int) {
	var out [6]float64
	var n int
	if pt.DistanceSquared(c.P0) < eps {
		out[0] = 0
		return out, 1
	}
	if pt.DistanceSquared(c.P3) < eps {
		out[0] = 1
		return out, 1
	}

	// Solves in x and y find the same crossing with slightly different
	// parameters; merge them.
	paramEps := 10 * eps
	consider := func(ts [3]float64, m int) {
	outer:
		for _, t := range ts[:m] {
			if pt.DistanceSquared(c.Eval(t)) > eps {
				continue
			}
			for _, u := range out[:n] {
				if math.Abs(t-u) < paramEps {
					continue outer
				}
			}
			out[n] = t
			n++
		}
	}
	consider(c.SolveTForX(pt.X))
	consider(c.SolveTForY(pt.Y))
	if n > 0 {
		return out, n
	}

	// pt may be near the curve but just outside its x and y ranges, for
	// example beyond a cusp in a corner of the control polygon.
	for _, t := range [...]float64{c.XMinimumT(), c.XMaximumT(), c.YMinimumT(), c.YMaximumT()} {
		if pt.DistanceSquared(c.Eval(t)) < eps {
			out[0] = t
			return out, 1
		}
	}
	return out, 0
}

// lineCurve intersects a curve with a cubic that is a straight line. flip
// reports whether curve is the solver's a.
func (s *solver) lineCurve(line, curve CubicBez, flip bool) {
	base := line.Baseline()
	ts, n := curve.LineIntersectionsT(base.ToInfinite())
	vertical := mostlyVertical(base)
	for _, tc := range ts[:n] {
		var lts [3]float64
		var ln int
		if vertical {
			lts, ln = line.SolveTForY(curve.Y(tc))
		} else {
			lts, ln = line.SolveTForX(curve.X(tc))
		}
		for _, tl := range lts[:ln] {
			s.add(tl, tc, flip)
		}
	}
}

// lineLine intersects two cubics that are both straight lines. Parallel and
// overlapping lines have no intersections.
func (s *solver) lineLine() {
	la, lb := s.a.Baseline(), s.b.Baseline()
	pt, ok := la.ToInfinite().Intersection(lb.ToInfinite())
	if !ok {
		return
	}
	params := func(c CubicBez, base Line) ([3]float64, int) {
		if mostlyVertical(base) {
			return c.SolveTForY(pt.Y)
		}
		return c.SolveTForX(pt.X)
	}
	ta, na := params(s.a, la)
	if na == 0 {
		return
	}
	tb, nb := params(s.b, lb)
	for _, t1 := range ta[:na] {
		for _, t2 := range tb[:nb] {
			s.add(t1, t2, false)
		}
	}
}

func mostlyVertical(l Line) bool {
	v := l.Vector()
	return math.Abs(v.Y) >= math.Abs(v.X)
}
