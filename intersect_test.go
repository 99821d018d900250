package bezier

import (
	"bytes"
	"cmp"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// sortedIntersections orders intersections by T1, breaking ties between T1
// values closer than the solver's resolution by T2.
func sortedIntersections(xs []CurveIntersection) []CurveIntersection {
	out := slices.Clone(xs)
	slices.SortFunc(out, func(a, b CurveIntersection) int {
		if math.Abs(a.T1-b.T1) > 1e-6 {
			return cmp.Compare(a.T1, b.T1)
		}
		return cmp.Compare(a.T2, b.T2)
	})
	return out
}

func TestSortedIntersectionsNearTies(t *testing.T) {
	a := []CurveIntersection{{0.5 + 1e-11, 0.9}, {0.5, 0.1}, {0.2, 0.4}}
	b := []CurveIntersection{{0.5, 0.9}, {0.2, 0.4}, {0.5 + 1e-11, 0.1}}
	diff(t, sortedIntersections(a), sortedIntersections(b), cmpopts.EquateApprox(0, 1e-6))
	want := []float64{0.4, 0.1, 0.9}
	for i, x := range sortedIntersections(a) {
		if x.T2 != want[i] {
			t.Errorf("position %d: got T2 = %g, want %g", i, x.T2, want[i])
		}
	}
}

func swapped(xs []CurveIntersection) []CurveIntersection {
	out := make([]CurveIntersection, len(xs))
	for i, x := range xs {
		out[i] = x.swap()
	}
	return out
}

// checkIntersections verifies that both curves meet at every reported pair
// and that swapping the curves reports the same pairs.
func checkIntersections(t *testing.T, a, b CubicBez, wantN int, maxGap float64) []CurveIntersection {
	t.Helper()
	xs, n := a.IntersectCubic(b)
	if n != wantN {
		t.Fatalf("got %d intersections %v, want %d", n, xs[:n], wantN)
	}
	for _, x := range xs[:n] {
		if x.T1 < 0 || x.T1 > 1 || x.T2 < 0 || x.T2 > 1 {
			t.Errorf("intersection %v out of range", x)
		}
		if d := a.Eval(x.T1).Distance(b.Eval(x.T2)); d > maxGap {
			t.Errorf("curves are %g apart at %v", d, x)
		}
	}

	ys, m := b.IntersectCubic(a)
	if m != n {
		t.Fatalf("swapping the curves found %d intersections, want %d", m, n)
	}
	got := sortedIntersections(swapped(ys[:m]))
	want := sortedIntersections(xs[:n])
	diff(t, want, got, cmpopts.EquateApprox(0, 1e-6))
	return want
}

func TestIntersectCubicSingle(t *testing.T) {
	a := CubicBez{Pt(0, 0), Pt(0, 1), Pt(0, 1), Pt(1, 1)}
	b := CubicBez{Pt(0, 1), Pt(1, 1), Pt(1, 1), Pt(1, 0)}
	checkIntersections(t, a, b, 1, 1e-6)
}

func TestIntersectCubicSelfIntersecting(t *testing.T) {
	a := CubicBez{
		Pt(-10.0, -13.636363636363636),
		Pt(15.0, 11.363636363636363),
		Pt(-15.0, 11.363636363636363),
		Pt(10.0, -13.636363636363636),
	}
	b := a.Transform(Rotate(math.Pi / 2))
	checkIntersections(t, a, b, 4, 0.5)
}

func TestIntersectQuads(t *testing.T) {
	// Both have x = 2t, so they meet where 8t² - 8t + 1 = 0.
	q1 := QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}
	q2 := QuadBez{Pt(0, 1), Pt(1, -1), Pt(2, 1)}
	want := []CurveIntersection{
		{0.5 - math.Sqrt(2)/4, 0.5 - math.Sqrt(2)/4},
		{0.5 + math.Sqrt(2)/4, 0.5 + math.Sqrt(2)/4},
	}
	xs, n := q1.IntersectQuad(q2)
	diff(t, want, sortedIntersections(xs[:n]), cmpopts.EquateApprox(0, 1e-6))

	got := checkIntersections(t, q1.Raise(), q2.Raise(), 2, 1e-6)
	diff(t, want, got, cmpopts.EquateApprox(0, 1e-6))

	xs, n = q1.IntersectCubic(q2.Raise())
	diff(t, want, sortedIntersections(xs[:n]), cmpopts.EquateApprox(0, 1e-6))
	xs, n = q1.Raise().IntersectQuad(q2)
	diff(t, want, sortedIntersections(xs[:n]), cmpopts.EquateApprox(0, 1e-6))
}

func TestIntersectCubicCollinearOverlap(t *testing.T) {
	a := Line{Pt(0, 0), Pt(2, 0)}.Raise()
	b := Line{Pt(1, 0), Pt(3, 0)}.Raise()
	if xs, n := a.IntersectCubic(b); n != 0 {
		t.Errorf("got %v, want no intersections for overlapping lines", xs[:n])
	}

	a = Line{Pt(0, 0), Pt(2, 2)}.Raise()
	b = Line{Pt(1, 1), Pt(3, 3)}.Raise()
	if xs, n := a.IntersectCubic(b); n != 0 {
		t.Errorf("got %v, want no intersections for overlapping lines", xs[:n])
	}
}

func TestIntersectCubicLines(t *testing.T) {
	a := Line{Pt(0, 0), Pt(4, 4)}.Raise()
	b := Line{Pt(0, 4), Pt(4, 0)}.Raise()
	got := checkIntersections(t, a, b, 1, 1e-9)
	diff(t, []CurveIntersection{{0.5, 0.5}}, got, cmpopts.EquateApprox(0, 1e-9))

	// Lines that would cross if extended.
	b = Line{Pt(10, 0), Pt(6, 4)}.Raise()
	if xs, n := a.IntersectCubic(b); n != 0 {
		t.Errorf("got %v, want no intersections", xs[:n])
	}
}

func TestIntersectCubicLineCurve(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	vLine := Line{Pt(10.0, -10.0), Pt(10.0, 10.0)}
	got := checkIntersections(t, c, vLine.Raise(), 1, 1e-9)
	diff(t, []CurveIntersection{{1.0 / 3.0, 16.0 / 27.0}}, got, cmpopts.EquateApprox(0, 1e-9))

	xs, n := Intersect(c.Seg(), vLine.Seg())
	diff(t, []CurveIntersection{{1.0 / 3.0, 16.0 / 27.0}}, xs[:n], cmpopts.EquateApprox(0, 1e-9))

	hLine := Line{Pt(0.0, 0.0), Pt(100.0, 0.0)}
	checkIntersections(t, c, hLine.Raise(), 3, 1e-9)
}

func TestIntersectCubicPointCurve(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	pt := c.Eval(0.25)
	p := CubicBez{pt, pt, pt, pt}

	xs, n := p.IntersectCubic(c)
	if n != 1 {
		t.Fatalf("got %d intersections %v, want 1", n, xs[:n])
	}
	assertNearScalar(t, xs[0].T1, 0, 0)
	assertNearScalar(t, xs[0].T2, 0.25, 1e-9)

	xs, n = c.IntersectCubic(p)
	if n != 1 {
		t.Fatalf("got %d intersections %v, want 1", n, xs[:n])
	}
	assertNearScalar(t, xs[0].T1, 0.25, 1e-9)

	off := Pt(15, 15)
	if xs, n := c.IntersectCubic(CubicBez{off, off, off, off}); n != 0 {
		t.Errorf("got %v, want no intersections for a point off the curve", xs[:n])
	}
}

func TestIntersectCubicTrivial(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	if xs, n := c.IntersectCubic(c); n != 0 {
		t.Errorf("got %v, want no intersections with itself", xs[:n])
	}
	if xs, n := c.IntersectCubic(c.Reverse()); n != 0 {
		t.Errorf("got %v, want no intersections with its reverse", xs[:n])
	}
	if xs, n := c.IntersectCubic(c.Transform(Translate(Vec(100, 0)))); n != 0 {
		t.Errorf("got %v, want no intersections with a distant curve", xs[:n])
	}
}

func TestIntersectCubicEndpoints(t *testing.T) {
	// Joined at an endpoint: not an intersection.
	a := CubicBez{Pt(0, 0), Pt(1, 2), Pt(2, 2), Pt(3, 0)}
	b := CubicBez{Pt(3, 0), Pt(4, 2), Pt(5, 2), Pt(6, 0)}
	if xs, n := a.IntersectCubic(b); n != 0 {
		t.Errorf("got %v, want no intersections for joined curves", xs[:n])
	}

	// An endpoint inside the other curve is reported.
	arch := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	spur := CubicBez{Pt(0.5, 0.75), Pt(0.5, 2), Pt(2, 2), Pt(2, 1)}
	got := checkIntersections(t, arch, spur, 1, 1e-6)
	diff(t, []CurveIntersection{{0.5, 0}}, got, cmpopts.EquateApprox(0, 1e-6))
}

func TestIntersectCubicPoints(t *testing.T) {
	a := CubicBez{
		Pt(-10.0, -13.636363636363636),
		Pt(15.0, 11.363636363636363),
		Pt(-15.0, 11.363636363636363),
		Pt(10.0, -13.636363636363636),
	}
	b := a.Transform(Rotate(math.Pi / 2))
	pts, n := a.IntersectCubicPoints(b)
	ts, m := a.IntersectCubic(b)
	if n != m {
		t.Fatalf("got %d points but %d intersections", n, m)
	}
	for i := range n {
		assertNear(t, pts[i], a.Eval(ts[i].T1), 1e-12)
	}
}

func TestIntersectSegments(t *testing.T) {
	l1 := Line{Pt(0, 0), Pt(4, 4)}.Seg()
	l2 := Line{Pt(0, 4), Pt(4, 0)}.Seg()
	xs, n := Intersect(l1, l2)
	diff(t, []CurveIntersection{{0.5, 0.5}}, xs[:n], cmpopts.EquateApprox(0, 1e-12))

	q := QuadBez{Pt(0, 0), Pt(1, 2), Pt(2, 0)}.Seg()
	l := Line{Pt(0, 0.75), Pt(2, 0.75)}.Seg()
	xs, n = Intersect(q, l)
	diff(t, []CurveIntersection{{0.25, 0.25}, {0.75, 0.75}}, sortedIntersections(xs[:n]), cmpopts.EquateApprox(0, 1e-9))
}

func TestIntersectCubicsOptTruncated(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	a := CubicBez{
		Pt(-10.0, -13.636363636363636),
		Pt(15.0, 11.363636363636363),
		Pt(-15.0, 11.363636363636363),
		Pt(10.0, -13.636363636363636),
	}
	b := a.Transform(Rotate(math.Pi / 2))

	res := IntersectCubicsOpt(a, b, IntersectOptions{MaxCalls: 2})
	if !res.Truncated {
		t.Error("search with a budget of 2 calls wasn't truncated")
	}
	if res.Calls != 2 {
		t.Errorf("got %d calls, want 2", res.Calls)
	}
	if len(res.All()) != res.N {
		t.Errorf("All returned %d intersections, want %d", len(res.All()), res.N)
	}
	if !strings.Contains(buf.String(), "truncated") {
		t.Errorf("truncation wasn't logged: %q", buf.String())
	}

	res = IntersectCubicsOpt(a, b, IntersectOptions{MaxDepth: 1})
	if !res.Truncated {
		t.Error("search with a depth of 1 wasn't truncated")
	}

	buf.Reset()
	res = IntersectCubicsOpt(a, b, IntersectOptions{})
	if res.N != 4 {
		t.Errorf("got %d intersections with the default budget, want 4", res.N)
	}
	if res.Calls == 0 || res.Calls > DefaultMaxCalls {
		t.Errorf("got %d calls, want between 1 and %d", res.Calls, DefaultMaxCalls)
	}
}

func TestEpsilonForPoint(t *testing.T) {
	tests := []struct {
		pt   Point
		want float64
	}{
		{Pt(0, 0), 1e-12},
		{Pt(5, -9), 1e-12},
		{Pt(50, 0), 1e-11},
		{Pt(0, -500), 1e-10},
		{Pt(1e20, 0), 1e-3},
	}
	for _, tt := range tests {
		diff(t, tt.want, epsilonForPoint(tt.pt), cmpopts.EquateApprox(1e-9, 0))
	}
}

func BenchmarkIntersectCubic(b *testing.B) {
	a := CubicBez{
		Pt(-10.0, -13.636363636363636),
		Pt(15.0, 11.363636363636363),
		Pt(-15.0, 11.363636363636363),
		Pt(10.0, -13.636363636363636),
	}
	c := a.Transform(Rotate(math.Pi / 2))
	for range b.N {
		a.IntersectCubic(c)
	}
}
