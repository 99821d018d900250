package bezier

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(RotateAbout(math.Pi, Pt(3, 5))), Pt(3, 6), epsilon)
}

func TestAffineMulInvert(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	inv := a2.Invert()

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
		assertNear(t, p.Transform(a2).Transform(inv), p, epsilon)
		assertNear(t, p.Transform(inv).Transform(a2), p, epsilon)
	}
}

func TestTransformRectBoundingBox(t *testing.T) {
	r := Rect{0, 0, 2, 1}
	got := Rotate(math.Pi / 2).TransformRectBoundingBox(r)
	const epsilon = 1e-12
	if math.Abs(got.X0+1) > epsilon || math.Abs(got.Y0) > epsilon ||
		math.Abs(got.X1) > epsilon || math.Abs(got.Y1-2) > epsilon {
		t.Errorf("got %v, want {-1 0 0 2}", got)
	}
}
