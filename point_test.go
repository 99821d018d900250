package bezier

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(-10, 0), Pt(0, 0).Translate(Vec(-10, 0)))
	diff(t, Vec(3, -4), Pt(4, 0).Sub(Pt(1, 4)))
	diff(t, Pt(2, 3), Pt(0, 2).Midpoint(Pt(4, 4)))
	diff(t, Pt(1, 2.5), Pt(0, 2).Lerp(Pt(4, 4), 0.25))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.DistanceSquared(p4); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
}

func TestPointApproxEqual(t *testing.T) {
	if !Pt(1, 1).ApproxEqual(Pt(1+1e-10, 1-1e-10), 1e-9) {
		t.Error("nearby points should compare equal")
	}
	if Pt(1, 1).ApproxEqual(Pt(1, 1.1), 1e-9) {
		t.Error("distant points shouldn't compare equal")
	}
}

func TestVec2Perp(t *testing.T) {
	v := Vec(3, 4)
	diff(t, Vec(-4, 3), v.Perp())
	if d := v.Dot(v.Perp()); d != 0 {
		t.Errorf("perpendicular vector has dot product %v", d)
	}
	if c := v.Cross(v.Perp()); c <= 0 {
		t.Errorf("Perp should turn counter-clockwise, got cross product %v", c)
	}
	assertNearScalar(t, v.Normalize().Hypot(), 1, 1e-15)
	assertNearScalar(t, Vec(0, 2).Angle(), math.Pi/2, 1e-15)
}
