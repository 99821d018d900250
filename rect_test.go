package bezier

import "testing"

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		a, b Rect
		want bool
	}{
		{Rect{0, 0, 10, 10}, Rect{5, 5, 15, 15}, true},
		{Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, true},
		{Rect{0, 0, 10, 10}, Rect{10.5, 0, 20, 10}, false},
		// Degenerate boxes of horizontal and vertical lines.
		{Rect{0, 5, 10, 5}, Rect{5, 0, 5, 10}, true},
		{Rect{0, 5, 10, 5}, Rect{0, 6, 10, 6}, false},
		// Unnormalized extents.
		{Rect{10, 10, 0, 0}, Rect{5, 5, 15, 15}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %t, want %t", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %t, want %t", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestRectUnionPoint(t *testing.T) {
	r := NewRectFromPoints(Pt(3, 4), Pt(3, 4))
	for _, pt := range []Point{Pt(-1, 2), Pt(5, 9), Pt(0, -3)} {
		r = r.UnionPoint(pt)
	}
	diff(t, Rect{-1, -3, 5, 9}, r)
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	diff(t, Rect{5, 5, 10, 10}, a.Intersect(Rect{5, 5, 15, 15}))
	if got := a.Intersect(Rect{20, 20, 30, 30}); got.Area() != 0 {
		t.Errorf("got area %v, want 0", got.Area())
	}
}
