package bezier_test

import (
	"fmt"
	"math"

	"honnef.co/go/bezier"
)

func ExampleCubicPolynomialRoots() {
	// (x - 1)(x - 2)(x - 3)
	roots, n := bezier.CubicPolynomialRoots(1, -6, 11, -6)
	for _, r := range roots[:n] {
		fmt.Printf("%.3f\n", r)
	}
	// Output:
	// 1.000
	// 2.000
	// 3.000
}

func ExampleCubicBez_IntersectCubic() {
	a := bezier.CubicBez{
		P0: bezier.Pt(-10.0, -13.636363636363636),
		P1: bezier.Pt(15.0, 11.363636363636363),
		P2: bezier.Pt(-15.0, 11.363636363636363),
		P3: bezier.Pt(10.0, -13.636363636363636),
	}
	b := a.Transform(bezier.Rotate(math.Pi / 2))
	_, n := a.IntersectCubic(b)
	fmt.Println(n, "intersections")
	// Output: 4 intersections
}

func ExampleIntersectCubicsOpt() {
	a := bezier.CubicBez{
		P0: bezier.Pt(-10.0, -13.636363636363636),
		P1: bezier.Pt(15.0, 11.363636363636363),
		P2: bezier.Pt(-15.0, 11.363636363636363),
		P3: bezier.Pt(10.0, -13.636363636363636),
	}
	b := a.Transform(bezier.Rotate(math.Pi / 2))
	res := bezier.IntersectCubicsOpt(a, b, bezier.IntersectOptions{MaxCalls: 2})
	fmt.Println("truncated:", res.Truncated)
	// Output: truncated: true
}

func ExampleCubicBez_ForEachMonotonicRange() {
	arch := bezier.CubicBez{
		P0: bezier.Pt(0, 0),
		P1: bezier.Pt(0, 1),
		P2: bezier.Pt(1, 1),
		P3: bezier.Pt(1, 0),
	}
	arch.ForEachMonotonicRange(func(t0, t1 float64) {
		fmt.Printf("[%.2f, %.2f]\n", t0, t1)
	})
	// Output:
	// [0.00, 0.50]
	// [0.50, 1.00]
}

func ExampleSegment_Flatten() {
	seg := bezier.QuadBez{
		P0: bezier.Pt(0, 0),
		P1: bezier.Pt(50, 100),
		P2: bezier.Pt(100, 0),
	}.Seg()
	var last bezier.Point
	n := 0
	for pt := range seg.Flatten(0.25) {
		last = pt
		n++
	}
	fmt.Println(n > 1, last.X, last.Y)
	// Output: true 100 0
}
