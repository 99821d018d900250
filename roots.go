package bezier

import (
	"math"
	"sort"
)

// coefficientEpsilon is the relative size below which a leading polynomial
// coefficient is treated as zero.
const coefficientEpsilon = 1e-9

// CubicPolynomialRoots returns the real roots of a·x³ + b·x² + c·x + d = 0.
//
// The polynomial degrades gracefully: when a is negligible compared to the
// other coefficients the quadratic is solved, and likewise for the linear
// equation. A polynomial with all coefficients zero reports no roots. Roots are
// not filtered to any range and are returned in ascending order; the second
// return value is the number of roots.
//
// A repeated root is reported once.
func CubicPolynomialRoots(a, b, c, d float64) ([3]float64, int) {
	var out [3]float64
	m := max(math.Abs(a), math.Abs(b), math.Abs(c), math.Abs(d))
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return out, 0
	}
	// Degeneracy is judged relative to the largest coefficient; the solve
	// itself uses the unscaled values, which keeps exact inputs exact.
	if math.Abs(a) < coefficientEpsilon*m {
		if math.Abs(b) < coefficientEpsilon*m {
			if math.Abs(c) < coefficientEpsilon*m {
				return out, 0
			}
			out[0] = -d / c
			return out, 1
		}
		roots, n := quadraticRoots(b, c, d)
		copy(out[:], roots[:n])
		return out, n
	}

	const third = 1.0 / 3.0
	bn := b / a
	cn := c / a
	dn := d / a

	delta0 := (3*cn - bn*bn) / 9
	delta1 := (9*bn*cn - 27*dn - 2*bn*bn*bn) / 54
	d0cubed := delta0 * delta0 * delta0
	d1squared := delta1 * delta1
	discriminant := d0cubed + d1squared
	// The two terms are frequently equal in exact arithmetic (repeated roots),
	// in which case rounding leaves a residue of either sign.
	if math.Abs(discriminant) <= 1e-12*max(math.Abs(d0cubed), d1squared) {
		discriminant = 0
	}

	var n int
	if discriminant >= 0 {
		sq := math.Sqrt(discriminant)
		s := math.Cbrt(delta1 + sq)
		t := math.Cbrt(delta1 - sq)
		out[n] = -bn*third + (s + t)
		n++
		if sq == 0 && s != 0 {
			// s == t: a simple root and a double root. When s is zero as
			// well, the root is triple and already reported.
			out[n] = -bn*third - s
			n++
		}
	} else {
		// delta0 is negative here, so the square root is real.
		arg := delta1 / math.Sqrt(-d0cubed)
		theta := math.Acos(min(max(arg, -1), 1))
		r := 2 * math.Sqrt(-delta0)
		for k := range 3 {
			out[n] = r*math.Cos((theta+2*math.Pi*float64(k))*third) - bn*third
			n++
		}
	}
	sort.Float64s(out[:n])
	return out, n
}

// quadraticRoots solves a·x² + b·x + c = 0 for a ≠ 0, avoiding the
// cancellation of the textbook formula.
func quadraticRoots(a, b, c float64) ([2]float64, int) {
	disc := b*b - 4*a*c
	if math.Abs(disc) <= 1e-12*max(b*b, math.Abs(4*a*c)) {
		return [2]float64{-b / (2 * a)}, 1
	}
	if disc < 0 {
		return [2]float64{}, 0
	}
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	r0 := q / a
	r1 := c / q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return [2]float64{r0, r1}, 2
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// If the equation is nearly linear, it will return the root ignoring the
// quadratic term; the other root might be out of representable range. In the
// degenerate case where all coefficients are zero, so that all values of x
// satisfy the equation, a single 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the
		// other as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// SolveCubic finds real roots of cubic equations, following Jim Blinn's "How
// to Solve a Cubic Equation" as presented at
// https://momentsingraphics.de/CubicRoots.html.
//
// Returns values of x for which c0 + c1 x + c2 x² + c3 x³ = 0.0
//
// Unlike [CubicPolynomialRoots], roots are not sorted and coefficients are in
// ascending order of degree.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) {
		// cubic coefficient is zero or nearly so.
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is called "Delta" in the article
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	d := 4.0*d0*d2 - d1*d1
	de := math.FMA(-2.0*c2, d0, d1)
	if d < 0.0 {
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t1 - c2}, 1
	} else if d == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t1 - c2, -2.0*t1 - c2}, 2
	}
	th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
	thSin, thCos := math.Sincos(th)
	r0 := thCos
	ss3 := thSin * math.Sqrt(3.0)
	r1 := 0.5 * (-thCos + ss3)
	r2 := 0.5 * (-thCos - ss3)
	t := 2.0 * math.Sqrt(-d0)
	return [3]float64{
		math.FMA(t, r0, -c2),
		math.FMA(t, r1, -c2),
		math.FMA(t, r2, -c2),
	}, 3
}
