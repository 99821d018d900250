// Package bezier provides 2D line segments and quadratic and cubic Bézier
// curves, along with the geometry needed to render and edit paths made of
// them: flattening to polylines, monotonic decomposition, and curve-curve
// intersection.
//
// # Curves
//
// [Line], [QuadBez], and [CubicBez] are immutable values parametrized by
// t ∈ [0, 1]. Operations such as [CubicBez.Split], [CubicBez.Subsegment],
// [CubicBez.Reverse], and [CubicBez.Transform] return new curves. [Segment]
// is a tagged union of the three, for code that handles paths of mixed
// segments, and can be read from seehuhn.de/go/geom paths (see
// [SegmentsFromGeomPath]).
//
// # Flattening
//
// ForEachFlattened methods approximate a curve with line segments whose
// distance to the curve does not exceed a tolerance. Quadratic curves are
// stepped through with a closed-form step size; cubic curves are first cut at
// their inflection points and then stepped through with the parabola
// approximation of Hain et al. The Flattened methods return a [FlattenIter]
// that produces the same points on demand.
//
// # Intersections
//
// [CubicBez.IntersectCubic] finds the intersections of two cubic curves using
// Bézier clipping: each curve is repeatedly clipped against the fat line of
// the other until the parameter ranges that can contain intersections
// converge. Two cubics intersect in at most [MaxCubicIntersections] points.
// The search is bounded in depth and total work, which matters for
// overlapping curves; [IntersectCubicsOpt] exposes those bounds and reports
// when they were hit.
//
// Equation solving is based on [CubicPolynomialRoots].
//
// # Coordinate spaces
//
// [PointIn] and [SpaceTransform] tag points and transforms with a coordinate
// space type, so that mixing up, for example, user space and device space is a
// compile time error. The curve types themselves are untagged.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [Curve intersection using Bézier clipping] by Sederberg and Nishita
//   - [Fast, precise flattening of cubic Bézier path and offset curves] by Hain et al.
//   - [Flattening quadratic Béziers] by Raph Levien
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Curve intersection using Bézier clipping]: https://doi.org/10.1016/0010-4485(90)90039-F
// [Fast, precise flattening of cubic Bézier path and offset curves]: https://doi.org/10.1016/j.cag.2005.08.002
// [Flattening quadratic Béziers]: https://raphlinus.github.io/graphics/curves/2019/12/23/flatten-quadbez.html
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package bezier
