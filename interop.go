package bezier

import (
	"iter"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Geom converts pt to a seehuhn.de/go/geom vector.
func (pt Point) Geom() vec.Vec2 {
	return vec.Vec2{X: pt.X, Y: pt.Y}
}

func PointFromGeom(v vec.Vec2) Point {
	return Point{v.X, v.Y}
}

// Geom converts r to a seehuhn.de/go/geom rectangle.
func (r Rect) Geom() rect.Rect {
	r = r.Abs()
	return rect.Rect{LLx: r.X0, LLy: r.Y0, URx: r.X1, URy: r.Y1}
}

func RectFromGeom(r rect.Rect) Rect {
	return Rect{X0: r.LLx, Y0: r.LLy, X1: r.URx, Y1: r.URy}
}

// Geom converts aff to a seehuhn.de/go/geom matrix, which uses the same
// coefficient order.
func (aff Affine) Geom() matrix.Matrix {
	return matrix.Matrix(aff.Coefficients())
}

func AffineFromGeom(m matrix.Matrix) Affine {
	return NewAffine([6]float64(m))
}

// SegmentsFromGeomPath returns the segments of a seehuhn.de/go/geom path.
// Closed subpaths gain a closing line unless they already end at their start
// point. Drawing commands before the first MoveTo start at the origin.
func SegmentsFromGeomPath(p path.Path) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		var cur, start Point
		for cmd, pts := range p {
			var seg Segment
			switch cmd {
			case path.CmdMoveTo:
				cur = PointFromGeom(pts[0])
				start = cur
				continue
			case path.CmdLineTo:
				seg = Line{cur, PointFromGeom(pts[0])}.Seg()
			case path.CmdQuadTo:
				seg = QuadBez{cur, PointFromGeom(pts[0]), PointFromGeom(pts[1])}.Seg()
			case path.CmdCubeTo:
				seg = CubicBez{cur, PointFromGeom(pts[0]), PointFromGeom(pts[1]), PointFromGeom(pts[2])}.Seg()
			case path.CmdClose:
				if cur != start {
					if !yield(Line{cur, start}.Seg()) {
						return
					}
				}
				cur = start
				continue
			default:
				continue
			}
			if !yield(seg) {
				return
			}
			cur = seg.End()
		}
	}
}

// F64 converts pt to an x/image vector.
func (pt Point) F64() f64.Vec2 {
	return f64.Vec2{pt.X, pt.Y}
}

func PointFromF64(v f64.Vec2) Point {
	return Point{v[0], v[1]}
}

// Aff3 converts aff to an x/image affine matrix. Aff3 is stored row by row,
// unlike Affine.
func (aff Affine) Aff3() f64.Aff3 {
	c := aff.Coefficients()
	return f64.Aff3{c[0], c[2], c[4], c[1], c[3], c[5]}
}

func AffineFromAff3(m f64.Aff3) Affine {
	return NewAffine([6]float64{m[0], m[3], m[1], m[4], m[2], m[5]})
}

// Fixed converts pt to 26.6 fixed point, rounding to the nearest 1/64.
func (pt Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(pt.X), Y: toFixed(pt.Y)}
}

func toFixed(v float64) fixed.Int26_6 {
	if v < 0 {
		return -fixed.Int26_6(-v*64 + 0.5)
	}
	return fixed.Int26_6(v*64 + 0.5)
}

func PointFromFixed(p fixed.Point26_6) Point {
	return Point{float64(p.X) / 64, float64(p.Y) / 64}
}

// RasterizeFlattened adds the flattened segments to z as closed polygons.
// A new polygon starts whenever a segment does not begin where the previous
// one ended.
func RasterizeFlattened(z *vector.Rasterizer, segs iter.Seq[Segment], tolerance float64) {
	checkTolerance(tolerance)
	var last option[Point]
	for seg := range segs {
		if !last.isSet || last.value != seg.P0 {
			if last.isSet {
				z.ClosePath()
			}
			z.MoveTo(float32(seg.P0.X), float32(seg.P0.Y))
		}
		seg.ForEachFlattened(tolerance, func(pt Point) {
			z.LineTo(float32(pt.X), float32(pt.Y))
		})
		last.set(seg.End())
	}
	if last.isSet {
		z.ClosePath()
	}
}
