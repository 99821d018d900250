package bezier

// PointIn is a [Point] tagged with the coordinate space S it is expressed in.
// S is only used at compile time; any type can serve as a space, and the tag
// has no runtime representation.
//
// Values in different spaces can't be mixed. Moving a value to another space
// requires either [CastPoint], which reinterprets coordinates as they are, or
// a [SpaceTransform], which maps them.
type PointIn[S any] struct {
	Point
}

// VecIn is a [Vec2] tagged with the coordinate space S.
type VecIn[S any] struct {
	Vec2
}

// PtIn returns the point (x, y) in space S.
func PtIn[S any](x, y float64) PointIn[S] {
	return PointIn[S]{Pt(x, y)}
}

// VecInSpace returns the vector ⟨x, y⟩ in space S.
func VecInSpace[S any](x, y float64) VecIn[S] {
	return VecIn[S]{Vec(x, y)}
}

func (p PointIn[S]) Sub(o PointIn[S]) VecIn[S] {
	return VecIn[S]{p.Point.Sub(o.Point)}
}

func (p PointIn[S]) Translate(v VecIn[S]) PointIn[S] {
	return PointIn[S]{p.Point.Translate(v.Vec2)}
}

func (p PointIn[S]) Lerp(o PointIn[S], t float64) PointIn[S] {
	return PointIn[S]{p.Point.Lerp(o.Point, t)}
}

func (v VecIn[S]) Add(o VecIn[S]) VecIn[S] {
	return VecIn[S]{v.Vec2.Add(o.Vec2)}
}

func (v VecIn[S]) Sub(o VecIn[S]) VecIn[S] {
	return VecIn[S]{v.Vec2.Sub(o.Vec2)}
}

// CastPoint reinterprets p as a point in space T without changing its
// coordinates.
func CastPoint[T, S any](p PointIn[S]) PointIn[T] {
	return PointIn[T]{p.Point}
}

// CastVec reinterprets v as a vector in space T without changing its
// coordinates.
func CastVec[T, S any](v VecIn[S]) VecIn[T] {
	return VecIn[T]{v.Vec2}
}

// SpaceTransform is an affine transformation from space S to space T.
type SpaceTransform[S, T any] struct {
	Affine
}

// NewSpaceTransform tags aff as mapping from S to T.
func NewSpaceTransform[S, T any](aff Affine) SpaceTransform[S, T] {
	return SpaceTransform[S, T]{aff}
}

// Apply maps p from S to T.
func (tr SpaceTransform[S, T]) Apply(p PointIn[S]) PointIn[T] {
	return PointIn[T]{p.Point.Transform(tr.Affine)}
}

// ApplyVec maps v from S to T, ignoring the translation.
func (tr SpaceTransform[S, T]) ApplyVec(v VecIn[S]) VecIn[T] {
	aff := tr.Affine
	return VecIn[T]{Vec2{
		X: aff.N0*v.X + aff.N2*v.Y,
		Y: aff.N1*v.X + aff.N3*v.Y,
	}}
}

// Then returns the transform that applies tr followed by o.
func Then[S, T, U any](tr SpaceTransform[S, T], o SpaceTransform[T, U]) SpaceTransform[S, U] {
	return SpaceTransform[S, U]{o.Affine.Mul(tr.Affine)}
}

// Inverse returns the transform mapping from T back to S.
func (tr SpaceTransform[S, T]) Inverse() SpaceTransform[T, S] {
	return SpaceTransform[T, S]{tr.Affine.Invert()}
}

// CubicIn is a [CubicBez] tagged with the coordinate space S.
type CubicIn[S any] struct {
	CubicBez
}

// TransformCubic maps c from S to T.
func TransformCubic[S, T any](tr SpaceTransform[S, T], c CubicIn[S]) CubicIn[T] {
	return CubicIn[T]{c.CubicBez.Transform(tr.Affine)}
}

// Eval returns the point at t, in the curve's space.
func (c CubicIn[S]) Eval(t float64) PointIn[S] {
	return PointIn[S]{c.CubicBez.Eval(t)}
}
