package morph

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Point is a 2D pixel position. Integer landmarks are stored exactly.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt[T constraints.Integer | constraints.Float](x, y T) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Round returns the point with both coordinates rounded to the nearest integer.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// PointSet is an ordered list of landmarks. The index of a point is its
// identity: index i of one set corresponds to index i of every other set
// taking part in the same morph.
type PointSet []Point

// Triangle resolves the index triple against the point set.
func (ps PointSet) Triangle(t TriangleIndex) (Triangle, error) {
	var tri Triangle
	for i, idx := range t {
		if idx < 0 || idx >= len(ps) {
			return tri, errors.Wrapf(ErrIndexOutOfRange, "triangle %v: index %d, %d points", t, idx, len(ps))
		}
		tri[i] = ps[idx]
	}
	return tri, nil
}

// TriangleIndex references three points of a PointSet.
type TriangleIndex [3]int

// Triangle holds three concrete vertices.
type Triangle [3]Point

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs(t.signedArea2()) * 0.5
}

// signedArea2 returns twice the signed area. Positive for counter clockwise
// vertices in a y-up system.
func (t Triangle) signedArea2() float64 {
	return (t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y)
}

// BoundingRect returns the smallest integer rectangle containing the
// triangle. The origin is rounded down and the far edge is one past the pixel
// holding the largest coordinate, so integer vertices are included as pixels
// and fractional ones are never clipped.
func BoundingRect(t Triangle) image.Rectangle {
	minX := Min(t[0].X, t[1].X, t[2].X)
	minY := Min(t[0].Y, t[1].Y, t[2].Y)
	maxX := Max(t[0].X, t[1].X, t[2].X)
	maxY := Max(t[0].Y, t[1].Y, t[2].Y)

	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Floor(maxX))+1, int(math.Floor(maxY))+1,
	)
}

// ToLocal shifts the triangle so that its coordinates are relative to the
// top-left corner of r.
func ToLocal(t Triangle, r image.Rectangle) Triangle {
	o := Pt(r.Min.X, r.Min.Y)
	return Triangle{t[0].Sub(o), t[1].Sub(o), t[2].Sub(o)}
}

// Blend returns (1-alpha)*a + alpha*b.
func Blend(a, b Point, alpha float64) Point {
	return Point{
		X: (1-alpha)*a.X + alpha*b.X,
		Y: (1-alpha)*a.Y + alpha*b.Y,
	}
}

// BlendPoints computes the intermediate point set for the given alpha,
// rounded to integer pixel coordinates.
func BlendPoints(a, b PointSet, alpha float64) (PointSet, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrShapeMismatch, "point sets have %d and %d points", len(a), len(b))
	}
	out := make(PointSet, len(a))
	for i := range a {
		out[i] = Blend(a[i], b[i], alpha).Round()
	}
	return out, nil
}

// Min returns the smallest of one or more values.
func Min[T constraints.Ordered](first T, rest ...T) T {
	for _, v := range rest {
		if v < first {
			first = v
		}
	}
	return first
}

// Max returns the largest of one or more values.
func Max[T constraints.Ordered](first T, rest ...T) T {
	for _, v := range rest {
		if v > first {
			first = v
		}
	}
	return first
}

// clamp restricts v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
