package morph

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingRect(t *testing.T) {
	tri := Triangle{Pt(2, 3), Pt(10, 4), Pt(5, 9)}
	assert.Equal(t, image.Rect(2, 3, 11, 10), BoundingRect(tri))

	// Fractional coordinates are enclosed: origin rounds down, the far
	// edge includes the pixel holding the largest coordinate.
	tri = Triangle{Pt(2.7, 3.2), Pt(10.1, 4), Pt(5, 9.9)}
	r := BoundingRect(tri)
	assert.Equal(t, image.Rect(2, 3, 11, 10), r)
	for _, p := range tri {
		assert.LessOrEqual(t, float64(r.Min.X), p.X)
		assert.LessOrEqual(t, float64(r.Min.Y), p.Y)
		assert.Less(t, p.X, float64(r.Max.X))
		assert.Less(t, p.Y, float64(r.Max.Y))
	}

	// Negative coordinates round towards minus infinity.
	tri = Triangle{Pt(-0.5, -1.5), Pt(1, 0), Pt(0, 1)}
	assert.Equal(t, image.Rect(-1, -2, 2, 2), BoundingRect(tri))
}

func TestToLocal(t *testing.T) {
	tri := Triangle{Pt(2, 3), Pt(10, 4), Pt(5, 9)}
	local := ToLocal(tri, BoundingRect(tri))
	assert.Equal(t, Triangle{Pt(0, 0), Pt(8, 1), Pt(3, 6)}, local)
	// The input is not modified.
	assert.Equal(t, Pt(2, 3), tri[0])
}

func TestBlendPointsMidpoint(t *testing.T) {
	a := PointSet{Pt(0, 0), Pt(10, 20), Pt(100, 4), Pt(-6, 8)}
	b := PointSet{Pt(4, 2), Pt(20, 10), Pt(50, 40), Pt(6, -8)}

	out, err := BlendPoints(a, b, 0.5)
	require.NoError(t, err)
	require.Len(t, out, len(a))
	for i := range a {
		assert.Equal(t, Pt((a[i].X+b[i].X)/2, (a[i].Y+b[i].Y)/2), out[i])
	}
}

func TestBlendPointsRounding(t *testing.T) {
	out, err := BlendPoints(PointSet{Pt(0, 0)}, PointSet{Pt(3, 7)}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Pt(2, 4), out[0])

	out, err = BlendPoints(PointSet{Pt(1, 1)}, PointSet{Pt(9, 9)}, 0)
	require.NoError(t, err)
	assert.Equal(t, Pt(1, 1), out[0])

	out, err = BlendPoints(PointSet{Pt(1, 1)}, PointSet{Pt(9, 9)}, 1)
	require.NoError(t, err)
	assert.Equal(t, Pt(9, 9), out[0])
}

func TestBlendPointsShapeMismatch(t *testing.T) {
	_, err := BlendPoints(PointSet{Pt(0, 0)}, PointSet{Pt(0, 0), Pt(1, 1)}, 0.5)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPointSetTriangle(t *testing.T) {
	ps := PointSet{Pt(0, 0), Pt(4, 0), Pt(0, 4)}

	tri, err := ps.Triangle(TriangleIndex{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, Triangle{Pt(0, 4), Pt(0, 0), Pt(4, 0)}, tri)

	_, err = ps.Triangle(TriangleIndex{3, 0, 1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ps.Triangle(TriangleIndex{0, -1, 1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTriangleArea(t *testing.T) {
	assert.InDelta(t, 8.0, Triangle{Pt(0, 0), Pt(4, 0), Pt(0, 4)}.Area(), 1e-12)
	assert.InDelta(t, 8.0, Triangle{Pt(0, 0), Pt(0, 4), Pt(4, 0)}.Area(), 1e-12)
	assert.Zero(t, Triangle{Pt(0, 0), Pt(2, 0), Pt(4, 0)}.Area())
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, -2, Min(3, -2, 7))
	assert.Equal(t, 7, Max(3, -2, 7))
	assert.Equal(t, 1.5, Min(1.5))
	assert.Equal(t, 4, clamp(9, 0, 4))
	assert.Equal(t, 0, clamp(-1, 0, 4))
}
