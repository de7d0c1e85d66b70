package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalArea(t *testing.T, points PointSet, triangles []TriangleIndex) float64 {
	t.Helper()
	var sum float64
	for _, idx := range triangles {
		tri, err := points.Triangle(idx)
		require.NoError(t, err)
		sum += tri.Area()
	}
	return sum
}

func TestTriangulateSquare(t *testing.T) {
	points := PointSet{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	assert.Len(t, triangles, 2)
	assert.InDelta(t, 100, totalArea(t, points, triangles), 1e-9)
}

func TestTriangulateSquareWithCenter(t *testing.T) {
	points := PointSet{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10), Pt(5, 5)}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	assert.Equal(t, []TriangleIndex{{0, 1, 4}, {0, 3, 4}, {1, 2, 4}, {2, 3, 4}}, triangles)
	assert.InDelta(t, 100, totalArea(t, points, triangles), 1e-9)
}

func TestTriangulateCoversHull(t *testing.T) {
	points := PointSet{
		Pt(0, 0), Pt(100, 3), Pt(97, 101), Pt(2, 95),
		Pt(40, 50), Pt(63, 22), Pt(30, 80), Pt(70, 70),
	}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	// Euler: 2n - 2 - h triangles for n points with h on the hull.
	assert.Len(t, triangles, 2*len(points)-2-4)
	assert.InDelta(t, 9411, totalArea(t, points, triangles), 1e-6)

	for _, tri := range triangles {
		assert.True(t, tri[0] < tri[1] && tri[1] < tri[2], "unsorted triangle %v", tri)
	}
}

func TestTriangulateIsDelaunay(t *testing.T) {
	points := PointSet{
		Pt(0, 0), Pt(100, 3), Pt(97, 101), Pt(2, 95),
		Pt(40, 50), Pt(63, 22), Pt(30, 80), Pt(70, 70),
	}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	for _, idx := range triangles {
		tri, err := points.Triangle(idx)
		require.NoError(t, err)
		c := newTriangle(node{Point: tri[0]}, node{Point: tri[1]}, node{Point: tri[2]})
		for i, p := range points {
			if i == idx[0] || i == idx[1] || i == idx[2] {
				continue
			}
			assert.False(t, c.inCircle(p), "point %d inside circumcircle of %v", i, idx)
		}
	}
}

func TestTriangulateDuplicates(t *testing.T) {
	points := PointSet{Pt(0, 0), Pt(10, 0), Pt(0, 0), Pt(0, 10), Pt(10, 0)}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	require.Len(t, triangles, 1)
	assert.Equal(t, TriangleIndex{0, 1, 3}, triangles[0])
}

func TestTriangulateTooFewPoints(t *testing.T) {
	_, err := Triangulate(PointSet{Pt(0, 0), Pt(1, 1)})
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = Triangulate(PointSet{Pt(0, 0), Pt(1, 1), Pt(0, 0), Pt(1, 1)})
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = Triangulate(PointSet{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestTriangulateFeedsMorph(t *testing.T) {
	img := gradient(32, 32)
	points := PointSet{Pt(0, 0), Pt(31, 0), Pt(31, 31), Pt(0, 31), Pt(12, 18)}

	triangles, err := Triangulate(points)
	require.NoError(t, err)
	_, err = Morph(img, img, points, points, triangles, 0.5)
	assert.NoError(t, err)
}
