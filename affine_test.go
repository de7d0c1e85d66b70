package morph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAffineTransform(t *testing.T) {
	src := Triangle{Pt(0, 0), Pt(10, 0), Pt(0, 10)}
	dst := Triangle{Pt(3, 4), Pt(23, 9), Pt(1, 30)}

	m, err := GetAffineTransform(src, dst)
	require.NoError(t, err)
	for i := range src {
		got := m.Apply(src[i])
		assert.InDelta(t, dst[i].X, got.X, 1e-9)
		assert.InDelta(t, dst[i].Y, got.Y, 1e-9)
	}

	inv, err := m.Invert()
	require.NoError(t, err)
	for i := range dst {
		got := inv.Apply(dst[i])
		assert.InDelta(t, src[i].X, got.X, 1e-9)
		assert.InDelta(t, src[i].Y, got.Y, 1e-9)
	}
}

func TestGetAffineTransformIdentity(t *testing.T) {
	tri := Triangle{Pt(1, 2), Pt(7, 3), Pt(4, 9)}
	m, err := GetAffineTransform(tri, tri)
	require.NoError(t, err)
	for i := range m {
		assert.InDelta(t, Identity[i], m[i], 1e-12)
	}
}

func TestGetAffineTransformDegenerate(t *testing.T) {
	line := Triangle{Pt(0, 0), Pt(2, 0), Pt(4, 0)}
	ok := Triangle{Pt(0, 0), Pt(4, 0), Pt(0, 4)}

	_, err := GetAffineTransform(line, ok)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
	_, err = GetAffineTransform(ok, line)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)

	_, err = Affine{1, 2, 0, 2, 4, 0}.Invert()
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
}

func TestReflect101(t *testing.T) {
	// gfedcb|abcdefgh|gfedcba
	n := 8
	expected := map[int]int{
		-7: 7, -6: 6, -1: 1, 0: 0, 3: 3, 7: 7, 8: 6, 9: 5, 14: 0, 15: 1, 21: 7, 22: 6,
	}
	for i, want := range expected {
		assert.Equal(t, want, reflect101(i, n), "index %d", i)
	}
	for i := -50; i < 50; i++ {
		got := reflect101(i, n)
		assert.True(t, got >= 0 && got < n)
	}
	assert.Equal(t, 0, reflect101(-3, 1))
	assert.Equal(t, 0, reflect101(5, 1))
}

func TestWarpAffineIdentity(t *testing.T) {
	src := FromImage(gradient(12, 9))
	out, err := WarpAffine(src, Identity, 12, 9)
	require.NoError(t, err)
	assert.Equal(t, src.Rect, out.Rect)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestWarpAffineTranslation(t *testing.T) {
	src := FromImage(gradient(10, 10))
	// Shift content right by 2 pixels: dst(x) = src(x-2).
	out, err := WarpAffine(src, Affine{1, 0, 2, 0, 1, 0}, 10, 10)
	require.NoError(t, err)

	for y := 0; y < 10; y++ {
		for x := 2; x < 10; x++ {
			assert.Equal(t, src.At(x-2, y), out.At(x, y))
		}
		// Columns 0 and 1 sample x=-2 and x=-1, reflected onto 2 and 1.
		assert.Equal(t, src.At(2, y), out.At(0, y))
		assert.Equal(t, src.At(1, y), out.At(1, y))
	}
}

func TestWarpAffineBilinear(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})
	src := FromImage(img)

	// Half a pixel shift samples halfway between the two pixels.
	out, err := WarpAffine(src, Affine{1, 0, -0.5, 0, 1, 0}, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 100, out.Pix[0], 1e-4)
	assert.InDelta(t, 255, out.Pix[3], 1e-4)
}

func TestWarpAffineOutputSize(t *testing.T) {
	src := FromImage(gradient(5, 5))
	m, err := GetAffineTransform(
		Triangle{Pt(0, 0), Pt(4, 0), Pt(0, 4)},
		Triangle{Pt(0, 0), Pt(20, 3), Pt(2, 17)},
	)
	require.NoError(t, err)

	out, err := WarpAffine(src, m, 21, 18)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 21, 18), out.Rect)
	assert.Len(t, out.Pix, 21*18*4)
	// Every sample comes from an opaque source, reflected or not.
	for i := 3; i < len(out.Pix); i += 4 {
		assert.InDelta(t, 255, out.Pix[i], 1e-3)
	}
}

func TestWarpTriangleRoundTrip(t *testing.T) {
	src := FromImage(gradient(16, 16))
	tri := Triangle{Pt(1, 1), Pt(14, 2), Pt(3, 13)}
	r := BoundingRect(tri)
	sub := src.SubImage(r)
	local := ToLocal(tri, r)

	patch, err := WarpTriangle(sub, local, local, r.Dx(), r.Dy())
	require.NoError(t, err)

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			si := sub.PixOffset(r.Min.X+x, r.Min.Y+y)
			di := patch.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				assert.InDelta(t, sub.Pix[si+c], patch.Pix[di+c], 0.01)
			}
		}
	}
}

// gradient returns an opaque image whose every pixel is distinct.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x*7 + y*13) % 256),
				A: 255,
			})
		}
	}
	return img
}

// solid returns an image filled with c.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}
