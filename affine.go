package morph

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// degenerateEps is the smallest doubled triangle area (or affine determinant)
// accepted as non-collinear.
const degenerateEps = 1e-9

// Affine is a 2x3 affine matrix in row major order:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
type Affine [6]float64

// Identity is the affine transform that maps every point onto itself.
var Identity = Affine{1, 0, 0, 0, 1, 0}

// GetAffineTransform returns the affine transform mapping the three vertices
// of src exactly onto the vertices of dst.
func GetAffineTransform(src, dst Triangle) (Affine, error) {
	var m Affine
	if math.Abs(src.signedArea2()) < degenerateEps {
		return m, errors.Wrapf(ErrDegenerateTriangle, "source triangle %v", src)
	}
	if math.Abs(dst.signedArea2()) < degenerateEps {
		return m, errors.Wrapf(ErrDegenerateTriangle, "destination triangle %v", dst)
	}

	a := mat.NewDense(3, 3, []float64{
		src[0].X, src[0].Y, 1,
		src[1].X, src[1].Y, 1,
		src[2].X, src[2].Y, 1,
	})
	b := mat.NewDense(3, 2, []float64{
		dst[0].X, dst[0].Y,
		dst[1].X, dst[1].Y,
		dst[2].X, dst[2].Y,
	})

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return m, errors.Wrapf(ErrDegenerateTriangle, "solving %v -> %v: %v", src, dst, err)
	}
	// Column 0 holds the coefficients of x', column 1 those of y'.
	m = Affine{
		x.At(0, 0), x.At(1, 0), x.At(2, 0),
		x.At(0, 1), x.At(1, 1), x.At(2, 1),
	}
	return m, nil
}

// Apply maps p through the transform.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// Invert returns the inverse transform.
func (m Affine) Invert() (Affine, error) {
	var inv Affine
	if math.Abs(m[0]*m[4]-m[1]*m[3]) < degenerateEps {
		return inv, errors.Wrapf(ErrDegenerateTriangle, "affine %v is not invertible", m)
	}

	h := mat.NewDense(3, 3, []float64{
		m[0], m[1], m[2],
		m[3], m[4], m[5],
		0, 0, 1,
	})
	var d mat.Dense
	if err := d.Inverse(h); err != nil {
		return inv, errors.Wrapf(ErrDegenerateTriangle, "inverting %v: %v", m, err)
	}
	inv = Affine{
		d.At(0, 0), d.At(0, 1), d.At(0, 2),
		d.At(1, 0), d.At(1, 1), d.At(1, 2),
	}
	return inv, nil
}

// WarpAffine resamples src through m into a new w×h image. Every destination
// pixel is mapped back into src with the inverse of m and bilinearly
// interpolated; coordinates outside src are reflected across its border
// (gfedcb|abcdefgh|gfedcba). Coordinates are relative to src.Rect.Min.
func WarpAffine(src *Image, m Affine, w, h int) (*Image, error) {
	inv, err := m.Invert()
	if err != nil {
		return nil, err
	}
	dst := NewImage(image.Rect(0, 0, w, h))
	if src.Rect.Empty() {
		return dst, nil
	}

	for y := 0; y < h; y++ {
		fy := float64(y)
		di := y * dst.Stride
		for x := 0; x < w; x++ {
			fx := float64(x)
			sx := inv[0]*fx + inv[1]*fy + inv[2]
			sy := inv[3]*fx + inv[4]*fy + inv[5]
			src.bilinear(sx, sy, dst.Pix[di:di+4:di+4])
			di += 4
		}
	}
	return dst, nil
}

// WarpTriangle warps src so that srcTri lands on dstTri, producing a w×h patch.
// Both triangles are expressed in the local coordinates of their rectangles.
func WarpTriangle(src *Image, srcTri, dstTri Triangle, w, h int) (*Image, error) {
	m, err := GetAffineTransform(srcTri, dstTri)
	if err != nil {
		return nil, err
	}
	return WarpAffine(src, m, w, h)
}

// bilinear samples the image at the local coordinate (x, y) and stores the
// four channels into out.
func (m *Image) bilinear(x, y float64, out []float32) {
	w, h := m.Rect.Dx(), m.Rect.Dy()

	x0f, y0f := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0f), float32(y-y0f)
	x0, y0 := int(x0f), int(y0f)

	xa, xb := reflect101(x0, w)*4, reflect101(x0+1, w)*4
	ya, yb := reflect101(y0, h)*m.Stride, reflect101(y0+1, h)*m.Stride

	for c := 0; c < 4; c++ {
		top := m.Pix[ya+xa+c]*(1-fx) + m.Pix[ya+xb+c]*fx
		bot := m.Pix[yb+xa+c]*(1-fx) + m.Pix[yb+xb+c]*fx
		out[c] = top*(1-fy) + bot*fy
	}
}

// reflect101 maps any index onto [0, n) by mirroring across the borders
// without repeating the edge pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i >= 0 && i < n {
		return i
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
