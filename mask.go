package morph

import (
	"image"

	"github.com/fogleman/gg"
)

// Mask holds the per pixel coverage of a triangle inside its bounding
// rectangle, 1 inside and 0 outside.
type Mask struct {
	W, H int
	Cov  []float32
}

// At returns the coverage of the pixel at (x, y).
func (m *Mask) At(x, y int) float32 {
	return m.Cov[y*m.W+x]
}

// Sum returns the total coverage, an approximation of the triangle area.
func (m *Mask) Sum() float64 {
	var sum float64
	for _, c := range m.Cov {
		sum += float64(c)
	}
	return sum
}

// FillTriangleMask rasterizes t (in local coordinates) into a w×h mask.
// Vertices are taken as pixel centres. Every pixel whose centre lies inside
// the triangle or on its boundary is fully covered. With antialias set, the
// pixels just outside the boundary additionally get their fractional area
// coverage, so edges are feathered outwards and never thinned.
func FillTriangleMask(t Triangle, w, h int, antialias bool) *Mask {
	m := &Mask{W: w, H: h, Cov: make([]float32, w*h)}
	if w <= 0 || h <= 0 {
		return m
	}
	if antialias {
		fillCoverage(m, t)
	}
	fillCenters(m, t)
	return m
}

// fillCoverage fills the triangle path with gg and reads back the alpha
// channel as coverage.
func fillCoverage(m *Mask, t Triangle) {
	ctx := gg.NewContext(m.W, m.H)
	ctx.MoveTo(t[0].X+0.5, t[0].Y+0.5)
	ctx.LineTo(t[1].X+0.5, t[1].Y+0.5)
	ctx.LineTo(t[2].X+0.5, t[2].Y+0.5)
	ctx.ClosePath()
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Fill()

	img, ok := ctx.Image().(*image.RGBA)
	if !ok {
		return
	}
	for y := 0; y < m.H; y++ {
		si := img.PixOffset(0, y) + 3
		di := y * m.W
		for x := 0; x < m.W; x++ {
			m.Cov[di+x] = float32(img.Pix[si]) / 255
			si += 4
		}
	}
}

// fillCenters covers every pixel whose centre passes all three edge tests.
func fillCenters(m *Mask, t Triangle) {
	// Orient the triangle so that the inside is on the non-negative side of
	// every edge function.
	if t.signedArea2() < 0 {
		t[1], t[2] = t[2], t[1]
	}
	const eps = 1e-9

	r := BoundingRect(t).Intersect(image.Rect(0, 0, m.W, m.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		p := Pt(0, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p.X = float64(x)
			if orient(t[0], t[1], p) >= -eps &&
				orient(t[1], t[2], p) >= -eps &&
				orient(t[2], t[0], p) >= -eps {
				m.Cov[y*m.W+x] = 1
			}
		}
	}
}

// orient returns the doubled signed area of (a, b, p).
func orient(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
