package morph

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Image is a float32 RGBA raster with premultiplied alpha and channel values
// in [0, 255]. It is the working buffer of the morph: sources are converted
// to it once and the result is accumulated in it.
type Image struct {
	// Pix holds the pixels in R, G, B, A order. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix    []float32
	Stride int
	Rect   image.Rectangle
}

// NewImage returns a zero (transparent black) image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	return &Image{
		Pix:    make([]float32, 4*w*h),
		Stride: 4 * w,
		Rect:   r,
	}
}

// FromImage converts any image into a float Image with min-point at (0, 0).
func FromImage(img image.Image) *Image {
	src := ImgToNRGBA(img)
	dst := NewImage(src.Bounds())

	for i := 0; i < len(src.Pix); i += 4 {
		a := float32(src.Pix[i+3])
		k := a / 255
		dst.Pix[i+0] = float32(src.Pix[i+0]) * k
		dst.Pix[i+1] = float32(src.Pix[i+1]) * k
		dst.Pix[i+2] = float32(src.Pix[i+2]) * k
		dst.Pix[i+3] = a
	}
	return dst
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBA64Model }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return m.Rect }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return color.RGBA64{}
	}
	i := m.PixOffset(x, y)
	s := m.Pix[i : i+4 : i+4]
	return color.RGBA64{
		R: to16(s[0]),
		G: to16(s[1]),
		B: to16(s[2]),
		A: to16(s[3]),
	}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (m *Image) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*4
}

// SubImage returns the part of m visible through r, clamped to m's bounds.
// The returned image shares pixels with m.
func (m *Image) SubImage(r image.Rectangle) *Image {
	r = r.Intersect(m.Rect)
	if r.Empty() {
		return &Image{Rect: r}
	}
	i := m.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    m.Pix[i:],
		Stride: m.Stride,
		Rect:   r,
	}
}

// RGBA returns an 8-bit copy of the image with min-point at (0, 0).
func (m *Image) RGBA() *image.RGBA {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		si := y * m.Stride
		di := y * dst.Stride
		for x := 0; x < w*4; x++ {
			dst.Pix[di+x] = to8(m.Pix[si+x])
		}
	}
	return dst
}

func to8(v float32) uint8 {
	return uint8(clamp(math.Floor(float64(v)+0.5), 0, 255))
}

func to16(v float32) uint16 {
	return uint16(clamp(math.Floor(float64(v)*257+0.5), 0, 0xffff))
}

// Grayscale returns the luminance of every pixel, row by row.
func Grayscale(src *image.NRGBA) []uint8 {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, dx*dy)

	for y := 0; y < dy; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		for x := 0; x < dx; x++ {
			r, g, b := src.Pix[si], src.Pix[si+1], src.Pix[si+2]
			lum := float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114
			gray[y*dx+x] = uint8(lum + 0.5)
			si += 4
		}
	}
	return gray
}

// ImgToNRGBA returns img as *image.NRGBA with min-point at (0, 0). An
// *image.NRGBA already anchored at the origin is returned as is, anything
// else is copied.
func ImgToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return src
	}
	dst := image.NewNRGBA(b.Sub(b.Min))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
