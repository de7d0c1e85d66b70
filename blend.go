package morph

import (
	"image"
)

// Patch is the blended content of one output triangle, ready to be
// composited into the output image.
type Patch struct {
	// Rect is the bounding rectangle of the output triangle, in output
	// image coordinates.
	Rect image.Rectangle
	// Image holds the blended pixels, with min-point at (0, 0).
	Image *Image
	// Mask is the coverage of the output triangle inside Rect.
	Mask *Mask
}

// BlendTriangle warps triA from imgA and triB from imgB onto triOut, blends
// the two warped patches with alpha and composites the triangle into out.
// Only the bounding rectangle of triOut is modified. A collinear triangle
// returns ErrDegenerateTriangle and leaves out untouched.
func BlendTriangle(imgA, imgB, out *Image, triA, triB, triOut Triangle, alpha float64, antialias bool) error {
	p, err := NewPatch(imgA, imgB, triA, triB, triOut, alpha, antialias)
	if err != nil {
		return err
	}
	p.Composite(out)
	return nil
}

// NewPatch computes the blended patch of one triangle correspondence without
// touching any output image.
func NewPatch(imgA, imgB *Image, triA, triB, triOut Triangle, alpha float64, antialias bool) (*Patch, error) {
	rectA := BoundingRect(triA)
	rectB := BoundingRect(triB)
	rectOut := BoundingRect(triOut)

	// The sub-images are clamped to the source bounds; local coordinates are
	// taken from the clamped origin so they still address the same pixels.
	subA := imgA.SubImage(rectA)
	subB := imgB.SubImage(rectB)

	localA := ToLocal(triA, subA.Rect)
	localB := ToLocal(triB, subB.Rect)
	localOut := ToLocal(triOut, rectOut)

	w, h := rectOut.Dx(), rectOut.Dy()
	p1, err := WarpTriangle(subA, localA, localOut, w, h)
	if err != nil {
		return nil, err
	}
	p2, err := WarpTriangle(subB, localB, localOut, w, h)
	if err != nil {
		return nil, err
	}

	// Blend in place into the first patch.
	a := float32(alpha)
	for i := range p1.Pix {
		p1.Pix[i] = (1-a)*p1.Pix[i] + a*p2.Pix[i]
	}

	return &Patch{
		Rect:  rectOut,
		Image: p1,
		Mask:  FillTriangleMask(localOut, w, h, antialias),
	}, nil
}

// Composite writes the patch into dst weighted by its mask:
// dst = dst*(1-mask) + patch*mask. Pixels with zero coverage are left as
// they are.
func (p *Patch) Composite(dst *Image) {
	r := p.Rect.Intersect(dst.Rect)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		ly := y - p.Rect.Min.Y
		for x := r.Min.X; x < r.Max.X; x++ {
			lx := x - p.Rect.Min.X
			k := p.Mask.At(lx, ly)
			if k == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			si := ly*p.Image.Stride + lx*4
			for c := 0; c < 4; c++ {
				dst.Pix[di+c] = dst.Pix[di+c]*(1-k) + p.Image.Pix[si+c]*k
			}
		}
	}
}
