// Package landmark supplies the ordered point sets consumed by the morph.
// Facial landmarks come first, followed by a fixed list of synthetic
// background points, so that the sets produced for two images stay index
// aligned and have the same length.
package landmark

import (
	"image"

	"github.com/esimov/morph"
)

// DefaultMargin is the distance of the background points from the image edges.
const DefaultMargin = 10

// Provider returns the landmarks of an image in a stable order.
type Provider interface {
	Landmarks(img image.Image) (morph.PointSet, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(img image.Image) (morph.PointSet, error)

// Landmarks calls f(img).
func (f ProviderFunc) Landmarks(img image.Image) (morph.PointSet, error) {
	return f(img)
}

// Background returns the synthetic points covering the area around the face
// in a w×h image, in this order: eight border points (top left, top middle,
// top right, middle left, middle right, bottom left, bottom middle, bottom
// right), three points over the hair and three points over the neck and
// shoulders.
func Background(w, h, margin int) morph.PointSet {
	return morph.PointSet{
		// border
		morph.Pt(margin, margin), morph.Pt(w/2, margin), morph.Pt(w-margin, margin),
		morph.Pt(margin, h/2), morph.Pt(w-margin, h/2),
		morph.Pt(margin, h-margin), morph.Pt(w/2, h-margin), morph.Pt(w-margin, h-margin),
		// hair
		morph.Pt(w/2, margin*3), morph.Pt(w/4, margin*3), morph.Pt(3*w/4, margin*3),
		// neck and shoulders
		morph.Pt(w/2, h-margin*3), morph.Pt(w/4, h-margin*2), morph.Pt(3*w/4, h-margin*2),
	}
}

// WithBackground appends Background to the points returned by p.
func WithBackground(p Provider, margin int) Provider {
	return ProviderFunc(func(img image.Image) (morph.PointSet, error) {
		points, err := p.Landmarks(img)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		return append(points, Background(b.Dx(), b.Dy(), margin)...), nil
	})
}

// File returns a provider reading precomputed landmarks from a point file.
// The image is ignored.
func File(path string) Provider {
	return ProviderFunc(func(image.Image) (morph.PointSet, error) {
		return morph.LoadPoints(path)
	})
}
