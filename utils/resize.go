package utils

import (
	"image"

	"golang.org/x/image/draw"
)

// ResizeTo scales src to the given size with a Catmull-Rom filter. The source
// is returned unchanged when it already has that size.
func ResizeTo(src image.Image, size image.Point) image.Image {
	if src.Bounds().Size() == size {
		return src
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
