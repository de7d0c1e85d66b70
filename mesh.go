package morph

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
)

// Mesh render modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Mesh renders a triangulation over an image, for inspecting landmark and
// triangle files.
type Mesh struct {
	Wireframe int
	LineWidth float64
	// IsSolid draws wireframe lines in black instead of the triangle colour.
	IsSolid bool
}

// Draw paints every triangle over src. Triangles are filled with the source
// colour found at their centroid and/or stroked depending on the wireframe
// mode.
func (m *Mesh) Draw(src image.Image, points PointSet, triangles []TriangleIndex) (*image.RGBA, error) {
	img := ImgToNRGBA(src)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	ctx := gg.NewContext(width, height)
	ctx.DrawImage(img, 0, 0)

	for _, idx := range triangles {
		t, err := points.Triangle(idx)
		if err != nil {
			return nil, err
		}
		p0, p1, p2 := t[0], t[1], t[2]

		ctx.Push()
		ctx.MoveTo(p0.X, p0.Y)
		ctx.LineTo(p1.X, p1.Y)
		ctx.LineTo(p2.X, p2.Y)
		ctx.LineTo(p0.X, p0.Y)

		cx := clamp(int((p0.X+p1.X+p2.X)/3), 0, width-1)
		cy := clamp(int((p0.Y+p1.Y+p2.Y)/3), 0, height-1)
		j := img.PixOffset(cx, cy)
		r, g, b := img.Pix[j], img.Pix[j+1], img.Pix[j+2]

		var lineColor color.RGBA
		if m.IsSolid {
			lineColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
		} else {
			lineColor = color.RGBA{R: r, G: g, B: b, A: 255}
		}

		switch m.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(color.RGBA{R: r, G: g, B: b, A: 255}))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(color.RGBA{R: r, G: g, B: b, A: 255}))
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(m.LineWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
			ctx.SetLineWidth(m.LineWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}

	out, ok := ctx.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected image type %T", ctx.Image())
	}
	return out, nil
}

// WriteSVG writes the triangulation as an SVG document of the given size,
// one polygon per triangle and one dot per landmark.
func (m *Mesh) WriteSVG(w io.Writer, width, height int, points PointSet, triangles []TriangleIndex) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Triangulation")

	stroke := fmt.Sprintf("fill:none;stroke:black;stroke-width:%.2f", Max(m.LineWidth, 0.5))
	for _, idx := range triangles {
		t, err := points.Triangle(idx)
		if err != nil {
			return err
		}
		xs := []int{int(t[0].X), int(t[1].X), int(t[2].X)}
		ys := []int{int(t[0].Y), int(t[1].Y), int(t[2].Y)}
		canvas.Polygon(xs, ys, stroke)
	}
	for _, p := range points {
		canvas.Circle(int(p.X), int(p.Y), 2, "fill:red")
	}
	canvas.End()
	return nil
}
