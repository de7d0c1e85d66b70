package morph

import (
	"image"
	"testing"
)

func benchInput(b *testing.B) (image.Image, image.Image, PointSet, PointSet, []TriangleIndex) {
	img := gradient(640, 480)
	w, h := float64(img.Bounds().Dx()-1), float64(img.Bounds().Dy()-1)

	pointsA := PointSet{{0, 0}, {w, 0}, {w, h}, {0, h}}
	pointsB := PointSet{{0, 0}, {w, 0}, {w, h}, {0, h}}
	for i := 1; i < 8; i++ {
		for j := 1; j < 8; j++ {
			x, y := w*float64(i)/8, h*float64(j)/8
			pointsA = append(pointsA, Point{x, y})
			pointsB = append(pointsB, Point{x + float64(i%3) - 1, y + float64(j%3) - 1})
		}
	}
	triangles, err := Triangulate(pointsA)
	if err != nil {
		b.Fatalf("Failed triangulating benchmark points: %v", err)
	}
	return img, img, pointsA, pointsB, triangles
}

func BenchmarkMorph(b *testing.B) {
	imgA, imgB, pointsA, pointsB, triangles := benchInput(b)
	m := NewMorpher()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Morph(imgA, imgB, pointsA, pointsB, triangles, 0.5); err != nil {
			b.Fatalf("Failed morphing benchmark image: %v", err)
		}
	}
}

func BenchmarkMorphParallel(b *testing.B) {
	imgA, imgB, pointsA, pointsB, triangles := benchInput(b)
	m := NewMorpher()
	m.Workers = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Morph(imgA, imgB, pointsA, pointsB, triangles, 0.5); err != nil {
			b.Fatalf("Failed morphing benchmark image: %v", err)
		}
	}
}
