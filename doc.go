/*
Package morph blends two face images into an intermediate face using a
shared triangulation of corresponding landmark points.

Every triangle of the first image and its counterpart in the second image are
warped with an affine transform onto the triangle of the blended point set,
mixed with the alpha factor and composited into the output through an
(optionally antialiased) triangle mask.

The package also ships the collaborators needed around the core: a Delaunay
triangulator returning index triples, readers and writers for the plain text
point and triangle files, and a mesh renderer. Facial landmarks are provided
by the landmark subpackage.

Example morphing two images with precomputed landmarks:

	package main

	import (
		"fmt"
		"github.com/esimov/morph"
	)

	func main() {
		pointsA, _ := morph.LoadPoints("a_points.txt")
		pointsB, _ := morph.LoadPoints("b_points.txt")
		triangles, _ := morph.LoadTriangles("triangles.txt")

		m := morph.NewMorpher()
		m.Workers = 4

		out, err := m.Morph(imgA, imgB, pointsA, pointsB, triangles, 0.5)
		if err != nil {
			fmt.Printf("Error on morphing process: %s", err.Error())
		}
		_ = out.RGBA()
	}

Example computing the triangulation of a point set:

	triangles, err := morph.Triangulate(pointsA)
	if err != nil {
		fmt.Printf("Error on triangulation process: %s", err.Error())
	}
*/
package morph
