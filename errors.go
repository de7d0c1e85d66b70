package morph

import "github.com/pkg/errors"

// Error kinds returned by the package. They are wrapped with context, use
// errors.Is (or errors.Cause) to test for them.
var (
	// ErrMissingInput means a file or image path does not resolve.
	ErrMissingInput = errors.New("missing input")
	// ErrShapeMismatch means point sets or images do not have the same size.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrIndexOutOfRange means a triangle references a point that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDegenerateTriangle means the triangle vertices are collinear and no
	// affine transform can be computed. Morph skips such triangles.
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrInvalidAlpha means the blend factor is outside [0, 1].
	ErrInvalidAlpha = errors.New("alpha must be in [0, 1]")
	// ErrTooFewPoints means there are not enough distinct points to triangulate.
	ErrTooFewPoints = errors.New("at least 3 distinct points are required")
	// ErrNoFace means the landmark detector found no face in the image.
	ErrNoFace = errors.New("no face detected")
)
