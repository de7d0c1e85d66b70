package morph

import (
	"image"
	"log"
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Morpher holds the options of the morphing process.
type Morpher struct {
	// Workers is the number of goroutines computing triangle patches.
	// Values below 2 process the triangles sequentially. The result does not
	// depend on the number of workers.
	Workers int
	// Antialias enables fractional coverage on triangle edges.
	Antialias bool
	// Logger receives a line for every skipped triangle. Nil disables logging.
	Logger *log.Logger
	// OnDegenerate, if set, is called for every triangle skipped because its
	// vertices are collinear.
	OnDegenerate func(t TriangleIndex, err error)

	mu sync.Mutex
}

// NewMorpher returns a sequential, antialiased Morpher.
func NewMorpher() *Morpher {
	return &Morpher{
		Workers:   1,
		Antialias: true,
	}
}

// Morph blends imgA and imgB with the default options.
func Morph(imgA, imgB image.Image, pointsA, pointsB PointSet, triangles []TriangleIndex, alpha float64) (*Image, error) {
	return NewMorpher().Morph(imgA, imgB, pointsA, pointsB, triangles, alpha)
}

type job struct {
	idx              TriangleIndex
	triA, triB, triO Triangle
}

// Morph warps every triangle of pointsA in imgA and of pointsB in imgB onto
// the intermediate point set for alpha, blends them and returns the
// accumulated image. Both images must have the same size and both point sets
// the same length. All triangle indices are validated before any pixel is
// written. Degenerate triangles are skipped and reported.
func (m *Morpher) Morph(imgA, imgB image.Image, pointsA, pointsB PointSet, triangles []TriangleIndex, alpha float64) (*Image, error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return nil, errors.Wrapf(ErrInvalidAlpha, "got %v", alpha)
	}
	if sa, sb := imgA.Bounds().Size(), imgB.Bounds().Size(); sa != sb {
		return nil, errors.Wrapf(ErrShapeMismatch, "images are %v and %v", sa, sb)
	}
	pointsOut, err := BlendPoints(pointsA, pointsB, alpha)
	if err != nil {
		return nil, err
	}

	jobs := make([]job, len(triangles))
	for i, t := range triangles {
		j := job{idx: t}
		if j.triA, err = pointsA.Triangle(t); err != nil {
			return nil, err
		}
		if j.triB, err = pointsB.Triangle(t); err != nil {
			return nil, err
		}
		if j.triO, err = pointsOut.Triangle(t); err != nil {
			return nil, err
		}
		jobs[i] = j
	}

	a, b := asImage(imgA), asImage(imgB)
	out := NewImage(a.Rect)

	if m.Workers < 2 {
		for _, j := range jobs {
			p, err := m.patch(a, b, j, alpha)
			if err != nil {
				return nil, err
			}
			if p != nil {
				p.Composite(out)
			}
		}
		return out, nil
	}

	patches, err := m.patches(a, b, jobs, alpha)
	if err != nil {
		return nil, err
	}
	// Compositing stays sequential and in input order, so overlapping edge
	// pixels resolve exactly as in the single worker case.
	for _, p := range patches {
		if p != nil {
			p.Composite(out)
		}
	}
	return out, nil
}

// patches computes the patch of every job on m.Workers goroutines.
func (m *Morpher) patches(a, b *Image, jobs []job, alpha float64) ([]*Patch, error) {
	var (
		wg      sync.WaitGroup
		patches = make([]*Patch, len(jobs))
		errs    = make([]error, len(jobs))
		queue   = make(chan int)
	)

	for w := 0; w < m.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				patches[i], errs[i] = m.patch(a, b, jobs[i], alpha)
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return patches, nil
}

// patch returns the blended patch of one job, or nil if the triangle is
// degenerate.
func (m *Morpher) patch(a, b *Image, j job, alpha float64) (*Patch, error) {
	p, err := NewPatch(a, b, j.triA, j.triB, j.triO, alpha, m.Antialias)
	if errors.Is(err, ErrDegenerateTriangle) {
		m.skip(j.idx, err)
		return nil, nil
	}
	return p, err
}

func (m *Morpher) skip(t TriangleIndex, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Logger != nil {
		m.Logger.Printf("skipping triangle %v: %v", t, err)
	}
	if m.OnDegenerate != nil {
		m.OnDegenerate(t, err)
	}
}

// asImage returns img as a float Image with min-point at (0, 0), converting
// it when needed.
func asImage(img image.Image) *Image {
	if m, ok := img.(*Image); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	return FromImage(img)
}
