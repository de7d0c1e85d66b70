package landmark

import (
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/esimov/morph"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// Facial landmark cascades, in the order their points are emitted. Every eye
// cascade is run twice, once per side.
var (
	eyeCascades   = []string{"lp46", "lp44", "lp42", "lp38", "lp312"}
	mouthCascades = []string{"lp93", "lp84", "lp82", "lp81"}
)

// perturb is the number of perturbations used by the pupil and landmark
// localisation.
const perturb = 63

// Pigo detects a face with the pigo cascades and localises the pupils and
// the facial landmark points around eyes, nose and mouth.
type Pigo struct {
	MinSize      int
	MaxSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	// MinQuality is the detection score below which faces are ignored.
	MinQuality float32

	face   *pigo.Pigo
	puploc *pigo.PuplocCascade
	flpcs  map[string][]*pigo.FlpCascade
}

// NewPigo loads the cascades from dir, which must contain the facefinder and
// puploc files and the lps directory of landmark cascades.
func NewPigo(dir string) (*Pigo, error) {
	faceData, err := readCascade(filepath.Join(dir, "facefinder"))
	if err != nil {
		return nil, err
	}
	face, err := pigo.NewPigo().Unpack(faceData)
	if err != nil {
		return nil, errors.Wrap(err, "unpacking face cascade")
	}

	pupData, err := readCascade(filepath.Join(dir, "puploc"))
	if err != nil {
		return nil, err
	}
	plc := pigo.NewPuplocCascade()
	puploc, err := plc.UnpackCascade(pupData)
	if err != nil {
		return nil, errors.Wrap(err, "unpacking pupil cascade")
	}

	lps := filepath.Join(dir, "lps")
	if _, err := os.Stat(lps); err != nil {
		return nil, errors.Wrapf(morph.ErrMissingInput, "%s", lps)
	}
	flpcs, err := puploc.ReadCascadeDir(lps)
	if err != nil {
		return nil, errors.Wrap(err, "reading landmark cascades")
	}
	for _, name := range append(append([]string{}, eyeCascades...), mouthCascades...) {
		if len(flpcs[name]) == 0 {
			return nil, errors.Wrapf(morph.ErrMissingInput, "landmark cascade %s", name)
		}
	}

	return &Pigo{
		MinSize:      20,
		MaxSize:      1000,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   5,
		face:         face,
		puploc:       puploc,
		flpcs:        flpcs,
	}, nil
}

// Landmarks implements Provider. The points of the best scoring face are
// returned: left and right pupil, both sides of every eye cascade, the mouth
// cascades and the mirrored mouth corner.
func (p *Pigo) Landmarks(img image.Image) (morph.PointSet, error) {
	src := morph.ImgToNRGBA(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()

	params := pigo.ImageParams{
		Pixels: morph.Grayscale(src),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}
	dets := p.face.RunCascade(pigo.CascadeParams{
		MinSize:     p.MinSize,
		MaxSize:     p.MaxSize,
		ShiftFactor: p.ShiftFactor,
		ScaleFactor: p.ScaleFactor,
		ImageParams: params,
	}, 0.0)
	dets = p.face.ClusterDetections(dets, p.IoUThreshold)

	sort.SliceStable(dets, func(i, j int) bool { return dets[i].Q > dets[j].Q })
	if len(dets) == 0 || dets[0].Q < p.MinQuality {
		return nil, morph.ErrNoFace
	}
	det := dets[0]
	scale := float32(det.Scale)

	leftEye := p.puploc.RunDetector(pigo.Puploc{
		Row:      det.Row - int(0.075*scale),
		Col:      det.Col - int(0.175*scale),
		Scale:    scale * 0.25,
		Perturbs: perturb,
	}, params, 0.0, false)
	rightEye := p.puploc.RunDetector(pigo.Puploc{
		Row:      det.Row - int(0.075*scale),
		Col:      det.Col + int(0.185*scale),
		Scale:    scale * 0.25,
		Perturbs: perturb,
	}, params, 0.0, false)

	left, err := pupilPoint(leftEye, "left pupil")
	if err != nil {
		return nil, err
	}
	right, err := pupilPoint(rightEye, "right pupil")
	if err != nil {
		return nil, err
	}
	points := morph.PointSet{left, right}

	add := func(name string, flipV bool) error {
		for _, flpc := range p.flpcs[name] {
			pt, err := pupilPoint(flpc.GetLandmarkPoint(leftEye, rightEye, params, perturb, flipV), name)
			if err != nil {
				return err
			}
			points = append(points, pt)
		}
		return nil
	}
	for _, name := range eyeCascades {
		if err := add(name, false); err != nil {
			return nil, err
		}
		if err := add(name, true); err != nil {
			return nil, err
		}
	}
	for _, name := range mouthCascades {
		if err := add(name, false); err != nil {
			return nil, err
		}
	}
	if err := add("lp84", true); err != nil {
		return nil, err
	}
	return points, nil
}

// pupilPoint converts a localised point. A missing or off-image point means
// the landmark was not found, which would break the point correspondence.
func pupilPoint(p *pigo.Puploc, name string) (morph.Point, error) {
	if p == nil || p.Row <= 0 || p.Col <= 0 {
		return morph.Point{}, errors.Wrapf(morph.ErrNoFace, "landmark %s not found", name)
	}
	return morph.Pt(p.Col, p.Row), nil
}

func readCascade(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(morph.ErrMissingInput, "%s", path)
	}
	return data, err
}
