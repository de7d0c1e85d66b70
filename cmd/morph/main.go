package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/morph"
	"github.com/esimov/morph/landmark"
	"github.com/esimov/morph/utils"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const helpBanner = `
Usage: morph -a face1.jpg -b face2.jpg -pa a_points.txt -pb b_points.txt -tri triangles.txt -out morph.png
       morph -a face1.jpg -b face2.jpg -cascades ./cascade -save ./data -out morph.png
`

var (
	// Flags
	sourceA      = flag.String("a", "", "First face image (path or URL)")
	sourceB      = flag.String("b", "", "Second face image (path or URL)")
	destination  = flag.String("out", "", "Destination image (.png or .jpg)")
	pointsA      = flag.String("pa", "", "Landmark file of the first image")
	pointsB      = flag.String("pb", "", "Landmark file of the second image")
	triangleFile = flag.String("tri", "", "Triangle file (computed from the first point set if empty)")
	cascadeDir   = flag.String("cascades", "", "Pigo cascade directory used to detect landmarks")
	saveDir      = flag.String("save", "", "Directory where detected points and triangles are saved")
	margin       = flag.Int("margin", landmark.DefaultMargin, "Margin of the synthetic background points")
	alpha        = flag.Float64("alpha", 0.5, "Blend factor towards the second image (0..1)")
	workers      = flag.Int("workers", 1, "Number of workers computing triangles")
	antialias    = flag.Bool("aa", true, "Antialias triangle edges")
	resize       = flag.Bool("resize", true, "Resize the second image to the size of the first one")
	meshFile     = flag.String("mesh", "", "Write the blended triangulation as .svg or .png")
	lineWidth    = flag.Float64("width", 1, "Mesh line width")
	preview      = flag.Bool("preview", false, "Show the result inline in the terminal")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*sourceA) == 0 || len(*sourceB) == 0 || len(*destination) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	imgA, err := loadImage(*sourceA)
	if err != nil {
		log.Fatalf("Unable to open source: %v", err)
	}
	imgB, err := loadImage(*sourceB)
	if err != nil {
		log.Fatalf("Unable to open source: %v", err)
	}
	if *resize {
		imgB = utils.ResizeTo(imgB, imgA.Bounds().Size())
	}

	pa, pb, triangles, err := correspondence(imgA, imgB)
	if err != nil {
		log.Fatalf("Unable to build the point correspondence: %v", err)
	}

	m := morph.NewMorpher()
	m.Workers = *workers
	m.Antialias = *antialias
	m.Logger = log.New(os.Stderr, "morph: ", 0)

	s := utils.NewSpinner()
	s.Start("Morphing faces...")
	start := time.Now()
	out, err := m.Morph(imgA, imgB, pa, pb, triangles, *alpha)
	s.Stop()
	if err != nil {
		log.Fatalf("Error morphing images: %v", err)
	}

	if err := saveImage(*destination, out.RGBA()); err != nil {
		log.Fatalf("Unable to save the output: %v", err)
	}
	if len(*meshFile) > 0 {
		if err := saveMesh(*meshFile, out, pa, pb, triangles); err != nil {
			log.Fatalf("Unable to save the mesh: %v", err)
		}
	}

	fmt.Fprintln(os.Stderr, utils.Success("Morphed %d triangles out of %d points in %s",
		len(triangles), len(pa), utils.FormatTime(time.Since(start))))
	fmt.Fprintln(os.Stderr, utils.Success("Saved as: %s ✓", filepath.Base(*destination)))

	if *preview && utils.IsTerminal(os.Stdout) {
		imgcat.CatFile(*destination, os.Stdout)
	}
}

// correspondence returns the two point sets and their shared triangulation,
// either read from files or detected on the images.
func correspondence(imgA, imgB image.Image) (morph.PointSet, morph.PointSet, []morph.TriangleIndex, error) {
	var (
		pa, pb morph.PointSet
		err    error
	)

	switch {
	case len(*pointsA) > 0 && len(*pointsB) > 0:
		if pa, err = morph.LoadPoints(*pointsA); err != nil {
			return nil, nil, nil, err
		}
		if pb, err = morph.LoadPoints(*pointsB); err != nil {
			return nil, nil, nil, err
		}
	case len(*cascadeDir) > 0:
		detector, err := landmark.NewPigo(*cascadeDir)
		if err != nil {
			return nil, nil, nil, err
		}
		provider := landmark.WithBackground(detector, *margin)
		if pa, err = provider.Landmarks(imgA); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "%s", *sourceA)
		}
		if pb, err = provider.Landmarks(imgB); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "%s", *sourceB)
		}
	default:
		return nil, nil, nil, errors.New("either -pa and -pb or -cascades is required")
	}

	var triangles []morph.TriangleIndex
	if len(*triangleFile) > 0 {
		triangles, err = morph.LoadTriangles(*triangleFile)
	} else {
		triangles, err = morph.Triangulate(pa)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if len(*saveDir) > 0 {
		if err := os.MkdirAll(*saveDir, 0o755); err != nil {
			return nil, nil, nil, err
		}
		if err := morph.SavePoints(filepath.Join(*saveDir, "a_points.txt"), pa); err != nil {
			return nil, nil, nil, err
		}
		if err := morph.SavePoints(filepath.Join(*saveDir, "b_points.txt"), pb); err != nil {
			return nil, nil, nil, err
		}
		if err := morph.SaveTriangles(filepath.Join(*saveDir, "triangles.txt"), triangles); err != nil {
			return nil, nil, nil, err
		}
	}
	return pa, pb, triangles, nil
}

// loadImage decodes the image found at a local path or an http(s) URL.
func loadImage(src string) (image.Image, error) {
	var (
		file *os.File
		err  error
	)
	if utils.IsURL(src) {
		if file, err = utils.DownloadImage(src); err != nil {
			return nil, err
		}
		defer os.Remove(file.Name())
	} else if file, err = morph.OpenInput(src); err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", src)
	}
	return img, nil
}

func saveImage(path string, img image.Image) error {
	return writeFile(path, func(w io.Writer) error {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		default:
			return png.Encode(w, img)
		}
	})
}

func saveMesh(path string, out *morph.Image, pa, pb morph.PointSet, triangles []morph.TriangleIndex) error {
	points, err := morph.BlendPoints(pa, pb, *alpha)
	if err != nil {
		return err
	}
	mesh := &morph.Mesh{Wireframe: morph.WireframeOnly, LineWidth: *lineWidth, IsSolid: true}

	if strings.ToLower(filepath.Ext(path)) == ".svg" {
		b := out.Bounds()
		return writeFile(path, func(w io.Writer) error {
			return mesh.WriteSVG(w, b.Dx(), b.Dy(), points, triangles)
		})
	}
	img, err := mesh.Draw(out.RGBA(), points, triangles)
	if err != nil {
		return err
	}
	return saveImage(path, img)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
