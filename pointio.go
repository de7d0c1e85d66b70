package morph

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// The interchange format is plain text with one record per line: points as
// "x y" and triangles as "i j k", integers separated by whitespace, without
// a header. Blank lines are ignored when reading.

// ReadPoints parses a point list.
func ReadPoints(r io.Reader) (PointSet, error) {
	var points PointSet
	err := scanRecords(r, 2, func(v []int) {
		points = append(points, Pt(v[0], v[1]))
	})
	return points, err
}

// WritePoints writes one "x y" line per point, rounding to integers.
func WritePoints(w io.Writer, points PointSet) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%d %d\n", int(math.Round(p.X)), int(math.Round(p.Y))); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTriangles parses a triangle index list.
func ReadTriangles(r io.Reader) ([]TriangleIndex, error) {
	var triangles []TriangleIndex
	err := scanRecords(r, 3, func(v []int) {
		triangles = append(triangles, TriangleIndex{v[0], v[1], v[2]})
	})
	return triangles, err
}

// WriteTriangles writes one "i j k" line per triangle.
func WriteTriangles(w io.Writer, triangles []TriangleIndex) error {
	bw := bufio.NewWriter(w)
	for _, t := range triangles {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", t[0], t[1], t[2]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadPoints reads a point file.
func LoadPoints(path string) (PointSet, error) {
	f, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := ReadPoints(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return points, nil
}

// LoadTriangles reads a triangle file.
func LoadTriangles(path string) ([]TriangleIndex, error) {
	f, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	triangles, err := ReadTriangles(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return triangles, nil
}

// SavePoints writes a point file, replacing any existing one.
func SavePoints(path string, points PointSet) error {
	return saveFile(path, func(w io.Writer) error {
		return WritePoints(w, points)
	})
}

// SaveTriangles writes a triangle file, replacing any existing one.
func SaveTriangles(path string, triangles []TriangleIndex) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteTriangles(w, triangles)
	})
}

// OpenInput opens path for reading. A path that does not exist is reported
// as ErrMissingInput.
func OpenInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrMissingInput, "%s", path)
	}
	return f, err
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

// scanRecords calls fn with the n integers of every non-blank line.
func scanRecords(r io.Reader, n int, fn func([]int)) error {
	scanner := bufio.NewScanner(r)
	values := make([]int, n)

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != n {
			return errors.Errorf("line %d: expected %d values, got %d", line, n, len(fields))
		}
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return errors.Errorf("line %d: invalid integer %q", line, f)
			}
			values[i] = v
		}
		fn(values)
	}
	return scanner.Err()
}
