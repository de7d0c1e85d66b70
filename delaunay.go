package morph

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Vertices of the super triangle carry negative ids so that they never
// collide with point indices.
const (
	superA = -1 - iota
	superB
	superC
)

type node struct {
	Point
	id int
}

type edge struct {
	a, b node
}

// key identifies the edge regardless of its direction.
func (e edge) key() [2]int {
	if e.a.id < e.b.id {
		return [2]int{e.a.id, e.b.id}
	}
	return [2]int{e.b.id, e.a.id}
}

// circle is a circumcircle; radius holds the squared radius.
type circle struct {
	x, y, radius float64
}

type delTriangle struct {
	nodes  [3]node
	circle circle
}

func newTriangle(p0, p1, p2 node) delTriangle {
	t := delTriangle{nodes: [3]node{p0, p1, p2}}

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	d := 2 * (ax*by - ay*bx)
	if math.Abs(d) < 1e-12 {
		// Collinear vertices have no circumcircle. Nothing is ever inside,
		// and Indices drops the zero area triangle.
		t.circle = circle{x: p0.X, y: p0.Y, radius: -1}
		return t
	}
	m := ax*ax + ay*ay
	u := bx*bx + by*by
	cx := (by*m - ay*u) / d
	cy := (ax*u - bx*m) / d

	t.circle = circle{
		x:      p0.X + cx,
		y:      p0.Y + cy,
		radius: cx*cx + cy*cy,
	}
	return t
}

func (t delTriangle) edges() [3]edge {
	return [3]edge{
		{t.nodes[0], t.nodes[1]},
		{t.nodes[1], t.nodes[2]},
		{t.nodes[2], t.nodes[0]},
	}
}

// inCircle reports whether p lies strictly inside the circumcircle.
func (t delTriangle) inCircle(p Point) bool {
	dx := t.circle.x - p.X
	dy := t.circle.y - p.Y
	return dx*dx+dy*dy < t.circle.radius
}

// Delaunay builds a Delaunay triangulation incrementally (Bowyer-Watson),
// keeping the index of every inserted point.
type Delaunay struct {
	triangles []delTriangle
}

// Init resets the triangulation to a super triangle enclosing every point.
func (d *Delaunay) Init(points PointSet) *Delaunay {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	delta := math.Max(math.Max(maxX-minX, maxY-minY), 1)
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	d.triangles = []delTriangle{newTriangle(
		node{Point{midX - 20*delta, midY - delta}, superA},
		node{Point{midX, midY + 20*delta}, superB},
		node{Point{midX + 20*delta, midY - delta}, superC},
	)}
	return d
}

// Insert adds the point with the given index to the triangulation.
func (d *Delaunay) Insert(p Point, id int) *Delaunay {
	var (
		edges []edge
		temps []delTriangle
	)

	for _, t := range d.triangles {
		if t.inCircle(p) {
			e := t.edges()
			edges = append(edges, e[:]...)
		} else {
			temps = append(temps, t)
		}
	}

	// The boundary of the cavity is made of the edges owned by exactly one
	// removed triangle.
	count := make(map[[2]int]int, len(edges))
	for _, e := range edges {
		count[e.key()]++
	}
	n := node{p, id}
	for _, e := range edges {
		if count[e.key()] == 1 {
			temps = append(temps, newTriangle(e.a, e.b, n))
		}
	}
	d.triangles = temps
	return d
}

// Indices returns the triangles that do not touch the super triangle, each
// with its indices sorted, in lexicographic order.
func (d *Delaunay) Indices() []TriangleIndex {
	var out []TriangleIndex

	for _, t := range d.triangles {
		n := t.nodes
		if n[0].id < 0 || n[1].id < 0 || n[2].id < 0 {
			continue
		}
		tri := Triangle{n[0].Point, n[1].Point, n[2].Point}
		if math.Abs(tri.signedArea2()) < degenerateEps {
			continue
		}
		idx := TriangleIndex{n[0].id, n[1].id, n[2].id}
		sort.Ints(idx[:])
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return out
}

// Triangulate returns the Delaunay triangulation of points as index triples
// into points. Repeated points are inserted once, under their first index.
func Triangulate(points PointSet) ([]TriangleIndex, error) {
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	if len(seen) < 3 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d distinct points", len(seen))
	}

	d := (&Delaunay{}).Init(points)
	inserted := make(map[Point]struct{}, len(points))
	for i, p := range points {
		if _, ok := inserted[p]; ok {
			continue
		}
		inserted[p] = struct{}{}
		d.Insert(p, i)
	}

	triangles := d.Indices()
	if len(triangles) == 0 {
		return nil, errors.Wrap(ErrTooFewPoints, "points are collinear")
	}
	return triangles, nil
}
