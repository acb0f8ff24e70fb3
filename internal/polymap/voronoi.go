package polymap

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// voronoiPolygons turns the site set into one clipped Voronoi cell polygon
// per site. A frame of ghost sites just outside the rectangle guarantees that
// every real site is interior to the triangulation, so its cell is a closed
// ring of triangle circumcenters; the ring is then clipped to [0,w]x[0,h].
func voronoiPolygons(sites []Point, w, h, spacing float64) ([][]Point, error) {
	all := append(append([]Point(nil), sites...), ghostFrame(w, h, spacing)...)

	pts := make([]delaunay.Point, len(all))
	for i, p := range all {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d sites: %w", len(all), err)
	}

	// One circumcenter per triangle, computed exactly once: adjacent cells
	// that share a Voronoi vertex therefore see bit-identical coordinates.
	centers := make([]Point, len(tri.Triangles)/3)
	for t := range centers {
		a := all[tri.Triangles[3*t]]
		b := all[tri.Triangles[3*t+1]]
		c := all[tri.Triangles[3*t+2]]
		centers[t] = circumcenter(a, b, c)
	}

	// Any incoming halfedge per point is enough to start the walk; real
	// sites are interior so the walk always closes.
	inedge := make([]int, len(all))
	for i := range inedge {
		inedge[i] = -1
	}
	for e := 0; e < len(tri.Triangles); e++ {
		p := tri.Triangles[nextHalfedge(e)]
		if inedge[p] == -1 {
			inedge[p] = e
		}
	}

	polygons := make([][]Point, len(sites))
	for i := range sites {
		start := inedge[i]
		if start == -1 {
			return nil, fmt.Errorf("site %d has no incident triangle", i)
		}
		var ring []Point
		incoming := start
		for {
			ring = append(ring, centers[incoming/3])
			outgoing := nextHalfedge(incoming)
			incoming = tri.Halfedges[outgoing]
			if incoming == -1 || incoming == start {
				break
			}
		}
		clipped := clipToRect(ring, w, h)
		if len(clipped) < 3 {
			return nil, fmt.Errorf("site %d yields a degenerate cell", i)
		}
		polygons[i] = clipped
	}
	return polygons, nil
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// ghostFrame returns sites ringing the rectangle at distance spacing, so
// border cells of real sites stay bounded before clipping.
func ghostFrame(w, h, spacing float64) []Point {
	var frame []Point
	lo, hiX, hiY := -spacing, w+spacing, h+spacing
	nx := int(math.Ceil((hiX - lo) / spacing))
	ny := int(math.Ceil((hiY - lo) / spacing))
	for i := 0; i <= nx; i++ {
		x := lo + (hiX-lo)*float64(i)/float64(nx)
		frame = append(frame, Point{X: x, Y: lo}, Point{X: x, Y: hiY})
	}
	for j := 1; j < ny; j++ {
		y := lo + (hiY-lo)*float64(j)/float64(ny)
		frame = append(frame, Point{X: lo, Y: y}, Point{X: hiX, Y: y})
	}
	return frame
}

func circumcenter(a, b, c Point) Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
}

// clipToRect clips a polygon to [0,w]x[0,h] (Sutherland-Hodgman). Segment
// endpoints are put in a canonical order before each intersection so the two
// cells sharing a clipped edge derive bit-identical boundary points.
func clipToRect(poly []Point, w, h float64) []Point {
	clip := func(in []Point, inside func(Point) bool, cross func(Point, Point) Point) []Point {
		var out []Point
		for i := range in {
			cur := in[i]
			next := in[(i+1)%len(in)]
			curIn, nextIn := inside(cur), inside(next)
			if curIn {
				out = append(out, cur)
			}
			if curIn != nextIn {
				out = append(out, cross(cur, next))
			}
		}
		return out
	}

	atX := func(x float64) func(Point, Point) Point {
		return func(a, b Point) Point {
			a, b = canonical(a, b)
			t := (x - a.X) / (b.X - a.X)
			return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
		}
	}
	atY := func(y float64) func(Point, Point) Point {
		return func(a, b Point) Point {
			a, b = canonical(a, b)
			t := (y - a.Y) / (b.Y - a.Y)
			return Point{X: a.X + t*(b.X-a.X), Y: y}
		}
	}

	poly = clip(poly, func(p Point) bool { return p.X >= 0 }, atX(0))
	poly = clip(poly, func(p Point) bool { return p.X <= w }, atX(w))
	poly = clip(poly, func(p Point) bool { return p.Y >= 0 }, atY(0))
	poly = clip(poly, func(p Point) bool { return p.Y <= h }, atY(h))
	return dedupRing(poly)
}

func canonical(a, b Point) (Point, Point) {
	ka, kb := a.key(), b.key()
	if kb.x < ka.x || (kb.x == ka.x && kb.y < ka.y) {
		return b, a
	}
	return a, b
}

// dedupRing drops consecutive bitwise-equal points (clipping can emit them
// when a ring vertex lies exactly on the rectangle).
func dedupRing(poly []Point) []Point {
	if len(poly) == 0 {
		return poly
	}
	out := poly[:0]
	for _, p := range poly {
		if len(out) == 0 || out[len(out)-1].key() != p.key() {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0].key() == out[len(out)-1].key() {
		out = out[:len(out)-1]
	}
	return out
}
