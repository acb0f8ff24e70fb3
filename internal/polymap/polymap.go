// Package polymap builds an irregular planar subdivision of a rectangle into
// convex cells with shared vertices and edges, and answers point-location
// queries against it. The mesh is immutable once built; identifiers are
// dense, zero-based and stable.
package polymap

import (
	"fmt"
	"math"
	"math/rand"
)

// CellID indexes a cell of the mesh.
type CellID int

// VertexID indexes a vertex of the mesh.
type VertexID int

// EdgeID indexes an edge of the mesh.
type EdgeID int

// NoVertex marks the absence of a vertex reference.
const NoVertex VertexID = -1

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

type bitKey struct {
	x, y uint64
}

// key returns the exact bit pattern of the coordinates. Two polygons sharing
// a geometric vertex must resolve to the identical key.
func (p Point) key() bitKey {
	return bitKey{x: math.Float64bits(p.X), y: math.Float64bits(p.Y)}
}

// Cell is one convex polygon of the subdivision.
type Cell struct {
	site      Point
	polygon   []Point
	vertices  []VertexID
	edges     []EdgeID
	neighbors []CellID
	border    bool
}

// Site returns the generating point of the cell.
func (c *Cell) Site() Point { return c.site }

// Polygon returns the cell boundary in winding order.
func (c *Cell) Polygon() []Point { return c.polygon }

// Vertices returns the boundary vertex ids in winding order. Ids may repeat
// at junctions.
func (c *Cell) Vertices() []VertexID { return c.vertices }

// Edges returns the bounding edge ids.
func (c *Cell) Edges() []EdgeID { return c.edges }

// Neighbors returns the cells sharing an edge with this one.
func (c *Cell) Neighbors() []CellID { return c.neighbors }

// IsBorder reports whether any of the cell boundary lies on the map rectangle.
func (c *Cell) IsBorder() bool { return c.border }

// Vertex is a polygon corner shared between adjacent cells.
type Vertex struct {
	pos       Point
	edges     []EdgeID
	neighbors []VertexID
	cells     []CellID
	border    bool
}

// X returns the horizontal coordinate.
func (v *Vertex) X() float64 { return v.pos.X }

// Y returns the vertical coordinate.
func (v *Vertex) Y() float64 { return v.pos.Y }

// Edges returns the incident edge ids.
func (v *Vertex) Edges() []EdgeID { return v.edges }

// Neighbors returns the vertices reachable over one incident edge.
func (v *Vertex) Neighbors() []VertexID { return v.neighbors }

// Cells returns the cells this vertex belongs to.
func (v *Vertex) Cells() []CellID { return v.cells }

// IsBorder reports whether the vertex lies on or outside the map rectangle.
func (v *Vertex) IsBorder() bool { return v.border }

// Edge is an unordered vertex pair, stored min/max so the same edge is never
// duplicated. It is owned by one cell on the map boundary, else exactly two.
type Edge struct {
	a, b  VertexID
	cells []CellID
}

// Start returns the smaller endpoint id.
func (e *Edge) Start() VertexID { return e.a }

// End returns the larger endpoint id.
func (e *Edge) End() VertexID { return e.b }

// Cells returns the owning cells.
func (e *Edge) Cells() []CellID { return e.cells }

// Other returns the endpoint opposite to v.
func (e *Edge) Other(v VertexID) VertexID {
	if e.a == v {
		return e.b
	}
	return e.a
}

// PolyMap is the planar subdivision.
type PolyMap struct {
	width, height float64
	cells         []Cell
	vertices      []Vertex
	edges         []Edge
	index         bucketIndex
}

// Build samples sites with Poisson-disk spacing, computes their Voronoi
// cells clipped to the rectangle and assembles the shared-element mesh.
// Construction failure is unrecoverable: there is no partial mesh.
func Build(width, height int, minSpacing float64, seed int64) (*PolyMap, error) {
	w, h := float64(width), float64(height)
	rng := rand.New(rand.NewSource(seed))

	sites := poissonSample(rng, w, h, minSpacing)
	if len(sites) == 0 {
		return nil, fmt.Errorf("polymap: no sites for %dx%d with spacing %g", width, height, minSpacing)
	}

	polygons, err := voronoiPolygons(sites, w, h, minSpacing)
	if err != nil {
		return nil, fmt.Errorf("polymap: %w", err)
	}

	m, err := FromPolygons(w, h, polygons)
	if err != nil {
		return nil, err
	}
	for i := range m.cells {
		m.cells[i].site = sites[i]
	}
	return m, nil
}

// FromPolygons assembles a mesh from explicit cell polygons. Polygons that
// share a geometric vertex (same coordinate bit pattern) resolve to the same
// vertex id. Cell sites default to the polygon centroid.
func FromPolygons(width, height float64, polygons [][]Point) (*PolyMap, error) {
	if len(polygons) == 0 {
		return nil, fmt.Errorf("polymap: no cell polygons")
	}
	m := &PolyMap{width: width, height: height}
	if err := m.buildElements(polygons); err != nil {
		return nil, err
	}
	m.deriveNeighbors()
	m.tagBorders()
	m.index = newBucketIndex(m)
	return m, nil
}

func (m *PolyMap) buildElements(polygons [][]Point) error {
	vertexLookup := map[bitKey]VertexID{}
	edgeLookup := map[[2]bitKey]EdgeID{}

	addVertex := func(p Point) VertexID {
		if id, ok := vertexLookup[p.key()]; ok {
			return id
		}
		id := VertexID(len(m.vertices))
		vertexLookup[p.key()] = id
		m.vertices = append(m.vertices, Vertex{pos: p})
		return id
	}

	for ci, polygon := range polygons {
		if len(polygon) < 3 {
			return fmt.Errorf("polymap: cell %d has %d corners", ci, len(polygon))
		}
		cellID := CellID(ci)
		cell := Cell{site: centroid(polygon), polygon: polygon}

		for i := range polygon {
			pa := polygon[i]
			pb := polygon[(i+1)%len(polygon)]
			va := addVertex(pa)
			vb := addVertex(pb)
			if va == vb {
				continue
			}
			lo, hi := va, vb
			if hi < lo {
				lo, hi = hi, lo
			}
			ekey := [2]bitKey{m.vertices[lo].pos.key(), m.vertices[hi].pos.key()}
			eid, ok := edgeLookup[ekey]
			if !ok {
				eid = EdgeID(len(m.edges))
				edgeLookup[ekey] = eid
				m.edges = append(m.edges, Edge{a: lo, b: hi})
				m.vertices[lo].edges = append(m.vertices[lo].edges, eid)
				m.vertices[hi].edges = append(m.vertices[hi].edges, eid)
			}
			m.edges[eid].cells = append(m.edges[eid].cells, cellID)
			cell.edges = append(cell.edges, eid)
			cell.vertices = append(cell.vertices, va, vb)
		}
		if len(cell.edges) < 3 {
			return fmt.Errorf("polymap: cell %d collapses to %d edges", ci, len(cell.edges))
		}
		m.cells = append(m.cells, cell)
	}
	return nil
}

func (m *PolyMap) deriveNeighbors() {
	// Vertex neighbors come straight from the incident edges.
	for vi := range m.vertices {
		v := &m.vertices[vi]
		for _, eid := range v.edges {
			v.neighbors = append(v.neighbors, m.edges[eid].Other(VertexID(vi)))
		}
	}

	// Cells sharing an edge are mutual neighbors; an edge owned by one cell
	// ends on the map boundary and contributes nothing.
	for ei := range m.edges {
		owners := m.edges[ei].cells
		if len(owners) == 2 {
			m.cells[owners[0]].neighbors = appendUnique(m.cells[owners[0]].neighbors, owners[1])
			m.cells[owners[1]].neighbors = appendUnique(m.cells[owners[1]].neighbors, owners[0])
		}
	}

	// Vertex -> owning cells, deduplicated across the incident edges.
	for vi := range m.vertices {
		v := &m.vertices[vi]
		for _, eid := range v.edges {
			for _, cid := range m.edges[eid].cells {
				v.cells = appendUnique(v.cells, cid)
			}
		}
	}
}

func (m *PolyMap) tagBorders() {
	for vi := range m.vertices {
		p := m.vertices[vi].pos
		m.vertices[vi].border = p.X <= 0 || p.X >= m.width || p.Y <= 0 || p.Y >= m.height
	}
	for ci := range m.cells {
		for _, vid := range m.cells[ci].vertices {
			if m.vertices[vid].border {
				m.cells[ci].border = true
				break
			}
		}
	}
}

func appendUnique(list []CellID, id CellID) []CellID {
	for _, x := range list {
		if x == id {
			return list
		}
	}
	return append(list, id)
}

func centroid(polygon []Point) Point {
	var c Point
	for _, p := range polygon {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(polygon))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Width returns the horizontal extent of the region.
func (m *PolyMap) Width() float64 { return m.width }

// Height returns the vertical extent of the region.
func (m *PolyMap) Height() float64 { return m.height }

// NumCells returns the cell count.
func (m *PolyMap) NumCells() int { return len(m.cells) }

// NumVertices returns the vertex count.
func (m *PolyMap) NumVertices() int { return len(m.vertices) }

// NumEdges returns the edge count.
func (m *PolyMap) NumEdges() int { return len(m.edges) }

// Cell returns the cell record for id.
func (m *PolyMap) Cell(id CellID) *Cell { return &m.cells[id] }

// Vertex returns the vertex record for id.
func (m *PolyMap) Vertex(id VertexID) *Vertex { return &m.vertices[id] }

// Edge returns the edge record for id.
func (m *PolyMap) Edge(id EdgeID) *Edge { return &m.edges[id] }

// BorderCells returns the ids of all cells touching the map rectangle.
func (m *PolyMap) BorderCells() []CellID {
	var out []CellID
	for ci := range m.cells {
		if m.cells[ci].border {
			out = append(out, CellID(ci))
		}
	}
	return out
}

// PointToCell locates the cell containing (x, y). The second return is false
// when the point falls outside the region.
func (m *PolyMap) PointToCell(x, y float64) (CellID, bool) {
	if x < 0 || x > m.width || y < 0 || y > m.height {
		return 0, false
	}
	for _, cid := range m.index.candidates(x, y) {
		if pointInPolygon(x, y, m.cells[cid].polygon) {
			return cid, true
		}
	}
	return 0, false
}

// NeighborToward advances from the cell site by step along direction theta
// (radians) and locates the target cell. Used by wind-style walks over the
// map; false when the step leaves the region.
func (m *PolyMap) NeighborToward(id CellID, theta, step float64) (CellID, bool) {
	site := m.cells[id].site
	return m.PointToCell(site.X+step*math.Cos(theta), site.Y+step*math.Sin(theta))
}

func pointInPolygon(x, y float64, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// bucketIndex is a uniform grid over cell bounding boxes accelerating point
// location, standing in for a quadtree.
type bucketIndex struct {
	cols, rows int
	cw, ch     float64
	buckets    [][]CellID
}

func newBucketIndex(m *PolyMap) bucketIndex {
	n := len(m.cells)
	cols := int(math.Max(1, math.Sqrt(float64(n))))
	rows := cols
	idx := bucketIndex{
		cols:    cols,
		rows:    rows,
		cw:      m.width / float64(cols),
		ch:      m.height / float64(rows),
		buckets: make([][]CellID, cols*rows),
	}
	for ci := range m.cells {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range m.cells[ci].polygon {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		c0, r0 := idx.bucketOf(minX, minY)
		c1, r1 := idx.bucketOf(maxX, maxY)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				b := r*idx.cols + c
				idx.buckets[b] = append(idx.buckets[b], CellID(ci))
			}
		}
	}
	return idx
}

func (idx *bucketIndex) bucketOf(x, y float64) (int, int) {
	c := int(x / idx.cw)
	r := int(y / idx.ch)
	if c < 0 {
		c = 0
	}
	if c >= idx.cols {
		c = idx.cols - 1
	}
	if r < 0 {
		r = 0
	}
	if r >= idx.rows {
		r = idx.rows - 1
	}
	return c, r
}

func (idx *bucketIndex) candidates(x, y float64) []CellID {
	c, r := idx.bucketOf(x, y)
	return idx.buckets[r*idx.cols+c]
}
