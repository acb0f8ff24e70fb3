package polymap

import (
	"math"
	"testing"
)

// gridPolygons builds an nx by ny grid of unit-size square cells.
func gridPolygons(nx, ny int, size float64) [][]Point {
	var polys [][]Point
	for gy := 0; gy < ny; gy++ {
		for gx := 0; gx < nx; gx++ {
			x0, y0 := float64(gx)*size, float64(gy)*size
			x1, y1 := x0+size, y0+size
			polys = append(polys, []Point{
				{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
			})
		}
	}
	return polys
}

func TestFromPolygonsSharedElements(t *testing.T) {
	m, err := FromPolygons(20, 20, gridPolygons(2, 2, 10))
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	if m.NumCells() != 4 {
		t.Fatalf("expected 4 cells, got %d", m.NumCells())
	}
	if m.NumVertices() != 9 {
		t.Fatalf("expected 9 shared vertices, got %d", m.NumVertices())
	}
	if m.NumEdges() != 12 {
		t.Fatalf("expected 12 shared edges, got %d", m.NumEdges())
	}
}

func TestEdgeOwnership(t *testing.T) {
	m, err := FromPolygons(30, 20, gridPolygons(3, 2, 10))
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	interior, boundary := 0, 0
	for i := 0; i < m.NumEdges(); i++ {
		owners := len(m.Edge(EdgeID(i)).Cells())
		switch owners {
		case 1:
			boundary++
		case 2:
			interior++
		default:
			t.Fatalf("edge %d has %d owner cells", i, owners)
		}
	}
	if interior != 7 {
		t.Fatalf("expected 7 interior edges in a 3x2 grid, got %d", interior)
	}
	if boundary != 10 {
		t.Fatalf("expected 10 boundary edges in a 3x2 grid, got %d", boundary)
	}
}

func TestNeighborSymmetry(t *testing.T) {
	m, err := Build(200, 200, 12, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < m.NumCells(); i++ {
		id := CellID(i)
		for _, n := range m.Cell(id).Neighbors() {
			if !containsCell(m.Cell(n).Neighbors(), id) {
				t.Fatalf("cell %d lists %d as neighbor but not vice versa", id, n)
			}
		}
	}
	for i := 0; i < m.NumVertices(); i++ {
		id := VertexID(i)
		for _, n := range m.Vertex(id).Neighbors() {
			if !containsVertex(m.Vertex(n).Neighbors(), id) {
				t.Fatalf("vertex %d lists %d as neighbor but not vice versa", id, n)
			}
		}
	}
}

func TestVertexDedupByBitPattern(t *testing.T) {
	m, err := Build(200, 200, 12, 11)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	seen := map[bitKey]VertexID{}
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(VertexID(i))
		k := Point{X: v.X(), Y: v.Y()}.key()
		if prev, ok := seen[k]; ok {
			t.Fatalf("vertices %d and %d share coordinates (%g,%g)", prev, i, v.X(), v.Y())
		}
		seen[k] = VertexID(i)
	}
}

func TestBorderTagging(t *testing.T) {
	m, err := FromPolygons(20, 20, gridPolygons(2, 2, 10))
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(VertexID(i))
		inner := v.X() == 10 && v.Y() == 10
		if inner == v.IsBorder() {
			t.Fatalf("vertex %d at (%g,%g): border=%v", i, v.X(), v.Y(), v.IsBorder())
		}
	}
	// Every cell of a 2x2 grid touches the rim.
	if got := len(m.BorderCells()); got != 4 {
		t.Fatalf("expected 4 border cells, got %d", got)
	}

	built, err := Build(200, 200, 12, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(built.BorderCells()) == 0 {
		t.Fatal("no border cells tagged on a sampled mesh")
	}
	for _, id := range built.BorderCells() {
		if !built.Cell(id).IsBorder() {
			t.Fatalf("BorderCells lists cell %d but IsBorder is false", id)
		}
	}
}

func TestPointToCell(t *testing.T) {
	m, err := Build(200, 200, 12, 9)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < m.NumCells(); i++ {
		site := m.Cell(CellID(i)).Site()
		got, ok := m.PointToCell(site.X, site.Y)
		if !ok {
			t.Fatalf("site of cell %d at (%g,%g) not located", i, site.X, site.Y)
		}
		if got != CellID(i) {
			t.Fatalf("site of cell %d located in cell %d", i, got)
		}
	}
	if _, ok := m.PointToCell(-50, -50); ok {
		t.Fatal("point outside the map was located in a cell")
	}
	if _, ok := m.PointToCell(1e6, 1e6); ok {
		t.Fatal("far point was located in a cell")
	}
}

func TestNeighborToward(t *testing.T) {
	m, err := Build(300, 100, 10, 13)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	start, ok := m.PointToCell(20, 50)
	if !ok {
		t.Fatal("no cell at (20,50)")
	}
	next, ok := m.NeighborToward(start, 0, 15)
	if !ok {
		t.Fatal("eastward step from an interior cell left the map")
	}
	if next == start {
		t.Fatal("step did not leave the starting cell")
	}
	if m.Cell(next).Site().X <= m.Cell(start).Site().X-15 {
		t.Fatalf("eastward step went backward: %g to %g",
			m.Cell(start).Site().X, m.Cell(next).Site().X)
	}

	// Walking east repeatedly must fall off the right rim.
	cur := start
	for i := 0; i < 100; i++ {
		n, ok := m.NeighborToward(cur, 0, 15)
		if !ok {
			return
		}
		cur = n
	}
	t.Fatal("eastward walk never left the map")
}

func TestVertexCellIncidence(t *testing.T) {
	m, err := Build(200, 200, 12, 17)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < m.NumCells(); i++ {
		id := CellID(i)
		for _, vid := range m.Cell(id).Vertices() {
			if !containsCell(m.Vertex(vid).Cells(), id) {
				t.Fatalf("cell %d uses vertex %d but the vertex does not list the cell", id, vid)
			}
		}
	}
}

func TestEdgeEndpointsCanonical(t *testing.T) {
	m, err := Build(200, 200, 12, 19)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 0; i < m.NumEdges(); i++ {
		e := m.Edge(EdgeID(i))
		if e.Start() == e.End() {
			t.Fatalf("edge %d is degenerate", i)
		}
		if e.Start() > e.End() {
			t.Fatalf("edge %d endpoints not canonical: %d > %d", i, e.Start(), e.End())
		}
		if got := e.Other(e.Start()); got != e.End() {
			t.Fatalf("edge %d Other(start) = %d, want %d", i, got, e.End())
		}
	}
}

func TestCellPolygonsCoverArea(t *testing.T) {
	m, err := Build(200, 150, 12, 23)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	total := 0.0
	for i := 0; i < m.NumCells(); i++ {
		total += polygonArea(m.Cell(CellID(i)).Polygon())
	}
	want := 200.0 * 150.0
	if math.Abs(total-want) > want*1e-6 {
		t.Fatalf("cell areas sum to %g, want %g", total, want)
	}
}

func polygonArea(poly []Point) float64 {
	area := 0.0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		area += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(area) / 2
}

func containsCell(xs []CellID, x CellID) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsVertex(xs []VertexID, x VertexID) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
