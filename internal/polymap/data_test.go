package polymap

import (
	"math"
	"testing"
)

func testMesh(t *testing.T) *PolyMap {
	t.Helper()
	m, err := FromPolygons(30, 30, gridPolygons(3, 3, 10))
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	return m
}

func TestNewVertexDataAndUpdate(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(_ VertexID, v *Vertex) float64 { return v.X() })
	for i := 0; i < m.NumVertices(); i++ {
		if d.Data[i] != m.Vertex(VertexID(i)).X() {
			t.Fatalf("vertex %d: got %g, want %g", i, d.Data[i], m.Vertex(VertexID(i)).X())
		}
	}
	d.Update(m, func(_ VertexID, v *Vertex, x *float64) { *x += v.Y() })
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(VertexID(i))
		if d.Data[i] != v.X()+v.Y() {
			t.Fatalf("vertex %d after update: got %g, want %g", i, d.Data[i], v.X()+v.Y())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(id VertexID, _ *Vertex) float64 { return float64(id) })
	c := d.Clone()
	c.Data[0] = 999
	if d.Data[0] == 999 {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestFlowAppliesInOrder(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(VertexID, *Vertex) float64 { return 1 })
	// A chain 0 -> 1 -> 2 accumulates: after the first pair vertex 1 holds
	// 2, and the second pair must see that value.
	pairs := [][2]VertexID{{0, 1}, {1, 2}}
	d.Flow(pairs, func(target *float64, source float64) { *target += source })
	if d.Data[1] != 2 {
		t.Fatalf("vertex 1 flux = %g, want 2", d.Data[1])
	}
	if d.Data[2] != 3 {
		t.Fatalf("vertex 2 flux = %g, want 3", d.Data[2])
	}
}

func TestSpreadDecaysByRing(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(VertexID, *Vertex) float64 { return 0 })
	center := vertexAt(t, m, 10, 10)

	d.Spread(m, center, 1.0,
		func(accum float64) (float64, bool) {
			next := accum * 0.5
			return next, next > 0.2
		},
		func(_ VertexID, x *float64, accum float64) { *x += accum })

	if d.Data[center] != 1.0 {
		t.Fatalf("center got %g, want 1", d.Data[center])
	}
	// First ring: the four orthogonal neighbors at distance 10.
	ring := 0
	for _, n := range m.Vertex(center).Neighbors() {
		if d.Data[n] != 0.5 {
			t.Fatalf("ring-1 vertex %d got %g, want 0.5", n, d.Data[n])
		}
		ring++
	}
	if ring != 4 {
		t.Fatalf("center has %d neighbors, want 4", ring)
	}
	// Ring 2 receives 0.25, then the decay to 0.125 falls below the cutoff
	// and the walk stops before ring 3.
	touched := 0
	for i := range d.Data {
		if d.Data[i] == 0.25 {
			touched++
		}
	}
	if touched == 0 {
		t.Fatal("second ring never received its share")
	}
	for i := range d.Data {
		if d.Data[i] != 0 && d.Data[i] != 1.0 && d.Data[i] != 0.5 && d.Data[i] != 0.25 {
			t.Fatalf("vertex %d got unexpected amount %g", i, d.Data[i])
		}
	}
}

func TestRelaxVerticesMovesTowardNeighborMean(t *testing.T) {
	m := testMesh(t)
	spike := vertexAt(t, m, 10, 10)
	d := NewVertexData(m, func(id VertexID, _ *Vertex) float64 {
		if id == spike {
			return 1
		}
		return 0
	})
	RelaxVertices(m, &d, 0.5)

	// The spike's neighbors were all zero, so it halves.
	if d.Data[spike] != 0.5 {
		t.Fatalf("spike relaxed to %g, want 0.5", d.Data[spike])
	}
}

func vertexAt(t *testing.T, m *PolyMap, x, y float64) VertexID {
	t.Helper()
	for i := 0; i < m.NumVertices(); i++ {
		v := m.Vertex(VertexID(i))
		if v.X() == x && v.Y() == y {
			return VertexID(i)
		}
	}
	t.Fatalf("no vertex at (%g,%g)", x, y)
	return NoVertex
}

func TestRelaxVerticesUsesSnapshot(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(id VertexID, _ *Vertex) float64 { return float64(id) })
	a := d.Clone()
	b := d.Clone()
	RelaxVertices(m, &a, 1.0)
	RelaxVertices(m, &b, 1.0)
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("relaxation not deterministic at vertex %d", i)
		}
	}
}

func TestCornerAverage(t *testing.T) {
	m := testMesh(t)
	d := NewVertexData(m, func(VertexID, *Vertex) float64 { return 3 })
	cells := CornerAverage(m, &d)
	for i := range cells.Data {
		if cells.Data[i] != 3 {
			t.Fatalf("cell %d average = %g, want 3", i, cells.Data[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	data := []float64{2, 4, 6}
	Normalize(data)
	want := []float64{0, 0.5, 1}
	for i := range data {
		if math.Abs(data[i]-want[i]) > 1e-12 {
			t.Fatalf("normalized[%d] = %g, want %g", i, data[i], want[i])
		}
	}
}

func TestNormalizeFlatFieldUnchanged(t *testing.T) {
	data := []float64{7, 7, 7}
	Normalize(data)
	for i := range data {
		if data[i] != 7 {
			t.Fatalf("flat field changed at %d: %g", i, data[i])
		}
	}
}

func TestDescendingOrder(t *testing.T) {
	d := VertexData[float64]{Data: []float64{0.5, 2, 1, 2, 0}}
	got := DescendingOrder(&d)
	want := []VertexID{1, 3, 2, 0, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %d, want %d (full order %v)", i, got[i], want[i], got)
		}
	}
}
