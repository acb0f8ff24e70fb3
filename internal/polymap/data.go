package polymap

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// CellData maps every cell id to a value. It is a value container only: it
// holds no topology and must be rebuilt when the mesh changes.
type CellData[T any] struct {
	Data []T
}

// VertexData maps every vertex id to a value.
type VertexData[T any] struct {
	Data []T
}

// EdgeData maps every edge id to a value.
type EdgeData[T any] struct {
	Data []T
}

// NewCellData builds a field by evaluating f over every cell.
func NewCellData[T any](m *PolyMap, f func(CellID, *Cell) T) CellData[T] {
	data := make([]T, m.NumCells())
	for i := range data {
		data[i] = f(CellID(i), m.Cell(CellID(i)))
	}
	return CellData[T]{Data: data}
}

// NewVertexData builds a field by evaluating f over every vertex.
func NewVertexData[T any](m *PolyMap, f func(VertexID, *Vertex) T) VertexData[T] {
	data := make([]T, m.NumVertices())
	for i := range data {
		data[i] = f(VertexID(i), m.Vertex(VertexID(i)))
	}
	return VertexData[T]{Data: data}
}

// NewEdgeData builds a field by evaluating f over every edge.
func NewEdgeData[T any](m *PolyMap, f func(EdgeID, *Edge) T) EdgeData[T] {
	data := make([]T, m.NumEdges())
	for i := range data {
		data[i] = f(EdgeID(i), m.Edge(EdgeID(i)))
	}
	return EdgeData[T]{Data: data}
}

// Update applies f to every cell value in place.
func (d *CellData[T]) Update(m *PolyMap, f func(CellID, *Cell, *T)) {
	for i := range d.Data {
		f(CellID(i), m.Cell(CellID(i)), &d.Data[i])
	}
}

// Update applies f to every vertex value in place.
func (d *VertexData[T]) Update(m *PolyMap, f func(VertexID, *Vertex, *T)) {
	for i := range d.Data {
		f(VertexID(i), m.Vertex(VertexID(i)), &d.Data[i])
	}
}

// Clone returns an independent copy of the field.
func (d VertexData[T]) Clone() VertexData[T] {
	return VertexData[T]{Data: append([]T(nil), d.Data...)}
}

// Flow applies update(target, source) for each (source, target) pair, in the
// caller-supplied order. There is no correctness guarantee unless the order
// is a valid topological order of the dependency graph.
func (d *VertexData[T]) Flow(pairs [][2]VertexID, update func(target *T, source T)) {
	for _, p := range pairs {
		update(&d.Data[p[1]], d.Data[p[0]])
	}
}

// Spread walks breadth-first from start, applying apply to every newly
// reached vertex with the current accumulator, then decaying the accumulator
// per ring via next. It stops when next reports done or the frontier empties.
func (d *VertexData[T]) Spread(m *PolyMap, start VertexID, amount float64,
	next func(accum float64) (float64, bool),
	apply func(VertexID, *T, float64)) {

	visited := make([]bool, m.NumVertices())
	frontier := []VertexID{start}
	visited[start] = true
	accum := amount

	for len(frontier) > 0 {
		for _, id := range frontier {
			apply(id, &d.Data[id], accum)
		}
		decayed, ok := next(accum)
		if !ok {
			return
		}
		accum = decayed

		var ring []VertexID
		for _, id := range frontier {
			for _, n := range m.Vertex(id).Neighbors() {
				if !visited[n] {
					visited[n] = true
					ring = append(ring, n)
				}
			}
		}
		frontier = ring
	}
}

// RelaxVertices performs one synchronous Jacobi sweep: every value moves
// toward the mean of its neighbors by factor t, using a snapshot of the
// previous values.
func RelaxVertices(m *PolyMap, d *VertexData[float64], t float64) {
	prev := append([]float64(nil), d.Data...)
	d.Update(m, func(_ VertexID, v *Vertex, x *float64) {
		ns := v.Neighbors()
		if len(ns) == 0 {
			return
		}
		sum := 0.0
		for _, n := range ns {
			sum += prev[n]
		}
		avg := sum / float64(len(ns))
		*x = t*avg + (1-t)**x
	})
}

// CornerAverage derives a cell field as the arithmetic mean of each cell's
// incident vertex values.
func CornerAverage(m *PolyMap, vd *VertexData[float64]) CellData[float64] {
	return NewCellData(m, func(_ CellID, c *Cell) float64 {
		vs := c.Vertices()
		sum := 0.0
		for _, vid := range vs {
			sum += vd.Data[vid]
		}
		return sum / float64(len(vs))
	})
}

// Normalize rescales the values to [0,1]. A field with no variance is left
// unchanged: that is an expected degenerate case, not an error.
func Normalize(data []float64) {
	min := floats.Min(data)
	max := floats.Max(data)
	if max == min {
		return
	}
	floats.AddConst(-min, data)
	floats.Scale(1/(max-min), data)
}

// DescendingOrder returns the vertex ids sorted by descending value, ties
// broken by id so the order is reproducible.
func DescendingOrder(d *VertexData[float64]) []VertexID {
	order := make([]VertexID, len(d.Data))
	for i := range order {
		order[i] = VertexID(i)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if d.Data[a] != d.Data[b] {
			return d.Data[a] > d.Data[b]
		}
		return a < b
	})
	return order
}
