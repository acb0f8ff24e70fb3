package worldgen

import (
	"math/rand"

	"worldgen/internal/polymap"
)

// Descent is the steepest-downhill neighbor relation at a vertex.
type Descent struct {
	Towards   polymap.VertexID
	Intensity float64
}

// HeightMapBuilder accumulates elevation contributions on vertices. Build
// freezes it into a HeightMap; the builder must not be reused afterwards.
type HeightMapBuilder struct {
	vertices polymap.VertexData[float64]
}

// NewHeightMapBuilder starts every vertex at base.
func NewHeightMapBuilder(m *polymap.PolyMap, base float64) *HeightMapBuilder {
	return &HeightMapBuilder{
		vertices: polymap.NewVertexData(m, func(polymap.VertexID, *polymap.Vertex) float64 {
			return base
		}),
	}
}

// AddField composes a spatial function onto the elevations.
func (b *HeightMapBuilder) AddField(m *polymap.PolyMap, f SpatialFunc, intensity float64) {
	addField(m, &b.vertices, f, intensity)
}

// Clump raises (or, with negative amount, depresses) a random vertex and
// spreads the perturbation outward ring by ring, decaying until it falls
// below end.
func (b *HeightMapBuilder) Clump(m *polymap.PolyMap, rng *rand.Rand, amount, decay, end float64) {
	start := polymap.VertexID(rng.Intn(m.NumVertices()))
	b.vertices.Spread(m, start, amount,
		func(accum float64) (float64, bool) {
			next := accum * decay
			return next, abs(next) > abs(end)
		},
		func(_ polymap.VertexID, h *float64, accum float64) {
			*h += accum
		})
}

// Relax runs one Jacobi smoothing sweep with blend factor t.
func (b *HeightMapBuilder) Relax(m *polymap.PolyMap, t float64) {
	polymap.RelaxVertices(m, &b.vertices, t)
}

// FillDepressions removes closed local minima with the Planchon-Darboux
// relaxation: border vertices keep their true height, interior vertices
// start at a large sentinel and are lowered toward the true height until a
// sweep makes no change. Afterwards every interior vertex has a strict
// downhill path to the border.
func (b *HeightMapBuilder) FillDepressions(m *polymap.PolyMap) {
	const (
		sentinel = 100.0
		epsilon  = 0.001
	)
	h := &b.vertices
	w := polymap.NewVertexData(m, func(id polymap.VertexID, v *polymap.Vertex) float64 {
		if v.IsBorder() {
			return h.Data[id]
		}
		return sentinel
	})

	changed := true
	for changed {
		changed = false
		for i := 0; i < m.NumVertices(); i++ {
			id := polymap.VertexID(i)
			if w.Data[id] == h.Data[id] {
				continue
			}
			for _, n := range m.Vertex(id).Neighbors() {
				if h.Data[id] >= w.Data[n]+epsilon {
					w.Data[id] = h.Data[id]
					changed = true
					break
				}
				oh := w.Data[n] + epsilon
				if w.Data[id] > oh && oh > h.Data[id] {
					w.Data[id] = oh
					changed = true
				}
			}
		}
	}

	b.vertices = w
}

// Normalize rescales elevations to [0,1].
func (b *HeightMapBuilder) Normalize() {
	polymap.Normalize(b.vertices.Data)
}

// Build freezes the builder: it derives the per-vertex descent vector, the
// descending-elevation order used as the flow schedule, and per-cell heights.
func (b *HeightMapBuilder) Build(m *polymap.PolyMap) *HeightMap {
	descent := polymap.NewVertexData(m, func(id polymap.VertexID, v *polymap.Vertex) Descent {
		my := b.vertices.Data[id]
		best := Descent{Towards: polymap.NoVertex}
		for _, n := range v.Neighbors() {
			diff := my - b.vertices.Data[n]
			if diff > 0 && diff > best.Intensity {
				best = Descent{Towards: n, Intensity: diff}
			}
		}
		return best
	})

	return &HeightMap{
		vertices: b.vertices,
		cells:    polymap.CornerAverage(m, &b.vertices),
		descent:  descent,
		downhill: polymap.DescendingOrder(&b.vertices),
	}
}

// HeightMap is the frozen elevation model.
type HeightMap struct {
	vertices polymap.VertexData[float64]
	cells    polymap.CellData[float64]
	descent  polymap.VertexData[Descent]
	downhill []polymap.VertexID
}

// VertexHeight returns the elevation at a vertex.
func (h *HeightMap) VertexHeight(id polymap.VertexID) float64 { return h.vertices.Data[id] }

// CellHeight returns the mean elevation of the cell's vertices.
func (h *HeightMap) CellHeight(id polymap.CellID) float64 { return h.cells.Data[id] }

// DescentVector returns the steepest-descent edge at a vertex; false when
// the vertex is a local minimum (a drain).
func (h *HeightMap) DescentVector(id polymap.VertexID) (Descent, bool) {
	d := h.descent.Data[id]
	return d, d.Towards != polymap.NoVertex
}

// IsDescent reports whether top's steepest descent leads to bottom.
func (h *HeightMap) IsDescent(top, bottom polymap.VertexID) bool {
	d := h.descent.Data[top]
	return d.Towards == bottom
}

// Downhill returns the vertex ids in descending-elevation order, ties broken
// by id. It is a valid topological order of the descent graph.
func (h *HeightMap) Downhill() []polymap.VertexID { return h.downhill }

// FlowPairs lists the (source, target) descent pairs in descending-elevation
// order, ready for flux accumulation.
func (h *HeightMap) FlowPairs() [][2]polymap.VertexID {
	pairs := make([][2]polymap.VertexID, 0, len(h.downhill))
	for _, from := range h.downhill {
		if d, ok := h.DescentVector(from); ok {
			pairs = append(pairs, [2]polymap.VertexID{from, d.Towards})
		}
	}
	return pairs
}

// EdgeHighVertex returns the higher-elevation endpoint of the edge; false
// when the endpoints are level.
func (h *HeightMap) EdgeHighVertex(e *polymap.Edge) (polymap.VertexID, bool) {
	s, t := h.vertices.Data[e.Start()], h.vertices.Data[e.End()]
	switch {
	case s > t:
		return e.Start(), true
	case t > s:
		return e.End(), true
	default:
		return polymap.NoVertex, false
	}
}

// MakeBuilder snapshots the current elevations so reflow can layer new
// perturbations on top of the existing relief.
func (h *HeightMap) MakeBuilder() *HeightMapBuilder {
	return &HeightMapBuilder{vertices: h.vertices.Clone()}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
