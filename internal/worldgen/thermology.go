package worldgen

import (
	"math/rand"

	"worldgen/internal/polymap"
)

// ThermologyBuilder accumulates the innate temperature field (latitude band
// plus noise) before the terrain-aware adjustments are applied.
type ThermologyBuilder struct {
	vertices polymap.VertexData[float64]
}

// newThermologyBuilder starts every vertex at zero.
func newThermologyBuilder(m *polymap.PolyMap) *ThermologyBuilder {
	return &ThermologyBuilder{
		vertices: polymap.NewVertexData(m, func(polymap.VertexID, *polymap.Vertex) float64 {
			return 0
		}),
	}
}

// AddField composes a spatial function onto the temperatures.
func (b *ThermologyBuilder) AddField(m *polymap.PolyMap, f SpatialFunc, intensity float64) {
	addField(m, &b.vertices, f, intensity)
}

// Build freezes the builder: temperatures are normalized, vertices fully
// surrounded by water are moderated, land vertices are cooled with altitude,
// and cell temperatures fall out as the corner average.
func (b *ThermologyBuilder) Build(m *polymap.PolyMap, hm *HeightMap,
	terrain *polymap.CellData[TerrainID], def *TerrainDef) *Thermology {

	polymap.Normalize(b.vertices.Data)

	b.vertices.Update(m, func(id polymap.VertexID, v *polymap.Vertex, t *float64) {
		allWater := len(v.Cells()) > 0
		for _, cid := range v.Cells() {
			if !def.Type(terrain.Data[cid]).Water {
				allWater = false
				break
			}
		}
		if allWater {
			// Oceanic moderation.
			*t *= 0.5
			return
		}
		penalty := 1.5 - hm.VertexHeight(id)
		if penalty > 1 {
			penalty = 1
		}
		*t *= penalty
	})

	return &Thermology{
		vertices: b.vertices,
		cells:    polymap.CornerAverage(m, &b.vertices),
	}
}

// Thermology is the frozen temperature model.
type Thermology struct {
	vertices polymap.VertexData[float64]
	cells    polymap.CellData[float64]
}

// VertexTemperature returns the temperature at a vertex.
func (t *Thermology) VertexTemperature(id polymap.VertexID) float64 { return t.vertices.Data[id] }

// CellTemperature returns the mean temperature over the cell's vertices.
func (t *Thermology) CellTemperature(id polymap.CellID) float64 { return t.cells.Data[id] }

// newThermology runs the full thermology pass: a horizontal latitude band
// peaking at the map's mid-height plus simplex noise, then the water and
// altitude adjustments.
func newThermology(m *polymap.PolyMap, conf ThermologyConf, hm *HeightMap,
	terrain *polymap.CellData[TerrainID], def *TerrainDef, rng *rand.Rand) *Thermology {

	b := newThermologyBuilder(m)
	b.AddField(m, NewBand(m.Width()/2, m.Height()/2, 0, m.Height()/2), conf.BandIntensity)
	b.AddField(m, NewSimplexField(conf.Noise.Frequency, rng), conf.Noise.Intensity)
	return b.Build(m, hm, terrain, def)
}
