// Package worldgen synthesizes a planet-like terrain over a polymap mesh:
// elevation from composed noise with depression removal, drainage and rivers
// from flow accumulation over the descent graph, temperature from latitude
// banding, and ground/vegetation composition on top.
package worldgen

import (
	"math/rand"

	"worldgen/internal/polymap"
)

// WorldGenerator wires the pipeline stages into a deterministic seeded run.
type WorldGenerator struct {
	conf    Config
	terrain *TerrainDef
}

// NewWorldGenerator builds a generator with the default terrain table.
func NewWorldGenerator(conf Config) *WorldGenerator {
	return &WorldGenerator{conf: conf, terrain: DefaultTerrainDef()}
}

// Generate runs the whole pipeline. Two calls with the same mesh and seed
// produce bit-identical results: the rng is consumed in a fixed order
// (slopes, noise octaves, clumps, depressions, rainfall noise, wind,
// thermology noise).
func (g *WorldGenerator) Generate(m *polymap.PolyMap, seed int64) *WorldMap {
	rng := rand.New(rand.NewSource(seed))

	hmb := NewHeightMapBuilder(m, g.conf.Heightmap.Base)
	g.composeHeight(m, hmb, rng, g.conf.Heightmap)
	if g.conf.Heightmap.PlanchonDarboux {
		hmb.FillDepressions(m)
	}
	hmb.Normalize()
	hm := hmb.Build(m)

	w := &WorldMap{
		mesh:    m,
		gen:     g,
		seed:    seed,
		terrain: g.terrain,
	}
	w.derive(hm, rng)
	return w
}

// composeHeight layers the configured contributions onto the builder. The
// rng call order here is part of the determinism contract.
func (g *WorldGenerator) composeHeight(m *polymap.PolyMap, hmb *HeightMapBuilder, rng *rand.Rand, conf HeightmapConf) {
	for i := 0; i < conf.Slopes.Number; i++ {
		hmb.AddField(m, NewSlope(m.Width(), m.Height(), rng), conf.Slopes.Intensity)
	}
	hmb.AddField(m, NewPerlinField(conf.Perlin1.Frequency, rng), conf.Perlin1.Intensity)
	hmb.AddField(m, NewPerlinField(conf.Perlin2.Frequency, rng), conf.Perlin2.Intensity)
	for i := 0; i < conf.Clumps.Number; i++ {
		hmb.Clump(m, rng, conf.Clumps.Intensity, conf.ClumpDecay, conf.ClumpEnd)
	}
	for i := 0; i < conf.Depressions.Number; i++ {
		hmb.Clump(m, rng, conf.Depressions.Intensity, conf.ClumpDecay, -conf.ClumpEnd)
	}
	for i := 0; i < conf.RelaxPasses; i++ {
		hmb.Relax(m, conf.RelaxT)
	}
}

// WorldMap is one generated world. It is immutable except through Reflow,
// which is not safe to call concurrently with reads of the same map.
type WorldMap struct {
	mesh    *polymap.PolyMap
	gen     *WorldGenerator
	seed    int64
	terrain *TerrainDef

	heightmap  *HeightMap
	cellTypes  polymap.CellData[TerrainID]
	hydrology  *Hydrology
	thermology *Thermology
	ground     polymap.CellData[Ground]
	vegetation polymap.CellData[Vegetation]
}

// derive recomputes every layer downstream of the heightmap.
func (w *WorldMap) derive(hm *HeightMap, rng *rand.Rand) {
	m := w.mesh
	w.heightmap = hm
	w.cellTypes = polymap.NewCellData(m, func(id polymap.CellID, _ *polymap.Cell) TerrainID {
		return w.terrain.FromLevel(hm.CellHeight(id))
	})
	w.hydrology = newHydrology(m, w.gen.conf.Hydrology, hm, &w.cellTypes, w.terrain, rng)
	w.thermology = newThermology(m, w.gen.conf.Thermology, hm, &w.cellTypes, w.terrain, rng)

	// Composition inputs are normalized copies so the closed forms see
	// [0,1] regardless of the tuning constants upstream.
	rain := append([]float64(nil), w.hydrology.cellRain.Data...)
	drain := append([]float64(nil), w.hydrology.cellFlux.Data...)
	polymap.Normalize(rain)
	polymap.Normalize(drain)

	w.ground = polymap.NewCellData(m, func(id polymap.CellID, _ *polymap.Cell) Ground {
		t := w.terrain.Type(w.cellTypes.Data[id])
		return GroundFor(t, rain[id], drain[id], hm.CellHeight(id))
	})
	w.vegetation = polymap.NewCellData(m, func(id polymap.CellID, _ *polymap.Cell) Vegetation {
		t := w.terrain.Type(w.cellTypes.Data[id])
		return VegetationFor(t, rain[id], w.thermology.CellTemperature(id), hm.CellHeight(id))
	})
}

// Reflow perturbs the existing elevations with a fresh noise layer and a
// clump, then recomputes every dependent layer. The mesh is untouched.
func (w *WorldMap) Reflow(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	conf := w.gen.conf.Heightmap

	hmb := w.heightmap.MakeBuilder()
	hmb.AddField(w.mesh, NewPerlinField(conf.Perlin2.Frequency, rng), conf.Perlin2.Intensity)
	hmb.Clump(w.mesh, rng, conf.Clumps.Intensity, conf.ClumpDecay, conf.ClumpEnd)
	if conf.PlanchonDarboux {
		hmb.FillDepressions(w.mesh)
	}
	hmb.Normalize()
	w.derive(hmb.Build(w.mesh), rng)
}

// Mesh returns the underlying polymap.
func (w *WorldMap) Mesh() *polymap.PolyMap { return w.mesh }

// Seed returns the generation seed.
func (w *WorldMap) Seed() int64 { return w.seed }

// TerrainDef returns the terrain category table.
func (w *WorldMap) TerrainDef() *TerrainDef { return w.terrain }

// HeightMap returns the elevation model.
func (w *WorldMap) HeightMap() *HeightMap { return w.heightmap }

// Hydrology returns the drainage model.
func (w *WorldMap) Hydrology() *Hydrology { return w.hydrology }

// Thermology returns the temperature model.
func (w *WorldMap) Thermology() *Thermology { return w.thermology }

// CellHeight returns the elevation of a cell.
func (w *WorldMap) CellHeight(id polymap.CellID) float64 { return w.heightmap.CellHeight(id) }

// CellTerrain returns the terrain category of a cell.
func (w *WorldMap) CellTerrain(id polymap.CellID) TerrainID { return w.cellTypes.Data[id] }

// CellGround returns the ground composition of a cell.
func (w *WorldMap) CellGround(id polymap.CellID) Ground { return w.ground.Data[id] }

// CellVegetation returns the vegetation composition of a cell.
func (w *WorldMap) CellVegetation(id polymap.CellID) Vegetation { return w.vegetation.Data[id] }
