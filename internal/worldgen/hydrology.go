package worldgen

import (
	"math"
	"math/rand"

	"worldgen/internal/polymap"
)

// Vec2 is a cartesian vector, used for the accumulated wind field.
type Vec2 struct {
	X, Y float64
}

func polar(r, theta float64) Vec2 {
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Magnitude returns the vector length.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Hydrology derives rainfall, drainage flux and the river network from the
// heightmap's descent graph.
type Hydrology struct {
	rainfall polymap.VertexData[float64]
	cellRain polymap.CellData[float64]
	flux     polymap.VertexData[float64]
	cellFlux polymap.CellData[float64]
	edgeFlux polymap.EdgeData[float64]
	isRiver  polymap.EdgeData[bool]
	wind     polymap.CellData[Vec2]
	rivers   Rivers
}

// newHydrology runs the full hydrology pass. Determinism depends on the rng
// being consumed in a fixed order: rainfall noise first, then wind.
func newHydrology(m *polymap.PolyMap, conf HydrologyConf, hm *HeightMap,
	terrain *polymap.CellData[TerrainID], def *TerrainDef, rng *rand.Rand) *Hydrology {

	hy := &Hydrology{}

	// Innate rainfall: a height-scaled term plus noise.
	noise := NewPerlinField(conf.Rain.Perlin.Frequency, rng)
	hy.rainfall = polymap.NewVertexData(m, func(id polymap.VertexID, v *polymap.Vertex) float64 {
		return hm.VertexHeight(id)*conf.Rain.HeightCoeff +
			noise.Value(v.X(), v.Y())*conf.Rain.Perlin.Intensity
	})

	hy.wind = polymap.NewCellData(m, func(polymap.CellID, *polymap.Cell) Vec2 { return Vec2{} })
	if conf.Wind.Enabled {
		hy.blowWind(m, conf.Wind, hm, terrain, def, rng)
	}

	for i := 0; i < conf.SmoothPasses; i++ {
		polymap.RelaxVertices(m, &hy.rainfall, 0.5)
	}
	hy.cellRain = polymap.CornerAverage(m, &hy.rainfall)

	// Flux replays the descending-height order over the descent graph.
	// Depression filling makes that graph acyclic, so the order is a valid
	// topological order and single-pass accumulation is exact.
	hy.flux = hy.rainfall.Clone()
	hy.flux.Flow(hm.FlowPairs(), func(target *float64, source float64) {
		*target += source
	})
	hy.cellFlux = polymap.CornerAverage(m, &hy.flux)

	hy.edgeFlux = polymap.NewEdgeData(m, func(_ polymap.EdgeID, e *polymap.Edge) float64 {
		flux := 0.0
		if hm.IsDescent(e.Start(), e.End()) {
			flux += hy.flux.Data[e.Start()]
		}
		if hm.IsDescent(e.End(), e.Start()) {
			flux += hy.flux.Data[e.End()]
		}
		return flux
	})

	hy.isRiver = polymap.NewEdgeData(m, func(id polymap.EdgeID, e *polymap.Edge) bool {
		if hy.edgeFlux.Data[id] <= conf.MinRiverFlux {
			return false
		}
		allWater := true
		for _, cid := range e.Cells() {
			if !def.Type(terrain.Data[cid]).Water {
				allWater = false
				break
			}
		}
		return !allWater
	})

	hy.rivers = extractRivers(m, hm, &hy.isRiver)
	return hy
}

// blowWind spawns a cloud on every border cell and walks it across the map
// in a drifting wind direction, picking up vapor over water and raining it
// out over land. Deposited rain is folded back into the vertex rainfall.
func (hy *Hydrology) blowWind(m *polymap.PolyMap, conf WindConf, hm *HeightMap,
	terrain *polymap.CellData[TerrainID], def *TerrainDef, rng *rand.Rand) {

	windDirection := float64(rng.Intn(360)) * math.Pi / 180
	drift := conf.DriftDegrees * math.Pi / 180
	deposits := polymap.NewCellData(m, func(polymap.CellID, *polymap.Cell) float64 { return 0 })

	for _, start := range m.BorderCells() {
		cloud := start
		vapor := conf.InitialVapor
		direction := windDirection
		visited := make(map[polymap.CellID]bool)

		for {
			visited[cloud] = true
			stop := false

			if def.Type(terrain.Data[cloud]).Water {
				vapor += conf.PickupRate
			} else {
				height := hm.CellHeight(cloud)
				var rain float64
				if height < 0.95 {
					rate := conf.RainRateLow
					if height >= 0.6 {
						rate = conf.RainRateHigh
					}
					rain = vapor * rate
				} else {
					// A peak wrings the cloud dry.
					rain = vapor
					stop = true
				}
				vapor -= rain
				deposits.Data[cloud] += rain
			}
			if stop {
				break
			}

			direction += (rng.Float64()*2 - 1) * drift
			trail := polar(vapor, direction)
			hy.wind.Data[cloud].X += trail.X
			hy.wind.Data[cloud].Y += trail.Y

			next, ok := m.NeighborToward(cloud, direction, conf.StepDistance)
			if !ok || visited[next] {
				break
			}
			cloud = next
		}
	}

	hy.rainfall.Update(m, func(_ polymap.VertexID, v *polymap.Vertex, r *float64) {
		cells := v.Cells()
		if len(cells) == 0 {
			return
		}
		sum := 0.0
		for _, cid := range cells {
			sum += deposits.Data[cid]
		}
		*r += sum / float64(len(cells))
	})
}

// VertexRainfall returns the innate rainfall at a vertex.
func (hy *Hydrology) VertexRainfall(id polymap.VertexID) float64 { return hy.rainfall.Data[id] }

// CellRainfall returns the mean rainfall over the cell's vertices.
func (hy *Hydrology) CellRainfall(id polymap.CellID) float64 { return hy.cellRain.Data[id] }

// VertexFlux returns the accumulated drainage at a vertex.
func (hy *Hydrology) VertexFlux(id polymap.VertexID) float64 { return hy.flux.Data[id] }

// CellFlux returns the mean drainage over the cell's vertices.
func (hy *Hydrology) CellFlux(id polymap.CellID) float64 { return hy.cellFlux.Data[id] }

// EdgeFlux returns the flux crossing an edge.
func (hy *Hydrology) EdgeFlux(id polymap.EdgeID) float64 { return hy.edgeFlux.Data[id] }

// Wind returns the accumulated cloud-passage vector at a cell.
func (hy *Hydrology) Wind(id polymap.CellID) Vec2 { return hy.wind.Data[id] }

// Rivers returns the extracted river network.
func (hy *Hydrology) Rivers() *Rivers { return &hy.rivers }

// RiverPath is an ordered vertex sequence from a source to a terminal vertex.
type RiverPath []polymap.VertexID

// Rivers is the extracted river network: flagged edges plus maximal paths.
type Rivers struct {
	isSegment polymap.EdgeData[bool]
	isSource  polymap.VertexData[bool]
	isSink    polymap.VertexData[bool]
	paths     []RiverPath
}

// IsSegment reports whether the edge carries a river.
func (r *Rivers) IsSegment(id polymap.EdgeID) bool { return r.isSegment.Data[id] }

// IsSource reports whether the vertex heads a river path.
func (r *Rivers) IsSource(id polymap.VertexID) bool { return r.isSource.Data[id] }

// IsSink reports whether a river path terminates at the vertex.
func (r *Rivers) IsSink(id polymap.VertexID) bool { return r.isSink.Data[id] }

// Paths returns the maximal river paths. Callers wanting only drawable
// rivers should discard paths of length <= 1.
func (r *Rivers) Paths() []RiverPath { return r.paths }

func extractRivers(m *polymap.PolyMap, hm *HeightMap, isRiver *polymap.EdgeData[bool]) Rivers {
	rivers := Rivers{
		isSegment: polymap.EdgeData[bool]{Data: append([]bool(nil), isRiver.Data...)},
		isSource:  polymap.NewVertexData(m, func(polymap.VertexID, *polymap.Vertex) bool { return false }),
		isSink:    polymap.NewVertexData(m, func(polymap.VertexID, *polymap.Vertex) bool { return false }),
	}

	riverDegree := func(v polymap.VertexID) int {
		n := 0
		for _, eid := range m.Vertex(v).Edges() {
			if isRiver.Data[eid] {
				n++
			}
		}
		return n
	}

	// A source is the higher endpoint of a river edge with no other river
	// edge leading into it.
	for ei := 0; ei < m.NumEdges(); ei++ {
		if !isRiver.Data[ei] {
			continue
		}
		high, ok := hm.EdgeHighVertex(m.Edge(polymap.EdgeID(ei)))
		if !ok {
			continue
		}
		if riverDegree(high) == 1 {
			rivers.isSource.Data[high] = true
		}
	}

	for vi := 0; vi < m.NumVertices(); vi++ {
		source := polymap.VertexID(vi)
		if !rivers.isSource.Data[source] {
			continue
		}
		path := RiverPath{source}
		current := source
		for steps := 0; steps < m.NumVertices(); steps++ {
			d, ok := hm.DescentVector(current)
			if !ok {
				break
			}
			current = d.Towards
			path = append(path, current)
			if riverDegree(current) == 0 {
				break
			}
		}
		rivers.isSink.Data[path[len(path)-1]] = true
		rivers.paths = append(rivers.paths, path)
	}
	return rivers
}
