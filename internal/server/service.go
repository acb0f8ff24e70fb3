// Package server exposes generated worlds over HTTP: a JSON summary per
// seed and PNG renders of each view.
package server

import (
	"fmt"
	"sync"

	"worldgen/internal/polymap"
	"worldgen/internal/worldgen"
)

// WorldService generates worlds on demand and caches them by seed. Safe for
// concurrent use by HTTP handlers.
type WorldService struct {
	gen *worldgen.WorldGenerator

	mu     sync.Mutex
	mesh   *polymap.PolyMap
	worlds map[int64]*worldgen.WorldMap
	order  []int64
	limit  int
}

// NewWorldService builds the shared mesh once and prepares the cache.
func NewWorldService(width, height int, spacing float64, meshSeed int64, conf worldgen.Config) (*WorldService, error) {
	mesh, err := polymap.Build(width, height, spacing, meshSeed)
	if err != nil {
		return nil, fmt.Errorf("build mesh %dx%d: %w", width, height, err)
	}
	return &WorldService{
		gen:    worldgen.NewWorldGenerator(conf),
		mesh:   mesh,
		worlds: make(map[int64]*worldgen.WorldMap),
		limit:  16,
	}, nil
}

// World returns the cached world for the seed, generating it on first use.
func (ws *WorldService) World(seed int64) *worldgen.WorldMap {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w, ok := ws.worlds[seed]; ok {
		return w
	}
	w := ws.gen.Generate(ws.mesh, seed)
	ws.worlds[seed] = w
	ws.order = append(ws.order, seed)
	if len(ws.order) > ws.limit {
		oldest := ws.order[0]
		ws.order = ws.order[1:]
		delete(ws.worlds, oldest)
	}
	return w
}

// Mesh returns the shared mesh all worlds are generated on.
func (ws *WorldService) Mesh() *polymap.PolyMap { return ws.mesh }

// WorldSummary is the JSON shape returned for a generated world.
type WorldSummary struct {
	Seed     int64          `json:"seed"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Cells    int            `json:"cells"`
	Vertices int            `json:"vertices"`
	Edges    int            `json:"edges"`
	Rivers   int            `json:"rivers"`
	Terrain  map[string]int `json:"terrain"`
}

// Summary computes the summary for the world with the given seed.
func (ws *WorldService) Summary(seed int64) WorldSummary {
	w := ws.World(seed)
	m := ws.mesh
	counts := make(map[string]int)
	for i := 0; i < m.NumCells(); i++ {
		t := w.TerrainDef().Type(w.CellTerrain(polymap.CellID(i)))
		counts[t.Name]++
	}
	return WorldSummary{
		Seed:     seed,
		Width:    int(m.Width()),
		Height:   int(m.Height()),
		Cells:    m.NumCells(),
		Vertices: m.NumVertices(),
		Edges:    m.NumEdges(),
		Rivers:   len(w.Hydrology().Rivers().Paths()),
		Terrain:  counts,
	}
}
