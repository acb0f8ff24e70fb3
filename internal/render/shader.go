// Package render turns a generated world into an RGBA image: a map shader
// assigns colors per mesh entity and a software rasterizer paints them.
package render

import (
	"fmt"
	"image/color"

	"worldgen/internal/polymap"
	"worldgen/internal/worldgen"
)

// ViewMode selects which derived layer the shader visualizes. The set is
// closed; every switch over it is exhaustive.
type ViewMode int

const (
	// ViewTerrain shows terrain categories with rivers overlaid.
	ViewTerrain ViewMode = iota
	// ViewHeightmap shows elevation as grayscale with stuck vertices marked.
	ViewHeightmap
	// ViewHydrology shows rainfall, edge flux and river endpoints.
	ViewHydrology
	// ViewThermology shows the temperature gradient.
	ViewThermology
)

// Name returns the display name of the mode.
func (v ViewMode) Name() string {
	switch v {
	case ViewTerrain:
		return "Terrain"
	case ViewHeightmap:
		return "Heightmap"
	case ViewHydrology:
		return "Hydrology"
	case ViewThermology:
		return "Thermology"
	}
	return "Unknown"
}

// ParseViewMode resolves a mode by its lowercase name.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "terrain", "":
		return ViewTerrain, nil
	case "heightmap":
		return ViewHeightmap, nil
	case "hydrology":
		return ViewHydrology, nil
	case "thermology":
		return ViewThermology, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", s)
}

// MapShader produces per-entity colors for the rasterizer.
type MapShader interface {
	CellColor(id polymap.CellID) color.RGBA
	EdgeColor(id polymap.EdgeID) (color.RGBA, bool)
	VertexColor(id polymap.VertexID) (color.RGBA, bool)
	DrawVertices() bool
}

// WorldView shades a world map according to a view mode.
type WorldView struct {
	Map  *worldgen.WorldMap
	Mode ViewMode
}

var (
	black    = color.RGBA{A: 0xff}
	red      = color.RGBA{R: 0xe0, A: 0xff}
	green    = color.RGBA{G: 0xc0, A: 0xff}
	darkBlue = color.RGBA{B: 0x8b, A: 0xff}
	yellow   = color.RGBA{R: 0xff, G: 0xe0, A: 0xff}
)

// CellColor implements MapShader.
func (v WorldView) CellColor(id polymap.CellID) color.RGBA {
	switch v.Mode {
	case ViewTerrain:
		def := v.Map.TerrainDef()
		lo, hi, t := def.FromLevelRange(v.Map.CellHeight(id))
		return lerpColor(def.Type(lo).Color, def.Type(hi).Color, t)
	case ViewHeightmap:
		g := uint8(clamp01(v.Map.CellHeight(id)) * 255)
		return color.RGBA{R: g, G: g, B: g, A: 0xff}
	case ViewHydrology:
		rain := clamp01(v.Map.Hydrology().CellRainfall(id))
		return color.RGBA{B: uint8(rain * 255), A: 0xff}
	case ViewThermology:
		t := clamp01(v.Map.Thermology().CellTemperature(id))
		return lerp3Color(darkBlue, yellow, red, t)
	}
	return black
}

// EdgeColor implements MapShader. The second return is false when the edge
// should not be drawn.
func (v WorldView) EdgeColor(id polymap.EdgeID) (color.RGBA, bool) {
	switch v.Mode {
	case ViewTerrain:
		if !v.Map.Hydrology().Rivers().IsSegment(id) {
			return color.RGBA{}, false
		}
		flux := clamp01(v.Map.Hydrology().EdgeFlux(id) / 255)
		return lerpColor(color.RGBA{R: 0x58, G: 0x90, B: 0xd8, A: 0xff}, darkBlue, flux), true
	case ViewHeightmap:
		return black, true
	case ViewHydrology:
		flux := clamp01(v.Map.Hydrology().EdgeFlux(id) / 255)
		return color.RGBA{A: uint8(64 + flux*191)}, true
	case ViewThermology:
		return color.RGBA{}, false
	}
	return color.RGBA{}, false
}

// DrawVertices implements MapShader.
func (v WorldView) DrawVertices() bool {
	return v.Mode == ViewHeightmap || v.Mode == ViewHydrology
}

// VertexColor implements MapShader: stuck interior vertices in heightmap
// view, river sources and sinks in hydrology view.
func (v WorldView) VertexColor(id polymap.VertexID) (color.RGBA, bool) {
	switch v.Mode {
	case ViewHeightmap:
		_, hasDescent := v.Map.HeightMap().DescentVector(id)
		if !hasDescent && !v.Map.Mesh().Vertex(id).IsBorder() {
			return red, true
		}
		return color.RGBA{}, false
	case ViewHydrology:
		rivers := v.Map.Hydrology().Rivers()
		if rivers.IsSource(id) {
			return green, true
		}
		if rivers.IsSink(id) {
			return red, true
		}
		return color.RGBA{}, false
	}
	return color.RGBA{}, false
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp3Color(a, b, c color.RGBA, t float64) color.RGBA {
	if t <= 0.5 {
		return lerpColor(a, b, 2*t)
	}
	return lerpColor(b, c, 2*(t-0.5))
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8((1-t)*float64(a) + t*float64(b))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
