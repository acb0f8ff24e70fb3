package worldgen

import (
	"fmt"
	"image/color"
)

// TerrainID indexes the terrain category table.
type TerrainID int

// TerrainType is one row of the ordered terrain table: the first category
// whose HeightLevel strictly exceeds a queried height claims it.
type TerrainType struct {
	Name        string
	HeightLevel float64
	Color       color.RGBA
	Water       bool
}

// TerrainDef is the ordered, finite terrain category table.
type TerrainDef struct {
	types []TerrainType
}

// NewTerrainDef wraps a table. Levels must ascend and the last level must
// exceed any height the pipeline can produce.
func NewTerrainDef(types []TerrainType) *TerrainDef {
	return &TerrainDef{types: types}
}

// DefaultTerrainDef returns the five-category table used by the generator.
func DefaultTerrainDef() *TerrainDef {
	return NewTerrainDef([]TerrainType{
		{Name: "deep water", HeightLevel: 0.25, Color: color.RGBA{R: 0x10, G: 0x30, B: 0x7a, A: 0xff}, Water: true},
		{Name: "water", HeightLevel: 0.5, Color: color.RGBA{R: 0x2f, G: 0x64, B: 0xc1, A: 0xff}, Water: true},
		{Name: "land", HeightLevel: 0.75, Color: color.RGBA{R: 0x4c, G: 0x9a, B: 0x3f, A: 0xff}, Water: false},
		{Name: "hill", HeightLevel: 0.9, Color: color.RGBA{R: 0x8a, G: 0x6f, B: 0x3c, A: 0xff}, Water: false},
		{Name: "mountain", HeightLevel: 1.0001, Color: color.RGBA{R: 0xbf, G: 0xbf, B: 0xbf, A: 0xff}, Water: false},
	})
}

// Len returns the number of categories.
func (d *TerrainDef) Len() int { return len(d.types) }

// Type returns the table row for id.
func (d *TerrainDef) Type(id TerrainID) TerrainType { return d.types[id] }

// FromLevel returns the smallest category whose level strictly exceeds
// height. A height beyond the table is a broken invariant: levels are
// required to cover the normalized range.
func (d *TerrainDef) FromLevel(height float64) TerrainID {
	for i, t := range d.types {
		if height < t.HeightLevel {
			return TerrainID(i)
		}
	}
	panic(fmt.Sprintf("terrain table does not cover height %g", height))
}

// FromLevelRange returns the bracketing category pair for height and the
// interpolation fraction between their levels. Crossing a water/land
// boundary always yields t = 1 so renderers never blend across a coastline.
func (d *TerrainDef) FromLevelRange(height float64) (lo, hi TerrainID, t float64) {
	hi = d.FromLevel(height)
	lo = hi
	if lo > 0 {
		lo--
	}
	if d.types[lo].Water != d.types[hi].Water {
		return lo, hi, 1
	}
	span := d.types[hi].HeightLevel - d.types[lo].HeightLevel
	if span == 0 {
		return lo, hi, 1
	}
	return lo, hi, (height - d.types[lo].HeightLevel) / span
}

// Ground is a cell's ground composition. Components sum to 1.
type Ground struct {
	Water, Sand, Soil, Rock float64
}

// Vegetation is a cell's vegetation composition. Components sum to 1.
type Vegetation struct {
	Bare, Deciduous, Boreal float64
}

// GroundFor derives the ground composition from the terrain category and
// the normalized rainfall, drainage and height at the cell.
func GroundFor(terrain TerrainType, rain, drainage, height float64) Ground {
	if terrain.Water {
		return Ground{Water: 1}
	}
	rain = clamp01(rain)
	drainage = clamp01(drainage)
	rock := clamp01((height - 0.6) / 0.4)
	g := Ground{
		Water: clamp01(drainage-0.8) * 0.5,
		Sand:  (1 - rain) * (1 - rock) * 0.6,
		Soil:  (rain*0.8 + 0.2) * (1 - rock),
		Rock:  rock + drainage*0.1,
	}
	return g.normalized()
}

// VegetationFor derives the vegetation composition from the terrain
// category and the normalized rainfall, temperature and height at the cell.
func VegetationFor(terrain TerrainType, rain, temperature, height float64) Vegetation {
	if terrain.Water {
		return Vegetation{Bare: 1}
	}
	rain = clamp01(rain)
	temperature = clamp01(temperature)
	v := Vegetation{
		Bare:      (1 - rain) + clamp01(height-0.8)*2,
		Deciduous: rain * temperature,
		Boreal:    rain * (1 - temperature) * (0.5 + height/2),
	}
	return v.normalized()
}

// normalized rescales the components to sum to 1; a zero total leaves the
// value unchanged.
func (g Ground) normalized() Ground {
	total := g.Water + g.Sand + g.Soil + g.Rock
	if total == 0 {
		return g
	}
	g.Water /= total
	g.Sand /= total
	g.Soil /= total
	g.Rock /= total
	return g
}

func (v Vegetation) normalized() Vegetation {
	total := v.Bare + v.Deciduous + v.Boreal
	if total == 0 {
		return v
	}
	v.Bare /= total
	v.Deciduous /= total
	v.Boreal /= total
	return v
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
