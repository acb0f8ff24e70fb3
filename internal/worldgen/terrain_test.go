package worldgen

import (
	"math"
	"testing"
)

func TestFromLevelBoundaries(t *testing.T) {
	def := DefaultTerrainDef()
	cases := []struct {
		height float64
		want   TerrainID
	}{
		{0, 0},
		{0.2499, 0},
		{0.25, 1},
		{0.4999, 1},
		{0.5, 2},
		{0.75, 3},
		{0.8999, 3},
		{0.9, 4},
		{1.0, 4},
	}
	for _, c := range cases {
		if got := def.FromLevel(c.height); got != c.want {
			t.Fatalf("FromLevel(%g) = %d (%s), want %d (%s)",
				c.height, got, def.Type(got).Name, c.want, def.Type(c.want).Name)
		}
	}
}

func TestFromLevelPanicsBeyondTable(t *testing.T) {
	def := DefaultTerrainDef()
	defer func() {
		if recover() == nil {
			t.Fatal("FromLevel(2) did not panic")
		}
	}()
	def.FromLevel(2)
}

func TestFromLevelRange(t *testing.T) {
	def := DefaultTerrainDef()

	// Midway between the two water levels interpolates.
	lo, hi, frac := def.FromLevelRange(0.375)
	if lo != 0 || hi != 1 {
		t.Fatalf("bracket for 0.375 = (%d,%d), want (0,1)", lo, hi)
	}
	if math.Abs(frac-0.5) > 1e-12 {
		t.Fatalf("fraction for 0.375 = %g, want 0.5", frac)
	}

	// Crossing the coastline never blends.
	lo, hi, frac = def.FromLevelRange(0.6)
	if lo != 1 || hi != 2 {
		t.Fatalf("bracket for 0.6 = (%d,%d), want (1,2)", lo, hi)
	}
	if frac != 1 {
		t.Fatalf("coastline fraction = %g, want 1", frac)
	}

	// The lowest category brackets against itself with full weight.
	lo, hi, frac = def.FromLevelRange(0.1)
	if lo != 0 || hi != 0 || frac != 1 {
		t.Fatalf("bracket for 0.1 = (%d,%d,%g), want (0,0,1)", lo, hi, frac)
	}
}

func TestGroundCompositionSumsToOne(t *testing.T) {
	def := DefaultTerrainDef()
	land := def.Type(2)
	for _, rain := range []float64{0, 0.3, 1} {
		for _, drain := range []float64{0, 0.9, 1} {
			for _, h := range []float64{0.5, 0.7, 1} {
				g := GroundFor(land, rain, drain, h)
				total := g.Water + g.Sand + g.Soil + g.Rock
				if math.Abs(total-1) > 1e-9 {
					t.Fatalf("ground(%g,%g,%g) sums to %g", rain, drain, h, total)
				}
			}
		}
	}
}

func TestGroundOnWater(t *testing.T) {
	def := DefaultTerrainDef()
	g := GroundFor(def.Type(0), 0.5, 0.5, 0.1)
	if g.Water != 1 || g.Sand != 0 || g.Soil != 0 || g.Rock != 0 {
		t.Fatalf("water cell ground = %+v, want pure water", g)
	}
}

func TestVegetationCompositionSumsToOne(t *testing.T) {
	def := DefaultTerrainDef()
	land := def.Type(2)
	for _, rain := range []float64{0, 0.4, 1} {
		for _, temp := range []float64{0, 0.5, 1} {
			for _, h := range []float64{0.5, 0.85, 1} {
				v := VegetationFor(land, rain, temp, h)
				total := v.Bare + v.Deciduous + v.Boreal
				if math.Abs(total-1) > 1e-9 {
					t.Fatalf("vegetation(%g,%g,%g) sums to %g", rain, temp, h, total)
				}
			}
		}
	}
}

func TestVegetationOnWater(t *testing.T) {
	def := DefaultTerrainDef()
	v := VegetationFor(def.Type(1), 0.5, 0.5, 0.3)
	if v.Bare != 1 || v.Deciduous != 0 || v.Boreal != 0 {
		t.Fatalf("water cell vegetation = %+v, want pure bare", v)
	}
}

func TestVegetationFollowsClimate(t *testing.T) {
	def := DefaultTerrainDef()
	land := def.Type(2)

	hot := VegetationFor(land, 0.9, 0.9, 0.5)
	cold := VegetationFor(land, 0.9, 0.1, 0.5)
	if hot.Deciduous <= cold.Deciduous {
		t.Fatalf("deciduous share should grow with temperature: hot %g, cold %g",
			hot.Deciduous, cold.Deciduous)
	}
	if cold.Boreal <= hot.Boreal {
		t.Fatalf("boreal share should grow as temperature falls: cold %g, hot %g",
			cold.Boreal, hot.Boreal)
	}

	dry := VegetationFor(land, 0.05, 0.5, 0.5)
	wet := VegetationFor(land, 0.95, 0.5, 0.5)
	if dry.Bare <= wet.Bare {
		t.Fatalf("bare share should grow as rain falls: dry %g, wet %g", dry.Bare, wet.Bare)
	}
}
