package worldgen

import (
	"math/rand"
	"testing"

	"worldgen/internal/polymap"
)

func TestBandFalloff(t *testing.T) {
	b := NewBand(50, 50, 0, 50)
	if got := b.Value(10, 50); got != 1 {
		t.Fatalf("band on its axis = %g, want 1", got)
	}
	if got := b.Value(10, 75); got != 0.5 {
		t.Fatalf("band halfway out = %g, want 0.5", got)
	}
	if got := b.Value(10, 25); got != 0.5 {
		t.Fatalf("band is not symmetric: %g, want 0.5", got)
	}
	if got := b.Value(10, 150); got != 0 {
		t.Fatalf("band beyond its radius = %g, want 0", got)
	}
}

func TestSlopeIsLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSlope(100, 100, rng)
	// A linear field satisfies the midpoint identity.
	mid := s.Value(50, 20)
	if avg := (s.Value(0, 20) + s.Value(100, 20)) / 2; avg != mid {
		t.Fatalf("slope not linear in x: midpoint %g, average %g", mid, avg)
	}
	if avg := (s.Value(50, 0) + s.Value(50, 40)) / 2; avg != mid {
		t.Fatalf("slope not linear in y: midpoint %g, average %g", mid, avg)
	}
}

func TestPerlinFieldRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := NewPerlinField(0.01, rng)
	for x := 0.0; x < 500; x += 17 {
		for y := 0.0; y < 500; y += 13 {
			v := p.Value(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("perlin value %g at (%g,%g) outside [0,1]", v, x, y)
			}
		}
	}
}

func TestPerlinFieldDeterministic(t *testing.T) {
	a := NewPerlinField(0.01, rand.New(rand.NewSource(3)))
	b := NewPerlinField(0.01, rand.New(rand.NewSource(3)))
	for x := 0.0; x < 100; x += 7 {
		if a.Value(x, x) != b.Value(x, x) {
			t.Fatalf("same-seed perlin fields diverge at %g", x)
		}
	}
}

func TestSimplexFieldRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s := NewSimplexField(0.005, rng)
	for x := 0.0; x < 500; x += 19 {
		for y := 0.0; y < 500; y += 11 {
			v := s.Value(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("simplex value %g at (%g,%g) outside [0,1]", v, x, y)
			}
		}
	}
}

func TestAddFieldScalesByIntensity(t *testing.T) {
	m := gridMesh(t, 3)
	band := NewBand(15, 15, 0, 15)
	b := NewHeightMapBuilder(m, 0)
	b.AddField(m, band, 2)
	for i := range b.vertices.Data {
		v := m.Vertex(polymap.VertexID(i))
		if want := band.Value(v.X(), v.Y()) * 2; b.vertices.Data[i] != want {
			t.Fatalf("vertex %d height %g, want %g", i, b.vertices.Data[i], want)
		}
	}
}
