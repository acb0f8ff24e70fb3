package worldgen

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"worldgen/internal/polymap"
)

// SpatialFunc is a scalar field over the plane, composed additively onto
// mesh vertices.
type SpatialFunc interface {
	Value(x, y float64) float64
}

// Slope is a random linear gradient across the region.
type Slope struct {
	m, cx, cy float64
}

// NewSlope draws the gradient direction from rng, centered on the region.
func NewSlope(w, h float64, rng *rand.Rand) Slope {
	return Slope{
		cx: w / 2,
		cy: h / 2,
		m:  float64(rng.Intn(300)-100) / 100.0,
	}
}

// Value implements SpatialFunc.
func (s Slope) Value(x, y float64) float64 {
	return (x-s.cx)*s.m - (y-s.cy)
}

// Band is a linear falloff from an axis through (cx, cy) with slope m,
// reaching zero at radius. Used for latitude-style temperature bands.
type Band struct {
	cx, cy, m, radius float64
}

// NewBand constructs a band.
func NewBand(cx, cy, m, radius float64) Band {
	return Band{cx: cx, cy: cy, m: m, radius: radius}
}

// Value implements SpatialFunc.
func (b Band) Value(x, y float64) float64 {
	distance := (x-b.cx)*b.m - (y - b.cy)
	if distance < 0 {
		distance = -distance
	}
	v := 1 - distance/b.radius
	if v < 0 {
		return 0
	}
	return v
}

// PerlinField samples Perlin noise at a fixed frequency and random offset.
type PerlinField struct {
	frequency, xShift, yShift float64
	noise                     *perlin.Perlin
}

// NewPerlinField draws the offset and noise seed from rng so the whole
// pipeline stays deterministic under one seed.
func NewPerlinField(frequency float64, rng *rand.Rand) PerlinField {
	return PerlinField{
		frequency: frequency,
		xShift:    float64(rng.Intn(100)),
		yShift:    float64(rng.Intn(100)),
		noise:     perlin.NewPerlin(2, 2, 3, rng.Int63()),
	}
}

// Value implements SpatialFunc. The result is shifted into [0,1].
func (p PerlinField) Value(x, y float64) float64 {
	n := p.noise.Noise2D(p.xShift+x*p.frequency, p.yShift+y*p.frequency)
	return (n + 1) / 2
}

// SimplexField samples OpenSimplex noise, normalized to [0,1].
type SimplexField struct {
	frequency, xShift, yShift float64
	noise                     opensimplex.Noise
}

// NewSimplexField draws the offset and noise seed from rng.
func NewSimplexField(frequency float64, rng *rand.Rand) SimplexField {
	return SimplexField{
		frequency: frequency,
		xShift:    float64(rng.Intn(100)),
		yShift:    float64(rng.Intn(100)),
		noise:     opensimplex.NewNormalized(rng.Int63()),
	}
}

// Value implements SpatialFunc.
func (s SimplexField) Value(x, y float64) float64 {
	return s.noise.Eval2(s.xShift+x*s.frequency, s.yShift+y*s.frequency)
}

// addField composes f onto the vertex field, scaled by intensity.
func addField(m *polymap.PolyMap, d *polymap.VertexData[float64], f SpatialFunc, intensity float64) {
	d.Update(m, func(_ polymap.VertexID, v *polymap.Vertex, h *float64) {
		*h += f.Value(v.X(), v.Y()) * intensity
	})
}
