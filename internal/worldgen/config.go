package worldgen

import "strconv"

// NumberIntensity pairs a feature count with a per-feature intensity.
type NumberIntensity struct {
	Number    int
	Intensity float64
}

// PerlinConf configures one noise octave.
type PerlinConf struct {
	Frequency float64
	Intensity float64
}

// HeightmapConf controls elevation synthesis.
type HeightmapConf struct {
	Base            float64
	PlanchonDarboux bool
	Slopes          NumberIntensity
	Clumps          NumberIntensity
	Depressions     NumberIntensity
	ClumpDecay      float64
	ClumpEnd        float64
	Perlin1         PerlinConf
	Perlin2         PerlinConf
	RelaxPasses     int
	RelaxT          float64
}

// RainConf controls the innate rainfall term.
type RainConf struct {
	HeightCoeff float64
	Perlin      PerlinConf
}

// WindConf controls the vapor-transport rainfall model.
type WindConf struct {
	Enabled      bool
	InitialVapor float64
	PickupRate   float64
	RainRateLow  float64
	RainRateHigh float64
	DriftDegrees float64
	StepDistance float64
}

// HydrologyConf controls rainfall and river extraction.
type HydrologyConf struct {
	MinRiverFlux float64
	SmoothPasses int
	Rain         RainConf
	Wind         WindConf
}

// ThermologyConf controls the temperature field.
type ThermologyConf struct {
	BandIntensity float64
	Noise         PerlinConf
}

// Config is the full generator configuration. It is expected to arrive
// pre-parsed; file formats are a caller concern.
type Config struct {
	Heightmap  HeightmapConf
	Hydrology  HydrologyConf
	Thermology ThermologyConf
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Heightmap: HeightmapConf{
			Base:            0,
			PlanchonDarboux: true,
			Slopes:          NumberIntensity{Number: 1, Intensity: 0.00025},
			Clumps:          NumberIntensity{Number: 4, Intensity: 0.12},
			Depressions:     NumberIntensity{Number: 2, Intensity: -0.08},
			ClumpDecay:      0.9,
			ClumpEnd:        0.01,
			Perlin1:         PerlinConf{Frequency: 0.001, Intensity: 1.0},
			Perlin2:         PerlinConf{Frequency: 0.01, Intensity: 0.2},
			RelaxPasses:     1,
			RelaxT:          0.5,
		},
		Hydrology: HydrologyConf{
			MinRiverFlux: 25,
			SmoothPasses: 3,
			Rain: RainConf{
				HeightCoeff: 1.0,
				Perlin:      PerlinConf{Frequency: 0.01, Intensity: 0.5},
			},
			Wind: WindConf{
				Enabled:      true,
				InitialVapor: 10,
				PickupRate:   0.1,
				RainRateLow:  0.01,
				RainRateHigh: 0.02,
				DriftDegrees: 2.5,
				StepDistance: 40,
			},
		},
		Thermology: ThermologyConf{
			BandIntensity: 1.0,
			Noise:         PerlinConf{Frequency: 0.005, Intensity: 0.35},
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys are ignored; malformed values keep the default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}

	setBool("planchon_darboux", &c.Heightmap.PlanchonDarboux)
	setInt("slopes", &c.Heightmap.Slopes.Number)
	setFloat("slope_intensity", &c.Heightmap.Slopes.Intensity)
	setInt("clumps", &c.Heightmap.Clumps.Number)
	setFloat("clump_intensity", &c.Heightmap.Clumps.Intensity)
	setInt("depressions", &c.Heightmap.Depressions.Number)
	setFloat("depression_intensity", &c.Heightmap.Depressions.Intensity)
	setFloat("perlin1_frequency", &c.Heightmap.Perlin1.Frequency)
	setFloat("perlin1_intensity", &c.Heightmap.Perlin1.Intensity)
	setFloat("perlin2_frequency", &c.Heightmap.Perlin2.Frequency)
	setFloat("perlin2_intensity", &c.Heightmap.Perlin2.Intensity)
	setInt("relax_passes", &c.Heightmap.RelaxPasses)

	setFloat("min_river_flux", &c.Hydrology.MinRiverFlux)
	setFloat("rain_height_coeff", &c.Hydrology.Rain.HeightCoeff)
	setFloat("rain_perlin_frequency", &c.Hydrology.Rain.Perlin.Frequency)
	setFloat("rain_perlin_intensity", &c.Hydrology.Rain.Perlin.Intensity)
	setBool("wind", &c.Hydrology.Wind.Enabled)
	setFloat("wind_vapor", &c.Hydrology.Wind.InitialVapor)
	setFloat("wind_drift", &c.Hydrology.Wind.DriftDegrees)

	setFloat("band_intensity", &c.Thermology.BandIntensity)
	setFloat("thermology_noise_frequency", &c.Thermology.Noise.Frequency)
	setFloat("thermology_noise_intensity", &c.Thermology.Noise.Intensity)
	return c
}
