package terrain

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/wildlands/hexcrawl-api/internal/rules"
)

// GenConfig holds wilderness generation parameters.
type GenConfig struct {
	Width  int   // grid width in hexes
	Height int   // grid height in hexes
	Seed   int64 // 0 picks a random seed

	// Elevation thresholds, 0.0-1.0.
	WaterLevel    float64
	MountainLevel float64
}

// DefaultGenConfig returns a reasonable starting configuration for a
// regional hexcrawl map.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:         24,
		Height:        18,
		Seed:          0,
		WaterLevel:    0.28,
		MountainLevel: 0.78,
	}
}

// noiseScale spreads features over several hexes so terrain clumps into
// believable regions instead of per-hex static.
const noiseScale = 0.12

// Generate builds a populated index from layered simplex noise. Elevation,
// moisture, and temperature maps are sampled independently and combined
// into terrain and climate assignments. The same seed always yields the
// same map.
func Generate(cfg GenConfig) *Index {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	idx := NewIndex()

	for col := 0; col < cfg.Width; col++ {
		for row := 0; row < cfg.Height; row++ {
			x := float64(col) * noiseScale
			y := float64(row) * noiseScale

			elev := elevNoise.Eval2(x, y)
			moist := moistNoise.Eval2(x, y)
			temp := tempNoise.Eval2(x, y)

			terrain, climate := classify(cfg, elev, moist, temp)
			if terrain != rules.TerrainPlains {
				idx.SetTerrain(col, row, terrain)
			}
			if climate != rules.ClimateNone {
				idx.SetClimate(col, row, climate)
			}
		}
	}

	return idx
}

// classify derives a hex's terrain and climate from its noise samples.
// Plains is returned as the terrain baseline and left unassigned in the
// index, matching the engine's defaulting rule.
func classify(cfg GenConfig, elev, moist, temp float64) (rules.TerrainKind, rules.ClimateKind) {
	switch {
	case elev < cfg.WaterLevel:
		return rules.TerrainWater, rules.ClimateMaritime
	case elev > cfg.MountainLevel:
		return rules.TerrainMountains, rules.ClimateTemperate
	case temp < 0.2:
		return rules.TerrainArctic, rules.ClimateArctic
	case temp > 0.8 && moist < 0.3:
		return rules.TerrainDesert, rules.ClimateArid
	case temp > 0.7 && moist > 0.7:
		return rules.TerrainJungle, rules.ClimateTropical
	case moist > 0.7 && elev < 0.45:
		return rules.TerrainSwamp, rules.ClimateTemperate
	case moist > 0.55:
		return rules.TerrainForest, rules.ClimateTemperate
	case elev > 0.62:
		return rules.TerrainHills, rules.ClimateTemperate
	default:
		return rules.TerrainPlains, rules.ClimateNone
	}
}
