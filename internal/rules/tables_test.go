package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildlands/hexcrawl-api/internal/rules"
)

func TestTerrainTableIsTotal(t *testing.T) {
	tables := rules.DefaultTables()

	for _, kind := range rules.AllTerrainKinds {
		def, ok := tables.Terrain(kind)
		require.True(t, ok, "terrain %q has no definition", kind)

		if !def.Impassable() {
			assert.Greater(t, def.TravelModifier, 0.0, "terrain %q", kind)
		}
	}
}

func TestWeatherTableIsTotal(t *testing.T) {
	tables := rules.DefaultTables()

	for _, kind := range rules.AllWeatherKinds {
		def, ok := tables.Weather(kind)
		require.True(t, ok, "weather %q has no definition", kind)
		assert.Greater(t, def.TravelModifier, 0.0, "weather %q", kind)
		assert.NotEmpty(t, def.Severity, "weather %q", kind)
	}
}

func TestPaceTableIsTotal(t *testing.T) {
	tables := rules.DefaultTables()

	for _, kind := range rules.AllPaceKinds {
		def, ok := tables.Pace(kind)
		require.True(t, ok, "pace %q has no definition", kind)
		assert.GreaterOrEqual(t, def.HexesPerDay, 1, "pace %q", kind)
	}
}

func TestPinnedTableValues(t *testing.T) {
	tables := rules.DefaultTables()

	// Values that GM tooling depends on.
	rain, ok := tables.Weather(rules.WeatherRain)
	require.True(t, ok)
	assert.Equal(t, 0.75, rain.TravelModifier)

	normal, ok := tables.Pace(rules.PaceNormal)
	require.True(t, ok)
	assert.Equal(t, 4, normal.HexesPerDay)

	plains, ok := tables.Terrain(rules.TerrainPlains)
	require.True(t, ok)
	assert.Equal(t, 1.0, plains.TravelModifier)

	water, ok := tables.Terrain(rules.TerrainWater)
	require.True(t, ok)
	assert.True(t, water.Impassable())
}

func TestTerrainFallbackIsPlains(t *testing.T) {
	tables := rules.DefaultTables()

	def := tables.TerrainOrDefault(rules.TerrainKind("not-a-terrain"))
	plains, _ := tables.Terrain(rules.TerrainPlains)
	assert.Equal(t, plains, def)
}

func TestWeatherFallbackIsClear(t *testing.T) {
	tables := rules.DefaultTables()

	def := tables.WeatherOrDefault(rules.WeatherKind("not-a-weather"))
	clear, _ := tables.Weather(rules.WeatherClear)
	assert.Equal(t, clear, def)
}

func TestWeatherRollBuckets(t *testing.T) {
	// The bucket boundaries are a compatibility contract:
	// 1-4 clear, 5-6 overcast, 7 fog, 8-9 rain, 10 heavy-rain,
	// 11 thunderstorm, 12 snow.
	expected := map[int]rules.WeatherKind{
		1:  rules.WeatherClear,
		2:  rules.WeatherClear,
		3:  rules.WeatherClear,
		4:  rules.WeatherClear,
		5:  rules.WeatherOvercast,
		6:  rules.WeatherOvercast,
		7:  rules.WeatherFog,
		8:  rules.WeatherRain,
		9:  rules.WeatherRain,
		10: rules.WeatherHeavyRain,
		11: rules.WeatherThunderstorm,
		12: rules.WeatherSnow,
	}

	for roll, want := range expected {
		assert.Equal(t, want, rules.WeatherForRoll(roll), "roll %d", roll)
	}
}

func TestWeatherRollClampsOutOfRange(t *testing.T) {
	assert.Equal(t, rules.WeatherClear, rules.WeatherForRoll(0))
	assert.Equal(t, rules.WeatherClear, rules.WeatherForRoll(-3))
	assert.Equal(t, rules.WeatherSnow, rules.WeatherForRoll(13))
}

func TestExhaustionEffects(t *testing.T) {
	assert.Equal(t, "No effect", rules.ExhaustionEffect(0))
	assert.Equal(t, "Death", rules.ExhaustionEffect(rules.MaxExhaustion))

	for level := 0; level <= rules.MaxExhaustion; level++ {
		assert.NotEmpty(t, rules.ExhaustionEffect(level), "level %d", level)
	}

	// Out-of-range levels clamp instead of panicking.
	assert.Equal(t, "No effect", rules.ExhaustionEffect(-1))
	assert.Equal(t, "Death", rules.ExhaustionEffect(99))
}

func TestNewTablesOverrides(t *testing.T) {
	custom := map[rules.TerrainKind]rules.TerrainDefinition{
		rules.TerrainPlains: {TravelModifier: 2.0},
	}
	tables := rules.NewTables(&rules.TablesConfig{Terrain: custom})

	def, ok := tables.Terrain(rules.TerrainPlains)
	require.True(t, ok)
	assert.Equal(t, 2.0, def.TravelModifier)

	// Mutating the input map after construction must not leak through.
	custom[rules.TerrainPlains] = rules.TerrainDefinition{TravelModifier: 9.0}
	def, _ = tables.Terrain(rules.TerrainPlains)
	assert.Equal(t, 2.0, def.TravelModifier)

	// Untouched tables keep their defaults.
	normal, ok := tables.Pace(rules.PaceNormal)
	require.True(t, ok)
	assert.Equal(t, 4, normal.HexesPerDay)
}
