package rules

// WeatherKind identifies one of the closed set of weather conditions.
// Exactly one weather kind is current at any time during play.
type WeatherKind string

// Weather kinds
const (
	WeatherClear        WeatherKind = "clear"
	WeatherOvercast     WeatherKind = "overcast"
	WeatherFog          WeatherKind = "fog"
	WeatherRain         WeatherKind = "rain"
	WeatherHeavyRain    WeatherKind = "heavy-rain"
	WeatherThunderstorm WeatherKind = "thunderstorm"
	WeatherSnow         WeatherKind = "snow"
	WeatherBlizzard     WeatherKind = "blizzard"
	WeatherHail         WeatherKind = "hail"
	WeatherSandstorm    WeatherKind = "sandstorm"
	WeatherExtremeHeat  WeatherKind = "extreme-heat"
	WeatherExtremeCold  WeatherKind = "extreme-cold"
)

// AllWeatherKinds lists every weather kind.
var AllWeatherKinds = []WeatherKind{
	WeatherClear,
	WeatherOvercast,
	WeatherFog,
	WeatherRain,
	WeatherHeavyRain,
	WeatherThunderstorm,
	WeatherSnow,
	WeatherBlizzard,
	WeatherHail,
	WeatherSandstorm,
	WeatherExtremeHeat,
	WeatherExtremeCold,
}

// Severity ranks how punishing a weather condition is. It has no direct
// numeric effect on the engine; presentation layers use it to pick warnings.
type Severity string

// Severity tiers
const (
	SeverityCalm     Severity = "calm"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityExtreme  Severity = "extreme"
)

// WeatherDefinition holds the static travel rules for a weather kind.
type WeatherDefinition struct {
	// TravelModifier multiplies the day's movement budget.
	TravelModifier float64

	Severity Severity
}

var weatherDefinitions = map[WeatherKind]WeatherDefinition{
	WeatherClear:        {TravelModifier: 1.0, Severity: SeverityCalm},
	WeatherOvercast:     {TravelModifier: 1.0, Severity: SeverityCalm},
	WeatherFog:          {TravelModifier: 0.75, Severity: SeverityModerate},
	WeatherRain:         {TravelModifier: 0.75, Severity: SeverityModerate},
	WeatherHeavyRain:    {TravelModifier: 0.5, Severity: SeveritySevere},
	WeatherThunderstorm: {TravelModifier: 0.5, Severity: SeveritySevere},
	WeatherSnow:         {TravelModifier: 0.5, Severity: SeverityModerate},
	WeatherBlizzard:     {TravelModifier: 0.25, Severity: SeverityExtreme},
	WeatherHail:         {TravelModifier: 0.5, Severity: SeveritySevere},
	WeatherSandstorm:    {TravelModifier: 0.25, Severity: SeverityExtreme},
	WeatherExtremeHeat:  {TravelModifier: 0.75, Severity: SeveritySevere},
	WeatherExtremeCold:  {TravelModifier: 0.75, Severity: SeveritySevere},
}

// WeatherDie is the die size used for the daily weather roll.
const WeatherDie = 12

// weatherRollTable maps each face of the weather die to a weather kind.
// The bucket boundaries are load-bearing for GM tooling built on top of the
// engine and must not change: 1-4 clear, 5-6 overcast, 7 fog, 8-9 rain,
// 10 heavy-rain, 11 thunderstorm, 12 snow.
var weatherRollTable = [WeatherDie]WeatherKind{
	WeatherClear,        // 1
	WeatherClear,        // 2
	WeatherClear,        // 3
	WeatherClear,        // 4
	WeatherOvercast,     // 5
	WeatherOvercast,     // 6
	WeatherFog,          // 7
	WeatherRain,         // 8
	WeatherRain,         // 9
	WeatherHeavyRain,    // 10
	WeatherThunderstorm, // 11
	WeatherSnow,         // 12
}

// WeatherForRoll maps a d12 result to its weather kind. Rolls outside
// [1, WeatherDie] are clamped to the nearest face.
func WeatherForRoll(roll int) WeatherKind {
	if roll < 1 {
		roll = 1
	}
	if roll > WeatherDie {
		roll = WeatherDie
	}
	return weatherRollTable[roll-1]
}
