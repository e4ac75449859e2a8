package expedition

import (
	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/rules"
)

// CreateHexcrawlInput defines the request for creating a hexcrawl. Zero
// meter settings fall back to the entity defaults.
type CreateHexcrawlInput struct {
	MeterMax       int
	MeterThreshold int
	Pace           rules.PaceKind
	Start          *entities.HexCoord
}

// CreateHexcrawlOutput defines the response for creating a hexcrawl.
type CreateHexcrawlOutput struct {
	State *entities.HexcrawlState
}

// GetHexcrawlInput defines the request for loading a hexcrawl.
type GetHexcrawlInput struct {
	HexcrawlID string
}

// GetHexcrawlOutput defines the response for loading a hexcrawl. Remaining
// and MaxHexes are derived from the rule tables at read time.
type GetHexcrawlOutput struct {
	State     *entities.HexcrawlState
	MaxHexes  int
	Remaining int
}

// MovePartyInput defines the request for moving the party one hex.
type MovePartyInput struct {
	HexcrawlID string
	Col        int
	Row        int
}

// MovePartyOutput defines the response for moving the party. Warnings carry
// the permissive-engine conditions (impassable terrain, budget overshoot)
// that a stricter caller may want to surface before committing.
type MovePartyOutput struct {
	Cost               int
	Remaining          int
	EncounterTriggered bool
	Warnings           []string
	State              *entities.HexcrawlState
}

// EndDayInput defines the request for ending the current day.
type EndDayInput struct {
	HexcrawlID string
}

// EndDayOutput defines the response for ending the current day.
type EndDayOutput struct {
	Day   int
	State *entities.HexcrawlState
}

// RollWeatherInput defines the request for rolling the day's weather.
type RollWeatherInput struct {
	HexcrawlID string
}

// RollWeatherOutput defines the response for rolling the day's weather.
type RollWeatherOutput struct {
	Weather  rules.WeatherKind
	MaxHexes int
	State    *entities.HexcrawlState
}

// RecordLogEntryInput defines the request for appending a travel log entry.
type RecordLogEntryInput struct {
	HexcrawlID         string
	Col                int
	Row                int
	EncounterTriggered bool
	Notes              string
}

// RecordLogEntryOutput defines the response for appending a travel log entry.
type RecordLogEntryOutput struct {
	Entry entities.TravelLogEntry
	State *entities.HexcrawlState
}

// AdjustMeterInput defines the request for changing the survival meter.
// Positive amounts restore, negative amounts spend.
type AdjustMeterInput struct {
	HexcrawlID string
	Amount     int
}

// AdjustMeterOutput defines the response for changing the survival meter.
type AdjustMeterOutput struct {
	Value       int
	AtThreshold bool
	Depleted    bool
	State       *entities.HexcrawlState
}

// AdjustExhaustionInput defines the request for changing the exhaustion
// level. Positive levels add, negative levels remove.
type AdjustExhaustionInput struct {
	HexcrawlID string
	Levels     int
}

// AdjustExhaustionOutput defines the response for changing the exhaustion
// level.
type AdjustExhaustionOutput struct {
	Level  int
	Effect string
	State  *entities.HexcrawlState
}
