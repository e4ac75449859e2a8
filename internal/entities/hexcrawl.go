// Package entities defines the hexcrawl aggregate and its persisted layout.
// The JSON field names are the persistence contract: serialized state must
// round-trip losslessly, including travel log order and timestamps.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/rules"
)

var _ core.Entity = (*HexcrawlState)(nil)

// EntityTypeHexcrawl is the core.Entity type string for hexcrawl aggregates.
const EntityTypeHexcrawl = "hexcrawl"

// HexCoord addresses one cell of the hexagonal travel grid.
type HexCoord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// SurvivalMeter tracks the party's wilderness endurance. Invariant:
// 0 <= Current <= Max, enforced by the engine's clamped mutators.
type SurvivalMeter struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Threshold int `json:"threshold"`
}

// VisitedHex records one hex entered on a given day.
type VisitedHex struct {
	Col int `json:"col"`
	Row int `json:"row"`
	Day int `json:"day"`
}

// TravelLogEntry is one record of the append-only travel log. Entries are
// immutable once appended; Day and Timestamp are stamped by the engine at
// append time and never recomputed.
type TravelLogEntry struct {
	Day                int               `json:"day"`
	Col                int               `json:"col"`
	Row                int               `json:"row"`
	Terrain            rules.TerrainKind `json:"terrain"`
	EncounterTriggered bool              `json:"encounterTriggered"`
	Notes              string            `json:"notes,omitempty"`
	Timestamp          int64             `json:"timestamp"`
}

// HexcrawlState is the aggregate root for one campaign's wilderness travel.
// It is owned by exactly one map/session at a time and carries no internal
// synchronization.
type HexcrawlState struct {
	ID              string            `json:"id"`
	Enabled         bool              `json:"enabled"`
	CurrentDay      int               `json:"currentDay"`
	PartyPosition   *HexCoord         `json:"partyPosition"`
	HexesMovedToday int               `json:"hexesMovedToday"`
	Pace            rules.PaceKind    `json:"pace"`
	CurrentWeather  rules.WeatherKind `json:"currentWeather"`
	SurvivalMeter   SurvivalMeter     `json:"survivalMeter"`
	ExhaustionLevel int               `json:"exhaustionLevel"`
	VisitedHexes    []VisitedHex      `json:"visitedHexes"`
	TravelLog       []TravelLogEntry  `json:"travelLog"`
	RoleAssignments map[string]string `json:"roleAssignments"`
}

// Default meter settings for a freshly created hexcrawl.
const (
	DefaultMeterMax       = 8
	DefaultMeterThreshold = 2
)

// NewHexcrawlState creates a hexcrawl in its initial disabled state: day 1,
// normal pace, clear weather, full survival meter, no party position.
func NewHexcrawlState(id string) *HexcrawlState {
	return &HexcrawlState{
		ID:             id,
		CurrentDay:     1,
		Pace:           rules.PaceNormal,
		CurrentWeather: rules.WeatherClear,
		SurvivalMeter: SurvivalMeter{
			Current:   DefaultMeterMax,
			Max:       DefaultMeterMax,
			Threshold: DefaultMeterThreshold,
		},
		VisitedHexes:    []VisitedHex{},
		TravelLog:       []TravelLogEntry{},
		RoleAssignments: map[string]string{},
	}
}

// GetID implements core.Entity.
func (s *HexcrawlState) GetID() string {
	return s.ID
}

// GetType implements core.Entity.
func (s *HexcrawlState) GetType() string {
	return EntityTypeHexcrawl
}

// Validate checks the aggregate's invariants. Repositories call it after
// deserializing so corrupt persisted state is rejected loudly instead of
// silently resetting a GM's campaign history.
func (s *HexcrawlState) Validate() error {
	vb := errors.NewValidationBuilder()

	if s.ID == "" {
		vb.RequiredField("id")
	}
	if s.CurrentDay < 1 {
		vb.InvalidField("currentDay", "must be at least 1")
	}
	if s.HexesMovedToday < 0 {
		vb.InvalidField("hexesMovedToday", "must not be negative")
	}
	if s.SurvivalMeter.Max < 0 {
		vb.InvalidField("survivalMeter.max", "must not be negative")
	}
	if s.SurvivalMeter.Current < 0 || s.SurvivalMeter.Current > s.SurvivalMeter.Max {
		vb.InvalidField("survivalMeter.current", "must be within [0, max]")
	}
	if s.ExhaustionLevel < 0 || s.ExhaustionLevel > rules.MaxExhaustion {
		vb.InvalidField("exhaustionLevel", "must be within [0, 6]")
	}

	return vb.Build()
}

// Clone returns a deep copy. Repositories hand out clones so callers cannot
// mutate stored state through a returned pointer.
func (s *HexcrawlState) Clone() *HexcrawlState {
	if s == nil {
		return nil
	}

	out := *s

	if s.PartyPosition != nil {
		pos := *s.PartyPosition
		out.PartyPosition = &pos
	}

	out.VisitedHexes = make([]VisitedHex, len(s.VisitedHexes))
	copy(out.VisitedHexes, s.VisitedHexes)

	out.TravelLog = make([]TravelLogEntry, len(s.TravelLog))
	copy(out.TravelLog, s.TravelLog)

	out.RoleAssignments = make(map[string]string, len(s.RoleAssignments))
	for k, v := range s.RoleAssignments {
		out.RoleAssignments[k] = v
	}

	return &out
}
