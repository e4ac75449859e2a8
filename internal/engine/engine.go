// Package engine implements the hexcrawl travel state machine: daily
// movement budgets from pace and weather, per-hex movement costs from
// terrain, survival meter and exhaustion attrition, and the append-only
// travel log.
//
// The engine favors permissive mutation over rejection. Moving past the
// daily budget or onto impassable terrain is warned, never blocked; a GM
// can always override the numbers. The only hard failures live at the
// persistence boundary.
package engine

import (
	"context"
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/pkg/clock"
	"github.com/wildlands/hexcrawl-api/internal/rules"
)

// TerrainSource provides the terrain kind at a hex. The terrain index is
// owned by the map's annotation data; the engine only queries it.
type TerrainSource interface {
	TerrainAt(col, row int) rules.TerrainKind
}

// EncounterDie is rolled after each hex entered; a 1 triggers an encounter.
const EncounterDie = 6

// Config holds the dependencies for a travel engine.
type Config struct {
	// State is the aggregate the engine mutates. Required.
	State *entities.HexcrawlState

	// Terrain resolves hex coordinates to terrain kinds. Required.
	Terrain TerrainSource

	// Tables defaults to the compiled-in rule tables.
	Tables *rules.Tables

	// Roller defaults to dice.DefaultRoller.
	Roller dice.Roller

	// Clock defaults to the system clock.
	Clock clock.Clock

	// EventBus is optional; when nil no events are published.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.State == nil {
		vb.RequiredField("State")
	}
	if c.Terrain == nil {
		vb.RequiredField("Terrain")
	}

	return vb.Build()
}

// Engine is the hexcrawl travel state machine. It performs pure in-memory
// computation, holds no locks, and is intended to be owned and called by
// exactly one session at a time. Derived values are recomputed on each
// query, never cached, so reads are always consistent with the rule tables.
type Engine struct {
	state   *entities.HexcrawlState
	terrain TerrainSource
	tables  *rules.Tables
	roller  dice.Roller
	clock   clock.Clock
	bus     events.EventBus
}

// New creates a travel engine over the given state.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tables := cfg.Tables
	if tables == nil {
		tables = rules.DefaultTables()
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Engine{
		state:   cfg.State,
		terrain: cfg.Terrain,
		tables:  tables,
		roller:  roller,
		clock:   clk,
		bus:     cfg.EventBus,
	}, nil
}

// State returns the aggregate the engine operates on. Callers must treat it
// as read-only and go through engine operations for mutation.
func (e *Engine) State() *entities.HexcrawlState {
	return e.state
}

// MaxHexesToday returns the day's movement budget: the pace's base budget
// scaled by the current weather, floored, and never less than 1. A party
// can always attempt one hex per day no matter how severe the conditions.
func (e *Engine) MaxHexesToday() int {
	pace := e.tables.PaceOrDefault(e.state.Pace)
	weather := e.tables.WeatherOrDefault(e.state.CurrentWeather)

	budget := int(math.Floor(float64(pace.HexesPerDay) * weather.TravelModifier))
	if budget < 1 {
		budget = 1
	}
	return budget
}

// MovementCost returns the movement points entering the hex consumes:
// max(1, round(1/modifier)), half rounding away from zero. Impassable
// terrain (modifier <= 0) is reported as a FailedPrecondition error; see
// IsImpassable.
func (e *Engine) MovementCost(col, row int) (int, error) {
	kind := e.terrain.TerrainAt(col, row)
	def := e.tables.TerrainOrDefault(kind)

	if def.Impassable() {
		return 0, errors.FailedPreconditionf(
			"terrain %q at (%d, %d) is impassable", kind, col, row)
	}

	cost := int(math.Round(1 / def.TravelModifier))
	if cost < 1 {
		cost = 1
	}
	return cost, nil
}

// IsImpassable reports whether an error from MovementCost marks the hex as
// impassable without a special means of travel.
func IsImpassable(err error) bool {
	return errors.IsFailedPrecondition(err)
}

// CanMoveToday reports whether movement budget remains for the day.
func (e *Engine) CanMoveToday() bool {
	return e.state.HexesMovedToday < e.MaxHexesToday()
}

// RemainingMovement returns the unspent movement points for the day,
// clamped at zero once the budget is overshot.
func (e *Engine) RemainingMovement() int {
	remaining := e.MaxHexesToday() - e.state.HexesMovedToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MoveToHex moves the party onto a hex, consumes its movement cost, and
// records the visit. It never fails: overshooting the daily budget is
// allowed (the last hex of the day is often "free" at the table), and
// forcing a move onto impassable terrain consumes a single point. Callers
// that want to block either case must check MovementCost and
// RemainingMovement first. Returns the cost consumed.
func (e *Engine) MoveToHex(ctx context.Context, col, row int) int {
	cost, err := e.MovementCost(col, row)
	if err != nil {
		slog.WarnContext(ctx, "party moved onto impassable terrain",
			"hexcrawl_id", e.state.ID,
			"col", col,
			"row", row,
			"terrain", e.terrain.TerrainAt(col, row),
		)
		cost = 1
	}

	e.state.HexesMovedToday += cost
	if e.state.HexesMovedToday > e.MaxHexesToday() {
		slog.WarnContext(ctx, "daily movement budget exceeded",
			"hexcrawl_id", e.state.ID,
			"moved", e.state.HexesMovedToday,
			"budget", e.MaxHexesToday(),
		)
	}

	e.state.PartyPosition = &entities.HexCoord{Col: col, Row: row}
	e.state.VisitedHexes = append(e.state.VisitedHexes, entities.VisitedHex{
		Col: col,
		Row: row,
		Day: e.state.CurrentDay,
	})

	e.publish(ctx, EventPartyMoved, map[string]interface{}{
		"col":  col,
		"row":  row,
		"cost": cost,
		"day":  e.state.CurrentDay,
	})

	return cost
}

// SetPartyPosition places the party without consuming movement, used for
// initial placement. Idempotent when the hex is already the most recent
// visited entry for the current day.
func (e *Engine) SetPartyPosition(col, row int) {
	e.state.PartyPosition = &entities.HexCoord{Col: col, Row: row}

	if n := len(e.state.VisitedHexes); n > 0 {
		last := e.state.VisitedHexes[n-1]
		if last.Col == col && last.Row == row && last.Day == e.state.CurrentDay {
			return
		}
	}

	e.state.VisitedHexes = append(e.state.VisitedHexes, entities.VisitedHex{
		Col: col,
		Row: row,
		Day: e.state.CurrentDay,
	})
}

// EndDay advances to the next day and resets the movement budget. Weather,
// pace, meter, and exhaustion persist across the boundary unless explicitly
// changed elsewhere. Returns the new day.
func (e *Engine) EndDay(ctx context.Context) int {
	e.state.CurrentDay++
	e.state.HexesMovedToday = 0

	e.publish(ctx, EventDayEnded, map[string]interface{}{
		"day": e.state.CurrentDay,
	})

	return e.state.CurrentDay
}

// SetPace changes the travel pace, effective immediately for the remainder
// of the day. Unknown kinds are ignored with a warning.
func (e *Engine) SetPace(kind rules.PaceKind) {
	if _, ok := e.tables.Pace(kind); !ok {
		slog.Warn("ignoring unknown pace", "pace", kind, "hexcrawl_id", e.state.ID)
		return
	}
	e.state.Pace = kind
}

// SetWeather changes the current weather, effective immediately for the
// remainder of the day. Unknown kinds are ignored with a warning.
func (e *Engine) SetWeather(kind rules.WeatherKind) {
	if _, ok := e.tables.Weather(kind); !ok {
		slog.Warn("ignoring unknown weather", "weather", kind, "hexcrawl_id", e.state.ID)
		return
	}
	e.state.CurrentWeather = kind
}

// RollWeather rolls the weather die, applies the bucket table, sets the
// result as current weather, and returns it.
func (e *Engine) RollWeather(ctx context.Context) (rules.WeatherKind, error) {
	roll, err := e.roller.Roll(rules.WeatherDie)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll weather")
	}

	kind := rules.WeatherForRoll(roll)
	e.SetWeather(kind)

	slog.InfoContext(ctx, "rolled weather",
		"hexcrawl_id", e.state.ID,
		"roll", roll,
		"weather", kind,
	)

	return kind, nil
}

// RollEncounterCheck rolls the encounter die for the hex just entered and
// reports whether an encounter is triggered.
func (e *Engine) RollEncounterCheck(ctx context.Context) (bool, error) {
	roll, err := e.roller.Roll(EncounterDie)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll encounter check")
	}
	return roll == 1, nil
}

// DecrementMeter spends survival meter points, clamped at zero. Negative
// amounts are ignored. Crossing the danger threshold or reaching zero
// publishes the corresponding event. Returns the resulting value.
func (e *Engine) DecrementMeter(ctx context.Context, amount int) int {
	if amount < 0 {
		slog.Warn("ignoring negative meter decrement", "amount", amount, "hexcrawl_id", e.state.ID)
		return e.state.SurvivalMeter.Current
	}

	meter := &e.state.SurvivalMeter
	before := meter.Current

	meter.Current -= amount
	if meter.Current < 0 {
		meter.Current = 0
	}

	if before > meter.Threshold && meter.Current <= meter.Threshold {
		e.publish(ctx, EventMeterThreshold, map[string]interface{}{
			"current":   meter.Current,
			"threshold": meter.Threshold,
		})
	}
	if before > 0 && meter.Current == 0 {
		e.publish(ctx, EventMeterDepleted, nil)
	}

	return meter.Current
}

// IncrementMeter restores survival meter points, clamped at the maximum.
// Negative amounts are ignored. Returns the resulting value.
func (e *Engine) IncrementMeter(ctx context.Context, amount int) int {
	if amount < 0 {
		slog.Warn("ignoring negative meter increment", "amount", amount, "hexcrawl_id", e.state.ID)
		return e.state.SurvivalMeter.Current
	}

	meter := &e.state.SurvivalMeter
	meter.Current += amount
	if meter.Current > meter.Max {
		meter.Current = meter.Max
	}
	return meter.Current
}

// ResetMeter restores the meter to its maximum, as after a full rest or a
// night in sanctuary.
func (e *Engine) ResetMeter() {
	e.state.SurvivalMeter.Current = e.state.SurvivalMeter.Max
}

// MeterAtThreshold reports whether the meter has dropped to or below its
// danger threshold.
func (e *Engine) MeterAtThreshold() bool {
	return e.state.SurvivalMeter.Current <= e.state.SurvivalMeter.Threshold
}

// MeterDepleted reports whether the meter is empty.
func (e *Engine) MeterDepleted() bool {
	return e.state.SurvivalMeter.Current <= 0
}

// AddExhaustion raises the exhaustion level, clamped at the maximum.
// Negative amounts are ignored. Returns the resulting level.
func (e *Engine) AddExhaustion(ctx context.Context, levels int) int {
	if levels < 0 {
		slog.Warn("ignoring negative exhaustion increase", "levels", levels, "hexcrawl_id", e.state.ID)
		return e.state.ExhaustionLevel
	}

	before := e.state.ExhaustionLevel
	e.state.ExhaustionLevel += levels
	if e.state.ExhaustionLevel > rules.MaxExhaustion {
		e.state.ExhaustionLevel = rules.MaxExhaustion
	}

	if e.state.ExhaustionLevel != before {
		e.publish(ctx, EventExhaustionChanged, map[string]interface{}{
			"level":  e.state.ExhaustionLevel,
			"effect": rules.ExhaustionEffect(e.state.ExhaustionLevel),
		})
	}

	return e.state.ExhaustionLevel
}

// RemoveExhaustion lowers the exhaustion level, clamped at zero. Negative
// amounts are ignored. Returns the resulting level.
func (e *Engine) RemoveExhaustion(ctx context.Context, levels int) int {
	if levels < 0 {
		slog.Warn("ignoring negative exhaustion decrease", "levels", levels, "hexcrawl_id", e.state.ID)
		return e.state.ExhaustionLevel
	}

	before := e.state.ExhaustionLevel
	e.state.ExhaustionLevel -= levels
	if e.state.ExhaustionLevel < 0 {
		e.state.ExhaustionLevel = 0
	}

	if e.state.ExhaustionLevel != before {
		e.publish(ctx, EventExhaustionChanged, map[string]interface{}{
			"level":  e.state.ExhaustionLevel,
			"effect": rules.ExhaustionEffect(e.state.ExhaustionLevel),
		})
	}

	return e.state.ExhaustionLevel
}

// ExhaustionEffect returns the rules text for the current exhaustion level.
func (e *Engine) ExhaustionEffect() string {
	return rules.ExhaustionEffect(e.state.ExhaustionLevel)
}

// AddLogEntryInput describes a travel log entry to append. Day, terrain,
// and timestamp are stamped by the engine.
type AddLogEntryInput struct {
	Col                int
	Row                int
	EncounterTriggered bool
	Notes              string
}

// AddLogEntry appends an immutable entry to the travel log, stamped with
// the current day, the hex's terrain, and the clock's timestamp.
func (e *Engine) AddLogEntry(input AddLogEntryInput) entities.TravelLogEntry {
	entry := entities.TravelLogEntry{
		Day:                e.state.CurrentDay,
		Col:                input.Col,
		Row:                input.Row,
		Terrain:            e.terrain.TerrainAt(input.Col, input.Row),
		EncounterTriggered: input.EncounterTriggered,
		Notes:              input.Notes,
		Timestamp:          e.clock.Now().Unix(),
	}

	e.state.TravelLog = append(e.state.TravelLog, entry)
	return entry
}

// TodayLog returns the log entries for the current day, in append order.
func (e *Engine) TodayLog() []entities.TravelLogEntry {
	return e.LogForDay(e.state.CurrentDay)
}

// LogForDay returns the log entries for a day, in append order. The result
// is a copy; the log itself is never mutated by queries.
func (e *Engine) LogForDay(day int) []entities.TravelLogEntry {
	var out []entities.TravelLogEntry
	for _, entry := range e.state.TravelLog {
		if entry.Day == day {
			out = append(out, entry)
		}
	}
	return out
}

// AssignRole records a player name for a party role.
func (e *Engine) AssignRole(roleID, name string) {
	if e.state.RoleAssignments == nil {
		e.state.RoleAssignments = make(map[string]string)
	}
	e.state.RoleAssignments[roleID] = name
}

// ClearRoles removes every role assignment.
func (e *Engine) ClearRoles() {
	e.state.RoleAssignments = make(map[string]string)
}

// Roles returns a copy of the role assignments.
func (e *Engine) Roles() map[string]string {
	out := make(map[string]string, len(e.state.RoleAssignments))
	for k, v := range e.state.RoleAssignments {
		out[k] = v
	}
	return out
}
