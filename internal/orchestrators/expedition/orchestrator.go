// Package expedition implements the orchestrator tying the travel engine to
// hexcrawl persistence: each operation loads the aggregate, runs the engine
// over it, and stores the result.
package expedition

//go:generate mockgen -destination=mock/mock_service.go -package=expeditionmock github.com/wildlands/hexcrawl-api/internal/orchestrators/expedition Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/wildlands/hexcrawl-api/internal/engine"
	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/pkg/clock"
	"github.com/wildlands/hexcrawl-api/internal/pkg/idgen"
	"github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl"
	"github.com/wildlands/hexcrawl-api/internal/rules"
)

// Service defines the interface for expedition operations.
type Service interface {
	// CreateHexcrawl creates and stores a new enabled hexcrawl.
	CreateHexcrawl(ctx context.Context, input *CreateHexcrawlInput) (*CreateHexcrawlOutput, error)

	// GetHexcrawl loads a hexcrawl with its derived budget values.
	GetHexcrawl(ctx context.Context, input *GetHexcrawlInput) (*GetHexcrawlOutput, error)

	// MoveParty moves the party one hex, logs the visit, and rolls the
	// encounter check.
	MoveParty(ctx context.Context, input *MovePartyInput) (*MovePartyOutput, error)

	// EndDay advances to the next day.
	EndDay(ctx context.Context, input *EndDayInput) (*EndDayOutput, error)

	// RollWeather rolls and applies the day's weather.
	RollWeather(ctx context.Context, input *RollWeatherInput) (*RollWeatherOutput, error)

	// RecordLogEntry appends a travel log entry.
	RecordLogEntry(ctx context.Context, input *RecordLogEntryInput) (*RecordLogEntryOutput, error)

	// AdjustMeter changes the survival meter by a signed amount.
	AdjustMeter(ctx context.Context, input *AdjustMeterInput) (*AdjustMeterOutput, error)

	// AdjustExhaustion changes the exhaustion level by a signed amount.
	AdjustExhaustion(ctx context.Context, input *AdjustExhaustionInput) (*AdjustExhaustionOutput, error)
}

// Config holds the dependencies for the expedition orchestrator.
type Config struct {
	Repository hexcrawl.Repository
	Terrain    engine.TerrainSource

	// Tables defaults to the compiled-in rule tables.
	Tables *rules.Tables

	// Roller defaults to dice.DefaultRoller.
	Roller dice.Roller

	// IDGenerator defaults to a UUID generator with the "hexcrawl" prefix.
	IDGenerator idgen.Generator

	// Clock defaults to the system clock.
	Clock clock.Clock

	// EventBus is optional.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Terrain == nil {
		vb.RequiredField("Terrain")
	}

	return vb.Build()
}

type orchestrator struct {
	repo    hexcrawl.Repository
	terrain engine.TerrainSource
	tables  *rules.Tables
	roller  dice.Roller
	idGen   idgen.Generator
	clock   clock.Clock
	bus     events.EventBus
}

// New creates a new expedition orchestrator with the provided dependencies.
func New(cfg *Config) (Service, error) {
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
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = idgen.NewUUID("hexcrawl")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		repo:    cfg.Repository,
		terrain: cfg.Terrain,
		tables:  tables,
		roller:  roller,
		idGen:   idGen,
		clock:   clk,
		bus:     cfg.EventBus,
	}, nil
}

func (o *orchestrator) CreateHexcrawl(ctx context.Context, input *CreateHexcrawlInput) (*CreateHexcrawlOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MeterMax < 0 {
		return nil, errors.InvalidArgument("meter max must not be negative")
	}

	state := entities.NewHexcrawlState(o.idGen.Generate())
	state.Enabled = true

	if input.MeterMax > 0 {
		state.SurvivalMeter.Max = input.MeterMax
		state.SurvivalMeter.Current = input.MeterMax
		state.SurvivalMeter.Threshold = input.MeterThreshold
	}

	eng, err := o.engineFor(state)
	if err != nil {
		return nil, err
	}

	if input.Pace != "" {
		eng.SetPace(input.Pace)
	}
	if input.Start != nil {
		eng.SetPartyPosition(input.Start.Col, input.Start.Row)
	}

	if _, err := o.repo.Create(ctx, hexcrawl.CreateInput{State: state}); err != nil {
		return nil, errors.Wrap(err, "failed to store hexcrawl")
	}

	slog.InfoContext(ctx, "created hexcrawl",
		"hexcrawl_id", state.ID,
		"pace", state.Pace,
		"meter_max", state.SurvivalMeter.Max,
	)

	return &CreateHexcrawlOutput{State: state}, nil
}

func (o *orchestrator) GetHexcrawl(ctx context.Context, input *GetHexcrawlInput) (*GetHexcrawlOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	return &GetHexcrawlOutput{
		State:     state,
		MaxHexes:  eng.MaxHexesToday(),
		Remaining: eng.RemainingMovement(),
	}, nil
}

func (o *orchestrator) MoveParty(ctx context.Context, input *MovePartyInput) (*MovePartyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	var warnings []string

	cost, costErr := eng.MovementCost(input.Col, input.Row)
	if costErr != nil {
		warnings = append(warnings, fmt.Sprintf(
			"hex (%d, %d) is impassable without a special means of travel", input.Col, input.Row))
	} else if cost > eng.RemainingMovement() {
		warnings = append(warnings, fmt.Sprintf(
			"moving costs %d but only %d movement remains today", cost, eng.RemainingMovement()))
	}

	// The engine is deliberately permissive: warnings inform, never block.
	cost = eng.MoveToHex(ctx, input.Col, input.Row)

	triggered, err := eng.RollEncounterCheck(ctx)
	if err != nil {
		return nil, err
	}

	eng.AddLogEntry(engine.AddLogEntryInput{
		Col:                input.Col,
		Row:                input.Row,
		EncounterTriggered: triggered,
	})

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &MovePartyOutput{
		Cost:               cost,
		Remaining:          eng.RemainingMovement(),
		EncounterTriggered: triggered,
		Warnings:           warnings,
		State:              state,
	}, nil
}

func (o *orchestrator) EndDay(ctx context.Context, input *EndDayInput) (*EndDayOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	day := eng.EndDay(ctx)

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &EndDayOutput{Day: day, State: state}, nil
}

func (o *orchestrator) RollWeather(ctx context.Context, input *RollWeatherInput) (*RollWeatherOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	kind, err := eng.RollWeather(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &RollWeatherOutput{
		Weather:  kind,
		MaxHexes: eng.MaxHexesToday(),
		State:    state,
	}, nil
}

func (o *orchestrator) RecordLogEntry(ctx context.Context, input *RecordLogEntryInput) (*RecordLogEntryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	entry := eng.AddLogEntry(engine.AddLogEntryInput{
		Col:                input.Col,
		Row:                input.Row,
		EncounterTriggered: input.EncounterTriggered,
		Notes:              input.Notes,
	})

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &RecordLogEntryOutput{Entry: entry, State: state}, nil
}

func (o *orchestrator) AdjustMeter(ctx context.Context, input *AdjustMeterInput) (*AdjustMeterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	var value int
	if input.Amount >= 0 {
		value = eng.IncrementMeter(ctx, input.Amount)
	} else {
		value = eng.DecrementMeter(ctx, -input.Amount)
	}

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &AdjustMeterOutput{
		Value:       value,
		AtThreshold: eng.MeterAtThreshold(),
		Depleted:    eng.MeterDepleted(),
		State:       state,
	}, nil
}

func (o *orchestrator) AdjustExhaustion(ctx context.Context, input *AdjustExhaustionInput) (*AdjustExhaustionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, eng, err := o.load(ctx, input.HexcrawlID)
	if err != nil {
		return nil, err
	}

	var level int
	if input.Levels >= 0 {
		level = eng.AddExhaustion(ctx, input.Levels)
	} else {
		level = eng.RemoveExhaustion(ctx, -input.Levels)
	}

	if err := o.store(ctx, state); err != nil {
		return nil, err
	}

	return &AdjustExhaustionOutput{
		Level:  level,
		Effect: eng.ExhaustionEffect(),
		State:  state,
	}, nil
}

// load fetches the aggregate and builds an engine over it.
func (o *orchestrator) load(ctx context.Context, id string) (*entities.HexcrawlState, *engine.Engine, error) {
	if id == "" {
		return nil, nil, errors.InvalidArgument("hexcrawl ID is required")
	}

	out, err := o.repo.Get(ctx, hexcrawl.GetInput{ID: id})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load hexcrawl")
	}

	eng, err := o.engineFor(out.State)
	if err != nil {
		return nil, nil, err
	}

	return out.State, eng, nil
}

func (o *orchestrator) engineFor(state *entities.HexcrawlState) (*engine.Engine, error) {
	eng, err := engine.New(&engine.Config{
		State:    state,
		Terrain:  o.terrain,
		Tables:   o.tables,
		Roller:   o.roller,
		Clock:    o.clock,
		EventBus: o.bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build travel engine")
	}
	return eng, nil
}

func (o *orchestrator) store(ctx context.Context, state *entities.HexcrawlState) error {
	if _, err := o.repo.Update(ctx, hexcrawl.UpdateInput{State: state}); err != nil {
		return errors.Wrap(err, "failed to store hexcrawl")
	}
	return nil
}
