package expedition_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/errors"
	"github.com/wildlands/hexcrawl-api/internal/orchestrators/expedition"
	"github.com/wildlands/hexcrawl-api/internal/pkg/clock"
	"github.com/wildlands/hexcrawl-api/internal/pkg/idgen"
	"github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl"
	hexcrawlmock "github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl/mock"
	"github.com/wildlands/hexcrawl-api/internal/rules"
	"github.com/wildlands/hexcrawl-api/internal/terrain"
)

// scriptedRoller returns rolls from a fixed script, repeating the last one.
type scriptedRoller struct {
	rolls []int
	idx   int
}

func (r *scriptedRoller) Roll(_ int) (int, error) {
	if len(r.rolls) == 0 {
		return 1, nil
	}
	roll := r.rolls[r.idx]
	if r.idx < len(r.rolls)-1 {
		r.idx++
	}
	return roll, nil
}

func (r *scriptedRoller) RollN(times, size int) ([]int, error) {
	out := make([]int, times)
	for i := range out {
		roll, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = roll
	}
	return out, nil
}

type ExpeditionOrchestratorTestSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	mockRepo *hexcrawlmock.MockRepository
	roller   *scriptedRoller
	index    *terrain.Index
	service  expedition.Service
	ctx      context.Context
}

func (s *ExpeditionOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = hexcrawlmock.NewMockRepository(s.ctrl)
	s.roller = &scriptedRoller{rolls: []int{2}}
	s.ctx = context.Background()

	s.index = terrain.NewIndex()
	s.index.SetTerrain(1, 0, rules.TerrainForest)
	s.index.SetTerrain(2, 0, rules.TerrainSwamp)
	s.index.SetTerrain(3, 0, rules.TerrainWater)

	service, err := expedition.New(&expedition.Config{
		Repository:  s.mockRepo,
		Terrain:     s.index,
		Roller:      s.roller,
		IDGenerator: idgen.NewSequential("hexcrawl"),
		Clock:       &clock.Fixed{T: time.Unix(1700000000, 0)},
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *ExpeditionOrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// testState builds an enabled hexcrawl placed at the origin.
func (s *ExpeditionOrchestratorTestSuite) testState() *entities.HexcrawlState {
	state := entities.NewHexcrawlState("hexcrawl_test")
	state.Enabled = true
	state.PartyPosition = &entities.HexCoord{Col: 0, Row: 0}
	state.VisitedHexes = []entities.VisitedHex{{Col: 0, Row: 0, Day: 1}}
	return state
}

// expectGet wires the mock to return the given state for its ID.
func (s *ExpeditionOrchestratorTestSuite) expectGet(state *entities.HexcrawlState) {
	s.mockRepo.EXPECT().
		Get(s.ctx, hexcrawl.GetInput{ID: state.ID}).
		Return(&hexcrawl.GetOutput{State: state}, nil)
}

// expectUpdate wires the mock to accept a store of the same aggregate.
func (s *ExpeditionOrchestratorTestSuite) expectUpdate(state *entities.HexcrawlState) {
	s.mockRepo.EXPECT().
		Update(s.ctx, hexcrawl.UpdateInput{State: state}).
		Return(&hexcrawl.UpdateOutput{State: state}, nil)
}

func (s *ExpeditionOrchestratorTestSuite) TestNew_RequiresRepositoryAndTerrain() {
	_, err := expedition.New(&expedition.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = expedition.New(nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ExpeditionOrchestratorTestSuite) TestCreateHexcrawl() {
	var stored *entities.HexcrawlState
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input hexcrawl.CreateInput) (*hexcrawl.CreateOutput, error) {
			stored = input.State
			return &hexcrawl.CreateOutput{State: input.State}, nil
		})

	out, err := s.service.CreateHexcrawl(s.ctx, &expedition.CreateHexcrawlInput{
		MeterMax:       10,
		MeterThreshold: 3,
		Pace:           rules.PaceFast,
		Start:          &entities.HexCoord{Col: 5, Row: 5},
	})
	s.Require().NoError(err)
	s.Require().NotNil(out)

	s.Equal("hexcrawl_1", out.State.ID)
	s.True(out.State.Enabled)
	s.Equal(rules.PaceFast, out.State.Pace)
	s.Equal(10, out.State.SurvivalMeter.Max)
	s.Equal(10, out.State.SurvivalMeter.Current)
	s.Equal(3, out.State.SurvivalMeter.Threshold)
	s.Require().NotNil(out.State.PartyPosition)
	s.Equal(5, out.State.PartyPosition.Col)
	s.Equal(5, out.State.PartyPosition.Row)
	s.Len(out.State.VisitedHexes, 1)
	s.Same(stored, out.State)
}

func (s *ExpeditionOrchestratorTestSuite) TestCreateHexcrawl_Defaults() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input hexcrawl.CreateInput) (*hexcrawl.CreateOutput, error) {
			return &hexcrawl.CreateOutput{State: input.State}, nil
		})

	out, err := s.service.CreateHexcrawl(s.ctx, &expedition.CreateHexcrawlInput{})
	s.Require().NoError(err)

	s.Equal(entities.DefaultMeterMax, out.State.SurvivalMeter.Max)
	s.Equal(entities.DefaultMeterThreshold, out.State.SurvivalMeter.Threshold)
	s.Equal(rules.PaceNormal, out.State.Pace)
	s.Nil(out.State.PartyPosition)
	s.Equal(1, out.State.CurrentDay)
}

func (s *ExpeditionOrchestratorTestSuite) TestCreateHexcrawl_NegativeMeterMax() {
	_, err := s.service.CreateHexcrawl(s.ctx, &expedition.CreateHexcrawlInput{MeterMax: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ExpeditionOrchestratorTestSuite) TestGetHexcrawl() {
	state := s.testState()
	state.HexesMovedToday = 1
	s.expectGet(state)

	out, err := s.service.GetHexcrawl(s.ctx, &expedition.GetHexcrawlInput{HexcrawlID: state.ID})
	s.Require().NoError(err)

	s.Same(state, out.State)
	s.Equal(4, out.MaxHexes)
	s.Equal(3, out.Remaining)
}

func (s *ExpeditionOrchestratorTestSuite) TestGetHexcrawl_RequiresID() {
	_, err := s.service.GetHexcrawl(s.ctx, &expedition.GetHexcrawlInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ExpeditionOrchestratorTestSuite) TestGetHexcrawl_NotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, hexcrawl.GetInput{ID: "hexcrawl_missing"}).
		Return(nil, errors.NotFound("hexcrawl not found"))

	_, err := s.service.GetHexcrawl(s.ctx, &expedition.GetHexcrawlInput{HexcrawlID: "hexcrawl_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_PlainHex() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)
	s.roller.rolls = []int{4}

	out, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        1,
		Row:        1,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Cost)
	s.Equal(3, out.Remaining)
	s.False(out.EncounterTriggered)
	s.Empty(out.Warnings)

	s.Require().NotNil(state.PartyPosition)
	s.Equal(1, state.PartyPosition.Col)
	s.Equal(1, state.PartyPosition.Row)
	s.Len(state.TravelLog, 1)
	s.Equal(rules.TerrainPlains, state.TravelLog[0].Terrain)
	s.Equal(int64(1700000000), state.TravelLog[0].Timestamp)
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_DifficultTerrainCost() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        2,
		Row:        0,
	})
	s.Require().NoError(err)

	// Swamp modifier 1/3 rounds to a cost of 3.
	s.Equal(3, out.Cost)
	s.Equal(1, out.Remaining)
	s.Empty(out.Warnings)
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_EncounterTriggered() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)
	s.roller.rolls = []int{1}

	out, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        1,
		Row:        0,
	})
	s.Require().NoError(err)

	s.True(out.EncounterTriggered)
	s.Require().Len(state.TravelLog, 1)
	s.True(state.TravelLog[0].EncounterTriggered)
	s.Equal(rules.TerrainForest, state.TravelLog[0].Terrain)
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_ImpassableWarnsButMoves() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        3,
		Row:        0,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Cost)
	s.Require().Len(out.Warnings, 1)
	s.Contains(out.Warnings[0], "impassable")
	s.Equal(3, state.PartyPosition.Col)
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_OverBudgetWarnsButMoves() {
	state := s.testState()
	state.HexesMovedToday = 4
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        1,
		Row:        1,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Cost)
	s.Equal(0, out.Remaining)
	s.Require().Len(out.Warnings, 1)
	s.Contains(out.Warnings[0], "movement remains")
	s.Equal(5, state.HexesMovedToday)
}

func (s *ExpeditionOrchestratorTestSuite) TestMoveParty_UpdateFailure() {
	state := s.testState()
	s.expectGet(state)
	s.mockRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	_, err := s.service.MoveParty(s.ctx, &expedition.MovePartyInput{
		HexcrawlID: state.ID,
		Col:        1,
		Row:        1,
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *ExpeditionOrchestratorTestSuite) TestEndDay() {
	state := s.testState()
	state.HexesMovedToday = 3
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.EndDay(s.ctx, &expedition.EndDayInput{HexcrawlID: state.ID})
	s.Require().NoError(err)

	s.Equal(2, out.Day)
	s.Equal(2, state.CurrentDay)
	s.Equal(0, state.HexesMovedToday)
}

func (s *ExpeditionOrchestratorTestSuite) TestRollWeather() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)
	s.roller.rolls = []int{9}

	out, err := s.service.RollWeather(s.ctx, &expedition.RollWeatherInput{HexcrawlID: state.ID})
	s.Require().NoError(err)

	s.Equal(rules.WeatherRain, out.Weather)
	s.Equal(rules.WeatherRain, state.CurrentWeather)
	// Normal pace of 4 scaled by rain's 0.75 floors to 3.
	s.Equal(3, out.MaxHexes)
}

func (s *ExpeditionOrchestratorTestSuite) TestRecordLogEntry() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.RecordLogEntry(s.ctx, &expedition.RecordLogEntryInput{
		HexcrawlID: state.ID,
		Col:        1,
		Row:        0,
		Notes:      "found a ruined watchtower",
	})
	s.Require().NoError(err)

	s.Equal(1, out.Entry.Day)
	s.Equal(rules.TerrainForest, out.Entry.Terrain)
	s.Equal("found a ruined watchtower", out.Entry.Notes)
	s.Require().Len(state.TravelLog, 1)
	s.Equal(out.Entry, state.TravelLog[0])
}

func (s *ExpeditionOrchestratorTestSuite) TestAdjustMeter_Spend() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.AdjustMeter(s.ctx, &expedition.AdjustMeterInput{
		HexcrawlID: state.ID,
		Amount:     -7,
	})
	s.Require().NoError(err)

	s.Equal(1, out.Value)
	s.True(out.AtThreshold)
	s.False(out.Depleted)
}

func (s *ExpeditionOrchestratorTestSuite) TestAdjustMeter_RestoreClamped() {
	state := s.testState()
	state.SurvivalMeter.Current = 5
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.AdjustMeter(s.ctx, &expedition.AdjustMeterInput{
		HexcrawlID: state.ID,
		Amount:     20,
	})
	s.Require().NoError(err)

	s.Equal(state.SurvivalMeter.Max, out.Value)
	s.False(out.AtThreshold)
	s.False(out.Depleted)
}

func (s *ExpeditionOrchestratorTestSuite) TestAdjustExhaustion() {
	state := s.testState()
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.AdjustExhaustion(s.ctx, &expedition.AdjustExhaustionInput{
		HexcrawlID: state.ID,
		Levels:     2,
	})
	s.Require().NoError(err)

	s.Equal(2, out.Level)
	s.Equal(rules.ExhaustionEffect(2), out.Effect)
	s.Equal(2, state.ExhaustionLevel)
}

func (s *ExpeditionOrchestratorTestSuite) TestAdjustExhaustion_ClampedAtMaximum() {
	state := s.testState()
	state.ExhaustionLevel = 5
	s.expectGet(state)
	s.expectUpdate(state)

	out, err := s.service.AdjustExhaustion(s.ctx, &expedition.AdjustExhaustionInput{
		HexcrawlID: state.ID,
		Levels:     4,
	})
	s.Require().NoError(err)

	s.Equal(rules.MaxExhaustion, out.Level)
	s.Equal("Death", out.Effect)
}

func (s *ExpeditionOrchestratorTestSuite) TestNilInputs() {
	ops := map[string]func() error{
		"CreateHexcrawl": func() error {
			_, err := s.service.CreateHexcrawl(s.ctx, nil)
			return err
		},
		"GetHexcrawl": func() error {
			_, err := s.service.GetHexcrawl(s.ctx, nil)
			return err
		},
		"MoveParty": func() error {
			_, err := s.service.MoveParty(s.ctx, nil)
			return err
		},
		"EndDay": func() error {
			_, err := s.service.EndDay(s.ctx, nil)
			return err
		},
		"RollWeather": func() error {
			_, err := s.service.RollWeather(s.ctx, nil)
			return err
		},
		"RecordLogEntry": func() error {
			_, err := s.service.RecordLogEntry(s.ctx, nil)
			return err
		},
		"AdjustMeter": func() error {
			_, err := s.service.AdjustMeter(s.ctx, nil)
			return err
		},
		"AdjustExhaustion": func() error {
			_, err := s.service.AdjustExhaustion(s.ctx, nil)
			return err
		},
	}

	for name, op := range ops {
		s.Run(name, func() {
			err := op()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func TestExpeditionOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(ExpeditionOrchestratorTestSuite))
}
