package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/orchestrators/expedition"
	redisclient "github.com/wildlands/hexcrawl-api/internal/redis"
	"github.com/wildlands/hexcrawl-api/internal/repositories/hexcrawl"
	"github.com/wildlands/hexcrawl-api/internal/rules"
	"github.com/wildlands/hexcrawl-api/internal/terrain"
)

var (
	simDays       int
	simSeed       int64
	simWidth      int
	simHeight     int
	simPace       string
	simDBPath     string
	simRedisAddr  string
	simMeterMax   int
	simMeterFloor int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an expedition over a generated map",
	Long:  `Generate a wilderness map from a seed and walk a party across it for a number of days, rolling weather and encounters and applying survival attrition.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simDays, "days", 7, "number of days to simulate")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "map and walk seed, 0 picks a random one")
	simulateCmd.Flags().IntVar(&simWidth, "width", 24, "map width in hexes")
	simulateCmd.Flags().IntVar(&simHeight, "height", 18, "map height in hexes")
	simulateCmd.Flags().StringVar(&simPace, "pace", string(rules.PaceNormal), "travel pace: slow, normal, or fast")
	simulateCmd.Flags().StringVar(&simDBPath, "db", "", "sqlite database path, empty keeps state in memory")
	simulateCmd.Flags().StringVar(&simRedisAddr, "redis", "", "redis endpoint, overrides --db when set")
	simulateCmd.Flags().IntVar(&simMeterMax, "meter-max", entities.DefaultMeterMax, "survival meter maximum")
	simulateCmd.Flags().IntVar(&simMeterFloor, "meter-threshold", entities.DefaultMeterThreshold, "survival meter danger threshold")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, stopping simulation")
		cancel()
	}()

	seed := simSeed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	genCfg := terrain.DefaultGenConfig()
	genCfg.Width = simWidth
	genCfg.Height = simHeight
	genCfg.Seed = seed
	index := terrain.Generate(genCfg)

	slog.Info("generated map",
		"seed", seed,
		"width", simWidth,
		"height", simHeight,
		"assigned_hexes", index.TerrainCount(),
	)

	repo, cleanup, err := buildRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	service, err := expedition.New(&expedition.Config{
		Repository: repo,
		Terrain:    index,
	})
	if err != nil {
		return err
	}

	start := findPassableStart(index, simWidth, simHeight)
	created, err := service.CreateHexcrawl(ctx, &expedition.CreateHexcrawlInput{
		MeterMax:       simMeterMax,
		MeterThreshold: simMeterFloor,
		Pace:           rules.PaceKind(simPace),
		Start:          &start,
	})
	if err != nil {
		return err
	}
	id := created.State.ID

	slog.Info("expedition started",
		"hexcrawl_id", id,
		"start_col", start.Col,
		"start_row", start.Row,
		"pace", created.State.Pace,
	)

	encounters := 0
	for day := 1; day <= simDays; day++ {
		if ctx.Err() != nil {
			break
		}

		weather, err := service.RollWeather(ctx, &expedition.RollWeatherInput{HexcrawlID: id})
		if err != nil {
			return err
		}
		slog.Info("day begins",
			"day", day,
			"weather", weather.Weather,
			"movement_budget", weather.MaxHexes,
		)

		if err := walkDay(ctx, service, index, rng, id, &encounters); err != nil {
			return err
		}

		// A day on the trail costs a point of supplies. An empty meter
		// means the party pushes on hungry and exhausted.
		meter, err := service.AdjustMeter(ctx, &expedition.AdjustMeterInput{HexcrawlID: id, Amount: -1})
		if err != nil {
			return err
		}
		if meter.Depleted {
			exh, err := service.AdjustExhaustion(ctx, &expedition.AdjustExhaustionInput{HexcrawlID: id, Levels: 1})
			if err != nil {
				return err
			}
			slog.Warn("supplies exhausted",
				"day", day,
				"exhaustion_level", exh.Level,
				"effect", exh.Effect,
			)
		} else if meter.AtThreshold {
			slog.Warn("supplies running low", "day", day, "meter", meter.Value)
		}

		if _, err := service.EndDay(ctx, &expedition.EndDayInput{HexcrawlID: id}); err != nil {
			return err
		}
	}

	final, err := service.GetHexcrawl(ctx, &expedition.GetHexcrawlInput{HexcrawlID: id})
	if err != nil {
		return err
	}

	slog.Info("expedition complete",
		"hexcrawl_id", id,
		"days", final.State.CurrentDay-1,
		"hexes_visited", len(final.State.VisitedHexes),
		"encounters", encounters,
		"final_col", final.State.PartyPosition.Col,
		"final_row", final.State.PartyPosition.Row,
		"meter", final.State.SurvivalMeter.Current,
		"exhaustion", final.State.ExhaustionLevel,
		"log_entries", len(final.State.TravelLog),
	)
	return nil
}

// walkDay moves the party along a random walk until the day's budget runs
// out or every neighbor is impassable or off the map.
func walkDay(ctx context.Context, service expedition.Service, index *terrain.Index, rng *rand.Rand, id string, encounters *int) error {
	tables := rules.DefaultTables()

	for {
		state, err := service.GetHexcrawl(ctx, &expedition.GetHexcrawlInput{HexcrawlID: id})
		if err != nil {
			return err
		}
		if state.Remaining == 0 || state.State.PartyPosition == nil {
			return nil
		}

		pos := *state.State.PartyPosition
		next, ok := pickNeighbor(index, tables, rng, pos, state.Remaining)
		if !ok {
			slog.Info("no passable hex within budget, making camp early",
				"col", pos.Col,
				"row", pos.Row,
			)
			return nil
		}

		moved, err := service.MoveParty(ctx, &expedition.MovePartyInput{
			HexcrawlID: id,
			Col:        next.Col,
			Row:        next.Row,
		})
		if err != nil {
			return err
		}
		if moved.EncounterTriggered {
			*encounters++
			slog.Info("encounter",
				"col", next.Col,
				"row", next.Row,
				"terrain", index.TerrainAt(next.Col, next.Row),
			)
		}
	}
}

// neighborOffsets are the six adjacent hexes of an offset-coordinate grid,
// even and odd columns shifted differently.
var neighborOffsets = [2][6][2]int{
	{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {0, 1}},
	{{1, 1}, {1, 0}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}},
}

// pickNeighbor returns a random passable neighbor whose cost fits the
// remaining budget.
func pickNeighbor(index *terrain.Index, tables *rules.Tables, rng *rand.Rand, pos entities.HexCoord, remaining int) (entities.HexCoord, bool) {
	offsets := neighborOffsets[pos.Col&1]
	order := rng.Perm(len(offsets))

	for _, i := range order {
		col := pos.Col + offsets[i][0]
		row := pos.Row + offsets[i][1]
		if col < 0 || row < 0 || col >= simWidth || row >= simHeight {
			continue
		}

		def := tables.TerrainOrDefault(index.TerrainAt(col, row))
		if def.Impassable() {
			continue
		}
		cost := int(1/def.TravelModifier + 0.5)
		if cost < 1 {
			cost = 1
		}
		if cost > remaining {
			continue
		}
		return entities.HexCoord{Col: col, Row: row}, true
	}
	return entities.HexCoord{}, false
}

// findPassableStart scans from the map center for a hex the party can
// actually stand on.
func findPassableStart(index *terrain.Index, width, height int) entities.HexCoord {
	tables := rules.DefaultTables()
	center := entities.HexCoord{Col: width / 2, Row: height / 2}

	for radius := 0; radius < width+height; radius++ {
		for col := center.Col - radius; col <= center.Col+radius; col++ {
			for row := center.Row - radius; row <= center.Row+radius; row++ {
				if col < 0 || row < 0 || col >= width || row >= height {
					continue
				}
				if !tables.TerrainOrDefault(index.TerrainAt(col, row)).Impassable() {
					return entities.HexCoord{Col: col, Row: row}
				}
			}
		}
	}
	return center
}

// buildRepository picks the storage backend from the flags: redis when an
// endpoint is given, sqlite when a path is given, in-memory otherwise.
func buildRepository() (hexcrawl.Repository, func(), error) {
	noop := func() {}

	if simRedisAddr != "" {
		client, err := redisclient.NewClient(simRedisAddr, nil)
		if err != nil {
			return nil, noop, err
		}
		repo, err := hexcrawl.NewRedis(&hexcrawl.RedisConfig{Client: client})
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = client.Close() }, nil
	}

	if simDBPath != "" {
		repo, err := hexcrawl.NewSQLite(&hexcrawl.SQLiteConfig{Path: simDBPath})
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}

	return hexcrawl.NewInMemory(), noop, nil
}
