// Command skirmish-report runs the simulation core headless: a player base
// holding out against scripted enemy waves while building ships and running
// research. It prints per-run and aggregate statistics and can record full
// telemetry to SQLite.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/stellar-foundry/armada/internal/config"
	"github.com/stellar-foundry/armada/internal/sim"
	"github.com/stellar-foundry/armada/internal/telemetry"
)

type runStats struct {
	runIndex int
	ticks    int
	simTime  float64

	shipsProduced  int
	wavesSpawned   int
	researchDone   []string
	playerShips    int
	enemyShips     int
	exploredCells  int
	totalCells     int
	firstWaveTick  int
	firstBuildTick int
}

func main() {
	var (
		cfgPath string
		runs    int
		seconds float64
		dt      float64
		verbose bool
	)
	flag.StringVar(&cfgPath, "config", "", "optional YAML config file")
	flag.IntVar(&runs, "runs", 3, "number of headless simulation runs")
	flag.Float64Var(&seconds, "seconds", 300, "simulated seconds per run")
	flag.Float64Var(&dt, "dt", 0.1, "frame delta time in seconds")
	flag.BoolVar(&verbose, "verbose", false, "log every simulation event")
	flag.Parse()

	if runs <= 0 || seconds <= 0 || dt <= 0 {
		fmt.Println("error: -runs, -seconds and -dt must all be > 0")
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	logger := buildLogger(cfg.Log.Level, verbose)

	fmt.Printf("=== Skirmish Report ===\n")
	fmt.Printf("runs=%d seconds=%.0f dt=%.2f arena=%.0fx%.0f waves every %.0fs (cap %d)\n\n",
		runs, seconds, dt, cfg.World.Width, cfg.World.Height, cfg.AI.WaveInterval, cfg.AI.ShipCap)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		stats, err := runHoldout(i+1, cfg, logger, seconds, dt)
		if err != nil {
			fmt.Printf("run %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func buildLogger(level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// runHoldout plays the standard holdout scenario once.
func runHoldout(runIndex int, cfg config.Config, logger zerolog.Logger, seconds, dt float64) (runStats, error) {
	ts := sim.NewTestSim(
		sim.WithArenaSize(cfg.World.Width, cfg.World.Height),
		sim.WithFogCellSize(cfg.Fog.CellSize),
		sim.WithQueueCapacity(cfg.Production.QueueCapacity),
		sim.WithLogger(logger),
		sim.WithPlayerBase(0, 0),
		sim.WithPlanetoid(900, -700, 90, 250),
		sim.WithShip("Wisp", sim.FactionPlayer, 250, 0),
		sim.WithShip("Spearling", sim.FactionPlayer, -250, 0),
		sim.WithEnemyAI(
			sim.WithWaveInterval(cfg.AI.WaveInterval),
			sim.WithInitialDelay(cfg.AI.InitialDelay),
			sim.WithShipCap(cfg.AI.ShipCap),
			sim.WithStagingArea(cfg.AI.StagingX, cfg.AI.StagingY, cfg.AI.StagingRadius),
		),
	)

	var rec *telemetry.Recorder
	if cfg.Telemetry.DSN != "" {
		var err error
		rec, err = telemetry.Open(cfg.Telemetry.DSN, "holdout", int64(runIndex))
		if err != nil {
			return runStats{}, err
		}
	}

	base := ts.World.PrimaryBase()
	seedBuildOrders(base.Queue())
	ts.Research.SetFacilityOnline("strike_lab", true)
	ts.Research.SetFacilityOnline("fleet_forge", true)
	ts.Research.Start("SF_STRIKE_FUNDAMENTALS_I", 1e9)

	ticks := int(seconds / dt)
	for i := 0; i < ticks; i++ {
		ts.Step(dt)

		// Keep research rolling: start whatever opened up.
		if ts.Research.ActiveNode() == nil {
			if avail := ts.Research.AvailableNodes(1e9); len(avail) > 0 {
				ts.Research.Start(avail[0].ID, 1e9)
			}
		}
		// Refill the build queue as slots open.
		if base.Queue().JobCount() < base.Queue().Capacity()/2 {
			seedBuildOrders(base.Queue())
		}

		if rec != nil {
			snapshotShips(rec, ts)
		}
	}

	if rec != nil {
		for _, e := range ts.Events.Entries() {
			if err := rec.RecordEvent(e.Tick, e.Category, e.Key, e.Detail, e.Value); err != nil {
				return runStats{}, err
			}
		}
		if err := rec.Close(ts.World.Elapsed()); err != nil {
			return runStats{}, err
		}
	}
	return collectStats(runIndex, ts), nil
}

// seedBuildOrders queues a standard production mix, stopping at capacity.
func seedBuildOrders(q *sim.ProductionQueue) {
	for _, hull := range []string{"Spearling", "Wisp", "Talon", "Aegis"} {
		if err := q.QueueShip(hull); err != nil {
			return
		}
	}
}

// snapshotShips records every live ship once per second of sim time.
func snapshotShips(rec *telemetry.Recorder, ts *sim.TestSim) {
	tick := ts.World.Tick()
	if tick%10 != 0 {
		return
	}
	for _, s := range ts.World.Ships() {
		x, y := s.Position()
		// Best effort: a snapshot write failure is not worth aborting a run.
		_ = rec.RecordSnapshot(tick, uint32(s.ID()), s.Def().Name, s.Faction().String(), x, y, s.Hull())
	}
}

func collectStats(runIndex int, ts *sim.TestSim) runStats {
	stats := runStats{
		runIndex:       runIndex,
		ticks:          ts.World.Tick(),
		simTime:        ts.World.Elapsed(),
		shipsProduced:  ts.Events.Count("production", "complete"),
		wavesSpawned:   ts.Events.Count("ai", "wave"),
		playerShips:    ts.World.CountFaction(sim.FactionPlayer),
		enemyShips:     ts.World.CountFaction(sim.FactionEnemy),
		exploredCells:  ts.Grid.ExploredCount(),
		totalCells:     ts.Grid.Cols() * ts.Grid.Rows(),
		firstWaveTick:  -1,
		firstBuildTick: -1,
	}
	stats.researchDone = ts.Research.CompletedNodes()
	if waves := ts.Events.Filter("ai", "wave"); len(waves) > 0 {
		stats.firstWaveTick = waves[0].Tick
	}
	if builds := ts.Events.Filter("production", "complete"); len(builds) > 0 {
		stats.firstBuildTick = builds[0].Tick
	}
	return stats
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (%d ticks, %.0fs) ---\n", s.runIndex, s.ticks, s.simTime)
	fmt.Printf("  produced=%d waves=%d fleet=%d/%d (player/enemy)\n",
		s.shipsProduced, s.wavesSpawned, s.playerShips, s.enemyShips)
	fmt.Printf("  research done: %v\n", s.researchDone)
	fmt.Printf("  explored %d/%d cells (%.0f%%)\n",
		s.exploredCells, s.totalCells, 100*float64(s.exploredCells)/float64(s.totalCells))
	fmt.Printf("  first build tick=%d, first wave tick=%d\n\n", s.firstBuildTick, s.firstWaveTick)
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var produced, waves, explored, total int
	for _, s := range all {
		produced += s.shipsProduced
		waves += s.wavesSpawned
		explored += s.exploredCells
		total += s.totalCells
	}
	n := float64(len(all))
	fmt.Printf("=== aggregate over %d runs ===\n", len(all))
	fmt.Printf("  mean produced=%.1f mean waves=%.1f mean explored=%.0f%%\n",
		float64(produced)/n, float64(waves)/n, 100*float64(explored)/float64(total))
}
