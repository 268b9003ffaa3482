package sim

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TestSim is a headless simulation harness shared by the package tests and
// the report CLI. It wires catalog, world, fog grid, research and enemy AI
// the way the real control loop does, with deterministic construction from
// functional options.
type TestSim struct {
	Catalog  *Catalog
	Registry *ResearchRegistry
	World    *World
	Grid     *VisibilityGrid
	Research *ResearchManager
	AI       *EnemyAIController
	Events   *EventLog

	worldW   float64
	worldH   float64
	cellSize float64
	queueCap int
	logger   zerolog.Logger
	aiOpts   []EnemyAIOption
	enableAI bool
}

// simOptionKind controls the pass in which an option is applied: infra
// first, then entities (which need the world), then controllers (which need
// the entities).
type simOptionKind int

const (
	simOptInfra simOptionKind = iota
	simOptEntity
	simOptController
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArenaSize sets the world extents (centred on the origin).
func WithArenaSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.worldW = w
		ts.worldH = h
	}}
}

// WithFogCellSize sets the visibility grid cell edge.
func WithFogCellSize(size float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cellSize = size
	}}
}

// WithQueueCapacity sets the production queue bound for bases added later.
func WithQueueCapacity(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.queueCap = n
	}}
}

// WithLogger mirrors simulation events to the given logger.
func WithLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.logger = l
	}}
}

// WithPlayerBase adds a player base at (x,y). The first one becomes the
// primary base.
func WithPlayerBase(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.AddBase(NewBase(ts.Catalog, FactionPlayer, x, y, ts.queueCap, ts.Events))
	}}
}

// WithPlanetoid adds an inert resource body.
func WithPlanetoid(x, y, radius, yield float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.AddPlanetoid(&Planetoid{X: x, Y: y, Radius: radius, Yield: yield})
	}}
}

// WithShip spawns a ship of the named hull. Unknown hulls panic: harness
// setup errors are programming mistakes, not runtime conditions.
func WithShip(name string, faction Faction, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		if _, err := ts.World.SpawnShip(name, faction, x, y); err != nil {
			panic(fmt.Sprintf("harness: spawn %s: %v", name, err))
		}
	}}
}

// WithEnemyAI enables the scripted enemy commander.
func WithEnemyAI(opts ...EnemyAIOption) SimOption {
	return SimOption{simOptController, func(ts *TestSim) {
		ts.enableAI = true
		ts.aiOpts = opts
	}}
}

// NewTestSim builds a simulation from the embedded content and the given
// options.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		worldW:   4800,
		worldH:   3200,
		cellSize: 120,
		logger:   zerolog.Nop(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	catalog, err := LoadDefaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("harness: load catalog: %v", err))
	}
	registry, err := LoadDefaultResearchRegistry(catalog)
	if err != nil {
		panic(fmt.Sprintf("harness: load research registry: %v", err))
	}
	ts.Catalog = catalog
	ts.Registry = registry
	ts.Events = NewEventLog(ts.logger)
	ts.World = NewWorld(catalog, ts.Events)
	ts.Grid = NewVisibilityGrid(ts.worldW, ts.worldH, ts.cellSize)
	ts.Research = NewResearchManager(registry, ts.Events)

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptController {
			o.fn(ts)
		}
	}
	if ts.enableAI {
		ts.AI = NewEnemyAI(ts.World, ts.Events, ts.aiOpts...)
	}
	return ts
}

// Step advances the whole simulation by one frame of dt seconds, in the
// canonical order: world, AI, research, sensor stamping.
func (ts *TestSim) Step(dt float64) {
	ts.World.Update(dt)
	if ts.AI != nil {
		ts.AI.Update(dt)
	}
	ts.Research.Update(dt)
	ts.World.StampSensors(ts.Grid, FactionPlayer)
}

// RunTicks advances n frames of dt seconds each.
func (ts *TestSim) RunTicks(n int, dt float64) {
	for i := 0; i < n; i++ {
		ts.Step(dt)
	}
}
