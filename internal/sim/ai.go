package sim

import "math"

// Enemy AI defaults. The controller runs two independent cadences from one
// Update: per-tick commanding of idle hostile ships, and a countdown-driven
// reinforcement spawner capped by live enemy ship count.
const (
	defaultWaveInterval = 30.0 // seconds between reinforcement attempts
	defaultInitialDelay = 8.0  // seconds before the first attempt
	defaultEnemyShipCap = 10

	// Staging-ring geometry, deliberately distinct from the base spawn ring:
	// 8 angular slots per ring, wider radial step, anchored off-arena.
	stagingSlots    = 8
	stagingRingStep = 90.0
)

// defaultWaveCycle is the ordered hull rotation for reinforcement spawns.
// The cycle wraps indefinitely; hulls missing from the catalog are skipped
// without disturbing the rotation position.
var defaultWaveCycle = []string{"Spearling", "Talon", "Wisp", "Aegis"}

// EnemyAIController is the scripted opposing commander: it points idle
// hostile ships at the player's primary base and feeds in reinforcement
// waves from an off-map staging area.
type EnemyAIController struct {
	world   *World
	catalog *Catalog
	events  *EventLog

	interval float64
	timer    float64 // counts down to the next spawn attempt
	shipCap  int

	cycle    []string
	cycleIdx int

	stagingX    float64
	stagingY    float64
	stagingBase float64 // innermost staging ring radius
	serial      int     // monotonically increasing spawn counter
}

// EnemyAIOption tweaks controller construction.
type EnemyAIOption func(*EnemyAIController)

// WithWaveInterval sets the seconds between reinforcement attempts.
func WithWaveInterval(seconds float64) EnemyAIOption {
	return func(c *EnemyAIController) { c.interval = seconds }
}

// WithInitialDelay sets the countdown before the first attempt.
func WithInitialDelay(seconds float64) EnemyAIOption {
	return func(c *EnemyAIController) { c.timer = seconds }
}

// WithShipCap sets the live enemy ship count above which spawning pauses.
func WithShipCap(n int) EnemyAIOption {
	return func(c *EnemyAIController) { c.shipCap = n }
}

// WithWaveCycle replaces the hull rotation.
func WithWaveCycle(hulls []string) EnemyAIOption {
	return func(c *EnemyAIController) { c.cycle = hulls }
}

// WithStagingArea moves the staging anchor and innermost ring radius.
func WithStagingArea(x, y, baseRadius float64) EnemyAIOption {
	return func(c *EnemyAIController) {
		c.stagingX = x
		c.stagingY = y
		c.stagingBase = baseRadius
	}
}

// NewEnemyAI creates a controller over the given world.
func NewEnemyAI(world *World, events *EventLog, opts ...EnemyAIOption) *EnemyAIController {
	c := &EnemyAIController{
		world:       world,
		catalog:     world.Catalog(),
		events:      events,
		interval:    defaultWaveInterval,
		timer:       defaultInitialDelay,
		shipCap:     defaultEnemyShipCap,
		cycle:       defaultWaveCycle,
		stagingX:    2900,
		stagingY:    0,
		stagingBase: 160,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update runs both cadences. Commanding happens every tick; the spawner
// fires when its countdown expires. A non-positive dt is a no-op.
func (c *EnemyAIController) Update(dt float64) {
	if dt <= 0 {
		return
	}
	c.commandIdleShips()

	c.timer -= dt
	if c.timer > 0 {
		return
	}
	c.timer = c.interval
	c.trySpawnWave()
}

// commandIdleShips points every orderless enemy ship at the player's
// primary base. Ships already en route are left alone; no order thrashing.
func (c *EnemyAIController) commandIdleShips() {
	base := c.world.PrimaryBase()
	if base == nil {
		return
	}
	bx, by := base.Position()
	for _, s := range c.world.Ships() {
		if s.Faction() != FactionEnemy || s.HasMoveOrder() {
			continue
		}
		s.SetMoveTarget(bx, by)
	}
}

// trySpawnWave attempts one reinforcement spawn. Below-cap check first; an
// unknown hull in the rotation is skipped silently, intentional tolerance
// for content churn, and the rotation still advances.
func (c *EnemyAIController) trySpawnWave() {
	if len(c.cycle) == 0 || c.world.CountFaction(FactionEnemy) >= c.shipCap {
		return
	}
	name := c.cycle[c.cycleIdx%len(c.cycle)]
	c.cycleIdx++

	def, err := c.catalog.ShipByName(name)
	if err != nil {
		return
	}
	x, y := c.nextStagingPosition()
	s := c.world.spawnFromDef(def, FactionEnemy, x, y)
	if c.events != nil {
		c.events.Add("ai", "wave", name, float64(s.ID()))
	}
	if base := c.world.PrimaryBase(); base != nil {
		bx, by := base.Position()
		s.SetMoveTarget(bx, by)
	}
}

// nextStagingPosition maps the spawn serial onto the staging rings:
// 8 slots per ring, stepping outward a fixed amount per full ring.
func (c *EnemyAIController) nextStagingPosition() (x, y float64) {
	slot := c.serial % stagingSlots
	ring := c.serial / stagingSlots
	c.serial++
	radius := c.stagingBase + float64(ring)*stagingRingStep
	angle := 2 * math.Pi * float64(slot) / stagingSlots
	return c.stagingX + math.Cos(angle)*radius, c.stagingY + math.Sin(angle)*radius
}
