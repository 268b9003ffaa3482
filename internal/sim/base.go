package sim

import "math"

// Spawn-ring geometry for ships completing production at a base: 12 angular
// slots per ring, ring radius growing by a fixed step each full ring. The
// serial counter guarantees successive completions never stack on one point
// and fleets fan outward over time.
const (
	baseSpawnSlots      = 12
	baseSpawnBaseRadius = 140.0
	baseSpawnRingStep   = 60.0
)

// Base is a stationary production site. One base is designated the player's
// primary base and serves as the enemy AI's target anchor.
type Base struct {
	x, y    float64
	faction Faction

	Health       float64
	Armor        float64
	Shields      float64
	Energy       float64
	VisualRange  float64
	RadarRange   float64
	FiringRange  float64
	WeaponDamage float64

	queue       *ProductionQueue
	spawnSerial int
}

// NewBase creates a base at (x,y) with its own production queue.
// queueCapacity <= 0 selects the default.
func NewBase(catalog *Catalog, faction Faction, x, y float64, queueCapacity int, events *EventLog) *Base {
	return &Base{
		x:            x,
		y:            y,
		faction:      faction,
		Health:       9000,
		Armor:        120,
		Shields:      3000,
		Energy:       1000,
		VisualRange:  700,
		RadarRange:   1400,
		FiringRange:  600,
		WeaponDamage: 90,
		queue:        NewProductionQueue(catalog, queueCapacity, events),
	}
}

// Position returns the base's world coordinates.
func (b *Base) Position() (x, y float64) { return b.x, b.y }

// Faction returns the base's side.
func (b *Base) Faction() Faction { return b.faction }

// Queue returns the base's production queue.
func (b *Base) Queue() *ProductionQueue { return b.queue }

// NextSpawnPosition returns the ring slot for the next completed ship and
// advances the serial counter.
func (b *Base) NextSpawnPosition() (x, y float64) {
	slot := b.spawnSerial % baseSpawnSlots
	ring := b.spawnSerial / baseSpawnSlots
	b.spawnSerial++
	radius := baseSpawnBaseRadius + float64(ring)*baseSpawnRingStep
	angle := 2 * math.Pi * float64(slot) / baseSpawnSlots
	return b.x + math.Cos(angle)*radius, b.y + math.Sin(angle)*radius
}

// Planetoid is an inert resource body: position, radius and a yield value.
// No extraction logic exists yet.
type Planetoid struct {
	X, Y   float64
	Radius float64
	Yield  float64
}
