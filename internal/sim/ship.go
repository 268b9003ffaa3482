package sim

import "math"

// defaultArrivalThreshold is the distance at which a moving ship snaps onto
// its target and clears the order, in world units. Avoids asymptotic jitter
// around the destination.
const defaultArrivalThreshold = 6.0

// Faction tags an entity's side.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ShipID is a stable integer handle for a runtime ship. Handles stay valid
// across removals of other ships; holding a ShipID never pins a slice index.
type ShipID uint32

// Ship is a runtime entity: a position, a faction, a pointer to its
// immutable catalog definition, and mutable stats copied from the
// definition at creation. Current stats never go negative.
type Ship struct {
	id       ShipID
	x, y     float64
	rotation float64
	scale    float64
	def      *ShipDefinition
	faction  Faction

	hull    float64
	shields float64
	energy  float64

	hasTarget        bool
	targetX, targetY float64
	arrival          float64
}

// NewShip creates a ship of the given definition at (x,y). Runtime stats
// start at the definition's maxima.
func NewShip(id ShipID, def *ShipDefinition, faction Faction, x, y float64) *Ship {
	return &Ship{
		id:      id,
		x:       x,
		y:       y,
		scale:   1.0,
		def:     def,
		faction: faction,
		hull:    def.Health,
		shields: def.Shields,
		energy:  def.Energy,
		arrival: defaultArrivalThreshold,
	}
}

// ID returns the ship's stable handle.
func (s *Ship) ID() ShipID { return s.id }

// Position returns the ship's world coordinates.
func (s *Ship) Position() (x, y float64) { return s.x, s.y }

// Rotation returns the ship's heading in radians. Movement does not update
// it; visual facing is a rendering concern.
func (s *Ship) Rotation() float64 { return s.rotation }

// SetRotation sets the visual heading.
func (s *Ship) SetRotation(r float64) { s.rotation = r }

// Scale returns the ship's render scale.
func (s *Ship) Scale() float64 { return s.scale }

// Faction returns the ship's side.
func (s *Ship) Faction() Faction { return s.faction }

// Def returns the immutable catalog definition.
func (s *Ship) Def() *ShipDefinition { return s.def }

// Hull returns current hull points.
func (s *Ship) Hull() float64 { return s.hull }

// ShieldCharge returns current shield points.
func (s *Ship) ShieldCharge() float64 { return s.shields }

// EnergyCharge returns current energy.
func (s *Ship) EnergyCharge() float64 { return s.energy }

// SetMoveTarget orders the ship to the given point.
func (s *Ship) SetMoveTarget(x, y float64) {
	s.hasTarget = true
	s.targetX = x
	s.targetY = y
}

// ClearMoveTarget cancels any move order.
func (s *Ship) ClearMoveTarget() {
	s.hasTarget = false
}

// HasMoveOrder reports whether a move target is set.
func (s *Ship) HasMoveOrder() bool { return s.hasTarget }

// MoveTarget returns the current move target, ok=false when idle.
func (s *Ship) MoveTarget() (x, y float64, ok bool) {
	return s.targetX, s.targetY, s.hasTarget
}

// Update advances point-seek movement by dt seconds. No acceleration model:
// within the arrival threshold (or at zero flight speed, or when one step
// would overshoot) the ship snaps exactly onto the target and the order
// clears. A non-positive dt is a no-op.
func (s *Ship) Update(dt float64) {
	if dt <= 0 || !s.hasTarget {
		return
	}
	dx := s.targetX - s.x
	dy := s.targetY - s.y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist <= s.arrival || s.def.FlightSpeed <= 0 {
		s.snapToTarget()
		return
	}
	maxStep := s.def.FlightSpeed * dt
	if dist <= maxStep {
		s.snapToTarget()
		return
	}
	s.x += dx / dist * maxStep
	s.y += dy / dist * maxStep
}

func (s *Ship) snapToTarget() {
	s.x = s.targetX
	s.y = s.targetY
	s.hasTarget = false
}
