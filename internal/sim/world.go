package sim

import (
	"github.com/kamstrup/intmap"
)

// World owns every runtime entity and advances them one frame at a time.
// All mutation goes through World methods; single-threaded ownership, no
// locks. One Update call is one atomic simulation step.
type World struct {
	catalog *Catalog
	events  *EventLog

	ships   []*Ship
	handles *intmap.Map[uint32, int] // ShipID → index into ships
	nextID  ShipID

	bases       []*Base
	primaryBase *Base
	planetoids  []*Planetoid

	selected []*Ship

	tick    int
	elapsed float64
}

// NewWorld creates an empty world over the given catalog. events may be nil;
// a nil log is replaced with a silent one so callers never check.
func NewWorld(catalog *Catalog, events *EventLog) *World {
	if events == nil {
		events = NewEventLog(nopLogger())
	}
	return &World{
		catalog: catalog,
		events:  events,
		handles: intmap.New[uint32, int](256),
		nextID:  1,
	}
}

// Catalog returns the world's ship/facility catalog.
func (w *World) Catalog() *Catalog { return w.catalog }

// Events returns the world's event log.
func (w *World) Events() *EventLog { return w.events }

// Tick returns the number of completed Update calls.
func (w *World) Tick() int { return w.tick }

// Elapsed returns total simulated seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// AddBase registers a base. The first player-faction base becomes the
// primary base, the enemy AI's target anchor.
func (w *World) AddBase(b *Base) {
	w.bases = append(w.bases, b)
	if w.primaryBase == nil && b.Faction() == FactionPlayer {
		w.primaryBase = b
	}
}

// AddPlanetoid registers an inert resource body.
func (w *World) AddPlanetoid(p *Planetoid) {
	w.planetoids = append(w.planetoids, p)
}

// Bases returns all bases.
func (w *World) Bases() []*Base { return w.bases }

// Planetoids returns all planetoids.
func (w *World) Planetoids() []*Planetoid { return w.planetoids }

// PrimaryBase returns the player's primary base, or nil.
func (w *World) PrimaryBase() *Base { return w.primaryBase }

// SpawnShip creates a ship of the named hull at (x,y) and registers it.
// Fails with ErrNotFound for an unknown hull.
func (w *World) SpawnShip(name string, faction Faction, x, y float64) (*Ship, error) {
	def, err := w.catalog.ShipByName(name)
	if err != nil {
		return nil, err
	}
	return w.spawnFromDef(def, faction, x, y), nil
}

func (w *World) spawnFromDef(def *ShipDefinition, faction Faction, x, y float64) *Ship {
	s := NewShip(w.nextID, def, faction, x, y)
	w.nextID++
	w.handles.Put(uint32(s.ID()), len(w.ships))
	w.ships = append(w.ships, s)
	w.events.Add("world", "spawn", def.Name, float64(s.ID()))
	return s
}

// Ships returns the live ship list. Callers must not retain the slice across
// removals; hold ShipIDs instead.
func (w *World) Ships() []*Ship { return w.ships }

// ShipByID resolves a handle in O(1).
func (w *World) ShipByID(id ShipID) (*Ship, bool) {
	idx, ok := w.handles.Get(uint32(id))
	if !ok {
		return nil, false
	}
	return w.ships[idx], true
}

// ShipCount returns the number of live ships.
func (w *World) ShipCount() int { return len(w.ships) }

// CountFaction returns the number of live ships on the given side.
func (w *World) CountFaction(f Faction) int {
	n := 0
	for _, s := range w.ships {
		if s.Faction() == f {
			n++
		}
	}
	return n
}

// RemoveShip deletes a ship by handle, keeping every other handle valid.
// Swap-remove: the last ship moves into the vacated index. Also drops the
// ship from the selection. Returns false for an unknown handle.
func (w *World) RemoveShip(id ShipID) bool {
	idx, ok := w.handles.Get(uint32(id))
	if !ok {
		return false
	}
	last := len(w.ships) - 1
	if idx != last {
		moved := w.ships[last]
		w.ships[idx] = moved
		w.handles.Put(uint32(moved.ID()), idx)
	}
	w.ships = w.ships[:last]
	w.handles.Del(uint32(id))

	for i, s := range w.selected {
		if s.ID() == id {
			w.selected = append(w.selected[:i], w.selected[i+1:]...)
			break
		}
	}
	w.events.Add("world", "remove", "", float64(id))
	return true
}

// Selected returns the current selection.
func (w *World) Selected() []*Ship { return w.selected }

// ClearSelection empties the selection.
func (w *World) ClearSelection() { w.selected = w.selected[:0] }

// addSelected appends a ship unless already selected.
func (w *World) addSelected(s *Ship) {
	for _, cur := range w.selected {
		if cur.ID() == s.ID() {
			return
		}
	}
	w.selected = append(w.selected, s)
}

// IssueMoveOrder assigns the destination to every selected ship. Atomic:
// either the whole selection gets the order or (empty selection) nothing
// happens.
func (w *World) IssueMoveOrder(x, y float64) {
	for _, s := range w.selected {
		s.SetMoveTarget(x, y)
	}
}

// Update advances one frame: ship movement first, then each base's
// production queue, spawning completed ships on the base's ring. A
// non-positive dt is a safe no-op.
func (w *World) Update(dt float64) {
	if dt <= 0 {
		return
	}
	w.tick++
	w.elapsed += dt
	w.events.SetTick(w.tick)

	for _, s := range w.ships {
		s.Update(dt)
	}
	for _, b := range w.bases {
		for _, def := range b.Queue().Update(dt) {
			x, y := b.NextSpawnPosition()
			w.spawnFromDef(def, b.Faction(), x, y)
		}
	}
}

// StampSensors rewrites the grid's per-frame coverage from the viewer
// faction's live sensor ranges: visual and radar circles around every ship
// and base. Called once per frame before any visibility query.
func (w *World) StampSensors(grid *VisibilityGrid, viewer Faction) {
	grid.BeginFrame()
	for _, s := range w.ships {
		if s.Faction() != viewer {
			continue
		}
		x, y := s.Position()
		grid.MarkVisual(x, y, s.Def().VisualRange)
		grid.MarkRadar(x, y, s.Def().RadarRange)
	}
	for _, b := range w.bases {
		if b.Faction() != viewer {
			continue
		}
		x, y := b.Position()
		grid.MarkVisual(x, y, b.VisualRange)
		grid.MarkRadar(x, y, b.RadarRange)
	}
}
