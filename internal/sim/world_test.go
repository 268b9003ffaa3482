package sim

import (
	"math"
	"testing"
)

func makeWorld(t *testing.T) *World {
	t.Helper()
	c, err := LoadDefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewWorld(c, nil)
}

func TestSpawnShip_HandleLookup(t *testing.T) {
	w := makeWorld(t)
	s, err := w.SpawnShip("Wisp", FactionPlayer, 10, 20)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	got, ok := w.ShipByID(s.ID())
	if !ok || got != s {
		t.Fatal("ShipByID should resolve the spawned ship")
	}
	if _, err := w.SpawnShip("Phantom", FactionPlayer, 0, 0); err == nil {
		t.Fatal("unknown hull must fail to spawn")
	}
}

func TestRemoveShip_SwapKeepsHandlesValid(t *testing.T) {
	w := makeWorld(t)
	a, _ := w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	b, _ := w.SpawnShip("Spearling", FactionPlayer, 100, 0)
	c, _ := w.SpawnShip("Talon", FactionPlayer, 200, 0)

	if !w.RemoveShip(a.ID()) {
		t.Fatal("remove should succeed")
	}
	if w.RemoveShip(a.ID()) {
		t.Fatal("double remove should fail")
	}
	if w.ShipCount() != 2 {
		t.Fatalf("ship count %d, want 2", w.ShipCount())
	}
	// The swapped-in last ship must still resolve through its handle.
	for _, s := range []*Ship{b, c} {
		got, ok := w.ShipByID(s.ID())
		if !ok || got != s {
			t.Fatalf("handle %d broken after removal", s.ID())
		}
	}
	if _, ok := w.ShipByID(a.ID()); ok {
		t.Fatal("removed handle must not resolve")
	}
}

func TestRemoveShip_DropsSelection(t *testing.T) {
	w := makeWorld(t)
	grid := NewVisibilityGrid(1000, 1000, 100)
	s, _ := w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	SelectSingleShip(w, grid, FactionPlayer, 0, 0, false)
	if len(w.Selected()) != 1 {
		t.Fatal("ship should be selected")
	}
	w.RemoveShip(s.ID())
	if len(w.Selected()) != 0 {
		t.Fatal("removal must drop the ship from the selection")
	}
}

func TestIssueMoveOrder_AppliesToWholeSelection(t *testing.T) {
	w := makeWorld(t)
	grid := NewVisibilityGrid(4000, 4000, 100)
	w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	w.SpawnShip("Spearling", FactionPlayer, 50, 50)
	w.SpawnShip("Talon", FactionEnemy, 60, 60)

	SelectShipsInRect(w, grid, FactionPlayer, -100, -100, 100, 100, false)
	if len(w.Selected()) != 2 {
		t.Fatalf("selected %d ships, want the 2 player ships", len(w.Selected()))
	}
	w.IssueMoveOrder(500, 600)
	for _, s := range w.Selected() {
		x, y, ok := s.MoveTarget()
		if !ok || x != 500 || y != 600 {
			t.Fatalf("ship %d missing the move order", s.ID())
		}
	}
}

// A dt spanning a full build completes it during World.Update and the new
// ship appears on the base's spawn ring, not on top of the base.
func TestWorldUpdate_ProductionSpawnsOnRing(t *testing.T) {
	w := makeWorld(t)
	base := NewBase(w.Catalog(), FactionPlayer, 0, 0, 0, nil)
	w.AddBase(base)
	mustQueue(t, base.Queue(), "Wisp")

	w.Update(18.0)
	if w.ShipCount() != 1 {
		t.Fatalf("ship count %d, want 1 after the Wisp completes", w.ShipCount())
	}
	s := w.Ships()[0]
	x, y := s.Position()
	dist := math.Hypot(x, y)
	if math.Abs(dist-baseSpawnBaseRadius) > 1e-6 {
		t.Fatalf("spawn distance %.1f, want ring radius %.1f", dist, baseSpawnBaseRadius)
	}
}

func TestSpawnRing_DistinctSlotsAndGrowth(t *testing.T) {
	w := makeWorld(t)
	base := NewBase(w.Catalog(), FactionPlayer, 0, 0, 0, nil)
	w.AddBase(base)

	seen := make(map[[2]int]bool)
	var lastRingDist float64
	for i := 0; i < baseSpawnSlots+1; i++ {
		x, y := base.NextSpawnPosition()
		key := [2]int{int(math.Round(x)), int(math.Round(y))}
		if seen[key] {
			t.Fatalf("spawn %d repeats position (%d,%d)", i, key[0], key[1])
		}
		seen[key] = true
		lastRingDist = math.Hypot(x, y)
	}
	// The 13th spawn starts the second ring.
	want := baseSpawnBaseRadius + baseSpawnRingStep
	if math.Abs(lastRingDist-want) > 1e-6 {
		t.Fatalf("13th spawn at distance %.1f, want %.1f", lastRingDist, want)
	}
}

func TestWorldUpdate_NonPositiveDtNoop(t *testing.T) {
	w := makeWorld(t)
	base := NewBase(w.Catalog(), FactionPlayer, 0, 0, 0, nil)
	w.AddBase(base)
	mustQueue(t, base.Queue(), "Wisp")
	w.Update(0)
	w.Update(-3)
	if w.Tick() != 0 || w.ShipCount() != 0 {
		t.Fatal("non-positive dt must not advance the world")
	}
	if base.Queue().ActiveJob().Remaining != 18.0 {
		t.Fatal("non-positive dt must not consume build time")
	}
}

func TestStampSensors_PlayerCoverage(t *testing.T) {
	w := makeWorld(t)
	grid := NewVisibilityGrid(4000, 4000, 100)
	w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	w.SpawnShip("Talon", FactionEnemy, 1500, 1500)

	w.StampSensors(grid, FactionPlayer)
	if !grid.IsVisual(0, 0) || !grid.IsRadar(0, 0) {
		t.Fatal("player ship position should be covered")
	}
	// Enemy sensors must not contribute to the player grid.
	if grid.IsVisual(1500, 1500) {
		t.Fatal("enemy-only region should be dark")
	}
}

func TestPrimaryBase_FirstPlayerBase(t *testing.T) {
	w := makeWorld(t)
	enemy := NewBase(w.Catalog(), FactionEnemy, 900, 0, 0, nil)
	w.AddBase(enemy)
	if w.PrimaryBase() != nil {
		t.Fatal("enemy base must not become primary")
	}
	player := NewBase(w.Catalog(), FactionPlayer, 0, 0, 0, nil)
	w.AddBase(player)
	if w.PrimaryBase() != player {
		t.Fatal("first player base should be primary")
	}
}
