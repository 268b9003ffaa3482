package sim

import "testing"

// End-to-end holdout scenario over the embedded content: the player base
// builds ships, research runs at an online lab, the enemy AI stages waves,
// and the fog grid accumulates exploration.
func TestScenario_Holdout(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(4800, 3200),
		WithFogCellSize(120),
		WithPlayerBase(0, 0),
		WithPlanetoid(800, -600, 90, 250),
		WithShip("Wisp", FactionPlayer, 200, 0),
		WithEnemyAI(
			WithInitialDelay(5),
			WithWaveInterval(10),
			WithStagingArea(2000, 0, 160),
		),
	)

	base := ts.World.PrimaryBase()
	if base == nil {
		t.Fatal("scenario needs a primary base")
	}
	mustQueue(t, base.Queue(), "Spearling")
	mustQueue(t, base.Queue(), "Wisp")

	ts.Research.SetFacilityOnline("strike_lab", true)
	if !ts.Research.Start("SF_STRIKE_FUNDAMENTALS_I", 9999) {
		t.Fatal("strike fundamentals should start with the lab online")
	}

	// 60 seconds at 10 Hz.
	ts.RunTicks(600, 0.1)

	// Both builds completed: starting ship + 2 produced.
	if got := ts.World.CountFaction(FactionPlayer); got != 3 {
		t.Fatalf("player ship count %d, want 3", got)
	}
	if got := ts.Events.Count("production", "complete"); got != 2 {
		t.Fatalf("production completions %d, want 2", got)
	}

	// Research finished (25s) and unlocked the Spearling.
	if !ts.Research.IsCompleted("SF_STRIKE_FUNDAMENTALS_I") {
		t.Fatal("strike fundamentals should be done after 60s")
	}
	if !ts.Research.IsShipUnlocked("Spearling") {
		t.Fatal("Spearling should be unlocked")
	}

	// Waves at t=5,15,25,35,45,55 → 6 enemies, all ordered at the base.
	if got := ts.World.CountFaction(FactionEnemy); got != 6 {
		t.Fatalf("enemy ship count %d, want 6", got)
	}
	for _, s := range ts.World.Ships() {
		if s.Faction() != FactionEnemy {
			continue
		}
		x, y, ok := s.MoveTarget()
		if !ok && (x != 0 || y != 0) {
			// Arrived ships have cleared orders at the base itself.
			t.Fatalf("enemy ship %d neither en route nor arrived", s.ID())
		}
	}

	// The player footprint explored a meaningful chunk of the arena.
	if ts.Grid.ExploredCount() == 0 {
		t.Fatal("sensors should have explored cells")
	}
	// Transient coverage exists around the base right now.
	if !ts.Grid.IsVisual(0, 0) {
		t.Fatal("base cell should be visually covered this frame")
	}
}

// With no orders, no AI and no production, ticking is a stable no-op.
func TestScenario_QuiescentWorldIsStable(t *testing.T) {
	ts := NewTestSim(
		WithPlayerBase(0, 0),
		WithShip("Aegis", FactionPlayer, -300, 150),
	)
	sx, sy := ts.World.Ships()[0].Position()
	ts.RunTicks(100, 0.1)
	x, y := ts.World.Ships()[0].Position()
	if x != sx || y != sy {
		t.Fatalf("idle ship drifted from (%.0f,%.0f) to (%.0f,%.0f)", sx, sy, x, y)
	}
	if ts.World.ShipCount() != 1 {
		t.Fatalf("ship count changed to %d", ts.World.ShipCount())
	}
}
