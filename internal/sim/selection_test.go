package sim

import "testing"

func makeSelectionWorld(t *testing.T) (*World, *VisibilityGrid) {
	t.Helper()
	w := makeWorld(t)
	return w, NewVisibilityGrid(4000, 4000, 100)
}

func TestPickShip_NearestWithinRadius(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	far, _ := w.SpawnShip("Wisp", FactionPlayer, 70, 0)
	near, _ := w.SpawnShip("Spearling", FactionPlayer, 30, 0)

	got := PickShip(w, grid, FactionPlayer, 0, 0, 80)
	if got != near {
		t.Fatalf("expected the nearer ship, got %v", got.Def().Name)
	}
	_ = far
}

func TestPickShip_OutsideRadiusMisses(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	w.SpawnShip("Wisp", FactionPlayer, 200, 0)
	if got := PickShip(w, grid, FactionPlayer, 0, 0, 80); got != nil {
		t.Fatalf("pick beyond radius should miss, got %s", got.Def().Name)
	}
}

func TestPickShip_FactionGated(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	w.SpawnShip("Talon", FactionEnemy, 10, 0)
	if got := PickShip(w, grid, FactionPlayer, 0, 0, 80); got != nil {
		t.Fatal("enemy ships must never be pickable by the player")
	}
}

func TestPickShip_FirstFoundWinsTies(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	first, _ := w.SpawnShip("Wisp", FactionPlayer, 40, 0)
	w.SpawnShip("Spearling", FactionPlayer, -40, 0)

	if got := PickShip(w, grid, FactionPlayer, 0, 0, 80); got != first {
		t.Fatalf("equal distance should resolve to iteration order, got %s", got.Def().Name)
	}
}

func TestSelectSingleShip_ReplaceAndAdditive(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	a, _ := w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	b, _ := w.SpawnShip("Spearling", FactionPlayer, 500, 0)

	SelectSingleShip(w, grid, FactionPlayer, 0, 0, false)
	if sel := w.Selected(); len(sel) != 1 || sel[0] != a {
		t.Fatalf("expected [a] selected, got %d ships", len(sel))
	}
	SelectSingleShip(w, grid, FactionPlayer, 500, 0, false)
	if sel := w.Selected(); len(sel) != 1 || sel[0] != b {
		t.Fatal("non-additive select should replace the selection")
	}
	SelectSingleShip(w, grid, FactionPlayer, 0, 0, true)
	if len(w.Selected()) != 2 {
		t.Fatal("additive select should extend the selection")
	}
	// Re-selecting an already-selected ship never duplicates it.
	SelectSingleShip(w, grid, FactionPlayer, 0, 0, true)
	if len(w.Selected()) != 2 {
		t.Fatal("duplicate selection must not grow the list")
	}
}

func TestSelectSingleShip_MissClears(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	w.SpawnShip("Wisp", FactionPlayer, 0, 0)
	SelectSingleShip(w, grid, FactionPlayer, 0, 0, false)
	SelectSingleShip(w, grid, FactionPlayer, 1500, 1500, false)
	if len(w.Selected()) != 0 {
		t.Fatal("a non-additive miss should clear the selection")
	}
}

func TestSelectShipsInRect_CornersAnyOrder(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	w.SpawnShip("Wisp", FactionPlayer, -50, -50)
	w.SpawnShip("Spearling", FactionPlayer, 50, 50)
	w.SpawnShip("Talon", FactionPlayer, 900, 900) // outside

	got := SelectShipsInRect(w, grid, FactionPlayer, 100, 100, -100, -100, false)
	if len(got) != 2 {
		t.Fatalf("rect should select 2 ships, got %d", len(got))
	}
}

func TestShipVisibleTo_EnemyNeedsCoverage(t *testing.T) {
	w, grid := makeSelectionWorld(t)
	enemy, _ := w.SpawnShip("Talon", FactionEnemy, 300, 300)

	if ShipVisibleTo(enemy, FactionPlayer, grid) {
		t.Fatal("uncovered enemy should be hidden")
	}
	grid.MarkRadar(300, 300, 0)
	if !ShipVisibleTo(enemy, FactionPlayer, grid) {
		t.Fatal("radar coverage should reveal the enemy")
	}
	grid.BeginFrame()
	grid.MarkVisual(300, 300, 0)
	if !ShipVisibleTo(enemy, FactionPlayer, grid) {
		t.Fatal("visual coverage should reveal the enemy")
	}
	// Own ships are always visible to their side, grid or not.
	if !ShipVisibleTo(enemy, FactionEnemy, grid) {
		t.Fatal("a side always sees its own ships")
	}
}
