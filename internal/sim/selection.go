package sim

import "math"

// defaultPickRadius is the hit-test radius for single-ship picks, in world
// units.
const defaultPickRadius = 80.0

// ShipVisibleTo reports whether a ship is visible to the viewer faction:
// a side always sees its own ships; anything else needs live visual or
// radar coverage at the ship's cell.
func ShipVisibleTo(s *Ship, viewer Faction, grid *VisibilityGrid) bool {
	if s.Faction() == viewer {
		return true
	}
	x, y := s.Position()
	return grid.IsVisual(x, y) || grid.IsRadar(x, y)
}

// shipSelectable reports whether the viewer may select the ship: the
// faction must match and the ship must be visible to the viewer.
func shipSelectable(s *Ship, viewer Faction, grid *VisibilityGrid) bool {
	return s.Faction() == viewer && ShipVisibleTo(s, viewer, grid)
}

// PickShip returns the nearest selectable ship within radius of (x,y), or
// nil. radius <= 0 selects the default. Equal distances resolve to the
// first ship found in iteration order; strict tie-breaking is not a
// requirement here.
func PickShip(w *World, grid *VisibilityGrid, viewer Faction, x, y, radius float64) *Ship {
	if radius <= 0 {
		radius = defaultPickRadius
	}
	var best *Ship
	bestDist := radius
	for _, s := range w.Ships() {
		if !shipSelectable(s, viewer, grid) {
			continue
		}
		sx, sy := s.Position()
		d := math.Hypot(sx-x, sy-y)
		if d < bestDist || (best == nil && d <= bestDist) {
			best = s
			bestDist = d
		}
	}
	return best
}

// SelectSingleShip picks at (x,y) and replaces the selection with the
// result — or extends it when additive. A miss with additive=false clears
// the selection. Returns the picked ship, or nil.
func SelectSingleShip(w *World, grid *VisibilityGrid, viewer Faction, x, y float64, additive bool) *Ship {
	s := PickShip(w, grid, viewer, x, y, defaultPickRadius)
	if !additive {
		w.ClearSelection()
	}
	if s != nil {
		w.addSelected(s)
	}
	return s
}

// SelectShipsInRect replaces (or, additive, extends) the selection with
// every selectable ship inside the rectangle spanned by the two corners,
// given in any order. Duplicates are never added twice.
func SelectShipsInRect(w *World, grid *VisibilityGrid, viewer Faction, x0, y0, x1, y1 float64, additive bool) []*Ship {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if !additive {
		w.ClearSelection()
	}
	for _, s := range w.Ships() {
		if !shipSelectable(s, viewer, grid) {
			continue
		}
		sx, sy := s.Position()
		if sx >= x0 && sx <= x1 && sy >= y0 && sy <= y1 {
			w.addSelected(s)
		}
	}
	return w.Selected()
}
