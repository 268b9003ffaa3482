package sim

import "math"

// minFogCellSize is the smallest allowed fog cell edge in world units.
// Smaller values are clamped up to keep the grid bounded.
const minFogCellSize = 50.0

// FogCell is the composite visibility state of one grid cell.
// Explored is sticky for the grid's lifetime; Visual and Radar are cleared
// every frame by BeginFrame and re-stamped from live sensor ranges.
type FogCell struct {
	Explored bool
	Visual   bool
	Radar    bool
}

// VisibilityGrid is a uniform fog-of-war grid over world space, origin
// centred at (0,0). Marking uses the axis-aligned bounding box of the sensor
// circle — a deliberate conservative square approximation, cheap and good
// enough for fog rendering and selection gating.
type VisibilityGrid struct {
	cols     int
	rows     int
	cellSize float64
	halfW    float64 // world half-extents
	halfH    float64
	cells    []FogCell // row-major: index = row*cols + col
}

// NewVisibilityGrid creates a grid covering a worldW x worldH area centred
// at the origin. cellSize below the minimum is clamped up.
func NewVisibilityGrid(worldW, worldH, cellSize float64) *VisibilityGrid {
	if cellSize < minFogCellSize {
		cellSize = minFogCellSize
	}
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &VisibilityGrid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		halfW:    worldW / 2,
		halfH:    worldH / 2,
		cells:    make([]FogCell, cols*rows),
	}
}

// Cols returns the grid column count.
func (g *VisibilityGrid) Cols() int { return g.cols }

// Rows returns the grid row count.
func (g *VisibilityGrid) Rows() int { return g.rows }

// CellSize returns the effective (possibly clamped) cell edge length.
func (g *VisibilityGrid) CellSize() float64 { return g.cellSize }

// cellIndex maps a world position to (col, row), clamping out-of-range
// coordinates to the nearest edge cell. Grid queries never fail: entities
// transiently outside the arena still need sane answers.
func (g *VisibilityGrid) cellIndex(x, y float64) (col, row int) {
	col = int(math.Floor((x + g.halfW) / g.cellSize))
	row = int(math.Floor((y + g.halfH) / g.cellSize))
	if col < 0 {
		col = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// BeginFrame clears the per-frame visual and radar flags on every cell.
// Explored is monotonic and survives.
func (g *VisibilityGrid) BeginFrame() {
	for i := range g.cells {
		g.cells[i].Visual = false
		g.cells[i].Radar = false
	}
}

// MarkVisual stamps visual coverage (and explored) for every cell whose
// bounds intersect the bounding box of the sensor circle. A zero or negative
// radius marks exactly the cell containing the position.
func (g *VisibilityGrid) MarkVisual(x, y, radius float64) {
	g.mark(x, y, radius, func(c *FogCell) {
		c.Visual = true
		c.Explored = true
	})
}

// MarkRadar stamps radar coverage (and explored), same geometry as MarkVisual.
func (g *VisibilityGrid) MarkRadar(x, y, radius float64) {
	g.mark(x, y, radius, func(c *FogCell) {
		c.Radar = true
		c.Explored = true
	})
}

func (g *VisibilityGrid) mark(x, y, radius float64, set func(*FogCell)) {
	if radius <= 0 {
		col, row := g.cellIndex(x, y)
		set(&g.cells[row*g.cols+col])
		return
	}
	col0, row0 := g.cellIndex(x-radius, y-radius)
	col1, row1 := g.cellIndex(x+radius, y+radius)
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			set(&g.cells[row*g.cols+col])
		}
	}
}

// IsVisual reports live visual coverage at a world position.
func (g *VisibilityGrid) IsVisual(x, y float64) bool {
	col, row := g.cellIndex(x, y)
	return g.cells[row*g.cols+col].Visual
}

// IsRadar reports live radar coverage at a world position.
func (g *VisibilityGrid) IsRadar(x, y float64) bool {
	col, row := g.cellIndex(x, y)
	return g.cells[row*g.cols+col].Radar
}

// IsExplored reports whether a world position has ever been sensed.
func (g *VisibilityGrid) IsExplored(x, y float64) bool {
	col, row := g.cellIndex(x, y)
	return g.cells[row*g.cols+col].Explored
}

// CellAt returns the composite state at (col, row). Out-of-range indices
// return a zero cell.
func (g *VisibilityGrid) CellAt(col, row int) FogCell {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return FogCell{}
	}
	return g.cells[row*g.cols+col]
}

// Cells returns a copy of every cell's state in row-major order, for
// full-map rendering or iteration.
func (g *VisibilityGrid) Cells() []FogCell {
	out := make([]FogCell, len(g.cells))
	copy(out, g.cells)
	return out
}

// ExploredCount returns how many cells have ever been sensed. Used by the
// headless report to express map coverage.
func (g *VisibilityGrid) ExploredCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Explored {
			n++
		}
	}
	return n
}
