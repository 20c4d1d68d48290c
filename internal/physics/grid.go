package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over a
// bounded playfield. Objects are inserted by position and index, then nearby
// objects can be queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood. Positions outside the field are clamped to the
// border cells, so entities still above the top edge are found too.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given field dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(width, height, cellSize)
	return g
}

// Reset resizes the grid, dropping all items. Used when the playfield is resized.
func (g *SpatialGrid) Reset(width, height, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)

	g.cellSize = cellSize
	g.invCellSize = 1.0 / cellSize
	g.cols = cols
	g.rows = rows
	if cap(g.cells) >= cols*rows {
		g.cells = g.cells[:cols*rows]
		g.Clear()
	} else {
		g.cells = make([]gridCell, cols*rows)
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Neighbors past the field edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// Highest returns the largest inserted index in the neighborhood of (x, y)
// for which match returns true, or -1. Scanning every candidate and keeping
// the maximum reproduces "last inserted wins" ordering regardless of which
// cell an index landed in.
func (g *SpatialGrid) Highest(x, y float64, match func(index int) bool) int {
	best := -1
	g.QueryAround(x, y, func(index int) bool {
		if index > best && match(index) {
			best = index
		}
		return false
	})
	return best
}

// posToCell converts coordinates to grid cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
