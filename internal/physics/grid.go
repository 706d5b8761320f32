package physics

import (
	"math"
	"slices"
)

// SpatialGrid is a uniform grid for broad-phase collision detection.
// Items are inserted by position and index, then nearby items can be queried
// via a 3x3 neighborhood lookup that wraps at world edges.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding items so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given world.
func NewSpatialGrid(b Bounds, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = math.Max(b.Width, b.Height)
	}
	cols := max(int(math.Ceil(b.Width/cellSize)), 1)
	rows := max(int(math.Ceil(b.Height/cellSize)), 1)

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// CellSize returns the edge length of a cell.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(p Vec2, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Handles wrapping at world edges.
// Grids narrower than three cells visit a cell more than once, so callers
// must tolerate duplicate indices.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(p Vec2, fn func(index int) bool) {
	col, row := g.posToCell(p)

	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// Pair is an unordered pair of item indices with A < B.
type Pair struct {
	A, B int
}

// CandidatePairs returns every distinct pair of items that share a 3x3
// neighborhood, sorted by (A, B). positions[i] must be the position item i
// was inserted with.
func (g *SpatialGrid) CandidatePairs(positions []Vec2) []Pair {
	var pairs []Pair
	for i, p := range positions {
		g.QueryAround(p, func(j int) bool {
			if j > i {
				pairs = append(pairs, Pair{A: i, B: j})
			}
			return false
		})
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return slices.Compact(pairs)
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range to handle edge cases with floating point.
func (g *SpatialGrid) posToCell(p Vec2) (col, row int) {
	col = min(max(int(p.X*g.invCellSize), 0), g.cols-1)
	row = min(max(int(p.Y*g.invCellSize), 0), g.rows-1)
	return col, row
}
