package forest

import "fmt"

// Grid is a fixed-size square cell array with one distinguished river row
// that stays empty and acts as an infinite water source. Dimensions never
// change after construction; a new episode builds a new Grid.
type Grid struct {
	size     int
	riverRow int
	cells    [][]Cell
}

func newGrid(size, riverRow int) *Grid {
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
	}
	return &Grid{size: size, riverRow: riverRow, cells: cells}
}

func (g *Grid) Size() int     { return g.size }
func (g *Grid) RiverRow() int { return g.riverRow }

func (g *Grid) At(r, c int) *Cell {
	return &g.cells[r][c]
}

func (g *Grid) IsWithinBounds(r, c int) bool {
	return r >= 0 && r < g.size && c >= 0 && c < g.size
}

func (g *Grid) IsRiver(r int) bool {
	return r == g.riverRow
}

// Neighbors returns the in-bounds 4-connected neighbors of (r,c) in a fixed
// up, down, left, right order.
func (g *Grid) Neighbors(r, c int) []Position {
	out := make([]Position, 0, 4)
	for _, d := range [4]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d.Row, c+d.Col
		if g.IsWithinBounds(nr, nc) {
			out = append(out, Position{Row: nr, Col: nc})
		}
	}
	return out
}

func (g *Grid) CountState(s CellState) int {
	n := 0
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c].State == s {
				n++
			}
		}
	}
	return n
}

func (g *Grid) FireCount() int { return g.CountState(CellFire) }
func (g *Grid) TreeCount() int { return g.CountState(CellTree) }

// FirePositions lists burning cells in row-major order so that callers
// iterating over them stay deterministic.
func (g *Grid) FirePositions() []Position {
	out := []Position{}
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c].State == CellFire {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// HasFlammableNeighbor reports whether any 4-neighbor of (r,c) is a tree.
func (g *Grid) HasFlammableNeighbor(r, c int) bool {
	for _, n := range g.Neighbors(r, c) {
		if g.cells[n.Row][n.Col].Flammable() {
			return true
		}
	}
	return false
}

// StateCodes serializes cell states as integer codes (0 empty, 1 tree,
// 2 fire) for observations and dashboards.
func (g *Grid) StateCodes() [][]int {
	out := make([][]int, g.size)
	for r := 0; r < g.size; r++ {
		out[r] = make([]int, g.size)
		for c := 0; c < g.size; c++ {
			out[r][c] = int(g.cells[r][c].State)
		}
	}
	return out
}

type GridSnapshot struct {
	Size     int      `json:"size"`
	RiverRow int      `json:"river_row"`
	Cells    [][]Cell `json:"cells"`
}

// Export copies the full grid, including fuel-moisture and elevation maps,
// into a serializable snapshot.
func (g *Grid) Export() GridSnapshot {
	cells := make([][]Cell, g.size)
	for r := 0; r < g.size; r++ {
		cells[r] = make([]Cell, g.size)
		copy(cells[r], g.cells[r])
	}
	return GridSnapshot{Size: g.size, RiverRow: g.riverRow, Cells: cells}
}

// ImportGrid rebuilds a Grid from an exported snapshot. The result is
// cell-for-cell identical to the exported grid.
func ImportGrid(s GridSnapshot) (*Grid, error) {
	if s.Size <= 0 || len(s.Cells) != s.Size {
		return nil, fmt.Errorf("%w: snapshot size %d does not match %d rows", ErrInvalidConfig, s.Size, len(s.Cells))
	}
	if s.RiverRow < 0 || s.RiverRow >= s.Size {
		return nil, fmt.Errorf("%w: river row %d outside grid of size %d", ErrInvalidConfig, s.RiverRow, s.Size)
	}
	g := newGrid(s.Size, s.RiverRow)
	for r := 0; r < s.Size; r++ {
		if len(s.Cells[r]) != s.Size {
			return nil, fmt.Errorf("%w: snapshot row %d has %d cells, want %d", ErrInvalidConfig, r, len(s.Cells[r]), s.Size)
		}
		copy(g.cells[r], s.Cells[r])
	}
	return g, nil
}
