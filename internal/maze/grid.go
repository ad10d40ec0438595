package maze

import "strings"

// Grid is a rectangular maze stored in row-major order: index = y*W + x.
// A Grid is never modified after Generate returns it.
type Grid struct {
	w     int
	h     int
	cells []Cell
}

// newWallGrid creates a grid with every cell set to Wall.
func newWallGrid(w, h int) *Grid {
	// Wall is the zero value
	return &Grid{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.w + c.X
}

// set marks the cell; only the generator calls it.
func (g *Grid) set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = cell
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

// OnBorder returns true if the coordinate lies on the outer ring.
func (g *Grid) OnBorder(c Coord) bool {
	return c.X == 0 || c.Y == 0 || c.X == g.w-1 || c.Y == g.h-1
}

// At returns the cell at the given coordinate.
// Out-of-bounds coordinates read as Wall.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[g.index(c)]
}

// IsPath returns true if the cell at (x, y) is traversable.
func (g *Grid) IsPath(x, y int) bool {
	return g.At(C(x, y)) == Path
}

// Start returns the cell where the player begins.
func (g *Grid) Start() Coord {
	return C(1, 1)
}

// Exit returns the bottom-right interior cell.
func (g *Grid) Exit() Coord {
	return C(g.w-2, g.h-2)
}

// PathCount returns the number of Path cells.
func (g *Grid) PathCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell == Path {
			count++
		}
	}
	return count
}

// Rows returns a copy of the grid as [row][col].
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.h)
	for y := range rows {
		rows[y] = make([]Cell, g.w)
		copy(rows[y], g.cells[y*g.w:(y+1)*g.w])
	}
	return rows
}

// Equal returns true if two grids have the same dimensions and contents.
// Two nil grids are equal.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as ASCII: '#' for walls, ' ' for paths.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.w*g.h + g.h)

	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			if g.At(C(x, y)) == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
