// Package maze generates labyrinth grids with a randomized recursive
// backtracker. Grids are immutable once generated and contain no rendering
// or timing concerns.
package maze

import "fmt"

// Cell is the state of one grid unit.
type Cell uint8

const (
	Wall Cell = iota
	Path
)

// String returns the string representation of a cell.
func (c Cell) String() string {
	switch c {
	case Wall:
		return "Wall"
	case Path:
		return "Path"
	default:
		return "Unknown"
	}
}

// Coord is a cell position. X is the column, Y is the row; Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Midpoint returns the cell halfway between c and other.
// Only meaningful for lattice neighbours two cells apart.
func (c Coord) Midpoint(other Coord) Coord {
	return Coord{X: (c.X + other.X) / 2, Y: (c.Y + other.Y) / 2}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
