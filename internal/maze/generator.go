package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/stack"
)

// MinDimension is the smallest odd width or height the carver accepts.
const MinDimension = 5

// ErrInvalidDimensions is returned when width or height is even or too small.
var ErrInvalidDimensions = errors.New("maze: invalid dimensions")

// lattice offsets in carving order: up, right, down, left
var carveOffsets = [4]Coord{
	{X: 0, Y: -2},
	{X: 2, Y: 0},
	{X: 0, Y: 2},
	{X: -2, Y: 0},
}

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// CheckDimensions reports whether width and height can be carved.
func CheckDimensions(width, height int) error {
	if width < MinDimension || height < MinDimension {
		return fmt.Errorf("%w: %dx%d is smaller than %dx%d",
			ErrInvalidDimensions, width, height, MinDimension, MinDimension)
	}
	if width%2 == 0 || height%2 == 0 {
		return fmt.Errorf("%w: %dx%d must be odd in both axes",
			ErrInvalidDimensions, width, height)
	}
	return nil
}

// Generate carves a maze of the given odd dimensions.
// A nil rng uses a time-seeded source.
func Generate(width, height int, rng *rand.Rand) (*Grid, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}

	g := newWallGrid(width, height)

	start := g.Start()
	g.set(start, Path)

	cells := stack.New[Coord]()
	cells.Push(start)

	neighbors := make([]Coord, 0, len(carveOffsets))
	for cells.Size() > 0 {
		current := cells.Peek()

		neighbors = g.uncarvedNeighbors(current, neighbors[:0])
		if len(neighbors) == 0 {
			cells.Pop()
			continue
		}

		chosen := neighbors[rng.Intn(len(neighbors))]
		g.set(chosen, Path)
		g.set(current.Midpoint(chosen), Path)
		cells.Push(chosen)
	}

	// The exit is a lattice cell and already carved, but the game depends on it.
	// No opening is cut into the bottom border: the ring stays solid.
	g.set(g.Exit(), Path)

	return g, nil
}

// uncarvedNeighbors appends the lattice neighbours of c that are still walls
// and lie strictly inside the border ring.
func (g *Grid) uncarvedNeighbors(c Coord, dst []Coord) []Coord {
	for _, off := range carveOffsets {
		n := c.Add(off.X, off.Y)
		if n.X <= 0 || n.X >= g.w-1 || n.Y <= 0 || n.Y >= g.h-1 {
			continue
		}
		if g.At(n) == Wall {
			dst = append(dst, n)
		}
	}
	return dst
}
