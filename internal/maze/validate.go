package maze

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// ValidationError contains details about a grid that breaks the maze invariants.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the border is solid, that start and exit are open,
// and that the exit is reachable from the start.
func (g *Grid) Validate() error {
	if err := CheckDimensions(g.w, g.h); err != nil {
		return &ValidationError{Code: "BAD_DIMENSIONS", Message: err.Error()}
	}

	for x := 0; x < g.w; x++ {
		for _, y := range [2]int{0, g.h - 1} {
			if g.At(C(x, y)) != Wall {
				return &ValidationError{
					Code:    "OPEN_BORDER",
					Message: fmt.Sprintf("border cell %s is not a wall", C(x, y)),
				}
			}
		}
	}
	for y := 0; y < g.h; y++ {
		for _, x := range [2]int{0, g.w - 1} {
			if g.At(C(x, y)) != Wall {
				return &ValidationError{
					Code:    "OPEN_BORDER",
					Message: fmt.Sprintf("border cell %s is not a wall", C(x, y)),
				}
			}
		}
	}

	if g.At(g.Start()) != Path {
		return &ValidationError{Code: "CLOSED_START", Message: fmt.Sprintf("start %s is a wall", g.Start())}
	}
	if g.At(g.Exit()) != Path {
		return &ValidationError{Code: "CLOSED_EXIT", Message: fmt.Sprintf("exit %s is a wall", g.Exit())}
	}

	if g.ShortestPath() == nil {
		return &ValidationError{
			Code:    "UNREACHABLE_EXIT",
			Message: fmt.Sprintf("no path from %s to %s", g.Start(), g.Exit()),
		}
	}
	return nil
}

// ShortestPath returns the cells of a shortest route from Start to Exit,
// both inclusive, or nil if the exit cannot be reached.
func (g *Grid) ShortestPath() []Coord {
	start, exit := g.Start(), g.Exit()
	if g.At(start) != Path || g.At(exit) != Path {
		return nil
	}

	parent := make(map[Coord]Coord)
	visited := mapset.New[Coord]()
	visited.Put(start)

	frontier := queue.New[Coord]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		if current == exit {
			return unwind(parent, start, exit)
		}
		for _, step := range [4]Coord{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
			next := current.Add(step.X, step.Y)
			if g.At(next) != Path || visited.Has(next) {
				continue
			}
			visited.Put(next)
			parent[next] = current
			frontier.Enqueue(next)
		}
	}
	return nil
}

// Reachable returns the number of Path cells connected to Start.
func (g *Grid) Reachable() int {
	start := g.Start()
	if g.At(start) != Path {
		return 0
	}

	visited := mapset.New[Coord]()
	visited.Put(start)
	frontier := queue.New[Coord]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, step := range [4]Coord{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
			next := current.Add(step.X, step.Y)
			if g.At(next) == Path && !visited.Has(next) {
				visited.Put(next)
				frontier.Enqueue(next)
			}
		}
	}
	return visited.Size()
}

// unwind rebuilds the route from the BFS parent links.
func unwind(parent map[Coord]Coord, start, exit Coord) []Coord {
	route := []Coord{exit}
	for c := exit; c != start; {
		c = parent[c]
		route = append(route, c)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}
