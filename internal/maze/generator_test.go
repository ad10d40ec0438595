package maze_test

import (
	"errors"
	"testing"

	"github.com/plotj/labyrinth/internal/maze"
)

func TestGenerateInvariants(t *testing.T) {
	sizes := []struct {
		w, h int
	}{
		{5, 5},
		{7, 5},
		{5, 9},
		{21, 15},
		{41, 31},
		{61, 41},
	}

	for _, size := range sizes {
		for seed := int64(1); seed <= 25; seed++ {
			g, err := maze.Generate(size.w, size.h, maze.NewRand(seed))
			if err != nil {
				t.Fatalf("Generate(%d, %d) seed %d failed: %v", size.w, size.h, seed, err)
			}

			if g.Width() != size.w || g.Height() != size.h {
				t.Fatalf("dimensions = %dx%d, expected %dx%d", g.Width(), g.Height(), size.w, size.h)
			}

			// Border is solid
			for x := 0; x < g.Width(); x++ {
				if g.IsPath(x, 0) || g.IsPath(x, g.Height()-1) {
					t.Errorf("%dx%d seed %d: open border at column %d", size.w, size.h, seed, x)
				}
			}
			for y := 0; y < g.Height(); y++ {
				if g.IsPath(0, y) || g.IsPath(g.Width()-1, y) {
					t.Errorf("%dx%d seed %d: open border at row %d", size.w, size.h, seed, y)
				}
			}

			if g.At(g.Start()) != maze.Path {
				t.Errorf("%dx%d seed %d: start is not a path", size.w, size.h, seed)
			}
			if g.At(g.Exit()) != maze.Path {
				t.Errorf("%dx%d seed %d: exit is not a path", size.w, size.h, seed)
			}

			route := g.ShortestPath()
			if route == nil {
				t.Errorf("%dx%d seed %d: exit unreachable", size.w, size.h, seed)
			}

			if err := g.Validate(); err != nil {
				t.Errorf("%dx%d seed %d: Validate() = %v, expected nil", size.w, size.h, seed, err)
			}
		}
	}
}

func TestGenerateIsPerfectMaze(t *testing.T) {
	g, err := maze.Generate(41, 31, maze.NewRand(7))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Every lattice cell is carved
	for y := 1; y < g.Height()-1; y += 2 {
		for x := 1; x < g.Width()-1; x += 2 {
			if !g.IsPath(x, y) {
				t.Errorf("lattice cell (%d,%d) was never carved", x, y)
			}
		}
	}

	// A spanning tree over n lattice cells carves n-1 connectors
	lattice := ((g.Width() - 1) / 2) * ((g.Height() - 1) / 2)
	if got, expected := g.PathCount(), 2*lattice-1; got != expected {
		t.Errorf("PathCount() = %d, expected %d", got, expected)
	}

	// All carved cells hang together
	if g.Reachable() != g.PathCount() {
		t.Errorf("Reachable() = %d, expected %d", g.Reachable(), g.PathCount())
	}

	// Walls between two wall-only lattice positions never get carved
	for y := 0; y < g.Height(); y += 2 {
		for x := 0; x < g.Width(); x += 2 {
			if g.IsPath(x, y) {
				t.Errorf("even-even cell (%d,%d) should stay a wall", x, y)
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	g1, err1 := maze.Generate(41, 31, maze.NewRand(12345))
	g2, err2 := maze.Generate(41, 31, maze.NewRand(12345))
	if err1 != nil || err2 != nil {
		t.Fatalf("generation failed: %v, %v", err1, err2)
	}

	if !g1.Equal(g2) {
		t.Error("same seed should produce identical grids")
	}

	g3, err := maze.Generate(41, 31, maze.NewRand(54321))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if g1.Equal(g3) {
		t.Error("different seeds should produce different grids")
	}
}

func TestGridEqualNil(t *testing.T) {
	g, err := maze.Generate(5, 5, maze.NewRand(1))
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	var none *maze.Grid
	if g.Equal(nil) {
		t.Error("Equal(nil) = true, expected false")
	}
	if none.Equal(g) {
		t.Error("nil.Equal(g) = true, expected false")
	}
	if !none.Equal(nil) {
		t.Error("nil.Equal(nil) = false, expected true")
	}
}

func TestGenerateNilRand(t *testing.T) {
	g, err := maze.Generate(11, 9, nil)
	if err != nil {
		t.Fatalf("Generate with nil rng failed: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"even width", 40, 31},
		{"even height", 41, 30},
		{"both even", 10, 10},
		{"too narrow", 3, 31},
		{"too short", 41, 3},
		{"zero", 0, 0},
		{"negative", -5, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := maze.Generate(tc.w, tc.h, maze.NewRand(1))
			if err == nil {
				t.Fatalf("Generate(%d, %d) should fail", tc.w, tc.h)
			}
			if g != nil {
				t.Error("grid should be nil on error")
			}
			if !errors.Is(err, maze.ErrInvalidDimensions) {
				t.Errorf("error %v should wrap ErrInvalidDimensions", err)
			}
		})
	}
}

func TestShortestPathIsContiguous(t *testing.T) {
	g, err := maze.Generate(21, 15, maze.NewRand(99))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	route := g.ShortestPath()
	if len(route) < 2 {
		t.Fatalf("route too short: %v", route)
	}
	if route[0] != g.Start() {
		t.Errorf("route starts at %v, expected %v", route[0], g.Start())
	}
	if route[len(route)-1] != g.Exit() {
		t.Errorf("route ends at %v, expected %v", route[len(route)-1], g.Exit())
	}

	for i, c := range route {
		if g.At(c) != maze.Path {
			t.Errorf("route step %d at %v is a wall", i, c)
		}
		if i > 0 && route[i-1].Manhattan(c) != 1 {
			t.Errorf("route steps %d and %d are not adjacent: %v -> %v", i-1, i, route[i-1], c)
		}
	}

	// Start to exit can never be shorter than their Manhattan distance
	if len(route)-1 < g.Start().Manhattan(g.Exit()) {
		t.Errorf("route length %d shorter than Manhattan distance", len(route)-1)
	}
}

func TestGridRowsIsCopy(t *testing.T) {
	g, err := maze.Generate(7, 7, maze.NewRand(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	rows := g.Rows()
	rows[1][1] = maze.Wall

	if !g.IsPath(1, 1) {
		t.Error("mutating Rows() result should not affect the grid")
	}
}

func TestGridString(t *testing.T) {
	g, err := maze.Generate(5, 5, maze.NewRand(1))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s := g.String()
	lines := 1
	for _, r := range s {
		if r == '\n' {
			lines++
		}
	}
	if lines != 5 {
		t.Errorf("String() has %d lines, expected 5", lines)
	}
	if s[:5] != "#####" {
		t.Errorf("first row = %q, expected %q", s[:5], "#####")
	}
}

func TestOutOfBoundsReadsAsWall(t *testing.T) {
	g, err := maze.Generate(5, 5, maze.NewRand(1))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, c := range []maze.Coord{maze.C(-1, 0), maze.C(0, -1), maze.C(5, 2), maze.C(2, 5)} {
		if g.At(c) != maze.Wall {
			t.Errorf("At(%v) = %v, expected Wall", c, g.At(c))
		}
	}
}
