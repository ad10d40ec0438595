package main

import (
	"strings"
	"testing"

	"github.com/gookit/color"

	"github.com/plotj/labyrinth/internal/config"
	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/maze"
)

func TestFormatMaze(t *testing.T) {
	color.Enable = false
	t.Cleanup(func() { color.Enable = true })

	theme, err := config.DefaultLabyrinthConfig().Theme.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	grid, err := maze.Generate(11, 7, maze.NewRand(3))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	plain := formatMaze(grid, nil, theme)
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("formatMaze() produced %d lines, expected 7", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 22 {
			t.Errorf("line %d has %d runes, expected 22", i, n)
		}
	}
	if !strings.HasPrefix(lines[0], strings.Repeat(labgame.WallGlyph, 11)) {
		t.Errorf("top border = %q, expected solid wall", lines[0])
	}
	if !strings.HasPrefix(lines[1], labgame.WallGlyph+labgame.PlayerGlyph) {
		t.Errorf("line 1 = %q, expected the start after the border", lines[1])
	}
	if !strings.HasSuffix(lines[5], labgame.ExitGlyph+labgame.WallGlyph) {
		t.Errorf("line 5 = %q, expected the exit before the border", lines[5])
	}
	if strings.Contains(plain, "··") {
		t.Error("route marked without --solve")
	}

	route := grid.ShortestPath()
	solved := formatMaze(grid, route, theme)
	if got, want := strings.Count(solved, "··"), len(route)-2; got != want {
		t.Errorf("route marks = %d, expected %d", got, want)
	}
}
