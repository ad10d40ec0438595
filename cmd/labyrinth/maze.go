package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/plotj/labyrinth/internal/config"
	"github.com/plotj/labyrinth/internal/core"
	labgame "github.com/plotj/labyrinth/internal/games/labyrinth"
	"github.com/plotj/labyrinth/internal/maze"
)

var (
	flagMazeWidth  int
	flagMazeHeight int
	flagSolve      bool
	flagNoColor    bool
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print a generated maze",
	Long: `Generate a maze and print it to stdout.

The same --seed always prints the same maze, which makes it easy to
inspect the maze a recorded run was played on.

Examples:
  labyrinth maze
  labyrinth maze --width 21 --height 11 --seed 42
  labyrinth maze --solve
  labyrinth maze --no-color > maze.txt`,
	Run: runMaze,
}

func init() {
	mazeCmd.Flags().IntVar(&flagMazeWidth, "width", 0, "Maze columns, odd and >= 5 (default: from config)")
	mazeCmd.Flags().IntVar(&flagMazeHeight, "height", 0, "Maze rows, odd and >= 5 (default: from config)")
	mazeCmd.Flags().BoolVar(&flagSolve, "solve", false, "Mark the shortest route to the exit")
	mazeCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Print without colors")
}

// consoleStyles maps core colors to console styles.
var consoleStyles = map[core.Color]color.Style{
	core.ColorDefault:      {},
	core.ColorRed:          {color.FgRed},
	core.ColorGreen:        {color.FgGreen},
	core.ColorYellow:       {color.FgYellow},
	core.ColorBlue:         {color.FgBlue},
	core.ColorMagenta:      {color.FgMagenta},
	core.ColorCyan:         {color.FgCyan},
	core.ColorWhite:        {color.FgWhite},
	core.ColorBrightRed:    {color.FgLightRed},
	core.ColorBrightGreen:  {color.FgLightGreen},
	core.ColorBrightYellow: {color.FgLightYellow},
	core.ColorBrightBlue:   {color.FgLightBlue},
	core.ColorBrightWhite:  {color.FgLightWhite},
	core.ColorOrange:       {color.FgYellow, color.OpBold},
	core.ColorGray:         {color.FgGray},
}

func styleFor(c core.Color) color.Style {
	if s, ok := consoleStyles[c]; ok {
		return s
	}
	return color.Style{}
}

func runMaze(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "labyrinth")
	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := cfg.Maze.Width, cfg.Maze.Height
	if flagMazeWidth > 0 {
		width = flagMazeWidth
	}
	if flagMazeHeight > 0 {
		height = flagMazeHeight
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, err := maze.Generate(width, height, maze.NewRand(seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	theme, err := cfg.Theme.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var route []maze.Coord
	if flagSolve {
		route = grid.ShortestPath()
	}

	if flagNoColor {
		color.Enable = false
	}

	fmt.Printf("Maze %dx%d, seed %d\n", width, height, seed)
	fmt.Print(formatMaze(grid, route, theme))
	if flagSolve {
		fmt.Printf("Shortest route: %d cells\n", len(route))
	}
}

// formatMaze renders a maze two characters per cell, marking the start,
// the exit and an optional route.
func formatMaze(grid *maze.Grid, route []maze.Coord, theme config.Theme) string {
	onRoute := make(map[maze.Coord]bool, len(route))
	for _, c := range route {
		onRoute[c] = true
	}

	wall := styleFor(theme.Wall)
	exit := styleFor(theme.Exit)
	player := styleFor(theme.Player)
	trail := styleFor(theme.HUD)

	var b strings.Builder
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := maze.C(x, y)
			switch {
			case c == grid.Start():
				b.WriteString(player.Sprint(labgame.PlayerGlyph))
			case c == grid.Exit():
				b.WriteString(exit.Sprint(labgame.ExitGlyph))
			case grid.At(c) == maze.Wall:
				b.WriteString(wall.Sprint(labgame.WallGlyph))
			case onRoute[c]:
				b.WriteString(trail.Sprint("··"))
			default:
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
