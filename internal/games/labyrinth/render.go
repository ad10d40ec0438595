package labyrinth

import (
	"fmt"
	"math"

	"github.com/plotj/labyrinth/internal/core"
	engine "github.com/plotj/labyrinth/internal/labyrinth"
	"github.com/plotj/labyrinth/internal/maze"
)

// Two-character glyphs, one per maze cell.
const (
	WallGlyph   = "██"
	ExitGlyph   = "▓▓"
	PlayerGlyph = "()"
)

// Render draws the HUD, the maze and the overlay for the current state.
// The last row is left free for the platform's status line.
func (g *Game) Render(dst *core.Screen) {
	if g.eng == nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot build maze", core.ColorRed)
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorGray)
		}
		return
	}

	g.drawHUD(dst)
	g.drawMaze(dst)
	g.drawOverlay(dst)
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := fmt.Sprintf("Time left: %d", int(math.Ceil(g.eng.TimeRemaining())))
	dst.DrawTextColored(0, 0, left, g.theme.HUD)

	title := g.Title()
	dst.DrawTextCentered(0, title, core.ColorBrightWhite)

	grid := g.eng.Grid()
	right := fmt.Sprintf("%dx%d", grid.Width(), grid.Height())
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorGray)
}

// mazeViewport returns the visible window of the maze in cells.
func (g *Game) mazeViewport(dst *core.Screen) core.Rect {
	grid := g.eng.Grid()
	cols, rows := MazeArea(dst.Width(), dst.Height())
	p := g.eng.PlayerCell()
	return core.Viewport(p.X, p.Y, cols, rows, grid.Width(), grid.Height())
}

func (g *Game) drawMaze(dst *core.Screen) {
	grid := g.eng.Grid()
	view := g.mazeViewport(dst)

	// Center the visible part horizontally.
	offsetX := (dst.Width() - view.W*2) / 2
	if offsetX < 0 {
		offsetX = 0
	}

	exit := grid.Exit()
	player := g.eng.PlayerCell()

	for y := view.Y; y < view.Bottom(); y++ {
		sy := hudRows + (y - view.Y)
		for x := view.X; x < view.Right(); x++ {
			sx := offsetX + (x-view.X)*2
			c := maze.C(x, y)

			switch {
			case c == player:
				dst.DrawTextColored(sx, sy, PlayerGlyph, g.theme.Player)
			case c == exit:
				dst.DrawTextColored(sx, sy, ExitGlyph, g.theme.Exit)
			case grid.At(c) == maze.Wall:
				dst.DrawTextColored(sx, sy, WallGlyph, g.theme.Wall)
			}
		}
	}
}

func (g *Game) drawOverlay(dst *core.Screen) {
	var lines []string
	color := g.theme.HUD

	switch g.eng.State() {
	case engine.Idle:
		lines = []string{"Press SPACE to start", "Use arrow keys to move"}
	case engine.Won:
		lines = []string{"You Win!", "Press R to Restart"}
		color = g.theme.Exit
	case engine.Lost:
		lines = []string{"Game Over!", "Press R to Restart"}
		color = core.ColorBrightRed
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = core.Max(width, len(l))
	}
	box := core.NewRect((dst.Width()-width-4)/2, dst.Height()/2-2, width+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, color)
	}
}
