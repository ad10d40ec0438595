// Package labyrinth adapts the maze engine to the platform's Game interface.
// It maps actions to engine calls, sizes the maze to the terminal and draws
// the maze, the HUD and the start and end overlays.
package labyrinth

import (
	"math"
	"sync"
	"time"

	"github.com/plotj/labyrinth/internal/config"
	"github.com/plotj/labyrinth/internal/core"
	engine "github.com/plotj/labyrinth/internal/labyrinth"
	"github.com/plotj/labyrinth/internal/registry"
)

// Mode IDs as registered with the registry.
const (
	WageredID  = "labyrinth"
	PracticeID = "practice"
)

// Rows reserved above and below the maze.
const (
	hudRows    = 1
	statusRows = 1
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultLabyrinthConfig()
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.LabyrinthConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// currentConfig returns the configuration set by SetConfig.
func currentConfig() config.LabyrinthConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(WageredID, func() registry.Game {
		return New(WageredID, currentConfig())
	})
	registry.Register(PracticeID, func() registry.Game {
		return New(PracticeID, currentConfig())
	})
}

// Game is one labyrinth session. Each Reset builds a fresh engine and maze.
type Game struct {
	id    string
	cfg   config.LabyrinthConfig
	theme config.Theme

	eng     *engine.Engine
	err     error
	runtime core.RuntimeConfig
	seed    int64 // seed of the current maze
	resets  int
	clock   engine.Clock
}

// New creates a game for the given mode ID with its own configuration.
// An unknown ID plays as practice.
func New(id string, cfg config.LabyrinthConfig) *Game {
	if id != WageredID {
		id = PracticeID
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		theme, _ = config.DefaultLabyrinthConfig().Theme.Resolve()
	}
	return &Game{
		id:    id,
		cfg:   cfg,
		theme: theme,
		clock: engine.SystemClock(),
	}
}

// WithClock replaces the clock of engines built by later Resets.
func (g *Game) WithClock(c engine.Clock) *Game {
	g.clock = c
	return g
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.id == WageredID {
		return "Labyrinth"
	}
	return "Labyrinth (Practice)"
}

// Wagered reports whether runs of this mode cost an entry fee.
func (g *Game) Wagered() bool {
	return g.id == WageredID && g.cfg.Wager.Enabled
}

// Reset discards the current run and generates a new maze.
// Repeated resets with the same runtime seed produce different but
// reproducible mazes.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc

	g.seed = rc.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.seed += int64(g.resets)
	g.resets++

	g.eng, g.err = engine.New(g.engineConfig(rc), engine.WithSeed(g.seed), engine.WithClock(g.clock))
}

// engineConfig applies terminal fitting to the configured engine parameters.
func (g *Game) engineConfig(rc core.RuntimeConfig) engine.Config {
	ec := g.cfg.Engine()
	if !g.cfg.Maze.FitTerminal || rc.ScreenW <= 0 || rc.ScreenH <= 0 {
		return ec
	}

	cols, rows := MazeArea(rc.ScreenW, rc.ScreenH)
	ec.GridWidth = core.LargestOdd(core.Min(ec.GridWidth, cols), 5)
	ec.GridHeight = core.LargestOdd(core.Min(ec.GridHeight, rows), 5)

	// Keep the canvas tall enough for the fitted grid.
	if cs := ec.CanvasWidth / ec.GridWidth; ec.CanvasHeight < ec.GridHeight*cs {
		ec.CanvasHeight = ec.GridHeight * cs
	}
	return ec
}

// MazeArea returns how many maze cells fit on a screen of the given size.
// Each cell is drawn two characters wide.
func MazeArea(screenW, screenH int) (cols, rows int) {
	return screenW / 2, screenH - hudRows - statusRows
}

// HandleAction applies Start and movement immediately.
func (g *Game) HandleAction(a core.Action) bool {
	if g.eng == nil {
		return false
	}

	if a == core.ActionStart {
		if g.eng.State() != engine.Idle {
			return false
		}
		g.eng.Start()
		return true
	}

	dx, dy, ok := a.Direction()
	if !ok {
		return false
	}
	step := g.cfg.Player.Step
	g.eng.Move(float64(dx)*step, float64(dy)*step)
	return true
}

// Step applies any actions collected in the frame and advances the countdown.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	for _, a := range []core.Action{core.ActionStart, core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.HandleAction(a)
		}
	}
	g.eng.Update()

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}

	st := core.GameState{
		Started:  g.eng.IsStarted(),
		GameOver: g.eng.IsGameOver(),
		Won:      g.eng.DidWin(),
		TimeLeft: g.eng.TimeRemaining(),
	}
	if st.Won {
		st.Score = Score(st.TimeLeft)
	}
	return st
}

// Score converts the seconds left at the exit into points.
func Score(timeLeft float64) int {
	return int(math.Round(timeLeft * 100))
}

// Engine returns the current engine, or nil if the last Reset failed.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Err returns the error from the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Seed returns the seed of the current maze.
func (g *Game) Seed() int64 {
	return g.seed
}

// GridSize returns the dimensions of the current maze in cells.
func (g *Game) GridSize() (w, h int) {
	if g.eng == nil {
		return 0, 0
	}
	return g.eng.Grid().Width(), g.eng.Grid().Height()
}

// Elapsed returns how much of the time limit the run has used.
func (g *Game) Elapsed() time.Duration {
	if g.eng == nil {
		return 0
	}
	used := g.eng.Config().TimeLimit - g.eng.TimeRemaining()
	return time.Duration(used * float64(time.Second))
}
