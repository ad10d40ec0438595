package labyrinth

import (
	"fmt"
	"math"
	"time"

	"github.com/plotj/labyrinth/internal/maze"
)

// Engine is a single maze run. It is not safe for concurrent use;
// the driver calls Start, Move and Update from one goroutine.
type Engine struct {
	cfg   Config
	grid  *maze.Grid
	clock Clock

	cellSize float64
	speed    float64
	half     float64 // clamp inset from a cell edge

	x, y       float64
	state      State
	timeLeft   float64
	lastUpdate time.Time
}

// New generates a maze and places the player at the centre of the start cell.
// Invalid parameters return an error wrapping ErrInvalidConfiguration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{clock: SystemClock()}
	for _, opt := range opts {
		opt(&o)
	}

	grid, err := maze.Generate(cfg.GridWidth, cfg.GridHeight, o.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	cs := float64(cfg.CellSize())
	start := grid.Start()

	return &Engine{
		cfg:      cfg,
		grid:     grid,
		clock:    o.clock,
		cellSize: cs,
		speed:    cs / cfg.SpeedDivisor,
		half:     math.Min(cfg.PlayerSize/2, cs/2),
		x:        (float64(start.X) + 0.5) * cs,
		y:        (float64(start.Y) + 0.5) * cs,
		state:    Idle,
		timeLeft: cfg.TimeLimit,
	}, nil
}

// NewWithSeed builds an engine with the default grid and time limit on the
// given canvas. A zero seed draws a time-based maze.
func NewWithSeed(canvasWidth, canvasHeight int, seed int64) (*Engine, error) {
	cfg := DefaultConfig()
	cfg.CanvasWidth = canvasWidth
	cfg.CanvasHeight = canvasHeight

	var opts []Option
	if seed != 0 {
		opts = append(opts, WithSeed(seed))
	}
	return New(cfg, opts...)
}

// Start begins the countdown. It only has an effect while Idle.
func (e *Engine) Start() {
	if e.state != Idle {
		return
	}
	e.state = Running
	e.lastUpdate = e.clock.Now()
}

// Move displaces the player by (dx, dy) scaled by Speed.
// Each axis is resolved on its own, x first: a blocked axis stops at the wall
// side of the last open cell before the first wall on its way, so no step is
// long enough to pass through a wall, and it never moves backwards against
// the input. Reaching the exit cell wins the run. Move is a no-op unless Running.
func (e *Engine) Move(dx, dy float64) {
	if e.state != Running {
		return
	}

	if dx != 0 {
		row := e.cell(e.y)
		e.x = e.resolveAxis(e.x, dx*e.speed, func(col int) maze.Coord {
			return maze.C(col, row)
		})
	}
	if dy != 0 {
		col := e.cell(e.x)
		e.y = e.resolveAxis(e.y, dy*e.speed, func(row int) maze.Coord {
			return maze.C(col, row)
		})
	}

	if e.PlayerCell() == e.grid.Exit() {
		e.state = Won
	}
}

// resolveAxis returns the new coordinate along one axis. at maps a cell
// index on that axis to the grid cell it names. Every cell between the
// current one and the target is checked in order.
func (e *Engine) resolveAxis(pos, delta float64, at func(int) maze.Coord) float64 {
	candidate := pos + delta
	from, to := e.cell(pos), e.cell(candidate)

	step := 1
	if delta < 0 {
		step = -1
	}
	for c := from + step; c != to+step; c += step {
		if e.grid.At(at(c)) == maze.Path {
			continue
		}
		// Blocked at c: hug the wall side of the cell before it.
		if delta > 0 {
			return math.Max(pos, float64(c)*e.cellSize-e.half)
		}
		return math.Min(pos, float64(c+1)*e.cellSize+e.half)
	}
	return candidate
}

// Update advances the countdown by the real time elapsed since the previous
// Update or Start. Reaching zero loses the run. Update is a no-op unless Running.
func (e *Engine) Update() {
	if e.state != Running {
		return
	}

	now := e.clock.Now()
	elapsed := now.Sub(e.lastUpdate).Seconds()
	e.lastUpdate = now
	if elapsed < 0 {
		elapsed = 0
	}

	e.timeLeft -= elapsed
	if e.timeLeft <= 0 {
		e.timeLeft = 0
		e.state = Lost
	}
}

// cell converts a pixel coordinate to a grid index.
func (e *Engine) cell(v float64) int {
	return int(math.Floor(v / e.cellSize))
}

// Grid returns the maze. Grids are immutable.
func (e *Engine) Grid() *maze.Grid {
	return e.grid
}

// Config returns the parameters the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Player returns the player's pixel position.
func (e *Engine) Player() (x, y float64) {
	return e.x, e.y
}

// PlayerCell returns the grid cell containing the player.
func (e *Engine) PlayerCell() maze.Coord {
	return maze.C(e.cell(e.x), e.cell(e.y))
}

// CellSize returns the side of one cell in pixels.
func (e *Engine) CellSize() int {
	return int(e.cellSize)
}

// Speed returns the pixel distance covered by one unit of input.
func (e *Engine) Speed() float64 {
	return e.speed
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// IsStarted reports whether Start has been called.
func (e *Engine) IsStarted() bool {
	return e.state != Idle
}

// IsGameOver reports whether the run has ended either way.
func (e *Engine) IsGameOver() bool {
	return e.state.Terminal()
}

// DidWin reports whether the player reached the exit.
func (e *Engine) DidWin() bool {
	return e.state == Won
}

// TimeRemaining returns the seconds left on the countdown.
func (e *Engine) TimeRemaining() float64 {
	return e.timeLeft
}

// Snapshot returns a copy of the engine's observable state.
func (e *Engine) Snapshot() Snapshot {
	c := e.PlayerCell()
	return Snapshot{
		State:    e.state,
		X:        e.x,
		Y:        e.y,
		Col:      c.X,
		Row:      c.Y,
		TimeLeft: e.timeLeft,
		CellSize: int(e.cellSize),
	}
}
