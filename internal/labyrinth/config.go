// Package labyrinth implements the maze game engine: player movement with
// wall sliding, an elapsed-time countdown and the Idle/Running/Won/Lost
// state machine. It has no knowledge of rendering, input devices or payment.
package labyrinth

import (
	"errors"
	"fmt"

	"github.com/plotj/labyrinth/internal/maze"
)

// ErrInvalidConfiguration is returned by New when the canvas or grid
// parameters cannot produce a playable maze.
var ErrInvalidConfiguration = errors.New("labyrinth: invalid configuration")

// Default engine parameters.
const (
	DefaultCanvasWidth  = 640
	DefaultCanvasHeight = 480
	DefaultGridWidth    = 41
	DefaultGridHeight   = 31
	DefaultTimeLimit    = 60.0 // seconds
	DefaultPlayerSize   = 8.0  // pixels
	DefaultSpeedDivisor = 8.0
)

// Config holds the engine parameters.
type Config struct {
	CanvasWidth  int     // Canvas width in pixels
	CanvasHeight int     // Canvas height in pixels
	GridWidth    int     // Maze columns (odd, >= 5)
	GridHeight   int     // Maze rows (odd, >= 5)
	TimeLimit    float64 // Countdown start in seconds
	PlayerSize   float64 // Player square side in pixels
	SpeedDivisor float64 // Movement speed is CellSize / SpeedDivisor per unit input
}

// DefaultConfig returns the standard 640x480 canvas with a 41x31 maze.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		GridWidth:    DefaultGridWidth,
		GridHeight:   DefaultGridHeight,
		TimeLimit:    DefaultTimeLimit,
		PlayerSize:   DefaultPlayerSize,
		SpeedDivisor: DefaultSpeedDivisor,
	}
}

// CellSize returns the pixel size of one maze cell for this configuration.
func (c Config) CellSize() int {
	if c.GridWidth <= 0 {
		return 0
	}
	return c.CanvasWidth / c.GridWidth
}

// Validate checks that the configuration can produce a playable engine.
// All errors wrap ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas %dx%d must be positive",
			ErrInvalidConfiguration, c.CanvasWidth, c.CanvasHeight)
	}
	if err := maze.CheckDimensions(c.GridWidth, c.GridHeight); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	cs := c.CellSize()
	if cs < 1 {
		return fmt.Errorf("%w: canvas width %d is narrower than %d columns",
			ErrInvalidConfiguration, c.CanvasWidth, c.GridWidth)
	}
	if c.GridHeight*cs > c.CanvasHeight {
		return fmt.Errorf("%w: %d rows of %dpx do not fit canvas height %d",
			ErrInvalidConfiguration, c.GridHeight, cs, c.CanvasHeight)
	}

	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit %.2fs must be positive", ErrInvalidConfiguration, c.TimeLimit)
	}
	if c.PlayerSize < 0 {
		return fmt.Errorf("%w: player size %.2f is negative", ErrInvalidConfiguration, c.PlayerSize)
	}
	if c.SpeedDivisor <= 0 {
		return fmt.Errorf("%w: speed divisor %.2f must be positive", ErrInvalidConfiguration, c.SpeedDivisor)
	}
	return nil
}
