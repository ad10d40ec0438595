// Package config provides YAML-based configuration loading and difficulty
// presets for the labyrinth game.
package config

import (
	"errors"
	"fmt"

	"github.com/plotj/labyrinth/internal/core"
	"github.com/plotj/labyrinth/internal/labyrinth"
	"github.com/plotj/labyrinth/internal/maze"
)

// LabyrinthConfig contains all configuration for the labyrinth game.
type LabyrinthConfig struct {
	Maze   MazeConfig   `yaml:"maze"`
	Canvas CanvasConfig `yaml:"canvas"`
	Player PlayerConfig `yaml:"player"`
	Timer  TimerConfig  `yaml:"timer"`
	Wager  WagerConfig  `yaml:"wager"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// MazeConfig defines the grid dimensions.
type MazeConfig struct {
	Width       int  `yaml:"width"`        // Columns, odd and >= 5
	Height      int  `yaml:"height"`       // Rows, odd and >= 5
	FitTerminal bool `yaml:"fit_terminal"` // Shrink the maze to the terminal when it does not fit
}

// CanvasConfig defines the pixel space the player moves in.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines movement parameters.
type PlayerConfig struct {
	Size         float64 `yaml:"size"`          // Player side in pixels
	SpeedDivisor float64 `yaml:"speed_divisor"` // Speed = cell size / divisor
	Step         float64 `yaml:"step"`          // Input units applied per key press
}

// TimerConfig defines the countdown.
type TimerConfig struct {
	LimitSeconds float64 `yaml:"limit_seconds"`
}

// WagerConfig defines the entry fee and payout of the wagered mode, in wei.
type WagerConfig struct {
	Enabled     bool  `yaml:"enabled"`
	EntryFeeWei int64 `yaml:"entry_fee_wei"`
	PayoutWei   int64 `yaml:"payout_wei"`
	BankrollWei int64 `yaml:"bankroll_wei"` // Initial pool balance
}

// ThemeConfig names the palette entries used to draw the maze.
type ThemeConfig struct {
	Wall   string `yaml:"wall"`
	Exit   string `yaml:"exit"`
	Player string `yaml:"player"`
	HUD    string `yaml:"hud"`
}

// Theme is a ThemeConfig resolved to palette colors.
type Theme struct {
	Wall, Exit, Player, HUD core.Color
}

// Resolve converts color names to palette entries.
func (t ThemeConfig) Resolve() (Theme, error) {
	var th Theme
	var errs []error
	for _, f := range []struct {
		name string
		dst  *core.Color
	}{
		{t.Wall, &th.Wall},
		{t.Exit, &th.Exit},
		{t.Player, &th.Player},
		{t.HUD, &th.HUD},
	} {
		c, err := core.ParseColor(f.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = c
	}
	if len(errs) > 0 {
		return th, fmt.Errorf("config: theme: %w", errors.Join(errs...))
	}
	return th, nil
}

// Engine returns the engine parameters described by this configuration.
func (c LabyrinthConfig) Engine() labyrinth.Config {
	return labyrinth.Config{
		CanvasWidth:  c.Canvas.Width,
		CanvasHeight: c.Canvas.Height,
		GridWidth:    c.Maze.Width,
		GridHeight:   c.Maze.Height,
		TimeLimit:    c.Timer.LimitSeconds,
		PlayerSize:   c.Player.Size,
		SpeedDivisor: c.Player.SpeedDivisor,
	}
}

// Validate reports every problem in the configuration at once.
func (c LabyrinthConfig) Validate() error {
	var errs []error

	if err := maze.CheckDimensions(c.Maze.Width, c.Maze.Height); err != nil {
		errs = append(errs, fmt.Errorf("maze: %w", err))
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas: %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Player.Step <= 0 {
		errs = append(errs, fmt.Errorf("player: step %.2f must be positive", c.Player.Step))
	}
	if c.Player.SpeedDivisor > 0 && c.Player.Step >= c.Player.SpeedDivisor {
		errs = append(errs, fmt.Errorf("player: step %.2f must be below speed_divisor %.2f to move less than a cell per press",
			c.Player.Step, c.Player.SpeedDivisor))
	}
	if c.Wager.Enabled {
		if c.Wager.EntryFeeWei <= 0 {
			errs = append(errs, fmt.Errorf("wager: entry fee %d must be positive", c.Wager.EntryFeeWei))
		}
		if c.Wager.PayoutWei <= 0 {
			errs = append(errs, fmt.Errorf("wager: payout %d must be positive", c.Wager.PayoutWei))
		}
		if c.Wager.BankrollWei < 0 {
			errs = append(errs, fmt.Errorf("wager: bankroll %d is negative", c.Wager.BankrollWei))
		}
	}
	if _, err := c.Theme.Resolve(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		if err := c.Engine().Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid labyrinth config: %w", errors.Join(errs...))
	}
	return nil
}
